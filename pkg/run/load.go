/*
   AtrDrive - Atari 8-bit disk drive emulator
   Copyright (c) 2021, Alexander Vollschwitz

   This file is part of AtrDrive.

   AtrDrive is free software: you can redistribute it and/or modify
   it under the terms of the GNU General Public License as published by
   the Free Software Foundation, either version 3 of the License, or
   (at your option) any later version.

   AtrDrive is distributed in the hope that it will be useful,
   but WITHOUT ANY WARRANTY; without even the implied warranty of
   MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
   GNU General Public License for more details.

   You should have received a copy of the GNU General Public License
   along with AtrDrive. If not, see <http://www.gnu.org/licenses/>.
*/

package run

import (
	"bufio"
	"fmt"
	"net/url"
	"path/filepath"

	"github.com/xelalexv/atrdrive/pkg/repo"
)

//
func NewLoad() *Load {

	l := &Load{}
	l.Runner = *NewRunner(
		"load [-d|--drive {drive}] -i|--input {file|repo://{path}} [-f|--force] [-p|--port {port}]",
		"load disk image into daemon",
		"\nUse the load command to load a disk image into one of the daemon's drives.",
		`- Images can be loaded from the daemon's image repository by using a
  reference of the form repo://{path within repo}.

`+runnerHelpEpilogue, l.Run)

	l.AddBaseSettings()
	l.AddSetting(&l.File, "input", "i", "", nil, "disk image input file", true)
	l.AddSetting(&l.Drive, "drive", "d", "", 1, "drive number (1-8)", false)
	l.AddSetting(&l.Force, "force", "f", "", false,
		"force replacing modified image in daemon", false)

	return l
}

//
type Load struct {
	//
	Runner
	//
	Drive int
	File  string
	Force bool
}

//
func (l *Load) Run() error {

	l.ParseSettings()

	if err := validateDrive(l.Drive); err != nil {
		return err
	}

	if repo.IsReference(l.File) {
		return l.apiPrint("PUT", fmt.Sprintf("/drive/%d?ref=%s&force=%v",
			l.Drive, url.QueryEscape(l.File), l.Force), nil)
	}

	f, err := l.fs.Open(l.File)
	if err != nil {
		return err
	}
	defer f.Close()

	return l.apiPrint("PUT", fmt.Sprintf("/drive/%d?name=%s&force=%v",
		l.Drive, url.QueryEscape(filepath.Base(l.File)), l.Force),
		bufio.NewReader(f))
}
