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
	"fmt"
	"io/ioutil"

	"github.com/spf13/afero"

	"github.com/xelalexv/atrdrive/pkg/disk"
)

//
func NewSave() *Save {

	s := &Save{}
	s.Runner = *NewRunner(
		"save [-d|--drive {drive}] -o|--output {file} [-f|--force] [-p|--port {port}]",
		"get disk image from daemon and save",
		"\nUse the save command to get a disk image from the daemon and save it to a file.",
		`- The output file needs to have an .atr extension.

`+runnerHelpEpilogue, s.Run)

	s.AddBaseSettings()
	s.AddSetting(&s.File, "output", "o", "", nil, "disk image output file", true)
	s.AddSetting(&s.Drive, "drive", "d", "", 1, "drive number (1-8)", false)
	s.AddSetting(&s.Force, "force", "f", "", false,
		"force overwriting output file", false)

	return s
}

//
type Save struct {
	//
	Runner
	//
	File  string
	Drive int
	Force bool
}

//
func (s *Save) Run() error {

	s.ParseSettings()

	if err := validateDrive(s.Drive); err != nil {
		return err
	}

	if _, err := disk.FormatForFile(s.File); err != nil {
		return err
	}

	if !s.Force {
		if exists, _ := afero.Exists(s.fs, s.File); exists &&
			!GetUserConfirmation("File exists, overwrite?") {
			return nil
		}
	}

	resp, err := s.apiCall("GET", fmt.Sprintf("/drive/%d", s.Drive), false, nil)
	if err != nil {
		return err
	}
	defer resp.Close()

	data, err := ioutil.ReadAll(resp)
	if err != nil {
		return err
	}

	if err := disk.WriteAll(s.fs, s.File, data); err != nil {
		return err
	}

	fmt.Fprintln(s.out, "image saved")
	return nil
}
