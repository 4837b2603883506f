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
)

//
func NewList() *List {

	l := &List{}
	l.Runner = *NewRunner(
		"ls [-d|--drive {drive}] [-i|--input {file}] [-p|--port {port}]",
		"list drives, or directory of a disk",
		`
Use the ls command to get a drive list from the daemon. When a drive or an
image file is given, the DOS 2 directory of that disk is listed instead.`,
		runnerHelpEpilogue, l.Run)

	l.AddBaseSettings()
	l.AddSetting(&l.File, "input", "i", "", nil, "disk image input file", false)
	l.AddSetting(&l.Drive, "drive", "d", "", 0, "drive number (1-8)", false)

	return l
}

//
type List struct {
	//
	Runner
	//
	Drive int
	File  string
}

//
func (l *List) Run() error {

	l.ParseSettings()

	if l.File != "" {
		dr, err := l.loadLocal(l.File)
		if err != nil {
			return err
		}
		return dr.List(l.out)
	}

	if l.Drive == 0 {
		return l.apiPrint("GET", "/list", nil)
	}

	if err := validateDrive(l.Drive); err != nil {
		return err
	}

	return l.apiPrint("GET", fmt.Sprintf("/drive/%d/list", l.Drive), nil)
}
