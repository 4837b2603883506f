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
func NewUnload() *Unload {

	u := &Unload{}
	u.Runner = *NewRunner(
		"unload [-d|--drive {drive}] [-f|--force] [-p|--port {port}]",
		"unload disk image from daemon",
		`
Use the unload command to remove the disk from a drive. The drive then reports
that no disk is present.`,
		runnerHelpEpilogue, u.Run)

	u.AddBaseSettings()
	u.AddSetting(&u.Drive, "drive", "d", "", 1, "drive number (1-8)", false)
	u.AddSetting(&u.Force, "force", "f", "", false,
		"force unloading modified image from daemon", false)

	return u
}

//
type Unload struct {
	//
	Runner
	//
	Drive int
	Force bool
}

//
func (u *Unload) Run() error {

	u.ParseSettings()

	if err := validateDrive(u.Drive); err != nil {
		return err
	}

	return u.apiPrint("GET",
		fmt.Sprintf("/drive/%d/unload?force=%v", u.Drive, u.Force), nil)
}
