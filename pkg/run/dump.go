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
func NewDump() *Dump {

	d := &Dump{}
	d.Runner = *NewRunner(
		"dump [-d|--drive {drive}] [-i|--input {file}] [-s|--sector {sector}] [-p|--port {port}]",
		"dump disk image from file or daemon",
		`
Use the dump command to output a hex dump of a disk image from file or from
daemon. When a sector is given, only that sector is dumped.`,
		runnerHelpEpilogue, d.Run)

	d.AddBaseSettings()
	d.AddSetting(&d.File, "input", "i", "", nil, "disk image input file", false)
	d.AddSetting(&d.Drive, "drive", "d", "", 1, "drive number (1-8)", false)
	d.AddSetting(&d.Sector, "sector", "s", "", 0, "sector to dump", false)

	return d
}

//
type Dump struct {
	//
	Runner
	//
	Drive  int
	File   string
	Sector int
}

//
func (d *Dump) Run() error {

	d.ParseSettings()

	if d.File != "" {
		dr, err := d.loadLocal(d.File)
		if err != nil {
			return err
		}
		if d.Sector > 0 {
			err = dr.EmitSector(d.Sector, d.out)
		} else {
			err = dr.Dump(d.out)
		}
		fmt.Fprintln(d.out)
		return err
	}

	if err := validateDrive(d.Drive); err != nil {
		return err
	}

	path := fmt.Sprintf("/drive/%d/dump", d.Drive)
	if d.Sector > 0 {
		path = fmt.Sprintf("%s?sector=%d", path, d.Sector)
	}

	return d.apiPrint("GET", path, nil)
}
