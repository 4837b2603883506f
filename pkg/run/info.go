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
func NewInfo() *Info {

	i := &Info{}
	i.Runner = *NewRunner(
		"info -i|--input {file}",
		"show header and geometry of disk image file",
		`
Use the info command to show the header of a disk image file, along with the
geometry derived from it.`,
		"", i.Run)

	i.AddSetting(&i.File, "input", "i", "", nil, "disk image input file", true)

	return i
}

//
type Info struct {
	//
	Runner
	//
	File string
}

//
func (i *Info) Run() error {

	i.ParseSettings()

	dr, err := i.loadLocal(i.File)
	if err != nil {
		return err
	}

	if err := dr.Emit(i.out); err != nil {
		return err
	}

	fmt.Fprintln(i.out)
	return nil
}
