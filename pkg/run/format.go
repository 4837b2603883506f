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

	"github.com/xelalexv/atrdrive/pkg/atr"
)

//
func NewFormat() *Format {

	f := &Format{}
	f.Runner = *NewRunner(
		`format [-d|--drive {drive}] [-s|--size {128|256}] [-c|--count {sectors}]
       [-f|--force] [-p|--port {port}]`,
		"put blank disk into drive",
		`
Use the format command to put a blank, formatted disk into a drive of the
daemon. Common geometries are 720 sectors of 128 bytes (single density), 1040
sectors of 128 bytes (enhanced density), and 720 sectors of 256 bytes (double
density).`,
		runnerHelpEpilogue, f.Run)

	f.AddBaseSettings()
	f.AddSetting(&f.Drive, "drive", "d", "", 1, "drive number (1-8)", false)
	f.AddSetting(&f.Size, "size", "s", "", atr.SingleDensity,
		"sector size, 128 or 256", false)
	f.AddSetting(&f.Count, "count", "c", "", 720, "number of sectors", false)
	f.AddSetting(&f.Force, "force", "f", "", false,
		"force replacing modified image in daemon", false)

	return f
}

//
type Format struct {
	//
	Runner
	//
	Drive int
	Size  int
	Count int
	Force bool
}

//
func (f *Format) Run() error {

	f.ParseSettings()

	if err := validateDrive(f.Drive); err != nil {
		return err
	}

	if f.Size != atr.SingleDensity && f.Size != atr.DoubleDensity {
		return fmt.Errorf("invalid sector size: %d; valid sizes are %d and %d",
			f.Size, atr.SingleDensity, atr.DoubleDensity)
	}

	return f.apiPrint("PUT", fmt.Sprintf(
		"/drive/%d/format?type=atr&size=%d&count=%d&force=%v",
		f.Drive, f.Size, f.Count, f.Force), nil)
}
