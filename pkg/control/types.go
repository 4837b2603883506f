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

package control

import (
	"fmt"

	"github.com/xelalexv/atrdrive/pkg/daemon"
	"github.com/xelalexv/atrdrive/pkg/disk"
)

//
type Status struct {
	Drives []string `json:"drives"`
}

//
func (s *Status) Add(d string) {
	s.Drives = append(s.Drives, d)
}

//
func (s *Status) String() string {
	ret := "\n"
	for ix, d := range s.Drives {
		ret = fmt.Sprintf("%sD%d: %s\n", ret, ix+1, d)
	}
	return ret
}

// Drive describes the image in a drive
type Drive struct {
	Name           string `json:"name"`
	Status         string `json:"status"`
	Format         string `json:"format,omitempty"`
	SectorSize     int    `json:"sectorSize,omitempty"`
	SectorCount    int    `json:"sectorCount,omitempty"`
	WriteProtected bool   `json:"writeProtected"`
	Modified       bool   `json:"modified"`
}

//
func (d *Drive) fill(dr *disk.Drive) {
	d.Name = dr.Name()
	d.Format = dr.Format().String()
	d.SectorSize, _ = dr.SectorSize(0)
	d.SectorCount, _ = dr.SectorCount()
	d.WriteProtected = dr.IsReadOnly()
	d.Modified = dr.IsModified()
}

//
func (d *Drive) String() string {

	if d.Status != daemon.StatusIdle {
		return fmt.Sprintf("<%s>", d.Status)
	}

	name := d.Name
	if name == "" {
		name = "<no name>"
	}

	write := 'w'
	if d.WriteProtected {
		write = 'r'
	}

	mod := ' '
	if d.Modified {
		mod = '*'
	}

	return fmt.Sprintf("%-20s%4d x %3d  %c%c",
		name, d.SectorCount, d.SectorSize, write, mod)
}

//
func (d *Drive) equals(o *Drive) bool {
	return d == o || (d != nil && o != nil && *d == *o)
}

// Change is sent to watchers when the drive list changes
type Change struct {
	Drives []*Drive `json:"drives,omitempty"`
}

//
func driveListsEqual(a, b []*Drive) bool {
	if len(a) != len(b) {
		return false
	}
	for ix := range a {
		if !a[ix].equals(b[ix]) {
			return false
		}
	}
	return true
}
