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

package atr

import (
	"fmt"
)

// Range is a half-open byte range within an image buffer, header included
type Range struct {
	Start int
	End   int
}

//
func (r Range) Len() int {
	return r.End - r.Start
}

//
func isBootSector(sector int) bool {
	return sector <= BootSectorCount
}

//
func checkSector(n int) error {
	if n < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidSector, n)
	}
	if n > MaxSectorCount {
		return fmt.Errorf("%w: %d", ErrSectorOutOfRange, n)
	}
	return nil
}

// ReadRange translates sector number n into the range to read from.
func (g Geometry) ReadRange(n int) (Range, error) {

	if err := checkSector(n); err != nil {
		return Range{}, err
	}

	var offset, size int

	if isBootSector(n) {
		size = BootSectorSize
		stride := BootSectorSize
		if g.BootSectors == BootPhysical {
			stride = DoubleDensity
		}
		offset = (n - 1) * stride

	} else {
		size = g.SectorSize
		offset = firstSectorPadded
		if g.BootSectors == BootLogical {
			offset = firstSectorLogical
		}
		offset += (n - 4) * size
	}

	return Range{
		Start: HeaderLength + offset,
		End:   HeaderLength + offset + size,
	}, nil
}

/*
	WriteRange translates sector number n into the range to write to. Unlike
	ReadRange, this does not take the boot sector layout into account. For
	images not in logical layout, sectors from 4 on are written to a different
	place than they are read from, and with physical layout also boot sectors 2
	and 3. Images created by Format always use logical layout, for which both
	ranges agree.
*/
func (g Geometry) WriteRange(n int) (Range, error) {

	if err := checkSector(n); err != nil {
		return Range{}, err
	}

	var start, length int

	if isBootSector(n) {
		start = (n - 1) * BootSectorSize
		length = BootSectorSize

	} else {
		start = (n - 1) * g.SectorSize
		if g.SectorSize == DoubleDensity {
			start -= BootSectorCount * BootSectorSize
		}
		length = g.SectorSize
	}

	return Range{
		Start: HeaderLength + start,
		End:   HeaderLength + start + length,
	}, nil
}
