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
	log "github.com/sirupsen/logrus"
)

// Geometry is what can be derived about an image from its header
type Geometry struct {
	SectorSize  int
	SectorCount int
	BootSectors BootSectors
	Status      DriveStatus
}

/*
	ResolveGeometry derives sector size, sector count, and boot sector layout
	from header h. For double density images whose size in 128 byte units is
	even, the boot sector layout cannot be told from the header alone. In that
	case a window of the raw image is probed: any data found there means boot
	sectors are stored padded to 256 bytes (physical), otherwise the image is
	taken to follow the SIO2PC convention.
*/
func ResolveGeometry(h *Header, image []byte) Geometry {

	g := Geometry{
		SectorSize:  h.SectorSizeField(),
		BootSectors: BootLogical,
		Status:      StatusReadWrite,
	}

	if h.WriteProtected() {
		g.Status = StatusReadOnly
	}

	units := int(h.Paragraphs() >> 3)

	if g.SectorSize == DoubleDensity {
		if units&1 == 1 {
			units += BootSectorCount
		} else if probe(image) {
			g.BootSectors = BootPhysical
		} else {
			g.BootSectors = BootSIO2PC
		}
		units >>= 1
	}

	g.SectorCount = units

	log.WithFields(log.Fields{
		"size":   g.SectorSize,
		"count":  g.SectorCount,
		"boot":   g.BootSectors,
		"status": g.Status,
	}).Debug("geometry resolved")

	return g
}

// probe reports whether there is any non-zero byte in the probe window. The
// window is clamped to the image.
func probe(image []byte) bool {

	end := probeStart + probeLength
	if end > len(image) {
		end = len(image)
	}

	for ix := probeStart; ix < end; ix++ {
		if image[ix] != 0 {
			return true
		}
	}
	return false
}
