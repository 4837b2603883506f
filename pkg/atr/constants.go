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

//
const HeaderLength = 16
const Signature = 0x0296

//
const SingleDensity = 128
const DoubleDensity = 256

// boot sectors are always stored with 128 bytes, regardless of density
const BootSectorCount = 3
const BootSectorSize = 128

// sector count of a 1050 drive in enhanced density
const EnhancedSectorCount = 1040

// highest sector number the two aux bytes of an SIO command can address
const MaxSectorCount = 0xffff

// the probe for telling physical from SIO2PC boot sector layout in double
// density images with an even sector count
const probeStart = 0x190
const probeLength = 0x180

// offsets of sector 4 relative to end of header, for logical and for
// physical/SIO2PC boot sector layout
const firstSectorLogical = 0x180
const firstSectorPadded = 0x300

// DriveStatus is the state of the drive holding an image
type DriveStatus int

const (
	StatusOff DriveStatus = iota
	StatusNoDisk
	StatusReadOnly
	StatusReadWrite
)

//
func (s DriveStatus) String() string {

	switch s {

	case StatusOff:
		return "off"

	case StatusNoDisk:
		return "no disk"

	case StatusReadOnly:
		return "read-only"

	case StatusReadWrite:
		return "read-write"

	default:
		return "<unknown>"
	}
}

// BootSectors is the layout of sectors 1 through 3 in an image
type BootSectors int

const (
	// 128 byte boot sectors, followed directly by sector 4
	BootLogical BootSectors = iota
	// boot sectors padded to 256 bytes, with data in the first half
	BootPhysical
	// 128 byte boot sectors, followed by 384 bytes of padding
	BootSIO2PC
)

//
func (b BootSectors) String() string {

	switch b {

	case BootLogical:
		return "logical"

	case BootPhysical:
		return "physical"

	case BootSIO2PC:
		return "SIO2PC"

	default:
		return "<unknown>"
	}
}
