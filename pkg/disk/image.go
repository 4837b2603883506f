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

package disk

import (
	"io"

	"github.com/xelalexv/atrdrive/pkg/atr"
)

// Image is what every disk image format engine provides
type Image interface {
	//
	Load(data []byte, source string) error

	Unload()

	Format(sectorSize, sectorCount int) error

	ReadSector(n int) ([]byte, error)

	WriteSector(n int, data []byte) error

	// Export returns a copy of the complete image
	Export() []byte

	// StatusBytes returns the drive status for the computer, nil when off
	StatusBytes() []byte

	SectorSize() int

	// SectorSizeOf returns the size of sector n, which may differ from
	// SectorSize for boot sectors
	SectorSizeOf(n int) int

	SectorCount() int

	Status() atr.DriveStatus

	IsReadOnly() bool

	// SourceName returns the base name of the image file, if any
	SourceName() string

	Source() string

	Emit(w io.Writer)

	EmitSector(n int, w io.Writer) error
}

var _ Image = (*atr.Image)(nil)
