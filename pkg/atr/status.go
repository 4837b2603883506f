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

// bits of the command status byte
const (
	StatusBitWriteProtect = 0x08
	StatusBitActive       = 0x10
	StatusBitDouble       = 0x20
	StatusBitEnhanced     = 0x80
)

// values of the hardware status byte
const (
	HardwareNoDisk = 0x7f
	HardwareReady  = 0xff
)

// default format timeout reported in status
const (
	timeoutLow  = 1
	timeoutHigh = 0
)

// StatusBytes returns the four byte drive status as expected by the computer,
// or nil if the drive is off.
func (i *Image) StatusBytes() []byte {

	if i.status == StatusOff {
		return nil
	}

	var cmd byte = StatusBitActive

	if i.status == StatusReadOnly {
		cmd |= StatusBitWriteProtect
	}
	if i.geo.SectorSize == DoubleDensity {
		cmd |= StatusBitDouble
	}
	if i.geo.SectorCount == EnhancedSectorCount {
		cmd |= StatusBitEnhanced
	}

	var hw byte = HardwareReady
	if i.status == StatusNoDisk {
		hw = HardwareNoDisk
	}

	return []byte{cmd, hw, timeoutLow, timeoutHigh}
}
