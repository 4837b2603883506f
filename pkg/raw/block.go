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

package raw

// Index maps field names to offset and length within a block
type Index map[string][2]int

//
func NewBlock(index Index, data []byte) *Block {
	return &Block{index: index, Data: data}
}

// Block gives named access to the fields of a fixed layout byte sequence. All
// multi-byte integers are little-endian.
type Block struct {
	index Index
	Data  []byte
}

//
func (b *Block) GetByte(key string) byte {
	if ix, ok := b.index[key]; ok {
		if 0 <= ix[0] && ix[0] < len(b.Data) && ix[1] == 1 {
			return b.Data[ix[0]]
		}
	}
	return 0
}

//
func (b *Block) GetSlice(key string) []byte {
	if ix, ok := b.index[key]; ok {
		start := ix[0]
		end := start + ix[1]
		if 0 <= start && end <= len(b.Data) {
			return b.Data[start:end]
		}
	}
	return []byte{}
}

// GetInt returns the 16 bit word stored at key, or -1 if key does not denote
// a two byte field.
func (b *Block) GetInt(key string) int {
	bytes := b.GetSlice(key)
	if len(bytes) != 2 {
		return -1
	}
	return int(bytes[0]) | (int(bytes[1]) << 8)
}

//
func (b *Block) SetInt(key string, val int) {
	bytes := b.GetSlice(key)
	if len(bytes) == 2 {
		bytes[0] = byte(val)
		bytes[1] = byte(val >> 8)
	}
}
