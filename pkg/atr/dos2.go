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
	"io"
	"strings"

	"github.com/xelalexv/atrdrive/pkg/raw"
)

// location of the Atari DOS 2 directory
const DirectoryStart = 361
const DirectoryEnd = 368

const dirEntryLength = 16
const dirEntriesPerSector = 8

// directory entry flags
const (
	DirFlagOpen    = 0x01
	DirFlagDOS2    = 0x02
	DirFlagLocked  = 0x20
	DirFlagInUse   = 0x40
	DirFlagDeleted = 0x80
)

//
var dirEntryIndex = raw.Index{
	"flags":     {0, 1},
	"count":     {1, 2},
	"start":     {3, 2},
	"name":      {5, 8},
	"extension": {13, 3},
}

// SectorReader reads single sectors from a disk
type SectorReader interface {
	ReadSector(n int) ([]byte, error)
}

// DirEntry is a file entry in a DOS 2 directory
type DirEntry struct {
	Name    string
	Flags   byte
	Sectors int
	Start   int
}

//
func (e *DirEntry) IsLocked() bool {
	return e.Flags&DirFlagLocked != 0
}

//
func (e *DirEntry) String() string {
	lock := ' '
	if e.IsLocked() {
		lock = '*'
	}
	return fmt.Sprintf("%c %-12s %03d", lock, e.Name, e.Sectors)
}

/*
	ReadDirectory reads the DOS 2 directory from sectors 361 through 368.
	Deleted entries are skipped, and reading stops at the first entry that
	has never been used.
*/
func ReadDirectory(r SectorReader) ([]*DirEntry, error) {

	var ret []*DirEntry

	for sec := DirectoryStart; sec <= DirectoryEnd; sec++ {

		data, err := r.ReadSector(sec)
		if err != nil {
			return nil, fmt.Errorf("error reading directory sector %d: %w", sec, err)
		}

		for ix := 0; ix < dirEntriesPerSector; ix++ {

			start := ix * dirEntryLength
			if start+dirEntryLength > len(data) {
				break
			}

			b := raw.NewBlock(dirEntryIndex, data[start:start+dirEntryLength])
			flags := b.GetByte("flags")

			if flags == 0 {
				return ret, nil
			}
			if flags&DirFlagDeleted != 0 || flags&DirFlagInUse == 0 {
				continue
			}

			ret = append(ret, &DirEntry{
				Name:    entryName(b),
				Flags:   flags,
				Sectors: b.GetInt("count"),
				Start:   b.GetInt("start"),
			})
		}
	}

	return ret, nil
}

//
func entryName(b *raw.Block) string {
	name := strings.TrimRight(string(b.GetSlice("name")), " ")
	ext := strings.TrimRight(string(b.GetSlice("extension")), " ")
	if ext == "" {
		return name
	}
	return name + "." + ext
}

// List writes a directory listing of the DOS 2 disk in r to w.
func List(r SectorReader, w io.Writer) error {

	entries, err := ReadDirectory(r)
	if err != nil {
		return err
	}

	io.WriteString(w, "\n")
	for _, e := range entries {
		io.WriteString(w, e.String()+"\n")
	}
	io.WriteString(w, fmt.Sprintf("\n%d files\n", len(entries)))

	return nil
}
