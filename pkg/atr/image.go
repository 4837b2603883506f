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
	"encoding/hex"
	"fmt"
	"io"
	"path/filepath"

	log "github.com/sirupsen/logrus"
)

// Image is an ATR disk image held in memory. It is not safe for concurrent
// use; callers need to serialize access.
type Image struct {
	data   []byte
	header *Header
	geo    Geometry
	status DriveStatus
	source string
}

// NewImage creates an image in drive status off
func NewImage() *Image {
	return &Image{status: StatusOff}
}

/*
	Load parses data as an ATR image. Any previously held image is discarded
	first, so after a failed load the image is in drive status no disk. The
	image keeps its own copy of data. source is the path the data came from,
	if any.
*/
func (i *Image) Load(data []byte, source string) error {

	i.Unload()

	h, err := DecodeHeader(data)
	if err != nil {
		return &LoadError{Source: source, Cause: err}
	}

	buf := make([]byte, len(data))
	copy(buf, data)

	geo := ResolveGeometry(h, buf)

	i.data = buf
	i.header = h
	i.geo = geo
	i.status = geo.Status
	i.source = source

	log.WithFields(log.Fields{
		"source": source,
		"bytes":  len(buf),
	}).Debug("image loaded")

	return nil
}

// Unload discards the image and puts the drive into status no disk.
func (i *Image) Unload() {
	i.data = nil
	i.header = nil
	i.geo = Geometry{}
	i.source = ""
	i.status = StatusNoDisk
}

/*
	Format replaces the image with a blank one of sectorCount sectors of
	sectorSize bytes. The first three sectors are always 128 bytes. Geometry is
	derived from the newly written header, the same way as for loaded images.
*/
func (i *Image) Format(sectorSize, sectorCount int) error {

	if sectorSize != SingleDensity && sectorSize != DoubleDensity {
		return fmt.Errorf("%w: sector size %d", ErrUnsupportedGeometry, sectorSize)
	}
	if sectorCount < 1 || sectorCount > MaxSectorCount {
		return fmt.Errorf("%w: sector count %d", ErrUnsupportedGeometry, sectorCount)
	}

	boot := sectorCount
	if boot > BootSectorCount {
		boot = BootSectorCount
	}

	size := BootSectorSize*boot + sectorSize*(sectorCount-boot)
	h := EncodeHeader(sectorSize, uint32(size>>4))

	buf := make([]byte, HeaderLength+size)
	copy(buf, h.block.Data)

	geo := ResolveGeometry(h, buf)
	geo.BootSectors = BootLogical

	i.data = buf
	i.header = h
	i.geo = geo
	i.status = geo.Status
	i.source = ""

	log.WithFields(log.Fields{
		"size":  sectorSize,
		"count": sectorCount,
	}).Debug("image formatted")

	return nil
}

// ReadSector returns a copy of the contents of sector n.
func (i *Image) ReadSector(n int) ([]byte, error) {

	r, err := i.sectorRange(n, i.geo.ReadRange)
	if err != nil {
		return nil, err
	}

	ret := make([]byte, r.Len())
	copy(ret, i.data[r.Start:r.End])
	return ret, nil
}

// WriteSector writes data to sector n. Data beyond the sector's length is
// ignored, shorter data only overwrites the start of the sector.
func (i *Image) WriteSector(n int, data []byte) error {

	r, err := i.sectorRange(n, i.geo.WriteRange)
	if err != nil {
		return err
	}

	copy(i.data[r.Start:r.End], data)
	return nil
}

//
func (i *Image) sectorRange(n int, tr func(int) (Range, error)) (Range, error) {

	if i.data == nil {
		return Range{}, ErrNoDisk
	}

	r, err := tr(n)
	if err != nil {
		return r, err
	}

	if r.Start < 0 || r.End > len(i.data) {
		return r, fmt.Errorf("%w: sector %d ends at %d, image size %d",
			ErrSectorOutOfRange, n, r.End, len(i.data))
	}

	return r, nil
}

// Export returns a copy of the complete image, header included.
func (i *Image) Export() []byte {
	if i.data == nil {
		return nil
	}
	ret := make([]byte, len(i.data))
	copy(ret, i.data)
	return ret
}

// SectorSize returns the size of sectors 4 and up
func (i *Image) SectorSize() int {
	return i.geo.SectorSize
}

// SectorSizeOf returns the size of sector n
func (i *Image) SectorSizeOf(n int) int {
	if 0 < n && isBootSector(n) {
		return BootSectorSize
	}
	return i.geo.SectorSize
}

//
func (i *Image) SectorCount() int {
	return i.geo.SectorCount
}

//
func (i *Image) BootSectors() BootSectors {
	return i.geo.BootSectors
}

//
func (i *Image) Status() DriveStatus {
	return i.status
}

//
func (i *Image) IsReadOnly() bool {
	return i.status == StatusReadOnly
}

// Header returns the image's header, or nil if there is no image
func (i *Image) Header() *Header {
	return i.header
}

//
func (i *Image) Source() string {
	return i.source
}

// SourceName returns the base name of the file the image was loaded from, or
// an empty string if it was not loaded from a file.
func (i *Image) SourceName() string {
	if i.source == "" {
		return ""
	}
	return filepath.Base(i.source)
}

//
func (i *Image) Emit(w io.Writer) {

	io.WriteString(w, fmt.Sprintf(
		"\nIMAGE: %q - status: %s\n", i.SourceName(), i.status))

	if i.header == nil {
		return
	}

	i.header.Emit(w)
	io.WriteString(w, fmt.Sprintf(
		"\nGEOMETRY: sectors: %d, sector size: %d, boot sectors: %s\n",
		i.geo.SectorCount, i.geo.SectorSize, i.geo.BootSectors))
}

//
func (i *Image) EmitSector(n int, w io.Writer) error {

	data, err := i.ReadSector(n)
	if err != nil {
		return err
	}

	io.WriteString(w, fmt.Sprintf("\nSECTOR: %d - length: %d\n", n, len(data)))
	d := hex.Dumper(w)
	defer d.Close()
	_, err = d.Write(data)
	return err
}
