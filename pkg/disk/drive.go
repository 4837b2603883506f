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
	"context"
	"errors"
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/xelalexv/atrdrive/pkg/atr"
)

//
var ErrNoImage = errors.New("no disk image")

/*
	Drive holds an optional disk image, along with the format of that image.
	All image operations on a drive without image fail with ErrNoImage. A drive
	does not synchronize access by itself. Callers sharing a drive need to use
	Lock and Unlock.
*/
type Drive struct {
	//
	image  Image
	format Format
	//
	modified  bool
	autosaved bool
	//
	lock chan bool
}

//
func NewDrive() *Drive {
	return &Drive{lock: make(chan bool, 1)}
}

//
func (d *Drive) Lock(ctx context.Context) bool {
	select {
	case d.lock <- true:
		log.Trace("drive locked")
		return true
	case <-ctx.Done():
		log.Debug("drive lock timed out")
		return false
	}
}

//
func (d *Drive) Unlock() {
	select {
	case <-d.lock:
		log.Trace("drive unlocked")
	default:
		log.Debug("drive was already unlocked")
	}
}

//
func (d *Drive) IsLocked() bool {
	return len(d.lock) > 0
}

// Load loads the image file at path from fs. The image format is determined
// by the file's extension.
func (d *Drive) Load(fs afero.Fs, path string) error {

	data, err := ReadAll(fs, path)
	if err != nil {
		return &atr.LoadError{Source: path, Cause: err}
	}

	return d.Import(data, path)
}

// Import loads an image from data. name is used for determining the image
// format, and is reported as the image's source. If loading fails, any image
// previously held by the drive is gone, and the drive reports no disk.
func (d *Drive) Import(data []byte, name string) error {

	f, err := FormatForFile(name)
	if err != nil {
		return err
	}

	return d.ImportFormat(f, data, name)
}

// ImportFormat loads an image of format f from data, reporting source as the
// image's source.
func (d *Drive) ImportFormat(f Format, data []byte, source string) error {

	img, err := f.NewImage()
	if err != nil {
		return err
	}

	err = img.Load(data, source)
	d.setImage(img, f)
	return err
}

// Create puts a freshly formatted image of format f into the drive.
func (d *Drive) Create(f Format, sectorSize, sectorCount int) error {

	img, err := f.NewImage()
	if err != nil {
		return err
	}

	if err := img.Format(sectorSize, sectorCount); err != nil {
		return err
	}

	d.setImage(img, f)
	d.modified = true
	return nil
}

//
func (d *Drive) setImage(img Image, f Format) {
	d.image = img
	d.format = f
	d.modified = false
	d.autosaved = false
}

// Save writes the image to path in fs. If path is empty, the image's source
// is used.
func (d *Drive) Save(fs afero.Fs, path string) error {

	if d.image == nil {
		return ErrNoImage
	}

	if path == "" {
		if path = d.image.Source(); path == "" {
			return fmt.Errorf("no path given and image has no source")
		}
	}

	if err := WriteAll(fs, path, d.image.Export()); err != nil {
		return err
	}

	d.modified = false
	return nil
}

// Unload unloads the image. The drive keeps the image engine, which then
// reports no disk.
func (d *Drive) Unload() error {
	if d.image == nil {
		return ErrNoImage
	}
	d.image.Unload()
	d.modified = false
	d.autosaved = false
	return nil
}

//
func (d *Drive) HasImage() bool {
	return d.image != nil
}

// IsLoaded returns whether there is an image with data in the drive
func (d *Drive) IsLoaded() bool {
	if d.image == nil {
		return false
	}
	s := d.image.Status()
	return s == atr.StatusReadOnly || s == atr.StatusReadWrite
}

//
func (d *Drive) Image() (Image, error) {
	if d.image == nil {
		return nil, ErrNoImage
	}
	return d.image, nil
}

//
func (d *Drive) Format() Format {
	return d.format
}

// FormatImage reformats the image in the drive.
func (d *Drive) FormatImage(sectorSize, sectorCount int) error {
	if d.image == nil {
		return ErrNoImage
	}
	if err := d.image.Format(sectorSize, sectorCount); err != nil {
		return err
	}
	d.SetModified(true)
	return nil
}

//
func (d *Drive) ReadSector(n int) ([]byte, error) {
	if d.image == nil {
		return nil, ErrNoImage
	}
	return d.image.ReadSector(n)
}

//
func (d *Drive) WriteSector(n int, data []byte) error {
	if d.image == nil {
		return ErrNoImage
	}
	if err := d.image.WriteSector(n, data); err != nil {
		return err
	}
	d.SetModified(true)
	return nil
}

//
func (d *Drive) Export() ([]byte, error) {
	if d.image == nil {
		return nil, ErrNoImage
	}
	return d.image.Export(), nil
}

//
func (d *Drive) StatusBytes() ([]byte, error) {
	if d.image == nil {
		return nil, ErrNoImage
	}
	return d.image.StatusBytes(), nil
}

//
func (d *Drive) SectorSize(n int) (int, error) {
	if d.image == nil {
		return 0, ErrNoImage
	}
	return d.image.SectorSizeOf(n), nil
}

//
func (d *Drive) SectorCount() (int, error) {
	if d.image == nil {
		return 0, ErrNoImage
	}
	return d.image.SectorCount(), nil
}

//
func (d *Drive) IsReadOnly() bool {
	return d.image != nil && d.image.IsReadOnly()
}

//
func (d *Drive) Name() string {
	if d.image == nil {
		return ""
	}
	return d.image.SourceName()
}

//
func (d *Drive) IsModified() bool {
	return d.modified
}

//
func (d *Drive) SetModified(m bool) {
	d.modified = m
	if m {
		d.autosaved = false
	}
}

//
func (d *Drive) IsAutoSaved() bool {
	return d.autosaved
}

//
func (d *Drive) SetAutoSaved(a bool) {
	d.autosaved = a
}

//
func (d *Drive) Emit(w io.Writer) error {
	if d.image == nil {
		return ErrNoImage
	}
	d.image.Emit(w)
	return nil
}

//
func (d *Drive) EmitSector(n int, w io.Writer) error {
	if d.image == nil {
		return ErrNoImage
	}
	return d.image.EmitSector(n, w)
}

// Dump writes image info followed by a hex dump of every sector to w.
func (d *Drive) Dump(w io.Writer) error {
	if err := d.Emit(w); err != nil {
		return err
	}
	for n := 1; n <= d.image.SectorCount(); n++ {
		if err := d.image.EmitSector(n, w); err != nil {
			return err
		}
	}
	return nil
}

// List writes the DOS directory of the disk in this drive to w.
func (d *Drive) List(w io.Writer) error {
	if d.image == nil {
		return ErrNoImage
	}
	return atr.List(d.image, w)
}
