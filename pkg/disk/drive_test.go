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
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/spf13/afero"

	"github.com/xelalexv/atrdrive/pkg/atr"
)

func blankATR(t *testing.T, size, count int) []byte {
	t.Helper()
	img := atr.NewImage()
	if err := img.Format(size, count); err != nil {
		t.Fatalf("Format() failed: %v", err)
	}
	return img.Export()
}

func TestFormatForFile(t *testing.T) {

	tests := []struct {
		file    string
		want    Format
		wantErr bool
	}{
		{"game.atr", ATR, false},
		{"GAME.ATR", ATR, false},
		{"/some/where/dos.Atr", ATR, false},
		{"game.xfd", UNKNOWN, true},
		{"game", UNKNOWN, true},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			got, err := FormatForFile(tt.file)
			if (err != nil) != tt.wantErr {
				t.Errorf("FormatForFile() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if err != nil && !errors.Is(err, ErrUnsupportedFormat) {
				t.Errorf("FormatForFile() error = %v, want %v", err, ErrUnsupportedFormat)
			}
			if got != tt.want {
				t.Errorf("FormatForFile() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestEmptyDrive(t *testing.T) {

	d := NewDrive()

	if d.HasImage() || d.IsLoaded() {
		t.Errorf("new drive reports image")
	}
	if err := d.Unload(); !errors.Is(err, ErrNoImage) {
		t.Errorf("Unload() error = %v, want %v", err, ErrNoImage)
	}
	if _, err := d.ReadSector(1); !errors.Is(err, ErrNoImage) {
		t.Errorf("ReadSector() error = %v, want %v", err, ErrNoImage)
	}
	if err := d.WriteSector(1, []byte{1}); !errors.Is(err, ErrNoImage) {
		t.Errorf("WriteSector() error = %v, want %v", err, ErrNoImage)
	}
	if err := d.FormatImage(128, 720); !errors.Is(err, ErrNoImage) {
		t.Errorf("FormatImage() error = %v, want %v", err, ErrNoImage)
	}
	if _, err := d.StatusBytes(); !errors.Is(err, ErrNoImage) {
		t.Errorf("StatusBytes() error = %v, want %v", err, ErrNoImage)
	}
	if d.IsReadOnly() {
		t.Errorf("IsReadOnly() = true for empty drive")
	}
}

func TestLoadSave(t *testing.T) {

	fs := afero.NewMemMapFs()
	data := blankATR(t, 256, 720)
	if err := afero.WriteFile(fs, "/disks/dos.atr", data, 0644); err != nil {
		t.Fatal(err)
	}

	d := NewDrive()
	if err := d.Load(fs, "/disks/dos.atr"); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if d.Format() != ATR {
		t.Errorf("Format() = %s, want %s", d.Format(), ATR)
	}
	if d.Name() != "dos.atr" {
		t.Errorf("Name() = %q, want %q", d.Name(), "dos.atr")
	}
	if count, _ := d.SectorCount(); count != 720 {
		t.Errorf("SectorCount() = %d, want 720", count)
	}
	if size, _ := d.SectorSize(2); size != 128 {
		t.Errorf("SectorSize(2) = %d, want 128", size)
	}

	sector := bytes.Repeat([]byte{0x42}, 256)
	if err := d.WriteSector(100, sector); err != nil {
		t.Fatalf("WriteSector() failed: %v", err)
	}
	if !d.IsModified() {
		t.Errorf("IsModified() = false after write")
	}

	if err := d.Save(fs, ""); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	if d.IsModified() {
		t.Errorf("IsModified() = true after save")
	}

	saved, err := afero.ReadFile(fs, "/disks/dos.atr")
	if err != nil {
		t.Fatal(err)
	}
	if exists, _ := afero.Exists(fs, "/disks/dos.atr_"); exists {
		t.Errorf("temporary file left behind")
	}

	other := NewDrive()
	if err := other.Import(saved, "copy.atr"); err != nil {
		t.Fatalf("Import() failed: %v", err)
	}
	if got, _ := other.ReadSector(100); !bytes.Equal(got, sector) {
		t.Errorf("saved image lacks written sector")
	}
}

func TestLoadErrors(t *testing.T) {

	fs := afero.NewMemMapFs()
	afero.WriteFile(fs, "bad.atr", make([]byte, 1024), 0644)
	afero.WriteFile(fs, "good.xfd", blankATR(t, 128, 720), 0644)

	d := NewDrive()

	var le *atr.LoadError
	if err := d.Load(fs, "missing.atr"); !errors.As(err, &le) {
		t.Errorf("Load() of missing file: error = %v, want LoadError", err)
	}
	if err := d.Load(fs, "bad.atr"); !errors.Is(err, atr.ErrInvalidSignature) {
		t.Errorf("Load() of bad image: error = %v, want %v",
			err, atr.ErrInvalidSignature)
	}
	if err := d.Load(fs, "good.xfd"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Load() of unknown format: error = %v, want %v",
			err, ErrUnsupportedFormat)
	}
	if d.IsLoaded() {
		t.Errorf("drive has image loaded after failed loads")
	}
}

func TestFailedLoadDiscardsPresentImage(t *testing.T) {

	d := NewDrive()
	if err := d.Create(ATR, 128, 720); err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	if err := d.Import(make([]byte, 64), "bad.atr"); err == nil {
		t.Fatalf("Import() of bad image succeeded")
	}
	if d.IsLoaded() || d.IsModified() {
		t.Errorf("failed import kept present image")
	}
	if status, _ := d.StatusBytes(); status[1] != atr.HardwareNoDisk {
		t.Errorf("status after failed import = %v, want no disk", status)
	}
}

func TestUnloadKeepsEngine(t *testing.T) {

	d := NewDrive()
	if err := d.Create(ATR, 128, 720); err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if !d.IsModified() {
		t.Errorf("IsModified() = false for created image")
	}

	if err := d.Unload(); err != nil {
		t.Fatalf("Unload() failed: %v", err)
	}
	if !d.HasImage() || d.IsLoaded() {
		t.Errorf("after Unload(): HasImage() = %v, IsLoaded() = %v",
			d.HasImage(), d.IsLoaded())
	}

	status, err := d.StatusBytes()
	if err != nil {
		t.Fatalf("StatusBytes() failed: %v", err)
	}
	if status == nil || status[1] != atr.HardwareNoDisk {
		t.Errorf("StatusBytes() after unload = %v, want no disk status", status)
	}
	if _, err := d.ReadSector(1); !errors.Is(err, atr.ErrNoDisk) {
		t.Errorf("ReadSector() after unload: error = %v, want %v",
			err, atr.ErrNoDisk)
	}
}

func TestSaveWithoutSource(t *testing.T) {
	d := NewDrive()
	if err := d.Create(ATR, 128, 720); err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if err := d.Save(afero.NewMemMapFs(), ""); err == nil {
		t.Errorf("Save() without path succeeded for image without source")
	}
}

func TestDriveLock(t *testing.T) {

	d := NewDrive()

	if !d.Lock(context.Background()) {
		t.Fatalf("Lock() on free drive failed")
	}
	if !d.IsLocked() {
		t.Errorf("IsLocked() = false after Lock()")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if d.Lock(ctx) {
		t.Errorf("second Lock() succeeded")
	}

	d.Unlock()
	d.Unlock()
	if d.IsLocked() {
		t.Errorf("IsLocked() = true after Unlock()")
	}
}

func TestDump(t *testing.T) {

	d := NewDrive()
	if err := d.Dump(&bytes.Buffer{}); !errors.Is(err, ErrNoImage) {
		t.Errorf("Dump() error = %v, want %v", err, ErrNoImage)
	}

	if err := d.Create(ATR, 128, 10); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := d.Dump(&buf); err != nil {
		t.Fatalf("Dump() failed: %v", err)
	}
	if got := bytes.Count(buf.Bytes(), []byte("SECTOR:")); got != 10 {
		t.Errorf("Dump() emitted %d sectors, want 10", got)
	}
	if !bytes.Contains(buf.Bytes(), []byte("GEOMETRY:")) {
		t.Errorf("Dump() lacks geometry")
	}
}
