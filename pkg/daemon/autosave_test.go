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

package daemon

import (
	"bytes"
	"testing"

	"github.com/spf13/afero"

	"github.com/xelalexv/atrdrive/pkg/disk"
)

func TestAutoSaveRoundTrip(t *testing.T) {

	fs := afero.NewMemMapFs()
	saver := NewAutoSaver(fs, "/home/atari/.atrdrive")

	dr := disk.NewDrive()
	if err := dr.Import(blankImage(t, 128, 720), "/disks/dos.atr"); err != nil {
		t.Fatal(err)
	}

	// unmodified images are not saved
	if err := saver.Save(3, dr); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	if exists, _ := afero.Exists(fs, "/home/atari/.atrdrive/3/image"); exists {
		t.Fatalf("unmodified image was auto-saved")
	}

	sector := bytes.Repeat([]byte{0xa5}, 128)
	if err := dr.WriteSector(42, sector); err != nil {
		t.Fatal(err)
	}
	if err := saver.Save(3, dr); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	if !dr.IsAutoSaved() {
		t.Errorf("IsAutoSaved() = false after Save()")
	}

	restored := disk.NewDrive()
	if err := saver.Load(3, restored); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if !restored.IsLoaded() || !restored.IsModified() {
		t.Errorf("restored drive: loaded %v, modified %v",
			restored.IsLoaded(), restored.IsModified())
	}
	if restored.Name() != "dos.atr" {
		t.Errorf("Name() = %q, want %q", restored.Name(), "dos.atr")
	}
	if got, _ := restored.ReadSector(42); !bytes.Equal(got, sector) {
		t.Errorf("restored image lacks modified sector")
	}

	if err := saver.Remove(3); err != nil {
		t.Fatalf("Remove() failed: %v", err)
	}
	if err := saver.Remove(3); err != nil {
		t.Errorf("second Remove() failed: %v", err)
	}

	empty := disk.NewDrive()
	if err := saver.Load(3, empty); err != nil {
		t.Errorf("Load() without auto-save failed: %v", err)
	}
	if empty.HasImage() {
		t.Errorf("drive has image without auto-save")
	}
}

func TestAutoSaveCorrupt(t *testing.T) {
	fs := afero.NewMemMapFs()
	afero.WriteFile(fs, "/as/1/image", []byte{3, 0, 99, 1, 0}, 0644)
	if err := NewAutoSaver(fs, "/as").Load(1, disk.NewDrive()); err == nil {
		t.Errorf("Load() of incompatible auto-save succeeded")
	}
}

func TestNilAutoSaver(t *testing.T) {
	var saver *AutoSaver
	dr := disk.NewDrive()
	if err := saver.Save(1, dr); err != nil {
		t.Errorf("Save() = %v", err)
	}
	if err := saver.Load(1, dr); err != nil {
		t.Errorf("Load() = %v", err)
	}
	if err := saver.Remove(1); err != nil {
		t.Errorf("Remove() = %v", err)
	}
}
