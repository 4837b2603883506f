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
	"bytes"
	"errors"
	"strings"
	"testing"
)

func formatted(t *testing.T, size, count int) *Image {
	t.Helper()
	img := NewImage()
	if err := img.Format(size, count); err != nil {
		t.Fatalf("Format(%d, %d) failed: %v", size, count, err)
	}
	return img
}

func TestFormatSingleDensity(t *testing.T) {

	img := formatted(t, 128, 720)

	if img.SectorCount() != 720 {
		t.Errorf("SectorCount() = %d, want 720", img.SectorCount())
	}
	if img.SectorSize() != 128 {
		t.Errorf("SectorSize() = %d, want 128", img.SectorSize())
	}
	if img.IsReadOnly() {
		t.Errorf("IsReadOnly() = true, want false")
	}
	if img.Status() != StatusReadWrite {
		t.Errorf("Status() = %s, want %s", img.Status(), StatusReadWrite)
	}
	if got := len(img.Export()); got != HeaderLength+720*128 {
		t.Errorf("image length = %d, want %d", got, HeaderLength+720*128)
	}
}

func TestFormatEnhancedDoubleDensityStatus(t *testing.T) {

	img := formatted(t, 256, 1040)

	if img.SectorCount() != 1040 {
		t.Errorf("SectorCount() = %d, want 1040", img.SectorCount())
	}

	status := img.StatusBytes()
	if len(status) != 4 {
		t.Fatalf("StatusBytes() = %v, want four bytes", status)
	}
	if status[0]&StatusBitEnhanced == 0 || status[0]&StatusBitDouble == 0 {
		t.Errorf("command status %08b lacks enhanced and double density bits",
			status[0])
	}
	if status[0]&StatusBitActive == 0 {
		t.Errorf("command status %08b lacks drive active bit", status[0])
	}
}

func TestFormatErrors(t *testing.T) {
	img := NewImage()
	for _, args := range [][2]int{{512, 720}, {0, 720}, {128, 0}, {256, -1},
		{128, MaxSectorCount + 1}, {256, 1 << 28}} {
		if err := img.Format(args[0], args[1]); !errors.Is(err, ErrUnsupportedGeometry) {
			t.Errorf("Format(%d, %d) error = %v, want %v",
				args[0], args[1], err, ErrUnsupportedGeometry)
		}
	}
	if img.Status() != StatusOff {
		t.Errorf("failed format changed status to %s", img.Status())
	}
}

func TestFormatRoundTrip(t *testing.T) {

	for _, size := range []int{128, 256} {
		for _, count := range []int{4, 5, 360, 720, 1040} {

			img := formatted(t, size, count)

			reloaded := NewImage()
			if err := reloaded.Load(img.Export(), ""); err != nil {
				t.Fatalf("Load() of formatted image failed: %v", err)
			}

			if reloaded.SectorSize() != size {
				t.Errorf("size %d, count %d: SectorSize() = %d",
					size, count, reloaded.SectorSize())
			}
			if reloaded.SectorCount() != count {
				t.Errorf("size %d, count %d: SectorCount() = %d",
					size, count, reloaded.SectorCount())
			}
			if reloaded.BootSectors() != BootLogical {
				t.Errorf("size %d, count %d: BootSectors() = %s",
					size, count, reloaded.BootSectors())
			}
		}
	}
}

func TestLoadWriteProtected(t *testing.T) {

	img := NewImage()
	if err := img.Load(testImage(128, 720*8, 1, 16+720*128), ""); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if !img.IsReadOnly() {
		t.Errorf("IsReadOnly() = false, want true")
	}
	if img.StatusBytes()[0]&StatusBitWriteProtect == 0 {
		t.Errorf("command status lacks write protect bit")
	}
}

func TestLoadInvalidSignature(t *testing.T) {

	img := formatted(t, 128, 720)

	for _, sig := range [][2]byte{{0, 0}, {0x02, 0x96}, {0x96, 0x03}, {0xff, 0x02}} {

		data := testImage(128, 720*8, 0, 16+720*128)
		data[0], data[1] = sig[0], sig[1]

		err := img.Load(data, "bad.atr")

		if !errors.Is(err, ErrInvalidSignature) {
			t.Errorf("Load() with signature % x: error = %v, want %v",
				sig, err, ErrInvalidSignature)
		}
		var le *LoadError
		if !errors.As(err, &le) || le.Source != "bad.atr" {
			t.Errorf("Load() error %v is not a LoadError for bad.atr", err)
		}
		if img.Status() != StatusNoDisk {
			t.Errorf("Status() after failed load = %s, want %s",
				img.Status(), StatusNoDisk)
		}
		if img.SectorCount() != 0 || img.Source() != "" {
			t.Errorf("failed load left state behind")
		}
		if _, err := img.ReadSector(1); !errors.Is(err, ErrNoDisk) {
			t.Errorf("ReadSector() after failed load: error = %v, want %v",
				err, ErrNoDisk)
		}
	}
}

func TestLoadTruncated(t *testing.T) {
	img := NewImage()
	err := img.Load([]byte{0x96, 0x02, 0x80}, "")
	if !errors.Is(err, ErrTruncatedHeader) {
		t.Errorf("Load() error = %v, want %v", err, ErrTruncatedHeader)
	}
	if img.Status() != StatusNoDisk {
		t.Errorf("Status() = %s, want %s", img.Status(), StatusNoDisk)
	}
}

func TestLoadKeepsReservedBytes(t *testing.T) {

	data := testImage(128, 720*8, 0, 16+720*128)
	data[8], data[14] = 0x11, 0x22

	img := NewImage()
	if err := img.Load(data, ""); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if !bytes.Equal(img.Export(), data) {
		t.Errorf("exported image differs from loaded data")
	}
	if !bytes.Equal(img.Header().Bytes(), data[:16]) {
		t.Errorf("Header().Bytes() = % x, want % x", img.Header().Bytes(), data[:16])
	}
}

func TestStatusOffAndNoDisk(t *testing.T) {

	img := NewImage()
	if s := img.StatusBytes(); s != nil {
		t.Errorf("StatusBytes() for drive off = %v, want nil", s)
	}

	if err := img.Load(testImage(128, 720*8, 0, 16+720*128), ""); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if s := img.StatusBytes(); s[1] != HardwareReady {
		t.Errorf("hardware status with disk = %d, want %d", s[1], HardwareReady)
	}

	img.Unload()

	s := img.StatusBytes()
	if s == nil {
		t.Fatalf("StatusBytes() after unload = nil, want status")
	}
	if s[1] != HardwareNoDisk {
		t.Errorf("hardware status after unload = %d, want %d", s[1], HardwareNoDisk)
	}
	if s[2] != 1 || s[3] != 0 {
		t.Errorf("timeout bytes = %d %d, want 1 0", s[2], s[3])
	}
	if img.IsReadOnly() {
		t.Errorf("IsReadOnly() = true for no disk")
	}
}

func TestExportDoesNotAlias(t *testing.T) {

	img := formatted(t, 256, 720)
	if err := img.WriteSector(10, bytes.Repeat([]byte{0x55}, 256)); err != nil {
		t.Fatalf("WriteSector() failed: %v", err)
	}

	exported := img.Export()
	for ix := range exported {
		exported[ix] = 0xee
	}

	got, err := img.ReadSector(10)
	if err != nil {
		t.Fatalf("ReadSector() failed: %v", err)
	}
	if !bytes.Equal(got, bytes.Repeat([]byte{0x55}, 256)) {
		t.Errorf("mutating export changed image")
	}

	got[0] = 0 // neither does the result of a read
	if again, _ := img.ReadSector(10); again[0] != 0x55 {
		t.Errorf("mutating read sector changed image")
	}
}

func TestLoadDoesNotAlias(t *testing.T) {

	data := testImage(128, 720*8, 0, 16+720*128)
	img := NewImage()
	if err := img.Load(data, ""); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	data[100] = 0xff
	if got, _ := img.ReadSector(1); got[100-16] != 0 {
		t.Errorf("mutating loaded data changed image")
	}
}

func TestReadWriteSector(t *testing.T) {

	for _, size := range []int{128, 256} {

		img := formatted(t, size, 720)

		for _, n := range []int{1, 3, 4, 360, 720} {

			want := bytes.Repeat([]byte{byte(n)}, img.SectorSizeOf(n))
			if err := img.WriteSector(n, want); err != nil {
				t.Fatalf("WriteSector(%d) failed: %v", n, err)
			}

			got, err := img.ReadSector(n)
			if err != nil {
				t.Fatalf("ReadSector(%d) failed: %v", n, err)
			}
			if !bytes.Equal(got, want) {
				t.Errorf("size %d: sector %d read back differs", size, n)
			}
		}
	}
}

func TestWriteSectorTruncates(t *testing.T) {

	img := formatted(t, 128, 720)

	if err := img.WriteSector(5, bytes.Repeat([]byte{1}, 300)); err != nil {
		t.Fatalf("WriteSector() failed: %v", err)
	}
	if got, _ := img.ReadSector(6); got[0] != 0 {
		t.Errorf("write spilled over into next sector")
	}

	if err := img.WriteSector(7, []byte{9, 9}); err != nil {
		t.Fatalf("WriteSector() failed: %v", err)
	}
	got, _ := img.ReadSector(7)
	if got[0] != 9 || got[1] != 9 || got[2] != 0 {
		t.Errorf("short write produced % x", got[:4])
	}
}

func TestSectorOutOfRange(t *testing.T) {

	img := formatted(t, 128, 3)

	if _, err := img.ReadSector(4); !errors.Is(err, ErrSectorOutOfRange) {
		t.Errorf("ReadSector(4) error = %v, want %v", err, ErrSectorOutOfRange)
	}
	if err := img.WriteSector(4, []byte{1}); !errors.Is(err, ErrSectorOutOfRange) {
		t.Errorf("WriteSector(4) error = %v, want %v", err, ErrSectorOutOfRange)
	}
	if _, err := img.ReadSector(0); !errors.Is(err, ErrInvalidSector) {
		t.Errorf("ReadSector(0) error = %v, want %v", err, ErrInvalidSector)
	}
}

func TestHugeSectorNumber(t *testing.T) {

	img := formatted(t, 128, 720)
	if err := img.WriteSector(4, []byte{0xaa}); err != nil {
		t.Fatalf("WriteSector(4) failed: %v", err)
	}

	for _, n := range []int{721, MaxSectorCount + 1, 1 << 57, 1<<57 + 4} {
		if _, err := img.ReadSector(n); !errors.Is(err, ErrSectorOutOfRange) {
			t.Errorf("ReadSector(%d) error = %v, want %v", n, err, ErrSectorOutOfRange)
		}
		if err := img.WriteSector(n, []byte{0x55}); !errors.Is(err, ErrSectorOutOfRange) {
			t.Errorf("WriteSector(%d) error = %v, want %v", n, err, ErrSectorOutOfRange)
		}
	}

	if got, _ := img.ReadSector(4); got[0] != 0xaa {
		t.Errorf("sector 4 starts with %#02x, want 0xaa", got[0])
	}
}

func TestPhysicalLayoutWriteReadAsymmetry(t *testing.T) {

	// even number of 128 byte units and data in probe window make this a
	// physical boot sector layout image
	data := testImage(256, 720*16, 0, 16+720*256)
	data[0x190] = 1

	img := NewImage()
	if err := img.Load(data, ""); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if img.BootSectors() != BootPhysical {
		t.Fatalf("BootSectors() = %s, want %s", img.BootSectors(), BootPhysical)
	}

	pattern := bytes.Repeat([]byte{0xa5}, 128)
	if err := img.WriteSector(2, pattern); err != nil {
		t.Fatalf("WriteSector() failed: %v", err)
	}

	// sector 2 is written at 128 bytes into the payload, but read from 256
	got, _ := img.ReadSector(2)
	if bytes.Equal(got, pattern) {
		t.Errorf("boot sector 2 read back what was written; expected asymmetry")
	}
	if exp := img.Export(); !bytes.Equal(exp[16+128:16+256], pattern) {
		t.Errorf("boot sector 2 not written at logical offset")
	}
}

func TestSectorSizeOf(t *testing.T) {

	img := formatted(t, 256, 720)

	for n, want := range map[int]int{0: 256, 1: 128, 2: 128, 3: 128, 4: 256, 720: 256} {
		if got := img.SectorSizeOf(n); got != want {
			t.Errorf("SectorSizeOf(%d) = %d, want %d", n, got, want)
		}
	}
}

func TestSourceName(t *testing.T) {

	img := NewImage()
	if err := img.Load(testImage(128, 720*8, 0, 16+720*128),
		"/var/lib/disks/dos25.atr"); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if got := img.SourceName(); got != "dos25.atr" {
		t.Errorf("SourceName() = %q, want %q", got, "dos25.atr")
	}

	if err := img.Format(128, 720); err != nil {
		t.Fatalf("Format() failed: %v", err)
	}
	if got := img.SourceName(); got != "" {
		t.Errorf("SourceName() after format = %q, want empty", got)
	}
}

func TestEmit(t *testing.T) {

	img := formatted(t, 256, 720)

	var out strings.Builder
	img.Emit(&out)
	if !strings.Contains(out.String(), "sectors: 720, sector size: 256") {
		t.Errorf("Emit() output lacks geometry: %s", out.String())
	}

	out.Reset()
	if err := img.EmitSector(4, &out); err != nil {
		t.Fatalf("EmitSector() failed: %v", err)
	}
	if !strings.Contains(out.String(), "SECTOR: 4 - length: 256") {
		t.Errorf("EmitSector() output lacks sector info: %s", out.String())
	}
}
