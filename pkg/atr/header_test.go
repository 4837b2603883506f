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
	"testing"
)

// testImage creates a raw image of length bytes following a header with the
// given fields
func testImage(sectorSize int, paragraphs uint32, wp byte, length int) []byte {
	data := make([]byte, length)
	data[0] = 0x96
	data[1] = 0x02
	data[2] = byte(paragraphs)
	data[3] = byte(paragraphs >> 8)
	data[4] = byte(sectorSize)
	data[5] = byte(sectorSize >> 8)
	data[6] = byte(paragraphs >> 16)
	data[7] = byte(paragraphs >> 24)
	data[15] = wp
	return data
}

func TestDecodeHeader(t *testing.T) {

	data := testImage(256, 0x012345, 1, HeaderLength)
	data[9] = 0xaa // reserved

	h, err := DecodeHeader(data)
	if err != nil {
		t.Fatalf("DecodeHeader() failed: %v", err)
	}

	if got := h.Signature(); got != Signature {
		t.Errorf("Signature() = %#x, want %#x", got, Signature)
	}
	if got := h.Paragraphs(); got != 0x012345 {
		t.Errorf("Paragraphs() = %#x, want %#x", got, 0x012345)
	}
	if got := h.SectorSizeField(); got != 256 {
		t.Errorf("SectorSizeField() = %d, want 256", got)
	}
	if !h.WriteProtected() {
		t.Errorf("WriteProtected() = false, want true")
	}
	if !bytes.Equal(h.Bytes(), data) {
		t.Errorf("Bytes() = % x, want % x", h.Bytes(), data)
	}

	data[4] = 0 // header must not alias input
	if h.SectorSizeField() != 256 {
		t.Errorf("header aliases input data")
	}
}

func TestDecodeHeaderErrors(t *testing.T) {

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"empty", []byte{}, ErrTruncatedHeader},
		{"short", []byte{0x96, 0x02, 0, 0}, ErrTruncatedHeader},
		{"zero", make([]byte, HeaderLength), ErrInvalidSignature},
		{"swapped", append([]byte{0x02, 0x96}, make([]byte, 14)...),
			ErrInvalidSignature},
		{"low byte only", append([]byte{0x96, 0x00}, make([]byte, 14)...),
			ErrInvalidSignature},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeHeader(tt.data); !errors.Is(err, tt.want) {
				t.Errorf("DecodeHeader() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestEncodeHeader(t *testing.T) {

	h := EncodeHeader(256, 0x00031234)
	want := []byte{0x96, 0x02, 0x34, 0x12, 0x00, 0x01, 0x03, 0x00,
		0, 0, 0, 0, 0, 0, 0, 0}

	if !bytes.Equal(h.Bytes(), want) {
		t.Errorf("EncodeHeader() = % x, want % x", h.Bytes(), want)
	}
	if err := h.Validate(); err != nil {
		t.Errorf("Validate() failed on encoded header: %v", err)
	}
	if h.Paragraphs() != 0x00031234 {
		t.Errorf("Paragraphs() = %#x, want %#x", h.Paragraphs(), 0x00031234)
	}
}
