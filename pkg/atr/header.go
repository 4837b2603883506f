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

	"github.com/xelalexv/atrdrive/pkg/raw"
)

//
var headerIndex = raw.Index{
	"signature":    {0, 2},
	"sizeLow":      {2, 2},
	"sectorSize":   {4, 2},
	"sizeHigh":     {6, 2},
	"reserved":     {8, 7},
	"writeProtect": {15, 1},
}

// Header is the 16 byte ATR header. The bytes are kept as they were read, so
// that reserved fields survive a round trip.
type Header struct {
	block *raw.Block
}

// DecodeHeader decodes the header from the start of data. The header bytes are
// copied.
func DecodeHeader(data []byte) (*Header, error) {

	if len(data) < HeaderLength {
		return nil, fmt.Errorf("%w: want %d bytes, got %d",
			ErrTruncatedHeader, HeaderLength, len(data))
	}

	h := newHeader()
	copy(h.block.Data, data[:HeaderLength])

	return h, h.Validate()
}

// EncodeHeader creates a header for a freshly formatted image. All fields other
// than signature, size and sector size are zero.
func EncodeHeader(sectorSize int, paragraphs uint32) *Header {
	h := newHeader()
	h.block.SetInt("signature", Signature)
	h.block.SetInt("sizeLow", int(paragraphs&0xffff))
	h.block.SetInt("sectorSize", sectorSize)
	h.block.SetInt("sizeHigh", int(paragraphs>>16))
	return h
}

//
func newHeader() *Header {
	return &Header{block: raw.NewBlock(headerIndex, make([]byte, HeaderLength))}
}

//
func (h *Header) Signature() int {
	return h.block.GetInt("signature")
}

// Paragraphs returns the image size in units of 16 bytes
func (h *Header) Paragraphs() uint32 {
	return uint32(h.block.GetInt("sizeHigh"))<<16 |
		uint32(h.block.GetInt("sizeLow"))
}

//
func (h *Header) SectorSizeField() int {
	return h.block.GetInt("sectorSize")
}

//
func (h *Header) WriteProtected() bool {
	return h.block.GetByte("writeProtect") != 0
}

// Bytes returns a copy of the raw header bytes
func (h *Header) Bytes() []byte {
	ret := make([]byte, HeaderLength)
	copy(ret, h.block.Data)
	return ret
}

//
func (h *Header) Validate() error {
	if got := h.Signature(); got != Signature {
		return fmt.Errorf("%w: want %#04x, got %#04x",
			ErrInvalidSignature, Signature, got)
	}
	return nil
}

//
func (h *Header) Emit(w io.Writer) {
	io.WriteString(w, fmt.Sprintf(
		"\nHEADER: paragraphs: %d, sector size: %d, write protected: %v\n",
		h.Paragraphs(), h.SectorSizeField(), h.WriteProtected()))
	d := hex.Dumper(w)
	defer d.Close()
	d.Write(h.block.Data)
}
