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
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xelalexv/atrdrive/pkg/atr"
)

//
var ErrUnsupportedFormat = errors.New("unsupported image format")

// Format is a disk image container format
type Format int

const (
	UNKNOWN Format = iota
	ATR
)

//
func (f Format) String() string {

	switch f {

	case ATR:
		return "atr"

	default:
		return "<unknown>"
	}
}

//
func GetFormat(f string) Format {

	switch strings.ToLower(f) {

	case "atr":
		return ATR

	default:
		return UNKNOWN
	}
}

// FormatForFile determines the image format from the extension of file.
func FormatForFile(file string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(file), ".")
	if f := GetFormat(ext); f != UNKNOWN {
		return f, nil
	}
	return UNKNOWN, fmt.Errorf("%w: '%s'", ErrUnsupportedFormat, ext)
}

// NewImage creates an empty image engine for this format
func (f Format) NewImage() (Image, error) {

	switch f {

	case ATR:
		return atr.NewImage(), nil

	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedFormat, f)
	}
}
