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
	"errors"
	"fmt"
)

//
var (
	ErrInvalidSignature    = errors.New("invalid ATR image signature")
	ErrTruncatedHeader     = errors.New("truncated ATR header")
	ErrNoDisk              = errors.New("no disk")
	ErrInvalidSector       = errors.New("invalid sector number")
	ErrSectorOutOfRange    = errors.New("sector beyond end of image")
	ErrUnsupportedGeometry = errors.New("unsupported disk geometry")
)

// LoadError is returned when an image could not be loaded. It carries the
// original cause.
type LoadError struct {
	Source string
	Cause  error
}

//
func (e *LoadError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("image load failed for %s: %v", e.Source, e.Cause)
	}
	return fmt.Sprintf("image load failed: %v", e.Cause)
}

//
func (e *LoadError) Unwrap() error {
	return e.Cause
}
