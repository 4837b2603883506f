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

package control

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/xelalexv/atrdrive/pkg/disk"
)

// dump sends a hex dump of the image in a drive, or of a single sector if
// requested
func (a *api) dump(w http.ResponseWriter, req *http.Request) {

	arg, err := getArg(req, "sector")
	if handleError(err, http.StatusUnprocessableEntity, w) {
		return
	}

	if arg == "" {
		a.driveInfo(w, req, func(dr *disk.Drive, buf *bytes.Buffer) error {
			return dr.Dump(buf)
		})
		return
	}

	sector, err := strconv.Atoi(arg)
	if handleError(err, http.StatusUnprocessableEntity, w) {
		return
	}

	a.driveInfo(w, req, func(dr *disk.Drive, buf *bytes.Buffer) error {
		return dr.EmitSector(sector, buf)
	})
}

//
func (a *api) driveList(w http.ResponseWriter, req *http.Request) {
	a.driveInfo(w, req, func(dr *disk.Drive, buf *bytes.Buffer) error {
		return dr.List(buf)
	})
}

// driveInfo renders info about the image in a drive while holding its lock,
// and sends the result once the lock is released
func (a *api) driveInfo(w http.ResponseWriter, req *http.Request,
	render func(dr *disk.Drive, buf *bytes.Buffer) error) {

	_, dr := a.lockDrive(w, req)
	if dr == nil {
		return
	}

	var buf bytes.Buffer
	err := render(dr, &buf)
	dr.Unlock()

	if handleError(err, http.StatusUnprocessableEntity, w) {
		return
	}

	sendStreamReply(&buf, http.StatusOK, w)
}
