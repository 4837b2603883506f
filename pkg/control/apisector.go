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
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
)

//
func (a *api) getSector(w http.ResponseWriter, req *http.Request) {

	_, dr := a.lockDrive(w, req)
	if dr == nil {
		return
	}
	defer dr.Unlock()

	sector := getSector(w, req)
	if sector == -1 {
		return
	}

	data, err := dr.ReadSector(sector)
	if handleError(err, http.StatusUnprocessableEntity, w) {
		return
	}

	sendBinaryReply(data, http.StatusOK, w)
}

// putSector writes the request body to a sector. Bodies longer than the
// sector are cut off, shorter ones only overwrite the start of the sector.
func (a *api) putSector(w http.ResponseWriter, req *http.Request) {

	drive, dr := a.lockDrive(w, req)
	if dr == nil {
		return
	}
	defer dr.Unlock()

	sector := getSector(w, req)
	if sector == -1 {
		return
	}

	if dr.IsReadOnly() {
		handleError(fmt.Errorf("disk in drive %d is write protected", drive),
			http.StatusForbidden, w)
		return
	}

	size, err := dr.SectorSize(sector)
	if handleError(err, http.StatusUnprocessableEntity, w) {
		return
	}

	data, err := ioutil.ReadAll(io.LimitReader(req.Body, int64(size)))
	if handleError(err, http.StatusInternalServerError, w) {
		return
	}

	if handleError(dr.WriteSector(sector, data),
		http.StatusUnprocessableEntity, w) {
		return
	}

	sendReply([]byte(fmt.Sprintf(
		"wrote %d bytes to sector %d in drive %d", len(data), sector, drive)),
		http.StatusOK, w)
}
