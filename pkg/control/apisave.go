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
	"net/http"
)

// save sends the complete image in a drive. Afterwards, the image is no longer
// considered modified.
func (a *api) save(w http.ResponseWriter, req *http.Request) {

	_, dr := a.lockDrive(w, req)
	if dr == nil {
		return
	}
	defer dr.Unlock()

	data, err := dr.Export()
	if handleError(err, http.StatusInternalServerError, w) {
		return
	}

	dr.SetModified(false)
	sendBinaryReply(data, http.StatusOK, w)
}
