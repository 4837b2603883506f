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
	"net/http"

	"github.com/xelalexv/atrdrive/pkg/atr"
)

// format puts a blank image into a drive
func (a *api) format(w http.ResponseWriter, req *http.Request) {

	drive := getDrive(w, req)
	if drive == -1 {
		return
	}

	f, ok := getFormat(w, req)
	if !ok {
		return
	}

	size, err := getIntArg(req, "size", atr.SingleDensity)
	if handleError(err, http.StatusUnprocessableEntity, w) {
		return
	}

	count, err := getIntArg(req, "count", 720)
	if handleError(err, http.StatusUnprocessableEntity, w) {
		return
	}

	if handleDaemonError(a.daemon.CreateImage(
		drive, f, size, count, isFlagSet(req, "force")), drive, w) {
		return
	}

	sendReply([]byte(fmt.Sprintf(
		"formatted drive %d with %d sectors of %d bytes", drive, count, size)),
		http.StatusOK, w)
}
