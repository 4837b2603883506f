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

// resync makes the daemon re-open the serial port
func (a *api) resync(w http.ResponseWriter, req *http.Request) {
	if handleError(a.daemon.Resync(), http.StatusUnprocessableEntity, w) {
		return
	}
	sendReply([]byte("re-syncing with SIO bus"), http.StatusOK, w)
}
