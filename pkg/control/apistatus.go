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

	"github.com/xelalexv/atrdrive/pkg/daemon"
)

//
func (a *api) status(w http.ResponseWriter, req *http.Request) {

	stat := &Status{}
	for drive := 1; drive <= daemon.DriveCount; drive++ {
		stat.Add(a.daemon.GetStatus(drive))
	}

	if wantsJSON(req) {
		sendJSONReply(stat, http.StatusOK, w)
	} else {
		sendReply([]byte(stat.String()), http.StatusOK, w)
	}
}

//
func (a *api) list(w http.ResponseWriter, req *http.Request) {

	list := a.getDrives()

	if wantsJSON(req) {
		sendJSONReply(list, http.StatusOK, w)

	} else {
		strList := "\nDRIVE IMAGE               SECTORS     STATE"
		for ix, d := range list {
			strList += fmt.Sprintf("\n D%d:  %s", ix+1, d.String())
		}
		sendReply([]byte(strList), http.StatusOK, w)
	}
}

//
func (a *api) getDrives() []*Drive {

	ret := make([]*Drive, daemon.DriveCount)

	for drive := 1; drive <= daemon.DriveCount; drive++ {

		d := &Drive{Status: a.daemon.GetStatus(drive)}

		if d.Status == daemon.StatusIdle {
			if dr, ok := a.daemon.GetDrive(drive); ok {
				d.fill(dr)
				dr.Unlock()
			} else {
				d.Status = daemon.StatusBusy
			}
		}

		ret[drive-1] = d
	}

	return ret
}
