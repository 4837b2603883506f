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
func (a *api) load(w http.ResponseWriter, req *http.Request) {

	drive := getDrive(w, req)
	if drive == -1 {
		return
	}

	f, ok := getFormat(w, req)
	if !ok {
		return
	}
	typed := req.URL.Query().Get("type") != ""

	name, err := getArg(req, "name")
	if handleError(err, http.StatusUnprocessableEntity, w) {
		return
	}

	var in io.Reader

	ref, err := getArg(req, "ref")
	if handleError(err, http.StatusUnprocessableEntity, w) {
		return
	}

	if ref != "" {
		rc, path, err := a.repository.Resolve(ref)
		if handleError(err, http.StatusNotAcceptable, w) {
			return
		}
		defer rc.Close()
		in = io.LimitReader(rc, maxImageSize)
		if name == "" {
			name = path
		}

	} else {
		in = io.LimitReader(req.Body, maxImageSize)
	}

	if name == "" {
		handleError(fmt.Errorf("no image name given"),
			http.StatusUnprocessableEntity, w)
		return
	}

	data, err := ioutil.ReadAll(in)
	if handleError(err, http.StatusInternalServerError, w) {
		return
	}

	if handleError(req.Body.Close(), http.StatusInternalServerError, w) {
		return
	}

	force := isFlagSet(req, "force")
	if typed {
		err = a.daemon.LoadImageFormat(drive, f, data, name, force)
	} else {
		err = a.daemon.LoadImage(drive, data, name, force)
	}

	if handleDaemonError(err, drive, w) {
		return
	}

	sendReply([]byte(
		fmt.Sprintf("loaded %s into drive %d", name, drive)), http.StatusOK, w)
}
