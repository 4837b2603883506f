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
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"
)

//
func (a *api) watch(w http.ResponseWriter, req *http.Request) {

	timeout, err := strconv.Atoi(req.URL.Query().Get("timeout"))
	if err != nil || timeout < 0 || 1800 < timeout {
		timeout = 600
	}

	log.Infof("starting watch for %s, timeout %d", req.RemoteAddr, timeout)
	update := make(chan *Change, 1)

	select {
	case a.longPollQueue <- update:
	case <-time.After(time.Duration(timeout) * time.Second):
		log.Infof("closing watch for %s after timeout", req.RemoteAddr)
		sendReply([]byte{}, http.StatusRequestTimeout, w)
		return
	case <-req.Context().Done():
		log.Infof("watch for %s cancelled", req.RemoteAddr)
		return
	}

	log.Infof("sending drive change to %s", req.RemoteAddr)
	sendJSONReply(<-update, http.StatusOK, w)
}

// watchDaemon checks the drive list for changes every interval, and notifies
// all waiting watchers of any change
func (a *api) watchDaemon(interval time.Duration) {

	log.Info("start watching for drive changes")

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var list []*Drive

	for {
		select {
		case <-a.stop:
			log.Info("stopped watching for drive changes")
			return
		case <-ticker.C:
		}

		l := a.getDrives()
		if driveListsEqual(l, list) {
			continue
		}
		list = l

		log.Debug("drive changes")
		change := &Change{Drives: l}

	Loop:
		for {
			select {
			case cl := <-a.longPollQueue:
				log.Debug("notifying long poll client")
				cl <- change
			default:
				log.Debug("all long poll clients notified")
				break Loop
			}
		}
	}
}
