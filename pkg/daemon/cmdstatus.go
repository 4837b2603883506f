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

package daemon

import (
	log "github.com/sirupsen/logrus"

	"github.com/xelalexv/atrdrive/pkg/disk"
)

//
func (c *command) status(d *Daemon, drive int, dr *disk.Drive) error {

	if err := c.con.reply(ReplyAck); err != nil {
		return err
	}

	status, err := dr.StatusBytes()
	if err != nil || status == nil {
		log.WithField("drive", drive).Warnf("no status: %v", err)
		return c.con.reply(ReplyError)
	}

	log.WithFields(log.Fields{
		"drive":  drive,
		"status": status,
	}).Debug("STATUS")

	return c.con.sendFrame(status)
}
