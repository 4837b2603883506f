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
	"bytes"

	log "github.com/sirupsen/logrus"

	"github.com/xelalexv/atrdrive/pkg/disk"
)

//
func (c *command) write(d *Daemon, drive int, dr *disk.Drive, verify bool) error {

	sector, err := c.sector(dr)
	if err != nil {
		log.WithField("drive", drive).Errorf("WRITE: %v", err)
		return c.con.reply(ReplyNak)
	}

	size, err := dr.SectorSize(sector)
	if err != nil {
		log.WithField("drive", drive).Errorf("WRITE: %v", err)
		return c.con.reply(ReplyNak)
	}

	if err := c.con.reply(ReplyAck); err != nil {
		return err
	}

	data, err := c.con.receiveFrame(size)
	if err != nil {
		log.WithFields(log.Fields{
			"drive":  drive,
			"sector": sector,
		}).Errorf("WRITE: %v", err)
		return c.con.reply(ReplyNak)
	}

	if err := c.con.reply(ReplyAck); err != nil {
		return err
	}

	fields := log.Fields{"drive": drive, "sector": sector}

	if dr.IsReadOnly() {
		log.WithFields(fields).Warn("WRITE: disk is write protected")
		return c.con.reply(ReplyError)
	}

	if err := dr.WriteSector(sector, data); err != nil {
		log.WithFields(fields).Errorf("WRITE: %v", err)
		return c.con.reply(ReplyError)
	}

	if verify {
		if back, err := dr.ReadSector(sector); err != nil ||
			!bytes.Equal(back, data) {
			log.WithFields(fields).Error("WRITE: verify failed")
			return c.con.reply(ReplyError)
		}
	}

	log.WithFields(fields).Debug("WRITE")
	return c.con.reply(ReplyComplete)
}
