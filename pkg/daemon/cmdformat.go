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

	"github.com/xelalexv/atrdrive/pkg/atr"
	"github.com/xelalexv/atrdrive/pkg/disk"
)

// format formats the disk in the drive, either with its current geometry, or
// in enhanced density. The reply carries a sector sized buffer holding the
// list of bad sectors, which is always empty.
func (c *command) format(d *Daemon, drive int, dr *disk.Drive, enhanced bool) error {

	if err := c.con.reply(ReplyAck); err != nil {
		return err
	}

	size, count := atr.SingleDensity, atr.EnhancedSectorCount

	if !enhanced {
		size, _ = dr.SectorSize(0)
		count, _ = dr.SectorCount()
	}

	fields := log.Fields{"drive": drive, "size": size, "count": count}

	if !dr.IsLoaded() {
		log.WithFields(fields).Warn("FORMAT: no disk")
		return c.con.reply(ReplyError)
	}

	if dr.IsReadOnly() {
		log.WithFields(fields).Warn("FORMAT: disk is write protected")
		return c.con.reply(ReplyError)
	}

	if err := dr.FormatImage(size, count); err != nil {
		log.WithFields(fields).Errorf("FORMAT: %v", err)
		return c.con.reply(ReplyError)
	}

	log.WithFields(fields).Info("FORMAT")

	bad := make([]byte, size)
	bad[0], bad[1] = 0xff, 0xff

	return c.con.sendFrame(bad)
}
