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
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/xelalexv/atrdrive/pkg/disk"
)

// SIO device IDs of disk drives D1: through D8:
const DeviceFirstDrive = 0x31
const DeviceLastDrive = DeviceFirstDrive + DriveCount - 1

//
const CmdStatus = 'S'         // get drive status
const CmdRead = 'R'           // read sector
const CmdWrite = 'W'          // write sector with verify
const CmdPut = 'P'            // write sector without verify
const CmdFormat = '!'         // format disk with current geometry
const CmdFormatEnhanced = '"' // format disk in enhanced density

// how long to wait for a drive that is in use by the API
const driveLockTimeout = 50 * time.Millisecond

//
func newCommand(data []byte, con *conduit) *command {
	return &command{data: data, con: con}
}

// command is a five byte SIO command frame: device, command, two auxiliary
// bytes, and checksum, along with the conduit it was received from
type command struct {
	data []byte
	con  *conduit
}

//
func (c *command) dispatch(d *Daemon) error {

	drive, ok := c.drive()
	if !ok {
		log.Tracef("ignoring command for device %02x", c.device())
		return nil
	}

	dr := d.getDrive(drive)
	if dr == nil || !dr.HasImage() {
		log.WithField("drive", drive).Trace("ignoring command for empty drive")
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), driveLockTimeout)
	defer cancel()
	if !dr.Lock(ctx) {
		log.WithField("drive", drive).Warn("drive busy, rejecting command")
		return c.con.reply(ReplyNak)
	}
	defer dr.Unlock()

	switch c.cmd() {

	case CmdStatus:
		return c.status(d, drive, dr)

	case CmdRead:
		return c.read(d, drive, dr)

	case CmdWrite:
		return c.write(d, drive, dr, true)

	case CmdPut:
		return c.write(d, drive, dr, false)

	case CmdFormat:
		return c.format(d, drive, dr, false)

	case CmdFormatEnhanced:
		return c.format(d, drive, dr, true)
	}

	if err := c.con.reply(ReplyNak); err != nil {
		return err
	}
	return fmt.Errorf("unknown command: %v", c.data)
}

//
func (c *command) device() byte {
	return c.data[0]
}

//
func (c *command) cmd() byte {
	return c.data[1]
}

// aux returns the two auxiliary bytes as a 16 bit word
func (c *command) aux() int {
	return int(c.data[2]) | int(c.data[3])<<8
}

// drive returns the 1-based drive number addressed by this command, and
// whether the command is meant for a disk drive at all
func (c *command) drive() (int, bool) {
	dev := c.device()
	if dev < DeviceFirstDrive || dev > DeviceLastDrive {
		return -1, false
	}
	return int(dev-DeviceFirstDrive) + 1, true
}

// sector returns the sector number addressed by this command, or an error if
// it is not within the drive's image
func (c *command) sector(dr *disk.Drive) (int, error) {
	sector := c.aux()
	count, err := dr.SectorCount()
	if err != nil {
		return -1, err
	}
	if sector < 1 || sector > count {
		return -1, fmt.Errorf("illegal sector number: %d", sector)
	}
	return sector, nil
}
