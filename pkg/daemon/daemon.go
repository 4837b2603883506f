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
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/xelalexv/atrdrive/pkg/disk"
)

//
const DriveCount = 8

// SIO standard speed
const DefaultBaudRate = 19200

//
const (
	StatusEmpty  = "empty"
	StatusNoDisk = "no disk"
	StatusIdle   = "idle"
	StatusBusy   = "busy"
)

//
var (
	ErrDaemonStopped = errors.New("daemon stopped")
	ErrInvalidDrive  = errors.New("invalid drive number")
	ErrDriveBusy     = errors.New("drive busy")
	ErrImageModified = errors.New("image is modified")
)

// how often modified images get auto-saved
const autoSaveInterval = 10 * time.Second

// Daemon serves the disk drives D1: through D8: to an Atari on the SIO bus
type Daemon struct {
	//
	drives  []*disk.Drive
	device  string
	baud    int
	conduit *conduit
	mutex   sync.Mutex
	//
	autoSaver *AutoSaver
	stopped   int32
	done      chan bool
}

// NewDaemon creates a daemon for the serial port at device. Modified images
// are auto-saved via saver, which may be nil for disabling auto-save.
func NewDaemon(device string, baud int, saver *AutoSaver) *Daemon {

	if baud <= 0 {
		baud = DefaultBaudRate
	}

	d := &Daemon{
		drives:    make([]*disk.Drive, DriveCount),
		device:    device,
		baud:      baud,
		autoSaver: saver,
		done:      make(chan bool),
	}

	for ix := range d.drives {
		d.drives[ix] = disk.NewDrive()
	}

	return d
}

//
func (d *Daemon) Serve() error {

	for ix := 1; ix <= DriveCount; ix++ {
		if err := d.autoSaver.Load(ix, d.getDrive(ix)); err != nil {
			log.Errorf("error loading auto-save for drive %d: %v", ix, err)
		}
	}

	go d.autoSave()

	return d.listen()
}

//
func (d *Daemon) listen() error {

	for {
		if err := d.ResetConduit(); err != nil {
			return err
		}

		con := d.getConduit()
		if con == nil {
			continue
		}

		for {
			cmd, err := con.receiveCommand()
			if err != nil {
				if d.isStopped() {
					return ErrDaemonStopped
				}
				log.Errorf("error receiving command: %v", err)
				break
			}

			if err = cmd.dispatch(d); err != nil {
				log.Errorf("error dispatching command: %v", err)
			}
		}
	}
}

//
func (d *Daemon) ResetConduit() error {

	d.closeConduit()

	maxBackoff := 15 * time.Second

	for backoff := time.Second; ; {

		if d.isStopped() {
			return ErrDaemonStopped
		}

		log.Infof("opening port %s", d.device)
		con, err := newConduit(d.device, d.baud)

		if err == nil {
			d.mutex.Lock()
			d.conduit = con
			d.mutex.Unlock()
			return nil
		}

		log.Errorf("cannot open serial port: %v", err)
		if backoff < maxBackoff {
			backoff *= 2
		}

		select {
		case <-d.done:
		case <-time.After(backoff):
		}
	}
}

// Resync closes the serial port, which makes the daemon open it again
func (d *Daemon) Resync() error {
	if d.getConduit() == nil {
		return fmt.Errorf("serial port not open")
	}
	log.Info("re-syncing with SIO bus")
	d.closeConduit()
	return nil
}

//
func (d *Daemon) getConduit() *conduit {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	return d.conduit
}

//
func (d *Daemon) closeConduit() {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	if d.conduit != nil {
		log.Infof("closing port %s", d.device)
		if err := d.conduit.close(); err != nil {
			log.Errorf("error closing port: %v", err)
		}
		d.conduit = nil
	}
}

// Stop stops the daemon, auto-saving all modified images
func (d *Daemon) Stop() {
	if !atomic.CompareAndSwapInt32(&d.stopped, 0, 1) {
		return
	}
	log.Info("daemon stopping...")
	close(d.done)
	d.closeConduit()
	d.saveAll()
}

//
func (d *Daemon) isStopped() bool {
	return atomic.LoadInt32(&d.stopped) == 1
}

//
func (d *Daemon) autoSave() {
	ticker := time.NewTicker(autoSaveInterval)
	defer ticker.Stop()
	for {
		select {
		case <-d.done:
			return
		case <-ticker.C:
			d.saveAll()
		}
	}
}

//
func (d *Daemon) saveAll() {
	for ix := 1; ix <= DriveCount; ix++ {
		if dr, ok := d.GetDrive(ix); ok {
			if err := d.autoSaver.Save(ix, dr); err != nil {
				log.Errorf("auto-saving drive %d failed: %v", ix, err)
			}
			dr.Unlock()
		}
	}
}

// LoadImage loads the image in data into drive ix (1-based). name is used for
// determining the image format. Unless force is set, a modified image present
// in the drive is not replaced.
func (d *Daemon) LoadImage(ix int, data []byte, name string, force bool) error {

	return d.loadImage(ix, force, func(dr *disk.Drive) error {
		return dr.Import(data, name)
	})
}

// LoadImageFormat is like LoadImage, but loads data as an image of format f,
// regardless of name.
func (d *Daemon) LoadImageFormat(ix int, f disk.Format, data []byte,
	name string, force bool) error {
	return d.loadImage(ix, force, func(dr *disk.Drive) error {
		return dr.ImportFormat(f, data, name)
	})
}

//
func (d *Daemon) loadImage(ix int, force bool,
	load func(dr *disk.Drive) error) error {

	dr, err := d.lockForChange(ix, force)
	if err != nil {
		return err
	}
	defer dr.Unlock()

	if err := load(dr); err != nil {
		return err
	}

	return d.autoSaver.Remove(ix)
}

// CreateImage puts a blank image into drive ix (1-based).
func (d *Daemon) CreateImage(ix int, f disk.Format,
	sectorSize, sectorCount int, force bool) error {

	dr, err := d.lockForChange(ix, force)
	if err != nil {
		return err
	}
	defer dr.Unlock()

	return dr.Create(f, sectorSize, sectorCount)
}

// UnloadImage removes the image from drive ix (1-based). Unless force is set,
// a modified image is not removed.
func (d *Daemon) UnloadImage(ix int, force bool) error {

	dr, err := d.lockForChange(ix, force)
	if err != nil {
		return err
	}
	defer dr.Unlock()

	if err := dr.Unload(); err != nil {
		return err
	}

	return d.autoSaver.Remove(ix)
}

//
func (d *Daemon) lockForChange(ix int, force bool) (*disk.Drive, error) {

	dr, ok := d.GetDrive(ix)
	if dr == nil {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDrive, ix)
	}

	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrDriveBusy, ix)
	}

	if !force && dr.IsModified() {
		dr.Unlock()
		return nil, fmt.Errorf("%w: drive %d", ErrImageModified, ix)
	}

	return dr, nil
}

// GetDrive gets drive ix (1-based) and locks it. The returned bool indicates
// whether locking was successful. The caller needs to unlock the drive when
// done with it.
func (d *Daemon) GetDrive(ix int) (*disk.Drive, bool) {

	dr := d.getDrive(ix)
	if dr == nil {
		return nil, false
	}

	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	return dr, dr.Lock(ctx)
}

//
func (d *Daemon) getDrive(ix int) *disk.Drive {
	if 0 < ix && ix <= len(d.drives) {
		return d.drives[ix-1]
	}
	return nil
}

// GetStatus returns the status of drive ix (1-based)
func (d *Daemon) GetStatus(ix int) string {

	dr := d.getDrive(ix)

	if dr == nil || dr.IsLocked() {
		return StatusBusy
	}

	if !dr.HasImage() {
		return StatusEmpty
	}

	if !dr.IsLoaded() {
		return StatusNoDisk
	}

	return StatusIdle
}
