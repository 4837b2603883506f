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
	"bufio"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/xelalexv/atrdrive/pkg/disk"
)

//
const FlagModified = 0x01
const FlagWriteProtected = 0x02
const AutoSaveVersion = 1

const ixVersion = 0
const ixFormat = 1
const ixFlags = 2

// AutoSaver keeps copies of modified images, so that they survive a restart
// of the daemon. All methods are no-ops on a nil AutoSaver.
type AutoSaver struct {
	fs  afero.Fs
	dir string
}

//
func NewAutoSaver(fs afero.Fs, dir string) *AutoSaver {
	return &AutoSaver{fs: fs, dir: dir}
}

// DefaultAutoSaveDir returns the folder .atrdrive in the user's home
func DefaultAutoSaveDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".atrdrive"), nil
}

// Save auto-saves the image in drive dr, if it is modified and has not been
// auto-saved yet.
func (a *AutoSaver) Save(drive int, dr *disk.Drive) error {

	if a == nil || dr == nil || !dr.IsLoaded() ||
		!dr.IsModified() || dr.IsAutoSaved() {
		return nil
	}

	start := time.Now()
	log.Infof("auto-saving drive %d", drive)

	img, err := dr.Image()
	if err != nil {
		return err
	}

	file, err := a.path(drive, true)
	if err != nil {
		return err
	}

	tmp := fmt.Sprintf("%s_", file)

	fd, err := a.fs.OpenFile(tmp, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0644)
	if err != nil {
		return err
	}

	out := bufio.NewWriter(fd)

	preamble := make([]byte, 3)

	var flags byte = 0
	if dr.IsModified() {
		flags |= FlagModified
	}
	if dr.IsReadOnly() {
		flags |= FlagWriteProtected
	}

	preamble[ixVersion] = AutoSaveVersion
	preamble[ixFormat] = byte(dr.Format())
	preamble[ixFlags] = flags

	if err := writeRaw(preamble, out); err != nil {
		fd.Close()
		return err
	}

	if err := writeRaw([]byte(img.Source()), out); err != nil {
		fd.Close()
		return err
	}

	if _, err := out.Write(img.Export()); err != nil {
		fd.Close()
		return err
	}

	if err := out.Flush(); err != nil {
		fd.Close()
		return err
	}

	if err := fd.Sync(); err != nil {
		fd.Close()
		return err
	}

	if err := fd.Close(); err != nil {
		return err
	}

	if err := a.fs.Rename(tmp, file); err != nil {
		return err
	}

	dr.SetAutoSaved(true)

	log.Debugf("auto-save took %v", time.Since(start))
	return nil
}

// Load loads the auto-save for drive into dr, if there is one.
func (a *AutoSaver) Load(drive int, dr *disk.Drive) error {

	if a == nil {
		return nil
	}

	log.Infof("loading auto-save for drive %d", drive)

	file, err := a.path(drive, false)
	if err != nil {
		return err
	}

	fd, err := a.fs.Open(file)
	if err != nil {
		if !os.IsNotExist(err) {
			return err
		}
		log.Infof("no auto-save file for drive %d", drive)
		return nil
	}
	defer fd.Close()

	in := bufio.NewReader(fd)

	preamble, err := readRaw(in, 64)
	if err != nil {
		return fmt.Errorf("error reading preamble: %v", err)
	}

	if len(preamble) < 3 || preamble[ixVersion] != AutoSaveVersion {
		return fmt.Errorf("incompatible auto-save version, want %d, got %v",
			AutoSaveVersion, preamble)
	}

	source, err := readRaw(in, 4096)
	if err != nil {
		return fmt.Errorf("error reading image source: %v", err)
	}

	data, err := ioutil.ReadAll(in)
	if err != nil {
		return err
	}

	if err := dr.ImportFormat(
		disk.Format(preamble[ixFormat]), data, string(source)); err != nil {
		return err
	}

	dr.SetModified(preamble[ixFlags]&FlagModified != 0)
	dr.SetAutoSaved(true)
	return nil
}

// Remove removes the auto-save for drive, if there is one.
func (a *AutoSaver) Remove(drive int) error {

	if a == nil {
		return nil
	}

	file, err := a.path(drive, false)
	if err != nil {
		return err
	}

	if err := a.fs.Remove(file); err != nil {
		if !os.IsNotExist(err) {
			return err
		}
	} else {
		log.Infof("removed auto-save for drive %d", drive)
	}

	return nil
}

//
func (a *AutoSaver) path(drive int, create bool) (string, error) {

	dir := filepath.Join(a.dir, fmt.Sprintf("%d", drive))

	if create {
		if err := a.fs.MkdirAll(dir, 0755); err != nil {
			return "", err
		}
	}

	return filepath.Join(dir, "image"), nil
}

//
func readRaw(in io.Reader, maxLen int) ([]byte, error) {

	buf := []byte{0, 0}
	if _, err := io.ReadFull(in, buf); err != nil {
		return nil, err
	}

	length := int(buf[0]) + 256*int(buf[1])

	if length > maxLen {
		return nil, fmt.Errorf("max length %d, but have %d", maxLen, length)
	}

	ret := make([]byte, length)
	if _, err := io.ReadFull(in, ret); err != nil {
		return nil, err
	}

	return ret, nil
}

//
func writeRaw(data []byte, out io.Writer) error {

	buf := []byte{byte(len(data) % 256), byte((len(data) >> 8))}

	if _, err := out.Write(buf); err != nil {
		return err
	}

	if _, err := out.Write(data); err != nil {
		return err
	}

	return nil
}
