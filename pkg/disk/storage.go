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

package disk

import (
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// ReadAll reads the complete file at path from fs.
func ReadAll(fs afero.Fs, path string) ([]byte, error) {
	log.WithField("path", path).Debug("reading image file")
	return afero.ReadFile(fs, path)
}

/*
	WriteAll writes data to the file at path in fs. Data is first written to a
	temporary file in the same directory, which is then renamed, so that an
	existing file is only replaced once all data has been written.
*/
func WriteAll(fs afero.Fs, path string, data []byte) error {

	log.WithField("path", path).Debug("writing image file")

	dir := filepath.Dir(path)
	if err := fs.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp := fmt.Sprintf("%s_", path)

	fd, err := fs.OpenFile(tmp, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0644)
	if err != nil {
		return err
	}

	if _, err := fd.Write(data); err != nil {
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

	return fs.Rename(tmp, path)
}
