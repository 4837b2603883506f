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

package repo

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

//
const PrefixRepoRef = "repo://"

// Repository gives access to disk images stored below a base folder
type Repository struct {
	fs afero.Fs
}

// New creates a repository rooted at base in fs. If base is empty, the
// repository is disabled and resolving any reference fails.
func New(fs afero.Fs, base string) *Repository {
	if base == "" {
		return &Repository{}
	}
	return &Repository{fs: afero.NewBasePathFs(fs, base)}
}

//
func (r *Repository) IsEnabled() bool {
	return r != nil && r.fs != nil
}

// Resolve opens the image denoted by ref. The returned name is the path of the
// image within the repository.
func (r *Repository) Resolve(ref string) (io.ReadCloser, string, error) {

	log.WithField("reference", ref).Debug("resolving ref")

	if !IsReference(ref) {
		return nil, "", fmt.Errorf("loading by reference not yet implemented")
	}

	if !r.IsEnabled() {
		return nil, "", fmt.Errorf("image repository is not enabled")
	}

	name := filepath.Clean("/" + ref[len(PrefixRepoRef):])
	f, err := r.fs.Open(name)
	if err != nil {
		return nil, "", err
	}

	return f, name, nil
}

//
func IsReference(r string) bool {
	return strings.HasPrefix(r, PrefixRepoRef)
}
