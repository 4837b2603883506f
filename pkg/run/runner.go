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

package run

import (
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/afero"

	"github.com/xelalexv/atrdrive/pkg/control"
	"github.com/xelalexv/atrdrive/pkg/daemon"
	"github.com/xelalexv/atrdrive/pkg/disk"
)

//
const runnerHelpEpilogue = `- When a flag can be set via environment variable, the variable name is given
  in parenthesis at the end of the flag explanation. Note however that a flag,
  when specified, overrides an environment variable.
`

// NewRunner creates the base for commands that talk to the daemon's API, or
// work on local image files.
func NewRunner(use, short, long, epilogue string, exec func() error) *Runner {
	return &Runner{
		Command: *NewCommand(use, short, long, epilogue, exec),
		fs:      afero.NewOsFs(),
		out:     os.Stdout,
	}
}

//
type Runner struct {
	//
	Command
	//
	Address string
	Port    int
	//
	fs  afero.Fs
	out io.Writer
}

// AddBaseSettings adds the API endpoint settings. This has to be called by
// the concrete command, not NewRunner, or Viper will not fill in the values.
func (r *Runner) AddBaseSettings() {
	r.AddSetting(&r.Address, "address", "a", "ATRDRIVE_ADDRESS", nil,
		"address of daemon's API server; defaults to local host for clients, "+
			"all interfaces for serve", false)
	r.AddSetting(&r.Port, "port", "p", "ATRDRIVE_PORT", control.DefaultPort,
		"port of daemon's API server", false)
}

// apiCall sends a request to the daemon's API. Replies with a status other
// than 2xx are turned into errors carrying the reply body.
func (r *Runner) apiCall(method, path string, json bool,
	body io.Reader) (io.ReadCloser, error) {

	host := r.Address
	if host == "" {
		host = "127.0.0.1"
	}

	req, err := http.NewRequest(
		method, fmt.Sprintf("http://%s:%d%s", host, r.Port, path), body)
	if err != nil {
		return nil, err
	}

	if json {
		req.Header.Add("Content-Type", "application/json")
		req.Header.Add("Accept", "application/json")
	} else {
		req.Header.Add("Content-Type", "text/plain")
		req.Header.Add("Accept", "text/plain")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		msg, _ := ioutil.ReadAll(resp.Body)
		return nil, fmt.Errorf("%s: %s", resp.Status,
			strings.TrimSpace(string(msg)))
	}

	return resp.Body, nil
}

// apiPrint sends a request and writes the reply to the runner's output
func (r *Runner) apiPrint(method, path string, body io.Reader) error {

	resp, err := r.apiCall(method, path, false, body)
	if err != nil {
		return err
	}
	defer resp.Close()

	if _, err := io.Copy(r.out, resp); err != nil {
		return err
	}

	fmt.Fprintln(r.out)
	return nil
}

// loadLocal loads the image file at path into a drive that's not part of a
// daemon
func (r *Runner) loadLocal(path string) (*disk.Drive, error) {
	dr := disk.NewDrive()
	if err := dr.Load(r.fs, path); err != nil {
		return nil, err
	}
	return dr, nil
}

//
func validateDrive(d int) error {
	if d < 1 || d > daemon.DriveCount {
		return fmt.Errorf(
			"invalid drive number: %d; valid numbers are 1 through %d",
			d, daemon.DriveCount)
	}
	return nil
}
