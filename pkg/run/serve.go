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
	"net"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/xelalexv/atrdrive/pkg/control"
	"github.com/xelalexv/atrdrive/pkg/daemon"
	"github.com/xelalexv/atrdrive/pkg/repo"
)

//
func NewServe() *Serve {

	s := &Serve{}
	s.Runner = *NewRunner(
		`serve -d|--device {device} [-b|--baud {rate}] [-a|--address {address}]
      [-p|--port {port}] [-r|--repo {repo base folder}] [--autosave {folder}]
      [--no-autosave]`,
		"daemon & API server command",
		`
Use the serve command for running the SIO daemon and API server. The daemon
emulates disk drives D1: through D8: on the SIO bus reachable via the given
serial port.`,
		LoggingHelp+runnerHelpEpilogue, s.Run)

	s.AddBaseSettings()
	s.AddSetting(&s.Device, "device", "d", "ATRDRIVE_DEVICE", nil,
		"serial port device for SIO bus", true)
	s.AddSetting(&s.Baud, "baud", "b", "ATRDRIVE_BAUD", daemon.DefaultBaudRate,
		"baud rate of serial port", false)
	s.AddSetting(&s.Repository, "repo", "r", "ATRDRIVE_REPO", nil,
		`image repo base folder; when omitted, loading images
from daemon host's file system is prohibited`, false)
	s.AddSetting(&s.AutoSaveDir, "autosave", "", "", nil,
		"folder for auto-saving modified images; defaults to ~/.atrdrive", false)
	s.AddSetting(&s.NoAutoSave, "no-autosave", "", "", false,
		"disable auto-saving of modified images", false)

	return s
}

//
type Serve struct {
	//
	Runner
	//
	Device      string
	Baud        int
	Repository  string
	AutoSaveDir string
	NoAutoSave  bool
}

//
func (s *Serve) Run() error {

	s.ParseSettings()

	saver, err := s.autoSaver()
	if err != nil {
		return err
	}

	wg := &sync.WaitGroup{}
	wg.Add(2)

	d := daemon.NewDaemon(s.Device, s.Baud, saver)
	go func() {
		defer wg.Done()
		err := d.Serve()
		if err != nil && err != daemon.ErrDaemonStopped {
			log.Errorf("daemon closed with error: %v", err)
		} else {
			log.Info("daemon stopped")
		}
	}()

	api := control.NewAPIServer(s.listenAddress(),
		repo.New(afero.NewOsFs(), s.Repository), d)
	go func() {
		defer wg.Done()
		if err := api.Serve(); err != nil {
			log.Errorf("API server closed with error: %v", err)
		} else {
			log.Info("API server stopped")
		}
	}()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	sigCount := 0
	done := make(chan bool)

	for {

		select {

		case sig := <-sigs:
			log.WithField("signal", sig).Info("signal received")
			sigCount++

			switch sigCount {

			case 1:
				go func() {
					log.Info("shutting down, hit Ctrl-C twice to force exit...")
					api.Stop()
					d.Stop()
					wg.Wait()
					log.Info("AtrDrive stopped")
					done <- true
				}()

			case 2:
				log.Warn("shutdown in progress, hit Ctrl-C again to force exit")

			default:
				log.Warn("forcing daemon to stop immediately")
				os.Exit(1)
			}

		case <-done:
			return nil
		}
	}
}

//
func (s *Serve) listenAddress() string {
	return net.JoinHostPort(s.Address, strconv.Itoa(s.Port))
}

//
func (s *Serve) autoSaver() (*daemon.AutoSaver, error) {

	if s.NoAutoSave {
		log.Info("auto-save disabled")
		return nil, nil
	}

	dir := s.AutoSaveDir
	if dir == "" {
		var err error
		if dir, err = daemon.DefaultAutoSaveDir(); err != nil {
			return nil, err
		}
	}

	log.Infof("auto-saving modified images to %s", dir)
	return daemon.NewAutoSaver(afero.NewOsFs(), dir), nil
}
