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

package control

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/xelalexv/atrdrive/pkg/atr"
	"github.com/xelalexv/atrdrive/pkg/daemon"
	"github.com/xelalexv/atrdrive/pkg/disk"
	"github.com/xelalexv/atrdrive/pkg/repo"
)

// DefaultPort is used when the listen address does not name a port
const DefaultPort = 8888

// largest image accepted for upload
const maxImageSize = 16 * 1024 * 1024

//
type APIServer interface {
	Serve() error
	Stop() error
}

// NewAPIServer creates the control API for daemon d, listening on addr.
// Images can be loaded by reference from repository r, which may be nil.
func NewAPIServer(addr string, r *repo.Repository, d *daemon.Daemon) APIServer {
	return newAPI(addr, r, d)
}

//
func newAPI(addr string, r *repo.Repository, d *daemon.Daemon) *api {
	return &api{
		address:       addr,
		repository:    r,
		daemon:        d,
		longPollQueue: make(chan chan *Change),
		stop:          make(chan bool),
	}
}

//
type api struct {
	address    string
	repository *repo.Repository
	daemon     *daemon.Daemon
	server     *http.Server
	//
	longPollQueue chan chan *Change
	stop          chan bool
}

//
func (a *api) Serve() error {

	addr := a.address
	if len(strings.Split(addr, ":")) < 2 {
		addr = fmt.Sprintf("%s:%d", a.address, DefaultPort)
	}

	log.Infof("AtrDrive API starts listening on %s", addr)
	a.server = &http.Server{Addr: addr, Handler: a.router()}

	go a.watchDaemon(2 * time.Second)

	err := a.server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

//
func (a *api) router() *mux.Router {

	router := mux.NewRouter().StrictSlash(true)

	addRoute(router, "status", "GET", "/status", a.status)
	addRoute(router, "watch", "GET", "/watch", a.watch)
	addRoute(router, "ls", "GET", "/list", a.list)
	addRoute(router, "load", "PUT", "/drive/{drive:[1-8]}", a.load)
	addRoute(router, "unload", "GET", "/drive/{drive:[1-8]}/unload", a.unload)
	addRoute(router, "save", "GET", "/drive/{drive:[1-8]}", a.save)
	addRoute(router, "format", "PUT", "/drive/{drive:[1-8]}/format", a.format)
	addRoute(router, "getsector", "GET",
		"/drive/{drive:[1-8]}/sector/{sector:[0-9]+}", a.getSector)
	addRoute(router, "putsector", "PUT",
		"/drive/{drive:[1-8]}/sector/{sector:[0-9]+}", a.putSector)
	addRoute(router, "dump", "GET", "/drive/{drive:[1-8]}/dump", a.dump)
	addRoute(router, "drivels", "GET", "/drive/{drive:[1-8]}/list", a.driveList)
	addRoute(router, "resync", "PUT", "/resync", a.resync)

	return router
}

//
func (a *api) Stop() error {
	select {
	case <-a.stop:
	default:
		close(a.stop)
	}
	if a.server != nil {
		log.Info("API server stopping...")
		err := a.server.Shutdown(context.Background())
		a.server = nil
		return err
	}
	return nil
}

//
func addRoute(r *mux.Router, name, method, pattern string,
	handler http.HandlerFunc) {
	r.Methods(method).
		Path(pattern).
		Name(name).
		Handler(requestLogger(handler, name))
}

//
func requestLogger(inner http.Handler, name string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		log.WithFields(log.Fields{
			"remote": r.RemoteAddr,
			"method": r.Method,
			"path":   r.RequestURI,
		}).Debugf("API BEGIN | %s", name)

		start := time.Now()
		inner.ServeHTTP(w, r)

		log.WithFields(log.Fields{
			"remote":   r.RemoteAddr,
			"method":   r.Method,
			"path":     r.RequestURI,
			"duration": time.Since(start),
		}).Debugf("API END   | %s", name)
	})
}

// lockDrive gets the drive addressed by req and locks it. If that fails, an
// error reply is sent and nil is returned. The caller needs to unlock a
// returned drive.
func (a *api) lockDrive(w http.ResponseWriter, req *http.Request) (
	int, *disk.Drive) {

	drive := getDrive(w, req)
	if drive == -1 {
		return -1, nil
	}

	dr, ok := a.daemon.GetDrive(drive)
	if !ok {
		handleError(fmt.Errorf("drive %d busy", drive), http.StatusLocked, w)
		return -1, nil
	}

	if !dr.IsLoaded() {
		dr.Unlock()
		handleError(fmt.Errorf("no disk in drive %d", drive),
			http.StatusUnprocessableEntity, w)
		return -1, nil
	}

	return drive, dr
}

// handleDaemonError maps errors from changing a drive's image to replies
func handleDaemonError(err error, drive int, w http.ResponseWriter) bool {

	switch {
	case err == nil:
		return false

	case errors.Is(err, daemon.ErrDriveBusy):
		return handleError(
			fmt.Errorf("drive %d busy", drive), http.StatusLocked, w)

	case errors.Is(err, daemon.ErrImageModified):
		return handleError(
			fmt.Errorf("image in drive %d is modified", drive),
			http.StatusConflict, w)

	case errors.Is(err, disk.ErrUnsupportedFormat),
		errors.Is(err, disk.ErrNoImage),
		errors.Is(err, atr.ErrUnsupportedGeometry):
		return handleError(err, http.StatusUnprocessableEntity, w)
	}

	var le *atr.LoadError
	if errors.As(err, &le) {
		return handleError(
			fmt.Errorf("image corrupted: %v", err), http.StatusUnprocessableEntity, w)
	}

	return handleError(err, http.StatusInternalServerError, w)
}

//
func getDrive(w http.ResponseWriter, req *http.Request) int {
	vars := mux.Vars(req)
	drive, err := strconv.Atoi(vars["drive"])
	if handleError(err, http.StatusUnprocessableEntity, w) {
		return -1
	}
	return drive
}

//
func getSector(w http.ResponseWriter, req *http.Request) int {
	vars := mux.Vars(req)
	sector, err := strconv.Atoi(vars["sector"])
	if handleError(err, http.StatusUnprocessableEntity, w) {
		return -1
	}
	return sector
}

//
func getFormat(w http.ResponseWriter, req *http.Request) (disk.Format, bool) {
	arg, err := getArg(req, "type")
	if handleError(err, http.StatusUnprocessableEntity, w) {
		return disk.UNKNOWN, false
	}
	if arg == "" {
		return disk.ATR, true
	}
	f := disk.GetFormat(arg)
	if f == disk.UNKNOWN {
		handleError(fmt.Errorf("%w: %s", disk.ErrUnsupportedFormat, arg),
			http.StatusUnprocessableEntity, w)
		return disk.UNKNOWN, false
	}
	return f, true
}

//
func isFlagSet(req *http.Request, flag string) bool {
	arg, _ := getArg(req, flag)
	return arg == "true"
}

//
func getArg(req *http.Request, arg string) (string, error) {
	ret := req.URL.Query().Get(arg)
	if ret != "" {
		return url.QueryUnescape(ret)
	}
	return ret, nil
}

//
func getIntArg(req *http.Request, arg string, def int) (int, error) {
	val, err := getArg(req, arg)
	if err != nil {
		return -1, err
	}
	if val == "" {
		return def, nil
	}
	return strconv.Atoi(val)
}

//
func setHeaders(h http.Header, json bool) {
	if json {
		h.Set("Content-Type", "application/json; charset=UTF-8")
	} else {
		h.Set("Content-Type", "text/plain; charset=UTF-8")
	}
}

//
func handleError(e error, statusCode int, w http.ResponseWriter) bool {

	if e == nil {
		return false
	}

	log.Errorf("%v", e)

	setHeaders(w.Header(), false)
	w.WriteHeader(statusCode)
	if _, err := w.Write([]byte(fmt.Sprintf("%v\n", e))); err != nil {
		log.Errorf("problem writing error: %v", err)
	}

	return true
}

//
func sendReply(body []byte, statusCode int, w http.ResponseWriter) {
	setHeaders(w.Header(), false)
	w.WriteHeader(statusCode)
	if _, err := fmt.Fprintf(w, "%s\n", body); err != nil {
		log.Errorf("problem sending reply: %v", err)
	}
}

//
func sendStreamReply(r io.Reader, statusCode int, w http.ResponseWriter) {
	setHeaders(w.Header(), false)
	w.WriteHeader(statusCode)
	if _, err := io.Copy(w, r); err != nil {
		log.Errorf("problem sending reply: %v", err)
	}
}

//
func sendBinaryReply(data []byte, statusCode int, w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/octet-stream")
	w.WriteHeader(statusCode)
	if _, err := w.Write(data); err != nil {
		log.Errorf("problem sending reply: %v", err)
	}
}

//
func sendJSONReply(obj interface{}, statusCode int, w http.ResponseWriter) {
	setHeaders(w.Header(), true)
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(obj); err != nil {
		log.Errorf("problem writing error: %v", err)
	}
}

//
func wantsJSON(req *http.Request) bool {
	return strings.HasPrefix(req.Header.Get("Content-Type"), "application/json") ||
		strings.Contains(req.Header.Get("Accept"), "application/json")
}
