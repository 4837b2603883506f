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

//
func NewResync() *Resync {

	r := &Resync{}
	r.Runner = *NewRunner(
		`resync [-a|--address {address}] [-p|--port {port}]`,
		"resync with the SIO bus",
		`
Use the resync command to make the daemon close and re-open the serial port.
This may help when the daemon lost track of command frames, or the serial
adapter was unplugged. Any transfer in progress is aborted.`,
		runnerHelpEpilogue, r.Run)

	r.AddBaseSettings()

	return r
}

//
type Resync struct {
	Runner
}

//
func (r *Resync) Run() error {
	r.ParseSettings()
	return r.apiPrint("PUT", "/resync", nil)
}
