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

package main

import (
	"fmt"
	"os"

	"github.com/xelalexv/atrdrive/pkg/run"
)

// AtrDriveVersion is set at build time
var AtrDriveVersion string

//
func synopsis() {
	fmt.Print(`
synopsis: atrctl {serve|load|unload|save|ls|format|dump|info|status|resync|version} ...

run 'atrctl {action} -h|--help' to see detailed info

`)
}

//
func version() {
	fmt.Printf("\nAtrDrive %s\n\n", AtrDriveVersion)
}

//
func main() {

	var action string
	var args []string

	if len(os.Args) > 1 {
		action = os.Args[1]
	}

	if len(os.Args) > 2 {
		args = os.Args[2:]
	}

	switch action {

	case "serve":
		version()
		run.DieOnError(run.NewServe().Execute(args))

	case "load":
		run.DieOnError(run.NewLoad().Execute(args))

	case "unload":
		run.DieOnError(run.NewUnload().Execute(args))

	case "save":
		run.DieOnError(run.NewSave().Execute(args))

	case "ls":
		run.DieOnError(run.NewList().Execute(args))

	case "format":
		run.DieOnError(run.NewFormat().Execute(args))

	case "dump":
		run.DieOnError(run.NewDump().Execute(args))

	case "info":
		run.DieOnError(run.NewInfo().Execute(args))

	case "status":
		run.DieOnError(run.NewStatus().Execute(args))

	case "resync":
		run.DieOnError(run.NewResync().Execute(args))

	case "version":
		version()

	case "", "-h", "--help":
		synopsis()

	default:
		run.Die("unknown action: %s\n", action)
	}
}
