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
	"os"
	"reflect"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

//
const epilogueHeader = `
Notes:

`

// UnderTest makes Die and DieOnError panic instead of exiting
var UnderTest bool

// DieOnError prints e and exits, if e is not nil
func DieOnError(e error) {
	if e != nil {
		Die("%v\n", e)
	}
}

// Die prints the message and exits
func Die(msg string, params ...interface{}) {
	out := msg
	if len(params) > 0 {
		out = fmt.Sprintf(msg, params...)
	}
	fmt.Print(out)
	if !strings.HasSuffix(out, "\n") {
		fmt.Println()
	}
	if UnderTest {
		panic(out)
	}
	os.Exit(1)
}

//
func GetUserConfirmation(prompt string) bool {
	fmt.Printf("%s [y/N] ", prompt)
	var res string
	fmt.Scanln(&res)
	return strings.ToLower(strings.TrimSpace(res)) == "y"
}

/*
	Command wraps a Cobra command, and binds its settings via Viper. A setting
	can be given as command line flag or environment variable, with the flag
	taking precedence. Required settings produce an error naming both when
	missing.
*/
type Command struct {
	//
	cmd      *cobra.Command
	settings map[string]*setting
	//
	Args []string
	//
	epilogue string
	helpFunc func(*cobra.Command, []string)
}

// NewCommand creates a command that invokes exec when executed
func NewCommand(use, short, long, epilogue string, exec func() error) *Command {

	c := &Command{
		cmd: &cobra.Command{
			Use:   use,
			Short: short,
			Long:  long,
			RunE: func(*cobra.Command, []string) error {
				return exec()
			},
			SilenceErrors:         true,
			SilenceUsage:          true,
			DisableFlagsInUseLine: true,
		},
		settings: map[string]*setting{},
		epilogue: epilogue,
	}

	c.helpFunc = c.cmd.HelpFunc()
	c.cmd.SetHelpFunc(c.help)
	return c
}

//
func (c *Command) help(cmd *cobra.Command, args []string) {
	if c.helpFunc != nil {
		c.helpFunc(cmd, args)
	}
	if c.epilogue != "" {
		fmt.Fprint(cmd.OutOrStdout(), epilogueHeader+c.epilogue)
	}
	fmt.Fprintln(cmd.OutOrStdout())
}

// Execute runs the command. Non-empty args replace os.Args.
func (c *Command) Execute(args []string) error {
	if len(args) > 0 {
		c.cmd.SetArgs(args)
	}
	return c.cmd.Execute()
}

/*
	AddSetting binds target, which needs to be a pointer, to flag (long form)
	and short (short form), and optionally to environment variable env. def is
	the default value, or nil for the zero value. Required settings may not
	have a default.
*/
func (c *Command) AddSetting(target interface{}, flag, short, env string,
	def interface{}, help string, required bool) {

	s := &setting{flag: flag, env: env, required: required, target: target}
	c.settings[flag] = s

	t, n, err := s.typeAndName()
	DieOnError(err)

	log.Tracef("add setting: flag=%s, env=%s, type=%s", flag, env, t)

	if strings.HasSuffix(n, "Slice") && n != "StringSlice" && env != "" {
		Die("setting '%s': only string slices can come from environment", flag)
	}

	// pflag may support types that Viper can't get
	if _, err := viperGetter(n); err != nil {
		Die("setting '%s' is of unsupported type: %v", flag, err)
	}

	defVal := reflect.Zero(t)
	if def != nil {
		if required {
			Die("required setting '%s' does not take a default value", flag)
		}
		if !reflect.TypeOf(def).ConvertibleTo(t) {
			Die("default value for setting '%s' has incorrect type", flag)
		}
		defVal = reflect.ValueOf(def).Convert(t)
	}

	flags := c.cmd.Flags()
	bind, err := pflagBinder(n, flags)
	if err != nil {
		Die("setting '%s' is of unsupported type: %v", flag, err)
	}

	if env != "" {
		help = fmt.Sprintf("%s (%s)", help, env)
	}

	bind.Call([]reflect.Value{
		reflect.ValueOf(target),
		reflect.ValueOf(flag),
		reflect.ValueOf(short),
		defVal,
		reflect.ValueOf(help),
	})

	viper.BindPFlag(flag, flags.Lookup(flag))
	if env != "" {
		viper.BindEnv(flag, env)
	}
}

// ParseSettings fills all bound targets. Call it first thing in exec.
func (c *Command) ParseSettings() {
	for _, s := range c.settings {
		_, err := s.get()
		DieOnError(err)
	}
	c.Args = c.cmd.Flags().Args()
}

//
type setting struct {
	flag     string
	env      string
	required bool
	target   interface{}
}

// typeAndName returns the target's element type, and the name used for
// finding the matching pflag and Viper methods, e.g. Int or StringSlice
func (s *setting) typeAndName() (reflect.Type, string, error) {

	typ := reflect.TypeOf(s.target)
	if typ.Kind() != reflect.Ptr {
		return nil, "", fmt.Errorf(
			"target for setting '%s' is not a pointer", s.flag)
	}

	elem := typ.Elem()
	if elem.Kind() == reflect.Slice {
		return elem, strings.Title(elem.Elem().Name()) + "Slice", nil
	}
	return elem, strings.Title(elem.Name()), nil
}

//
func (s *setting) get() (interface{}, error) {

	t, n, err := s.typeAndName()
	if err != nil {
		return nil, err
	}

	getter, err := viperGetter(n)
	if err != nil {
		return nil, err
	}

	val := getter.Call([]reflect.Value{reflect.ValueOf(s.flag)})[0]
	log.Tracef("setting %s = '%v' (set: %v)", s.flag, val, viper.IsSet(s.flag))

	if s.required && isMissing(val, t) {
		msg := fmt.Sprintf("you need to specify the --%s command line flag",
			s.flag)
		if s.env != "" {
			msg = fmt.Sprintf("%s or the %s environment variable", msg, s.env)
		}
		return nil, fmt.Errorf("%s", msg)
	}

	// Viper does not write values from environment into bound targets
	if s.env != "" {
		elem := reflect.ValueOf(s.target).Elem()
		if val.Kind() != reflect.Slice {
			elem.Set(val)
		} else if elem.Len() == 0 {
			elem.Set(reflect.ValueOf(splitStrings(val)))
		}
	}

	return val.Interface(), nil
}

//
func isMissing(val reflect.Value, t reflect.Type) bool {
	if val.Kind() == reflect.Slice {
		return val.Len() == 0
	}
	return val.Interface() == reflect.Zero(t).Interface()
}

//
func viperGetter(n string) (reflect.Value, error) {
	method := "Get" + n
	ret := reflect.ValueOf(viper.GetViper()).MethodByName(method)
	if ret.Kind() != reflect.Func {
		return ret, fmt.Errorf("no Viper getter %s", method)
	}
	return ret, nil
}

//
func pflagBinder(n string, f *pflag.FlagSet) (reflect.Value, error) {
	method := n + "VarP"
	ret := reflect.ValueOf(f).MethodByName(method)
	if ret.Kind() != reflect.Func {
		return ret, fmt.Errorf("no pflag method %s", method)
	}
	return ret, nil
}

//
func splitStrings(v reflect.Value) []string {
	ret := make([]string, 0, v.Len())
	for ix := 0; ix < v.Len(); ix++ {
		ret = append(ret, strings.Split(v.Index(ix).String(), ",")...)
	}
	return ret
}
