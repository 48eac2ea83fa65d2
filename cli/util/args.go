// Mgmt
// Copyright (C) James Shubin and the project contributors
// Written by James Shubin <james@shubin.ca> and the project contributors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.
//
// Additional permission under GNU GPL version 3 section 7
//
// If you modify this program, or any covered work, by linking or combining it
// with embedded mcl code and modules (and that the embedded mcl code and
// modules which link with this program, contain a copy of their source code in
// the authoritative form) containing parts covered by the terms of any other
// license, the licensors of this program grant you additional permission to
// convey the resulting work. Furthermore, the licensors of this program grant
// the original author, James Shubin, additional permission to update this
// additional permission if he deems it necessary to achieve the goals of this
// additional permission.

package util

import (
	"reflect"
	"strings"
)

// LookupSubcommand returns the name of the subcommand in the obj, of a struct.
// This is useful for determining the name of the subcommand that was activated.
// It returns an empty string if a specific name was not found.
func LookupSubcommand(obj interface{}, st interface{}) string {
	val := reflect.ValueOf(obj)
	if val.Kind() == reflect.Ptr { // max one de-referencing
		val = val.Elem()
	}

	v := reflect.ValueOf(st) // value of the struct
	typ := val.Type()
	for i := 0; i < typ.NumField(); i++ {
		f := val.Field(i) // value of the field
		if f.Interface() != v.Interface() {
			continue
		}

		field := typ.Field(i)
		alias, ok := field.Tag.Lookup("arg")
		if !ok {
			continue
		}

		// XXX: `arg` needs a split by comma first or fancier parsing
		prefix := "subcommand"
		split := strings.Split(alias, ":")
		if len(split) != 2 || split[0] != prefix {
			continue
		}

		return split[1] // found
	}
	return "" // not found
}

// CompileArgs is the compile CLI parsing structure and type of the parsed
// result.
type CompileArgs struct {
	// Files are the parse trees to compile, in json or yaml.
	Files []string `arg:"positional,required" help:"parse trees to compile"`

	Config string `arg:"--config,env:STORYC_CONFIG" help:"yaml config file"`

	// Out is the directory where the programs are written. They go next to
	// their input if this is empty.
	Out string `arg:"--out" help:"output directory"`

	Format string `arg:"--format" default:"json" help:"output format (json or yaml)"`

	Jobs int `arg:"--jobs" default:"4" help:"max number of files compiled at the same time"`

	MetricsTextfile string `arg:"--metrics-textfile" help:"write the compile metrics to this file"`

	Strict bool `arg:"--strict" help:"deprecations are errors"`
}

// MutationsArgs is the mutations CLI parsing structure and type of the parsed
// result.
type MutationsArgs struct {
	Config string `arg:"--config,env:STORYC_CONFIG" help:"yaml config file with extra mutations"`
}
