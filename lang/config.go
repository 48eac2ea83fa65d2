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

package lang

import (
	"fmt"

	"github.com/purpleidea/storyc/lang/funcs"
	"github.com/purpleidea/storyc/lang/ir"
	"github.com/purpleidea/storyc/util/errwrap"

	"gopkg.in/yaml.v2"
)

// Config is the configuration of the compiler. It is usually read from a yaml
// file.
type Config struct {
	// Version is the schema version stored in the emitted programs.
	Version string `yaml:"version"`

	// Strict turns every deprecation into an error.
	Strict bool `yaml:"strict"`

	// Debug enables the debug logs of every pass.
	Debug bool `yaml:"debug"`

	// Mutations are extra mutation signatures that extend the builtin ones.
	// They use the same format, eg: `string shout times:int -> string`.
	Mutations []string `yaml:"mutations"`
}

// DefaultConfig returns the configuration used when none is given.
func DefaultConfig() *Config {
	return &Config{
		Version:   ir.Version,
		Mutations: []string{},
	}
}

// ParseConfig decodes a yaml configuration. The missing fields keep their
// default values.
func ParseConfig(data []byte) (*Config, error) {
	config := DefaultConfig() // set defaults here
	if err := yaml.UnmarshalStrict(data, config); err != nil {
		return nil, errwrap.Wrapf(err, "could not decode config")
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks the configuration.
func (obj *Config) Validate() error {
	if obj.Version == "" {
		return fmt.Errorf("empty version")
	}
	if _, err := funcs.ParseSignatures(obj.Mutations...); err != nil {
		return errwrap.Wrapf(err, "invalid mutations")
	}
	return nil
}

// MutationTable returns the builtin mutations extended with the ones of the
// configuration.
func (obj *Config) MutationTable() (*funcs.MutationTable, error) {
	extra, err := funcs.ParseSignatures(obj.Mutations...)
	if err != nil {
		return nil, errwrap.Wrapf(err, "invalid mutations")
	}
	if len(extra) == 0 {
		return funcs.Builtins(), nil
	}
	return funcs.NewMutationTable(funcs.Builtins(), extra...), nil
}
