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

// Package ir contains the intermediate representation that the code generator
// emits. A program is a flat map of lines, keyed by their coordinate, which are
// linked to each other to form the control flow.
package ir

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/purpleidea/storyc/lang/interfaces"
	"github.com/purpleidea/storyc/util/errwrap"

	"gopkg.in/yaml.v2"
)

const (
	// Version is the default version of the schema.
	Version = "0.2.0"

	// ObjectKey is the key that tags the kind of an encoded value.
	ObjectKey = "$OBJECT"
)

// Object is an encoded argument value. It is always tagged with ObjectKey.
type Object map[string]interface{}

// NewObject returns an object of the given kind. The rest are key, value
// pairs.
func NewObject(kind string, kv ...interface{}) Object {
	if len(kv)%2 != 0 {
		panic(fmt.Sprintf("odd number of values for %s", kind))
	}
	obj := Object{ObjectKey: kind}
	for i := 0; i < len(kv); i += 2 {
		obj[kv[i].(string)] = kv[i+1]
	}
	return obj
}

// Kind returns the tag of the object.
func (obj Object) Kind() string {
	s, _ := obj[ObjectKey].(string)
	return s
}

// Line is one instruction of the program. The links are nil when they don't
// apply.
type Line struct {
	Ln       string        `json:"ln" yaml:"ln"`
	Method   string        `json:"method" yaml:"method"`
	Name     []string      `json:"name" yaml:"name"`
	Service  *string       `json:"service" yaml:"service"`
	Command  *string       `json:"command" yaml:"command"`
	Function *string       `json:"function" yaml:"function"`
	Args     []interface{} `json:"args" yaml:"args"`
	Output   []string      `json:"output" yaml:"output"`
	Enter    *string       `json:"enter" yaml:"enter"`
	Exit     *string       `json:"exit" yaml:"exit"`
	Next     *string       `json:"next" yaml:"next"`
	Parent   *string       `json:"parent" yaml:"parent"`
}

// String returns a short representation of the line.
func (obj *Line) String() string {
	return fmt.Sprintf("%s: %s", obj.Ln, obj.Method)
}

// links returns the names and values of the links of this line.
func (obj *Line) links() map[string]*string {
	return map[string]*string{
		"enter":  obj.Enter,
		"exit":   obj.Exit,
		"next":   obj.Next,
		"parent": obj.Parent,
	}
}

// Program is the output of the code generator.
type Program struct {
	Tree       map[string]*Line  `json:"tree" yaml:"tree"`
	Services   []string          `json:"services" yaml:"services"`
	Functions  map[string]string `json:"functions" yaml:"functions"`
	Entrypoint *string           `json:"entrypoint" yaml:"entrypoint"`
	Version    string            `json:"version" yaml:"version"`
}

// New returns an empty program.
func New(version string) *Program {
	if version == "" {
		version = Version
	}
	return &Program{
		Tree:      make(map[string]*Line),
		Services:  []string{},
		Functions: make(map[string]string),
		Version:   version,
	}
}

// Add inserts a line. Two lines with the same coordinate are an error. The
// first line added becomes the entrypoint.
func (obj *Program) Add(line *Line) error {
	if _, exists := obj.Tree[line.Ln]; exists {
		return errwrap.Wrapf(interfaces.ErrProgrammingError, "line %s was emitted twice", line.Ln)
	}
	obj.Tree[line.Ln] = line
	if obj.Entrypoint == nil {
		obj.Entrypoint = Str(line.Ln)
	}
	return nil
}

// AddService records an external service. The list stays sorted and free of
// duplicates.
func (obj *Program) AddService(name string) {
	i := sort.SearchStrings(obj.Services, name)
	if i < len(obj.Services) && obj.Services[i] == name {
		return
	}
	obj.Services = append(obj.Services, "")
	copy(obj.Services[i+1:], obj.Services[i:])
	obj.Services[i] = name
}

// Lines returns the lines in coordinate order.
func (obj *Program) Lines() []*Line {
	coords := []interfaces.Coordinate{}
	for ln := range obj.Tree {
		coords = append(coords, interfaces.MustParseCoordinate(ln))
	}
	interfaces.SortCoordinates(coords)
	lines := []*Line{}
	for _, c := range coords {
		lines = append(lines, obj.Tree[c.String()])
	}
	return lines
}

// Validate checks that every link, function and the entrypoint point at an
// existing line.
func (obj *Program) Validate() error {
	var reterr error
	for _, line := range obj.Lines() {
		for name, link := range line.links() {
			if link == nil {
				continue
			}
			if _, exists := obj.Tree[*link]; !exists {
				reterr = errwrap.Append(reterr, fmt.Errorf("line %s: %s link to missing line %s", line.Ln, name, *link))
			}
		}
	}
	for name, ln := range obj.Functions {
		if _, exists := obj.Tree[ln]; !exists {
			reterr = errwrap.Append(reterr, fmt.Errorf("function %s at missing line %s", name, ln))
		}
	}
	if obj.Entrypoint != nil {
		if _, exists := obj.Tree[*obj.Entrypoint]; !exists {
			reterr = errwrap.Append(reterr, fmt.Errorf("missing entrypoint %s", *obj.Entrypoint))
		}
	}
	if !sort.StringsAreSorted(obj.Services) {
		reterr = errwrap.Append(reterr, fmt.Errorf("services are not sorted"))
	}
	return reterr
}

// Format is an encoding of the program.
type Format string

const (
	// FormatJSON is the JSON encoding.
	FormatJSON Format = "json"
	// FormatYAML is the YAML encoding.
	FormatYAML Format = "yaml"
)

// Encode returns the program in the given format.
func (obj *Program) Encode(format Format) ([]byte, error) {
	switch format {
	case FormatJSON, "":
		b, err := json.MarshalIndent(obj, "", "\t")
		if err != nil {
			return nil, errwrap.Wrapf(err, "could not encode json")
		}
		return append(b, '\n'), nil

	case FormatYAML:
		b, err := yaml.Marshal(obj)
		if err != nil {
			return nil, errwrap.Wrapf(err, "could not encode yaml")
		}
		return b, nil
	}
	return nil, fmt.Errorf("unknown format: %s", format)
}

// Decode reads a program that was encoded as JSON.
func Decode(data []byte) (*Program, error) {
	obj := New("")
	if err := json.Unmarshal(data, obj); err != nil {
		return nil, errwrap.Wrapf(err, "could not decode json")
	}
	return obj, nil
}

// Str returns a pointer to a copy of s. It is used for the optional fields.
func Str(s string) *string {
	return &s
}
