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

package tree

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/purpleidea/storyc/util/errwrap"

	"gopkg.in/yaml.v2"
)

// Format is a serialization format of a tree.
type Format string

const (
	// FormatJSON is the JSON serialization.
	FormatJSON Format = "json"
	// FormatYAML is the YAML serialization.
	FormatYAML Format = "yaml"
)

// FormatOf returns the format matching the extension of a filename.
func FormatOf(filename string) (Format, error) {
	switch {
	case strings.HasSuffix(filename, ".json"):
		return FormatJSON, nil
	case strings.HasSuffix(filename, ".yaml"), strings.HasSuffix(filename, ".yml"):
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unknown tree format of `%s`", filename)
}

// line accepts both a string and a number so that hand written trees can use
// plain integers for the lines.
type line string

// UnmarshalJSON decodes a line from a string or a number.
func (obj *line) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*obj = line(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid line: %s", string(data))
	}
	*obj = line(n.String())
	return nil
}

// wire is the serialized form of both nodes and tokens. An element with a
// token field is a token, otherwise it is a node.
type wire struct {
	Kind     string  `json:"kind,omitempty" yaml:"kind,omitempty"`
	Token    string  `json:"token,omitempty" yaml:"token,omitempty"`
	Value    string  `json:"value,omitempty" yaml:"value,omitempty"`
	Line     line    `json:"line" yaml:"line"`
	Column   int     `json:"column" yaml:"column"`
	End      int     `json:"end" yaml:"end"`
	Children []*wire `json:"children,omitempty" yaml:"children,omitempty"`
}

// Decode decodes a tree in the given format.
func Decode(data []byte, format Format) (*Node, error) {
	w := &wire{}
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, w); err != nil {
			return nil, errwrap.Wrapf(err, "could not decode json tree")
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, w); err != nil {
			return nil, errwrap.Wrapf(err, "could not decode yaml tree")
		}
	default:
		return nil, fmt.Errorf("unknown tree format `%s`", format)
	}

	elem, err := w.element("")
	if err != nil {
		return nil, err
	}
	node, ok := elem.(*Node)
	if !ok {
		return nil, fmt.Errorf("the root of the tree is a token")
	}
	return node, nil
}

// element converts the wire form into an element. Children without a line
// inherit the line of their parent.
func (obj *wire) element(parent string) (Element, error) {
	l := string(obj.Line)
	if l == "" {
		l = parent
	}
	if l == "" {
		return nil, fmt.Errorf("element without a line")
	}
	if _, err := strconv.Atoi(strings.Split(l, ".")[0]); err != nil {
		return nil, fmt.Errorf("invalid line `%s`", l)
	}

	if obj.Token != "" {
		if obj.Kind != "" || len(obj.Children) > 0 {
			return nil, fmt.Errorf("token `%s` on line %s has a kind or children", obj.Token, l)
		}
		return NewToken(TokenKind(obj.Token), obj.Value, l, obj.Column, obj.End), nil
	}

	kind, err := ParseKind(obj.Kind)
	if err != nil {
		return nil, errwrap.Wrapf(err, "invalid node on line %s", l)
	}
	children := []Element{}
	for _, x := range obj.Children {
		if x == nil {
			return nil, fmt.Errorf("empty child of `%s` on line %s", kind, l)
		}
		child, err := x.element(l)
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}
	return NewNode(kind, l, obj.Column, obj.End, children...), nil
}
