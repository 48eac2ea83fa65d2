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

// Package interfaces contains the common interfaces and data types that are
// shared between the packages of the compiler.
package interfaces

import (
	"fmt"

	"github.com/purpleidea/storyc/lang/tree"
)

const (
	// InternalPrefix starts the name of every variable that is synthesized
	// by the compiler. The dash makes it impossible to clash with a user
	// variable, since those may not contain one.
	InternalPrefix = "__p-"

	// AppName is the name of the builtin read-only object that every root
	// scope starts with.
	AppName = "app"
)

// InternalName returns the name of the variable synthesized for a hoist at the
// given coordinate.
func InternalName(line Coordinate) string {
	return InternalPrefix + line.String()
}

// Node represents any statement or expression of the AST. It contains the
// minimum set of methods that they must all implement.
type Node interface {
	fmt.Stringer

	// Apply is a general purpose iterator method that operates on any node.
	Apply(fn func(Node) error) error

	// Area returns the source position of this node.
	Area() *Textarea
}

// Data provides some data to the passes that could be useful during their
// lifetime.
type Data struct {
	// Filename is the name of the file the tree was read from. It is only
	// used for display.
	Filename string

	// Debug represents if we're running in debug mode or not.
	Debug bool

	// Logf is a logger which should be used.
	Logf func(format string, v ...interface{})
}

// FragmentParser parses the code segments found inside of string templates.
// The returned tree is positioned as if the code appeared on the given line at
// the given column.
type FragmentParser interface {
	ParseFragment(code string, line Coordinate, column int) (*tree.Node, error)
}

// Printer renders a node back into source-like text. It is used to build the
// messages of some diagnostics.
type Printer interface {
	Print(Node) string
}
