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

package interfaces

import (
	"fmt"
)

// Textarea stores the position of a statement or expression in the form of a
// line coordinate plus a starting and an ending column on that line.
type Textarea struct {
	// path is the name of the file that this text area exists in. It may
	// be empty when compiling a tree that didn't come from a file.
	path string

	// This data is zero-based for the columns. (Eg: first column is 0)
	line        Coordinate
	startColumn int // left
	endColumn   int // right

	isSet bool
}

// Setup stores the name of the source file that this node was generated from.
func (obj *Textarea) Setup(data *Data) {
	if data == nil {
		return
	}
	obj.path = data.Filename
}

// IsSet returns if the position was already set with Locate already.
func (obj *Textarea) IsSet() bool {
	return obj.isSet
}

// Locate is used while building the AST to store the token positions in the
// nodes.
func (obj *Textarea) Locate(line Coordinate, col int, endcol int) {
	obj.line = line
	obj.startColumn = col
	obj.endColumn = endcol
	obj.isSet = true
}

// Relocate moves this area onto a different line, keeping the columns. This is
// used when the compiler synthesizes a statement.
func (obj *Textarea) Relocate(line Coordinate) {
	obj.line = line
	obj.isSet = true
}

// Area returns the text area itself. Nodes embedding a Textarea get this method
// for free, which is how errors find the position of the node they refer to.
func (obj *Textarea) Area() *Textarea {
	return obj
}

// Line returns the line coordinate of an AST node.
func (obj *Textarea) Line() Coordinate {
	return obj.line
}

// Pos returns the line coordinate and the starting column of an AST node.
func (obj *Textarea) Pos() (Coordinate, int) {
	return obj.line, obj.startColumn
}

// End returns the ending column of an AST node.
func (obj *Textarea) End() int {
	return obj.endColumn
}

// Path returns the name of the source file that holds the code for a node.
func (obj *Textarea) Path() string {
	return obj.path
}

// Filename returns the printable filename that we'd like to display.
func (obj *Textarea) Filename() string {
	if obj.path == "" {
		return "<unknown>"
	}
	return obj.path
}

// Byline gives a succinct representation of the Textarea. Columns are
// displayed one-based.
func (obj *Textarea) Byline() string {
	return fmt.Sprintf("%s @ %s:%d-%d", obj.Filename(), obj.line, obj.startColumn+1, obj.endColumn+1)
}
