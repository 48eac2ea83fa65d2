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

// Package interpolate splits string templates into their literal and code
// segments, and parses the code segments into trees.
package interpolate

// Stream is the list of tokens that are produced after scanning a string.
type Stream []Token

// Token is the interface that every token must implement.
type Token interface {
	token()
}

// Literal is a run of plain text with its escapes already resolved.
type Literal struct {
	Value string
}

// token ties the Literal to the Token interface.
func (Literal) token() {}

// Code is the content of a `{...}` segment. Offset is the byte offset of the
// code inside of the scanned string, which is used to position the fragment.
type Code struct {
	Value  string
	Offset int
}

// token ties the Code to the Token interface.
func (Code) token() {}

// IsPlain returns true if the stream has no code segments.
func (obj Stream) IsPlain() bool {
	for _, x := range obj {
		if _, ok := x.(Code); ok {
			return false
		}
	}
	return true
}

// Text returns the concatenation of all the literal segments.
func (obj Stream) Text() string {
	s := ""
	for _, x := range obj {
		if l, ok := x.(Literal); ok {
			s += l.Value
		}
	}
	return s
}
