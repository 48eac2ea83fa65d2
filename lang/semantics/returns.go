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

package semantics

import (
	"github.com/purpleidea/storyc/lang/ast"
)

// ReturnVisitor decides if every control path through a block ends in a
// `return` or a `throw`.
type ReturnVisitor struct{}

// Returns returns true if the block can't be left without returning or
// throwing.
func (obj *ReturnVisitor) Returns(b *ast.Block) bool {
	if b == nil {
		return false
	}
	for _, stmt := range b.Stmts {
		if obj.stmt(stmt) {
			return true // the rest of the block is unreachable
		}
	}
	return false
}

func (obj *ReturnVisitor) stmt(stmt ast.Stmt) bool {
	switch x := stmt.(type) {
	case *ast.StmtReturn, *ast.StmtThrow:
		return true

	case *ast.StmtIf:
		if x.Else == nil || !obj.Returns(x.Body) || !obj.Returns(x.Else.Body) {
			return false
		}
		for _, elif := range x.Elifs {
			if !obj.Returns(elif.Body) {
				return false
			}
		}
		return true

	case *ast.StmtTry:
		if x.Finally != nil && obj.Returns(x.Finally.Body) {
			return true
		}
		if !obj.Returns(x.Body) {
			return false
		}
		return x.Catch == nil || obj.Returns(x.Catch.Body)
	}

	// loops may run zero times, and the rest can't return from a function
	return false
}
