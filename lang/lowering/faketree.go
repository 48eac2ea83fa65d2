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

package lowering

import (
	"github.com/purpleidea/storyc/lang/ast"
	"github.com/purpleidea/storyc/lang/interfaces"
)

// FakeTree synthesizes the coordinates of the statements that are hoisted out
// of one statement, and inserts them into the block ahead of it. Every line
// it returns is before the original line, and after the previous one it
// returned, so hoisted statements run in the order they were produced.
type FakeTree struct {
	block *ast.Block
	line  interfaces.Coordinate
	count int
}

// NewFakeTree returns a synthesizer for the statement at the given line of the
// block. If the block already holds statements that were synthesized for that
// line by an earlier run, numbering continues after them.
func NewFakeTree(block *ast.Block, line interfaces.Coordinate) *FakeTree {
	obj := &FakeTree{
		block: block,
		line:  line.Copy(),
	}
	for _, x := range block.Stmts {
		c := x.Area().Line()
		if len(c) != len(line)+2 || !c[:len(line)].Equal(line) || c[len(line)] != 0 {
			continue
		}
		if k := c[len(line)+1]; k > obj.count {
			obj.count = k
		}
	}
	return obj
}

// Original returns the coordinate of the statement this synthesizer serves.
func (obj *FakeTree) Original() interfaces.Coordinate {
	return obj.line
}

// Line returns a fresh synthetic coordinate.
func (obj *FakeTree) Line() interfaces.Coordinate {
	obj.count++
	return obj.line.Before(obj.count)
}

// Insert adds the statement into the block ahead of the statement on the given
// line, or just before the last statement if there is none.
func (obj *FakeTree) Insert(stmt ast.Stmt, before interfaces.Coordinate) {
	obj.block.Insert(stmt, before)
}
