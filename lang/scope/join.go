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

package scope

import (
	"github.com/purpleidea/storyc/lang/interfaces"
)

// Joiner merges the scopes of the branches of an if chain back into the scope
// the chain was opened in. A symbol survives the join only if every branch
// declared it with the same type.
type Joiner struct {
	parent   *Scope
	branches []*Scope
}

// NewJoiner returns a joiner that will insert into the given parent scope.
func NewJoiner(parent *Scope) *Joiner {
	return &Joiner{
		parent:   parent,
		branches: []*Scope{},
	}
}

// Branch opens the scope of the next branch.
func (obj *Joiner) Branch() *Scope {
	s := obj.parent.Child()
	obj.branches = append(obj.branches, s)
	return s
}

// Join inserts the surviving symbols into the parent and returns them. If the
// chain is not exhaustive (an if without else) it counts as having an extra
// empty branch, so nothing survives, but conflicts are still reported. The node
// is used to position the error.
func (obj *Joiner) Join(node interfaces.Node, exhaustive bool) ([]*Symbol, error) {
	// check for conflicts first, in a deterministic order
	seen := make(map[string]*Symbol)
	for _, branch := range obj.branches {
		for _, sym := range branch.Symbols() {
			prev, exists := seen[sym.Name]
			if !exists {
				seen[sym.Name] = sym
				continue
			}
			if prev.Type.Cmp(sym.Type) != nil {
				return nil, interfaces.NewError(interfaces.ErrScopeJoinIncompatible, node,
					"name", sym.Name,
					"left", prev.Type.String(),
					"right", sym.Type.String(),
				)
			}
		}
	}

	joined := []*Symbol{}
	if !exhaustive || len(obj.branches) == 0 {
		return joined, nil
	}

	for _, sym := range obj.branches[0].Symbols() {
		out := sym.Copy()
		found := true
		for _, branch := range obj.branches[1:] {
			other := branch.Local(sym.Name)
			if other == nil {
				found = false
				break
			}
			if other.Storage < out.Storage { // most restrictive wins
				out.Storage = other.Storage
			}
			out.Service = out.Service && other.Service
			out.Internal = out.Internal || other.Internal
		}
		if !found {
			continue
		}
		obj.parent.Insert(out)
		joined = append(joined, out)
	}
	return joined, nil
}
