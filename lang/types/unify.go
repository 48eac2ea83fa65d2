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

package types

import (
	"fmt"
)

// Unify matches the generic type obj against a concrete type and records the
// type variables it binds. It errors if the shapes don't match or if a type
// variable would be bound to two different types.
func (obj *Type) Unify(concrete *Type, bindings map[string]*Type) error {
	if concrete == nil {
		return fmt.Errorf("cannot unify with nil")
	}

	switch obj.Kind {
	case KindVar:
		bound, exists := bindings[obj.Name]
		if !exists {
			bindings[obj.Name] = concrete
			return nil
		}
		if bound.IsAny() { // a concrete type refines an earlier any
			bindings[obj.Name] = concrete
			return nil
		}
		if concrete.IsAny() {
			return nil
		}
		if err := bound.Cmp(concrete); err != nil {
			return fmt.Errorf("type variable %s is both %s and %s", obj.Name, bound, concrete)
		}
		return nil

	case KindList:
		if concrete.IsAny() {
			return obj.Val.Unify(TypeAny, bindings)
		}
		if concrete.Kind != KindList {
			return fmt.Errorf("%s does not match %s", concrete, obj)
		}
		return obj.Val.Unify(concrete.Val, bindings)

	case KindMap:
		if concrete.IsAny() {
			if err := obj.Key.Unify(TypeAny, bindings); err != nil {
				return err
			}
			return obj.Val.Unify(TypeAny, bindings)
		}
		if concrete.Kind != KindMap {
			return fmt.Errorf("%s does not match %s", concrete, obj)
		}
		if err := obj.Key.Unify(concrete.Key, bindings); err != nil {
			return err
		}
		return obj.Val.Unify(concrete.Val, bindings)
	}

	if concrete.IsAny() {
		return nil
	}
	if err := obj.Cmp(concrete); err != nil {
		return fmt.Errorf("%s does not match %s", concrete, obj)
	}
	return nil
}

// Substitute replaces every type variable with its binding. It errors if a
// type variable is not bound.
func (obj *Type) Substitute(bindings map[string]*Type) (*Type, error) {
	switch obj.Kind {
	case KindVar:
		bound, exists := bindings[obj.Name]
		if !exists {
			return nil, fmt.Errorf("type variable %s is not bound", obj.Name)
		}
		return bound, nil

	case KindList:
		val, err := obj.Val.Substitute(bindings)
		if err != nil {
			return nil, err
		}
		return List(val), nil

	case KindMap:
		key, err := obj.Key.Substitute(bindings)
		if err != nil {
			return nil, err
		}
		val, err := obj.Val.Substitute(bindings)
		if err != nil {
			return nil, err
		}
		return Map(key, val), nil
	}
	return obj, nil
}
