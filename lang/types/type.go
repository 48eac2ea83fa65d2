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

// Package types provides the type lattice of the language. Types are immutable
// once built and are compared structurally.
package types

import (
	"fmt"
	"strings"

	"github.com/purpleidea/storyc/util/errwrap"
)

var (
	// TypeBoolean is a boolean.
	TypeBoolean = NewType("boolean")
	// TypeInt is an integer.
	TypeInt = NewType("int")
	// TypeFloat is a floating point number.
	TypeFloat = NewType("float")
	// TypeString is a string.
	TypeString = NewType("string")
	// TypeTime is a time duration.
	TypeTime = NewType("time")
	// TypeRegExp is a regular expression.
	TypeRegExp = NewType("regexp")
	// TypeRange is an integer range.
	TypeRange = NewType("range")
	// TypeObject is an opaque object.
	TypeObject = NewType("object")
	// TypeNone is the type of an expression that has no value.
	TypeNone = NewType("none")
	// TypeAny is the top type.
	TypeAny = NewType("any")
)

// The Kind represents the base type of each value.
type Kind int

// Each Kind represents a type in the language type system.
const (
	KindNil Kind = iota
	KindBoolean
	KindInt
	KindFloat
	KindString
	KindTime
	KindRegExp
	KindRange
	KindList
	KindMap
	KindObject
	KindNone
	KindAny
	KindVar // type variable, only found inside of mutation signatures
)

// String returns the name of the kind.
func (obj Kind) String() string {
	switch obj {
	case KindBoolean:
		return "boolean"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindTime:
		return "time"
	case KindRegExp:
		return "regexp"
	case KindRange:
		return "range"
	case KindList:
		return "List"
	case KindMap:
		return "Map"
	case KindObject:
		return "object"
	case KindNone:
		return "none"
	case KindAny:
		return "any"
	case KindVar:
		return "var"
	}
	return "nil"
}

// Type is the datastructure representing any type. It is recursive for the
// container types.
type Type struct {
	Kind Kind

	Val  *Type  // if Kind == List, use Val only
	Key  *Type  // if Kind == Map, use Val and Key
	Name string // if Kind == Var, the single letter name
}

// List builds a list type of the given element type.
func List(val *Type) *Type {
	return &Type{
		Kind: KindList,
		Val:  val,
	}
}

// Map builds a map type of the given key and value types.
func Map(key, val *Type) *Type {
	return &Type{
		Kind: KindMap,
		Key:  key,
		Val:  val,
	}
}

// Var builds a type variable.
func Var(name string) *Type {
	return &Type{
		Kind: KindVar,
		Name: name,
	}
}

// NewType creates the Type from the string representation. It returns nil if
// the string can't be parsed.
func NewType(s string) *Type {
	s = strings.TrimSpace(s)
	switch s {
	case "boolean":
		return &Type{Kind: KindBoolean}
	case "int":
		return &Type{Kind: KindInt}
	case "float":
		return &Type{Kind: KindFloat}
	case "string":
		return &Type{Kind: KindString}
	case "time":
		return &Type{Kind: KindTime}
	case "regexp":
		return &Type{Kind: KindRegExp}
	case "range":
		return &Type{Kind: KindRange}
	case "object":
		return &Type{Kind: KindObject}
	case "none":
		return &Type{Kind: KindNone}
	case "any":
		return &Type{Kind: KindAny}
	}

	// KindVar
	if len(s) == 1 && s[0] >= 'A' && s[0] <= 'Z' {
		return Var(s)
	}

	// KindList
	if strings.HasPrefix(s, "List[") && strings.HasSuffix(s, "]") {
		val := NewType(s[len("List[") : len(s)-1])
		if val == nil {
			return nil
		}
		return List(val)
	}

	// KindMap
	if strings.HasPrefix(s, "Map[") && strings.HasSuffix(s, "]") {
		s := s[len("Map[") : len(s)-1]
		// Map[<type>,<type>]
		found := -1
		var delta int
		for i, c := range s {
			if c == '[' { // open
				delta++
			}
			if c == ']' { // close
				delta--
			}
			if c == ',' && delta == 0 {
				if found >= 0 { // more than one separator
					return nil
				}
				found = i
			}
		}
		if found <= 0 || delta != 0 { // nope if we fall off the end...
			return nil
		}

		key := NewType(s[:found])
		if key == nil {
			return nil
		}
		val := NewType(s[found+1:])
		if val == nil {
			return nil
		}
		return Map(key, val)
	}

	return nil // error (this also matches the empty string as input)
}

// String returns the textual representation for this type.
func (obj *Type) String() string {
	switch obj.Kind {
	case KindList:
		if obj.Val == nil {
			panic("malformed list type")
		}
		return fmt.Sprintf("List[%s]", obj.Val)

	case KindMap:
		if obj.Key == nil || obj.Val == nil {
			panic("malformed map type")
		}
		return fmt.Sprintf("Map[%s,%s]", obj.Key, obj.Val)

	case KindVar:
		if obj.Name == "" {
			panic("malformed type variable")
		}
		return obj.Name

	case KindNil:
		panic("malformed type")
	}
	return obj.Kind.String()
}

// Cmp compares this type to another. It returns nil if they are identical.
func (obj *Type) Cmp(typ *Type) error {
	if obj == nil || typ == nil {
		return fmt.Errorf("cannot compare to nil")
	}

	if obj.Kind != typ.Kind {
		return fmt.Errorf("base kind does not match (%s != %s)", obj.Kind, typ.Kind)
	}
	switch obj.Kind {
	case KindList:
		if obj.Val == nil || typ.Val == nil {
			panic("malformed list type")
		}
		return obj.Val.Cmp(typ.Val)

	case KindMap:
		if obj.Key == nil || obj.Val == nil || typ.Key == nil || typ.Val == nil {
			panic("malformed map type")
		}
		kerr := obj.Key.Cmp(typ.Key)
		verr := obj.Val.Cmp(typ.Val)
		return errwrap.Append(kerr, verr) // zero, one or two errors

	case KindVar:
		if obj.Name != typ.Name {
			return fmt.Errorf("type variables differ (%s != %s)", obj.Name, typ.Name)
		}
		return nil

	case KindNil:
		panic("malformed type")
	}
	return nil
}

// Equal is a boolean version of Cmp.
func (obj *Type) Equal(typ *Type) bool {
	return obj.Cmp(typ) == nil
}

// Copy copies this type so that inplace modification won't affect the original.
func (obj *Type) Copy() *Type {
	if obj == nil {
		return nil
	}
	return &Type{
		Kind: obj.Kind,
		Val:  obj.Val.Copy(),
		Key:  obj.Key.Copy(),
		Name: obj.Name,
	}
}

// IsAny returns true if this is the top type.
func (obj *Type) IsAny() bool { return obj.Kind == KindAny }

// IsNone returns true if this is the type of no value.
func (obj *Type) IsNone() bool { return obj.Kind == KindNone }

// IsNumeric returns true for int and float.
func (obj *Type) IsNumeric() bool {
	return obj.Kind == KindInt || obj.Kind == KindFloat
}

// IsContainer returns true for the types whose values can be modified through
// a path, which are lists, maps, objects and any.
func (obj *Type) IsContainer() bool {
	switch obj.Kind {
	case KindList, KindMap, KindObject, KindAny:
		return true
	}
	return false
}

// IsGeneric returns true if this type contains any type variable.
func (obj *Type) IsGeneric() bool {
	switch obj.Kind {
	case KindVar:
		return true
	case KindList:
		return obj.Val.IsGeneric()
	case KindMap:
		return obj.Key.IsGeneric() || obj.Val.IsGeneric()
	}
	return false
}

// Vars returns the names of the type variables in this type in the order that
// they first appear.
func (obj *Type) Vars() []string {
	switch obj.Kind {
	case KindVar:
		return []string{obj.Name}
	case KindList:
		return obj.Val.Vars()
	case KindMap:
		vars := obj.Key.Vars()
		for _, x := range obj.Val.Vars() {
			found := false
			for _, y := range vars {
				if x == y {
					found = true
					break
				}
			}
			if !found {
				vars = append(vars, x)
			}
		}
		return vars
	}
	return []string{}
}

// Hashable returns true if values of this type can be used as map keys.
func (obj *Type) Hashable() bool {
	switch obj.Kind {
	case KindBoolean, KindInt, KindFloat, KindString, KindTime, KindAny:
		return true
	}
	return false
}

// Stringable returns true if values of this type can be turned into a string.
func (obj *Type) Stringable() bool {
	return obj.Kind != KindNone && obj.Kind != KindNil
}

// HasBoolean returns true if values of this type can be used as a condition.
func (obj *Type) HasBoolean() bool {
	return obj.Kind == KindBoolean || obj.Kind == KindAny
}
