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

// IndexKind distinguishes `a.b` from `a[b]`.
type IndexKind int

const (
	// IndexDot is an index of the form `a.b`.
	IndexDot IndexKind = iota
	// IndexBracket is an index of the form `a[b]`.
	IndexBracket
)

// ImplicitTo returns the type that a value of this type becomes when it is
// used where a value of type target is expected. It returns nil if there is no
// implicit conversion. Any converts both ways and None converts to nothing.
func (obj *Type) ImplicitTo(target *Type) *Type {
	if obj.IsNone() || target.IsNone() {
		return nil
	}
	if target.IsAny() {
		return target
	}
	if obj.IsAny() {
		return target
	}
	if obj.Equal(target) {
		return target
	}

	switch target.Kind {
	case KindFloat:
		if obj.Kind == KindInt { // widening
			return target
		}

	case KindList:
		if obj.Kind == KindList && obj.Val.ImplicitTo(target.Val) != nil {
			return target
		}

	case KindMap:
		if obj.Kind == KindMap && obj.Key.ImplicitTo(target.Key) != nil && obj.Val.ImplicitTo(target.Val) != nil {
			return target
		}
	}
	return nil
}

// ExplicitFrom returns this type if a value of type source can be cast into it
// with `source as T`. It returns nil if there is no such cast.
func (obj *Type) ExplicitFrom(source *Type) *Type {
	if obj.IsNone() || source.IsNone() {
		return nil
	}
	if source.ImplicitTo(obj) != nil {
		return obj
	}
	if source.IsAny() {
		return obj
	}

	switch obj.Kind {
	case KindBoolean:
		return obj // everything has a truth value

	case KindString:
		if source.Stringable() {
			return obj
		}

	case KindInt:
		switch source.Kind {
		case KindFloat, KindString, KindBoolean, KindTime:
			return obj
		}

	case KindFloat:
		switch source.Kind {
		case KindString, KindBoolean:
			return obj
		}

	case KindTime:
		switch source.Kind {
		case KindString, KindInt:
			return obj
		}

	case KindRegExp:
		if source.Kind == KindString {
			return obj
		}

	case KindList:
		if source.Kind == KindList && obj.Val.ExplicitFrom(source.Val) != nil {
			return obj
		}

	case KindMap:
		if source.Kind == KindMap && obj.Key.ExplicitFrom(source.Key) != nil && obj.Val.ExplicitFrom(source.Val) != nil {
			return obj
		}

	case KindObject:
		if source.Kind == KindMap && source.Key.Kind == KindString {
			return obj
		}
	}
	return nil
}

// Widen returns the common type of a and b under implicit conversion, or nil
// if there isn't one.
func Widen(a, b *Type) *Type {
	if a.Equal(b) {
		return a
	}
	if t := b.ImplicitTo(a); t != nil && !b.IsAny() {
		return t
	}
	if t := a.ImplicitTo(b); t != nil && !a.IsAny() {
		return t
	}
	if a.IsAny() || b.IsAny() {
		return TypeAny
	}
	return nil
}

// Common returns the element type of a literal list made of values of the given
// types. It falls back to any when no common type exists, and for empty lists.
func Common(list []*Type) *Type {
	if len(list) == 0 {
		return TypeAny
	}
	common := list[0]
	for _, x := range list[1:] {
		if common = Widen(common, x); common == nil {
			return TypeAny
		}
	}
	if common.IsNone() {
		return TypeAny
	}
	return common
}

// BinaryOp returns the type of `obj <op> other`. It returns nil if the operator
// is not supported between the two types. Comparisons return the type the two
// operands are compared as, the caller decides that the result is a boolean.
func (obj *Type) BinaryOp(other *Type, op Op) *Type {
	if obj.IsNone() || other.IsNone() {
		return nil
	}
	if obj.IsAny() || other.IsAny() {
		return TypeAny
	}

	if op.IsBoolean() {
		if obj.HasBoolean() && other.HasBoolean() {
			return TypeBoolean
		}
		return nil
	}

	// string concatenation
	if op == OpAdd {
		if obj.Kind == KindString && other.Stringable() {
			return obj
		}
		if other.Kind == KindString && obj.Stringable() {
			return other
		}
	}

	common := Widen(obj, other)
	if common == nil {
		return nil
	}

	switch op {
	case OpEq, OpNe:
		return common

	case OpLt, OpLe, OpGt, OpGe:
		switch common.Kind {
		case KindInt, KindFloat, KindString, KindTime:
			return common
		}
		return nil

	case OpAdd:
		switch common.Kind {
		case KindInt, KindFloat, KindTime, KindList, KindMap:
			return common
		}
		return nil

	case OpSub:
		switch common.Kind {
		case KindInt, KindFloat, KindTime:
			return common
		}
		return nil

	case OpDiv:
		if common.Kind == KindInt { // division always widens
			return TypeFloat
		}
		if common.Kind == KindFloat {
			return common
		}
		return nil

	case OpMul, OpMod, OpPow:
		if common.IsNumeric() {
			return common
		}
		return nil
	}
	return nil
}

// Index returns the type of indexing into this type with a key of the given
// type. It returns nil if this type can't be indexed that way.
func (obj *Type) Index(key *Type, kind IndexKind) *Type {
	if obj.IsNone() || key.IsNone() {
		return nil
	}
	if obj.IsAny() {
		return TypeAny
	}

	if kind == IndexDot {
		if obj.Kind == KindObject {
			return TypeAny
		}
		return nil
	}

	switch obj.Kind {
	case KindList:
		switch key.Kind {
		case KindInt, KindAny:
			return obj.Val
		case KindRange:
			return obj
		}

	case KindString:
		switch key.Kind {
		case KindInt, KindRange, KindAny:
			return obj
		}

	case KindMap:
		if key.ImplicitTo(obj.Key) != nil {
			return obj.Val
		}

	case KindObject:
		if key.Kind == KindString || key.Kind == KindAny {
			return TypeAny
		}
	}
	return nil
}

// Output returns the types bound by a `foreach` over this type with n output
// names. It returns nil if this type can't be iterated with n names.
func (obj *Type) Output(n int) []*Type {
	switch obj.Kind {
	case KindAny:
		if n == 1 {
			return []*Type{TypeAny}
		}
		if n == 2 {
			return []*Type{TypeAny, TypeAny}
		}

	case KindList:
		if n == 1 {
			return []*Type{obj.Val}
		}
		if n == 2 {
			return []*Type{TypeInt, obj.Val}
		}

	case KindMap:
		if n == 1 {
			return []*Type{obj.Key}
		}
		if n == 2 {
			return []*Type{obj.Key, obj.Val}
		}

	case KindString:
		if n == 1 {
			return []*Type{obj}
		}
		if n == 2 {
			return []*Type{TypeInt, obj}
		}

	case KindRange:
		if n == 1 {
			return []*Type{TypeInt}
		}
	}
	return nil
}
