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

// Package scope contains the symbol tables used by the type resolver. A scope
// maps variable names to symbols, and is chained to the scope it was opened in.
package scope

import (
	"fmt"
	"sort"
	"strings"

	"github.com/purpleidea/storyc/lang/interfaces"
	"github.com/purpleidea/storyc/lang/types"
)

// StorageClass is the mutability of a symbol.
type StorageClass int

const (
	// ReadOnly symbols can neither be rebound nor written into.
	ReadOnly StorageClass = iota

	// Writable symbols can't be rebound, but their contents may be changed
	// by assigning into one of their fragments.
	Writable

	// Rebindable symbols can be assigned a new value.
	Rebindable
)

// String returns the name of the storage class.
func (obj StorageClass) String() string {
	switch obj {
	case ReadOnly:
		return "readonly"
	case Writable:
		return "writable"
	case Rebindable:
		return "rebindable"
	}
	return fmt.Sprintf("storage(%d)", int(obj))
}

// CanWrite returns true if assigning into a fragment of the symbol is allowed.
func (obj StorageClass) CanWrite() bool {
	return obj == Writable || obj == Rebindable
}

// CanRebind returns true if the symbol may be assigned a new value.
func (obj StorageClass) CanRebind() bool {
	return obj == Rebindable
}

// Symbol is a named, typed entry of a scope.
type Symbol struct {
	Name    string
	Type    *types.Type
	Storage StorageClass

	// Internal is true for variables synthesized by the compiler. They are
	// exempt from the naming rules.
	Internal bool

	// Service is true for the outputs of service and when blocks. These
	// reference service clients and are never turned into mutations.
	Service bool
}

// NewSymbol builds a symbol. It is marked internal if the name carries the
// internal prefix.
func NewSymbol(name string, typ *types.Type, storage StorageClass) *Symbol {
	return &Symbol{
		Name:     name,
		Type:     typ,
		Storage:  storage,
		Internal: strings.HasPrefix(name, interfaces.InternalPrefix),
	}
}

// String returns a short representation of the symbol.
func (obj *Symbol) String() string {
	return fmt.Sprintf("%s:%s", obj.Name, obj.Type)
}

// Copy returns a copy of the symbol. Types are immutable and are not copied.
func (obj *Symbol) Copy() *Symbol {
	return &Symbol{
		Name:     obj.Name,
		Type:     obj.Type,
		Storage:  obj.Storage,
		Internal: obj.Internal,
		Service:  obj.Service,
	}
}

// Scope is a table of symbols. Child scopes can see the symbols of all of
// their parents, but a symbol declared in a child is dropped with it unless
// a Joiner lifts it into the parent.
type Scope struct {
	symbols map[string]*Symbol
	parent  *Scope
}

// NewRoot returns a scope without a parent. It is used for the program and
// for each function body, and starts out with the read-only app object.
func NewRoot() *Scope {
	obj := &Scope{
		symbols: make(map[string]*Symbol),
	}
	obj.Insert(NewSymbol(interfaces.AppName, types.TypeObject, ReadOnly))
	return obj
}

// Child returns a new empty scope chained to this one.
func (obj *Scope) Child() *Scope {
	return &Scope{
		symbols: make(map[string]*Symbol),
		parent:  obj,
	}
}

// Parent returns the scope this one was opened in, or nil for a root.
func (obj *Scope) Parent() *Scope {
	return obj.parent
}

// IsRoot returns true if the scope has no parent.
func (obj *Scope) IsRoot() bool {
	return obj.parent == nil
}

// Insert adds or replaces a symbol in this scope.
func (obj *Scope) Insert(sym *Symbol) {
	obj.symbols[sym.Name] = sym
}

// Local returns the symbol declared in this very scope, or nil.
func (obj *Scope) Local(name string) *Symbol {
	return obj.symbols[name]
}

// Resolve looks the name up through the chain of scopes, returning nil if it
// is not declared anywhere.
func (obj *Scope) Resolve(name string) *Symbol {
	for s := obj; s != nil; s = s.parent {
		if sym, exists := s.symbols[name]; exists {
			return sym
		}
	}
	return nil
}

// Symbols returns the symbols declared in this scope, sorted by name.
func (obj *Scope) Symbols() []*Symbol {
	names := make([]string, 0, len(obj.symbols))
	for name := range obj.symbols {
		names = append(names, name)
	}
	sort.Strings(names)
	out := []*Symbol{}
	for _, name := range names {
		out = append(out, obj.symbols[name])
	}
	return out
}

// String returns the chain of scopes, innermost first.
func (obj *Scope) String() string {
	parts := []string{}
	for s := obj; s != nil; s = s.parent {
		names := []string{}
		for _, sym := range s.Symbols() {
			names = append(names, sym.String())
		}
		parts = append(parts, "{"+strings.Join(names, ", ")+"}")
	}
	return strings.Join(parts, " -> ")
}
