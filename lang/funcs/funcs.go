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

// Package funcs provides the tables of callables: the functions declared by a
// program, and the builtin mutations that operate on values.
package funcs

import (
	"fmt"
	"sync"
)

// builtinSignatures are the builtin mutations, in the signature language.
var builtinSignatures = []string{
	// strings
	"string length -> int",
	"string size -> int # deprecated: use length",
	"string contains item:string -> boolean",
	"string contains pattern:regexp -> boolean",
	"string startswith prefix:string -> boolean",
	"string endswith suffix:string -> boolean",
	"string lowercase -> string",
	"string uppercase -> string",
	"string capitalize -> string",
	"string trim -> string",
	"string split by:string -> List[string]",
	"string split pattern:regexp -> List[string]",
	"string replace item:string by:string -> string",
	"string replace pattern:regexp by:string -> string",
	"string substring start:int -> string",
	"string substring start:int end:int -> string",
	"string matches pattern:regexp -> boolean",
	"string decode -> any",
	"string to_int -> int",
	"string to_float -> float",

	// numbers
	"int absolute -> int",
	"int increment -> int",
	"int decrement -> int",
	"int is_odd -> boolean",
	"int is_even -> boolean",
	"float round -> int",
	"float floor -> int",
	"float ceil -> int",
	"float absolute -> float",
	"float is_nan -> boolean",

	// times
	"time to_seconds -> int",
	"time to_millis -> int",

	// lists
	"List[A] length -> int",
	"List[A] size -> int # deprecated: use length",
	"List[A] contains item:A -> boolean",
	"List[A] index item:A -> int",
	"List[A] append item:A -> List[A]",
	"List[A] prepend item:A -> List[A]",
	"List[A] remove item:A -> List[A]",
	"List[A] random -> A",
	"List[A] reverse -> List[A]",
	"List[A] sort -> List[A]",
	"List[A] unique -> List[A]",
	"List[A] join -> string",
	"List[A] join by:string -> string",
	"List[A] min -> A",
	"List[A] max -> A",
	"List[A] sum -> A",

	// maps
	"Map[K,V] length -> int",
	"Map[K,V] size -> int # deprecated: use length",
	"Map[K,V] keys -> List[K]",
	"Map[K,V] values -> List[V]",
	"Map[K,V] flatten -> List[any]",
	"Map[K,V] contains key:K -> boolean",
	"Map[K,V] contains value:V -> boolean",
	"Map[K,V] get key:K default:V -> V",
	"Map[K,V] pop key:K -> V",
	"Map[K,V] remove key:K -> Map[K,V]",
}

var (
	builtinsOnce  = &sync.Once{}
	builtinsTable *MutationTable
)

// Builtins returns the table of builtin mutations. It is built the first time
// it is needed and never changes afterwards.
func Builtins() *MutationTable {
	builtinsOnce.Do(func() {
		mutations, err := ParseSignatures(builtinSignatures...)
		if err != nil {
			panic(fmt.Sprintf("invalid builtin signature: %+v", err))
		}
		builtinsTable = NewMutationTable(nil, mutations...)
	})
	return builtinsTable
}

// Signatures returns the builtin mutations in the signature language.
func Signatures() []string {
	return append([]string{}, builtinSignatures...)
}
