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

package funcs

import (
	"fmt"
	"sort"
	"strings"

	"github.com/purpleidea/storyc/lang/interfaces"
	"github.com/purpleidea/storyc/lang/scope"
	"github.com/purpleidea/storyc/lang/types"
)

// Function is a function declared by the program.
type Function struct {
	Name string

	// Args are the parameters in declaration order. Positional arguments
	// are bound in this order.
	Args []*scope.Symbol

	// Output is nil if the function doesn't return a value.
	Output *types.Type

	// Node is the declaration. It is used to point at earlier declarations.
	Node interfaces.Node
}

// Arg returns the parameter with the given name, or nil if there isn't one.
func (obj *Function) Arg(name string) *scope.Symbol {
	for _, x := range obj.Args {
		if x.Name == name {
			return x
		}
	}
	return nil
}

// Type returns the type of a call to this function.
func (obj *Function) Type() *types.Type {
	if obj.Output == nil {
		return types.TypeNone
	}
	return obj.Output
}

// String returns the signature of the function.
func (obj *Function) String() string {
	args := []string{}
	for _, x := range obj.Args {
		args = append(args, x.String())
	}
	s := fmt.Sprintf("%s(%s)", obj.Name, strings.Join(args, ", "))
	if obj.Output != nil {
		s += " -> " + obj.Output.String()
	}
	return s
}

// Arg is an argument of a call site, after its value was type checked.
type Arg struct {
	// Name is empty for a positional argument.
	Name string
	Type *types.Type

	// Node is the argument value. Errors point at it.
	Node interfaces.Node
}

// FunctionTable holds the functions declared by one program.
type FunctionTable struct {
	functions map[string]*Function
}

// NewFunctionTable returns an empty function table.
func NewFunctionTable() *FunctionTable {
	return &FunctionTable{
		functions: make(map[string]*Function),
	}
}

// Register adds a function. A second function with the same name is an error.
func (obj *FunctionTable) Register(fn *Function) error {
	if prev, exists := obj.functions[fn.Name]; exists {
		line := "?"
		if prev.Node != nil {
			line = prev.Node.Area().Line().String()
		}
		return interfaces.NewError(interfaces.ErrFunctionRedeclared, fn.Node, "name", fn.Name, "prev", line)
	}
	obj.functions[fn.Name] = fn
	return nil
}

// Resolve returns the function with this name. The boolean is false if there
// is none.
func (obj *FunctionTable) Resolve(name string) (*Function, bool) {
	fn, exists := obj.functions[name]
	return fn, exists
}

// Names returns the sorted names of all the functions.
func (obj *FunctionTable) Names() []string {
	names := []string{}
	for name := range obj.functions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Bind checks the arguments of a call to the named function and returns the
// function. Named arguments bind by name, positional ones in declaration
// order. Each value must implicitly convert to its parameter type.
func (obj *FunctionTable) Bind(node interfaces.Node, name string, args []*Arg) (*Function, error) {
	fn, exists := obj.Resolve(name)
	if !exists {
		return nil, interfaces.NewError(interfaces.ErrFunctionNotFound, node, "name", name)
	}

	bound := make(map[string]bool)
	for i, arg := range args {
		var param *scope.Symbol
		if arg.Name == "" {
			if i >= len(fn.Args) {
				return nil, interfaces.NewError(interfaces.ErrFunctionArgInvalid, at(arg, node), "name", name, "arg", fmt.Sprintf("#%d", i+1))
			}
			param = fn.Args[i]
		} else {
			param = fn.Arg(arg.Name)
		}
		if param == nil || bound[param.Name] {
			argName := arg.Name
			if argName == "" {
				argName = param.Name
			}
			return nil, interfaces.NewError(interfaces.ErrFunctionArgInvalid, at(arg, node), "name", name, "arg", argName)
		}
		bound[param.Name] = true

		if arg.Type.ImplicitTo(param.Type) == nil {
			return nil, interfaces.NewError(interfaces.ErrFunctionArgTypeMismatch, at(arg, node), "name", name, "arg", param.Name, "expected", param.Type.String(), "actual", arg.Type.String())
		}
	}

	for _, x := range fn.Args {
		if !bound[x.Name] {
			return nil, interfaces.NewError(interfaces.ErrFunctionArgRequired, node, "name", name, "arg", x.Name)
		}
	}
	return fn, nil
}

// at returns the node of the argument, or the call if it has none.
func at(arg *Arg, node interfaces.Node) interfaces.Node {
	if arg.Node != nil {
		return arg.Node
	}
	return node
}
