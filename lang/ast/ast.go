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

// Package ast contains the structs implementing the typed syntax tree and some
// utility functions for interacting with it.
package ast

import (
	"fmt"
	"strings"

	"github.com/purpleidea/storyc/lang/interfaces"
	"github.com/purpleidea/storyc/lang/scope"
	"github.com/purpleidea/storyc/lang/types"
)

// Stmt is a statement of the language.
type Stmt interface {
	interfaces.Node

	// Copy returns a deep copy of the statement.
	Copy() Stmt

	stmt()
}

// Expr is an expression of the language. The resolver annotates every
// expression with its type.
type Expr interface {
	interfaces.Node

	// Copy returns a deep copy of the expression.
	Copy() Expr

	// Type returns the annotated type, or nil if it wasn't resolved yet.
	Type() *types.Type

	// SetType annotates the expression with its type.
	SetType(*types.Type)

	expr()
}

// typed is embedded in every expression to store its annotated type.
type typed struct {
	typ *types.Type
}

// Type returns the annotated type, or nil if it wasn't resolved yet.
func (obj *typed) Type() *types.Type { return obj.typ }

// SetType annotates the expression with its type.
func (obj *typed) SetType(typ *types.Type) { obj.typ = typ }

// Program is the root of the tree.
type Program struct {
	interfaces.Textarea

	Body *Block
}

// String returns a short representation of the program.
func (obj *Program) String() string {
	return fmt.Sprintf("program(%d)", len(obj.Body.Stmts))
}

// Apply is a general purpose iterator method that operates on any AST node. It
// visits the children first and then the node itself. It is not used as the
// primary traversal function of the passes, since each of them needs to know
// about the structure, but it is useful for operations that only apply to a
// select number of node types.
func (obj *Program) Apply(fn func(interfaces.Node) error) error {
	if err := obj.Body.Apply(fn); err != nil {
		return err
	}
	return fn(obj)
}

// Copy returns a deep copy of the program.
func (obj *Program) Copy() *Program {
	return &Program{
		Textarea: obj.Textarea,
		Body:     obj.Body.Copy(),
	}
}

// Block is an indented list of statements. It carries the scope that the
// resolver built for it.
type Block struct {
	interfaces.Textarea

	Stmts []Stmt

	Scope *scope.Scope // set by the resolver
}

// String returns a short representation of the block.
func (obj *Block) String() string {
	return fmt.Sprintf("block(%d)", len(obj.Stmts))
}

// Apply runs fn on every node of the block, and finally on the block.
func (obj *Block) Apply(fn func(interfaces.Node) error) error {
	for _, x := range obj.Stmts {
		if err := x.Apply(fn); err != nil {
			return err
		}
	}
	return fn(obj)
}

// Copy returns a deep copy of the block. The scope is not copied.
func (obj *Block) Copy() *Block {
	if obj == nil {
		return nil
	}
	stmts := make([]Stmt, 0, len(obj.Stmts))
	for _, x := range obj.Stmts {
		stmts = append(stmts, x.Copy())
	}
	return &Block{
		Textarea: obj.Textarea,
		Stmts:    stmts,
	}
}

// Insert adds a statement to the block ahead of the statement on the given
// line. If no statement is on that line, it goes in just before the last one.
func (obj *Block) Insert(stmt Stmt, before interfaces.Coordinate) {
	index := -1
	for i, x := range obj.Stmts {
		if x.Area().Line().Equal(before) {
			index = i
			break
		}
	}
	if index < 0 {
		index = len(obj.Stmts) - 1
	}
	if index < 0 {
		index = 0
	}
	obj.Stmts = append(obj.Stmts, nil)
	copy(obj.Stmts[index+1:], obj.Stmts[index:])
	obj.Stmts[index] = stmt
}

// Argument is a named or positional argument of a call, service, mutation or
// when block.
type Argument struct {
	interfaces.Textarea

	Name  string // empty for positional arguments
	Value Expr
}

// String returns a short representation of the argument.
func (obj *Argument) String() string {
	if obj.Name == "" {
		return obj.Value.String()
	}
	return fmt.Sprintf("%s:%s", obj.Name, obj.Value)
}

// Apply runs fn on the value and then on the argument.
func (obj *Argument) Apply(fn func(interfaces.Node) error) error {
	if err := obj.Value.Apply(fn); err != nil {
		return err
	}
	return fn(obj)
}

// Copy returns a deep copy of the argument.
func (obj *Argument) Copy() *Argument {
	return &Argument{
		Textarea: obj.Textarea,
		Name:     obj.Name,
		Value:    obj.Value.Copy(),
	}
}

func copyArgs(args []*Argument) []*Argument {
	if args == nil {
		return nil
	}
	out := make([]*Argument, 0, len(args))
	for _, x := range args {
		out = append(out, x.Copy())
	}
	return out
}

func applyArgs(args []*Argument, fn func(interfaces.Node) error) error {
	for _, x := range args {
		if err := x.Apply(fn); err != nil {
			return err
		}
	}
	return nil
}

func argsString(args []*Argument) string {
	s := []string{}
	for _, x := range args {
		s = append(s, x.String())
	}
	return strings.Join(s, ", ")
}

// ArgNames returns the names of the named arguments in order.
func ArgNames(args []*Argument) []string {
	names := []string{}
	for _, x := range args {
		if x.Name != "" {
			names = append(names, x.Name)
		}
	}
	return names
}
