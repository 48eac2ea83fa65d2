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

// Package tree contains the generic positioned parse tree that the external
// parser hands over to the compiler, and its JSON and YAML decoders.
//
// A tree is made of tagged nodes whose children are either nodes or tokens. The
// layout of the children of each kind of node is:
//
//	start              block
//	block              statement*
//	assignment         path EQUALS? value
//	service            path NAME? arguments? output? block?
//	mutation           value NAME arguments?
//	if_block           value block elseif_block* else_block?
//	elseif_block       value block
//	else_block         block
//	foreach_block      value output block
//	while_block        value block
//	try_block          block catch_block? finally_block?
//	catch_block        output? block
//	finally_block      block
//	function_block     NAME typed_argument* function_output? block
//	when_block         path NAME arguments? output? block
//	return_statement   value?
//	break_statement
//	throw_statement    value?
//	call_expression    NAME arguments?
//	inline_expression  value
//	arguments          argument*
//	argument           NAME? value
//	output             NAME*
//	typed_argument     NAME types
//	function_output    types
//	path               NAME path_fragment*
//	path_fragment      NAME | value
//	entity, values     value
//	expression         value (OP value)* | OP value
//	type_cast          value types
//	range              value? COLON value?
//	key_value          value value
//	string             STRING
//	number             INT | FLOAT
//	boolean            BOOL
//	list               value*
//	objects            key_value*
//	regular_expression REGEXP FLAGS?
//	time               TIME
//	types              TYPE
//
// A value is any node that is valid in expression position. Tokens that the
// layout doesn't mention are allowed and ignored.
package tree

import (
	"fmt"
)

// Element is either a *Node or a *Token.
type Element interface {
	fmt.Stringer

	// Position returns the line coordinate and the column range.
	Position() (line string, column int, end int)

	isElement()
}

// Node is a tagged interior element of the tree.
type Node struct {
	Kind     Kind
	Children []Element

	Line   string // dotted line coordinate
	Column int    // zero based
	End    int
}

// NewNode builds a node.
func NewNode(kind Kind, line string, column, end int, children ...Element) *Node {
	if children == nil {
		children = []Element{}
	}
	return &Node{
		Kind:     kind,
		Children: children,
		Line:     line,
		Column:   column,
		End:      end,
	}
}

// String returns a short representation of the node for debugging.
func (obj *Node) String() string {
	return fmt.Sprintf("%s@%s:%d", obj.Kind, obj.Line, obj.Column)
}

// Position returns the line coordinate and the column range of the node.
func (obj *Node) Position() (string, int, int) {
	return obj.Line, obj.Column, obj.End
}

func (obj *Node) isElement() {}

// Nodes returns the children which are nodes.
func (obj *Node) Nodes() []*Node {
	nodes := []*Node{}
	for _, x := range obj.Children {
		if n, ok := x.(*Node); ok {
			nodes = append(nodes, n)
		}
	}
	return nodes
}

// Tokens returns the children which are tokens.
func (obj *Node) Tokens() []*Token {
	tokens := []*Token{}
	for _, x := range obj.Children {
		if t, ok := x.(*Token); ok {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

// Child returns the first child node of the given kind, or nil.
func (obj *Node) Child(kind Kind) *Node {
	for _, x := range obj.Nodes() {
		if x.Kind == kind {
			return x
		}
	}
	return nil
}

// ChildrenOf returns all the child nodes of the given kind.
func (obj *Node) ChildrenOf(kind Kind) []*Node {
	nodes := []*Node{}
	for _, x := range obj.Nodes() {
		if x.Kind == kind {
			nodes = append(nodes, x)
		}
	}
	return nodes
}

// Token returns the first child token of the given kind, or nil.
func (obj *Node) Token(kind TokenKind) *Token {
	for _, x := range obj.Tokens() {
		if x.Kind == kind {
			return x
		}
	}
	return nil
}

// Walk runs fn on this node and every node below it, depth first, parents
// before children. It stops at the first error.
func (obj *Node) Walk(fn func(*Node) error) error {
	if err := fn(obj); err != nil {
		return err
	}
	for _, x := range obj.Nodes() {
		if err := x.Walk(fn); err != nil {
			return err
		}
	}
	return nil
}

// Token is a leaf of the tree.
type Token struct {
	Kind  TokenKind
	Value string

	Line   string
	Column int
	End    int
}

// NewToken builds a token.
func NewToken(kind TokenKind, value string, line string, column, end int) *Token {
	return &Token{
		Kind:   kind,
		Value:  value,
		Line:   line,
		Column: column,
		End:    end,
	}
}

// String returns a short representation of the token for debugging.
func (obj *Token) String() string {
	return fmt.Sprintf("%s(%q)", obj.Kind, obj.Value)
}

// Position returns the line coordinate and the column range of the token.
func (obj *Token) Position() (string, int, int) {
	return obj.Line, obj.Column, obj.End
}

func (obj *Token) isElement() {}
