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

// Package codegen turns a lowered and resolved tree into the line indexed
// intermediate representation.
package codegen

import (
	"fmt"
	"strings"

	"github.com/purpleidea/storyc/lang/ast"
	"github.com/purpleidea/storyc/lang/interfaces"
	"github.com/purpleidea/storyc/lang/ir"
	"github.com/purpleidea/storyc/lang/types"
	"github.com/purpleidea/storyc/util/errwrap"
)

// Methods of the emitted lines.
const (
	MethodExpression = "expression"
	MethodMutation   = "mutation"
	MethodExecute    = "execute"
	MethodCall       = "call"
	MethodFunction   = "function"
	MethodIf         = "if"
	MethodElif       = "elif"
	MethodElse       = "else"
	MethodFor        = "for"
	MethodWhile      = "while"
	MethodTry        = "try"
	MethodCatch      = "catch"
	MethodFinally    = "finally"
	MethodWhen       = "when"
	MethodReturn     = "return"
	MethodBreak      = "break"
	MethodThrow      = "throw"
)

// Lines is the code generator. It is not safe for concurrent use, but many of
// them may run side by side.
type Lines struct {
	// Version is stored in the program. The default is used if empty.
	Version string

	Debug bool
	Logf  func(format string, v ...interface{})

	program *ir.Program
}

// construct is what a statement emitted into its block.
type construct struct {
	head    *ir.Line   // first line at the level of the block
	tail    *ir.Line   // last line at the level of the block
	openers []*ir.Line // lines waiting for their exit
}

// Generate emits the program. The tree must have been lowered and resolved, the
// resolver marks which service names are outputs, and every other one is added
// to the services of the program. A block opener that is the last statement of
// its block gets no exit: the runtime continues from its parent instead.
func (obj *Lines) Generate(prog *ast.Program) (*ir.Program, error) {
	if prog == nil || prog.Body == nil {
		return nil, errwrap.Wrapf(interfaces.ErrProgrammingError, "no program")
	}
	obj.program = ir.New(obj.Version)

	if _, err := obj.block(prog.Body, nil); err != nil {
		return nil, err
	}
	if obj.Debug {
		obj.Logf("emitted %d lines", len(obj.program.Tree))
	}
	return obj.program, nil
}

// block emits every statement of a block and links them. It returns the first
// line, or nil if the block is empty. The exits that are still pending when
// the block closes are dropped, the runtime follows the parent instead.
func (obj *Lines) block(b *ast.Block, parent *ir.Line) (*ir.Line, error) {
	if b == nil {
		return nil, nil
	}
	var first, prev *ir.Line
	pending := []*ir.Line{}
	for _, stmt := range b.Stmts {
		c, err := obj.stmt(stmt, parent)
		if err != nil {
			return nil, err
		}
		if first == nil {
			first = c.head
		}
		if prev != nil {
			prev.Next = ir.Str(c.head.Ln)
		}
		for _, x := range pending {
			x.Exit = ir.Str(c.head.Ln)
		}
		pending = c.openers
		prev = c.tail
	}
	return first, nil
}

// line adds a new line for a node.
func (obj *Lines) line(node interfaces.Node, method string, parent *ir.Line) (*ir.Line, error) {
	ln := node.Area().Line()
	if ln.IsZero() {
		return nil, errwrap.Wrapf(interfaces.ErrProgrammingError, "%s has no position", node)
	}
	line := &ir.Line{
		Ln:     ln.String(),
		Method: method,
	}
	if parent != nil {
		line.Parent = ir.Str(parent.Ln)
	}
	if err := obj.program.Add(line); err != nil {
		return nil, err
	}
	if obj.Debug {
		obj.Logf("line %s", line)
	}
	return line, nil
}

// opener emits a line that starts a block, and the block itself.
func (obj *Lines) opener(node interfaces.Node, method string, body *ast.Block, parent *ir.Line, fn func(*ir.Line) error) (*ir.Line, error) {
	line, err := obj.line(node, method, parent)
	if err != nil {
		return nil, err
	}
	if fn != nil {
		if err := fn(line); err != nil {
			return nil, err
		}
	}
	first, err := obj.block(body, line)
	if err != nil {
		return nil, err
	}
	if first != nil {
		line.Enter = ir.Str(first.Ln)
	}
	return line, nil
}

func single(line *ir.Line) *construct {
	return &construct{head: line, tail: line}
}

func (obj *Lines) stmt(stmt ast.Stmt, parent *ir.Line) (*construct, error) {
	switch x := stmt.(type) {
	case *ast.StmtAssign:
		return obj.value(x, x.Target, x.Value, parent)

	case *ast.StmtExpr:
		return obj.value(x, nil, x.Value, parent)

	case *ast.StmtIf:
		return obj.ifChain(x, parent)

	case *ast.StmtForeach:
		line, err := obj.opener(x, MethodFor, x.Body, parent, func(line *ir.Line) error {
			v, err := Encode(x.Iterable)
			if err != nil {
				return err
			}
			line.Args = []interface{}{v}
			line.Output = append([]string{}, x.Names...)
			return nil
		})
		if err != nil {
			return nil, err
		}
		return &construct{head: line, tail: line, openers: []*ir.Line{line}}, nil

	case *ast.StmtWhile:
		line, err := obj.opener(x, MethodWhile, x.Body, parent, func(line *ir.Line) error {
			v, err := Encode(x.Condition)
			if err != nil {
				return err
			}
			line.Args = []interface{}{v}
			return nil
		})
		if err != nil {
			return nil, err
		}
		return &construct{head: line, tail: line, openers: []*ir.Line{line}}, nil

	case *ast.StmtTry:
		return obj.try(x, parent)

	case *ast.StmtFunc:
		line, err := obj.opener(x, MethodFunction, x.Body, parent, func(line *ir.Line) error {
			line.Function = ir.Str(x.Name)
			args := []interface{}{}
			for _, p := range x.Params {
				args = append(args, ir.NewObject("arg", "name", p.Name, "arg", EncodeType(p.Type)))
			}
			line.Args = args
			if x.Output != nil {
				line.Output = []string{x.Output.String()}
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		if _, exists := obj.program.Functions[x.Name]; exists {
			return nil, errwrap.Wrapf(interfaces.ErrProgrammingError, "function %s was emitted twice", x.Name)
		}
		obj.program.Functions[x.Name] = line.Ln
		return &construct{head: line, tail: line, openers: []*ir.Line{line}}, nil

	case *ast.StmtWhen:
		return obj.when(x, parent)

	case *ast.StmtReturn:
		return obj.simple(x, MethodReturn, x.Value, parent)

	case *ast.StmtThrow:
		return obj.simple(x, MethodThrow, x.Value, parent)

	case *ast.StmtBreak:
		return obj.simple(x, MethodBreak, nil, parent)
	}

	return nil, errwrap.Wrapf(interfaces.ErrProgrammingError, "unhandled statement %T", stmt)
}

// simple emits a line with an optional value as its only argument.
func (obj *Lines) simple(node interfaces.Node, method string, value ast.Expr, parent *ir.Line) (*construct, error) {
	line, err := obj.line(node, method, parent)
	if err != nil {
		return nil, err
	}
	if value != nil {
		v, err := Encode(value)
		if err != nil {
			return nil, err
		}
		line.Args = []interface{}{v}
	}
	return single(line), nil
}

// value emits an assignment or an expression statement. The method depends on
// what the value is.
func (obj *Lines) value(node interfaces.Node, target *ast.ExprPath, value ast.Expr, parent *ir.Line) (*construct, error) {
	var name []string
	if target != nil {
		paths, err := Paths(target)
		if err != nil {
			return nil, err
		}
		for _, p := range paths {
			name = append(name, pathName(p))
		}
	}

	switch x := value.(type) {
	case *ast.ExprService:
		return obj.service(node, name, x, parent)

	case *ast.ExprMutation:
		line, err := obj.line(node, MethodMutation, parent)
		if err != nil {
			return nil, err
		}
		line.Name = name
		subject, err := Encode(x.Subject)
		if err != nil {
			return nil, err
		}
		args, err := EncodeArgs(x.Args)
		if err != nil {
			return nil, err
		}
		line.Args = []interface{}{
			subject,
			ir.NewObject("mutation", "mutation", x.Name, "arguments", args),
		}
		return single(line), nil

	case *ast.ExprCall:
		line, err := obj.line(node, MethodCall, parent)
		if err != nil {
			return nil, err
		}
		line.Name = name
		line.Function = ir.Str(x.Name)
		if line.Args, err = EncodeArgs(x.Args); err != nil {
			return nil, err
		}
		return single(line), nil
	}

	line, err := obj.line(node, MethodExpression, parent)
	if err != nil {
		return nil, err
	}
	line.Name = name
	v, err := Encode(value)
	if err != nil {
		return nil, err
	}
	line.Args = []interface{}{v}
	return single(line), nil
}

// service emits an execute line, and its block if it has one.
func (obj *Lines) service(node interfaces.Node, name []string, x *ast.ExprService, parent *ir.Line) (*construct, error) {
	svc, err := serviceName(x.Name)
	if err != nil {
		return nil, err
	}
	if !x.Bound {
		obj.program.AddService(svc)
	}

	fn := func(line *ir.Line) error {
		line.Name = name
		line.Service = ir.Str(svc)
		line.Command = ir.Str(x.Command)
		args, err := EncodeArgs(x.Args)
		if err != nil {
			return err
		}
		line.Args = args
		line.Output = append([]string{}, x.Output...)
		return nil
	}

	if x.Block == nil {
		line, err := obj.line(node, MethodExecute, parent)
		if err != nil {
			return nil, err
		}
		if err := fn(line); err != nil {
			return nil, err
		}
		return single(line), nil
	}

	line, err := obj.opener(node, MethodExecute, x.Block, parent, fn)
	if err != nil {
		return nil, err
	}
	return &construct{head: line, tail: line, openers: []*ir.Line{line}}, nil
}

// when emits a when block. Its service is either an output of an enclosing
// block or an external service, as the resolver decided.
func (obj *Lines) when(x *ast.StmtWhen, parent *ir.Line) (*construct, error) {
	svc, err := serviceName(x.Service)
	if err != nil {
		return nil, err
	}
	if !x.Bound {
		obj.program.AddService(svc)
	}
	line, err := obj.opener(x, MethodWhen, x.Body, parent, func(line *ir.Line) error {
		line.Service = ir.Str(svc)
		line.Command = ir.Str(x.Command)
		args, err := EncodeArgs(x.Args)
		if err != nil {
			return err
		}
		line.Args = args
		line.Output = append([]string{}, x.Output...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &construct{head: line, tail: line, openers: []*ir.Line{line}}, nil
}

// ifChain emits the if header, every elif and the else as siblings. They all
// exit past the whole chain.
func (obj *Lines) ifChain(x *ast.StmtIf, parent *ir.Line) (*construct, error) {
	cond := func(expr ast.Expr) func(*ir.Line) error {
		return func(line *ir.Line) error {
			v, err := Encode(expr)
			if err != nil {
				return err
			}
			line.Args = []interface{}{v}
			return nil
		}
	}

	head, err := obj.opener(x, MethodIf, x.Body, parent, cond(x.Condition))
	if err != nil {
		return nil, err
	}
	c := &construct{head: head, tail: head, openers: []*ir.Line{head}}
	for _, elif := range x.Elifs {
		line, err := obj.opener(elif, MethodElif, elif.Body, parent, cond(elif.Condition))
		if err != nil {
			return nil, err
		}
		c.sibling(line)
	}
	if x.Else != nil {
		line, err := obj.opener(x.Else, MethodElse, x.Else.Body, parent, nil)
		if err != nil {
			return nil, err
		}
		c.sibling(line)
	}
	return c, nil
}

// try emits the try header, and the catch and finally headers as siblings.
func (obj *Lines) try(x *ast.StmtTry, parent *ir.Line) (*construct, error) {
	head, err := obj.opener(x, MethodTry, x.Body, parent, nil)
	if err != nil {
		return nil, err
	}
	c := &construct{head: head, tail: head, openers: []*ir.Line{head}}
	if x.Catch != nil {
		line, err := obj.opener(x.Catch, MethodCatch, x.Catch.Body, parent, func(line *ir.Line) error {
			if x.Catch.Name != "" {
				line.Output = []string{x.Catch.Name}
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		c.sibling(line)
	}
	if x.Finally != nil {
		line, err := obj.opener(x.Finally, MethodFinally, x.Finally.Body, parent, nil)
		if err != nil {
			return nil, err
		}
		c.sibling(line)
	}
	return c, nil
}

// sibling appends another header of the same construct.
func (obj *construct) sibling(line *ir.Line) {
	obj.tail.Next = ir.Str(line.Ln)
	obj.tail = line
	obj.openers = append(obj.openers, line)
}

// serviceName returns the dotted name of a service.
func serviceName(x *ast.ExprPath) (string, error) {
	names := []string{x.Name}
	for _, f := range x.Fragments {
		if f.Kind != types.IndexDot {
			return "", errwrap.Wrapf(interfaces.ErrProgrammingError, "service %s has a dynamic name", x)
		}
		names = append(names, f.Name)
	}
	return strings.Join(names, "."), nil
}

// pathName returns the name of an encoded path segment.
func pathName(p interface{}) string {
	switch x := p.(type) {
	case string:
		return x
	case ir.Object:
		for k, v := range x {
			if k != ir.ObjectKey {
				return fmt.Sprintf("%v", v)
			}
		}
	}
	return fmt.Sprintf("%v", p)
}
