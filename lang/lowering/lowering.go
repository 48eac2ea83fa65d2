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

// Package lowering rewrites the sugared constructs of the language into the
// smaller core that the resolver and the code generator understand. It hoists
// inline expressions and string template code into their own statements,
// desugars while loops into a guarded infinite loop, and splits elseif
// conditions that need hoisting into a nested if.
package lowering

import (
	"fmt"

	"github.com/purpleidea/storyc/lang/ast"
	"github.com/purpleidea/storyc/lang/interfaces"
	"github.com/purpleidea/storyc/lang/types"
	"github.com/purpleidea/storyc/util/errwrap"
)

// Lowering is the desugaring pass. Running it on an already lowered program
// leaves the program unchanged.
type Lowering struct {
	// Parser parses the code segments of string templates.
	Parser interfaces.FragmentParser

	// Data is passed to the AST builder for template fragments.
	Data *interfaces.Data

	// Debug represents if we're running in debug mode or not.
	Debug bool

	// Logf is a logger which should be used.
	Logf func(format string, v ...interface{})
}

// Lower rewrites the program in place.
func (obj *Lowering) Lower(prog *ast.Program) error {
	if obj.Parser == nil {
		return fmt.Errorf("the fragment parser is missing")
	}
	if obj.Data == nil {
		obj.Data = &interfaces.Data{}
	}
	if obj.Logf == nil {
		obj.Logf = func(format string, v ...interface{}) {}
	}
	return obj.block(prog.Body)
}

// block lowers every statement of the block. The statements that get hoisted
// are inserted into the block while it is walked, so a snapshot is iterated.
func (obj *Lowering) block(b *ast.Block) error {
	stmts := make([]ast.Stmt, len(b.Stmts))
	copy(stmts, b.Stmts)
	for _, x := range stmts {
		if err := obj.stmt(b, x); err != nil {
			return err
		}
	}
	return nil
}

func (obj *Lowering) stmt(b *ast.Block, stmt ast.Stmt) error {
	fake := NewFakeTree(b, stmt.Area().Line())

	switch x := stmt.(type) {
	case *ast.StmtAssign:
		if err := obj.path(x.Target, fake); err != nil {
			return err
		}
		value, err := obj.top(x.Value, fake)
		if err != nil {
			return err
		}
		x.Value = value
		return nil

	case *ast.StmtExpr:
		value, err := obj.top(x.Value, fake)
		if err != nil {
			return err
		}
		x.Value = value
		return nil

	case *ast.StmtIf:
		return obj.ifStmt(x, fake)

	case *ast.StmtForeach:
		iterable, err := obj.expr(x.Iterable, fake)
		if err != nil {
			return err
		}
		x.Iterable = iterable
		return obj.block(x.Body)

	case *ast.StmtWhile:
		return obj.while(x, fake)

	case *ast.StmtTry:
		if err := obj.block(x.Body); err != nil {
			return err
		}
		if x.Catch != nil {
			if err := obj.block(x.Catch.Body); err != nil {
				return err
			}
		}
		if x.Finally != nil {
			if err := obj.block(x.Finally.Body); err != nil {
				return err
			}
		}
		return nil

	case *ast.StmtFunc:
		return obj.block(x.Body)

	case *ast.StmtWhen:
		if err := obj.path(x.Service, fake); err != nil {
			return err
		}
		if err := obj.args(x.Args, fake); err != nil {
			return err
		}
		return obj.block(x.Body)

	case *ast.StmtReturn:
		if x.Value == nil {
			return nil
		}
		value, err := obj.expr(x.Value, fake)
		if err != nil {
			return err
		}
		x.Value = value
		return nil

	case *ast.StmtThrow:
		if x.Value == nil {
			return nil
		}
		value, err := obj.expr(x.Value, fake)
		if err != nil {
			return err
		}
		x.Value = value
		return nil

	case *ast.StmtBreak:
		return nil
	}

	return errwrap.Wrapf(interfaces.ErrProgrammingError, "unhandled statement %T", stmt)
}

func (obj *Lowering) ifStmt(x *ast.StmtIf, fake *FakeTree) error {
	cond, err := obj.expr(x.Condition, fake)
	if err != nil {
		return err
	}
	x.Condition = cond
	if err := obj.block(x.Body); err != nil {
		return err
	}

	for i, elif := range x.Elifs {
		if !hoistable(elif.Condition) {
			cond, err := obj.expr(elif.Condition, fake)
			if err != nil {
				return err
			}
			elif.Condition = cond
			if err := obj.block(elif.Body); err != nil {
				return err
			}
			continue
		}

		// The condition would be hoisted ahead of the whole chain, and
		// run even if an earlier branch was taken. Move the rest of the
		// chain into an else that holds a nested if instead.
		if obj.Debug {
			obj.Logf("splitting elseif at %s", elif.Line())
		}
		nested := &ast.StmtIf{
			Textarea:  elif.Textarea,
			Condition: elif.Condition,
			Body:      elif.Body,
			Elifs:     append([]*ast.StmtElif{}, x.Elifs[i+1:]...),
			Else:      x.Else,
		}
		nested.Relocate(elif.Line().After(1))
		body := &ast.Block{Textarea: elif.Textarea, Stmts: []ast.Stmt{nested}}
		body.Relocate(nested.Line())
		x.Else = &ast.StmtElse{Textarea: elif.Textarea, Body: body}
		x.Elifs = x.Elifs[:i]
		return obj.block(body)
	}

	if x.Else != nil {
		return obj.block(x.Else.Body)
	}
	return nil
}

// while turns `while cond` into a `while true` loop that starts with a guard.
// The condition is stored in a synthesized variable before the loop, and it is
// evaluated again at the end of the body.
func (obj *Lowering) while(x *ast.StmtWhile, fake *FakeTree) error {
	if err := obj.block(x.Body); err != nil {
		return err
	}
	if b, ok := x.Condition.(*ast.ExprBool); ok && b.Value {
		return nil // already in its core form
	}

	line := x.Line()
	again := x.Condition.Copy()

	cond, err := obj.expr(x.Condition, fake)
	if err != nil {
		return err
	}
	ref := obj.hoist(cond, fake)
	if obj.Debug {
		obj.Logf("desugaring while at %s into %s", line, ref.Name)
	}

	// if not __p-c: break
	guardLine := line.After(1)
	brk := &ast.StmtBreak{Textarea: x.Textarea}
	brk.Relocate(guardLine.After(1))
	guardBody := &ast.Block{Textarea: brk.Textarea, Stmts: []ast.Stmt{brk}}
	not := &ast.ExprOp{
		Textarea: *cond.Area(),
		Op:       types.OpNot,
		Values:   []ast.Expr{ref.Copy()},
	}
	guard := &ast.StmtIf{
		Textarea:  x.Textarea,
		Condition: not,
		Body:      guardBody,
		Elifs:     []*ast.StmtElif{},
	}
	guard.Relocate(guardLine)

	// __p-c = cond, at the very end of the body
	last := brk.Line()
	if err := x.Body.Apply(func(node interfaces.Node) error {
		if l := node.Area().Line(); l.Cmp(last) > 0 {
			last = l
		}
		return nil
	}); err != nil {
		return err
	}
	tail := &ast.StmtAssign{
		Textarea: *again.Area(),
		Target:   ref.Copy().(*ast.ExprPath),
		Value:    again,
	}
	tail.Relocate(last.After(1))

	x.Body.Stmts = append([]ast.Stmt{guard}, x.Body.Stmts...)
	x.Body.Stmts = append(x.Body.Stmts, tail)
	x.Body.Relocate(guardLine)

	t := &ast.ExprBool{Textarea: *x.Condition.Area(), Value: true}
	x.Condition = t

	// the re-evaluation may need hoisting of its own inside the loop
	return obj.stmt(x.Body, tail)
}
