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

package lowering

import (
	"github.com/purpleidea/storyc/lang/ast"
	"github.com/purpleidea/storyc/lang/interfaces"
	"github.com/purpleidea/storyc/lang/interpolate"
	"github.com/purpleidea/storyc/lang/types"
	"github.com/purpleidea/storyc/util/errwrap"
)

// top lowers the value of an assignment or of a bare statement. These are the
// only positions where a service, a mutation or a call may stay in place.
func (obj *Lowering) top(expr ast.Expr, fake *FakeTree) (ast.Expr, error) {
	if x, ok := expr.(*ast.ExprInline); ok {
		expr = x.Value // the parentheses are redundant here
	}

	switch x := expr.(type) {
	case *ast.ExprService:
		if err := obj.service(x, fake); err != nil {
			return nil, err
		}
		if x.Block != nil {
			if err := obj.block(x.Block); err != nil {
				return nil, err
			}
		}
		return x, nil

	case *ast.ExprMutation:
		if err := obj.mutation(x, fake); err != nil {
			return nil, err
		}
		return x, nil

	case *ast.ExprCall:
		if err := obj.args(x.Args, fake); err != nil {
			return nil, err
		}
		return x, nil
	}
	return obj.expr(expr, fake)
}

func (obj *Lowering) service(x *ast.ExprService, fake *FakeTree) error {
	if err := obj.path(x.Name, fake); err != nil {
		return err
	}
	return obj.args(x.Args, fake)
}

func (obj *Lowering) mutation(x *ast.ExprMutation, fake *FakeTree) error {
	subject, err := obj.expr(x.Subject, fake)
	if err != nil {
		return err
	}
	x.Subject = subject
	return obj.args(x.Args, fake)
}

func (obj *Lowering) args(args []*ast.Argument, fake *FakeTree) error {
	for _, x := range args {
		value, err := obj.expr(x.Value, fake)
		if err != nil {
			return err
		}
		x.Value = value
	}
	return nil
}

func (obj *Lowering) path(x *ast.ExprPath, fake *FakeTree) error {
	for _, f := range x.Fragments {
		if f.Key == nil {
			continue
		}
		key, err := obj.expr(f.Key, fake)
		if err != nil {
			return err
		}
		f.Key = key
	}
	return nil
}

// expr lowers an expression that is nested in a statement and returns what
// should take its place. Children are lowered before their parents, so the
// innermost expressions are hoisted first.
func (obj *Lowering) expr(expr ast.Expr, fake *FakeTree) (ast.Expr, error) {
	switch x := expr.(type) {
	case *ast.ExprInline:
		value, err := obj.top(x.Value, fake)
		if err != nil {
			return nil, err
		}
		if _, ok := value.(*ast.ExprPath); ok { // nothing left to run
			return value, nil
		}
		return obj.hoist(value, fake), nil

	case *ast.ExprService:
		if err := obj.service(x, fake); err != nil {
			return nil, err
		}
		return obj.hoist(x, fake), nil

	case *ast.ExprMutation:
		if err := obj.mutation(x, fake); err != nil {
			return nil, err
		}
		return obj.hoist(x, fake), nil

	case *ast.ExprCall:
		if err := obj.args(x.Args, fake); err != nil {
			return nil, err
		}
		return obj.hoist(x, fake), nil

	case *ast.ExprString:
		return obj.template(x, fake)

	case *ast.ExprInt, *ast.ExprFloat, *ast.ExprBool, *ast.ExprRegExp, *ast.ExprTime:
		return x, nil

	case *ast.ExprPath:
		return x, obj.path(x, fake)

	case *ast.ExprRange:
		if x.Start != nil {
			v, err := obj.expr(x.Start, fake)
			if err != nil {
				return nil, err
			}
			x.Start = v
		}
		if x.End != nil {
			v, err := obj.expr(x.End, fake)
			if err != nil {
				return nil, err
			}
			x.End = v
		}
		return x, nil

	case *ast.ExprList:
		for i, item := range x.Items {
			v, err := obj.expr(item, fake)
			if err != nil {
				return nil, err
			}
			x.Items[i] = v
		}
		return x, nil

	case *ast.ExprMap:
		for _, kv := range x.Pairs {
			k, err := obj.expr(kv.Key, fake)
			if err != nil {
				return nil, err
			}
			v, err := obj.expr(kv.Value, fake)
			if err != nil {
				return nil, err
			}
			kv.Key, kv.Value = k, v
		}
		return x, nil

	case *ast.ExprOp:
		for i, v := range x.Values {
			v, err := obj.expr(v, fake)
			if err != nil {
				return nil, err
			}
			x.Values[i] = v
		}
		return x, nil

	case *ast.ExprCast:
		v, err := obj.expr(x.Value, fake)
		if err != nil {
			return nil, err
		}
		x.Value = v
		return x, nil
	}

	return nil, errwrap.Wrapf(interfaces.ErrProgrammingError, "unhandled expression %T", expr)
}

// hoist moves the expression into an assignment to a synthesized variable,
// inserted ahead of the statement that is being lowered. It returns a
// reference to that variable.
func (obj *Lowering) hoist(expr ast.Expr, fake *FakeTree) *ast.ExprPath {
	line := fake.Line()
	name := interfaces.InternalName(line)
	if obj.Debug {
		obj.Logf("hoisting `%s` to %s", expr, name)
	}

	target := &ast.ExprPath{Textarea: *expr.Area(), Name: name, Fragments: []*ast.Fragment{}}
	target.Relocate(line)
	stmt := &ast.StmtAssign{
		Textarea: *expr.Area(),
		Target:   target,
		Value:    expr,
	}
	stmt.Relocate(line)
	fake.Insert(stmt, fake.Original())

	return &ast.ExprPath{Textarea: *expr.Area(), Name: name, Fragments: []*ast.Fragment{}}
}

// template splits a string with `{...}` segments into a concatenation of its
// literal pieces and the values of its code segments.
func (obj *Lowering) template(x *ast.ExprString, fake *FakeTree) (ast.Expr, error) {
	if x.Verbatim {
		return x, nil
	}
	stream, err := interpolate.Scan(x.Value)
	if err != nil {
		return nil, attach(err, x)
	}
	if stream.IsPlain() { // the common case needs no new nodes
		x.Value = stream.Text()
		x.Verbatim = true
		return x, nil
	}
	if obj.Debug {
		obj.Logf("interpolating: %s", x)
	}

	pieces := []ast.Expr{}
	for _, token := range stream {
		switch t := token.(type) {
		case interpolate.Literal:
			pieces = append(pieces, &ast.ExprString{Textarea: x.Textarea, Value: t.Value, Verbatim: true})

		case interpolate.Code:
			// +1 for the opening quote
			_, col := x.Pos()
			node, err := obj.Parser.ParseFragment(t.Value, x.Line(), col+1+t.Offset)
			if err != nil {
				return nil, attach(err, x)
			}
			expr, err := ast.BuildExpr(node, obj.Data)
			if err != nil {
				return nil, attach(err, x)
			}
			expr, err = obj.expr(expr, fake)
			if err != nil {
				return nil, err
			}
			if _, ok := expr.(*ast.ExprPath); !ok {
				expr = obj.hoist(expr, fake)
			}
			pieces = append(pieces, expr)
		}
	}

	if len(pieces) == 1 { // make sure the result is a string
		empty := &ast.ExprString{Textarea: x.Textarea, Value: "", Verbatim: true}
		pieces = append([]ast.Expr{empty}, pieces...)
	}
	return &ast.ExprOp{Textarea: x.Textarea, Op: types.OpAdd, Values: pieces}, nil
}

// attach points a compiler error that was raised without a node at the given
// node.
func attach(err error, node interfaces.Node) error {
	if e, ok := err.(*interfaces.Error); ok && e.Node == nil {
		e.Node = node
		return e
	}
	if _, ok := interfaces.KindOf(err); ok {
		return err
	}
	return interfaces.NewError(interfaces.ErrStringTemplatesFragment, node, "code", node.String(), "reason", err.Error())
}

// hoistable returns true if lowering the expression would hoist something.
func hoistable(expr ast.Expr) bool {
	found := false
	_ = expr.Apply(func(node interfaces.Node) error {
		switch x := node.(type) {
		case *ast.ExprInline, *ast.ExprService, *ast.ExprMutation, *ast.ExprCall:
			found = true
		case *ast.ExprString:
			if x.Verbatim {
				return nil
			}
			if stream, err := interpolate.Scan(x.Value); err != nil || !stream.IsPlain() {
				found = true
			}
		}
		return nil
	})
	return found
}
