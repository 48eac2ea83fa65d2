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

// Package semantics implements the type resolver. It builds the scopes of a
// lowered program, type checks every statement and expression, and annotates
// the tree with the results.
package semantics

import (
	"strconv"

	"github.com/purpleidea/storyc/lang/ast"
	"github.com/purpleidea/storyc/lang/funcs"
	"github.com/purpleidea/storyc/lang/interfaces"
	"github.com/purpleidea/storyc/lang/scope"
	"github.com/purpleidea/storyc/lang/types"
	"github.com/purpleidea/storyc/util/errwrap"
)

// context is what the resolver knows about the position of the statement it
// is looking at.
type context struct {
	scope *scope.Scope

	top     bool            // directly in the program body
	fn      *funcs.Function // the enclosing function, if any
	loops   int             // number of enclosing loops
	when    bool            // inside a when block
	service bool            // inside a service block
}

// child returns a copy of the context with a new child scope.
func (obj *context) child() *context {
	ctx := *obj
	ctx.scope = obj.scope.Child()
	ctx.top = false
	return &ctx
}

// TypeResolver checks a lowered program. It is used once per compile.
type TypeResolver struct {
	// Mutations is the table of mutations to resolve against. The builtin
	// table is used if this is nil.
	Mutations *funcs.MutationTable

	// Debug represents if we're running in debug mode or not.
	Debug bool

	// Logf is a logger which should be used.
	Logf func(format string, v ...interface{})

	mutations    *funcs.MutationTable
	functions    *funcs.FunctionTable
	deprecations []*interfaces.Deprecation
}

// Resolve type checks the program. The first violation is returned. On
// success the blocks carry their scopes and the expressions their types.
func (obj *TypeResolver) Resolve(prog *ast.Program) error {
	if obj.Logf == nil {
		obj.Logf = func(format string, v ...interface{}) {}
	}
	obj.mutations = obj.Mutations
	if obj.mutations == nil {
		obj.mutations = funcs.Builtins()
	}
	obj.functions = funcs.NewFunctionTable()
	obj.deprecations = []*interfaces.Deprecation{}

	// functions may be called before they are declared
	for _, stmt := range prog.Body.Stmts {
		x, ok := stmt.(*ast.StmtFunc)
		if !ok {
			continue
		}
		if err := obj.declare(x); err != nil {
			return err
		}
	}

	ctx := &context{
		scope: scope.NewRoot(),
		top:   true,
	}
	return obj.block(prog.Body, ctx)
}

// Functions returns the functions of the last resolved program.
func (obj *TypeResolver) Functions() *funcs.FunctionTable {
	return obj.functions
}

// Deprecations returns the deprecated usages found in the last resolved
// program.
func (obj *TypeResolver) Deprecations() []*interfaces.Deprecation {
	return obj.deprecations
}

func (obj *TypeResolver) deprecate(dep *interfaces.Deprecation) {
	if obj.Debug {
		obj.Logf("deprecation: %s", dep)
	}
	obj.deprecations = append(obj.deprecations, dep)
}

// expression returns an expression resolver for the given context.
func (obj *TypeResolver) expression(ctx *context) *ExpressionResolver {
	return &ExpressionResolver{
		resolver: obj,
		ctx:      ctx,
	}
}

func (obj *TypeResolver) declare(x *ast.StmtFunc) error {
	if err := checkName(x, x.Name); err != nil {
		return err
	}
	args := []*scope.Symbol{}
	for _, p := range x.Params {
		if err := checkName(x, p.Name); err != nil {
			return err
		}
		args = append(args, scope.NewSymbol(p.Name, p.Type, scope.Rebindable))
	}
	fn := &funcs.Function{
		Name:   x.Name,
		Args:   args,
		Output: x.Output,
		Node:   x,
	}
	if obj.Debug {
		obj.Logf("declaring function: %s", fn)
	}
	return obj.functions.Register(fn)
}

func (obj *TypeResolver) block(b *ast.Block, ctx *context) error {
	b.Scope = ctx.scope
	for _, x := range b.Stmts {
		if err := obj.stmt(x, ctx); err != nil {
			return err
		}
	}
	return nil
}

func (obj *TypeResolver) stmt(stmt ast.Stmt, ctx *context) error {
	switch x := stmt.(type) {
	case *ast.StmtAssign:
		return obj.assign(x, ctx)

	case *ast.StmtExpr:
		value, err := obj.value(x.Value, ctx)
		if err != nil {
			return err
		}
		x.Value = value
		return nil

	case *ast.StmtIf:
		return obj.ifStmt(x, ctx)

	case *ast.StmtForeach:
		typ, err := obj.expression(ctx).Resolve(x.Iterable)
		if err != nil {
			return err
		}
		if len(x.Names) == 0 {
			return interfaces.NewError(interfaces.ErrForeachOutputRequired, x)
		}
		if err := checkNames(x, x.Names); err != nil {
			return err
		}
		outputs := typ.Output(len(x.Names))
		if outputs == nil {
			return interfaces.NewError(interfaces.ErrForeachIterableRequired, x, "type", typ.String(), "count", strconv.Itoa(len(x.Names)))
		}
		child := ctx.child()
		child.loops++
		for i, name := range x.Names {
			child.scope.Insert(scope.NewSymbol(name, outputs[i], scope.ReadOnly))
		}
		return obj.block(x.Body, child)

	case *ast.StmtWhile:
		if err := obj.condition(x.Condition, ctx); err != nil {
			return err
		}
		child := ctx.child()
		child.loops++
		return obj.block(x.Body, child)

	case *ast.StmtTry:
		if err := obj.block(x.Body, ctx.child()); err != nil {
			return err
		}
		if x.Catch != nil {
			child := ctx.child()
			if x.Catch.Name != "" {
				if err := checkName(x.Catch, x.Catch.Name); err != nil {
					return err
				}
				child.scope.Insert(scope.NewSymbol(x.Catch.Name, types.TypeObject, scope.ReadOnly))
			}
			if err := obj.block(x.Catch.Body, child); err != nil {
				return err
			}
		}
		if x.Finally != nil {
			if err := obj.block(x.Finally.Body, ctx.child()); err != nil {
				return err
			}
		}
		return nil

	case *ast.StmtFunc:
		return obj.function(x, ctx)

	case *ast.StmtWhen:
		return obj.when(x, ctx)

	case *ast.StmtReturn:
		return obj.ret(x, ctx)

	case *ast.StmtBreak:
		if ctx.loops == 0 {
			return interfaces.NewError(interfaces.ErrBreakOutside, x)
		}
		return nil

	case *ast.StmtThrow:
		if x.Value == nil {
			return nil
		}
		_, err := obj.expression(ctx).Resolve(x.Value)
		return err
	}

	return errwrap.Wrapf(interfaces.ErrProgrammingError, "unhandled statement %T", stmt)
}

// value resolves the value of an assignment or of a bare statement. A service
// whose name is a variable is really a mutation of that variable, and is
// replaced by one. The value that should be stored in the tree is returned.
func (obj *TypeResolver) value(expr ast.Expr, ctx *context) (ast.Expr, error) {
	if x, ok := expr.(*ast.ExprService); ok {
		if sym := ctx.scope.Resolve(x.Name.Name); sym != nil && !sym.Service {
			if x.Command == "" {
				return nil, interfaces.NewError(interfaces.ErrServiceWithoutCommand, x, "name", x.Name.String())
			}
			if len(x.Output) > 0 || x.Block != nil {
				return nil, interfaces.NewError(interfaces.ErrMutationNested, x, "name", x.Command)
			}
			if obj.Debug {
				obj.Logf("%s: `%s` is a mutation of `%s`", x.Line(), x.Command, x.Name)
			}
			expr = &ast.ExprMutation{
				Textarea: x.Textarea,
				Subject:  x.Name,
				Name:     x.Command,
				Args:     x.Args,
			}
		}
	}
	if _, err := obj.expression(ctx).Resolve(expr); err != nil {
		return nil, err
	}
	return expr, nil
}

func (obj *TypeResolver) condition(expr ast.Expr, ctx *context) error {
	typ, err := obj.expression(ctx).Resolve(expr)
	if err != nil {
		return err
	}
	if !typ.HasBoolean() {
		return interfaces.NewError(interfaces.ErrIfExpressionBoolean, expr, "type", typ.String())
	}
	return nil
}

func (obj *TypeResolver) assign(x *ast.StmtAssign, ctx *context) error {
	value, err := obj.value(x.Value, ctx)
	if err != nil {
		return err
	}
	x.Value = value
	typ := value.Type()
	target := x.Target
	sym := ctx.scope.Resolve(target.Name)

	if !target.IsBare() {
		if sym == nil {
			return interfaces.NewError(interfaces.ErrVarNotDefined, target, "name", target.Name)
		}
		if !sym.Storage.CanWrite() {
			return interfaces.NewError(interfaces.ErrAssignmentNotWritable, target, "name", target.Name)
		}
		for _, f := range target.Fragments {
			if f.Kind != types.IndexBracket {
				continue
			}
			switch f.Key.(type) {
			case *ast.ExprString, *ast.ExprInt, *ast.ExprFloat, *ast.ExprBool:
			default:
				return interfaces.NewError(interfaces.ErrAssignmentTargetDynamic, target, "name", target.Name)
			}
		}
		elem, err := obj.expression(ctx).Fragments(sym.Type, target, target.Fragments)
		if err != nil {
			return err
		}
		if typ.IsNone() {
			return interfaces.NewError(interfaces.ErrTypeAssignmentNone, x, "name", target.String())
		}
		if typ.ImplicitTo(elem) == nil {
			return interfaces.NewError(interfaces.ErrTypeAssignmentDifferent, x, "name", target.String(), "source", typ.String(), "target", elem.String())
		}
		target.SetType(elem)
		return nil
	}

	if typ.IsNone() {
		return interfaces.NewError(interfaces.ErrTypeAssignmentNone, x, "name", target.Name)
	}

	if sym != nil {
		if !sym.Storage.CanRebind() {
			return interfaces.NewError(interfaces.ErrAssignmentReadonly, x, "name", target.Name)
		}
		if typ.ImplicitTo(sym.Type) == nil {
			return interfaces.NewError(interfaces.ErrTypeAssignmentDifferent, x, "name", target.Name, "source", typ.String(), "target", sym.Type.String())
		}
		target.SetType(sym.Type)
		return nil
	}

	if err := checkName(target, target.Name); err != nil {
		return err
	}
	storage := scope.Rebindable
	if p, ok := value.(*ast.ExprPath); ok && p.IsBare() {
		// an alias of a read only container can't be used to change it
		if orig := ctx.scope.Resolve(p.Name); orig != nil && !orig.Storage.CanWrite() && typ.IsContainer() {
			storage = scope.ReadOnly
		}
	}
	if obj.Debug {
		obj.Logf("%s: declaring %s (%s)", x.Line(), target.Name, storage)
	}
	ctx.scope.Insert(scope.NewSymbol(target.Name, typ, storage))
	target.SetType(typ)
	return nil
}

// ifStmt checks an if chain. Every branch gets its own scope, and the symbols
// that all the branches agree on are joined into the enclosing scope.
func (obj *TypeResolver) ifStmt(x *ast.StmtIf, ctx *context) error {
	joiner := scope.NewJoiner(ctx.scope)

	if err := obj.condition(x.Condition, ctx); err != nil {
		return err
	}
	if err := obj.branch(x.Body, joiner, ctx); err != nil {
		return err
	}
	for _, elif := range x.Elifs {
		if err := obj.condition(elif.Condition, ctx); err != nil {
			return err
		}
		if err := obj.branch(elif.Body, joiner, ctx); err != nil {
			return err
		}
	}
	if x.Else != nil {
		if err := obj.branch(x.Else.Body, joiner, ctx); err != nil {
			return err
		}
	}

	joined, err := joiner.Join(x, x.Else != nil)
	if err != nil {
		return err
	}
	if obj.Debug && len(joined) > 0 {
		obj.Logf("%s: joined %v", x.Line(), joined)
	}
	return nil
}

func (obj *TypeResolver) branch(b *ast.Block, joiner *scope.Joiner, ctx *context) error {
	child := *ctx
	child.top = false
	child.scope = joiner.Branch()
	return obj.block(b, &child)
}

func (obj *TypeResolver) function(x *ast.StmtFunc, ctx *context) error {
	if !ctx.top {
		return interfaces.NewError(interfaces.ErrFunctionNested, x, "name", x.Name)
	}
	fn, exists := obj.functions.Resolve(x.Name)
	if !exists || fn.Node != x {
		return errwrap.Wrapf(interfaces.ErrProgrammingError, "function %s was not declared", x.Name)
	}

	root := scope.NewRoot()
	for _, sym := range fn.Args {
		root.Insert(sym.Copy())
	}
	child := &context{
		scope: root,
		fn:    fn,
	}
	if err := obj.block(x.Body, child); err != nil {
		return err
	}

	if fn.Output != nil && !(&ReturnVisitor{}).Returns(x.Body) {
		return interfaces.NewError(interfaces.ErrReturnRequired, x, "name", fn.Name, "type", fn.Output.String())
	}
	return nil
}

func (obj *TypeResolver) when(x *ast.StmtWhen, ctx *context) error {
	if ctx.when {
		return interfaces.NewError(interfaces.ErrNestedWhenBlock, x)
	}
	sym := ctx.scope.Resolve(x.Service.Name)
	if sym == nil {
		if _, err := serviceName(x.Service); err != nil {
			return err
		}
	} else if _, err := obj.expression(ctx).Resolve(x.Service); err != nil {
		return err
	}
	x.Bound = sym != nil && sym.Service
	if x.Command == "" {
		return interfaces.NewError(interfaces.ErrServiceWithoutCommand, x, "name", x.Service.String())
	}
	for _, a := range x.Args {
		if _, err := obj.expression(ctx).Resolve(a.Value); err != nil {
			return err
		}
	}
	if err := checkNames(x, x.Output); err != nil {
		return err
	}

	child := ctx.child()
	child.when = true
	child.loops = 0
	for _, name := range x.Output {
		child.scope.Insert(output(name))
	}
	return obj.block(x.Body, child)
}

func (obj *TypeResolver) ret(x *ast.StmtReturn, ctx *context) error {
	if ctx.fn == nil && !ctx.when {
		return interfaces.NewError(interfaces.ErrReturnOutside, x)
	}
	var typ *types.Type
	if x.Value != nil {
		var err error
		if typ, err = obj.expression(ctx).Resolve(x.Value); err != nil {
			return err
		}
	}
	if ctx.when || ctx.fn == nil { // leaves the event handler
		return nil
	}

	fn := ctx.fn
	switch {
	case fn.Output == nil && typ != nil:
		return interfaces.NewError(interfaces.ErrReturnTypeMismatch, x, "name", fn.Name, "expected", types.TypeNone.String(), "actual", typ.String())
	case fn.Output != nil && typ == nil:
		return interfaces.NewError(interfaces.ErrReturnTypeMismatch, x, "name", fn.Name, "expected", fn.Output.String(), "actual", types.TypeNone.String())
	case fn.Output != nil && typ.ImplicitTo(fn.Output) == nil:
		return interfaces.NewError(interfaces.ErrReturnTypeMismatch, x, "name", fn.Name, "expected", fn.Output.String(), "actual", typ.String())
	}
	return nil
}
