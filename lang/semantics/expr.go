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

package semantics

import (
	"github.com/purpleidea/storyc/lang/ast"
	"github.com/purpleidea/storyc/lang/funcs"
	"github.com/purpleidea/storyc/lang/interfaces"
	"github.com/purpleidea/storyc/lang/scope"
	"github.com/purpleidea/storyc/lang/types"
	"github.com/purpleidea/storyc/util/errwrap"
)

// ExpressionResolver type checks the expressions found in one scope, and
// annotates each of them with its type.
type ExpressionResolver struct {
	resolver *TypeResolver
	ctx      *context
}

// Resolve returns the type of the expression.
func (obj *ExpressionResolver) Resolve(expr ast.Expr) (*types.Type, error) {
	typ, err := obj.resolve(expr)
	if err != nil {
		return nil, err
	}
	expr.SetType(typ)
	return typ, nil
}

func (obj *ExpressionResolver) resolve(expr ast.Expr) (*types.Type, error) {
	switch x := expr.(type) {
	case *ast.ExprString:
		return types.TypeString, nil
	case *ast.ExprInt:
		return types.TypeInt, nil
	case *ast.ExprFloat:
		return types.TypeFloat, nil
	case *ast.ExprBool:
		return types.TypeBoolean, nil
	case *ast.ExprRegExp:
		return types.TypeRegExp, nil
	case *ast.ExprTime:
		return types.TypeTime, nil

	case *ast.ExprRange:
		for _, v := range []ast.Expr{x.Start, x.End} {
			if v == nil {
				continue
			}
			typ, err := obj.Resolve(v)
			if err != nil {
				return nil, err
			}
			if typ.ImplicitTo(types.TypeInt) == nil {
				return nil, interfaces.NewError(interfaces.ErrTypeOperationIncompatible, x, "op", ":", "left", typ.String(), "right", types.TypeInt.String())
			}
		}
		return types.TypeRange, nil

	case *ast.ExprList:
		list := []*types.Type{}
		for _, item := range x.Items {
			typ, err := obj.Resolve(item)
			if err != nil {
				return nil, err
			}
			list = append(list, typ)
		}
		return types.List(types.Common(list)), nil

	case *ast.ExprMap:
		keys := []*types.Type{}
		vals := []*types.Type{}
		for _, kv := range x.Pairs {
			k, err := obj.Resolve(kv.Key)
			if err != nil {
				return nil, err
			}
			if !k.Hashable() {
				return nil, interfaces.NewError(interfaces.ErrTypeKeyNotHashable, kv.Key, "key", k.String())
			}
			v, err := obj.Resolve(kv.Value)
			if err != nil {
				return nil, err
			}
			keys = append(keys, k)
			vals = append(vals, v)
		}
		return types.Map(types.Common(keys), types.Common(vals)), nil

	case *ast.ExprPath:
		sym := obj.ctx.scope.Resolve(x.Name)
		if sym == nil {
			return nil, interfaces.NewError(interfaces.ErrVarNotDefined, x, "name", x.Name)
		}
		return obj.Fragments(sym.Type, x, x.Fragments)

	case *ast.ExprOp:
		return obj.op(x)

	case *ast.ExprCast:
		typ, err := obj.Resolve(x.Value)
		if err != nil {
			return nil, err
		}
		if x.To.ExplicitFrom(typ) == nil {
			return nil, interfaces.NewError(interfaces.ErrTypeCastIncompatible, x, "source", typ.String(), "target", x.To.String())
		}
		return x.To, nil

	case *ast.ExprCall:
		args, err := obj.args(x.Args)
		if err != nil {
			return nil, err
		}
		fn, err := obj.resolver.functions.Bind(x, x.Name, args)
		if err != nil {
			return nil, err
		}
		return fn.Type(), nil

	case *ast.ExprMutation:
		subject, err := obj.Resolve(x.Subject)
		if err != nil {
			return nil, err
		}
		args, err := obj.args(x.Args)
		if err != nil {
			return nil, err
		}
		typ, dep, err := obj.resolver.mutations.Check(x, subject, x.Name, args)
		if err != nil {
			return nil, err
		}
		if dep != nil {
			obj.resolver.deprecate(dep)
		}
		return typ, nil

	case *ast.ExprService:
		return obj.service(x)

	case *ast.ExprInline:
		return obj.Resolve(x.Value)
	}

	return nil, errwrap.Wrapf(interfaces.ErrProgrammingError, "unhandled expression %T", expr)
}

// Fragments returns the type found by indexing into a value of type typ with
// each of the fragments in turn.
func (obj *ExpressionResolver) Fragments(typ *types.Type, node interfaces.Node, fragments []*ast.Fragment) (*types.Type, error) {
	for _, f := range fragments {
		key := types.TypeString
		if f.Kind == types.IndexBracket {
			var err error
			if key, err = obj.Resolve(f.Key); err != nil {
				return nil, err
			}
		}
		next := typ.Index(key, f.Kind)
		if next == nil {
			return nil, interfaces.NewError(interfaces.ErrTypeIndexIncompatible, node, "left", typ.String(), "right", key.String())
		}
		typ = next
	}
	return typ, nil
}

func (obj *ExpressionResolver) op(x *ast.ExprOp) (*types.Type, error) {
	values := []*types.Type{}
	for _, v := range x.Values {
		typ, err := obj.Resolve(v)
		if err != nil {
			return nil, err
		}
		values = append(values, typ)
	}
	if len(values) == 0 {
		return nil, errwrap.Wrapf(interfaces.ErrProgrammingError, "operator %s without operands", x.Op)
	}

	if x.Op.IsUnary() {
		if len(values) != 1 || !values[0].HasBoolean() {
			return nil, interfaces.NewError(interfaces.ErrTypeOperationIncompatible, x, "op", string(x.Op), "left", values[0].String(), "right", values[0].String())
		}
		return types.TypeBoolean, nil
	}

	if x.Op.IsComparison() { // each adjacent pair is compared
		for i := 1; i < len(values); i++ {
			if values[i-1].BinaryOp(values[i], x.Op) == nil {
				return nil, interfaces.NewError(interfaces.ErrTypeOperationIncompatible, x, "op", string(x.Op), "left", values[i-1].String(), "right", values[i].String())
			}
		}
		return types.TypeBoolean, nil
	}

	typ := values[0]
	for _, v := range values[1:] {
		next := typ.BinaryOp(v, x.Op)
		if next == nil {
			return nil, interfaces.NewError(interfaces.ErrTypeOperationIncompatible, x, "op", string(x.Op), "left", typ.String(), "right", v.String())
		}
		typ = next
	}
	return typ, nil
}

func (obj *ExpressionResolver) args(args []*ast.Argument) ([]*funcs.Arg, error) {
	result := []*funcs.Arg{}
	for _, x := range args {
		typ, err := obj.Resolve(x.Value)
		if err != nil {
			return nil, err
		}
		result = append(result, &funcs.Arg{Name: x.Name, Type: typ, Node: x})
	}
	return result, nil
}

// service checks a service call. The name is either an output of an enclosing
// service or when block, or the name of an external service. A block opens a
// scope where the outputs are bound.
func (obj *ExpressionResolver) service(x *ast.ExprService) (*types.Type, error) {
	sym := obj.ctx.scope.Resolve(x.Name.Name)
	if sym == nil {
		if _, err := serviceName(x.Name); err != nil {
			return nil, err
		}
	} else if _, err := obj.Resolve(x.Name); err != nil {
		return nil, err
	}
	x.Bound = sym != nil && sym.Service
	if x.Command == "" {
		return nil, interfaces.NewError(interfaces.ErrServiceWithoutCommand, x, "name", x.Name.String())
	}
	if _, err := obj.args(x.Args); err != nil {
		return nil, err
	}
	if err := checkNames(x, x.Output); err != nil {
		return nil, err
	}

	if x.Block == nil {
		for _, name := range x.Output { // the outputs outlive the statement
			obj.ctx.scope.Insert(output(name))
		}
		return types.TypeAny, nil
	}

	if obj.ctx.service {
		return nil, interfaces.NewError(interfaces.ErrNestedServiceBlock, x)
	}
	ctx := obj.ctx.child()
	ctx.service = true
	for _, name := range x.Output {
		ctx.scope.Insert(output(name))
	}
	if err := obj.resolver.block(x.Block, ctx); err != nil {
		return nil, err
	}
	return types.TypeAny, nil
}

// output builds the symbol of a service or when block output.
func output(name string) *scope.Symbol {
	sym := scope.NewSymbol(name, types.TypeObject, scope.ReadOnly)
	sym.Service = true
	return sym
}
