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

package codegen

import (
	"github.com/purpleidea/storyc/lang/ast"
	"github.com/purpleidea/storyc/lang/interfaces"
	"github.com/purpleidea/storyc/lang/ir"
	"github.com/purpleidea/storyc/lang/types"
	"github.com/purpleidea/storyc/util/errwrap"
)

// Encode returns the tagged encoding of an expression value. Services, calls
// and inline expressions can't be encoded, they must have been hoisted into
// their own lines by lowering.
func Encode(expr ast.Expr) (interface{}, error) {
	switch x := expr.(type) {
	case *ast.ExprString:
		return ir.NewObject("string", "string", x.Value), nil
	case *ast.ExprInt:
		return ir.NewObject("int", "int", x.Value), nil
	case *ast.ExprFloat:
		return ir.NewObject("float", "float", x.Value), nil
	case *ast.ExprBool:
		return ir.NewObject("boolean", "boolean", x.Value), nil
	case *ast.ExprRegExp:
		return ir.NewObject("regexp", "regexp", x.Pattern, "flags", x.Flags), nil
	case *ast.ExprTime:
		return ir.NewObject("time", "ms", x.Millis), nil

	case *ast.ExprRange:
		var start, end interface{}
		var err error
		if x.Start != nil {
			if start, err = Encode(x.Start); err != nil {
				return nil, err
			}
		}
		if x.End != nil {
			if end, err = Encode(x.End); err != nil {
				return nil, err
			}
		}
		return ir.NewObject("range", "start", start, "end", end), nil

	case *ast.ExprList:
		items, err := encodeAll(x.Items)
		if err != nil {
			return nil, err
		}
		return ir.NewObject("list", "items", items), nil

	case *ast.ExprMap:
		items := []interface{}{}
		for _, kv := range x.Pairs {
			pair, err := encodeAll([]ast.Expr{kv.Key, kv.Value})
			if err != nil {
				return nil, err
			}
			items = append(items, pair)
		}
		return ir.NewObject("dict", "items", items), nil

	case *ast.ExprPath:
		paths, err := Paths(x)
		if err != nil {
			return nil, err
		}
		return ir.NewObject("path", "paths", paths), nil

	case *ast.ExprOp:
		values, err := encodeAll(x.Values)
		if err != nil {
			return nil, err
		}
		return ir.NewObject("expression", "expression", x.Op.Name(), "values", values), nil

	case *ast.ExprCast:
		value, err := Encode(x.Value)
		if err != nil {
			return nil, err
		}
		return ir.NewObject("type_cast", "type", EncodeType(x.To), "value", value), nil

	case *ast.ExprMutation:
		subject, err := Encode(x.Subject)
		if err != nil {
			return nil, err
		}
		args, err := EncodeArgs(x.Args)
		if err != nil {
			return nil, err
		}
		return ir.NewObject("mutation", "mutation", x.Name, "subject", subject, "arguments", args), nil
	}

	return nil, errwrap.Wrapf(interfaces.ErrProgrammingError, "can't encode %T (%s)", expr, expr)
}

func encodeAll(list []ast.Expr) ([]interface{}, error) {
	out := []interface{}{}
	for _, x := range list {
		v, err := Encode(x)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// Paths returns the segments of a path: the name, the names of the dot
// fragments, and the encoded keys of the bracket fragments.
func Paths(x *ast.ExprPath) ([]interface{}, error) {
	paths := []interface{}{x.Name}
	for _, f := range x.Fragments {
		if f.Kind == types.IndexDot {
			paths = append(paths, f.Name)
			continue
		}
		key, err := Encode(f.Key)
		if err != nil {
			return nil, err
		}
		paths = append(paths, key)
	}
	return paths, nil
}

// EncodeType returns the tagged encoding of a type. Container types carry the
// encodings of their parameters.
func EncodeType(typ *types.Type) ir.Object {
	values := []interface{}{}
	switch typ.Kind {
	case types.KindList:
		values = append(values, EncodeType(typ.Val))
	case types.KindMap:
		values = append(values, EncodeType(typ.Key), EncodeType(typ.Val))
	}
	return ir.NewObject("type", "type", typ.Kind.String(), "values", values)
}

// EncodeArgs returns the encoded arguments of a call, a service or a mutation.
// Positional arguments have a nil name.
func EncodeArgs(args []*ast.Argument) ([]interface{}, error) {
	out := []interface{}{}
	for _, x := range args {
		v, err := Encode(x.Value)
		if err != nil {
			return nil, err
		}
		var name interface{}
		if x.Name != "" {
			name = x.Name
		}
		out = append(out, ir.NewObject("arg", "name", name, "arg", v))
	}
	return out, nil
}
