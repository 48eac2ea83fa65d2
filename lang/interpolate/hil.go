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

package interpolate

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/purpleidea/storyc/lang/interfaces"
	"github.com/purpleidea/storyc/lang/tree"

	"github.com/hashicorp/hil"
	hilast "github.com/hashicorp/hil/ast"
)

// hilOps maps the hil operators onto the operators of the language.
var hilOps = map[hilast.ArithmeticOp]string{
	hilast.ArithmeticOpAdd:                "+",
	hilast.ArithmeticOpSub:                "-",
	hilast.ArithmeticOpMul:                "*",
	hilast.ArithmeticOpDiv:                "/",
	hilast.ArithmeticOpMod:                "%",
	hilast.ArithmeticOpLogicalAnd:         "and",
	hilast.ArithmeticOpLogicalOr:          "or",
	hilast.ArithmeticOpEqual:              "==",
	hilast.ArithmeticOpNotEqual:           "!=",
	hilast.ArithmeticOpLessThan:           "<",
	hilast.ArithmeticOpLessThanOrEqual:    "<=",
	hilast.ArithmeticOpGreaterThan:        ">",
	hilast.ArithmeticOpGreaterThanOrEqual: ">=",
}

// Parser is the default FragmentParser. It uses the hashicorp hil library to
// parse the code segments of string templates, and converts the result into a
// generic tree.
type Parser struct {
	// Debug represents if we're running in debug mode or not.
	Debug bool

	// Logf is a logger which should be used.
	Logf func(format string, v ...interface{})
}

// ParseFragment parses one code segment. The nodes of the returned tree are
// all on the given line, and their columns are offset by the given column. A
// segment like `svc cmd key:value` runs a service, everything else is parsed
// by hil.
func (obj *Parser) ParseFragment(code string, line interfaces.Coordinate, column int) (*tree.Node, error) {
	if obj.Debug {
		obj.Logf("parsing fragment: %s", code)
	}
	trimmed := strings.TrimLeft(code, " \t")
	column += len(code) - len(trimmed)
	code = strings.TrimRight(trimmed, " \t")
	node, err := obj.command(code, line, column)
	if err != nil {
		return nil, err
	}
	if node != nil {
		return node, nil
	}
	pos := hilast.Pos{
		Line:   1,
		Column: column - 2, // account for the `${` prefix
	}
	root, err := hil.ParseWithPosition("${"+code+"}", pos)
	if err != nil {
		return nil, interfaces.NewError(interfaces.ErrStringTemplatesFragment, nil, "code", code, "reason", err.Error())
	}

	t := &transformer{
		line: line.String(),
		code: code,
	}
	node, err = t.transform(root)
	if err != nil {
		return nil, err
	}
	node.Column = column
	node.End = column + len(code)
	if obj.Debug {
		obj.Logf("fragment: %s", node)
	}
	return node, nil
}

type transformer struct {
	line string
	code string
}

func (obj *transformer) fail(reason string) error {
	return interfaces.NewError(interfaces.ErrStringTemplatesFragment, nil, "code", obj.code, "reason", reason)
}

func (obj *transformer) node(kind tree.Kind, pos hilast.Pos, children ...tree.Element) *tree.Node {
	return tree.NewNode(kind, obj.line, pos.Column, pos.Column, children...)
}

func (obj *transformer) token(kind tree.TokenKind, value string, pos hilast.Pos) *tree.Token {
	return tree.NewToken(kind, value, obj.line, pos.Column, pos.Column+len(value))
}

// transform returns the tree equivalent of the hil AST.
func (obj *transformer) transform(root hilast.Node) (*tree.Node, error) {
	switch node := root.(type) {
	case *hilast.Output: // common root node
		if len(node.Exprs) != 1 {
			return nil, obj.fail("expected a single expression")
		}
		return obj.transform(node.Exprs[0])

	case *hilast.LiteralNode: // string, int, etc...
		pos := node.Pos()
		switch node.Typex {
		case hilast.TypeBool:
			v := strconv.FormatBool(node.Value.(bool))
			return obj.node(tree.KindBoolean, pos, obj.token(tree.TokenBool, v, pos)), nil

		case hilast.TypeString:
			return obj.node(tree.KindString, pos, obj.token(tree.TokenString, node.Value.(string), pos)), nil

		case hilast.TypeInt:
			// node.Value is an int stored as an interface
			v := strconv.Itoa(node.Value.(int))
			return obj.node(tree.KindNumber, pos, obj.token(tree.TokenInt, v, pos)), nil

		case hilast.TypeFloat:
			v := strconv.FormatFloat(node.Value.(float64), 'g', -1, 64)
			return obj.node(tree.KindNumber, pos, obj.token(tree.TokenFloat, v, pos)), nil
		}
		return nil, obj.fail(fmt.Sprintf("unsupported literal of type %s", node.Typex))

	case *hilast.VariableAccess: // variable lookup
		return obj.path(node.Name, node.Pos())

	case *hilast.Index:
		target, err := obj.transform(node.Target)
		if err != nil {
			return nil, err
		}
		if target.Kind != tree.KindPath {
			return nil, obj.fail("only variables can be indexed")
		}
		key, err := obj.transform(node.Key)
		if err != nil {
			return nil, err
		}
		target.Children = append(target.Children, obj.node(tree.KindPathFragment, node.Pos(), key))
		return target, nil

	case *hilast.Arithmetic:
		op, exists := hilOps[node.Op]
		if !exists {
			return nil, obj.fail("unsupported operator")
		}
		children := []tree.Element{}
		for i, x := range node.Exprs {
			value, err := obj.transform(x)
			if err != nil {
				return nil, err
			}
			if i > 0 {
				children = append(children, obj.token(tree.TokenOp, op, x.Pos()))
			}
			children = append(children, value)
		}
		return obj.node(tree.KindExpression, node.Pos(), children...), nil

	case *hilast.Call:
		args := []tree.Element{}
		for _, x := range node.Args {
			value, err := obj.transform(x)
			if err != nil {
				return nil, err
			}
			args = append(args, obj.node(tree.KindArgument, x.Pos(), value))
		}
		pos := node.Pos()
		call := obj.node(tree.KindCallExpression, pos, obj.token(tree.TokenName, node.Func, pos))
		if len(args) > 0 {
			call.Children = append(call.Children, obj.node(tree.KindArguments, pos, args...))
		}
		return call, nil
	}

	return nil, obj.fail(fmt.Sprintf("unsupported expression `%T`", root))
}

// path converts a dotted hil variable name into a path.
func (obj *transformer) path(name string, pos hilast.Pos) (*tree.Node, error) {
	if strings.Contains(name, "-") {
		return nil, interfaces.NewError(interfaces.ErrVariablesDash, nil, "name", name, "suggestion", strings.ReplaceAll(name, "-", "_"))
	}
	parts := strings.Split(name, ".")
	children := []tree.Element{obj.token(tree.TokenName, parts[0], pos)}
	for _, x := range parts[1:] {
		if x == "" {
			return nil, obj.fail(fmt.Sprintf("invalid name `%s`", name))
		}
		children = append(children, obj.node(tree.KindPathFragment, pos, obj.token(tree.TokenName, x, pos)))
	}
	return obj.node(tree.KindPath, pos, children...), nil
}
