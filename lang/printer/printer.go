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

// Package printer turns AST nodes back into source-like text. It is used for
// diagnostics and to display lowered programs, so it does not aim to be a
// faithful formatter.
package printer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/purpleidea/storyc/lang/ast"
	"github.com/purpleidea/storyc/lang/interfaces"
	"github.com/purpleidea/storyc/lang/types"
	"github.com/purpleidea/storyc/util"
)

// Printer prints nodes. The zero value is ready to use.
type Printer struct {
	// Lines prefixes every statement with its coordinate.
	Lines bool
}

// Print returns the text of a node. Statements and blocks span several lines,
// expressions are printed on one.
func (obj *Printer) Print(node interfaces.Node) string {
	switch x := node.(type) {
	case *ast.Program:
		return obj.block(x.Body, 0)
	case *ast.Block:
		return obj.block(x, 0)
	case ast.Stmt:
		return obj.stmt(x, 0)
	case ast.Expr:
		return obj.expr(x)
	case *ast.Argument:
		return obj.arg(x)
	}
	return fmt.Sprintf("<%T>", node)
}

func (obj *Printer) block(b *ast.Block, depth int) string {
	s := ""
	for _, x := range b.Stmts {
		s += obj.stmt(x, depth)
	}
	return s
}

// line formats the header of a statement at the given depth.
func (obj *Printer) line(node interfaces.Node, depth int, format string, v ...interface{}) string {
	s := fmt.Sprintf(format, v...)
	if obj.Lines {
		s = fmt.Sprintf("%s: %s", node.Area().Line(), s)
	}
	return util.Indent(s, depth) + "\n"
}

func (obj *Printer) stmt(stmt ast.Stmt, depth int) string {
	switch x := stmt.(type) {
	case *ast.StmtAssign:
		s := obj.line(x, depth, "%s = %s", obj.expr(x.Target), obj.expr(x.Value))
		if svc, ok := x.Value.(*ast.ExprService); ok && svc.Block != nil {
			s += obj.block(svc.Block, depth+1)
		}
		return s

	case *ast.StmtExpr:
		s := obj.line(x, depth, "%s", obj.expr(x.Value))
		if svc, ok := x.Value.(*ast.ExprService); ok && svc.Block != nil {
			s += obj.block(svc.Block, depth+1)
		}
		return s

	case *ast.StmtIf:
		s := obj.line(x, depth, "if %s", obj.expr(x.Condition))
		s += obj.block(x.Body, depth+1)
		for _, elif := range x.Elifs {
			s += obj.line(elif, depth, "else if %s", obj.expr(elif.Condition))
			s += obj.block(elif.Body, depth+1)
		}
		if x.Else != nil {
			s += obj.line(x.Else, depth, "else")
			s += obj.block(x.Else.Body, depth+1)
		}
		return s

	case *ast.StmtForeach:
		s := obj.line(x, depth, "foreach %s as %s", obj.expr(x.Iterable), strings.Join(x.Names, ", "))
		return s + obj.block(x.Body, depth+1)

	case *ast.StmtWhile:
		s := obj.line(x, depth, "while %s", obj.expr(x.Condition))
		return s + obj.block(x.Body, depth+1)

	case *ast.StmtTry:
		s := obj.line(x, depth, "try")
		s += obj.block(x.Body, depth+1)
		if x.Catch != nil {
			if x.Catch.Name != "" {
				s += obj.line(x.Catch, depth, "catch as %s", x.Catch.Name)
			} else {
				s += obj.line(x.Catch, depth, "catch")
			}
			s += obj.block(x.Catch.Body, depth+1)
		}
		if x.Finally != nil {
			s += obj.line(x.Finally, depth, "finally")
			s += obj.block(x.Finally.Body, depth+1)
		}
		return s

	case *ast.StmtFunc:
		params := []string{}
		for _, p := range x.Params {
			params = append(params, fmt.Sprintf("%s:%s", p.Name, p.Type))
		}
		head := "function " + x.Name
		if len(params) > 0 {
			head += " " + strings.Join(params, " ")
		}
		if x.Output != nil {
			head += " returns " + x.Output.String()
		}
		return obj.line(x, depth, "%s", head) + obj.block(x.Body, depth+1)

	case *ast.StmtWhen:
		head := "when " + obj.expr(x.Service)
		if x.Command != "" {
			head += " " + x.Command
		}
		head += obj.args(x.Args)
		if len(x.Output) > 0 {
			head += " as " + strings.Join(x.Output, ", ")
		}
		return obj.line(x, depth, "%s", head) + obj.block(x.Body, depth+1)

	case *ast.StmtReturn:
		if x.Value == nil {
			return obj.line(x, depth, "return")
		}
		return obj.line(x, depth, "return %s", obj.expr(x.Value))

	case *ast.StmtBreak:
		return obj.line(x, depth, "break")

	case *ast.StmtThrow:
		if x.Value == nil {
			return obj.line(x, depth, "throw")
		}
		return obj.line(x, depth, "throw %s", obj.expr(x.Value))
	}
	return obj.line(stmt, depth, "<%T>", stmt)
}

// args prints arguments in the `name:value` form used by services and
// mutations, with a leading space.
func (obj *Printer) args(args []*ast.Argument) string {
	s := ""
	for _, x := range args {
		s += " " + obj.arg(x)
	}
	return s
}

func (obj *Printer) arg(x *ast.Argument) string {
	if x.Name == "" {
		return obj.operand(x.Value)
	}
	return fmt.Sprintf("%s:%s", x.Name, obj.operand(x.Value))
}

// operand prints an expression that appears inside of another one, wrapping
// it in parentheses when it would otherwise be ambiguous.
func (obj *Printer) operand(expr ast.Expr) string {
	switch expr.(type) {
	case *ast.ExprOp, *ast.ExprCast, *ast.ExprService, *ast.ExprMutation:
		return "(" + obj.expr(expr) + ")"
	}
	return obj.expr(expr)
}

func (obj *Printer) expr(expr ast.Expr) string {
	switch x := expr.(type) {
	case *ast.ExprString:
		return strconv.Quote(x.Value)

	case *ast.ExprInt, *ast.ExprFloat, *ast.ExprBool, *ast.ExprRegExp, *ast.ExprTime:
		return x.String()

	case *ast.ExprRange:
		s := ""
		if x.Start != nil {
			s += obj.operand(x.Start)
		}
		s += ":"
		if x.End != nil {
			s += obj.operand(x.End)
		}
		return s

	case *ast.ExprList:
		items := []string{}
		for _, item := range x.Items {
			items = append(items, obj.expr(item))
		}
		return "[" + strings.Join(items, ", ") + "]"

	case *ast.ExprMap:
		pairs := []string{}
		for _, kv := range x.Pairs {
			pairs = append(pairs, fmt.Sprintf("%s: %s", obj.expr(kv.Key), obj.expr(kv.Value)))
		}
		return "{" + strings.Join(pairs, ", ") + "}"

	case *ast.ExprPath:
		s := x.Name
		for _, f := range x.Fragments {
			if f.Kind == types.IndexDot {
				s += "." + f.Name
				continue
			}
			s += "[" + obj.expr(f.Key) + "]"
		}
		return s

	case *ast.ExprOp:
		if x.Op.IsUnary() && len(x.Values) == 1 {
			return fmt.Sprintf("%s %s", x.Op, obj.operand(x.Values[0]))
		}
		values := []string{}
		for _, v := range x.Values {
			values = append(values, obj.operand(v))
		}
		return strings.Join(values, " "+string(x.Op)+" ")

	case *ast.ExprCast:
		return fmt.Sprintf("%s as %s", obj.operand(x.Value), x.To)

	case *ast.ExprCall:
		args := []string{}
		for _, a := range x.Args {
			args = append(args, obj.arg(a))
		}
		return fmt.Sprintf("%s(%s)", x.Name, strings.Join(args, " "))

	case *ast.ExprService:
		s := obj.expr(x.Name)
		if x.Command != "" {
			s += " " + x.Command
		}
		s += obj.args(x.Args)
		if len(x.Output) > 0 {
			s += " as " + strings.Join(x.Output, ", ")
		}
		return s

	case *ast.ExprMutation:
		return fmt.Sprintf("%s %s%s", obj.operand(x.Subject), x.Name, obj.args(x.Args))

	case *ast.ExprInline:
		return "(" + obj.expr(x.Value) + ")"
	}
	return fmt.Sprintf("<%T>", expr)
}
