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

package ast

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/purpleidea/storyc/lang/interfaces"
	"github.com/purpleidea/storyc/lang/tree"
	"github.com/purpleidea/storyc/lang/types"
)

// timeRegexp matches one component of a duration literal, eg: `30m`.
var timeRegexp = regexp.MustCompile(`^([0-9]+)(ms|w|d|h|m|s)`)

// timeUnits are the number of milliseconds in each duration unit.
var timeUnits = map[string]int64{
	"ms": 1,
	"s":  1000,
	"m":  60 * 1000,
	"h":  60 * 60 * 1000,
	"d":  24 * 60 * 60 * 1000,
	"w":  7 * 24 * 60 * 60 * 1000,
}

// Build converts the generic tree of the parser into the typed AST.
func Build(root *tree.Node, data *interfaces.Data) (*Program, error) {
	obj := &builder{data: data}
	if root == nil {
		return nil, fmt.Errorf("empty tree")
	}
	if root.Kind != tree.KindStart {
		return nil, obj.invalid(root, "expected the root to be a start node")
	}
	prog := &Program{}
	if err := obj.locate(&prog.Textarea, root); err != nil {
		return nil, err
	}
	b := root.Child(tree.KindBlock)
	if b == nil { // an empty program
		prog.Body = &Block{Textarea: prog.Textarea, Stmts: []Stmt{}}
		return prog, nil
	}
	body, err := obj.block(b)
	if err != nil {
		return nil, err
	}
	prog.Body = body
	return prog, nil
}

// BuildExpr converts a tree that holds a single expression into an expression.
// It is used for the code fragments of string templates.
func BuildExpr(node *tree.Node, data *interfaces.Data) (Expr, error) {
	obj := &builder{data: data}
	return obj.expr(node)
}

// treeNode lets an error point at a tree node which has no AST equivalent yet.
type treeNode struct {
	interfaces.Textarea

	node *tree.Node
}

func (obj *treeNode) String() string { return obj.node.String() }

func (obj *treeNode) Apply(fn func(interfaces.Node) error) error { return fn(obj) }

type builder struct {
	data *interfaces.Data
}

// invalid returns a tree_invalid error pointing at the node.
func (obj *builder) invalid(node *tree.Node, format string, v ...interface{}) error {
	tn := &treeNode{node: node}
	tn.Setup(obj.data)
	if c, err := interfaces.ParseCoordinate(node.Line); err == nil {
		tn.Locate(c, node.Column, node.End)
	}
	return interfaces.NewError(interfaces.ErrTreeInvalid, tn, "kind", node.Kind.String(), "reason", fmt.Sprintf(format, v...))
}

// fail returns an error of the given kind pointing at the node.
func (obj *builder) fail(kind interfaces.ErrorKind, node *tree.Node, args ...string) error {
	tn := &treeNode{node: node}
	tn.Setup(obj.data)
	if c, err := interfaces.ParseCoordinate(node.Line); err == nil {
		tn.Locate(c, node.Column, node.End)
	}
	return interfaces.NewError(kind, tn, args...)
}

func (obj *builder) locate(ta *interfaces.Textarea, node *tree.Node) error {
	c, err := interfaces.ParseCoordinate(node.Line)
	if err != nil {
		return obj.invalid(node, "%s", err.Error())
	}
	ta.Setup(obj.data)
	ta.Locate(c, node.Column, node.End)
	return nil
}

// name returns the value of the first NAME token of the node.
func (obj *builder) name(node *tree.Node) (string, error) {
	tok := node.Token(tree.TokenName)
	if tok == nil {
		return "", obj.invalid(node, "missing name")
	}
	return tok.Value, nil
}

func (obj *builder) block(node *tree.Node) (*Block, error) {
	if node == nil {
		return nil, fmt.Errorf("missing block")
	}
	if node.Kind != tree.KindBlock {
		return nil, obj.invalid(node, "expected a block")
	}
	b := &Block{Stmts: []Stmt{}}
	if err := obj.locate(&b.Textarea, node); err != nil {
		return nil, err
	}
	for _, x := range node.Nodes() {
		stmt, err := obj.stmt(x)
		if err != nil {
			return nil, err
		}
		b.Stmts = append(b.Stmts, stmt)
	}
	return b, nil
}

// body returns the mandatory block child of a node.
func (obj *builder) body(node *tree.Node) (*Block, error) {
	b := node.Child(tree.KindBlock)
	if b == nil {
		return nil, obj.invalid(node, "missing block")
	}
	return obj.block(b)
}

// values returns the child nodes that are not of one of the excluded kinds.
func values(node *tree.Node, exclude ...tree.Kind) []*tree.Node {
	out := []*tree.Node{}
	for _, x := range node.Nodes() {
		skip := false
		for _, k := range exclude {
			if x.Kind == k {
				skip = true
				break
			}
		}
		if !skip {
			out = append(out, x)
		}
	}
	return out
}

func (obj *builder) stmt(node *tree.Node) (Stmt, error) {
	switch node.Kind {
	case tree.KindAssignment:
		nodes := node.Nodes()
		if len(nodes) != 2 {
			return nil, obj.invalid(node, "expected a target and a value")
		}
		if nodes[0].Kind != tree.KindPath {
			return nil, obj.invalid(node, "the target must be a path")
		}
		target, err := obj.path(nodes[0])
		if err != nil {
			return nil, err
		}
		value, err := obj.expr(nodes[1])
		if err != nil {
			return nil, err
		}
		stmt := &StmtAssign{Target: target, Value: value}
		return stmt, obj.locate(&stmt.Textarea, node)

	case tree.KindIfBlock:
		return obj.ifBlock(node)

	case tree.KindForeachBlock:
		cond := values(node, tree.KindOutput, tree.KindBlock)
		if len(cond) != 1 {
			return nil, obj.invalid(node, "expected one iterable")
		}
		iterable, err := obj.expr(cond[0])
		if err != nil {
			return nil, err
		}
		names := []string{}
		if out := node.Child(tree.KindOutput); out != nil {
			names = obj.output(out)
		}
		body, err := obj.body(node)
		if err != nil {
			return nil, err
		}
		stmt := &StmtForeach{Iterable: iterable, Names: names, Body: body}
		return stmt, obj.locate(&stmt.Textarea, node)

	case tree.KindWhileBlock:
		cond := values(node, tree.KindBlock)
		if len(cond) != 1 {
			return nil, obj.invalid(node, "expected one condition")
		}
		condition, err := obj.expr(cond[0])
		if err != nil {
			return nil, err
		}
		body, err := obj.body(node)
		if err != nil {
			return nil, err
		}
		stmt := &StmtWhile{Condition: condition, Body: body}
		return stmt, obj.locate(&stmt.Textarea, node)

	case tree.KindTryBlock:
		return obj.tryBlock(node)

	case tree.KindFunctionBlock:
		return obj.functionBlock(node)

	case tree.KindWhenBlock:
		return obj.whenBlock(node)

	case tree.KindReturnStatement, tree.KindThrowStatement:
		var value Expr
		if nodes := node.Nodes(); len(nodes) > 1 {
			return nil, obj.invalid(node, "expected at most one value")
		} else if len(nodes) == 1 {
			var err error
			if value, err = obj.expr(nodes[0]); err != nil {
				return nil, err
			}
		}
		if node.Kind == tree.KindReturnStatement {
			stmt := &StmtReturn{Value: value}
			return stmt, obj.locate(&stmt.Textarea, node)
		}
		stmt := &StmtThrow{Value: value}
		return stmt, obj.locate(&stmt.Textarea, node)

	case tree.KindBreakStatement:
		stmt := &StmtBreak{}
		return stmt, obj.locate(&stmt.Textarea, node)

	case tree.KindElseifBlock, tree.KindElseBlock, tree.KindCatchBlock, tree.KindFinallyBlock:
		return nil, obj.invalid(node, "found outside of its parent block")
	}

	// everything else must be an expression used as a statement
	value, err := obj.expr(node)
	if err != nil {
		return nil, err
	}
	stmt := &StmtExpr{Value: value}
	return stmt, obj.locate(&stmt.Textarea, node)
}

func (obj *builder) ifBlock(node *tree.Node) (Stmt, error) {
	cond := values(node, tree.KindBlock, tree.KindElseifBlock, tree.KindElseBlock)
	if len(cond) != 1 {
		return nil, obj.invalid(node, "expected one condition")
	}
	condition, err := obj.expr(cond[0])
	if err != nil {
		return nil, err
	}
	body, err := obj.body(node)
	if err != nil {
		return nil, err
	}
	stmt := &StmtIf{Condition: condition, Body: body, Elifs: []*StmtElif{}}
	if err := obj.locate(&stmt.Textarea, node); err != nil {
		return nil, err
	}

	for _, x := range node.ChildrenOf(tree.KindElseifBlock) {
		cond := values(x, tree.KindBlock)
		if len(cond) != 1 {
			return nil, obj.invalid(x, "expected one condition")
		}
		condition, err := obj.expr(cond[0])
		if err != nil {
			return nil, err
		}
		body, err := obj.body(x)
		if err != nil {
			return nil, err
		}
		elif := &StmtElif{Condition: condition, Body: body}
		if err := obj.locate(&elif.Textarea, x); err != nil {
			return nil, err
		}
		stmt.Elifs = append(stmt.Elifs, elif)
	}

	if x := node.Child(tree.KindElseBlock); x != nil {
		body, err := obj.body(x)
		if err != nil {
			return nil, err
		}
		stmt.Else = &StmtElse{Body: body}
		if err := obj.locate(&stmt.Else.Textarea, x); err != nil {
			return nil, err
		}
	}
	return stmt, nil
}

func (obj *builder) tryBlock(node *tree.Node) (Stmt, error) {
	body, err := obj.body(node)
	if err != nil {
		return nil, err
	}
	stmt := &StmtTry{Body: body}
	if err := obj.locate(&stmt.Textarea, node); err != nil {
		return nil, err
	}

	if x := node.Child(tree.KindCatchBlock); x != nil {
		body, err := obj.body(x)
		if err != nil {
			return nil, err
		}
		stmt.Catch = &StmtCatch{Body: body}
		if out := x.Child(tree.KindOutput); out != nil {
			names := obj.output(out)
			if len(names) > 1 {
				return nil, obj.invalid(x, "expected at most one error name")
			}
			if len(names) == 1 {
				stmt.Catch.Name = names[0]
			}
		}
		if err := obj.locate(&stmt.Catch.Textarea, x); err != nil {
			return nil, err
		}
	}

	if x := node.Child(tree.KindFinallyBlock); x != nil {
		body, err := obj.body(x)
		if err != nil {
			return nil, err
		}
		stmt.Finally = &StmtFinally{Body: body}
		if err := obj.locate(&stmt.Finally.Textarea, x); err != nil {
			return nil, err
		}
	}
	return stmt, nil
}

func (obj *builder) functionBlock(node *tree.Node) (Stmt, error) {
	name, err := obj.name(node)
	if err != nil {
		return nil, err
	}
	stmt := &StmtFunc{Name: name, Params: []*Param{}}
	for _, x := range node.ChildrenOf(tree.KindTypedArgument) {
		param, err := obj.name(x)
		if err != nil {
			return nil, err
		}
		typ, err := obj.types(x.Child(tree.KindTypes), x)
		if err != nil {
			return nil, err
		}
		stmt.Params = append(stmt.Params, &Param{Name: param, Type: typ})
	}
	if x := node.Child(tree.KindFunctionOutput); x != nil {
		typ, err := obj.types(x.Child(tree.KindTypes), x)
		if err != nil {
			return nil, err
		}
		stmt.Output = typ
	}
	if stmt.Body, err = obj.body(node); err != nil {
		return nil, err
	}
	return stmt, obj.locate(&stmt.Textarea, node)
}

func (obj *builder) whenBlock(node *tree.Node) (Stmt, error) {
	p := node.Child(tree.KindPath)
	if p == nil {
		return nil, obj.invalid(node, "missing service")
	}
	service, err := obj.path(p)
	if err != nil {
		return nil, err
	}
	stmt := &StmtWhen{Service: service, Output: []string{}}
	if tok := node.Token(tree.TokenName); tok != nil {
		stmt.Command = tok.Value
	}
	if x := node.Child(tree.KindArguments); x != nil {
		if stmt.Args, err = obj.arguments(x); err != nil {
			return nil, err
		}
	}
	if x := node.Child(tree.KindOutput); x != nil {
		stmt.Output = obj.output(x)
	}
	if stmt.Body, err = obj.body(node); err != nil {
		return nil, err
	}
	return stmt, obj.locate(&stmt.Textarea, node)
}

func (obj *builder) output(node *tree.Node) []string {
	names := []string{}
	for _, x := range node.Tokens() {
		if x.Kind == tree.TokenName {
			names = append(names, x.Value)
		}
	}
	return names
}

func (obj *builder) types(node *tree.Node, parent *tree.Node) (*types.Type, error) {
	if node == nil {
		return nil, obj.invalid(parent, "missing type")
	}
	tok := node.Token(tree.TokenType)
	if tok == nil {
		return nil, obj.invalid(node, "missing type")
	}
	typ := types.NewType(tok.Value)
	if typ == nil || typ.IsGeneric() {
		return nil, obj.invalid(node, "invalid type `%s`", tok.Value)
	}
	return typ, nil
}

func (obj *builder) arguments(node *tree.Node) ([]*Argument, error) {
	args := []*Argument{}
	for _, x := range node.ChildrenOf(tree.KindArgument) {
		nodes := x.Nodes()
		if len(nodes) != 1 {
			return nil, obj.invalid(x, "expected one value")
		}
		value, err := obj.expr(nodes[0])
		if err != nil {
			return nil, err
		}
		arg := &Argument{Value: value}
		if tok := x.Token(tree.TokenName); tok != nil {
			arg.Name = tok.Value
		}
		if err := obj.locate(&arg.Textarea, x); err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	return args, nil
}

func (obj *builder) path(node *tree.Node) (*ExprPath, error) {
	if node.Kind != tree.KindPath {
		return nil, obj.invalid(node, "expected a path")
	}
	name, err := obj.name(node)
	if err != nil {
		return nil, err
	}
	path := &ExprPath{Name: name, Fragments: []*Fragment{}}
	for _, x := range node.ChildrenOf(tree.KindPathFragment) {
		if nodes := x.Nodes(); len(nodes) == 1 {
			key, err := obj.expr(nodes[0])
			if err != nil {
				return nil, err
			}
			path.Fragments = append(path.Fragments, &Fragment{Kind: types.IndexBracket, Key: key})
			continue
		}
		frag, err := obj.name(x)
		if err != nil {
			return nil, err
		}
		path.Fragments = append(path.Fragments, &Fragment{Kind: types.IndexDot, Name: frag})
	}
	return path, obj.locate(&path.Textarea, node)
}

// token returns the value of the first token of the given kind.
func (obj *builder) token(node *tree.Node, kind tree.TokenKind) (string, error) {
	tok := node.Token(kind)
	if tok == nil {
		return "", obj.invalid(node, "missing %s token", kind)
	}
	return tok.Value, nil
}

func (obj *builder) expr(node *tree.Node) (Expr, error) {
	switch node.Kind {
	case tree.KindEntity, tree.KindValues:
		nodes := node.Nodes()
		if len(nodes) != 1 {
			return nil, obj.invalid(node, "expected one value")
		}
		return obj.expr(nodes[0])

	case tree.KindString:
		s, err := obj.token(node, tree.TokenString)
		if err != nil {
			return nil, err
		}
		expr := &ExprString{Value: s}
		return expr, obj.locate(&expr.Textarea, node)

	case tree.KindNumber:
		if tok := node.Token(tree.TokenInt); tok != nil {
			i, err := strconv.ParseInt(tok.Value, 10, 64)
			if err != nil {
				return nil, obj.fail(interfaces.ErrNumberInvalid, node, "number", tok.Value)
			}
			expr := &ExprInt{Value: i}
			return expr, obj.locate(&expr.Textarea, node)
		}
		s, err := obj.token(node, tree.TokenFloat)
		if err != nil {
			return nil, err
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, obj.fail(interfaces.ErrNumberInvalid, node, "number", s)
		}
		expr := &ExprFloat{Value: f}
		return expr, obj.locate(&expr.Textarea, node)

	case tree.KindBoolean:
		s, err := obj.token(node, tree.TokenBool)
		if err != nil {
			return nil, err
		}
		if s != "true" && s != "false" {
			return nil, obj.invalid(node, "invalid boolean `%s`", s)
		}
		expr := &ExprBool{Value: s == "true"}
		return expr, obj.locate(&expr.Textarea, node)

	case tree.KindRegularExpression:
		pattern, err := obj.token(node, tree.TokenRegExp)
		if err != nil {
			return nil, err
		}
		flags := ""
		if tok := node.Token(tree.TokenFlags); tok != nil {
			flags = tok.Value
		}
		if _, err := regexp.Compile(pattern); err != nil {
			return nil, obj.fail(interfaces.ErrRegexpInvalid, node, "regexp", pattern, "reason", err.Error())
		}
		expr := &ExprRegExp{Pattern: pattern, Flags: flags}
		return expr, obj.locate(&expr.Textarea, node)

	case tree.KindTime:
		s, err := obj.token(node, tree.TokenTime)
		if err != nil {
			return nil, err
		}
		ms, ok := parseTime(s)
		if !ok {
			return nil, obj.fail(interfaces.ErrTimeValueInvalid, node, "time", s)
		}
		expr := &ExprTime{Millis: ms, Raw: s}
		return expr, obj.locate(&expr.Textarea, node)

	case tree.KindRange:
		expr := &ExprRange{}
		colon := false
		for _, x := range node.Children {
			switch e := x.(type) {
			case *tree.Token:
				if e.Kind == tree.TokenColon {
					colon = true
				}
			case *tree.Node:
				v, err := obj.expr(e)
				if err != nil {
					return nil, err
				}
				if !colon && expr.Start == nil {
					expr.Start = v
				} else if colon && expr.End == nil {
					expr.End = v
				} else {
					return nil, obj.invalid(node, "too many bounds")
				}
			}
		}
		return expr, obj.locate(&expr.Textarea, node)

	case tree.KindList:
		expr := &ExprList{Items: []Expr{}}
		for _, x := range node.Nodes() {
			v, err := obj.expr(x)
			if err != nil {
				return nil, err
			}
			expr.Items = append(expr.Items, v)
		}
		return expr, obj.locate(&expr.Textarea, node)

	case tree.KindObjects:
		expr := &ExprMap{Pairs: []*KeyValue{}}
		for _, x := range node.Nodes() {
			if x.Kind != tree.KindKeyValue || len(x.Nodes()) != 2 {
				return nil, obj.invalid(x, "expected a key and a value")
			}
			k, err := obj.expr(x.Nodes()[0])
			if err != nil {
				return nil, err
			}
			v, err := obj.expr(x.Nodes()[1])
			if err != nil {
				return nil, err
			}
			expr.Pairs = append(expr.Pairs, &KeyValue{Key: k, Value: v})
		}
		return expr, obj.locate(&expr.Textarea, node)

	case tree.KindPath:
		return obj.path(node)

	case tree.KindExpression:
		return obj.expression(node)

	case tree.KindTypeCast:
		nodes := values(node, tree.KindTypes)
		if len(nodes) != 1 {
			return nil, obj.invalid(node, "expected one value")
		}
		value, err := obj.expr(nodes[0])
		if err != nil {
			return nil, err
		}
		typ, err := obj.types(node.Child(tree.KindTypes), node)
		if err != nil {
			return nil, err
		}
		expr := &ExprCast{Value: value, To: typ}
		return expr, obj.locate(&expr.Textarea, node)

	case tree.KindCallExpression:
		name, err := obj.name(node)
		if err != nil {
			return nil, err
		}
		expr := &ExprCall{Name: name, Args: []*Argument{}}
		if x := node.Child(tree.KindArguments); x != nil {
			if expr.Args, err = obj.arguments(x); err != nil {
				return nil, err
			}
		}
		return expr, obj.locate(&expr.Textarea, node)

	case tree.KindService:
		p := node.Child(tree.KindPath)
		if p == nil {
			return nil, obj.invalid(node, "missing service name")
		}
		name, err := obj.path(p)
		if err != nil {
			return nil, err
		}
		expr := &ExprService{Name: name, Args: []*Argument{}}
		if tok := node.Token(tree.TokenName); tok != nil {
			expr.Command = tok.Value
		}
		if x := node.Child(tree.KindArguments); x != nil {
			if expr.Args, err = obj.arguments(x); err != nil {
				return nil, err
			}
		}
		if x := node.Child(tree.KindOutput); x != nil {
			expr.Output = obj.output(x)
		}
		if x := node.Child(tree.KindBlock); x != nil {
			if expr.Block, err = obj.block(x); err != nil {
				return nil, err
			}
		}
		return expr, obj.locate(&expr.Textarea, node)

	case tree.KindMutation:
		nodes := values(node, tree.KindArguments)
		if len(nodes) != 1 {
			return nil, obj.invalid(node, "expected one subject")
		}
		subject, err := obj.expr(nodes[0])
		if err != nil {
			return nil, err
		}
		name, err := obj.name(node)
		if err != nil {
			return nil, err
		}
		expr := &ExprMutation{Subject: subject, Name: name, Args: []*Argument{}}
		if x := node.Child(tree.KindArguments); x != nil {
			if expr.Args, err = obj.arguments(x); err != nil {
				return nil, err
			}
		}
		return expr, obj.locate(&expr.Textarea, node)

	case tree.KindInlineExpression:
		nodes := node.Nodes()
		if len(nodes) != 1 {
			return nil, obj.invalid(node, "expected one value")
		}
		value, err := obj.expr(nodes[0])
		if err != nil {
			return nil, err
		}
		expr := &ExprInline{Value: value}
		return expr, obj.locate(&expr.Textarea, node)
	}

	return nil, obj.invalid(node, "not an expression")
}

// expression builds an operator node. All the operators of one node must be
// the same, precedence is expressed by nesting.
func (obj *builder) expression(node *tree.Node) (Expr, error) {
	expr := &ExprOp{Values: []Expr{}}
	var op types.Op
	expectValue := true
	for i, x := range node.Children {
		switch e := x.(type) {
		case *tree.Token:
			if e.Kind != tree.TokenOp {
				continue
			}
			o, ok := types.ParseOp(e.Value)
			if !ok {
				return nil, obj.invalid(node, "unknown operator `%s`", e.Value)
			}
			if o.IsUnary() != (i == 0) {
				return nil, obj.invalid(node, "misplaced operator `%s`", e.Value)
			}
			if op != "" && op != o {
				return nil, obj.invalid(node, "mixed operators `%s` and `%s`", op, o)
			}
			if expectValue && !o.IsUnary() {
				return nil, obj.invalid(node, "missing operand before `%s`", e.Value)
			}
			op = o
			expectValue = true

		case *tree.Node:
			if !expectValue {
				return nil, obj.invalid(node, "missing operator")
			}
			v, err := obj.expr(e)
			if err != nil {
				return nil, err
			}
			expr.Values = append(expr.Values, v)
			expectValue = false
		}
	}

	if op == "" { // a parenthesized value
		if len(expr.Values) != 1 {
			return nil, obj.invalid(node, "expected one value")
		}
		return expr.Values[0], nil
	}
	if expectValue {
		return nil, obj.invalid(node, "missing operand after `%s`", op)
	}
	if op.IsUnary() && len(expr.Values) != 1 {
		return nil, obj.invalid(node, "`%s` takes one operand", op)
	}
	if !op.IsUnary() && len(expr.Values) < 2 {
		return nil, obj.invalid(node, "`%s` takes two operands", op)
	}
	expr.Op = op
	return expr, obj.locate(&expr.Textarea, node)
}

// parseTime returns the number of milliseconds of a duration literal like
// `1h30m`.
func parseTime(s string) (int64, bool) {
	if s == "" {
		return 0, false
	}
	var total int64
	rest := strings.TrimSpace(s)
	for rest != "" {
		m := timeRegexp.FindStringSubmatch(rest)
		if m == nil {
			return 0, false
		}
		n, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			return 0, false
		}
		total += n * timeUnits[m[2]]
		rest = rest[len(m[0]):]
	}
	return total, true
}
