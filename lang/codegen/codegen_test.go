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
	"fmt"
	"testing"

	"github.com/purpleidea/storyc/lang/ast"
	"github.com/purpleidea/storyc/lang/interfaces"
	"github.com/purpleidea/storyc/lang/ir"
	"github.com/purpleidea/storyc/lang/types"
	"github.com/purpleidea/storyc/util"

	"github.com/kylelemons/godebug/pretty"
)

func at(n int, stmt ast.Stmt) ast.Stmt {
	stmt.Area().Locate(interfaces.Line(n), 0, 0)
	return stmt
}

func p(name string, fragments ...*ast.Fragment) *ast.ExprPath {
	if fragments == nil {
		fragments = []*ast.Fragment{}
	}
	return &ast.ExprPath{Name: name, Fragments: fragments}
}

func num(i int64) *ast.ExprInt { return &ast.ExprInt{Value: i} }

func yes() *ast.ExprBool { return &ast.ExprBool{Value: true} }

func set(n int, name string, value ast.Expr) ast.Stmt {
	return at(n, &ast.StmtAssign{Target: p(name), Value: value})
}

func block(stmts ...ast.Stmt) *ast.Block {
	return &ast.Block{Stmts: stmts}
}

func prog(stmts ...ast.Stmt) *ast.Program {
	return &ast.Program{Body: block(stmts...)}
}

func ifElse(n int, cond ast.Expr, body, els *ast.Block) ast.Stmt {
	x := &ast.StmtIf{Condition: cond, Body: body, Elifs: []*ast.StmtElif{}}
	if els != nil {
		x.Else = &ast.StmtElse{Body: els}
		x.Else.Locate(interfaces.Line(n+2), 0, 0)
	}
	return at(n, x)
}

func service(n int, name, command string, outputs []string, body *ast.Block) ast.Stmt {
	return at(n, &ast.StmtExpr{Value: &ast.ExprService{
		Name:    p(name),
		Command: command,
		Args:    []*ast.Argument{{Name: "port", Value: num(80)}},
		Output:  outputs,
		Block:   body,
	}})
}

func when(n int, name, command string, body *ast.Block) ast.Stmt {
	return at(n, &ast.StmtWhen{Service: p(name), Command: command, Args: []*ast.Argument{}, Output: []string{}, Body: body})
}

// bound marks the service of a statement as an output, like the resolver does.
func bound(stmt ast.Stmt) ast.Stmt {
	switch x := stmt.(type) {
	case *ast.StmtWhen:
		x.Bound = true
	case *ast.StmtExpr:
		x.Value.(*ast.ExprService).Bound = true
	}
	return stmt
}

func catch(n int, name string, body *ast.Block) *ast.StmtCatch {
	x := &ast.StmtCatch{Name: name, Body: body}
	x.Locate(interfaces.Line(n), 0, 0)
	return x
}

func finally(n int, body *ast.Block) *ast.StmtFinally {
	x := &ast.StmtFinally{Body: body}
	x.Locate(interfaces.Line(n), 0, 0)
	return x
}

// summary renders the links of every line, in coordinate order.
func summary(prog *ir.Program) []string {
	s := func(p *string) string {
		if p == nil {
			return "-"
		}
		return *p
	}
	out := []string{}
	for _, line := range prog.Lines() {
		out = append(out, fmt.Sprintf("%s %s next:%s enter:%s exit:%s parent:%s", line.Ln, line.Method, s(line.Next), s(line.Enter), s(line.Exit), s(line.Parent)))
	}
	return out
}

func TestGenerate0(t *testing.T) {
	type test struct { // an individual test
		name     string
		prog     *ast.Program
		fail     bool
		exp      []string
		services []string
	}
	testCases := []test{}

	testCases = append(testCases, test{
		name: "empty",
		prog: prog(),
		exp:  []string{},
	})
	testCases = append(testCases, test{
		name: "two lines",
		prog: prog(
			set(1, "a", num(1)),
			set(2, "b", &ast.ExprOp{Op: types.OpAdd, Values: []ast.Expr{p("a"), num(1)}}),
		),
		exp: []string{
			"1 expression next:2 enter:- exit:- parent:-",
			"2 expression next:- enter:- exit:- parent:-",
		},
	})
	testCases = append(testCases, test{
		name: "if else exits past the chain",
		prog: prog(
			set(1, "a", num(1)),
			ifElse(2, &ast.ExprOp{Op: types.OpEq, Values: []ast.Expr{p("a"), num(1)}},
				block(set(3, "x", num(0))),
				block(set(5, "x", num(1))),
			),
			set(6, "y", num(2)),
		),
		exp: []string{
			"1 expression next:2 enter:- exit:- parent:-",
			"2 if next:4 enter:3 exit:6 parent:-",
			"3 expression next:- enter:- exit:- parent:2",
			"4 else next:6 enter:5 exit:6 parent:-",
			"5 expression next:- enter:- exit:- parent:4",
			"6 expression next:- enter:- exit:- parent:-",
		},
	})
	testCases = append(testCases, test{
		name: "pending exits are dropped",
		prog: prog(
			ifElse(1, yes(), block(set(2, "x", num(0))), nil),
		),
		exp: []string{
			"1 if next:- enter:2 exit:- parent:-",
			"2 expression next:- enter:- exit:- parent:1",
		},
	})
	testCases = append(testCases, test{
		name: "while enters at the guard",
		prog: prog(
			at(1, &ast.StmtWhile{Condition: yes(), Body: block(
				ifElse(2, &ast.ExprOp{Op: types.OpNot, Values: []ast.Expr{p("ok")}},
					block(at(3, &ast.StmtBreak{})),
					nil,
				),
				set(4, "x", num(1)),
			)}),
		),
		exp: []string{
			"1 while next:- enter:2 exit:- parent:-",
			"2 if next:4 enter:3 exit:4 parent:1",
			"3 break next:- enter:- exit:- parent:2",
			"4 expression next:- enter:- exit:- parent:1",
		},
	})
	testCases = append(testCases, test{
		name: "service block outputs",
		prog: prog(
			service(1, "http", "server", []string{"client"}, block(
				bound(when(2, "client", "listen", block(set(3, "x", num(1))))),
				when(4, "redis", "message", block()),
			)),
			service(5, "log", "info", []string{}, nil),
		),
		exp: []string{
			"1 execute next:5 enter:2 exit:5 parent:-",
			"2 when next:4 enter:3 exit:4 parent:1",
			"3 expression next:- enter:- exit:- parent:2",
			"4 when next:- enter:- exit:- parent:1",
			"5 execute next:- enter:- exit:- parent:-",
		},
		services: []string{"http", "log", "redis"},
	})
	testCases = append(testCases, test{
		name: "unbound output name is a service",
		prog: prog(
			ifElse(1, yes(), block(
				service(2, "svc", "cmd", []string{"client"}, nil),
				bound(service(3, "client", "get", []string{}, nil)),
			), nil),
			service(4, "client", "foo", []string{}, nil),
		),
		exp: []string{
			"1 if next:4 enter:2 exit:4 parent:-",
			"2 execute next:3 enter:- exit:- parent:1",
			"3 execute next:- enter:- exit:- parent:1",
			"4 execute next:- enter:- exit:- parent:-",
		},
		services: []string{"client", "svc"},
	})
	testCases = append(testCases, test{
		name: "try catch finally",
		prog: prog(
			at(1, &ast.StmtTry{
				Body:    block(at(2, &ast.StmtThrow{Value: num(1)})),
				Catch:   catch(3, "e", block(set(4, "x", p("e")))),
				Finally: finally(5, block(set(6, "y", num(1)))),
			}),
			set(7, "z", num(1)),
		),
		exp: []string{
			"1 try next:3 enter:2 exit:7 parent:-",
			"2 throw next:- enter:- exit:- parent:1",
			"3 catch next:5 enter:4 exit:7 parent:-",
			"4 expression next:- enter:- exit:- parent:3",
			"5 finally next:7 enter:6 exit:7 parent:-",
			"6 expression next:- enter:- exit:- parent:5",
			"7 expression next:- enter:- exit:- parent:-",
		},
	})
	testCases = append(testCases, test{
		name: "unlocated statement",
		prog: prog(&ast.StmtBreak{}),
		fail: true,
	})
	testCases = append(testCases, test{
		name: "call can't be encoded",
		prog: prog(
			set(1, "a", &ast.ExprOp{Op: types.OpAdd, Values: []ast.Expr{&ast.ExprCall{Name: "f"}, num(1)}}),
		),
		fail: true,
	})

	names := []string{}
	for index, tc := range testCases { // run all the tests
		if tc.name == "" {
			t.Errorf("test #%d: not named", index)
			continue
		}
		if util.StrInList(tc.name, names) {
			t.Errorf("test #%d: duplicate sub test name of: %s", index, tc.name)
			continue
		}
		names = append(names, tc.name)

		program, fail, exp, services := tc.prog, tc.fail, tc.exp, tc.services

		t.Run(fmt.Sprintf("test #%d (%s)", index, tc.name), func(t *testing.T) {
			lines := &Lines{
				Debug: testing.Verbose(),
				Logf: func(format string, v ...interface{}) {
					t.Logf("codegen: "+format, v...)
				},
			}
			out, err := lines.Generate(program)

			if !fail && err != nil {
				t.Errorf("test #%d: FAIL", index)
				t.Errorf("test #%d: generate failed with: %+v", index, err)
				return
			}
			if fail && err == nil {
				t.Errorf("test #%d: FAIL", index)
				t.Errorf("test #%d: generate passed, expected fail", index)
				return
			}
			if fail {
				return
			}

			if err := out.Validate(); err != nil {
				t.Errorf("test #%d: FAIL", index)
				t.Errorf("test #%d: invalid program: %+v", index, err)
			}
			if diff := pretty.Compare(exp, summary(out)); diff != "" {
				t.Errorf("test #%d: FAIL", index)
				t.Errorf("test #%d: lines differ: (-want +got)\n%s", index, diff)
			}
			if services == nil {
				services = []string{}
			}
			if diff := pretty.Compare(services, out.Services); diff != "" {
				t.Errorf("test #%d: FAIL", index)
				t.Errorf("test #%d: services differ: (-want +got)\n%s", index, diff)
			}
		})
	}
}

func TestGenerateFunction(t *testing.T) {
	f := at(1, &ast.StmtFunc{
		Name:   "double",
		Params: []*ast.Param{{Name: "n", Type: types.TypeInt}},
		Output: types.TypeInt,
		Body: block(at(2, &ast.StmtReturn{
			Value: &ast.ExprOp{Op: types.OpMul, Values: []ast.Expr{p("n"), num(2)}},
		})),
	})
	c := set(3, "x", &ast.ExprCall{Name: "double", Args: []*ast.Argument{{Name: "n", Value: num(4)}}})

	out, err := (&Lines{Logf: t.Logf}).Generate(prog(f, c))
	if err != nil {
		t.Fatalf("generate failed with: %+v", err)
	}
	if diff := pretty.Compare(map[string]string{"double": "1"}, out.Functions); diff != "" {
		t.Errorf("functions differ: (-want +got)\n%s", diff)
	}
	if out.Entrypoint == nil || *out.Entrypoint != "1" {
		t.Errorf("unexpected entrypoint: %v", out.Entrypoint)
	}
	if out.Version != ir.Version {
		t.Errorf("unexpected version: %s", out.Version)
	}

	fn := out.Tree["1"]
	if fn.Method != MethodFunction || *fn.Function != "double" || fn.Output[0] != "int" {
		t.Errorf("unexpected function line: %+v", fn)
	}
	call := out.Tree["3"]
	if call.Method != MethodCall || *call.Function != "double" {
		t.Errorf("unexpected call line: %+v", call)
	}
	if diff := pretty.Compare([]string{"x"}, call.Name); diff != "" {
		t.Errorf("name differs: (-want +got)\n%s", diff)
	}
	exp := []interface{}{
		ir.Object{"$OBJECT": "arg", "name": "n", "arg": ir.Object{"$OBJECT": "int", "int": int64(4)}},
	}
	if diff := pretty.Compare(exp, call.Args); diff != "" {
		t.Errorf("args differ: (-want +got)\n%s", diff)
	}
}

func TestGenerateMutation(t *testing.T) {
	m := set(1, "n", &ast.ExprMutation{
		Subject: p("l"),
		Name:    "join",
		Args:    []*ast.Argument{{Name: "by", Value: &ast.ExprString{Value: ","}}},
	})
	out, err := (&Lines{Logf: t.Logf}).Generate(prog(m))
	if err != nil {
		t.Fatalf("generate failed with: %+v", err)
	}
	line := out.Tree["1"]
	if line.Method != MethodMutation {
		t.Errorf("unexpected method: %s", line.Method)
	}
	exp := []interface{}{
		ir.Object{"$OBJECT": "path", "paths": []interface{}{"l"}},
		ir.Object{"$OBJECT": "mutation", "mutation": "join", "arguments": []interface{}{
			ir.Object{"$OBJECT": "arg", "name": "by", "arg": ir.Object{"$OBJECT": "string", "string": ","}},
		}},
	}
	if diff := pretty.Compare(exp, line.Args); diff != "" {
		t.Errorf("args differ: (-want +got)\n%s", diff)
	}
}

func TestEncode0(t *testing.T) {
	testCases := []struct {
		name string
		expr ast.Expr
		exp  interface{}
	}{
		{
			"range",
			&ast.ExprRange{Start: num(1)},
			ir.Object{"$OBJECT": "range", "start": ir.Object{"$OBJECT": "int", "int": int64(1)}, "end": nil},
		},
		{
			"path",
			p("a", &ast.Fragment{Kind: types.IndexDot, Name: "b"}, &ast.Fragment{Kind: types.IndexBracket, Key: num(0)}),
			ir.Object{"$OBJECT": "path", "paths": []interface{}{"a", "b", ir.Object{"$OBJECT": "int", "int": int64(0)}}},
		},
		{
			"expression",
			&ast.ExprOp{Op: types.OpLt, Values: []ast.Expr{num(1), num(2)}},
			ir.Object{"$OBJECT": "expression", "expression": "less", "values": []interface{}{
				ir.Object{"$OBJECT": "int", "int": int64(1)},
				ir.Object{"$OBJECT": "int", "int": int64(2)},
			}},
		},
		{
			"cast",
			&ast.ExprCast{Value: p("m"), To: types.Map(types.TypeString, types.List(types.TypeInt))},
			ir.Object{"$OBJECT": "type_cast", "value": ir.Object{"$OBJECT": "path", "paths": []interface{}{"m"}}, "type": ir.Object{
				"$OBJECT": "type", "type": "Map", "values": []interface{}{
					ir.Object{"$OBJECT": "type", "type": "string", "values": []interface{}{}},
					ir.Object{"$OBJECT": "type", "type": "List", "values": []interface{}{
						ir.Object{"$OBJECT": "type", "type": "int", "values": []interface{}{}},
					}},
				},
			}},
		},
		{
			"dict",
			&ast.ExprMap{Pairs: []*ast.KeyValue{{Key: &ast.ExprString{Value: "k"}, Value: &ast.ExprFloat{Value: 1.5}}}},
			ir.Object{"$OBJECT": "dict", "items": []interface{}{
				[]interface{}{ir.Object{"$OBJECT": "string", "string": "k"}, ir.Object{"$OBJECT": "float", "float": 1.5}},
			}},
		},
		{
			"time",
			&ast.ExprTime{Millis: 90000, Raw: "1m30s"},
			ir.Object{"$OBJECT": "time", "ms": int64(90000)},
		},
	}

	for index, tc := range testCases {
		out, err := Encode(tc.expr)
		if err != nil {
			t.Errorf("test #%d (%s): encode failed with: %+v", index, tc.name, err)
			continue
		}
		if diff := pretty.Compare(tc.exp, out); diff != "" {
			t.Errorf("test #%d (%s): encoding differs: (-want +got)\n%s", index, tc.name, diff)
		}
	}
}
