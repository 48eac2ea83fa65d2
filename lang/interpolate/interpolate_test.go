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
	"strings"
	"testing"

	"github.com/purpleidea/storyc/lang/ast"
	"github.com/purpleidea/storyc/lang/interfaces"
	"github.com/purpleidea/storyc/util"

	"github.com/davecgh/go-spew/spew"
	"github.com/kylelemons/godebug/pretty"
)

func TestScan0(t *testing.T) {
	type test struct { // an individual test
		name   string
		data   string
		fail   bool
		kind   interfaces.ErrorKind // if fail
		stream Stream
	}
	testCases := []test{}
	// NOTE: to run an individual test, first run: `go test -v` to list the
	// names, and then run `go test -run <pattern>` with the name(s) to run.

	testCases = append(testCases, test{
		name:   "empty",
		data:   ``,
		stream: Stream{},
	})
	testCases = append(testCases, test{
		name:   "plain",
		data:   `hello world`,
		stream: Stream{Literal{Value: "hello world"}},
	})
	testCases = append(testCases, test{
		name: "one code segment",
		data: `a{1+1}b`,
		stream: Stream{
			Literal{Value: "a"},
			Code{Value: "1+1", Offset: 2},
			Literal{Value: "b"},
		},
	})
	testCases = append(testCases, test{
		name: "adjacent segments",
		data: `{x}{y}`,
		stream: Stream{
			Code{Value: "x", Offset: 1},
			Code{Value: "y", Offset: 4},
		},
	})
	testCases = append(testCases, test{
		name:   "escapes",
		data:   `\{not code\} and \\`,
		stream: Stream{Literal{Value: `{not code} and \`}},
	})
	testCases = append(testCases, test{
		name:   "other escapes are kept",
		data:   `a\nb`,
		stream: Stream{Literal{Value: `a\nb`}},
	})
	testCases = append(testCases, test{
		name:   "stray close",
		data:   `a}b`,
		stream: Stream{Literal{Value: "a}b"}},
	})
	testCases = append(testCases, test{
		name: "nested",
		data: `a{b{c}}`,
		fail: true,
		kind: interfaces.ErrStringTemplatesNested,
	})
	testCases = append(testCases, test{
		name: "empty code",
		data: `a{ }b`,
		fail: true,
		kind: interfaces.ErrStringTemplatesEmpty,
	})
	testCases = append(testCases, test{
		name: "unclosed",
		data: `a{b`,
		fail: true,
		kind: interfaces.ErrStringTemplatesUnclosed,
	})

	names := []string{}
	for index, tc := range testCases { // run all the tests
		if util.StrInList(tc.name, names) {
			t.Errorf("test #%d: duplicate sub test name of: %s", index, tc.name)
			continue
		}
		names = append(names, tc.name)

		t.Run(fmt.Sprintf("test #%d (%s)", index, tc.name), func(t *testing.T) {
			stream, err := Scan(tc.data)
			if !tc.fail && err != nil {
				t.Errorf("test #%d: FAIL", index)
				t.Errorf("test #%d: scan failed with: %+v", index, err)
				return
			}
			if tc.fail {
				if !interfaces.IsKind(err, tc.kind) {
					t.Errorf("test #%d: FAIL", index)
					t.Errorf("test #%d: expected %s, got: %+v", index, tc.kind.Code(), err)
				}
				return
			}
			if diff := pretty.Compare(tc.stream, stream); diff != "" {
				t.Errorf("test #%d: FAIL", index)
				t.Errorf("test #%d: stream did not match expected", index)
				t.Logf("test #%d:   got: %s", index, spew.Sdump(stream))
				t.Logf("test #%d: diff:\n%s", index, diff)
			}
		})
	}
}

func TestStream(t *testing.T) {
	s := Stream{Literal{Value: "a"}, Code{Value: "x"}, Literal{Value: "b"}}
	if s.IsPlain() {
		t.Errorf("stream has code")
	}
	if x := s.Text(); x != "ab" {
		t.Errorf("unexpected text: %s", x)
	}
	if !(Stream{Literal{Value: "a"}}).IsPlain() {
		t.Errorf("stream is plain")
	}
}

func TestParseFragment0(t *testing.T) {
	type test struct { // an individual test
		name string
		code string
		fail bool
		kind interfaces.ErrorKind // if fail
		exp  string
	}
	testCases := []test{}

	testCases = append(testCases, test{
		name: "variable",
		code: `name`,
		exp:  "name",
	})
	testCases = append(testCases, test{
		name: "dotted variable",
		code: `user.name`,
		exp:  "user.name",
	})
	testCases = append(testCases, test{
		name: "index",
		code: `items[0]`,
		exp:  "items[0]",
	})
	testCases = append(testCases, test{
		name: "sum",
		code: `1+1`,
		exp:  "(1 + 1)",
	})
	testCases = append(testCases, test{
		name: "string literal",
		code: `"x"`,
		exp:  `"x"`,
	})
	testCases = append(testCases, test{
		name: "call",
		code: `double(2)`,
		exp:  "double(2)",
	})
	testCases = append(testCases, test{
		name: "service",
		code: `svc cmd`,
		exp:  "svc cmd",
	})
	testCases = append(testCases, test{
		name: "service with arguments",
		code: ` svc cmd x:1 msg:"a b" `,
		exp:  `svc cmd(x:1, msg:"a b")`,
	})
	testCases = append(testCases, test{
		name: "dotted service",
		code: `http.client get url:site`,
		exp:  "http.client get(url:site)",
	})
	testCases = append(testCases, test{
		name: "mutation of a variable",
		code: `items length`,
		exp:  "items length",
	})
	testCases = append(testCases, test{
		name: "service with a bad argument",
		code: `svc cmd x:1+`,
		fail: true,
		kind: interfaces.ErrStringTemplatesFragment,
	})
	testCases = append(testCases, test{
		name: "operator is not a command",
		code: `a and b`,
		fail: true,
		kind: interfaces.ErrStringTemplatesFragment,
	})
	testCases = append(testCases, test{
		name: "dash",
		code: `my-var`,
		fail: true,
		kind: interfaces.ErrVariablesDash,
	})
	testCases = append(testCases, test{
		name: "syntax error",
		code: `1 +`,
		fail: true,
		kind: interfaces.ErrStringTemplatesFragment,
	})

	names := []string{}
	for index, tc := range testCases { // run all the tests
		if util.StrInList(tc.name, names) {
			t.Errorf("test #%d: duplicate sub test name of: %s", index, tc.name)
			continue
		}
		names = append(names, tc.name)

		t.Run(fmt.Sprintf("test #%d (%s)", index, tc.name), func(t *testing.T) {
			parser := &Parser{
				Debug: testing.Verbose(),
				Logf: func(format string, v ...interface{}) {
					t.Logf(fmt.Sprintf("test #%d: ", index)+format, v...)
				},
			}
			node, err := parser.ParseFragment(tc.code, interfaces.MustParseCoordinate("4"), 10)
			if !tc.fail && err != nil {
				t.Errorf("test #%d: FAIL", index)
				t.Errorf("test #%d: parse failed with: %+v", index, err)
				return
			}
			if tc.fail {
				if !interfaces.IsKind(err, tc.kind) {
					t.Errorf("test #%d: FAIL", index)
					t.Errorf("test #%d: expected %s, got: %+v", index, tc.kind.Code(), err)
				}
				return
			}
			if column := 10 + len(tc.code) - len(strings.TrimLeft(tc.code, " ")); node.Column != column || node.Line != "4" {
				t.Errorf("test #%d: unexpected position: %s:%d", index, node.Line, node.Column)
			}

			expr, err := ast.BuildExpr(node, &interfaces.Data{})
			if err != nil {
				t.Errorf("test #%d: FAIL", index)
				t.Errorf("test #%d: build failed with: %+v", index, err)
				return
			}
			if s := expr.String(); s != tc.exp {
				t.Errorf("test #%d: FAIL", index)
				t.Errorf("test #%d: expected: %s, got: %s", index, tc.exp, s)
			}
		})
	}
}
