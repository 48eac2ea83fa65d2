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

package tree

import (
	"fmt"
	"testing"

	"github.com/purpleidea/storyc/util"

	"github.com/kylelemons/godebug/pretty"
)

func TestKindTags(t *testing.T) {
	expected := map[Kind]string{
		KindStart:             "start",
		KindIfBlock:           "if_block",
		KindElseifBlock:       "elseif_block",
		KindReturnStatement:   "return_statement",
		KindInlineExpression:  "inline_expression",
		KindRegularExpression: "regular_expression",
		KindPathFragment:      "path_fragment",
	}
	for kind, tag := range expected {
		if s := kind.String(); s != tag {
			t.Errorf("kind %d: expected tag %s, got %s", int(kind), tag, s)
		}
	}
	for _, kind := range Kinds() {
		k, err := ParseKind(kind.String())
		if err != nil || k != kind {
			t.Errorf("kind %s does not round trip", kind)
		}
	}
	if _, err := ParseKind("invalid"); err == nil {
		t.Errorf("the invalid kind must not parse")
	}
}

func TestDecode0(t *testing.T) {
	type test struct { // an individual test
		name   string
		data   string
		format Format
		fail   bool
		tree   *Node
	}
	testCases := []test{}

	// a = 1
	expected := NewNode(KindStart, "1", 0, 5,
		NewNode(KindBlock, "1", 0, 5,
			NewNode(KindAssignment, "1", 0, 5,
				NewNode(KindPath, "1", 0, 1,
					NewToken(TokenName, "a", "1", 0, 1),
				),
				NewToken(TokenEquals, "=", "1", 2, 3),
				NewNode(KindNumber, "1", 4, 5,
					NewToken(TokenInt, "1", "1", 4, 5),
				),
			),
		),
	)

	testCases = append(testCases, test{
		name: "json",
		data: `{"kind": "start", "line": "1", "column": 0, "end": 5, "children": [
			{"kind": "block", "line": "1", "column": 0, "end": 5, "children": [
				{"kind": "assignment", "line": "1", "column": 0, "end": 5, "children": [
					{"kind": "path", "line": "1", "column": 0, "end": 1, "children": [
						{"token": "NAME", "value": "a", "line": "1", "column": 0, "end": 1}
					]},
					{"token": "EQUALS", "value": "=", "line": 1, "column": 2, "end": 3},
					{"kind": "number", "column": 4, "end": 5, "children": [
						{"token": "INT", "value": "1", "column": 4, "end": 5}
					]}
				]}
			]}
		]}`,
		format: FormatJSON,
		tree:   expected,
	})
	testCases = append(testCases, test{
		name: "yaml",
		data: util.Code(`
		kind: start
		line: 1
		column: 0
		end: 5
		children:
		- kind: block
		  line: 1
		  end: 5
		  children:
		  - kind: assignment
		    end: 5
		    children:
		    - kind: path
		      end: 1
		      children:
		      - {token: NAME, value: a, end: 1}
		    - {token: EQUALS, value: "=", column: 2, end: 3}
		    - kind: number
		      column: 4
		      end: 5
		      children:
		      - {token: INT, value: "1", column: 4, end: 5}
		`),
		format: FormatYAML,
		tree:   expected,
	})
	testCases = append(testCases, test{
		name:   "unknown kind",
		data:   `{"kind": "nope", "line": "1"}`,
		format: FormatJSON,
		fail:   true,
	})
	testCases = append(testCases, test{
		name:   "missing line",
		data:   `{"kind": "start"}`,
		format: FormatJSON,
		fail:   true,
	})
	testCases = append(testCases, test{
		name:   "token root",
		data:   `{"token": "NAME", "value": "a", "line": "1"}`,
		format: FormatJSON,
		fail:   true,
	})
	testCases = append(testCases, test{
		name:   "token with children",
		data:   `{"kind": "start", "line": "1", "children": [{"token": "NAME", "line": "1", "children": [{"token": "NAME"}]}]}`,
		format: FormatJSON,
		fail:   true,
	})
	testCases = append(testCases, test{
		name:   "bad line",
		data:   `{"kind": "start", "line": "x.1"}`,
		format: FormatJSON,
		fail:   true,
	})

	names := []string{}
	for index, tc := range testCases { // run all the tests
		if util.StrInList(tc.name, names) {
			t.Errorf("test #%d: duplicate sub test name of: %s", index, tc.name)
			continue
		}
		names = append(names, tc.name)

		t.Run(fmt.Sprintf("test #%d (%s)", index, tc.name), func(t *testing.T) {
			data, format, fail, exp := tc.data, tc.format, tc.fail, tc.tree

			node, err := Decode([]byte(data), format)
			if !fail && err != nil {
				t.Errorf("test #%d: FAIL", index)
				t.Errorf("test #%d: decode failed with: %+v", index, err)
				return
			}
			if fail {
				if err == nil {
					t.Errorf("test #%d: FAIL", index)
					t.Errorf("test #%d: decode passed, expected fail", index)
				}
				return
			}

			if diff := pretty.Compare(exp, node); diff != "" { // bad
				t.Errorf("test #%d: FAIL", index)
				t.Errorf("test #%d: tree did not match expected", index)
				t.Logf("test #%d: diff:\n%s", index, diff)
			}
		})
	}
}

func TestNodeHelpers(t *testing.T) {
	node := NewNode(KindIfBlock, "1", 0, 10,
		NewNode(KindBoolean, "1", 3, 7, NewToken(TokenBool, "true", "1", 3, 7)),
		NewNode(KindBlock, "2", 2, 10),
		NewNode(KindElseBlock, "3", 0, 4, NewNode(KindBlock, "4", 2, 10)),
	)
	if n := node.Child(KindBlock); n == nil || n.Line != "2" {
		t.Errorf("unexpected block child: %v", n)
	}
	if n := node.Child(KindBoolean).Token(TokenBool); n == nil || n.Value != "true" {
		t.Errorf("unexpected bool token: %v", n)
	}
	if l := len(node.ChildrenOf(KindElseifBlock)); l != 0 {
		t.Errorf("unexpected elseif blocks: %d", l)
	}
	count := 0
	if err := node.Walk(func(*Node) error { count++; return nil }); err != nil {
		t.Errorf("walk failed: %+v", err)
	}
	if count != 5 {
		t.Errorf("expected to walk 5 nodes, got %d", count)
	}
	if f, err := FormatOf("main.story.yml"); err != nil || f != FormatYAML {
		t.Errorf("unexpected format: %s", f)
	}
	if _, err := FormatOf("main.story"); err == nil {
		t.Errorf("expected an unknown format")
	}
}
