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

package types

import (
	"fmt"
	"testing"

	"github.com/purpleidea/storyc/util"
)

func TestType0(t *testing.T) {
	str := "Map[string,List[Map[int,A]]]"
	val := &Type{
		Kind: KindMap,
		Key: &Type{
			Kind: KindString,
		},
		Val: &Type{
			Kind: KindList,
			Val: &Type{
				Kind: KindMap,
				Key: &Type{
					Kind: KindInt,
				},
				Val: &Type{
					Kind: KindVar,
					Name: "A",
				},
			},
		},
	}
	kind := NewType(str)
	if err := kind.Cmp(val); err != nil {
		t.Errorf("kind output of `%v` did not match expected: `%v`", str, err)
	}
}

func TestType1(t *testing.T) {
	testCases := map[string]*Type{
		"":                 nil, // error
		"nope":             nil, // error
		"List[]":           nil, // error
		"Map[int]":         nil, // error
		"Map[,int]":        nil, // error
		"Map[int,int,int]": nil, // error
		"AB":               nil, // error
		"List[int":         nil, // error

		// basic types
		"boolean": {Kind: KindBoolean},
		"int":     {Kind: KindInt},
		"float":   {Kind: KindFloat},
		"string":  {Kind: KindString},
		"time":    {Kind: KindTime},
		"regexp":  {Kind: KindRegExp},
		"range":   {Kind: KindRange},
		"object":  {Kind: KindObject},
		"none":    {Kind: KindNone},
		"any":     {Kind: KindAny},
		"A":       {Kind: KindVar, Name: "A"},

		// lists
		"List[string]": {
			Kind: KindList,
			Val: &Type{
				Kind: KindString,
			},
		},
		"List[List[int]]": {
			Kind: KindList,
			Val: &Type{
				Kind: KindList,
				Val: &Type{
					Kind: KindInt,
				},
			},
		},

		// maps
		"Map[string,int]": {
			Kind: KindMap,
			Key: &Type{
				Kind: KindString,
			},
			Val: &Type{
				Kind: KindInt,
			},
		},
		"Map[K,List[V]]": {
			Kind: KindMap,
			Key: &Type{
				Kind: KindVar,
				Name: "K",
			},
			Val: &Type{
				Kind: KindList,
				Val: &Type{
					Kind: KindVar,
					Name: "V",
				},
			},
		},
	}

	for str, val := range testCases { // run all the tests
		// for debugging
		//if str != "Map[K,List[V]]" {
		//continue
		//}

		// check the type
		typ := NewType(str)
		//t.Logf("str: %+v", str)
		//t.Logf("typ: %+v", typ)
		//if !reflect.DeepEqual(kind, val) {
		//	t.Errorf("kind output of `%v` did not match expected: `%v`", str, val)
		//}

		if val == nil { // catch error cases
			if typ != nil {
				t.Errorf("invalid type: `%s` did not match expected nil", str)
			}
			continue
		}
		if typ == nil {
			t.Errorf("type of `%s` did not parse", str)
			continue
		}
		if err := typ.Cmp(val); err != nil {
			t.Errorf("type: `%s` did not match expected: `%v`", str, err)
			continue
		}
		// check the string round trip
		if s := typ.String(); s != str {
			t.Errorf("type: `%s` printed as `%s`", str, s)
		}
	}
}

func TestTypeCmp0(t *testing.T) {
	if err := NewType("Map[string,int]").Cmp(NewType("Map[string,float]")); err == nil {
		t.Errorf("expected the map types to differ")
	}
	if err := NewType("List[A]").Cmp(NewType("List[B]")); err == nil {
		t.Errorf("expected the type variables to differ")
	}
	if err := NewType("Map[A,B]").Cmp(NewType("Map[A,B]").Copy()); err != nil {
		t.Errorf("expected the copy to match: %+v", err)
	}
	if err := TypeInt.Cmp(nil); err == nil {
		t.Errorf("expected an error comparing to nil")
	}
}

// allTypes returns a representative sample of the lattice.
func allTypes() []*Type {
	list := []*Type{}
	for _, s := range []string{
		"boolean",
		"int",
		"float",
		"string",
		"time",
		"regexp",
		"range",
		"object",
		"none",
		"any",
		"List[int]",
		"List[float]",
		"List[string]",
		"List[any]",
		"Map[string,int]",
		"Map[string,float]",
		"Map[int,string]",
		"Map[string,any]",
	} {
		typ := NewType(s)
		if typ == nil {
			panic("bad test type: " + s)
		}
		list = append(list, typ)
	}
	return list
}

func TestBinaryOpSound(t *testing.T) {
	for _, a := range allTypes() {
		for _, b := range allTypes() {
			for _, op := range Ops() {
				if op.IsUnary() {
					continue
				}
				c := a.BinaryOp(b, op)
				if c == nil {
					continue
				}
				if a.IsNone() || b.IsNone() {
					t.Errorf("%s %s %s: none allowed an operation", a, op, b)
					continue
				}
				allowed := []*Type{a, b, TypeAny}
				if w := Widen(a, b); w != nil {
					allowed = append(allowed, w)
				}
				if op == OpDiv {
					allowed = append(allowed, TypeFloat)
				}
				if op.IsBoolean() {
					allowed = append(allowed, TypeBoolean)
				}
				found := false
				for _, x := range allowed {
					if c.Equal(x) {
						found = true
						break
					}
				}
				if !found {
					t.Errorf("%s %s %s: invented the unrelated type %s", a, op, b, c)
				}
			}
		}
	}
}

func TestBinaryOp(t *testing.T) {
	type test struct { // an individual test
		name string
		a    string
		op   Op
		b    string
		fail bool
		c    string
	}
	testCases := []test{}

	testCases = append(testCases, test{"int sum", "int", OpAdd, "int", false, "int"})
	testCases = append(testCases, test{"widening sum", "int", OpAdd, "float", false, "float"})
	testCases = append(testCases, test{"string concat", "string", OpAdd, "int", false, "string"})
	testCases = append(testCases, test{"string concat reversed", "float", OpAdd, "string", false, "string"})
	testCases = append(testCases, test{"list concat", "List[int]", OpAdd, "List[int]", false, "List[int]"})
	testCases = append(testCases, test{"int division", "int", OpDiv, "int", false, "float"})
	testCases = append(testCases, test{"compare", "int", OpLt, "float", false, "float"})
	testCases = append(testCases, test{"equality", "boolean", OpEq, "boolean", false, "boolean"})
	testCases = append(testCases, test{"any absorbs", "any", OpMul, "regexp", false, "any"})
	testCases = append(testCases, test{"and", "boolean", OpAnd, "any", false, "any"})
	testCases = append(testCases, test{"none", "none", OpEq, "none", true, ""})
	testCases = append(testCases, test{"int and", "int", OpAnd, "boolean", true, ""})
	testCases = append(testCases, test{"regexp sum", "regexp", OpAdd, "regexp", true, ""})
	testCases = append(testCases, test{"list minus", "List[int]", OpSub, "List[int]", true, ""})
	testCases = append(testCases, test{"compare lists", "List[int]", OpLt, "List[int]", true, ""})
	testCases = append(testCases, test{"unrelated", "int", OpEq, "string", true, ""})
	testCases = append(testCases, test{"time sum", "time", OpAdd, "time", false, "time"})

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

		//if index != 3 { // hack to run a subset (useful for debugging)
		//if tc.name != "simple hello world" {
		//	continue
		//}

		t.Run(fmt.Sprintf("test #%d (%s)", index, tc.name), func(t *testing.T) {
			a, op, b, fail, expected := NewType(tc.a), tc.op, NewType(tc.b), tc.fail, tc.c

			c := a.BinaryOp(b, op)
			if fail {
				if c != nil {
					t.Errorf("test #%d: FAIL", index)
					t.Errorf("test #%d: expected no type, got: %s", index, c)
				}
				return
			}
			if c == nil {
				t.Errorf("test #%d: FAIL", index)
				t.Errorf("test #%d: expected %s, got no type", index, expected)
				return
			}
			if err := c.Cmp(NewType(expected)); err != nil {
				t.Errorf("test #%d: FAIL", index)
				t.Errorf("test #%d: expected %s, got %s", index, expected, c)
			}
		})
	}
}

func TestImplicitExplicit(t *testing.T) {
	implicit := []struct {
		from, to string
		ok       bool
	}{
		{"int", "float", true},
		{"float", "int", false},
		{"int", "any", true},
		{"any", "regexp", true},
		{"none", "any", false},
		{"any", "none", false},
		{"List[int]", "List[float]", true},
		{"List[float]", "List[int]", false},
		{"Map[string,int]", "Map[string,float]", true},
		{"Map[string,int]", "Map[int,int]", false},
		{"string", "boolean", false},
	}
	for _, x := range implicit {
		got := NewType(x.from).ImplicitTo(NewType(x.to)) != nil
		if got != x.ok {
			t.Errorf("implicit %s -> %s: expected %t", x.from, x.to, x.ok)
		}
	}

	explicit := []struct {
		to, from string
		ok       bool
	}{
		{"int", "float", true},
		{"int", "string", true},
		{"string", "List[int]", true},
		{"boolean", "Map[string,int]", true},
		{"regexp", "string", true},
		{"regexp", "int", false},
		{"time", "int", true},
		{"List[int]", "List[string]", true},
		{"object", "Map[string,any]", true},
		{"object", "Map[int,any]", false},
		{"range", "string", false},
		{"string", "none", false},
		{"none", "any", false},
	}
	for _, x := range explicit {
		got := NewType(x.to).ExplicitFrom(NewType(x.from)) != nil
		if got != x.ok {
			t.Errorf("explicit %s as %s: expected %t", x.from, x.to, x.ok)
		}
	}
}

func TestIndex(t *testing.T) {
	indexes := []struct {
		base string
		key  string
		kind IndexKind
		out  string // empty when it must fail
	}{
		{"List[string]", "int", IndexBracket, "string"},
		{"List[string]", "range", IndexBracket, "List[string]"},
		{"List[string]", "string", IndexBracket, ""},
		{"string", "int", IndexBracket, "string"},
		{"Map[string,int]", "string", IndexBracket, "int"},
		{"Map[string,int]", "int", IndexBracket, ""},
		{"Map[float,int]", "int", IndexBracket, "int"},
		{"object", "string", IndexDot, "any"},
		{"any", "string", IndexDot, "any"},
		{"any", "int", IndexBracket, "any"},
		{"List[int]", "string", IndexDot, ""},
		{"int", "int", IndexBracket, ""},
		{"none", "int", IndexBracket, ""},
	}
	for _, x := range indexes {
		out := NewType(x.base).Index(NewType(x.key), x.kind)
		if x.out == "" {
			if out != nil {
				t.Errorf("%s[%s]: expected no type, got %s", x.base, x.key, out)
			}
			continue
		}
		if out == nil || !out.Equal(NewType(x.out)) {
			t.Errorf("%s[%s]: expected %s, got %v", x.base, x.key, x.out, out)
		}
	}
}

func TestOutput(t *testing.T) {
	if out := NewType("Map[string,int]").Output(2); len(out) != 2 || !out[0].Equal(TypeString) || !out[1].Equal(TypeInt) {
		t.Errorf("unexpected map outputs: %v", out)
	}
	if out := NewType("List[float]").Output(2); len(out) != 2 || !out[0].Equal(TypeInt) || !out[1].Equal(TypeFloat) {
		t.Errorf("unexpected list outputs: %v", out)
	}
	if out := TypeInt.Output(1); out != nil {
		t.Errorf("int must not be iterable")
	}
	if out := NewType("List[int]").Output(3); out != nil {
		t.Errorf("three names must not be accepted")
	}
}

func TestCommon(t *testing.T) {
	if c := Common([]*Type{TypeInt, TypeFloat, TypeInt}); !c.Equal(TypeFloat) {
		t.Errorf("expected float, got %s", c)
	}
	if c := Common([]*Type{TypeInt, TypeString}); !c.Equal(TypeAny) {
		t.Errorf("expected any, got %s", c)
	}
	if c := Common(nil); !c.Equal(TypeAny) {
		t.Errorf("expected any, got %s", c)
	}
}

func TestUnify(t *testing.T) {
	bindings := map[string]*Type{}
	if err := NewType("Map[K,V]").Unify(NewType("Map[string,List[int]]"), bindings); err != nil {
		t.Errorf("unify failed: %+v", err)
		return
	}
	out, err := NewType("List[V]").Substitute(bindings)
	if err != nil {
		t.Errorf("substitute failed: %+v", err)
		return
	}
	if s := out.String(); s != "List[List[int]]" {
		t.Errorf("unexpected substitution: %s", s)
	}

	if err := NewType("List[A]").Unify(TypeString, map[string]*Type{}); err == nil {
		t.Errorf("expected a shape mismatch")
	}
	if err := NewType("Map[A,A]").Unify(NewType("Map[int,string]"), map[string]*Type{}); err == nil {
		t.Errorf("expected a binding conflict")
	}
	if _, err := NewType("B").Substitute(map[string]*Type{}); err == nil {
		t.Errorf("expected an unbound variable")
	}
	if vars := NewType("Map[K,Map[V,K]]").Vars(); len(vars) != 2 || vars[0] != "K" || vars[1] != "V" {
		t.Errorf("unexpected vars: %v", vars)
	}
}
