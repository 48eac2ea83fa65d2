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

package scope

import (
	"fmt"
	"testing"

	"github.com/purpleidea/storyc/lang/interfaces"
	"github.com/purpleidea/storyc/lang/types"
	"github.com/purpleidea/storyc/util"
)

func TestScopeChain(t *testing.T) {
	root := NewRoot()
	if sym := root.Resolve(interfaces.AppName); sym == nil || sym.Storage != ReadOnly || sym.Type.Cmp(types.TypeObject) != nil {
		t.Errorf("root scope is missing the app object: %s", root)
	}
	root.Insert(NewSymbol("a", types.TypeInt, Rebindable))

	child := root.Child()
	child.Insert(NewSymbol("b", types.TypeString, Rebindable))
	child.Insert(NewSymbol("a", types.TypeString, Rebindable)) // shadow

	if sym := child.Resolve("a"); sym == nil || sym.Type.Cmp(types.TypeString) != nil {
		t.Errorf("child did not shadow a: %s", child)
	}
	if sym := root.Resolve("b"); sym != nil {
		t.Errorf("child symbol leaked into the parent: %s", root)
	}
	if child.Local("app") != nil || child.Resolve("app") == nil {
		t.Errorf("app must only be found through the chain")
	}
	if child.IsRoot() || !root.IsRoot() || child.Parent() != root {
		t.Errorf("unexpected chain")
	}
	if s := child.String(); s != "{a:string, b:string} -> {a:int, app:object}" {
		t.Errorf("unexpected string: %s", s)
	}

	if sym := NewSymbol(interfaces.InternalName(interfaces.Line(3).Before(1)), types.TypeInt, Rebindable); !sym.Internal {
		t.Errorf("synthesized symbols must be internal")
	}
}

func TestStorageClass(t *testing.T) {
	if ReadOnly.CanWrite() || ReadOnly.CanRebind() {
		t.Errorf("readonly is too permissive")
	}
	if !Writable.CanWrite() || Writable.CanRebind() {
		t.Errorf("unexpected writable permissions")
	}
	if !Rebindable.CanWrite() || !Rebindable.CanRebind() {
		t.Errorf("rebindable is too strict")
	}
}

type joinTestNode struct {
	interfaces.Textarea
}

func (obj *joinTestNode) String() string { return "if" }

func (obj *joinTestNode) Apply(fn func(interfaces.Node) error) error { return fn(obj) }

func TestJoin0(t *testing.T) {
	type branch map[string]*types.Type
	type test struct { // an individual test
		name       string
		branches   []branch
		exhaustive bool
		fail       bool
		exp        []string
	}
	testCases := []test{}

	testCases = append(testCases, test{
		name: "same in both",
		branches: []branch{
			{"x": types.TypeInt},
			{"x": types.TypeInt},
		},
		exhaustive: true,
		exp:        []string{"x:int"},
	})
	testCases = append(testCases, test{
		name: "no else",
		branches: []branch{
			{"x": types.TypeInt},
		},
		exhaustive: false,
		exp:        []string{},
	})
	testCases = append(testCases, test{
		name: "partial",
		branches: []branch{
			{"x": types.TypeInt, "y": types.TypeString},
			{"x": types.TypeInt},
			{"x": types.TypeInt, "z": types.TypeBoolean},
		},
		exhaustive: true,
		exp:        []string{"x:int"},
	})
	testCases = append(testCases, test{
		name: "conflict",
		branches: []branch{
			{"x": types.TypeInt},
			{"x": types.TypeFloat},
		},
		exhaustive: true,
		fail:       true,
	})
	testCases = append(testCases, test{
		name: "conflict without else",
		branches: []branch{
			{"x": types.TypeInt},
			{},
			{"x": types.TypeString},
		},
		exhaustive: false,
		fail:       true,
	})
	testCases = append(testCases, test{
		name: "containers",
		branches: []branch{
			{"l": types.List(types.TypeInt), "m": types.Map(types.TypeString, types.TypeAny)},
			{"l": types.List(types.TypeInt), "m": types.Map(types.TypeString, types.TypeAny)},
		},
		exhaustive: true,
		exp:        []string{"l:List[int]", "m:Map[string,any]"},
	})

	names := []string{}
	for index, tc := range testCases { // run all the tests
		if util.StrInList(tc.name, names) {
			t.Errorf("test #%d: duplicate sub test name of: %s", index, tc.name)
			continue
		}
		names = append(names, tc.name)

		t.Run(fmt.Sprintf("test #%d (%s)", index, tc.name), func(t *testing.T) {
			parent := NewRoot()
			joiner := NewJoiner(parent)
			for _, b := range tc.branches {
				s := joiner.Branch()
				for _, name := range util.SortedMapKeys(b) {
					s.Insert(NewSymbol(name, b[name], Rebindable))
				}
			}

			joined, err := joiner.Join(&joinTestNode{}, tc.exhaustive)
			if !tc.fail && err != nil {
				t.Errorf("test #%d: FAIL", index)
				t.Errorf("test #%d: join failed with: %+v", index, err)
				return
			}
			if tc.fail {
				if !interfaces.IsKind(err, interfaces.ErrScopeJoinIncompatible) {
					t.Errorf("test #%d: FAIL", index)
					t.Errorf("test #%d: expected a join error, got: %+v", index, err)
				}
				return
			}

			out := []string{}
			for _, sym := range joined {
				out = append(out, sym.String())
				if parent.Local(sym.Name) == nil {
					t.Errorf("test #%d: %s was not inserted into the parent", index, sym.Name)
				}
			}
			if fmt.Sprint(out) != fmt.Sprint(tc.exp) {
				t.Errorf("test #%d: FAIL", index)
				t.Errorf("test #%d: expected: %v, got: %v", index, tc.exp, out)
			}
		})
	}
}

// TestJoinConservative checks every combination of branch scopes over a small
// universe: a name is joined iff every branch has it with the same type.
func TestJoinConservative(t *testing.T) {
	universe := []*types.Type{nil, types.TypeInt, types.TypeString} // nil is absent
	names := []string{"a", "b"}

	// each branch is an assignment of a universe index to each name
	branches := [][]int{}
	for i := 0; i < len(universe); i++ {
		for j := 0; j < len(universe); j++ {
			branches = append(branches, []int{i, j})
		}
	}

	check := func(set [][]int) {
		parent := NewRoot()
		joiner := NewJoiner(parent)
		for _, b := range set {
			s := joiner.Branch()
			for i, name := range names {
				if typ := universe[b[i]]; typ != nil {
					s.Insert(NewSymbol(name, typ, Rebindable))
				}
			}
		}
		joined, err := joiner.Join(&joinTestNode{}, true)

		conflict := false
		expected := []string{}
		for i, name := range names {
			first := -1
			all := true
			for _, b := range set {
				if b[i] == 0 {
					all = false
					continue
				}
				if first >= 0 && first != b[i] {
					conflict = true
				}
				first = b[i]
			}
			if all && first > 0 {
				expected = append(expected, name)
			}
		}

		if conflict {
			if err == nil {
				t.Errorf("set %v: expected a conflict", set)
			}
			return
		}
		if err != nil {
			t.Errorf("set %v: unexpected error: %+v", set, err)
			return
		}
		got := []string{}
		for _, sym := range joined {
			got = append(got, sym.Name)
		}
		if fmt.Sprint(got) != fmt.Sprint(expected) {
			t.Errorf("set %v: expected %v, got %v", set, expected, got)
		}
	}

	for _, x := range branches {
		for _, y := range branches {
			check([][]int{x, y})
			for _, z := range branches {
				check([][]int{x, y, z})
			}
		}
	}
}
