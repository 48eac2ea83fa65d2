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

package util

import (
	"reflect"
	"testing"
)

func TestStrRemoveDuplicatesInList(t *testing.T) {
	var tests = []struct {
		in  []string
		out []string
	}{
		{[]string{}, []string{}},
		{[]string{"a", "b", "c"}, []string{"a", "b", "c"}},
		{[]string{"a", "b", "a", "c", "b"}, []string{"a", "b", "c"}},
		{[]string{"x", "x", "x"}, []string{"x"}},
	}
	for i, test := range tests {
		if actual := StrRemoveDuplicatesInList(test.in); !reflect.DeepEqual(actual, test.out) {
			t.Errorf("test #%d: expected %v, actual %v", i, test.out, actual)
		}
	}
}

func TestSortedMapKeys(t *testing.T) {
	m := map[string]int{"zed": 1, "alpha": 2, "mid": 3}
	if actual := SortedMapKeys(m); !reflect.DeepEqual(actual, []string{"alpha", "mid", "zed"}) {
		t.Errorf("unexpected keys: %v", actual)
	}
	if actual := SortedMapKeys(map[string]bool{}); len(actual) != 0 {
		t.Errorf("expected no keys, got: %v", actual)
	}
}

func TestSortedStrSliceCompare(t *testing.T) {
	if err := SortedStrSliceCompare([]string{"b", "a"}, []string{"a", "b"}); err != nil {
		t.Errorf("expected a match: %+v", err)
	}
	if err := SortedStrSliceCompare([]string{"a"}, []string{"a", "b"}); err == nil {
		t.Errorf("expected a length error")
	}
	if err := SortedStrSliceCompare([]string{"a", "c"}, []string{"a", "b"}); err == nil {
		t.Errorf("expected a value error")
	}
	a := []string{"z", "y"}
	_ = SortedStrSliceCompare(a, []string{"y", "z"})
	if a[0] != "z" {
		t.Errorf("input was reordered")
	}
}

func TestIndent(t *testing.T) {
	if s := Indent("a\n\nb", 2); s != "    a\n\n    b" {
		t.Errorf("unexpected indent: %q", s)
	}
	if s := Indent("a", 0); s != "a" {
		t.Errorf("unexpected indent: %q", s)
	}
}

func TestCode(t *testing.T) {
	code := Code(`
	if a
		b = 1
	c = 2`)
	if code != "if a\n\tb = 1\nc = 2" {
		t.Errorf("unexpected code: %q", code)
	}
}

func TestError(t *testing.T) {
	const errFoo = Error("foo happened")
	var err error = errFoo
	if err.Error() != "foo happened" {
		t.Errorf("unexpected message: %s", err.Error())
	}
}
