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

package interfaces

import (
	"fmt"
	"math/rand"
	"testing"
)

func TestCoordinateString(t *testing.T) {
	type test struct {
		name string
		s    string
		fail bool
	}
	testCases := []test{
		{"line", "3", false},
		{"after", "3.1", false},
		{"before", "3.0.2", false},
		{"deep", "12.0.1.0.4", false},
		{"empty", "", true},
		{"letters", "3.a", true},
		{"negative", "3.-1", true},
		{"trailing dot", "3.", true},
	}

	for index, tc := range testCases { // run all the tests
		name, s, fail := tc.name, tc.s, tc.fail
		t.Run(fmt.Sprintf("test #%d (%s)", index, name), func(t *testing.T) {
			c, err := ParseCoordinate(s)
			if !fail && err != nil {
				t.Errorf("test #%d: FAIL", index)
				t.Errorf("test #%d: parse failed with: %+v", index, err)
				return
			}
			if fail {
				if err == nil {
					t.Errorf("test #%d: FAIL", index)
					t.Errorf("test #%d: parse passed, expected fail: %s", index, c)
				}
				return
			}
			if out := c.String(); out != s {
				t.Errorf("test #%d: FAIL", index)
				t.Errorf("test #%d: round trip gave: %s", index, out)
			}
		})
	}
}

func TestCoordinateOrder(t *testing.T) {
	c := Line(5)
	if !c.Before(1).Less(c) {
		t.Errorf("before is not less than its base")
	}
	if !c.Before(1).Less(c.Before(2)) {
		t.Errorf("before is not increasing in k")
	}
	if !Line(4).Less(c.Before(1)) {
		t.Errorf("previous line is not less than before")
	}
	if !c.Less(c.After(1)) {
		t.Errorf("after is not greater than its base")
	}
	if !c.After(1).Less(Line(6)) {
		t.Errorf("after is not less than the next line")
	}
	if !c.After(1).Less(c.After(2)) {
		t.Errorf("after is not increasing in k")
	}
	if !c.Before(9).Less(c) {
		t.Errorf("large before is not less than its base")
	}
	// nested synthesis stays between its neighbours
	b := c.Before(1)
	if !(Line(4).Less(b.Before(1)) && b.Before(1).Less(b)) {
		t.Errorf("nested before escaped its range")
	}
	a := c.After(1)
	if !(c.Less(a.Before(1)) && a.Before(1).Less(a)) {
		t.Errorf("before of after escaped its range")
	}
	if !c.Equal(MustParseCoordinate("5")) {
		t.Errorf("equal coordinates compare different")
	}
	if c.IsSynthetic() || !b.IsSynthetic() {
		t.Errorf("wrong synthetic flag")
	}
}

func TestCoordinateSort(t *testing.T) {
	expected := []string{
		"1",
		"2.0.1",
		"2.0.2",
		"2",
		"2.1.0.1",
		"2.1",
		"2.1.1",
		"2.2",
		"3.0.1.0.1",
		"3.0.1",
		"3",
		"10",
	}
	list := []Coordinate{}
	for _, s := range expected {
		list = append(list, MustParseCoordinate(s))
	}
	r := rand.New(rand.NewSource(42))
	r.Shuffle(len(list), func(i, j int) { list[i], list[j] = list[j], list[i] })

	SortCoordinates(list)
	for i, c := range list {
		if c.String() != expected[i] {
			t.Errorf("index %d: expected %s, got %s", i, expected[i], c)
		}
	}
	// antisymmetry over every pair
	for i := range list {
		for j := range list {
			if list[i].Cmp(list[j]) != -list[j].Cmp(list[i]) {
				t.Errorf("cmp is not antisymmetric for %s and %s", list[i], list[j])
			}
		}
	}
}
