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
	"sort"
	"strconv"
	"strings"
)

// Coordinate identifies a line of the program. Original source lines are a
// single positive component, while lines synthesized by the compiler extend the
// coordinate of the statement they were created for with extra components. The
// resulting Dewey style paths are totally ordered so that synthesized lines can
// be slotted in between two existing ones without renumbering anything.
type Coordinate []int

// Line returns the coordinate of an original source line. Lines are one based.
func Line(n int) Coordinate {
	return Coordinate{n}
}

// ParseCoordinate parses the dotted string form of a coordinate, eg: `3.0.2`.
func ParseCoordinate(s string) (Coordinate, error) {
	if s == "" {
		return nil, fmt.Errorf("empty coordinate")
	}
	split := strings.Split(s, ".")
	c := make(Coordinate, 0, len(split))
	for _, x := range split {
		i, err := strconv.Atoi(x)
		if err != nil {
			return nil, fmt.Errorf("invalid coordinate component `%s` in `%s`", x, s)
		}
		if i < 0 {
			return nil, fmt.Errorf("negative coordinate component in `%s`", s)
		}
		c = append(c, i)
	}
	return c, nil
}

// MustParseCoordinate is ParseCoordinate, except it panics on error. It is
// useful for tests and static tables.
func MustParseCoordinate(s string) Coordinate {
	c, err := ParseCoordinate(s)
	if err != nil {
		panic(err)
	}
	return c
}

// String returns the dotted representation which is also used as the IR key.
func (obj Coordinate) String() string {
	if len(obj) == 0 {
		return ""
	}
	s := make([]string, 0, len(obj))
	for _, x := range obj {
		s = append(s, strconv.Itoa(x))
	}
	return strings.Join(s, ".")
}

// IsZero returns true if this coordinate was never set.
func (obj Coordinate) IsZero() bool {
	return len(obj) == 0
}

// IsSynthetic returns true if this coordinate was created by the compiler.
func (obj Coordinate) IsSynthetic() bool {
	return len(obj) > 1
}

// Copy returns a copy which does not share storage with the original.
func (obj Coordinate) Copy() Coordinate {
	if obj == nil {
		return nil
	}
	return append(Coordinate{}, obj...)
}

// Before returns the k-th coordinate (k >= 1) that sorts strictly below this
// one. Successive values of k increase but all stay below the receiver, so a
// series of hoisted statements keeps its production order.
func (obj Coordinate) Before(k int) Coordinate {
	c := make(Coordinate, 0, len(obj)+2)
	c = append(c, obj...)
	return append(c, 0, k)
}

// After returns the k-th coordinate (k >= 1) that sorts strictly above this one
// and strictly below anything else that sorts above it.
func (obj Coordinate) After(k int) Coordinate {
	c := make(Coordinate, 0, len(obj)+1)
	c = append(c, obj...)
	return append(c, k)
}

// Cmp compares two coordinates. It returns -1 if obj sorts first, 1 if other
// sorts first and 0 if they are equal. When one is a prefix of the other, the
// extension sorts before the prefix if its next component is zero, and after
// it otherwise.
func (obj Coordinate) Cmp(other Coordinate) int {
	n := len(obj)
	if len(other) < n {
		n = len(other)
	}
	for i := 0; i < n; i++ {
		if obj[i] < other[i] {
			return -1
		}
		if obj[i] > other[i] {
			return 1
		}
	}
	switch {
	case len(obj) == len(other):
		return 0

	case len(obj) > len(other): // obj extends other
		if obj[n] == 0 {
			return -1
		}
		return 1

	default: // other extends obj
		if other[n] == 0 {
			return 1
		}
		return -1
	}
}

// Less returns true if obj sorts strictly before other.
func (obj Coordinate) Less(other Coordinate) bool {
	return obj.Cmp(other) < 0
}

// Equal returns true if both coordinates are identical.
func (obj Coordinate) Equal(other Coordinate) bool {
	return obj.Cmp(other) == 0
}

// SortCoordinates sorts a list of coordinates in place into program order.
func SortCoordinates(list []Coordinate) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Less(list[j])
	})
}
