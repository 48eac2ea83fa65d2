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

// Package util contains a collection of miscellaneous utility functions.
package util

import (
	"fmt"
	"sort"
	"strings"
)

// Error is a constant error type that implements error.
type Error string

// Error fulfills the error interface of this type.
func (e Error) Error() string { return string(e) }

// StrInList returns true if a string exists inside a list, otherwise false.
func StrInList(needle string, haystack []string) bool {
	for _, x := range haystack {
		if needle == x {
			return true
		}
	}
	return false
}

// StrRemoveDuplicatesInList removes any duplicate values in the list. This
// preserves the order of the first occurrence of each value.
func StrRemoveDuplicatesInList(list []string) []string {
	seen := make(map[string]struct{}, len(list))
	unique := []string{}
	for _, x := range list {
		if _, exists := seen[x]; exists {
			continue
		}
		seen[x] = struct{}{}
		unique = append(unique, x)
	}
	return unique
}

// SortedMapKeys returns the sorted list of keys of a map with string keys.
func SortedMapKeys[V any](m map[string]V) []string {
	result := make([]string, 0, len(m))
	for k := range m {
		result = append(result, k)
	}
	sort.Strings(result) // deterministic order
	return result
}

// SortedStrSliceCompare takes two lists of strings and returns whether or not
// they are equivalent. It will return nil if both sets contain the same
// elements, regardless of order, and an error if they do not.
func SortedStrSliceCompare(a, b []string) error {
	if len(a) != len(b) {
		return fmt.Errorf("slices have different lengths: %d vs %d", len(a), len(b))
	}

	// sort copies, so we don't reorder the inputs
	x := append([]string{}, a...)
	y := append([]string{}, b...)
	sort.Strings(x)
	sort.Strings(y)
	for i := range x {
		if x[i] != y[i] {
			return fmt.Errorf("values do not match: %s vs %s", x[i], y[i])
		}
	}
	return nil
}

// Indent prefixes every non-empty line of the input with the given number of
// indentation steps, each of which is two spaces wide.
func Indent(s string, depth int) string {
	if depth <= 0 {
		return s
	}
	pad := strings.Repeat("  ", depth)
	lines := strings.Split(s, "\n")
	for i, x := range lines {
		if x == "" {
			continue
		}
		lines[i] = pad + x
	}
	return strings.Join(lines, "\n")
}

// Code takes a code block as a backtick enclosed `heredoc` and removes any
// common leading tab indentation from each line. The very first line is dropped
// if it has zero length. This lets tests embed source and signature listings
// inline without unnecessary indentation.
func Code(code string) string {
	lines := strings.Split(code, "\n")
	if len(lines) > 0 && lines[0] == "" {
		lines = lines[1:]
	}

	strip := ""
	for _, x := range lines {
		if x == "" {
			continue
		}
		strip = x[:len(x)-len(strings.TrimLeft(x, "\t"))]
		break // the first non-empty line decides
	}

	output := make([]string, 0, len(lines))
	for _, x := range lines {
		output = append(output, strings.TrimPrefix(x, strip))
	}
	return strings.Join(output, "\n")
}
