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
	"regexp"
	"strings"

	"github.com/purpleidea/storyc/lang/interfaces"
	"github.com/purpleidea/storyc/lang/tree"

	hilast "github.com/hashicorp/hil/ast"
)

var (
	commandName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)*$`)
	commandWord = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

// keywords can't be the command of a segment, they are operators.
var keywords = []string{"and", "or", "not", "in"}

// field is a whitespace separated part of a segment, and its offset in it.
type field struct {
	value  string
	offset int
}

// fields splits a segment on whitespace. Quoted strings and brackets are kept
// in one piece.
func fields(code string) []field {
	out := []field{}
	start, depth := -1, 0
	quoted, escaped := false, false
	for i, c := range code {
		switch {
		case escaped:
			escaped = false
		case quoted && c == '\\':
			escaped = true
		case c == '"':
			quoted = !quoted
		case quoted:
		case c == '(' || c == '[':
			depth++
		case (c == ')' || c == ']') && depth > 0:
			depth--
		case depth == 0 && (c == ' ' || c == '\t'):
			if start >= 0 {
				out = append(out, field{value: code[start:i], offset: start})
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		out = append(out, field{value: code[start:], offset: start})
	}
	return out
}

// command parses a segment of the form `name command key:value...`, which runs
// a service, or a mutation if the name turns out to be a variable. It returns
// nil if the segment has another form.
func (obj *Parser) command(code string, line interfaces.Coordinate, column int) (*tree.Node, error) {
	parts := fields(code)
	if len(parts) < 2 {
		return nil, nil
	}
	name, cmd := parts[0], parts[1]
	if !commandName.MatchString(name.value) || !commandWord.MatchString(cmd.value) {
		return nil, nil
	}
	for _, x := range keywords {
		if cmd.value == x {
			return nil, nil
		}
	}
	args := []tree.Element{}
	for _, x := range parts[2:] {
		i := strings.Index(x.value, ":")
		if i < 1 || i == len(x.value)-1 || !commandWord.MatchString(x.value[:i]) {
			return nil, nil // eg: `a + b`
		}
		key := x.value[:i]
		col := column + x.offset
		value, err := obj.ParseFragment(x.value[i+1:], line, col+i+1)
		if err != nil {
			return nil, err
		}
		tok := tree.NewToken(tree.TokenName, key, line.String(), col, col+len(key))
		args = append(args, tree.NewNode(tree.KindArgument, line.String(), col, col+len(x.value), tok, value))
	}

	t := &transformer{
		line: line.String(),
		code: code,
	}
	path, err := t.path(name.value, hilast.Pos{Column: column + name.offset})
	if err != nil {
		return nil, err
	}
	path.End = column + name.offset + len(name.value)
	col := column + cmd.offset
	children := []tree.Element{
		path,
		tree.NewToken(tree.TokenName, cmd.value, line.String(), col, col+len(cmd.value)),
	}
	if len(args) > 0 {
		children = append(children, tree.NewNode(tree.KindArguments, line.String(), column+parts[2].offset, column+len(code), args...))
	}
	if obj.Debug {
		obj.Logf("fragment `%s` runs `%s`", code, cmd.value)
	}
	return tree.NewNode(tree.KindService, line.String(), column, column+len(code), children...), nil
}
