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

package funcs

import (
	"fmt"
	"strings"

	"github.com/purpleidea/storyc/lang/types"
	"github.com/purpleidea/storyc/util/errwrap"
)

const (
	// deprecatedPrefix starts a trailing comment that marks the signature
	// as deprecated. The rest of the comment is the advice shown to users.
	deprecatedPrefix = "deprecated:"

	arrow = "->"
)

// ParseSignature parses a mutation from the signature language:
//
//	<subject> <name> [<arg>:<type> ...] -> <output> [# deprecated: <advice>]
//
// Types may use single upper case letter type variables, which must all be
// bound by the subject.
func ParseSignature(line string) (*Mutation, error) {
	deprecated := ""
	if i := strings.Index(line, "#"); i >= 0 {
		comment := strings.TrimSpace(line[i+1:])
		line = line[:i]
		if strings.HasPrefix(comment, deprecatedPrefix) {
			deprecated = strings.TrimSpace(strings.TrimPrefix(comment, deprecatedPrefix))
			if deprecated == "" {
				deprecated = "no replacement"
			}
		}
	}

	fields := strings.Fields(line)
	if len(fields) < 4 {
		return nil, fmt.Errorf("signature `%s` is too short", line)
	}
	if fields[len(fields)-2] != arrow {
		return nil, fmt.Errorf("signature `%s` has no output", line)
	}

	subject := types.NewType(fields[0])
	if subject == nil {
		return nil, fmt.Errorf("invalid subject type `%s`", fields[0])
	}
	params := subject.Vars()
	bound := make(map[string]bool)
	for _, x := range params {
		bound[x] = true
	}
	free := func(typ *types.Type) error {
		for _, x := range typ.Vars() {
			if !bound[x] {
				return fmt.Errorf("type variable %s is not bound by `%s`", x, subject)
			}
		}
		return nil
	}

	name := fields[1]
	if !isName(name) {
		return nil, fmt.Errorf("invalid mutation name `%s`", name)
	}

	args := []*MutationArg{}
	seen := make(map[string]bool)
	for _, x := range fields[2 : len(fields)-2] {
		s := strings.SplitN(x, ":", 2)
		if len(s) != 2 || !isName(s[0]) {
			return nil, fmt.Errorf("invalid argument `%s`", x)
		}
		if seen[s[0]] {
			return nil, fmt.Errorf("duplicate argument `%s`", s[0])
		}
		seen[s[0]] = true
		typ := types.NewType(s[1])
		if typ == nil {
			return nil, fmt.Errorf("invalid type `%s` for argument `%s`", s[1], s[0])
		}
		if err := free(typ); err != nil {
			return nil, err
		}
		args = append(args, &MutationArg{Name: s[0], Type: typ})
	}

	output := types.NewType(fields[len(fields)-1])
	if output == nil {
		return nil, fmt.Errorf("invalid output type `%s`", fields[len(fields)-1])
	}
	if err := free(output); err != nil {
		return nil, err
	}

	return &Mutation{
		TypeParams: params,
		Subject:    subject,
		Name:       name,
		Args:       args,
		Output:     output,
		Deprecated: deprecated,
	}, nil
}

// ParseSignatures parses one signature per line. Blank lines and lines that
// start with a `#` are skipped.
func ParseSignatures(lines ...string) ([]*Mutation, error) {
	result := []*Mutation{}
	var reterr error
	for i, line := range lines {
		if s := strings.TrimSpace(line); s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		m, err := ParseSignature(line)
		if err != nil {
			reterr = errwrap.Append(reterr, errwrap.Wrapf(err, "line %d", i+1))
			continue
		}
		result = append(result, m)
	}
	return result, reterr
}

func isName(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if !(c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9') {
			return false
		}
	}
	return true
}
