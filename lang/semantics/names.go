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

package semantics

import (
	"regexp"
	"strings"

	"github.com/purpleidea/storyc/lang/ast"
	"github.com/purpleidea/storyc/lang/interfaces"
	"github.com/purpleidea/storyc/lang/types"
)

// serviceNameRegexp matches the names of external services.
var serviceNameRegexp = regexp.MustCompile(`^[a-z0-9][a-z0-9_./-]*$`)

// checkName validates a name that is being declared. Names synthesized by the
// compiler are exempt.
func checkName(node interfaces.Node, name string) error {
	if strings.HasPrefix(name, interfaces.InternalPrefix) {
		return nil
	}
	if strings.Contains(name, "-") {
		suggestion := strings.Replace(name, "-", "_", -1)
		return interfaces.NewError(interfaces.ErrVariablesDash, node, "name", name, "suggestion", suggestion)
	}
	if strings.Contains(name, `\`) {
		return interfaces.NewError(interfaces.ErrVariablesBackslash, node, "name", name)
	}
	for _, c := range name {
		if c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' {
			continue
		}
		return interfaces.NewError(interfaces.ErrPathNameInvalidChar, node, "name", name, "char", string(c))
	}
	return nil
}

// checkNames runs checkName on each name.
func checkNames(node interfaces.Node, names []string) error {
	for _, x := range names {
		if err := checkName(node, x); err != nil {
			return err
		}
	}
	return nil
}

// serviceName returns the full name of an external service, eg: `slack.bot`.
// Only dot fragments may be part of it.
func serviceName(x *ast.ExprPath) (string, error) {
	s := []string{x.Name}
	for _, f := range x.Fragments {
		if f.Kind != types.IndexDot {
			return "", interfaces.NewError(interfaces.ErrServiceName, x, "name", x.String())
		}
		s = append(s, f.Name)
	}
	name := strings.Join(s, ".")
	if !serviceNameRegexp.MatchString(name) {
		return "", interfaces.NewError(interfaces.ErrServiceName, x, "name", name)
	}
	return name, nil
}
