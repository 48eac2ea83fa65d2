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
	"sort"
	"strings"

	"github.com/purpleidea/storyc/lang/interfaces"
	"github.com/purpleidea/storyc/lang/types"
	"github.com/purpleidea/storyc/util"
	"github.com/purpleidea/storyc/util/errwrap"
)

// MutationArg is a named argument of a mutation.
type MutationArg struct {
	Name string
	Type *types.Type
}

// Mutation is a builtin operation on a value, like a method. Its types may use
// the type variables bound by the subject.
type Mutation struct {
	// TypeParams are the type variables of the subject, in order.
	TypeParams []string

	Subject *types.Type
	Name    string
	Args    []*MutationArg
	Output  *types.Type

	// Deprecated is set to the replacement advice for a deprecated
	// mutation.
	Deprecated string
}

// String returns the mutation in the signature language.
func (obj *Mutation) String() string {
	s := []string{obj.Subject.String(), obj.Name}
	for _, x := range obj.Args {
		s = append(s, fmt.Sprintf("%s:%s", x.Name, x.Type))
	}
	s = append(s, "->", obj.Output.String())
	if obj.Deprecated != "" {
		s = append(s, "#", deprecatedPrefix, obj.Deprecated)
	}
	return strings.Join(s, " ")
}

// Arg returns the argument with the given name, or nil if there isn't one.
func (obj *Mutation) Arg(name string) *MutationArg {
	for _, x := range obj.Args {
		if x.Name == name {
			return x
		}
	}
	return nil
}

// ArgNames returns the sorted argument names.
func (obj *Mutation) ArgNames() []string {
	names := []string{}
	for _, x := range obj.Args {
		names = append(names, x.Name)
	}
	sort.Strings(names)
	return names
}

// Matches returns true if the subject has the shape this mutation applies to.
func (obj *Mutation) Matches(subject *types.Type) bool {
	return obj.Subject.Unify(subject, make(map[string]*types.Type)) == nil
}

// Instantiate binds the type variables against the concrete subject type, and
// returns the mutation with every type variable substituted.
func (obj *Mutation) Instantiate(subject *types.Type) (*Mutation, error) {
	bindings := make(map[string]*types.Type)
	if err := obj.Subject.Unify(subject, bindings); err != nil {
		return nil, errwrap.Wrapf(err, "can't instantiate `%s`", obj.Name)
	}
	for _, x := range obj.TypeParams { // an any subject leaves nothing to bind
		if _, exists := bindings[x]; !exists {
			bindings[x] = types.TypeAny
		}
	}

	args := []*MutationArg{}
	for _, x := range obj.Args {
		typ, err := x.Type.Substitute(bindings)
		if err != nil {
			return nil, errwrap.Wrapf(err, "can't instantiate argument `%s` of `%s`", x.Name, obj.Name)
		}
		args = append(args, &MutationArg{Name: x.Name, Type: typ})
	}
	output, err := obj.Output.Substitute(bindings)
	if err != nil {
		return nil, errwrap.Wrapf(err, "can't instantiate the output of `%s`", obj.Name)
	}
	return &Mutation{
		TypeParams: []string{},
		Subject:    subject,
		Name:       obj.Name,
		Args:       args,
		Output:     output,
		Deprecated: obj.Deprecated,
	}, nil
}

// MutationTable is a read only collection of mutations. Tables are never
// changed once built, so one table can be shared by concurrent compiles.
type MutationTable struct {
	mutations []*Mutation
	byName    map[string][]*Mutation
}

// NewMutationTable builds a table with the mutations of base followed by the
// extra ones. The base table is not modified, and may be nil.
func NewMutationTable(base *MutationTable, extra ...*Mutation) *MutationTable {
	obj := &MutationTable{
		mutations: []*Mutation{},
		byName:    make(map[string][]*Mutation),
	}
	if base != nil {
		for _, x := range base.mutations {
			obj.add(x)
		}
	}
	for _, x := range extra {
		obj.add(x)
	}
	return obj
}

func (obj *MutationTable) add(m *Mutation) {
	obj.mutations = append(obj.mutations, m)
	obj.byName[m.Name] = append(obj.byName[m.Name], m)
}

// Mutations returns every mutation in registration order.
func (obj *MutationTable) Mutations() []*Mutation {
	return append([]*Mutation{}, obj.mutations...)
}

// Has returns true if a mutation with this name exists on any subject.
func (obj *MutationTable) Has(name string) bool {
	return len(obj.byName[name]) > 0
}

// Resolve looks up a mutation by name, subject shape and argument names. If a
// mutation matches, it is returned. Otherwise, if the name is overloaded on
// this subject, the overloads are returned as the candidates. If neither is
// returned, the name is not a usable mutation of the subject.
func (obj *MutationTable) Resolve(subject *types.Type, name string, argNames []string) (*Mutation, []*Mutation) {
	candidates := []*Mutation{}
	for _, m := range obj.byName[name] {
		if !m.Matches(subject) {
			continue
		}
		candidates = append(candidates, m)
	}
	for _, m := range candidates {
		if util.SortedStrSliceCompare(m.ArgNames(), argNames) == nil {
			return m, nil
		}
	}
	if len(candidates) < 2 { // not an overload
		return nil, nil
	}
	return nil, candidates
}

// Check resolves the mutation of a call site and type checks its arguments.
// It returns the output type, and a deprecation if the mutation has one. On an
// `any` subject every known mutation name is accepted, and the output is any.
func (obj *MutationTable) Check(node interfaces.Node, subject *types.Type, name string, args []*Arg) (*types.Type, *interfaces.Deprecation, error) {
	if subject.IsAny() {
		if !obj.Has(name) {
			return nil, nil, interfaces.NewError(interfaces.ErrMutationInvalidName, node, "name", name, "type", subject.String())
		}
		return types.TypeAny, nil, nil
	}

	names := []string{}
	for _, x := range args {
		names = append(names, x.Name)
	}
	m, candidates := obj.Resolve(subject, name, names)
	if m == nil && len(candidates) == 0 {
		return nil, nil, interfaces.NewError(interfaces.ErrMutationInvalidName, node, "name", name, "type", subject.String())
	}
	if m == nil {
		return nil, nil, interfaces.NewError(interfaces.ErrMutationOverloadMismatch, node, "name", name, "type", subject.String(), "args", strings.Join(names, ", "), "candidates", Candidates(candidates))
	}

	inst, err := m.Instantiate(subject)
	if err != nil {
		return nil, nil, errwrap.Wrapf(interfaces.ErrProgrammingError, "matched mutation failed to instantiate: %v", err)
	}
	for _, x := range args {
		param := inst.Arg(x.Name)
		if x.Type.ImplicitTo(param.Type) == nil {
			return nil, nil, interfaces.NewError(interfaces.ErrMutationArgTypeMismatch, at(x, node), "name", name, "arg", x.Name, "expected", param.Type.String(), "actual", x.Type.String())
		}
	}

	var dep *interfaces.Deprecation
	if m.Deprecated != "" {
		dep = &interfaces.Deprecation{
			Node:    node,
			Name:    m.Subject.String() + " " + m.Name,
			Message: m.Deprecated,
		}
	}
	return inst.Output, dep, nil
}

// Candidates pretty prints a list of mutations, one per line.
func Candidates(list []*Mutation) string {
	lines := []string{}
	for _, x := range list {
		lines = append(lines, "  "+x.String())
	}
	return strings.Join(lines, "\n")
}
