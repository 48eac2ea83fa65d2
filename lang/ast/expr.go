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

package ast

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/purpleidea/storyc/lang/interfaces"
	"github.com/purpleidea/storyc/lang/types"
)

// ExprString is a string literal. A verbatim string is one whose template
// pieces were already processed, so it must not be scanned again.
type ExprString struct {
	interfaces.Textarea
	typed

	Value    string
	Verbatim bool
}

// String returns a short representation of this expression.
func (obj *ExprString) String() string { return strconv.Quote(obj.Value) }

// Apply runs fn on the expression.
func (obj *ExprString) Apply(fn func(interfaces.Node) error) error { return fn(obj) }

// Copy returns a copy of this expression.
func (obj *ExprString) Copy() Expr {
	return &ExprString{Textarea: obj.Textarea, typed: obj.typed, Value: obj.Value, Verbatim: obj.Verbatim}
}

func (obj *ExprString) expr() {}

// ExprInt is an integer literal.
type ExprInt struct {
	interfaces.Textarea
	typed

	Value int64
}

// String returns a short representation of this expression.
func (obj *ExprInt) String() string { return strconv.FormatInt(obj.Value, 10) }

// Apply runs fn on the expression.
func (obj *ExprInt) Apply(fn func(interfaces.Node) error) error { return fn(obj) }

// Copy returns a copy of this expression.
func (obj *ExprInt) Copy() Expr {
	return &ExprInt{Textarea: obj.Textarea, typed: obj.typed, Value: obj.Value}
}

func (obj *ExprInt) expr() {}

// ExprFloat is a floating point literal.
type ExprFloat struct {
	interfaces.Textarea
	typed

	Value float64
}

// String returns a short representation of this expression.
func (obj *ExprFloat) String() string { return strconv.FormatFloat(obj.Value, 'g', -1, 64) }

// Apply runs fn on the expression.
func (obj *ExprFloat) Apply(fn func(interfaces.Node) error) error { return fn(obj) }

// Copy returns a copy of this expression.
func (obj *ExprFloat) Copy() Expr {
	return &ExprFloat{Textarea: obj.Textarea, typed: obj.typed, Value: obj.Value}
}

func (obj *ExprFloat) expr() {}

// ExprBool is a boolean literal.
type ExprBool struct {
	interfaces.Textarea
	typed

	Value bool
}

// String returns a short representation of this expression.
func (obj *ExprBool) String() string { return strconv.FormatBool(obj.Value) }

// Apply runs fn on the expression.
func (obj *ExprBool) Apply(fn func(interfaces.Node) error) error { return fn(obj) }

// Copy returns a copy of this expression.
func (obj *ExprBool) Copy() Expr {
	return &ExprBool{Textarea: obj.Textarea, typed: obj.typed, Value: obj.Value}
}

func (obj *ExprBool) expr() {}

// ExprRegExp is a regular expression literal.
type ExprRegExp struct {
	interfaces.Textarea
	typed

	Pattern string
	Flags   string
}

// String returns a short representation of this expression.
func (obj *ExprRegExp) String() string { return fmt.Sprintf("/%s/%s", obj.Pattern, obj.Flags) }

// Apply runs fn on the expression.
func (obj *ExprRegExp) Apply(fn func(interfaces.Node) error) error { return fn(obj) }

// Copy returns a copy of this expression.
func (obj *ExprRegExp) Copy() Expr {
	return &ExprRegExp{Textarea: obj.Textarea, typed: obj.typed, Pattern: obj.Pattern, Flags: obj.Flags}
}

func (obj *ExprRegExp) expr() {}

// ExprTime is a duration literal, stored in milliseconds.
type ExprTime struct {
	interfaces.Textarea
	typed

	Millis int64
	Raw    string // as written, eg: 1h30m
}

// String returns a short representation of this expression.
func (obj *ExprTime) String() string { return obj.Raw }

// Apply runs fn on the expression.
func (obj *ExprTime) Apply(fn func(interfaces.Node) error) error { return fn(obj) }

// Copy returns a copy of this expression.
func (obj *ExprTime) Copy() Expr {
	return &ExprTime{Textarea: obj.Textarea, typed: obj.typed, Millis: obj.Millis, Raw: obj.Raw}
}

func (obj *ExprTime) expr() {}

// ExprRange is a range, mostly used to slice lists and strings. Either bound
// may be missing.
type ExprRange struct {
	interfaces.Textarea
	typed

	Start Expr // optional
	End   Expr // optional
}

// String returns a short representation of this expression.
func (obj *ExprRange) String() string {
	s, e := "", ""
	if obj.Start != nil {
		s = obj.Start.String()
	}
	if obj.End != nil {
		e = obj.End.String()
	}
	return s + ":" + e
}

// Apply runs fn on every node below this expression, and then on itself.
func (obj *ExprRange) Apply(fn func(interfaces.Node) error) error {
	if obj.Start != nil {
		if err := obj.Start.Apply(fn); err != nil {
			return err
		}
	}
	if obj.End != nil {
		if err := obj.End.Apply(fn); err != nil {
			return err
		}
	}
	return fn(obj)
}

// Copy returns a deep copy of this expression.
func (obj *ExprRange) Copy() Expr {
	expr := &ExprRange{Textarea: obj.Textarea, typed: obj.typed}
	if obj.Start != nil {
		expr.Start = obj.Start.Copy()
	}
	if obj.End != nil {
		expr.End = obj.End.Copy()
	}
	return expr
}

func (obj *ExprRange) expr() {}

// ExprList is a list literal.
type ExprList struct {
	interfaces.Textarea
	typed

	Items []Expr
}

// String returns a short representation of this expression.
func (obj *ExprList) String() string {
	s := []string{}
	for _, x := range obj.Items {
		s = append(s, x.String())
	}
	return "[" + strings.Join(s, ", ") + "]"
}

// Apply runs fn on every node below this expression, and then on itself.
func (obj *ExprList) Apply(fn func(interfaces.Node) error) error {
	for _, x := range obj.Items {
		if err := x.Apply(fn); err != nil {
			return err
		}
	}
	return fn(obj)
}

// Copy returns a deep copy of this expression.
func (obj *ExprList) Copy() Expr {
	items := []Expr{}
	for _, x := range obj.Items {
		items = append(items, x.Copy())
	}
	return &ExprList{Textarea: obj.Textarea, typed: obj.typed, Items: items}
}

func (obj *ExprList) expr() {}

// KeyValue is an entry of a map literal.
type KeyValue struct {
	Key   Expr
	Value Expr
}

// ExprMap is a map literal.
type ExprMap struct {
	interfaces.Textarea
	typed

	Pairs []*KeyValue
}

// String returns a short representation of this expression.
func (obj *ExprMap) String() string {
	s := []string{}
	for _, x := range obj.Pairs {
		s = append(s, fmt.Sprintf("%s: %s", x.Key, x.Value))
	}
	return "{" + strings.Join(s, ", ") + "}"
}

// Apply runs fn on every node below this expression, and then on itself.
func (obj *ExprMap) Apply(fn func(interfaces.Node) error) error {
	for _, x := range obj.Pairs {
		if err := x.Key.Apply(fn); err != nil {
			return err
		}
		if err := x.Value.Apply(fn); err != nil {
			return err
		}
	}
	return fn(obj)
}

// Copy returns a deep copy of this expression.
func (obj *ExprMap) Copy() Expr {
	pairs := []*KeyValue{}
	for _, x := range obj.Pairs {
		pairs = append(pairs, &KeyValue{Key: x.Key.Copy(), Value: x.Value.Copy()})
	}
	return &ExprMap{Textarea: obj.Textarea, typed: obj.typed, Pairs: pairs}
}

func (obj *ExprMap) expr() {}

// Fragment is one step of a path, either `.name` or `[key]`.
type Fragment struct {
	Kind types.IndexKind
	Name string // if Kind == IndexDot
	Key  Expr   // if Kind == IndexBracket
}

// ExprPath is a variable reference, optionally followed by fragments.
type ExprPath struct {
	interfaces.Textarea
	typed

	Name      string
	Fragments []*Fragment
}

// String returns a short representation of this expression.
func (obj *ExprPath) String() string {
	s := obj.Name
	for _, x := range obj.Fragments {
		if x.Kind == types.IndexDot {
			s += "." + x.Name
			continue
		}
		s += "[" + x.Key.String() + "]"
	}
	return s
}

// Apply runs fn on every node below this expression, and then on itself.
func (obj *ExprPath) Apply(fn func(interfaces.Node) error) error {
	for _, x := range obj.Fragments {
		if x.Key == nil {
			continue
		}
		if err := x.Key.Apply(fn); err != nil {
			return err
		}
	}
	return fn(obj)
}

// Copy returns a deep copy of this expression.
func (obj *ExprPath) Copy() Expr {
	frags := []*Fragment{}
	for _, x := range obj.Fragments {
		f := &Fragment{Kind: x.Kind, Name: x.Name}
		if x.Key != nil {
			f.Key = x.Key.Copy()
		}
		frags = append(frags, f)
	}
	return &ExprPath{Textarea: obj.Textarea, typed: obj.typed, Name: obj.Name, Fragments: frags}
}

func (obj *ExprPath) expr() {}

// IsBare returns true if the path is a plain variable name.
func (obj *ExprPath) IsBare() bool {
	return len(obj.Fragments) == 0
}

// ExprOp applies an operator to its operands. Binary operators are n-ary and
// left associative, `not` has exactly one operand.
type ExprOp struct {
	interfaces.Textarea
	typed

	Op     types.Op
	Values []Expr
}

// String returns a short representation of this expression.
func (obj *ExprOp) String() string {
	if obj.Op.IsUnary() && len(obj.Values) == 1 {
		return fmt.Sprintf("(%s %s)", obj.Op, obj.Values[0])
	}
	s := []string{}
	for _, x := range obj.Values {
		s = append(s, x.String())
	}
	return "(" + strings.Join(s, " "+string(obj.Op)+" ") + ")"
}

// Apply runs fn on every node below this expression, and then on itself.
func (obj *ExprOp) Apply(fn func(interfaces.Node) error) error {
	for _, x := range obj.Values {
		if err := x.Apply(fn); err != nil {
			return err
		}
	}
	return fn(obj)
}

// Copy returns a deep copy of this expression.
func (obj *ExprOp) Copy() Expr {
	values := []Expr{}
	for _, x := range obj.Values {
		values = append(values, x.Copy())
	}
	return &ExprOp{Textarea: obj.Textarea, typed: obj.typed, Op: obj.Op, Values: values}
}

func (obj *ExprOp) expr() {}

// ExprCast converts a value into another type with `value as type`.
type ExprCast struct {
	interfaces.Textarea
	typed

	Value Expr
	To    *types.Type
}

// String returns a short representation of this expression.
func (obj *ExprCast) String() string {
	return fmt.Sprintf("(%s as %s)", obj.Value, obj.To)
}

// Apply runs fn on every node below this expression, and then on itself.
func (obj *ExprCast) Apply(fn func(interfaces.Node) error) error {
	if err := obj.Value.Apply(fn); err != nil {
		return err
	}
	return fn(obj)
}

// Copy returns a deep copy of this expression.
func (obj *ExprCast) Copy() Expr {
	return &ExprCast{Textarea: obj.Textarea, typed: obj.typed, Value: obj.Value.Copy(), To: obj.To}
}

func (obj *ExprCast) expr() {}

// ExprCall calls a user defined function.
type ExprCall struct {
	interfaces.Textarea
	typed

	Name string
	Args []*Argument
}

// String returns a short representation of this expression.
func (obj *ExprCall) String() string {
	return fmt.Sprintf("%s(%s)", obj.Name, argsString(obj.Args))
}

// Apply runs fn on every node below this expression, and then on itself.
func (obj *ExprCall) Apply(fn func(interfaces.Node) error) error {
	if err := applyArgs(obj.Args, fn); err != nil {
		return err
	}
	return fn(obj)
}

// Copy returns a deep copy of this expression.
func (obj *ExprCall) Copy() Expr {
	return &ExprCall{Textarea: obj.Textarea, typed: obj.typed, Name: obj.Name, Args: copyArgs(obj.Args)}
}

func (obj *ExprCall) expr() {}

// ExprService runs a command of an external service. Used as a statement, it
// may bind outputs for a nested block. The resolver turns it into a mutation
// when the name turns out to be a variable.
type ExprService struct {
	interfaces.Textarea
	typed

	Name    *ExprPath
	Command string
	Args    []*Argument
	Output  []string
	Block   *Block // optional

	// Bound is set by the resolver when the name is the output of an
	// enclosing service or when block, and not an external service.
	Bound bool
}

// String returns a short representation of this expression.
func (obj *ExprService) String() string {
	s := obj.Name.String()
	if obj.Command != "" {
		s += " " + obj.Command
	}
	if len(obj.Args) > 0 {
		s += "(" + argsString(obj.Args) + ")"
	}
	return s
}

// Apply runs fn on every node below this expression, and then on itself.
func (obj *ExprService) Apply(fn func(interfaces.Node) error) error {
	if err := obj.Name.Apply(fn); err != nil {
		return err
	}
	if err := applyArgs(obj.Args, fn); err != nil {
		return err
	}
	if obj.Block != nil {
		if err := obj.Block.Apply(fn); err != nil {
			return err
		}
	}
	return fn(obj)
}

// Copy returns a deep copy of this expression.
func (obj *ExprService) Copy() Expr {
	var output []string
	if obj.Output != nil {
		output = append([]string{}, obj.Output...)
	}
	return &ExprService{
		Textarea: obj.Textarea,
		typed:    obj.typed,
		Name:     obj.Name.Copy().(*ExprPath),
		Command:  obj.Command,
		Args:     copyArgs(obj.Args),
		Output:   output,
		Block:    obj.Block.Copy(),
		Bound:    obj.Bound,
	}
}

func (obj *ExprService) expr() {}

// ExprMutation applies a built-in operation to a value.
type ExprMutation struct {
	interfaces.Textarea
	typed

	Subject Expr
	Name    string
	Args    []*Argument
}

// String returns a short representation of this expression.
func (obj *ExprMutation) String() string {
	return fmt.Sprintf("%s %s(%s)", obj.Subject, obj.Name, argsString(obj.Args))
}

// Apply runs fn on every node below this expression, and then on itself.
func (obj *ExprMutation) Apply(fn func(interfaces.Node) error) error {
	if err := obj.Subject.Apply(fn); err != nil {
		return err
	}
	if err := applyArgs(obj.Args, fn); err != nil {
		return err
	}
	return fn(obj)
}

// Copy returns a deep copy of this expression.
func (obj *ExprMutation) Copy() Expr {
	return &ExprMutation{
		Textarea: obj.Textarea,
		typed:    obj.typed,
		Subject:  obj.Subject.Copy(),
		Name:     obj.Name,
		Args:     copyArgs(obj.Args),
	}
}

func (obj *ExprMutation) expr() {}

// ExprInline is a parenthesized service, mutation or call that is embedded in
// a larger expression. Lowering hoists these into their own statements.
type ExprInline struct {
	interfaces.Textarea
	typed

	Value Expr
}

// String returns a short representation of this expression.
func (obj *ExprInline) String() string {
	return fmt.Sprintf("(%s)", obj.Value)
}

// Apply runs fn on every node below this expression, and then on itself.
func (obj *ExprInline) Apply(fn func(interfaces.Node) error) error {
	if err := obj.Value.Apply(fn); err != nil {
		return err
	}
	return fn(obj)
}

// Copy returns a deep copy of this expression.
func (obj *ExprInline) Copy() Expr {
	return &ExprInline{Textarea: obj.Textarea, typed: obj.typed, Value: obj.Value.Copy()}
}

func (obj *ExprInline) expr() {}
