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
	"strings"

	"github.com/purpleidea/storyc/lang/interfaces"
	"github.com/purpleidea/storyc/lang/types"
)

// StmtAssign binds the value of an expression to a path. When the path has no
// fragments, it declares or rebinds a variable.
type StmtAssign struct {
	interfaces.Textarea

	Target *ExprPath
	Value  Expr
}

// String returns a short representation of this statement.
func (obj *StmtAssign) String() string {
	return fmt.Sprintf("assign(%s)", obj.Target)
}

// Apply runs fn on every node below this statement, and then on the statement.
func (obj *StmtAssign) Apply(fn func(interfaces.Node) error) error {
	if err := obj.Target.Apply(fn); err != nil {
		return err
	}
	if err := obj.Value.Apply(fn); err != nil {
		return err
	}
	return fn(obj)
}

// Copy returns a deep copy of this statement.
func (obj *StmtAssign) Copy() Stmt {
	return &StmtAssign{
		Textarea: obj.Textarea,
		Target:   obj.Target.Copy().(*ExprPath),
		Value:    obj.Value.Copy(),
	}
}

func (obj *StmtAssign) stmt() {}

// StmtExpr is an expression used as a statement. Its value is discarded. This
// is how bare service calls, mutations and function calls appear.
type StmtExpr struct {
	interfaces.Textarea

	Value Expr
}

// String returns a short representation of this statement.
func (obj *StmtExpr) String() string {
	return fmt.Sprintf("expr(%s)", obj.Value)
}

// Apply runs fn on every node below this statement, and then on the statement.
func (obj *StmtExpr) Apply(fn func(interfaces.Node) error) error {
	if err := obj.Value.Apply(fn); err != nil {
		return err
	}
	return fn(obj)
}

// Copy returns a deep copy of this statement.
func (obj *StmtExpr) Copy() Stmt {
	return &StmtExpr{
		Textarea: obj.Textarea,
		Value:    obj.Value.Copy(),
	}
}

func (obj *StmtExpr) stmt() {}

// StmtIf represents an if chain. The elif and else branches are optional.
type StmtIf struct {
	interfaces.Textarea

	Condition Expr
	Body      *Block
	Elifs     []*StmtElif
	Else      *StmtElse // optional
}

// String returns a short representation of this statement.
func (obj *StmtIf) String() string {
	s := fmt.Sprintf("if(%s)", obj.Condition)
	for _, x := range obj.Elifs {
		s += " " + x.String()
	}
	if obj.Else != nil {
		s += " " + obj.Else.String()
	}
	return s
}

// Apply runs fn on every node below this statement, and then on the statement.
func (obj *StmtIf) Apply(fn func(interfaces.Node) error) error {
	if err := obj.Condition.Apply(fn); err != nil {
		return err
	}
	if err := obj.Body.Apply(fn); err != nil {
		return err
	}
	for _, x := range obj.Elifs {
		if err := x.Apply(fn); err != nil {
			return err
		}
	}
	if obj.Else != nil {
		if err := obj.Else.Apply(fn); err != nil {
			return err
		}
	}
	return fn(obj)
}

// Copy returns a deep copy of this statement.
func (obj *StmtIf) Copy() Stmt {
	elifs := []*StmtElif{}
	for _, x := range obj.Elifs {
		elifs = append(elifs, x.copy())
	}
	var els *StmtElse
	if obj.Else != nil {
		els = &StmtElse{
			Textarea: obj.Else.Textarea,
			Body:     obj.Else.Body.Copy(),
		}
	}
	return &StmtIf{
		Textarea:  obj.Textarea,
		Condition: obj.Condition.Copy(),
		Body:      obj.Body.Copy(),
		Elifs:     elifs,
		Else:      els,
	}
}

func (obj *StmtIf) stmt() {}

// StmtElif is an elseif branch of an if chain. It is not a statement on its
// own, but it has its own line.
type StmtElif struct {
	interfaces.Textarea

	Condition Expr
	Body      *Block
}

// String returns a short representation of this branch.
func (obj *StmtElif) String() string {
	return fmt.Sprintf("elif(%s)", obj.Condition)
}

// Apply runs fn on every node below this branch, and then on the branch.
func (obj *StmtElif) Apply(fn func(interfaces.Node) error) error {
	if err := obj.Condition.Apply(fn); err != nil {
		return err
	}
	if err := obj.Body.Apply(fn); err != nil {
		return err
	}
	return fn(obj)
}

func (obj *StmtElif) copy() *StmtElif {
	return &StmtElif{
		Textarea:  obj.Textarea,
		Condition: obj.Condition.Copy(),
		Body:      obj.Body.Copy(),
	}
}

// StmtElse is the else branch of an if chain.
type StmtElse struct {
	interfaces.Textarea

	Body *Block
}

// String returns a short representation of this branch.
func (obj *StmtElse) String() string {
	return "else"
}

// Apply runs fn on every node below this branch, and then on the branch.
func (obj *StmtElse) Apply(fn func(interfaces.Node) error) error {
	if err := obj.Body.Apply(fn); err != nil {
		return err
	}
	return fn(obj)
}

// StmtForeach iterates over a list, a map, a string or a range.
type StmtForeach struct {
	interfaces.Textarea

	Iterable Expr
	Names    []string
	Body     *Block
}

// String returns a short representation of this statement.
func (obj *StmtForeach) String() string {
	return fmt.Sprintf("foreach(%s as %s)", obj.Iterable, strings.Join(obj.Names, ", "))
}

// Apply runs fn on every node below this statement, and then on the statement.
func (obj *StmtForeach) Apply(fn func(interfaces.Node) error) error {
	if err := obj.Iterable.Apply(fn); err != nil {
		return err
	}
	if err := obj.Body.Apply(fn); err != nil {
		return err
	}
	return fn(obj)
}

// Copy returns a deep copy of this statement.
func (obj *StmtForeach) Copy() Stmt {
	return &StmtForeach{
		Textarea: obj.Textarea,
		Iterable: obj.Iterable.Copy(),
		Names:    append([]string{}, obj.Names...),
		Body:     obj.Body.Copy(),
	}
}

func (obj *StmtForeach) stmt() {}

// StmtWhile loops for as long as the condition holds.
type StmtWhile struct {
	interfaces.Textarea

	Condition Expr
	Body      *Block
}

// String returns a short representation of this statement.
func (obj *StmtWhile) String() string {
	return fmt.Sprintf("while(%s)", obj.Condition)
}

// Apply runs fn on every node below this statement, and then on the statement.
func (obj *StmtWhile) Apply(fn func(interfaces.Node) error) error {
	if err := obj.Condition.Apply(fn); err != nil {
		return err
	}
	if err := obj.Body.Apply(fn); err != nil {
		return err
	}
	return fn(obj)
}

// Copy returns a deep copy of this statement.
func (obj *StmtWhile) Copy() Stmt {
	return &StmtWhile{
		Textarea:  obj.Textarea,
		Condition: obj.Condition.Copy(),
		Body:      obj.Body.Copy(),
	}
}

func (obj *StmtWhile) stmt() {}

// StmtTry runs its body and handles a throw with the catch and finally
// branches.
type StmtTry struct {
	interfaces.Textarea

	Body    *Block
	Catch   *StmtCatch   // optional
	Finally *StmtFinally // optional
}

// String returns a short representation of this statement.
func (obj *StmtTry) String() string {
	return "try"
}

// Apply runs fn on every node below this statement, and then on the statement.
func (obj *StmtTry) Apply(fn func(interfaces.Node) error) error {
	if err := obj.Body.Apply(fn); err != nil {
		return err
	}
	if obj.Catch != nil {
		if err := obj.Catch.Apply(fn); err != nil {
			return err
		}
	}
	if obj.Finally != nil {
		if err := obj.Finally.Apply(fn); err != nil {
			return err
		}
	}
	return fn(obj)
}

// Copy returns a deep copy of this statement.
func (obj *StmtTry) Copy() Stmt {
	stmt := &StmtTry{
		Textarea: obj.Textarea,
		Body:     obj.Body.Copy(),
	}
	if obj.Catch != nil {
		stmt.Catch = &StmtCatch{
			Textarea: obj.Catch.Textarea,
			Name:     obj.Catch.Name,
			Body:     obj.Catch.Body.Copy(),
		}
	}
	if obj.Finally != nil {
		stmt.Finally = &StmtFinally{
			Textarea: obj.Finally.Textarea,
			Body:     obj.Finally.Body.Copy(),
		}
	}
	return stmt
}

func (obj *StmtTry) stmt() {}

// StmtCatch is the catch branch of a try. The error name is optional.
type StmtCatch struct {
	interfaces.Textarea

	Name string
	Body *Block
}

// String returns a short representation of this branch.
func (obj *StmtCatch) String() string {
	return fmt.Sprintf("catch(%s)", obj.Name)
}

// Apply runs fn on every node below this branch, and then on the branch.
func (obj *StmtCatch) Apply(fn func(interfaces.Node) error) error {
	if err := obj.Body.Apply(fn); err != nil {
		return err
	}
	return fn(obj)
}

// StmtFinally is the finally branch of a try.
type StmtFinally struct {
	interfaces.Textarea

	Body *Block
}

// String returns a short representation of this branch.
func (obj *StmtFinally) String() string {
	return "finally"
}

// Apply runs fn on every node below this branch, and then on the branch.
func (obj *StmtFinally) Apply(fn func(interfaces.Node) error) error {
	if err := obj.Body.Apply(fn); err != nil {
		return err
	}
	return fn(obj)
}

// Param is a typed parameter of a function.
type Param struct {
	Name string
	Type *types.Type
}

// StmtFunc declares a function. The output is nil if the function doesn't
// return a value.
type StmtFunc struct {
	interfaces.Textarea

	Name   string
	Params []*Param
	Output *types.Type // optional
	Body   *Block
}

// String returns a short representation of this statement.
func (obj *StmtFunc) String() string {
	s := []string{}
	for _, x := range obj.Params {
		s = append(s, fmt.Sprintf("%s:%s", x.Name, x.Type))
	}
	out := ""
	if obj.Output != nil {
		out = " returns " + obj.Output.String()
	}
	return fmt.Sprintf("function %s(%s)%s", obj.Name, strings.Join(s, ", "), out)
}

// Apply runs fn on every node below this statement, and then on the statement.
func (obj *StmtFunc) Apply(fn func(interfaces.Node) error) error {
	if err := obj.Body.Apply(fn); err != nil {
		return err
	}
	return fn(obj)
}

// Copy returns a deep copy of this statement.
func (obj *StmtFunc) Copy() Stmt {
	params := []*Param{}
	for _, x := range obj.Params {
		params = append(params, &Param{Name: x.Name, Type: x.Type})
	}
	return &StmtFunc{
		Textarea: obj.Textarea,
		Name:     obj.Name,
		Params:   params,
		Output:   obj.Output,
		Body:     obj.Body.Copy(),
	}
}

func (obj *StmtFunc) stmt() {}

// StmtWhen listens for an event of a service output and runs its body each time
// the event fires.
type StmtWhen struct {
	interfaces.Textarea

	Service *ExprPath // the service or the service output
	Command string    // the event
	Args    []*Argument
	Output  []string
	Body    *Block

	Bound bool // the service is an output, set by the resolver
}

// String returns a short representation of this statement.
func (obj *StmtWhen) String() string {
	return fmt.Sprintf("when(%s %s)", obj.Service, obj.Command)
}

// Apply runs fn on every node below this statement, and then on the statement.
func (obj *StmtWhen) Apply(fn func(interfaces.Node) error) error {
	if err := obj.Service.Apply(fn); err != nil {
		return err
	}
	if err := applyArgs(obj.Args, fn); err != nil {
		return err
	}
	if err := obj.Body.Apply(fn); err != nil {
		return err
	}
	return fn(obj)
}

// Copy returns a deep copy of this statement.
func (obj *StmtWhen) Copy() Stmt {
	return &StmtWhen{
		Textarea: obj.Textarea,
		Service:  obj.Service.Copy().(*ExprPath),
		Command:  obj.Command,
		Args:     copyArgs(obj.Args),
		Output:   append([]string{}, obj.Output...),
		Body:     obj.Body.Copy(),
		Bound:    obj.Bound,
	}
}

func (obj *StmtWhen) stmt() {}

// StmtReturn returns from a function or a when block, optionally with a value.
type StmtReturn struct {
	interfaces.Textarea

	Value Expr // optional
}

// String returns a short representation of this statement.
func (obj *StmtReturn) String() string {
	if obj.Value == nil {
		return "return"
	}
	return fmt.Sprintf("return(%s)", obj.Value)
}

// Apply runs fn on every node below this statement, and then on the statement.
func (obj *StmtReturn) Apply(fn func(interfaces.Node) error) error {
	if obj.Value != nil {
		if err := obj.Value.Apply(fn); err != nil {
			return err
		}
	}
	return fn(obj)
}

// Copy returns a deep copy of this statement.
func (obj *StmtReturn) Copy() Stmt {
	stmt := &StmtReturn{Textarea: obj.Textarea}
	if obj.Value != nil {
		stmt.Value = obj.Value.Copy()
	}
	return stmt
}

func (obj *StmtReturn) stmt() {}

// StmtBreak leaves the innermost loop.
type StmtBreak struct {
	interfaces.Textarea
}

// String returns a short representation of this statement.
func (obj *StmtBreak) String() string {
	return "break"
}

// Apply runs fn on the statement.
func (obj *StmtBreak) Apply(fn func(interfaces.Node) error) error {
	return fn(obj)
}

// Copy returns a copy of this statement.
func (obj *StmtBreak) Copy() Stmt {
	return &StmtBreak{Textarea: obj.Textarea}
}

func (obj *StmtBreak) stmt() {}

// StmtThrow raises an error, optionally with a value.
type StmtThrow struct {
	interfaces.Textarea

	Value Expr // optional
}

// String returns a short representation of this statement.
func (obj *StmtThrow) String() string {
	if obj.Value == nil {
		return "throw"
	}
	return fmt.Sprintf("throw(%s)", obj.Value)
}

// Apply runs fn on every node below this statement, and then on the statement.
func (obj *StmtThrow) Apply(fn func(interfaces.Node) error) error {
	if obj.Value != nil {
		if err := obj.Value.Apply(fn); err != nil {
			return err
		}
	}
	return fn(obj)
}

// Copy returns a deep copy of this statement.
func (obj *StmtThrow) Copy() Stmt {
	stmt := &StmtThrow{Textarea: obj.Textarea}
	if obj.Value != nil {
		stmt.Value = obj.Value.Copy()
	}
	return stmt
}

func (obj *StmtThrow) stmt() {}
