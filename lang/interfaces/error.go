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
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/iancoleman/strcase"
	"github.com/purpleidea/storyc/util"
)

const (
	// ErrProgrammingError is wrapped into errors that can only happen if the
	// compiler itself has a bug, such as an unhandled node kind in a pass.
	ErrProgrammingError = util.Error("programming error")
)

// ErrorKind is the closed set of diagnostics that the compiler can raise.
type ErrorKind int

// These are the different kinds of compiler errors.
const (
	ErrPathNameInvalidChar ErrorKind = iota
	ErrVariablesBackslash
	ErrVariablesDash
	ErrServiceName
	ErrServiceWithoutCommand
	ErrReturnOutside
	ErrBreakOutside
	ErrTypeAssignmentDifferent
	ErrTypeAssignmentNone
	ErrTypeOperationIncompatible
	ErrTypeIndexIncompatible
	ErrTypeCastIncompatible
	ErrTypeKeyNotHashable
	ErrIfExpressionBoolean
	ErrVarNotDefined
	ErrAssignmentReadonly
	ErrAssignmentNotWritable
	ErrAssignmentTargetDynamic
	ErrFunctionNotFound
	ErrFunctionArgRequired
	ErrFunctionArgInvalid
	ErrFunctionArgTypeMismatch
	ErrFunctionNested
	ErrFunctionRedeclared
	ErrReturnRequired
	ErrReturnTypeMismatch
	ErrMutationInvalidName
	ErrMutationOverloadMismatch
	ErrMutationArgTypeMismatch
	ErrMutationNested
	ErrScopeJoinIncompatible
	ErrNestedWhenBlock
	ErrNestedServiceBlock
	ErrForeachOutputRequired
	ErrForeachIterableRequired
	ErrStringTemplatesNested
	ErrStringTemplatesEmpty
	ErrStringTemplatesUnclosed
	ErrStringTemplatesFragment
	ErrRegexpInvalid
	ErrTimeValueInvalid
	ErrNumberInvalid
	ErrTreeInvalid
	ErrDeprecatedUsage

	errKindCount // must be last
)

// errorKinds holds the name and the message template of each kind. Templates
// reference their arguments as {name}.
var errorKinds = [errKindCount]struct {
	name    string
	message string
}{
	ErrPathNameInvalidChar:       {"PathNameInvalidChar", "`{name}` contains the invalid character `{char}`, names may only contain letters, digits and underscores"},
	ErrVariablesBackslash:        {"VariablesBackslash", "`{name}` must not contain a backslash"},
	ErrVariablesDash:             {"VariablesDash", "`{name}` must not contain a dash, use `{suggestion}` instead"},
	ErrServiceName:               {"ServiceName", "`{name}` is not a valid service name"},
	ErrServiceWithoutCommand:     {"ServiceWithoutCommand", "service `{name}` was used without a command"},
	ErrReturnOutside:             {"ReturnOutside", "`return` may only be used inside a function or a when block"},
	ErrBreakOutside:              {"BreakOutside", "`break` may only be used inside a loop"},
	ErrTypeAssignmentDifferent:   {"TypeAssignmentDifferent", "cannot assign a value of type `{source}` to `{name}` of type `{target}`"},
	ErrTypeAssignmentNone:        {"TypeAssignmentNone", "cannot assign to `{name}` from an expression without a value"},
	ErrTypeOperationIncompatible: {"TypeOperationIncompatible", "`{op}` is not supported between `{left}` and `{right}`"},
	ErrTypeIndexIncompatible:     {"TypeIndexIncompatible", "`{left}` cannot be indexed with `{right}`"},
	ErrTypeCastIncompatible:      {"TypeCastIncompatible", "`{source}` cannot be converted to `{target}`"},
	ErrTypeKeyNotHashable:        {"TypeKeyNotHashable", "`{key}` cannot be used as a map key"},
	ErrIfExpressionBoolean:       {"IfExpressionBoolean", "the condition of type `{type}` can not be used as a boolean"},
	ErrVarNotDefined:             {"VarNotDefined", "variable `{name}` has not been defined"},
	ErrAssignmentReadonly:        {"AssignmentReadonly", "`{name}` is read-only and can not be rebound"},
	ErrAssignmentNotWritable:     {"AssignmentNotWritable", "`{name}` is not writable"},
	ErrAssignmentTargetDynamic:   {"AssignmentTargetDynamic", "only literal keys may be used when assigning into `{name}`"},
	ErrFunctionNotFound:          {"FunctionNotFound", "function `{name}` has not been declared"},
	ErrFunctionArgRequired:       {"FunctionArgRequired", "function `{name}` requires the argument `{arg}`"},
	ErrFunctionArgInvalid:        {"FunctionArgInvalid", "function `{name}` does not take the argument `{arg}`"},
	ErrFunctionArgTypeMismatch:   {"FunctionArgTypeMismatch", "argument `{arg}` of function `{name}` expects `{expected}` but got `{actual}`"},
	ErrFunctionNested:            {"FunctionNested", "function `{name}` must be declared at the top level"},
	ErrFunctionRedeclared:        {"FunctionRedeclared", "function `{name}` was already declared at line {prev}"},
	ErrReturnRequired:            {"ReturnRequired", "function `{name}` must return a value of type `{type}` on every path"},
	ErrReturnTypeMismatch:        {"ReturnTypeMismatch", "`{name}` must return `{expected}` but returns `{actual}`"},
	ErrMutationInvalidName:       {"MutationInvalidName", "`{name}` is not a mutation of `{type}`"},
	ErrMutationOverloadMismatch:  {"MutationOverloadMismatch", "no overload of `{name}` on `{type}` takes the arguments ({args}), candidates are:\n{candidates}"},
	ErrMutationArgTypeMismatch:   {"MutationArgTypeMismatch", "argument `{arg}` of mutation `{name}` expects `{expected}` but got `{actual}`"},
	ErrMutationNested:            {"MutationNested", "mutation `{name}` can not declare outputs or a block"},
	ErrScopeJoinIncompatible:     {"ScopeJoinIncompatible", "`{name}` is `{left}` in one branch but `{right}` in another"},
	ErrNestedWhenBlock:           {"NestedWhenBlock", "a when block can not be nested inside another when block"},
	ErrNestedServiceBlock:        {"NestedServiceBlock", "a service block can not be nested inside another service block"},
	ErrForeachOutputRequired:     {"ForeachOutputRequired", "foreach requires at least one output name"},
	ErrForeachIterableRequired:   {"ForeachIterableRequired", "`{type}` can not be iterated with {count} output name(s)"},
	ErrStringTemplatesNested:     {"StringTemplatesNested", "string templates can not be nested"},
	ErrStringTemplatesEmpty:      {"StringTemplatesEmpty", "string templates can not be empty"},
	ErrStringTemplatesUnclosed:   {"StringTemplatesUnclosed", "string template is missing its closing `}`"},
	ErrStringTemplatesFragment:   {"StringTemplatesFragment", "invalid string template `{code}`: {reason}"},
	ErrRegexpInvalid:             {"RegexpInvalid", "invalid regular expression `{regexp}`: {reason}"},
	ErrTimeValueInvalid:          {"TimeValueInvalid", "invalid time `{time}`"},
	ErrNumberInvalid:             {"NumberInvalid", "invalid number `{number}`"},
	ErrTreeInvalid:               {"TreeInvalid", "malformed `{kind}` node: {reason}"},
	ErrDeprecatedUsage:           {"DeprecatedUsage", "{message}"},
}

// String returns the Go style name of this kind.
func (obj ErrorKind) String() string {
	if obj < 0 || obj >= errKindCount {
		return fmt.Sprintf("ErrorKind(%d)", int(obj))
	}
	return errorKinds[obj].name
}

// Code returns the stable identifier of this kind, eg: `var_not_defined`.
func (obj ErrorKind) Code() string {
	if obj < 0 || obj >= errKindCount {
		return "unknown"
	}
	return strcase.ToSnake(errorKinds[obj].name)
}

// Template returns the unformatted message of this kind.
func (obj ErrorKind) Template() string {
	if obj < 0 || obj >= errKindCount {
		return ""
	}
	return errorKinds[obj].message
}

// ErrorKinds returns every kind in declaration order.
func ErrorKinds() []ErrorKind {
	kinds := []ErrorKind{}
	for i := ErrorKind(0); i < errKindCount; i++ {
		kinds = append(kinds, i)
	}
	return kinds
}

// Error is a compiler diagnostic. It points at the offending node and carries
// the arguments needed to render its message.
type Error struct {
	Kind ErrorKind
	Node Node // may be nil
	Args map[string]string
}

// NewError builds a compiler error. Args are given as key, value pairs.
func NewError(kind ErrorKind, node Node, args ...string) *Error {
	if len(args)%2 != 0 {
		panic(fmt.Sprintf("odd number of args for %s", kind))
	}
	m := make(map[string]string, len(args)/2)
	for i := 0; i < len(args); i += 2 {
		m[args[i]] = args[i+1]
	}
	return &Error{
		Kind: kind,
		Node: node,
		Args: m,
	}
}

// Message renders the message template with the arguments of this error.
func (obj *Error) Message() string {
	keys := make([]string, 0, len(obj.Args))
	for k := range obj.Args {
		keys = append(keys, k)
	}
	sort.Strings(keys) // deterministic replacer
	pairs := []string{}
	for _, k := range keys {
		pairs = append(pairs, "{"+k+"}", obj.Args[k])
	}
	return strings.NewReplacer(pairs...).Replace(obj.Kind.Template())
}

// Error returns the rendered diagnostic, prefixed by the node position.
func (obj *Error) Error() string {
	s := fmt.Sprintf("%s: %s", obj.Kind.Code(), obj.Message())
	if obj.Node == nil {
		return s
	}
	return fmt.Sprintf("%s: %s", obj.Node.Area().Byline(), s)
}

// KindOf returns the kind of the compiler error found in the chain of err. The
// boolean is false if there is no compiler error in there.
func KindOf(err error) (ErrorKind, bool) {
	var e *Error
	if !errors.As(err, &e) {
		return 0, false
	}
	return e.Kind, true
}

// IsKind returns true if err contains a compiler error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}

// Deprecation is a non-fatal finding. It is returned alongside a successful
// compile.
type Deprecation struct {
	Node    Node
	Name    string // what is deprecated
	Message string // what to do instead
}

// String returns a human readable representation of the deprecation.
func (obj *Deprecation) String() string {
	s := fmt.Sprintf("`%s` is deprecated", obj.Name)
	if obj.Message != "" {
		s += ": " + obj.Message
	}
	if obj.Node == nil {
		return s
	}
	return fmt.Sprintf("%s: %s", obj.Node.Area().Byline(), s)
}

// AsError promotes the deprecation into a compiler error.
func (obj *Deprecation) AsError() *Error {
	return NewError(ErrDeprecatedUsage, obj.Node, "message", fmt.Sprintf("`%s` is deprecated: %s", obj.Name, obj.Message))
}
