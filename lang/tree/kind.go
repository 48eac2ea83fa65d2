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

package tree

import (
	"fmt"

	"github.com/iancoleman/strcase"
)

// Kind is the tag of a node. The closed set of kinds is the grammar that the
// compiler understands.
type Kind int

// These are all the node kinds.
const (
	KindInvalid Kind = iota
	KindStart
	KindBlock
	KindAssignment
	KindService
	KindMutation
	KindIfBlock
	KindElseifBlock
	KindElseBlock
	KindForeachBlock
	KindWhileBlock
	KindTryBlock
	KindCatchBlock
	KindFinallyBlock
	KindFunctionBlock
	KindWhenBlock
	KindReturnStatement
	KindBreakStatement
	KindThrowStatement
	KindCallExpression
	KindInlineExpression
	KindArguments
	KindArgument
	KindOutput
	KindTypedArgument
	KindFunctionOutput
	KindPath
	KindPathFragment
	KindEntity
	KindValues
	KindExpression
	KindTypeCast
	KindRange
	KindKeyValue
	KindString
	KindNumber
	KindBoolean
	KindList
	KindObjects
	KindRegularExpression
	KindTime
	KindTypes

	kindCount // must be last
)

var kindNames = [kindCount]string{
	KindInvalid:           "Invalid",
	KindStart:             "Start",
	KindBlock:             "Block",
	KindAssignment:        "Assignment",
	KindService:           "Service",
	KindMutation:          "Mutation",
	KindIfBlock:           "IfBlock",
	KindElseifBlock:       "ElseifBlock",
	KindElseBlock:         "ElseBlock",
	KindForeachBlock:      "ForeachBlock",
	KindWhileBlock:        "WhileBlock",
	KindTryBlock:          "TryBlock",
	KindCatchBlock:        "CatchBlock",
	KindFinallyBlock:      "FinallyBlock",
	KindFunctionBlock:     "FunctionBlock",
	KindWhenBlock:         "WhenBlock",
	KindReturnStatement:   "ReturnStatement",
	KindBreakStatement:    "BreakStatement",
	KindThrowStatement:    "ThrowStatement",
	KindCallExpression:    "CallExpression",
	KindInlineExpression:  "InlineExpression",
	KindArguments:         "Arguments",
	KindArgument:          "Argument",
	KindOutput:            "Output",
	KindTypedArgument:     "TypedArgument",
	KindFunctionOutput:    "FunctionOutput",
	KindPath:              "Path",
	KindPathFragment:      "PathFragment",
	KindEntity:            "Entity",
	KindValues:            "Values",
	KindExpression:        "Expression",
	KindTypeCast:          "TypeCast",
	KindRange:             "Range",
	KindKeyValue:          "KeyValue",
	KindString:            "String",
	KindNumber:            "Number",
	KindBoolean:           "Boolean",
	KindList:              "List",
	KindObjects:           "Objects",
	KindRegularExpression: "RegularExpression",
	KindTime:              "Time",
	KindTypes:             "Types",
}

// kindTags maps the wire tag of each kind back to the kind.
var kindTags = func() map[string]Kind {
	m := make(map[string]Kind, kindCount)
	for i := KindStart; i < kindCount; i++ {
		m[i.String()] = i
	}
	return m
}()

// String returns the wire tag of the kind, eg: `if_block`.
func (obj Kind) String() string {
	if obj < 0 || obj >= kindCount {
		return fmt.Sprintf("kind(%d)", int(obj))
	}
	return strcase.ToSnake(kindNames[obj])
}

// ParseKind returns the kind with the given wire tag.
func ParseKind(tag string) (Kind, error) {
	kind, exists := kindTags[tag]
	if !exists {
		return KindInvalid, fmt.Errorf("unknown node kind `%s`", tag)
	}
	return kind, nil
}

// Kinds returns every valid kind.
func Kinds() []Kind {
	kinds := []Kind{}
	for i := KindStart; i < kindCount; i++ {
		kinds = append(kinds, i)
	}
	return kinds
}

// TokenKind is the tag of a token.
type TokenKind string

// These are the token kinds that carry meaning.
const (
	TokenName   TokenKind = "NAME"
	TokenString TokenKind = "STRING"
	TokenInt    TokenKind = "INT"
	TokenFloat  TokenKind = "FLOAT"
	TokenBool   TokenKind = "BOOL"
	TokenOp     TokenKind = "OP"
	TokenType   TokenKind = "TYPE"
	TokenRegExp TokenKind = "REGEXP"
	TokenFlags  TokenKind = "FLAGS"
	TokenTime   TokenKind = "TIME"
	TokenColon  TokenKind = "COLON"
	TokenEquals TokenKind = "EQUALS"
)
