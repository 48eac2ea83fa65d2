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

package types

// Op is an operator of the expression language.
type Op string

// These are all the operators.
const (
	OpAdd Op = "+"
	OpSub Op = "-"
	OpMul Op = "*"
	OpDiv Op = "/"
	OpMod Op = "%"
	OpPow Op = "^"

	OpEq Op = "=="
	OpNe Op = "!="
	OpLt Op = "<"
	OpLe Op = "<="
	OpGt Op = ">"
	OpGe Op = ">="

	OpAnd Op = "and"
	OpOr  Op = "or"
	OpNot Op = "not"
)

// opNames are the names used for the operators in the IR.
var opNames = map[Op]string{
	OpAdd: "sum",
	OpSub: "subtraction",
	OpMul: "multiplication",
	OpDiv: "division",
	OpMod: "modulus",
	OpPow: "exponential",
	OpEq:  "equal",
	OpNe:  "not_equal",
	OpLt:  "less",
	OpLe:  "less_equal",
	OpGt:  "greater",
	OpGe:  "greater_equal",
	OpAnd: "and",
	OpOr:  "or",
	OpNot: "not",
}

// Ops returns every operator.
func Ops() []Op {
	return []Op{OpAdd, OpSub, OpMul, OpDiv, OpMod, OpPow, OpEq, OpNe, OpLt, OpLe, OpGt, OpGe, OpAnd, OpOr, OpNot}
}

// ParseOp returns the operator spelled by s, if there is one.
func ParseOp(s string) (Op, bool) {
	op := Op(s)
	_, exists := opNames[op]
	return op, exists
}

// Name returns the IR name of the operator, eg: `sum` for `+`.
func (obj Op) Name() string {
	return opNames[obj]
}

// IsArithmetic returns true for the arithmetic operators.
func (obj Op) IsArithmetic() bool {
	switch obj {
	case OpAdd, OpSub, OpMul, OpDiv, OpMod, OpPow:
		return true
	}
	return false
}

// IsComparison returns true for the comparison operators.
func (obj Op) IsComparison() bool {
	switch obj {
	case OpEq, OpNe, OpLt, OpLe, OpGt, OpGe:
		return true
	}
	return false
}

// IsBoolean returns true for the boolean operators.
func (obj Op) IsBoolean() bool {
	switch obj {
	case OpAnd, OpOr, OpNot:
		return true
	}
	return false
}

// IsUnary returns true for the operators that take a single operand.
func (obj Op) IsUnary() bool {
	return obj == OpNot
}
