// Copyright Statutelang Contributors.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package ast

import (
	"fmt"
	"strings"
)

// CmpOp represents one of the six comparison operators permitted within
// condition leaves.
type CmpOp uint8

// EQUALS signals equality (=)
const EQUALS CmpOp = 0

// NOT_EQUALS signals disequality (!=)
const NOT_EQUALS CmpOp = 1

// LESSTHAN signals a strict inequality (<)
const LESSTHAN CmpOp = 2

// LESSTHAN_EQUALS signals a non-strict inequality (<=)
const LESSTHAN_EQUALS CmpOp = 3

// GREATERTHAN signals a strict inequality (>)
const GREATERTHAN CmpOp = 4

// GREATERTHAN_EQUALS signals a non-strict inequality (>=)
const GREATERTHAN_EQUALS CmpOp = 5

// String returns the canonical operator symbol.
func (p CmpOp) String() string {
	switch p {
	case EQUALS:
		return "="
	case NOT_EQUALS:
		return "!="
	case LESSTHAN:
		return "<"
	case LESSTHAN_EQUALS:
		return "<="
	case GREATERTHAN:
		return ">"
	case GREATERTHAN_EQUALS:
		return ">="
	}
	//
	panic("unknown comparison operator")
}

// Negate returns the operator denoting the complement relation, e.g. the
// negation of < is >=.
func (p CmpOp) Negate() CmpOp {
	switch p {
	case EQUALS:
		return NOT_EQUALS
	case NOT_EQUALS:
		return EQUALS
	case LESSTHAN:
		return GREATERTHAN_EQUALS
	case LESSTHAN_EQUALS:
		return GREATERTHAN
	case GREATERTHAN:
		return LESSTHAN_EQUALS
	case GREATERTHAN_EQUALS:
		return LESSTHAN
	}
	//
	panic("unknown comparison operator")
}

// Holds applies this operator to the result of a three-way comparison, where
// sign < 0 means the left operand was smaller, sign == 0 means the operands
// were equal, and sign > 0 means the left operand was larger.
func (p CmpOp) Holds(sign int) bool {
	switch p {
	case EQUALS:
		return sign == 0
	case NOT_EQUALS:
		return sign != 0
	case LESSTHAN:
		return sign < 0
	case LESSTHAN_EQUALS:
		return sign <= 0
	case GREATERTHAN:
		return sign > 0
	case GREATERTHAN_EQUALS:
		return sign >= 0
	}
	//
	panic("unknown comparison operator")
}

// Condition represents a boolean-valued predicate tree evaluated against the
// facts known about a given entity.  Conditions are built bottom-up by the
// parser, hence always finite and acyclic, and are never mutated after
// construction.
type Condition interface {
	Node
	// precedence determines how tightly this condition binds, which in turn
	// determines where brackets are required when printing.
	precedence() uint
}

// Age represents a comparison of the entity's age against a constant.
type Age struct {
	Op    CmpOp
	Value int64
}

func (p *Age) precedence() uint { return 3 }

func (p *Age) String() string {
	return fmt.Sprintf("AGE %s %d", p.Op, p.Value)
}

// Income represents a comparison of the entity's income against a constant.
type Income struct {
	Op    CmpOp
	Value int64
}

func (p *Income) precedence() uint { return 3 }

func (p *Income) String() string {
	return fmt.Sprintf("INCOME %s %d", p.Op, p.Value)
}

// DateIs represents a comparison of the evaluation date (the context-derived
// "now") against a constant date.
type DateIs struct {
	Op    CmpOp
	Value Date
}

func (p *DateIs) precedence() uint { return 3 }

func (p *DateIs) String() string {
	return fmt.Sprintf("DATE %s %s", p.Op, p.Value)
}

// HasAttribute tests whether a given attribute is known to hold for the
// entity.  An attribute which is absent from the evaluation context is
// neither known to hold nor known not to hold.
type HasAttribute struct {
	Name string
}

func (p *HasAttribute) precedence() uint { return 3 }

func (p *HasAttribute) String() string {
	return fmt.Sprintf("HAS %s", p.Name)
}

// Geographic represents a comparison of a named textual attribute (e.g. the
// entity's region of residence) against a constant.  When Pattern is set, the
// constant is an SQL-style pattern where '%' matches any run of characters
// and '_' matches exactly one.
type Geographic struct {
	// Name of the attribute being compared.
	Kind string
	// Either EQUALS or NOT_EQUALS; patterns always use EQUALS.
	Op    CmpOp
	Value string
	// Indicates Value is a pattern rather than a literal.
	Pattern bool
}

func (p *Geographic) precedence() uint { return 3 }

func (p *Geographic) String() string {
	if p.Pattern {
		return fmt.Sprintf("%s LIKE %s", p.Kind, Quote(p.Value))
	}
	//
	return fmt.Sprintf("%s %s %s", p.Kind, p.Op, Quote(p.Value))
}

// And represents the conjunction of two or more conditions.
type And struct {
	Args []Condition
}

func (p *And) precedence() uint { return 1 }

func (p *And) String() string {
	return joinArgs(p.Args, " AND ", p.precedence())
}

// Or represents the disjunction of two or more conditions.
type Or struct {
	Args []Condition
}

func (p *Or) precedence() uint { return 0 }

func (p *Or) String() string {
	return joinArgs(p.Args, " OR ", p.precedence())
}

// Not represents the negation of a condition.
type Not struct {
	Arg Condition
}

func (p *Not) precedence() uint { return 2 }

func (p *Not) String() string {
	// Brackets required for anything binding less tightly than NOT.
	if p.Arg.precedence() < p.precedence() {
		return fmt.Sprintf("NOT (%s)", p.Arg)
	}
	//
	return fmt.Sprintf("NOT %s", p.Arg)
}

// Join the arguments of a connective, bracketing any argument which does not
// bind strictly tighter than the connective itself.  Bracketing arguments of
// equal precedence preserves nesting introduced explicitly by the user, such
// that printing round-trips the tree structure exactly.
func joinArgs(args []Condition, separator string, precedence uint) string {
	var builder strings.Builder
	//
	for i, arg := range args {
		if i != 0 {
			builder.WriteString(separator)
		}
		//
		if arg.precedence() <= precedence {
			builder.WriteString("(")
			builder.WriteString(arg.String())
			builder.WriteString(")")
		} else {
			builder.WriteString(arg.String())
		}
	}
	//
	return builder.String()
}
