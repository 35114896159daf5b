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
package constraint

import (
	"fmt"
	"strings"

	"github.com/statutelang/go-statute/pkg/statute/ast"
)

const (
	// AGE_VARIABLE is the integer variable backing age comparisons.
	AGE_VARIABLE = "age"
	// INCOME_VARIABLE is the integer variable backing income comparisons.
	INCOME_VARIABLE = "income"
	// DATE_VARIABLE is the integer variable backing date comparisons,
	// measured in days since the Unix epoch.
	DATE_VARIABLE = "date"
)

// Expr is a propositional abstraction of a condition, suitable for
// satisfiability checking.  Comparison leaves become atoms over implicitly
// typed variables, whilst connectives carry over directly.  Expressions are
// pure data: domains, encodings and the like are the solver's concern.
type Expr interface {
	// String returns a human-readable rendition of this expression.
	String() string
	// isExpr seals the union.
	isExpr()
}

// ============================================================================
// Atoms
// ============================================================================

// IntAtom compares a bounded integer variable against a constant.  Date
// comparisons fall under this atom as well, with both sides measured in days
// since the Unix epoch.
type IntAtom struct {
	// Var identifies the variable being compared.
	Var string
	// Op is the comparison relation.
	Op ast.CmpOp
	// Value is the constant compared against.
	Value int64
}

func (p *IntAtom) isExpr() {}

func (p *IntAtom) String() string {
	if p.Var == DATE_VARIABLE {
		return fmt.Sprintf("%s %s %s", p.Var, p.Op, ast.FromDays(p.Value))
	}
	//
	return fmt.Sprintf("%s %s %d", p.Var, p.Op, p.Value)
}

// BoolAtom tests a boolean variable, such as the presence of an attribute.
type BoolAtom struct {
	// Name identifies the variable being tested.
	Name string
}

func (p *BoolAtom) isExpr() {}

func (p *BoolAtom) String() string {
	return p.Name
}

// EnumAtom tests a textual variable for equality with a constant.  All
// equalities over the same variable are mutually exclusive, since the
// variable holds exactly one value.
type EnumAtom struct {
	// Var identifies the variable being tested.
	Var string
	// Value is the constant compared against.
	Value string
}

func (p *EnumAtom) isExpr() {}

func (p *EnumAtom) String() string {
	return fmt.Sprintf("%s = %q", p.Var, p.Value)
}

// PatternAtom tests a textual variable against a wildcard pattern.  Patterns
// fall outside the decidable fragment, hence solvers abstract them as free
// booleans (identical atoms sharing one boolean).
type PatternAtom struct {
	// Var identifies the variable being tested.
	Var string
	// Pattern is the wildcard pattern matched against.
	Pattern string
}

func (p *PatternAtom) isExpr() {}

func (p *PatternAtom) String() string {
	return fmt.Sprintf("%s LIKE %q", p.Var, p.Pattern)
}

// ============================================================================
// Connectives
// ============================================================================

// Conj is the conjunction of one or more expressions.
type Conj struct {
	Args []Expr
}

func (p *Conj) isExpr() {}

func (p *Conj) String() string {
	return joinExprs(p.Args, " AND ")
}

// Disj is the disjunction of one or more expressions.
type Disj struct {
	Args []Expr
}

func (p *Disj) isExpr() {}

func (p *Disj) String() string {
	return joinExprs(p.Args, " OR ")
}

// Neg is the negation of an expression.
type Neg struct {
	Arg Expr
}

func (p *Neg) isExpr() {}

func (p *Neg) String() string {
	return fmt.Sprintf("NOT %s", p.Arg)
}

func joinExprs(exprs []Expr, separator string) string {
	var builder strings.Builder
	//
	builder.WriteString("(")
	//
	for i, e := range exprs {
		if i != 0 {
			builder.WriteString(separator)
		}
		//
		builder.WriteString(e.String())
	}
	//
	builder.WriteString(")")
	//
	return builder.String()
}
