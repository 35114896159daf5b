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

	"github.com/statutelang/go-statute/pkg/statute/ast"
)

// Encode translates a condition into its propositional abstraction.  The
// translation is total and homomorphic: age, income and date comparisons
// become integer atoms (dates as days since the Unix epoch); attribute
// presence tests become boolean atoms; textual equalities become enum atoms;
// patterns become pattern atoms; connectives carry over directly.
func Encode(condition ast.Condition) Expr {
	switch c := condition.(type) {
	case *ast.Age:
		return &IntAtom{Var: AGE_VARIABLE, Op: c.Op, Value: c.Value}
	case *ast.Income:
		return &IntAtom{Var: INCOME_VARIABLE, Op: c.Op, Value: c.Value}
	case *ast.DateIs:
		return &IntAtom{Var: DATE_VARIABLE, Op: c.Op, Value: c.Value.Days()}
	case *ast.HasAttribute:
		return &BoolAtom{Name: c.Name}
	case *ast.Geographic:
		return encodeGeographic(c)
	case *ast.And:
		return &Conj{Args: encodeAll(c.Args)}
	case *ast.Or:
		return &Disj{Args: encodeAll(c.Args)}
	case *ast.Not:
		return &Neg{Arg: Encode(c.Arg)}
	}
	// Unreachable for parsed conditions.
	panic(fmt.Sprintf("unknown condition %s", condition))
}

func encodeGeographic(c *ast.Geographic) Expr {
	switch {
	case c.Pattern:
		return &PatternAtom{Var: c.Kind, Pattern: c.Value}
	case c.Op == ast.EQUALS:
		return &EnumAtom{Var: c.Kind, Value: c.Value}
	case c.Op == ast.NOT_EQUALS:
		return &Neg{Arg: &EnumAtom{Var: c.Kind, Value: c.Value}}
	}
	// Parsing only admits equality on textual attributes.
	panic(fmt.Sprintf("unsupported textual comparison %s", c))
}

func encodeAll(conditions []ast.Condition) []Expr {
	exprs := make([]Expr, len(conditions))
	//
	for i, c := range conditions {
		exprs[i] = Encode(c)
	}
	//
	return exprs
}
