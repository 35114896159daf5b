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

// Package eval determines the legal outcome of applying a single statute to a
// single entity.  Evaluation is a pure function of the statute and the facts
// supplied by an evaluation context: it holds no state, performs no I/O, and
// may be invoked concurrently across arbitrarily many (entity, statute)
// pairs.  Missing facts are never errors; they surface as discretionary
// outcomes instead.
package eval

import (
	"cmp"
	"fmt"
	"strings"

	"github.com/statutelang/go-statute/pkg/statute/ast"
	"github.com/statutelang/go-statute/pkg/util"
)

// AGE_ATTRIBUTE names the fact backing AGE conditions.
const AGE_ATTRIBUTE = "age"

// INCOME_ATTRIBUTE names the fact backing INCOME conditions.
const INCOME_ATTRIBUTE = "income"

// DATE_ATTRIBUTE names the fact supplying the evaluation date, against which
// DATE conditions and temporal validity windows are judged.
const DATE_ATTRIBUTE = "date"

// NOT_IN_FORCE is the void reason reported when the evaluation date falls
// outside the statute's validity window.
const NOT_IN_FORCE = "statute not in force"

// PRECONDITIONS_NOT_MET is the void reason reported when the preconditions
// are known not to hold.
const PRECONDITIONS_NOT_MET = "preconditions not met"

// EXCEPTION_APPLIES is the void reason reported when the preconditions hold
// but the exception condition does too.
const EXCEPTION_APPLIES = "exception applies"

// CONTRADICTORY_FACTS is the void reason reported when condition evaluation
// uncovered mutually inconsistent facts.
const CONTRADICTORY_FACTS = "contradictory facts"

// INSUFFICIENT_INFORMATION is the discretionary issue reported when the
// preconditions cannot be decided either way from the facts at hand.
const INSUFFICIENT_INFORMATION = "insufficient information"

// EXCEPTION_UNDECIDED is the discretionary issue reported when the
// preconditions hold but the exception cannot be ruled out from the facts at
// hand.
const EXCEPTION_UNDECIDED = "exception cannot be ruled out"

// Evaluate determines the outcome of applying a given statute to the entity
// described by a given context.  Exactly one outcome is produced per call:
//
//  1. When the context supplies an evaluation date and the statute's validity
//     window excludes it, the statute is void ("not in force").  Without a
//     date fact the window is not consulted.
//  2. When the preconditions hold, any exception condition is consulted: an
//     exception which holds voids the statute, and one which cannot be ruled
//     out defers to judicial discretion.  Otherwise the statute's effect is
//     returned, except that an effect of kind DISCRETION itself defers to
//     judicial discretion.
//  3. Preconditions which are known not to hold void the statute; ones which
//     cannot be decided defer to judicial discretion; and ones resting on
//     contradictory facts void it.
func Evaluate(ctx EvaluationContext, statute *ast.Statute) Result[ast.Effect] {
	// Temporal validity is judged only when the context knows the date.
	if now, ok := dateFact(ctx); ok && !statute.Validity.Covers(now) {
		return Void[ast.Effect](NOT_IN_FORCE)
	}
	//
	switch evalCondition(ctx, statute.Preconditions) {
	case FALSE:
		return Void[ast.Effect](PRECONDITIONS_NOT_MET)
	case UNKNOWN:
		return discretion(ctx, statute, INSUFFICIENT_INFORMATION)
	case CONTRADICTION:
		return Void[ast.Effect](CONTRADICTORY_FACTS)
	}
	// Preconditions hold; the exception can still suppress the effect.
	if statute.Exception != nil {
		switch evalCondition(ctx, statute.Exception) {
		case TRUE:
			return Void[ast.Effect](EXCEPTION_APPLIES)
		case UNKNOWN:
			return discretion(ctx, statute, EXCEPTION_UNDECIDED)
		case CONTRADICTION:
			return Void[ast.Effect](CONTRADICTORY_FACTS)
		}
	}
	// A discretionary effect is a deferral, not a determination.
	if statute.Effect.Kind == ast.DISCRETION {
		return discretion(ctx, statute, statute.Effect.Description)
	}
	//
	return Deterministic(statute.Effect)
}

// discretion constructs a discretionary outcome for a given statute,
// attaching the statute's discretion note (when given) as the narrative hint.
func discretion(ctx EvaluationContext, statute *ast.Statute, issue string) Result[ast.Effect] {
	hint := util.None[string]()
	//
	if statute.DiscretionNote != "" {
		hint = util.Some(statute.DiscretionNote)
	}
	//
	return JudicialDiscretion[ast.Effect](issue, ctx.ID(), hint)
}

// dateFact extracts the evaluation date from a given context, provided one
// was supplied with the expected type.
func dateFact(ctx EvaluationContext) (ast.Date, bool) {
	value, ok := ctx.Attribute(DATE_ATTRIBUTE)
	if !ok {
		return ast.Date{}, false
	}
	//
	date, ok := value.(ast.Date)
	//
	return date, ok
}

// ==================================================================
// Condition evaluation
// ==================================================================

// evalCondition walks a condition tree, folding the four-valued operations
// over the facts supplied by the context.  Leaves whose backing fact is
// missing, or carries an unusable type, evaluate to UNKNOWN rather than
// raising an error: insufficient information is an expected outcome, not a
// fault.
func evalCondition(ctx EvaluationContext, condition ast.Condition) PartialBool {
	switch c := condition.(type) {
	case *ast.Age:
		return evalIntLeaf(ctx, AGE_ATTRIBUTE, c.Op, c.Value)
	case *ast.Income:
		return evalIntLeaf(ctx, INCOME_ATTRIBUTE, c.Op, c.Value)
	case *ast.DateIs:
		return evalDateLeaf(ctx, c)
	case *ast.HasAttribute:
		return evalHasLeaf(ctx, c)
	case *ast.Geographic:
		return evalGeographicLeaf(ctx, c)
	case *ast.And:
		result := TRUE
		//
		for _, arg := range c.Args {
			result = result.And(evalCondition(ctx, arg))
		}
		//
		return result
	case *ast.Or:
		result := FALSE
		//
		for _, arg := range c.Args {
			result = result.Or(evalCondition(ctx, arg))
		}
		//
		return result
	case *ast.Not:
		return evalCondition(ctx, c.Arg).Not()
	}
	//
	panic(fmt.Sprintf("unknown condition %s", condition))
}

func evalIntLeaf(ctx EvaluationContext, name string, op ast.CmpOp, bound int64) PartialBool {
	value, ok := ctx.Attribute(name)
	if !ok {
		return UNKNOWN
	}
	//
	number, ok := value.(ast.Int)
	if !ok {
		return UNKNOWN
	}
	//
	return fromBool(op.Holds(cmp.Compare(int64(number), bound)))
}

func evalDateLeaf(ctx EvaluationContext, c *ast.DateIs) PartialBool {
	date, ok := dateFact(ctx)
	if !ok {
		return UNKNOWN
	}
	//
	return fromBool(c.Op.Holds(date.Compare(c.Value)))
}

// evalHasLeaf determines whether a given attribute holds.  A boolean fact
// decides the leaf directly; a fact of any other type witnesses the
// attribute's presence; an absent fact leaves the leaf undecided (never
// false).
func evalHasLeaf(ctx EvaluationContext, c *ast.HasAttribute) PartialBool {
	value, ok := ctx.Attribute(c.Name)
	if !ok {
		return UNKNOWN
	}
	//
	if flag, isBool := value.(ast.Bool); isBool {
		return fromBool(bool(flag))
	}
	//
	return TRUE
}

func evalGeographicLeaf(ctx EvaluationContext, c *ast.Geographic) PartialBool {
	value, ok := ctx.Attribute(c.Kind)
	if !ok {
		return UNKNOWN
	}
	//
	text, ok := value.(ast.String)
	if !ok {
		return UNKNOWN
	}
	//
	if c.Pattern {
		return fromBool(matchPattern(string(text), c.Value))
	}
	//
	return fromBool(c.Op.Holds(strings.Compare(string(text), c.Value)))
}

func fromBool(b bool) PartialBool {
	if b {
		return TRUE
	}
	//
	return FALSE
}

// matchPattern determines whether a string matches an SQL-style pattern,
// where '%' matches any run of characters and '_' matches exactly one.
func matchPattern(s string, pattern string) bool {
	return matchRunes([]rune(s), []rune(pattern))
}

func matchRunes(s []rune, p []rune) bool {
	if len(p) == 0 {
		return len(s) == 0
	}
	//
	switch p[0] {
	case '%':
		for i := 0; i <= len(s); i++ {
			if matchRunes(s[i:], p[1:]) {
				return true
			}
		}
		//
		return false
	case '_':
		return len(s) > 0 && matchRunes(s[1:], p[1:])
	}
	//
	return len(s) > 0 && s[0] == p[0] && matchRunes(s[1:], p[1:])
}
