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
package eval

// PartialBool is the four-valued truth type used whilst walking a condition
// tree.  It extends the booleans with UNKNOWN (a required fact was missing)
// and CONTRADICTION (the known facts cannot be reconciled).  Partial values
// exist only within condition evaluation; they are reduced to a Result at the
// statute boundary.
type PartialBool uint8

// FALSE signals the condition is known not to hold.
const FALSE PartialBool = 0

// TRUE signals the condition is known to hold.
const TRUE PartialBool = 1

// UNKNOWN signals the facts at hand are insufficient to decide the condition
// either way.
const UNKNOWN PartialBool = 2

// CONTRADICTION signals the facts at hand are mutually inconsistent, hence no
// assignment of the missing facts could decide the condition.
const CONTRADICTION PartialBool = 3

// Not returns the negation of this value.  Negation swaps TRUE and FALSE but,
// since knowing nothing about a condition means knowing nothing about its
// complement, fixes UNKNOWN and CONTRADICTION.
func (p PartialBool) Not() PartialBool {
	switch p {
	case TRUE:
		return FALSE
	case FALSE:
		return TRUE
	case UNKNOWN, CONTRADICTION:
		return p
	}
	//
	panic("unknown partial boolean")
}

// And returns the conjunction of this value with another.  FALSE annihilates,
// after which CONTRADICTION dominates, after which UNKNOWN propagates; TRUE is
// the identity.  The operation is commutative and associative, hence folding
// it over the operands of a conjunction is order-independent.
func (p PartialBool) And(other PartialBool) PartialBool {
	switch {
	case p == FALSE || other == FALSE:
		return FALSE
	case p == CONTRADICTION || other == CONTRADICTION:
		return CONTRADICTION
	case p == UNKNOWN || other == UNKNOWN:
		return UNKNOWN
	}
	//
	return TRUE
}

// Or returns the disjunction of this value with another, which is the exact
// dual of And: TRUE annihilates, CONTRADICTION dominates, UNKNOWN propagates
// and FALSE is the identity.
func (p PartialBool) Or(other PartialBool) PartialBool {
	switch {
	case p == TRUE || other == TRUE:
		return TRUE
	case p == CONTRADICTION || other == CONTRADICTION:
		return CONTRADICTION
	case p == UNKNOWN || other == UNKNOWN:
		return UNKNOWN
	}
	//
	return FALSE
}

// String returns a human-readable name for this value.
func (p PartialBool) String() string {
	switch p {
	case FALSE:
		return "false"
	case TRUE:
		return "true"
	case UNKNOWN:
		return "unknown"
	case CONTRADICTION:
		return "contradiction"
	}
	//
	panic("unknown partial boolean")
}
