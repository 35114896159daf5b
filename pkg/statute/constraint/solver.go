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
	"slices"
	"strings"

	"github.com/statutelang/go-statute/pkg/statute/ast"
)

// Status describes the outcome of a satisfiability check.
type Status uint8

const (
	// SAT indicates a satisfying assignment exists over the configured
	// domains.
	SAT Status = iota
	// UNSAT indicates no satisfying assignment exists over the configured
	// domains.
	UNSAT
	// UNKNOWN indicates the check was inconclusive, e.g. because no solver
	// is configured or the time budget was exhausted.  Callers must never
	// treat UNKNOWN as either definitive answer.
	UNKNOWN
)

func (p Status) String() string {
	switch p {
	case SAT:
		return "sat"
	case UNSAT:
		return "unsat"
	case UNKNOWN:
		return "unknown"
	}
	//
	return "?"
}

// Model is a satisfying assignment, mapping every variable mentioned by the
// checked expression to a value drawn from its domain.  Textual variables
// whose value is constrained away from every mentioned constant receive a
// placeholder distinct from all of them.
type Model map[string]ast.Value

func (p Model) String() string {
	names := make([]string, 0, len(p))
	//
	for name := range p {
		names = append(names, name)
	}
	//
	slices.Sort(names)
	//
	parts := make([]string, len(names))
	//
	for i, name := range names {
		parts[i] = name + " = " + p[name].String()
	}
	//
	return strings.Join(parts, ", ")
}

// SatResult is the outcome of a satisfiability check, along with a witness
// when one was found.
type SatResult struct {
	// Status of the check.
	Status Status
	// Model holds a satisfying assignment when Status is SAT, and is nil
	// otherwise.
	Model Model
	// Abstracted indicates the expression contained atoms outside the
	// decidable fragment (i.e. patterns) which were abstracted as free
	// booleans.  UNSAT answers remain definitive regardless, whilst SAT
	// answers are then only approximate.
	Abstracted bool
}

// Solver decides satisfiability of constraint expressions.  Solvers hold no
// state across checks, hence are safe for concurrent use.
type Solver interface {
	// CheckSat determines whether the given expression admits a satisfying
	// assignment, answering UNKNOWN whenever it cannot decide.
	CheckSat(expr Expr) SatResult
}

// Unsolvable returns the solver used when satisfiability checking is
// disabled.  It answers UNKNOWN for every expression, hence downstream
// analyses skip rather than misreport.
func Unsolvable() Solver {
	return &unsolvable{}
}

type unsolvable struct{}

func (p *unsolvable) CheckSat(expr Expr) SatResult {
	return SatResult{Status: UNKNOWN}
}
