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

// Package verify provides static analyses over statute collections: cycle
// detection over explicit supersedes links, dead-statute detection and
// pairwise contradiction detection, with the latter two delegating
// satisfiability questions to a pluggable solver.
package verify

import (
	"context"
	"fmt"
	"slices"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/statutelang/go-statute/pkg/statute/ast"
	"github.com/statutelang/go-statute/pkg/statute/constraint"
)

// Config determines the optional capabilities verification draws on.
type Config struct {
	// Solver decides satisfiability of precondition encodings.  Leaving it
	// unset (or configuring the Unsolvable solver) degrades the dead-statute
	// and contradiction passes to conservative no-ops.
	Solver constraint.Solver
}

// Result of verifying a statute collection.
type Result struct {
	// Passed is true iff no pass reported anything.
	Passed bool
	// Findings raised against the collection, ordered by code and then by
	// the statutes involved.
	Findings []Finding
}

// Verify runs the static analyses over a statute collection: circular and
// unresolved supersedes references, dead statutes, and pairwise effect
// contradictions.  Verification never mutates its input and owns all of its
// working state, hence concurrent calls are independent.  Cancelling the
// context stops the analysis between statutes (never mid-solve), returning
// the findings collected so far alongside the cancellation error.
func Verify(ctx context.Context, statutes []*ast.Statute, config Config) (Result, error) {
	v := &verifier{statutes: statutes, solver: config.solver()}
	//
	log.Debugf("verifying %d statutes", len(statutes))
	//
	v.checkReferences()
	//
	if err := v.checkLiveness(ctx); err != nil {
		return v.result(), err
	}
	//
	if err := v.checkContradictions(ctx); err != nil {
		return v.result(), err
	}
	//
	return v.result(), nil
}

func (p Config) solver() constraint.Solver {
	if p.Solver != nil {
		return p.Solver
	}
	//
	return constraint.Unsolvable()
}

// verifier holds the working state of a single verification run.
type verifier struct {
	statutes []*ast.Statute
	solver   constraint.Solver
	findings []Finding
}

func (p *verifier) result() Result {
	sortFindings(p.findings)
	//
	return Result{Passed: len(p.findings) == 0, Findings: p.findings}
}

func (p *verifier) report(finding Finding) {
	log.Debugf("finding %s", finding.String())
	p.findings = append(p.findings, finding)
}

// ============================================================================
// Reference analysis
// ============================================================================

// checkReferences reports every supersedes cycle, along with every
// supersedes target naming no statute in the collection.
func (p *verifier) checkReferences() {
	graph := newReferenceGraph(p.statutes)
	//
	for _, cycle := range graph.cycles() {
		ids := make([]ast.StatuteID, len(cycle))
		//
		for i, v := range cycle {
			ids[i] = p.statutes[v].ID
		}
		//
		slices.Sort(ids)
		//
		p.report(Finding{
			Code:     CIRCULAR_REFERENCE,
			Statutes: ids,
			Message:  "statutes supersede one another in a cycle",
		})
	}
	//
	for i, targets := range graph.unresolved {
		for _, target := range targets {
			p.report(Finding{
				Code:     UNKNOWN_REFERENCE,
				Statutes: []ast.StatuteID{p.statutes[i].ID},
				Message:  fmt.Sprintf("supersedes %s, which is not in the collection", target),
			})
		}
	}
}

// ============================================================================
// Liveness analysis
// ============================================================================

// checkLiveness reports every statute whose preconditions can never hold
// (net of its exception) over the configured domains.  Inconclusive solver
// answers are skipped, never misreported.
func (p *verifier) checkLiveness(ctx context.Context) error {
	for _, s := range p.statutes {
		if err := ctx.Err(); err != nil {
			return err
		}
		//
		result := p.solver.CheckSat(liveEncoding(s))
		//
		if result.Status == constraint.UNSAT {
			p.report(Finding{
				Code:     DEAD_STATUTE,
				Statutes: []ast.StatuteID{s.ID},
				Message:  "preconditions are unsatisfiable over the configured domains",
			})
		}
	}
	//
	return nil
}

// liveEncoding gives the constraint a live statute must admit: its
// preconditions holding with its exception ruled out.
func liveEncoding(s *ast.Statute) constraint.Expr {
	preconditions := constraint.Encode(s.Preconditions)
	//
	if s.Exception == nil {
		return preconditions
	}
	//
	return &constraint.Conj{Args: []constraint.Expr{
		preconditions,
		&constraint.Neg{Arg: constraint.Encode(s.Exception)},
	}}
}

// ============================================================================
// Contradiction analysis
// ============================================================================

// checkContradictions reports every pair of statutes whose effects collide
// on some jointly reachable entity, i.e. whose effects are mutually
// exclusive whilst their precondition conjunction is satisfiable.
func (p *verifier) checkContradictions(ctx context.Context) error {
	for i := 0; i < len(p.statutes); i++ {
		for j := i + 1; j < len(p.statutes); j++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			//
			p.checkPair(p.statutes[i], p.statutes[j])
		}
	}
	//
	return nil
}

func (p *verifier) checkPair(a, b *ast.Statute) {
	demanding, prohibiting, ok := conflict(a, b)
	if !ok {
		return
	}
	//
	joint := &constraint.Conj{Args: []constraint.Expr{
		constraint.Encode(a.Preconditions),
		constraint.Encode(b.Preconditions),
	}}
	//
	result := p.solver.CheckSat(joint)
	if result.Status != constraint.SAT {
		return
	}
	//
	verb := "grants"
	if demanding.Effect.Kind == ast.OBLIGATION {
		verb = "obliges"
	}
	//
	p.report(Finding{
		Code:     CONTRADICTION,
		Statutes: []ast.StatuteID{demanding.ID, prohibiting.ID},
		Message: fmt.Sprintf("%s %s %q whilst %s prohibits it", demanding.ID, verb,
			demanding.Effect.Description, prohibiting.ID),
		Witness:     result.Model,
		Approximate: result.Abstracted,
	})
}

// conflict determines whether two statutes carry mutually exclusive effects:
// a grant or obligation on one side, and a prohibition of the same described
// right on the other.  Descriptions are compared up to case and whitespace.
func conflict(a, b *ast.Statute) (demanding, prohibiting *ast.Statute, ok bool) {
	if normalizeDescription(a.Effect.Description) != normalizeDescription(b.Effect.Description) {
		return nil, nil, false
	}
	//
	switch {
	case demands(a.Effect.Kind) && b.Effect.Kind == ast.PROHIBITION:
		return a, b, true
	case demands(b.Effect.Kind) && a.Effect.Kind == ast.PROHIBITION:
		return b, a, true
	}
	//
	return nil, nil, false
}

// demands holds for effect kinds asserting an entitlement or duty, i.e.
// those a prohibition can collide with.
func demands(kind ast.EffectKind) bool {
	return kind == ast.GRANT || kind == ast.OBLIGATION
}

// normalizeDescription reduces an effect description to its comparable form,
// folding case and collapsing whitespace.
func normalizeDescription(description string) string {
	return strings.ToLower(strings.Join(strings.Fields(description), " "))
}
