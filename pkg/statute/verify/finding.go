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
package verify

import (
	"fmt"
	"slices"
	"strings"

	"github.com/statutelang/go-statute/pkg/statute/ast"
	"github.com/statutelang/go-statute/pkg/statute/constraint"
)

const (
	// CIRCULAR_REFERENCE indicates a set of statutes which supersede one
	// another in a cycle, leaving none of them authoritative.
	CIRCULAR_REFERENCE = "circular-reference"
	// DEAD_STATUTE indicates a statute whose preconditions can never hold
	// (net of its exception) over the configured domains.
	DEAD_STATUTE = "dead-statute"
	// CONTRADICTION indicates a pair of statutes whose effects collide on
	// some jointly reachable entity.
	CONTRADICTION = "contradiction"
	// UNKNOWN_REFERENCE indicates a supersedes target naming no statute in
	// the collection.
	UNKNOWN_REFERENCE = "unknown-reference"
)

// Finding is a single diagnostic raised against a statute collection.  A
// finding is not an error: it describes a defect in the statutes themselves,
// in a machine-checkable form.
type Finding struct {
	// Code is the machine-checkable reason for this finding.
	Code string
	// Statutes names the statutes involved.  For circular references these
	// are the members of the cycle (sorted); for contradictions, the two
	// colliding statutes.
	Statutes []ast.StatuteID
	// Message is a human-readable explanation.
	Message string
	// Witness optionally carries a satisfying assignment demonstrating the
	// finding, i.e. facts under which the defect manifests.
	Witness constraint.Model
	// Approximate indicates the finding rests on an abstraction (patterns
	// treated as free booleans), hence its witness may not be realisable.
	Approximate bool
}

func (p *Finding) String() string {
	return fmt.Sprintf("[%s] %s: %s", p.Code, joinStatutes(p.Statutes), p.Message)
}

func joinStatutes(ids []ast.StatuteID) string {
	parts := make([]string, len(ids))
	//
	for i, id := range ids {
		parts[i] = string(id)
	}
	//
	return strings.Join(parts, ", ")
}

// sortFindings orders findings by code, then by the statutes involved, then
// by message, so that reported content never depends on input ordering.
func sortFindings(findings []Finding) {
	slices.SortFunc(findings, func(l, r Finding) int {
		if c := strings.Compare(l.Code, r.Code); c != 0 {
			return c
		}
		//
		if c := slices.Compare(l.Statutes, r.Statutes); c != 0 {
			return c
		}
		//
		return strings.Compare(l.Message, r.Message)
	})
}
