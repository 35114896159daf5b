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

	"github.com/statutelang/go-statute/pkg/util"
)

// StatuteID identifies a statute within a load unit.  Identifiers are opaque
// at this level; cross-unit resolution is the responsibility of an external
// registry.
type StatuteID string

// Node provides a common interface for all AST nodes.  Amongst other things,
// this allows nodes to be keyed against their originating source text for
// error reporting.
type Node interface {
	// Convert this node into its canonical textual representation.  This is
	// used both for formatting source files and for debugging.
	String() string
}

// Document represents the contents of a single source file, that is a
// sequence of import declarations followed by any number of statute
// declarations.
type Document struct {
	Imports  []*Import
	Statutes []*Statute
}

// String returns the canonical textual representation of this document.
// Reparsing the returned text yields a structurally identical document.
func (p *Document) String() string {
	var builder strings.Builder
	//
	for _, imp := range p.Imports {
		builder.WriteString(imp.String())
		builder.WriteString("\n")
	}
	//
	if len(p.Imports) > 0 && len(p.Statutes) > 0 {
		builder.WriteString("\n")
	}
	//
	for i, s := range p.Statutes {
		if i != 0 {
			builder.WriteString("\n")
		}
		//
		builder.WriteString(s.String())
		builder.WriteString("\n")
	}
	//
	return builder.String()
}

// Import represents a reference to another load unit, optionally bound to a
// local alias.  Imports are stored unresolved, since the parser never
// consults a registry.
type Import struct {
	Path  string
	Alias string
}

// String returns the canonical textual representation of this import.
func (p *Import) String() string {
	if p.Alias != "" {
		return fmt.Sprintf("IMPORT %s AS %s", Quote(p.Path), p.Alias)
	}
	//
	return fmt.Sprintf("IMPORT %s", Quote(p.Path))
}

// TemporalValidity determines the window of time within which a given statute
// is in force.  Either or both ends of the window can be left open.  The
// parser enforces that, when both ends are present, the effective date does
// not fall after the expiry date.
type TemporalValidity struct {
	Effective util.Option[Date]
	Expiry    util.Option[Date]
}

// Covers checks whether a given date falls within this validity window.  Open
// ends of the window cover all dates on that side.
func (p TemporalValidity) Covers(date Date) bool {
	if p.Effective.HasValue() && date.Compare(p.Effective.Unwrap()) < 0 {
		return false
	}
	//
	if p.Expiry.HasValue() && date.Compare(p.Expiry.Unwrap()) > 0 {
		return false
	}
	//
	return true
}

// Statute represents a single rule unit: the preconditions under which it
// applies, the effect it produces, and the metadata describing where and when
// it is in force.  Statutes are immutable once constructed by the parser;
// amendments are separate statutes linked via Supersedes, never in-place
// edits.
type Statute struct {
	// Unique identifier within a load unit.
	ID StatuteID
	// Human-readable title.
	Title string
	// Jurisdiction tag (e.g. "US-Federal").  Empty when unspecified.
	Jurisdiction string
	// Monotonic version number, defaulting to 1.
	Version uint
	// Window of time within which this statute is in force.
	Validity TemporalValidity
	// Root of the predicate tree guarding the effect.
	Preconditions Condition
	// The effect produced when the preconditions hold.
	Effect Effect
	// Optional exception condition which, when it holds, suppresses the
	// effect.  Nil when absent.
	Exception Condition
	// Optional explanatory text surfaced when the outcome is discretionary.
	DiscretionNote string
	// Identifiers of statutes this one supersedes.  Stored unresolved.
	Supersedes []StatuteID
	// Indicates this statute was declared as an AMENDMENT block, in which
	// case it must supersede at least one statute.
	Amendment bool
}

const indent = "    "

// String returns the canonical textual representation of this statute.
// Metadata clauses are printed in a fixed order regardless of the order in
// which they were declared, and clauses holding their default value are
// omitted.
func (p *Statute) String() string {
	var builder strings.Builder
	//
	if p.Amendment {
		builder.WriteString("AMENDMENT ")
	} else {
		builder.WriteString("STATUTE ")
	}
	//
	builder.WriteString(string(p.ID))
	builder.WriteString(" : ")
	builder.WriteString(Quote(p.Title))
	builder.WriteString(" {\n")
	//
	if p.Jurisdiction != "" {
		fmt.Fprintf(&builder, "%sJURISDICTION %s\n", indent, Quote(p.Jurisdiction))
	}
	//
	if p.Version != 1 {
		fmt.Fprintf(&builder, "%sVERSION %d\n", indent, p.Version)
	}
	//
	if p.Validity.Effective.HasValue() {
		fmt.Fprintf(&builder, "%sEFFECTIVE_DATE %s\n", indent, p.Validity.Effective.Unwrap())
	}
	//
	if p.Validity.Expiry.HasValue() {
		fmt.Fprintf(&builder, "%sEXPIRY_DATE %s\n", indent, p.Validity.Expiry.Unwrap())
	}
	//
	if len(p.Supersedes) > 0 {
		ids := make([]string, len(p.Supersedes))
		for i, id := range p.Supersedes {
			ids[i] = string(id)
		}
		//
		fmt.Fprintf(&builder, "%sSUPERSEDES %s\n", indent, strings.Join(ids, ", "))
	}
	//
	fmt.Fprintf(&builder, "%sWHEN %s\n", indent, p.Preconditions)
	fmt.Fprintf(&builder, "%sTHEN %s\n", indent, p.Effect)
	//
	if p.Exception != nil {
		fmt.Fprintf(&builder, "%sEXCEPTION WHEN %s\n", indent, p.Exception)
	}
	//
	if p.DiscretionNote != "" {
		fmt.Fprintf(&builder, "%sDISCRETION %s\n", indent, Quote(p.DiscretionNote))
	}
	//
	builder.WriteString("}")
	//
	return builder.String()
}

// Quote returns a given string in quoted form, such that reparsing the result
// as a string literal yields the original.  Only the quote and backslash
// characters require escaping.
func Quote(s string) string {
	var builder strings.Builder
	//
	builder.WriteRune('"')
	//
	for _, r := range s {
		if r == '"' || r == '\\' {
			builder.WriteRune('\\')
		}
		//
		builder.WriteRune(r)
	}
	//
	builder.WriteRune('"')
	//
	return builder.String()
}
