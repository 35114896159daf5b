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

import (
	"github.com/statutelang/go-statute/pkg/statute/ast"
)

// EvaluationContext supplies the facts known about a single entity, and is
// the only capability the evaluator consumes.  Attribute lookups must be
// side-effect free and must return promptly; implementations performing I/O
// are responsible for their own timeouts.  A missing attribute is not an
// error, it simply leaves the corresponding conditions undecided.
//
// Two attribute names carry meaning to the evaluator itself: "age" and
// "income" (both Int) back the AGE and INCOME subjects, whilst "date" (Date)
// supplies the evaluation date against which DATE conditions and temporal
// validity windows are judged.
type EvaluationContext interface {
	// ID identifies the entity being evaluated, as surfaced within
	// discretionary outcomes.
	ID() string
	// Attribute returns the value of a named fact, or false when the fact is
	// not known.
	Attribute(name string) (ast.Value, bool)
}

// Facts is the simplest evaluation context: an identifier plus an in-memory
// attribute map.  A Facts value is immutable once constructed, hence safe for
// concurrent use across any number of evaluations.
type Facts struct {
	id         string
	attributes map[string]ast.Value
}

// NewFacts constructs an evaluation context from a given attribute map.  The
// map is copied, such that later mutation by the caller cannot leak into
// evaluations already underway.
func NewFacts(id string, attributes map[string]ast.Value) *Facts {
	copied := make(map[string]ast.Value, len(attributes))
	//
	for name, value := range attributes {
		copied[name] = value
	}
	//
	return &Facts{id, copied}
}

// ID returns the entity identifier.
func (p *Facts) ID() string {
	return p.id
}

// Attribute returns the value of a named fact, or false when the fact is not
// known.
func (p *Facts) Attribute(name string) (ast.Value, bool) {
	value, ok := p.attributes[name]
	return value, ok
}
