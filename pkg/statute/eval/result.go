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
	"fmt"

	"github.com/statutelang/go-statute/pkg/util"
)

// Outcome classifies the result of an evaluation into one of the three legal
// outcome classes.
type Outcome uint8

// DETERMINISTIC signals the statute decides the case automatically, yielding
// its effect.
const DETERMINISTIC Outcome = 0

// JUDICIAL_DISCRETION signals the case requires human judgement; the core
// classifies it and stops.
const JUDICIAL_DISCRETION Outcome = 1

// VOID signals the statute produces no effect for this entity.
const VOID Outcome = 2

// String returns a human-readable name for this outcome class.
func (p Outcome) String() string {
	switch p {
	case DETERMINISTIC:
		return "deterministic"
	case JUDICIAL_DISCRETION:
		return "judicial discretion"
	case VOID:
		return "void"
	}
	//
	panic("unknown outcome")
}

// Result is the three-way outcome of an evaluation.  Exactly one variant is
// ever produced per call: a deterministic value, a deferral to judicial
// discretion, or a void outcome with its reason.  The variant-specific
// accessors panic when applied to the wrong variant, such that misreading a
// result is a defect rather than a silent zero value.
type Result[T any] struct {
	outcome Outcome
	// Payload of a deterministic outcome.
	value T
	// Issue prompting a discretionary outcome.
	issue string
	// Identity of the entity a discretionary outcome concerns.
	contextID string
	// Optional explanatory text accompanying a discretionary outcome.
	hint util.Option[string]
	// Reason for a void outcome.
	reason string
}

// Deterministic constructs an automatically decided outcome carrying a given
// value.
func Deterministic[T any](value T) Result[T] {
	return Result[T]{outcome: DETERMINISTIC, value: value}
}

// JudicialDiscretion constructs a deferral to human judgement, recording the
// undecidable issue, the entity concerned and an optional narrative hint.
func JudicialDiscretion[T any](issue string, contextID string, hint util.Option[string]) Result[T] {
	return Result[T]{outcome: JUDICIAL_DISCRETION, issue: issue, contextID: contextID, hint: hint}
}

// Void constructs an outcome signalling the statute produces no effect, for a
// given reason.
func Void[T any](reason string) Result[T] {
	return Result[T]{outcome: VOID, reason: reason}
}

// Outcome returns the outcome class of this result.
func (p Result[T]) Outcome() Outcome {
	return p.outcome
}

// IsDeterministic checks whether this result was decided automatically.
func (p Result[T]) IsDeterministic() bool {
	return p.outcome == DETERMINISTIC
}

// IsDiscretionary checks whether this result defers to human judgement.
func (p Result[T]) IsDiscretionary() bool {
	return p.outcome == JUDICIAL_DISCRETION
}

// IsVoid checks whether this result is void.
func (p Result[T]) IsVoid() bool {
	return p.outcome == VOID
}

// Value returns the payload of a deterministic outcome.
func (p Result[T]) Value() T {
	if p.outcome != DETERMINISTIC {
		panic("result is not deterministic")
	}
	//
	return p.value
}

// Issue returns the issue prompting a discretionary outcome.
func (p Result[T]) Issue() string {
	if p.outcome != JUDICIAL_DISCRETION {
		panic("result is not discretionary")
	}
	//
	return p.issue
}

// ContextID returns the identity of the entity a discretionary outcome
// concerns.
func (p Result[T]) ContextID() string {
	if p.outcome != JUDICIAL_DISCRETION {
		panic("result is not discretionary")
	}
	//
	return p.contextID
}

// NarrativeHint returns the explanatory text accompanying a discretionary
// outcome, when the statute supplied one.
func (p Result[T]) NarrativeHint() util.Option[string] {
	if p.outcome != JUDICIAL_DISCRETION {
		panic("result is not discretionary")
	}
	//
	return p.hint
}

// Reason returns the reason for a void outcome.
func (p Result[T]) Reason() string {
	if p.outcome != VOID {
		panic("result is not void")
	}
	//
	return p.reason
}

// String returns a human-readable rendition of this result.
func (p Result[T]) String() string {
	switch p.outcome {
	case DETERMINISTIC:
		return fmt.Sprintf("deterministic: %v", p.value)
	case JUDICIAL_DISCRETION:
		if p.hint.HasValue() {
			return fmt.Sprintf("judicial discretion: %s (%s)", p.issue, p.hint.Unwrap())
		}
		//
		return fmt.Sprintf("judicial discretion: %s", p.issue)
	case VOID:
		return fmt.Sprintf("void: %s", p.reason)
	}
	//
	panic("unknown outcome")
}
