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

import "fmt"

// EffectKind determines the class of legal effect a statute produces.
type EffectKind uint8

// GRANT signals conferral of a right or benefit.
const GRANT EffectKind = 0

// REVOKE signals withdrawal of a previously conferred right or benefit.
const REVOKE EffectKind = 1

// OBLIGATION signals a duty imposed on the entity.
const OBLIGATION EffectKind = 2

// PROHIBITION signals conduct forbidden to the entity.
const PROHIBITION EffectKind = 3

// DISCRETION signals an outcome explicitly deferred to human judgement.
const DISCRETION EffectKind = 4

// String returns the canonical keyword for this effect kind.
func (p EffectKind) String() string {
	switch p {
	case GRANT:
		return "GRANT"
	case REVOKE:
		return "REVOKE"
	case OBLIGATION:
		return "OBLIGATION"
	case PROHIBITION:
		return "PROHIBITION"
	case DISCRETION:
		return "DISCRETION"
	}
	//
	panic("unknown effect kind")
}

// Effect is the opaque payload a statute produces when its preconditions
// hold.  Effects carry no further logic of their own.
type Effect struct {
	Kind        EffectKind
	Description string
}

// String returns the canonical textual representation of this effect.
func (p Effect) String() string {
	return fmt.Sprintf("%s %s", p.Kind, Quote(p.Description))
}
