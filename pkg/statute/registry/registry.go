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

// Package registry resolves statute references across load units.  Parsing
// stores supersedes targets and imports unresolved; whoever assembles a
// collection decides how (and whether) they resolve.
package registry

import (
	"cmp"
	"slices"

	"github.com/statutelang/go-statute/pkg/statute/ast"
)

// Registry resolves statute identifiers to statutes.
type Registry interface {
	// Resolve looks a statute up by identifier, returning false when the
	// identifier is unknown.
	Resolve(id ast.StatuteID) (*ast.Statute, bool)
}

// MemRegistry is an in-memory registry keyed by statute identifier, with
// later versions of a statute shadowing earlier ones.
type MemRegistry struct {
	statutes map[ast.StatuteID]*ast.Statute
}

// NewMemRegistry constructs an empty registry.
func NewMemRegistry() *MemRegistry {
	return &MemRegistry{statutes: make(map[ast.StatuteID]*ast.Statute)}
}

// Register records a statute.  When the identifier is already taken, the
// higher version wins; on equal versions the later registration does.
func (p *MemRegistry) Register(statute *ast.Statute) {
	if existing, ok := p.statutes[statute.ID]; ok && existing.Version > statute.Version {
		return
	}
	//
	p.statutes[statute.ID] = statute
}

// Resolve looks a statute up by identifier.
func (p *MemRegistry) Resolve(id ast.StatuteID) (*ast.Statute, bool) {
	statute, ok := p.statutes[id]
	//
	return statute, ok
}

// Statutes returns the registered statutes, ordered by identifier.
func (p *MemRegistry) Statutes() []*ast.Statute {
	statutes := make([]*ast.Statute, 0, len(p.statutes))
	//
	for _, statute := range p.statutes {
		statutes = append(statutes, statute)
	}
	//
	slices.SortFunc(statutes, func(l, r *ast.Statute) int {
		return cmp.Compare(l.ID, r.ID)
	})
	//
	return statutes
}
