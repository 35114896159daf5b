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
	"slices"

	"github.com/statutelang/go-statute/pkg/statute/ast"
)

// referenceGraph captures the explicit supersedes links within a statute
// collection.  Only explicit links induce edges: attribute references are
// not guaranteed resolvable at this layer, hence never contribute.
type referenceGraph struct {
	statutes []*ast.Statute
	// edges[i] holds the indices of the statutes superseded by statute i.
	edges [][]int
	// unresolved[i] holds the supersedes targets of statute i naming no
	// statute in the collection.
	unresolved [][]ast.StatuteID
}

// newReferenceGraph builds the supersedes graph over a statute collection.
func newReferenceGraph(statutes []*ast.Statute) *referenceGraph {
	indices := make(map[ast.StatuteID]int, len(statutes))
	//
	for i, s := range statutes {
		indices[s.ID] = i
	}
	//
	graph := &referenceGraph{
		statutes:   statutes,
		edges:      make([][]int, len(statutes)),
		unresolved: make([][]ast.StatuteID, len(statutes)),
	}
	//
	for i, s := range statutes {
		for _, target := range s.Supersedes {
			if j, ok := indices[target]; ok {
				graph.edges[i] = append(graph.edges[i], j)
			} else {
				graph.unresolved[i] = append(graph.unresolved[i], target)
			}
		}
	}
	//
	return graph
}

// cycles determines the cyclic components of the graph: every strongly
// connected component of two or more statutes, along with every statute
// superseding itself.
func (p *referenceGraph) cycles() [][]int {
	var cycles [][]int
	//
	for _, component := range p.components() {
		selfloop := len(component) == 1 && slices.Contains(p.edges[component[0]], component[0])
		//
		if len(component) >= 2 || selfloop {
			cycles = append(cycles, component)
		}
	}
	//
	return cycles
}

// components determines the strongly connected components of the graph,
// using Tarjan's algorithm.
func (p *referenceGraph) components() [][]int {
	t := &tarjan{
		graph:   p,
		indices: make([]uint, len(p.statutes)),
		lowlink: make([]uint, len(p.statutes)),
		onStack: make([]bool, len(p.statutes)),
	}
	//
	for v := range p.statutes {
		if t.indices[v] == 0 {
			t.visit(v)
		}
	}
	//
	return t.components
}

// tarjan holds the working state of Tarjan's strongly connected components
// algorithm.  Discovery indices start at one, with zero marking unvisited
// statutes.
type tarjan struct {
	graph      *referenceGraph
	indices    []uint
	lowlink    []uint
	onStack    []bool
	stack      []int
	next       uint
	components [][]int
}

func (p *tarjan) visit(v int) {
	p.next++
	p.indices[v] = p.next
	p.lowlink[v] = p.next
	p.stack = append(p.stack, v)
	p.onStack[v] = true
	//
	for _, w := range p.graph.edges[v] {
		if p.indices[w] == 0 {
			p.visit(w)
			p.lowlink[v] = min(p.lowlink[v], p.lowlink[w])
		} else if p.onStack[w] {
			p.lowlink[v] = min(p.lowlink[v], p.indices[w])
		}
	}
	// Root of a component unwinds the stack down to itself.
	if p.lowlink[v] == p.indices[v] {
		var component []int
		//
		for {
			w := p.stack[len(p.stack)-1]
			p.stack = p.stack[:len(p.stack)-1]
			p.onStack[w] = false
			component = append(component, w)
			//
			if w == v {
				break
			}
		}
		//
		p.components = append(p.components, component)
	}
}
