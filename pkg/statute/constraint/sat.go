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
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/go-air/gini"
	"github.com/go-air/gini/logic"
	"github.com/go-air/gini/z"
	log "github.com/sirupsen/logrus"
	"github.com/statutelang/go-statute/pkg/statute/ast"
)

// SatSolver is a complete decision procedure for the bounded fragment:
// integer comparisons over finite domains, boolean attributes and textual
// equalities.  Expressions are reduced to propositional logic using an order
// encoding (one literal per distinct "x >= k" threshold, chained so that
// each threshold implies those below it) and handed to a SAT backend.
// Thresholds at or below the domain floor fold to true, those above the
// ceiling fold to false, hence unsatisfiable domains are often decided
// without ever running the backend.
type SatSolver struct {
	// Domains over which witnesses are sought.
	bounds Bounds
	// Budget for a single check, with zero meaning unbounded.
	timeout time.Duration
}

// NewSolver constructs a solver deciding satisfiability over the given
// domains.  Variables without an explicit domain receive their default one.
func NewSolver(bounds Bounds) *SatSolver {
	return &SatSolver{bounds: bounds}
}

// WithTimeout bounds the time spent on any single check, with checks
// exceeding the budget answering UNKNOWN.
func (p *SatSolver) WithTimeout(timeout time.Duration) *SatSolver {
	p.timeout = timeout
	return p
}

// CheckSat determines whether the given expression admits a satisfying
// assignment over the configured domains.
func (p *SatSolver) CheckSat(expr Expr) SatResult {
	encoder := newEncoder(p.bounds)
	formula := encoder.encode(expr)
	//
	log.Debugf("checking satisfiability of %s", expr)
	//
	switch formula {
	case encoder.circuit.F:
		// Folded to false during encoding.
		return SatResult{Status: UNSAT, Abstracted: encoder.abstracted}
	case encoder.circuit.T:
		// Folded to true, hence the all-false assignment suffices.
		return SatResult{Status: SAT, Model: encoder.model(falsity), Abstracted: encoder.abstracted}
	}
	//
	g := gini.New()
	encoder.circuit.ToCnf(g)
	g.Assume(formula)
	//
	switch p.solve(g) {
	case 1:
		return SatResult{Status: SAT, Model: encoder.model(g.Value), Abstracted: encoder.abstracted}
	case -1:
		return SatResult{Status: UNSAT, Abstracted: encoder.abstracted}
	default:
		log.Debugf("satisfiability of %s undecided within budget", expr)
		//
		return SatResult{Status: UNKNOWN, Abstracted: encoder.abstracted}
	}
}

// solve runs the backend under the configured budget (if any), answering 1
// for satisfiable, -1 for unsatisfiable and 0 for undecided.
func (p *SatSolver) solve(g *gini.Gini) int {
	if p.timeout > 0 {
		return g.Try(p.timeout)
	}
	//
	return g.Solve()
}

// falsity is the valuation used when the backend was never run.  It is
// consistent with every axiom, since these are implications between
// thresholds and mutual exclusions between equalities.
func falsity(z.Lit) bool { return false }

// ============================================================================
// Encoder
// ============================================================================

// encoder reduces one expression to a literal within a logic circuit,
// keeping hold of the variables encountered so that a model can be read back
// off the backend afterwards.  Variables are recorded in discovery order,
// keeping encodings (and hence witnesses) deterministic.
type encoder struct {
	bounds  Bounds
	circuit *logic.C
	// Integer variables in discovery order.
	intVars []string
	// Distinct thresholds per integer variable, restricted to those within
	// (lo, hi]; sorted ascending once literals are allocated.
	thresholds map[string][]int64
	// Literals per integer variable, aligned with its thresholds.
	geLits map[string][]z.Lit
	// Boolean variables in discovery order.
	boolVars []string
	// Literal per boolean variable.
	boolLits map[string]z.Lit
	// Textual variables in discovery order.
	enumVars []string
	// Constants per textual variable, in discovery order.
	enumValues map[string][]string
	// Literals per textual variable, aligned with its constants.
	enumLits map[string][]z.Lit
	// Free literals for abstracted pattern atoms, keyed by variable and
	// pattern so identical atoms share one literal.
	patternLits map[string]z.Lit
	// Set when any pattern atom was abstracted.
	abstracted bool
}

func newEncoder(bounds Bounds) *encoder {
	return &encoder{
		bounds:      bounds,
		circuit:     logic.NewC(),
		thresholds:  make(map[string][]int64),
		geLits:      make(map[string][]z.Lit),
		boolLits:    make(map[string]z.Lit),
		enumValues:  make(map[string][]string),
		enumLits:    make(map[string][]z.Lit),
		patternLits: make(map[string]z.Lit),
	}
}

// encode reduces the given expression, conjoined with the axioms governing
// its variables, to a single literal.
func (p *encoder) encode(expr Expr) z.Lit {
	p.collect(expr)
	// Axioms must be laid down first, as they allocate the threshold
	// literals translation relies on.
	axioms := p.axioms()
	formula := append(axioms, p.translate(expr))
	//
	return p.circuit.Ands(formula...)
}

// collect determines the variables, thresholds and constants mentioned by an
// expression, allocating literals as it goes.
func (p *encoder) collect(expr Expr) {
	switch e := expr.(type) {
	case *IntAtom:
		if !slices.Contains(p.intVars, e.Var) {
			p.intVars = append(p.intVars, e.Var)
		}
		// Both window endpoints, since equality tests need x >= k and
		// x >= k+1.
		p.addThreshold(e.Var, e.Value)
		//
		if e.Value != math.MaxInt64 {
			p.addThreshold(e.Var, e.Value+1)
		}
	case *BoolAtom:
		if _, ok := p.boolLits[e.Name]; !ok {
			p.boolVars = append(p.boolVars, e.Name)
			p.boolLits[e.Name] = p.circuit.Lit()
		}
	case *EnumAtom:
		p.enumLit(e.Var, e.Value)
	case *PatternAtom:
		key := e.Var + "~" + e.Pattern
		//
		if _, ok := p.patternLits[key]; !ok {
			p.patternLits[key] = p.circuit.Lit()
		}
		//
		p.abstracted = true
	case *Conj:
		for _, arg := range e.Args {
			p.collect(arg)
		}
	case *Disj:
		for _, arg := range e.Args {
			p.collect(arg)
		}
	case *Neg:
		p.collect(e.Arg)
	default:
		panic(fmt.Sprintf("unknown expression %s", expr))
	}
}

// addThreshold records a threshold for a given variable, unless it falls
// outside (lo, hi] in which case the corresponding literal is constant.
func (p *encoder) addThreshold(v string, t int64) {
	bound := p.bounds.Of(v)
	//
	if t <= bound.Lo || t > bound.Hi {
		return
	}
	//
	if !slices.Contains(p.thresholds[v], t) {
		p.thresholds[v] = append(p.thresholds[v], t)
	}
}

// axioms allocates the threshold literals and returns the side conditions
// every assignment must respect: thresholds imply those below them, and
// equalities over a common textual variable are mutually exclusive.
func (p *encoder) axioms() []z.Lit {
	var axioms []z.Lit
	//
	for _, v := range p.intVars {
		slices.Sort(p.thresholds[v])
		//
		lits := make([]z.Lit, len(p.thresholds[v]))
		//
		for i := range lits {
			lits[i] = p.circuit.Lit()
		}
		//
		p.geLits[v] = lits
		//
		for i := 1; i < len(lits); i++ {
			axioms = append(axioms, p.circuit.Or(lits[i].Not(), lits[i-1]))
		}
	}
	//
	for _, v := range p.enumVars {
		lits := p.enumLits[v]
		//
		for i := 0; i < len(lits); i++ {
			for j := i + 1; j < len(lits); j++ {
				axioms = append(axioms, p.circuit.Or(lits[i].Not(), lits[j].Not()))
			}
		}
	}
	//
	return axioms
}

// translate maps an expression onto its literal.  Collection has already
// allocated every literal required.
func (p *encoder) translate(expr Expr) z.Lit {
	switch e := expr.(type) {
	case *IntAtom:
		return p.translateInt(e)
	case *BoolAtom:
		return p.boolLits[e.Name]
	case *EnumAtom:
		return p.enumLit(e.Var, e.Value)
	case *PatternAtom:
		return p.patternLits[e.Var+"~"+e.Pattern]
	case *Conj:
		return p.circuit.Ands(p.translateAll(e.Args)...)
	case *Disj:
		return p.circuit.Ors(p.translateAll(e.Args)...)
	case *Neg:
		return p.translate(e.Arg).Not()
	}
	//
	panic(fmt.Sprintf("unknown expression %s", expr))
}

// translateInt reduces an integer comparison to threshold literals: x >= k
// maps directly, strict and inverted forms negate or shift by one, and
// equality becomes the window x >= k and not x >= k+1.
func (p *encoder) translateInt(e *IntAtom) z.Lit {
	switch e.Op {
	case ast.GREATERTHAN_EQUALS:
		return p.geLit(e.Var, e.Value)
	case ast.GREATERTHAN:
		return p.geNext(e.Var, e.Value)
	case ast.LESSTHAN_EQUALS:
		return p.geNext(e.Var, e.Value).Not()
	case ast.LESSTHAN:
		return p.geLit(e.Var, e.Value).Not()
	case ast.EQUALS:
		return p.circuit.And(p.geLit(e.Var, e.Value), p.geNext(e.Var, e.Value).Not())
	case ast.NOT_EQUALS:
		return p.circuit.Or(p.geLit(e.Var, e.Value).Not(), p.geNext(e.Var, e.Value))
	}
	//
	panic(fmt.Sprintf("unknown comparison %s", e.Op))
}

func (p *encoder) translateAll(args []Expr) []z.Lit {
	lits := make([]z.Lit, len(args))
	//
	for i, arg := range args {
		lits[i] = p.translate(arg)
	}
	//
	return lits
}

// geLit gives the literal for "v >= t", folding thresholds outside (lo, hi]
// into constants.
func (p *encoder) geLit(v string, t int64) z.Lit {
	bound := p.bounds.Of(v)
	//
	switch {
	case t <= bound.Lo:
		return p.circuit.T
	case t > bound.Hi:
		return p.circuit.F
	}
	//
	index, ok := slices.BinarySearch(p.thresholds[v], t)
	if !ok {
		panic(fmt.Sprintf("uncollected threshold %s >= %d", v, t))
	}
	//
	return p.geLits[v][index]
}

// geNext gives the literal for "v > t" as "v >= t+1", guarding the shift
// against overflow.
func (p *encoder) geNext(v string, t int64) z.Lit {
	if t == math.MaxInt64 {
		return p.circuit.F
	}
	//
	return p.geLit(v, t+1)
}

// model reads a satisfying assignment back off a valuation of the literals.
func (p *encoder) model(value func(z.Lit) bool) Model {
	model := make(Model)
	// Integers take the largest threshold known to hold, or else the domain
	// floor.
	for _, v := range p.intVars {
		chosen := p.bounds.Of(v).Lo
		//
		for i, t := range p.thresholds[v] {
			if value(p.geLits[v][i]) {
				chosen = t
			}
		}
		//
		model[v] = intValue(v, chosen)
	}
	// Textual variables take their asserted constant, or else a placeholder
	// distinct from every mentioned constant.
	for _, v := range p.enumVars {
		values, lits := p.enumValues[v], p.enumLits[v]
		chosen := outsideValue(values)
		//
		for i := range lits {
			if value(lits[i]) {
				chosen = values[i]
			}
		}
		//
		model[v] = ast.String(chosen)
	}
	// Boolean attributes.  Integer and textual assignments take precedence
	// when names collide, since a valued attribute is present by definition.
	for _, name := range p.boolVars {
		if _, ok := model[name]; !ok {
			model[name] = ast.Bool(value(p.boolLits[name]))
		}
	}
	//
	return model
}

// enumLit gives the literal for "v = value", allocating it on first sight.
func (p *encoder) enumLit(v, value string) z.Lit {
	if index := slices.Index(p.enumValues[v], value); index >= 0 {
		return p.enumLits[v][index]
	}
	//
	if len(p.enumValues[v]) == 0 {
		p.enumVars = append(p.enumVars, v)
	}
	//
	lit := p.circuit.Lit()
	p.enumValues[v] = append(p.enumValues[v], value)
	p.enumLits[v] = append(p.enumLits[v], lit)
	//
	return lit
}

// intValue renders an integer assignment in the variable's natural type.
func intValue(v string, value int64) ast.Value {
	if v == DATE_VARIABLE {
		return ast.FromDays(value)
	}
	//
	return ast.Int(value)
}

// outsideValue picks a string distinct from every mentioned constant.
func outsideValue(taken []string) string {
	value := "other"
	//
	for slices.Contains(taken, value) {
		value += "?"
	}
	//
	return value
}
