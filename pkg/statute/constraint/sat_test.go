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
	"testing"
	"time"

	"github.com/statutelang/go-statute/pkg/statute/ast"
	"github.com/statutelang/go-statute/pkg/statute/eval"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Sat_01(t *testing.T) {
	model := checkSat(t, &ast.Age{Op: ast.GREATERTHAN_EQUALS, Value: 18})
	assert.Contains(t, model, AGE_VARIABLE)
}

// Completeness corner: between two adjacent integers there is nothing.
func Test_Sat_02(t *testing.T) {
	checkUnsat(t, &ast.And{Args: []ast.Condition{
		&ast.Income{Op: ast.GREATERTHAN, Value: 5},
		&ast.Income{Op: ast.LESSTHAN, Value: 7},
		&ast.Income{Op: ast.NOT_EQUALS, Value: 6},
	}})
}

// Demands beyond the domain ceiling are unsatisfiable, whilst the ceiling
// itself remains reachable.
func Test_Sat_03(t *testing.T) {
	checkUnsat(t, &ast.Age{Op: ast.GREATERTHAN_EQUALS, Value: 200})
	checkUnsat(t, &ast.Age{Op: ast.GREATERTHAN, Value: 150})
	//
	model := checkSat(t, &ast.Age{Op: ast.GREATERTHAN_EQUALS, Value: 150})
	assert.Equal(t, ast.Int(150), model[AGE_VARIABLE])
}

func Test_Sat_04(t *testing.T) {
	checkUnsat(t, &ast.And{Args: []ast.Condition{
		&ast.Age{Op: ast.GREATERTHAN_EQUALS, Value: 18},
		&ast.Age{Op: ast.LESSTHAN, Value: 16},
	}})
}

// Equality pins its variable exactly.
func Test_Sat_05(t *testing.T) {
	model := checkSat(t, &ast.Age{Op: ast.EQUALS, Value: 42})
	assert.Equal(t, ast.Int(42), model[AGE_VARIABLE])
}

// Inequality against the domain floor clamps onto the next value up.
func Test_Sat_06(t *testing.T) {
	checkUnsat(t, &ast.And{Args: []ast.Condition{
		&ast.Age{Op: ast.NOT_EQUALS, Value: 0},
		&ast.Age{Op: ast.LESSTHAN, Value: 1},
	}})
}

func Test_Sat_07(t *testing.T) {
	checkUnsat(t, &ast.And{Args: []ast.Condition{
		&ast.DateIs{Op: ast.GREATERTHAN_EQUALS, Value: ast.NewDate(2024, 1, 1)},
		&ast.DateIs{Op: ast.LESSTHAN_EQUALS, Value: ast.NewDate(2023, 12, 31)},
	}})
	//
	model := checkSat(t, &ast.DateIs{Op: ast.EQUALS, Value: ast.NewDate(2024, 6, 15)})
	assert.Equal(t, ast.NewDate(2024, 6, 15), model[DATE_VARIABLE])
}

// A textual variable holds exactly one value, hence equalities over it are
// mutually exclusive; distinct variables are independent.
func Test_Sat_08(t *testing.T) {
	eu := &ast.Geographic{Kind: "region", Op: ast.EQUALS, Value: "EU"}
	us := &ast.Geographic{Kind: "region", Op: ast.EQUALS, Value: "US"}
	fr := &ast.Geographic{Kind: "country", Op: ast.EQUALS, Value: "FR"}
	//
	checkUnsat(t, &ast.And{Args: []ast.Condition{eu, us}})
	checkSat(t, &ast.And{Args: []ast.Condition{eu, fr}})
}

// A negated equality is witnessed by some other value.
func Test_Sat_09(t *testing.T) {
	model := checkSat(t, &ast.Not{Arg: &ast.Geographic{Kind: "region", Op: ast.EQUALS, Value: "EU"}})
	assert.NotEqual(t, ast.String("EU"), model["region"])
}

func Test_Sat_10(t *testing.T) {
	citizen := &ast.HasAttribute{Name: "citizen"}
	//
	checkUnsat(t, &ast.And{Args: []ast.Condition{citizen, &ast.Not{Arg: citizen}}})
	//
	model := checkSat(t, citizen)
	assert.Equal(t, ast.Bool(true), model["citizen"])
}

// Patterns are abstracted as free booleans: satisfiable alone (flagged as
// approximate), yet still inconsistent with their own negation.
func Test_Sat_11(t *testing.T) {
	solver := NewSolver(DefaultBounds())
	like := &ast.Geographic{Kind: "postcode", Op: ast.EQUALS, Value: "SW1%", Pattern: true}
	//
	result := solver.CheckSat(Encode(like))
	assert.Equal(t, SAT, result.Status)
	assert.True(t, result.Abstracted)
	//
	result = solver.CheckSat(Encode(&ast.And{Args: []ast.Condition{like, &ast.Not{Arg: like}}}))
	assert.Equal(t, UNSAT, result.Status)
}

// Tighter domains rule candidates out.
func Test_Sat_12(t *testing.T) {
	bounds, err := ParseBounds([]byte("age: {lo: 0, hi: 16}"))
	require.NoError(t, err)
	//
	adult := &ast.Age{Op: ast.GREATERTHAN_EQUALS, Value: 18}
	//
	assert.Equal(t, UNSAT, NewSolver(bounds).CheckSat(Encode(adult)).Status)
	assert.Equal(t, SAT, NewSolver(DefaultBounds()).CheckSat(Encode(adult)).Status)
}

// Witnesses cover every variable a mixed condition mentions.
func Test_Sat_13(t *testing.T) {
	condition := &ast.And{Args: []ast.Condition{
		&ast.Or{Args: []ast.Condition{
			&ast.Age{Op: ast.LESSTHAN, Value: 5},
			&ast.Age{Op: ast.GREATERTHAN, Value: 100},
		}},
		&ast.HasAttribute{Name: "dependent"},
		&ast.Geographic{Kind: "region", Op: ast.EQUALS, Value: "EU"},
	}}
	//
	model := checkSat(t, condition)
	//
	assert.Contains(t, model, AGE_VARIABLE)
	assert.Contains(t, model, "dependent")
	assert.Contains(t, model, "region")
}

// Conditions folding to constants are decided without running the backend,
// and still produce a witness.
func Test_Sat_14(t *testing.T) {
	checkUnsat(t, &ast.Age{Op: ast.LESSTHAN, Value: 0})
	//
	model := checkSat(t, &ast.Age{Op: ast.GREATERTHAN_EQUALS, Value: 0})
	assert.Equal(t, ast.Int(0), model[AGE_VARIABLE])
}

// A time budget leaves easy instances decidable.
func Test_Sat_15(t *testing.T) {
	solver := NewSolver(DefaultBounds()).WithTimeout(time.Minute)
	//
	result := solver.CheckSat(Encode(&ast.Age{Op: ast.EQUALS, Value: 21}))
	assert.Equal(t, SAT, result.Status)
}

func Test_Sat_16(t *testing.T) {
	result := Unsolvable().CheckSat(Encode(&ast.Age{Op: ast.EQUALS, Value: 21}))
	//
	assert.Equal(t, UNKNOWN, result.Status)
	assert.Nil(t, result.Model)
}

// ==================================================================
// Helpers
// ==================================================================

// checkSat runs the default solver over a given condition, expecting a
// witness, and (for exact encodings) checks the witness actually satisfies
// the condition by evaluating the latter over the former.
func checkSat(t *testing.T, condition ast.Condition) Model {
	t.Helper()
	//
	result := NewSolver(DefaultBounds()).CheckSat(Encode(condition))
	require.Equal(t, SAT, result.Status)
	require.NotNil(t, result.Model)
	//
	if !result.Abstracted {
		checkWitness(t, condition, result.Model)
	}
	//
	return result.Model
}

func checkUnsat(t *testing.T, condition ast.Condition) {
	t.Helper()
	//
	result := NewSolver(DefaultBounds()).CheckSat(Encode(condition))
	require.Equal(t, UNSAT, result.Status, "unexpected decision for %s", condition)
	require.Nil(t, result.Model)
}

// checkWitness evaluates a condition over a witness's assignments, via a
// synthetic statute granting an effect exactly when the condition holds.
func checkWitness(t *testing.T, condition ast.Condition, model Model) {
	t.Helper()
	//
	statute := &ast.Statute{
		ID:            "w_1",
		Title:         "Witness check",
		Version:       1,
		Preconditions: condition,
		Effect:        ast.Effect{Kind: ast.GRANT, Description: "witnessed"},
	}
	//
	result := eval.Evaluate(eval.NewFacts("witness", model), statute)
	require.True(t, result.IsDeterministic(), "witness {%s} does not satisfy %s", model, condition)
}
