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

	"github.com/statutelang/go-statute/pkg/statute/ast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Bounds_01(t *testing.T) {
	bounds := DefaultBounds()
	//
	assert.Equal(t, Bound{Lo: 0, Hi: 150}, bounds[AGE_VARIABLE])
	assert.Equal(t, Bound{Lo: 0, Hi: 1_000_000_000}, bounds[INCOME_VARIABLE])
	assert.Equal(t, ast.NewDate(1900, 1, 1).Days(), bounds[DATE_VARIABLE].Lo)
	assert.Equal(t, ast.NewDate(2200, 12, 31).Days(), bounds[DATE_VARIABLE].Hi)
}

// Entries overlay the defaults, with untouched variables keeping theirs.
func Test_Bounds_02(t *testing.T) {
	bounds, err := ParseBounds([]byte(`
age: {lo: 16, hi: 120}
`))
	require.NoError(t, err)
	//
	assert.Equal(t, Bound{Lo: 16, Hi: 120}, bounds[AGE_VARIABLE])
	assert.Equal(t, Bound{Lo: 0, Hi: 1_000_000_000}, bounds[INCOME_VARIABLE])
}

// An omitted endpoint keeps its default value.
func Test_Bounds_03(t *testing.T) {
	bounds, err := ParseBounds([]byte(`
age: {hi: 120}
`))
	require.NoError(t, err)
	assert.Equal(t, Bound{Lo: 0, Hi: 120}, bounds[AGE_VARIABLE])
}

// Date endpoints can be written as dates, quoted or not.
func Test_Bounds_04(t *testing.T) {
	bounds, err := ParseBounds([]byte(`
date: {lo: 1950-01-01, hi: "2100-12-31"}
`))
	require.NoError(t, err)
	//
	assert.Equal(t, ast.NewDate(1950, 1, 1).Days(), bounds[DATE_VARIABLE].Lo)
	assert.Equal(t, ast.NewDate(2100, 12, 31).Days(), bounds[DATE_VARIABLE].Hi)
}

func Test_Bounds_05(t *testing.T) {
	_, err := ParseBounds([]byte(`
height: {lo: 0, hi: 250}
`))
	assert.ErrorContains(t, err, "unknown variable height")
}

func Test_Bounds_06(t *testing.T) {
	_, err := ParseBounds([]byte(`
age: {lo: 100, hi: 50}
`))
	assert.ErrorContains(t, err, "empty domain")
}

func Test_Bounds_07(t *testing.T) {
	_, err := ParseBounds([]byte(`age: [`))
	assert.Error(t, err)
	//
	_, err = ParseBounds([]byte(`
age: {lo: sixteen}
`))
	assert.ErrorContains(t, err, "malformed bound")
}

// Variables dropped from an explicit bounds map still resolve to their
// default domain.
func Test_Bounds_08(t *testing.T) {
	bounds := Bounds{AGE_VARIABLE: {Lo: 0, Hi: 99}}
	//
	assert.Equal(t, Bound{Lo: 0, Hi: 99}, bounds.Of(AGE_VARIABLE))
	assert.Equal(t, Bound{Lo: 0, Hi: 1_000_000_000}, bounds.Of(INCOME_VARIABLE))
}
