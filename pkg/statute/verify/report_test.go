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
	"testing"

	"github.com/fatih/color"
	"github.com/statutelang/go-statute/pkg/statute/ast"
	"github.com/statutelang/go-statute/pkg/statute/constraint"
	"github.com/stretchr/testify/assert"
)

func Test_Report_01(t *testing.T) {
	color.NoColor = true
	//
	report := FormatReport(Result{Passed: true}, 80)
	assert.Equal(t, "ok\n", report)
}

func Test_Report_02(t *testing.T) {
	color.NoColor = true
	//
	result := Result{Findings: []Finding{
		{
			Code:     CONTRADICTION,
			Statutes: []ast.StatuteID{"vote_1", "vote_2"},
			Message:  `vote_1 grants "voting rights" whilst vote_2 prohibits it`,
			Witness: constraint.Model{
				"age":     ast.Int(18),
				"citizen": ast.Bool(true),
			},
		},
		{
			Code:     DEAD_STATUTE,
			Statutes: []ast.StatuteID{"old_1"},
			Message:  "preconditions are unsatisfiable over the configured domains",
		},
	}}
	//
	report := FormatReport(result, 80)
	//
	assert.Contains(t, report, "contradiction: vote_1, vote_2")
	assert.Contains(t, report, "witness: age = 18, citizen = true")
	assert.Contains(t, report, "dead-statute: old_1")
	assert.Contains(t, report, "2 findings\n")
}

// Approximate findings are marked as such.
func Test_Report_03(t *testing.T) {
	color.NoColor = true
	//
	result := Result{Findings: []Finding{
		{
			Code:        CONTRADICTION,
			Statutes:    []ast.StatuteID{"a_1", "b_1"},
			Message:     `a_1 grants "residency" whilst b_1 prohibits it`,
			Approximate: true,
		},
	}}
	//
	report := FormatReport(result, 80)
	//
	assert.Contains(t, report, "(approximate)")
	assert.Contains(t, report, "1 finding\n")
}

// Witness assignments wrap between assignments, never within one.
func Test_Report_04(t *testing.T) {
	lines := wrapWitness("age = 18, citizen = true, region = EU", 20)
	assert.Equal(t, []string{"age = 18", "citizen = true", "region = EU"}, lines)
	//
	lines = wrapWitness("age = 18, citizen = true, region = EU", 28)
	assert.Equal(t, []string{"age = 18, citizen = true", "region = EU"}, lines)
	//
	lines = wrapWitness("age = 18", 80)
	assert.Equal(t, []string{"age = 18"}, lines)
}
