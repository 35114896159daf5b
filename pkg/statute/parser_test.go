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
package statute

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/statutelang/go-statute/pkg/statute/ast"
	"github.com/statutelang/go-statute/pkg/util"
	"github.com/statutelang/go-statute/pkg/util/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Parser_01(t *testing.T) {
	statute := parseOne(t, `
STATUTE vote_1 : "Voting age" {
	WHEN AGE >= 18
	THEN GRANT "voting rights"
}`)
	//
	assert.Equal(t, ast.StatuteID("vote_1"), statute.ID)
	assert.Equal(t, "Voting age", statute.Title)
	assert.Equal(t, uint(1), statute.Version)
	assert.False(t, statute.Amendment)
	assert.Nil(t, statute.Exception)
	assert.Equal(t, &ast.Age{Op: ast.GREATERTHAN_EQUALS, Value: 18}, statute.Preconditions)
	assert.Equal(t, ast.Effect{Kind: ast.GRANT, Description: "voting rights"}, statute.Effect)
}

func Test_Parser_02(t *testing.T) {
	statute := parseOne(t, `
STATUTE vote_2 : "Voting age" {
	JURISDICTION "US-Federal"
	VERSION 3
	EFFECTIVE_DATE 2020-01-01
	EXPIRY_DATE 2030-12-31
	SUPERSEDES vote_1, vote_0
	WHEN AGE >= 18
	THEN GRANT "voting rights"
	EXCEPTION WHEN HAS felony_conviction
	DISCRETION "refer to the county clerk"
}`)
	//
	assert.Equal(t, "US-Federal", statute.Jurisdiction)
	assert.Equal(t, uint(3), statute.Version)
	assert.Equal(t, util.Some(ast.NewDate(2020, 1, 1)), statute.Validity.Effective)
	assert.Equal(t, util.Some(ast.NewDate(2030, 12, 31)), statute.Validity.Expiry)
	assert.Equal(t, []ast.StatuteID{"vote_1", "vote_0"}, statute.Supersedes)
	assert.Equal(t, &ast.HasAttribute{Name: "felony_conviction"}, statute.Exception)
	assert.Equal(t, "refer to the county clerk", statute.DiscretionNote)
}

// AND binds tighter than OR, hence "a AND b OR c" groups as "(a AND b) OR c".
func Test_Parser_03(t *testing.T) {
	statute := parseOne(t, `
STATUTE p_1 : "Precedence" {
	WHEN AGE >= 18 AND HAS x OR HAS y
	THEN GRANT "g"
}`)
	//
	expected := &ast.Or{Args: []ast.Condition{
		&ast.And{Args: []ast.Condition{
			&ast.Age{Op: ast.GREATERTHAN_EQUALS, Value: 18},
			&ast.HasAttribute{Name: "x"},
		}},
		&ast.HasAttribute{Name: "y"},
	}}
	//
	assert.Equal(t, expected, statute.Preconditions)
}

// NOT binds tighter than AND, and parentheses override precedence entirely.
func Test_Parser_04(t *testing.T) {
	statute := parseOne(t, `
STATUTE p_2 : "Precedence" {
	WHEN NOT HAS x AND (HAS y OR HAS z)
	THEN GRANT "g"
}`)
	//
	expected := &ast.And{Args: []ast.Condition{
		&ast.Not{Arg: &ast.HasAttribute{Name: "x"}},
		&ast.Or{Args: []ast.Condition{
			&ast.HasAttribute{Name: "y"},
			&ast.HasAttribute{Name: "z"},
		}},
	}}
	//
	assert.Equal(t, expected, statute.Preconditions)
}

// Metadata clauses can be declared in any order without affecting the result.
func Test_Parser_05(t *testing.T) {
	first := parseOne(t, `
STATUTE m_1 : "Metadata" {
	JURISDICTION "EU"
	VERSION 2
	EFFECTIVE_DATE 2024-01-01
	WHEN AGE >= 18
	THEN GRANT "g"
}`)
	second := parseOne(t, `
STATUTE m_1 : "Metadata" {
	THEN GRANT "g"
	EFFECTIVE_DATE 2024-01-01
	WHEN AGE >= 18
	VERSION 2
	JURISDICTION "EU"
}`)
	//
	if diff := cmp.Diff(first, second, cmp.AllowUnexported(ast.Date{}, util.Option[ast.Date]{})); diff != "" {
		t.Errorf("clause order affected parse (-first +second):\n%s", diff)
	}
}

// BETWEEN desugars into a conjunction of inclusive bounds.
func Test_Parser_06(t *testing.T) {
	statute := parseOne(t, `
STATUTE r_1 : "Range" {
	WHEN AGE BETWEEN 18 AND 65
	THEN GRANT "g"
}`)
	//
	expected := &ast.And{Args: []ast.Condition{
		&ast.Age{Op: ast.GREATERTHAN_EQUALS, Value: 18},
		&ast.Age{Op: ast.LESSTHAN_EQUALS, Value: 65},
	}}
	//
	assert.Equal(t, expected, statute.Preconditions)
}

// IN desugars into a disjunction of equalities, collapsing singleton sets.
func Test_Parser_07(t *testing.T) {
	statute := parseOne(t, `
STATUTE s_1 : "Sets" {
	WHEN INCOME IN (10000, 20000) AND AGE IN (18)
	THEN GRANT "g"
}`)
	//
	expected := &ast.And{Args: []ast.Condition{
		&ast.Or{Args: []ast.Condition{
			&ast.Income{Op: ast.EQUALS, Value: 10000},
			&ast.Income{Op: ast.EQUALS, Value: 20000},
		}},
		&ast.Age{Op: ast.EQUALS, Value: 18},
	}}
	//
	assert.Equal(t, expected, statute.Preconditions)
}

// Textual attributes support (in)equality against quoted or bare values, SQL
// style patterns, and string sets.
func Test_Parser_08(t *testing.T) {
	statute := parseOne(t, `
STATUTE g_1 : "Geographic" {
	WHEN region = "EU" AND country != FR AND postcode LIKE "SW1%" AND city IN ("London", Paris)
	THEN GRANT "g"
}`)
	//
	expected := &ast.And{Args: []ast.Condition{
		&ast.Geographic{Kind: "region", Op: ast.EQUALS, Value: "EU"},
		&ast.Geographic{Kind: "country", Op: ast.NOT_EQUALS, Value: "FR"},
		&ast.Geographic{Kind: "postcode", Op: ast.EQUALS, Value: "SW1%", Pattern: true},
		&ast.Or{Args: []ast.Condition{
			&ast.Geographic{Kind: "city", Op: ast.EQUALS, Value: "London"},
			&ast.Geographic{Kind: "city", Op: ast.EQUALS, Value: "Paris"},
		}},
	}}
	//
	assert.Equal(t, expected, statute.Preconditions)
}

func Test_Parser_09(t *testing.T) {
	statute := parseOne(t, `
STATUTE d_1 : "Dates" {
	WHEN DATE < 2030-06-15
	THEN GRANT "g"
}`)
	//
	assert.Equal(t, &ast.DateIs{Op: ast.LESSTHAN, Value: ast.NewDate(2030, 6, 15)},
		statute.Preconditions)
}

// The unicode comparison operators are interchangeable with their two
// character ASCII spellings.
func Test_Parser_10(t *testing.T) {
	first := parseOne(t, `
STATUTE u_1 : "Unicode" {
	WHEN AGE ≥ 18 AND INCOME ≤ 50000 AND region ≠ "EU"
	THEN GRANT "g"
}`)
	second := parseOne(t, `
STATUTE u_1 : "Unicode" {
	WHEN AGE >= 18 AND INCOME <= 50000 AND region != "EU"
	THEN GRANT "g"
}`)
	//
	assert.Equal(t, second.Preconditions, first.Preconditions)
}

func Test_Parser_11(t *testing.T) {
	statute := parseOne(t, `
// Establishes the franchise.
STATUTE c_1 : "Comments" { /* inline */
	WHEN AGE >= 18 // adults only
	THEN GRANT "g"
}`)
	//
	assert.Equal(t, &ast.Age{Op: ast.GREATERTHAN_EQUALS, Value: 18}, statute.Preconditions)
}

func Test_Parser_12(t *testing.T) {
	statute := parseOne(t, `
AMENDMENT vote_2 : "Lowered voting age" {
	SUPERSEDES vote_1
	WHEN AGE >= 16
	THEN GRANT "voting rights"
}`)
	//
	assert.True(t, statute.Amendment)
	assert.Equal(t, []ast.StatuteID{"vote_1"}, statute.Supersedes)
}

func Test_Parser_13(t *testing.T) {
	srcfile := source.NewSourceFile("test", []byte(`
IMPORT "federal/voting"
IMPORT "state/ny" AS ny

STATUTE a_1 : "A" {
	WHEN AGE >= 18
	THEN GRANT "g"
}`))
	document, _, errs := ParseSourceFile(srcfile)
	require.Empty(t, errs)
	//
	require.Len(t, document.Imports, 2)
	assert.Equal(t, &ast.Import{Path: "federal/voting"}, document.Imports[0])
	assert.Equal(t, &ast.Import{Path: "state/ny", Alias: "ny"}, document.Imports[1])
	assert.Len(t, document.Statutes, 1)
}

// A DISCRETION effect and a DISCRETION note can coexist, since the keyword
// opens a clause only at clause position.
func Test_Parser_14(t *testing.T) {
	statute := parseOne(t, `
STATUTE h_1 : "Hardship" {
	WHEN INCOME < 10000
	THEN DISCRETION "eligible for hardship relief"
	DISCRETION "consider recent employment history"
}`)
	//
	assert.Equal(t, ast.DISCRETION, statute.Effect.Kind)
	assert.Equal(t, "eligible for hardship relief", statute.Effect.Description)
	assert.Equal(t, "consider recent employment history", statute.DiscretionNote)
}

// Escape sequences within string literals resolve to the escaped character.
func Test_Parser_15(t *testing.T) {
	statute := parseOne(t, `
STATUTE e_1 : "Quoting \"rules\"" {
	WHEN region = "A\\B"
	THEN GRANT "g"
}`)
	//
	assert.Equal(t, `Quoting "rules"`, statute.Title)
	assert.Equal(t, &ast.Geographic{Kind: "region", Op: ast.EQUALS, Value: `A\B`},
		statute.Preconditions)
}

// ==================================================================
// Errors
// ==================================================================

func Test_Parser_Err_01(t *testing.T) {
	parseErr(t, `
STATUTE x_1 : "X" {
	THEN GRANT "g"
}`, "statute missing a WHEN clause")
}

func Test_Parser_Err_02(t *testing.T) {
	parseErr(t, `
STATUTE x_1 : "X" {
	WHEN AGE >= 18
}`, "statute missing a THEN clause")
}

func Test_Parser_Err_03(t *testing.T) {
	parseErr(t, `
STATUTE x_1 : "X" {
	WHEN AGE >= 18
	WHEN AGE >= 21
	THEN GRANT "g"
}`, "duplicate WHEN clause")
}

func Test_Parser_Err_04(t *testing.T) {
	parseErr(t, `
AMENDMENT x_2 : "X" {
	WHEN AGE >= 18
	THEN GRANT "g"
}`, "amendment must supersede at least one statute")
}

func Test_Parser_Err_05(t *testing.T) {
	parseErr(t, `
STATUTE x_1 : "X" {
	EFFECTIVE_DATE 2030-01-01
	EXPIRY_DATE 2020-01-01
	WHEN AGE >= 18
	THEN GRANT "g"
}`, "effective date falls after expiry date")
}

// Textual attributes are unordered, hence reject <, <=, > and >=.
func Test_Parser_Err_06(t *testing.T) {
	parseErr(t, `
STATUTE x_1 : "X" {
	WHEN region > "EU"
	THEN GRANT "g"
}`, "textual attributes only support = and !=")
}

func Test_Parser_Err_07(t *testing.T) {
	parseErr(t, `
STATUTE x_1 : "X" {
	WHEN region BETWEEN 1 AND 2
	THEN GRANT "g"
}`, "only AGE and INCOME support numeric ranges")
}

func Test_Parser_Err_08(t *testing.T) {
	parseErr(t, `
STATUTE x_1 : "X" {
	WHEN region = 5
	THEN GRANT "g"
}`, "only AGE and INCOME support numeric comparison")
}

func Test_Parser_Err_09(t *testing.T) {
	parseErr(t, `
STATUTE x_1 : "X" {
	EFFECTIVE_DATE 2024-13-01
	WHEN AGE >= 18
	THEN GRANT "g"
}`, "invalid date")
}

func Test_Parser_Err_10(t *testing.T) {
	parseErr(t, `
STATUTE x_1 : "X" {
	VERSION 99999999999999999999
	WHEN AGE >= 18
	THEN GRANT "g"
}`, "version number too large")
}

func Test_Parser_Err_11(t *testing.T) {
	parseErr(t, `
STATUTE x_1 : "X" {
	WHEN AGE >= 99999999999999999999
	THEN GRANT "g"
}`, "number too large")
}

// A misspelt keyword at clause position earns a repair hint.
func Test_Parser_Err_12(t *testing.T) {
	_, errs := Parse(`
STATUTE x_1 : "X" {
	WEN AGE >= 18
	THEN GRANT "g"
}`)
	require.Len(t, errs, 1)
	//
	assert.Contains(t, errs[0].Message(), "expected a clause keyword")
	assert.Equal(t, "did you mean 'WHEN'?", errs[0].Hint())
	assert.Equal(t, "WEN", errs[0].SourceFile().Text(errs[0].Span()))
}

func Test_Parser_Err_13(t *testing.T) {
	_, errs := Parse(`STATUT x_1 : "X" { WHEN AGE >= 18 THEN GRANT "g" }`)
	require.Len(t, errs, 1)
	//
	assert.Contains(t, errs[0].Message(), "expected a statute declaration")
	assert.Equal(t, "did you mean 'STATUTE'?", errs[0].Hint())
}

// Identifiers nowhere near any keyword earn no hint at all.
func Test_Parser_Err_14(t *testing.T) {
	_, errs := Parse(`banana x_1 : "X" { }`)
	require.Len(t, errs, 1)
	assert.Empty(t, errs[0].Hint())
}

func Test_Parser_Err_15(t *testing.T) {
	_, errs := Parse(`STATUTE x_1 "X" { WHEN AGE >= 18 THEN GRANT "g" }`)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message(), "expected ':'")
}

// After a malformed statute, parsing resynchronizes at the next declaration,
// such that all malformed statutes are reported in a single pass.
func Test_Parser_Err_16(t *testing.T) {
	srcfile := source.NewSourceFile("test", []byte(`
STATUTE a_1 : "A" {
	WHEN AGE >=
	THEN GRANT "g"
}

STATUTE b_1 : "B" {
	WHEN HAS
	THEN GRANT "g"
}

STATUTE c_1 : "C" {
	WHEN AGE >= 18
	THEN GRANT "g"
}`))
	document, _, errs := ParseSourceFile(srcfile)
	//
	assert.Len(t, errs, 2)
	require.Len(t, document.Statutes, 1)
	assert.Equal(t, ast.StatuteID("c_1"), document.Statutes[0].ID)
}

// Statute identifiers must be unique across an entire load unit.
func Test_Parser_Err_17(t *testing.T) {
	files := []*source.File{
		source.NewSourceFile("a.stat", []byte(`
STATUTE dup_1 : "A" {
	WHEN AGE >= 18
	THEN GRANT "g"
}`)),
		source.NewSourceFile("b.stat", []byte(`
STATUTE dup_1 : "B" {
	WHEN AGE >= 21
	THEN GRANT "g"
}`)),
	}
	statutes, _, errs := ParseSourceFiles(files)
	//
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message(), "duplicate statute identifier 'dup_1'")
	assert.Len(t, statutes, 1)
}

func Test_Parser_Err_18(t *testing.T) {
	parseErr(t, `
STATUTE x_1 : "X" {
	WHEN AGE >= 18
	THEN GRANT "g"
	EXCEPTION HAS felon
}`, "expected 'WHEN'")
}

func Test_Parser_Err_19(t *testing.T) {
	_, errs := Parse(`STATUTE x_1 : "X" @`)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message(), "unexpected character")
}

// ==================================================================
// Round trips
// ==================================================================

// Pretty-printing a parsed statute and reparsing the result yields a
// structurally identical tree.
func Test_Parser_RoundTrip_01(t *testing.T) {
	checkRoundTrip(t, `
STATUTE vote_2 : "Voting age" {
	JURISDICTION "US-Federal"
	VERSION 3
	EFFECTIVE_DATE 2020-01-01
	EXPIRY_DATE 2030-12-31
	SUPERSEDES vote_1, vote_0
	WHEN AGE >= 18 AND HAS citizen
	THEN GRANT "voting rights"
	EXCEPTION WHEN HAS felony_conviction
	DISCRETION "refer to the county clerk"
}`)
}

func Test_Parser_RoundTrip_02(t *testing.T) {
	checkRoundTrip(t, `
STATUTE p_1 : "Precedence" {
	WHEN (AGE >= 18 AND HAS x) AND NOT (HAS y OR region = "EU")
	THEN PROHIBITION "export of goods"
}`)
}

func Test_Parser_RoundTrip_03(t *testing.T) {
	checkRoundTrip(t, `
AMENDMENT vote_3 : "Say \"aye\"" {
	SUPERSEDES vote_2
	WHEN AGE BETWEEN 16 AND 120 OR INCOME IN (0, 100) OR postcode LIKE "SW1%"
	THEN OBLIGATION "register to vote"
}`)
}

func Test_Parser_RoundTrip_04(t *testing.T) {
	checkRoundTrip(t, `
STATUTE d_1 : "Dates" {
	WHEN DATE >= 2024-01-01 AND DATE <= 2024-12-31 AND country != FR
	THEN REVOKE "temporary permit"
}`)
}

// ==================================================================
// Helpers
// ==================================================================

// Parse a single statute from a given source text, failing the test on any
// syntax error.
func parseOne(t *testing.T, text string) *ast.Statute {
	t.Helper()
	//
	statutes, errs := Parse(text)
	require.Empty(t, errs)
	require.Len(t, statutes, 1)
	//
	return statutes[0]
}

// Check parsing a given source text fails with a message containing the given
// fragment.
func parseErr(t *testing.T, text string, fragment string) {
	t.Helper()
	//
	_, errs := Parse(text)
	require.NotEmpty(t, errs, "expected a syntax error")
	//
	messages := make([]string, len(errs))
	//
	for i, err := range errs {
		if strings.Contains(err.Message(), fragment) {
			return
		}
		//
		messages[i] = err.Message()
	}
	//
	t.Errorf("no error mentions %q amongst %v", fragment, messages)
}

// Check that parsing, printing and reparsing a given source text yields a
// structurally identical statute.
func checkRoundTrip(t *testing.T, text string) {
	t.Helper()
	//
	first := parseOne(t, text)
	second := parseOne(t, first.String())
	//
	if diff := cmp.Diff(first, second, cmp.AllowUnexported(ast.Date{}, util.Option[ast.Date]{})); diff != "" {
		t.Errorf("round trip altered the tree (-parsed +reparsed):\n%s", diff)
	}
}
