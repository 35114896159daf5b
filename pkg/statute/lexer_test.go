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
	"testing"

	"github.com/statutelang/go-statute/pkg/util/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Lexer_01(t *testing.T) {
	checkLex(t, "", END_OF)
}

// Keywords are classified after lexing, whilst anything else remains an
// identifier.
func Test_Lexer_02(t *testing.T) {
	checkLex(t, "STATUTE vote_1 WHEN age", STATUTE, IDENTIFIER, WHEN, IDENTIFIER, END_OF)
}

// Keyword classification is case sensitive.
func Test_Lexer_03(t *testing.T) {
	checkLex(t, "statute When AGE", IDENTIFIER, IDENTIFIER, AGE, END_OF)
}

// Whitespace and comments are discarded from the token stream.
func Test_Lexer_04(t *testing.T) {
	checkLex(t, "WHEN // adults only\n\tAGE /* checked */ >= 18",
		WHEN, AGE, GREATERTHAN_EQUALS, NUMBER, END_OF)
}

// Dates match before numbers, since every date begins with a number.
func Test_Lexer_05(t *testing.T) {
	checkLex(t, "2024-11-05 2024", DATE_LITERAL, NUMBER, END_OF)
}

func Test_Lexer_06(t *testing.T) {
	checkLex(t, `{ } ( ) : ,`, LBRACE, RBRACE, LPAREN, RPAREN, COLON, COMMA, END_OF)
}

func Test_Lexer_07(t *testing.T) {
	checkLex(t, "= != < <= > >=", EQUALS, NOT_EQUALS, LESSTHAN, LESSTHAN_EQUALS,
		GREATERTHAN, GREATERTHAN_EQUALS, END_OF)
}

// The unicode operators lex to the same kinds as their ASCII spellings.
func Test_Lexer_08(t *testing.T) {
	checkLex(t, "≠ ≤ ≥", NOT_EQUALS, LESSTHAN_EQUALS, GREATERTHAN_EQUALS, END_OF)
}

func Test_Lexer_09(t *testing.T) {
	checkLex(t, `"US-Federal" region`, STRING_LITERAL, IDENTIFIER, END_OF)
}

func Test_Lexer_10(t *testing.T) {
	checkLex(t, "GRANT REVOKE OBLIGATION PROHIBITION DISCRETION",
		GRANT, REVOKE, OBLIGATION, PROHIBITION, DISCRETION, END_OF)
}

func Test_Lexer_11(t *testing.T) {
	checkLex(t, "AND OR NOT BETWEEN IN LIKE HAS",
		AND, OR, NOT, BETWEEN, IN, LIKE, HAS, END_OF)
}

// Keywords embedded within longer identifiers are not classified.
func Test_Lexer_12(t *testing.T) {
	checkLex(t, "WHENCE HASTE _AGE", IDENTIFIER, IDENTIFIER, IDENTIFIER, END_OF)
}

func Test_Lexer_13(t *testing.T) {
	file := source.NewSourceFile("test", []byte("WHEN @ AGE"))
	tokens, errs := Lex(file)
	//
	assert.Nil(t, tokens)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message(), "unexpected character")
	//
	_, col := errs[0].LineColumn()
	assert.Equal(t, 6, col)
}

// ==================================================================
// Helpers
// ==================================================================

// Check lexing a given input produces tokens of the given kinds.
func checkLex(t *testing.T, input string, kinds ...uint) {
	t.Helper()
	//
	file := source.NewSourceFile("test", []byte(input))
	tokens, errs := Lex(file)
	require.Empty(t, errs)
	//
	actual := make([]uint, len(tokens))
	for i, token := range tokens {
		actual[i] = token.Kind
	}
	//
	assert.Equal(t, kinds, actual)
}
