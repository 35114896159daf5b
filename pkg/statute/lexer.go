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
	"github.com/statutelang/go-statute/pkg/util"
	"github.com/statutelang/go-statute/pkg/util/source"
	"github.com/statutelang/go-statute/pkg/util/source/lex"
)

// Lex tokenizes a given source file, producing one token for every lexical
// element plus a terminating END_OF token.  Whitespace and comments are
// discarded, and keywords are classified.  Unrecognized input produces a
// syntax error identifying the offending position; lexing never panics.
func Lex(srcfile *source.File) ([]lex.Token, []source.SyntaxError) {
	lexer := lex.NewLexer(srcfile.Contents(), rules...)
	// Lex as many tokens as possible
	tokens := lexer.Collect()
	// Check whether anything was left (if so this is an error)
	if lexer.Remaining() != 0 {
		start := int(lexer.Index())
		err := srcfile.SyntaxError(source.NewSpan(start, start+1), "unexpected character")
		//
		return nil, []source.SyntaxError{*err}
	}
	// Remove any whitespace and comments
	tokens = util.RemoveMatching(tokens, func(t lex.Token) bool {
		return t.Kind == WHITESPACE || t.Kind == COMMENT
	})
	// Classify keywords
	for i, t := range tokens {
		if t.Kind == IDENTIFIER {
			if kind, ok := keywords[srcfile.Text(t.Span)]; ok {
				tokens[i].Kind = kind
			}
		}
	}
	//
	return tokens, nil
}

// Rule for describing whitespace
var whitespace lex.Scanner[rune] = lex.Many(
	lex.Or(lex.Unit(' '), lex.Unit('\t'), lex.Unit('\n'), lex.Unit('\r')))

// Rule for describing digits
var digit lex.Scanner[rune] = lex.Within('0', '9')

// Rule for describing numbers
var number lex.Scanner[rune] = lex.Many(digit)

// Rule for describing date literals (e.g. 2024-11-05)
var dateLiteral lex.Scanner[rune] = lex.Sequence(
	digit, digit, digit, digit, lex.Unit('-'),
	digit, digit, lex.Unit('-'),
	digit, digit)

// Rule for describing string literals
var stringLiteral lex.Scanner[rune] = lex.Quoted('"')

// Rule for describing line and block comments
var comment lex.Scanner[rune] = lex.Or(
	lex.SequenceNullableLast(lex.String("//"), lex.Until('\n')),
	lex.Block("/*", "*/"))

var identifierStart lex.Scanner[rune] = lex.Or(
	lex.Unit('_'),
	lex.Within('a', 'z'),
	lex.Within('A', 'Z'))

var identifierRest lex.Scanner[rune] = lex.Many(lex.Or(
	lex.Unit('_'),
	lex.Within('0', '9'),
	lex.Within('a', 'z'),
	lex.Within('A', 'Z')))

// Rule for describing identifiers
var identifier lex.Scanner[rune] = lex.And(identifierStart, identifierRest)

// lexing rules
var rules []lex.LexRule[rune] = []lex.LexRule[rune]{
	lex.Rule(comment, COMMENT),
	lex.Rule(whitespace, WHITESPACE),
	lex.Rule(lex.Unit('{'), LBRACE),
	lex.Rule(lex.Unit('}'), RBRACE),
	lex.Rule(lex.Unit('('), LPAREN),
	lex.Rule(lex.Unit(')'), RPAREN),
	lex.Rule(lex.Unit(':'), COLON),
	lex.Rule(lex.Unit(','), COMMA),
	// Two-character operators must precede their one-character prefixes.
	lex.Rule(lex.String("!="), NOT_EQUALS),
	lex.Rule(lex.String("<="), LESSTHAN_EQUALS),
	lex.Rule(lex.String(">="), GREATERTHAN_EQUALS),
	lex.Rule(lex.Unit('≠'), NOT_EQUALS),
	lex.Rule(lex.Unit('≤'), LESSTHAN_EQUALS),
	lex.Rule(lex.Unit('≥'), GREATERTHAN_EQUALS),
	lex.Rule(lex.Unit('='), EQUALS),
	lex.Rule(lex.Unit('<'), LESSTHAN),
	lex.Rule(lex.Unit('>'), GREATERTHAN),
	// Dates must precede numbers, since every date begins with one.
	lex.Rule(dateLiteral, DATE_LITERAL),
	lex.Rule(number, NUMBER),
	lex.Rule(stringLiteral, STRING_LITERAL),
	lex.Rule(identifier, IDENTIFIER),
	lex.Rule(lex.Eof[rune](), END_OF),
}
