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

import "fmt"

// END_OF signals "end of file"
const END_OF uint = 0

// WHITESPACE signals whitespace
const WHITESPACE uint = 1

// COMMENT signals a line or block comment
const COMMENT uint = 2

// LBRACE signals "left brace"
const LBRACE uint = 3

// RBRACE signals "right brace"
const RBRACE uint = 4

// LPAREN signals "left parenthesis"
const LPAREN uint = 5

// RPAREN signals "right parenthesis"
const RPAREN uint = 6

// COLON signals ":"
const COLON uint = 7

// COMMA signals ","
const COMMA uint = 8

// EQUALS signals an equality X = Y
const EQUALS uint = 9

// NOT_EQUALS signals a disequality X != Y
const NOT_EQUALS uint = 10

// LESSTHAN signals a (strict) inequality X < Y
const LESSTHAN uint = 11

// LESSTHAN_EQUALS signals a (non-strict) inequality X <= Y
const LESSTHAN_EQUALS uint = 12

// GREATERTHAN signals a (strict) inequality X > Y
const GREATERTHAN uint = 13

// GREATERTHAN_EQUALS signals a (non-strict) inequality X >= Y
const GREATERTHAN_EQUALS uint = 14

// NUMBER signals an integer number
const NUMBER uint = 15

// DATE_LITERAL signals a date of the form YYYY-MM-DD
const DATE_LITERAL uint = 16

// STRING_LITERAL signals a quoted string
const STRING_LITERAL uint = 17

// IDENTIFIER signals a name, such as an attribute or statute identifier
const IDENTIFIER uint = 18

// STATUTE signals the start of a statute block
const STATUTE uint = 19

// AMENDMENT signals the start of an amending statute block
const AMENDMENT uint = 20

// IMPORT signals an import declaration
const IMPORT uint = 21

// AS signals the alias binder within an import declaration
const AS uint = 22

// JURISDICTION signals the jurisdiction metadata clause
const JURISDICTION uint = 23

// VERSION signals the version metadata clause
const VERSION uint = 24

// EFFECTIVE_DATE signals the effective date metadata clause
const EFFECTIVE_DATE uint = 25

// EXPIRY_DATE signals the expiry date metadata clause
const EXPIRY_DATE uint = 26

// SUPERSEDES signals the supersedes metadata clause
const SUPERSEDES uint = 27

// WHEN signals the precondition clause
const WHEN uint = 28

// THEN signals the effect clause
const THEN uint = 29

// EXCEPTION signals the exception clause
const EXCEPTION uint = 30

// DISCRETION signals either the discretion note clause, or the discretion
// effect kind
const DISCRETION uint = 31

// AND represents logical conjunction
const AND uint = 32

// OR represents logical disjunction
const OR uint = 33

// NOT represents logical negation
const NOT uint = 34

// BETWEEN signals an inclusive numeric range condition
const BETWEEN uint = 35

// IN signals a set membership condition
const IN uint = 36

// LIKE signals a pattern match condition
const LIKE uint = 37

// HAS signals an attribute presence condition
const HAS uint = 38

// AGE signals the entity age subject
const AGE uint = 39

// INCOME signals the entity income subject
const INCOME uint = 40

// DATE signals the evaluation date subject
const DATE uint = 41

// GRANT signals the grant effect kind
const GRANT uint = 42

// REVOKE signals the revoke effect kind
const REVOKE uint = 43

// OBLIGATION signals the obligation effect kind
const OBLIGATION uint = 44

// PROHIBITION signals the prohibition effect kind
const PROHIBITION uint = 45

// COMPARATORS captures the set of comparison operators.
var COMPARATORS = []uint{EQUALS, NOT_EQUALS, LESSTHAN, LESSTHAN_EQUALS, GREATERTHAN, GREATERTHAN_EQUALS}

// CLAUSES captures the set of tokens which can open a clause within a statute
// body.
var CLAUSES = []uint{JURISDICTION, VERSION, EFFECTIVE_DATE, EXPIRY_DATE, SUPERSEDES,
	WHEN, THEN, EXCEPTION, DISCRETION}

// EFFECTS captures the set of effect kinds.
var EFFECTS = []uint{GRANT, REVOKE, OBLIGATION, PROHIBITION, DISCRETION}

// keywords maps the text of each keyword onto its token kind.  Keywords are
// classified after lexing, since every keyword also lexes as an identifier.
var keywords = map[string]uint{
	"STATUTE":        STATUTE,
	"AMENDMENT":      AMENDMENT,
	"IMPORT":         IMPORT,
	"AS":             AS,
	"JURISDICTION":   JURISDICTION,
	"VERSION":        VERSION,
	"EFFECTIVE_DATE": EFFECTIVE_DATE,
	"EXPIRY_DATE":    EXPIRY_DATE,
	"SUPERSEDES":     SUPERSEDES,
	"WHEN":           WHEN,
	"THEN":           THEN,
	"EXCEPTION":      EXCEPTION,
	"DISCRETION":     DISCRETION,
	"AND":            AND,
	"OR":             OR,
	"NOT":            NOT,
	"BETWEEN":        BETWEEN,
	"IN":             IN,
	"LIKE":           LIKE,
	"HAS":            HAS,
	"AGE":            AGE,
	"INCOME":         INCOME,
	"DATE":           DATE,
	"GRANT":          GRANT,
	"REVOKE":         REVOKE,
	"OBLIGATION":     OBLIGATION,
	"PROHIBITION":    PROHIBITION,
}

// kindName returns a human-readable name for a given token kind, as used
// within syntax error messages.
func kindName(kind uint) string {
	switch kind {
	case END_OF:
		return "end of file"
	case WHITESPACE:
		return "whitespace"
	case COMMENT:
		return "a comment"
	case LBRACE:
		return "'{'"
	case RBRACE:
		return "'}'"
	case LPAREN:
		return "'('"
	case RPAREN:
		return "')'"
	case COLON:
		return "':'"
	case COMMA:
		return "','"
	case NUMBER:
		return "a number"
	case DATE_LITERAL:
		return "a date"
	case STRING_LITERAL:
		return "a string"
	case IDENTIFIER:
		return "an identifier"
	case EQUALS, NOT_EQUALS, LESSTHAN, LESSTHAN_EQUALS, GREATERTHAN, GREATERTHAN_EQUALS:
		return "a comparison operator"
	}
	// Remaining kinds are all keywords.
	for text, k := range keywords {
		if k == kind {
			return fmt.Sprintf("'%s'", text)
		}
	}
	//
	panic("unknown token kind")
}
