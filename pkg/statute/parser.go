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
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/statutelang/go-statute/pkg/statute/ast"
	"github.com/statutelang/go-statute/pkg/util"
	"github.com/statutelang/go-statute/pkg/util/source"
	"github.com/statutelang/go-statute/pkg/util/source/lex"
)

// ParseSourceFiles parses zero or more source files into a single statute
// set, joining their source maps and checking that statute identifiers remain
// unique across the whole set.  Statutes from files containing errors are
// excluded from the result.
func ParseSourceFiles(files []*source.File) ([]*ast.Statute, *source.Maps[ast.Node], []source.SyntaxError) {
	var (
		statutes []*ast.Statute
		errors   []source.SyntaxError
	)
	// Construct an initially empty source map
	srcmaps := source.NewSourceMaps[ast.Node]()
	// Identifiers seen so far
	seen := make(map[ast.StatuteID]bool)
	//
	for _, file := range files {
		document, srcmap, errs := ParseSourceFile(file)
		// Handle errors
		if len(errs) > 0 {
			errors = append(errors, errs...)
			continue
		}
		// Combine source maps
		srcmaps.Join(srcmap)
		//
		for _, s := range document.Statutes {
			if seen[s.ID] {
				errors = append(errors, *srcmaps.SyntaxError(s,
					fmt.Sprintf("duplicate statute identifier '%s'", s.ID)))
			} else {
				seen[s.ID] = true
				statutes = append(statutes, s)
			}
		}
	}
	//
	if len(errors) > 0 {
		return statutes, srcmaps, errors
	}
	// no errors
	return statutes, srcmaps, nil
}

// ParseSourceFile parses the contents of a single source file into a
// document, additionally returning a source map recording where within the
// file each node originated.  On error, parsing resynchronizes at the next
// top-level declaration, such that multiple malformed statutes are all
// reported in one pass.
func ParseSourceFile(srcfile *source.File) (*ast.Document, *source.Map[ast.Node], []source.SyntaxError) {
	var (
		document ast.Document
		errors   []source.SyntaxError
	)
	//
	tokens, errs := Lex(srcfile)
	if len(errs) > 0 {
		return &document, nil, errs
	}
	//
	p := NewParser(srcfile, tokens)
	//
	for !p.follows(END_OF) {
		if p.follows(IMPORT) {
			imp, errs := p.parseImport()
			//
			if len(errs) > 0 {
				errors = append(errors, errs...)
				p.synchronize()
			} else {
				document.Imports = append(document.Imports, imp)
			}
		} else {
			s, errs := p.parseStatute()
			//
			if len(errs) > 0 {
				errors = append(errors, errs...)
				p.synchronize()
			} else {
				document.Statutes = append(document.Statutes, s)
			}
		}
	}
	//
	if len(errors) > 0 {
		return &document, p.NodeMap(), errors
	}
	// Done
	return &document, p.NodeMap(), nil
}

// ParseDocument parses the contents of a single source file, returning just
// the statutes declared within it.
func ParseDocument(srcfile *source.File) ([]*ast.Statute, []source.SyntaxError) {
	document, _, errs := ParseSourceFile(srcfile)
	//
	if len(errs) > 0 {
		return nil, errs
	}
	//
	return document.Statutes, nil
}

// Parse is a convenience for parsing statutes directly from a string.
func Parse(text string) ([]*ast.Statute, []source.SyntaxError) {
	srcfile := source.NewSourceFile("string", []byte(text))
	return ParseDocument(srcfile)
}

// Parser implements a recursive descent parser for the statute language.  The
// parser performs those validations which are local to a single statute (such
// as duplicate clauses, or an effective date falling after the expiry date),
// but does not resolve supersedes links or imports, since these can cross
// load units.
type Parser struct {
	srcfile *source.File
	tokens  []lex.Token
	// Position within the tokens
	index int
	// Mapping from constructed AST nodes to their spans in the original text.
	nodemap *source.Map[ast.Node]
}

// NewParser constructs a new parser over a given token stream.
func NewParser(srcfile *source.File, tokens []lex.Token) *Parser {
	nodemap := source.NewSourceMap[ast.Node](*srcfile)
	return &Parser{srcfile, tokens, 0, nodemap}
}

// NodeMap returns the source mapping constructed during parsing.
func (p *Parser) NodeMap() *source.Map[ast.Node] {
	return p.nodemap
}

// ==================================================================
// Declarations
// ==================================================================

func (p *Parser) parseImport() (*ast.Import, []source.SyntaxError) {
	start := p.index
	//
	p.expect(IMPORT)
	//
	path, errs := p.require(STRING_LITERAL)
	if len(errs) > 0 {
		return nil, errs
	}
	//
	imp := &ast.Import{Path: p.unquote(path)}
	//
	if p.match(AS) {
		alias, errs := p.require(IDENTIFIER)
		if len(errs) > 0 {
			return nil, errs
		}
		//
		imp.Alias = p.text(alias)
	}
	//
	p.nodemap.Put(imp, p.spanFrom(start))
	//
	return imp, nil
}

func (p *Parser) parseStatute() (*ast.Statute, []source.SyntaxError) {
	var (
		statute = ast.Statute{Version: 1}
		errors  []source.SyntaxError
		start   = p.index
	)
	// Statutes open with either keyword, where AMENDMENT additionally
	// requires a supersedes link.
	if p.match(AMENDMENT) {
		statute.Amendment = true
	} else if !p.match(STATUTE) {
		return nil, p.unexpected(p.lookahead(), "expected a statute declaration",
			STATUTE, AMENDMENT, IMPORT)
	}
	//
	id, errs := p.require(IDENTIFIER)
	if len(errs) > 0 {
		return nil, errs
	}
	//
	statute.ID = ast.StatuteID(p.text(id))
	//
	if _, errs := p.require(COLON); len(errs) > 0 {
		return nil, errs
	}
	//
	title, errs := p.require(STRING_LITERAL)
	if len(errs) > 0 {
		return nil, errs
	}
	//
	statute.Title = p.unquote(title)
	//
	if _, errs := p.require(LBRACE); len(errs) > 0 {
		return nil, errs
	}
	// Clauses are optional and order-insensitive, but never repeated.
	clauses := make(map[uint]lex.Token)
	//
	for !p.follows(RBRACE, END_OF) {
		if errs := p.parseClause(&statute, clauses); len(errs) > 0 {
			return nil, errs
		}
	}
	//
	if _, errs := p.require(RBRACE); len(errs) > 0 {
		return nil, errs
	}
	// Check the mandatory clauses were given.
	head := p.tokens[start].Span.Join(id.Span)
	//
	if _, ok := clauses[WHEN]; !ok {
		errors = append(errors, *p.srcfile.SyntaxError(head, "statute missing a WHEN clause"))
	}
	//
	if _, ok := clauses[THEN]; !ok {
		errors = append(errors, *p.srcfile.SyntaxError(head, "statute missing a THEN clause"))
	}
	//
	if statute.Amendment && len(statute.Supersedes) == 0 {
		errors = append(errors, *p.srcfile.SyntaxError(head,
			"amendment must supersede at least one statute"))
	}
	// Check the validity window is non-empty.
	if effective, expiry := statute.Validity.Effective, statute.Validity.Expiry; effective.HasValue() &&
		expiry.HasValue() && effective.Unwrap().Compare(expiry.Unwrap()) > 0 {
		errors = append(errors, *p.srcfile.SyntaxError(clauses[EXPIRY_DATE].Span,
			"effective date falls after expiry date"))
	}
	//
	if len(errors) > 0 {
		return nil, errors
	}
	//
	p.nodemap.Put(&statute, p.spanFrom(start))
	//
	return &statute, nil
}

func (p *Parser) parseClause(statute *ast.Statute, clauses map[uint]lex.Token) []source.SyntaxError {
	token := p.lookahead()
	//
	if !slices.Contains(CLAUSES, token.Kind) {
		return p.unexpected(token, "expected a clause keyword", CLAUSES...)
	} else if prev, ok := clauses[token.Kind]; ok {
		return p.syntaxErrors(token, fmt.Sprintf("duplicate %s clause", p.text(prev)))
	}
	//
	clauses[token.Kind] = token
	p.index++
	//
	switch token.Kind {
	case JURISDICTION:
		return p.parseJurisdiction(statute)
	case VERSION:
		return p.parseVersion(statute)
	case EFFECTIVE_DATE:
		date, errs := p.parseDateLiteral()
		statute.Validity.Effective = date
		//
		return errs
	case EXPIRY_DATE:
		date, errs := p.parseDateLiteral()
		statute.Validity.Expiry = date
		//
		return errs
	case SUPERSEDES:
		return p.parseSupersedes(statute)
	case WHEN:
		condition, errs := p.parseCondition()
		statute.Preconditions = condition
		//
		return errs
	case THEN:
		effect, errs := p.parseEffect()
		statute.Effect = effect
		//
		return errs
	case EXCEPTION:
		if _, errs := p.require(WHEN); len(errs) > 0 {
			return errs
		}
		//
		condition, errs := p.parseCondition()
		statute.Exception = condition
		//
		return errs
	case DISCRETION:
		note, errs := p.require(STRING_LITERAL)
		if len(errs) > 0 {
			return errs
		}
		//
		statute.DiscretionNote = p.unquote(note)
		//
		return nil
	}
	//
	panic("unreachable")
}

func (p *Parser) parseJurisdiction(statute *ast.Statute) []source.SyntaxError {
	switch token := p.lookahead(); token.Kind {
	case STRING_LITERAL:
		p.index++
		statute.Jurisdiction = p.unquote(token)
	case IDENTIFIER:
		p.index++
		statute.Jurisdiction = p.text(token)
	default:
		return p.syntaxErrors(token, fmt.Sprintf("expected a jurisdiction tag, found %s",
			p.describe(token)))
	}
	//
	return nil
}

func (p *Parser) parseVersion(statute *ast.Statute) []source.SyntaxError {
	token, errs := p.require(NUMBER)
	if len(errs) > 0 {
		return errs
	}
	//
	version, err := strconv.ParseUint(p.text(token), 10, 32)
	if err != nil {
		return p.syntaxErrors(token, "version number too large")
	}
	//
	statute.Version = uint(version)
	//
	return nil
}

func (p *Parser) parseDateLiteral() (util.Option[ast.Date], []source.SyntaxError) {
	token, errs := p.require(DATE_LITERAL)
	if len(errs) > 0 {
		return util.None[ast.Date](), errs
	}
	//
	date, err := ast.ParseDate(p.text(token))
	if err != nil {
		return util.None[ast.Date](), p.syntaxErrors(token, "invalid date")
	}
	//
	return util.Some(date), nil
}

func (p *Parser) parseSupersedes(statute *ast.Statute) []source.SyntaxError {
	for {
		id, errs := p.require(IDENTIFIER)
		if len(errs) > 0 {
			return errs
		}
		//
		statute.Supersedes = append(statute.Supersedes, ast.StatuteID(p.text(id)))
		//
		if !p.match(COMMA) {
			return nil
		}
	}
}

func (p *Parser) parseEffect() (ast.Effect, []source.SyntaxError) {
	var (
		empty ast.Effect
		kind  ast.EffectKind
		token = p.lookahead()
	)
	//
	switch token.Kind {
	case GRANT:
		kind = ast.GRANT
	case REVOKE:
		kind = ast.REVOKE
	case OBLIGATION:
		kind = ast.OBLIGATION
	case PROHIBITION:
		kind = ast.PROHIBITION
	case DISCRETION:
		kind = ast.DISCRETION
	default:
		return empty, p.unexpected(token, "expected an effect", EFFECTS...)
	}
	//
	p.index++
	//
	description, errs := p.require(STRING_LITERAL)
	if len(errs) > 0 {
		return empty, errs
	}
	//
	return ast.Effect{Kind: kind, Description: p.unquote(description)}, nil
}

// ==================================================================
// Conditions
// ==================================================================

// parseCondition parses a complete condition, that is a disjunction of
// conjunctions where NOT binds tightest and parentheses override.
func (p *Parser) parseCondition() (ast.Condition, []source.SyntaxError) {
	start := p.index
	//
	term, errs := p.parseConjunction()
	if len(errs) > 0 {
		return nil, errs
	}
	// match all disjuncts
	terms := []ast.Condition{term}
	//
	for p.match(OR) {
		term, errs = p.parseConjunction()
		if len(errs) > 0 {
			return nil, errs
		}
		//
		terms = append(terms, term)
	}
	//
	if len(terms) == 1 {
		return terms[0], nil
	}
	//
	or := &ast.Or{Args: terms}
	p.nodemap.Put(or, p.spanFrom(start))
	//
	return or, nil
}

func (p *Parser) parseConjunction() (ast.Condition, []source.SyntaxError) {
	start := p.index
	//
	term, errs := p.parseUnary()
	if len(errs) > 0 {
		return nil, errs
	}
	// match all conjuncts
	terms := []ast.Condition{term}
	//
	for p.match(AND) {
		term, errs = p.parseUnary()
		if len(errs) > 0 {
			return nil, errs
		}
		//
		terms = append(terms, term)
	}
	//
	if len(terms) == 1 {
		return terms[0], nil
	}
	//
	and := &ast.And{Args: terms}
	p.nodemap.Put(and, p.spanFrom(start))
	//
	return and, nil
}

func (p *Parser) parseUnary() (ast.Condition, []source.SyntaxError) {
	start := p.index
	//
	if p.match(NOT) {
		arg, errs := p.parseUnary()
		if len(errs) > 0 {
			return nil, errs
		}
		//
		not := &ast.Not{Arg: arg}
		p.nodemap.Put(not, p.spanFrom(start))
		//
		return not, nil
	}
	//
	if p.match(LPAREN) {
		term, errs := p.parseCondition()
		if len(errs) > 0 {
			return nil, errs
		}
		//
		if _, errs := p.require(RPAREN); len(errs) > 0 {
			return nil, errs
		}
		//
		return term, nil
	}
	//
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() (ast.Condition, []source.SyntaxError) {
	token := p.lookahead()
	//
	switch token.Kind {
	case AGE, INCOME:
		return p.parseNumericCondition()
	case DATE:
		return p.parseDateCondition()
	case HAS:
		return p.parseHasCondition()
	case IDENTIFIER:
		return p.parseAttributeCondition()
	}
	//
	return nil, p.unexpected(token, "expected a condition", AGE, INCOME, DATE, HAS, NOT)
}

// parseNumericCondition parses a condition over one of the numeric subjects
// (AGE or INCOME): either a direct comparison, an inclusive BETWEEN range, or
// an IN set.  Ranges and sets are desugared into conjunctions and
// disjunctions of direct comparisons.
func (p *Parser) parseNumericCondition() (ast.Condition, []source.SyntaxError) {
	var (
		start   = p.index
		subject = p.lookahead()
	)
	//
	p.index++
	//
	switch {
	case p.follows(COMPARATORS...):
		op := p.parseComparator()
		//
		value, errs := p.parseNumber()
		if len(errs) > 0 {
			return nil, errs
		}
		//
		leaf := p.numericLeaf(subject.Kind, op, value)
		p.nodemap.Put(leaf, p.spanFrom(start))
		//
		return leaf, nil
	case p.match(BETWEEN):
		lo, errs := p.parseNumber()
		if len(errs) > 0 {
			return nil, errs
		}
		//
		if _, errs := p.require(AND); len(errs) > 0 {
			return nil, errs
		}
		//
		hi, errs := p.parseNumber()
		if len(errs) > 0 {
			return nil, errs
		}
		// x BETWEEN a AND b desugars to x >= a AND x <= b.
		span := p.spanFrom(start)
		lhs := p.numericLeaf(subject.Kind, ast.GREATERTHAN_EQUALS, lo)
		rhs := p.numericLeaf(subject.Kind, ast.LESSTHAN_EQUALS, hi)
		and := &ast.And{Args: []ast.Condition{lhs, rhs}}
		//
		p.nodemap.Put(lhs, span)
		p.nodemap.Put(rhs, span)
		p.nodemap.Put(and, span)
		//
		return and, nil
	case p.match(IN):
		values, errs := p.parseNumberList()
		if len(errs) > 0 {
			return nil, errs
		}
		// x IN (v1, .., vn) desugars to x = v1 OR .. OR x = vn.
		span := p.spanFrom(start)
		terms := make([]ast.Condition, len(values))
		//
		for i, v := range values {
			terms[i] = p.numericLeaf(subject.Kind, ast.EQUALS, v)
			p.nodemap.Put(terms[i], span)
		}
		//
		if len(terms) == 1 {
			return terms[0], nil
		}
		//
		or := &ast.Or{Args: terms}
		p.nodemap.Put(or, span)
		//
		return or, nil
	}
	//
	return nil, p.syntaxErrors(p.lookahead(), fmt.Sprintf(
		"expected a comparison operator, found %s", p.describe(p.lookahead())))
}

func (p *Parser) numericLeaf(subject uint, op ast.CmpOp, value int64) ast.Condition {
	if subject == AGE {
		return &ast.Age{Op: op, Value: value}
	}
	//
	return &ast.Income{Op: op, Value: value}
}

func (p *Parser) parseDateCondition() (ast.Condition, []source.SyntaxError) {
	start := p.index
	//
	p.expect(DATE)
	//
	if !p.follows(COMPARATORS...) {
		return nil, p.syntaxErrors(p.lookahead(), fmt.Sprintf(
			"expected a comparison operator, found %s", p.describe(p.lookahead())))
	}
	//
	op := p.parseComparator()
	//
	date, errs := p.parseDateLiteral()
	if len(errs) > 0 {
		return nil, errs
	}
	//
	leaf := &ast.DateIs{Op: op, Value: date.Unwrap()}
	p.nodemap.Put(leaf, p.spanFrom(start))
	//
	return leaf, nil
}

func (p *Parser) parseHasCondition() (ast.Condition, []source.SyntaxError) {
	start := p.index
	//
	p.expect(HAS)
	//
	name, errs := p.require(IDENTIFIER)
	if len(errs) > 0 {
		return nil, errs
	}
	//
	leaf := &ast.HasAttribute{Name: p.text(name)}
	p.nodemap.Put(leaf, p.spanFrom(start))
	//
	return leaf, nil
}

// parseAttributeCondition parses a condition over a named textual attribute:
// an (in)equality against a string, a LIKE pattern, or an IN set of strings.
// Numeric comparison is reserved for the AGE and INCOME subjects.
func (p *Parser) parseAttributeCondition() (ast.Condition, []source.SyntaxError) {
	var (
		start   = p.index
		subject = p.lookahead()
		kind    = p.text(subject)
	)
	//
	p.index++
	//
	switch {
	case p.match(LIKE):
		pattern, errs := p.require(STRING_LITERAL)
		if len(errs) > 0 {
			return nil, errs
		}
		//
		leaf := &ast.Geographic{Kind: kind, Op: ast.EQUALS, Value: p.unquote(pattern), Pattern: true}
		p.nodemap.Put(leaf, p.spanFrom(start))
		//
		return leaf, nil
	case p.match(IN):
		values, errs := p.parseStringList()
		if len(errs) > 0 {
			return nil, errs
		}
		//
		span := p.spanFrom(start)
		terms := make([]ast.Condition, len(values))
		//
		for i, v := range values {
			terms[i] = &ast.Geographic{Kind: kind, Op: ast.EQUALS, Value: v}
			p.nodemap.Put(terms[i], span)
		}
		//
		if len(terms) == 1 {
			return terms[0], nil
		}
		//
		or := &ast.Or{Args: terms}
		p.nodemap.Put(or, span)
		//
		return or, nil
	case p.follows(BETWEEN):
		return nil, p.syntaxErrors(subject, "only AGE and INCOME support numeric ranges")
	case p.follows(COMPARATORS...):
		token := p.lookahead()
		op := p.parseComparator()
		// Textual attributes are unordered.
		if op != ast.EQUALS && op != ast.NOT_EQUALS {
			return nil, p.syntaxErrors(token, "textual attributes only support = and !=")
		}
		//
		value, errs := p.parseStringValue()
		if len(errs) > 0 {
			return nil, errs
		}
		//
		leaf := &ast.Geographic{Kind: kind, Op: op, Value: value}
		p.nodemap.Put(leaf, p.spanFrom(start))
		//
		return leaf, nil
	}
	//
	return nil, p.syntaxErrors(p.lookahead(), fmt.Sprintf(
		"expected a comparison, found %s", p.describe(p.lookahead())))
}

// parseComparator consumes a comparison operator token.  The caller must have
// already established one follows.
func (p *Parser) parseComparator() ast.CmpOp {
	token := p.lookahead()
	p.index++
	//
	switch token.Kind {
	case EQUALS:
		return ast.EQUALS
	case NOT_EQUALS:
		return ast.NOT_EQUALS
	case LESSTHAN:
		return ast.LESSTHAN
	case LESSTHAN_EQUALS:
		return ast.LESSTHAN_EQUALS
	case GREATERTHAN:
		return ast.GREATERTHAN
	case GREATERTHAN_EQUALS:
		return ast.GREATERTHAN_EQUALS
	}
	//
	panic("internal failure")
}

func (p *Parser) parseNumber() (int64, []source.SyntaxError) {
	token, errs := p.require(NUMBER)
	if len(errs) > 0 {
		return 0, errs
	}
	//
	value, err := strconv.ParseInt(p.text(token), 10, 64)
	if err != nil {
		return 0, p.syntaxErrors(token, "number too large")
	}
	//
	return value, nil
}

func (p *Parser) parseNumberList() ([]int64, []source.SyntaxError) {
	var values []int64
	//
	if _, errs := p.require(LPAREN); len(errs) > 0 {
		return nil, errs
	}
	//
	for {
		value, errs := p.parseNumber()
		if len(errs) > 0 {
			return nil, errs
		}
		//
		values = append(values, value)
		//
		if !p.match(COMMA) {
			break
		}
	}
	//
	if _, errs := p.require(RPAREN); len(errs) > 0 {
		return nil, errs
	}
	//
	return values, nil
}

// parseStringValue accepts either a string literal or a bare identifier,
// since region tags are commonly written unquoted.
func (p *Parser) parseStringValue() (string, []source.SyntaxError) {
	switch token := p.lookahead(); token.Kind {
	case STRING_LITERAL:
		p.index++
		return p.unquote(token), nil
	case IDENTIFIER:
		p.index++
		return p.text(token), nil
	case NUMBER:
		return "", p.syntaxErrors(token, "only AGE and INCOME support numeric comparison")
	default:
		return "", p.syntaxErrors(token, fmt.Sprintf("expected a string, found %s",
			p.describe(token)))
	}
}

func (p *Parser) parseStringList() ([]string, []source.SyntaxError) {
	var values []string
	//
	if _, errs := p.require(LPAREN); len(errs) > 0 {
		return nil, errs
	}
	//
	for {
		value, errs := p.parseStringValue()
		if len(errs) > 0 {
			return nil, errs
		}
		//
		values = append(values, value)
		//
		if !p.match(COMMA) {
			break
		}
	}
	//
	if _, errs := p.require(RPAREN); len(errs) > 0 {
		return nil, errs
	}
	//
	return values, nil
}

// ==================================================================
// Helpers
// ==================================================================

// Lookahead returns the next token.  This must exist because END_OF is always
// appended at the end of the token stream.
func (p *Parser) lookahead() lex.Token {
	return p.tokens[p.index]
}

// Follows checks whether one of the given token kinds is next.
func (p *Parser) follows(options ...uint) bool {
	return slices.Contains(options, p.lookahead().Kind)
}

// Expect consumes a token of a given kind, where the caller has already
// established it follows.
func (p *Parser) expect(kind uint) lex.Token {
	if p.lookahead().Kind != kind {
		panic("internal failure")
	}
	//
	token := p.tokens[p.index]
	p.index++
	//
	return token
}

// Match consumes the next token if it has a given kind.
func (p *Parser) match(kind uint) bool {
	if p.lookahead().Kind == kind {
		p.index++
		return true
	}
	//
	return false
}

// Require consumes a token of a given kind, producing a syntax error (and
// consuming nothing) otherwise.
func (p *Parser) require(kind uint) (lex.Token, []source.SyntaxError) {
	token := p.lookahead()
	//
	if token.Kind == kind {
		p.index++
		return token, nil
	}
	//
	msg := fmt.Sprintf("expected %s, found %s", kindName(kind), p.describe(token))
	//
	return token, []source.SyntaxError{*p.srcfile.SyntaxError(token.Span, msg)}
}

// Skip forward to the start of the next top-level declaration, such that
// parsing can continue after a malformed statute.
func (p *Parser) synchronize() {
	for !p.follows(END_OF, STATUTE, AMENDMENT, IMPORT) {
		p.index++
	}
}

// Get the text representing the given token as a string.
func (p *Parser) text(token lex.Token) string {
	return p.srcfile.Text(token.Span)
}

// Get the contents of a string literal token, resolving escape sequences.
func (p *Parser) unquote(token lex.Token) string {
	var (
		runes   = []rune(p.text(token))
		builder strings.Builder
	)
	// Strip the enclosing quotes, then resolve escapes.
	runes = runes[1 : len(runes)-1]
	//
	for i := 0; i < len(runes); i++ {
		if runes[i] == '\\' && i+1 < len(runes) {
			i++
		}
		//
		builder.WriteRune(runes[i])
	}
	//
	return builder.String()
}

// Get the span of tokens parsed since a given starting position.
func (p *Parser) spanFrom(start int) source.Span {
	first := p.tokens[start].Span
	last := p.tokens[p.index-1].Span
	//
	return first.Join(last)
}

// Describe a given token for use within a syntax error message.
func (p *Parser) describe(token lex.Token) string {
	switch token.Kind {
	case END_OF:
		return "end of file"
	case NUMBER, DATE_LITERAL, STRING_LITERAL:
		return kindName(token.Kind)
	}
	//
	return fmt.Sprintf("'%s'", p.text(token))
}

func (p *Parser) syntaxErrors(token lex.Token, msg string) []source.SyntaxError {
	return []source.SyntaxError{*p.srcfile.SyntaxError(token.Span, msg)}
}

// Unexpected constructs a syntax error for a token found at a position where
// one of the given keywords was required, hinting at the closest keyword
// where the token plausibly holds a misspelling.
func (p *Parser) unexpected(token lex.Token, msg string, candidates ...uint) []source.SyntaxError {
	msg = fmt.Sprintf("%s, found %s", msg, p.describe(token))
	//
	if token.Kind == IDENTIFIER {
		if hint := didYouMean(p.text(token), candidates); hint != "" {
			return []source.SyntaxError{*p.srcfile.SyntaxErrorWithHint(token.Span, msg, hint)}
		}
	}
	//
	return []source.SyntaxError{*p.srcfile.SyntaxError(token.Span, msg)}
}

// didYouMean determines the closest candidate keyword to a given (misspelt)
// identifier, provided any is plausibly close.  This affects only the quality
// of the diagnostic, never correctness.
func didYouMean(found string, candidates []uint) string {
	var (
		best     string
		bestDist = 3
	)
	//
	for _, kind := range candidates {
		text := keywordText(kind)
		//
		if d := levenshtein(found, text); d < bestDist {
			best, bestDist = text, d
		}
	}
	//
	if best == "" {
		return ""
	}
	//
	return fmt.Sprintf("did you mean '%s'?", best)
}

// keywordText returns the source text of a given keyword kind.
func keywordText(kind uint) string {
	for text, k := range keywords {
		if k == kind {
			return text
		}
	}
	//
	panic("unknown keyword")
}

// levenshtein computes the edit distance between two strings, using the
// classic two-row dynamic programming formulation.
func levenshtein(lhs string, rhs string) int {
	var (
		left  = []rune(lhs)
		right = []rune(rhs)
		// Previous and current rows of the distance matrix.
		prev = make([]int, len(right)+1)
		curr = make([]int, len(right)+1)
	)
	//
	for j := 0; j <= len(right); j++ {
		prev[j] = j
	}
	//
	for i := 1; i <= len(left); i++ {
		curr[0] = i
		//
		for j := 1; j <= len(right); j++ {
			cost := 1
			if left[i-1] == right[j-1] {
				cost = 0
			}
			//
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		//
		prev, curr = curr, prev
	}
	//
	return prev[len(right)]
}
