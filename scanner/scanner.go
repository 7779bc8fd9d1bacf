// Package scanner is the thin coordinator described at interface level by
// spec.md §4.5: it pairs a prefix-matching strategy (an art.Tree or a
// hand-written Matcher) with a parse.Driver. It is explicitly an external
// collaborator, not a scanner for any particular grammar — no concrete
// terminal matchers live here.
//
// Grounded on spec.md §9's resolved Open Question: the original source's
// tokenize_next has an incomplete fallthrough branch with no final return
// and an apparent self-recursion. This implementation defines the clear
// contract the design notes ask for instead: try matchers in declaration
// order, and fail with lrerr.UnknownLexeme on exhaustion rather than
// silently falling through.
package scanner

import (
	"github.com/tablewright/tablewright/art"
	"github.com/tablewright/tablewright/grammar"
	"github.com/tablewright/tablewright/lrerr"
	"github.com/tablewright/tablewright/parse"
)

// Matcher tries to recognize a terminal at the start of input. ok is
// false if the matcher does not recognize anything there; otherwise sym
// is the recognized terminal and n > 0 is the number of bytes consumed.
type Matcher interface {
	Match(input []byte) (sym grammar.Symbol, n int, ok bool)
}

// MatcherFunc adapts a plain function to the Matcher interface.
type MatcherFunc func(input []byte) (grammar.Symbol, int, bool)

func (f MatcherFunc) Match(input []byte) (grammar.Symbol, int, bool) { return f(input) }

// Scanner coordinates a parse.Driver with an ordered list of Matchers.
type Scanner struct {
	driver     *parse.Driver
	matchers   []Matcher
	end        grammar.Symbol
	makeLexeme func(sym grammar.Symbol, lexeme []byte) grammar.Value
}

// DefaultLexemeValue wraps the raw matched bytes (as a string) alongside
// the symbol, a reasonable default for grammars whose constructors want
// the literal scanned text.
func DefaultLexemeValue(sym grammar.Symbol, lexeme []byte) grammar.Value {
	return grammar.NewValue(sym, string(lexeme))
}

// New creates a Scanner over driver, trying matchers in declaration order
// on each iteration and feeding end once input is exhausted. makeLexeme
// builds the grammar.Value fed to the driver from a matched symbol and
// its raw bytes; pass nil to use DefaultLexemeValue.
func New(driver *parse.Driver, end grammar.Symbol, makeLexeme func(grammar.Symbol, []byte) grammar.Value, matchers ...Matcher) *Scanner {
	if makeLexeme == nil {
		makeLexeme = DefaultLexemeValue
	}
	return &Scanner{driver: driver, matchers: matchers, end: end, makeLexeme: makeLexeme}
}

// Run scans input to completion, feeding each recognized terminal (and
// finally the end-of-input terminal) to the driver's ReadToken, and
// returns the driver's accepted Result.
func (s *Scanner) Run(input []byte) (grammar.Value, error) {
	offset := 0
	for len(input) > 0 {
		sym, n, ok := s.tryMatchers(input)
		if !ok {
			return grammar.Value{}, &lrerr.UnknownLexeme{Offset: offset}
		}

		val := s.makeLexeme(sym, input[:n])
		accepted, err := s.driver.ReadToken(val)
		if err != nil {
			return grammar.Value{}, err
		}
		if accepted {
			return s.driver.Result()
		}

		input = input[n:]
		offset += n
	}

	accepted, err := s.driver.ReadToken(grammar.NewValue(s.end, nil))
	if err != nil {
		return grammar.Value{}, err
	}
	if !accepted {
		return grammar.Value{}, &lrerr.UnexpectedToken{Symbol: s.end.Name}
	}
	return s.driver.Result()
}

// tryMatchers tries each matcher in declaration order, returning the
// first that recognizes a non-empty prefix of input.
func (s *Scanner) tryMatchers(input []byte) (grammar.Symbol, int, bool) {
	for _, m := range s.matchers {
		if sym, n, ok := m.Match(input); ok && n > 0 {
			return sym, n, true
		}
	}
	return grammar.Symbol{}, 0, false
}

// ArtMatcher adapts an art.Tree keyword set to Matcher, doing maximal
// munch over input: it walks the tree byte by byte, remembering the
// longest prefix of input that lands on a leaf, and reports that prefix's
// symbol and length. A keyword set with no key a prefix of another (the
// common case: reserved words) makes this equivalent to an exact-key
// lookup at the natural token boundary.
type ArtMatcher struct {
	Tree      *art.Tree
	SymbolFor func(leaf art.LeafID) grammar.Symbol
}

func (m ArtMatcher) Match(input []byte) (grammar.Symbol, int, bool) {
	bestLen := -1
	var bestLeaf art.LeafID
	for n := 1; n <= len(input); n++ {
		if leaf, ok := m.Tree.Find(input[:n]); ok {
			bestLen = n
			bestLeaf = leaf
		}
	}
	if bestLen < 0 {
		return grammar.Symbol{}, 0, false
	}
	return m.SymbolFor(bestLeaf), bestLen, true
}
