// Package lrerr defines the construction-time and parse-time error kinds
// named by the grammar-analysis, table-construction, parse-driver and ART
// components. Fields are kept as plain strings/ints rather than pointers
// back into the grammar or automaton packages so that those packages can
// depend on lrerr without creating an import cycle.
package lrerr

import (
	"fmt"
	"strings"

	"github.com/dekarrin/rosed"
)

// ShiftReduceConflict is reported when a state contains both a completed
// item and an outgoing shift on the same terminal.
type ShiftReduceConflict struct {
	State      int
	Terminal   string
	ReduceRule string
}

func (e *ShiftReduceConflict) Error() string {
	msg := fmt.Sprintf("state %d: shift/reduce conflict on terminal %q (could shift, or reduce by %s)",
		e.State, e.Terminal, e.ReduceRule)
	return rosed.Edit(msg).Wrap(100).String()
}

// ReduceReduceConflict is reported when a state contains two or more
// distinct completed items.
type ReduceReduceConflict struct {
	State int
	Rules []string
}

func (e *ReduceReduceConflict) Error() string {
	msg := fmt.Sprintf("state %d: reduce/reduce conflict between rules: %s",
		e.State, strings.Join(e.Rules, "; "))
	return rosed.Edit(msg).Wrap(100).String()
}

// UndefinedSymbol is reported when a rule mentions a symbol that was
// declared neither a terminal nor a nonterminal.
type UndefinedSymbol struct {
	Symbol string
}

func (e *UndefinedSymbol) Error() string {
	return fmt.Sprintf("undefined symbol %q: not declared as a terminal or nonterminal", e.Symbol)
}

// NoStartRule is reported when the grammar does not contain exactly one
// rule whose left-hand side is the designated start symbol.
type NoStartRule struct {
	Start string
}

func (e *NoStartRule) Error() string {
	return fmt.Sprintf("grammar must have exactly one rule with start symbol %q as its left-hand side", e.Start)
}

// UnexpectedToken is the parse-time error raised when the driver consults
// an Unreachable action cell.
type UnexpectedToken struct {
	State    int
	Symbol   string
	Expected []string
}

func (e *UnexpectedToken) Error() string {
	if len(e.Expected) == 0 {
		return fmt.Sprintf("unexpected token %q in state %d", e.Symbol, e.State)
	}
	msg := fmt.Sprintf("unexpected token %q in state %d; expected one of: %s",
		e.Symbol, e.State, strings.Join(e.Expected, ", "))
	return rosed.Edit(msg).Wrap(100).String()
}

// ResultNotReady is returned by a parse driver's Result method when called
// before a token stream has driven the driver to Accept.
type ResultNotReady struct{}

func (e *ResultNotReady) Error() string {
	return "result() called before an accepting parse has completed"
}

// EmptyKeySet is returned by the ART builder when given no keys.
type EmptyKeySet struct{}

func (e *EmptyKeySet) Error() string {
	return "adaptive radix tree: no keys supplied to Build"
}

// DuplicateKey is returned by the ART builder when the same key appears
// twice in the input set.
type DuplicateKey struct {
	Key string
}

func (e *DuplicateKey) Error() string {
	return fmt.Sprintf("adaptive radix tree: duplicate key %q", e.Key)
}

// UnknownLexeme is returned by a scanner harness when none of its matchers
// recognize the input at the given offset. This is the contract the design
// notes ask for in place of the original source's incomplete tokenize_next
// fallthrough: try matchers in declaration order, fail explicitly on no
// match.
type UnknownLexeme struct {
	Offset int
}

func (e *UnknownLexeme) Error() string {
	return fmt.Sprintf("no terminal matcher recognized input at offset %d", e.Offset)
}
