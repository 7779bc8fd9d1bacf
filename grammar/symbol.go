// Package grammar defines the symbol, rule, and item model that every
// other component in tablewright (automaton, lrtable, parse) is built
// against, plus the closure and GOTO operations that drive canonical
// LR(0) item-set construction. Grounded on the teacher's
// internal/ictiobus/grammar/item.go (LR0Item) and the shape of
// internal/ictiobus/types/class.go's TokenClass, generalized from
// string-keyed terminals to a nominal Symbol type shared by terminals and
// nonterminals alike, per spec.md's "opaque nominal type identified by
// equality".
package grammar

import "fmt"

// SymbolKind distinguishes a terminal (produced by the scanner) from a
// nonterminal (produced by reduction).
type SymbolKind int

const (
	Terminal SymbolKind = iota
	Nonterminal
)

func (k SymbolKind) String() string {
	if k == Terminal {
		return "terminal"
	}
	return "nonterminal"
}

// Symbol is a nominal grammar symbol. Two Symbols are equal iff both their
// Name and Kind match; this makes Symbol directly usable as a map key and
// as an element of ordered.Set[Symbol].
type Symbol struct {
	Name string
	Kind SymbolKind
}

// NewTerminal returns a terminal symbol with the given name.
func NewTerminal(name string) Symbol { return Symbol{Name: name, Kind: Terminal} }

// NewNonterminal returns a nonterminal symbol with the given name.
func NewNonterminal(name string) Symbol { return Symbol{Name: name, Kind: Nonterminal} }

func (s Symbol) String() string { return s.Name }

// IsTerminal reports whether s is a terminal symbol.
func (s Symbol) IsTerminal() bool { return s.Kind == Terminal }

// IsNonterminal reports whether s is a nonterminal symbol.
func (s Symbol) IsNonterminal() bool { return s.Kind == Nonterminal }

// GoString supports %#v debugging output distinct from the plain name.
func (s Symbol) GoString() string {
	return fmt.Sprintf("Symbol{%q, %s}", s.Name, s.Kind)
}
