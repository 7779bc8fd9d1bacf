package grammar

import (
	"fmt"

	"github.com/tablewright/tablewright/lrerr"
	"github.com/tablewright/tablewright/ordered"
)

// Grammar is an immutable, once-built rule set: terminals, nonterminals,
// the designated start symbol, the dedicated end-of-input terminal, and
// the rule list. All grammar-analysis entities derived from a Grammar
// (items, state collections, the action table) are themselves read-only
// once built, per spec.md §3's Lifecycle.
type Grammar struct {
	Terminals    []Symbol
	Nonterminals []Symbol
	Start        Symbol
	EndOfInput   Symbol
	Rules        []Rule
}

// New builds and validates a Grammar. Rule.Index is assigned by position
// in rules, overriding any value the caller set. New returns
// lrerr.UndefinedSymbol if a rule mentions a symbol declared as neither a
// terminal nor a nonterminal, lrerr.NoStartRule if the grammar does not
// have exactly one rule whose Lhs is start, or a plain error if a rule has
// an empty right-hand side (epsilon productions are a documented
// non-goal) or the start rule does not end with the end-of-input symbol.
func New(terminals, nonterminals []Symbol, start, endOfInput Symbol, rules []Rule) (*Grammar, error) {
	g := &Grammar{
		Terminals:    append([]Symbol(nil), terminals...),
		Nonterminals: append([]Symbol(nil), nonterminals...),
		Start:        start,
		EndOfInput:   endOfInput,
		Rules:        append([]Rule(nil), rules...),
	}
	for i := range g.Rules {
		g.Rules[i].Index = i
	}
	if err := g.validate(); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Grammar) validate() error {
	known := make(map[Symbol]bool, len(g.Terminals)+len(g.Nonterminals))
	for _, t := range g.Terminals {
		known[t] = true
	}
	for _, n := range g.Nonterminals {
		known[n] = true
	}

	startRules := 0
	for _, r := range g.Rules {
		if !known[r.LHS] {
			return &lrerr.UndefinedSymbol{Symbol: r.LHS.Name}
		}
		if len(r.RHS) == 0 {
			return fmt.Errorf("rule %d (%s): empty right-hand side is not supported (no epsilon productions)", r.Index, r.LHS)
		}
		for _, s := range r.RHS {
			if !known[s] {
				return &lrerr.UndefinedSymbol{Symbol: s.Name}
			}
		}
		if r.LHS == g.Start {
			startRules++
		}
		if r.Construct == nil {
			return fmt.Errorf("rule %d (%s): no constructor supplied", r.Index, r.LHS)
		}
	}
	if startRules != 1 {
		return &lrerr.NoStartRule{Start: g.Start.Name}
	}

	sr := g.startRule()
	if sr.RHS[len(sr.RHS)-1] != g.EndOfInput {
		return fmt.Errorf("start rule %s must end with the end-of-input symbol %s", sr.LHS, g.EndOfInput)
	}
	return nil
}

// startRule returns the grammar's unique start rule. Only valid to call
// after validate has confirmed exactly one exists.
func (g *Grammar) startRule() Rule {
	for _, r := range g.Rules {
		if r.LHS == g.Start {
			return r
		}
	}
	panic("grammar: no start rule found; New should have rejected this grammar")
}

// RulesFor returns every rule whose left-hand side is nt, in declaration
// order.
func (g *Grammar) RulesFor(nt Symbol) []Rule {
	var out []Rule
	for _, r := range g.Rules {
		if r.LHS == nt {
			out = append(out, r)
		}
	}
	return out
}

// Symbols returns every terminal followed by every nonterminal, the fixed
// column ordering the action table is built against.
func (g *Grammar) Symbols() []Symbol {
	out := make([]Symbol, 0, len(g.Terminals)+len(g.Nonterminals))
	out = append(out, g.Terminals...)
	out = append(out, g.Nonterminals...)
	return out
}

// StartItemSet returns the closure of { S ← • γ | rule S ← γ exists },
// the seed item set for state 0 of the canonical LR(0) collection.
func (g *Grammar) StartItemSet() *ordered.Set[Item] {
	items := ordered.NewSet[Item]()
	for _, r := range g.Rules {
		if r.LHS == g.Start {
			items.Add(Item{RuleIndex: r.Index, Dot: 0})
		}
	}
	return g.Closure(items)
}

// Closure computes the least fixpoint of items under: if Lhs ← α • Y β is
// in the set and Y is a nonterminal, add every item Y ← • γ for every rule
// Y ← γ. A nonterminal is expanded at most once per call (tracked via
// expanded, playing the role of spec.md §4.1's "pending set, initially all
// of N, removed when first expanded") so the fixpoint terminates in time
// bounded by the grammar's rule count rather than by the growing item set.
func (g *Grammar) Closure(items *ordered.Set[Item]) *ordered.Set[Item] {
	result := items.Copy()
	expanded := make(map[Symbol]bool)

	changed := true
	for changed {
		changed = false
		for _, it := range result.Elements() {
			next, ok := it.NextSymbol(g)
			if !ok || next.IsTerminal() || expanded[next] {
				continue
			}
			expanded[next] = true
			changed = true
			for _, r := range g.RulesFor(next) {
				result.Add(Item{RuleIndex: r.Index, Dot: 0})
			}
		}
	}
	return result
}

// Goto computes GOTO(items, x): the closure of every item in items that
// has x immediately after its dot, advanced one position. If no item in
// items has x after the dot, Goto returns the empty set (Len() == 0),
// signaling "no transition" to the automaton builder. Goto depends only
// on its two arguments, never on construction-order side state.
func (g *Grammar) Goto(items *ordered.Set[Item], x Symbol) *ordered.Set[Item] {
	advanced := ordered.NewSet[Item]()
	for _, it := range items.Elements() {
		next, ok := it.NextSymbol(g)
		if ok && next == x {
			advanced.Add(it.Advance())
		}
	}
	if advanced.Empty() {
		return advanced
	}
	return g.Closure(advanced)
}
