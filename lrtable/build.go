package lrtable

import (
	"fmt"

	"github.com/tablewright/tablewright/automaton"
	"github.com/tablewright/tablewright/grammar"
	"github.com/tablewright/tablewright/lrerr"
)

// Table is the action/goto table for a grammar's LR(0) automaton: a 2-D
// array indexed by (stateId, symbolId), symbolId enumerating terminals
// followed by nonterminals per spec.md §3. Built once from an Automaton
// and Grammar, and thereafter read-only.
type Table struct {
	Automaton *automaton.Automaton
	Grammar   *grammar.Grammar

	columns  []grammar.Symbol
	colIndex map[grammar.Symbol]int
	rows     [][]Action
}

// Build constructs the action table for aut/g, implementing spec.md
// §4.2's per-cell decision:
//
//  1. x is a nonterminal and GOTO(state, x) is non-empty: Goto.
//  2. state's item set is exactly the completed start-rule item (reachable
//     only by shifting the end-of-input terminal in from some predecessor):
//     Unreachable for every column. Such a state is never entered at
//     runtime; see step 4.
//  3. x is a terminal and state has a completed item (and state is not the
//     accept-only state from step 2):
//     - Reduce.
//     - if state ALSO has an outgoing shift on x: ShiftReduceConflict.
//     - if state has two distinct completed items: ReduceReduceConflict.
//  4. x is a terminal, no completed item, but GOTO(state, x) non-empty:
//     - if that target state is the accept-only state from step 2: Accept,
//       right here, instead of a Shift into it. This is the only place
//       Accept is ever recorded, which is what keeps it unique per spec.md
//       §8: the target's own row is entirely Unreachable per step 2, so no
//       other cell can also claim Accept.
//     - otherwise: Shift.
//  5. otherwise: Unreachable.
func Build(aut *automaton.Automaton, g *grammar.Grammar) (*Table, error) {
	t := &Table{
		Automaton: aut,
		Grammar:   g,
		columns:   g.Symbols(),
	}
	t.colIndex = make(map[grammar.Symbol]int, len(t.columns))
	for i, s := range t.columns {
		t.colIndex[s] = i
	}

	t.rows = make([][]Action, aut.Len())
	acceptSeen := false

	for _, state := range aut.States {
		row := make([]Action, len(t.columns))
		for ci, x := range t.columns {
			act, err := t.cell(state, x, &acceptSeen)
			if err != nil {
				return nil, err
			}
			row[ci] = act
		}
		t.rows[state.ID] = row
	}

	if !acceptSeen {
		return nil, fmt.Errorf("lrtable: grammar produced no accept action; the start rule never completes")
	}

	return t, nil
}

// FromRows reconstructs a Table directly from a previously computed row
// set, skipping per-cell decision logic entirely. Used by
// internal/tablestore to rehydrate a cached build without recomputing it.
func FromRows(aut *automaton.Automaton, g *grammar.Grammar, columns []grammar.Symbol, rows [][]Action) *Table {
	t := &Table{Automaton: aut, Grammar: g, columns: columns, rows: rows}
	t.colIndex = make(map[grammar.Symbol]int, len(columns))
	for i, s := range columns {
		t.colIndex[s] = i
	}
	return t
}

func (t *Table) cell(state automaton.State, x grammar.Symbol, acceptSeen *bool) (Action, error) {
	if x.IsNonterminal() {
		if next, ok := t.Automaton.Goto(state.ID, x); ok {
			return Action{Kind: Goto, Next: next}, nil
		}
		return Action{Kind: Unreachable}, nil
	}

	if _, ok := acceptOnlyRule(state, t.Grammar); ok {
		// Reached only by shifting the end-of-input terminal in from the
		// predecessor state; that shift resolves directly to Accept below,
		// so this row is never consulted.
		return Action{Kind: Unreachable}, nil
	}

	var completed []grammar.Item
	for _, it := range state.Items.Elements() {
		if it.Complete(t.Grammar) {
			completed = append(completed, it)
		}
	}

	if len(completed) > 0 {
		if len(completed) > 1 {
			names := make([]string, len(completed))
			for i, it := range completed {
				names[i] = it.Rule(t.Grammar).String()
			}
			return Action{}, &lrerr.ReduceReduceConflict{State: int(state.ID), Rules: names}
		}

		item := completed[0]
		rule := item.Rule(t.Grammar)

		if _, shiftOK := t.Automaton.Goto(state.ID, x); shiftOK {
			return Action{}, &lrerr.ShiftReduceConflict{
				State:      int(state.ID),
				Terminal:   x.Name,
				ReduceRule: rule.String(),
			}
		}

		return Action{
			Kind:      Reduce,
			RuleIndex: rule.Index,
			LHS:       rule.LHS,
			RHSLen:    len(rule.RHS),
		}, nil
	}

	if next, ok := t.Automaton.Goto(state.ID, x); ok {
		if ruleIdx, ok := acceptOnlyRule(t.Automaton.State(next), t.Grammar); ok {
			*acceptSeen = true
			return Action{Kind: Accept, RuleIndex: ruleIdx}, nil
		}
		return Action{Kind: Shift, Next: next}, nil
	}
	return Action{Kind: Unreachable}, nil
}

// acceptOnlyRule reports whether state's item set consists solely of the
// completed start-rule item, and if so, that rule's index. A state shaped
// this way has no outgoing transitions of its own (the dot has nowhere
// left to go) and is reachable only by shifting the end-of-input terminal
// in from whatever state holds S ← α • $; cell redirects that shift to
// Accept instead of ever entering it.
func acceptOnlyRule(state automaton.State, g *grammar.Grammar) (int, bool) {
	items := state.Items.Elements()
	if len(items) != 1 {
		return 0, false
	}
	it := items[0]
	if !it.Complete(g) {
		return 0, false
	}
	rule := it.Rule(g)
	if rule.LHS != g.Start {
		return 0, false
	}
	return rule.Index, true
}

// Action returns the action-table cell for (state, x). Querying a symbol
// outside the grammar's declared terminals/nonterminals returns
// Unreachable rather than panicking.
func (t *Table) Action(state automaton.StateID, x grammar.Symbol) Action {
	ci, ok := t.colIndex[x]
	if !ok || int(state) >= len(t.rows) {
		return Action{Kind: Unreachable}
	}
	return t.rows[state][ci]
}

// Columns returns the fixed column ordering (terminals then nonterminals)
// the table was built against.
func (t *Table) Columns() []grammar.Symbol {
	return append([]grammar.Symbol(nil), t.columns...)
}

// NumStates returns the number of rows in the table.
func (t *Table) NumStates() int {
	return len(t.rows)
}

// ExpectedTerminals returns the human-readable names of every terminal
// that has a non-Unreachable action in the given state, for building
// "unexpected token; expected one of ..." messages.
func (t *Table) ExpectedTerminals(state automaton.StateID) []string {
	var out []string
	for _, term := range t.Grammar.Terminals {
		if t.Action(state, term).Kind != Unreachable {
			out = append(out, term.Name)
		}
	}
	return out
}
