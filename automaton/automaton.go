// Package automaton computes the canonical collection of LR(0) item sets
// for a grammar and the GOTO transition function between them, per
// spec.md §4.1. The core generic state-machine shape (named states,
// symbol-keyed transitions) follows the teacher's
// internal/ictiobus/automaton.DFA[E]/NFA[E], specialized here to a single
// concrete element type (grammar.Item sets) rather than kept generic,
// since this module only ever builds one kind of automaton.
package automaton

import (
	"github.com/tablewright/tablewright/grammar"
	"github.com/tablewright/tablewright/ordered"
)

// StateID identifies a state by its position in the Automaton's state
// collection, i.e. the order of first insertion. State 0 is always the
// closure of the start items.
type StateID int

// State pairs a StateID with the LR(0) item set it represents.
type State struct {
	ID    StateID
	Items *ordered.Set[grammar.Item]
}

// Automaton is the canonical LR(0) item-set collection for a grammar,
// together with its GOTO transition function. It is built once and
// thereafter read-only.
type Automaton struct {
	Grammar *grammar.Grammar
	States  []State

	trans map[StateID]map[grammar.Symbol]StateID
}

// Build computes the canonical LR(0) collection: starting from the
// closure of the start items (state 0), repeatedly computing GOTO(state,
// X) for every known state and every grammar symbol X, appending any
// non-empty, not-already-present result, until a full pass adds nothing.
// Because state identity is by item-set contents rather than discovery
// order, this sweep is monotone and terminates — the number of distinct
// LR(0) item sets over a grammar is finite.
func Build(g *grammar.Grammar) (*Automaton, error) {
	a := &Automaton{
		Grammar: g,
		trans:   make(map[StateID]map[grammar.Symbol]StateID),
	}
	a.addState(g.StartItemSet())

	symbols := g.Symbols()

	for {
		added := false
		// index loop re-reads len(a.States) on every step rather than
		// ranging over a snapshot: States grows as we go, and newly
		// appended states are also swept in this same pass so transitions
		// propagate without waiting an extra lap.
		for i := 0; i < len(a.States); i++ {
			s := a.States[i]
			for _, x := range symbols {
				next := g.Goto(s.Items, x)
				if next.Empty() {
					continue
				}
				id, isNew := a.addState(next)
				a.setTrans(s.ID, x, id)
				added = added || isNew
			}
		}
		if !added {
			break
		}
	}

	return a, nil
}

// FromStates reconstructs an Automaton directly from a previously computed
// state collection and transition table, skipping the canonical-collection
// sweep entirely. Used by internal/tablestore to rehydrate a cached build
// without recomputing it.
func FromStates(g *grammar.Grammar, states []State, trans map[StateID]map[grammar.Symbol]StateID) *Automaton {
	return &Automaton{Grammar: g, States: states, trans: trans}
}

// addState appends items as a new state unless an existing state already
// has the same item-set contents, returning that state's id either way
// and whether it was newly created.
func (a *Automaton) addState(items *ordered.Set[grammar.Item]) (StateID, bool) {
	for _, s := range a.States {
		if s.Items.Equal(items) {
			return s.ID, false
		}
	}
	id := StateID(len(a.States))
	a.States = append(a.States, State{ID: id, Items: items})
	a.trans[id] = make(map[grammar.Symbol]StateID)
	return id, true
}

func (a *Automaton) setTrans(from StateID, x grammar.Symbol, to StateID) {
	a.trans[from][x] = to
}

// Goto reports the transition target from state on symbol x, and whether
// one exists at all (an item in state had x after its dot).
func (a *Automaton) Goto(state StateID, x grammar.Symbol) (StateID, bool) {
	row, ok := a.trans[state]
	if !ok {
		return 0, false
	}
	to, ok := row[x]
	return to, ok
}

// State returns the state with the given id.
func (a *Automaton) State(id StateID) State {
	return a.States[id]
}

// Len returns the number of states in the collection.
func (a *Automaton) Len() int {
	return len(a.States)
}
