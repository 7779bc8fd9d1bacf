package tablestore

import (
	"bytes"
	"encoding/gob"
	"fmt"

	"github.com/tablewright/tablewright/automaton"
	"github.com/tablewright/tablewright/grammar"
	"github.com/tablewright/tablewright/lrtable"
	"github.com/tablewright/tablewright/ordered"
)

// symbolSnap is grammar.Symbol with its fields exported for gob, since
// grammar.Symbol's own fields are already exported but its Kind is a typed
// int that gob handles fine directly - kept as its own type only so the
// snapshot format doesn't depend on grammar.Symbol's internal layout
// staying gob-stable.
type symbolSnap struct {
	Name string
	Kind int
}

type itemSnap struct {
	RuleIndex int
	Dot       int
}

type stateSnap struct {
	ID    int
	Items []itemSnap
}

type transSnap struct {
	From int
	Sym  symbolSnap
	To   int
}

type actionSnap struct {
	Kind      int
	Next      int
	RuleIndex int
	LHS       symbolSnap
	RHSLen    int
}

// tableSnapshot is the on-disk representation of a built Table+Automaton:
// every field needed to reconstruct both without recomputing closures or
// action-table cells. The grammar itself (with its Go-func constructors) is
// never part of the snapshot - the caller always supplies the live grammar
// it was built from.
type tableSnapshot struct {
	States  []stateSnap
	Trans   []transSnap
	Columns []symbolSnap
	Rows    [][]actionSnap
}

func snapshotOf(table *lrtable.Table, aut *automaton.Automaton) tableSnapshot {
	var snap tableSnapshot

	for _, st := range aut.States {
		items := st.Items.Elements()
		itemSnaps := make([]itemSnap, len(items))
		for i, it := range items {
			itemSnaps[i] = itemSnap{RuleIndex: it.RuleIndex, Dot: it.Dot}
		}
		snap.States = append(snap.States, stateSnap{ID: int(st.ID), Items: itemSnaps})

		for _, x := range table.Columns() {
			if to, ok := aut.Goto(st.ID, x); ok {
				snap.Trans = append(snap.Trans, transSnap{
					From: int(st.ID),
					Sym:  symbolSnap{Name: x.Name, Kind: int(x.Kind)},
					To:   int(to),
				})
			}
		}
	}

	for _, x := range table.Columns() {
		snap.Columns = append(snap.Columns, symbolSnap{Name: x.Name, Kind: int(x.Kind)})
	}

	for state := 0; state < table.NumStates(); state++ {
		var row []actionSnap
		for _, x := range table.Columns() {
			act := table.Action(automaton.StateID(state), x)
			row = append(row, actionSnap{
				Kind:      int(act.Kind),
				Next:      int(act.Next),
				RuleIndex: act.RuleIndex,
				LHS:       symbolSnap{Name: act.LHS.Name, Kind: int(act.LHS.Kind)},
				RHSLen:    act.RHSLen,
			})
		}
		snap.Rows = append(snap.Rows, row)
	}

	return snap
}

// MarshalBinary implements encoding.BinaryMarshaler, the interface
// github.com/dekarrin/rezi's EncBinary/DecBinary helpers operate against
// (mirroring the teacher's rezi.EncBinary(g) usage in
// server/dao/sqlite/sqlite.go). The body uses gob, the standard library's
// own self-describing binary format, since rezi itself only adds an
// envelope around whatever bytes this method produces.
func (s *tableSnapshot) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(s); err != nil {
		return nil, fmt.Errorf("tablestore: encode snapshot: %w", err)
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (s *tableSnapshot) UnmarshalBinary(data []byte) error {
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(s); err != nil {
		return fmt.Errorf("tablestore: decode snapshot: %w", err)
	}
	return nil
}

// rehydrate reconstructs a live Automaton/Table pair from the snapshot,
// resolving every symbolSnap back to the actual grammar.Symbol values g
// declares (symbol equality is nominal, so these must be g's own Symbol
// values, not copies).
func (s *tableSnapshot) rehydrate(g *grammar.Grammar) (*lrtable.Table, *automaton.Automaton, error) {
	resolve := func(sym symbolSnap) (grammar.Symbol, error) {
		if sym.Name == "" {
			return grammar.Symbol{}, nil
		}
		for _, x := range g.Symbols() {
			if x.Name == sym.Name && int(x.Kind) == sym.Kind {
				return x, nil
			}
		}
		return grammar.Symbol{}, fmt.Errorf("symbol %q not found in grammar", sym.Name)
	}

	states := make([]automaton.State, len(s.States))
	for i, st := range s.States {
		items := ordered.NewSet[grammar.Item]()
		for _, it := range st.Items {
			items.Add(grammar.Item{RuleIndex: it.RuleIndex, Dot: it.Dot})
		}
		states[i] = automaton.State{ID: automaton.StateID(st.ID), Items: items}
	}

	trans := make(map[automaton.StateID]map[grammar.Symbol]automaton.StateID)
	for _, st := range states {
		trans[st.ID] = make(map[grammar.Symbol]automaton.StateID)
	}
	for _, tr := range s.Trans {
		sym, err := resolve(tr.Sym)
		if err != nil {
			return nil, nil, err
		}
		trans[automaton.StateID(tr.From)][sym] = automaton.StateID(tr.To)
	}

	aut := automaton.FromStates(g, states, trans)

	columns := make([]grammar.Symbol, len(s.Columns))
	for i, c := range s.Columns {
		sym, err := resolve(c)
		if err != nil {
			return nil, nil, err
		}
		columns[i] = sym
	}

	rows := make([][]lrtable.Action, len(s.Rows))
	for i, row := range s.Rows {
		actions := make([]lrtable.Action, len(row))
		for j, a := range row {
			lhs, err := resolve(a.LHS)
			if err != nil {
				return nil, nil, err
			}
			actions[j] = lrtable.Action{
				Kind:      lrtable.ActionKind(a.Kind),
				Next:      automaton.StateID(a.Next),
				RuleIndex: a.RuleIndex,
				LHS:       lhs,
				RHSLen:    a.RHSLen,
			}
		}
		rows[i] = actions
	}

	table := lrtable.FromRows(aut, g, columns, rows)
	return table, aut, nil
}
