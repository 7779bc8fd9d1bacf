// Package lrtable builds the action/goto table from a grammar's LR(0)
// automaton, per spec.md §4.2, and detects shift/reduce and reduce/reduce
// conflicts at construction time. Grounded on the teacher's
// internal/ictiobus/parse.LRAction / isShiftReduceConlict /
// makeLRConflictError, trimmed to the five action kinds spec.md names
// (the teacher additionally threads SLR/LALR/CLR1 lookahead through this
// shape, which is out of scope here).
package lrtable

import (
	"fmt"

	"github.com/tablewright/tablewright/automaton"
	"github.com/tablewright/tablewright/grammar"
)

// ActionKind is the kind of one action-table cell.
type ActionKind int

const (
	// Unreachable means no valid transition exists at this cell; the
	// driver fails with UnexpectedToken if it consults one.
	Unreachable ActionKind = iota
	// Shift: push the terminal value, push the next state.
	Shift
	// Reduce: invoke the rule's constructor over the top RHSLen values,
	// pop that many states, then consult (newTop, Lhs) — always a Goto.
	Reduce
	// Goto: push the freshly constructed nonterminal value, push the
	// next state.
	Goto
	// Accept: reduce the start rule and return its value as the parse
	// result.
	Accept
)

func (k ActionKind) String() string {
	switch k {
	case Shift:
		return "shift"
	case Reduce:
		return "reduce"
	case Goto:
		return "goto"
	case Accept:
		return "accept"
	default:
		return "unreachable"
	}
}

// Action is one action-table cell.
type Action struct {
	Kind ActionKind

	// Next is the target state for Shift and Goto.
	Next automaton.StateID

	// RuleIndex is the rule to reduce for Reduce and Accept.
	RuleIndex int

	// LHS is the reduced rule's left-hand side, for Reduce (used to
	// consult the Goto cell immediately afterward).
	LHS grammar.Symbol

	// RHSLen is the reduced rule's right-hand side length, for Reduce.
	RHSLen int
}

func (a Action) String() string {
	switch a.Kind {
	case Shift:
		return fmt.Sprintf("shift %d", a.Next)
	case Goto:
		return fmt.Sprintf("goto %d", a.Next)
	case Reduce:
		return fmt.Sprintf("reduce #%d (%s, len %d)", a.RuleIndex, a.LHS, a.RHSLen)
	case Accept:
		return fmt.Sprintf("accept #%d", a.RuleIndex)
	default:
		return "unreachable"
	}
}
