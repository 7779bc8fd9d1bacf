package lrtable_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tablewright/tablewright/automaton"
	"github.com/tablewright/tablewright/grammar"
	"github.com/tablewright/tablewright/lrerr"
	"github.com/tablewright/tablewright/lrtable"
)

func passthrough(lhs grammar.Symbol) grammar.Constructor {
	return func(args []grammar.Value) (grammar.Value, error) {
		return grammar.NewValue(lhs, nil), nil
	}
}

func arithGrammar(t *testing.T) *grammar.Grammar {
	id := grammar.NewTerminal("id")
	plus := grammar.NewTerminal("+")
	lparen := grammar.NewTerminal("(")
	rparen := grammar.NewTerminal(")")
	dollar := grammar.NewTerminal("$")
	s := grammar.NewNonterminal("S")
	e := grammar.NewNonterminal("E")
	tnt := grammar.NewNonterminal("T")

	g, err := grammar.New(
		[]grammar.Symbol{id, plus, lparen, rparen, dollar},
		[]grammar.Symbol{s, e, tnt},
		s, dollar,
		[]grammar.Rule{
			{LHS: s, RHS: grammar.Production{e, dollar}, Construct: passthrough(s)},
			{LHS: e, RHS: grammar.Production{e, plus, tnt}, Construct: passthrough(e)},
			{LHS: e, RHS: grammar.Production{tnt}, Construct: passthrough(e)},
			{LHS: tnt, RHS: grammar.Production{id}, Construct: passthrough(tnt)},
			{LHS: tnt, RHS: grammar.Production{lparen, e, rparen}, Construct: passthrough(tnt)},
		},
	)
	require.NoError(t, err)
	return g
}

func TestBuild_ProducesAcceptAction(t *testing.T) {
	g := arithGrammar(t)
	aut, err := automaton.Build(g)
	require.NoError(t, err)
	table, err := lrtable.Build(aut, g)
	require.NoError(t, err)

	found := false
	for state := 0; state < table.NumStates(); state++ {
		for _, term := range g.Terminals {
			if table.Action(automaton.StateID(state), term).Kind == lrtable.Accept {
				found = true
			}
		}
	}
	assert.True(t, found)
}

func TestBuild_UnreachableCellsAreDefault(t *testing.T) {
	g := arithGrammar(t)
	aut, err := automaton.Build(g)
	require.NoError(t, err)
	table, err := lrtable.Build(aut, g)
	require.NoError(t, err)

	rparen := grammar.NewTerminal(")")
	assert.Equal(t, lrtable.Unreachable, table.Action(0, rparen).Kind)
}

// ambiguousGrammar is a classic dangling-else-style shape that produces a
// genuine shift/reduce conflict under LR(0) (no lookahead to disambiguate
// with), to exercise Build's conflict detection.
func ambiguousGrammar(t *testing.T) *grammar.Grammar {
	a := grammar.NewTerminal("a")
	dollar := grammar.NewTerminal("$")
	s := grammar.NewNonterminal("S")
	x := grammar.NewNonterminal("X")

	g, err := grammar.New(
		[]grammar.Symbol{a, dollar},
		[]grammar.Symbol{s, x},
		s, dollar,
		[]grammar.Rule{
			{LHS: s, RHS: grammar.Production{x, dollar}, Construct: passthrough(s)},
			{LHS: x, RHS: grammar.Production{a, x}, Construct: passthrough(x)},
			{LHS: x, RHS: grammar.Production{a}, Construct: passthrough(x)},
		},
	)
	require.NoError(t, err)
	return g
}

func TestBuild_DetectsShiftReduceConflict(t *testing.T) {
	g := ambiguousGrammar(t)
	aut, err := automaton.Build(g)
	require.NoError(t, err)
	_, err = lrtable.Build(aut, g)
	require.Error(t, err)
	assert.IsType(t, &lrerr.ShiftReduceConflict{}, err)
}

func TestExpectedTerminals_ListsOnlyNonUnreachable(t *testing.T) {
	g := arithGrammar(t)
	aut, err := automaton.Build(g)
	require.NoError(t, err)
	table, err := lrtable.Build(aut, g)
	require.NoError(t, err)

	expected := table.ExpectedTerminals(0)
	assert.Contains(t, expected, "id")
	assert.Contains(t, expected, "(")
	assert.NotContains(t, expected, ")")
}
