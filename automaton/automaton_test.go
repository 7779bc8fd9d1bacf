package automaton_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tablewright/tablewright/automaton"
	"github.com/tablewright/tablewright/grammar"
)

func passthrough(lhs grammar.Symbol) grammar.Constructor {
	return func(args []grammar.Value) (grammar.Value, error) {
		return grammar.NewValue(lhs, nil), nil
	}
}

// arithGrammar builds S -> E $; E -> E + T | T; T -> id | ( E ), the same
// worked example spec.md §8 uses for its automaton walkthrough.
func arithGrammar(t *testing.T) (*grammar.Grammar, map[string]grammar.Symbol) {
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
	return g, map[string]grammar.Symbol{
		"id": id, "+": plus, "(": lparen, ")": rparen, "$": dollar,
		"S": s, "E": e, "T": tnt,
	}
}

func TestBuild_State0IsStartClosure(t *testing.T) {
	g, _ := arithGrammar(t)
	aut, err := automaton.Build(g)
	require.NoError(t, err)

	assert.True(t, aut.State(0).Items.Equal(g.StartItemSet()))
}

func TestBuild_DedupesStatesByContent(t *testing.T) {
	g, sym := arithGrammar(t)
	aut, err := automaton.Build(g)
	require.NoError(t, err)

	// GOTO(state0, id) and GOTO(state-after-E-plus, id) both land on the
	// completed item T -> id ., so the automaton must not allocate two
	// separate states for it - it reaches the same id via both edges.
	s1, ok1 := aut.Goto(0, sym["id"])
	require.True(t, ok1)

	eState, ok := aut.Goto(0, sym["E"])
	require.True(t, ok)
	plusState, ok := aut.Goto(eState, sym["+"])
	require.True(t, ok)
	s2, ok2 := aut.Goto(plusState, sym["id"])
	require.True(t, ok2)

	assert.Equal(t, s1, s2)
}

func TestBuild_NoTransitionOnUnrelatedSymbol(t *testing.T) {
	g, sym := arithGrammar(t)
	aut, err := automaton.Build(g)
	require.NoError(t, err)

	_, ok := aut.Goto(0, sym[")"])
	assert.False(t, ok)
}

func TestBuild_StateCountIsStable(t *testing.T) {
	g, _ := arithGrammar(t)
	aut, err := automaton.Build(g)
	require.NoError(t, err)
	assert.Greater(t, aut.Len(), 0)

	aut2, err := automaton.Build(g)
	require.NoError(t, err)
	assert.Equal(t, aut.Len(), aut2.Len())
}
