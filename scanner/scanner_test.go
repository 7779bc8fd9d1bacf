package scanner_test

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tablewright/tablewright/art"
	"github.com/tablewright/tablewright/automaton"
	"github.com/tablewright/tablewright/grammar"
	"github.com/tablewright/tablewright/lrerr"
	"github.com/tablewright/tablewright/lrtable"
	"github.com/tablewright/tablewright/parse"
	"github.com/tablewright/tablewright/scanner"
)

func digitMatcher(kw grammar.Symbol) scanner.MatcherFunc {
	return func(input []byte) (grammar.Symbol, int, bool) {
		n := 0
		for n < len(input) && input[n] >= '0' && input[n] <= '9' {
			n++
		}
		if n == 0 {
			return grammar.Symbol{}, 0, false
		}
		return kw, n, true
	}
}

func literal(b byte, sym grammar.Symbol) scanner.MatcherFunc {
	return func(input []byte) (grammar.Symbol, int, bool) {
		if len(input) > 0 && input[0] == b {
			return sym, 1, true
		}
		return grammar.Symbol{}, 0, false
	}
}

func buildSumGrammar(t *testing.T) (*lrtable.Table, *grammar.Grammar, grammar.Symbol, grammar.Symbol, grammar.Symbol) {
	id := grammar.NewTerminal("id")
	plus := grammar.NewTerminal("+")
	dollar := grammar.NewTerminal("$")
	s := grammar.NewNonterminal("S")
	e := grammar.NewNonterminal("E")

	g, err := grammar.New(
		[]grammar.Symbol{id, plus, dollar},
		[]grammar.Symbol{s, e},
		s, dollar,
		[]grammar.Rule{
			{LHS: s, RHS: grammar.Production{e, dollar}, Construct: func(a []grammar.Value) (grammar.Value, error) {
				return grammar.NewValue(s, a[0].Data), nil
			}},
			{LHS: e, RHS: grammar.Production{e, plus, id}, Construct: func(a []grammar.Value) (grammar.Value, error) {
				n, _ := strconv.Atoi(a[2].Data.(string))
				return grammar.NewValue(e, a[0].Data.(int)+n), nil
			}},
			{LHS: e, RHS: grammar.Production{id}, Construct: func(a []grammar.Value) (grammar.Value, error) {
				n, err := strconv.Atoi(a[0].Data.(string))
				return grammar.NewValue(e, n), err
			}},
		},
	)
	require.NoError(t, err)

	aut, err := automaton.Build(g)
	require.NoError(t, err)
	table, err := lrtable.Build(aut, g)
	require.NoError(t, err)

	return table, g, id, plus, dollar
}

func TestScanner_Run_FeedsMatchedTokensAndEnd(t *testing.T) {
	table, g, id, plus, dollar := buildSumGrammar(t)
	d := parse.New(table, g)
	s := scanner.New(d, dollar, nil, digitMatcher(id), literal('+', plus))

	val, err := s.Run([]byte("12+3+4"))
	require.NoError(t, err)
	assert.Equal(t, 19, val.Data)
}

func TestScanner_Run_UnknownLexeme(t *testing.T) {
	table, g, id, plus, dollar := buildSumGrammar(t)
	d := parse.New(table, g)
	s := scanner.New(d, dollar, nil, digitMatcher(id), literal('+', plus))

	_, err := s.Run([]byte("1+?2"))
	require.Error(t, err)
	uErr, ok := err.(*lrerr.UnknownLexeme)
	require.True(t, ok)
	assert.Equal(t, 2, uErr.Offset)
}

func TestArtMatcher_MaximalMunch(t *testing.T) {
	trueSym := grammar.NewTerminal("true")
	falseSym := grammar.NewTerminal("false")
	tree, err := art.Build([]art.Key{
		{Bytes: []byte("true"), Leaf: 0},
		{Bytes: []byte("false"), Leaf: 1},
	})
	require.NoError(t, err)

	m := scanner.ArtMatcher{
		Tree: tree,
		SymbolFor: func(leaf art.LeafID) grammar.Symbol {
			if leaf == 0 {
				return trueSym
			}
			return falseSym
		},
	}

	sym, n, ok := m.Match([]byte("true,false"))
	require.True(t, ok)
	assert.Equal(t, trueSym, sym)
	assert.Equal(t, 4, n)

	_, _, ok = m.Match([]byte("tru"))
	assert.False(t, ok)
}

func TestDefaultLexemeValue_WrapsRawBytesAsString(t *testing.T) {
	sym := grammar.NewTerminal("id")
	val := scanner.DefaultLexemeValue(sym, []byte("42"))
	assert.Equal(t, "42", val.Data)
	assert.Equal(t, sym, val.Sym)
}
