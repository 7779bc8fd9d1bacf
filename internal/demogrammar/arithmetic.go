// Package demogrammar assembles the small worked grammars spec.md §8 walks
// through (a left-recursive arithmetic grammar, the same grammar with a *
// operator added beside +, and a JSON subset) as ready-to-use fixtures for
// package tests and for the cmd/tablewright and server/httpdemo front ends.
package demogrammar

import (
	"strconv"

	"github.com/tablewright/tablewright/grammar"
)

// Arithmetic symbols: S -> E $; E -> E + T | T; T -> id | ( E ).
var (
	ArithID     = grammar.NewTerminal("id")
	ArithPlus   = grammar.NewTerminal("+")
	ArithLParen = grammar.NewTerminal("(")
	ArithRParen = grammar.NewTerminal(")")
	ArithDollar = grammar.NewTerminal("$")

	ArithS = grammar.NewNonterminal("S")
	ArithE = grammar.NewNonterminal("E")
	ArithT = grammar.NewNonterminal("T")
)

// BuildArithmetic returns the left-recursive sum grammar used throughout
// spec.md §8: every E and T construct a plain int.
func BuildArithmetic() (*grammar.Grammar, error) {
	rules := []grammar.Rule{
		{LHS: ArithS, RHS: grammar.Production{ArithE, ArithDollar}, Construct: passInt(ArithS, 0)},
		{LHS: ArithE, RHS: grammar.Production{ArithE, ArithPlus, ArithT}, Construct: sumInts(ArithE)},
		{LHS: ArithE, RHS: grammar.Production{ArithT}, Construct: passInt(ArithE, 0)},
		{LHS: ArithT, RHS: grammar.Production{ArithID}, Construct: atoiInt(ArithT)},
		{LHS: ArithT, RHS: grammar.Production{ArithLParen, ArithE, ArithRParen}, Construct: passInt(ArithT, 1)},
	}
	return grammar.New(
		[]grammar.Symbol{ArithID, ArithPlus, ArithLParen, ArithRParen, ArithDollar},
		[]grammar.Symbol{ArithS, ArithE, ArithT},
		ArithS, ArithDollar,
		rules,
	)
}

// passInt returns a constructor that rewraps args[i].Data under lhs,
// unchanged - the "copy a child value up" shape used by every unit
// production in these demo grammars.
func passInt(lhs grammar.Symbol, i int) grammar.Constructor {
	return func(args []grammar.Value) (grammar.Value, error) {
		return grammar.NewValue(lhs, args[i].Data), nil
	}
}

// sumInts returns a constructor for an "E -> E + T" shaped rule.
func sumInts(lhs grammar.Symbol) grammar.Constructor {
	return func(args []grammar.Value) (grammar.Value, error) {
		return grammar.NewValue(lhs, args[0].Data.(int)+args[2].Data.(int)), nil
	}
}

// productInts returns a constructor for an "E -> E * T" shaped rule.
func productInts(lhs grammar.Symbol) grammar.Constructor {
	return func(args []grammar.Value) (grammar.Value, error) {
		return grammar.NewValue(lhs, args[0].Data.(int)*args[2].Data.(int)), nil
	}
}

// atoiInt returns a constructor that parses the matched lexeme (a string)
// under lhs as a base-10 int.
func atoiInt(lhs grammar.Symbol) grammar.Constructor {
	return func(args []grammar.Value) (grammar.Value, error) {
		n, err := strconv.Atoi(args[0].Data.(string))
		if err != nil {
			return grammar.Value{}, err
		}
		return grammar.NewValue(lhs, n), nil
	}
}
