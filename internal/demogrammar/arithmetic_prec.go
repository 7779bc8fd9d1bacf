package demogrammar

import "github.com/tablewright/tablewright/grammar"

// Arithmetic-with-precedence symbols: S -> E $; E -> E + T | E * T | T;
// T -> id | ( E ). + and * sit on the same level of E, so this pure LR(0)
// grammar has no shift/reduce conflict and evaluates both operators left
// to right; only parentheses change the grouping. A grammar that made *
// bind tighter (E -> T, T -> T * F) would put E -> T . and T -> T . * F in
// one state, a shift/reduce conflict that lrtable.Build rejects.
var (
	PrecStar = grammar.NewTerminal("*")

	PrecS = grammar.NewNonterminal("S")
	PrecE = grammar.NewNonterminal("E")
	PrecT = grammar.NewNonterminal("T")
)

// BuildArithmeticWithPrecedence returns the grammar with both + and *.
func BuildArithmeticWithPrecedence() (*grammar.Grammar, error) {
	rules := []grammar.Rule{
		{LHS: PrecS, RHS: grammar.Production{PrecE, ArithDollar}, Construct: passInt(PrecS, 0)},
		{LHS: PrecE, RHS: grammar.Production{PrecE, ArithPlus, PrecT}, Construct: sumInts(PrecE)},
		{LHS: PrecE, RHS: grammar.Production{PrecE, PrecStar, PrecT}, Construct: productInts(PrecE)},
		{LHS: PrecE, RHS: grammar.Production{PrecT}, Construct: passInt(PrecE, 0)},
		{LHS: PrecT, RHS: grammar.Production{ArithID}, Construct: atoiInt(PrecT)},
		{LHS: PrecT, RHS: grammar.Production{ArithLParen, PrecE, ArithRParen}, Construct: passInt(PrecT, 1)},
	}
	return grammar.New(
		[]grammar.Symbol{ArithID, ArithPlus, PrecStar, ArithLParen, ArithRParen, ArithDollar},
		[]grammar.Symbol{PrecS, PrecE, PrecT},
		PrecS, ArithDollar,
		rules,
	)
}
