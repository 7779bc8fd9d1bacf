package demogrammar

import (
	"github.com/tablewright/tablewright/automaton"
	"github.com/tablewright/tablewright/grammar"
	"github.com/tablewright/tablewright/lrtable"
	"github.com/tablewright/tablewright/parse"
	"github.com/tablewright/tablewright/scanner"
)

// digitMatcher recognizes a maximal run of ASCII digits as one ArithID
// token - the "id" terminal in these demo grammars is always an integer
// literal, never an identifier.
func digitMatcher(input []byte) (grammar.Symbol, int, bool) {
	n := 0
	for n < len(input) && input[n] >= '0' && input[n] <= '9' {
		n++
	}
	if n == 0 {
		return grammar.Symbol{}, 0, false
	}
	return ArithID, n, true
}

func literalMatcher(lit byte, sym grammar.Symbol) scanner.MatcherFunc {
	return func(input []byte) (grammar.Symbol, int, bool) {
		if len(input) > 0 && input[0] == lit {
			return sym, 1, true
		}
		return grammar.Symbol{}, 0, false
	}
}

func whitespaceSkip(input []byte) []byte {
	i := 0
	for i < len(input) && (input[i] == ' ' || input[i] == '\t' || input[i] == '\n' || input[i] == '\r') {
		i++
	}
	return input[i:]
}

// stripWhitespace removes every ASCII whitespace byte. These demo grammars
// have no terminal whose lexeme can itself contain whitespace, so a single
// whole-input pass is equivalent to skipping it between tokens.
func stripWhitespace(input []byte) []byte {
	out := make([]byte, 0, len(input))
	for len(input) > 0 {
		input = whitespaceSkip(input)
		if len(input) == 0 {
			break
		}
		out = append(out, input[0])
		input = input[1:]
	}
	return out
}

func arithMatchers(includeStar bool) []scanner.Matcher {
	m := []scanner.Matcher{
		scanner.MatcherFunc(digitMatcher),
		literalMatcher('+', ArithPlus),
		literalMatcher('(', ArithLParen),
		literalMatcher(')', ArithRParen),
	}
	if includeStar {
		m = append(m, literalMatcher('*', PrecStar))
	}
	return m
}

// ParseArithmetic parses input against BuildArithmetic's grammar and returns
// the resulting int.
func ParseArithmetic(input string) (int, error) {
	g, err := BuildArithmetic()
	if err != nil {
		return 0, err
	}
	return runArith(g, input, arithMatchers(false))
}

// ParseArithmeticWithPrecedence parses input against
// BuildArithmeticWithPrecedence's grammar and returns the resulting int.
func ParseArithmeticWithPrecedence(input string) (int, error) {
	g, err := BuildArithmeticWithPrecedence()
	if err != nil {
		return 0, err
	}
	return runArith(g, input, arithMatchers(true))
}

func runArith(g *grammar.Grammar, input string, matchers []scanner.Matcher) (int, error) {
	aut, err := automaton.Build(g)
	if err != nil {
		return 0, err
	}
	table, err := lrtable.Build(aut, g)
	if err != nil {
		return 0, err
	}
	driver := parse.New(table, g)
	s := scanner.New(driver, ArithDollar, nil, matchers...)

	val, err := s.Run(stripWhitespace([]byte(input)))
	if err != nil {
		return 0, err
	}
	return val.Data.(int), nil
}
