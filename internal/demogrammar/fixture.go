package demogrammar

import (
	"fmt"

	"github.com/tablewright/tablewright/grammar"
	"github.com/tablewright/tablewright/scanner"
)

// Fixture bundles everything needed to build a table for, and run a
// scanner over, one of this package's demo grammars, keyed by name. It
// exists so an external collaborator (cmd/tablewright) can assemble a
// Driver over a table it built or loaded from cache itself, rather than
// being limited to the one-shot ParseArithmetic/ParseJSON helpers that
// always build their own table (server/httpdemo uses those helpers).
type Fixture struct {
	// Name is the identifier used in tablecfg.Config.GrammarFile.
	Name string

	// Build constructs the grammar.
	Build func() (*grammar.Grammar, error)

	// End is the end-of-input terminal fed once a scan runs out of input.
	End grammar.Symbol

	// MakeLexeme builds the grammar.Value fed to the driver for a matched
	// terminal. Pass to scanner.New directly; nil means
	// scanner.DefaultLexemeValue.
	MakeLexeme func(grammar.Symbol, []byte) grammar.Value

	// Matchers constructs this fixture's terminal matchers. A function
	// rather than a plain slice because the JSON fixture's ART keyword
	// matcher can fail to build.
	Matchers func() ([]scanner.Matcher, error)
}

// Fixtures lists every demo grammar this package knows how to build.
func Fixtures() []Fixture {
	return []Fixture{
		{
			Name:       "arithmetic",
			Build:      BuildArithmetic,
			End:        ArithDollar,
			MakeLexeme: nil,
			Matchers: func() ([]scanner.Matcher, error) {
				return arithMatchers(false), nil
			},
		},
		{
			Name:       "arithmetic-precedence",
			Build:      BuildArithmeticWithPrecedence,
			End:        ArithDollar,
			MakeLexeme: nil,
			Matchers: func() ([]scanner.Matcher, error) {
				return arithMatchers(true), nil
			},
		},
		{
			Name:       "json",
			Build:      BuildJSONSubset,
			End:        JSONDollar,
			MakeLexeme: jsonMakeLexeme,
			Matchers: func() ([]scanner.Matcher, error) {
				tree, symbolFor, err := jsonKeywordTree()
				if err != nil {
					return nil, err
				}
				structural := func(lit byte, sym grammar.Symbol) scanner.MatcherFunc {
					return func(input []byte) (grammar.Symbol, int, bool) {
						if len(input) > 0 && input[0] == lit {
							return sym, 1, true
						}
						return grammar.Symbol{}, 0, false
					}
				}
				return []scanner.Matcher{
					scanner.ArtMatcher{Tree: tree, SymbolFor: symbolFor},
					scanner.MatcherFunc(jsonStringMatcher),
					scanner.MatcherFunc(jsonNumberMatcher),
					structural('{', JSONLBrace),
					structural('}', JSONRBrace),
					structural('[', JSONLBracket),
					structural(']', JSONRBracket),
					structural(':', JSONColon),
					structural(',', JSONComma),
				}, nil
			},
		},
	}
}

// FixtureByName returns the fixture with the given Name.
func FixtureByName(name string) (Fixture, error) {
	for _, fx := range Fixtures() {
		if fx.Name == name {
			return fx, nil
		}
	}
	return Fixture{}, fmt.Errorf("demogrammar: no fixture named %q", name)
}

// StripInputWhitespace exposes stripWhitespace for callers assembling
// their own scan loop around a Fixture (e.g. cmd/tablewright's REPL),
// since none of these fixtures' terminals can themselves contain
// whitespace.
func StripInputWhitespace(input []byte) []byte {
	return stripWhitespace(input)
}
