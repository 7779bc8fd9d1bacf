package demogrammar

import (
	"strconv"

	"github.com/tablewright/tablewright/art"
	"github.com/tablewright/tablewright/automaton"
	"github.com/tablewright/tablewright/grammar"
	"github.com/tablewright/tablewright/lrtable"
	"github.com/tablewright/tablewright/parse"
	"github.com/tablewright/tablewright/scanner"
)

// JSON-subset symbols. The grammar below only accepts non-empty objects and
// non-empty arrays - trailing-comma and empty-collection handling are
// Non-goals of this fixture, not of the parser driver itself.
var (
	JSONLBrace   = grammar.NewTerminal("{")
	JSONRBrace   = grammar.NewTerminal("}")
	JSONLBracket = grammar.NewTerminal("[")
	JSONRBracket = grammar.NewTerminal("]")
	JSONColon    = grammar.NewTerminal(":")
	JSONComma    = grammar.NewTerminal(",")
	JSONString   = grammar.NewTerminal("string")
	JSONNumber   = grammar.NewTerminal("number")
	JSONTrue     = grammar.NewTerminal("true")
	JSONFalse    = grammar.NewTerminal("false")
	JSONNull     = grammar.NewTerminal("null")
	JSONDollar   = grammar.NewTerminal("$")

	JSONS       = grammar.NewNonterminal("S")
	JSONValue   = grammar.NewNonterminal("VALUE")
	JSONObject  = grammar.NewNonterminal("OBJECT")
	JSONMembers = grammar.NewNonterminal("MEMBERS")
	JSONMember  = grammar.NewNonterminal("MEMBER")
	JSONList    = grammar.NewNonterminal("LIST")
	JSONItems   = grammar.NewNonterminal("ITEMS")
)

// member is the intermediate pair value a MEMBER rule produces, merged into
// an object's map by MEMBERS.
type member struct {
	key string
	val any
}

// BuildJSONSubset returns a grammar for a JSON subset (objects, arrays,
// strings, numbers, booleans, null) with no lookahead-driven conflicts: each
// alternative of VALUE starts on a distinct terminal, and MEMBERS/ITEMS use
// the same left-recursive "list -> list , item | item" shape as the
// arithmetic grammar's E -> E + T | T, which spec.md §8 already establishes
// is LR(0)-clean.
func BuildJSONSubset() (*grammar.Grammar, error) {
	passValue := func(lhs grammar.Symbol, i int) grammar.Constructor {
		return func(args []grammar.Value) (grammar.Value, error) {
			return grammar.NewValue(lhs, args[i].Data), nil
		}
	}

	rules := []grammar.Rule{
		{LHS: JSONS, RHS: grammar.Production{JSONValue, JSONDollar}, Construct: passValue(JSONS, 0)},

		{LHS: JSONValue, RHS: grammar.Production{JSONObject}, Construct: passValue(JSONValue, 0)},
		{LHS: JSONValue, RHS: grammar.Production{JSONList}, Construct: passValue(JSONValue, 0)},
		{LHS: JSONValue, RHS: grammar.Production{JSONString}, Construct: passValue(JSONValue, 0)},
		{LHS: JSONValue, RHS: grammar.Production{JSONNumber}, Construct: passValue(JSONValue, 0)},
		{LHS: JSONValue, RHS: grammar.Production{JSONTrue}, Construct: func(args []grammar.Value) (grammar.Value, error) {
			return grammar.NewValue(JSONValue, true), nil
		}},
		{LHS: JSONValue, RHS: grammar.Production{JSONFalse}, Construct: func(args []grammar.Value) (grammar.Value, error) {
			return grammar.NewValue(JSONValue, false), nil
		}},
		{LHS: JSONValue, RHS: grammar.Production{JSONNull}, Construct: func(args []grammar.Value) (grammar.Value, error) {
			return grammar.NewValue(JSONValue, nil), nil
		}},

		{LHS: JSONObject, RHS: grammar.Production{JSONLBrace, JSONMembers, JSONRBrace}, Construct: passValue(JSONObject, 1)},

		{LHS: JSONMembers, RHS: grammar.Production{JSONMember}, Construct: func(args []grammar.Value) (grammar.Value, error) {
			m := args[0].Data.(member)
			return grammar.NewValue(JSONMembers, map[string]any{m.key: m.val}), nil
		}},
		{LHS: JSONMembers, RHS: grammar.Production{JSONMembers, JSONComma, JSONMember}, Construct: func(args []grammar.Value) (grammar.Value, error) {
			obj := args[0].Data.(map[string]any)
			m := args[2].Data.(member)
			obj[m.key] = m.val
			return grammar.NewValue(JSONMembers, obj), nil
		}},

		{LHS: JSONMember, RHS: grammar.Production{JSONString, JSONColon, JSONValue}, Construct: func(args []grammar.Value) (grammar.Value, error) {
			return grammar.NewValue(JSONMember, member{key: args[0].Data.(string), val: args[2].Data}), nil
		}},

		{LHS: JSONList, RHS: grammar.Production{JSONLBracket, JSONItems, JSONRBracket}, Construct: passValue(JSONList, 1)},

		{LHS: JSONItems, RHS: grammar.Production{JSONValue}, Construct: func(args []grammar.Value) (grammar.Value, error) {
			return grammar.NewValue(JSONItems, []any{args[0].Data}), nil
		}},
		{LHS: JSONItems, RHS: grammar.Production{JSONItems, JSONComma, JSONValue}, Construct: func(args []grammar.Value) (grammar.Value, error) {
			items := args[0].Data.([]any)
			return grammar.NewValue(JSONItems, append(items, args[2].Data)), nil
		}},
	}

	return grammar.New(
		[]grammar.Symbol{
			JSONLBrace, JSONRBrace, JSONLBracket, JSONRBracket, JSONColon, JSONComma,
			JSONString, JSONNumber, JSONTrue, JSONFalse, JSONNull, JSONDollar,
		},
		[]grammar.Symbol{JSONS, JSONValue, JSONObject, JSONMembers, JSONMember, JSONList, JSONItems},
		JSONS, JSONDollar,
		rules,
	)
}

// jsonKeywordTree builds the ART keyword set spec.md §4.4's worked example
// uses (true/false/null), mapping each leaf back to its terminal symbol.
func jsonKeywordTree() (*art.Tree, func(art.LeafID) grammar.Symbol, error) {
	keywords := []string{"true", "false", "null"}
	keys := make([]art.Key, len(keywords))
	for i, kw := range keywords {
		keys[i] = art.Key{Bytes: []byte(kw), Leaf: art.LeafID(i)}
	}
	tree, err := art.Build(keys)
	if err != nil {
		return nil, nil, err
	}
	syms := []grammar.Symbol{JSONTrue, JSONFalse, JSONNull}
	return tree, func(leaf art.LeafID) grammar.Symbol { return syms[leaf] }, nil
}

func jsonStringMatcher(input []byte) (grammar.Symbol, int, bool) {
	if len(input) == 0 || input[0] != '"' {
		return grammar.Symbol{}, 0, false
	}
	for i := 1; i < len(input); i++ {
		if input[i] == '"' {
			return JSONString, i + 1, true
		}
	}
	return grammar.Symbol{}, 0, false
}

func jsonNumberMatcher(input []byte) (grammar.Symbol, int, bool) {
	n := 0
	if n < len(input) && input[n] == '-' {
		n++
	}
	start := n
	for n < len(input) && input[n] >= '0' && input[n] <= '9' {
		n++
	}
	if n == start {
		return grammar.Symbol{}, 0, false
	}
	if n < len(input) && input[n] == '.' {
		n++
		for n < len(input) && input[n] >= '0' && input[n] <= '9' {
			n++
		}
	}
	return JSONNumber, n, true
}

func jsonMakeLexeme(sym grammar.Symbol, lexeme []byte) grammar.Value {
	switch sym {
	case JSONString:
		return grammar.NewValue(sym, string(lexeme[1:len(lexeme)-1]))
	case JSONNumber:
		f, _ := strconv.ParseFloat(string(lexeme), 64)
		return grammar.NewValue(sym, f)
	default:
		return scanner.DefaultLexemeValue(sym, lexeme)
	}
}

// ParseJSON parses a JSON-subset document (no embedded whitespace inside
// strings) into plain Go values: map[string]any, []any, string, float64,
// bool, or nil.
func ParseJSON(input string) (any, error) {
	g, err := BuildJSONSubset()
	if err != nil {
		return nil, err
	}
	aut, err := automaton.Build(g)
	if err != nil {
		return nil, err
	}
	table, err := lrtable.Build(aut, g)
	if err != nil {
		return nil, err
	}

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

	matchers := []scanner.Matcher{
		scanner.ArtMatcher{Tree: tree, SymbolFor: symbolFor},
		scanner.MatcherFunc(jsonStringMatcher),
		scanner.MatcherFunc(jsonNumberMatcher),
		structural('{', JSONLBrace),
		structural('}', JSONRBrace),
		structural('[', JSONLBracket),
		structural(']', JSONRBracket),
		structural(':', JSONColon),
		structural(',', JSONComma),
	}

	driver := parse.New(table, g)
	s := scanner.New(driver, JSONDollar, jsonMakeLexeme, matchers...)

	val, err := s.Run(stripWhitespace([]byte(input)))
	if err != nil {
		return nil, err
	}
	return val.Data, nil
}
