// Package parse implements the runtime shift-reduce stack machine that
// interprets an lrtable.Table against a caller-typed symbol stack and
// dispatches into the grammar's per-rule constructors, per spec.md §4.3.
// Grounded on the teacher's internal/ictiobus/parse.lrParser.Parse
// ("Algorithm 4.44, LR-parsing algorithm, from the purple dragon book"),
// adapted from building a generic parse tree to invoking caller-supplied
// constructors directly, and from a string-keyed stack to grammar.Value.
package parse

import (
	"fmt"

	"github.com/tablewright/tablewright/automaton"
	"github.com/tablewright/tablewright/grammar"
	"github.com/tablewright/tablewright/lrerr"
	"github.com/tablewright/tablewright/lrtable"
)

// Driver is the parse-time stack machine: a state stack and a value
// stack, created fresh per parse and consumed by ReadToken. The action
// table and rule constructors it reads are immutable and may be shared
// across any number of concurrently running Drivers.
type Driver struct {
	table *lrtable.Table
	gram  *grammar.Grammar

	states []automaton.StateID
	values []grammar.Value

	accepted bool
	trace    func(string)
}

// New creates a Driver over table/gram with its state stack initialized
// to [0], per spec.md §4.3.
func New(table *lrtable.Table, gram *grammar.Grammar) *Driver {
	return &Driver{
		table:  table,
		gram:   gram,
		states: []automaton.StateID{0},
	}
}

// RegisterTraceListener installs fn to receive a line of text for every
// shift, reduce, goto, and accept step, mirroring the teacher's
// lrParser.RegisterTraceListener. A nil listener (the default) disables
// tracing entirely at no cost.
func (d *Driver) RegisterTraceListener(fn func(string)) {
	d.trace = fn
}

func (d *Driver) notifyf(format string, args ...any) {
	if d.trace != nil {
		d.trace(fmt.Sprintf(format, args...))
	}
}

func (d *Driver) top() automaton.StateID {
	return d.states[len(d.states)-1]
}

// ReadToken feeds one terminal token into the driver. It performs zero or
// more reductions, accept-reductions, and goto pushes, then exactly one
// shift or accept, per spec.md §4.3's ordering guarantee: no shift happens
// before all pending reductions for the preceding state are performed.
// It returns true once the end-of-input token has driven the parse to
// Accept; Result then returns the accepted value. A false return with a
// nil error means the token was consumed (shifted) and more input is
// expected.
func (d *Driver) ReadToken(tok grammar.Value) (bool, error) {
	x := tok.Sym
	act := d.table.Action(d.top(), x)

	// pending holds the value most recently constructed by a Reduce,
	// awaiting the push that happens when its Goto action is processed
	// on the next loop iteration — see Goto's case below.
	var pending grammar.Value

	for {
		switch act.Kind {
		case lrtable.Shift:
			d.values = append(d.values, tok)
			d.states = append(d.states, act.Next)
			d.notifyf("shift %s, goto state %d", x, act.Next)
			return false, nil

		case lrtable.Reduce:
			val, err := d.reduce(act.RuleIndex, act.RHSLen)
			if err != nil {
				return false, err
			}
			pending = val
			d.notifyf("reduce by %s", d.gram.Rules[act.RuleIndex])

			act = d.table.Action(d.top(), act.LHS)
			if act.Kind != lrtable.Goto {
				return false, &lrerr.UnexpectedToken{State: int(d.top()), Symbol: act.LHS.Name}
			}

		case lrtable.Goto:
			d.values = append(d.values, pending)
			d.states = append(d.states, act.Next)
			d.notifyf("goto state %d", act.Next)
			act = d.table.Action(d.top(), x)

		case lrtable.Accept:
			// The end-of-input token is the start rule's last right-hand
			// side symbol but is never shifted (lrtable records Accept in
			// place of that shift), so it is pushed here, with the state it
			// leads to, before the start rule is reduced. The root value is
			// then pushed with that same state, keeping the stacks balanced.
			acceptState, _ := d.table.Automaton.Goto(d.top(), x)
			d.values = append(d.values, tok)
			d.states = append(d.states, acceptState)
			val, err := d.reduce(act.RuleIndex, len(d.gram.Rules[act.RuleIndex].RHS))
			if err != nil {
				return false, err
			}
			d.values = append(d.values, val)
			d.states = append(d.states, acceptState)
			d.accepted = true
			d.notifyf("accept")
			return true, nil

		default: // lrtable.Unreachable
			return false, &lrerr.UnexpectedToken{
				State:    int(d.top()),
				Symbol:   x.Name,
				Expected: d.table.ExpectedTerminals(d.top()),
			}
		}
	}
}

// reduce pops n values and n states, invokes the rule's constructor, and
// returns the produced value without pushing it — the caller is
// responsible for pushing it alongside the resulting Goto state, per
// spec.md §3's Action Table semantics ("Goto: push the freshly
// constructed nonterminal value; push nextStateId").
func (d *Driver) reduce(ruleIndex, n int) (grammar.Value, error) {
	rule := d.gram.Rules[ruleIndex]

	args := make([]grammar.Value, n)
	copy(args, d.values[len(d.values)-n:])
	d.values = d.values[:len(d.values)-n]
	d.states = d.states[:len(d.states)-n]

	return rule.Construct(args)
}

// Result returns the accepted root value. It is only valid after
// ReadToken(end-of-input) has returned true; otherwise it fails with
// lrerr.ResultNotReady, per spec.md §4.3.
func (d *Driver) Result() (grammar.Value, error) {
	if !d.accepted {
		return grammar.Value{}, &lrerr.ResultNotReady{}
	}
	return d.values[len(d.values)-1], nil
}

// StackBalanced reports spec.md §8's driver invariant: after ReadToken
// returns, |stateStack| = |valueStack| + 1.
func (d *Driver) StackBalanced() bool {
	return len(d.states) == len(d.values)+1
}
