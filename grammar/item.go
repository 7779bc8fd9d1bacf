package grammar

import "fmt"

// Item is an LR(0) item: a rule together with a cursor ("the dot")
// dividing its right-hand side into the part already matched (Seen) and
// the part still to match (Rest). Two items are equal iff they reference
// the same rule at the same cursor position, which in turn implies equal
// Lhs/Seen/Rest per spec.md's three-component equality — Seen and Rest are
// themselves derived as slices of the rule's Rhs, so comparing (RuleIndex,
// Dot) is exactly comparing (Lhs, Seen, Rest).
//
// Item is a plain comparable struct so it can be used directly as an
// ordered.Set[Item] element without a custom Equal/Hash pair.
type Item struct {
	RuleIndex int
	Dot       int
}

// Seen returns the portion of the rule's right-hand side already matched.
func (it Item) Seen(g *Grammar) Production {
	return g.Rules[it.RuleIndex].RHS[:it.Dot]
}

// Rest returns the portion of the rule's right-hand side not yet matched.
func (it Item) Rest(g *Grammar) Production {
	return g.Rules[it.RuleIndex].RHS[it.Dot:]
}

// Complete reports whether the item's dot has reached the end of the
// rule's right-hand side, i.e. it is of the form X ← α •.
func (it Item) Complete(g *Grammar) bool {
	return it.Dot >= len(g.Rules[it.RuleIndex].RHS)
}

// NextSymbol returns the symbol immediately after the dot, if any.
func (it Item) NextSymbol(g *Grammar) (Symbol, bool) {
	rhs := g.Rules[it.RuleIndex].RHS
	if it.Dot >= len(rhs) {
		return Symbol{}, false
	}
	return rhs[it.Dot], true
}

// Advance returns the item with its dot moved one position to the right.
func (it Item) Advance() Item {
	return Item{RuleIndex: it.RuleIndex, Dot: it.Dot + 1}
}

// Rule returns the rule this item's dot is positioned within.
func (it Item) Rule(g *Grammar) Rule {
	return g.Rules[it.RuleIndex]
}

// String renders the item in the conventional "Lhs -> alpha . beta" form.
func (it Item) String(g *Grammar) string {
	r := g.Rules[it.RuleIndex]
	left := Production(r.RHS[:it.Dot]).String()
	right := Production(r.RHS[it.Dot:]).String()
	if left != "" {
		left += " "
	}
	if right != "" {
		right = " " + right
	}
	return fmt.Sprintf("%s -> %s.%s", r.LHS.Name, left, right)
}
