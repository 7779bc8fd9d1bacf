package grammar

import "strings"

// Production is the ordered right-hand side of a rule.
type Production []Symbol

func (p Production) String() string {
	names := make([]string, len(p))
	for i, s := range p {
		names[i] = s.Name
	}
	return strings.Join(names, " ")
}

// Rule is a single grammar production Lhs ← Rhs, identified by its
// position in the grammar's rule list. Epsilon productions (an empty
// Rhs) are rejected at grammar construction time; this spec forbids them.
type Rule struct {
	// Index is the rule's position in the owning Grammar's Rules slice.
	// Reduce and Accept actions reference rules by this index.
	Index int

	LHS Symbol
	RHS Production

	// Construct is invoked on reduce with exactly len(RHS) values, in
	// left-to-right order, and must return the single value of type LHS.
	Construct Constructor
}

func (r Rule) String() string {
	return r.LHS.Name + " -> " + r.RHS.String()
}
