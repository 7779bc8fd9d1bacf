package grammar

// Value is the type-erased handle pushed onto a Driver's value stack: a
// symbol discriminator plus caller-owned data of whatever Go type that
// symbol represents. This is the design notes' strategy (b)/(a) hybrid —
// a tagged union expressed as a discriminated handle rather than a real
// sum type, since Go has no closed union types. It is allocation-free
// beyond the `any` box already required to hold heterogeneous payloads,
// and reductions destructure it by checking Sym before type-asserting
// Data.
type Value struct {
	Sym  Symbol
	Data any
}

// NewValue constructs a Value for the given symbol and payload.
func NewValue(sym Symbol, data any) Value {
	return Value{Sym: sym, Data: data}
}

// Constructor builds the value for a rule's left-hand side from the
// values of its right-hand side symbols, supplied in left-to-right order.
// It takes ownership of args: the driver erases those stack slots before
// the call returns.
type Constructor func(args []Value) (Value, error)
