package program

// Symbol is one instruction of an instruction set. Apply pops Arity().NumIn values,
// performs its effect on state and pushes Arity().NumOut values.
type Symbol[V, S any] interface {
	Name() string
	Arity() Arity
	Apply(stack *Stack[V], state S)
}

// Valuer is implemented by symbols that always push the same value
type Valuer[V any] interface {
	Value() V
}

// SameSymbol compares two symbols structurally
func SameSymbol[V, S any](a, b Symbol[V, S]) bool {
	return a.Name() == b.Name() && a.Arity() == b.Arity()
}
