package program

import "fmt"

// Instruction adapts a plain function into a Symbol
type Instruction[V, S any] struct {
	name  string
	arity Arity
	apply func(stack *Stack[V], state S)
}

func Func[V, S any](name string, arity Arity, apply func(stack *Stack[V], state S)) Instruction[V, S] {
	return Instruction[V, S]{name: name, arity: arity, apply: apply}
}

func (in Instruction[V, S]) Name() string {
	return in.name
}

func (in Instruction[V, S]) Arity() Arity {
	return in.arity
}

func (in Instruction[V, S]) Apply(stack *Stack[V], state S) {
	in.apply(stack, state)
}

// Constant pushes a fixed value
type Constant[V, S any] struct {
	name  string
	value V
}

// Const creates a terminal pushing value. An empty name renders the value with fmt.
func Const[V, S any](name string, value V) Constant[V, S] {
	if name == "" {
		name = fmt.Sprint(value)
	}
	return Constant[V, S]{name: name, value: value}
}

func (c Constant[V, S]) Name() string {
	return c.name
}

func (c Constant[V, S]) Arity() Arity {
	return NewArity(0, 1)
}

func (c Constant[V, S]) Apply(stack *Stack[V], _ S) {
	stack.Push(c.value)
}

func (c Constant[V, S]) Value() V {
	return c.value
}

// Unary creates a (1 -> 1) instruction applying f to the top of the stack
func Unary[V, S any](name string, f func(V) V) Instruction[V, S] {
	return Func(name, NewArity(1, 1), func(stack *Stack[V], _ S) {
		stack.Push(f(stack.Pop()))
	})
}

// Binary creates a (2 -> 1) instruction. f receives the second value from the top
// first and the top value second, so "a b -" computes a - b.
func Binary[V, S any](name string, f func(a, b V) V) Instruction[V, S] {
	return Func(name, NewArity(2, 1), func(stack *Stack[V], _ S) {
		b := stack.Pop()
		a := stack.Pop()
		stack.Push(f(a, b))
	})
}
