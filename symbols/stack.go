package symbols

import "github.com/they4kman/rgep/program"

// Dup copies the top value: a -> a a
func Dup[V, S any]() program.Instruction[V, S] {
	return program.Func("dup", program.NewArity(1, 2), func(stack *program.Stack[V], _ S) {
		a := stack.Pop()
		stack.Push(a)
		stack.Push(a)
	})
}

// Swap exchanges the top two values: a b -> b a
func Swap[V, S any]() program.Instruction[V, S] {
	return program.Func("swap", program.NewArity(2, 2), func(stack *program.Stack[V], _ S) {
		b := stack.Pop()
		a := stack.Pop()
		stack.Push(b)
		stack.Push(a)
	})
}

// Drop discards the top value: a ->
func Drop[V, S any]() program.Instruction[V, S] {
	return program.Func("drop", program.NewArity(1, 0), func(stack *program.Stack[V], _ S) {
		stack.Pop()
	})
}

// Rot brings the third value to the top: a b c -> b c a
func Rot[V, S any]() program.Instruction[V, S] {
	return program.Func("rot", program.NewArity(3, 3), func(stack *program.Stack[V], _ S) {
		c := stack.Pop()
		b := stack.Pop()
		a := stack.Pop()
		stack.Push(b)
		stack.Push(c)
		stack.Push(a)
	})
}

// Nip discards the second value: a b -> b
func Nip[V, S any]() program.Instruction[V, S] {
	return program.Func("nip", program.NewArity(2, 1), func(stack *program.Stack[V], _ S) {
		b := stack.Pop()
		stack.Pop()
		stack.Push(b)
	})
}

// Tuck copies the top value below the second: a b -> b a b
func Tuck[V, S any]() program.Instruction[V, S] {
	return program.Func("tuck", program.NewArity(2, 3), func(stack *program.Stack[V], _ S) {
		b := stack.Pop()
		a := stack.Pop()
		stack.Push(b)
		stack.Push(a)
		stack.Push(b)
	})
}

// Input pushes the program's state, for programs whose state is a single input value
func Input[V any]() program.Instruction[V, V] {
	return program.Func("in", program.NewArity(0, 1), func(stack *program.Stack[V], input V) {
		stack.Push(input)
	})
}

func StackFunctions[V, S any]() []program.Symbol[V, S] {
	return []program.Symbol[V, S]{Dup[V, S](), Swap[V, S](), Drop[V, S](), Rot[V, S](), Nip[V, S](), Tuck[V, S]()}
}
