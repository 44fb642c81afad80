package program

import "strings"

// Program is a decoded genome: one instruction per code, executed left to right
type Program[V, S any] []Symbol[V, S]

// Exec runs every instruction whose inputs are available, skipping the rest
func (p Program[V, S]) Exec(stack *Stack[V], state S) {
	for _, sym := range p {
		if stack.Len() >= sym.Arity().NumIn {
			sym.Apply(stack, state)
		}
	}
}

// Eval runs p on a fresh stack and returns the top value, or def when the stack ends empty
func (p Program[V, S]) Eval(state S, def V) V {
	return p.EvalWithStack(state, def, NewStack[V](len(p)))
}

// EvalWithStack runs p on top of the values already in stack
func (p Program[V, S]) EvalWithStack(state S, def V, stack *Stack[V]) V {
	p.Exec(stack, state)
	if stack.Len() > 0 {
		return stack.Pop()
	}
	return def
}

// Arity is the stack effect of the whole program as if every instruction ran
func (p Program[V, S]) Arity() Arity {
	var arity Arity
	for _, sym := range p {
		arity = arity.Then(sym.Arity())
	}
	return arity
}

func (p Program[V, S]) String() string {
	names := make([]string, len(p))
	for i, sym := range p {
		names[i] = sym.Name()
	}
	return strings.Join(names, " ")
}
