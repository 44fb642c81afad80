package program

// Stack is the evaluation stack threaded through every instruction of a Program.
// Instructions only run when the stack holds at least Arity().NumIn values, so
// Pop on an instruction's declared inputs never underflows.
type Stack[V any] struct {
	values []V
}

func NewStack[V any](capacity int) *Stack[V] {
	return &Stack[V]{values: make([]V, 0, capacity)}
}

func (s *Stack[V]) Push(v V) {
	s.values = append(s.values, v)
}

// Pop removes and returns the top value. An empty stack yields the zero value.
func (s *Stack[V]) Pop() V {
	var v V
	if len(s.values) == 0 {
		return v
	}

	v = s.values[len(s.values)-1]
	s.values = s.values[:len(s.values)-1]
	return v
}

func (s *Stack[V]) Peek() (V, bool) {
	if len(s.values) == 0 {
		var v V
		return v, false
	}
	return s.values[len(s.values)-1], true
}

func (s *Stack[V]) Len() int {
	return len(s.values)
}

func (s *Stack[V]) Reset() {
	s.values = s.values[:0]
}

// Values returns the stack contents, bottom first. The slice aliases the stack.
func (s *Stack[V]) Values() []V {
	return s.values
}
