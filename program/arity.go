package program

import "fmt"

// Arity is the number of values an instruction consumes from and produces onto the stack
type Arity struct {
	NumIn  int
	NumOut int
}

func NewArity(numIn, numOut int) Arity {
	return Arity{NumIn: numIn, NumOut: numOut}
}

// Then composes a followed by b. Values b needs beyond what a produces are drawn from
// below a's inputs; values a produces beyond what b consumes stay under b's outputs.
func (a Arity) Then(b Arity) Arity {
	return Arity{
		NumIn:  a.NumIn + max(0, b.NumIn-a.NumOut),
		NumOut: b.NumOut + max(0, a.NumOut-b.NumIn),
	}
}

func (a Arity) String() string {
	return fmt.Sprintf("(%d -> %d)", a.NumIn, a.NumOut)
}
