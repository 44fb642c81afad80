package program

import (
	"errors"
	"fmt"
	"math/bits"
	"strings"

	"github.com/they4kman/rgep/genome"
)

var (
	ErrTooManySymbols      = errors.New("instruction set needs more than 8 bits per symbol")
	ErrEmptyInstructionSet = errors.New("instruction set needs at least one terminal and one function")
)

// Context is an instruction set: the terminals and functions a code can decode to,
// and the value a program yields when it leaves nothing on the stack.
// A Context is read-only once built and may be shared by every genome of a run.
type Context[V, S any] struct {
	Terminals []Symbol[V, S]
	Functions []Symbol[V, S]
	Default   V
}

func NewContext[V, S any](terminals, functions []Symbol[V, S], def V) (*Context[V, S], error) {
	if len(terminals) == 0 || len(functions) == 0 {
		return nil, ErrEmptyInstructionSet
	}
	for i, sym := range terminals {
		if sym.Arity().NumIn != 0 {
			return nil, fmt.Errorf("terminal %d (%s) consumes %d values, expected 0", i, sym.Name(), sym.Arity().NumIn)
		}
	}

	ctx := &Context[V, S]{
		Terminals: terminals,
		Functions: functions,
		Default:   def,
	}
	if n := ctx.BitsPerSym(); n > genome.MaxBitsPerWord {
		return nil, fmt.Errorf("%w: %d symbols need %d bits", ErrTooManySymbols, max(len(terminals), len(functions)), n)
	}
	return ctx, nil
}

func (c *Context[V, S]) NumSymbols() int {
	return len(c.Terminals) + len(c.Functions)
}

// BitsPerSym is ceil(log2(max(terminals, functions))) plus one bit selecting the list
func (c *Context[V, S]) BitsPerSym() int {
	symsToEncode := max(len(c.Terminals), len(c.Functions))
	if symsToEncode <= 1 {
		return 1
	}
	return bits.Len(uint(symsToEncode-1)) + 1
}

// Decode maps a code to an instruction. Bit 0 selects functions (1) or terminals (0);
// the remaining bits index the chosen list modulo its length, so every code decodes.
func (c *Context[V, S]) Decode(code byte) Symbol[V, S] {
	index := int(code >> 1)
	if code&1 == 1 {
		return c.Functions[index%len(c.Functions)]
	}
	return c.Terminals[index%len(c.Terminals)]
}

func (c *Context[V, S]) Compile(g genome.Genome) Program[V, S] {
	prog := make(Program[V, S], 0, len(g))
	c.CompileTo(g, &prog)
	return prog
}

// CompileTo decodes g into prog, reusing prog's backing array
func (c *Context[V, S]) CompileTo(g genome.Genome, prog *Program[V, S]) {
	*prog = (*prog)[:0]
	for _, code := range g {
		*prog = append(*prog, c.Decode(code))
	}
}

// Exec runs g directly without building a Program
func (c *Context[V, S]) Exec(g genome.Genome, stack *Stack[V], state S) {
	for _, code := range g {
		sym := c.Decode(code)
		if stack.Len() >= sym.Arity().NumIn {
			sym.Apply(stack, state)
		}
	}
}

func (c *Context[V, S]) Eval(g genome.Genome, state S) V {
	stack := NewStack[V](len(g))
	c.Exec(g, stack, state)
	if v, ok := stack.Peek(); ok {
		return v
	}
	return c.Default
}

func (c *Context[V, S]) String(g genome.Genome) string {
	names := make([]string, len(g))
	for i, code := range g {
		names[i] = c.Decode(code).Name()
	}
	return strings.Join(names, " ")
}
