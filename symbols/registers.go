package symbols

import "github.com/they4kman/rgep/program"

// DefaultMemorySize is the number of memory cells NewMachine allocates when given a non-positive size
const DefaultMemorySize = 5

// Machine is the mutable state of register programs: two registers, a small addressable
// memory and everything the program printed.
type Machine struct {
	A, B   float64
	Memory []float64
	Output []float64
}

func NewMachine(memorySize int) *Machine {
	if memorySize <= 0 {
		memorySize = DefaultMemorySize
	}
	return &Machine{Memory: make([]float64, memorySize)}
}

// Clone deep-copies m so each program run starts from the same state
func (m *Machine) Clone() *Machine {
	clone := &Machine{
		A:      m.A,
		B:      m.B,
		Memory: make([]float64, len(m.Memory)),
	}
	copy(clone.Memory, m.Memory)
	if m.Output != nil {
		clone.Output = make([]float64, len(m.Output))
		copy(clone.Output, m.Output)
	}
	return clone
}

func (m *Machine) address(addr float64) (int, bool) {
	if addr >= 0 && addr < float64(len(m.Memory)) {
		return int(addr), true
	}
	return 0, false
}

func StoreA() program.Instruction[float64, *Machine] {
	return program.Func("sa", program.NewArity(1, 0), func(stack *program.Stack[float64], m *Machine) {
		m.A = stack.Pop()
	})
}

func LoadA() program.Instruction[float64, *Machine] {
	return program.Func("la", program.NewArity(0, 1), func(stack *program.Stack[float64], m *Machine) {
		stack.Push(m.A)
	})
}

func StoreB() program.Instruction[float64, *Machine] {
	return program.Func("sb", program.NewArity(1, 0), func(stack *program.Stack[float64], m *Machine) {
		m.B = stack.Pop()
	})
}

func LoadB() program.Instruction[float64, *Machine] {
	return program.Func("lb", program.NewArity(0, 1), func(stack *program.Stack[float64], m *Machine) {
		stack.Push(m.B)
	})
}

// StoreMem pops an address, then a value, and writes the value to memory.
// Invalid addresses discard the value.
func StoreMem() program.Instruction[float64, *Machine] {
	return program.Func("sm", program.NewArity(2, 0), func(stack *program.Stack[float64], m *Machine) {
		addr := stack.Pop()
		value := stack.Pop()
		if i, ok := m.address(addr); ok {
			m.Memory[i] = value
		}
	})
}

// LoadMem pops an address and pushes the memory cell it names, or 0 for an invalid address
func LoadMem() program.Instruction[float64, *Machine] {
	return program.Func("lm", program.NewArity(1, 1), func(stack *program.Stack[float64], m *Machine) {
		i, ok := m.address(stack.Pop())
		if !ok {
			stack.Push(0)
			return
		}
		stack.Push(m.Memory[i])
	})
}

// Print moves the top value to the machine's output
func Print() program.Instruction[float64, *Machine] {
	return program.Func("p", program.NewArity(1, 0), func(stack *program.Stack[float64], m *Machine) {
		m.Output = append(m.Output, stack.Pop())
	})
}

// RegisterTerminals are the register loads, which need no inputs
func RegisterTerminals() []program.Symbol[float64, *Machine] {
	return []program.Symbol[float64, *Machine]{LoadA(), LoadB()}
}

// RegisterFunctions are the stores, memory access and printing
func RegisterFunctions() []program.Symbol[float64, *Machine] {
	return []program.Symbol[float64, *Machine]{StoreA(), StoreB(), StoreMem(), LoadMem(), Print()}
}
