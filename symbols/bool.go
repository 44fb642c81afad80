package symbols

import "github.com/they4kman/rgep/program"

func And[S any]() program.Instruction[uint32, S] {
	return program.Binary[uint32, S]("&", func(a, b uint32) uint32 { return a & b })
}

func Or[S any]() program.Instruction[uint32, S] {
	return program.Binary[uint32, S]("|", func(a, b uint32) uint32 { return a | b })
}

func Xor[S any]() program.Instruction[uint32, S] {
	return program.Binary[uint32, S]("x", func(a, b uint32) uint32 { return a ^ b })
}

func Not[S any]() program.Instruction[uint32, S] {
	return program.Unary[uint32, S]("~", func(a uint32) uint32 { return ^a })
}

// BoolFunctions are the bitwise operators over 32-bit words
func BoolFunctions[S any]() []program.Symbol[uint32, S] {
	return []program.Symbol[uint32, S]{And[S](), Or[S](), Xor[S](), Not[S]()}
}

// Bit pushes the i-th input bit of the state word, for boolean function search
func Bit(i int) program.Instruction[uint32, uint32] {
	return program.Func(string(rune('a'+i)), program.NewArity(0, 1), func(stack *program.Stack[uint32], input uint32) {
		stack.Push((input >> i) & 1)
	})
}
