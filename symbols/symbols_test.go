package symbols_test

import (
	"github.com/they4kman/rgep/symbols"
	"math"
	"math/rand"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/ginkgo/extensions/table"
	. "github.com/onsi/gomega"

	"github.com/they4kman/rgep/genome"
	"github.com/they4kman/rgep/program"
)

type none = struct{}

// run applies prog to a stack seeded with values and returns what is left, bottom first
func run[V, S any](state S, prog program.Program[V, S], values ...V) []V {
	stack := program.NewStack[V](len(values) + len(prog))
	for _, v := range values {
		stack.Push(v)
	}
	prog.Exec(stack, state)
	return stack.Values()
}

var _ = Describe("Arithmetic", func() {
	DescribeTable("binary operators take the second value first",
		func(sym program.Symbol[float64, none], a, b, expected float64) {
			Expect(run(none{}, program.Program[float64, none]{sym}, a, b)).To(Equal([]float64{expected}))
		},
		Entry("+", symbols.Add[none](), 7.0, 2.0, 9.0),
		Entry("-", symbols.Sub[none](), 7.0, 2.0, 5.0),
		Entry("*", symbols.Mul[none](), 7.0, 2.0, 14.0),
		Entry("/", symbols.Div[none](), 7.0, 2.0, 3.5),
		Entry("/ by zero", symbols.Div[none](), 7.0, 0.0, 0.0),
		Entry("%", symbols.Mod[none](), 7.0, 2.0, 1.0),
		Entry("% by zero", symbols.Mod[none](), 7.0, 0.0, 0.0),
	)

	It("reads variables", func() {
		prog := program.Program[float64, symbols.Variables]{symbols.Var("x"), symbols.Var("y"), symbols.Mul[symbols.Variables]()}
		Expect(prog.Eval(symbols.Variables{"x": 3, "y": 4}, -1)).To(Equal(12.0))
		Expect(prog.Eval(symbols.Variables{"x": 3}, -1)).To(Equal(0.0))
	})

	It("builds a regression instruction set", func() {
		ctx, err := symbols.ArithContext("x")
		Expect(err).ToNot(HaveOccurred())
		Expect(ctx.Terminals).To(HaveLen(4))
		Expect(ctx.Functions).To(HaveLen(5))
		Expect(ctx.BitsPerSym()).To(Equal(4))

		// x x * 1 +
		g := genome.Genome{6, 6, 5, 2, 1}
		Expect(ctx.String(g)).To(Equal("x x * 1 +"))
		Expect(ctx.Eval(g, symbols.Variables{"x": 3})).To(Equal(10.0))
	})

	It("agrees with gval on rendered trees", func() {
		ctx, err := symbols.ArithContext("x")
		Expect(err).ToNot(HaveOccurred())

		rng := rand.New(rand.NewSource(42))
		checked := 0
		for i := 0; i < 300; i++ {
			g := genome.Random(20, ctx.BitsPerSym(), rng)
			vars := symbols.Variables{"x": float64(rng.Intn(11) - 5)}
			trees, err := program.BuildTree(ctx.Compile(g), vars)
			Expect(err).ToNot(HaveOccurred())
			if len(trees) == 0 {
				continue
			}
			top := trees[len(trees)-1]
			expected := top.Eval(vars)
			if math.IsNaN(expected) || math.IsInf(expected, 0) {
				continue
			}

			actual, err := program.EvaluateNode(top, map[string]interface{}{"x": vars["x"]}, symbols.ArithLanguage)
			Expect(err).ToNot(HaveOccurred(), top.Infix())
			Expect(actual).To(BeNumerically("~", expected, 1e-6*math.Max(1, math.Abs(expected))), top.Infix())
			checked++
		}
		Expect(checked).To(BeNumerically(">", 100))
	})

	DescribeTable("Simplify",
		func(g genome.Genome, expected string) {
			ctx, err := symbols.ArithContext("x")
			Expect(err).ToNot(HaveOccurred())
			trees, err := program.BuildTree(ctx.Compile(g), symbols.Variables{})
			Expect(err).ToNot(HaveOccurred())
			Expect(trees).To(HaveLen(1))

			simplified := symbols.Simplify(trees[0], symbols.Variables{})
			Expect(simplified.Infix()).To(Equal(expected))
			for _, x := range []float64{-2, 0.5, 3} {
				vars := symbols.Variables{"x": x}
				Expect(simplified.Eval(vars)).To(Equal(trees[0].Eval(vars)))
			}
		},
		Entry("x 0 +", genome.Genome{6, 0, 1}, "x"),
		Entry("0 x +", genome.Genome{0, 6, 1}, "x"),
		Entry("x 1 *", genome.Genome{6, 2, 5}, "x"),
		Entry("x 0 *", genome.Genome{6, 0, 5}, "0"),
		Entry("x 0 /", genome.Genome{6, 0, 7}, "0"),
		Entry("x 2 1 - *", genome.Genome{6, 4, 2, 3, 5}, "x"),
		Entry("x 2 x + -", genome.Genome{6, 4, 6, 1, 3}, "(x - (2 + x))"),
	)
})

var _ = Describe("Boolean", func() {
	DescribeTable("operators",
		func(prog program.Program[uint32, none], values []uint32, expected uint32) {
			Expect(run(none{}, prog, values...)).To(Equal([]uint32{expected}))
		},
		Entry("&", program.Program[uint32, none]{symbols.And[none]()}, []uint32{0b1100, 0b1010}, uint32(0b1000)),
		Entry("|", program.Program[uint32, none]{symbols.Or[none]()}, []uint32{0b1100, 0b1010}, uint32(0b1110)),
		Entry("x", program.Program[uint32, none]{symbols.Xor[none]()}, []uint32{0b1100, 0b1010}, uint32(0b0110)),
		Entry("~", program.Program[uint32, none]{symbols.Not[none]()}, []uint32{0}, uint32(math.MaxUint32)),
	)

	It("finds xor from input bits", func() {
		ctx, err := program.NewContext(
			[]program.Symbol[uint32, uint32]{symbols.Bit(0), symbols.Bit(1)},
			symbols.BoolFunctions[uint32](),
			0,
		)
		Expect(err).ToNot(HaveOccurred())

		// a b x
		g := genome.Genome{0, 2, 5}
		Expect(ctx.String(g)).To(Equal("a b x"))
		for input := uint32(0); input < 4; input++ {
			Expect(ctx.Eval(g, input)).To(Equal((input & 1) ^ (input >> 1)))
		}
	})
})

var _ = Describe("Stack manipulation", func() {
	DescribeTable("rearranges the top of the stack",
		func(sym program.Symbol[int, none], expected []int) {
			Expect(run(none{}, program.Program[int, none]{sym}, 1, 2, 3)).To(Equal(expected))
		},
		Entry("dup", symbols.Dup[int, none](), []int{1, 2, 3, 3}),
		Entry("swap", symbols.Swap[int, none](), []int{1, 3, 2}),
		Entry("drop", symbols.Drop[int, none](), []int{1, 2}),
		Entry("rot", symbols.Rot[int, none](), []int{2, 3, 1}),
		Entry("nip", symbols.Nip[int, none](), []int{1, 3}),
		Entry("tuck", symbols.Tuck[int, none](), []int{1, 3, 2, 3}),
	)

	It("declares arities matching the stack effect", func() {
		for _, sym := range symbols.StackFunctions[int, none]() {
			before := []int{1, 2, 3}
			after := run(none{}, program.Program[int, none]{sym}, before...)
			arity := sym.Arity()
			Expect(len(after)-len(before)).To(Equal(arity.NumOut-arity.NumIn), sym.Name())
		}
	})

	It("is skipped when the stack is too short", func() {
		Expect(run(none{}, program.Program[int, none]{symbols.Rot[int, none]()}, 1, 2)).To(Equal([]int{1, 2}))
	})

	It("pushes its input", func() {
		prog := program.Program[float64, float64]{symbols.Input[float64](), symbols.Dup[float64, float64](), symbols.Mul[float64]()}
		Expect(prog.Eval(5, 0)).To(Equal(25.0))
	})
})

var _ = Describe("Registers", func() {
	var m *symbols.Machine

	BeforeEach(func() {
		m = symbols.NewMachine(0)
	})

	It("stores and loads registers", func() {
		prog := program.Program[float64, *symbols.Machine]{
			program.Const[float64, *symbols.Machine]("3", 3), symbols.StoreA(),
			program.Const[float64, *symbols.Machine]("4", 4), symbols.StoreB(),
			symbols.LoadA(), symbols.LoadB(),
		}
		Expect(run(m, prog)).To(Equal([]float64{3, 4}))
		Expect(m.A).To(Equal(3.0))
		Expect(m.B).To(Equal(4.0))
	})

	It("addresses memory", func() {
		Expect(m.Memory).To(HaveLen(symbols.DefaultMemorySize))

		// 7 2 sm 2 lm 9 -1 sm -1 lm 1.5 lm
		seven := program.Const[float64, *symbols.Machine]("7", 7)
		two := program.Const[float64, *symbols.Machine]("2", 2)
		minus := program.Const[float64, *symbols.Machine]("-1", -1)
		half := program.Const[float64, *symbols.Machine]("1.5", 1.5)
		nine := program.Const[float64, *symbols.Machine]("9", 9)
		prog := program.Program[float64, *symbols.Machine]{
			seven, two, symbols.StoreMem(), two, symbols.LoadMem(),
			nine, minus, symbols.StoreMem(), minus, symbols.LoadMem(),
			half, symbols.LoadMem(),
		}
		Expect(run(m, prog)).To(Equal([]float64{7, 0, 0}))
		Expect(m.Memory).To(Equal([]float64{0, 0, 7, 0, 0}))
	})

	It("prints", func() {
		prog := program.Program[float64, *symbols.Machine]{
			program.Const[float64, *symbols.Machine]("1", 1), symbols.Print(),
			program.Const[float64, *symbols.Machine]("2", 2), symbols.Print(),
			symbols.Print(),
		}
		Expect(run(m, prog)).To(BeEmpty())
		Expect(m.Output).To(Equal([]float64{1, 2}))
	})

	It("clones without sharing memory", func() {
		m.A = 1
		m.Memory[0] = 5
		m.Output = append(m.Output, 9)

		clone := m.Clone()
		clone.Memory[0] = 6
		clone.Output[0] = 8
		Expect(clone.A).To(Equal(1.0))
		Expect(m.Memory[0]).To(Equal(5.0))
		Expect(m.Output[0]).To(Equal(9.0))
	})

	It("builds an instruction set", func() {
		ctx, err := program.NewContext(symbols.RegisterTerminals(), symbols.RegisterFunctions(), 0)
		Expect(err).ToNot(HaveOccurred())
		Expect(ctx.BitsPerSym()).To(Equal(4))
	})
})
