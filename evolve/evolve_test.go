package evolve

import (
	"errors"
	"math"
	"math/rand"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	. "github.com/onsi/gomega/gstruct"

	"github.com/they4kman/rgep/genome"
	"github.com/they4kman/rgep/program"
	"github.com/they4kman/rgep/selection"
	"github.com/they4kman/rgep/symbols"
)

func cloneVariables(vars symbols.Variables) symbols.Variables {
	clone := make(symbols.Variables, len(vars))
	for k, v := range vars {
		clone[k] = v
	}
	return clone
}

// quadratic scores how closely a program computes x*x + x + 1 over a few points
func quadratic(prog program.Program[float64, symbols.Variables], vars symbols.Variables, _ *rand.Rand) float64 {
	errSum := 0.0
	for x := -2.0; x <= 2; x++ {
		vars["x"] = x
		errSum += math.Abs(prog.Eval(vars, 0) - (x*x + x + 1))
	}
	if math.IsNaN(errSum) || math.IsInf(errSum, 0) {
		return 0
	}
	return 1 / (1 + errSum)
}

func sumOfBytes(g genome.Genome, _ *rand.Rand) float64 {
	sum := 0.0
	for _, word := range g {
		sum += float64(word)
	}
	return sum
}

func smallParams() *Params {
	params := DefaultParams()
	params.PopSize = 20
	params.IndSize = 24
	params.NumGens = 15
	params.ProbMut = 0.01
	return params
}

func newRegression(params *Params, opts ...Option) *GEP[float64, symbols.Variables] {
	ctx, err := symbols.ArithContext("x")
	Expect(err).ToNot(HaveOccurred())

	opts = append([]Option{WithState(symbols.Variables{"x": 0}, cloneVariables)}, opts...)
	gep, err := NewGEP(params, ctx, quadratic, opts...)
	Expect(err).ToNot(HaveOccurred())
	return gep
}

var _ = Describe("Params", func() {
	It("has valid defaults", func() {
		Expect(DefaultParams().Validate()).To(Succeed())
		Expect(DefaultGAParams().Validate()).To(Succeed())
	})

	It("names every invalid field", func() {
		params := DefaultParams()
		params.ProbMut = 1.5
		params.ProbRotation = math.NaN()
		params.PopSize = 0
		params.Elitism = 3

		err := params.Validate()
		Expect(errors.Is(err, ErrInvalidParams)).To(BeTrue())
		Expect(err.Error()).To(ContainSubstring("prob_mut"))
		Expect(err.Error()).To(ContainSubstring("prob_rotation"))
		Expect(err.Error()).To(ContainSubstring("pop_size"))
		Expect(err.Error()).To(ContainSubstring("elitism"))
		Expect(err.Error()).ToNot(ContainSubstring("ind_size"))
	})

	It("rejects invalid GA parameters", func() {
		params := DefaultGAParams()
		params.NumGens = -1
		Expect(params.Validate()).To(MatchError(ContainSubstring("num_gens")))
	})
})

var _ = Describe("GEP", func() {
	It("runs the operators in order", func() {
		gep := newRegression(smallParams())
		names := make([]string, 0, 4)
		for _, op := range gep.Operators() {
			names = append(names, op.Name())
		}
		Expect(names).To(Equal([]string{"rotation", "point mutation", "one-point crossover", "two-point crossover"}))
	})

	It("keeps the population shape", func() {
		params := smallParams()
		result, err := newRegression(params).Run(rand.New(rand.NewSource(42)))
		Expect(err).ToNot(HaveOccurred())

		popSize, indSize := result.Population.Shape()
		Expect(popSize).To(Equal(params.PopSize))
		Expect(indSize).To(Equal(params.IndSize))
		Expect(result.Population.Validate()).To(Succeed())
		Expect(result.Fitness).To(HaveLen(params.PopSize))
		Expect(result.History).To(HaveLen(params.NumGens))
		Expect(result.Best).To(HaveLen(params.IndSize))
	})

	It("is reproducible from a seed", func() {
		first, err := newRegression(smallParams()).Run(rand.New(rand.NewSource(42)))
		Expect(err).ToNot(HaveOccurred())
		second, err := newRegression(smallParams()).Run(rand.New(rand.NewSource(42)))
		Expect(err).ToNot(HaveOccurred())

		Expect(second.Population.Equal(first.Population)).To(BeTrue())
		Expect(second.Fitness).To(Equal(first.Fitness))
		Expect(second.History).To(Equal(first.History))
		Expect(second.Best).To(Equal(first.Best))
	})

	It("reports consistent statistics", func() {
		result, err := newRegression(smallParams()).Run(rand.New(rand.NewSource(7)))
		Expect(err).ToNot(HaveOccurred())

		for i, stats := range result.History {
			Expect(stats).To(MatchFields(IgnoreExtras, Fields{
				"Generation": Equal(i),
				"Best":       BeNumerically("<=", result.BestFitness),
				"Min":        BeNumerically("<=", stats.Mean+1e-12),
				"Mean":       BeNumerically("<=", stats.Best+1e-12),
			}))
		}
		Expect(result.BestFitness).To(BeNumerically(">", 0))
		Expect(result.BestFitness).To(BeNumerically("<=", 1))
	})

	It("keeps the best genome it evaluated", func() {
		gep := newRegression(smallParams())
		result, err := gep.Run(rand.New(rand.NewSource(3)))
		Expect(err).ToNot(HaveOccurred())

		prog := gep.Context().Compile(result.Best)
		Expect(quadratic(prog, symbols.Variables{}, nil)).To(Equal(result.BestFitness))
	})

	It("evaluates every genome against a fresh state", func() {
		ctx, err := program.NewContext(symbols.RegisterTerminals(), symbols.RegisterFunctions(), 0)
		Expect(err).ToNot(HaveOccurred())

		template := symbols.NewMachine(4)
		template.A = 1
		pristine := 0
		eval := func(prog program.Program[float64, *symbols.Machine], m *symbols.Machine, _ *rand.Rand) float64 {
			if m.A == 1 && m.B == 0 && len(m.Output) == 0 {
				pristine++
			}
			m.A = 7
			m.Output = append(m.Output, prog.Eval(m, 0))
			return 1
		}

		params := smallParams()
		gep, err := NewGEP(params, ctx, eval, WithState(template, (*symbols.Machine).Clone))
		Expect(err).ToNot(HaveOccurred())
		gep.Init(rand.New(rand.NewSource(42)))
		Expect(gep.Step(rand.New(rand.NewSource(42)))).To(Succeed())

		Expect(pristine).To(Equal(params.PopSize))
		Expect(template.A).To(Equal(1.0))
		Expect(template.Output).To(BeEmpty())
		Expect(gep.Generation()).To(Equal(1))
	})

	It("rejects a state without a clone function", func() {
		ctx, err := program.NewContext(symbols.RegisterTerminals(), symbols.RegisterFunctions(), 0)
		Expect(err).ToNot(HaveOccurred())
		eval := func(program.Program[float64, *symbols.Machine], *symbols.Machine, *rand.Rand) float64 {
			return 1
		}

		_, err = NewGEP(smallParams(), ctx, eval, WithState(symbols.NewMachine(4), nil))
		Expect(err).To(MatchError(ErrNilClone))
	})

	It("requires a state for instruction sets with reference state", func() {
		machineCtx, err := program.NewContext(symbols.RegisterTerminals(), symbols.RegisterFunctions(), 0)
		Expect(err).ToNot(HaveOccurred())
		eval := func(program.Program[float64, *symbols.Machine], *symbols.Machine, *rand.Rand) float64 {
			return 1
		}
		_, err = NewGEP(smallParams(), machineCtx, eval)
		Expect(err).To(MatchError(ErrStateRequired))

		arithCtx, err := symbols.ArithContext("x")
		Expect(err).ToNot(HaveOccurred())
		_, err = NewGEP(smallParams(), arithCtx, quadratic)
		Expect(err).To(MatchError(ErrStateRequired))
	})

	It("runs value states without WithState", func() {
		ctx, err := program.NewContext(symbols.ArithConstants[struct{}](), symbols.ArithFunctions[struct{}](), 0)
		Expect(err).ToNot(HaveOccurred())
		eval := func(prog program.Program[float64, struct{}], state struct{}, _ *rand.Rand) float64 {
			return 1 / (1 + math.Abs(prog.Eval(state, 0)-5))
		}

		gep, err := NewGEP(smallParams(), ctx, eval)
		Expect(err).ToNot(HaveOccurred())
		result, err := gep.Run(rand.New(rand.NewSource(42)))
		Expect(err).ToNot(HaveOccurred())
		Expect(result.BestFitness).To(BeNumerically(">", 0))
	})

	It("caches fitness by genome", func() {
		params := smallParams()
		params.ProbMut = 0
		params.ProbRotation = 0
		params.ProbOnePointCrossover = 0
		params.ProbTwoPointCrossover = 0

		ctx, err := symbols.ArithContext("x")
		Expect(err).ToNot(HaveOccurred())
		calls := 0
		eval := func(prog program.Program[float64, symbols.Variables], vars symbols.Variables, rng *rand.Rand) float64 {
			calls++
			return quadratic(prog, vars, rng) + 1
		}

		template := genome.New(params.IndSize)
		opts := []Option{WithState(symbols.Variables{}, cloneVariables), WithTemplate(template)}

		cached, err := NewGEP(params, ctx, eval, append(opts, WithFitnessCache(16))...)
		Expect(err).ToNot(HaveOccurred())
		cached.Init(rand.New(rand.NewSource(42)))
		Expect(cached.Step(rand.New(rand.NewSource(42)))).To(Succeed())
		Expect(cached.Step(rand.New(rand.NewSource(42)))).To(Succeed())
		Expect(calls).To(Equal(1))

		calls = 0
		uncached, err := NewGEP(params, ctx, eval, opts...)
		Expect(err).ToNot(HaveOccurred())
		uncached.Init(rand.New(rand.NewSource(42)))
		Expect(uncached.Step(rand.New(rand.NewSource(42)))).To(Succeed())
		Expect(calls).To(Equal(params.PopSize))
	})

	It("stops on zero total fitness", func() {
		ctx, err := symbols.ArithContext("x")
		Expect(err).ToNot(HaveOccurred())
		zero := func(program.Program[float64, symbols.Variables], symbols.Variables, *rand.Rand) float64 {
			return 0
		}

		gep, err := NewGEP(smallParams(), ctx, zero, WithState(symbols.Variables{}, cloneVariables))
		Expect(err).ToNot(HaveOccurred())
		_, err = gep.Run(rand.New(rand.NewSource(42)))
		Expect(err).To(MatchError(selection.ErrZeroFitness))
		Expect(err.Error()).To(ContainSubstring("generation 0"))
	})

	It("requires initialization before stepping", func() {
		gep := newRegression(smallParams())
		Expect(gep.Step(rand.New(rand.NewSource(42)))).To(MatchError(ErrNotInitialized))
	})

	It("rejects mismatched options", func() {
		ctx, err := symbols.ArithContext("x")
		Expect(err).ToNot(HaveOccurred())

		_, err = NewGEP(smallParams(), ctx, quadratic, WithState(3.0, nil))
		Expect(err).To(HaveOccurred())

		_, err = NewGEP(smallParams(), ctx, quadratic, WithTemplate(genome.New(3)))
		Expect(err).To(MatchError(ErrInvalidParams))

		params := smallParams()
		params.PopSize = -1
		_, err = NewGEP(params, ctx, quadratic)
		Expect(err).To(MatchError(ErrInvalidParams))
	})
})

var _ = Describe("GA", func() {
	It("climbs a one-max landscape", func() {
		params := DefaultGAParams()
		params.PopSize = 40
		params.IndSize = 16
		params.NumGens = 60
		params.Elitism = 1

		ga, err := NewGA(params, sumOfBytes, WithSelector(selection.Tournament{Size: 3, Prob: 0.9, Elitism: 1}))
		Expect(err).ToNot(HaveOccurred())
		result, err := ga.Run(rand.New(rand.NewSource(42)))
		Expect(err).ToNot(HaveOccurred())

		first, last := result.History[0], result.History[len(result.History)-1]
		Expect(last.Mean).To(BeNumerically(">", first.Mean))
		Expect(result.BestFitness).To(BeNumerically(">=", first.Best))
		Expect(result.BestFitness).To(Equal(sumOfBytes(result.Best, nil)))
	})

	It("mutates and crosses whole bytes", func() {
		ga, err := NewGA(DefaultGAParams(), sumOfBytes)
		Expect(err).ToNot(HaveOccurred())

		ops := ga.Operators()
		Expect(ops).To(HaveLen(2))
		Expect(ops[0].Name()).To(Equal("point mutation"))
		Expect(ops[1].Name()).To(Equal("one-point crossover"))
		Expect(ga.Params()).To(Equal(*DefaultGAParams()))
	})

	It("is reproducible from a seed", func() {
		params := DefaultGAParams()
		params.NumGens = 20
		run := func() Result {
			ga, err := NewGA(params, sumOfBytes)
			Expect(err).ToNot(HaveOccurred())
			result, err := ga.Run(rand.New(rand.NewSource(9)))
			Expect(err).ToNot(HaveOccurred())
			return result
		}
		Expect(run().History).To(Equal(run().History))
	})
})
