package evolve

import (
	"errors"
	"fmt"
	"math/rand"
	"reflect"

	"github.com/they4kman/rgep/genome"
	"github.com/they4kman/rgep/operators"
	"github.com/they4kman/rgep/program"
)

var (
	ErrNilClone      = errors.New("state needs a clone function")
	ErrStateRequired = errors.New("state type holds references and needs WithState")
)

// Evaluator scores a compiled program. state is a fresh copy of the run's state template.
type Evaluator[V, S any] func(prog program.Program[V, S], state S, rng *rand.Rand) float64

// GEP evolves genomes that decode into stack programs of ctx. The fitness of a genome is
// whatever its evaluator returns for the decoded program; higher is better and the total
// over a generation must not be zero.
type GEP[V, S any] struct {
	*engine

	params Params
	ctx    *program.Context[V, S]
	eval   Evaluator[V, S]

	state S
	clone func(S) S
	prog  program.Program[V, S]
}

func NewGEP[V, S any](params *Params, ctx *program.Context[V, S], eval Evaluator[V, S], opts ...Option) (*GEP[V, S], error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	g := &GEP[V, S]{
		params: *params,
		ctx:    ctx,
		eval:   eval,
		prog:   make(program.Program[V, S], 0, params.IndSize),
	}
	if o.hasState {
		if o.state != nil {
			state, ok := o.state.(S)
			if !ok {
				return nil, fmt.Errorf("state has type %T, expected %T", o.state, g.state)
			}
			g.state = state
		}
		clone, ok := o.clone.(func(S) S)
		if !ok || clone == nil {
			return nil, ErrNilClone
		}
		g.clone = clone
	} else if holdsReferences[S]() {
		return nil, fmt.Errorf("%w: %v", ErrStateRequired, reflect.TypeFor[S]())
	}

	bitsPerSym := ctx.BitsPerSym()
	e, err := newEngine(params.PopSize, params.IndSize, bitsPerSym, params.NumGens, params.Elitism, o)
	if err != nil {
		return nil, err
	}
	e.pipeline = operators.Pipeline{
		&operators.Rotation{Prob: params.ProbRotation},
		operators.PointMutation{Prob: params.ProbMut, BitsUsed: bitsPerSym},
		operators.OnePointCrossover{Prob: params.ProbOnePointCrossover, BitsPerSym: bitsPerSym},
		operators.TwoPointCrossover{Prob: params.ProbTwoPointCrossover, BitsPerSym: bitsPerSym},
	}
	e.score = g.score
	g.engine = e
	return g, nil
}

func (g *GEP[V, S]) score(ind genome.Genome, rng *rand.Rand) float64 {
	g.ctx.CompileTo(ind, &g.prog)
	state := g.state
	if g.clone != nil {
		state = g.clone(g.state)
	}
	return g.eval(g.prog, state, rng)
}

// holdsReferences reports whether the zero value of S is nil, or copies of it would share memory
func holdsReferences[S any]() bool {
	switch reflect.TypeFor[S]().Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Chan, reflect.Func:
		return true
	}
	return false
}

// Init draws the first generation
func (g *GEP[V, S]) Init(rng *rand.Rand) {
	g.init(rng)
}

// Step runs one generation
func (g *GEP[V, S]) Step(rng *rand.Rand) error {
	return g.step(rng)
}

// Run initializes the population if needed and steps until NumGens generations have run
func (g *GEP[V, S]) Run(rng *rand.Rand) (Result, error) {
	return g.run(rng)
}

func (g *GEP[V, S]) Operators() []operators.Operator {
	return append([]operators.Operator(nil), g.pipeline...)
}

func (g *GEP[V, S]) Params() Params {
	return g.params
}

func (g *GEP[V, S]) Context() *program.Context[V, S] {
	return g.ctx
}

func (g *GEP[V, S]) Population() genome.Population {
	return g.pop
}

// Fitness holds the fitness of each genome as last evaluated, before selection reordered them
func (g *GEP[V, S]) Fitness() []float64 {
	return g.fitness
}

func (g *GEP[V, S]) Generation() int {
	return g.generation
}
