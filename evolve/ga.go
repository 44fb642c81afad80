package evolve

import (
	"math/rand"

	"github.com/they4kman/rgep/genome"
	"github.com/they4kman/rgep/operators"
)

// GAEvaluator scores raw genome bytes
type GAEvaluator func(g genome.Genome, rng *rand.Rand) float64

// GA is a plain genetic algorithm over full bytes: mutation and one-point crossover,
// no rotation and no decoding.
type GA struct {
	*engine

	params GAParams
}

// NewGA accepts the same options as NewGEP except WithState, which it ignores
func NewGA(params *GAParams, eval GAEvaluator, opts ...Option) (*GA, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	e, err := newEngine(params.PopSize, params.IndSize, genome.MaxBitsPerWord, params.NumGens, params.Elitism, o)
	if err != nil {
		return nil, err
	}
	e.pipeline = operators.Pipeline{
		operators.PointMutation{Prob: params.ProbMut, BitsUsed: genome.MaxBitsPerWord},
		operators.OnePointCrossover{Prob: params.ProbOnePointCrossover, BitsPerSym: genome.MaxBitsPerWord},
	}
	e.score = eval
	return &GA{engine: e, params: *params}, nil
}

func (ga *GA) Init(rng *rand.Rand) {
	ga.init(rng)
}

func (ga *GA) Step(rng *rand.Rand) error {
	return ga.step(rng)
}

func (ga *GA) Run(rng *rand.Rand) (Result, error) {
	return ga.run(rng)
}

func (ga *GA) Operators() []operators.Operator {
	return append([]operators.Operator(nil), ga.pipeline...)
}

func (ga *GA) Params() GAParams {
	return ga.params
}

func (ga *GA) Population() genome.Population {
	return ga.pop
}

func (ga *GA) Fitness() []float64 {
	return ga.fitness
}

func (ga *GA) Generation() int {
	return ga.generation
}
