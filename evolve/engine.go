package evolve

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"

	lru "github.com/hashicorp/golang-lru"

	"github.com/they4kman/rgep/genome"
	"github.com/they4kman/rgep/operators"
	"github.com/they4kman/rgep/selection"
)

var ErrNotInitialized = errors.New("population is not initialized")

type GenerationStats struct {
	Generation int
	Best       float64
	Mean       float64
	Min        float64
}

// Result is the outcome of a run. Population and Fitness describe the final generation;
// Best and BestFitness are the fittest genome evaluated at any point of the run.
type Result struct {
	Population  genome.Population
	Fitness     []float64
	Best        genome.Genome
	BestFitness float64
	History     []GenerationStats
}

// engine owns the population buffers and runs the generation loop shared by both drivers
type engine struct {
	popSize  int
	indSize  int
	bitsUsed int
	numGens  int

	pipeline operators.Pipeline
	selector selection.Selector
	logger   *slog.Logger
	cache    *lru.Cache
	template genome.Genome
	score    func(g genome.Genome, rng *rand.Rand) float64

	pop, alt    genome.Population
	fitness     []float64
	generation  int
	history     []GenerationStats
	best        genome.Genome
	bestFitness float64
}

func newEngine(popSize, indSize, bitsUsed, numGens, elitism int, o *options) (*engine, error) {
	e := &engine{
		popSize:  popSize,
		indSize:  indSize,
		bitsUsed: bitsUsed,
		numGens:  numGens,
		selector: o.selector,
		logger:   o.logger,
		template: o.template,
	}

	if e.selector == nil {
		e.selector = selection.SUS{Elitism: elitism}
	}
	if e.logger == nil {
		e.logger = slog.New(slog.DiscardHandler)
	}
	if e.template != nil && len(e.template) != indSize {
		return nil, fmt.Errorf("%w: template has %d words, expected %d", ErrInvalidParams, len(e.template), indSize)
	}
	if o.cacheSize > 0 {
		cache, err := lru.New(o.cacheSize)
		if err != nil {
			return nil, err
		}
		e.cache = cache
	}
	return e, nil
}

// init allocates both population buffers and fills the first generation
func (e *engine) init(rng *rand.Rand) {
	if e.template != nil {
		e.pop = genome.FromTemplate(e.popSize, e.template)
	} else {
		e.pop = genome.RandomPopulation(e.popSize, e.indSize, e.bitsUsed, rng)
	}
	e.alt = genome.NewPopulation(e.popSize, e.indSize)
	e.fitness = make([]float64, e.popSize)
	e.generation = 0
	e.history = e.history[:0]
	e.best = nil
	e.bestFitness = math.Inf(-1)

	e.logger.Debug("population initialized",
		"pop_size", e.popSize,
		"ind_size", e.indSize,
		"bits_per_word", e.bitsUsed,
		"operators", e.pipeline.Names(),
		"selector", e.selector.Name(),
	)
}

func (e *engine) evaluate(rng *rand.Rand) {
	for i, g := range e.pop {
		if e.cache != nil {
			if cached, ok := e.cache.Get(string(g)); ok {
				e.fitness[i] = cached.(float64)
				continue
			}
		}

		e.fitness[i] = e.score(g, rng)
		if e.cache != nil {
			e.cache.Add(string(g), e.fitness[i])
		}
	}

	if i := selection.Fittest(e.fitness); i >= 0 && (e.best == nil || e.fitness[i] > e.bestFitness) {
		e.best = e.pop[i].Copy()
		e.bestFitness = e.fitness[i]
	}
}

func (e *engine) stats() GenerationStats {
	stats := GenerationStats{
		Generation: e.generation,
		Best:       math.Inf(-1),
		Min:        math.Inf(1),
	}
	for _, f := range e.fitness {
		stats.Best = math.Max(stats.Best, f)
		stats.Min = math.Min(stats.Min, f)
		stats.Mean += f
	}
	stats.Mean /= float64(len(e.fitness))
	return stats
}

// step runs one generation: every operator in order, evaluation, then selection into
// the alternate buffer, which becomes the population.
func (e *engine) step(rng *rand.Rand) error {
	if e.pop == nil {
		return ErrNotInitialized
	}

	if err := e.pipeline.Apply(e.pop, rng); err != nil {
		return fmt.Errorf("generation %d: %w", e.generation, err)
	}
	e.evaluate(rng)

	stats := e.stats()
	e.history = append(e.history, stats)
	e.logger.Debug("generation",
		"generation", stats.Generation,
		"best", stats.Best,
		"mean", stats.Mean,
		"min", stats.Min,
	)

	if err := e.selector.Select(e.pop, e.alt, e.fitness, rng); err != nil {
		return fmt.Errorf("generation %d: %w", e.generation, err)
	}
	e.pop, e.alt = e.alt, e.pop
	e.generation++
	return nil
}

func (e *engine) run(rng *rand.Rand) (Result, error) {
	if e.pop == nil {
		e.init(rng)
	}

	for e.generation < e.numGens {
		if err := e.step(rng); err != nil {
			e.logger.Error("run stopped", "generation", e.generation, "error", err)
			return Result{}, err
		}
	}
	e.evaluate(rng)

	result := Result{
		Population:  e.pop.Copy(),
		Fitness:     append([]float64(nil), e.fitness...),
		Best:        e.best.Copy(),
		BestFitness: e.bestFitness,
		History:     append([]GenerationStats(nil), e.history...),
	}
	e.logger.Info("run finished",
		"generations", e.generation,
		"best_fitness", result.BestFitness,
	)
	return result, nil
}
