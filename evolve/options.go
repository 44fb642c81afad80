package evolve

import (
	"log/slog"

	"github.com/they4kman/rgep/genome"
	"github.com/they4kman/rgep/selection"
)

type options struct {
	logger    *slog.Logger
	cacheSize int
	template  genome.Genome
	selector  selection.Selector

	hasState bool
	state    any
	clone    any
}

type Option func(*options)

// WithState sets the program state every evaluation starts from. Each genome is
// evaluated against clone(template); NewGEP rejects a nil clone.
func WithState[S any](template S, clone func(S) S) Option {
	return func(o *options) {
		o.hasState = true
		o.state = template
		o.clone = clone
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithFitnessCache remembers the fitness of up to size distinct genomes.
// Only use it with evaluators that ignore their rng.
func WithFitnessCache(size int) Option {
	return func(o *options) {
		o.cacheSize = size
	}
}

// WithTemplate starts every genome of the first generation as a copy of template
// instead of drawing it at random
func WithTemplate(template genome.Genome) Option {
	return func(o *options) {
		o.template = template
	}
}

// WithSelector replaces stochastic universal sampling with elitism
func WithSelector(selector selection.Selector) Option {
	return func(o *options) {
		o.selector = selector
	}
}
