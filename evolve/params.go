package evolve

import (
	"errors"
	"fmt"
)

var ErrInvalidParams = errors.New("invalid parameters")

type Params struct {
	// Probability each used bit of every genome flips per generation
	ProbMut float64 `json:"prob_mut" toml:"prob_mut"`

	// Probability each pair of genomes crosses over at one point per generation
	ProbOnePointCrossover float64 `json:"prob_one_point_crossover" toml:"prob_one_point_crossover"`

	// Probability each pair of genomes crosses over at two points per generation
	ProbTwoPointCrossover float64 `json:"prob_two_point_crossover" toml:"prob_two_point_crossover"`

	// Probability each genome is rotated by a random number of words per generation
	ProbRotation float64 `json:"prob_rotation" toml:"prob_rotation"`

	// Number of genomes in the population
	PopSize int `json:"pop_size" toml:"pop_size"`

	// Number of words in each genome
	IndSize int `json:"ind_size" toml:"ind_size"`

	// Number of fittest genomes guaranteed a place in the next generation
	Elitism int `json:"elitism" toml:"elitism"`

	NumGens int `json:"num_gens" toml:"num_gens"`
}

func DefaultParams() *Params {
	return &Params{
		ProbMut:               0.001,
		ProbOnePointCrossover: 0.6,
		ProbTwoPointCrossover: 0.6,
		ProbRotation:          0.01,

		PopSize: 25,
		IndSize: 100,
		Elitism: 1,
		NumGens: 100,
	}
}

func (p *Params) Validate() error {
	return errors.Join(
		checkProb("prob_mut", p.ProbMut),
		checkProb("prob_one_point_crossover", p.ProbOnePointCrossover),
		checkProb("prob_two_point_crossover", p.ProbTwoPointCrossover),
		checkProb("prob_rotation", p.ProbRotation),
		checkSizes(p.PopSize, p.IndSize, p.Elitism, p.NumGens),
	)
}

type GAParams struct {
	ProbMut               float64 `json:"prob_mut" toml:"prob_mut"`
	ProbOnePointCrossover float64 `json:"prob_one_point_crossover" toml:"prob_one_point_crossover"`

	PopSize int `json:"pop_size" toml:"pop_size"`
	IndSize int `json:"ind_size" toml:"ind_size"`
	Elitism int `json:"elitism" toml:"elitism"`
	NumGens int `json:"num_gens" toml:"num_gens"`
}

func DefaultGAParams() *GAParams {
	return &GAParams{
		ProbMut:               0.01,
		ProbOnePointCrossover: 0.6,

		PopSize: 100,
		IndSize: 100,
		Elitism: 0,
		NumGens: 1000,
	}
}

func (p *GAParams) Validate() error {
	return errors.Join(
		checkProb("prob_mut", p.ProbMut),
		checkProb("prob_one_point_crossover", p.ProbOnePointCrossover),
		checkSizes(p.PopSize, p.IndSize, p.Elitism, p.NumGens),
	)
}

func checkProb(name string, prob float64) error {
	if !(prob >= 0 && prob <= 1) {
		return fmt.Errorf("%w: %s %g must be in [0, 1]", ErrInvalidParams, name, prob)
	}
	return nil
}

func checkSizes(popSize, indSize, elitism, numGens int) error {
	var errs []error
	if popSize < 1 {
		errs = append(errs, fmt.Errorf("%w: pop_size %d must be positive", ErrInvalidParams, popSize))
	}
	if indSize < 1 {
		errs = append(errs, fmt.Errorf("%w: ind_size %d must be positive", ErrInvalidParams, indSize))
	}
	if elitism < 0 || elitism > popSize {
		errs = append(errs, fmt.Errorf("%w: elitism %d must be in [0, pop_size]", ErrInvalidParams, elitism))
	}
	if numGens < 0 {
		errs = append(errs, fmt.Errorf("%w: num_gens %d must not be negative", ErrInvalidParams, numGens))
	}
	return errors.Join(errs...)
}
