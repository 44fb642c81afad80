package selection

import (
	"fmt"
	"math/rand"

	"github.com/they4kman/rgep/genome"
)

// StochasticUniversal fills dst by stochastic universal sampling: len(src) evenly spaced
// pointers, the first at u times the spacing, swept once over the cumulative fitness.
// The elitism fittest genomes are guaranteed at least one copy each. u must be in [0, 1).
func StochasticUniversal(src, dst genome.Population, fitness []float64, elitism int, u float64) error {
	if err := checkShape(src, dst, fitness); err != nil {
		return err
	}

	total := 0.0
	for _, f := range fitness {
		total += f
	}
	if total == 0 {
		return ErrZeroFitness
	}
	n := len(src)
	increment := total / float64(n)
	if !isNormal(increment) {
		return fmt.Errorf("%w: %g", ErrIncrement, increment)
	}

	elites := Elites(fitness, elitism)
	pending := make([]bool, n)
	for _, i := range elites {
		pending[i] = true
	}
	unconsumed := len(elites)

	filled := 0
	place := func(i int) {
		dst[filled].CopyFrom(src[i])
		filled++
	}

	offset := increment * u
	accum := 0.0
	for i := 0; i < n && filled < n; i++ {
		accum += fitness[i]
		for offset <= accum && filled < n {
			if pending[i] {
				pending[i] = false
				unconsumed--
			} else if filled+unconsumed >= n {
				// the remaining slots belong to elites
				break
			}
			place(i)
			offset += increment
		}

		if pending[i] {
			pending[i] = false
			unconsumed--
			place(i)
		}
	}

	if filled < n {
		best := Fittest(fitness)
		for filled < n {
			place(best)
		}
	}
	return nil
}

// SUS is stochastic universal sampling with a random pointer offset
type SUS struct {
	Elitism int
}

func (s SUS) Name() string {
	return "sus"
}

func (s SUS) Select(src, dst genome.Population, fitness []float64, rng *rand.Rand) error {
	return StochasticUniversal(src, dst, fitness, s.Elitism, rng.Float64())
}
