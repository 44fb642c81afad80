package operators

import (
	"fmt"
	"math/rand"

	"github.com/they4kman/rgep/genome"
)

// Operator is one stage of a generation. It rewrites the population in place.
type Operator interface {
	Name() string
	Apply(pop genome.Population, rng *rand.Rand) error
}

// Pipeline applies its operators in order, stopping at the first error
type Pipeline []Operator

func (p Pipeline) Apply(pop genome.Population, rng *rand.Rand) error {
	for _, op := range p {
		if err := op.Apply(pop, rng); err != nil {
			return fmt.Errorf("%s: %w", op.Name(), err)
		}
	}
	return nil
}

func (p Pipeline) Names() []string {
	names := make([]string, len(p))
	for i, op := range p {
		names[i] = op.Name()
	}
	return names
}
