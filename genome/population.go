package genome

import (
	"fmt"
	"math/rand"
)

// Population is a fixed-size collection of equally sized Genomes.
// Selection overwrites a second Population of identical shape rather than reallocating.
type Population []Genome

// NewPopulation allocates popSize zeroed genomes of indSize words backed by one contiguous buffer
func NewPopulation(popSize, indSize int) Population {
	backing := make([]byte, popSize*indSize)

	pop := make(Population, popSize)
	for i := range pop {
		pop[i] = backing[i*indSize : (i+1)*indSize : (i+1)*indSize]
	}
	return pop
}

// RandomPopulation creates popSize genomes of indSize words, each word uniform in [0, 2^bitsUsed)
func RandomPopulation(popSize, indSize, bitsUsed int, rng *rand.Rand) Population {
	pop := NewPopulation(popSize, indSize)
	for _, g := range pop {
		g.Randomize(bitsUsed, rng)
	}
	return pop
}

// FromTemplate creates popSize copies of template
func FromTemplate(popSize int, template Genome) Population {
	pop := NewPopulation(popSize, len(template))
	for _, g := range pop {
		g.CopyFrom(template)
	}
	return pop
}

// Shape returns the number of genomes and the length of the first genome
func (pop Population) Shape() (popSize, indSize int) {
	if len(pop) == 0 {
		return 0, 0
	}
	return len(pop), len(pop[0])
}

// Validate checks every genome shares one length
func (pop Population) Validate() error {
	_, indSize := pop.Shape()
	for i, g := range pop {
		if len(g) != indSize {
			return fmt.Errorf("genome %d has %d words, expected %d", i, len(g), indSize)
		}
	}
	return nil
}

// SameShape reports whether pop and other hold the same number of genomes of the same length
func (pop Population) SameShape(other Population) bool {
	popSize, indSize := pop.Shape()
	otherPopSize, otherIndSize := other.Shape()
	return popSize == otherPopSize && indSize == otherIndSize
}

// CopyFrom overwrites every genome of pop with the matching genome of other
func (pop Population) CopyFrom(other Population) {
	for i := range pop {
		pop[i].CopyFrom(other[i])
	}
}

func (pop Population) Copy() Population {
	popSize, indSize := pop.Shape()
	copied := NewPopulation(popSize, indSize)
	copied.CopyFrom(pop)
	return copied
}

func (pop Population) Equal(other Population) bool {
	if len(pop) != len(other) {
		return false
	}
	for i := range pop {
		if !pop[i].Equal(other[i]) {
			return false
		}
	}
	return true
}
