package selection

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/they4kman/rgep/genome"
)

var (
	ErrZeroFitness    = errors.New("total fitness is zero")
	ErrIncrement      = errors.New("mean fitness is not a finite, normal number")
	ErrShapeMismatch  = errors.New("source, destination and fitness sizes differ")
	ErrTournamentSize = errors.New("tournament size must be positive")
)

// Selector fills dst with copies of genomes from src chosen according to fitness.
// src and dst must not share storage.
type Selector interface {
	Name() string
	Select(src, dst genome.Population, fitness []float64, rng *rand.Rand) error
}

func checkShape(src, dst genome.Population, fitness []float64) error {
	if len(fitness) != len(src) || !src.SameShape(dst) {
		srcPop, srcInd := src.Shape()
		dstPop, dstInd := dst.Shape()
		return fmt.Errorf("%w: src %dx%d, dst %dx%d, %d fitness values",
			ErrShapeMismatch, srcPop, srcInd, dstPop, dstInd, len(fitness))
	}
	return nil
}

// greater orders fitness descending with NaN last
func greater(a, b float64) bool {
	if math.IsNaN(b) {
		return !math.IsNaN(a)
	}
	return a > b
}

// Fittest returns the index of the largest fitness, the first one on ties, or -1 when empty
func Fittest(fitness []float64) int {
	best := -1
	for i, f := range fitness {
		if best < 0 || greater(f, fitness[best]) {
			best = i
		}
	}
	return best
}

// Elites returns the indices of the k highest fitnesses, highest first.
// Ties keep their order in fitness.
func Elites(fitness []float64, k int) []int {
	k = min(max(k, 0), len(fitness))
	indices := make([]int, len(fitness))
	for i := range indices {
		indices[i] = i
	}
	sort.SliceStable(indices, func(i, j int) bool {
		return greater(fitness[indices[i]], fitness[indices[j]])
	})
	return indices[:k]
}

const minNormal = 0x1p-1022

func isNormal(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0) && math.Abs(f) >= minNormal
}
