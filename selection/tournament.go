package selection

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/they4kman/rgep/genome"
)

// Tournament fills each slot with the winner of a tournament among Size genomes drawn
// uniformly with replacement. Entrants are ranked by fitness and the entrant of rank r
// wins with probability Prob*(1-Prob)^r; the last rank takes what is left.
// The Elitism fittest genomes keep their own slots.
type Tournament struct {
	Size    int
	Prob    float64
	Elitism int
}

func (t Tournament) Name() string {
	return "tournament"
}

func (t Tournament) Select(src, dst genome.Population, fitness []float64, rng *rand.Rand) error {
	if err := checkShape(src, dst, fitness); err != nil {
		return err
	}
	if t.Size < 1 {
		return fmt.Errorf("%w, got %d", ErrTournamentSize, t.Size)
	}
	if t.Prob < 0 || t.Prob > 1 {
		return fmt.Errorf("tournament win probability %g must be in [0, 1]", t.Prob)
	}

	kept := make([]bool, len(src))
	for _, i := range Elites(fitness, t.Elitism) {
		kept[i] = true
	}

	entrants := make([]int, t.Size)
	for slot := range dst {
		if kept[slot] {
			dst[slot].CopyFrom(src[slot])
			continue
		}

		for i := range entrants {
			entrants[i] = rng.Intn(len(src))
		}
		sort.SliceStable(entrants, func(i, j int) bool {
			return greater(fitness[entrants[i]], fitness[entrants[j]])
		})

		rank := 0
		for rank < len(entrants)-1 && rng.Float64() >= t.Prob {
			rank++
		}
		dst[slot].CopyFrom(src[entrants[rank]])
	}
	return nil
}
