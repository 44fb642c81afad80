package operators

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/they4kman/rgep/genome"
)

// MaxGap caps Geometric so cursor arithmetic cannot overflow
const MaxGap = math.MaxInt32

// Geometric draws the number of failures before the first success of a Bernoulli(p)
// process by inverse transform
func Geometric(rng *rand.Rand, p float64) int {
	if p >= 1 {
		return 0
	}
	if p <= 0 {
		return MaxGap
	}

	u := 1 - rng.Float64()
	gap := math.Floor(math.Log(u) / math.Log1p(-p))
	if math.IsNaN(gap) || gap >= MaxGap {
		return MaxGap
	}
	return int(gap)
}

func wordMask(bitsUsed int) byte {
	return byte(1)<<bitsUsed - 1
}

// Mutate flips each of the low bitsUsed bits of every word with probability pm.
// Instead of drawing once per bit it jumps straight to the next flipped bit.
func Mutate(g genome.Genome, bitsUsed int, pm float64, rng *rand.Rand) {
	if pm <= 0 {
		return
	}
	if pm >= 1 {
		mask := wordMask(bitsUsed)
		for i := range g {
			g[i] ^= mask
		}
		return
	}

	numBits := len(g) * bitsUsed
	for cursor := Geometric(rng, pm); cursor < numBits; cursor += 1 + Geometric(rng, pm) {
		g[cursor/bitsUsed] ^= 1 << (cursor % bitsUsed)
	}
}

// MutateNaive flips each of the low bitsUsed bits of every word with probability pm, one draw per bit
func MutateNaive(g genome.Genome, bitsUsed int, pm float64, rng *rand.Rand) {
	for i, word := range g {
		for j := bitsUsed - 1; j >= 0; j-- {
			if rng.Float64() < pm {
				word ^= 1 << j
			}
		}
		g[i] = word
	}
}

func checkBitsUsed(bitsUsed int) error {
	if bitsUsed < 1 || bitsUsed > genome.MaxBitsPerWord {
		return fmt.Errorf("%w, got %d", ErrBitsPerSym, bitsUsed)
	}
	return nil
}

// PointMutation applies Mutate to every genome
type PointMutation struct {
	Prob     float64
	BitsUsed int
}

func (m PointMutation) Name() string {
	return "point mutation"
}

func (m PointMutation) Apply(pop genome.Population, rng *rand.Rand) error {
	if err := checkBitsUsed(m.BitsUsed); err != nil {
		return err
	}
	for _, g := range pop {
		Mutate(g, m.BitsUsed, m.Prob, rng)
	}
	return nil
}

// NaivePointMutation applies MutateNaive to every genome
type NaivePointMutation struct {
	Prob     float64
	BitsUsed int
}

func (m NaivePointMutation) Name() string {
	return "naive point mutation"
}

func (m NaivePointMutation) Apply(pop genome.Population, rng *rand.Rand) error {
	if err := checkBitsUsed(m.BitsUsed); err != nil {
		return err
	}
	for _, g := range pop {
		MutateNaive(g, m.BitsUsed, m.Prob, rng)
	}
	return nil
}
