package operators

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/they4kman/rgep/genome"
)

var (
	ErrLengthMismatch = errors.New("genomes differ in length")
	ErrBitsPerSym     = fmt.Errorf("bits per symbol must be in [1, %d]", genome.MaxBitsPerWord)
	ErrPointOrder     = errors.New("crossover points must be sorted")
	ErrPointRange     = errors.New("crossover point out of range")
)

// CrossWord exchanges the low bit bits of a and b. Each word keeps its own high bits.
func CrossWord(a, b byte, bit int) (byte, byte) {
	mask := byte(1)<<bit - 1
	return (a &^ mask) | (b & mask), (b &^ mask) | (a & mask)
}

func checkPair(a, b genome.Genome, bitsPerSym int) error {
	if len(a) != len(b) {
		return fmt.Errorf("%w: %d and %d", ErrLengthMismatch, len(a), len(b))
	}
	if bitsPerSym < 1 || bitsPerSym > genome.MaxBitsPerWord {
		return fmt.Errorf("%w, got %d", ErrBitsPerSym, bitsPerSym)
	}
	return nil
}

func checkPoints(numBits int, points []int) error {
	for i, point := range points {
		if point < 0 || point >= numBits {
			return fmt.Errorf("%w: point %d must be in [0, %d)", ErrPointRange, point, numBits)
		}
		if i > 0 && point < points[i-1] {
			return fmt.Errorf("%w: %v", ErrPointOrder, points)
		}
	}
	return nil
}

func swapWords(a, b genome.Genome) {
	for i := range a {
		a[i], b[i] = b[i], a[i]
	}
}

// CrossAtPoint exchanges every bit of a and b below offset, counting bitsPerSym bits
// per word from the start of the genome.
func CrossAtPoint(a, b genome.Genome, bitsPerSym, offset int) error {
	if err := checkPair(a, b, bitsPerSym); err != nil {
		return err
	}
	if err := checkPoints(len(a)*bitsPerSym, []int{offset}); err != nil {
		return err
	}

	crossIndex := offset / bitsPerSym
	swapWords(a[:crossIndex], b[:crossIndex])
	a[crossIndex], b[crossIndex] = CrossWord(a[crossIndex], b[crossIndex], offset%bitsPerSym)
	return nil
}

// crossBoundary merges the word holding a point, then the sides trade places
func crossBoundary(first, second genome.Genome, index, bit, bitsPerSym int) {
	if bit != bitsPerSym-1 {
		f, s := CrossWord(first[index], second[index], bit)
		first[index], second[index] = s, f
	}
}

// CrossAtPoints performs multi-point crossover at the sorted bit offsets in points.
// Whole runs of words between points are exchanged as blocks.
func CrossAtPoints(a, b genome.Genome, bitsPerSym int, points []int) error {
	if err := checkPair(a, b, bitsPerSym); err != nil {
		return err
	}
	if err := checkPoints(len(a)*bitsPerSym, points); err != nil {
		return err
	}

	first, second := a, b
	word := 0
	for _, point := range points {
		crossIndex := point / bitsPerSym
		swapWords(first[word:crossIndex+1], second[word:crossIndex+1])
		crossBoundary(first, second, crossIndex, point%bitsPerSym, bitsPerSym)

		first, second = second, first
		word = crossIndex + 1
	}
	swapWords(first[word:], second[word:])
	return nil
}

// CrossAtPointsNaive computes the same result as CrossAtPoints one word at a time
func CrossAtPointsNaive(a, b genome.Genome, bitsPerSym int, points []int) error {
	if err := checkPair(a, b, bitsPerSym); err != nil {
		return err
	}
	if err := checkPoints(len(a)*bitsPerSym, points); err != nil {
		return err
	}

	first, second := a, b
	next := 0
	for i := range first {
		first[i], second[i] = second[i], first[i]
		for next < len(points) && points[next]/bitsPerSym == i {
			crossBoundary(first, second, i, points[next]%bitsPerSym, bitsPerSym)
			first, second = second, first
			next++
		}
	}
	return nil
}

// OnePointCrossover crosses each pair (2i, 2i+1) with probability Prob at a uniform offset
type OnePointCrossover struct {
	Prob       float64
	BitsPerSym int
}

func (c OnePointCrossover) Name() string {
	return "one-point crossover"
}

func (c OnePointCrossover) Apply(pop genome.Population, rng *rand.Rand) error {
	_, indSize := pop.Shape()
	numBits := indSize * c.BitsPerSym
	if numBits <= 0 {
		return nil
	}

	for i := 0; i+1 < len(pop); i += 2 {
		if rng.Float64() >= c.Prob {
			continue
		}
		if err := CrossAtPoint(pop[i], pop[i+1], c.BitsPerSym, rng.Intn(numBits)); err != nil {
			return fmt.Errorf("pair %d: %w", i/2, err)
		}
	}
	return nil
}

// TwoPointCrossover crosses each pair (2i, 2i+1) with probability Prob between two uniform offsets
type TwoPointCrossover struct {
	Prob       float64
	BitsPerSym int
}

func (c TwoPointCrossover) Name() string {
	return "two-point crossover"
}

func (c TwoPointCrossover) Apply(pop genome.Population, rng *rand.Rand) error {
	_, indSize := pop.Shape()
	numBits := indSize * c.BitsPerSym
	if numBits <= 0 {
		return nil
	}

	var points [2]int
	for i := 0; i+1 < len(pop); i += 2 {
		if rng.Float64() >= c.Prob {
			continue
		}

		points[0], points[1] = rng.Intn(numBits), rng.Intn(numBits)
		if points[0] > points[1] {
			points[0], points[1] = points[1], points[0]
		}
		if err := CrossAtPoints(pop[i], pop[i+1], c.BitsPerSym, points[:]); err != nil {
			return fmt.Errorf("pair %d: %w", i/2, err)
		}
	}
	return nil
}
