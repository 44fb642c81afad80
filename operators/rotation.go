package operators

import (
	"math/rand"

	"github.com/they4kman/rgep/genome"
)

func normalizeRotation(n, r int) int {
	r %= n
	if r < 0 {
		r += n
	}
	return r
}

// RotateCopy shifts g left by r words, wrapping around to the right, through scratch.
// It returns scratch, grown if needed, for reuse by the next call.
func RotateCopy(g genome.Genome, scratch []byte, r int) []byte {
	if len(g) == 0 {
		return scratch
	}
	r = normalizeRotation(len(g), r)
	if r == 0 {
		return scratch
	}

	scratch = append(scratch[:0], g[r:]...)
	scratch = append(scratch, g[:r]...)
	copy(g, scratch)
	return scratch
}

// RotateInPlace shifts g left by r words without extra storage by following each of
// the gcd(len(g), r) permutation cycles.
func RotateInPlace(g genome.Genome, r int) {
	n := len(g)
	if n == 0 {
		return
	}
	r = normalizeRotation(n, r)
	if r == 0 {
		return
	}

	for start, cycles := 0, gcd(n, r); start < cycles; start++ {
		saved := g[start]
		i := start
		for {
			j := i + r
			if j >= n {
				j -= n
			}
			if j == start {
				break
			}
			g[i] = g[j]
			i = j
		}
		g[i] = saved
	}
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// Rotation rotates each genome with probability Prob by a uniform number of words
type Rotation struct {
	Prob float64

	scratch []byte
}

func (rot *Rotation) Name() string {
	return "rotation"
}

func (rot *Rotation) Apply(pop genome.Population, rng *rand.Rand) error {
	for _, g := range pop {
		if len(g) == 0 || rng.Float64() >= rot.Prob {
			continue
		}
		rot.scratch = RotateCopy(g, rot.scratch, rng.Intn(len(g)))
	}
	return nil
}
