package genome

import (
	"fmt"
	"math/rand"
	"strings"
)

// MaxBitsPerWord is the widest code a single genome word can carry
const MaxBitsPerWord = 8

// Genome is a fixed-length sequence of codes, one byte per code.
// Operators mutate a Genome in place and never resize it.
type Genome []byte

// New creates a zeroed Genome of size words
func New(size int) Genome {
	return make(Genome, size)
}

// Random creates a Genome whose words are drawn uniformly from [0, 2^bitsUsed)
func Random(size int, bitsUsed int, rng *rand.Rand) Genome {
	g := New(size)
	g.Randomize(bitsUsed, rng)
	return g
}

// Randomize overwrites every word with a uniform draw from [0, 2^bitsUsed)
func (g Genome) Randomize(bitsUsed int, rng *rand.Rand) {
	codeRange := 1 << bitsUsed
	for i := range g {
		g[i] = byte(rng.Intn(codeRange))
	}
}

func (g Genome) Copy() Genome {
	copied := make(Genome, len(g))
	copy(copied, g)
	return copied
}

// CopyFrom overwrites g with the words of other. Both must share a length.
func (g Genome) CopyFrom(other Genome) {
	copy(g, other)
}

func (g Genome) Equal(other Genome) bool {
	if len(g) != len(other) {
		return false
	}
	for i := range g {
		if g[i] != other[i] {
			return false
		}
	}
	return true
}

// CountOnes returns the number of set bits among the low bitsUsed bits of every word
func (g Genome) CountOnes(bitsUsed int) int {
	n := 0
	for _, word := range g {
		for j := 0; j < bitsUsed; j++ {
			if word&(1<<j) != 0 {
				n++
			}
		}
	}
	return n
}

// Format renders each word as a bitsUsed-wide binary group, separated by spaces
func (g Genome) Format(bitsUsed int) string {
	var buf strings.Builder
	buf.Grow(len(g)*bitsUsed + len(g) - 1)

	lastIndex := len(g) - 1
	wordFmt := fmt.Sprintf("%%0%db", bitsUsed)
	for i, word := range g {
		buf.WriteString(fmt.Sprintf(wordFmt, word))
		if i < lastIndex {
			buf.WriteByte(' ')
		}
	}
	return buf.String()
}

func (g Genome) String() string {
	return g.Format(MaxBitsPerWord)
}

// Parse reads a gene string of '0'/'1' characters, most significant bit first,
// bitsUsed characters per word. Spaces are ignored.
func Parse(geneString string, bitsUsed int) (Genome, error) {
	if bitsUsed <= 0 || bitsUsed > MaxBitsPerWord {
		return nil, fmt.Errorf("bits per word %d must be in [1, %d]", bitsUsed, MaxBitsPerWord)
	}

	geneString = strings.ReplaceAll(geneString, " ", "")
	if len(geneString)%bitsUsed != 0 {
		return nil, fmt.Errorf("gene string length %d is not a multiple of %d", len(geneString), bitsUsed)
	}

	g := New(len(geneString) / bitsUsed)
	for i := range g {
		word := byte(0)
		for k, c := range geneString[i*bitsUsed : (i+1)*bitsUsed] {
			switch c {
			case '1':
				word |= 1 << (bitsUsed - k - 1)
			case '0':
			default:
				return nil, fmt.Errorf("unrecognized gene string character %c, expected '1' or '0'", c)
			}
		}
		g[i] = word
	}
	return g, nil
}
