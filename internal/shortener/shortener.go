package shortener

import "math/rand/v2"

const (
	alphabet   = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	codeLength = 6
)

// Generator produces random candidate codes. Candidates are drawn uniformly
// with replacement, so uniqueness is the caller's responsibility.
type Generator struct {
	length int
	intN   func(n int) int
}

func New() *Generator {
	return &Generator{
		length: codeLength,
		intN:   rand.IntN,
	}
}

// NewWithSource builds a Generator drawing from intN instead of the shared
// math/rand source. Tests use it to supply a deterministic sequence.
func NewWithSource(intN func(n int) int) *Generator {
	return &Generator{
		length: codeLength,
		intN:   intN,
	}
}

func (g *Generator) Generate() string {
	b := make([]byte, g.length)
	for i := range b {
		b[i] = alphabet[g.intN(len(alphabet))]
	}
	return string(b)
}
