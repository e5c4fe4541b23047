package ports

import "math/rand/v2"

type Random interface {
	// IntN returns a value in [0, n). n is always positive.
	IntN(n int) int
}

type SystemRandom struct{}

func (SystemRandom) IntN(n int) int {
	return rand.IntN(n)
}
