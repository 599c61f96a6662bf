package pattern

import "math"

// Seed is the fixed starting point for every generation call, so a pattern
// looks the same in the preview and in an export at any scale.
const Seed = 12345

// PRNG is the sine-based generator used for pattern geometry.
type PRNG struct {
	seed float64
}

func NewPRNG() *PRNG { return &PRNG{seed: Seed} }

// Next returns a value in [0,1).
func (p *PRNG) Next() float64 {
	x := math.Sin(p.seed) * 10000
	p.seed++
	return x - math.Floor(x)
}
