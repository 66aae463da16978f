package synth

// Rand yields uniform samples in [0, 1).
type Rand interface {
	Float64() float64
}

// RandFactory builds a generator for a seed. Each simulated phase gets its own.
type RandFactory func(seed uint32) Rand

// DefaultSeed reproduces the published monthly series.
const DefaultSeed uint32 = 42

// LCG is a 32-bit linear congruential generator (Numerical Recipes constants).
type LCG struct {
	state uint32
}

// NewLCG returns a generator seeded with seed.
func NewLCG(seed uint32) *LCG {
	return &LCG{state: seed}
}

// Float64 advances the generator.
func (g *LCG) Float64() float64 {
	g.state = g.state*1664525 + 1013904223
	return float64(g.state) / (1 << 32)
}

func newLCGRand(seed uint32) Rand { return NewLCG(seed) }

// symmetric maps a [0,1) sample onto [-amp, amp).
func symmetric(r Rand, amp float64) float64 {
	return (r.Float64()*2 - 1) * amp
}
