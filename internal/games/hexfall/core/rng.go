package core

// LCG parameters. The 32-bit multiplier 1103515245 is split into 16-bit
// halves so every intermediate product fits comfortably in 32 bits.
const (
	multiplierLo = 20077
	multiplierHi = 16838
	increment    = 12345
)

// Generator produces the seeded pseudo-random stream that selects units.
// State is kept as two 16-bit halves; each step emits bits 16..30 of the
// current state before advancing.
type Generator struct {
	seed uint32
	lo   uint32
	hi   uint32
}

// NewGenerator creates a generator seeded with seed.
func NewGenerator(seed uint32) *Generator {
	return &Generator{
		seed: seed,
		lo:   seed & 0xffff,
		hi:   seed >> 16,
	}
}

// Seed returns the seed the generator was created with.
func (g *Generator) Seed() uint32 {
	return g.seed
}

// Current returns the value emitted for the current state.
func (g *Generator) Current() int {
	return int(g.hi & 0x7fff)
}

// Next advances the state by one step.
func (g *Generator) Next() {
	lo := g.lo*multiplierLo + increment
	hi := g.lo*multiplierHi + g.hi*multiplierLo + lo>>16
	g.lo = lo & 0xffff
	g.hi = hi & 0xffff
}

// Sequence returns the first length unit indices for the given seed.
// Each index is the emitted value reduced modulo unitCount.
func Sequence(unitCount int, seed uint32, length int) []int {
	if unitCount <= 0 || length <= 0 {
		return nil
	}
	g := NewGenerator(seed)
	seq := make([]int, length)
	for i := range seq {
		seq[i] = g.Current() % unitCount
		g.Next()
	}
	return seq
}

// FindSeedIndex returns the position of seed in seeds, or -1 if absent.
func FindSeedIndex(seeds []uint32, seed uint32) int {
	for i, s := range seeds {
		if s == seed {
			return i
		}
	}
	return -1
}
