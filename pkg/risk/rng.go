package risk

import "sort"

// RNGState is the serializable snapshot of a generator: the original seed
// string plus the number of values consumed so far. It is embedded in
// GameState and is the only randomness "state" the engine carries.
type RNGState struct {
	Seed  string `json:"seed"`
	Index int    `json:"index"`
}

// RNG is a deterministic pseudo-random source. The seed string is hashed to a
// 32-bit base state (xmur3 finalizer) and each draw applies the mulberry32
// scramble to base + index*mulberryIncrement. Because the internal state
// advances by a constant per draw, resuming from any {seed, index} snapshot
// is O(1) and reproduces the continuation exactly. The hash and step function
// are a compatibility surface: persisted games replay against them.
type RNG struct {
	base  uint32
	seed  string
	index int
}

const mulberryIncrement uint32 = 0x6D2B79F5

// NewRNG creates a generator positioned at the given index.
func NewRNG(seed string, index int) *RNG {
	return &RNG{base: hashSeed(seed), seed: seed, index: index}
}

// ResumeRNG creates a generator from a persisted snapshot.
func ResumeRNG(s RNGState) *RNG {
	return NewRNG(s.Seed, s.Index)
}

// hashSeed derives the 32-bit base state from a seed string (xmur3 mix).
func hashSeed(seed string) uint32 {
	h := uint32(1779033703) ^ uint32(len(seed))
	for i := 0; i < len(seed); i++ {
		h = (h ^ uint32(seed[i])) * 3432918353
		h = h<<13 | h>>19
	}
	h = (h ^ (h >> 16)) * 2246822507
	h = (h ^ (h >> 13)) * 3266489909
	return h ^ (h >> 16)
}

// State returns the current {seed, index} snapshot.
func (r *RNG) State() RNGState {
	return RNGState{Seed: r.seed, Index: r.index}
}

// Next consumes one generator step and returns a float in [0, 1).
func (r *RNG) Next() float64 {
	r.index++
	t := r.base + uint32(r.index)*mulberryIncrement
	t = (t ^ (t >> 15)) * (t | 1)
	t ^= t + (t^(t>>7))*(t|61)
	return float64(t^(t>>14)) / 4294967296.0
}

// NextInt consumes one step and returns an integer in [min, max] inclusive.
func (r *RNG) NextInt(min, max int) int {
	return int(r.Next()*float64(max-min+1)) + min
}

// Shuffle returns a new slice holding a Fisher-Yates permutation of items,
// swapping from the end, one generator step per swap. The input is not
// mutated.
func Shuffle[T any](r *RNG, items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	for i := len(out) - 1; i > 0; i-- {
		j := r.NextInt(0, i)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// RollDice consumes count steps and returns count die values in [1, 6],
// sorted descending.
func (r *RNG) RollDice(count int) []int {
	rolls := make([]int, count)
	for i := range rolls {
		rolls[i] = r.NextInt(1, 6)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(rolls)))
	return rolls
}
