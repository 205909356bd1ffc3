package sim

import "math"

// SeededRNG is a small deterministic generator used for level layout.
// Equal seeds yield bit-identical sequences on every platform.
type SeededRNG struct {
	state uint32
}

// NewSeededRNG creates a generator from a 32-bit seed.
func NewSeededRNG(seed uint32) *SeededRNG {
	return &SeededRNG{state: seed}
}

// SeedFromInt64 folds a 64-bit seed into the generator's 32-bit state space.
func SeedFromInt64(seed int64) uint32 {
	u := uint64(seed)
	return uint32(u) ^ uint32(u>>32)
}

// Next advances the generator and returns a value in [0, 1).
func (r *SeededRNG) Next() float64 {
	r.state = r.state*1664525 + 1013904223
	return float64(mix(r.state)) / 4294967296
}

// mix is the output scrambler shared by Next and StaticNoise.
func mix(t uint32) uint32 {
	t = (t ^ t>>15) * (t | 1)
	t ^= t + (t^t>>7)*(t|61)
	return t ^ t>>14
}

// StaticNoise returns a stable black (0) or white (255) value for a point.
// It is a pure function of the floored coordinates.
func StaticNoise(x, y float64) uint8 {
	seed := uint32(int64(math.Floor(x)))*1357 + uint32(int64(math.Floor(y)))*2468
	if mix(seed+1831565813)%2 == 0 {
		return 0
	}
	return 255
}
