// Package pattern builds the seeded, 8-fold symmetric dot mosaic.
//
// Every random choice in the package comes from Hash2, so a seed always
// produces the same pattern on every platform.
package pattern

// Mixing constants for Hash2.
const (
	hashMulA   uint32 = 0x9E3779B1
	hashMulB   uint32 = 0x85EBCA6B
	hashMulMix uint32 = 0xC2B2AE35
)

// Hash2 mixes two integer coordinates and a seed into a 32-bit value using
// wrapping multiplication and xor-shift avalanche rounds. Coordinates are
// truncated to their low 32 bits, so negative values hash consistently.
func Hash2(a, b int, seed uint32) uint32 {
	h := seed ^ uint32(a)*hashMulA ^ uint32(b)*hashMulB
	h ^= h >> 16
	h *= hashMulB
	h ^= h >> 13
	h *= hashMulMix
	h ^= h >> 16
	return h
}

// Hash01 maps Hash2 onto [0, 1).
func Hash01(a, b int, seed uint32) float64 {
	return float64(Hash2(a, b, seed)) / 4294967296.0
}
