package internal

// Prand32 generates a pseudo random number from a seed.
// A zero seed yields zero forever so callers should seed with a non-zero value.
func Prand32[T ~uint32](seed T) T {
	/* Algorithm "xor" from p. 4 of Marsaglia, "Xorshift RNGs" */
	seed ^= seed << 13
	seed ^= seed >> 17
	seed ^= seed << 5
	return seed
}
