package sctp

import "math/bits"

// bitmap is a fixed size bit vector backed by 64 bit words.
// Bit i is stored in word i/64 at position i%64.
type bitmap struct {
	w []uint64
}

// len returns the capacity of the bitmap in bits.
func (b *bitmap) len() int { return len(b.w) * wordBits }

func (b *bitmap) test(i int) bool { return b.w[i/wordBits]&(1<<(i%wordBits)) != 0 }

func (b *bitmap) set(i int) { b.w[i/wordBits] |= 1 << (i % wordBits) }

func (b *bitmap) unset(i int) { b.w[i/wordBits] &^= 1 << (i % wordBits) }

func (b *bitmap) zero() { clear(b.w) }

// shiftDown moves bit i+n to position i. The n high bits are zero filled.
func (b *bitmap) shiftDown(n int) {
	if n <= 0 {
		return
	}
	nw := len(b.w)
	ws, bs := n/wordBits, uint(n%wordBits)
	if ws >= nw {
		b.zero()
		return
	}
	for i := 0; i < nw-ws; i++ {
		w := b.w[i+ws] >> bs
		if bs != 0 && i+ws+1 < nw {
			w |= b.w[i+ws+1] << (wordBits - bs)
		}
		b.w[i] = w
	}
	clear(b.w[nw-ws:])
}

// nextSet returns the index of the first set bit in [off, limit) or limit if there is none.
func (b *bitmap) nextSet(off, limit int) int {
	return b.scan(off, limit, 0)
}

// nextZero returns the index of the first unset bit in [off, limit) or limit if there is none.
func (b *bitmap) nextZero(off, limit int) int {
	return b.scan(off, limit, ^uint64(0))
}

func (b *bitmap) scan(off, limit int, invert uint64) int {
	if off >= limit {
		return limit
	}
	wi := off / wordBits
	w := (b.w[wi] ^ invert) &^ (1<<(off%wordBits) - 1)
	for {
		if w != 0 {
			return min(wi*wordBits+bits.TrailingZeros64(w), limit)
		}
		wi++
		if wi*wordBits >= limit {
			return limit
		}
		w = b.w[wi] ^ invert
	}
}

// count returns the amount of set bits in [0, n).
func (b *bitmap) count(n int) (c int) {
	full := n / wordBits
	for _, w := range b.w[:full] {
		c += bits.OnesCount64(w)
	}
	if rem := n % wordBits; rem != 0 {
		c += bits.OnesCount64(b.w[full] & (1<<rem - 1))
	}
	return c
}
