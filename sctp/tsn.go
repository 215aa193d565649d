/*
package sctp implements the receive side sequence tracking of SCTP (RFC 4960).

# TSN map

The [TSNMap] records which Transmission Sequence Numbers (TSNs) have been
received beyond the Cumulative TSN Ack Point and renders the Gap Ack Blocks
and Duplicate TSNs reported in SACK chunks.

# Serial number arithmetic

TSNs are 32 bit serial numbers (RFC 1982). All arithmetic dealing with
TSNs must be performed modulo 2**32: use [LessThan] and friends instead
of the builtin comparison operators.
*/
package sctp

// TSN represents the value of a Transmission Sequence Number.
type TSN uint32

// LessThan checks if v is before w (modulo 32) i.e., v < w.
func LessThan(v, w TSN) bool {
	return int32(v-w) < 0
}

// LessThanEq returns true if v==w or v is before (modulo 32) i.e., v <= w.
func LessThanEq(v, w TSN) bool {
	return v == w || LessThan(v, w)
}

// GreaterThan checks if v is after w (modulo 32) i.e., v > w.
func GreaterThan(v, w TSN) bool {
	return LessThan(w, v)
}

// InWindow checks if v is in the window that starts at 'first' and spans 'size'
// sequence numbers (modulo 32).
func InWindow(v, first TSN, size uint32) bool {
	return uint32(v-first) < size
}

// Add calculates the TSN that follows the [v, v+n) window.
func Add(v TSN, n uint32) TSN {
	return v + TSN(n)
}

// Sizeof calculates the size of the window defined by [v, w).
func Sizeof(v, w TSN) uint32 {
	return uint32(w - v)
}

func maxTSN(v, w TSN) TSN {
	if LessThan(v, w) {
		return w
	}
	return v
}
