package internal

// SliceReuse prepares a slice for reuse with length n and all elements zeroed.
// A new slice is allocated only if the capacity of buf is smaller than n.
//
// This function provides specified behavior unlike [slices.Grow] which
// has unspecified capacity growth behavior that differs between Go and TinyGo.
func SliceReuse[T any](buf *[]T, n int) {
	if cap(*buf) < n {
		*buf = make([]T, n)
		return
	}
	*buf = (*buf)[:n]
	clear(*buf)
}
