package sctp

import (
	"testing"

	"github.com/soypat/lsctp/internal"
)

func TestBitmapShiftDown(t *testing.T) {
	const nbits = 4 * wordBits
	seed := uint32(0xdead)
	for _, shift := range []int{0, 1, 5, 63, 64, 65, 127, 128, 200, nbits - 1, nbits, nbits + 7} {
		var b bitmap
		b.w = make([]uint64, nbits/wordBits)
		ref := make([]bool, nbits)
		for i := range ref {
			seed = internal.Prand32(seed)
			if seed&1 != 0 {
				b.set(i)
				ref[i] = true
			}
		}
		b.shiftDown(shift)
		for i := range ref {
			want := i+shift < nbits && ref[i+shift]
			if got := b.test(i); got != want {
				t.Fatalf("shift=%d bit %d: want %v, got %v", shift, i, want, got)
			}
		}
	}
}

func TestBitmapScan(t *testing.T) {
	var b bitmap
	b.w = make([]uint64, 3)
	for _, i := range []int{3, 4, 5, 64, 65, 129} {
		b.set(i)
	}
	n := b.len()
	tests := []struct {
		off, limit int
		wantSet    int
		wantZero   int
	}{
		{off: 0, limit: n, wantSet: 3, wantZero: 0},
		{off: 3, limit: n, wantSet: 3, wantZero: 6},
		{off: 6, limit: n, wantSet: 64, wantZero: 6},
		{off: 64, limit: n, wantSet: 64, wantZero: 66},
		{off: 66, limit: n, wantSet: 129, wantZero: 66},
		{off: 130, limit: n, wantSet: n, wantZero: 130},
		{off: 6, limit: 60, wantSet: 60, wantZero: 6},
		{off: 64, limit: 66, wantSet: 64, wantZero: 66},
		{off: 10, limit: 10, wantSet: 10, wantZero: 10},
	}
	for _, tc := range tests {
		if got := b.nextSet(tc.off, tc.limit); got != tc.wantSet {
			t.Errorf("nextSet(%d,%d): want %d, got %d", tc.off, tc.limit, tc.wantSet, got)
		}
		if got := b.nextZero(tc.off, tc.limit); got != tc.wantZero {
			t.Errorf("nextZero(%d,%d): want %d, got %d", tc.off, tc.limit, tc.wantZero, got)
		}
	}
	// All ones: no zero until limit.
	for i := range b.w {
		b.w[i] = ^uint64(0)
	}
	if got := b.nextZero(5, n); got != n {
		t.Errorf("full bitmap nextZero: want %d, got %d", n, got)
	}
}

func TestBitmapCount(t *testing.T) {
	var b bitmap
	b.w = make([]uint64, 2)
	for _, i := range []int{0, 1, 63, 64, 100} {
		b.set(i)
	}
	for _, tc := range []struct{ n, want int }{
		{0, 0}, {1, 1}, {2, 2}, {63, 2}, {64, 3}, {65, 4}, {100, 4}, {101, 5}, {128, 5},
	} {
		if got := b.count(tc.n); got != tc.want {
			t.Errorf("count(%d): want %d, got %d", tc.n, tc.want, got)
		}
	}
	b.unset(63)
	if got := b.count(128); got != 4 {
		t.Errorf("count after unset: want 4, got %d", got)
	}
}
