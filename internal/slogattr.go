package internal

import "log/slog"

// SlogTSNRange returns a slog.Attr for an inclusive range of sequence numbers
// packed into a single uint64 (first in the high half) to avoid building a string.
func SlogTSNRange[T ~uint32](key string, first, last T) slog.Attr {
	return slog.Uint64(key, uint64(first)<<32|uint64(last))
}
