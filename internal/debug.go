package internal

import (
	"log/slog"
	"runtime"
	"strconv"
	"sync"
	"unsafe"
)

const (
	// LevelTrace is below debug and is used for per-TSN bookkeeping messages.
	LevelTrace slog.Level = slog.LevelDebug - 2
)

var (
	memstats    runtime.MemStats
	lastAllocs  uint64
	lastMallocs uint64
	allocmu     sync.Mutex
	allocbuf    [256]byte
)

// LogAllocs prints msg along with heap growth since the previous call.
// Nothing is printed if no allocations happened in between.
func LogAllocs(msg string) {
	allocmu.Lock()
	defer allocmu.Unlock()
	runtime.ReadMemStats(&memstats)
	if memstats.TotalAlloc == lastAllocs {
		return
	}
	b := append(allocbuf[:0], "[ALLOC] "...)
	b = append(b, msg...)
	b = appendKV(b, "inc", int64(memstats.TotalAlloc)-int64(lastAllocs))
	b = appendKV(b, "n", int64(memstats.Mallocs)-int64(lastMallocs))
	b = appendKV(b, "heap", int64(memstats.HeapAlloc))
	b = appendKV(b, "tot", int64(memstats.TotalAlloc))
	println(unsafe.String(&b[0], len(b)))
	lastAllocs = memstats.TotalAlloc
	lastMallocs = memstats.Mallocs
}

func appendKV(b []byte, key string, v int64) []byte {
	b = append(b, ' ')
	b = append(b, key...)
	b = append(b, '=')
	return strconv.AppendInt(b, v, 10)
}
