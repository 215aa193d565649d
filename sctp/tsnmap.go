package sctp

import (
	"log/slog"
	"strconv"

	"github.com/soypat/lsctp"
	"github.com/soypat/lsctp/internal"
)

// TSNMap tracks received TSNs of a single association past its
// Cumulative TSN Ack Point as described in RFC 4960 section 6.2.
//
//	 cumAck  base                        maxSeen
//	----|-----|--------------------------|----------
//	    |  0  | 1  1  0  0  1  1  1  0  1|
//	 1. TSNs at or before cumAck are implicitly received.
//	 2. Bit i set means TSN base+i was received out of order (a gap precedes it).
//	 3. TSNs after maxSeen have not been received.
//
// Whenever the bits at the front of the map are set the map slides forward so
// that bit 0 always represents cumAck+1.
//
// A TSNMap is not safe for concurrent use. The caller serializes access,
// typically by owning one map per association.
type TSNMap struct {
	bits bitmap
	// base is the TSN represented by bit 0. Always equal to cumAck+1.
	base TSN
	// cumAck is the Cumulative TSN Ack Point. All TSNs at or before it have been received.
	cumAck TSN
	// maxSeen is the highest TSN marked or skipped.
	maxSeen TSN
	// maxLen is the capacity ceiling in bits.
	maxLen  uint16
	numDups uint16
	dups    [MaxDupTSNs]TSN
	logger
}

// TSNMapConfig configures a [TSNMap] on a call to [TSNMap.Reset].
type TSNMapConfig struct {
	// InitialTSN is the first TSN expected from the peer, taken from the INIT or INIT ACK chunk.
	InitialTSN TSN
	// Len is the initial capacity in bits. It is rounded up to a multiple of 64.
	// Zero defaults to [TSNMapInitial].
	Len uint16
	// MaxLen is the capacity ceiling in bits the map may grow to. It is rounded
	// down to a multiple of 64. Zero defaults to [TSNMapSize].
	// Marking a TSN that requires growth past MaxLen fails with [ErrNoMemory].
	MaxLen uint16
	// Logger is optional.
	Logger *slog.Logger
}

// NewTSNMap returns a TSNMap expecting initialTSN next with capacity for lenHint TSNs.
func NewTSNMap(initialTSN TSN, lenHint uint16) (*TSNMap, error) {
	m := new(TSNMap)
	err := m.Reset(TSNMapConfig{InitialTSN: initialTSN, Len: lenHint})
	if err != nil {
		return nil, err
	}
	return m, nil
}

// Reset initializes or reinitializes the map. The existing bitmap memory is
// zeroed and reused when its capacity is enough for cfg.Len.
func (m *TSNMap) Reset(cfg TSNMapConfig) error {
	maxLen := uint32(cfg.MaxLen) &^ (wordBits - 1)
	if cfg.MaxLen == 0 {
		maxLen = TSNMapSize
	} else if maxLen == 0 || maxLen > TSNMapSize {
		return lsctp.ErrInvalidConfig
	}
	n := uint32(cfg.Len)
	if n == 0 {
		n = TSNMapInitial
	}
	n = min(alignWord(n), maxLen)
	bits := m.bits
	internal.SliceReuse(&bits.w, int(n/wordBits))
	*m = TSNMap{
		bits:    bits,
		base:    cfg.InitialTSN,
		cumAck:  cfg.InitialTSN - 1,
		maxSeen: cfg.InitialTSN - 1,
		maxLen:  uint16(maxLen),
		logger:  logger{log: cfg.Logger},
	}
	m.traceState("tsnmap:reset")
	return nil
}

// CumulativeTSNAck returns the Cumulative TSN Ack Point: the last TSN of
// the unbroken run of received TSNs. It is the value reported in SACK chunks.
func (m *TSNMap) CumulativeTSNAck() TSN { return m.cumAck }

// BaseTSN returns the TSN represented by the first bit of the map.
func (m *TSNMap) BaseTSN() TSN { return m.base }

// MaxTSNSeen returns the highest TSN marked or skipped so far.
func (m *TSNMap) MaxTSNSeen() TSN { return m.maxSeen }

// Len returns the current capacity of the map in TSNs.
func (m *TSNMap) Len() int { return m.bits.len() }

// HasGap returns true if TSNs after the Cumulative TSN Ack Point have been received.
func (m *TSNMap) HasGap() bool { return m.cumAck != m.maxSeen }

// Check classifies tsn without modifying the map. TSNs at or before the
// Cumulative TSN Ack Point or marked in the map are [LookupSeen]. TSNs too far
// ahead of the Cumulative TSN Ack Point to ever be tracked are [LookupOutOfRange].
func (m *TSNMap) Check(tsn TSN) Lookup {
	if LessThanEq(tsn, m.cumAck) {
		return LookupSeen
	}
	gap := Sizeof(m.base, tsn)
	if gap >= TSNMapSize {
		return LookupOutOfRange
	}
	if int(gap) < m.bits.len() && m.bits.test(int(gap)) {
		return LookupSeen
	}
	return LookupNew
}

// Mark records the reception of tsn. Marking a TSN already received is a no-op.
// It returns [ErrOutOfRange] if tsn is beyond the window the map can represent
// and [ErrNoMemory] if growing the map would exceed the configured capacity.
// The map is not modified when an error is returned.
func (m *TSNMap) Mark(tsn TSN) error {
	if LessThan(tsn, m.base) {
		return nil
	}
	gap := Sizeof(m.base, tsn)
	if gap >= uint32(m.bits.len()) {
		err := m.grow(gap + 1)
		if err != nil {
			m.debug("tsnmap:mark-fail", slog.Uint64("tsn", uint64(tsn)), slog.String("err", err.Error()))
			return err
		}
	}
	if !m.HasGap() && gap == 0 {
		// In order reception, bitmap stays empty.
		m.maxSeen++
		m.cumAck++
		m.base++
		return nil
	}
	m.maxSeen = maxTSN(m.maxSeen, tsn)
	m.bits.set(int(gap))
	m.collapse()
	return nil
}

// Skip advances the Cumulative TSN Ack Point to tsn as instructed by a
// FORWARD TSN chunk, discarding gap information at or before tsn.
// Skip does nothing if tsn is before the first unreceived TSN or out of range.
func (m *TSNMap) Skip(tsn TSN) {
	if LessThan(tsn, m.base) || !LessThan(tsn, Add(m.base, TSNMapSize)) {
		return
	}
	m.maxSeen = maxTSN(m.maxSeen, tsn)
	adv := Sizeof(m.base, tsn) + 1
	m.base += TSN(adv)
	m.cumAck += TSN(adv)
	if adv >= uint32(m.bits.len()) {
		m.bits.zero()
	} else {
		m.bits.shiftDown(int(adv))
		m.collapse()
	}
	m.traceState("tsnmap:skip")
}

// Renege withdraws reception of tsn, which must then be retransmitted by the peer.
// TSNs at or before the Cumulative TSN Ack Point can not be reneged so
// Renege does nothing for them.
func (m *TSNMap) Renege(tsn TSN) {
	if LessThan(tsn, m.base) || !InWindow(tsn, m.base, uint32(m.bits.len())) {
		return
	}
	m.bits.unset(int(Sizeof(m.base, tsn)))
	m.debug("tsnmap:renege", slog.Uint64("tsn", uint64(tsn)))
}

// PendingData returns the amount of TSNs after the Cumulative TSN Ack Point and up
// to the highest TSN seen that have not been received.
func (m *TSNMap) PendingData() uint16 {
	pending := Sizeof(m.cumAck, m.maxSeen)
	gap := Sizeof(m.base, m.maxSeen)
	if gap == 0 || gap >= uint32(m.bits.len()) {
		return uint16(pending)
	}
	return uint16(pending - uint32(m.bits.count(int(gap)+1)))
}

// collapse folds the run of received TSNs at the front of the map into the Cumulative TSN Ack Point.
func (m *TSNMap) collapse() {
	live := min(int(Sizeof(m.cumAck, m.maxSeen)), m.bits.len())
	zero := m.bits.nextZero(0, live)
	if zero == 0 {
		return
	}
	m.base += TSN(zero)
	m.cumAck += TSN(zero)
	m.bits.shiftDown(zero)
	m.traceState("tsnmap:collapse")
}

// grow reallocates the map so it holds at least minLen bits. The map is left
// untouched if an error is returned.
func (m *TSNMap) grow(minLen uint32) error {
	if minLen > TSNMapSize {
		return ErrOutOfRange
	} else if minLen > uint32(m.maxLen) {
		return ErrNoMemory
	}
	cur := uint32(m.bits.len())
	newLen := min(cur+alignWord(minLen-cur)+TSNMapIncrement, uint32(m.maxLen))
	words := make([]uint64, newLen/wordBits)
	live := alignWord(Sizeof(m.cumAck, m.maxSeen)) / wordBits
	copy(words, m.bits.w[:min(int(live), len(m.bits.w))])
	m.bits.w = words
	m.debug("tsnmap:grow", slog.Uint64("from", uint64(cur)), slog.Uint64("to", uint64(newLen)))
	return nil
}

// Receive classifies tsn and marks it if it is new. A TSN already received is
// recorded as duplicate to be reported in the next SACK. [ErrOutOfRange] is
// returned for TSNs the map can not track, in which case the chunk should be dropped.
func (m *TSNMap) Receive(tsn TSN) (Lookup, error) {
	lookup := m.CheckAndRecord(tsn)
	switch lookup {
	case LookupSeen:
		return lookup, nil
	case LookupOutOfRange:
		return lookup, ErrOutOfRange
	}
	return lookup, m.Mark(tsn)
}

// String returns a compact representation of the map state i.e:
//
//	cum=100 max=105 gabs=2-3,5-5
func (m *TSNMap) String() string {
	b := make([]byte, 0, 64)
	b = append(b, "cum="...)
	b = strconv.AppendUint(b, uint64(m.cumAck), 10)
	b = append(b, " max="...)
	b = strconv.AppendUint(b, uint64(m.maxSeen), 10)
	if m.HasGap() {
		it := m.GapIter()
		for i := 0; ; i++ {
			blk, ok := it.Next(m)
			if !ok {
				break
			}
			if i == 0 {
				b = append(b, " gabs="...)
			} else {
				b = append(b, ',')
			}
			b = blk.AppendFormat(b)
		}
	}
	return string(b)
}

func alignWord(n uint32) uint32 {
	return (n + wordBits - 1) &^ (wordBits - 1)
}
