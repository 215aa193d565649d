package sctp

import "strconv"

// GapAckBlock is a range of received TSNs that follow an unreceived TSN.
// Start and End are inclusive offsets from the Cumulative TSN Ack Point as
// carried on the wire (RFC 4960 section 3.3.4): the block covers
// TSNs CumulativeTSNAck+Start through CumulativeTSNAck+End.
type GapAckBlock struct {
	Start uint16
	End   uint16
}

// Len returns the amount of TSNs covered by the block.
func (blk GapAckBlock) Len() int { return int(blk.End) - int(blk.Start) + 1 }

// AppendFormat appends the "start-end" representation of the block to b.
func (blk GapAckBlock) AppendFormat(b []byte) []byte {
	b = strconv.AppendUint(b, uint64(blk.Start), 10)
	b = append(b, '-')
	return strconv.AppendUint(b, uint64(blk.End), 10)
}

func (blk GapAckBlock) String() string {
	return string(blk.AppendFormat(make([]byte, 0, 11)))
}

// GapIter walks the Gap Ack Blocks of a [TSNMap] in increasing order.
// It remembers its position between calls to Next so a caller filling
// several SACK chunks does not rescan the map from the start.
// A GapIter is invalidated by any modification of the map.
type GapIter struct {
	start TSN
}

// GapIter returns an iterator positioned at the first TSN after the Cumulative TSN Ack Point.
func (m *TSNMap) GapIter() GapIter {
	return GapIter{start: m.cumAck + 1}
}

// Next returns the next Gap Ack Block of m. ok is false when no blocks remain.
func (it *GapIter) Next(m *TSNMap) (blk GapAckBlock, ok bool) {
	if LessThanEq(m.maxSeen, it.start) {
		return blk, false
	}
	n := m.bits.len()
	first := m.bits.nextSet(int(Sizeof(m.base, it.start)), n)
	if first >= n {
		return blk, false
	}
	last := m.bits.nextZero(first, n) - 1
	blk = GapAckBlock{Start: uint16(first + 1), End: uint16(last + 1)}
	it.start = Add(m.cumAck, uint32(blk.End)+1)
	return blk, true
}

// NumGapAckBlocks returns the amount of Gap Ack Blocks that would be
// reported in a SACK, which is at most [MaxGapAckBlocks].
func (m *TSNMap) NumGapAckBlocks() (n int) {
	if !m.HasGap() {
		return 0
	}
	it := m.GapIter()
	for n < MaxGapAckBlocks {
		if _, ok := it.Next(m); !ok {
			break
		}
		n++
	}
	return n
}

// AppendGapAckBlocks appends up to [MaxGapAckBlocks] Gap Ack Blocks to dst in increasing order.
func (m *TSNMap) AppendGapAckBlocks(dst []GapAckBlock) []GapAckBlock {
	if !m.HasGap() {
		return dst
	}
	it := m.GapIter()
	for i := 0; i < MaxGapAckBlocks; i++ {
		blk, ok := it.Next(m)
		if !ok {
			break
		}
		dst = append(dst, blk)
	}
	return dst
}
