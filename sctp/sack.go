package sctp

import (
	"encoding/binary"
	"errors"
	"log/slog"
	"slices"

	"github.com/soypat/lsctp"
	"github.com/soypat/lsctp/internal"
)

// NewSACKFrame returns a new SACKFrame with data set to buf.
// An error is returned if the buffer size is smaller than 16.
// Users should still call [SACKFrame.ValidateSize] before reading
// Gap Ack Blocks or Duplicate TSNs to avoid panics.
func NewSACKFrame(buf []byte) (SACKFrame, error) {
	if len(buf) < sizeSACKHeader {
		return SACKFrame{buf: buf}, lsctp.ErrShortBuffer
	}
	return SACKFrame{buf: buf}, nil
}

// SACKFrame encapsulates the raw data of a Selective Acknowledgement chunk
// and provides methods for manipulating, validating and
// retrieving its fields. See [RFC4960] section 3.3.4.
//
//	 0                   1                   2                   3
//	 0 1 2 3 4 5 6 7 8 9 0 1 2 3 4 5 6 7 8 9 0 1 2 3 4 5 6 7 8 9 0 1
//	+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
//	|   Type = 3    |Chunk  Flags   |      Chunk Length             |
//	+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
//	|                      Cumulative TSN Ack                       |
//	+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
//	|          Advertised Receiver Window Credit (a_rwnd)           |
//	+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
//	| Number of Gap Ack Blocks = N  |  Number of Duplicate TSNs = X |
//	+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
//	|  Gap Ack Block #1 Start       |   Gap Ack Block #1 End        |
//	/                              ...                              /
//	|                       Duplicate TSN 1                         |
//	/                              ...                              /
//
// [RFC4960]: https://tools.ietf.org/html/rfc4960
type SACKFrame struct {
	buf []byte
}

// RawData returns the underlying slice with which the frame was created.
func (sf SACKFrame) RawData() []byte { return sf.buf }

// Type returns the chunk type. Is [lsctp.ChunkSACK] for valid SACK chunks.
func (sf SACKFrame) Type() lsctp.ChunkType { return lsctp.ChunkType(sf.buf[0]) }

// SetType sets the chunk type field. See [SACKFrame.Type].
func (sf SACKFrame) SetType(ct lsctp.ChunkType) { sf.buf[0] = uint8(ct) }

// Flags returns the chunk flags. SACK chunks define no flags.
func (sf SACKFrame) Flags() uint8 { return sf.buf[1] }

// SetFlags sets the chunk flags field.
func (sf SACKFrame) SetFlags(flags uint8) { sf.buf[1] = flags }

// Length is the size in bytes of the chunk including the header fields.
func (sf SACKFrame) Length() uint16 { return binary.BigEndian.Uint16(sf.buf[2:4]) }

// SetLength sets the chunk length field. See [SACKFrame.Length].
func (sf SACKFrame) SetLength(length uint16) { binary.BigEndian.PutUint16(sf.buf[2:4], length) }

// CumulativeTSNAck is the last TSN received in sequence before a break in the sequence.
func (sf SACKFrame) CumulativeTSNAck() TSN { return TSN(binary.BigEndian.Uint32(sf.buf[4:8])) }

// SetCumulativeTSNAck sets the Cumulative TSN Ack field. See [SACKFrame.CumulativeTSNAck].
func (sf SACKFrame) SetCumulativeTSNAck(tsn TSN) {
	binary.BigEndian.PutUint32(sf.buf[4:8], uint32(tsn))
}

// ARWND is the updated receive buffer space in bytes of the sender of the SACK.
func (sf SACKFrame) ARWND() uint32 { return binary.BigEndian.Uint32(sf.buf[8:12]) }

// SetARWND sets the Advertised Receiver Window Credit field.
func (sf SACKFrame) SetARWND(arwnd uint32) { binary.BigEndian.PutUint32(sf.buf[8:12], arwnd) }

// NumGapAckBlocks is the amount of Gap Ack Blocks included in the chunk.
func (sf SACKFrame) NumGapAckBlocks() uint16 { return binary.BigEndian.Uint16(sf.buf[12:14]) }

// SetNumGapAckBlocks sets the Number of Gap Ack Blocks field.
func (sf SACKFrame) SetNumGapAckBlocks(n uint16) { binary.BigEndian.PutUint16(sf.buf[12:14], n) }

// NumDupTSNs is the amount of Duplicate TSNs included in the chunk.
func (sf SACKFrame) NumDupTSNs() uint16 { return binary.BigEndian.Uint16(sf.buf[14:16]) }

// SetNumDupTSNs sets the Number of Duplicate TSNs field.
func (sf SACKFrame) SetNumDupTSNs(n uint16) { binary.BigEndian.PutUint16(sf.buf[14:16], n) }

// GapAckBlock returns the i'th Gap Ack Block. Be sure to call [SACKFrame.ValidateSize] beforehand to avoid panic.
func (sf SACKFrame) GapAckBlock(i int) GapAckBlock {
	off := sizeSACKHeader + i*sizeGapAckBlock
	return GapAckBlock{
		Start: binary.BigEndian.Uint16(sf.buf[off:]),
		End:   binary.BigEndian.Uint16(sf.buf[off+2:]),
	}
}

// SetGapAckBlock sets the i'th Gap Ack Block.
func (sf SACKFrame) SetGapAckBlock(i int, blk GapAckBlock) {
	off := sizeSACKHeader + i*sizeGapAckBlock
	binary.BigEndian.PutUint16(sf.buf[off:], blk.Start)
	binary.BigEndian.PutUint16(sf.buf[off+2:], blk.End)
}

// DupTSN returns the i'th Duplicate TSN. Duplicate TSNs follow the Gap Ack Blocks
// so [SACKFrame.NumGapAckBlocks] must be set before calling DupTSN.
func (sf SACKFrame) DupTSN(i int) TSN {
	off := sf.dupOffset() + i*sizeDupTSN
	return TSN(binary.BigEndian.Uint32(sf.buf[off:]))
}

// SetDupTSN sets the i'th Duplicate TSN. See [SACKFrame.DupTSN].
func (sf SACKFrame) SetDupTSN(i int, tsn TSN) {
	off := sf.dupOffset() + i*sizeDupTSN
	binary.BigEndian.PutUint32(sf.buf[off:], uint32(tsn))
}

func (sf SACKFrame) dupOffset() int {
	return sizeSACKHeader + int(sf.NumGapAckBlocks())*sizeGapAckBlock
}

// ClearHeader zeros out the fixed header contents.
func (sf SACKFrame) ClearHeader() {
	clear(sf.buf[:sizeSACKHeader])
}

//
// Validation API.
//

var errNotSACK = errors.New("sctp: chunk type not SACK")

// ValidateSize checks the frame's size fields and compares with the actual buffer
// of the frame. It adds an error to v on finding an inconsistency.
func (sf SACKFrame) ValidateSize(v *lsctp.Validator) {
	if sf.Type() != lsctp.ChunkSACK {
		v.AddBitPosErr(0, 8, errNotSACK)
	}
	length := int(sf.Length())
	want := sizeSACKHeader + int(sf.NumGapAckBlocks())*sizeGapAckBlock + int(sf.NumDupTSNs())*sizeDupTSN
	if length != want {
		v.AddBitPosErr(16, 16, lsctp.ErrInvalidLength)
	}
	if length > len(sf.buf) {
		v.AddError(lsctp.ErrShortBuffer)
	}
}

// AppendSACK appends a SACK chunk reporting the state of the map to dst and
// drains the duplicate TSN list. arwnd is the receive window advertised to the peer.
// If maxSize is positive the chunk is kept within maxSize bytes by leaving out
// Duplicate TSNs first and then the last Gap Ack Blocks. Duplicate TSNs left out
// are still drained and are not carried over to the next SACK.
// [lsctp.ErrShortBuffer] is returned if maxSize can not fit the fixed SACK fields.
func (m *TSNMap) AppendSACK(dst []byte, arwnd uint32, maxSize int) ([]byte, error) {
	if maxSize > 0 && maxSize < sizeSACKHeader {
		m.logerr("tsnmap:sack-short", slog.Int("maxsize", maxSize))
		return dst, lsctp.ErrShortBuffer
	}
	var storage [MaxGapAckBlocks]GapAckBlock
	gabs := m.AppendGapAckBlocks(storage[:0])
	dups := m.DupTSNs()
	if maxSize > 0 {
		avail := (maxSize - sizeSACKHeader) / sizeGapAckBlock // sizeGapAckBlock == sizeDupTSN.
		if len(gabs) >= avail {
			gabs = gabs[:avail]
			dups = nil
		} else if len(gabs)+len(dups) > avail {
			dups = dups[:avail-len(gabs)]
		}
	}
	size := sizeSACKHeader + len(gabs)*sizeGapAckBlock + len(dups)*sizeDupTSN
	off := len(dst)
	dst = slices.Grow(dst, size)[:off+size]
	sf := SACKFrame{buf: dst[off:]}
	sf.SetType(lsctp.ChunkSACK)
	sf.SetFlags(0)
	sf.SetLength(uint16(size))
	sf.SetCumulativeTSNAck(m.cumAck)
	sf.SetARWND(arwnd)
	sf.SetNumGapAckBlocks(uint16(len(gabs)))
	sf.SetNumDupTSNs(uint16(len(dups)))
	for i, blk := range gabs {
		sf.SetGapAckBlock(i, blk)
	}
	for i, tsn := range dups {
		sf.SetDupTSN(i, tsn)
	}
	if m.logenabled(internal.LevelTrace) {
		m.trace("tsnmap:sack",
			internal.SlogTSNRange("span", m.cumAck, m.maxSeen),
			slog.Int("gabs", len(gabs)),
			slog.Int("dups", len(dups)),
			slog.Uint64("arwnd", uint64(arwnd)),
		)
	}
	m.ResetDupTSNs()
	return dst, nil
}
