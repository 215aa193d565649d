package lsctp

import "strconv"

// ChunkType identifies the type of information contained in the Chunk Value
// field of an SCTP chunk. See RFC 4960 section 3.2.
type ChunkType uint8

const (
	ChunkDATA             ChunkType = 0   // DATA
	ChunkINIT             ChunkType = 1   // INIT
	ChunkINITACK          ChunkType = 2   // INIT ACK
	ChunkSACK             ChunkType = 3   // SACK
	ChunkHEARTBEAT        ChunkType = 4   // HEARTBEAT
	ChunkHEARTBEATACK     ChunkType = 5   // HEARTBEAT ACK
	ChunkABORT            ChunkType = 6   // ABORT
	ChunkSHUTDOWN         ChunkType = 7   // SHUTDOWN
	ChunkSHUTDOWNACK      ChunkType = 8   // SHUTDOWN ACK
	ChunkERROR            ChunkType = 9   // ERROR
	ChunkCOOKIEECHO       ChunkType = 10  // COOKIE ECHO
	ChunkCOOKIEACK        ChunkType = 11  // COOKIE ACK
	ChunkSHUTDOWNCOMPLETE ChunkType = 14  // SHUTDOWN COMPLETE
	ChunkFORWARDTSN       ChunkType = 192 // FORWARD TSN
)

// SizeChunkHeader is the size of the type, flags and length fields common to all chunks.
const SizeChunkHeader = 4

func (ct ChunkType) String() string {
	switch ct {
	case ChunkDATA:
		return "DATA"
	case ChunkINIT:
		return "INIT"
	case ChunkINITACK:
		return "INIT ACK"
	case ChunkSACK:
		return "SACK"
	case ChunkHEARTBEAT:
		return "HEARTBEAT"
	case ChunkHEARTBEATACK:
		return "HEARTBEAT ACK"
	case ChunkABORT:
		return "ABORT"
	case ChunkSHUTDOWN:
		return "SHUTDOWN"
	case ChunkSHUTDOWNACK:
		return "SHUTDOWN ACK"
	case ChunkERROR:
		return "ERROR"
	case ChunkCOOKIEECHO:
		return "COOKIE ECHO"
	case ChunkCOOKIEACK:
		return "COOKIE ACK"
	case ChunkSHUTDOWNCOMPLETE:
		return "SHUTDOWN COMPLETE"
	case ChunkFORWARDTSN:
		return "FORWARD TSN"
	}
	return "ChunkType(" + strconv.Itoa(int(ct)) + ")"
}

// UnrecognizedAction returns the action a receiver takes on an unrecognized chunk type,
// encoded in the two highest bits of the type. See RFC 4960 section 3.2.
//
//	00 - stop processing and discard the packet
//	01 - stop processing, discard the packet and report in ERROR
//	10 - skip the chunk and continue processing
//	11 - skip the chunk, continue processing and report in ERROR
func (ct ChunkType) UnrecognizedAction() uint8 { return uint8(ct) >> 6 }
