package sctp

import (
	"errors"

	"github.com/soypat/lsctp"
)

//go:generate stringer -type=Lookup -linecomment -output stringers.go .

const (
	// TSNMapSize is the largest window of TSNs past the Cumulative TSN Ack Point
	// that a [TSNMap] can track.
	TSNMapSize = 4096
	// TSNMapInitial is the default capacity in bits of a new [TSNMap].
	TSNMapInitial = 64
	// TSNMapIncrement is the extra capacity added on each growth of a [TSNMap].
	TSNMapIncrement = 64
	// MaxGapAckBlocks is the maximum amount of Gap Ack Blocks reported in a SACK.
	MaxGapAckBlocks = 16
	// MaxDupTSNs is the maximum amount of duplicate TSNs reported in a SACK.
	MaxDupTSNs = 16

	wordBits = 64

	sizeSACKHeader  = lsctp.SizeChunkHeader + 12
	sizeGapAckBlock = 4
	sizeDupTSN      = 4
)

var (
	// ErrOutOfRange is returned when a TSN lies beyond the maximum window a TSNMap can represent.
	ErrOutOfRange = errors.New("sctp: TSN out of map range")
	// ErrNoMemory is returned when a TSNMap needs to grow past its configured capacity.
	ErrNoMemory = errors.New("sctp: TSN map capacity exhausted")
)

// Lookup is the result of classifying a TSN against a [TSNMap].
type Lookup uint8

const (
	LookupNew        Lookup = iota // new
	LookupSeen                     // seen
	LookupOutOfRange               // out of range
)
