package lsctp

type errGeneric uint8

// Generic errors common to SCTP packet handling.
const (
	_                errGeneric = iota // non-initialized err
	ErrShortBuffer                     // short buffer
	ErrInvalidConfig                   // invalid configuration
	ErrInvalidLength                   // invalid length field
)

func (err errGeneric) Error() string {
	return err.String()
}

func (err errGeneric) String() string {
	switch err {
	case ErrShortBuffer:
		return "short buffer"
	case ErrInvalidConfig:
		return "invalid configuration"
	case ErrInvalidLength:
		return "invalid length field"
	}
	return "non-initialized err"
}
