package lsctp

import (
	"errors"
	"fmt"
)

type ValidateFlags uint64

const (
	validateReserved ValidateFlags = 1 << iota
	// ValidateAllowMultiErrors accumulates every error found instead of only the first.
	ValidateAllowMultiErrors
)

func (vf ValidateFlags) has(v ValidateFlags) bool {
	return vf&v == v
}

// Validator accumulates errors found while checking a frame's fields
// against its buffer. The zero value keeps only the first error.
type Validator struct {
	accum []error
	flags ValidateFlags
}

// NewValidator returns a Validator with flags set.
func NewValidator(flags ValidateFlags) *Validator {
	return &Validator{flags: flags &^ validateReserved}
}

func (v *Validator) Flags() ValidateFlags {
	return v.flags
}

func (v *Validator) ResetErr() {
	v.accum = v.accum[:0]
}

func (v *Validator) HasError() bool {
	if v.flags.has(validateReserved) {
		panic("reserved bit set")
	}
	return len(v.accum) != 0
}

func (v *Validator) Err() error {
	if len(v.accum) == 1 {
		return v.accum[0]
	} else if len(v.accum) == 0 {
		return nil
	}
	return errors.Join(v.accum...)
}

func (v *Validator) AddError(err error) {
	if err == nil {
		panic("error argument to AddError cannot be nil")
	} else if len(v.accum) != 0 && !v.flags.has(ValidateAllowMultiErrors) {
		return
	}
	v.accum = append(v.accum, err)
}

// AddBitPosErr adds an error located at a bit range of the frame.
func (v *Validator) AddBitPosErr(bitStart, bitLen int, err error) {
	if err == nil {
		panic("err argument to bitPosErr cannot be nil")
	} else if bitLen <= 0 {
		panic("bitLen must be positive")
	} else if len(v.accum) != 0 && !v.flags.has(ValidateAllowMultiErrors) {
		return
	}
	v.accum = append(v.accum, &BitPosErr{BitStart: bitStart, BitLen: bitLen, Err: err})
}

type BitPosErr struct {
	BitStart int
	BitLen   int
	Err      error
}

func (bpe *BitPosErr) Error() string {
	return fmt.Sprintf("%s at bits %d..%d", bpe.Err.Error(), bpe.BitStart, bpe.BitStart+bpe.BitLen)
}

func (bpe *BitPosErr) Unwrap() error { return bpe.Err }
