package loaderstate

import (
	"errors"
	"fmt"
)

// TruncatedInputError reports that the buffer ended before a field the
// layout requires could be read in full. Retrying with the same buffer
// cannot succeed.
type TruncatedInputError struct {
	// Field being read, e.g. "ProgramData.slot".
	Field string
	// Offset of the field within the buffer.
	Offset int
	// Bytes the field needs and bytes that remained.
	Need, Have int
}

func (e *TruncatedInputError) Error() string {
	return fmt.Sprintf("loaderstate: truncated input reading %s at offset %d: need %d bytes, have %d",
		e.Field, e.Offset, e.Need, e.Have)
}

// NewTruncatedInputError creates a new TruncatedInputError.
func NewTruncatedInputError(field string, offset, need, have int) *TruncatedInputError {
	return &TruncatedInputError{Field: field, Offset: offset, Need: need, Have: have}
}

// IsTruncated checks whether an error is a TruncatedInputError and returns it.
func IsTruncated(err error) (*TruncatedInputError, bool) {
	var e *TruncatedInputError
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// UnknownDiscriminantError reports a tag that matches no known variant:
// either the 4-byte variant tag or an optional field's presence byte.
// It signals format drift or a buffer that is not a loader account.
type UnknownDiscriminantError struct {
	// Field holding the tag, e.g. "UpgradeableLoaderState" or
	// "Buffer.authority_address".
	Field  string
	Offset int
	Value  uint32
}

func (e *UnknownDiscriminantError) Error() string {
	return fmt.Sprintf("loaderstate: unknown discriminant %d for %s at offset %d", e.Value, e.Field, e.Offset)
}

// NewUnknownDiscriminantError creates a new UnknownDiscriminantError.
func NewUnknownDiscriminantError(field string, offset int, value uint32) *UnknownDiscriminantError {
	return &UnknownDiscriminantError{Field: field, Offset: offset, Value: value}
}

// IsUnknownDiscriminant checks whether an error is an
// UnknownDiscriminantError and returns it.
func IsUnknownDiscriminant(err error) (*UnknownDiscriminantError, bool) {
	var e *UnknownDiscriminantError
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
