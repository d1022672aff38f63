package honk

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrInvalidProofFormat is returned when the proof byte length or
	// structure is wrong.
	ErrInvalidProofFormat = errors.New("invalid proof format")

	// ErrInvalidVerificationKey is returned when the verification key blob
	// cannot be parsed into a well-formed key.
	ErrInvalidVerificationKey = errors.New("invalid verification key")

	// ErrInvalidPublicInputsLength is returned when the number of public
	// inputs does not match the verification key.
	ErrInvalidPublicInputsLength = errors.New("invalid public inputs length")

	// ErrInvalidPublicInputFormat is returned when a single public input is
	// malformed.
	ErrInvalidPublicInputFormat = errors.New("invalid public input format")
)

// PublicInputsLengthError reports a count mismatch between the supplied
// public inputs and the verification key's declared size.
type PublicInputsLengthError struct {
	Expected int
	Got      int
}

func (e *PublicInputsLengthError) Error() string {
	return fmt.Sprintf("invalid public inputs length: expected %d, got %d", e.Expected, e.Got)
}

// Unwrap makes errors.Is(err, ErrInvalidPublicInputsLength) hold.
func (e *PublicInputsLengthError) Unwrap() error {
	return ErrInvalidPublicInputsLength
}

// PublicInputFormatError reports which public input failed to decode.
type PublicInputFormatError struct {
	Index int
	Cause error
}

func (e *PublicInputFormatError) Error() string {
	return fmt.Sprintf("invalid public input at index %d: %v", e.Index, e.Cause)
}

func (e *PublicInputFormatError) Unwrap() error {
	return ErrInvalidPublicInputFormat
}
