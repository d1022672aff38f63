package ultrahonk

import (
	"github.com/noirverify/go-ultrahonk/field"
	"github.com/noirverify/go-ultrahonk/honk"
	"github.com/noirverify/go-ultrahonk/pairing"
	"github.com/noirverify/go-ultrahonk/shplemini"
	"github.com/noirverify/go-ultrahonk/sumcheck"
)

// The full error taxonomy, re-exported so callers can match any stage
// failure with errors.Is against this package alone.
var (
	ErrInvalidProofFormat        = honk.ErrInvalidProofFormat
	ErrInvalidVerificationKey    = honk.ErrInvalidVerificationKey
	ErrInvalidPublicInputsLength = honk.ErrInvalidPublicInputsLength
	ErrInvalidPublicInputFormat  = honk.ErrInvalidPublicInputFormat
	ErrInvalidFieldElement       = field.ErrInvalidFieldElement
	ErrDivisionByZero            = field.ErrDivisionByZero
	ErrSumcheckFailed            = sumcheck.ErrSumcheckFailed
	ErrEvaluationMismatch        = sumcheck.ErrEvaluationMismatch
	ErrShpleminiFailed           = shplemini.ErrShpleminiFailed
	ErrPairingCheckFailed        = pairing.ErrPairingCheckFailed
	ErrPrecompileCallFailed      = pairing.ErrPrecompileCallFailed
)
