// Package pairing abstracts the final BN254 product-of-pairings check behind
// a backend interface, so the same verifier core can run against the native
// gnark-crypto implementation or the go-ethereum bn256 library that mirrors
// the EVM precompile byte for byte.
package pairing

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	bn256 "github.com/ethereum/go-ethereum/crypto/bn256/cloudflare"
	"github.com/pkg/errors"
)

var (
	// ErrPairingCheckFailed is returned by callers when the product of
	// pairings is not the identity.
	ErrPairingCheckFailed = errors.New("pairing check failed")

	// ErrPrecompileCallFailed is returned when the precompile-compatible
	// backend rejects its inputs.
	ErrPrecompileCallFailed = errors.New("pairing precompile call failed")
)

// CallError reports a backend input the precompile implementation refused.
type CallError struct {
	Index int
	Cause error
}

func (e *CallError) Error() string {
	return fmt.Sprintf("pairing precompile call failed on input pair %d: %v", e.Index, e.Cause)
}

func (e *CallError) Unwrap() error {
	return ErrPrecompileCallFailed
}

// Backend evaluates whether the product of pairings e(g1s[i], g2s[i]) equals
// the identity. Inputs are trusted to be on-curve; subgroup membership is
// the backend's concern.
type Backend interface {
	Check(g1s []bn254.G1Affine, g2s []bn254.G2Affine) (bool, error)
}

// Software is the native gnark-crypto backend.
type Software struct{}

func (Software) Check(g1s []bn254.G1Affine, g2s []bn254.G2Affine) (bool, error) {
	return bn254.PairingCheck(g1s, g2s)
}

// Precompile routes the check through go-ethereum's bn256 implementation,
// which matches the EVM ecPairing precompile semantics, including the (0,0)
// encoding for the identity. Useful when the result must agree exactly with
// an on-chain verifier.
type Precompile struct{}

func (Precompile) Check(g1s []bn254.G1Affine, g2s []bn254.G2Affine) (bool, error) {
	if len(g1s) != len(g2s) {
		return false, errors.Wrap(ErrPrecompileCallFailed, "mismatched input lengths")
	}

	as := make([]*bn256.G1, len(g1s))
	bs := make([]*bn256.G2, len(g2s))
	for i := range g1s {
		// gnark-crypto marshals uncompressed points in the precompile's
		// calldata layout: X||Y for G1, imaginary-first per coordinate
		// for G2, zeros for the identity
		a := new(bn256.G1)
		if _, err := a.Unmarshal(g1s[i].Marshal()); err != nil {
			return false, &CallError{Index: i, Cause: err}
		}
		b := new(bn256.G2)
		if _, err := b.Unmarshal(g2s[i].Marshal()); err != nil {
			return false, &CallError{Index: i, Cause: err}
		}
		as[i], bs[i] = a, b
	}
	return bn256.PairingCheck(as, bs), nil
}
