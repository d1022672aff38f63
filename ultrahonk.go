// Package ultrahonk verifies UltraHonk zero-knowledge proofs over BN254.
//
// A Verifier is built once from a verification key blob and can then check
// any number of proofs against it. Verification runs in stages: parse,
// Fiat-Shamir challenge generation, sumcheck, and the Shplemini batched
// opening reduction ending in a pairing check. Each stage failure maps to a
// typed error, so callers can distinguish malformed inputs from proofs that
// are simply invalid.
package ultrahonk

import (
	"github.com/rs/zerolog"

	"github.com/noirverify/go-ultrahonk/honk"
	"github.com/noirverify/go-ultrahonk/logger"
	"github.com/noirverify/go-ultrahonk/pairing"
	"github.com/noirverify/go-ultrahonk/shplemini"
	"github.com/noirverify/go-ultrahonk/sumcheck"
	"github.com/noirverify/go-ultrahonk/transcript"
)

// Verifier checks proofs against one verification key. It is immutable after
// construction and safe for concurrent use.
type Verifier struct {
	vk      *honk.VerificationKey
	hasher  transcript.Hasher
	backend pairing.Backend
	log     zerolog.Logger
}

// Option customizes a Verifier.
type Option func(*Verifier)

// WithPairingBackend selects the pairing implementation. The default is the
// native gnark-crypto backend; use pairing.Precompile to match the EVM
// precompile bit for bit.
func WithPairingBackend(b pairing.Backend) Option {
	return func(v *Verifier) {
		v.backend = b
	}
}

// WithHasher overrides the Fiat-Shamir hash. The prover must use the same
// hash for proofs to verify.
func WithHasher(h transcript.Hasher) Option {
	return func(v *Verifier) {
		v.hasher = h
	}
}

// WithLogger overrides the package-level logger for this verifier.
func WithLogger(l zerolog.Logger) Option {
	return func(v *Verifier) {
		v.log = l
	}
}

// NewVerifier parses the verification key blob and builds a verifier bound
// to it.
func NewVerifier(vkBytes []byte, opts ...Option) (*Verifier, error) {
	vk, err := honk.ParseVerificationKey(vkBytes)
	if err != nil {
		return nil, err
	}
	v := &Verifier{
		vk:      vk,
		hasher:  transcript.SHA256Hasher{},
		backend: pairing.Software{},
		log:     logger.Logger(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v, nil
}

// Key returns the parsed verification key. Callers must not mutate it.
func (v *Verifier) Key() *honk.VerificationKey {
	return v.vk
}

// Verify checks one proof. Public inputs are 32-byte big-endian scalars and
// their count must match the key's declared size. It returns (true, nil)
// only when every protocol check passes; any failure returns false together
// with the typed error of the failing stage.
func (v *Verifier) Verify(proofBytes []byte, publicInputs [][]byte) (bool, error) {
	log := v.log.With().
		Uint64("circuitSize", v.vk.CircuitSize).
		Int("publicInputs", len(publicInputs)).
		Logger()

	proof, err := honk.ParseProof(proofBytes)
	if err != nil {
		return false, err
	}
	inputs, err := honk.ParsePublicInputs(publicInputs, int(v.vk.PublicInputsSize))
	if err != nil {
		return false, err
	}

	tp, err := transcript.Generate(proof, inputs, v.vk, v.hasher)
	if err != nil {
		return false, err
	}
	log.Debug().Msg("challenges generated")

	if err = sumcheck.Verify(proof, tp); err != nil {
		log.Debug().Err(err).Msg("sumcheck rejected proof")
		return false, err
	}
	log.Debug().Msg("sumcheck passed")

	if err = shplemini.Verify(proof, v.vk, tp, v.backend); err != nil {
		log.Debug().Err(err).Msg("opening check rejected proof")
		return false, err
	}
	log.Debug().Msg("proof verified")
	return true, nil
}

// Verify is a one-shot convenience for a single key and proof.
func Verify(vkBytes, proofBytes []byte, publicInputs [][]byte, opts ...Option) (bool, error) {
	v, err := NewVerifier(vkBytes, opts...)
	if err != nil {
		return false, err
	}
	return v.Verify(proofBytes, publicInputs)
}
