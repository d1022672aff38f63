// Package transcript derives the Fiat-Shamir challenges of the UltraHonk
// protocol. The chain is strictly ordered: every step hashes the exact
// big-endian 32-byte encoding of the previous challenge followed by the newly
// absorbed data, and splits the digest into two independent 128-bit halves.
// Verifier and prover must absorb identical byte sequences; any divergence
// surfaces downstream as a sumcheck or opening failure, which is the intended
// binding behavior of the construction.
package transcript

import (
	"bytes"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/noirverify/go-ultrahonk/field"
	"github.com/noirverify/go-ultrahonk/honk"
)

// RelationParameters are the challenge-derived scalars consumed by the
// relation evaluator. PublicInputsDelta is computed from the public inputs
// and circuit metadata rather than from hashing.
type RelationParameters struct {
	Eta, EtaTwo, EtaThree fr.Element
	Beta, Gamma           fr.Element
	PublicInputsDelta     fr.Element
}

// Transcript is the full derived challenge set for one verification call.
// It is computed once and read-only afterwards.
type Transcript struct {
	RelationParameters RelationParameters

	Alphas              [honk.NumberOfAlphas]fr.Element
	GateChallenges      [honk.ConstProofSizeLogN]fr.Element
	SumcheckUChallenges [honk.ConstProofSizeLogN]fr.Element

	Rho       fr.Element
	GeminiR   fr.Element
	ShplonkNu fr.Element
	ShplonkZ  fr.Element
}

// chain is the running hash state. prev holds the raw digest of the last
// round; it is absorbed verbatim at the start of every subsequent round.
type chain struct {
	h    Hasher
	prev [32]byte
	buf  bytes.Buffer
}

func (c *chain) reset(withPrev bool) {
	c.buf.Reset()
	if withPrev {
		c.buf.Write(c.prev[:])
	}
}

func (c *chain) writeFr(e fr.Element) {
	b := e.Bytes()
	c.buf.Write(b[:])
}

func (c *chain) writePoint(p honk.G1ProofPoint) {
	c.writeFr(p.X0)
	c.writeFr(p.X1)
	c.writeFr(p.Y0)
	c.writeFr(p.Y1)
}

// squeeze hashes the absorbed bytes and splits the 256-bit digest into the
// low and high 128-bit halves. Both halves are below 2^128 and therefore
// canonical scalars.
func (c *chain) squeeze() (lo, hi fr.Element) {
	c.prev = c.h.Hash(c.buf.Bytes())
	hi.SetBytes(c.prev[:16])
	lo.SetBytes(c.prev[16:])
	return lo, hi
}

// Generate runs the fixed challenge schedule over the proof, public inputs
// and circuit metadata. The only error path is a degenerate public-inputs
// delta denominator.
func Generate(proof *honk.Proof, publicInputs []fr.Element, vk *honk.VerificationKey, h Hasher) (*Transcript, error) {
	c := &chain{h: h}
	tp := &Transcript{}

	// eta, etaTwo, etaThree: circuit metadata, public inputs, first wires
	c.reset(false)
	c.writeFr(field.FromUint64(vk.CircuitSize))
	c.writeFr(field.FromUint64(vk.PublicInputsSize))
	c.writeFr(field.FromUint64(honk.PubInputsOffset))
	for _, pi := range publicInputs {
		c.writeFr(pi)
	}
	c.writePoint(proof.W1)
	c.writePoint(proof.W2)
	c.writePoint(proof.W3)
	eta, etaTwo := c.squeeze()
	c.reset(true)
	etaThree, _ := c.squeeze()

	// beta, gamma: lookup commitments and the fourth wire
	c.reset(true)
	c.writePoint(proof.LookupReadCounts)
	c.writePoint(proof.LookupReadTags)
	c.writePoint(proof.W4)
	beta, gamma := c.squeeze()

	// alphas: first pair binds the remaining commitments, the rest of the
	// 25 are squeezed from the running challenge alone
	c.reset(true)
	c.writePoint(proof.LookupInverses)
	c.writePoint(proof.ZPerm)
	tp.Alphas[0], tp.Alphas[1] = c.squeeze()
	for i := 2; i < honk.NumberOfAlphas; i += 2 {
		c.reset(true)
		lo, hi := c.squeeze()
		tp.Alphas[i] = lo
		if i+1 < honk.NumberOfAlphas {
			tp.Alphas[i+1] = hi
		}
	}

	// gate challenges: no proof data, low half only
	for i := range tp.GateChallenges {
		c.reset(true)
		tp.GateChallenges[i], _ = c.squeeze()
	}

	// sumcheck challenges: one per round, binding that round's univariate
	for i := range tp.SumcheckUChallenges {
		c.reset(true)
		for j := 0; j < honk.BatchedRelationPartialLength; j++ {
			c.writeFr(proof.SumcheckUnivariates[i][j])
		}
		tp.SumcheckUChallenges[i], _ = c.squeeze()
	}

	// rho: binds all claimed evaluations
	c.reset(true)
	for i := range proof.SumcheckEvaluations {
		c.writeFr(proof.SumcheckEvaluations[i])
	}
	tp.Rho, _ = c.squeeze()

	// geminiR: binds the fold commitments
	c.reset(true)
	for i := range proof.GeminiFoldComms {
		c.writePoint(proof.GeminiFoldComms[i])
	}
	tp.GeminiR, _ = c.squeeze()

	// shplonkNu: binds the Gemini evaluations
	c.reset(true)
	for i := range proof.GeminiAEvaluations {
		c.writeFr(proof.GeminiAEvaluations[i])
	}
	tp.ShplonkNu, _ = c.squeeze()

	// shplonkZ: binds the Shplonk batching commitment
	c.reset(true)
	c.writePoint(proof.ShplonkQ)
	tp.ShplonkZ, _ = c.squeeze()

	delta, err := publicInputsDelta(publicInputs, beta, gamma, vk.CircuitSize)
	if err != nil {
		return nil, err
	}
	tp.RelationParameters = RelationParameters{
		Eta:               eta,
		EtaTwo:            etaTwo,
		EtaThree:          etaThree,
		Beta:              beta,
		Gamma:             gamma,
		PublicInputsDelta: delta,
	}
	return tp, nil
}

// publicInputsDelta is the boundary value the permutation grand product must
// reach at the last row: the ratio of the wire/identity terms contributed by
// the public input rows.
func publicInputsDelta(publicInputs []fr.Element, beta, gamma fr.Element, circuitSize uint64) (fr.Element, error) {
	one := field.FromUint64(1)
	numerator, denominator := one, one

	numeratorAcc := field.Add(gamma, field.Mul(beta, field.FromUint64(circuitSize+honk.PubInputsOffset)))
	denominatorAcc := field.Sub(gamma, field.Mul(beta, field.FromUint64(honk.PubInputsOffset+1)))

	for _, pi := range publicInputs {
		numerator = field.Mul(numerator, field.Add(numeratorAcc, pi))
		denominator = field.Mul(denominator, field.Add(denominatorAcc, pi))
		numeratorAcc = field.Add(numeratorAcc, beta)
		denominatorAcc = field.Sub(denominatorAcc, beta)
	}
	return field.Div(numerator, denominator)
}
