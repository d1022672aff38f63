// Package sumcheck checks the round-by-round univariate chain of the
// UltraHonk sumcheck argument and the final relation evaluation it binds.
// Every proof carries the padded maximum of 28 rounds; rounds above the
// circuit's log size repeat a fixed pattern that keeps the chain consistent,
// so all rounds are checked uniformly.
package sumcheck

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/pkg/errors"

	"github.com/noirverify/go-ultrahonk/field"
	"github.com/noirverify/go-ultrahonk/honk"
	"github.com/noirverify/go-ultrahonk/relations"
	"github.com/noirverify/go-ultrahonk/transcript"
)

var (
	// ErrSumcheckFailed is returned when a round univariate does not sum to
	// the running target.
	ErrSumcheckFailed = errors.New("sumcheck round check failed")

	// ErrEvaluationMismatch is returned when the batched relation value at
	// the challenge point disagrees with the final round target.
	ErrEvaluationMismatch = errors.New("relation evaluation does not match sumcheck target")
)

// RoundError identifies the first inconsistent sumcheck round.
type RoundError struct {
	Round int
}

func (e *RoundError) Error() string {
	return fmt.Sprintf("sumcheck round check failed at round %d", e.Round)
}

func (e *RoundError) Unwrap() error {
	return ErrSumcheckFailed
}

// barycentricDenominators are prod_{j!=i}(i-j) for the evaluation domain
// {0..7}, precomputed once.
var barycentricDenominators [honk.BatchedRelationPartialLength]fr.Element

func init() {
	signed := [honk.BatchedRelationPartialLength]int64{-5040, 720, -240, 144, -144, 240, -720, 5040}
	for i, v := range signed {
		if v < 0 {
			barycentricDenominators[i] = field.Neg(field.FromUint64(uint64(-v)))
		} else {
			barycentricDenominators[i] = field.FromUint64(uint64(v))
		}
	}
}

// Verify walks all sumcheck rounds and then evaluates the batched relations
// at the challenge point, comparing against the final round target.
func Verify(proof *honk.Proof, tp *transcript.Transcript) error {
	var roundTarget fr.Element
	powPartialEval := field.FromUint64(1)

	for round := 0; round < honk.ConstProofSizeLogN; round++ {
		univariate := &proof.SumcheckUnivariates[round]
		total := field.Add(univariate[0], univariate[1])
		if !total.Equal(&roundTarget) {
			return &RoundError{Round: round}
		}

		challenge := tp.SumcheckUChallenges[round]
		next, err := extendUnivariate(univariate, challenge)
		if err != nil {
			return err
		}
		roundTarget = next

		// pow contribution: 1 + u * (gate_challenge - 1)
		term := field.Mul(challenge, field.Sub(tp.GateChallenges[round], field.FromUint64(1)))
		powPartialEval = field.Mul(powPartialEval, field.Add(field.FromUint64(1), term))
	}

	grandSum := relations.Accumulate(&proof.SumcheckEvaluations, &tp.RelationParameters, &tp.Alphas, powPartialEval)
	if !grandSum.Equal(&roundTarget) {
		return ErrEvaluationMismatch
	}
	return nil
}

// extendUnivariate evaluates the degree-7 round polynomial, given on the
// domain {0..7}, at the challenge point using the barycentric formula.
func extendUnivariate(u *[honk.BatchedRelationPartialLength]fr.Element, challenge fr.Element) (fr.Element, error) {
	// challenge on a domain node: the value is the node evaluation itself
	numeratorProduct := field.FromUint64(1)
	for i := uint64(0); i < honk.BatchedRelationPartialLength; i++ {
		diff := field.Sub(challenge, field.FromUint64(i))
		if diff.IsZero() {
			return u[i], nil
		}
		numeratorProduct = field.Mul(numeratorProduct, diff)
	}

	var result fr.Element
	for i := uint64(0); i < honk.BatchedRelationPartialLength; i++ {
		denom := field.Mul(barycentricDenominators[i], field.Sub(challenge, field.FromUint64(i)))
		term, err := field.Div(u[i], denom)
		if err != nil {
			return fr.Element{}, err
		}
		result = field.Add(result, term)
	}
	return field.Mul(result, numeratorProduct), nil
}
