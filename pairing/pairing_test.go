package pairing

import (
	"math/big"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cancellingPairs returns e(G1, G2) * e(-G1, G2), which is the identity.
func cancellingPairs() ([]bn254.G1Affine, []bn254.G2Affine) {
	_, _, g1, g2 := bn254.Generators()
	var negG1 bn254.G1Affine
	negG1.Neg(&g1)
	return []bn254.G1Affine{g1, negG1}, []bn254.G2Affine{g2, g2}
}

// skewedPairs scales one side so the product is not the identity.
func skewedPairs() ([]bn254.G1Affine, []bn254.G2Affine) {
	g1s, g2s := cancellingPairs()
	var scaled bn254.G1Affine
	scaled.ScalarMultiplication(&g1s[0], big.NewInt(3))
	g1s[0] = scaled
	return g1s, g2s
}

func TestBackendsAgreeOnIdentity(t *testing.T) {
	g1s, g2s := cancellingPairs()
	for _, b := range []Backend{Software{}, Precompile{}} {
		ok, err := b.Check(g1s, g2s)
		require.NoError(t, err)
		assert.True(t, ok)
	}
}

func TestBackendsAgreeOnNonIdentity(t *testing.T) {
	g1s, g2s := skewedPairs()
	for _, b := range []Backend{Software{}, Precompile{}} {
		ok, err := b.Check(g1s, g2s)
		require.NoError(t, err)
		assert.False(t, ok)
	}
}

func TestBackendsHandleInfinity(t *testing.T) {
	// pairing anything with the identity contributes nothing
	_, _, _, g2 := bn254.Generators()
	var inf bn254.G1Affine
	for _, b := range []Backend{Software{}, Precompile{}} {
		ok, err := b.Check([]bn254.G1Affine{inf}, []bn254.G2Affine{g2})
		require.NoError(t, err)
		assert.True(t, ok)
	}
}

func TestPrecompileLengthMismatch(t *testing.T) {
	g1s, _ := cancellingPairs()
	_, err := Precompile{}.Check(g1s, nil)
	require.ErrorIs(t, err, ErrPrecompileCallFailed)
}
