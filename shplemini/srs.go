package shplemini

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fp"
)

// g2Generator and srsX2 are the two G2 points of the KZG pairing check:
// the group generator and tau*G2 from the Aztec Ignition ceremony.
var (
	g2Generator bn254.G2Affine
	srsX2       bn254.G2Affine
)

func init() {
	_, _, _, g2Generator = bn254.Generators()

	setFp := func(e *fp.Element, hex string) {
		v, ok := new(big.Int).SetString(hex, 0)
		if !ok {
			panic("shplemini: bad SRS constant " + hex)
		}
		e.SetBigInt(v)
	}
	setFp(&srsX2.X.A1, "0x260e01b251f6f1c7e7ff4e580791dee8ea51d87a358e038b4efe30fac09383c1")
	setFp(&srsX2.X.A0, "0x0118c4d5b837bcc2bc89b5b398b5974e9f5944073b32078b7e231fec938883b0")
	setFp(&srsX2.Y.A1, "0x04fc6369f7110fe3d25156c1bb9a72859cf2a04641f99ba4ee413c80da6a5fe4")
	setFp(&srsX2.Y.A0, "0x22febda3c0c0632a56475b4214e5615e11e6dd3f96e6cea2854a87d4dacc5e55")
}
