// Package field provides arithmetic over the BN254 scalar field with the
// checked error paths the verifier needs when operating on untrusted input.
//
// The heavy lifting (Montgomery multiplication, inversion) is done by
// gnark-crypto's fr.Element; this package adds the strict big-endian byte
// codec and the error-returning inverse/division used on proof data, where a
// zero divisor must surface as a typed error instead of a silent zero.
package field

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/pkg/errors"
)

// Bytes is the canonical encoded size of a scalar.
const Bytes = fr.Bytes

var (
	// ErrInvalidFieldElement is returned when decoded bytes do not represent
	// a canonical scalar (value >= modulus or wrong length).
	ErrInvalidFieldElement = errors.New("invalid field element")

	// ErrDivisionByZero is returned by Inverse and Div on a zero divisor.
	ErrDivisionByZero = errors.New("division by zero")
)

// Modulus returns the BN254 scalar field modulus as a new big.Int.
func Modulus() *big.Int {
	return fr.Modulus()
}

// FromBytes decodes a 32-byte big-endian scalar. Values >= the modulus are
// rejected rather than reduced: proof bytes must be canonical.
func FromBytes(b []byte) (fr.Element, error) {
	var zero fr.Element
	if len(b) != Bytes {
		return zero, errors.Wrapf(ErrInvalidFieldElement, "expected %d bytes, got %d", Bytes, len(b))
	}
	e, err := fr.BigEndian.Element((*[Bytes]byte)(b))
	if err != nil {
		return zero, errors.Wrap(ErrInvalidFieldElement, err.Error())
	}
	return e, nil
}

// ToBytes encodes a scalar as 32 big-endian bytes.
func ToBytes(e fr.Element) [Bytes]byte {
	return e.Bytes()
}

// FromUint64 lifts a small integer into the field.
func FromUint64(v uint64) fr.Element {
	return fr.NewElement(v)
}

// Add returns a+b mod p.
func Add(a, b fr.Element) fr.Element {
	var z fr.Element
	z.Add(&a, &b)
	return z
}

// Sub returns a-b mod p.
func Sub(a, b fr.Element) fr.Element {
	var z fr.Element
	z.Sub(&a, &b)
	return z
}

// Mul returns a*b mod p.
func Mul(a, b fr.Element) fr.Element {
	var z fr.Element
	z.Mul(&a, &b)
	return z
}

// Neg returns -a mod p.
func Neg(a fr.Element) fr.Element {
	var z fr.Element
	z.Neg(&a)
	return z
}

// Sqr returns a² mod p.
func Sqr(a fr.Element) fr.Element {
	var z fr.Element
	z.Square(&a)
	return z
}

// Pow returns base^exp mod p.
func Pow(base fr.Element, exp *big.Int) fr.Element {
	var z fr.Element
	z.Exp(base, exp)
	return z
}

// Inverse returns a⁻¹ mod p, failing on a zero input. Inputs derive from
// untrusted proof bytes, so the zero case is an error path, never a panic.
func Inverse(a fr.Element) (fr.Element, error) {
	var z fr.Element
	if a.IsZero() {
		return z, ErrDivisionByZero
	}
	z.Inverse(&a)
	return z, nil
}

// Div returns a/b mod p, failing when b is zero.
func Div(a, b fr.Element) (fr.Element, error) {
	inv, err := Inverse(b)
	if err != nil {
		return fr.Element{}, err
	}
	return Mul(a, inv), nil
}
