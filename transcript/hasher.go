package transcript

import "crypto/sha256"

// Hasher produces the 32-byte digests that drive the challenge chain. The
// prover must use the same hash; SHA-256 is the protocol default.
type Hasher interface {
	Hash(data []byte) [32]byte
}

// SHA256Hasher is the stateless default Hasher.
type SHA256Hasher struct{}

func (SHA256Hasher) Hash(data []byte) [32]byte {
	return sha256.Sum256(data)
}
