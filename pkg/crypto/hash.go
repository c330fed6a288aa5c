// Package crypto derives secp256k1 public keys and Ethereum-style addresses.
package crypto

import (
	"github.com/Klingon-tech/ethkey/pkg/types"
	"golang.org/x/crypto/sha3"
)

// Keccak256 computes the original (pre-NIST) Keccak-256 digest of the
// concatenated inputs. This is not SHA3-256: the padding differs.
func Keccak256(data ...[]byte) types.Hash {
	d := sha3.NewLegacyKeccak256()
	for _, b := range data {
		d.Write(b)
	}
	var h types.Hash
	d.Sum(h[:0])
	return h
}
