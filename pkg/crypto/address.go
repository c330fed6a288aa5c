package crypto

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/Klingon-tech/ethkey/pkg/types"
)

// ErrInvalidEncoding is returned for a public key that is not 65 bytes
// starting with 0x04.
var ErrInvalidEncoding = errors.New("invalid public key encoding")

// AddressFromPubKey derives an address from an uncompressed public key.
// Address = Keccak256(x || y)[12:32]. The full digest is returned alongside.
func AddressFromPubKey(pub []byte) (types.Address, types.Hash, error) {
	if len(pub) != types.PublicKeySize {
		return types.Address{}, types.Hash{}, fmt.Errorf("%w: must be %d bytes, got %d",
			ErrInvalidEncoding, types.PublicKeySize, len(pub))
	}
	if pub[0] != types.UncompressedPrefix {
		return types.Address{}, types.Hash{}, fmt.Errorf("%w: prefix %#02x, want %#02x",
			ErrInvalidEncoding, pub[0], types.UncompressedPrefix)
	}

	h := Keccak256(pub[1:])
	var addr types.Address
	copy(addr[:], h[types.HashSize-types.AddressSize:])
	return addr, h, nil
}

// ChecksumAddress renders an address in EIP-55 mixed-case form.
func ChecksumAddress(addr types.Address) string {
	return common.Address(addr).Hex()
}
