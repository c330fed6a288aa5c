package crypto

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/Klingon-tech/ethkey/pkg/types"
)

// PrivateKeySize is the length of a serialized private scalar in bytes.
const PrivateKeySize = 32

// Key derivation errors.
var (
	// ErrInvalidScalar is returned for a private scalar that is zero or not
	// below the curve order n.
	ErrInvalidScalar = errors.New("invalid private scalar")
	// ErrInvalidKeyFormat is returned when private key text is not 64 hex
	// characters.
	ErrInvalidKeyFormat = errors.New("invalid private key format")
)

// PrivateKey wraps a secp256k1 private scalar d with 0 < d < n.
type PrivateKey struct {
	key *secp256k1.PrivateKey
}

// PrivateKeyFromBytes creates a PrivateKey from a 32-byte big-endian scalar.
// The scalar is not reduced: values of zero or >= n are rejected.
func PrivateKeyFromBytes(b []byte) (*PrivateKey, error) {
	if len(b) != PrivateKeySize {
		return nil, fmt.Errorf("%w: must be %d bytes, got %d", ErrInvalidKeyFormat, PrivateKeySize, len(b))
	}
	var scalar secp256k1.ModNScalar
	if overflow := scalar.SetByteSlice(b); overflow {
		scalar.Zero()
		return nil, fmt.Errorf("%w: scalar is not below the curve order", ErrInvalidScalar)
	}
	if scalar.IsZero() {
		return nil, fmt.Errorf("%w: scalar is zero", ErrInvalidScalar)
	}
	return &PrivateKey{key: secp256k1.NewPrivateKey(&scalar)}, nil
}

// ParsePrivateKeyHex parses a 64-character hex private key. Surrounding
// whitespace and a "0x" prefix are ignored.
func ParsePrivateKeyHex(s string) (*PrivateKey, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		s = s[2:]
	}
	if len(s) != 2*PrivateKeySize {
		return nil, fmt.Errorf("%w: want %d hex characters, got %d", ErrInvalidKeyFormat, 2*PrivateKeySize, len(s))
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKeyFormat, err)
	}
	defer zeroBytes(b)
	return PrivateKeyFromBytes(b)
}

// PublicKey computes Q = d·G and returns its uncompressed encoding. Both
// coordinates are zero-padded to 32 bytes.
func (pk *PrivateKey) PublicKey() types.PublicKey {
	var point secp256k1.JacobianPoint
	secp256k1.ScalarBaseMultNonConst(&pk.key.Key, &point)
	point.ToAffine()
	point.X.Normalize()
	point.Y.Normalize()

	var pub types.PublicKey
	pub[0] = types.UncompressedPrefix
	point.X.PutBytesUnchecked(pub[1 : 1+types.CoordinateSize])
	point.Y.PutBytesUnchecked(pub[1+types.CoordinateSize:])
	return pub
}

// Address returns the account address controlled by this key.
func (pk *PrivateKey) Address() types.Address {
	pub := pk.PublicKey()
	addr, _, _ := AddressFromPubKey(pub[:])
	return addr
}

// Serialize returns the 32-byte private key scalar.
func (pk *PrivateKey) Serialize() []byte {
	return pk.key.Serialize()
}

// Zero securely zeroes the private key memory.
func (pk *PrivateKey) Zero() {
	pk.key.Zero()
}

// DerivePublicKey derives the uncompressed public key for a 32-byte scalar.
func DerivePublicKey(scalar []byte) (types.PublicKey, error) {
	key, err := PrivateKeyFromBytes(scalar)
	if err != nil {
		return types.PublicKey{}, err
	}
	defer key.Zero()
	return key.PublicKey(), nil
}

// IsOnCurve reports whether the encoding is a valid uncompressed point.
func IsOnCurve(pub types.PublicKey) bool {
	if pub.Prefix() != types.UncompressedPrefix {
		return false
	}
	_, err := secp256k1.ParsePubKey(pub[:])
	return err == nil
}

func zeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
