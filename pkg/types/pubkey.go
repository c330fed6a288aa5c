package types

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Uncompressed public key layout.
const (
	// CoordinateSize is the big-endian width of one affine coordinate.
	CoordinateSize = 32
	// PublicKeySize is prefix + x + y.
	PublicKeySize = 1 + 2*CoordinateSize
	// UncompressedPrefix marks the SEC1 uncompressed point format.
	UncompressedPrefix byte = 0x04
)

// PublicKey is an uncompressed secp256k1 public key encoding:
// 0x04 || x (32 bytes, big-endian) || y (32 bytes, big-endian).
type PublicKey [PublicKeySize]byte

// Prefix returns the format byte.
func (p PublicKey) Prefix() byte {
	return p[0]
}

// X returns the zero-padded x coordinate.
func (p PublicKey) X() []byte {
	b := make([]byte, CoordinateSize)
	copy(b, p[1:1+CoordinateSize])
	return b
}

// Y returns the zero-padded y coordinate.
func (p PublicKey) Y() []byte {
	b := make([]byte, CoordinateSize)
	copy(b, p[1+CoordinateSize:])
	return b
}

// Bytes returns a copy of the full 65-byte encoding.
func (p PublicKey) Bytes() []byte {
	b := make([]byte, PublicKeySize)
	copy(b, p[:])
	return b
}

// Hex returns the 130-character lowercase hex encoding, starting with "04".
func (p PublicKey) Hex() string {
	return hex.EncodeToString(p[:])
}

// String implements fmt.Stringer.
func (p PublicKey) String() string {
	return p.Hex()
}

// MarshalJSON encodes the public key as a hex string.
func (p PublicKey) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.Hex())
}

// UnmarshalJSON decodes a hex string into a public key.
func (p *PublicKey) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := HexToPublicKey(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// HexToPublicKey parses a 130-character hex public key. Only the length is
// checked here; the prefix byte is validated where the key is consumed.
func HexToPublicKey(s string) (PublicKey, error) {
	b, err := hex.DecodeString(strip0x(s))
	if err != nil {
		return PublicKey{}, fmt.Errorf("invalid hex: %w", err)
	}
	if len(b) != PublicKeySize {
		return PublicKey{}, fmt.Errorf("public key must be %d bytes, got %d", PublicKeySize, len(b))
	}
	var p PublicKey
	copy(p[:], b)
	return p, nil
}
