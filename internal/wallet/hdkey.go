package wallet

import (
	"fmt"

	"github.com/tyler-smith/go-bip32"

	"github.com/Klingon-tech/ethkey/pkg/crypto"
)

// BIP-44 derivation path constants.
// Full path: m/44'/60'/0'/0/index
const (
	// PurposeBIP44 is the BIP-44 purpose field (hardened).
	PurposeBIP44 = bip32.FirstHardenedChild + 44

	// CoinTypeEther is the SLIP-44 coin type for Ether (hardened).
	CoinTypeEther = bip32.FirstHardenedChild + 60

	// AccountDefault is the first account (hardened).
	AccountDefault = bip32.FirstHardenedChild + 0

	// ChangeExternal is for receiving addresses.
	ChangeExternal = 0
)

// HDKey represents a hierarchical deterministic key (BIP-32).
type HDKey struct {
	key *bip32.Key
}

// NewMasterKey creates a master HD key from a 64-byte seed.
func NewMasterKey(seed []byte) (*HDKey, error) {
	if len(seed) != SeedSize {
		return nil, fmt.Errorf("seed must be %d bytes, got %d", SeedSize, len(seed))
	}
	master, err := bip32.NewMasterKey(seed)
	if err != nil {
		return nil, fmt.Errorf("create master key: %w", err)
	}
	return &HDKey{key: master}, nil
}

// DeriveChild derives a child key at the given index.
// For hardened derivation, add bip32.FirstHardenedChild to the index.
func (k *HDKey) DeriveChild(index uint32) (*HDKey, error) {
	child, err := k.key.NewChildKey(index)
	if err != nil {
		return nil, fmt.Errorf("derive child %d: %w", index, err)
	}
	return &HDKey{key: child}, nil
}

// DerivePath derives a key along a sequence of indices.
func (k *HDKey) DerivePath(indices ...uint32) (*HDKey, error) {
	current := k
	for _, idx := range indices {
		child, err := current.DeriveChild(idx)
		if err != nil {
			return nil, err
		}
		current = child
	}
	return current, nil
}

// DeriveEthereum derives the key at m/44'/60'/0'/0/index.
func (k *HDKey) DeriveEthereum(index uint32) (*HDKey, error) {
	if index >= bip32.FirstHardenedChild {
		return nil, fmt.Errorf("address index %d out of range", index)
	}
	return k.DerivePath(
		PurposeBIP44,
		CoinTypeEther,
		AccountDefault,
		ChangeExternal,
		index,
	)
}

// PrivateKeyBytes returns the raw 32-byte private key, left-padded.
// Returns nil if this is a public-only key.
func (k *HDKey) PrivateKeyBytes() []byte {
	if !k.key.IsPrivate {
		return nil
	}
	raw := k.key.Key
	// bip32 may carry a leading 0x00 or drop leading zeros.
	if len(raw) == 33 && raw[0] == 0 {
		raw = raw[1:]
	}
	out := make([]byte, crypto.PrivateKeySize)
	copy(out[crypto.PrivateKeySize-len(raw):], raw)
	return out
}

// PrivateKey returns the key as a crypto.PrivateKey.
// Returns error if this is a public-only key.
func (k *HDKey) PrivateKey() (*crypto.PrivateKey, error) {
	priv := k.PrivateKeyBytes()
	if priv == nil {
		return nil, fmt.Errorf("cannot create private key from public key")
	}
	defer zero(priv)
	return crypto.PrivateKeyFromBytes(priv)
}

// KeyFromMnemonic derives the single private key at m/44'/60'/0'/0/index.
func KeyFromMnemonic(mnemonic, passphrase string, index uint32) (*crypto.PrivateKey, error) {
	seed, err := SeedFromMnemonic(mnemonic, passphrase)
	if err != nil {
		return nil, err
	}
	defer zero(seed)

	master, err := NewMasterKey(seed)
	if err != nil {
		return nil, err
	}
	child, err := master.DeriveEthereum(index)
	if err != nil {
		return nil, err
	}
	return child.PrivateKey()
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
