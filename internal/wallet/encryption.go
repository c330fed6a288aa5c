package wallet

import (
	"crypto/rand"
	"fmt"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"

	"github.com/Klingon-tech/ethkey/pkg/crypto"
)

// SaltSize is the Argon2id salt length in bytes.
const SaltSize = 32

// CipherName identifies the only supported key file construction.
const CipherName = "argon2id-xchacha20poly1305"

// KeyFileVersion is the current encrypted key file format version.
const KeyFileVersion = 1

// EncryptionParams holds Argon2id parameters.
type EncryptionParams struct {
	Memory      uint32 `json:"memory"` // in KiB
	Iterations  uint32 `json:"iterations"`
	Parallelism uint8  `json:"parallelism"`
}

// DefaultParams returns recommended Argon2id parameters.
func DefaultParams() EncryptionParams {
	return EncryptionParams{
		Memory:      64 * 1024, // 64 MB
		Iterations:  3,
		Parallelism: 4,
	}
}

// Upper bounds accepted for a key file's KDF parameters.
const (
	MaxMemory      = 4 * 1024 * 1024 // KiB (4 GiB)
	MaxIterations  = 64
	MaxParallelism = 64
)

// Validate rejects parameters that would make Argon2id panic, be useless, or
// exhaust memory before the password can be checked.
func (p EncryptionParams) Validate() error {
	if p.Memory > MaxMemory {
		return fmt.Errorf("argon2 memory %d KiB exceeds limit %d KiB", p.Memory, MaxMemory)
	}
	if p.Iterations > MaxIterations {
		return fmt.Errorf("argon2 iterations %d exceed limit %d", p.Iterations, MaxIterations)
	}
	if p.Parallelism > MaxParallelism {
		return fmt.Errorf("argon2 parallelism %d exceeds limit %d", p.Parallelism, MaxParallelism)
	}
	if p.Memory < 8*uint32(max(p.Parallelism, 1)) {
		return fmt.Errorf("argon2 memory %d KiB too small for parallelism %d", p.Memory, p.Parallelism)
	}
	if p.Iterations == 0 {
		return fmt.Errorf("argon2 iterations must be at least 1")
	}
	if p.Parallelism == 0 {
		return fmt.Errorf("argon2 parallelism must be at least 1")
	}
	return nil
}

// EncryptedKey is the JSON envelope of an encrypted private scalar.
type EncryptedKey struct {
	Version    int              `json:"version"`
	Cipher     string           `json:"crypto"`
	KDF        EncryptionParams `json:"kdf"`
	Salt       []byte           `json:"salt"`
	Nonce      []byte           `json:"nonce"`
	Ciphertext []byte           `json:"ciphertext"`
}

// deriveKey uses Argon2id to derive a 32-byte encryption key from password and salt.
func deriveKey(password, salt []byte, params EncryptionParams) []byte {
	return argon2.IDKey(
		password,
		salt,
		params.Iterations,
		params.Memory,
		params.Parallelism,
		chacha20poly1305.KeySize,
	)
}

// EncryptKey seals a private key with password using Argon2id + XChaCha20-Poly1305.
func EncryptKey(key *crypto.PrivateKey, password []byte, params EncryptionParams) (*EncryptedKey, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	salt := make([]byte, SaltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}

	dk := deriveKey(password, salt, params)
	defer zero(dk)

	aead, err := chacha20poly1305.NewX(dk)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}

	scalar := key.Serialize()
	defer zero(scalar)

	return &EncryptedKey{
		Version:    KeyFileVersion,
		Cipher:     CipherName,
		KDF:        params,
		Salt:       salt,
		Nonce:      nonce,
		Ciphertext: aead.Seal(nil, nonce, scalar, nil),
	}, nil
}

// DecryptKey opens an envelope produced by EncryptKey.
func DecryptKey(ek *EncryptedKey, password []byte) (*crypto.PrivateKey, error) {
	if ek.Version != KeyFileVersion {
		return nil, fmt.Errorf("unsupported key file version %d", ek.Version)
	}
	if ek.Cipher != CipherName {
		return nil, fmt.Errorf("unsupported key file cipher %q", ek.Cipher)
	}
	if err := ek.KDF.Validate(); err != nil {
		return nil, err
	}
	if len(ek.Salt) != SaltSize {
		return nil, fmt.Errorf("salt must be %d bytes, got %d", SaltSize, len(ek.Salt))
	}
	if len(ek.Nonce) != chacha20poly1305.NonceSizeX {
		return nil, fmt.Errorf("nonce must be %d bytes, got %d", chacha20poly1305.NonceSizeX, len(ek.Nonce))
	}

	dk := deriveKey(password, ek.Salt, ek.KDF)
	defer zero(dk)

	aead, err := chacha20poly1305.NewX(dk)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}

	scalar, err := aead.Open(nil, ek.Nonce, ek.Ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("decrypt: %w", err)
	}
	defer zero(scalar)

	return crypto.PrivateKeyFromBytes(scalar)
}
