// Package wallet resolves a single private key from a BIP-39 mnemonic or
// from a key file on disk.
package wallet

import (
	"fmt"
	"os"
	"strings"

	"github.com/tyler-smith/go-bip39"
)

// NormalizeMnemonic lowercases the phrase and collapses runs of whitespace
// to single spaces.
func NormalizeMnemonic(mnemonic string) string {
	return strings.Join(strings.Fields(strings.ToLower(mnemonic)), " ")
}

// ValidateMnemonic checks if a mnemonic is valid per BIP-39
// (correct word count, valid words, valid checksum).
func ValidateMnemonic(mnemonic string) bool {
	return bip39.IsMnemonicValid(NormalizeMnemonic(mnemonic))
}

// ReadMnemonicFile reads and validates a mnemonic stored as text.
func ReadMnemonicFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read mnemonic file: %w", err)
	}
	if !ValidateMnemonic(string(data)) {
		return "", fmt.Errorf("mnemonic in %s is not valid BIP-39", path)
	}
	return NormalizeMnemonic(string(data)), nil
}

// SeedSize is the length of a derived seed in bytes (512 bits).
const SeedSize = 64

// SeedFromMnemonic derives a 512-bit seed from a mnemonic and optional passphrase
// using PBKDF2-SHA512 as specified in BIP-39. The mnemonic is normalized first.
func SeedFromMnemonic(mnemonic, passphrase string) ([]byte, error) {
	if !ValidateMnemonic(mnemonic) {
		return nil, fmt.Errorf("invalid mnemonic")
	}
	mnemonic = NormalizeMnemonic(mnemonic)
	seed, err := bip39.NewSeedWithErrorChecking(mnemonic, passphrase)
	if err != nil {
		return nil, fmt.Errorf("derive seed: %w", err)
	}
	return seed, nil
}
