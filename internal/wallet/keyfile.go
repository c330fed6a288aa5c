package wallet

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/Klingon-tech/ethkey/internal/log"
	"github.com/Klingon-tech/ethkey/pkg/crypto"
)

// PasswordFunc supplies the password for an encrypted key file. It is only
// called when the file is encrypted.
type PasswordFunc func() ([]byte, error)

// LoadKeyFile reads a private key from disk. The file holds either 64 hex
// characters (optionally 0x-prefixed) or a JSON EncryptedKey envelope.
func LoadKeyFile(path string, password PasswordFunc) (*crypto.PrivateKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read key file: %w", err)
	}
	defer zero(data)

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		log.Wallet.Debug().Str("path", path).Msg("Key file is encrypted")
		var ek EncryptedKey
		if err := json.Unmarshal(trimmed, &ek); err != nil {
			return nil, fmt.Errorf("parse key file: %w", err)
		}
		if password == nil {
			return nil, fmt.Errorf("key file %s is encrypted and no password source is configured", path)
		}
		pw, err := password()
		if err != nil {
			return nil, fmt.Errorf("read password: %w", err)
		}
		defer zero(pw)
		return DecryptKey(&ek, pw)
	}

	return crypto.ParsePrivateKeyHex(string(trimmed))
}

// MarshalIndent encodes the envelope in the on-disk key file format.
func (ek *EncryptedKey) MarshalIndent() ([]byte, error) {
	return json.MarshalIndent(ek, "", "  ")
}

// FilePassword reads the password from the first line of a file.
func FilePassword(path string) PasswordFunc {
	return func() ([]byte, error) {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		line, _, _ := strings.Cut(string(data), "\n")
		return []byte(strings.TrimRight(line, "\r")), nil
	}
}

// TerminalPassword prompts on stderr and reads the password from fd
// without echo.
func TerminalPassword(fd int) PasswordFunc {
	return func() ([]byte, error) {
		if !term.IsTerminal(fd) {
			return nil, fmt.Errorf("stdin is not a terminal; use --password-file")
		}
		fmt.Fprint(os.Stderr, "Key file password: ")
		pw, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return nil, err
		}
		return pw, nil
	}
}
