package config

import (
	"fmt"

	"github.com/Klingon-tech/ethkey/internal/log"
)

// Validate checks the config for obvious operator mistakes.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}

	sources := 0
	for _, s := range []string{cfg.Key.Hex, cfg.Key.File, cfg.Key.MnemonicFile} {
		if s != "" {
			sources++
		}
	}
	if sources > 1 {
		return fmt.Errorf("--key, --key-file and --mnemonic-file are mutually exclusive")
	}

	if cfg.Key.PasswordFile != "" && cfg.Key.File == "" {
		return fmt.Errorf("--password-file requires --key-file")
	}
	if cfg.Key.PassphraseFile != "" && cfg.Key.MnemonicFile == "" {
		return fmt.Errorf("--passphrase-file requires --mnemonic-file")
	}
	if cfg.Key.Index != 0 && cfg.Key.MnemonicFile == "" {
		return fmt.Errorf("--index requires --mnemonic-file")
	}
	if cfg.Key.Index > MaxAddressIndex {
		return fmt.Errorf("--index must be in range [0, %d]", MaxAddressIndex)
	}

	if !log.ValidLevel(cfg.Log.Level) {
		return fmt.Errorf("log level must be debug, info, warn, or error")
	}
	return nil
}
