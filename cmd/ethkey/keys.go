package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/Klingon-tech/ethkey/config"
	"github.com/Klingon-tech/ethkey/internal/derive"
	"github.com/Klingon-tech/ethkey/internal/log"
	"github.com/Klingon-tech/ethkey/internal/wallet"
	"github.com/Klingon-tech/ethkey/pkg/crypto"
)

// loadKey resolves the single private key selected by cfg. The scalar is
// never logged.
func loadKey(cfg *config.Config, stdin *os.File) (*crypto.PrivateKey, error) {
	source := cfg.Source()
	log.Keys.Debug().Str("source", string(source)).Msg("Loading private key")

	switch source {
	case config.SourceHex:
		log.Keys.Warn().Msg("Private key passed on the command line; prefer --key-file")
		return parseHex(cfg.Key.Hex)

	case config.SourceFile:
		pw := wallet.TerminalPassword(int(stdin.Fd()))
		if cfg.Key.PasswordFile != "" {
			pw = wallet.FilePassword(cfg.Key.PasswordFile)
		}
		key, err := wallet.LoadKeyFile(cfg.Key.File, pw)
		if err != nil {
			return nil, &derive.StageError{Stage: derive.StageParse, Err: err}
		}
		return key, nil

	case config.SourceMnemonic:
		mnemonic, err := wallet.ReadMnemonicFile(cfg.Key.MnemonicFile)
		if err != nil {
			return nil, &derive.StageError{Stage: derive.StageParse, Err: err}
		}
		passphrase := ""
		if cfg.Key.PassphraseFile != "" {
			data, err := os.ReadFile(cfg.Key.PassphraseFile)
			if err != nil {
				return nil, &derive.StageError{Stage: derive.StageParse, Err: fmt.Errorf("read passphrase file: %w", err)}
			}
			passphrase = strings.TrimRight(string(data), "\r\n")
		}
		log.Wallet.Debug().Uint64("index", cfg.Key.Index).Msg("Deriving m/44'/60'/0'/0/index")
		key, err := wallet.KeyFromMnemonic(mnemonic, passphrase, uint32(cfg.Key.Index))
		if err != nil {
			return nil, &derive.StageError{Stage: derive.StageParse, Err: err}
		}
		log.Wallet.Info().
			Uint64("index", cfg.Key.Index).
			Str("address", key.Address().String()).
			Msg("Derived key from mnemonic")
		return key, nil

	default:
		return parseHex(config.ExampleKey)
	}
}

func parseHex(s string) (*crypto.PrivateKey, error) {
	key, err := crypto.ParsePrivateKeyHex(s)
	if err != nil {
		return nil, &derive.StageError{Stage: derive.StageParse, Err: err}
	}
	return key, nil
}
