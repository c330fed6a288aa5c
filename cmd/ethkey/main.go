// ethkey derives the secp256k1 public key and Ethereum address of one
// private key.
//
// Usage:
//
//	ethkey                                 Use the built-in example key
//	ethkey --key=<hex>                     Use a key given on the command line
//	ethkey --key-file=<path>               Use a hex or encrypted key file
//	ethkey --mnemonic-file=<path> --index=N
//	ethkey --help                          Show help
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/Klingon-tech/ethkey/config"
	"github.com/Klingon-tech/ethkey/internal/derive"
	"github.com/Klingon-tech/ethkey/internal/log"
	"github.com/Klingon-tech/ethkey/internal/report"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cfg, flags, err := config.Load(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	if flags.Version {
		fmt.Fprintf(stdout, "ethkey %s\n", Version)
		return 0
	}

	log.SetOutput(stderr, cfg.Log.Level, cfg.Log.JSON)

	key, err := loadKey(cfg, os.Stdin)
	if err != nil {
		log.CLI.Error().Err(err).Str("source", string(cfg.Source())).Msg("Key load failed")
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	defer key.Zero()

	res, err := derive.Derive(key)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	log.CLI.Info().Str("address", res.Address.String()).Msg("Derivation complete")

	format := report.FormatText
	if cfg.Output.JSON {
		format = report.FormatJSON
	}
	if err := report.Write(stdout, res, report.Options{Format: format, Checksum: cfg.Output.Checksum}); err != nil {
		fmt.Fprintf(stderr, "Error: write report: %v\n", err)
		return 1
	}
	return 0
}
