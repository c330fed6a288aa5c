package config

import (
	"flag"
	"fmt"
	"io"
	"strings"
)

// Flags holds parsed command-line flags.
type Flags struct {
	// Commands
	Help    bool
	Version bool

	// Key source
	Key            string
	KeyFile        string
	PasswordFile   string
	MnemonicFile   string
	PassphraseFile string
	Index          uint64

	// Output
	JSON     bool
	Checksum bool

	// Logging
	LogLevel string
	LogJSON  bool

	// Remaining args
	Args []string
}

// ParseFlags parses command-line arguments (without the program name).
// Usage text goes to out. flag.ErrHelp is returned for -h/--help.
func ParseFlags(args []string, out io.Writer) (*Flags, error) {
	f := &Flags{}
	fs := flag.NewFlagSet("ethkey", flag.ContinueOnError)
	fs.SetOutput(out)

	// Commands
	fs.BoolVar(&f.Help, "help", false, "Show help message")
	fs.BoolVar(&f.Help, "h", false, "Show help message (shorthand)")
	fs.BoolVar(&f.Version, "version", false, "Show version information")
	fs.BoolVar(&f.Version, "v", false, "Show version (shorthand)")

	// Key source
	fs.StringVar(&f.Key, "key", "", "Private key as 64 hex characters (visible in the process list)")
	fs.StringVar(&f.KeyFile, "key-file", "", "File holding a hex or encrypted private key")
	fs.StringVar(&f.PasswordFile, "password-file", "", "File holding the key file password")
	fs.StringVar(&f.MnemonicFile, "mnemonic-file", "", "File holding a BIP-39 mnemonic")
	fs.StringVar(&f.PassphraseFile, "passphrase-file", "", "File holding the BIP-39 passphrase")
	fs.Uint64Var(&f.Index, "index", 0, "Address index for m/44'/60'/0'/0/<index>")

	// Output
	fs.BoolVar(&f.JSON, "json", false, "Print the report as JSON")
	fs.BoolVar(&f.Checksum, "checksum", false, "Also print the EIP-55 checksummed address")

	// Logging
	fs.StringVar(&f.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.BoolVar(&f.LogJSON, "log-json", false, "Output logs as JSON")

	fs.Usage = func() {
		printUsage(out, fs)
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if f.Help {
		fs.Usage()
		return nil, flag.ErrHelp
	}

	f.Args = fs.Args()
	if len(f.Args) > 0 {
		return nil, fmt.Errorf("unexpected argument %q", f.Args[0])
	}
	return f, nil
}

// ApplyFlags applies command-line flags to a Config struct.
func ApplyFlags(cfg *Config, f *Flags) {
	// Key source
	if f.Key != "" {
		cfg.Key.Hex = f.Key
	}
	if f.KeyFile != "" {
		cfg.Key.File = f.KeyFile
	}
	if f.PasswordFile != "" {
		cfg.Key.PasswordFile = f.PasswordFile
	}
	if f.MnemonicFile != "" {
		cfg.Key.MnemonicFile = f.MnemonicFile
	}
	if f.PassphraseFile != "" {
		cfg.Key.PassphraseFile = f.PassphraseFile
	}
	if f.Index != 0 {
		cfg.Key.Index = f.Index
	}

	// Output
	if f.JSON {
		cfg.Output.JSON = true
	}
	if f.Checksum {
		cfg.Output.Checksum = true
	}

	// Logging
	if f.LogLevel != "" {
		cfg.Log.Level = strings.ToLower(f.LogLevel)
	}
	if f.LogJSON {
		cfg.Log.JSON = true
	}
}

// Load parses args and returns a validated config.
func Load(args []string, out io.Writer) (*Config, *Flags, error) {
	f, err := ParseFlags(args, out)
	if err != nil {
		return nil, nil, err
	}
	cfg := Default()
	ApplyFlags(cfg, f)
	if err := Validate(cfg); err != nil {
		return nil, f, err
	}
	return cfg, f, nil
}

func printUsage(out io.Writer, fs *flag.FlagSet) {
	fmt.Fprintf(out, `ethkey - derive a secp256k1 public key and Ethereum address

Usage:
  ethkey [options]

With no key option the built-in example key is used.

Options:
`)
	fs.PrintDefaults()
}
