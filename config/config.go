// Package config handles ethkey configuration.
//
// Configuration comes only from command-line flags layered over defaults.
// There is no config file and no environment lookup.
package config

// ExampleKey is the private key used when no key source is given.
const ExampleKey = "f8f8a2f43c8376ccb0871305060d7b27b0554d2cc72bccf41b2705608452f315"

// MaxAddressIndex is the largest non-hardened BIP-32 child index.
const MaxAddressIndex = 1<<31 - 1

// KeySource identifies where the private key comes from.
type KeySource string

const (
	SourceDefault  KeySource = "default"  // built-in ExampleKey
	SourceHex      KeySource = "hex"      // --key
	SourceFile     KeySource = "file"     // --key-file
	SourceMnemonic KeySource = "mnemonic" // --mnemonic-file
)

// Config holds runtime configuration for one invocation.
type Config struct {
	Key    KeyConfig
	Output OutputConfig
	Log    LogConfig
}

// KeyConfig holds private key source settings. At most one of Hex, File
// and MnemonicFile may be set.
type KeyConfig struct {
	Hex            string
	File           string
	PasswordFile   string // for encrypted key files; prompt on a terminal when empty
	MnemonicFile   string
	PassphraseFile string // optional BIP-39 passphrase
	Index          uint64 // m/44'/60'/0'/0/<Index>
}

// OutputConfig holds report settings.
type OutputConfig struct {
	JSON     bool
	Checksum bool
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string
	JSON  bool
}

// Source reports which key source the config selects.
func (c *Config) Source() KeySource {
	switch {
	case c.Key.Hex != "":
		return SourceHex
	case c.Key.File != "":
		return SourceFile
	case c.Key.MnemonicFile != "":
		return SourceMnemonic
	default:
		return SourceDefault
	}
}
