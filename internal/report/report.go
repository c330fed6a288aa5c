// Package report renders derivation results for the terminal.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/Klingon-tech/ethkey/internal/derive"
)

// Format selects the report encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Options controls what is rendered.
type Options struct {
	Format   Format
	Checksum bool // add the EIP-55 address
}

type jsonReport struct {
	PublicKey       string `json:"public_key"`
	PublicKeyHash   string `json:"public_key_hash"`
	Address         string `json:"address"`
	ChecksumAddress string `json:"checksum_address,omitempty"`
}

// Write renders r to w.
func Write(w io.Writer, r *derive.Result, opts Options) error {
	switch opts.Format {
	case FormatJSON:
		return writeJSON(w, r, opts)
	case FormatText, "":
		return writeText(w, r, opts)
	default:
		return fmt.Errorf("unknown report format %q", opts.Format)
	}
}

func writeText(w io.Writer, r *derive.Result, opts Options) error {
	if _, err := fmt.Fprintf(w, "Public Key: %s\n", r.PublicKey.Hex()); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Public Key Hash: %s\n", r.Hash); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Ethereum Address: %s\n", r.Address); err != nil {
		return err
	}
	if opts.Checksum {
		if _, err := fmt.Fprintf(w, "Checksum Address: %s\n", r.ChecksumAddress()); err != nil {
			return err
		}
	}
	return nil
}

func writeJSON(w io.Writer, r *derive.Result, opts Options) error {
	out := jsonReport{
		PublicKey:     r.PublicKey.Hex(),
		PublicKeyHash: r.Hash.String(),
		Address:       r.Address.String(),
	}
	if opts.Checksum {
		out.ChecksumAddress = r.ChecksumAddress()
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
