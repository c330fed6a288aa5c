// Package derive runs the private key → public key → address pipeline.
package derive

import (
	"fmt"

	"github.com/Klingon-tech/ethkey/internal/log"
	"github.com/Klingon-tech/ethkey/pkg/crypto"
	"github.com/Klingon-tech/ethkey/pkg/types"
)

// Stage names a step of the pipeline.
type Stage string

const (
	StageParse   Stage = "parse"
	StagePubKey  Stage = "pubkey"
	StageAddress Stage = "address"
)

// StageError records which stage failed. It unwraps to the underlying
// error so errors.Is works against the crypto sentinels.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s stage: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// Result holds everything derived from one private key.
type Result struct {
	PublicKey types.PublicKey `json:"public_key"`
	Hash      types.Hash      `json:"public_key_hash"`
	Address   types.Address   `json:"address"`
}

// ChecksumAddress returns the EIP-55 form of the address.
func (r *Result) ChecksumAddress() string {
	return crypto.ChecksumAddress(r.Address)
}

// Derive computes the public key, its Keccak-256 digest and the address.
func Derive(key *crypto.PrivateKey) (*Result, error) {
	if key == nil {
		return nil, &StageError{Stage: StagePubKey, Err: crypto.ErrInvalidScalar}
	}
	defer log.Benchmark("derive")()

	pub := key.PublicKey()
	log.Keys.Debug().Str("pubkey", pub.Hex()).Msg("Derived public key")

	return FromPublicKey(pub[:])
}

// FromPublicKey runs only the address stage on an encoded public key.
// Encodings from outside the pipeline must also be a point on the curve.
func FromPublicKey(pub []byte) (*Result, error) {
	addr, h, err := crypto.AddressFromPubKey(pub)
	if err != nil {
		return nil, &StageError{Stage: StageAddress, Err: err}
	}

	r := &Result{Hash: h, Address: addr}
	copy(r.PublicKey[:], pub)
	if !crypto.IsOnCurve(r.PublicKey) {
		return nil, &StageError{
			Stage: StageAddress,
			Err:   fmt.Errorf("%w: point is not on secp256k1", crypto.ErrInvalidEncoding),
		}
	}
	log.Address.Debug().Str("address", addr.String()).Msg("Derived address")
	return r, nil
}

// DeriveHex parses a hex private key and derives from it. The parsed key
// is zeroed before returning.
func DeriveHex(s string) (*Result, error) {
	key, err := crypto.ParsePrivateKeyHex(s)
	if err != nil {
		return nil, &StageError{Stage: StageParse, Err: err}
	}
	defer key.Zero()
	return Derive(key)
}
