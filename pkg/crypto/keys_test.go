package crypto

import (
	"bytes"
	"encoding/hex"
	"errors"
	"strings"
	"sync"
	"testing"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"

	"github.com/Klingon-tech/ethkey/pkg/types"
)

const (
	goldenPrivHex = "f8f8a2f43c8376ccb0871305060d7b27b0554d2cc72bccf41b2705608452f315"
	goldenPubHex  = "046e145ccef1033dea239875dd00dfb4fee6e3348b84985c92f103444683bae07b" +
		"83b5c38e5e2b0c8529d7fa3f64d46daa1ece2d9ac14cab9477d042c84c32ccd0"

	// curveOrderHex is n for secp256k1.
	curveOrderHex = "fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141"
	// generatorHex is the uncompressed encoding of G.
	generatorHex = "0479be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798" +
		"483ada7726a3c4655da4fbfc0e1108a8fd17b448a68554199c47d08ffb10d4b8"
)

func scalarHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("bad hex: %v", err)
	}
	return b
}

func scalarFromUint(v uint64) []byte {
	b := make([]byte, PrivateKeySize)
	for i := PrivateKeySize - 1; v > 0; i-- {
		b[i] = byte(v)
		v >>= 8
	}
	return b
}

func TestPublicKey_Golden(t *testing.T) {
	key, err := ParsePrivateKeyHex(goldenPrivHex)
	if err != nil {
		t.Fatalf("ParsePrivateKeyHex() error: %v", err)
	}

	pub := key.PublicKey()
	if pub.Hex() != goldenPubHex {
		t.Errorf("PublicKey() = %s, want %s", pub.Hex(), goldenPubHex)
	}
	if !IsOnCurve(pub) {
		t.Error("derived public key should be on the curve")
	}
}

func TestPublicKey_Generator(t *testing.T) {
	pub, err := DerivePublicKey(scalarFromUint(1))
	if err != nil {
		t.Fatalf("DerivePublicKey(1) error: %v", err)
	}
	if pub.Hex() != generatorHex {
		t.Errorf("1·G = %s, want %s", pub.Hex(), generatorHex)
	}
}

func TestPublicKey_CurveOrderMinusOne(t *testing.T) {
	// (n-1)·G = -G: same x as G, y negated.
	nMinus1 := scalarHex(t, "fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364140")
	pub, err := DerivePublicKey(nMinus1)
	if err != nil {
		t.Fatalf("DerivePublicKey(n-1) error: %v", err)
	}
	want := "0479be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798" +
		"b7c52588d95c3b9aa25b0403f1eef75702e84bb7597aabe663b82f6f04ef2777"
	if pub.Hex() != want {
		t.Errorf("(n-1)·G = %s, want %s", pub.Hex(), want)
	}
}

func TestPublicKey_CoordinatePadding(t *testing.T) {
	// 122·G has a y coordinate whose most significant byte is zero.
	pub, err := DerivePublicKey(scalarFromUint(122))
	if err != nil {
		t.Fatalf("DerivePublicKey(122) error: %v", err)
	}

	want := "04139ae46a1133f1f9d23f25efba0f6dd87bf7ddaf568a5fb9e0a3bfda73176237" +
		"00995e555c8aabd263fd238833a12188b8a5ffbeb480ba0e3e6ec481a8991472"
	if pub.Hex() != want {
		t.Errorf("122·G = %s, want %s", pub.Hex(), want)
	}
	if pub.Y()[0] != 0x00 {
		t.Fatalf("expected leading zero byte in y, got %#02x", pub.Y()[0])
	}

	s := pub.Hex()
	if len(s) != 130 {
		t.Fatalf("Hex() length = %d, want 130", len(s))
	}
	if x := s[2:66]; len(x) != 64 {
		t.Errorf("x hex length = %d, want 64", len(x))
	}
	if y := s[66:]; len(y) != 64 || !strings.HasPrefix(y, "00") {
		t.Errorf("y hex = %s, want 64 chars starting with 00", y)
	}
}

func TestPublicKey_Deterministic(t *testing.T) {
	k1, err := ParsePrivateKeyHex(goldenPrivHex)
	if err != nil {
		t.Fatalf("ParsePrivateKeyHex() error: %v", err)
	}
	k2, err := ParsePrivateKeyHex(goldenPrivHex)
	if err != nil {
		t.Fatalf("ParsePrivateKeyHex() error: %v", err)
	}

	if k1.PublicKey() != k1.PublicKey() {
		t.Error("same key should derive the same public key twice")
	}
	if k1.PublicKey() != k2.PublicKey() {
		t.Error("equal keys should derive equal public keys")
	}
}

func TestPrivateKeyFromBytes_InvalidScalar(t *testing.T) {
	n := scalarHex(t, curveOrderHex)
	nPlus1 := scalarHex(t, "fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364142")

	tests := []struct {
		name string
		data []byte
	}{
		{"zero", make([]byte, PrivateKeySize)},
		{"curve order", n},
		{"curve order plus one", nPlus1},
		{"all ones", bytes.Repeat([]byte{0xff}, PrivateKeySize)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := PrivateKeyFromBytes(tt.data)
			if !errors.Is(err, ErrInvalidScalar) {
				t.Errorf("PrivateKeyFromBytes() error = %v, want ErrInvalidScalar", err)
			}
			_, err = DerivePublicKey(tt.data)
			if !errors.Is(err, ErrInvalidScalar) {
				t.Errorf("DerivePublicKey() error = %v, want ErrInvalidScalar", err)
			}
		})
	}
}

func TestPrivateKeyFromBytes_InvalidLength(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", []byte{}},
		{"too short", make([]byte, 16)},
		{"too long", make([]byte, 64)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := PrivateKeyFromBytes(tt.data)
			if !errors.Is(err, ErrInvalidKeyFormat) {
				t.Errorf("PrivateKeyFromBytes() error = %v, want ErrInvalidKeyFormat", err)
			}
		})
	}
}

func TestParsePrivateKeyHex(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{name: "plain", input: goldenPrivHex},
		{name: "0x prefix", input: "0x" + goldenPrivHex},
		{name: "uppercase", input: strings.ToUpper(goldenPrivHex)},
		{name: "whitespace", input: "  " + goldenPrivHex + "\n"},
		{name: "empty", input: "", wantErr: ErrInvalidKeyFormat},
		{name: "doubled prefix", input: "0x0X" + goldenPrivHex, wantErr: ErrInvalidKeyFormat},
		{name: "prefix only", input: "0x", wantErr: ErrInvalidKeyFormat},
		{name: "short", input: goldenPrivHex[:62], wantErr: ErrInvalidKeyFormat},
		{name: "long", input: goldenPrivHex + "00", wantErr: ErrInvalidKeyFormat},
		{name: "not hex", input: strings.Repeat("x", 64), wantErr: ErrInvalidKeyFormat},
		{name: "zero", input: strings.Repeat("0", 64), wantErr: ErrInvalidScalar},
		{name: "curve order", input: curveOrderHex, wantErr: ErrInvalidScalar},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, err := ParsePrivateKeyHex(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ParsePrivateKeyHex() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParsePrivateKeyHex() error: %v", err)
			}
			if hex.EncodeToString(key.Serialize()) != goldenPrivHex {
				t.Errorf("Serialize() = %x, want %s", key.Serialize(), goldenPrivHex)
			}
		})
	}
}

// randomKey draws a key from go-ethereum so the comparison below does not
// depend on our own parsing.
func randomKey(t *testing.T) *PrivateKey {
	t.Helper()
	ref, err := ethcrypto.GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey() error: %v", err)
	}
	key, err := PrivateKeyFromBytes(ethcrypto.FromECDSA(ref))
	if err != nil {
		t.Fatalf("PrivateKeyFromBytes() error: %v", err)
	}
	return key
}

func TestPrivateKeyFromBytes_Roundtrip(t *testing.T) {
	key := randomKey(t)
	if len(key.Serialize()) != PrivateKeySize {
		t.Errorf("Serialize() length = %d, want %d", len(key.Serialize()), PrivateKeySize)
	}
	restored, err := PrivateKeyFromBytes(key.Serialize())
	if err != nil {
		t.Fatalf("PrivateKeyFromBytes() error: %v", err)
	}
	if restored.PublicKey() != key.PublicKey() {
		t.Error("restored key should have same public key")
	}
}

func TestPublicKey_MatchesGoEthereum(t *testing.T) {
	for i := 0; i < 16; i++ {
		key := randomKey(t)

		ref, err := ethcrypto.ToECDSA(key.Serialize())
		if err != nil {
			t.Fatalf("ToECDSA() error: %v", err)
		}
		want := ethcrypto.FromECDSAPub(&ref.PublicKey)
		pub := key.PublicKey()
		if !bytes.Equal(pub[:], want) {
			t.Fatalf("PublicKey() = %x, go-ethereum = %x", pub[:], want)
		}
		if key.Address() != types.Address(ethcrypto.PubkeyToAddress(ref.PublicKey)) {
			t.Fatalf("Address() = %s, go-ethereum = %s", key.Address(), ethcrypto.PubkeyToAddress(ref.PublicKey).Hex())
		}
	}
}

func TestPublicKey_Concurrent(t *testing.T) {
	scalars := [][]byte{
		scalarFromUint(1),
		scalarFromUint(2),
		scalarFromUint(122),
		scalarHex(t, goldenPrivHex),
	}
	want := make([]types.PublicKey, len(scalars))
	for i, s := range scalars {
		pub, err := DerivePublicKey(s)
		if err != nil {
			t.Fatalf("DerivePublicKey() error: %v", err)
		}
		want[i] = pub
	}

	var wg sync.WaitGroup
	errs := make(chan string, 64)
	for g := 0; g < 16; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			i := g % len(scalars)
			pub, err := DerivePublicKey(scalars[i])
			if err != nil {
				errs <- err.Error()
				return
			}
			if pub != want[i] {
				errs <- "concurrent derivation mismatch for " + hex.EncodeToString(scalars[i])
			}
		}(g)
	}
	wg.Wait()
	close(errs)

	for e := range errs {
		t.Error(e)
	}
}

func TestZero(t *testing.T) {
	key, err := ParsePrivateKeyHex(goldenPrivHex)
	if err != nil {
		t.Fatalf("ParsePrivateKeyHex() error: %v", err)
	}
	key.Zero()
	if !bytes.Equal(key.Serialize(), make([]byte, PrivateKeySize)) {
		t.Error("Zero() should clear the scalar")
	}
}

func TestIsOnCurve(t *testing.T) {
	pub, err := types.HexToPublicKey(goldenPubHex)
	if err != nil {
		t.Fatalf("HexToPublicKey() error: %v", err)
	}
	if !IsOnCurve(pub) {
		t.Error("golden key should be on the curve")
	}

	bad := pub
	bad[64] ^= 0x01
	if IsOnCurve(bad) {
		t.Error("tampered y should not be on the curve")
	}

	wrongPrefix := pub
	wrongPrefix[0] = 0x02
	if IsOnCurve(wrongPrefix) {
		t.Error("non-uncompressed prefix should be rejected")
	}
}
