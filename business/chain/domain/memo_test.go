package domain

import (
	"testing"

	"github.com/btcsuite/btcd/btcutil/base58"
)

const memoVersionByte = 0x14

// encodeMemo builds an on-chain memo the way the protocol does: tag byte,
// length byte, payload zero-padded to 32 bytes, base58check over the lot.
func encodeMemo(t *testing.T, s string) string {
	t.Helper()
	if len(s) > 32 {
		t.Fatalf("memo payload too long: %d", len(s))
	}
	payload := make([]byte, 34)
	payload[0] = memoStringTag
	payload[1] = byte(len(s))
	copy(payload[2:], s)
	return base58.CheckEncode(payload, memoVersionByte)
}

func TestDecodeMemo(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "empty input", raw: "", want: ""},
		{name: "plain memo", raw: encodeMemo(t, "hello"), want: "hello"},
		{name: "memo with punctuation", raw: encodeMemo(t, `pay "rent", thanks`), want: `pay "rent", thanks`},
		{name: "zero-length memo", raw: encodeMemo(t, ""), want: ""},
		{name: "max-length memo", raw: encodeMemo(t, "abcdefghijklmnopqrstuvwxyz012345"), want: "abcdefghijklmnopqrstuvwxyz012345"},
		{name: "undecodable passes through", raw: "not-base58-0OIl", want: "not-base58-0OIl"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DecodeMemo(tt.raw); got != tt.want {
				t.Errorf("DecodeMemo(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestDecodeMemo_CanonicalEmpty(t *testing.T) {
	// The well-known all-zero-payload memo every wallet attaches by default.
	const canonical = "E4YM2vTHhWEg66xpj52JErHUBU4pZ1yageL4TVDDpTTSsv8mK6YaH"
	if got := DecodeMemo(canonical); got != "" {
		t.Errorf("canonical empty memo decoded to %q, want empty", got)
	}
}

func TestDecodeMemo_NonStringTag(t *testing.T) {
	payload := make([]byte, 34)
	payload[0] = 0x00 // digest tag, not a string memo
	payload[1] = 4
	copy(payload[2:], "data")
	raw := base58.CheckEncode(payload, memoVersionByte)

	if got := DecodeMemo(raw); got != raw {
		t.Errorf("non-string memo should pass through raw, got %q", got)
	}
}
