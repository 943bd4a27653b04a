package domain

import "github.com/btcsuite/btcd/btcutil/base58"

// Memo wire format after base58check decoding: one tag byte, one length
// byte, then the payload padded with zero bytes to a fixed width. Tag 1
// marks a human-readable string memo.
const memoStringTag = 0x01

// DecodeMemo turns a raw on-chain memo into its human-readable form. The
// canonical empty memo decodes to "". Anything that does not decode as a
// string memo is passed through unchanged so the caller can still render it.
func DecodeMemo(raw string) string {
	if raw == "" {
		return ""
	}

	payload, _, err := base58.CheckDecode(raw)
	if err != nil {
		return raw
	}
	if len(payload) < 2 || payload[0] != memoStringTag {
		return raw
	}

	n := int(payload[1])
	if n == 0 {
		return ""
	}
	if n > len(payload)-2 {
		return raw
	}
	return string(payload[2 : 2+n])
}
