package types

import (
	"encoding/hex"
	"fmt"

	"github.com/zksocial/dos-voucher/util"
)

// HexBytes is a byte slice that marshals to and from a hex string prefixed
// with "0x", the on-wire representation for serialized voucher payloads.
type HexBytes []byte

// HexStringToHexBytes decodes a hex string (with or without "0x" prefix)
// into a HexBytes. It panics on malformed input, so it should only be used
// on constants known at compile time.
func HexStringToHexBytes(s string) HexBytes {
	b, err := hex.DecodeString(util.TrimHex(s))
	if err != nil {
		panic(fmt.Sprintf("invalid hex constant %q: %v", s, err))
	}
	return b
}

func (h HexBytes) String() string {
	return "0x" + hex.EncodeToString(h)
}

// MarshalText implements encoding.TextMarshaler so HexBytes round-trips
// through JSON as a hex string instead of a base64 byte array.
func (h HexBytes) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (h *HexBytes) UnmarshalText(text []byte) error {
	b, err := hex.DecodeString(util.TrimHex(string(text)))
	if err != nil {
		return fmt.Errorf("decode hex bytes: %w", err)
	}
	*h = b
	return nil
}
