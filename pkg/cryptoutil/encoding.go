package cryptoutil

import (
	"encoding/base64"
	"encoding/hex"
)

// Base64Encode/Base64Decode wrap the standard encoding used across every
// adapter's hash and MAC construction.
func Base64Encode(b []byte) string { return base64.StdEncoding.EncodeToString(b) }

func Base64Decode(s string) ([]byte, error) { return base64.StdEncoding.DecodeString(s) }

// HexEncode/HexDecode wrap lowercase hex, the wire shape every adapter's
// ciphertext sentinel and MerchantPacket framing uses.
func HexEncode(b []byte) string { return hex.EncodeToString(b) }

func HexDecode(s string) ([]byte, error) { return hex.DecodeString(s) }
