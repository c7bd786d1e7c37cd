// Package cryptoutil implements the hash chains, symmetric ciphers, and
// encodings the acquirer wire protocols depend on: SHA-1/256/512, MD5,
// Triple-DES, AES field encryption, and base64/hex.
package cryptoutil

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base64"
	"encoding/hex"
	"strings"
)

// SHA1HexUpper returns the uppercase hex SHA-1 digest of s.
func SHA1HexUpper(s string) string {
	sum := sha1.Sum([]byte(s))
	return strings.ToUpper(hex.EncodeToString(sum[:]))
}

// SHA1Base64 computes SHA-1 and base64-encodes the raw digest bytes
// directly (no intervening hex step) — iyzico's IYZWS auth header and QNB's
// form-3D hash both use this operator.
func SHA1Base64(s string) string {
	sum := sha1.Sum([]byte(s))
	return base64.StdEncoding.EncodeToString(sum[:])
}

// SHA256Base64 computes SHA-256 and renders the hex digest as base64 — the
// YKB POSNET MAC idiom: bytes -> hex-bytes -> base64.
func SHA256Base64(s string) string {
	sum := sha256.Sum256([]byte(s))
	hexStr := hex.EncodeToString(sum[:])
	return base64.StdEncoding.EncodeToString([]byte(hexStr))
}

// SHA512HexUpper returns the uppercase hex SHA-512 digest of s.
func SHA512HexUpper(s string) string {
	sum := sha512.Sum512([]byte(s))
	return strings.ToUpper(hex.EncodeToString(sum[:]))
}

// SHA512HashBase64 computes SHA-512 of hashVal and base64-encodes the raw
// digest bytes directly (no intervening hex step) — the Payten v3 hash
// operator used by payten.HashV3.
func SHA512HashBase64(hashVal string) string {
	sum := sha512.Sum512([]byte(hashVal))
	return base64.StdEncoding.EncodeToString(sum[:])
}

// MD5HexUpper returns the uppercase hex MD5 digest of s.
func MD5HexUpper(s string) string {
	sum := md5.Sum([]byte(s))
	return strings.ToUpper(hex.EncodeToString(sum[:]))
}
