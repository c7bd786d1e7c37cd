// Package qnb implements QNB Finansbank's (CardFinans) virtual POS protocol:
// form-encoded hash authentication and a semicolon-pair provisioning
// response.
package qnb

import (
	"fmt"
	"time"

	"vpos-orchestrator/pkg/cryptoutil"
)

// Hash computes QNB's form-3D hash:
//
//	base64(sha1("5" + orderId + amount + okUrl + failUrl + "Auth" + installment + rnd + merchantPassword))
//
// Base64 of the raw digest bytes, the same operator Payten uses for its
// sha512 hash (HashV3 -> cryptoutil.SHA512HashBase64): QNB/Finansbank's
// gateway is a PHP pack('H*', sha1(...)) which collapses back to the raw
// digest bytes, not a base64 of the hex string.
//
// "5" is a fixed protocol-version literal QNB's own integration guide hands
// out unexplained; it is reproduced here verbatim rather than guessed at,
// per the spec's open question on this field.
func Hash(orderID, amount, okURL, failURL, installment, rnd, merchantPassword string) string {
	raw := "5" + orderID + amount + okURL + failURL + "Auth" + installment + rnd + merchantPassword
	return cryptoutil.SHA1Base64(raw)
}

// Rnd reproduces QNB's PHP-microtime-style nonce shape: "0.<frac as 8
// digits> <unix seconds>". Because time-based randomness isn't reproducible
// in tests, callers inject frac/unixSeconds directly.
func Rnd(frac int64, unixSeconds int64) string {
	return fmt.Sprintf("0.%08d %d", frac, unixSeconds)
}

// RndNow builds Rnd from wall-clock time, for production callers.
func RndNow() string {
	now := time.Now()
	return Rnd(int64(now.Nanosecond())/100, now.Unix())
}
