// Package ykb implements Yapı Kredi Bankası's POSNET protocol: ISO-8859-9
// XML with url-encoded xmldata form posts, and the MerchantPacket
// 3DES-CBC callback decryption that is, per spec.md §4.5, this system's
// hardest single step.
package ykb

import (
	"strings"

	"vpos-orchestrator/pkg/cryptoutil"
	pkgerrors "vpos-orchestrator/pkg/errors"
)

// MerchantPacketFields is the ordered field list POSNET's decrypted
// MerchantPacket plaintext carries, semicolon-joined.
type MerchantPacketFields struct {
	MID               string
	TID               string
	Pay               string
	InstCount         string
	XID               string
	TotalPoint        string
	TotalPointAmount  string
	WebURL            string
	HostIP            string
	Port              string
	TdsTxStatus       string
	TdsMdStatus       string
	TdsMdErrorMessage string
	TranTime          string
	Currency          string
}

// minPacketFields is the "≥12 semicolon fields" acceptance threshold from
// spec.md §4.5.
const minPacketFields = 12

// packetKey derives POSNET's MerchantPacket key: the first 24 characters of
// upper(md5_hex(storeKey)), interpreted as UTF-8 bytes (not hex-decoded) —
// an MD5 hex digest is always lowercase-ASCII-safe after uppercasing, so
// this yields exactly 24 ASCII bytes, a valid 3-key 3DES key length.
func packetKey(storeKey string) []byte {
	digest := cryptoutil.MD5HexUpper(storeKey)
	return []byte(digest[:24])
}

// DecryptMerchantPacket decrypts a POSNET MerchantPacket hex string, trying
// the three historical data-extraction variants spec.md §4.5 documents and
// accepting the first whose plaintext both contains semicolons and parses
// into at least minPacketFields fields.
func DecryptMerchantPacket(packetHex, storeKey string) (MerchantPacketFields, error) {
	if len(packetHex) < 16 {
		return MerchantPacketFields{}, pkgerrors.ErrCrypto.WithDetails("reason", "packet shorter than IV")
	}
	ivHex := packetHex[:16]
	remainderHex := packetHex[16:]

	iv, err := cryptoutil.HexDecode(ivHex)
	if err != nil {
		return MerchantPacketFields{}, pkgerrors.ErrCrypto.Wrap(err)
	}
	key := packetKey(storeKey)

	variants := []string{
		remainderHex,                                    // (a) full remainder
		trimTrailingHexChars(remainderHex, 8),            // (b) minus last 8 hex chars
		trimTrailingHexChars(remainderHex, 16),           // (c) minus last 16 hex chars
	}

	for _, v := range variants {
		data, err := cryptoutil.HexDecode(v)
		if err != nil || len(data)%8 != 0 || len(data) == 0 {
			continue
		}
		plain, err := cryptoutil.TDESCBCDecrypt(data, key, iv)
		if err != nil {
			continue
		}
		plain = cryptoutil.StripTrailingPadding(plain)
		fields := strings.Split(string(plain), ";")
		if len(fields) < minPacketFields {
			continue
		}
		return parseFields(fields), nil
	}

	return MerchantPacketFields{}, pkgerrors.ErrCrypto.WithDetails("reason", "no variant produced a parseable MerchantPacket")
}

func trimTrailingHexChars(s string, n int) string {
	if len(s) < n {
		return ""
	}
	return s[:len(s)-n]
}

func parseFields(f []string) MerchantPacketFields {
	get := func(i int) string {
		if i < len(f) {
			return f[i]
		}
		return ""
	}
	return MerchantPacketFields{
		MID: get(0), TID: get(1), Pay: get(2), InstCount: get(3), XID: get(4),
		TotalPoint: get(5), TotalPointAmount: get(6), WebURL: get(7), HostIP: get(8),
		Port: get(9), TdsTxStatus: get(10), TdsMdStatus: get(11),
		TdsMdErrorMessage: get(12), TranTime: get(13), Currency: get(14),
	}
}

// acceptedTdsMdStatuses is YKB's 3-D accepted status set: {1,2,4,9}.
var acceptedTdsMdStatuses = map[string]bool{"1": true, "2": true, "4": true, "9": true}

// AcceptedTdsMdStatus reports whether a tds_md_status value is acceptable.
func AcceptedTdsMdStatus(status string) bool { return acceptedTdsMdStatuses[status] }

// ProvisionMAC computes POSNET's provision MAC:
//
//	hashedStoreKey = sha256_base64(storeKey + ";" + tid)
//	mac = sha256_base64(xid + ";" + amount + ";" + currency + ";" + mid + ";" + hashedStoreKey)
//
// with any "+" in the final string URL-escaped to "%2B".
func ProvisionMAC(storeKey, tid, xid, amount, currency, mid string) string {
	hashedStoreKey := cryptoutil.SHA256Base64(storeKey + ";" + tid)
	mac := cryptoutil.SHA256Base64(xid + ";" + amount + ";" + currency + ";" + mid + ";" + hashedStoreKey)
	return strings.ReplaceAll(mac, "+", "%2B")
}
