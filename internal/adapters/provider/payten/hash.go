// Package payten implements the Payten/NestPay protocol shared by the
// Halkbank/İş Bankası/Ziraat/TEB/ING/Şeker-licensed virtual POS gateways:
// form-encoded 3-D form hashing (hash v3) and XML CC5Request provisioning.
package payten

import (
	"sort"
	"strings"

	"vpos-orchestrator/pkg/cryptoutil"
)

// escape applies Payten's hash-v3 value escaping: backslash doubled first,
// then pipe escaped, so the "|" field separator can never be forged by a
// field value that happens to contain one.
func escape(v string) string {
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `|`, `\|`)
	return v
}

// HashV3 computes Payten's hash-v3: sort fields' keys case-insensitively,
// excluding "hash" and "encoding"; append each escaped value followed by
// "|"; append the escaped store key; base64-encode the SHA-512 digest of
// the resulting string.
func HashV3(fields map[string]string, storeKey string) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		lower := strings.ToLower(k)
		if lower == "hash" || lower == "encoding" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return strings.ToLower(keys[i]) < strings.ToLower(keys[j])
	})

	var b strings.Builder
	for _, k := range keys {
		b.WriteString(escape(fields[k]))
		b.WriteByte('|')
	}
	b.WriteString(escape(storeKey))

	return cryptoutil.SHA512HashBase64(b.String())
}
