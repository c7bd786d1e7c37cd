// Package iyzico implements iyzico's JSON-over-HTTPS 3-D Secure payment API:
// the IYZWS authentication header, a PKI-string request signature, and a
// base64-encoded 3-D Secure HTML form handed back whole.
package iyzico

import (
	"vpos-orchestrator/pkg/codec"
	"vpos-orchestrator/pkg/cryptoutil"
)

// AuthHeader computes iyzico's legacy IYZWS authorization header value:
//
//	IYZWS <apiKey>:<hash>
//	hash = base64(sha1(apiKey + randomString + secretKey + pkiString(body)))
func AuthHeader(apiKey, secretKey, randomString string, body map[string]interface{}) string {
	hash := cryptoutil.SHA1Base64(apiKey + randomString + secretKey + codec.PKIString(body))
	return "IYZWS " + apiKey + ":" + hash
}
