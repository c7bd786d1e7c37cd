// Package garanti implements the Garanti BBVA GVPS ("version 512") 3-D
// Secure and provision protocol: SHA-1 password hash feeding a SHA-512 hash
// chain, ISO-8859-9 XML, cents-integer amounts.
package garanti

import "vpos-orchestrator/pkg/cryptoutil"

// passwordHash computes Garanti's "hp": upper(sha1(password + "0" + terminalId)).
func passwordHash(password, terminalID string) string {
	return cryptoutil.SHA1HexUpper(password + "0" + terminalID)
}

// form3DHash computes the 3-D Secure form hash:
// upper(sha512(terminalId + orderId + amount + currency + successUrl + errorUrl + "sales" + installment + storeKey + hp))
func form3DHash(terminalID, orderID, amount, currency, successURL, errorURL, installment, storeKey, hp string) string {
	return cryptoutil.SHA512HexUpper(terminalID + orderID + amount + currency + successURL + errorURL + "sales" + installment + storeKey + hp)
}

// provisionHash computes the provision hash:
// upper(sha512(orderId + terminalId + cardNumber + amount + currency + hp))
// cardNumber is empty when completing a 3-D-verified sale.
func provisionHash(orderID, terminalID, cardNumber, amount, currency, hp string) string {
	return cryptoutil.SHA512HexUpper(orderID + terminalID + cardNumber + amount + currency + hp)
}
