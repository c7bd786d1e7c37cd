package ykb

import (
	"crypto/cipher"
	"crypto/des"
	"strings"
	"testing"

	"vpos-orchestrator/pkg/cryptoutil"
)

func encryptPacket(t *testing.T, storeKey string, iv []byte, plaintext []byte) string {
	t.Helper()
	key := packetKey(storeKey)
	block, err := des.NewTripleDESCipher(key)
	if err != nil {
		t.Fatalf("des.NewTripleDESCipher: %v", err)
	}
	// pad with 0x00 bytes (POSNET's loose padding convention) to a block boundary
	padded := append([]byte{}, plaintext...)
	for len(padded)%8 != 0 {
		padded = append(padded, 0x00)
	}
	ct := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ct, padded)
	return cryptoutil.HexEncode(iv) + cryptoutil.HexEncode(ct)
}

func TestDecryptMerchantPacketFullRemainderVariant(t *testing.T) {
	storeKey := "10,10,10,10,10,10,10,10"
	iv := []byte("01234567")
	plaintext := []byte("7000679;30691298;;0;00000000000000000042;0;0;weburl;1.2.3.4;443;1;1;;202403141516;TL")

	packetHex := encryptPacket(t, storeKey, iv, plaintext)
	fields, err := DecryptMerchantPacket(packetHex, storeKey)
	if err != nil {
		t.Fatalf("DecryptMerchantPacket: %v", err)
	}
	if fields.MID != "7000679" || fields.TID != "30691298" {
		t.Fatalf("unexpected fields: %+v", fields)
	}
	if !AcceptedTdsMdStatus(fields.TdsMdStatus) {
		t.Errorf("tds_md_status %q should be accepted", fields.TdsMdStatus)
	}
}

// TestDecryptMerchantPacketToleratesTrailingFrameJunk models the S2
// scenario from spec.md §8: historical bank-side framing differences can
// append extra bytes after the real MerchantPacket payload, and decryption
// must still recover the leading fields via one of the three accepted
// data-extraction variants.
func TestDecryptMerchantPacketToleratesTrailingFrameJunk(t *testing.T) {
	storeKey := "10,10,10,10,10,10,10,10"
	iv := []byte("01234567")
	plaintext := []byte("7000679;30691298;;0;00000000000000000042;0;0;;;;1;;202403141516;TL")

	aligned := encryptPacket(t, storeKey, iv, plaintext)
	framed := aligned + strings.Repeat("ab", 8)

	fields, err := DecryptMerchantPacket(framed, storeKey)
	if err != nil {
		t.Fatalf("DecryptMerchantPacket: %v", err)
	}
	if fields.MID != "7000679" {
		t.Fatalf("unexpected fields: %+v", fields)
	}
}

func TestDecryptMerchantPacketTooShortIsCryptoError(t *testing.T) {
	_, err := DecryptMerchantPacket("abcd", "storeKey")
	if err == nil {
		t.Fatal("expected crypto_error for a packet shorter than the IV")
	}
}

func TestProvisionMACEscapesPlus(t *testing.T) {
	mac := ProvisionMAC("storeKey", "tid", "xid", "150.00", "TL", "mid")
	if strings.Contains(mac, "+") {
		t.Errorf("MAC %q should have '+' escaped to %%2B", mac)
	}
}
