package cryptoutil

import (
	"bytes"
	"crypto/cipher"
	"crypto/des"
	"testing"
)

func TestFieldCipherIdempotence(t *testing.T) {
	c := NewFieldCipher("test-master-secret")

	plaintexts := []string{"4282209004348016", "", "storeKey-12345678", "a"}
	for _, p := range plaintexts {
		enc1, err := c.Encrypt(p)
		if err != nil {
			t.Fatalf("Encrypt(%q): %v", p, err)
		}
		enc2, err := c.Encrypt(enc1)
		if err != nil {
			t.Fatalf("Encrypt(already-encrypted %q): %v", p, err)
		}
		if enc1 != enc2 {
			t.Errorf("encrypt(encrypt(p)) != encrypt(p) for %q", p)
		}

		dec1, err := c.Decrypt(enc1)
		if err != nil {
			t.Fatalf("Decrypt(%q): %v", enc1, err)
		}
		if dec1 != p {
			t.Errorf("decrypt(encrypt(%q)) = %q, want %q", p, dec1, p)
		}

		// decrypt of already-clear value is a no-op
		dec2, err := c.Decrypt(p)
		if err != nil {
			t.Fatalf("Decrypt(clear %q): %v", p, err)
		}
		if dec2 != p {
			t.Errorf("decrypt(clear %q) = %q, want unchanged", p, dec2)
		}
	}
}

func TestFieldCipherMalformedCiphertext(t *testing.T) {
	c := NewFieldCipher("secret")
	if _, err := c.Decrypt("00:zz"); err == nil {
		t.Error("expected crypto_error for malformed ciphertext")
	}
}

func TestSHA512HexUpperIsDeterministic(t *testing.T) {
	got := SHA512HexUpper("hello")
	want := SHA512HexUpper("hello")
	if got != want {
		t.Fatal("SHA512HexUpper is not deterministic")
	}
	if len(got) != 128 {
		t.Fatalf("expected 128 hex chars, got %d", len(got))
	}
}

func TestTDESCBCRoundTrip(t *testing.T) {
	key := []byte("0123456789abcdef01234567") // 24 bytes, not a real key
	if len(key) != 24 {
		t.Fatalf("test setup: key must be 24 bytes, got %d", len(key))
	}
	iv := []byte("abcdefgh") // 8 bytes
	plain := []byte("12345678deadbeef")

	// encrypt via manual CBC using the same stdlib primitives the decrypt
	// path exercises, to produce a known ciphertext for the round trip.
	block, err := des.NewTripleDESCipher(key)
	if err != nil {
		t.Fatalf("des.NewTripleDESCipher: %v", err)
	}
	enc := make([]byte, len(plain))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(enc, plain)

	dec, err := TDESCBCDecrypt(enc, key, iv)
	if err != nil {
		t.Fatalf("TDESCBCDecrypt: %v", err)
	}
	if !bytes.Equal(dec, plain) {
		t.Fatalf("round trip mismatch: got %x want %x", dec, plain)
	}
}
