package cryptoutil

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"strings"

	pkgerrors "vpos-orchestrator/pkg/errors"
)

// fieldSentinel separates the hex IV from the hex ciphertext in every
// encrypted-at-rest field (credentials, card fields). Its presence after a
// non-empty hex prefix (see HasSentinel) is how Encrypt/Decrypt detect
// whether a value is already ciphertext.
const fieldSentinel = ":"

// FieldCipher encrypts/decrypts individual entity fields with AES-256-CBC,
// deriving its key from a configured master secret so the key is the same
// across process restarts. Each Encrypt call draws a fresh random IV.
type FieldCipher struct {
	key [32]byte
}

// NewFieldCipher derives a 256-bit key from masterSecret via SHA-256, so any
// non-empty configured secret yields a usable key regardless of its length.
func NewFieldCipher(masterSecret string) *FieldCipher {
	return &FieldCipher{key: sha256.Sum256([]byte(masterSecret))}
}

// Encrypt returns "<iv-hex>:<ciphertext-hex>". If clear already carries the
// sentinel it is returned unchanged (idempotence: encrypt(encrypt(p)) ==
// encrypt(p)).
func (c *FieldCipher) Encrypt(clear string) (string, error) {
	if HasSentinel(clear) {
		return clear, nil
	}
	block, err := aes.NewCipher(c.key[:])
	if err != nil {
		return "", pkgerrors.ErrCrypto.Wrap(err)
	}
	plaintext := pkcs7Pad([]byte(clear), block.BlockSize())
	iv := make([]byte, block.BlockSize())
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return "", pkgerrors.ErrCrypto.Wrap(err)
	}
	ciphertext := make([]byte, len(plaintext))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, plaintext)
	return hex.EncodeToString(iv) + fieldSentinel + hex.EncodeToString(ciphertext), nil
}

// Decrypt reverses Encrypt. If cipherOrClear carries no sentinel it is
// returned unchanged (idempotence: decrypt(encrypt(p)) == p, decrypt(p) ==
// p for already-clear values).
func (c *FieldCipher) Decrypt(cipherOrClear string) (string, error) {
	if !HasSentinel(cipherOrClear) {
		return cipherOrClear, nil
	}
	parts := strings.SplitN(cipherOrClear, fieldSentinel, 2)
	ivBytes, err := hex.DecodeString(parts[0])
	if err != nil {
		return "", pkgerrors.ErrCrypto.Wrap(err)
	}
	ctBytes, err := hex.DecodeString(parts[1])
	if err != nil {
		return "", pkgerrors.ErrCrypto.Wrap(err)
	}
	block, err := aes.NewCipher(c.key[:])
	if err != nil {
		return "", pkgerrors.ErrCrypto.Wrap(err)
	}
	if len(ivBytes) != block.BlockSize() || len(ctBytes) == 0 || len(ctBytes)%block.BlockSize() != 0 {
		return "", pkgerrors.ErrCrypto.Wrap(errMalformedCiphertext{})
	}
	plaintext := make([]byte, len(ctBytes))
	cipher.NewCBCDecrypter(block, ivBytes).CryptBlocks(plaintext, ctBytes)
	plaintext, err = pkcs7Unpad(plaintext)
	if err != nil {
		return "", pkgerrors.ErrCrypto.Wrap(err)
	}
	return string(plaintext), nil
}

// HasSentinel reports whether v is already in "<iv-hex>:<ciphertext-hex>"
// ciphertext form.
func HasSentinel(v string) bool {
	idx := strings.Index(v, fieldSentinel)
	if idx <= 0 {
		return false
	}
	_, err := hex.DecodeString(v[:idx])
	return err == nil
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	padLen := blockSize - len(data)%blockSize
	padding := make([]byte, padLen)
	for i := range padding {
		padding[i] = byte(padLen)
	}
	return append(data, padding...)
}

func pkcs7Unpad(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, errMalformedCiphertext{}
	}
	padLen := int(data[len(data)-1])
	if padLen == 0 || padLen > len(data) {
		return nil, errMalformedCiphertext{}
	}
	return data[:len(data)-padLen], nil
}

type errMalformedCiphertext struct{}

func (errMalformedCiphertext) Error() string { return "cryptoutil: malformed ciphertext" }
