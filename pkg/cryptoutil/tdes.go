package cryptoutil

import (
	"crypto/cipher"
	"crypto/des"

	pkgerrors "vpos-orchestrator/pkg/errors"
)

// TDESECBDecrypt decrypts data with a 24-byte (3-key) Triple-DES key in ECB
// mode, auto-padding off. Callers strip any PKCS-style padding themselves —
// POSNET framing has historically not agreed with textbook PKCS#7 padding.
func TDESECBDecrypt(data, key24 []byte) ([]byte, error) {
	if len(data) == 0 || len(data)%des.BlockSize != 0 {
		return nil, pkgerrors.ErrCrypto.Wrap(errNotBlockAligned)
	}
	block, err := des.NewTripleDESCipher(key24)
	if err != nil {
		return nil, pkgerrors.ErrCrypto.Wrap(err)
	}
	out := make([]byte, len(data))
	bs := block.BlockSize()
	for i := 0; i < len(data); i += bs {
		block.Decrypt(out[i:i+bs], data[i:i+bs])
	}
	return out, nil
}

// TDESCBCDecrypt decrypts data with a 24-byte 3-key Triple-DES key and an
// 8-byte IV in CBC mode, auto-padding off — the YKB POSNET MerchantPacket
// cipher.
func TDESCBCDecrypt(data, key24, iv8 []byte) ([]byte, error) {
	if len(data) == 0 || len(data)%des.BlockSize != 0 {
		return nil, pkgerrors.ErrCrypto.Wrap(errNotBlockAligned)
	}
	if len(iv8) != des.BlockSize {
		return nil, pkgerrors.ErrCrypto.Wrap(errBadIVLength)
	}
	block, err := des.NewTripleDESCipher(key24)
	if err != nil {
		return nil, pkgerrors.ErrCrypto.Wrap(err)
	}
	out := make([]byte, len(data))
	mode := cipher.NewCBCDecrypter(block, iv8)
	mode.CryptBlocks(out, data)
	return out, nil
}

// StripTrailingPadding removes trailing bytes in the 0x00-0x08 range, the
// loose padding convention POSNET's MerchantPacket plaintext uses instead of
// strict PKCS#7.
func StripTrailingPadding(b []byte) []byte {
	end := len(b)
	for end > 0 && b[end-1] <= 0x08 {
		end--
	}
	return b[:end]
}

var (
	errNotBlockAligned = errNotAligned{}
	errBadIVLength     = errBadIV{}
)

type errNotAligned struct{}

func (errNotAligned) Error() string { return "cryptoutil: data is not a multiple of the block size" }

type errBadIV struct{}

func (errBadIV) Error() string { return "cryptoutil: initialization vector has the wrong length" }
