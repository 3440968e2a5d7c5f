package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"

	"github.com/aead/serpent"
	cerrors "github.com/calvra/cellar/internal/errors"
)

// The pipeline encrypts with two CBC layers over the same master key:
// Serpent-256 on the inside, AES-256 on the outside. Each layer generates a
// fresh random IV and appends it after its ciphertext, so the final layout
// is AES(Serpent(padded) || ivSerpent) || ivAES. Both ciphers use 16-byte
// blocks and 32-byte keys.
const (
	// CipherBlockSize is the block size of both pipeline ciphers.
	CipherBlockSize = 16

	// IVSize is the per-layer initialization vector size.
	IVSize = 16

	// CipherKeySize is the master key size both ciphers require.
	CipherKeySize = 32

	// CiphertextOverhead is the fixed size added beyond the padded
	// plaintext: one IV per layer.
	CiphertextOverhead = 2 * IVSize
)

// Encrypt pads plaintext and applies both cipher layers under key.
// The ciphertext length is the padded plaintext length plus
// CiphertextOverhead.
func Encrypt(key, plaintext []byte) ([]byte, error) {
	padded, err := Pad(plaintext, CipherBlockSize)
	if err != nil {
		return nil, err
	}

	inner, err := encryptLayer(serpent.NewCipher, key, padded)
	if err != nil {
		return nil, err
	}

	return encryptLayer(aes.NewCipher, key, inner)
}

// Decrypt reverses Encrypt. A ciphertext no longer than a single IV
// decrypts to the empty plaintext.
func Decrypt(key, ciphertext []byte) ([]byte, error) {
	if len(ciphertext) <= IVSize {
		return []byte{}, nil
	}

	inner, err := decryptLayer(aes.NewCipher, key, ciphertext)
	if err != nil {
		return nil, err
	}

	padded, err := decryptLayer(serpent.NewCipher, key, inner)
	if err != nil {
		return nil, err
	}
	if len(padded) == 0 {
		return []byte{}, nil
	}

	return Unpad(padded)
}

func encryptLayer(newCipher func([]byte) (cipher.Block, error), key, data []byte) ([]byte, error) {
	block, err := newLayerCipher(newCipher, key)
	if err != nil {
		return nil, err
	}
	if len(data)%CipherBlockSize != 0 {
		return nil, fmt.Errorf("%w: layer input length %d is not block-aligned", cerrors.ErrCipher, len(data))
	}

	iv, err := RandomBytes(IVSize, VeryStrong)
	if err != nil {
		return nil, err
	}

	out := make([]byte, len(data), len(data)+IVSize)
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(out, data)
	return append(out, iv...), nil
}

func decryptLayer(newCipher func([]byte) (cipher.Block, error), key, data []byte) ([]byte, error) {
	if len(data) <= IVSize {
		return []byte{}, nil
	}

	block, err := newLayerCipher(newCipher, key)
	if err != nil {
		return nil, err
	}

	iv := data[len(data)-IVSize:]
	body := data[:len(data)-IVSize]
	if len(body)%CipherBlockSize != 0 {
		return nil, fmt.Errorf("%w: ciphertext length %d is not block-aligned", cerrors.ErrCorrupt, len(body))
	}

	out := make([]byte, len(body))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(out, body)
	return out, nil
}

func newLayerCipher(newCipher func([]byte) (cipher.Block, error), key []byte) (cipher.Block, error) {
	if len(key) != CipherKeySize {
		return nil, fmt.Errorf("%w: master key must be %d bytes, got %d", cerrors.ErrCipher, CipherKeySize, len(key))
	}

	block, err := newCipher(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", cerrors.ErrCipher, err)
	}
	return block, nil
}
