package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"
)

const keySize = 32

var ErrCiphertextTooShort = errors.New("ciphertext too short")

// Cipher seals text fields with AES-256-GCM and derives HMAC-SHA256 blind
// indexes so sealed values can still be looked up by equality.
type Cipher struct {
	aead     cipher.AEAD
	indexKey []byte
}

// NewCipher takes two independent 32-byte keys.
func NewCipher(sealKey, indexKey []byte) (*Cipher, error) {
	if len(sealKey) != keySize {
		return nil, fmt.Errorf("seal key must be %d bytes, got %d", keySize, len(sealKey))
	}
	if len(indexKey) != keySize {
		return nil, fmt.Errorf("index key must be %d bytes, got %d", keySize, len(indexKey))
	}
	block, err := aes.NewCipher(sealKey)
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return &Cipher{aead: aead, indexKey: append([]byte(nil), indexKey...)}, nil
}

// ParseKey decodes a hex-encoded 32-byte key.
func ParseKey(s string) ([]byte, error) {
	k, err := hex.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("decode key: %w", err)
	}
	if len(k) != keySize {
		return nil, fmt.Errorf("key must be %d bytes, got %d", keySize, len(k))
	}
	return k, nil
}

// Seal returns base64(nonce || ciphertext). Empty input stays empty.
func (c *Cipher) Seal(plaintext string) (string, error) {
	if plaintext == "" {
		return "", nil
	}
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}
	sealed := c.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

func (c *Cipher) Open(sealed string) (string, error) {
	if sealed == "" {
		return "", nil
	}
	data, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil {
		return "", err
	}
	n := c.aead.NonceSize()
	if len(data) < n {
		return "", ErrCiphertextTooShort
	}
	plain, err := c.aead.Open(nil, data[:n], data[n:], nil)
	if err != nil {
		return "", err
	}
	return string(plain), nil
}

// BlindIndex is deterministic for equal inputs and reveals nothing else.
func (c *Cipher) BlindIndex(plaintext string) string {
	if plaintext == "" {
		return ""
	}
	h := hmac.New(sha256.New, c.indexKey)
	h.Write([]byte(plaintext))
	return base64.StdEncoding.EncodeToString(h.Sum(nil))
}
