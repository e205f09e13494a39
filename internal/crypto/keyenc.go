package crypto

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"
)

// ErrDecrypt is returned when an encrypted key cannot be opened with the given secret.
var ErrDecrypt = errors.New("decrypt private key")

const (
	kdfTime    = 1
	kdfMemory  = 19 * 1024
	kdfThreads = 1
	saltSize   = 16
)

// EncryptPrivateKey seals privateKey under a key derived from secret.
// Output layout is base64(salt || nonce || ciphertext).
func EncryptPrivateKey(privateKey, secret string) (string, error) {
	if secret == "" {
		return "", errors.New("encryption secret is empty")
	}
	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("read salt: %w", err)
	}
	aead, err := chacha20poly1305.NewX(deriveKey(secret, salt))
	if err != nil {
		return "", fmt.Errorf("init aead: %w", err)
	}
	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("read nonce: %w", err)
	}

	out := make([]byte, 0, saltSize+len(nonce)+len(privateKey)+aead.Overhead())
	out = append(out, salt...)
	out = append(out, nonce...)
	out = aead.Seal(out, nonce, []byte(privateKey), salt)
	return base64.StdEncoding.EncodeToString(out), nil
}

// DecryptPrivateKey opens a value produced by EncryptPrivateKey.
func DecryptPrivateKey(encrypted, secret string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(encrypted)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecrypt, err)
	}
	if len(raw) < saltSize+chacha20poly1305.NonceSizeX {
		return "", fmt.Errorf("%w: ciphertext too short", ErrDecrypt)
	}
	salt := raw[:saltSize]
	nonce := raw[saltSize : saltSize+chacha20poly1305.NonceSizeX]
	sealed := raw[saltSize+chacha20poly1305.NonceSizeX:]

	aead, err := chacha20poly1305.NewX(deriveKey(secret, salt))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecrypt, err)
	}
	plain, err := aead.Open(nil, nonce, sealed, salt)
	if err != nil {
		return "", fmt.Errorf("%w: wrong secret or corrupted key", ErrDecrypt)
	}
	return string(plain), nil
}

func deriveKey(secret string, salt []byte) []byte {
	return argon2.IDKey([]byte(secret), salt, kdfTime, kdfMemory, kdfThreads, chacha20poly1305.KeySize)
}
