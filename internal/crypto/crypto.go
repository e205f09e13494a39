// Package crypto provides hashing, ECDSA P-256 signing and validator key encryption.
//
// Keys and signatures travel as base64 strings: public keys as PKIX DER, private keys as
// PKCS#8 DER and signatures as ASN.1 DER. Every verification fails closed on malformed input.
package crypto

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

var (
	ErrInvalidPublicKey  = errors.New("invalid public key")
	ErrInvalidPrivateKey = errors.New("invalid private key")
)

// Hash returns the SHA-256 digest of data.
func Hash(data []byte) []byte {
	return chainhash.HashB(data)
}

// HashHex returns the hex-encoded SHA-256 digest of data.
func HashHex(data []byte) string {
	return hex.EncodeToString(Hash(data))
}

// GenerateKeyPair creates a P-256 key pair.
func GenerateKeyPair() (publicKey, privateKey string, err error) {
	priv, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return "", "", fmt.Errorf("generate ecdsa key: %w", err)
	}
	privDER, err := x509.MarshalPKCS8PrivateKey(priv)
	if err != nil {
		return "", "", fmt.Errorf("marshal private key: %w", err)
	}
	pub, err := encodePublicKey(&priv.PublicKey)
	if err != nil {
		return "", "", err
	}
	return pub, base64.StdEncoding.EncodeToString(privDER), nil
}

// ParsePrivateKey decodes a base64 PKCS#8 P-256 private key.
func ParsePrivateKey(privateKey string) (*ecdsa.PrivateKey, error) {
	der, err := base64.StdEncoding.DecodeString(privateKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPrivateKey, err)
	}
	key, err := x509.ParsePKCS8PrivateKey(der)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPrivateKey, err)
	}
	ec, ok := key.(*ecdsa.PrivateKey)
	if !ok || ec.Curve != elliptic.P256() {
		return nil, fmt.Errorf("%w: not a P-256 ecdsa key", ErrInvalidPrivateKey)
	}
	return ec, nil
}

// ParsePublicKey decodes a base64 PKIX P-256 public key.
func ParsePublicKey(publicKey string) (*ecdsa.PublicKey, error) {
	der, err := base64.StdEncoding.DecodeString(publicKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
	}
	key, err := x509.ParsePKIXPublicKey(der)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
	}
	ec, ok := key.(*ecdsa.PublicKey)
	if !ok || ec.Curve != elliptic.P256() {
		return nil, fmt.Errorf("%w: not a P-256 ecdsa key", ErrInvalidPublicKey)
	}
	return ec, nil
}

// PublicKeyFromPrivate derives the encoded public key of an encoded private key.
func PublicKeyFromPrivate(privateKey string) (string, error) {
	priv, err := ParsePrivateKey(privateKey)
	if err != nil {
		return "", err
	}
	return encodePublicKey(&priv.PublicKey)
}

// Sign signs SHA-256(data) with privateKey.
func Sign(data []byte, privateKey string) (string, error) {
	priv, err := ParsePrivateKey(privateKey)
	if err != nil {
		return "", err
	}
	return SignWithKey(data, priv)
}

// SignWithKey signs SHA-256(data) with an already parsed key.
func SignWithKey(data []byte, priv *ecdsa.PrivateKey) (string, error) {
	digest := sha256.Sum256(data)
	sig, err := ecdsa.SignASN1(rand.Reader, priv, digest[:])
	if err != nil {
		return "", fmt.Errorf("ecdsa sign: %w", err)
	}
	return base64.StdEncoding.EncodeToString(sig), nil
}

// Verify reports whether signature is valid for data under publicKey.
func Verify(data []byte, signature, publicKey string) bool {
	pub, err := ParsePublicKey(publicKey)
	if err != nil {
		return false
	}
	sig, err := base64.StdEncoding.DecodeString(signature)
	if err != nil || len(sig) == 0 {
		return false
	}
	digest := sha256.Sum256(data)
	return ecdsa.VerifyASN1(pub, digest[:], sig)
}

// Fingerprint returns a short, log-friendly identifier for a public key.
func Fingerprint(publicKey string) string {
	der, err := base64.StdEncoding.DecodeString(publicKey)
	if err != nil || len(der) == 0 {
		return "invalid"
	}
	return hex.EncodeToString(btcutil.Hash160(der))
}

func encodePublicKey(pub *ecdsa.PublicKey) (string, error) {
	der, err := x509.MarshalPKIXPublicKey(pub)
	if err != nil {
		return "", fmt.Errorf("marshal public key: %w", err)
	}
	return base64.StdEncoding.EncodeToString(der), nil
}
