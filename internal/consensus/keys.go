package consensus

import (
	"context"
	"fmt"

	"github.com/AnriiAndrushko/blockchain-aid-tracker-sub000/internal/crypto"
	"github.com/AnriiAndrushko/blockchain-aid-tracker-sub000/internal/model"
)

// DecryptingKeyProvider opens the validator's stored key with the shared secret.
type DecryptingKeyProvider struct{}

func (DecryptingKeyProvider) PrivateKey(_ context.Context, v model.Validator, secret string) (string, error) {
	if v.EncryptedPrivateKey == "" {
		return "", fmt.Errorf("%w: validator %s has no stored key", model.ErrAuthorization, v.ID)
	}
	key, err := crypto.DecryptPrivateKey(v.EncryptedPrivateKey, secret)
	if err != nil {
		return "", fmt.Errorf("%w: validator %s: %w", model.ErrAuthorization, v.ID, err)
	}
	return key, nil
}

// StaticKeyProvider serves keys injected at startup, for example from a secret manager.
// The secret argument is ignored.
type StaticKeyProvider struct {
	byPublicKey map[string]string
}

// NewStaticKeyProvider indexes already-decrypted private keys by their public key.
func NewStaticKeyProvider(privateKeys ...string) (*StaticKeyProvider, error) {
	p := &StaticKeyProvider{byPublicKey: make(map[string]string, len(privateKeys))}
	for i, priv := range privateKeys {
		pub, err := crypto.PublicKeyFromPrivate(priv)
		if err != nil {
			return nil, fmt.Errorf("private key %d: %w", i, err)
		}
		p.byPublicKey[pub] = priv
	}
	return p, nil
}

func (p *StaticKeyProvider) PrivateKey(_ context.Context, v model.Validator, _ string) (string, error) {
	key, ok := p.byPublicKey[v.PublicKey]
	if !ok {
		return "", fmt.Errorf("%w: no key loaded for validator %s", model.ErrAuthorization, v.ID)
	}
	return key, nil
}
