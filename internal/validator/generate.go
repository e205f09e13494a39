package validator

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/AnriiAndrushko/blockchain-aid-tracker-sub000/internal/crypto"
	"github.com/AnriiAndrushko/blockchain-aid-tracker-sub000/internal/model"
)

// Generate creates an active validator with a fresh key pair. The private key is stored
// encrypted under secret and also returned in clear for one-time export.
func Generate(name string, priority int, secret string, now time.Time) (model.Validator, string, error) {
	pub, priv, err := crypto.GenerateKeyPair()
	if err != nil {
		return model.Validator{}, "", err
	}
	sealed, err := crypto.EncryptPrivateKey(priv, secret)
	if err != nil {
		return model.Validator{}, "", fmt.Errorf("encrypt validator key: %w", err)
	}
	return model.Validator{
		ID:                  uuid.NewString(),
		Name:                name,
		PublicKey:           pub,
		EncryptedPrivateKey: sealed,
		Priority:            priority,
		IsActive:            true,
		CreatedAt:           now.UTC(),
	}, priv, nil
}
