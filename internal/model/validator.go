package model

import "time"

// Validator is an authority allowed to propose blocks.
type Validator struct {
	ID                  string     `json:"id"`
	Name                string     `json:"name"`
	PublicKey           string     `json:"publicKey"`
	EncryptedPrivateKey string     `json:"encryptedPrivateKey"`
	Priority            int        `json:"priority"`
	LastBlockCreatedAt  *time.Time `json:"lastBlockCreatedAt,omitempty"`
	TotalBlocksCreated  int64      `json:"totalBlocksCreated"`
	IsActive            bool       `json:"isActive"`
	CreatedAt           time.Time  `json:"createdAt"`
}

// Clone copies the validator, including the optional timestamp.
func (v Validator) Clone() Validator {
	if v.LastBlockCreatedAt != nil {
		at := *v.LastBlockCreatedAt
		v.LastBlockCreatedAt = &at
	}
	return v
}

// ValidatorStats are the proposer statistics consensus keeps per validator.
type ValidatorStats struct {
	LastBlockCreatedAt *time.Time
	TotalBlocksCreated int64
}
