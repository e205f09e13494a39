// Package model defines the ledger records and their canonical encodings.
package model

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/AnriiAndrushko/blockchain-aid-tracker-sub000/internal/crypto"
)

// TransactionType identifies what a transaction payload describes.
type TransactionType int

const (
	TxShipmentCreated TransactionType = iota + 1
	TxStatusUpdated
	TxDeliveryConfirmed
	TxPaymentReleased
	TxValidatorRegistered
)

var transactionTypeNames = map[TransactionType]string{
	TxShipmentCreated:     "ShipmentCreated",
	TxStatusUpdated:       "StatusUpdated",
	TxDeliveryConfirmed:   "DeliveryConfirmed",
	TxPaymentReleased:     "PaymentReleased",
	TxValidatorRegistered: "ValidatorRegistered",
}

// ParseTransactionType resolves a type by its serialized name.
func ParseTransactionType(name string) (TransactionType, error) {
	for t, n := range transactionTypeNames {
		if n == name {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown transaction type %q", ErrValidation, name)
}

func (t TransactionType) String() string {
	if name, ok := transactionTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TransactionType(%d)", int(t))
}

// Valid reports whether t is one of the known transaction types.
func (t TransactionType) Valid() bool {
	_, ok := transactionTypeNames[t]
	return ok
}

// MarshalText encodes the type by name so snapshots stay readable.
func (t TransactionType) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: unknown transaction type %d", ErrValidation, int(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText decodes a type name.
func (t *TransactionType) UnmarshalText(text []byte) error {
	parsed, err := ParseTransactionType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Transaction is an immutable signed ledger record. PayloadData is opaque to the ledger.
type Transaction struct {
	ID              string          `json:"id"`
	Type            TransactionType `json:"type"`
	Timestamp       time.Time       `json:"timestamp"`
	SenderPublicKey string          `json:"senderPublicKey"`
	PayloadData     string          `json:"payloadData"`
	Signature       string          `json:"signature"`
}

// NewTransaction builds an unsigned transaction with a fresh id.
func NewTransaction(txType TransactionType, senderPublicKey, payload string, now time.Time) Transaction {
	return Transaction{
		ID:              uuid.NewString(),
		Type:            txType,
		Timestamp:       now.UTC(),
		SenderPublicKey: senderPublicKey,
		PayloadData:     payload,
	}
}

// SigningBytes returns the canonical encoding of every field except the signature.
// Fields are length-prefixed so that no two distinct transactions share an encoding.
func (tx Transaction) SigningBytes() []byte {
	buf := make([]byte, 0, 64+len(tx.ID)+len(tx.SenderPublicKey)+len(tx.PayloadData))
	buf = appendField(buf, tx.ID)
	buf = appendField(buf, tx.Type.String())
	buf = appendField(buf, tx.Timestamp.UTC().Format(time.RFC3339Nano))
	buf = appendField(buf, tx.SenderPublicKey)
	buf = appendField(buf, tx.PayloadData)
	return buf
}

// Sign returns a copy of tx carrying a signature made with privateKey.
func (tx Transaction) Sign(privateKey string) (Transaction, error) {
	sig, err := crypto.Sign(tx.SigningBytes(), privateKey)
	if err != nil {
		return Transaction{}, fmt.Errorf("sign transaction %s: %w", tx.ID, err)
	}
	tx.Signature = sig
	return tx, nil
}

// VerifySignature checks the signature against SenderPublicKey.
func (tx Transaction) VerifySignature() bool {
	if tx.Signature == "" || tx.SenderPublicKey == "" {
		return false
	}
	return crypto.Verify(tx.SigningBytes(), tx.Signature, tx.SenderPublicKey)
}

// Digest identifies the exact signed record, including its signature.
// Two retransmissions with the same id and content share a digest.
func (tx Transaction) Digest() string {
	return crypto.HashHex(appendField(tx.SigningBytes(), tx.Signature))
}

// ValidateBasic checks structural fields without touching signatures.
func (tx Transaction) ValidateBasic() error {
	switch {
	case tx.ID == "":
		return fmt.Errorf("%w: transaction id is empty", ErrValidation)
	case !tx.Type.Valid():
		return fmt.Errorf("%w: transaction %s has unknown type %d", ErrValidation, tx.ID, int(tx.Type))
	case tx.SenderPublicKey == "":
		return fmt.Errorf("%w: transaction %s has no sender public key", ErrValidation, tx.ID)
	}
	return nil
}

func appendField(buf []byte, field string) []byte {
	buf = binary.BigEndian.AppendUint32(buf, uint32(len(field)))
	return append(buf, field...)
}
