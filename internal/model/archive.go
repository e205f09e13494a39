package model

import (
	"encoding/json"
	"time"

	"github.com/AnriiAndrushko/blockchain-aid-tracker-sub000/internal/crypto"
)

// ArchiveBlock is a block flattened into archive rows.
type ArchiveBlock struct {
	Block BlockRecord
	Txs   []TransactionRecord
}

// BlockRecord describes a ledger block stored in the analytics archive.
type BlockRecord struct {
	Index                int64
	Hash                 string
	PreviousHash         string
	Timestamp            time.Time
	ValidatorPublicKey   string
	ValidatorFingerprint string
	TxCount              uint32
}

// TransactionRecord describes a confirmed transaction stored in the analytics archive.
type TransactionRecord struct {
	TxID              string
	BlockIndex        int64
	BlockHash         string
	Position          uint32
	Type              string
	Timestamp         time.Time
	SenderPublicKey   string
	SenderFingerprint string
	ShipmentID        string
	Payload           string
	Signature         string
}

// NewArchiveBlock flattens b. ShipmentID is lifted from JSON payloads that carry one.
func NewArchiveBlock(b Block) ArchiveBlock {
	out := ArchiveBlock{
		Block: BlockRecord{
			Index:                b.Index,
			Hash:                 b.Hash,
			PreviousHash:         b.PreviousHash,
			Timestamp:            b.Timestamp.UTC(),
			ValidatorPublicKey:   b.ValidatorPublicKey,
			ValidatorFingerprint: fingerprintOrEmpty(b.ValidatorPublicKey),
			TxCount:              uint32(len(b.Transactions)),
		},
		Txs: make([]TransactionRecord, 0, len(b.Transactions)),
	}
	for i, tx := range b.Transactions {
		out.Txs = append(out.Txs, TransactionRecord{
			TxID:              tx.ID,
			BlockIndex:        b.Index,
			BlockHash:         b.Hash,
			Position:          uint32(i),
			Type:              tx.Type.String(),
			Timestamp:         tx.Timestamp.UTC(),
			SenderPublicKey:   tx.SenderPublicKey,
			SenderFingerprint: fingerprintOrEmpty(tx.SenderPublicKey),
			ShipmentID:        shipmentID(tx.PayloadData),
			Payload:           tx.PayloadData,
			Signature:         tx.Signature,
		})
	}
	return out
}

func fingerprintOrEmpty(publicKey string) string {
	if publicKey == "" {
		return ""
	}
	return crypto.Fingerprint(publicKey)
}

func shipmentID(payload string) string {
	var p struct {
		ShipmentID string `json:"shipmentId"`
	}
	if err := json.Unmarshal([]byte(payload), &p); err != nil {
		return ""
	}
	return p.ShipmentID
}
