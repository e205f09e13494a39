package model

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"slices"
	"time"

	"github.com/AnriiAndrushko/blockchain-aid-tracker-sub000/internal/crypto"
)

// GenesisPreviousHash is the previousHash carried by the genesis block.
const GenesisPreviousHash = "0"

// GenesisTimestamp is fixed so every ledger derives the same genesis hash.
var GenesisTimestamp = time.Unix(0, 0).UTC()

// Block is an immutable link in the chain.
type Block struct {
	Index              int64         `json:"index"`
	Timestamp          time.Time     `json:"timestamp"`
	Hash               string        `json:"hash"`
	PreviousHash       string        `json:"previousHash"`
	Transactions       []Transaction `json:"transactions"`
	ValidatorPublicKey string        `json:"validatorPublicKey"`
	ValidatorSignature string        `json:"validatorSignature"`
}

// NewGenesisBlock returns the hardcoded first block.
func NewGenesisBlock() Block {
	b := Block{
		Index:        0,
		Timestamp:    GenesisTimestamp,
		PreviousHash: GenesisPreviousHash,
		Transactions: []Transaction{},
	}
	b.Hash = b.ComputeHash()
	return b
}

// IsGenesis reports whether b sits at index zero.
func (b Block) IsGenesis() bool {
	return b.Index == 0
}

// ComputeHash returns H(index, timestamp, previousHash, transactions) as hex.
// The validator fields are not part of the hash; the validator signs the hash instead.
func (b Block) ComputeHash() string {
	buf := make([]byte, 0, 256)
	buf = binary.BigEndian.AppendUint64(buf, uint64(b.Index))
	buf = binary.BigEndian.AppendUint64(buf, uint64(b.Timestamp.UTC().UnixNano()))
	buf = appendField(buf, b.PreviousHash)
	buf = binary.BigEndian.AppendUint32(buf, uint32(len(b.Transactions)))
	for _, tx := range b.Transactions {
		buf = appendField(buf, string(tx.SigningBytes()))
		buf = appendField(buf, tx.Signature)
	}
	return crypto.HashHex(buf)
}

// HashBytes decodes the hex hash, the message the validator signs.
func (b Block) HashBytes() ([]byte, error) {
	raw, err := hex.DecodeString(b.Hash)
	if err != nil {
		return nil, fmt.Errorf("%w: block %d hash is not hex: %v", ErrValidation, b.Index, err)
	}
	return raw, nil
}

// VerifyValidatorSignature checks ValidatorSignature over the block hash.
func (b Block) VerifyValidatorSignature() bool {
	if b.ValidatorPublicKey == "" || b.ValidatorSignature == "" {
		return false
	}
	msg, err := b.HashBytes()
	if err != nil {
		return false
	}
	return crypto.Verify(msg, b.ValidatorSignature, b.ValidatorPublicKey)
}

// Clone returns a deep copy so callers cannot alias chain storage.
func (b Block) Clone() Block {
	b.Transactions = slices.Clone(b.Transactions)
	if b.Transactions == nil {
		b.Transactions = []Transaction{}
	}
	return b
}

// CloneBlocks deep-copies a block slice.
func CloneBlocks(blocks []Block) []Block {
	out := make([]Block, len(blocks))
	for i, b := range blocks {
		out[i] = b.Clone()
	}
	return out
}
