// Package leveldb is an embedded archive backend for nodes that run without ClickHouse.
//
// Keys are prefixed with a one-byte table id. Block and transaction keys carry big-endian
// indexes so iteration order matches chain order.
package leveldb

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/AnriiAndrushko/blockchain-aid-tracker-sub000/internal/model"
	"github.com/AnriiAndrushko/blockchain-aid-tracker-sub000/pkg/safe"
)

const (
	tblBlock byte = iota + 1
	tblTransaction
	tblShipment
)

type Store struct {
	db      *leveldb.DB
	metrics Metrics
}

// Open opens or creates the archive database at path.
func Open(path string, metrics Metrics) (*Store, error) {
	if path == "" {
		return nil, errors.New("leveldb path is required")
	}
	db, err := leveldb.OpenFile(path, &opt.Options{Compression: opt.NoCompression})
	if err != nil {
		return nil, fmt.Errorf("open leveldb %s: %w", path, err)
	}
	return &Store{db: db, metrics: metrics}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// InsertBlocks stores block records keyed by index. Re-inserting an index overwrites it.
func (s *Store) InsertBlocks(ctx context.Context, blocks []model.BlockRecord) (err error) {
	start := time.Now()
	defer func() {
		s.metrics.Observe("insert_blocks", len(blocks), err, start)
	}()

	if err = ctx.Err(); err != nil {
		return err
	}
	if len(blocks) == 0 {
		return nil
	}

	batch := new(leveldb.Batch)
	for _, b := range blocks {
		value, err := json.Marshal(b)
		if err != nil {
			return fmt.Errorf("encode block %d: %w", b.Index, err)
		}
		key, err := blockKey(b.Index)
		if err != nil {
			return err
		}
		batch.Put(key, value)
	}
	if err = s.db.Write(batch, nil); err != nil {
		return fmt.Errorf("write blocks: %w", err)
	}
	return nil
}

// InsertTransactions stores transaction records and indexes them by shipment id.
func (s *Store) InsertTransactions(ctx context.Context, txs []model.TransactionRecord) (err error) {
	start := time.Now()
	defer func() {
		s.metrics.Observe("insert_transactions", len(txs), err, start)
	}()

	if err = ctx.Err(); err != nil {
		return err
	}
	if len(txs) == 0 {
		return nil
	}

	batch := new(leveldb.Batch)
	for _, tx := range txs {
		value, err := json.Marshal(tx)
		if err != nil {
			return fmt.Errorf("encode transaction %s: %w", tx.TxID, err)
		}
		key, err := transactionKey(tx.BlockIndex, tx.Position)
		if err != nil {
			return fmt.Errorf("transaction %s: %w", tx.TxID, err)
		}
		batch.Put(key, value)
		if tx.ShipmentID != "" {
			batch.Put(shipmentKey(tx.ShipmentID, key), key)
		}
	}
	if err = s.db.Write(batch, nil); err != nil {
		return fmt.Errorf("write transactions: %w", err)
	}
	return nil
}

// MaxBlockIndex returns the highest stored block index.
func (s *Store) MaxBlockIndex(ctx context.Context) (index int64, ok bool, err error) {
	start := time.Now()
	defer func() {
		s.metrics.Observe("max_block_index", 0, err, start)
	}()

	if err = ctx.Err(); err != nil {
		return 0, false, err
	}

	iter := s.db.NewIterator(util.BytesPrefix([]byte{tblBlock}), nil)
	defer iter.Release()

	if iter.Last() {
		index, err = decodeIndex(iter.Key()[1:])
		if err != nil {
			return 0, false, fmt.Errorf("decode block key: %w", err)
		}
		ok = true
	}
	if err = iter.Error(); err != nil {
		return 0, false, fmt.Errorf("iterate blocks: %w", err)
	}
	return index, ok, nil
}

// ShipmentTransactions returns every archived transaction that references shipmentID,
// in chain order.
func (s *Store) ShipmentTransactions(ctx context.Context, shipmentID string) (txs []model.TransactionRecord, err error) {
	start := time.Now()
	defer func() {
		s.metrics.Observe("shipment_transactions", len(txs), err, start)
	}()

	if err = ctx.Err(); err != nil {
		return nil, err
	}

	iter := s.db.NewIterator(util.BytesPrefix(shipmentPrefix(shipmentID)), nil)
	defer iter.Release()

	for iter.Next() {
		raw, err := s.db.Get(iter.Value(), nil)
		if err != nil {
			return nil, fmt.Errorf("load transaction for shipment %s: %w", shipmentID, err)
		}
		var tx model.TransactionRecord
		if err := json.Unmarshal(raw, &tx); err != nil {
			return nil, fmt.Errorf("decode transaction for shipment %s: %w", shipmentID, err)
		}
		txs = append(txs, tx)
	}
	if err = iter.Error(); err != nil {
		return nil, fmt.Errorf("iterate shipment %s: %w", shipmentID, err)
	}
	return txs, nil
}

func blockKey(index int64) ([]byte, error) {
	u, err := safe.Uint64(index)
	if err != nil {
		return nil, fmt.Errorf("block index: %w", err)
	}
	key := make([]byte, 1, 9)
	key[0] = tblBlock
	return binary.BigEndian.AppendUint64(key, u), nil
}

func transactionKey(index int64, position uint32) ([]byte, error) {
	u, err := safe.Uint64(index)
	if err != nil {
		return nil, fmt.Errorf("block index: %w", err)
	}
	key := make([]byte, 1, 13)
	key[0] = tblTransaction
	key = binary.BigEndian.AppendUint64(key, u)
	return binary.BigEndian.AppendUint32(key, position), nil
}

// shipmentPrefix terminates the id with a zero byte so "s-1" does not match "s-10".
func shipmentPrefix(shipmentID string) []byte {
	key := make([]byte, 0, len(shipmentID)+2)
	key = append(key, tblShipment)
	key = append(key, shipmentID...)
	return append(key, 0)
}

// shipmentKey reuses the transaction key suffix so index entries sort in chain order.
func shipmentKey(shipmentID string, txKey []byte) []byte {
	return append(shipmentPrefix(shipmentID), txKey[1:]...)
}

func decodeIndex(b []byte) (int64, error) {
	if len(b) != 8 {
		return 0, fmt.Errorf("index key length %d", len(b))
	}
	return safe.Int64(binary.BigEndian.Uint64(b))
}
