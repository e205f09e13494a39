package ledger

import (
	"context"
	"crypto/sha256"
	"encoding/binary"

	lru "github.com/hashicorp/golang-lru"

	"github.com/AnriiAndrushko/blockchain-aid-tracker-sub000/internal/crypto"
	"github.com/AnriiAndrushko/blockchain-aid-tracker-sub000/internal/model"
	"github.com/AnriiAndrushko/blockchain-aid-tracker-sub000/pkg/workerpool"
)

type verifyKey [sha256.Size]byte

// verifier memoizes signature checks. Results are a pure function of the key material,
// so cached entries never go stale.
type verifier struct {
	cache   *lru.Cache
	workers int
	metrics Metrics
}

func newVerifier(size, workers int, metrics Metrics) (*verifier, error) {
	v := &verifier{workers: workers, metrics: metrics}
	if size > 0 {
		cache, err := lru.New(size)
		if err != nil {
			return nil, err
		}
		v.cache = cache
	}
	return v, nil
}

func (v *verifier) transaction(tx model.Transaction) bool {
	if tx.Signature == "" || tx.SenderPublicKey == "" {
		return false
	}
	msg := tx.SigningBytes()
	return v.check(cacheKey(msg, tx.Signature, tx.SenderPublicKey), func() bool {
		return crypto.Verify(msg, tx.Signature, tx.SenderPublicKey)
	})
}

func (v *verifier) block(b model.Block) bool {
	if b.ValidatorPublicKey == "" || b.ValidatorSignature == "" {
		return false
	}
	return v.check(cacheKey([]byte(b.Hash), b.ValidatorSignature, b.ValidatorPublicKey), b.VerifyValidatorSignature)
}

// firstInvalid returns the position of the first transaction whose signature fails, or -1.
func (v *verifier) firstInvalid(ctx context.Context, txs []model.Transaction) (int, error) {
	return workerpool.FirstFalse(ctx, v.workers, txs, v.transaction)
}

func (v *verifier) check(key verifyKey, verify func() bool) bool {
	if v.cache == nil {
		return verify()
	}
	if cached, ok := v.cache.Get(key); ok {
		v.metrics.ObserveVerifyCache(true)
		return cached.(bool)
	}
	v.metrics.ObserveVerifyCache(false)
	ok := verify()
	v.cache.Add(key, ok)
	return ok
}

func cacheKey(msg []byte, signature, publicKey string) verifyKey {
	h := sha256.New()
	var n [4]byte
	for _, part := range [][]byte{msg, []byte(signature), []byte(publicKey)} {
		binary.BigEndian.PutUint32(n[:], uint32(len(part)))
		h.Write(n[:])
		h.Write(part)
	}
	var key verifyKey
	h.Sum(key[:0])
	return key
}
