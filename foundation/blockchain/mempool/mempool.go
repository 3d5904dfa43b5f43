// Package mempool maintains the pool of verified, not-yet-committed
// transactions awaiting inclusion in a block.
package mempool

import (
	"sync"

	"github.com/mockchain/mockchain/foundation/blockchain/database"
	"github.com/mockchain/mockchain/foundation/blockchain/mempool/selector"
)

// Mempool represents a cache of transactions keyed by their unique hash.
type Mempool struct {
	pool     map[string]database.SignedTx
	mu       sync.RWMutex
	selectFn selector.Func
}

// New constructs a new mempool using the default sort strategy.
func New() (*Mempool, error) {
	return NewWithStrategy(selector.StrategyFIFO)
}

// NewWithStrategy constructs a new mempool with the specified sort strategy.
func NewWithStrategy(strategy string) (*Mempool, error) {
	selectFn, err := selector.Retrieve(strategy)
	if err != nil {
		return nil, err
	}

	mp := Mempool{
		pool:     make(map[string]database.SignedTx),
		selectFn: selectFn,
	}

	return &mp, nil
}

// Count returns the current number of transactions in the pool.
func (mp *Mempool) Count() int {
	mp.mu.RLock()
	defer mp.mu.RUnlock()

	return len(mp.pool)
}

// Upsert adds or replaces a transaction in the mempool.
func (mp *Mempool) Upsert(tx database.SignedTx) int {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	mp.pool[tx.UniqueKey()] = tx

	return len(mp.pool)
}

// Delete removes a transaction from the mempool.
func (mp *Mempool) Delete(tx database.SignedTx) {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	delete(mp.pool, tx.UniqueKey())
}

// Truncate clears all the transactions from the pool.
func (mp *Mempool) Truncate() {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	mp.pool = make(map[string]database.SignedTx)
}

// PickBest uses the configured sort strategy to return a snapshot of the
// transactions for the next block. The pool is not mutated; transactions are
// removed only once their block is committed.
func (mp *Mempool) PickBest(howMany int) []database.SignedTx {
	var txs []database.SignedTx

	mp.mu.RLock()
	{
		txs = make([]database.SignedTx, 0, len(mp.pool))
		for _, tx := range mp.pool {
			txs = append(txs, tx)
		}
	}
	mp.mu.RUnlock()

	return mp.selectFn(txs, howMany)
}
