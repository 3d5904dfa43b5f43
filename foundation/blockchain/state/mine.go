package state

import (
	"context"
	"errors"
	"fmt"

	"github.com/mockchain/mockchain/foundation/blockchain/database"
)

// ErrNoTransactions is returned when a block is requested to be created
// and there are no transactions in the mempool.
var ErrNoTransactions = errors.New("no transactions in mempool")

// ErrChainInconsistent is returned when a candidate block does not attach to
// the current tip. This signals either a race against another append or
// corruption and is never silently absorbed.
var ErrChainInconsistent = errors.New("block does not attach to the current chain")

// =============================================================================

// MineNewBlock attempts to create a new block that can become the next block
// in the chain. The consensus work runs outside the state lock so API
// traffic is never blocked for the duration of a production attempt.
func (s *State) MineNewBlock(ctx context.Context) (database.Block, error) {
	s.evHandler("state: MineNewBlock: MINING: check mempool count")

	// Are there any transactions in the pool.
	if s.mempool.Count() == 0 {
		return database.Block{}, ErrNoTransactions
	}

	// Snapshot the tip and the pending transactions. The snapshot can go
	// stale while the policy works; AppendBlock catches that below.
	howMany := int(s.genesis.TransPerBlock)
	if howMany == 0 {
		howMany = -1
	}
	trans := s.mempool.PickBest(howMany)
	latestBlock := s.RetrieveLatestBlock()

	s.evHandler("state: MineNewBlock: MINING: generate block: policy[%s]", s.policy.Name())

	block, err := s.policy.GenerateBlock(ctx, s.beneficiaryID, latestBlock.Header.Number+1, latestBlock.Hash, trans)
	if err != nil {
		return database.Block{}, err
	}

	// Just check one more time we were not cancelled.
	if ctx.Err() != nil {
		return database.Block{}, ctx.Err()
	}

	// Self-check the generated block with the same predicate any other
	// node would apply before accepting it.
	if err := s.policy.ValidateBlock(block, latestBlock.Hash); err != nil {
		return database.Block{}, fmt.Errorf("generated block failed self validation: %w", err)
	}

	s.evHandler("state: MineNewBlock: MINING: commit block to chain")

	if err := s.AppendBlock(block); err != nil {
		return database.Block{}, err
	}

	return block, nil
}

// AppendBlock atomically commits a block to the chain: the block is
// appended, its transactions are applied to the balances and removed from
// the mempool, and the beneficiary is credited the mining reward. A block
// that does not follow the current tip is rejected with no state change.
func (s *State) AppendBlock(block database.Block) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tip := s.chain[len(s.chain)-1]

	// The block must be the next in line and linked to our tip. A mismatch
	// means the tip advanced under the producer's snapshot or the block is
	// corrupt; either way the candidate is discarded.
	if block.Header.Number != uint64(len(s.chain)) {
		return fmt.Errorf("%w: block number %d, expected %d", ErrChainInconsistent, block.Header.Number, len(s.chain))
	}

	if block.Header.PrevBlockHash != tip.Hash {
		return fmt.Errorf("%w: previous hash %s, tip hash %s", ErrChainInconsistent, block.Header.PrevBlockHash, tip.Hash)
	}

	if hash := block.ComputeHash(); hash != block.Hash {
		return fmt.Errorf("%w: block hash %s does not match recomputation %s", ErrChainInconsistent, block.Hash, hash)
	}

	s.evHandler("state: AppendBlock: blk[%d]: update accounts and remove from mempool", block.Header.Number)

	// Process the transactions and update the balances. The transaction is
	// evicted from the pool either way since the block carrying it commits.
	for _, tx := range block.Trans {
		s.evHandler("state: AppendBlock: tx[%s] apply and remove", tx)

		if err := s.accounts.ApplyTransaction(tx); err != nil {
			s.evHandler("state: AppendBlock: WARNING: %s", err)
		}

		s.mempool.Delete(tx)
	}

	// Apply the mining reward for this block.
	s.accounts.ApplyMiningReward(block.Header.BeneficiaryID)

	s.chain = append(s.chain, block)

	return nil
}
