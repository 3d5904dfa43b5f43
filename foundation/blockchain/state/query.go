package state

import (
	"github.com/mockchain/mockchain/foundation/blockchain/accounts"
	"github.com/mockchain/mockchain/foundation/blockchain/database"
)

// QueryLatest represents a query of the latest block in the chain.
const QueryLatest = ^uint64(0) >> 1

// =============================================================================

// QueryBalance returns the derived balance for the specified account.
// Accounts never seen report zero. Repeated calls with no intervening
// appends return identical results.
func (s *State) QueryBalance(accountID database.AccountID) uint64 {
	return s.accounts.Balance(accountID)
}

// QueryAccounts returns the current balances sorted by account id.
func (s *State) QueryAccounts() []accounts.Record {
	return s.accounts.Records()
}

// QueryMempoolLength returns the current length of the mempool.
func (s *State) QueryMempoolLength() int {
	return s.mempool.Count()
}

// QueryBlocksByNumber returns the set of committed blocks in the inclusive
// number range. Use QueryLatest for either bound to reference the tip.
func (s *State) QueryBlocksByNumber(from uint64, to uint64) []database.Block {
	s.mu.Lock()
	defer s.mu.Unlock()

	latest := s.chain[len(s.chain)-1].Header.Number
	if from == QueryLatest {
		from = latest
		to = latest
	}
	if to == QueryLatest {
		to = latest
	}

	if from > to || from > latest {
		return nil
	}
	if to > latest {
		to = latest
	}

	out := make([]database.Block, 0, to-from+1)
	for i := from; i <= to; i++ {
		out = append(out, s.chain[i])
	}

	return out
}
