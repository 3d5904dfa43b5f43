package state

import (
	"fmt"

	"github.com/mockchain/mockchain/foundation/blockchain/accounts"
)

// Audit cross-checks the incrementally maintained balances against a full
// replay of the committed chain. The two derivations must never diverge; a
// mismatch means the running totals can no longer be trusted. The state lock
// is held for the whole comparison so a concurrent commit cannot land
// between reading the chain and reading the balances.
func (s *State) Audit() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	replayed := accounts.Replay(s.genesis, s.chain[1:])

	if !s.accounts.Equal(replayed) {
		return fmt.Errorf("audit: incremental balances diverge from chain replay")
	}

	return nil
}
