package state

import (
	"github.com/mockchain/mockchain/foundation/blockchain/database"
	"github.com/mockchain/mockchain/foundation/blockchain/genesis"
)

// RetrieveGenesis returns a copy of the genesis information.
func (s *State) RetrieveGenesis() genesis.Genesis {
	return s.genesis
}

// RetrieveConsensus returns the name of the active consensus policy.
func (s *State) RetrieveConsensus() string {
	return s.policy.Name()
}

// RetrieveBeneficiary returns the account credited with mining rewards on
// this node.
func (s *State) RetrieveBeneficiary() database.AccountID {
	return s.beneficiaryID
}

// RetrieveLatestBlock returns a copy of the current tip of the chain.
func (s *State) RetrieveLatestBlock() database.Block {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.chain[len(s.chain)-1]
}

// RetrieveChainLength returns the number of committed blocks including
// genesis.
func (s *State) RetrieveChainLength() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.chain)
}

// RetrieveMempool returns a copy of the uncommitted transactions in the
// selector's ordering.
func (s *State) RetrieveMempool() []database.SignedTx {
	return s.mempool.PickBest(-1)
}
