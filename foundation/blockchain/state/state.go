// Package state is the core API for the blockchain and implements all the
// business rules and processing.
package state

import (
	"sync"
	"time"

	"github.com/mockchain/mockchain/foundation/blockchain/accounts"
	"github.com/mockchain/mockchain/foundation/blockchain/consensus"
	"github.com/mockchain/mockchain/foundation/blockchain/database"
	"github.com/mockchain/mockchain/foundation/blockchain/genesis"
	"github.com/mockchain/mockchain/foundation/blockchain/mempool"
)

// EventHandler defines a function that is called when events
// occur in the processing of blocks.
type EventHandler func(v string, args ...any)

// Worker interface represents the behavior required to be implemented by any
// package providing support for the block production loop.
type Worker interface {
	Shutdown()
	SignalStartMining()
	SignalCancelMining() (done func())
}

// =============================================================================

// Config represents the configuration required to start
// the blockchain node.
type Config struct {
	BeneficiaryID  database.AccountID
	Genesis        genesis.Genesis
	Policy         consensus.Policy
	SelectStrategy string
	EvHandler      EventHandler
}

// State manages the blockchain: the committed block sequence, the pending
// transaction pool, and the balances derived from the chain. The API path
// and the production path both mutate it only through guarded entry points.
type State struct {
	mu sync.Mutex

	beneficiaryID database.AccountID
	evHandler     EventHandler

	genesis  genesis.Genesis
	policy   consensus.Policy
	mempool  *mempool.Mempool
	accounts *accounts.Accounts
	chain    []database.Block

	Worker Worker
}

// New constructs a new blockchain for data management. The chain is seeded
// with a genesis block and the genesis balances. The consensus policy is
// bound here and never changes for the lifetime of the State.
func New(cfg Config) (*State, error) {

	// Build a safe event handler function for use.
	ev := func(v string, args ...any) {
		if cfg.EvHandler != nil {
			cfg.EvHandler(v, args...)
		}
	}

	// Construct a mempool with the specified sort strategy.
	mpool, err := mempool.NewWithStrategy(cfg.SelectStrategy)
	if err != nil {
		return nil, err
	}

	// Synthesize the genesis block. Its previous hash is the zero sentinel
	// and its hash is computed normally.
	date := cfg.Genesis.Date
	if date.IsZero() {
		date = time.Now()
	}
	genesisBlock := database.NewGenesisBlock(date)

	state := State{
		beneficiaryID: cfg.BeneficiaryID,
		evHandler:     ev,

		genesis:  cfg.Genesis,
		policy:   cfg.Policy,
		mempool:  mpool,
		accounts: accounts.New(cfg.Genesis),
		chain:    []database.Block{genesisBlock},
	}

	ev("state: New: chain started: policy[%s] genesis[%s]", cfg.Policy.Name(), genesisBlock.Hash)

	// The Worker is not set here. The call to worker.Run will assign itself
	// and start everything up and running for the node.

	return &state, nil
}

// Shutdown cleanly brings the node down.
func (s *State) Shutdown() error {
	if s.Worker != nil {
		s.Worker.Shutdown()
	}

	return nil
}
