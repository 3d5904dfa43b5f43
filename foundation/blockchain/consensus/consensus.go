// Package consensus provides the closed set of policies that produce and
// validate blocks for the chain.
package consensus

import (
	"context"
	"fmt"

	"github.com/mockchain/mockchain/foundation/blockchain/database"
	"github.com/mockchain/mockchain/foundation/blockchain/genesis"
)

// The closed set of consensus policy types. The set is fixed and small, so
// selection is a simple dispatch and not an open-ended plugin mechanism.
const (
	TypePOW = "pow"
	TypePOS = "pos"
)

// EventHandler defines a function that is called when events occur during
// block production.
type EventHandler func(v string, args ...any)

// Policy represents the behavior required of every consensus variant. A
// policy produces blocks that satisfy its own validity predicate and can
// independently re-check any block against that predicate. Exactly one
// policy is active for a chain's entire lifetime.
type Policy interface {

	// GenerateBlock returns a block for the specified chain position that
	// already satisfies ValidateBlock. Production honors ctx cancellation so
	// work built from a stale chain snapshot can be abandoned.
	GenerateBlock(ctx context.Context, beneficiaryID database.AccountID, number uint64, prevBlockHash string, trans []database.SignedTx) (database.Block, error)

	// ValidateBlock is a pure predicate: it recomputes the block hash,
	// checks the chain linkage, and applies the policy's own rules. It
	// never mutates state.
	ValidateBlock(block database.Block, prevBlockHash string) error

	// Name identifies the policy for logging.
	Name() string
}

// New constructs the consensus policy selected by the genesis configuration.
func New(policyType string, gen genesis.Genesis, ev EventHandler) (Policy, error) {
	if ev == nil {
		ev = func(v string, args ...any) {}
	}

	switch policyType {
	case TypePOW:

		// The difficulty comes from a user-editable genesis file, so the
		// bounds check belongs here rather than in the mining goroutine.
		if uint(gen.Difficulty) > MaxDifficulty {
			return nil, fmt.Errorf("difficulty %d exceeds the maximum of %d", gen.Difficulty, MaxDifficulty)
		}
		return NewProofOfWork(uint(gen.Difficulty), ev), nil

	case TypePOS:
		pos := NewProofOfStake(gen.MinStake, ev)
		for addr, stake := range gen.Stakes {
			pos.RegisterStake(database.AccountID(addr), stake)
		}
		return pos, nil
	}

	return nil, fmt.Errorf("consensus policy %q does not exist", policyType)
}
