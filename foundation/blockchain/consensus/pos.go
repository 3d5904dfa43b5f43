package consensus

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"
	"sync"

	"github.com/mockchain/mockchain/foundation/blockchain/database"
)

// ErrNoValidators is returned when no registered validator meets the
// minimum stake threshold.
var ErrNoValidators = errors.New("no validator meets the minimum stake")

// ProofOfStake produces blocks by selecting a validator whose stake meets
// the minimum threshold. There is no hash puzzle; a block is sealed by
// computing its hash once.
type ProofOfStake struct {
	minStake   uint64
	validators map[database.AccountID]uint64
	mu         sync.RWMutex
	evHandler  EventHandler
}

// NewProofOfStake constructs a ProofOfStake policy with the specified
// validator-eligibility threshold.
func NewProofOfStake(minStake uint64, ev EventHandler) *ProofOfStake {
	return &ProofOfStake{
		minStake:   minStake,
		validators: make(map[database.AccountID]uint64),
		evHandler:  ev,
	}
}

// Name identifies the policy for logging.
func (pos *ProofOfStake) Name() string {
	return "proof of stake"
}

// RegisterStake adds stake for the specified validator, accumulating with
// any stake already registered.
func (pos *ProofOfStake) RegisterStake(validatorID database.AccountID, stake uint64) {
	pos.mu.Lock()
	defer pos.mu.Unlock()

	pos.validators[validatorID] += stake
}

// Stake returns the registered stake for the specified validator.
func (pos *ProofOfStake) Stake(validatorID database.AccountID) uint64 {
	pos.mu.RLock()
	defer pos.mu.RUnlock()

	return pos.validators[validatorID]
}

// GenerateBlock returns a sealed block for the specified chain position. If
// the requested beneficiary holds enough stake it produces the block,
// otherwise an eligible validator is selected at random weighted by stake.
func (pos *ProofOfStake) GenerateBlock(ctx context.Context, beneficiaryID database.AccountID, number uint64, prevBlockHash string, trans []database.SignedTx) (database.Block, error) {
	if ctx.Err() != nil {
		return database.Block{}, ctx.Err()
	}

	validatorID := beneficiaryID
	if pos.Stake(validatorID) < pos.minStake {
		selected, err := pos.selectValidator()
		if err != nil {
			return database.Block{}, err
		}
		validatorID = selected
	}

	pos.evHandler("consensus: pos: GenerateBlock: blk[%d] validator[%s]", number, validatorID)

	block := database.NewBlock(validatorID, number, prevBlockHash, trans)
	block.Hash = block.ComputeHash()

	return block, nil
}

// ValidateBlock checks the block hash matches recomputation, the chain
// linkage holds, and the producing validator meets the stake threshold.
func (pos *ProofOfStake) ValidateBlock(block database.Block, prevBlockHash string) error {
	if hash := block.ComputeHash(); hash != block.Hash {
		return fmt.Errorf("block hash does not match recomputation, got %s, exp %s", block.Hash, hash)
	}

	if block.Header.PrevBlockHash != prevBlockHash {
		return fmt.Errorf("parent hash doesn't match our known parent, got %s, exp %s", block.Header.PrevBlockHash, prevBlockHash)
	}

	if pos.Stake(block.Header.BeneficiaryID) < pos.minStake {
		return fmt.Errorf("validator %s does not meet the minimum stake of %d", block.Header.BeneficiaryID, pos.minStake)
	}

	return nil
}

// =============================================================================

// selectValidator picks an eligible validator at random, weighted by stake.
// More stake means a proportionally better chance of being selected.
func (pos *ProofOfStake) selectValidator() (database.AccountID, error) {
	pos.mu.RLock()
	defer pos.mu.RUnlock()

	var eligible []database.AccountID
	var totalStake uint64
	for validatorID, stake := range pos.validators {
		if stake >= pos.minStake {
			eligible = append(eligible, validatorID)
			totalStake += stake
		}
	}

	if totalStake == 0 {
		return "", ErrNoValidators
	}

	// Sort for a deterministic walk over the map before drawing.
	sort.Slice(eligible, func(i, j int) bool {
		return eligible[i] < eligible[j]
	})

	draw := rand.Uint64N(totalStake)
	for _, validatorID := range eligible {
		stake := pos.validators[validatorID]
		if draw < stake {
			return validatorID, nil
		}
		draw -= stake
	}

	return eligible[len(eligible)-1], nil
}
