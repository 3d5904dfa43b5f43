package consensus

import (
	"context"
	"fmt"

	"github.com/mockchain/mockchain/foundation/blockchain/database"
)

// ProofOfWork produces blocks by searching for a nonce whose hash carries
// the required number of leading zero hex characters.
type ProofOfWork struct {
	difficulty uint
	evHandler  EventHandler
}

// NewProofOfWork constructs a ProofOfWork policy for the specified difficulty.
func NewProofOfWork(difficulty uint, ev EventHandler) *ProofOfWork {
	return &ProofOfWork{
		difficulty: difficulty,
		evHandler:  ev,
	}
}

// Name identifies the policy for logging.
func (pow *ProofOfWork) Name() string {
	return "proof of work"
}

// GenerateBlock performs the work of finding a nonce that solves the hash
// puzzle for the specified chain position. The search is CPU bound and checks
// ctx on every iteration so a stale candidate can be abandoned; it is never
// forced through to an inconsistent block.
func (pow *ProofOfWork) GenerateBlock(ctx context.Context, beneficiaryID database.AccountID, number uint64, prevBlockHash string, trans []database.SignedTx) (database.Block, error) {
	pow.evHandler("consensus: pow: GenerateBlock: MINING: started: blk[%d] txs[%d]", number, len(trans))
	defer pow.evHandler("consensus: pow: GenerateBlock: MINING: completed")

	block := database.NewBlock(beneficiaryID, number, prevBlockHash, trans)

	// Loop from nonce zero until the hash solves the puzzle.
	var attempts uint64
	for {
		attempts++
		if attempts%1_000_000 == 0 {
			pow.evHandler("consensus: pow: GenerateBlock: MINING: attempts[%d]", attempts)
		}

		if ctx.Err() != nil {
			pow.evHandler("consensus: pow: GenerateBlock: MINING: CANCELLED")
			return database.Block{}, ctx.Err()
		}

		hash := block.ComputeHash()
		if !isHashSolved(pow.difficulty, hash) {
			block.Header.Nonce++
			continue
		}

		pow.evHandler("consensus: pow: GenerateBlock: MINING: SOLVED: prevBlk[%s]: newBlk[%s]", block.Header.PrevBlockHash, hash)
		pow.evHandler("consensus: pow: GenerateBlock: MINING: attempts[%d]", attempts)

		block.Hash = hash
		return block, nil
	}
}

// ValidateBlock checks the block hash matches recomputation, the chain
// linkage holds, and the hash solves the difficulty puzzle.
func (pow *ProofOfWork) ValidateBlock(block database.Block, prevBlockHash string) error {
	if hash := block.ComputeHash(); hash != block.Hash {
		return fmt.Errorf("block hash does not match recomputation, got %s, exp %s", block.Hash, hash)
	}

	if block.Header.PrevBlockHash != prevBlockHash {
		return fmt.Errorf("parent hash doesn't match our known parent, got %s, exp %s", block.Header.PrevBlockHash, prevBlockHash)
	}

	if !isHashSolved(pow.difficulty, block.Hash) {
		return fmt.Errorf("%s invalid block hash for difficulty %d", block.Hash, pow.difficulty)
	}

	return nil
}

// solvedPrefix bounds how many leading zero hex characters a POW hash can
// be required to carry. The difficulty is validated against this at startup.
const solvedPrefix = "0x00000000000000000"

// MaxDifficulty is the largest difficulty a POW policy accepts.
const MaxDifficulty = uint(len(solvedPrefix) - 2)

// isHashSolved checks the hash to make sure it complies with the POW rules.
// We need to match a difficulty number of leading zero hex characters.
func isHashSolved(difficulty uint, hash string) bool {
	if len(hash) != 66 {
		return false
	}

	return hash[:2+difficulty] == solvedPrefix[:2+difficulty]
}
