// Package genesis maintains access to the genesis file.
package genesis

import (
	"encoding/json"
	"os"
	"time"
)

// Genesis represents the genesis file.
type Genesis struct {
	Date          time.Time         `json:"date"`
	ChainID       uint16            `json:"chain_id"`        // A unique id for this running instance.
	TransPerBlock uint16            `json:"trans_per_block"` // The maximum number of transactions that can be in a block.
	Difficulty    uint16            `json:"difficulty"`      // Number of leading zero hex characters required of a POW hash.
	MiningReward  uint64            `json:"mining_reward"`   // Reward for producing a block.
	FaucetAmount  uint64            `json:"faucet_amount"`   // Amount minted for each faucet request.
	MinStake      uint64            `json:"min_stake"`       // Stake required of a POS validator.
	Balances      map[string]uint64 `json:"balances"`        // Starting balances applied before any block.
	Stakes        map[string]uint64 `json:"stakes"`          // Starting validator stakes for POS.
}

// Load opens and consumes the genesis file.
func Load(path string) (Genesis, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Genesis{}, err
	}

	var genesis Genesis
	if err := json.Unmarshal(content, &genesis); err != nil {
		return Genesis{}, err
	}

	return genesis, nil
}
