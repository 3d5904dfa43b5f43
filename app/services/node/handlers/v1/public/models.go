package public

import (
	"github.com/mockchain/mockchain/foundation/blockchain/database"
)

// balance represents an account and its balance.
type balance struct {
	Account database.AccountID `json:"account"`
	Balance uint64             `json:"balance"`
}

// balances returns the full set of known balances.
type balances struct {
	LatestBlock string    `json:"latest_block"`
	Uncommitted int       `json:"uncommitted"`
	Balances    []balance `json:"balances"`
}

// faucetRequest is what a client sends to request test funds.
type faucetRequest struct {
	Account string `json:"account" validate:"required"`
}

// faucetResponse reports the minted transaction back to the client.
type faucetResponse struct {
	Account database.AccountID `json:"account"`
	Amount  uint64             `json:"amount"`
	Status  string             `json:"status"`
}

// submitResponse acknowledges an accepted transaction.
type submitResponse struct {
	Status string `json:"status"`
	Tx     string `json:"tx"`
}

// statusResponse describes the node state for monitoring.
type statusResponse struct {
	Consensus   string             `json:"consensus"`
	ChainLength int                `json:"chain_length"`
	LatestBlock string             `json:"latest_block"`
	Uncommitted int                `json:"uncommitted"`
	Beneficiary database.AccountID `json:"beneficiary"`
}
