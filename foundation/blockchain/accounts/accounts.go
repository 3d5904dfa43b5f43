// Package accounts maintains the account balances derived from the chain.
package accounts

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/mockchain/mockchain/foundation/blockchain/database"
	"github.com/mockchain/mockchain/foundation/blockchain/genesis"
)

// ErrInsufficientFunds is returned when an account does not hold enough
// balance to cover a transfer.
var ErrInsufficientFunds = errors.New("insufficient funds")

// Info represents the information stored for an individual account.
type Info struct {
	Balance uint64
}

// Accounts manages the balances for accounts who have transacted on the
// blockchain. It is an incrementally maintained cache over the committed
// chain; Replay rebuilds the same state from scratch for cross-checking.
type Accounts struct {
	genesis genesis.Genesis
	info    map[database.AccountID]Info
	mu      sync.RWMutex
}

// New constructs an Accounts value seeded with the genesis balances.
func New(genesis genesis.Genesis) *Accounts {
	accts := Accounts{
		genesis: genesis,
		info:    make(map[database.AccountID]Info),
	}

	for addr, balance := range genesis.Balances {
		accts.info[database.AccountID(addr)] = Info{Balance: balance}
	}

	return &accts
}

// Replay rebuilds account balances by folding every committed transaction,
// mining reward, and faucet credit over the genesis balances. A transaction
// whose debit cannot be covered is skipped, the same rule the commit path
// applies, so the result always equals the incrementally maintained state.
func Replay(gen genesis.Genesis, chain []database.Block) *Accounts {
	accts := New(gen)

	for _, block := range chain {
		for _, tx := range block.Trans {
			accts.ApplyTransaction(tx)
		}

		if block.Header.BeneficiaryID != "" {
			accts.ApplyMiningReward(block.Header.BeneficiaryID)
		}
	}

	return accts
}

// Reset re-initializes the accounts back to the genesis information.
func (act *Accounts) Reset() {
	act.mu.Lock()
	defer act.mu.Unlock()

	act.info = make(map[database.AccountID]Info)
	for addr, balance := range act.genesis.Balances {
		act.info[database.AccountID(addr)] = Info{Balance: balance}
	}
}

// Balance returns the current balance for the specified account. Accounts
// never seen report zero.
func (act *Accounts) Balance(accountID database.AccountID) uint64 {
	act.mu.RLock()
	defer act.mu.RUnlock()

	return act.info[accountID].Balance
}

// Copy makes a copy of the current information for all accounts.
func (act *Accounts) Copy() map[database.AccountID]Info {
	act.mu.RLock()
	defer act.mu.RUnlock()

	accounts := make(map[database.AccountID]Info)
	for accountID, info := range act.info {
		accounts[accountID] = info
	}
	return accounts
}

// ApplyMiningReward credits the specified account with the mining reward.
func (act *Accounts) ApplyMiningReward(beneficiaryID database.AccountID) {
	act.mu.Lock()
	defer act.mu.Unlock()

	info := act.info[beneficiaryID]
	info.Balance += act.genesis.MiningReward

	act.info[beneficiaryID] = info
}

// ApplyTransaction performs the business logic for applying a transaction
// to the account balances. A faucet transaction mints new value, so only the
// receiving side is credited. No ordinary transfer creates or destroys value.
func (act *Accounts) ApplyTransaction(tx database.SignedTx) error {
	act.mu.Lock()
	defer act.mu.Unlock()

	if !tx.IsFaucet() {
		fromInfo := act.info[tx.FromID]
		if tx.Value > fromInfo.Balance {
			return fmt.Errorf("account %s: %w", tx.FromID, ErrInsufficientFunds)
		}

		fromInfo.Balance -= tx.Value
		act.info[tx.FromID] = fromInfo
	}

	toInfo := act.info[tx.ToID]
	toInfo.Balance += tx.Value
	act.info[tx.ToID] = toInfo

	return nil
}

// Equal reports whether two account states hold the same balances. Accounts
// holding a zero balance are treated the same as accounts never seen.
func (act *Accounts) Equal(other *Accounts) bool {
	balances := act.Copy()
	otherBalances := other.Copy()

	for accountID, info := range balances {
		if otherBalances[accountID].Balance != info.Balance {
			return false
		}
	}

	for accountID, info := range otherBalances {
		if balances[accountID].Balance != info.Balance {
			return false
		}
	}

	return true
}

// =============================================================================

// Record represents an account and its balance for sorted listings.
type Record struct {
	AccountID database.AccountID
	Balance   uint64
}

// Records returns the current balances sorted by account id so API listings
// are stable between calls.
func (act *Accounts) Records() []Record {
	copied := act.Copy()

	records := make([]Record, 0, len(copied))
	for accountID, info := range copied {
		records = append(records, Record{AccountID: accountID, Balance: info.Balance})
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].AccountID < records[j].AccountID
	})

	return records
}
