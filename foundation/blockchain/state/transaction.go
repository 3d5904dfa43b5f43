package state

import (
	"fmt"

	"github.com/mockchain/mockchain/foundation/blockchain/accounts"
	"github.com/mockchain/mockchain/foundation/blockchain/database"
)

// SubmitWalletTransaction accepts a signed transaction from a wallet for
// inclusion in the next block. On any validation failure the pool and the
// chain are left untouched.
func (s *State) SubmitWalletTransaction(signedTx database.SignedTx) error {
	if err := s.validateTransaction(signedTx); err != nil {
		return err
	}

	count := s.mempool.Upsert(signedTx)
	s.evHandler("state: SubmitWalletTransaction: tx[%s] value[%d] pool[%d]", signedTx, signedTx.Value, count)

	if s.Worker != nil {
		s.Worker.SignalStartMining()
	}

	return nil
}

// RequestFaucet constructs a system-sourced transaction minting the
// configured faucet amount to the specified account and submits it through
// the same pool path as any other transaction. Requests are not rate
// limited; the amount is a genesis configuration point.
func (s *State) RequestFaucet(accountID database.AccountID) (database.SignedTx, error) {
	tx, err := database.NewFaucetTx(accountID, s.genesis.FaucetAmount)
	if err != nil {
		return database.SignedTx{}, err
	}

	s.evHandler("state: RequestFaucet: FAUCET -> %s, amount: %d", accountID, tx.Value)

	if err := s.SubmitWalletTransaction(tx); err != nil {
		return database.SignedTx{}, err
	}

	return tx, nil
}

// =============================================================================

// validateTransaction takes the signed transaction and validates it has a
// proper signature, a positive amount, and a sender balance covering the
// transfer. Faucet transactions mint value so the balance check is skipped.
func (s *State) validateTransaction(signedTx database.SignedTx) error {
	if err := signedTx.Validate(); err != nil {
		return err
	}

	if signedTx.IsFaucet() {
		return nil
	}

	if balance := s.accounts.Balance(signedTx.FromID); balance < signedTx.Value {
		return fmt.Errorf("account %s, balance %d, needed %d: %w", signedTx.FromID, balance, signedTx.Value, accounts.ErrInsufficientFunds)
	}

	return nil
}
