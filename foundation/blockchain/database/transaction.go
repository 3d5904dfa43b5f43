package database

import (
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/mockchain/mockchain/foundation/blockchain/signature"
)

// Set of errors returned when validating a transaction. These are reported
// to the caller and never change node state.
var (
	ErrInvalidSignature = errors.New("invalid signature")
	ErrInvalidAmount    = errors.New("invalid amount")
)

// =============================================================================

// Tx is the transactional information between two parties.
type Tx struct {
	FromID    AccountID `json:"from"`      // Account sending the value.
	ToID      AccountID `json:"to"`        // Account receiving the value.
	Value     uint64    `json:"value"`     // Monetary value transferred.
	TimeStamp uint64    `json:"timestamp"` // The time the transaction was created.
}

// NewTx constructs a new transaction.
func NewTx(fromID AccountID, toID AccountID, value uint64) (Tx, error) {
	if !fromID.IsAccountID() && fromID != FaucetAccountID {
		return Tx{}, fmt.Errorf("from account is not properly formatted")
	}

	if !toID.IsAccountID() {
		return Tx{}, fmt.Errorf("to account is not properly formatted")
	}

	if value == 0 {
		return Tx{}, ErrInvalidAmount
	}

	tx := Tx{
		FromID:    fromID,
		ToID:      toID,
		Value:     value,
		TimeStamp: uint64(time.Now().UTC().Unix()),
	}

	return tx, nil
}

// Sign uses the specified private key to sign the transaction.
func (tx Tx) Sign(privateKey *ecdsa.PrivateKey) (SignedTx, error) {

	// Sign the transaction with the private key to produce a signature.
	v, r, s, err := signature.Sign(tx, privateKey)
	if err != nil {
		return SignedTx{}, err
	}

	// Construct the signed transaction by adding the signature
	// in the [R|S|V] format.
	signedTx := SignedTx{
		Tx: tx,
		V:  v,
		R:  r,
		S:  s,
	}

	return signedTx, nil
}

// =============================================================================

// SignedTx is a signed version of the transaction. This is how clients like
// a wallet provide transactions for inclusion into the blockchain.
type SignedTx struct {
	Tx
	V *big.Int `json:"v"` // Recovery identifier, either 31 or 32 with mockchainID.
	R *big.Int `json:"r"` // First coordinate of the ECDSA signature.
	S *big.Int `json:"s"` // Second coordinate of the ECDSA signature.
}

// NewFaucetTx constructs a transaction minting value to the specified
// account. It carries no signature and validates without one.
func NewFaucetTx(toID AccountID, value uint64) (SignedTx, error) {
	tx, err := NewTx(FaucetAccountID, toID, value)
	if err != nil {
		return SignedTx{}, err
	}

	signedTx := SignedTx{
		Tx: tx,
		V:  big.NewInt(0),
		R:  big.NewInt(0),
		S:  big.NewInt(0),
	}

	return signedTx, nil
}

// IsFaucet reports whether this is a system-sourced faucet transaction.
func (tx SignedTx) IsFaucet() bool {
	return tx.FromID == FaucetAccountID
}

// Validate verifies the transaction has a properly formed amount and a
// signature that recovers to the from account. Faucet transactions skip the
// signature check but are still bound by the amount rules. Malformed
// signature bytes are reported as a validation failure, never a panic.
func (tx SignedTx) Validate() error {
	if tx.Value == 0 {
		return ErrInvalidAmount
	}

	if !tx.ToID.IsAccountID() {
		return fmt.Errorf("%w: invalid account for to account", ErrInvalidSignature)
	}

	if tx.IsFaucet() {
		return nil
	}

	if !tx.FromID.IsAccountID() {
		return fmt.Errorf("%w: invalid account for from account", ErrInvalidSignature)
	}

	if tx.V == nil || tx.R == nil || tx.S == nil {
		return fmt.Errorf("%w: missing signature values", ErrInvalidSignature)
	}

	if err := signature.VerifySignature(tx.V, tx.R, tx.S); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidSignature, err)
	}

	// The address recovered from the signature must match the claimed
	// sender or the node would debit the wrong account.
	address, err := signature.FromAddress(tx.Tx, tx.V, tx.R, tx.S)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidSignature, err)
	}

	if AccountID(address) != tx.FromID {
		return fmt.Errorf("%w: signature recovers to %s, not %s", ErrInvalidSignature, address, tx.FromID)
	}

	return nil
}

// SignatureString returns the signature as a string.
func (tx SignedTx) SignatureString() string {
	return signature.SignatureString(tx.V, tx.R, tx.S)
}

// UniqueKey returns the hash that identifies this transaction in the mempool.
func (tx SignedTx) UniqueKey() string {
	return signature.Hash(tx)
}

// String implements the fmt.Stringer interface for logging.
func (tx SignedTx) String() string {
	return fmt.Sprintf("%s:%d", tx.FromID, tx.TimeStamp)
}
