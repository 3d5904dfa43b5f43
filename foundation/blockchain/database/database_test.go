package database_test

import (
	"errors"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/mockchain/mockchain/foundation/blockchain/database"
	"github.com/mockchain/mockchain/foundation/blockchain/signature"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

// =============================================================================

func Test_TransactionSignVerify(t *testing.T) {
	t.Log("Given the need to validate signed transactions.")
	{
		t.Logf("\tTest 0:\tWhen a transaction is signed by the claimed sender.")
		{
			privateKey, err := crypto.GenerateKey()
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to generate a private key: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to generate a private key.", success)

			fromID := database.PublicKeyToAccountID(privateKey.PublicKey)

			tx, err := database.NewTx(fromID, "0xF01813E4B85e178A83e29B8E7bF26BD830a25f32", 100)
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to construct a transaction: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to construct a transaction.", success)

			signedTx, err := tx.Sign(privateKey)
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to sign the transaction: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to sign the transaction.", success)

			if err := signedTx.Validate(); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould validate the signed transaction: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould validate the signed transaction.", success)
		}

		t.Logf("\tTest 1:\tWhen a transaction is signed by a different key than the sender.")
		{
			senderKey, err := crypto.GenerateKey()
			if err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould be able to generate the sender key: %v", failed, err)
			}
			t.Logf("\t%s\tTest 1:\tShould be able to generate the sender key.", success)

			otherKey, err := crypto.GenerateKey()
			if err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould be able to generate another key: %v", failed, err)
			}
			t.Logf("\t%s\tTest 1:\tShould be able to generate another key.", success)

			fromID := database.PublicKeyToAccountID(senderKey.PublicKey)

			tx, err := database.NewTx(fromID, "0xF01813E4B85e178A83e29B8E7bF26BD830a25f32", 100)
			if err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould be able to construct a transaction: %v", failed, err)
			}
			t.Logf("\t%s\tTest 1:\tShould be able to construct a transaction.", success)

			signedTx, err := tx.Sign(otherKey)
			if err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould be able to sign the transaction: %v", failed, err)
			}
			t.Logf("\t%s\tTest 1:\tShould be able to sign the transaction.", success)

			err = signedTx.Validate()
			if !errors.Is(err, database.ErrInvalidSignature) {
				t.Fatalf("\t%s\tTest 1:\tShould get ErrInvalidSignature: %v", failed, err)
			}
			t.Logf("\t%s\tTest 1:\tShould get ErrInvalidSignature.", success)
		}

		t.Logf("\tTest 2:\tWhen a transaction carries no signature values.")
		{
			signedTx := database.SignedTx{
				Tx: database.Tx{
					FromID:    "0xdd6B972ffcc631a62CAE1BB9d80b7ff429c8ebA4",
					ToID:      "0xF01813E4B85e178A83e29B8E7bF26BD830a25f32",
					Value:     10,
					TimeStamp: uint64(time.Now().UTC().Unix()),
				},
			}

			err := signedTx.Validate()
			if !errors.Is(err, database.ErrInvalidSignature) {
				t.Fatalf("\t%s\tTest 2:\tShould get ErrInvalidSignature: %v", failed, err)
			}
			t.Logf("\t%s\tTest 2:\tShould get ErrInvalidSignature.", success)
		}

		t.Logf("\tTest 3:\tWhen a transaction carries a zero value.")
		{
			signedTx := database.SignedTx{
				Tx: database.Tx{
					FromID: "0xdd6B972ffcc631a62CAE1BB9d80b7ff429c8ebA4",
					ToID:   "0xF01813E4B85e178A83e29B8E7bF26BD830a25f32",
					Value:  0,
				},
			}

			err := signedTx.Validate()
			if !errors.Is(err, database.ErrInvalidAmount) {
				t.Fatalf("\t%s\tTest 3:\tShould get ErrInvalidAmount: %v", failed, err)
			}
			t.Logf("\t%s\tTest 3:\tShould get ErrInvalidAmount.", success)

			if _, err := database.NewTx("0xdd6B972ffcc631a62CAE1BB9d80b7ff429c8ebA4", "0xF01813E4B85e178A83e29B8E7bF26BD830a25f32", 0); !errors.Is(err, database.ErrInvalidAmount) {
				t.Fatalf("\t%s\tTest 3:\tShould not construct a zero value transaction: %v", failed, err)
			}
			t.Logf("\t%s\tTest 3:\tShould not construct a zero value transaction.", success)
		}
	}
}

func Test_FaucetTransaction(t *testing.T) {
	t.Log("Given the need to validate faucet transactions.")
	{
		t.Logf("\tTest 0:\tWhen the faucet account mints value without a signature.")
		{
			signedTx, err := database.NewFaucetTx("0xF01813E4B85e178A83e29B8E7bF26BD830a25f32", 1000)
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to construct a faucet transaction: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to construct a faucet transaction.", success)

			if !signedTx.IsFaucet() {
				t.Fatalf("\t%s\tTest 0:\tShould report the transaction as faucet sourced.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould report the transaction as faucet sourced.", success)

			if err := signedTx.Validate(); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould validate without a signature: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould validate without a signature.", success)
		}

		t.Logf("\tTest 1:\tWhen a non-faucet sender impersonates the faucet format.")
		{
			signedTx := database.SignedTx{
				Tx: database.Tx{
					FromID: "not-the-faucet",
					ToID:   "0xF01813E4B85e178A83e29B8E7bF26BD830a25f32",
					Value:  10,
				},
			}

			err := signedTx.Validate()
			if !errors.Is(err, database.ErrInvalidSignature) {
				t.Fatalf("\t%s\tTest 1:\tShould get ErrInvalidSignature for a malformed sender: %v", failed, err)
			}
			t.Logf("\t%s\tTest 1:\tShould get ErrInvalidSignature for a malformed sender.", success)
		}
	}
}

func Test_BlockHash(t *testing.T) {
	t.Log("Given the need to hash blocks deterministically.")
	{
		t.Logf("\tTest 0:\tWhen hashing the same block twice.")
		{
			signedTx, err := database.NewFaucetTx("0xF01813E4B85e178A83e29B8E7bF26BD830a25f32", 1000)
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to construct a faucet transaction: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to construct a faucet transaction.", success)

			block := database.NewBlock("0xdd6B972ffcc631a62CAE1BB9d80b7ff429c8ebA4", 1, signature.ZeroHash, []database.SignedTx{signedTx})

			h1 := block.ComputeHash()
			h2 := block.ComputeHash()

			if h1 != h2 {
				t.Fatalf("\t%s\tTest 0:\tShould produce the same hash: %s != %s", failed, h1, h2)
			}
			t.Logf("\t%s\tTest 0:\tShould produce the same hash.", success)
		}

		t.Logf("\tTest 1:\tWhen any field of the block changes.")
		{
			signedTx, err := database.NewFaucetTx("0xF01813E4B85e178A83e29B8E7bF26BD830a25f32", 1000)
			if err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould be able to construct a faucet transaction: %v", failed, err)
			}
			t.Logf("\t%s\tTest 1:\tShould be able to construct a faucet transaction.", success)

			block := database.NewBlock("0xdd6B972ffcc631a62CAE1BB9d80b7ff429c8ebA4", 1, signature.ZeroHash, []database.SignedTx{signedTx})
			h1 := block.ComputeHash()

			block.Header.Nonce++
			h2 := block.ComputeHash()

			if h1 == h2 {
				t.Fatalf("\t%s\tTest 1:\tShould produce a different hash when the nonce changes.", failed)
			}
			t.Logf("\t%s\tTest 1:\tShould produce a different hash when the nonce changes.", success)

			block.Header.Nonce--
			block.Trans[0].Value++
			h3 := block.ComputeHash()

			if h1 == h3 {
				t.Fatalf("\t%s\tTest 1:\tShould produce a different hash when a transaction changes.", failed)
			}
			t.Logf("\t%s\tTest 1:\tShould produce a different hash when a transaction changes.", success)
		}

		t.Logf("\tTest 2:\tWhen constructing the genesis block.")
		{
			block := database.NewGenesisBlock(time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC))

			if block.Header.Number != 0 {
				t.Fatalf("\t%s\tTest 2:\tShould have block number 0: got %d", failed, block.Header.Number)
			}
			t.Logf("\t%s\tTest 2:\tShould have block number 0.", success)

			if block.Header.PrevBlockHash != signature.ZeroHash {
				t.Fatalf("\t%s\tTest 2:\tShould have the zero hash as previous: got %s", failed, block.Header.PrevBlockHash)
			}
			t.Logf("\t%s\tTest 2:\tShould have the zero hash as previous.", success)

			if block.Hash != block.ComputeHash() {
				t.Fatalf("\t%s\tTest 2:\tShould store its own computed hash.", failed)
			}
			t.Logf("\t%s\tTest 2:\tShould store its own computed hash.", success)
		}
	}
}
