package accounts_test

import (
	"errors"
	"testing"

	"github.com/mockchain/mockchain/foundation/blockchain/accounts"
	"github.com/mockchain/mockchain/foundation/blockchain/database"
	"github.com/mockchain/mockchain/foundation/blockchain/genesis"
	"github.com/mockchain/mockchain/foundation/blockchain/signature"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

const (
	accountA = database.AccountID("0xdd6B972ffcc631a62CAE1BB9d80b7ff429c8ebA4")
	accountB = database.AccountID("0xF01813E4B85e178A83e29B8E7bF26BD830a25f32")
	miner    = database.AccountID("0xFef311483Cc040e1A89fb9bb469eeB8A70935EF8")
)

func newGenesis() genesis.Genesis {
	return genesis.Genesis{
		MiningReward: 50,
		Balances: map[string]uint64{
			string(accountA): 100,
		},
	}
}

// =============================================================================

func Test_ApplyTransaction(t *testing.T) {
	t.Log("Given the need to apply transactions to account balances.")
	{
		t.Logf("\tTest 0:\tWhen transferring between two accounts.")
		{
			accts := accounts.New(newGenesis())

			tx := database.SignedTx{Tx: database.Tx{FromID: accountA, ToID: accountB, Value: 30}}
			if err := accts.ApplyTransaction(tx); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to apply the transaction: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to apply the transaction.", success)

			if got := accts.Balance(accountA); got != 70 {
				t.Fatalf("\t%s\tTest 0:\tShould debit the sender to 70: got %d", failed, got)
			}
			t.Logf("\t%s\tTest 0:\tShould debit the sender to 70.", success)

			if got := accts.Balance(accountB); got != 30 {
				t.Fatalf("\t%s\tTest 0:\tShould credit the receiver to 30: got %d", failed, got)
			}
			t.Logf("\t%s\tTest 0:\tShould credit the receiver to 30.", success)
		}

		t.Logf("\tTest 1:\tWhen the sender cannot cover the transfer.")
		{
			accts := accounts.New(newGenesis())

			tx := database.SignedTx{Tx: database.Tx{FromID: accountA, ToID: accountB, Value: 101}}
			err := accts.ApplyTransaction(tx)
			if !errors.Is(err, accounts.ErrInsufficientFunds) {
				t.Fatalf("\t%s\tTest 1:\tShould get ErrInsufficientFunds: %v", failed, err)
			}
			t.Logf("\t%s\tTest 1:\tShould get ErrInsufficientFunds.", success)

			if got := accts.Balance(accountA); got != 100 {
				t.Fatalf("\t%s\tTest 1:\tShould leave the sender balance untouched: got %d", failed, got)
			}
			t.Logf("\t%s\tTest 1:\tShould leave the sender balance untouched.", success)

			if got := accts.Balance(accountB); got != 0 {
				t.Fatalf("\t%s\tTest 1:\tShould leave the receiver balance untouched: got %d", failed, got)
			}
			t.Logf("\t%s\tTest 1:\tShould leave the receiver balance untouched.", success)
		}

		t.Logf("\tTest 2:\tWhen the faucet mints value.")
		{
			accts := accounts.New(newGenesis())

			tx := database.SignedTx{Tx: database.Tx{FromID: database.FaucetAccountID, ToID: accountB, Value: 1000}}
			if err := accts.ApplyTransaction(tx); err != nil {
				t.Fatalf("\t%s\tTest 2:\tShould be able to apply the faucet transaction: %v", failed, err)
			}
			t.Logf("\t%s\tTest 2:\tShould be able to apply the faucet transaction.", success)

			if got := accts.Balance(accountB); got != 1000 {
				t.Fatalf("\t%s\tTest 2:\tShould credit the receiver to 1000: got %d", failed, got)
			}
			t.Logf("\t%s\tTest 2:\tShould credit the receiver to 1000.", success)

			if got := accts.Balance(database.FaucetAccountID); got != 0 {
				t.Fatalf("\t%s\tTest 2:\tShould never debit the faucet account: got %d", failed, got)
			}
			t.Logf("\t%s\tTest 2:\tShould never debit the faucet account.", success)
		}

		t.Logf("\tTest 3:\tWhen the miner receives the block reward.")
		{
			accts := accounts.New(newGenesis())

			accts.ApplyMiningReward(miner)
			if got := accts.Balance(miner); got != 50 {
				t.Fatalf("\t%s\tTest 3:\tShould credit the miner with 50: got %d", failed, got)
			}
			t.Logf("\t%s\tTest 3:\tShould credit the miner with 50.", success)
		}
	}
}

func Test_Replay(t *testing.T) {
	t.Log("Given the need to rebuild balances by replaying the chain.")
	{
		t.Logf("\tTest 0:\tWhen folding blocks over the genesis balances.")
		{
			gen := newGenesis()

			txs := []database.SignedTx{
				{Tx: database.Tx{FromID: database.FaucetAccountID, ToID: accountB, Value: 1000}},
				{Tx: database.Tx{FromID: accountA, ToID: accountB, Value: 10}},
			}
			block := database.NewBlock(miner, 1, signature.ZeroHash, txs)

			accts := accounts.Replay(gen, []database.Block{block})

			if got := accts.Balance(accountA); got != 90 {
				t.Fatalf("\t%s\tTest 0:\tShould report 90 for the sender: got %d", failed, got)
			}
			t.Logf("\t%s\tTest 0:\tShould report 90 for the sender.", success)

			if got := accts.Balance(accountB); got != 1010 {
				t.Fatalf("\t%s\tTest 0:\tShould report 1010 for the receiver: got %d", failed, got)
			}
			t.Logf("\t%s\tTest 0:\tShould report 1010 for the receiver.", success)

			if got := accts.Balance(miner); got != 50 {
				t.Fatalf("\t%s\tTest 0:\tShould report 50 for the miner: got %d", failed, got)
			}
			t.Logf("\t%s\tTest 0:\tShould report 50 for the miner.", success)
		}

		t.Logf("\tTest 1:\tWhen comparing a replay against the incremental state.")
		{
			gen := newGenesis()

			txs := []database.SignedTx{
				{Tx: database.Tx{FromID: accountA, ToID: accountB, Value: 25}},
			}
			block := database.NewBlock(miner, 1, signature.ZeroHash, txs)

			incremental := accounts.New(gen)
			for _, tx := range block.Trans {
				if err := incremental.ApplyTransaction(tx); err != nil {
					t.Fatalf("\t%s\tTest 1:\tShould be able to apply the transaction: %v", failed, err)
				}
			}
			incremental.ApplyMiningReward(miner)

			replayed := accounts.Replay(gen, []database.Block{block})

			if !incremental.Equal(replayed) {
				t.Fatalf("\t%s\tTest 1:\tShould produce identical balances.", failed)
			}
			t.Logf("\t%s\tTest 1:\tShould produce identical balances.", success)
		}

		t.Logf("\tTest 2:\tWhen a zero balance is compared with a missing account.")
		{
			gen := newGenesis()

			a := accounts.New(gen)
			b := accounts.New(gen)

			tx := database.SignedTx{Tx: database.Tx{FromID: accountA, ToID: accountB, Value: 100}}
			if err := a.ApplyTransaction(tx); err != nil {
				t.Fatalf("\t%s\tTest 2:\tShould be able to apply the transaction: %v", failed, err)
			}

			backTx := database.SignedTx{Tx: database.Tx{FromID: accountB, ToID: accountA, Value: 100}}
			if err := a.ApplyTransaction(backTx); err != nil {
				t.Fatalf("\t%s\tTest 2:\tShould be able to apply the return transaction: %v", failed, err)
			}

			if !a.Equal(b) {
				t.Fatalf("\t%s\tTest 2:\tShould treat a zero balance the same as no account.", failed)
			}
			t.Logf("\t%s\tTest 2:\tShould treat a zero balance the same as no account.", success)
		}

		t.Logf("\tTest 3:\tWhen a committed block overdrafts the sender mid-block.")
		{
			gen := newGenesis()

			// Each transfer is covered by the starting balance of 100 but
			// together they overdraft. The second debit is skipped on both
			// derivations.
			txs := []database.SignedTx{
				{Tx: database.Tx{FromID: accountA, ToID: accountB, Value: 60, TimeStamp: 1}},
				{Tx: database.Tx{FromID: accountA, ToID: accountB, Value: 70, TimeStamp: 2}},
			}
			block := database.NewBlock(miner, 1, signature.ZeroHash, txs)

			incremental := accounts.New(gen)
			for _, tx := range block.Trans {
				incremental.ApplyTransaction(tx)
			}
			incremental.ApplyMiningReward(miner)

			replayed := accounts.Replay(gen, []database.Block{block})

			if got := replayed.Balance(accountA); got != 40 {
				t.Fatalf("\t%s\tTest 3:\tShould report 40 for the sender: got %d", failed, got)
			}
			t.Logf("\t%s\tTest 3:\tShould report 40 for the sender.", success)

			if got := replayed.Balance(accountB); got != 60 {
				t.Fatalf("\t%s\tTest 3:\tShould credit only the covered transfer: got %d", failed, got)
			}
			t.Logf("\t%s\tTest 3:\tShould credit only the covered transfer.", success)

			if !incremental.Equal(replayed) {
				t.Fatalf("\t%s\tTest 3:\tShould produce identical balances.", failed)
			}
			t.Logf("\t%s\tTest 3:\tShould produce identical balances.", success)
		}
	}
}

func Test_Records(t *testing.T) {
	t.Log("Given the need for stable sorted account listings.")
	{
		t.Logf("\tTest 0:\tWhen listing the accounts.")
		{
			accts := accounts.New(genesis.Genesis{
				Balances: map[string]uint64{
					string(accountB): 5,
					string(accountA): 10,
				},
			})

			records := accts.Records()
			if len(records) != 2 {
				t.Fatalf("\t%s\tTest 0:\tShould list 2 accounts: got %d", failed, len(records))
			}
			t.Logf("\t%s\tTest 0:\tShould list 2 accounts.", success)

			if records[0].AccountID > records[1].AccountID {
				t.Fatalf("\t%s\tTest 0:\tShould be sorted by account id.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould be sorted by account id.", success)
		}
	}
}
