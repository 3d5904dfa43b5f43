package consensus_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/mockchain/mockchain/foundation/blockchain/consensus"
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
	minerA = database.AccountID("0xdd6B972ffcc631a62CAE1BB9d80b7ff429c8ebA4")
	minerB = database.AccountID("0xF01813E4B85e178A83e29B8E7bF26BD830a25f32")
)

func testTrans(t *testing.T) []database.SignedTx {
	t.Helper()

	tx, err := database.NewFaucetTx(minerB, 1000)
	if err != nil {
		t.Fatalf("\t%s\tShould be able to construct a faucet transaction: %v", failed, err)
	}

	return []database.SignedTx{tx}
}

// =============================================================================

func Test_ProofOfWork(t *testing.T) {
	t.Log("Given the need to produce blocks with proof of work.")
	{
		t.Logf("\tTest 0:\tWhen mining a block at difficulty 1.")
		{
			pow := consensus.NewProofOfWork(1, func(v string, args ...any) {})

			block, err := pow.GenerateBlock(context.Background(), minerA, 1, signature.ZeroHash, testTrans(t))
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to mine a block: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to mine a block.", success)

			if !strings.HasPrefix(block.Hash, "0x0") {
				t.Fatalf("\t%s\tTest 0:\tShould have a leading zero hex character: got %s", failed, block.Hash)
			}
			t.Logf("\t%s\tTest 0:\tShould have a leading zero hex character.", success)

			if block.Hash != block.ComputeHash() {
				t.Fatalf("\t%s\tTest 0:\tShould store its own computed hash.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould store its own computed hash.", success)

			if err := pow.ValidateBlock(block, signature.ZeroHash); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould validate its own block: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould validate its own block.", success)
		}

		t.Logf("\tTest 1:\tWhen validating a tampered block.")
		{
			pow := consensus.NewProofOfWork(1, func(v string, args ...any) {})

			block, err := pow.GenerateBlock(context.Background(), minerA, 1, signature.ZeroHash, testTrans(t))
			if err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould be able to mine a block: %v", failed, err)
			}
			t.Logf("\t%s\tTest 1:\tShould be able to mine a block.", success)

			block.Trans[0].Value++
			if err := pow.ValidateBlock(block, signature.ZeroHash); err == nil {
				t.Fatalf("\t%s\tTest 1:\tShould reject a block whose contents changed.", failed)
			}
			t.Logf("\t%s\tTest 1:\tShould reject a block whose contents changed.", success)
		}

		t.Logf("\tTest 2:\tWhen validating a block against the wrong parent.")
		{
			pow := consensus.NewProofOfWork(1, func(v string, args ...any) {})

			block, err := pow.GenerateBlock(context.Background(), minerA, 1, signature.ZeroHash, testTrans(t))
			if err != nil {
				t.Fatalf("\t%s\tTest 2:\tShould be able to mine a block: %v", failed, err)
			}
			t.Logf("\t%s\tTest 2:\tShould be able to mine a block.", success)

			wrongParent := "0x1111111111111111111111111111111111111111111111111111111111111111"
			if err := pow.ValidateBlock(block, wrongParent); err == nil {
				t.Fatalf("\t%s\tTest 2:\tShould reject a block that does not attach to the parent.", failed)
			}
			t.Logf("\t%s\tTest 2:\tShould reject a block that does not attach to the parent.", success)
		}

		t.Logf("\tTest 3:\tWhen the context is cancelled during mining.")
		{
			pow := consensus.NewProofOfWork(10, func(v string, args ...any) {})

			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			if _, err := pow.GenerateBlock(ctx, minerA, 1, signature.ZeroHash, testTrans(t)); !errors.Is(err, context.Canceled) {
				t.Fatalf("\t%s\tTest 3:\tShould abandon the search with context.Canceled: %v", failed, err)
			}
			t.Logf("\t%s\tTest 3:\tShould abandon the search with context.Canceled.", success)
		}
	}
}

func Test_ProofOfStake(t *testing.T) {
	t.Log("Given the need to produce blocks with proof of stake.")
	{
		t.Logf("\tTest 0:\tWhen the beneficiary meets the minimum stake.")
		{
			pos := consensus.NewProofOfStake(100, func(v string, args ...any) {})
			pos.RegisterStake(minerA, 500)

			block, err := pos.GenerateBlock(context.Background(), minerA, 1, signature.ZeroHash, testTrans(t))
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to produce a block: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to produce a block.", success)

			if block.Header.BeneficiaryID != minerA {
				t.Fatalf("\t%s\tTest 0:\tShould keep the staked beneficiary: got %s", failed, block.Header.BeneficiaryID)
			}
			t.Logf("\t%s\tTest 0:\tShould keep the staked beneficiary.", success)

			if err := pos.ValidateBlock(block, signature.ZeroHash); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould validate its own block: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould validate its own block.", success)
		}

		t.Logf("\tTest 1:\tWhen the beneficiary is below the minimum stake.")
		{
			pos := consensus.NewProofOfStake(100, func(v string, args ...any) {})
			pos.RegisterStake(minerB, 500)

			block, err := pos.GenerateBlock(context.Background(), minerA, 1, signature.ZeroHash, testTrans(t))
			if err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould be able to produce a block: %v", failed, err)
			}
			t.Logf("\t%s\tTest 1:\tShould be able to produce a block.", success)

			if block.Header.BeneficiaryID != minerB {
				t.Fatalf("\t%s\tTest 1:\tShould select an eligible validator: got %s", failed, block.Header.BeneficiaryID)
			}
			t.Logf("\t%s\tTest 1:\tShould select an eligible validator.", success)
		}

		t.Logf("\tTest 2:\tWhen no validator meets the minimum stake.")
		{
			pos := consensus.NewProofOfStake(100, func(v string, args ...any) {})
			pos.RegisterStake(minerA, 50)

			if _, err := pos.GenerateBlock(context.Background(), minerA, 1, signature.ZeroHash, testTrans(t)); !errors.Is(err, consensus.ErrNoValidators) {
				t.Fatalf("\t%s\tTest 2:\tShould get ErrNoValidators: %v", failed, err)
			}
			t.Logf("\t%s\tTest 2:\tShould get ErrNoValidators.", success)
		}

		t.Logf("\tTest 3:\tWhen stake accumulates across registrations.")
		{
			pos := consensus.NewProofOfStake(100, func(v string, args ...any) {})
			pos.RegisterStake(minerA, 60)
			pos.RegisterStake(minerA, 60)

			if got := pos.Stake(minerA); got != 120 {
				t.Fatalf("\t%s\tTest 3:\tShould accumulate to 120: got %d", failed, got)
			}
			t.Logf("\t%s\tTest 3:\tShould accumulate to 120.", success)
		}

		t.Logf("\tTest 4:\tWhen a block was produced by an ineligible validator.")
		{
			pos := consensus.NewProofOfStake(100, func(v string, args ...any) {})
			pos.RegisterStake(minerA, 500)

			block := database.NewBlock(minerB, 1, signature.ZeroHash, testTrans(t))
			block.Hash = block.ComputeHash()

			if err := pos.ValidateBlock(block, signature.ZeroHash); err == nil {
				t.Fatalf("\t%s\tTest 4:\tShould reject a block from an unstaked validator.", failed)
			}
			t.Logf("\t%s\tTest 4:\tShould reject a block from an unstaked validator.", success)
		}
	}
}

func Test_PolicySelection(t *testing.T) {
	t.Log("Given the need to select the consensus policy from configuration.")
	{
		t.Logf("\tTest 0:\tWhen selecting each configured policy.")
		{
			gen := genesis.Genesis{
				Difficulty: 1,
				MinStake:   100,
				Stakes: map[string]uint64{
					string(minerA): 500,
				},
			}

			pow, err := consensus.New(consensus.TypePOW, gen, nil)
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to select proof of work: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to select proof of work: %s.", success, pow.Name())

			pos, err := consensus.New(consensus.TypePOS, gen, nil)
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to select proof of stake: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to select proof of stake: %s.", success, pos.Name())

			if _, err := consensus.New("bogus", gen, nil); err == nil {
				t.Fatalf("\t%s\tTest 0:\tShould reject an unknown policy.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould reject an unknown policy.", success)
		}

		t.Logf("\tTest 1:\tWhen the genesis difficulty is out of range.")
		{
			gen := genesis.Genesis{Difficulty: uint16(consensus.MaxDifficulty) + 1}

			if _, err := consensus.New(consensus.TypePOW, gen, nil); err == nil {
				t.Fatalf("\t%s\tTest 1:\tShould reject a difficulty beyond the maximum.", failed)
			}
			t.Logf("\t%s\tTest 1:\tShould reject a difficulty beyond the maximum.", success)

			gen.Difficulty = uint16(consensus.MaxDifficulty)
			if _, err := consensus.New(consensus.TypePOW, gen, nil); err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould accept the maximum difficulty: %v", failed, err)
			}
			t.Logf("\t%s\tTest 1:\tShould accept the maximum difficulty.", success)
		}

		t.Logf("\tTest 2:\tWhen the genesis stakes seed the validator set.")
		{
			gen := genesis.Genesis{
				MinStake: 100,
				Stakes: map[string]uint64{
					string(minerA): 500,
				},
			}

			policy, err := consensus.New(consensus.TypePOS, gen, nil)
			if err != nil {
				t.Fatalf("\t%s\tTest 2:\tShould be able to select proof of stake: %v", failed, err)
			}
			t.Logf("\t%s\tTest 2:\tShould be able to select proof of stake.", success)

			pos, ok := policy.(*consensus.ProofOfStake)
			if !ok {
				t.Fatalf("\t%s\tTest 2:\tShould get a ProofOfStake policy.", failed)
			}

			if got := pos.Stake(minerA); got != 500 {
				t.Fatalf("\t%s\tTest 2:\tShould carry the genesis stake of 500: got %d", failed, got)
			}
			t.Logf("\t%s\tTest 2:\tShould carry the genesis stake of 500.", success)
		}
	}
}
