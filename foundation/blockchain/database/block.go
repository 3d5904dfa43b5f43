package database

import (
	"time"

	"github.com/mockchain/mockchain/foundation/blockchain/signature"
)

// BlockHeader represents common information required for each block.
type BlockHeader struct {
	Number        uint64    `json:"number"`          // Block number in the chain, starting at 0 for genesis.
	TimeStamp     uint64    `json:"timestamp"`       // Time the block was created.
	PrevBlockHash string    `json:"prev_block_hash"` // Hash of the previous block in the chain.
	Nonce         uint64    `json:"nonce"`           // Value identified to solve the hash solution. Meaningful only under POW.
	BeneficiaryID AccountID `json:"beneficiary"`     // The account receiving the mining reward.
}

// Block represents a group of transactions bundled together with the
// chain-linking metadata and its own content hash.
type Block struct {
	Header BlockHeader `json:"header"`
	Trans  []SignedTx  `json:"trans"`
	Hash   string      `json:"hash"`
}

// NewBlock constructs an unsealed block for the specified chain position.
// The Hash field is left for the consensus policy to set once the block
// satisfies its validity predicate.
func NewBlock(beneficiaryID AccountID, number uint64, prevBlockHash string, trans []SignedTx) Block {
	return Block{
		Header: BlockHeader{
			Number:        number,
			TimeStamp:     uint64(time.Now().UTC().Unix()),
			PrevBlockHash: prevBlockHash,
			Nonce:         0,
			BeneficiaryID: beneficiaryID,
		},
		Trans: trans,
	}
}

// NewGenesisBlock constructs the first block of a chain. The previous hash
// is the zero sentinel and the hash is computed normally with no difficulty
// requirement.
func NewGenesisBlock(date time.Time) Block {
	block := Block{
		Header: BlockHeader{
			Number:        0,
			TimeStamp:     uint64(date.UTC().Unix()),
			PrevBlockHash: signature.ZeroHash,
		},
	}
	block.Hash = block.ComputeHash()

	return block
}

// ComputeHash returns the unique hash for the block based on the header and
// the full ordered transaction list. Any single field change produces a
// different hash, which is what makes tampering detectable.
func (b Block) ComputeHash() string {
	content := struct {
		Header BlockHeader `json:"header"`
		Trans  []SignedTx  `json:"trans"`
	}{
		Header: b.Header,
		Trans:  b.Trans,
	}

	return signature.Hash(content)
}
