package database

import (
	"time"

	"github.com/ardanlabs/powledger/foundation/blockchain/digest"
	"github.com/ardanlabs/powledger/foundation/blockchain/genesis"
)

// Block represents a group of transactions sealed into the chain. The JSON
// form of a block is the wire format shared with peers, so every field takes
// part in the hash.
type Block struct {
	Index        uint64  `json:"index"`         // Position in the chain, genesis is 1.
	Timestamp    float64 `json:"timestamp"`     // Unix time in seconds the block was sealed.
	Transactions []Tx    `json:"transactions"`  // Transactions sealed into this block in submission order.
	Proof        int64   `json:"proof"`         // Solution to the puzzle relative to the previous block's proof.
	PreviousHash string  `json:"previous_hash"` // Hash of the previous block or the genesis sentinel.
}

// NewBlock constructs the block that follows the latest block. An empty
// previousHash means the hash of the latest block is used.
func NewBlock(latest Block, trans []Tx, proof int64, previousHash string, now time.Time) Block {
	if previousHash == "" {
		previousHash = latest.Hash()
	}

	return Block{
		Index:        latest.Index + 1,
		Timestamp:    toTimestamp(now),
		Transactions: copyTrans(trans),
		Proof:        proof,
		PreviousHash: previousHash,
	}
}

// NewGenesisBlock constructs the first block of the chain from the genesis
// information. The genesis block is never validated against the puzzle.
func NewGenesisBlock(gen genesis.Genesis) Block {
	return Block{
		Index:        1,
		Timestamp:    toTimestamp(gen.Date),
		Transactions: []Tx{},
		Proof:        gen.Proof,
		PreviousHash: gen.PreviousHash,
	}
}

// Hash returns the unique hash for the Block. The hash is computed over the
// canonical encoding so it doesn't depend on how a peer ordered the fields.
func (b Block) Hash() string {
	return digest.Hash(b)
}

// =============================================================================

// toTimestamp converts the time to unix seconds with a fractional part.
func toTimestamp(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}

// copyTrans returns a copy of the transactions that is never nil so an empty
// block always encodes the same way.
func copyTrans(trans []Tx) []Tx {
	cpy := make([]Tx, len(trans))
	copy(cpy, trans)
	return cpy
}
