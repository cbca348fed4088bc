// Package database maintains the chain of blocks in memory along with the
// block and transaction types shared with peers.
package database

import (
	"errors"
	"sync"

	"github.com/ardanlabs/powledger/foundation/blockchain/genesis"
)

// ErrEmptyChain is returned when the chain is accessed before the genesis
// block exists.
var ErrEmptyChain = errors.New("chain has no blocks")

// =============================================================================

// Database manages the chain of blocks for a node.
type Database struct {
	mu      sync.RWMutex
	genesis genesis.Genesis
	blocks  []Block
}

// New constructs a new database holding only the genesis block.
func New(gen genesis.Genesis) *Database {
	return &Database{
		genesis: gen,
		blocks:  []Block{NewGenesisBlock(gen)},
	}
}

// Genesis returns the genesis information the chain was started with.
func (db *Database) Genesis() genesis.Genesis {
	return db.genesis
}

// Write appends the block to the end of the chain.
func (db *Database) Write(block Block) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.blocks = append(db.blocks, block)
}

// LatestBlock returns the last block in the chain.
func (db *Database) LatestBlock() (Block, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	if len(db.blocks) == 0 {
		return Block{}, ErrEmptyChain
	}

	return db.blocks[len(db.blocks)-1], nil
}

// Length returns the number of blocks in the chain.
func (db *Database) Length() int {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return len(db.blocks)
}

// Copy returns a copy of the chain.
func (db *Database) Copy() []Block {
	db.mu.RLock()
	defer db.mu.RUnlock()

	blocks := make([]Block, len(db.blocks))
	copy(blocks, db.blocks)

	return blocks
}

// Replace swaps the whole chain for the specified blocks when they are
// longer than the current chain. It reports whether the swap happened.
func (db *Database) Replace(blocks []Block) bool {
	db.mu.Lock()
	defer db.mu.Unlock()

	if len(blocks) <= len(db.blocks) {
		return false
	}

	cpy := make([]Block, len(blocks))
	copy(cpy, blocks)
	db.blocks = cpy

	return true
}
