package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ardanlabs/powledger/foundation/blockchain/database"
)

// ErrStaleProof is returned when a proof was found for a block that is no
// longer the latest block in the chain.
var ErrStaleProof = errors.New("proof is stale, the chain has moved on")

// =============================================================================

// SealBlock moves every pending transaction into a new block using the
// specified proof and appends it to the chain. An empty previousHash means
// the hash of the latest block is used. The proof is not checked.
func (s *State) SealBlock(proof int64, previousHash string) (database.Block, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.seal(proof, previousHash)
}

// =============================================================================

// sealOn seals the pending transactions plus the reward into a new block as
// long as the latest block still has the specified hash.
func (s *State) sealOn(parentHash string, proof int64, reward database.Tx) (database.Block, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	latest, err := s.db.LatestBlock()
	if err != nil {
		return database.Block{}, err
	}

	if hash := latest.Hash(); hash != parentHash {
		return database.Block{}, fmt.Errorf("%w: parent[%s]: latest[%s]", ErrStaleProof, parentHash, hash)
	}

	s.mempool.Append(reward)

	return s.seal(proof, parentHash)
}

// seal drains the mempool into a new block and writes it to the database.
// The caller must hold the state lock.
func (s *State) seal(proof int64, previousHash string) (database.Block, error) {
	latest, err := s.db.LatestBlock()
	if err != nil {
		return database.Block{}, err
	}

	block := database.NewBlock(latest, s.mempool.Drain(), proof, previousHash, time.Now())
	s.db.Write(block)

	s.evHandler("state: seal: blk[%d]: numTrans[%d]: proof[%d]", block.Index, len(block.Transactions), block.Proof)

	s.blockEvent(block)

	return block, nil
}

// blockEvent provides a specific event about a new block in the chain for
// application specific support.
func (s *State) blockEvent(block database.Block) {
	blockJSON, err := json.Marshal(block)
	if err != nil {
		blockJSON = []byte(fmt.Sprintf("%q", err.Error()))
	}

	s.evHandler(`viewer: block: {"hash":%q,"block":%s}`, block.Hash(), string(blockJSON))
}
