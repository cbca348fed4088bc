package state

import "github.com/ardanlabs/powledger/foundation/blockchain/database"

// SealOn exposes sealOn for the stale proof tests.
func (s *State) SealOn(parentHash string, proof int64, reward database.Tx) (database.Block, error) {
	return s.sealOn(parentHash, proof, reward)
}
