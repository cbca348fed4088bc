package state

import (
	"github.com/ardanlabs/powledger/foundation/blockchain/database"
)

// SubmitTransaction accepts a transaction for inclusion in the next block and
// returns the index of the block it is expected to be sealed into.
func (s *State) SubmitTransaction(tx database.Tx) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := s.mempool.Append(tx)

	index := uint64(s.db.Length()) + 1

	s.evHandler("state: SubmitTransaction: tx[%s]: pool[%d]: blk[%d]", tx, n, index)

	return index
}
