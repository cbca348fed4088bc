package database

import (
	"errors"
	"fmt"

	"github.com/ardanlabs/powledger/foundation/blockchain/pow"
)

// ErrInvalidChain is returned when a chain fails validation.
var ErrInvalidChain = errors.New("invalid chain")

// =============================================================================

// ValidateChain checks every block after genesis links to the hash of its
// parent and carries a proof that solves the puzzle for the parent's proof.
// The genesis block is trusted as is. The chain is only read, so a chain
// received from a peer can be checked without touching local state.
func ValidateChain(blocks []Block) error {
	for i := 1; i < len(blocks); i++ {
		prev := blocks[i-1]
		cur := blocks[i]

		if hash := prev.Hash(); cur.PreviousHash != hash {
			return fmt.Errorf("%w: blk[%d]: previous hash doesn't match parent, got %s, exp %s", ErrInvalidChain, cur.Index, cur.PreviousHash, hash)
		}

		if !pow.IsValidProof(prev.Proof, cur.Proof) {
			return fmt.Errorf("%w: blk[%d]: proof %d doesn't solve parent proof %d", ErrInvalidChain, cur.Index, cur.Proof, prev.Proof)
		}
	}

	return nil
}

// IsValidChain reports whether the chain passes ValidateChain.
func IsValidChain(blocks []Block) bool {
	return ValidateChain(blocks) == nil
}
