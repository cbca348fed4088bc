// Package pow implements the proof of work puzzle that admits new blocks.
// A proof is valid for a previous proof when the SHA-256 of both numbers,
// written in base 10 with no separator, starts with Difficulty zeros.
package pow

import (
	"context"
	"strconv"

	"github.com/ardanlabs/powledger/foundation/blockchain/digest"
)

// Difficulty is the number of leading hex zeros a solution needs.
const Difficulty = 4

// reportEvery controls how often the search reports progress.
const reportEvery = 100_000

// =============================================================================

// IsValidProof reports whether proof solves the puzzle relative to lastProof.
func IsValidProof(lastProof int64, proof int64) bool {
	guess := strconv.FormatInt(lastProof, 10) + strconv.FormatInt(proof, 10)
	return isHashSolved(digest.Sum([]byte(guess)))
}

// FindProof searches proofs 0, 1, 2, ... and returns the first that solves the
// puzzle for lastProof. The search stops with the context's error when the
// context is cancelled.
func FindProof(ctx context.Context, lastProof int64, ev func(v string, args ...any)) (int64, error) {
	if ev == nil {
		ev = func(string, ...any) {}
	}

	ev("pow: FindProof: MINING: started: lastProof[%d]", lastProof)
	defer ev("pow: FindProof: MINING: completed: lastProof[%d]", lastProof)

	for proof := int64(0); ; proof++ {
		if proof > 0 && proof%reportEvery == 0 {
			ev("pow: FindProof: MINING: attempts[%d]", proof)
		}

		// Did we timeout trying to solve the problem.
		if err := ctx.Err(); err != nil {
			ev("pow: FindProof: MINING: CANCELLED")
			return 0, err
		}

		if IsValidProof(lastProof, proof) {
			ev("pow: FindProof: MINING: SOLVED: proof[%d]", proof)
			return proof, nil
		}
	}
}

// isHashSolved checks the hash to make sure it complies with
// the POW rules. We need to match a difficulty number of 0's.
func isHashSolved(hash string) bool {
	const match = "0000000000000000"

	if len(hash) != 64 {
		return false
	}

	return hash[:Difficulty] == match[:Difficulty]
}
