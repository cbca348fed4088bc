package state

import (
	"context"
	"errors"

	"github.com/ardanlabs/powledger/foundation/blockchain/database"
	"github.com/ardanlabs/powledger/foundation/blockchain/pow"
)

// MineNewBlock solves the puzzle for the latest block and seals the pending
// transactions, plus the reward for this node, into a new block. The search
// runs without holding the state lock. If the chain changes before the block
// is sealed the proof is discarded and the search starts over on the new
// latest block.
func (s *State) MineNewBlock(ctx context.Context) (database.Block, error) {
	s.evHandler("state: MineNewBlock: MINING: started")
	defer s.evHandler("state: MineNewBlock: MINING: completed")

	ctx, cancel := s.miningContext(ctx)
	defer cancel()

	for {
		latest, err := s.RetrieveLatestBlock()
		if err != nil {
			return database.Block{}, err
		}

		s.evHandler("state: MineNewBlock: MINING: perform POW: blk[%d]: lastProof[%d]", latest.Index+1, latest.Proof)

		// Attempt to solve the POW puzzle. This can be cancelled.
		proof, err := pow.FindProof(ctx, latest.Proof, s.evHandler)
		if err != nil {
			return database.Block{}, err
		}

		reward := database.NewRewardTx(s.nodeID, s.genesis.MiningReward)

		block, err := s.sealOn(latest.Hash(), proof, reward)
		if err != nil {
			if errors.Is(err, ErrStaleProof) {
				s.evHandler("state: MineNewBlock: MINING: WARNING: %s", err)
				continue
			}
			return database.Block{}, err
		}

		return block, nil
	}
}

// =============================================================================

// miningContext bounds the search by the caller's context, the configured
// mining timeout, and the shutdown of the node.
func (s *State) miningContext(ctx context.Context) (context.Context, context.CancelFunc) {
	var cancelTimeout context.CancelFunc = func() {}
	if s.mineTimeout > 0 {
		ctx, cancelTimeout = context.WithTimeout(ctx, s.mineTimeout)
	}

	ctx, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(s.shut, cancel)

	return ctx, func() {
		stop()
		cancel()
		cancelTimeout()
	}
}
