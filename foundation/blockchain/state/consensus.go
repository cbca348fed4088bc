package state

import (
	"context"

	"github.com/ardanlabs/powledger/foundation/blockchain/database"
	"github.com/ardanlabs/powledger/foundation/blockchain/peer"
	"golang.org/x/sync/errgroup"
)

// FetchResult is the outcome of asking a single peer for its chain.
type FetchResult struct {
	Peer  peer.Peer
	Chain []database.Block
	Err   error
}

// ResolveConflicts applies the longest valid chain rule. Every known peer is
// asked for its chain and the longest chain that is strictly longer than the
// local chain and passes validation replaces the local chain whole. Peers
// that fail to answer or answer with an invalid chain are skipped. It
// reports whether the local chain was replaced.
func (s *State) ResolveConflicts(ctx context.Context) (bool, error) {
	s.evHandler("state: ResolveConflicts: started")
	defer s.evHandler("state: ResolveConflicts: completed")

	results := s.fetchChains(ctx, s.RetrieveKnownPeers())
	if err := ctx.Err(); err != nil {
		return false, err
	}

	best := s.bestChain(results)
	if best == nil {
		s.evHandler("state: ResolveConflicts: local chain is authoritative: length[%d]", s.db.Length())
		return false, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// The chain may have grown while the peers were queried.
	if !s.db.Replace(best) {
		s.evHandler("state: ResolveConflicts: candidate no longer longer: length[%d]", len(best))
		return false, nil
	}

	s.evHandler("state: ResolveConflicts: chain replaced: length[%d]", len(best))

	return true, nil
}

// =============================================================================

// fetchChains asks each peer for its chain concurrently. The result for
// every peer is returned in the same order as the peers.
func (s *State) fetchChains(ctx context.Context, peers []peer.Peer) []FetchResult {
	results := make([]FetchResult, len(peers))

	var g errgroup.Group
	g.SetLimit(s.maxFetches)

	for i, pr := range peers {
		i, pr := i, pr
		g.Go(func() error {
			chain, err := s.fetcher.FetchChain(ctx, pr)
			results[i] = FetchResult{Peer: pr, Chain: chain, Err: err}
			return nil
		})
	}

	g.Wait()

	return results
}

// bestChain folds the results into the longest valid chain that is longer
// than the local chain. A nil chain means no candidate was found.
func (s *State) bestChain(results []FetchResult) []database.Block {
	bestLength := s.db.Length()
	var best []database.Block

	for _, res := range results {
		if res.Err != nil {
			s.evHandler("state: ResolveConflicts: peer[%s]: WARNING: %s", res.Peer, res.Err)
			continue
		}

		if len(res.Chain) <= bestLength {
			s.evHandler("state: ResolveConflicts: peer[%s]: ignored: length[%d]", res.Peer, len(res.Chain))
			continue
		}

		if err := database.ValidateChain(res.Chain); err != nil {
			s.evHandler("state: ResolveConflicts: peer[%s]: WARNING: %s", res.Peer, err)
			continue
		}

		s.evHandler("state: ResolveConflicts: peer[%s]: candidate: length[%d]", res.Peer, len(res.Chain))

		bestLength = len(res.Chain)
		best = res.Chain
	}

	return best
}
