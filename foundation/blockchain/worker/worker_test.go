package worker_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/ardanlabs/powledger/foundation/blockchain/database"
	"github.com/ardanlabs/powledger/foundation/blockchain/genesis"
	"github.com/ardanlabs/powledger/foundation/blockchain/peer"
	"github.com/ardanlabs/powledger/foundation/blockchain/state"
	"github.com/ardanlabs/powledger/foundation/blockchain/worker"
	"go.uber.org/zap/zaptest"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

// =============================================================================

func Test_Sync(t *testing.T) {
	t.Log("Given the need to sync with known peers at startup.")
	{
		remote := newState(t, nil, nil)
		mine(t, remote, 2)

		fetcher := &fakeFetcher{chains: map[string][]database.Block{"peer1:5000": remote.RetrieveChain()}}

		st := newState(t, fetcher, []string{"peer1:5000"})
		w := worker.Run(st, time.Hour, nil)
		defer st.Shutdown()

		if st.Worker != w {
			t.Fatalf("\t%s\tShould register the worker with the state.", failed)
		}
		t.Logf("\t%s\tShould register the worker with the state.", success)

		if n := st.RetrieveChainLength(); n != 3 {
			t.Fatalf("\t%s\tShould adopt the peer chain before returning: got %d", failed, n)
		}
		t.Logf("\t%s\tShould adopt the peer chain before returning.", success)
	}
}

func Test_SignalResolve(t *testing.T) {
	t.Log("Given the need to resolve when new peers are registered.")
	{
		remote := newState(t, nil, nil)
		mine(t, remote, 1)

		fetcher := &fakeFetcher{chains: map[string][]database.Block{"peer1:5000": remote.RetrieveChain()}}

		st := newState(t, fetcher, nil)
		worker.Run(st, time.Hour, nil)
		defer st.Shutdown()

		if n := st.RetrieveChainLength(); n != 1 {
			t.Fatalf("\t%s\tShould start with the genesis chain: got %d", failed, n)
		}
		t.Logf("\t%s\tShould start with the genesis chain.", success)

		if _, err := st.RegisterPeers([]string{"http://peer1:5000"}); err != nil {
			t.Fatalf("\t%s\tShould be able to register the peer: %v", failed, err)
		}

		deadline := time.Now().Add(5 * time.Second)
		for st.RetrieveChainLength() != 2 {
			if time.Now().After(deadline) {
				t.Fatalf("\t%s\tShould adopt the peer chain after registration.", failed)
			}
			time.Sleep(10 * time.Millisecond)
		}
		t.Logf("\t%s\tShould adopt the peer chain after registration.", success)

		if n := fetcher.count(); n == 0 {
			t.Fatalf("\t%s\tShould fetch the peer chain.", failed)
		}
		t.Logf("\t%s\tShould fetch the peer chain.", success)
	}
}

func Test_Shutdown(t *testing.T) {
	t.Log("Given the need to stop the background work.")
	{
		st := newState(t, nil, nil)
		worker.Run(st, time.Millisecond, nil)

		done := make(chan struct{})
		go func() {
			st.Shutdown()
			close(done)
		}()

		select {
		case <-done:
			t.Logf("\t%s\tShould stop the worker.", success)
		case <-time.After(5 * time.Second):
			t.Fatalf("\t%s\tShould stop the worker.", failed)
		}
	}
}

// =============================================================================

// fakeFetcher serves chains by peer host and counts the requests.
type fakeFetcher struct {
	mu     sync.Mutex
	chains map[string][]database.Block
	calls  int
}

func (f *fakeFetcher) FetchChain(ctx context.Context, pr peer.Peer) ([]database.Block, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls++

	chain, exists := f.chains[pr.Host]
	if !exists {
		return nil, fmt.Errorf("%w: %s", state.ErrPeerUnreachable, pr.Host)
	}

	return chain, nil
}

func (f *fakeFetcher) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.calls
}

func newState(t *testing.T, fetcher state.ChainFetcher, hosts []string) *state.State {
	t.Helper()

	log := zaptest.NewLogger(t).Sugar()

	peers := peer.NewPeerSet()
	for _, host := range hosts {
		peers.Add(peer.New(host))
	}

	st, err := state.New(state.Config{
		NodeID:     "worker-test",
		Host:       "localhost:5000",
		Genesis:    genesis.Default(),
		KnownPeers: peers,
		Fetcher:    fetcher,
		EvHandler: func(v string, args ...any) {
			log.Debugf(v, args...)
		},
	})
	if err != nil {
		t.Fatalf("unable to construct state: %v", err)
	}

	return st
}

func mine(t *testing.T, st *state.State, n int) {
	t.Helper()

	for i := 0; i < n; i++ {
		if _, err := st.MineNewBlock(context.Background()); err != nil {
			t.Fatalf("unable to mine block: %v", err)
		}
	}
}
