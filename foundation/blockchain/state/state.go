// Package state is the core API for the blockchain and implements all the
// business rules and processing.
package state

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/ardanlabs/powledger/foundation/blockchain/database"
	"github.com/ardanlabs/powledger/foundation/blockchain/genesis"
	"github.com/ardanlabs/powledger/foundation/blockchain/mempool"
	"github.com/ardanlabs/powledger/foundation/blockchain/peer"
)

// defaultMaxPeerFetches is the number of peer chains requested at the same
// time when no value is configured.
const defaultMaxPeerFetches = 8

// =============================================================================

// EventHandler defines a function that is called when events
// occur in the processing of the blockchain.
type EventHandler func(v string, args ...any)

// Worker interface represents the behavior required to be implemented by any
// package providing support for background consensus.
type Worker interface {
	Shutdown()
	SignalResolve()
}

// ChainFetcher interface represents the behavior required to retrieve the
// chain held by a peer.
type ChainFetcher interface {
	FetchChain(ctx context.Context, pr peer.Peer) ([]database.Block, error)
}

// =============================================================================

// Config represents the configuration required to start
// the blockchain node.
type Config struct {
	NodeID         string
	Host           string
	Genesis        genesis.Genesis
	KnownPeers     *peer.PeerSet
	Fetcher        ChainFetcher
	MaxPeerFetches int
	MaxChainBytes  int64
	MineTimeout    time.Duration
	EvHandler      EventHandler
}

// State manages the blockchain database. The chain and the mempool are
// only changed while holding mu, so sealing a block and accepting a
// transaction never interleave.
type State struct {
	mu sync.Mutex

	nodeID      string
	host        string
	evHandler   EventHandler
	maxFetches  int
	mineTimeout time.Duration

	genesis    genesis.Genesis
	knownPeers *peer.PeerSet
	fetcher    ChainFetcher
	mempool    *mempool.Mempool
	db         *database.Database

	shut       context.Context
	cancelShut context.CancelFunc

	Worker Worker
}

// New constructs a new blockchain for data management.
func New(cfg Config) (*State, error) {

	// Build a safe event handler function for use.
	ev := func(v string, args ...any) {
		if cfg.EvHandler != nil {
			cfg.EvHandler(v, args...)
		}
	}

	knownPeers := cfg.KnownPeers
	if knownPeers == nil {
		knownPeers = peer.NewPeerSet()
	}

	fetcher := cfg.Fetcher
	if fetcher == nil {
		fetcher = NewHTTPFetcher(http.DefaultClient, cfg.MaxChainBytes)
	}

	maxFetches := cfg.MaxPeerFetches
	if maxFetches <= 0 {
		maxFetches = defaultMaxPeerFetches
	}

	// The database starts with the genesis block so the chain is never
	// observed empty.
	db := database.New(cfg.Genesis)

	shut, cancel := context.WithCancel(context.Background())

	state := State{
		nodeID:      cfg.NodeID,
		host:        cfg.Host,
		evHandler:   ev,
		maxFetches:  maxFetches,
		mineTimeout: cfg.MineTimeout,

		genesis:    cfg.Genesis,
		knownPeers: knownPeers,
		fetcher:    fetcher,
		mempool:    mempool.New(),
		db:         db,

		shut:       shut,
		cancelShut: cancel,
	}

	// The Worker is not set here. The call to worker.Run will assign itself
	// and start everything up and running for the node.

	return &state, nil
}

// Shutdown cleanly brings the node down. Any mining in progress is
// cancelled.
func (s *State) Shutdown() error {
	s.evHandler("state: shutdown: started")
	defer s.evHandler("state: shutdown: completed")

	s.cancelShut()

	// Stop all background activity.
	if s.Worker != nil {
		s.Worker.Shutdown()
	}

	return nil
}
