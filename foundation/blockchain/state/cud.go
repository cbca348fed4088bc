package state

import (
	"fmt"

	"github.com/ardanlabs/powledger/foundation/blockchain/peer"
)

// RegisterPeers parses and adds every address to the known peer list. No
// peer is added unless every address is valid. The full list of known peers
// is returned.
func (s *State) RegisterPeers(addresses []string) ([]peer.Peer, error) {
	peers := make([]peer.Peer, 0, len(addresses))
	for _, address := range addresses {
		pr, err := peer.Parse(address)
		if err != nil {
			return nil, fmt.Errorf("address[%s]: %w", address, err)
		}
		peers = append(peers, pr)
	}

	var added int
	for _, pr := range peers {
		if s.AddKnownPeer(pr) {
			added++
		}
	}

	if added > 0 && s.Worker != nil {
		s.Worker.SignalResolve()
	}

	return s.knownPeers.Copy(""), nil
}

// AddKnownPeer provides the ability to add a new peer to
// the known peer list.
func (s *State) AddKnownPeer(pr peer.Peer) bool {
	if pr.Match(s.host) {
		return false
	}

	if !s.knownPeers.Add(pr) {
		return false
	}

	s.evHandler("state: AddKnownPeer: add peer[%s]", pr)

	return true
}

// RemoveKnownPeer provides the ability to remove a peer from
// the known peer list.
func (s *State) RemoveKnownPeer(pr peer.Peer) {
	s.knownPeers.Remove(pr)
}
