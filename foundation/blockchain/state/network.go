package state

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/ardanlabs/powledger/foundation/blockchain/database"
	"github.com/ardanlabs/powledger/foundation/blockchain/peer"
)

// Set of errors returned when a peer's chain can't be retrieved.
var (
	ErrPeerUnreachable = errors.New("peer is unreachable")
	ErrPeerStatus      = errors.New("peer responded with an unexpected status")
	ErrPeerMalformed   = errors.New("peer responded with a malformed chain")
)

// baseURL is the address of a peer's api.
const baseURL = "http://%s"

// DefaultMaxChainBytes caps the size of a chain document read from a peer
// when no limit is configured.
const DefaultMaxChainBytes = 32 << 20

// =============================================================================

// ChainResponse is the document a node returns for its chain. Peers rely on
// this exact shape when they fetch each other's chains.
type ChainResponse struct {
	Chain  []database.Block `json:"chain"`
	Length int              `json:"length"`
}

// HTTPFetcher retrieves a peer's chain over http.
type HTTPFetcher struct {
	client   *http.Client
	maxBytes int64
}

// NewHTTPFetcher constructs a fetcher that uses the specified client for
// every request. Response bodies larger than maxBytes are rejected as
// malformed. A maxBytes of zero or less uses DefaultMaxChainBytes.
func NewHTTPFetcher(client *http.Client, maxBytes int64) *HTTPFetcher {
	if client == nil {
		client = http.DefaultClient
	}

	if maxBytes <= 0 {
		maxBytes = DefaultMaxChainBytes
	}

	return &HTTPFetcher{
		client:   client,
		maxBytes: maxBytes,
	}
}

// FetchChain asks the peer for its full chain.
func (f *HTTPFetcher) FetchChain(ctx context.Context, pr peer.Peer) ([]database.Block, error) {
	url := fmt.Sprintf("%s/chain", fmt.Sprintf(baseURL, pr.Host))

	var resp ChainResponse
	if err := send(ctx, f.client, f.maxBytes, http.MethodGet, url, nil, &resp); err != nil {
		return nil, err
	}

	if resp.Length != len(resp.Chain) {
		return nil, fmt.Errorf("%w: length[%d] doesn't match blocks[%d]", ErrPeerMalformed, resp.Length, len(resp.Chain))
	}

	return resp.Chain, nil
}

// =============================================================================

// send is a helper function to send an HTTP request to a node. No more than
// maxBytes of the response body are decoded.
func send(ctx context.Context, client *http.Client, maxBytes int64, method string, url string, dataSend any, dataRecv any) error {
	var body io.Reader
	if dataSend != nil {
		data, err := json.Marshal(dataSend)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrPeerUnreachable, err)
	}

	if dataSend != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrPeerUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if resp.StatusCode != http.StatusOK {
		msg, err := io.ReadAll(io.LimitReader(resp.Body, 512))
		if err != nil {
			return fmt.Errorf("%w: status[%d]", ErrPeerStatus, resp.StatusCode)
		}
		return fmt.Errorf("%w: status[%d]: %s", ErrPeerStatus, resp.StatusCode, bytes.TrimSpace(msg))
	}

	if dataRecv != nil {
		lr := io.LimitReader(resp.Body, maxBytes+1)
		data, err := io.ReadAll(lr)
		if err != nil {
			return fmt.Errorf("%w: %s", ErrPeerUnreachable, err)
		}

		if int64(len(data)) > maxBytes {
			return fmt.Errorf("%w: body exceeds %d bytes", ErrPeerMalformed, maxBytes)
		}

		if err := json.Unmarshal(data, dataRecv); err != nil {
			return fmt.Errorf("%w: %s", ErrPeerMalformed, err)
		}
	}

	return nil
}
