// Package genesis maintains access to the genesis file.
package genesis

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Default values for the genesis block. Every node on a network must use
// the same values or their chains can never be compared.
const (
	DefaultProof        int64   = 100
	DefaultPreviousHash string  = "1"
	DefaultMiningReward float64 = 1
)

// DefaultDate is the timestamp written into the genesis block.
var DefaultDate = time.Date(2018, time.January, 1, 0, 0, 0, 0, time.UTC)

// Genesis represents the genesis file.
type Genesis struct {
	Date         time.Time `json:"date"`          // Timestamp of the genesis block.
	Proof        int64     `json:"proof"`         // Conventional proof of the genesis block, not itself puzzle valid.
	PreviousHash string    `json:"previous_hash"` // Sentinel used in place of a parent hash.
	MiningReward float64   `json:"mining_reward"` // Amount credited to a node for mining a block.
}

// =============================================================================

// Default returns the genesis values used when no genesis file is provided.
func Default() Genesis {
	return Genesis{
		Date:         DefaultDate,
		Proof:        DefaultProof,
		PreviousHash: DefaultPreviousHash,
		MiningReward: DefaultMiningReward,
	}
}

// Load opens and consumes the genesis file. Fields missing from the file
// keep their default values. An empty path returns the defaults.
func Load(path string) (Genesis, error) {
	genesis := Default()
	if path == "" {
		return genesis, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return Genesis{}, fmt.Errorf("reading genesis file: %w", err)
	}

	if err := json.Unmarshal(content, &genesis); err != nil {
		return Genesis{}, fmt.Errorf("decoding genesis file: %w", err)
	}

	return genesis, nil
}
