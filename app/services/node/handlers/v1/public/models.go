package public

import (
	"github.com/ardanlabs/powledger/foundation/blockchain/database"
)

// NewTx is what we require from clients when submitting a transaction.
type NewTx struct {
	Sender    string   `json:"sender" validate:"required"`
	Recipient string   `json:"recipient" validate:"required"`
	Amount    *float64 `json:"amount" validate:"required"`
}

// toTx converts the submission into a transaction.
func (ntx NewTx) toTx() database.Tx {
	return database.NewTx(ntx.Sender, ntx.Recipient, *ntx.Amount)
}

// RegisterNodes is what we require from clients when registering peers.
type RegisterNodes struct {
	Nodes []string `json:"nodes" validate:"required,dive,required"`
}

// =============================================================================

type mined struct {
	Message      string        `json:"message"`
	Index        uint64        `json:"index"`
	Transactions []database.Tx `json:"transactions"`
	Proof        int64         `json:"proof"`
	PreviousHash string        `json:"previous_hash"`
}

type submitted struct {
	Message string `json:"message"`
	Index   uint64 `json:"index"`
}

type registered struct {
	Message    string   `json:"message"`
	TotalNodes []string `json:"total_nodes"`
}

type resolved struct {
	Message  string           `json:"message"`
	Replaced bool             `json:"replaced"`
	Chain    []database.Block `json:"chain"`
}

type nodes struct {
	Nodes []string `json:"nodes"`
}

type pending struct {
	Transactions []database.Tx `json:"transactions"`
	Length       int           `json:"length"`
}
