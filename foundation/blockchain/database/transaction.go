package database

import "fmt"

// SystemSender is the sender recorded on transactions created by the node
// itself, such as the reward for mining a block.
const SystemSender = "0"

// =============================================================================

// Tx is the transactional information between two parties. No ownership or
// balance rules are applied to the values.
type Tx struct {
	Sender    string  `json:"sender"`    // Opaque identifier of the party sending the value.
	Recipient string  `json:"recipient"` // Opaque identifier of the party receiving the value.
	Amount    float64 `json:"amount"`    // Value being transferred.
}

// NewTx constructs a new transaction.
func NewTx(sender string, recipient string, amount float64) Tx {
	return Tx{
		Sender:    sender,
		Recipient: recipient,
		Amount:    amount,
	}
}

// NewRewardTx constructs the transaction crediting a node for mining a block.
func NewRewardTx(nodeID string, reward float64) Tx {
	return NewTx(SystemSender, nodeID, reward)
}

// String implements the fmt.Stringer interface for logging.
func (tx Tx) String() string {
	return fmt.Sprintf("%s->%s:%v", tx.Sender, tx.Recipient, tx.Amount)
}
