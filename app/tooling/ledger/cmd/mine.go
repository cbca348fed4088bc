package cmd

import (
	"net/http"

	"github.com/ardanlabs/powledger/foundation/blockchain/database"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var mineCmd = &cobra.Command{
	Use:   "mine",
	Short: "Ask the node to mine the next block",
	RunE:  mineRun,
}

func init() {
	rootCmd.AddCommand(mineCmd)
}

func mineRun(cmd *cobra.Command, args []string) error {
	spinner, _ := pterm.DefaultSpinner.Start("mining")

	var resp struct {
		Message      string        `json:"message"`
		Index        uint64        `json:"index"`
		Transactions []database.Tx `json:"transactions"`
		Proof        int64         `json:"proof"`
		PreviousHash string        `json:"previous_hash"`
	}
	if err := call(cmd.Context(), http.MethodGet, "/mine", nil, &resp); err != nil {
		spinner.Fail(err.Error())
		return err
	}

	spinner.Success(resp.Message)

	pterm.DefaultBox.WithTitle("block").Printfln("index: %d\nproof: %d\nprevious hash: %s", resp.Index, resp.Proof, resp.PreviousHash)

	return renderTransactions(resp.Transactions)
}

// renderTransactions prints the transactions as a table. Node ids with a
// key under the account path are shown by name.
func renderTransactions(trans []database.Tx) error {
	ns := loadNames()

	data := pterm.TableData{{"Sender", "Recipient", "Amount"}}
	for _, tx := range trans {
		data = append(data, []string{ns.Lookup(tx.Sender), ns.Lookup(tx.Recipient), pterm.Sprint(tx.Amount)})
	}

	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}
