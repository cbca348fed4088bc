package cmd

import (
	"net/http"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	sender    string
	recipient string
	amount    float64
)

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Submit a transaction",
	RunE:  sendRun,
}

func init() {
	rootCmd.AddCommand(sendCmd)
	sendCmd.Flags().StringVarP(&sender, "sender", "s", "", "Sender of the value.")
	sendCmd.Flags().StringVarP(&recipient, "recipient", "r", "", "Recipient of the value.")
	sendCmd.Flags().Float64VarP(&amount, "amount", "v", 0, "Value to send.")
	sendCmd.MarkFlagRequired("sender")
	sendCmd.MarkFlagRequired("recipient")
	sendCmd.MarkFlagRequired("amount")
}

func sendRun(cmd *cobra.Command, args []string) error {
	tx := struct {
		Sender    string  `json:"sender"`
		Recipient string  `json:"recipient"`
		Amount    float64 `json:"amount"`
	}{
		Sender:    sender,
		Recipient: recipient,
		Amount:    amount,
	}

	var resp struct {
		Message string `json:"message"`
		Index   uint64 `json:"index"`
	}
	if err := call(cmd.Context(), http.MethodPost, "/transactions/new", tx, &resp); err != nil {
		return err
	}

	pterm.Success.Println(resp.Message)

	return nil
}
