package cmd

import (
	"net/http"

	"github.com/ardanlabs/powledger/foundation/blockchain/database"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var registerCmd = &cobra.Command{
	Use:   "register [address...]",
	Short: "Register peers with the node",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req := struct {
			Nodes []string `json:"nodes"`
		}{
			Nodes: args,
		}

		var resp struct {
			Message    string   `json:"message"`
			TotalNodes []string `json:"total_nodes"`
		}
		if err := call(cmd.Context(), http.MethodPost, "/nodes/register", req, &resp); err != nil {
			return err
		}

		pterm.Success.Println(resp.Message)
		renderHosts(resp.TotalNodes)

		return nil
	},
}

var peersCmd = &cobra.Command{
	Use:   "peers",
	Short: "List the node's known peers",
	RunE: func(cmd *cobra.Command, args []string) error {
		var resp struct {
			Nodes []string `json:"nodes"`
		}
		if err := call(cmd.Context(), http.MethodGet, "/nodes/list", nil, &resp); err != nil {
			return err
		}

		renderHosts(resp.Nodes)

		return nil
	},
}

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Ask the node to resolve conflicts with its peers",
	RunE: func(cmd *cobra.Command, args []string) error {
		var resp struct {
			Message  string           `json:"message"`
			Replaced bool             `json:"replaced"`
			Chain    []database.Block `json:"chain"`
		}
		if err := call(cmd.Context(), http.MethodGet, "/nodes/resolve", nil, &resp); err != nil {
			return err
		}

		switch resp.Replaced {
		case true:
			pterm.Warning.Println(resp.Message)
		default:
			pterm.Success.Println(resp.Message)
		}
		renderChain(resp.Chain)

		return nil
	},
}

var pendingCmd = &cobra.Command{
	Use:   "pending",
	Short: "List the transactions waiting for the next block",
	RunE: func(cmd *cobra.Command, args []string) error {
		var resp struct {
			Transactions []database.Tx `json:"transactions"`
		}
		if err := call(cmd.Context(), http.MethodGet, "/transactions/pending", nil, &resp); err != nil {
			return err
		}

		return renderTransactions(resp.Transactions)
	},
}

func init() {
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(peersCmd)
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(pendingCmd)
}

// renderHosts prints the hosts as a bullet list.
func renderHosts(hosts []string) {
	items := make([]pterm.BulletListItem, len(hosts))
	for i, host := range hosts {
		items[i] = pterm.BulletListItem{Level: 0, Text: host}
	}

	pterm.DefaultBulletList.WithItems(items).Render()
}
