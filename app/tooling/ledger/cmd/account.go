package cmd

import (
	"github.com/ardanlabs/powledger/foundation/blockchain/identity"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Print the node id for a key",
	RunE: func(cmd *cobra.Command, args []string) error {
		nodeID, err := identity.FromKeyFile(getPrivateKeyPath())
		if err != nil {
			return err
		}

		pterm.Info.Println(nodeID)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(accountCmd)
}
