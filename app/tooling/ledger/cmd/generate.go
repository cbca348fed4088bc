package cmd

import (
	"github.com/ardanlabs/powledger/foundation/blockchain/identity"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a new node key",
	RunE:  generateRun,
}

func init() {
	rootCmd.AddCommand(generateCmd)
}

func generateRun(cmd *cobra.Command, args []string) error {
	path := getPrivateKeyPath()

	nodeID, err := identity.Generate(path)
	if err != nil {
		return err
	}

	pterm.Success.Printfln("key written to %s", path)
	pterm.Info.Printfln("node id: %s", nodeID)

	return nil
}
