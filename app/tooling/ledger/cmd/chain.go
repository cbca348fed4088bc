package cmd

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/ardanlabs/powledger/foundation/blockchain/database"
	"github.com/ardanlabs/powledger/foundation/blockchain/peer"
	"github.com/ardanlabs/powledger/foundation/blockchain/state"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var chainCmd = &cobra.Command{
	Use:   "chain",
	Short: "Print and validate the node's chain",
	RunE:  chainRun,
}

func init() {
	rootCmd.AddCommand(chainCmd)
}

func chainRun(cmd *cobra.Command, args []string) error {
	u, err := url.Parse(nodeURL)
	if err != nil {
		return err
	}

	fetcher := state.NewHTTPFetcher(&http.Client{Timeout: requestTimeout}, state.DefaultMaxChainBytes)

	chain, err := fetcher.FetchChain(cmd.Context(), peer.New(u.Host))
	if err != nil {
		return err
	}

	renderChain(chain)

	if err := database.ValidateChain(chain); err != nil {
		pterm.Error.Println(err)
		return nil
	}
	pterm.Success.Printfln("chain of %d blocks is valid", len(chain))

	return nil
}

// renderChain prints the blocks as a table.
func renderChain(chain []database.Block) {
	data := pterm.TableData{{"Index", "Time", "Trans", "Proof", "Previous Hash", "Hash"}}
	for _, blk := range chain {
		sec := int64(blk.Timestamp)
		nsec := int64((blk.Timestamp - float64(sec)) * float64(time.Second))

		data = append(data, []string{
			fmt.Sprint(blk.Index),
			time.Unix(sec, nsec).UTC().Format(time.RFC3339),
			fmt.Sprint(len(blk.Transactions)),
			fmt.Sprint(blk.Proof),
			short(blk.PreviousHash),
			short(blk.Hash()),
		})
	}

	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func short(hash string) string {
	if len(hash) <= 16 {
		return hash
	}
	return hash[:16]
}
