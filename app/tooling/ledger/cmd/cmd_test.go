package cmd

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ardanlabs/powledger/business/web/errs"
	"github.com/ardanlabs/powledger/foundation/blockchain/database"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

func Test_SendRun(t *testing.T) {
	pterm.DisableOutput()

	t.Log("Given the need to submit a transaction to a node.")
	{
		type submitted struct {
			Sender    string  `json:"sender"`
			Recipient string  `json:"recipient"`
			Amount    float64 `json:"amount"`
		}
		reqs := make(chan string, 1)
		txs := make(chan submitted, 1)

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqs <- r.Method + " " + r.URL.Path

			var tx submitted
			json.NewDecoder(r.Body).Decode(&tx)
			txs <- tx

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(map[string]any{"message": "Transaction will be added to Block 2", "index": 2})
		}))
		defer srv.Close()

		setFlags(t, srv.URL)
		sender, recipient, amount = "alice", "bob", 5

		if err := sendRun(newCommand(), nil); err != nil {
			t.Fatalf("\t%s\tShould be able to submit the transaction: %v", failed, err)
		}
		t.Logf("\t%s\tShould be able to submit the transaction.", success)

		if req := <-reqs; req != "POST /transactions/new" {
			t.Fatalf("\t%s\tShould post to /transactions/new: got %s", failed, req)
		}
		t.Logf("\t%s\tShould post to /transactions/new.", success)

		if got := <-txs; got.Sender != "alice" || got.Recipient != "bob" || got.Amount != 5 {
			t.Fatalf("\t%s\tShould send the transaction fields: got %+v", failed, got)
		}
		t.Logf("\t%s\tShould send the transaction fields.", success)
	}
}

func Test_SendRunRejected(t *testing.T) {
	pterm.DisableOutput()

	t.Log("Given the need to report a transaction the node rejects.")
	{
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(errs.Response{
				Error:  "data validation error",
				Fields: map[string]string{"sender": "sender is a required field"},
			})
		}))
		defer srv.Close()

		setFlags(t, srv.URL)
		sender, recipient, amount = "", "bob", 5

		err := sendRun(newCommand(), nil)
		if err == nil {
			t.Fatalf("\t%s\tShould fail when the node rejects the transaction.", failed)
		}
		t.Logf("\t%s\tShould fail when the node rejects the transaction.", success)

		if !strings.Contains(err.Error(), "status[400]") || !strings.Contains(err.Error(), "sender is a required field") {
			t.Fatalf("\t%s\tShould carry the status and field errors: got %v", failed, err)
		}
		t.Logf("\t%s\tShould carry the status and field errors.", success)
	}
}

func Test_MineRun(t *testing.T) {
	pterm.DisableOutput()

	t.Log("Given the need to ask a node to mine a block.")
	{
		reqs := make(chan string, 1)

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqs <- r.Method + " " + r.URL.Path

			resp := struct {
				Message      string        `json:"message"`
				Index        uint64        `json:"index"`
				Transactions []database.Tx `json:"transactions"`
				Proof        int64         `json:"proof"`
				PreviousHash string        `json:"previous_hash"`
			}{
				Message:      "New Block Forged",
				Index:        2,
				Transactions: []database.Tx{database.NewTx("0", "node", 1)},
				Proof:        35293,
				PreviousHash: "abc",
			}

			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(resp)
		}))
		defer srv.Close()

		setFlags(t, srv.URL)

		if err := mineRun(newCommand(), nil); err != nil {
			t.Fatalf("\t%s\tShould be able to mine a block: %v", failed, err)
		}
		t.Logf("\t%s\tShould be able to mine a block.", success)

		if req := <-reqs; req != "GET /mine" {
			t.Fatalf("\t%s\tShould get /mine: got %s", failed, req)
		}
		t.Logf("\t%s\tShould get /mine.", success)
	}
}

func Test_MineRunUnreachable(t *testing.T) {
	pterm.DisableOutput()

	t.Log("Given the need to report a node that can't be reached.")
	{
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		setFlags(t, url)

		if err := mineRun(newCommand(), nil); err == nil {
			t.Fatalf("\t%s\tShould fail when the node is down.", failed)
		}
		t.Logf("\t%s\tShould fail when the node is down.", success)
	}
}

// =============================================================================

// setFlags points the commands at the url and an empty account path for the
// duration of the test.
func setFlags(t *testing.T, url string) {
	t.Helper()

	oldURL, oldPath := nodeURL, accountPath
	t.Cleanup(func() {
		nodeURL, accountPath = oldURL, oldPath
	})

	nodeURL = url
	accountPath = t.TempDir()
}

func newCommand() *cobra.Command {
	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())
	return cmd
}
