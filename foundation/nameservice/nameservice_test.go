package nameservice_test

import (
	"path/filepath"
	"testing"

	"github.com/ardanlabs/powledger/foundation/blockchain/identity"
	"github.com/ardanlabs/powledger/foundation/nameservice"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

func Test_Lookup(t *testing.T) {
	t.Log("Given the need to name the nodes with known keys.")
	{
		root := t.TempDir()

		nodeID, err := identity.Generate(filepath.Join(root, "miner1.ecdsa"))
		if err != nil {
			t.Fatalf("\t%s\tShould be able to generate a key: %v", failed, err)
		}

		ns, err := nameservice.New(root)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to load the keys: %v", failed, err)
		}
		t.Logf("\t%s\tShould be able to load the keys.", success)

		if name := ns.Lookup(nodeID); name != "miner1" {
			t.Fatalf("\t%s\tShould name the node after its key file: got %s", failed, name)
		}
		t.Logf("\t%s\tShould name the node after its key file.", success)

		if name := ns.Lookup("0"); name != "0" {
			t.Fatalf("\t%s\tShould return unknown ids as is: got %s", failed, name)
		}
		t.Logf("\t%s\tShould return unknown ids as is.", success)

		empty, err := nameservice.New(filepath.Join(root, "missing"))
		if err != nil {
			t.Fatalf("\t%s\tShould accept a missing folder: %v", failed, err)
		}
		if n := len(empty.Copy()); n != 0 {
			t.Fatalf("\t%s\tShould have no names for a missing folder: got %d", failed, n)
		}
		t.Logf("\t%s\tShould accept a missing folder.", success)
	}
}
