package digest_test

import (
	"encoding/json"
	"testing"

	"github.com/ardanlabs/powledger/foundation/blockchain/digest"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func Test_Canonical(t *testing.T) {
	type table struct {
		name string
		a    string
		b    string
	}

	tt := []table{
		{
			name: "flat",
			a:    `{"sender":"A","recipient":"B","amount":10}`,
			b:    `{"amount":10,"recipient":"B","sender":"A"}`,
		},
		{
			name: "nested",
			a:    `{"index":2,"transactions":[{"sender":"A","amount":1.5,"recipient":"B"}],"proof":35293}`,
			b:    `{"proof":35293,"index":2,"transactions":[{"recipient":"B","sender":"A","amount":1.5}]}`,
		},
	}

	t.Log("Given the need to hash values independent of key order.")
	{
		for testID, tst := range tt {
			f := func(t *testing.T) {
				var a, b map[string]any
				if err := json.Unmarshal([]byte(tst.a), &a); err != nil {
					t.Fatalf("\t%s\tTest %d:\tShould be able to unmarshal a: %v", failed, testID, err)
				}
				if err := json.Unmarshal([]byte(tst.b), &b); err != nil {
					t.Fatalf("\t%s\tTest %d:\tShould be able to unmarshal b: %v", failed, testID, err)
				}

				ha := digest.Hash(a)
				hb := digest.Hash(b)
				if ha != hb {
					t.Logf("\t%s\tTest %d:\tgot: %s", failed, testID, hb)
					t.Logf("\t%s\tTest %d:\texp: %s", failed, testID, ha)
					t.Fatalf("\t%s\tTest %d:\tShould get the same hash for both orders.", failed, testID)
				}
				t.Logf("\t%s\tTest %d:\tShould get the same hash for both orders.", success, testID)

				if len(ha) != 64 {
					t.Fatalf("\t%s\tTest %d:\tShould get a 64 character hex digest: %d", failed, testID, len(ha))
				}
				t.Logf("\t%s\tTest %d:\tShould get a 64 character hex digest.", success, testID)
			}

			t.Run(tst.name, f)
		}
	}
}

func Test_Sum(t *testing.T) {
	const exp = "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"

	if got := digest.Sum(nil); got != exp {
		t.Logf("\t%s\tgot: %s", failed, got)
		t.Logf("\t%s\texp: %s", failed, exp)
		t.Fatalf("\t%s\tShould get the SHA-256 of empty input.", failed)
	}
	t.Logf("\t%s\tShould get the SHA-256 of empty input.", success)
}
