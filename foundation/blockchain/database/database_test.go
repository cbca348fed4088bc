package database_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/ardanlabs/powledger/foundation/blockchain/database"
	"github.com/ardanlabs/powledger/foundation/blockchain/genesis"
	"github.com/ardanlabs/powledger/foundation/blockchain/pow"
	"pgregory.net/rapid"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

// =============================================================================

func Test_Genesis(t *testing.T) {
	t.Log("Given the need to start a chain from the genesis block.")
	{
		db := database.New(genesis.Default())

		blk, err := db.LatestBlock()
		if err != nil {
			t.Fatalf("\t%s\tShould be able to get the latest block: %v", failed, err)
		}
		t.Logf("\t%s\tShould be able to get the latest block.", success)

		if blk.Index != 1 || blk.PreviousHash != "1" || blk.Proof != 100 {
			t.Logf("\t%s\tgot: %+v", failed, blk)
			t.Fatalf("\t%s\tShould have index 1, sentinel previous hash and proof 100.", failed)
		}
		t.Logf("\t%s\tShould have index 1, sentinel previous hash and proof 100.", success)

		if !database.IsValidChain(db.Copy()) {
			t.Fatalf("\t%s\tShould treat a genesis only chain as valid.", failed)
		}
		t.Logf("\t%s\tShould treat a genesis only chain as valid.", success)

		other := database.New(genesis.Default())
		if got, exp := mustLatest(t, other).Hash(), blk.Hash(); got != exp {
			t.Fatalf("\t%s\tShould build the same genesis on every node: got %s, exp %s", failed, got, exp)
		}
		t.Logf("\t%s\tShould build the same genesis on every node.", success)

		if !database.IsValidChain(nil) {
			t.Fatalf("\t%s\tShould treat an empty chain as valid.", failed)
		}
		t.Logf("\t%s\tShould treat an empty chain as valid.", success)
	}
}

func Test_Hash(t *testing.T) {
	t.Log("Given the need to hash blocks received from peers.")
	{
		db := database.New(genesis.Default())
		trans := []database.Tx{
			database.NewTx("A", "B", 10),
			database.NewTx("B", "C", 2.5),
		}
		blk := database.NewBlock(mustLatest(t, db), trans, 35293, "", time.Now())

		data, err := json.Marshal(blk)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to marshal the block: %v", failed, err)
		}

		var decoded database.Block
		if err := json.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("\t%s\tShould be able to unmarshal the block: %v", failed, err)
		}

		if decoded.Hash() != blk.Hash() {
			t.Fatalf("\t%s\tShould get the same hash after a round trip.", failed)
		}
		t.Logf("\t%s\tShould get the same hash after a round trip.", success)

		var generic map[string]any
		if err := json.Unmarshal(data, &generic); err != nil {
			t.Fatalf("\t%s\tShould be able to unmarshal into a map: %v", failed, err)
		}

		reordered := `{"previous_hash":` + quote(t, generic["previous_hash"]) +
			`,"proof":35293,"transactions":[{"amount":10,"recipient":"B","sender":"A"},{"recipient":"C","amount":2.5,"sender":"B"}]` +
			`,"timestamp":` + quote(t, generic["timestamp"]) + `,"index":2}`

		var shuffled database.Block
		if err := json.Unmarshal([]byte(reordered), &shuffled); err != nil {
			t.Fatalf("\t%s\tShould be able to unmarshal the reordered block: %v", failed, err)
		}

		if shuffled.Hash() != blk.Hash() {
			t.Logf("\t%s\tgot: %s", failed, shuffled.Hash())
			t.Logf("\t%s\texp: %s", failed, blk.Hash())
			t.Fatalf("\t%s\tShould get the same hash regardless of field order.", failed)
		}
		t.Logf("\t%s\tShould get the same hash regardless of field order.", success)
	}
}

func Test_ValidateChain(t *testing.T) {
	type table struct {
		name   string
		mutate func(blocks []database.Block)
	}

	tt := []table{
		{
			name:   "proof",
			mutate: func(blocks []database.Block) { blocks[2].Proof++ },
		},
		{
			name:   "previous-hash",
			mutate: func(blocks []database.Block) { blocks[1].PreviousHash = "abc" },
		},
		{
			name:   "parent-transactions",
			mutate: func(blocks []database.Block) { blocks[1].Transactions[0].Amount = 1000 },
		},
		{
			name:   "parent-timestamp",
			mutate: func(blocks []database.Block) { blocks[2].Timestamp++ },
		},
	}

	t.Log("Given the need to validate chains.")
	{
		blocks := buildChain(t, database.New(genesis.Default()), 4)

		if err := database.ValidateChain(blocks); err != nil {
			t.Fatalf("\t%s\tShould validate a mined chain: %v", failed, err)
		}
		t.Logf("\t%s\tShould validate a mined chain.", success)

		for testID, tst := range tt {
			f := func(t *testing.T) {
				cpy := cloneChain(blocks)
				tst.mutate(cpy)

				err := database.ValidateChain(cpy)
				if !errors.Is(err, database.ErrInvalidChain) {
					t.Logf("\t%s\tTest %d:\tgot: %v", failed, testID, err)
					t.Fatalf("\t%s\tTest %d:\tShould reject the mutated chain.", failed, testID)
				}
				t.Logf("\t%s\tTest %d:\tShould reject the mutated chain: %v", success, testID, err)

				if !database.IsValidChain(blocks) {
					t.Fatalf("\t%s\tTest %d:\tShould not change the original chain.", failed, testID)
				}
			}

			t.Run(tst.name, f)
		}
	}
}

func Test_ValidateChainProperty(t *testing.T) {
	blocks := buildChain(t, database.New(genesis.Default()), 4)

	rapid.Check(t, func(t *rapid.T) {
		cpy := cloneChain(blocks)

		i := rapid.IntRange(1, len(cpy)-1).Draw(t, "block")
		if rapid.Bool().Draw(t, "proof") {
			delta := rapid.Int64Range(1, 1_000).Filter(func(d int64) bool {
				return !pow.IsValidProof(cpy[i-1].Proof, cpy[i].Proof+d)
			}).Draw(t, "delta")
			cpy[i].Proof += delta
		} else {
			cpy[i].PreviousHash = rapid.StringMatching(`[0-9a-f]{64}`).Filter(func(s string) bool {
				return s != cpy[i].PreviousHash
			}).Draw(t, "previousHash")
		}

		if database.IsValidChain(cpy) {
			t.Fatalf("mutated block %d still validates", i)
		}
	})
}

func Test_Replace(t *testing.T) {
	t.Log("Given the need to replace the chain whole.")
	{
		db := database.New(genesis.Default())
		buildChain(t, db, 2)

		short := database.New(genesis.Default())
		buildChain(t, short, 1)

		if db.Replace(short.Copy()) {
			t.Fatalf("\t%s\tShould not replace with a shorter chain.", failed)
		}
		t.Logf("\t%s\tShould not replace with a shorter chain.", success)

		equal := database.New(genesis.Default())
		buildChain(t, equal, 2)

		if db.Replace(equal.Copy()) {
			t.Fatalf("\t%s\tShould not replace with a chain of equal length.", failed)
		}
		t.Logf("\t%s\tShould not replace with a chain of equal length.", success)

		long := database.New(genesis.Default())
		candidate := buildChain(t, long, 3)

		if !db.Replace(candidate) {
			t.Fatalf("\t%s\tShould replace with a longer chain.", failed)
		}
		t.Logf("\t%s\tShould replace with a longer chain.", success)

		got := db.Copy()
		if len(got) != len(candidate) || got[len(got)-1].Hash() != candidate[len(candidate)-1].Hash() {
			t.Fatalf("\t%s\tShould hold the candidate chain exactly.", failed)
		}
		t.Logf("\t%s\tShould hold the candidate chain exactly.", success)

		candidate[1].Proof = -1
		if db.Copy()[1].Proof == -1 {
			t.Fatalf("\t%s\tShould not share memory with the candidate.", failed)
		}
		t.Logf("\t%s\tShould not share memory with the candidate.", success)
	}
}

// =============================================================================

// buildChain mines n blocks on top of the database and returns the chain.
func buildChain(t testing.TB, db *database.Database, n int) []database.Block {
	t.Helper()

	for i := 0; i < n; i++ {
		latest := mustLatest(t, db)

		proof, err := pow.FindProof(context.Background(), latest.Proof, nil)
		if err != nil {
			t.Fatalf("unable to find proof: %v", err)
		}

		trans := []database.Tx{database.NewRewardTx("node", 1)}
		db.Write(database.NewBlock(latest, trans, proof, "", time.Now()))
	}

	return db.Copy()
}

func mustLatest(t testing.TB, db *database.Database) database.Block {
	t.Helper()

	blk, err := db.LatestBlock()
	if err != nil {
		t.Fatalf("unable to get latest block: %v", err)
	}

	return blk
}

func cloneChain(blocks []database.Block) []database.Block {
	cpy := make([]database.Block, len(blocks))
	for i, blk := range blocks {
		blk.Transactions = append([]database.Tx(nil), blk.Transactions...)
		cpy[i] = blk
	}
	return cpy
}

func quote(t *testing.T, v any) string {
	t.Helper()

	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("unable to marshal %v: %v", v, err)
	}

	return string(data)
}
