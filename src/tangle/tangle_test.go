package tangle

import (
	"testing"

	"github.com/ecoblock/ecoblock/src/common"
	"github.com/sirupsen/logrus"
)

func TestTangleAppend(t *testing.T) {
	tangle := NewTangle(NewInmemStore(), common.NewTestEntry(t, logrus.DebugLevel))

	if tangle.Size() != 0 {
		t.Fatalf("new tangle should be empty")
	}

	genesis, err := tangle.Append([]byte("genesis"), nil)
	if err != nil {
		t.Fatal(err)
	}
	if tangle.Size() != 1 {
		t.Fatalf("Size should be 1, not %d", tangle.Size())
	}

	again, err := tangle.Append([]byte("genesis"), nil)
	if err != nil {
		t.Fatal(err)
	}
	if again != genesis {
		t.Fatalf("appending the same block should return the same id")
	}
	if tangle.Size() != 1 {
		t.Fatalf("appending the same block twice should not double count, Size is %d", tangle.Size())
	}

	child, err := tangle.Append([]byte("child"), []string{genesis, "0XUNKNOWN"})
	if err != nil {
		t.Fatalf("unknown parents should be accepted: %v", err)
	}
	if tangle.Size() != 2 {
		t.Fatalf("Size should be 2, not %d", tangle.Size())
	}

	block, err := tangle.Get(child)
	if err != nil {
		t.Fatal(err)
	}
	if len(block.Parents()) != 2 {
		t.Fatalf("child should have 2 parents, not %d", len(block.Parents()))
	}
	if !tangle.Has(genesis) {
		t.Fatalf("tangle should contain the genesis block")
	}
}

func TestTangleInsert(t *testing.T) {
	tangle := NewTangle(NewInmemStore(), nil)

	block := NewBlock([]byte("x"), nil)

	inserted, err := tangle.Insert(block)
	if err != nil {
		t.Fatal(err)
	}
	if !inserted {
		t.Fatalf("first Insert should insert")
	}

	inserted, err = tangle.Insert(NewBlock([]byte("x"), nil))
	if err != nil {
		t.Fatal(err)
	}
	if inserted {
		t.Fatalf("second Insert of the same content should be a no-op")
	}
}
