package gossip

import (
	"fmt"
	"testing"

	"github.com/ecoblock/ecoblock/src/common"
	"github.com/ecoblock/ecoblock/src/tangle"
	"github.com/sirupsen/logrus"
)

func TestPropagate(t *testing.T) {
	engine := NewEngine(0, common.NewTestEntry(t, logrus.DebugLevel))

	block := tangle.NewBlock([]byte("a"), nil)

	if !engine.Propagate(block) {
		t.Fatalf("first Propagate should schedule the block")
	}
	if engine.Propagate(tangle.NewBlock([]byte("a"), nil)) {
		t.Fatalf("second Propagate of the same block should be ignored")
	}
	if engine.Pending() != 1 {
		t.Fatalf("Pending should be 1, not %d", engine.Pending())
	}
	if !engine.Seen(block.Hex()) {
		t.Fatalf("block should be marked as seen")
	}
}

func TestQueueBound(t *testing.T) {
	engine := NewEngine(3, common.NewTestEntry(t, logrus.InfoLevel))

	blocks := []*tangle.Block{}
	for i := 0; i < 5; i++ {
		b := tangle.NewBlock([]byte(fmt.Sprintf("b%d", i)), nil)
		blocks = append(blocks, b)
		engine.Propagate(b)
	}

	if engine.Pending() != 3 {
		t.Fatalf("Pending should be 3, not %d", engine.Pending())
	}
	if engine.Dropped() != 2 {
		t.Fatalf("Dropped should be 2, not %d", engine.Dropped())
	}

	batch := engine.Drain(2)
	if len(batch) != 2 {
		t.Fatalf("Drain(2) should return 2 blocks, not %d", len(batch))
	}
	if batch[0].Hex() != blocks[2].Hex() || batch[1].Hex() != blocks[3].Hex() {
		t.Fatalf("Drain should return the oldest surviving blocks first")
	}

	rest := engine.Drain(0)
	if len(rest) != 1 || rest[0].Hex() != blocks[4].Hex() {
		t.Fatalf("Drain(0) should return the remaining block")
	}
	if engine.Pending() != 0 {
		t.Fatalf("queue should be empty, Pending is %d", engine.Pending())
	}

	// evicted blocks stay seen
	if engine.Propagate(blocks[0]) {
		t.Fatalf("dropped block should not be scheduled again")
	}
}

func TestSelectTargets(t *testing.T) {
	engine := NewEngine(0, nil)

	if targets := engine.SelectTargets(nil, 3); len(targets) != 0 {
		t.Fatalf("no candidates should give no targets, got %v", targets)
	}

	candidates := []string{"a", "b", "c", "a"}

	targets := engine.SelectTargets(candidates, 5)
	if len(targets) != 3 {
		t.Fatalf("targets should be the 3 distinct candidates, got %v", targets)
	}

	for i := 0; i < 50; i++ {
		prev := engine.last
		targets := engine.SelectTargets(candidates, 2)
		if len(targets) != 2 {
			t.Fatalf("should select 2 targets, got %v", targets)
		}
		if targets[0] == targets[1] {
			t.Fatalf("targets should be distinct, got %v", targets)
		}
		for _, target := range targets {
			if target == prev {
				t.Fatalf("round %d selected the previous target %s", i, prev)
			}
		}
	}

	// a single candidate is always selectable
	for i := 0; i < 3; i++ {
		if targets := engine.SelectTargets([]string{"only"}, 1); len(targets) != 1 || targets[0] != "only" {
			t.Fatalf("single candidate should be selected, got %v", targets)
		}
	}
}
