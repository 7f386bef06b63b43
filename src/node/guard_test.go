package node

import (
	"fmt"
	"reflect"
	"sync"
	"testing"

	"github.com/ecoblock/ecoblock/src/common"
	"github.com/ecoblock/ecoblock/src/crypto/keys"
	"github.com/ecoblock/ecoblock/src/tangle"
	"github.com/sirupsen/logrus"
)

func newTestGuard(t *testing.T) *Guard {
	return NewGuard(common.NewTestEntry(t, logrus.DebugLevel))
}

func TestDefaultContext(t *testing.T) {
	guard := newTestGuard(t)

	id := guard.NodeID()
	if id == "" {
		t.Fatalf("default context should have a node id")
	}

	if guard.NodeID() != id {
		t.Fatalf("default context should be built once")
	}

	if guard.TangleSize() != 0 {
		t.Fatalf("default tangle should be empty")
	}

	if peers := guard.ListPeers(id); len(peers) != 0 {
		t.Fatalf("default topology should be empty, got %v", peers)
	}
}

func TestConcurrentDefaultContext(t *testing.T) {
	guard := newTestGuard(t)

	var wg sync.WaitGroup
	ids := make([]string, 20)

	for i := 0; i < len(ids); i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ids[i] = guard.NodeID()
		}(i)
	}
	wg.Wait()

	for i, id := range ids {
		if id != ids[0] {
			t.Fatalf("caller %d saw context %s, caller 0 saw %s", i, id, ids[0])
		}
	}
}

func TestInstall(t *testing.T) {
	guard := newTestGuard(t)

	first := guard.NodeID()

	key, _ := keys.GenerateECDSAKey()
	ctx := NewContext(key, tangle.NewInmemStore(), 0, nil)

	prev := guard.Install(ctx)
	if prev == nil || prev.NodeID() != first {
		t.Fatalf("Install should return the previous context")
	}

	if guard.NodeID() != keys.PublicKeyHex(&key.PublicKey) {
		t.Fatalf("guard should expose the installed context")
	}

	if err := guard.Close(); err != nil {
		t.Fatal(err)
	}

	if guard.NodeID() == ctx.NodeID() {
		t.Fatalf("a closed guard should build a new default context")
	}
}

func TestCreateBlock(t *testing.T) {
	guard := newTestGuard(t)

	id := guard.CreateBlock([]byte("payload"), []string{})
	if guard.TangleSize() != 1 {
		t.Fatalf("TangleSize should be 1, not %d", guard.TangleSize())
	}

	again := guard.CreateBlock([]byte("payload"), nil)
	if again != id {
		t.Fatalf("same block should have the same id: %s != %s", id, again)
	}
	if guard.TangleSize() != 1 {
		t.Fatalf("same block should not be counted twice, TangleSize is %d", guard.TangleSize())
	}

	child := guard.CreateBlock([]byte("child"), []string{id, "0XMISSING"})
	if guard.TangleSize() != 2 {
		t.Fatalf("TangleSize should be 2, not %d", guard.TangleSize())
	}

	block, err := guard.GetBlock(child)
	if err != nil {
		t.Fatal(err)
	}

	ok, err := block.Verify()
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatalf("block should be signed by the node")
	}

	if keys.PublicKeyHex(keys.ToPublicKey(block.Creator)) != guard.NodeID() {
		t.Fatalf("block creator should be the node")
	}

	stats := guard.Stats()
	if stats.TangleSize != 2 || stats.PendingGossip != 2 {
		t.Fatalf("unexpected stats %+v", stats)
	}
}

func TestPeerConnections(t *testing.T) {
	guard := newTestGuard(t)

	guard.AddPeerConnection("A", "B", 0.5)

	if peers := guard.ListPeers("A"); !reflect.DeepEqual(peers, []string{"B"}) {
		t.Fatalf("ListPeers(A) should be [B], not %v", peers)
	}

	peers := guard.ListPeers("C")
	if peers == nil || len(peers) != 0 {
		t.Fatalf("ListPeers(C) should be empty, not %#v", peers)
	}

	guard.AddPeerConnection("A", "B", 0.7)
	if guard.Stats().Edges != 1 {
		t.Fatalf("repeated edge should be stored once")
	}
}

func TestConcurrentPeerConnections(t *testing.T) {
	guard := newTestGuard(t)

	n := 100

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			guard.AddPeerConnection("hub", fmt.Sprintf("peer_%03d", i), float64(i))
		}(i)
	}
	wg.Wait()

	peers := guard.ListPeers("hub")
	if len(peers) != n {
		t.Fatalf("ListPeers should return %d peers, not %d", n, len(peers))
	}

	for i, p := range peers {
		if p != fmt.Sprintf("peer_%03d", i) {
			t.Fatalf("peers[%d] should be peer_%03d, not %s", i, i, p)
		}
	}
}

func TestConcurrentCreateBlock(t *testing.T) {
	guard := newTestGuard(t)

	n := 50

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			guard.CreateBlock([]byte(fmt.Sprintf("block %d", i)), nil)
			// every block is also created a second time
			guard.CreateBlock([]byte(fmt.Sprintf("block %d", i)), nil)
		}(i)
	}
	wg.Wait()

	if guard.TangleSize() != n {
		t.Fatalf("TangleSize should be %d, not %d", n, guard.TangleSize())
	}
}

func TestNextGossipRound(t *testing.T) {
	guard := newTestGuard(t)
	self := guard.NodeID()

	if round := guard.NextGossipRound(10, 2); len(round.Blocks) != 0 || len(round.Targets) != 0 {
		t.Fatalf("nothing pending should give an empty round, got %+v", round)
	}

	for _, p := range []string{"p1", "p2", "p3"} {
		guard.AddPeerConnection(self, p, 1)
	}

	guard.CreateBlock([]byte("a"), nil)
	guard.CreateBlock([]byte("b"), nil)

	round := guard.NextGossipRound(10, 2)
	if len(round.Blocks) != 2 {
		t.Fatalf("round should carry 2 blocks, not %d", len(round.Blocks))
	}
	if len(round.Targets) != 2 {
		t.Fatalf("round should target 2 peers, not %v", round.Targets)
	}

	if guard.Stats().PendingGossip != 0 {
		t.Fatalf("round should drain the gossip queue")
	}
}
