package tangle

import (
	"fmt"
	"reflect"
	"testing"

	cm "github.com/ecoblock/ecoblock/src/common"
)

func TestInmemBlocks(t *testing.T) {
	store := NewInmemStore()
	testSize := 15

	blocks := []*Block{}

	t.Run("Store Blocks", func(t *testing.T) {
		for k := 0; k < testSize; k++ {
			block := NewBlock([]byte(fmt.Sprintf("block_%d", k)), nil)
			if err := store.SetBlock(block); err != nil {
				t.Fatal(err)
			}
			blocks = append(blocks, block)
		}

		for k, b := range blocks {
			rb, err := store.GetBlock(b.Hex())
			if err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(b.Body, rb.Body) {
				t.Fatalf("blocks[%d] should be %#v, not %#v", k, b, rb)
			}
		}
	})

	t.Run("Duplicates", func(t *testing.T) {
		if err := store.SetBlock(NewBlock([]byte("block_0"), nil)); err != nil {
			t.Fatal(err)
		}
		if store.Len() != testSize {
			t.Fatalf("Len should be %d, not %d", testSize, store.Len())
		}
	})

	t.Run("Insertion order", func(t *testing.T) {
		ids := store.BlockIDs()
		for k, b := range blocks {
			if ids[k] != b.Hex() {
				t.Fatalf("ids[%d] should be %s, not %s", k, b.Hex(), ids[k])
			}
		}
	})

	t.Run("Missing", func(t *testing.T) {
		_, err := store.GetBlock("0XDEADBEEF")
		if !cm.IsStore(err, cm.KeyNotFound) {
			t.Fatalf("GetBlock should return KeyNotFound, got %v", err)
		}
		if store.HasBlock("0XDEADBEEF") {
			t.Fatalf("HasBlock should be false")
		}
	})
}
