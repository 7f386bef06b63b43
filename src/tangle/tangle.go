package tangle

import (
	"github.com/sirupsen/logrus"
)

// Tangle is the append-only block DAG. It is not safe for concurrent use;
// callers serialise access.
type Tangle struct {
	Store  Store
	logger *logrus.Entry
}

// NewTangle instantiates a Tangle on top of a Store.
func NewTangle(store Store, logger *logrus.Entry) *Tangle {
	if logger == nil {
		logger = logrus.NewEntry(logrus.New())
	}

	return &Tangle{
		Store:  store,
		logger: logger,
	}
}

// Append creates an unsigned block from payload and parents, inserts it, and
// returns its id.
func (t *Tangle) Append(payload []byte, parents []string) (string, error) {
	block := NewBlock(payload, parents)
	if _, err := t.Insert(block); err != nil {
		return "", err
	}
	return block.Hex(), nil
}

// Insert adds a block to the tangle. It returns false, and changes nothing, if
// a block with the same id is already there.
func (t *Tangle) Insert(block *Block) (bool, error) {
	id := block.Hex()

	if t.Store.HasBlock(id) {
		t.logger.WithField("block", id).Debug("Block already in tangle")
		return false, nil
	}

	if err := t.Store.SetBlock(block); err != nil {
		return false, err
	}

	t.logger.WithFields(logrus.Fields{
		"block":   id,
		"parents": len(block.Parents()),
		"size":    t.Store.Len(),
	}).Debug("Inserted block")

	return true, nil
}

// Get returns the block with the given id.
func (t *Tangle) Get(id string) (*Block, error) {
	return t.Store.GetBlock(id)
}

// Has reports whether the tangle contains a block id.
func (t *Tangle) Has(id string) bool {
	return t.Store.HasBlock(id)
}

// Size returns the number of distinct blocks in the tangle.
func (t *Tangle) Size() int {
	return t.Store.Len()
}

// Close closes the underlying store.
func (t *Tangle) Close() error {
	return t.Store.Close()
}
