package tangle

// Store is an interface for backend stores.
type Store interface {
	// GetBlock returns a block by id.
	GetBlock(id string) (*Block, error)
	// SetBlock inserts a block. Inserting a block whose id is already present
	// is a no-op.
	SetBlock(block *Block) error
	// HasBlock reports whether a block id is present.
	HasBlock(id string) bool
	// Len returns the number of distinct blocks in the store.
	Len() int
	// BlockIDs returns the ids of all blocks in insertion order.
	BlockIDs() []string
	// Close closes the underlying database.
	Close() error
	// StorePath returns the filepath of the underlying database.
	StorePath() string
}
