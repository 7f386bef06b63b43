package tangle

import (
	cm "github.com/ecoblock/ecoblock/src/common"
)

// InmemStore implements the Store interface with an in-memory map. Nothing is
// ever evicted.
type InmemStore struct {
	blocks map[string]*Block //id => Block
	order  []string          //ids in insertion order
}

// NewInmemStore creates a new, empty InmemStore.
func NewInmemStore() *InmemStore {
	return &InmemStore{
		blocks: make(map[string]*Block),
		order:  []string{},
	}
}

// GetBlock implements the Store interface.
func (s *InmemStore) GetBlock(id string) (*Block, error) {
	res, ok := s.blocks[id]
	if !ok {
		return nil, cm.NewStoreErr("BlockCache", cm.KeyNotFound, id)
	}
	return res, nil
}

// SetBlock implements the Store interface.
func (s *InmemStore) SetBlock(block *Block) error {
	id := block.Hex()
	if _, ok := s.blocks[id]; ok {
		return nil
	}
	s.blocks[id] = block
	s.order = append(s.order, id)
	return nil
}

// HasBlock implements the Store interface.
func (s *InmemStore) HasBlock(id string) bool {
	_, ok := s.blocks[id]
	return ok
}

// Len implements the Store interface.
func (s *InmemStore) Len() int {
	return len(s.blocks)
}

// BlockIDs implements the Store interface.
func (s *InmemStore) BlockIDs() []string {
	res := make([]string, len(s.order))
	copy(res, s.order)
	return res
}

// Close implements the Store interface.
func (s *InmemStore) Close() error {
	return nil
}

// StorePath implements the Store interface.
func (s *InmemStore) StorePath() string {
	return ""
}
