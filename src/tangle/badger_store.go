package tangle

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
)

const (
	blockPrefix = "block"
	topoPrefix  = "topo"

	// writeQueueSize bounds the number of blocks waiting to be persisted.
	// SetBlock blocks when the queue is full.
	writeQueueSize = 1024
)

type pendingWrite struct {
	block *Block
	index int
}

// BadgerStore implements the Store interface on top of an InmemStore, which
// answers every read, and a badger database, to which a background writer
// persists every new block. Blocks are reloaded in insertion order when the
// database is reopened.
type BadgerStore struct {
	inmemStore *InmemStore
	db         *badgerDB
	path       string
	logger     *logrus.Entry

	writeCh   chan pendingWrite
	done      chan struct{}
	closed    bool
	closeOnce sync.Once
	closeErr  error
}

// LoadOrCreateBadgerStore opens the badger database at path, creating it if
// necessary, and loads every block it contains.
func LoadOrCreateBadgerStore(path string, logger *logrus.Entry) (*BadgerStore, error) {
	if logger == nil {
		logger = logrus.NewEntry(logrus.New())
	}

	handle, err := openBadger(path, logger)
	if err != nil {
		return nil, err
	}

	store := &BadgerStore{
		inmemStore: NewInmemStore(),
		db:         handle,
		path:       path,
		logger:     logger,
		writeCh:    make(chan pendingWrite, writeQueueSize),
		done:       make(chan struct{}),
	}

	if err := store.dbLoadBlocks(); err != nil {
		handle.Close()
		return nil, err
	}

	logger.WithFields(logrus.Fields{
		"path":   path,
		"blocks": store.inmemStore.Len(),
	}).Debug("Loaded badger store")

	go store.writeLoop()

	return store, nil
}

//==============================================================================
//Keys

func blockKey(id string) []byte {
	return []byte(fmt.Sprintf("%s_%s", blockPrefix, id))
}

func topologicalBlockKey(index int) []byte {
	return []byte(fmt.Sprintf("%s_%09d", topoPrefix, index))
}

//==============================================================================
//Implement the Store interface

// GetBlock implements the Store interface.
func (s *BadgerStore) GetBlock(id string) (*Block, error) {
	return s.inmemStore.GetBlock(id)
}

// SetBlock implements the Store interface. The block is visible to readers as
// soon as SetBlock returns; it reaches the database asynchronously.
func (s *BadgerStore) SetBlock(block *Block) error {
	if s.closed {
		return fmt.Errorf("badger store %s is closed", s.path)
	}

	if s.inmemStore.HasBlock(block.Hex()) {
		return nil
	}

	if err := s.inmemStore.SetBlock(block); err != nil {
		return err
	}

	s.writeCh <- pendingWrite{
		block: block,
		index: s.inmemStore.Len() - 1,
	}

	return nil
}

// HasBlock implements the Store interface.
func (s *BadgerStore) HasBlock(id string) bool {
	return s.inmemStore.HasBlock(id)
}

// Len implements the Store interface.
func (s *BadgerStore) Len() int {
	return s.inmemStore.Len()
}

// BlockIDs implements the Store interface.
func (s *BadgerStore) BlockIDs() []string {
	return s.inmemStore.BlockIDs()
}

// Close implements the Store interface. It waits for pending writes to reach
// the database before closing it.
func (s *BadgerStore) Close() error {
	s.closeOnce.Do(func() {
		s.closed = true
		close(s.writeCh)
		<-s.done
		s.closeErr = s.db.Close()
	})
	return s.closeErr
}

// StorePath implements the Store interface.
func (s *BadgerStore) StorePath() string {
	return s.path
}

func (s *BadgerStore) writeLoop() {
	defer close(s.done)

	for w := range s.writeCh {
		if err := s.dbSetBlock(w.block, w.index); err != nil {
			s.logger.WithError(err).WithField("block", w.block.Hex()).Error("Persisting block")
		}
	}
}

//++++++++++++++++++++++++++++++++++++++++++++++++++++++++++++++++++++++++++++++
//DB Methods

func (s *BadgerStore) dbSetBlock(block *Block, index int) error {
	val, err := block.MarshalDB()
	if err != nil {
		return err
	}

	tx := s.db.NewTransaction(true)
	defer tx.Discard()

	//insert [block_id] => [block bytes]
	if err := tx.Set(blockKey(block.Hex()), val); err != nil {
		return err
	}

	//insert [topo_index] => [block id]
	if err := tx.Set(topologicalBlockKey(index), []byte(block.Hex())); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *BadgerStore) dbGetBlock(txn *badgerTxn, id string) (*Block, error) {
	item, err := txn.Get(blockKey(id))
	if err != nil {
		return nil, err
	}

	data, err := item.ValueCopy(nil)
	if err != nil {
		return nil, err
	}

	block := new(Block)
	if err := block.UnmarshalDB(data); err != nil {
		return nil, err
	}

	if block.Hex() != id {
		return nil, fmt.Errorf("block %s is stored under id %s", block.Hex(), id)
	}

	return block, nil
}

func (s *BadgerStore) dbLoadBlocks() error {
	return s.db.View(func(txn *badgerTxn) error {
		it := txn.NewIterator(iteratorOptions())
		defer it.Close()

		prefix := []byte(topoPrefix + "_")

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			id, err := it.Item().ValueCopy(nil)
			if err != nil {
				return err
			}

			block, err := s.dbGetBlock(txn, string(id))
			if err != nil {
				if isDBKeyNotFound(err) {
					return fmt.Errorf("topological index references missing block %s", id)
				}
				return err
			}

			if err := s.inmemStore.SetBlock(block); err != nil {
				return err
			}
		}

		return nil
	})
}

func isDBKeyNotFound(err error) bool {
	return err != nil && err.Error() == errBadgerKeyNotFound.Error()
}
