//go:build !mobile
// +build !mobile

package tangle

import (
	"github.com/dgraph-io/badger"
	"github.com/sirupsen/logrus"
)

type badgerDB = badger.DB
type badgerTxn = badger.Txn

var errBadgerKeyNotFound = badger.ErrKeyNotFound

func openBadger(path string, logger *logrus.Entry) (*badgerDB, error) {
	opts := badger.DefaultOptions(path).
		WithSyncWrites(false).
		WithTruncate(true)

	if logger != nil {
		opts = opts.WithLogger(logger.WithField("ns", "badger"))
	}

	return badger.Open(opts)
}

func iteratorOptions() badger.IteratorOptions {
	return badger.DefaultIteratorOptions
}
