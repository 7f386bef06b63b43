//go:build mobile
// +build mobile

package tangle

/*
This file imports a fork of badger db. The fork does not attempt to acquire a
directory lock, which is likely to fail on Android 6 and below because of a
bug in SELinux. Tables and value logs are read through plain file IO for the
same reason.
*/

import (
	"github.com/jonknight73/badger"
	badger_options "github.com/jonknight73/badger/options"
	"github.com/sirupsen/logrus"
)

type badgerDB = badger.DB
type badgerTxn = badger.Txn

var errBadgerKeyNotFound = badger.ErrKeyNotFound

func openBadger(path string, logger *logrus.Entry) (*badgerDB, error) {
	opts := badger.DefaultOptions(path).
		WithSyncWrites(false).
		WithTruncate(true).
		WithTableLoadingMode(badger_options.FileIO).
		WithValueLogLoadingMode(badger_options.FileIO)

	if logger != nil {
		opts = opts.WithLogger(logger.WithField("ns", "badger"))
	}

	return badger.Open(opts)
}

func iteratorOptions() badger.IteratorOptions {
	return badger.DefaultIteratorOptions
}
