package node

import (
	"crypto/ecdsa"
	"os"
	"path/filepath"

	"github.com/ecoblock/ecoblock/src/config"
	"github.com/ecoblock/ecoblock/src/crypto/keys"
	"github.com/ecoblock/ecoblock/src/keystore"
	"github.com/ecoblock/ecoblock/src/tangle"
	"github.com/ecoblock/ecoblock/src/topology"
	"github.com/sirupsen/logrus"
)

// Lifecycle creates, loads and resets nodes on disk, and installs the
// corresponding Context in a Guard.
//
// Lifecycle operations are not serialised with each other. Callers must not
// run two of them on the same directory concurrently.
type Lifecycle struct {
	guard  *Guard
	conf   *config.Config
	logger *logrus.Entry
}

// NewLifecycle creates a Lifecycle installing contexts in guard. conf decides
// whether contexts use a durable tangle store, and how large their gossip
// queue is.
func NewLifecycle(guard *Guard, conf *config.Config) *Lifecycle {
	return &Lifecycle{
		guard:  guard,
		conf:   conf,
		logger: conf.Logger(),
	}
}

// Guard returns the Guard the Lifecycle installs contexts in.
func (l *Lifecycle) Guard() *Guard {
	return l.guard
}

// CreateLocalNode generates and persists a new key under directory, builds a
// fresh Context around it and installs it, replacing the current one. It
// returns the new node id.
//
// It fails with AlreadyInitialized if a key already exists under directory.
// On any failure the directory and the installed Context are left as they
// were.
func (l *Lifecycle) CreateLocalNode(directory string) (string, error) {
	key, err := keystore.CreateKey(directory)
	if err != nil {
		l.logger.WithError(err).WithField("dir", directory).Debug("CreateLocalNode")
		return "", err
	}

	ctx, cleanup, err := l.buildContext(directory, key, false)
	if err != nil {
		cleanup()
		if rerr := keystore.ResetNode(directory); rerr != nil {
			l.logger.WithError(rerr).WithField("dir", directory).Error("Rolling back keyfile")
		}
		return "", err
	}

	l.install(ctx)

	l.logger.WithFields(logrus.Fields{
		"dir":  directory,
		"node": ctx.NodeID(),
	}).Info("Created local node")

	return ctx.NodeID(), nil
}

// LoadLocalNode reads the key persisted under directory, builds a Context
// around it and installs it. Blocks from a durable store and edges from the
// topology file are restored. It fails with NotInitialized if there is no key.
func (l *Lifecycle) LoadLocalNode(directory string) (string, error) {
	key, err := keystore.LoadKey(directory)
	if err != nil {
		l.logger.WithError(err).WithField("dir", directory).Debug("LoadLocalNode")
		return "", err
	}

	ctx, cleanup, err := l.buildContext(directory, key, true)
	if err != nil {
		cleanup()
		return "", err
	}

	// ctx belongs to the Guard once installed
	fields := logrus.Fields{
		"dir":    directory,
		"node":   ctx.NodeID(),
		"blocks": ctx.Tangle.Size(),
		"edges":  ctx.Topology.Len(),
	}

	l.install(ctx)

	l.logger.WithFields(fields).Info("Loaded local node")

	return ctx.NodeID(), nil
}

// ResetNode deletes the key under directory. It does not touch the installed
// Context.
func (l *Lifecycle) ResetNode(directory string) error {
	err := keystore.ResetNode(directory)
	l.logger.WithError(err).WithField("dir", directory).Debug("ResetNode")
	return err
}

// NodeIsInitialized reports whether a key exists under directory.
func (l *Lifecycle) NodeIsInitialized(directory string) (bool, error) {
	ok, err := keystore.NodeIsInitialized(directory)
	l.logger.WithError(err).WithFields(logrus.Fields{
		"dir":         directory,
		"initialized": ok,
	}).Debug("NodeIsInitialized")
	return ok, err
}

// GetPublicKey returns the hex-encoded public key persisted under directory.
func (l *Lifecycle) GetPublicKey(directory string) (string, error) {
	pub, err := keystore.GetPublicKey(directory)
	l.logger.WithError(err).WithField("dir", directory).Debug("GetPublicKey")
	return pub, err
}

// GetNodeID returns the id of the node persisted under directory.
func (l *Lifecycle) GetNodeID(directory string) (string, error) {
	id, err := keystore.GetNodeID(directory)
	l.logger.WithError(err).WithField("dir", directory).Debug("GetNodeID")
	return id, err
}

// install swaps the Context in and closes the previous one outside the lock.
func (l *Lifecycle) install(ctx *Context) {
	prev := l.guard.Install(ctx)
	if prev == nil {
		return
	}

	if err := prev.Close(); err != nil {
		l.logger.WithError(err).WithField("node", prev.NodeID()).Error("Closing replaced context")
	}
}

// databaseDir returns where the tangle database of the node under directory
// lives. An explicit DatabaseDir only applies to the configured DataDir.
func (l *Lifecycle) databaseDir(directory string) string {
	if directory == l.conf.DataDir && l.conf.DatabaseDir != "" {
		return l.conf.DatabaseDir
	}
	return filepath.Join(directory, config.DefaultBadgerFile)
}

// buildContext creates the store and topology for a Context. The returned
// cleanup function undoes whatever buildContext created on disk; it is always
// safe to call.
func (l *Lifecycle) buildContext(directory string, key *ecdsa.PrivateKey, restore bool) (*Context, func(), error) {
	cleanup := func() {}

	logger := l.logger.WithField("node", keys.PublicKeyHex(&key.PublicKey))

	var store tangle.Store = tangle.NewInmemStore()

	if l.conf.Store {
		dbPath := l.databaseDir(directory)

		_, statErr := os.Stat(dbPath)
		created := os.IsNotExist(statErr)

		badgerStore, err := tangle.LoadOrCreateBadgerStore(dbPath, logger.WithField("component", "badger"))
		if err != nil {
			if created {
				cleanup = func() { os.RemoveAll(dbPath) }
			}
			return nil, cleanup, keystore.NewKeyErr(keystore.IoFailure, directory, err)
		}

		store = badgerStore
		cleanup = func() {
			badgerStore.Close()
			if created {
				os.RemoveAll(dbPath)
			}
		}
	}

	ctx := NewContext(key, store, l.conf.GossipQueue, logger)

	if restore {
		edges, err := topology.NewJSONGraph(directory).Edges()
		if err != nil {
			return nil, cleanup, keystore.NewKeyErr(keystore.IoFailure, directory, err)
		}
		ctx.Topology.Load(edges)
	}

	return ctx, cleanup, nil
}
