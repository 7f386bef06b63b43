package node

import (
	"crypto/ecdsa"

	"github.com/ecoblock/ecoblock/src/crypto/keys"
	"github.com/ecoblock/ecoblock/src/gossip"
	"github.com/ecoblock/ecoblock/src/tangle"
	"github.com/ecoblock/ecoblock/src/topology"
	"github.com/sirupsen/logrus"
)

// Context is the aggregate of the structures a node operates on. It owns all of
// them; closing the Context closes the tangle store.
type Context struct {
	Tangle   *tangle.Tangle
	Gossip   *gossip.Engine
	Topology *topology.Graph

	key *ecdsa.PrivateKey
	id  string
}

// NewContext builds a Context around an identity key and a tangle store, with
// an empty gossip engine and topology graph.
func NewContext(key *ecdsa.PrivateKey, store tangle.Store, gossipQueue int, logger *logrus.Entry) *Context {
	if logger == nil {
		logger = logrus.NewEntry(logrus.New())
	}

	id := keys.PublicKeyHex(&key.PublicKey)

	return &Context{
		Tangle:   tangle.NewTangle(store, logger.WithField("component", "tangle")),
		Gossip:   gossip.NewEngine(gossipQueue, logger.WithField("component", "gossip")),
		Topology: topology.NewGraph(),
		key:      key,
		id:       id,
	}
}

// NewDefaultContext builds an in-memory Context with a freshly generated key
// that is never persisted.
func NewDefaultContext(logger *logrus.Entry) (*Context, error) {
	key, err := keys.GenerateECDSAKey()
	if err != nil {
		return nil, err
	}

	return NewContext(key, tangle.NewInmemStore(), gossip.DefaultQueueSize, logger), nil
}

// NodeID returns the hex-encoded public key of the Context's identity.
func (c *Context) NodeID() string {
	return c.id
}

// PublicKey returns the public half of the identity key.
func (c *Context) PublicKey() *ecdsa.PublicKey {
	return &c.key.PublicKey
}

// Close releases the tangle store.
func (c *Context) Close() error {
	return c.Tangle.Close()
}
