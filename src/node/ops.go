package node

import (
	"crypto/ecdsa"
	"fmt"

	"github.com/ecoblock/ecoblock/src/tangle"
	"github.com/ecoblock/ecoblock/src/topology"
	"github.com/sirupsen/logrus"
)

// Stats is a snapshot of the guarded Context.
type Stats struct {
	NodeID        string `json:"node_id"`
	TangleSize    int    `json:"tangle_size"`
	Edges         int    `json:"edges"`
	PendingGossip int    `json:"pending_gossip"`
	DroppedGossip int    `json:"dropped_gossip"`
}

// GossipRound is a batch of blocks to push and the peers to push them to.
type GossipRound struct {
	Blocks  []*tangle.Block
	Targets []string
}

type keySnapshot struct {
	ctx *Context
	key *ecdsa.PrivateKey
}

// CreateBlock appends a block with payload and parents to the tangle, schedules
// it for gossip, and returns its id. Parents are not checked for existence.
// Creating the same block twice returns the same id and stores it once.
func (g *Guard) CreateBlock(payload []byte, parents []string) string {
	block := tangle.NewBlock(payload, parents)

	for {
		snap := WithContext(g, func(c *Context) keySnapshot {
			return keySnapshot{ctx: c, key: c.key}
		})

		if err := block.Sign(snap.key); err != nil {
			g.logger.WithError(err).WithField("block", block.Hex()).Error("Signing block")
		}

		// the context may have been replaced while signing; sign again with
		// the new key in that case
		done := WithContext(g, func(c *Context) bool {
			if c != snap.ctx {
				return false
			}

			inserted, err := c.Tangle.Insert(block)
			if err != nil {
				g.logger.WithError(err).WithField("block", block.Hex()).Error("Inserting block")
				return true
			}

			if inserted {
				c.Gossip.Propagate(block)
			}

			return true
		})

		if done {
			return block.Hex()
		}
	}
}

// TangleSize returns the number of blocks in the tangle.
func (g *Guard) TangleSize() int {
	return WithContext(g, func(c *Context) int {
		return c.Tangle.Size()
	})
}

// AddPeerConnection adds the directed edge from -> to, or updates its weight.
func (g *Guard) AddPeerConnection(from, to string, weight float64) {
	g.Do(func(c *Context) {
		c.Topology.AddEdge(from, to, weight)
	})
}

// ListPeers returns the sorted outgoing neighbours of peer, or an empty list if
// the peer is unknown.
func (g *Guard) ListPeers(peer string) []string {
	return WithContext(g, func(c *Context) []string {
		return c.Topology.Neighbors(peer)
	})
}

// NodeID returns the id of the guarded Context.
func (g *Guard) NodeID() string {
	return WithContext(g, func(c *Context) string {
		return c.NodeID()
	})
}

// GetBlock returns a block of the tangle.
func (g *Guard) GetBlock(id string) (*tangle.Block, error) {
	type result struct {
		block *tangle.Block
		err   error
	}

	res := WithContext(g, func(c *Context) result {
		b, err := c.Tangle.Get(id)
		return result{b, err}
	})

	return res.block, res.err
}

// Stats returns a snapshot of the guarded Context.
func (g *Guard) Stats() Stats {
	return WithContext(g, func(c *Context) Stats {
		return Stats{
			NodeID:        c.NodeID(),
			TangleSize:    c.Tangle.Size(),
			Edges:         c.Topology.Len(),
			PendingGossip: c.Gossip.Pending(),
			DroppedGossip: c.Gossip.Dropped(),
		}
	})
}

// NextGossipRound drains up to max pending blocks and selects up to fanout of
// the node's outgoing neighbours to send them to. The round is empty when
// nothing is pending.
func (g *Guard) NextGossipRound(max, fanout int) GossipRound {
	return WithContext(g, func(c *Context) GossipRound {
		if c.Gossip.Pending() == 0 {
			return GossipRound{}
		}

		return GossipRound{
			Blocks:  c.Gossip.Drain(max),
			Targets: c.Gossip.SelectTargets(c.Topology.Neighbors(c.NodeID()), fanout),
		}
	})
}

// SaveTopology writes the edges of the topology graph to a JSON file. The
// edges are copied under the lock and written after releasing it.
func (g *Guard) SaveTopology(path string) error {
	edges := WithContext(g, func(c *Context) []topology.Edge {
		return c.Topology.Edges()
	})

	if err := topology.NewJSONGraphFile(path).Write(edges); err != nil {
		return fmt.Errorf("saving topology to %s: %v", path, err)
	}

	g.logger.WithFields(logrus.Fields{
		"path":  path,
		"edges": len(edges),
	}).Debug("Saved topology")

	return nil
}
