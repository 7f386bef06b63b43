// Package gossip holds the dissemination state of a node.
//
// An Engine queues blocks that must be propagated to other nodes and picks the
// peers to send them to. It does not open connections: the transport drains
// the queue and delivers the blocks itself.
//
// Engines are not safe for concurrent use. A node owns exactly one Engine,
// accessed under the same lock as the tangle, and must never copy it.
package gossip
