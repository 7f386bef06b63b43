// Package tangle implements the append-only, content-addressed block DAG of
// an EcoBlock node.
//
// Blocks
//
// A Block carries an opaque payload and references zero or more parent
// blocks. Its id is the SHA256 hash of the canonical encoding of its body
// (payload and sorted parent set), rendered as 0X-prefixed hex. Identical
// payload and parents always produce the same id, whatever the order the
// parents were given in, and a block appended twice is only stored once.
// A block may also be signed by its creator; the signature covers the id but
// is not part of it.
//
// Store
//
// The Tangle delegates storage to a Store. InmemStore keeps everything in
// memory. BadgerStore keeps an InmemStore as a cache and persists blocks to a
// badger database from a background writer, so that inserting a block never
// waits on disk.
//
// Parent existence is not validated: a block may reference parents this node
// has not seen yet.
package tangle
