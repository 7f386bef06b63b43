// Package node owns the in-memory state of an EcoBlock node and serialises
// access to it.
//
// Context
//
// A Context aggregates exactly one tangle, one identity key, one gossip engine
// and one topology graph. None of these are safe for concurrent use, so a
// Context is never handed out directly.
//
// Guard
//
// A Guard holds the Context behind a mutex. WithContext runs a function against
// the Context with the mutex held, and the Guard methods CreateBlock,
// TangleSize, AddPeerConnection and ListPeers are short operations built on
// it. If nothing installed a Context before the first access, the Guard builds
// a default one with a transient key and empty in-memory structures.
//
// Work that does not read or mutate the shared structures stays outside the
// critical section: CreateBlock copies the key out, hashes and signs the block
// without the lock, and only takes it back to insert the block. Durable stores
// persist in the background, so no disk I/O happens under the lock either.
//
// Lifecycle
//
// Lifecycle composes the keystore with Context construction. CreateLocalNode
// persists a new key, builds a fresh Context around it and installs it in the
// Guard, replacing the previous one. A failure leaves both the data directory
// and the installed Context as they were.
package node
