// Package service exposes a node over HTTP with a small JSON API.
//
//  GET  /stats        node id, tangle size, edge count and gossip backlog
//  GET  /block/{id}   a block of the tangle
//  GET  /peers/{id}   the outgoing neighbours of a peer
//  POST /blocks       create a block; the body is the payload and every
//                     "parent" query value is a parent id
//  POST /edges        add a peer connection: {"from":..,"to":..,"weight":..}
//
// Handlers run concurrently; each one calls a single Guard operation.
package service
