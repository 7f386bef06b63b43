// Package topology records the known links between peers.
//
// A Graph is a directed, weighted graph keyed by peer id. Adding an edge from
// A to B says nothing about B to A, and adding the same edge again only
// replaces its weight. Neighbors returns the outgoing neighbours of a peer,
// sorted, and an empty list for a peer the graph has never heard of.
//
// JSONGraph persists a snapshot of the edges to a JSON file in the node's data
// directory so that a restarted node remembers its topology.
package topology
