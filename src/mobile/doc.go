// Package mobile is the host boundary of an EcoBlock node. It owns the single
// Guard of the process and exposes the node operations with the types that
// gomobile and C bridges accept: strings, byte slices, numbers and plain
// errors.
//
// Errors crossing the boundary carry only their message. List results are
// encoded as JSON strings.
package mobile
