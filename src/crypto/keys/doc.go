// Package keys implements the public key cryptography used by an EcoBlock
// node.
//
// A node owns a cryptographic key-pair that it uses to sign the blocks it
// creates. The private key is secret and never leaves this package except
// through signing; the public key is the node's externally visible identity
// and is rendered with PublicKeyHex.
//
// Keys use elliptic curve cryptography (ECDSA) on the secp256k1 curve.
// SimpleKeyfile persists a private key as a raw hex dump in a file readable
// by its owner only.
package keys
