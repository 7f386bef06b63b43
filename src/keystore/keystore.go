// Package keystore persists the identity keypair of a node in a data
// directory and derives the node id from it.
//
// Each directory holds at most one keyfile, at KeypairPath(dir). The presence
// of that file is the only thing that decides whether a node is initialized.
// The directory is always supplied by the caller; nothing here falls back to a
// default location.
//
// Operations are not synchronised with each other. Callers that may reset and
// create a node on the same directory concurrently must serialise those calls
// themselves.
package keystore

import (
	"crypto/ecdsa"
	"errors"
	"os"
	"path/filepath"

	"github.com/ecoblock/ecoblock/src/crypto/keys"
)

// KeyfileName is the name of the file holding the private key inside a node
// directory.
const KeyfileName = "priv_key"

// KeypairPath returns the path of the keyfile for a node directory. It never
// touches the filesystem.
func KeypairPath(directory string) string {
	return filepath.Join(directory, KeyfileName)
}

// GenerateKeypair creates a new keypair, persists it under directory, and
// returns the hex-encoded public key. It fails with AlreadyInitialized if a
// keyfile is already there, in which case nothing is written.
func GenerateKeypair(directory string) (string, error) {
	key, err := CreateKey(directory)
	if err != nil {
		return "", err
	}
	return keys.PublicKeyHex(&key.PublicKey), nil
}

// CreateKey is GenerateKeypair returning the private key itself. It is meant
// for components that need to hold the key in memory right after creating
// it, such as the node lifecycle.
func CreateKey(directory string) (*ecdsa.PrivateKey, error) {
	keyfile := keys.NewSimpleKeyfile(KeypairPath(directory))

	exists, err := keyfile.Exists()
	if err != nil {
		return nil, NewKeyErr(IoFailure, directory, err)
	}
	if exists {
		return nil, NewKeyErr(AlreadyInitialized, directory, nil)
	}

	key, err := keys.GenerateECDSAKey()
	if err != nil {
		return nil, err
	}

	if err := keyfile.CreateKey(key); err != nil {
		// lost a race against another writer
		if os.IsExist(err) {
			return nil, NewKeyErr(AlreadyInitialized, directory, nil)
		}
		return nil, NewKeyErr(IoFailure, directory, err)
	}

	return key, nil
}

// LoadKey reads the private key persisted under directory.
func LoadKey(directory string) (*ecdsa.PrivateKey, error) {
	keyfile := keys.NewSimpleKeyfile(KeypairPath(directory))

	exists, err := keyfile.Exists()
	if err != nil {
		return nil, NewKeyErr(IoFailure, directory, err)
	}
	if !exists {
		return nil, NewKeyErr(NotInitialized, directory, nil)
	}

	key, err := keyfile.ReadKey()
	switch {
	case err == nil:
		return key, nil
	case errors.Is(err, keys.ErrMalformedKey):
		return nil, NewKeyErr(DecodeFailure, directory, err)
	case os.IsNotExist(err):
		return nil, NewKeyErr(NotInitialized, directory, nil)
	default:
		return nil, NewKeyErr(IoFailure, directory, err)
	}
}

// GetPublicKey returns the hex-encoded public key persisted under directory,
// or NotInitialized if there is none.
func GetPublicKey(directory string) (string, error) {
	key, err := LoadKey(directory)
	if err != nil {
		return "", err
	}
	return keys.PublicKeyHex(&key.PublicKey), nil
}

// GetNodeID returns the id of the node living under directory. The node id is
// the public key, so this returns exactly what GetPublicKey returns.
func GetNodeID(directory string) (string, error) {
	return GetPublicKey(directory)
}

// ResetNode deletes the keyfile under directory. A missing keyfile is not an
// error, so ResetNode is idempotent.
func ResetNode(directory string) error {
	if err := keys.NewSimpleKeyfile(KeypairPath(directory)).Remove(); err != nil {
		return NewKeyErr(IoFailure, directory, err)
	}
	return nil
}

// NodeIsInitialized reports whether a keyfile exists under directory. It only
// fails on unexpected filesystem errors; a missing keyfile is false.
func NodeIsInitialized(directory string) (bool, error) {
	exists, err := keys.NewSimpleKeyfile(KeypairPath(directory)).Exists()
	if err != nil {
		return false, NewKeyErr(IoFailure, directory, err)
	}
	return exists, nil
}
