package keys

import (
	"crypto/ecdsa"
	"errors"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"sync"
)

// ErrMalformedKey is wrapped by ReadKey when the keyfile is readable but does
// not contain a valid private key.
var ErrMalformedKey = errors.New("malformed private key")

// KeyReader reads an ecdsa key from any format or support.
type KeyReader interface {
	ReadKey() (*ecdsa.PrivateKey, error)
}

// SimpleKeyfile persists a private key in an unencrypted file containing the
// hex dump of its D value.
type SimpleKeyfile struct {
	l       sync.Mutex
	keyfile string
}

// NewSimpleKeyfile instantiates a new SimpleKeyfile with an underlying file
func NewSimpleKeyfile(keyfile string) *SimpleKeyfile {
	return &SimpleKeyfile{
		keyfile: keyfile,
	}
}

// Path returns the location of the underlying file.
func (k *SimpleKeyfile) Path() string {
	return k.keyfile
}

// CheckFileInfo verifies that the file exists and has user permissions only.
func (k *SimpleKeyfile) CheckFileInfo() error {
	info, err := os.Stat(k.keyfile)
	if err != nil {
		return err
	}

	perm := info.Mode().Perm()

	// build 000111111 mask
	var nonUserMask os.FileMode = (1 << 6) - 1

	if perm&nonUserMask != 0 {
		return fmt.Errorf("priv_key file permissions should exclude 'groups' and 'others'. Got %o", perm)
	}

	return nil
}

// Exists reports whether the keyfile is present. A missing file is not an
// error.
func (k *SimpleKeyfile) Exists() (bool, error) {
	_, err := os.Stat(k.keyfile)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// ReadKey implements KeyReader. It reads from the underlying file which is
// expected to contain a raw hex dump of the key's D value, as produced by
// CreateKey.
func (k *SimpleKeyfile) ReadKey() (*ecdsa.PrivateKey, error) {
	k.l.Lock()
	defer k.l.Unlock()

	if err := k.CheckFileInfo(); err != nil {
		return nil, err
	}

	buf, err := ioutil.ReadFile(k.keyfile)
	if err != nil {
		return nil, err
	}

	key, err := DecodePrivateKey(string(buf))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedKey, err)
	}

	return key, nil
}

// CreateKey writes the key only if the keyfile does not exist yet. The dump
// goes to a temporary file in the same directory which is then hard-linked
// into place, so the keyfile is either absent or complete, and an existing
// keyfile is never replaced. If the keyfile already exists the returned error
// satisfies os.IsExist.
func (k *SimpleKeyfile) CreateKey(key *ecdsa.PrivateKey) error {
	k.l.Lock()
	defer k.l.Unlock()

	dir := filepath.Dir(k.keyfile)

	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	tmp, err := ioutil.TempFile(dir, ".priv_key-")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(EncodePrivateKey(key)); err != nil {
		tmp.Close()
		return err
	}

	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}

	if err := tmp.Close(); err != nil {
		return err
	}

	if err := os.Chmod(tmp.Name(), 0600); err != nil {
		return err
	}

	return os.Link(tmp.Name(), k.keyfile)
}

// Remove deletes the keyfile. Removing a missing keyfile is not an error.
func (k *SimpleKeyfile) Remove() error {
	k.l.Lock()
	defer k.l.Unlock()

	err := os.Remove(k.keyfile)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
