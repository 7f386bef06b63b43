package common

import "fmt"

// StoreErrType enumerates the failure kinds of the tangle stores.
type StoreErrType uint32

const (
	// KeyNotFound is returned when an item is not in the store.
	KeyNotFound StoreErrType = iota
	// KeyAlreadyExists is returned when an item is inserted twice where that
	// is not allowed.
	KeyAlreadyExists
	// Empty is returned when reading from a store that holds nothing.
	Empty
)

// StoreErr is a tagged store error identifying the store, the key, and the
// failure kind.
type StoreErr struct {
	dataType string
	errType  StoreErrType
	key      string
}

// NewStoreErr ...
func NewStoreErr(dataType string, errType StoreErrType, key string) StoreErr {
	return StoreErr{
		dataType: dataType,
		errType:  errType,
		key:      key,
	}
}

// Error ...
func (e StoreErr) Error() string {
	m := ""
	switch e.errType {
	case KeyNotFound:
		m = "Not Found"
	case KeyAlreadyExists:
		m = "Key Already Exists"
	case Empty:
		m = "Empty"
	}

	return fmt.Sprintf("%s, %s, %s", e.dataType, e.key, m)
}

// IsStore checks that an error is of type StoreErr and that it's code matches
// the provided StoreErr code.
func IsStore(err error, t StoreErrType) bool {
	storeErr, ok := err.(StoreErr)
	return ok && storeErr.errType == t
}
