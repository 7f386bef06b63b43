package mobile

import (
	"errors"
	"fmt"
	"sync"

	"github.com/ecoblock/ecoblock/src/keystore"
	"github.com/ecoblock/ecoblock/src/node"
)

var (
	once      sync.Once
	setupMu   sync.Mutex
	setup     = DefaultMobileConfig()
	lifecycle *node.Lifecycle
)

// Configure sets the options used to build the process Guard. It fails once
// any other function of the package has been called.
func Configure(config *MobileConfig) error {
	if config == nil {
		return errors.New("nil mobile config")
	}

	setupMu.Lock()
	defer setupMu.Unlock()

	if lifecycle != nil {
		return errors.New("node already started, configure before the first call")
	}

	setup = config
	return nil
}

func instance() *node.Lifecycle {
	once.Do(func() {
		setupMu.Lock()
		defer setupMu.Unlock()

		conf := setup.toConfig()
		lifecycle = node.NewLifecycle(node.NewGuard(conf.Logger()), conf)
	})
	return lifecycle
}

// KeypairPath returns the path of the keyfile inside directory.
func KeypairPath(directory string) string {
	return keystore.KeypairPath(directory)
}

// GenerateKeypair persists a new keypair under directory and returns the
// public key.
func GenerateKeypair(directory string) (string, error) {
	pub, err := keystore.GenerateKeypair(directory)
	return pub, flatten(err)
}

// GetPublicKey returns the public key persisted under directory.
func GetPublicKey(directory string) (string, error) {
	pub, err := instance().GetPublicKey(directory)
	return pub, flatten(err)
}

// GetNodeID returns the id of the node persisted under directory.
func GetNodeID(directory string) (string, error) {
	id, err := instance().GetNodeID(directory)
	return id, flatten(err)
}

// ResetNode deletes the keyfile under directory.
func ResetNode(directory string) error {
	return flatten(instance().ResetNode(directory))
}

// NodeIsInitialized reports whether a keyfile exists under directory.
func NodeIsInitialized(directory string) (bool, error) {
	ok, err := instance().NodeIsInitialized(directory)
	return ok, flatten(err)
}

// CreateLocalNode creates a node under directory and makes it the current one.
func CreateLocalNode(directory string) (string, error) {
	id, err := instance().CreateLocalNode(directory)
	return id, flatten(err)
}

// LoadLocalNode makes the node persisted under directory the current one.
func LoadLocalNode(directory string) (string, error) {
	id, err := instance().LoadLocalNode(directory)
	return id, flatten(err)
}

// CurrentNodeID returns the id of the current node.
func CurrentNodeID() string {
	return instance().Guard().NodeID()
}

// CreateBlock adds a block to the current node's tangle and returns its id.
// jsonParents is a JSON array of parent ids; an empty string means no parents.
func CreateBlock(payload []byte, jsonParents string) (string, error) {
	parents, err := decodeParents(jsonParents)
	if err != nil {
		return "", fmt.Errorf("failed to parse parents: %v", err)
	}

	// gomobile may reuse the payload buffer once the call returns
	p := make([]byte, len(payload))
	copy(p, payload)

	return instance().Guard().CreateBlock(p, parents), nil
}

// GetTangleSize returns the number of blocks in the current node's tangle.
func GetTangleSize() int {
	return instance().Guard().TangleSize()
}

// AddPeerConnection records a directed link between two peers.
func AddPeerConnection(from, to string, weight float64) {
	instance().Guard().AddPeerConnection(from, to, weight)
}

// ListPeers returns the outgoing neighbours of peer as a JSON array.
func ListPeers(peer string) string {
	return encodeJSON(instance().Guard().ListPeers(peer))
}

// GetStats returns the statistics of the current node as a JSON object.
func GetStats() string {
	return encodeJSON(instance().Guard().Stats())
}

// SaveTopology writes the current node's peer links to a JSON file.
func SaveTopology(path string) error {
	return flatten(instance().Guard().SaveTopology(path))
}

// Shutdown closes the current node. The next call starts from a fresh default
// node.
func Shutdown() error {
	return flatten(instance().Guard().Close())
}
