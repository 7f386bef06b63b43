package node

import (
	"fmt"
	"io/ioutil"
	"os"

	"github.com/ecoblock/ecoblock/src/config"
)

// This example creates a node in a temporary directory, records a link to a
// peer, and appends two blocks to its tangle.
func Example() {
	dir, _ := ioutil.TempDir("", "ecoblock-example")
	defer os.RemoveAll(dir)

	// Start from default configuration, logging errors only.
	conf := config.NewDefaultConfig()
	conf.LogLevel = "error"

	// The Guard owns the node's state. Pass it to every component that needs
	// to read or mutate it.
	guard := NewGuard(conf.Logger())
	defer guard.Close()

	// Persist a new key in dir and install a fresh context around it.
	lifecycle := NewLifecycle(guard, conf)
	if _, err := lifecycle.CreateLocalNode(dir); err != nil {
		fmt.Println(err)
		return
	}

	guard.AddPeerConnection(guard.NodeID(), "0XPEER", 0.5)

	genesis := guard.CreateBlock([]byte("genesis"), nil)
	guard.CreateBlock([]byte("reading"), []string{genesis})

	fmt.Println(guard.TangleSize(), guard.ListPeers(guard.NodeID()))
	// Output: 2 [0XPEER]
}
