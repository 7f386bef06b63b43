package commands

import (
	"fmt"

	"github.com/ecoblock/ecoblock/src/keystore"
	"github.com/spf13/cobra"
)

// NewStatusCmd produces a command reporting whether the data directory holds
// an initialized node
func NewStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show whether the node is initialized",
		RunE:  status,
	}
}

func status(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	initialized, err := keystore.NodeIsInitialized(_config.Node.DataDir)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "datadir: %s\n", _config.Node.DataDir)
	fmt.Fprintf(out, "initialized: %v\n", initialized)

	if _config.Node.Moniker != "" {
		fmt.Fprintf(out, "moniker: %s\n", _config.Node.Moniker)
	}

	if !initialized {
		return nil
	}

	id, err := keystore.GetNodeID(_config.Node.DataDir)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "node id: %s\n", id)

	return nil
}
