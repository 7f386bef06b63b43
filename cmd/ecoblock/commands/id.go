package commands

import (
	"fmt"

	"github.com/ecoblock/ecoblock/src/keystore"
	"github.com/spf13/cobra"
)

// NewIDCmd produces a command printing the id of the node in the data
// directory
func NewIDCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "id",
		Short: "Print the node id",
		RunE:  printID,
	}
}

func printID(cmd *cobra.Command, args []string) error {
	id, err := keystore.GetNodeID(_config.Node.DataDir)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), id)

	return nil
}
