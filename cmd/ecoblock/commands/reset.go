package commands

import (
	"fmt"

	"github.com/ecoblock/ecoblock/src/keystore"
	"github.com/spf13/cobra"
)

// NewResetCmd produces a command deleting the node key. The tangle database
// and topology file are kept.
func NewResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Delete the node key",
		RunE:  reset,
	}
}

func reset(cmd *cobra.Command, args []string) error {
	if err := keystore.ResetNode(_config.Node.DataDir); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", _config.Node.Keyfile())

	return nil
}
