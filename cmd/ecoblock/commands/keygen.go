package commands

import (
	"fmt"

	"github.com/ecoblock/ecoblock/src/keystore"
	"github.com/spf13/cobra"
)

// NewKeygenCmd produces a KeygenCmd which creates the node's key pair in the
// data directory
func NewKeygenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keygen",
		Short: "Create the node key pair",
		RunE:  keygen,
	}
}

func keygen(cmd *cobra.Command, args []string) error {
	pub, err := keystore.GenerateKeypair(_config.Node.DataDir)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Your private key has been saved to: %s\n", _config.Node.Keyfile())
	fmt.Fprintf(cmd.OutOrStdout(), "Public key: %s\n", pub)

	return nil
}
