package commands

import (
	"fmt"

	"github.com/ecoblock/ecoblock/src/version"
	"github.com/spf13/cobra"
)

// NewVersionCmd produces a VersionCmd which shows version info
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version info",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.Version)
		},
	}
}
