package cmd

import (
	"os"

	"github.com/grovetools/assetpipe/internal/scaffold"
	"github.com/spf13/cobra"
)

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize an assetpipe configuration in the current directory",
		Long: `Creates a default assetpipe.config.yml as a starting point. The file is
fully yours to modify; this command will not overwrite an existing one.

Example:
  assetpipe init`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return err
			}
			return scaffold.Init(cwd, getLogger())
		},
	}
	return cmd
}
