package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var rootCmd *cobra.Command

func init() {
	var verbose bool

	rootCmd = &cobra.Command{
		Use:           "assetpipe",
		Short:         "Content-addressed asset naming and emission for build pipelines.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				log.SetLevel(logrus.DebugLevel)
			}
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	// Add commands
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newBuildCmd())
	rootCmd.AddCommand(newProcessCmd())
	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newWatchCmd())
	rootCmd.AddCommand(newSchemaCmd())
}

func Execute() error {
	return rootCmd.Execute()
}
