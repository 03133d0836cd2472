package cmd

import (
	"fmt"

	"github.com/grovetools/assetpipe/pkg/config"
	"github.com/grovetools/assetpipe/pkg/schema"
	"github.com/spf13/cobra"
)

func newSchemaCmd() *cobra.Command {
	var asText bool

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the schema for assetpipe.config.yml",
		Long:  "Prints the configuration file schema as JSON (for editor integration and config linting) or as a plain text reference.",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := config.Schema()
			if err != nil {
				return fmt.Errorf("failed to generate schema: %w", err)
			}

			if asText {
				renderer, err := schema.NewRenderer(data)
				if err != nil {
					return err
				}
				text, err := renderer.RenderAsText()
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), text)
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asText, "text", false, "Render the schema as a plain text reference")

	return cmd
}
