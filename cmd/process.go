package cmd

import (
	"fmt"
	"os"

	"github.com/grovetools/assetpipe/pkg/emitter"
	"github.com/grovetools/assetpipe/pkg/loader"
	"github.com/spf13/cobra"
)

func newProcessCmd() *cobra.Command {
	var (
		name       string
		outputPath string
		publicPath string
		context    string
		regExp     string
		outDir     string
		noEmit     bool
		commonJS   bool
	)

	cmd := &cobra.Command{
		Use:   "process <file>",
		Short: "Process a single file and print the generated module source",
		Long: `Runs the loader once for a single file: resolves the content-hashed
name, emits the artifact (unless --no-emit), and prints the generated
re-export statement to stdout.

Example:
  assetpipe process logo.png --name "[contenthash:16].[ext]" --output-path images
  assetpipe process logo.png --public-path https://cdn.example.com --no-emit`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resourcePath := args[0]
			content, err := os.ReadFile(resourcePath)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", resourcePath, err)
			}

			raw := loader.RawOptions{}
			if name != "" {
				raw["name"] = name
			}
			if outputPath != "" {
				raw["outputPath"] = outputPath
			}
			if publicPath != "" {
				raw["publicPath"] = publicPath
			}
			if context != "" {
				raw["context"] = context
			}
			if regExp != "" {
				raw["regExp"] = regExp
			}
			if noEmit {
				raw["emitFile"] = false
			}
			if commonJS {
				raw["esModule"] = false
			}

			cwd, err := os.Getwd()
			if err != nil {
				return err
			}
			env := loader.NewEnvironment(cwd, resourcePath, emitter.NewFS(outDir))

			source, err := loader.Process(content, raw, env)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), source)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Name template (default \"[contenthash].[ext]\")")
	cmd.Flags().StringVar(&outputPath, "output-path", "", "Subdirectory within the output directory")
	cmd.Flags().StringVar(&publicPath, "public-path", "", "Static public path prefix")
	cmd.Flags().StringVar(&context, "context", "", "Context directory for [path] resolution (default: cwd)")
	cmd.Flags().StringVar(&regExp, "regexp", "", "Pattern matched against the resource path for [N] placeholders")
	cmd.Flags().StringVar(&outDir, "out-dir", "dist", "Directory emitted artifacts are written to")
	cmd.Flags().BoolVar(&noEmit, "no-emit", false, "Resolve paths without writing the artifact")
	cmd.Flags().BoolVar(&commonJS, "common-js", false, "Generate module.exports instead of export default")

	return cmd
}
