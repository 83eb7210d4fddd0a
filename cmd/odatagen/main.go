// odatagen generates typed Go API clients from OData $metadata documents.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "odatagen",
	Short: "Generate typed API clients from OData metadata",
	Long: `odatagen flattens an OData schema graph into a depth-bounded tree of
routes and generates one typed request builder per route.

Examples:
  odatagen generate -c odatagen.yaml
  odatagen generate -m metadata.xml -t ./msgraph --max-depth 3
  odatagen generate -c odatagen.yaml --watch`,
	SilenceUsage: true,
}

func main() {
	rootCmd.AddCommand(generateCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
