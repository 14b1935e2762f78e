package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"unfurl/internal/service"
)

var previewCmd = &cobra.Command{
	Use:   "preview <url>",
	Short: "Fetch page metadata and print a link-preview card",
	Long: `Preview skips the provider table and always takes the link-preview path,
even for URLs a known service would embed directly.`,
	Args: cobra.ExactArgs(1),
	RunE: previewRun,
}

func previewRun(cmd *cobra.Command, args []string) error {
	rawURL := args[0]

	// The preview path still requires something link-shaped.
	if !service.GenericPattern().MatchString(rawURL) {
		return fmt.Errorf("%q is not a URL unfurl can act on", rawURL)
	}

	return previewFlow(cmd, rawURL)
}
