package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var servicesCmd = &cobra.Command{
	Use:   "services",
	Short: "List registered services and their patterns",
	Args:  cobra.NoArgs,
	RunE:  servicesRun,
}

func servicesRun(cmd *cobra.Command, args []string) error {
	reg := buildRegistry()
	patterns := reg.Patterns()

	if flagJSON {
		out := make(map[string]string, len(patterns))
		for name, p := range patterns {
			out[name] = p.String()
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	for _, name := range reg.Names() {
		fmt.Printf("%-16s %s\n", name, patterns[name])
	}
	return nil
}
