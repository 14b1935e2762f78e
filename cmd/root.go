// Package cmd implements the CLI commands using Cobra.
package cmd

import (
	"fmt"
	"log"
	"os"
	"regexp"
	"sort"

	"github.com/spf13/cobra"

	"unfurl/internal/config"
	"unfurl/internal/service"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Global flags
var (
	flagJSON      bool
	flagMarkup    bool
	flagCaption   string
	flagEndpoint  string
	flagNoHistory bool
	flagDebug     bool
)

// cfg holds the loaded configuration (merged: defaults < config file < flags).
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "unfurl <url>",
	Short: "Turn a pasted URL into an embeddable locator or a link preview",
	Long: `Unfurl recognizes a pasted URL, classifies it against a table of known
content providers, and resolves an embed URL. Links that match no provider
get a link-preview card built from the page's metadata instead.`,
	Args:              cobra.MaximumNArgs(1),
	PersistentPreRunE: loadConfig,
	RunE:              resolveRun,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagJSON, "json", "j", false, "Output results as JSON")
	rootCmd.PersistentFlags().BoolVarP(&flagMarkup, "markup", "m", false, "Print the viewer markup instead of the bare locator")
	rootCmd.PersistentFlags().StringVarP(&flagCaption, "caption", "c", "", "Caption to store with the resolved embed")
	rootCmd.PersistentFlags().StringVarP(&flagEndpoint, "endpoint", "e", "", "Metadata extraction endpoint (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&flagNoHistory, "no-history", "n", false, "Do not record resolved embeds")
	rootCmd.PersistentFlags().BoolVarP(&flagDebug, "debug", "x", false, "Debug logging to stderr")

	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(servicesCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig loads and merges configuration: defaults < config file < CLI flags.
func loadConfig(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if flagEndpoint != "" {
		cfg.Endpoint = flagEndpoint
	}
	if flagNoHistory {
		cfg.History = false
	}
	if flagDebug {
		cfg.Debug = true
	}

	// Re-validate after flag overrides
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log.SetOutput(os.Stderr)
	if cfg.Debug {
		log.SetPrefix("[unfurl] ")
	} else {
		log.SetFlags(0)
	}

	return nil
}

// buildRegistry converts configured overrides into registry options and
// builds the service table. The registry is rebuilt wholesale from the
// configuration on every invocation, never mutated in place.
func buildRegistry() *service.Registry {
	opts := service.Options{
		AllowList: cfg.Enabled,
		Debug:     cfg.Debug,
	}

	// TOML tables are unordered; sort names so the merge order is
	// deterministic across runs.
	names := make([]string, 0, len(cfg.Services))
	for name := range cfg.Services {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		ov := cfg.Services[name]
		// A missing pattern key arrives as "", which regexp.Compile happily
		// turns into a match-everything pattern. Drop it here.
		if ov.Pattern == "" {
			debugf("dropping service override %q: no pattern", name)
			continue
		}
		pattern, err := regexp.Compile(ov.Pattern)
		if err != nil {
			debugf("dropping service override %q: bad pattern: %v", name, err)
			continue
		}
		opts.Overrides = append(opts.Overrides, service.Override{
			Name:          name,
			Pattern:       pattern,
			EmbedTemplate: ov.EmbedURL,
			PreviewMarkup: ov.Markup,
			Height:        ov.Height,
			Width:         ov.Width,
		})
	}

	return service.Build(opts)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("unfurl " + Version)
	},
}

// debugf logs a message if debug mode is enabled.
func debugf(format string, args ...interface{}) {
	if cfg != nil && cfg.Debug {
		log.Printf(format, args...)
	}
}
