package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"unfurl/internal/embed"
	"unfurl/internal/history"
	"unfurl/internal/httputil"
	"unfurl/internal/metadata"
	"unfurl/internal/service"
)

// resolveRun is the default command: unfurl <url>
func resolveRun(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("no URL given (see 'unfurl --help')")
	}
	rawURL := args[0]

	reg := buildRegistry()
	name := reg.Classify(rawURL)
	debugf("classified %q as %q", rawURL, name)

	switch name {
	case "":
		return fmt.Errorf("%q is not a URL unfurl can act on", rawURL)
	case service.GenericLink:
		return previewFlow(cmd, rawURL)
	}

	svc, ok := reg.Get(name)
	if !ok {
		// Classify only returns registered names; treat as a contract violation.
		return fmt.Errorf("service %q vanished from registry", name)
	}

	locator, err := embed.ResolveEmbed(svc, rawURL)
	if err != nil {
		return fmt.Errorf("resolving embed: %w", err)
	}

	result := embed.Result{Service: name, Source: rawURL, Locator: locator}

	if cfg.History {
		entry := history.Entry{
			Service: result.Service,
			Source:  result.Source,
			Embed:   result.Locator,
			Caption: flagCaption,
		}
		if err := history.Save(entry); err != nil {
			debugf("saving history: %v", err)
		}
	}

	return printResult(svc, result)
}

// printResult writes the resolved embed in the requested format.
func printResult(svc service.Service, result embed.Result) error {
	switch {
	case flagJSON:
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	case flagMarkup:
		fmt.Println(embed.Markup(svc, result.Locator))
	default:
		fmt.Println(result.Locator)
	}
	return nil
}

// previewFlow fetches metadata for a generic link and renders a preview
// card. A failed fetch degrades to a user-facing message, not an error exit.
func previewFlow(cmd *cobra.Command, rawURL string) error {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second

	var raw metadata.Raw
	var err error
	if cfg.Endpoint != "" {
		client := metadata.NewClient(cfg.Endpoint, timeout)
		raw, err = client.Fetch(cmd.Context(), rawURL)
	} else {
		raw, err = metadata.Scrape(cmd.Context(), httputil.NewClient(timeout), rawURL)
	}

	if err != nil {
		var fetchErr *metadata.FetchError
		if errors.As(err, &fetchErr) {
			debugf("metadata fetch: %v", err)
			fmt.Println(metadata.FetchFailedMessage)
			return nil
		}
		return err
	}

	preview := embed.ResolveLinkPreview(raw)

	if cfg.History {
		entry := history.Entry{
			Service: service.GenericLink,
			Source:  rawURL,
			Caption: flagCaption,
		}
		if err := history.Save(entry); err != nil {
			debugf("saving history: %v", err)
		}
	}

	return printPreview(preview)
}

// printPreview writes the link-preview card.
func printPreview(p embed.LinkPreview) error {
	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(p)
	}

	if p.Title != "" {
		fmt.Println(p.Title)
	}
	if p.Description != "" {
		fmt.Println(p.Description)
	}
	if p.SiteName != "" {
		fmt.Printf("site:  %s\n", p.SiteName)
	}
	if p.CanonicalURL != "" {
		fmt.Printf("url:   %s\n", p.CanonicalURL)
	}
	if p.ImageURL != "" {
		fmt.Printf("image: %s\n", p.ImageURL)
	}
	if p.IconURL != "" {
		fmt.Printf("icon:  %s\n", p.IconURL)
	}
	return nil
}
