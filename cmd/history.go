package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"unfurl/internal/embed"
	"unfurl/internal/history"
	"unfurl/internal/service"
	"unfurl/internal/ui"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Re-render a previously resolved embed",
	RunE:  historyRun,
}

func historyRun(cmd *cobra.Command, args []string) error {
	entries, err := history.Load()
	if err != nil {
		return fmt.Errorf("loading history: %w", err)
	}

	if len(entries) == 0 {
		fmt.Println("No history entries found.")
		return nil
	}

	items := history.FormatForDisplay(entries)
	idx, err := ui.Pick("History", items)
	if err != nil {
		return err
	}

	selected := entries[idx]
	debugf("restoring: %s (%s)", selected.Source, selected.Service)

	out, err := renderSaved(selected, buildRegistry())
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}

// renderSaved re-renders a persisted entry from its stored fields alone:
// same service, source, embed and caption, no re-classification and no
// network. Generic links print their saved source; embeds print the stored
// locator, or the viewer markup when requested.
func renderSaved(entry history.Entry, reg *service.Registry) (string, error) {
	if flagJSON {
		data, err := json.MarshalIndent(embed.Result{
			Service: entry.Service,
			Source:  entry.Source,
			Locator: entry.Embed,
		}, "", "  ")
		if err != nil {
			return "", err
		}
		return string(data), nil
	}

	var b strings.Builder
	if entry.Caption != "" {
		fmt.Fprintf(&b, "caption: %s\n", entry.Caption)
	}

	if entry.Service == service.GenericLink || entry.Embed == "" {
		b.WriteString(entry.Source)
		return b.String(), nil
	}

	if svc, ok := reg.Get(entry.Service); ok && flagMarkup {
		b.WriteString(embed.Markup(svc, entry.Embed))
		return b.String(), nil
	}

	// Service since removed from config; the stored locator still stands.
	b.WriteString(entry.Embed)
	return b.String(), nil
}
