// Package history persists resolved embeds as TSV so a saved entry can be
// re-rendered later without re-classifying or re-fetching anything.
// Uses atomic writes (temp+rename) to prevent data corruption.
package history

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"unfurl/internal/config"
)

// TSV columns: service, source, embed, caption
const numColumns = 4

// Entry is the persisted state of one resolved URL. Embed is empty when the
// source only produced a link preview.
type Entry struct {
	Service string
	Source  string
	Embed   string
	Caption string
}

// Load reads the history file and returns all entries.
func Load() ([]Entry, error) {
	path, err := config.HistoryPath()
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening history: %w", err)
	}
	defer f.Close()

	var entries []Entry
	scanner := bufio.NewScanner(f)

	for scanner.Scan() {
		line := scanner.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		entry, err := parseLine(line)
		if err != nil {
			continue // Skip malformed lines
		}
		entries = append(entries, entry)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading history: %w", err)
	}

	return entries, nil
}

// Save writes or updates an entry, keyed by source URL.
// Uses atomic write (write to temp file, then rename) to prevent corruption.
func Save(entry Entry) error {
	path, err := config.HistoryPath()
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("creating history dir: %w", err)
	}

	entries, _ := Load()

	found := false
	for i, e := range entries {
		if e.Source == entry.Source {
			entries[i] = entry
			found = true
			break
		}
	}
	if !found {
		entries = append(entries, entry)
	}

	return writeAll(path, entries)
}

// Remove deletes the entry for a source URL.
func Remove(source string) error {
	entries, err := Load()
	if err != nil {
		return err
	}

	var filtered []Entry
	for _, e := range entries {
		if e.Source != source {
			filtered = append(filtered, e)
		}
	}

	path, err := config.HistoryPath()
	if err != nil {
		return err
	}

	return writeAll(path, filtered)
}

// writeAll replaces the history file contents atomically.
func writeAll(path string, entries []Entry) error {
	dir := filepath.Dir(path)
	tmpFile, err := os.CreateTemp(dir, "history-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	writer := bufio.NewWriter(tmpFile)
	for _, e := range entries {
		if _, err := writer.WriteString(formatLine(e) + "\n"); err != nil {
			tmpFile.Close()
			os.Remove(tmpPath)
			return fmt.Errorf("writing history: %w", err)
		}
	}

	if err := writer.Flush(); err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("flushing history: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming history file: %w", err)
	}

	return nil
}

// FormatForDisplay creates display strings for fzf selection.
func FormatForDisplay(entries []Entry) []string {
	var items []string
	for _, e := range entries {
		display := fmt.Sprintf("[%s] %s", e.Service, e.Source)
		if e.Caption != "" {
			display += " — " + e.Caption
		}
		items = append(items, display)
	}
	return items
}

// parseLine parses a TSV line into an Entry.
func parseLine(line string) (Entry, error) {
	fields := strings.Split(line, "\t")
	if len(fields) < numColumns {
		return Entry{}, fmt.Errorf("expected %d columns, got %d", numColumns, len(fields))
	}

	return Entry{
		Service: fields[0],
		Source:  fields[1],
		Embed:   fields[2],
		Caption: fields[3],
	}, nil
}

// formatLine converts an Entry to a TSV line. Tabs and newlines in the
// caption would break the format, so they collapse to spaces.
func formatLine(e Entry) string {
	return strings.Join([]string{
		sanitizeField(e.Service),
		sanitizeField(e.Source),
		sanitizeField(e.Embed),
		sanitizeField(e.Caption),
	}, "\t")
}

func sanitizeField(s string) string {
	replacer := strings.NewReplacer("\t", " ", "\n", " ", "\r", "")
	return replacer.Replace(s)
}
