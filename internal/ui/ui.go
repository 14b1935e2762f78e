// Package ui shells out to fzf for interactive selection. Entries are piped
// in as plain text over stdin; nothing user-controlled ever reaches a shell.
package ui

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

// ErrCancelled is returned when the user aborts the picker.
var ErrCancelled = errors.New("selection cancelled")

// Pick shows items in fzf and returns the index of the chosen one. Each line
// is prefixed with its index so the answer maps back to the slice without
// string comparison; the prefix column is hidden from the display.
func Pick(prompt string, items []string) (int, error) {
	if len(items) == 0 {
		return -1, errors.New("nothing to pick from")
	}

	fzf, err := exec.LookPath("fzf")
	if err != nil {
		return -1, fmt.Errorf("fzf not found in PATH: %w", err)
	}

	var in strings.Builder
	for i, item := range items {
		fmt.Fprintf(&in, "%d\t%s\n", i, item)
	}

	var out bytes.Buffer
	cmd := exec.Command(fzf,
		"--prompt", prompt+" > ",
		"--height", "40%",
		"--reverse",
		"--delimiter", "\t",
		"--with-nth", "2..",
		"--no-multi",
		"--cycle",
	)
	cmd.Stdin = strings.NewReader(in.String())
	cmd.Stdout = &out
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() == 130 {
			return -1, ErrCancelled
		}
		return -1, fmt.Errorf("fzf failed: %w", err)
	}

	choice, _, _ := strings.Cut(strings.TrimSpace(out.String()), "\t")
	idx, err := strconv.Atoi(choice)
	if err != nil || idx < 0 || idx >= len(items) {
		return -1, fmt.Errorf("unexpected fzf selection %q", choice)
	}

	return idx, nil
}
