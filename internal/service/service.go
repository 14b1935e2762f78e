// Package service maintains the table of known embed providers and
// classifies arbitrary URLs against it.
package service

import (
	"regexp"
	"strings"
)

// IDToken is the placeholder in an embed template that gets replaced by the
// extracted resource id.
const IDToken = "<id>"

// SourceToken is the placeholder in preview markup that gets replaced by the
// resolved locator.
const SourceToken = "<src>"

// GenericLink is the classification returned for URLs that look like web
// links but match no specific service. Resolution falls back to a link
// preview instead of a direct embed.
const GenericLink = "link"

// ExtractIDFunc maps the ordered list of regex capture groups (full match
// excluded) to the id string substituted into the embed template. It must be
// pure: deterministic on the same capture list, no side effects.
type ExtractIDFunc func(captures []string) string

// Service describes a single embeddable content provider. Immutable once
// registered; identified by Name.
type Service struct {
	// Name is the unique registry key, e.g. "youtube".
	Name string

	// Pattern recognizes source URLs and captures the identifying substrings.
	Pattern *regexp.Regexp

	// EmbedTemplate is the embed URL with IDToken standing in for the id.
	EmbedTemplate string

	// ExtractID derives the id from the capture groups. Build normalizes a
	// nil value to FirstCapture so resolution never branches on it.
	ExtractID ExtractIDFunc

	// PreviewMarkup is the viewer shell with SourceToken standing in for the
	// resolved locator.
	PreviewMarkup string

	// Height and Width are sizing hints for the viewer shell.
	Height int
	Width  int
}

// FirstCapture is the default id extraction rule: take the first non-empty
// capture group.
func FirstCapture(captures []string) string {
	for _, c := range captures {
		if c != "" {
			return c
		}
	}
	return ""
}

// joinCaptures builds an extractor that joins all non-empty capture groups
// with sep. Used by services whose id spans several URL path segments.
func joinCaptures(sep string) ExtractIDFunc {
	return func(captures []string) string {
		var parts []string
		for _, c := range captures {
			if c != "" {
				parts = append(parts, c)
			}
		}
		return strings.Join(parts, sep)
	}
}
