// Package embed turns a classified URL into an embeddable locator, or
// normalizes fetched page metadata into a link preview.
package embed

import (
	"errors"
	"fmt"
	"strings"

	"unfurl/internal/service"
)

// ErrPatternMismatch means the service pattern that produced the
// classification no longer matches the URL at resolution time. With
// stateless patterns this is a programming-contract violation, not a user
// error.
var ErrPatternMismatch = errors.New("service pattern does not match URL")

// ErrIDExtraction means the service's extractor produced an empty id.
var ErrIDExtraction = errors.New("could not extract resource id")

// Result is the outcome of classifying and resolving one source URL.
// Immutable once built; a new submission replaces it wholesale.
type Result struct {
	Service string `json:"service"` // empty means no known service matched
	Source  string `json:"source"`
	Locator string `json:"embed"` // empty until resolved
}

// ResolveEmbed extracts the identifying token from the URL and substitutes
// it into the service's embed template. Idempotent: the same (service, url)
// pair always yields the same locator.
func ResolveEmbed(svc service.Service, rawURL string) (string, error) {
	matches := svc.Pattern.FindStringSubmatch(rawURL)
	if matches == nil {
		return "", fmt.Errorf("service %q: %w", svc.Name, ErrPatternMismatch)
	}

	extract := svc.ExtractID
	if extract == nil {
		extract = service.FirstCapture
	}

	// Drop the full-match element, keep only the capture groups.
	id := extract(matches[1:])
	if id == "" {
		return "", fmt.Errorf("service %q: %w", svc.Name, ErrIDExtraction)
	}

	// Replace every occurrence: a template may reference the id more than once.
	return strings.ReplaceAll(svc.EmbedTemplate, service.IDToken, id), nil
}

// Markup renders the service's viewer shell with the resolved locator.
func Markup(svc service.Service, locator string) string {
	return strings.ReplaceAll(svc.PreviewMarkup, service.SourceToken, locator)
}
