// Package metadata fetches and represents upstream page metadata used to
// build link previews. Fields carry Open-Graph-style and Twitter-card-style
// aliases; normalization into a preview happens in the embed package.
package metadata

import "fmt"

// FetchFailedMessage is shown to the user when the metadata collaborator
// cannot be reached or returns a failure. It deliberately replaces the
// technical error, which is only logged.
const FetchFailedMessage = "Couldn't fetch link details. Try again later."

// Raw is the upstream metadata payload. All fields are optional; empty
// string means absent.
type Raw struct {
	Title        string `json:"title"`
	OGTitle      string `json:"ogTitle"`
	TwitterTitle string `json:"twitterTitle"`

	Description        string `json:"description"`
	OGDescription      string `json:"ogDescription"`
	TwitterDescription string `json:"twitterDescription"`

	Image        string `json:"image"`
	OGImage      string `json:"ogImage"`
	TwitterImage string `json:"twitterImage"`

	URL       string `json:"url"`
	OGURL     string `json:"ogUrl"`
	Canonical string `json:"canonical"`

	SiteName    string `json:"siteName"`
	OGSiteName  string `json:"ogSiteName"`
	TwitterSite string `json:"twitterSite"`

	Favicon string `json:"favicon"`
}

// FetchError reports a failed metadata fetch: transport error, non-success
// status or malformed payload. Callers surface FetchFailedMessage instead
// of the error text.
type FetchError struct {
	Target string
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetching metadata for %s: %v", e.Target, e.Err)
	}
	return fmt.Sprintf("fetching metadata for %s: status %d", e.Target, e.Status)
}

func (e *FetchError) Unwrap() error { return e.Err }
