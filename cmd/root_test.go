package cmd

import (
	"testing"

	"unfurl/internal/config"
)

func TestBuildRegistryFromConfig(t *testing.T) {
	cfg = &config.Config{
		TimeoutSeconds: 30,
		Services: map[string]config.ServiceOverride{
			"clips": {
				Pattern:  `https?://clips\.example\.com/(\w+)`,
				EmbedURL: "https://clips.example.com/embed/<id>",
				Markup:   `<iframe src="<src>"></iframe>`,
			},
			// No pattern key: must be skipped before regexp.Compile can turn
			// the empty string into a match-everything pattern.
			"nopattern": {
				EmbedURL: "https://nopattern.example/embed/<id>",
				Markup:   `<iframe src="<src>"></iframe>`,
			},
			// Unparseable pattern: also skipped, never fatal.
			"badpattern": {
				Pattern:  `https?://(unclosed`,
				EmbedURL: "https://badpattern.example/embed/<id>",
				Markup:   `<iframe src="<src>"></iframe>`,
			},
		},
	}
	t.Cleanup(func() { cfg = nil })

	reg := buildRegistry()

	if _, ok := reg.Get("clips"); !ok {
		t.Error("valid override missing from registry")
	}
	if _, ok := reg.Get("nopattern"); ok {
		t.Error("override without a pattern must be dropped")
	}
	if _, ok := reg.Get("badpattern"); ok {
		t.Error("override with an unparseable pattern must be dropped")
	}

	if got := reg.Classify("https://clips.example.com/abc"); got != "clips" {
		t.Errorf("Classify = %q, want clips", got)
	}
	// Dropped overrides must not leak into classification.
	if got := reg.Classify("not a url"); got != "" {
		t.Errorf("Classify(non-URL) = %q, want empty sentinel", got)
	}
	if got := reg.Classify("https://example.com/page"); got != "link" {
		t.Errorf("Classify(generic URL) = %q, want link", got)
	}
}

func TestBuildRegistryAllowListFromConfig(t *testing.T) {
	cfg = &config.Config{
		TimeoutSeconds: 30,
		Enabled:        []string{"youtube"},
	}
	t.Cleanup(func() { cfg = nil })

	reg := buildRegistry()

	names := reg.Names()
	if len(names) != 1 || names[0] != "youtube" {
		t.Errorf("Names() = %v, want [youtube]", names)
	}
}
