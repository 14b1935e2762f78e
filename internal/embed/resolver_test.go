package embed

import (
	"errors"
	"regexp"
	"testing"

	"unfurl/internal/service"
)

func TestResolveEmbedYouTube(t *testing.T) {
	reg := service.Build(service.Options{})

	url := "https://www.youtube.com/watch?v=abc123XYZ9"
	name := reg.Classify(url)
	if name != "youtube" {
		t.Fatalf("Classify = %q, want youtube", name)
	}

	svc, _ := reg.Get(name)
	locator, err := ResolveEmbed(svc, url)
	if err != nil {
		t.Fatalf("ResolveEmbed() error: %v", err)
	}

	want := "https://www.youtube.com/embed/abc123XYZ9"
	if locator != want {
		t.Errorf("locator = %q, want %q", locator, want)
	}
}

func TestResolveEmbedShortURL(t *testing.T) {
	reg := service.Build(service.Options{})
	svc, _ := reg.Get("youtube")

	locator, err := ResolveEmbed(svc, "https://youtu.be/dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("ResolveEmbed() error: %v", err)
	}
	if locator != "https://www.youtube.com/embed/dQw4w9WgXcQ" {
		t.Errorf("locator = %q", locator)
	}
}

func TestResolveEmbedIdempotent(t *testing.T) {
	reg := service.Build(service.Options{})
	svc, _ := reg.Get("vimeo")
	url := "https://vimeo.com/289677884"

	first, err := ResolveEmbed(svc, url)
	if err != nil {
		t.Fatalf("first ResolveEmbed() error: %v", err)
	}
	second, err := ResolveEmbed(svc, url)
	if err != nil {
		t.Fatalf("second ResolveEmbed() error: %v", err)
	}
	if first != second {
		t.Errorf("not idempotent: %q vs %q", first, second)
	}
}

func TestResolveEmbedReplacesAllTokens(t *testing.T) {
	svc := service.Service{
		Name:          "mirror",
		Pattern:       regexp.MustCompile(`https?://mirror\.example/(\w+)`),
		EmbedTemplate: "https://mirror.example/embed/<id>?fallback=<id>",
		PreviewMarkup: `<iframe src="<src>"></iframe>`,
	}

	locator, err := ResolveEmbed(svc, "https://mirror.example/abc")
	if err != nil {
		t.Fatalf("ResolveEmbed() error: %v", err)
	}
	want := "https://mirror.example/embed/abc?fallback=abc"
	if locator != want {
		t.Errorf("locator = %q, want %q", locator, want)
	}
}

func TestResolveEmbedPatternMismatch(t *testing.T) {
	reg := service.Build(service.Options{})
	svc, _ := reg.Get("youtube")

	_, err := ResolveEmbed(svc, "https://example.com/page")
	if !errors.Is(err, ErrPatternMismatch) {
		t.Errorf("error = %v, want ErrPatternMismatch", err)
	}
}

func TestResolveEmbedIDExtractionFailure(t *testing.T) {
	svc := service.Service{
		Name:          "broken",
		Pattern:       regexp.MustCompile(`https?://broken\.example/(\w+)`),
		EmbedTemplate: "https://broken.example/embed/<id>",
		ExtractID:     func(captures []string) string { return "" },
		PreviewMarkup: `<iframe src="<src>"></iframe>`,
	}

	_, err := ResolveEmbed(svc, "https://broken.example/abc")
	if !errors.Is(err, ErrIDExtraction) {
		t.Errorf("error = %v, want ErrIDExtraction", err)
	}
}

func TestResolveEmbedCustomExtractors(t *testing.T) {
	reg := service.Build(service.Options{})

	tests := []struct {
		name string
		url  string
		want string
	}{
		{
			"codepen joins user and pen hash",
			"https://codepen.io/Rikkokiri/pen/RYBrwG",
			"https://codepen.io/Rikkokiri/embed/RYBrwG?height=300&theme-id=0&default-tab=css,result&embed-version=2",
		},
		{
			"gist joins user and hash",
			"https://gist.github.com/nolanlawson/0eac306e4dac2114c752",
			"https://gist.github.com/nolanlawson/0eac306e4dac2114c752.pibb",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name := reg.Classify(tt.url)
			svc, ok := reg.Get(name)
			if !ok {
				t.Fatalf("no service for %q", tt.url)
			}
			got, err := ResolveEmbed(svc, tt.url)
			if err != nil {
				t.Fatalf("ResolveEmbed() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("locator = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMarkup(t *testing.T) {
	svc := service.Service{
		PreviewMarkup: `<iframe src="<src>" data-src="<src>"></iframe>`,
	}

	got := Markup(svc, "https://player.example/v/1")
	want := `<iframe src="https://player.example/v/1" data-src="https://player.example/v/1"></iframe>`
	if got != want {
		t.Errorf("Markup() = %q, want %q", got, want)
	}
}
