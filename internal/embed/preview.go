package embed

import (
	"unfurl/internal/httputil"
	"unfurl/internal/metadata"
)

// LinkPreview is the normalized summary rendered when no structured embed
// is possible. Empty string is the absent sentinel throughout.
type LinkPreview struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	ImageURL     string `json:"image"`
	CanonicalURL string `json:"url"`
	IconURL      string `json:"icon"`
	SiteName     string `json:"siteName"`
}

// ResolveLinkPreview normalizes upstream metadata into a preview. Pure: the
// fetch itself is the caller's concern. Each field takes the first non-empty
// value from its alias chain; the icon is additionally gated to absolute
// HTTPS URLs so relative or insecure references never reach the renderer.
func ResolveLinkPreview(raw metadata.Raw) LinkPreview {
	p := LinkPreview{
		Title:        firstNonEmpty(raw.OGTitle, raw.TwitterTitle, raw.Title),
		Description:  firstNonEmpty(raw.OGDescription, raw.TwitterDescription, raw.Description),
		ImageURL:     firstNonEmpty(raw.OGImage, raw.TwitterImage, raw.Image),
		CanonicalURL: firstNonEmpty(raw.OGURL, raw.Canonical, raw.URL),
		SiteName:     firstNonEmpty(raw.OGSiteName, raw.TwitterSite, raw.SiteName),
	}

	if httputil.SecureURL(raw.Favicon) {
		p.IconURL = raw.Favicon
	}

	return p
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
