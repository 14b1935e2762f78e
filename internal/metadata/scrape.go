package metadata

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"unfurl/internal/httputil"
)

// Scrape fetches the target page itself and extracts Open-Graph,
// Twitter-card and plain HTML metadata. Used when no extraction endpoint is
// configured.
func Scrape(ctx context.Context, client *http.Client, target string) (Raw, error) {
	resp, err := httputil.Get(ctx, client, target)
	if err != nil {
		return Raw{}, &FetchError{Target: target, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Raw{}, &FetchError{Target: target, Status: resp.StatusCode}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return Raw{}, &FetchError{Target: target, Status: resp.StatusCode, Err: err}
	}

	base, err := url.Parse(target)
	if err != nil {
		return Raw{}, &FetchError{Target: target, Err: err}
	}

	return parseDocument(doc, base), nil
}

// parseDocument extracts metadata fields from a parsed page. Relative icon
// references are resolved against the page URL.
func parseDocument(doc *goquery.Document, base *url.URL) Raw {
	raw := Raw{
		Title:              strings.TrimSpace(doc.Find("title").First().Text()),
		OGTitle:            metaProperty(doc, "og:title"),
		TwitterTitle:       metaName(doc, "twitter:title"),
		Description:        metaName(doc, "description"),
		OGDescription:      metaProperty(doc, "og:description"),
		TwitterDescription: metaName(doc, "twitter:description"),
		OGImage:            metaProperty(doc, "og:image"),
		TwitterImage:       metaName(doc, "twitter:image"),
		OGURL:              metaProperty(doc, "og:url"),
		OGSiteName:         metaProperty(doc, "og:site_name"),
		TwitterSite:        metaName(doc, "twitter:site"),
	}

	if href, ok := doc.Find(`link[rel="canonical"]`).First().Attr("href"); ok {
		raw.Canonical = strings.TrimSpace(href)
	}

	if href := iconHref(doc); href != "" {
		if ref, err := url.Parse(href); err == nil {
			raw.Favicon = base.ResolveReference(ref).String()
		}
	}

	return raw
}

// metaProperty reads <meta property="..." content="...">.
func metaProperty(doc *goquery.Document, property string) string {
	content, _ := doc.Find(`meta[property="` + property + `"]`).First().Attr("content")
	return strings.TrimSpace(content)
}

// metaName reads <meta name="..." content="...">.
func metaName(doc *goquery.Document, name string) string {
	content, _ := doc.Find(`meta[name="` + name + `"]`).First().Attr("content")
	return strings.TrimSpace(content)
}

// iconHref returns the first icon link, preferring rel="icon" over the
// legacy rel="shortcut icon".
func iconHref(doc *goquery.Document) string {
	for _, sel := range []string{`link[rel="icon"]`, `link[rel="shortcut icon"]`, `link[rel="apple-touch-icon"]`} {
		if href, ok := doc.Find(sel).First().Attr("href"); ok && strings.TrimSpace(href) != "" {
			return strings.TrimSpace(href)
		}
	}
	return ""
}
