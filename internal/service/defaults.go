package service

import "regexp"

// iframeMarkup is the common viewer shell used by most services.
const iframeMarkup = `<iframe src="<src>" frameborder="0" allowfullscreen></iframe>`

// Defaults returns the built-in service table. Order matters: Classify uses
// first match wins, so narrower patterns (twitch-video) come before the
// broader ones that would also match (twitch-channel).
func Defaults() []Service {
	return []Service{
		{
			Name: "youtube",
			Pattern: regexp.MustCompile(
				`(?:https?://)?(?:www\.|m\.)?(?:youtube\.com/watch\?(?:[^#\s]*&)?v=([0-9A-Za-z_-]{6,12})|youtu\.be/([0-9A-Za-z_-]{6,12})|youtube\.com/embed/([0-9A-Za-z_-]{6,12}))`),
			EmbedTemplate: "https://www.youtube.com/embed/<id>",
			ExtractID:     FirstCapture, // alternation fills exactly one group
			PreviewMarkup: iframeMarkup,
			Height:        320,
			Width:         580,
		},
		{
			Name:          "vimeo",
			Pattern:       regexp.MustCompile(`(?:https?://)?(?:www\.)?(?:player\.)?vimeo\.com/(?:video/)?(\d+)`),
			EmbedTemplate: "https://player.vimeo.com/video/<id>?title=0&byline=0",
			PreviewMarkup: iframeMarkup,
			Height:        320,
			Width:         580,
		},
		{
			Name:          "coub",
			Pattern:       regexp.MustCompile(`https?://coub\.com/view/([^/?&]+)`),
			EmbedTemplate: "https://coub.com/embed/<id>",
			PreviewMarkup: iframeMarkup,
			Height:        320,
			Width:         580,
		},
		{
			Name:          "imgur",
			Pattern:       regexp.MustCompile(`https?://(?:i\.)?imgur\.com/(?:gallery/)?([a-zA-Z0-9]+)(?:\.gifv)?/?$`),
			EmbedTemplate: "https://imgur.com/<id>/embed",
			PreviewMarkup: iframeMarkup,
			Height:        500,
			Width:         540,
		},
		{
			Name:          "gfycat",
			Pattern:       regexp.MustCompile(`https?://gfycat\.com/(?:detail/)?([a-zA-Z]+)`),
			EmbedTemplate: "https://gfycat.com/ifr/<id>",
			PreviewMarkup: iframeMarkup,
			Height:        436,
			Width:         580,
		},
		{
			// Must precede twitch-channel: channel pattern also matches /videos/.
			Name:          "twitch-video",
			Pattern:       regexp.MustCompile(`https?://(?:www\.)?twitch\.tv/videos/(\d+)`),
			EmbedTemplate: "https://player.twitch.tv/?video=v<id>",
			PreviewMarkup: iframeMarkup,
			Height:        366,
			Width:         600,
		},
		{
			Name:          "twitch-channel",
			Pattern:       regexp.MustCompile(`https?://(?:www\.)?twitch\.tv/([^/?&]+)/?$`),
			EmbedTemplate: "https://player.twitch.tv/?channel=<id>",
			PreviewMarkup: iframeMarkup,
			Height:        366,
			Width:         600,
		},
		{
			Name:          "codepen",
			Pattern:       regexp.MustCompile(`https?://codepen\.io/([^/?&]+)/pen/([^/?&]+)`),
			EmbedTemplate: "https://codepen.io/<id>?height=300&theme-id=0&default-tab=css,result&embed-version=2",
			ExtractID:     joinCaptures("/embed/"), // user + "/embed/" + pen hash
			PreviewMarkup: iframeMarkup,
			Height:        300,
			Width:         600,
		},
		{
			Name:          "instagram",
			Pattern:       regexp.MustCompile(`https?://(?:www\.)?instagram\.com/p/([^/?&]+)`),
			EmbedTemplate: "https://www.instagram.com/p/<id>/embed",
			PreviewMarkup: iframeMarkup,
			Height:        505,
			Width:         400,
		},
		{
			Name:          "twitter",
			Pattern:       regexp.MustCompile(`https?://(?:www\.|mobile\.)?(?:twitter|x)\.com/[^/?&]+/status/(\d+)`),
			EmbedTemplate: "https://platform.twitter.com/embed/Tweet.html?id=<id>",
			PreviewMarkup: iframeMarkup,
			Height:        300,
			Width:         550,
		},
		{
			Name:          "pinterest",
			Pattern:       regexp.MustCompile(`https?://(?:www\.)?pinterest\.com/pin/([^/?&]+)`),
			EmbedTemplate: "https://assets.pinterest.com/ext/embed.html?id=<id>",
			PreviewMarkup: iframeMarkup,
			Height:        400,
			Width:         345,
		},
		{
			Name:          "github-gist",
			Pattern:       regexp.MustCompile(`https?://gist\.github\.com/([^/?&]+)/([0-9a-f]+)`),
			EmbedTemplate: "https://gist.github.com/<id>.pibb",
			ExtractID:     joinCaptures("/"),
			PreviewMarkup: iframeMarkup,
			Height:        350,
			Width:         600,
		},
	}
}
