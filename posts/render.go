package posts

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	htmlrenderer "github.com/yuin/goldmark/renderer/html"
)

// markdown renderer configured with Goldmark and useful extensions
var md = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,     // tables, strikethrough, task lists, autolinks (GFM set)
		extension.Linkify, // linkify raw URLs
	),
	goldmark.WithRendererOptions(
		htmlrenderer.WithUnsafe(), // allow raw HTML passthrough in Markdown
	),
)

func renderMarkdown(content string) string {
	var buf bytes.Buffer
	if err := md.Convert([]byte(content), &buf); err != nil {
		return content
	}
	return buf.String()
}

// stray artifacts some imported bodies carry: literal \r \n \t escape
// sequences and bare list tags
var feedArtifacts = regexp.MustCompile(`\\r|\\n|\\t|<ul>|<li>|</ul>|</li>`)

// feedPreview truncates a post body to its first three lines for the feed
// and strips the artifact set. Display-only: the stored body is never
// modified.
func feedPreview(body string) string {
	lines := strings.Split(body, "\n")
	if len(lines) > 3 {
		lines = lines[:3]
	}
	return feedArtifacts.ReplaceAllString(strings.Join(lines, ""), "")
}
