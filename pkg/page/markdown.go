package page

import (
	"bytes"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

var (
	markdownOnce sync.Once
	markdown     goldmark.Markdown
	policy       *bluemonday.Policy
)

func markdownEngine() (goldmark.Markdown, *bluemonday.Policy) {
	markdownOnce.Do(func() {
		markdown = goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		)
		policy = bluemonday.UGCPolicy()
		policy.AllowAttrs("class").OnElements("p", "span", "ul", "li", "table")
		policy.RequireNoFollowOnLinks(true)
	})
	return markdown, policy
}

// RenderMarkdown converts tab content to sanitized HTML.
func RenderMarkdown(src string) (string, error) {
	md, p := markdownEngine()
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return p.Sanitize(buf.String()), nil
}
