// Package markup renders user-written markdown into HTML that is safe to
// embed in a page.
package markup

import (
	"bytes"
	"fmt"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// Renderer converts GitHub flavored markdown to sanitized HTML. It is safe
// for concurrent use.
type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// New returns a Renderer with the user generated content policy: images are
// allowed and external links open in a new tab without a referrer.
func New() *Renderer {
	policy := bluemonday.UGCPolicy()
	policy.AllowImages()
	policy.AddTargetBlankToFullyQualifiedLinks(true)
	policy.RequireNoReferrerOnLinks(true)

	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
			goldmark.WithRendererOptions(html.WithHardWraps(), html.WithXHTML()),
		),
		policy: policy,
	}
}

// Render converts source to sanitized HTML.
func (r *Renderer) Render(source string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("could not convert markdown: %w", err)
	}

	return r.policy.Sanitize(buf.String()), nil
}
