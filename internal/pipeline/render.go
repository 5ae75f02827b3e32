package pipeline

import (
	"bytes"
	"html"
	"regexp"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	goldhtml "github.com/yuin/goldmark/renderer/html"
	"go.uber.org/zap"

	"inkpost/internal/logger"
)

var codeLanguageClass = regexp.MustCompile(`^language-[\w+#.-]+$`)

// Renderer converts author Markdown into HTML that is safe to embed in a page.
// Both the goldmark engine and the bluemonday policy are built once and are
// safe for concurrent use.
type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

func NewRenderer() *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Footnote,
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			// single newlines become <br>
			goldhtml.WithHardWraps(),
			// raw HTML is kept here and scrubbed by the policy below
			goldhtml.WithUnsafe(),
		),
	)

	return &Renderer{md: md, policy: newPolicy()}
}

func newPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowElements("img")
	p.AllowAttrs("src", "alt", "title").OnElements("img")
	p.AllowAttrs("class").Matching(codeLanguageClass).OnElements("code")
	p.AllowAttrs("type").Matching(regexp.MustCompile(`^checkbox$`)).OnElements("input")
	p.AllowAttrs("checked", "disabled").OnElements("input")
	p.RequireNoFollowOnLinks(true)
	p.RequireNoReferrerOnLinks(true)
	return p
}

// Render converts markdown to sanitized HTML. It never fails: if goldmark
// cannot convert the input, the escaped source is returned as a paragraph.
func (r *Renderer) Render(markdown string) (out string) {
	if markdown == "" {
		return ""
	}

	defer func() {
		if rec := recover(); rec != nil {
			logger.Log.Error("markdown render panicked, falling back to escaped text", zap.Any("panic", rec))
			out = r.fallback(markdown)
		}
	}()

	var buf bytes.Buffer
	if err := r.md.Convert([]byte(markdown), &buf); err != nil {
		logger.Log.Warn("markdown render failed, falling back to escaped text", zap.Error(err))
		return r.fallback(markdown)
	}
	return r.policy.Sanitize(buf.String())
}

func (r *Renderer) fallback(markdown string) string {
	return r.policy.Sanitize("<p>" + html.EscapeString(markdown) + "</p>")
}
