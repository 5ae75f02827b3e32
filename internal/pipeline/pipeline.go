// Package pipeline derives the computed fields of an article from its raw
// title and Markdown: slug, sanitized HTML and reading time.
package pipeline

// Derived holds the fields computed from an article's title and markdown.
type Derived struct {
	Slug          string
	SanitizedHTML string
	ReadingTime   int
}

type Pipeline struct {
	renderer *Renderer
}

func New() *Pipeline {
	return &Pipeline{renderer: NewRenderer()}
}

// Slug derives the slug for title.
func (p *Pipeline) Slug(title string) string {
	return GenerateSlug(title)
}

// Content derives sanitized HTML and reading time for markdown.
func (p *Pipeline) Content(markdown string) (string, int) {
	return p.renderer.Render(markdown), ReadingTime(markdown)
}

// Derive runs every derivation step. The steps only read their input, so the
// order does not matter.
func (p *Pipeline) Derive(title, markdown string) Derived {
	html, minutes := p.Content(markdown)
	return Derived{
		Slug:          p.Slug(title),
		SanitizedHTML: html,
		ReadingTime:   minutes,
	}
}

// Preview renders markdown without touching storage.
func (p *Pipeline) Preview(markdown string) string {
	return p.renderer.Render(markdown)
}
