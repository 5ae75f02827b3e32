package models

import (
	"time"

	"github.com/google/uuid"
)

const DefaultAuthor = "Anonymous"

// Article is a blog post. Slug, SanitizedHTML and ReadingTime are derived
// from Title and Markdown and are never taken from user input.
type Article struct {
	ID            uuid.UUID `db:"id"             json:"id"`
	Title         string    `db:"title"          json:"title"`
	Description   *string   `db:"description"    json:"description,omitempty"`
	Markdown      string    `db:"markdown"       json:"markdown"`
	SanitizedHTML string    `db:"sanitized_html" json:"sanitizedHtml"`
	Slug          string    `db:"slug"           json:"slug"`
	Author        string    `db:"author"         json:"author"`
	Tags          []string  `db:"tags"           json:"tags"`
	Category      *string   `db:"category"       json:"category,omitempty"`
	FeaturedImage *string   `db:"featured_image" json:"featuredImage,omitempty"`
	ReadingTime   int       `db:"reading_time"   json:"readingTime"`
	Published     bool      `db:"published"      json:"published"`
	CreatedAt     time.Time `db:"created_at"     json:"createdAt"`
	UpdatedAt     time.Time `db:"updated_at"     json:"updatedAt"`
}

// swagger:model CreateArticleRequest
type CreateArticleRequest struct {
	Title         string  `json:"title"         example:"Hello, World!"`
	Description   string  `json:"description"   example:"A first post"`
	Markdown      string  `json:"markdown"      example:"# Hello\n\nFirst post."`
	Author        string  `json:"author"        example:"AdminOwl"`
	Tags          TagList `json:"tags"          swaggertype:"array,string" example:"go,blog"`
	Category      string  `json:"category"      example:"DevOps"`
	FeaturedImage string  `json:"featuredImage" example:"https://example.com/cover.png"`
	Published     *bool   `json:"published,omitempty"`
}

// UpdateArticleRequest is a partial update; nil fields are left untouched.
//
// swagger:model UpdateArticleRequest
type UpdateArticleRequest struct {
	Title         *string  `json:"title,omitempty"`
	Description   *string  `json:"description,omitempty"`
	Markdown      *string  `json:"markdown,omitempty"`
	Author        *string  `json:"author,omitempty"`
	Tags          *TagList `json:"tags,omitempty" swaggertype:"array,string"`
	Category      *string  `json:"category,omitempty"`
	FeaturedImage *string  `json:"featuredImage,omitempty"`
	Published     *bool    `json:"published,omitempty"`
}

// Empty reports whether the patch changes nothing.
func (r UpdateArticleRequest) Empty() bool {
	return r.Title == nil && r.Description == nil && r.Markdown == nil && r.Author == nil &&
		r.Tags == nil && r.Category == nil && r.FeaturedImage == nil && r.Published == nil
}

// ArticleFilter selects articles for List. A nil Published returns drafts and
// published posts alike.
type ArticleFilter struct {
	Published *bool
	Tag       string
	Category  string
	Limit     int
	Offset    int
}

type PublishRequest struct {
	Published bool `json:"published"`
}

type PreviewRequest struct {
	Title    string `json:"title"`
	Markdown string `json:"markdown"`
}

type PreviewResponse struct {
	SanitizedHTML string `json:"sanitizedHtml"`
	ReadingTime   int    `json:"readingTime"`
	Slug          string `json:"slug,omitempty"`
}
