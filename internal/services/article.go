package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"inkpost/internal/apperr"
	"inkpost/internal/logger"
	"inkpost/internal/models"
	"inkpost/internal/pipeline"
	"inkpost/internal/repository"
)

const (
	maxTitleRunes = 255
	maxTags       = 20
	maxTagRunes   = 50
)

var httpURL = regexp.MustCompile(`^https?://`)

// ArticleService is the persistence gateway for articles. It validates input,
// runs the derivation pipeline and commits through the repository. Callers are
// expected to have authorized the operation already.
type ArticleService interface {
	Create(ctx context.Context, req models.CreateArticleRequest) (*models.Article, error)
	Update(ctx context.Context, id uuid.UUID, req models.UpdateArticleRequest) (*models.Article, error)
	List(ctx context.Context, f models.ArticleFilter) ([]*models.Article, error)
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Article, error)
	GetPublished(ctx context.Context, slug string) (*models.Article, error)
	SetPublished(ctx context.Context, id uuid.UUID, published bool) (*models.Article, error)
	Preview(req models.PreviewRequest) models.PreviewResponse
}

type articleService struct {
	repo     repository.ArticleRepo
	pipeline *pipeline.Pipeline
	retry    RetryPolicy
	now      func() time.Time
}

func NewArticleService(repo repository.ArticleRepo, retry RetryPolicy) ArticleService {
	return &articleService{
		repo:     repo,
		pipeline: pipeline.New(),
		retry:    retry,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// articleInput is the normalised, validated shape of author input.
type articleInput struct {
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Markdown      string   `json:"markdown"`
	Author        string   `json:"author"`
	Tags          []string `json:"tags"`
	Category      string   `json:"category"`
	FeaturedImage string   `json:"featuredImage"`
}

func (in *articleInput) normalize() {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.Author = strings.TrimSpace(in.Author)
	if in.Author == "" {
		in.Author = models.DefaultAuthor
	}
	in.Tags = models.NormalizeTags(in.Tags)
	in.Category = strings.TrimSpace(in.Category)
	in.FeaturedImage = strings.TrimSpace(in.FeaturedImage)
}

func (in *articleInput) validate() error {
	err := validation.ValidateStruct(in,
		validation.Field(&in.Title, validation.Required, validation.RuneLength(1, maxTitleRunes)),
		validation.Field(&in.Markdown, notBlank),
		validation.Field(&in.Tags, validation.Length(0, maxTags), validation.Each(validation.RuneLength(1, maxTagRunes))),
		validation.Field(&in.FeaturedImage, is.URL, validation.Match(httpURL).Error("must be an http or https URL")),
	)
	return asValidationError("article", err)
}

func (s *articleService) Create(ctx context.Context, req models.CreateArticleRequest) (*models.Article, error) {
	log := logger.WithCtx(ctx)
	log.Info("Creating article",
		zap.String("title", strings.TrimSpace(req.Title)),
		zap.Int("markdown_len", len(req.Markdown)),
		zap.Int("tags_count", len(req.Tags)),
	)

	in := articleInput{
		Title:         req.Title,
		Description:   req.Description,
		Markdown:      req.Markdown,
		Author:        req.Author,
		Tags:          req.Tags,
		Category:      req.Category,
		FeaturedImage: req.FeaturedImage,
	}
	in.normalize()
	if err := in.validate(); err != nil {
		log.Warn("Article validation failed", zap.Error(err))
		return nil, err
	}

	derived := s.pipeline.Derive(in.Title, in.Markdown)

	// A hint only: the unique index decides under concurrent writers.
	if taken, err := s.slugTaken(ctx, derived.Slug, uuid.Nil); err != nil {
		return nil, err
	} else if taken {
		log.Warn("Slug already taken", zap.String("slug", derived.Slug))
		return nil, apperr.NewDuplicateSlug(derived.Slug, nil)
	}

	published := true
	if req.Published != nil {
		published = *req.Published
	}
	now := s.now()

	a := &models.Article{
		ID:            uuid.New(),
		Title:         in.Title,
		Description:   strPtr(in.Description),
		Markdown:      in.Markdown,
		SanitizedHTML: derived.SanitizedHTML,
		Slug:          derived.Slug,
		Author:        in.Author,
		Tags:          in.Tags,
		Category:      strPtr(in.Category),
		FeaturedImage: strPtr(in.FeaturedImage),
		ReadingTime:   derived.ReadingTime,
		Published:     published,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	created, attempts, err := withRetry(ctx, s.retry, "create article", func() (*models.Article, error) {
		return s.repo.Create(ctx, a)
	})
	if err != nil && attempts > 1 && apperr.IsDuplicateSlug(err) {
		// An earlier attempt may have committed before the connection dropped.
		if existing, getErr := s.repo.GetByID(ctx, a.ID); getErr == nil && existing.Slug == a.Slug {
			created, err = existing, nil
		}
	}
	if err != nil {
		log.Error("Failed to create article (repo)", zap.String("slug", a.Slug), zap.Error(err))
		return nil, err
	}

	log.Info("Article created",
		zap.String("id", created.ID.String()),
		zap.String("slug", created.Slug),
		zap.Bool("published", created.Published),
		zap.Int("reading_time", created.ReadingTime),
	)
	return created, nil
}

func (s *articleService) Update(ctx context.Context, id uuid.UUID, req models.UpdateArticleRequest) (*models.Article, error) {
	log := logger.WithCtx(ctx).With(zap.String("id", id.String()))
	log.Info("Updating article")

	current, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Empty() {
		return current, nil
	}

	in := articleInput{
		Title:         current.Title,
		Description:   deref(current.Description),
		Markdown:      current.Markdown,
		Author:        current.Author,
		Tags:          current.Tags,
		Category:      deref(current.Category),
		FeaturedImage: deref(current.FeaturedImage),
	}
	if req.Title != nil {
		in.Title = *req.Title
	}
	if req.Description != nil {
		in.Description = *req.Description
	}
	if req.Markdown != nil {
		in.Markdown = *req.Markdown
	}
	if req.Author != nil {
		in.Author = *req.Author
	}
	if req.Tags != nil {
		in.Tags = *req.Tags
	}
	if req.Category != nil {
		in.Category = *req.Category
	}
	if req.FeaturedImage != nil {
		in.FeaturedImage = *req.FeaturedImage
	}
	in.normalize()
	if err := in.validate(); err != nil {
		log.Warn("Article validation failed", zap.Error(err))
		return nil, err
	}

	next := *current
	next.Title = in.Title
	next.Description = strPtr(in.Description)
	next.Markdown = in.Markdown
	next.Author = in.Author
	next.Tags = in.Tags
	next.Category = strPtr(in.Category)
	next.FeaturedImage = strPtr(in.FeaturedImage)
	if req.Published != nil {
		next.Published = *req.Published
	}

	if next.Title != current.Title {
		next.Slug = s.pipeline.Slug(next.Title)
		if next.Slug != current.Slug {
			taken, err := s.slugTaken(ctx, next.Slug, id)
			if err != nil {
				return nil, err
			}
			if taken {
				log.Warn("Slug already taken", zap.String("slug", next.Slug))
				return nil, apperr.NewDuplicateSlug(next.Slug, nil)
			}
		}
	}
	if next.Markdown != current.Markdown {
		next.SanitizedHTML, next.ReadingTime = s.pipeline.Content(next.Markdown)
	}
	next.UpdatedAt = s.now()

	updated, _, err := withRetry(ctx, s.retry, "update article", func() (*models.Article, error) {
		return s.repo.Update(ctx, &next)
	})
	if err != nil {
		log.Error("Failed to update article (repo)", zap.Error(err))
		return nil, err
	}

	log.Info("Article updated",
		zap.String("slug", updated.Slug),
		zap.Bool("slug_changed", updated.Slug != current.Slug),
		zap.Bool("content_changed", next.Markdown != current.Markdown),
	)
	return updated, nil
}

func (s *articleService) List(ctx context.Context, f models.ArticleFilter) ([]*models.Article, error) {
	log := logger.WithCtx(ctx)
	log.Debug("Listing articles",
		zap.Any("published", f.Published),
		zap.String("tag", f.Tag),
		zap.String("category", f.Category),
		zap.Int("limit", f.Limit),
		zap.Int("offset", f.Offset),
	)
	if f.Limit < 0 || f.Offset < 0 {
		return nil, apperr.NewValidation("limit", "limit and offset must not be negative")
	}

	list, _, err := withRetry(ctx, s.retry, "list articles", func() ([]*models.Article, error) {
		return s.repo.List(ctx, f)
	})
	if err != nil {
		log.Error("Failed to list articles (repo)", zap.Error(err))
		return nil, err
	}
	if list == nil {
		list = []*models.Article{}
	}

	log.Debug("Articles listed", zap.Int("count", len(list)))
	return list, nil
}

func (s *articleService) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.WithCtx(ctx)
	log.Info("Deleting article", zap.String("id", id.String()))

	_, attempts, err := withRetry(ctx, s.retry, "delete article", func() (struct{}, error) {
		return struct{}{}, s.repo.Delete(ctx, id)
	})
	if err != nil && attempts > 1 && errors.Is(err, apperr.ErrNotFound) {
		// An earlier attempt may have committed before the connection dropped.
		log.Warn("Article already gone after retry, treating delete as done", zap.String("id", id.String()))
		err = nil
	}
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			log.Warn("Article to delete not found", zap.String("id", id.String()))
		} else {
			log.Error("Failed to delete article (repo)", zap.String("id", id.String()), zap.Error(err))
		}
		return err
	}

	log.Info("Article deleted", zap.String("id", id.String()))
	return nil
}

func (s *articleService) GetByID(ctx context.Context, id uuid.UUID) (*models.Article, error) {
	a, _, err := withRetry(ctx, s.retry, "get article", func() (*models.Article, error) {
		return s.repo.GetByID(ctx, id)
	})
	if err != nil {
		logger.WithCtx(ctx).Warn("Article lookup failed", zap.String("id", id.String()), zap.Error(err))
		return nil, err
	}
	return a, nil
}

// GetPublished returns a published article by slug; drafts are reported as
// not found.
func (s *articleService) GetPublished(ctx context.Context, slug string) (*models.Article, error) {
	slug = strings.TrimSpace(slug)
	if !pipeline.IsValidSlug(slug) {
		return nil, fmt.Errorf("get article %q: %w", slug, apperr.ErrNotFound)
	}

	a, _, err := withRetry(ctx, s.retry, "get article by slug", func() (*models.Article, error) {
		return s.repo.GetBySlug(ctx, slug)
	})
	if err != nil {
		return nil, err
	}
	if !a.Published {
		return nil, fmt.Errorf("get article %q: %w", slug, apperr.ErrNotFound)
	}
	return a, nil
}

func (s *articleService) SetPublished(ctx context.Context, id uuid.UUID, published bool) (*models.Article, error) {
	log := logger.WithCtx(ctx)
	log.Info("Changing publication status", zap.String("id", id.String()), zap.Bool("published", published))

	a, _, err := withRetry(ctx, s.retry, "set published", func() (*models.Article, error) {
		return s.repo.SetPublished(ctx, id, published)
	})
	if err != nil {
		log.Warn("Failed to change publication status", zap.String("id", id.String()), zap.Error(err))
		return nil, err
	}
	return a, nil
}

func (s *articleService) Preview(req models.PreviewRequest) models.PreviewResponse {
	html, minutes := s.pipeline.Content(req.Markdown)
	return models.PreviewResponse{
		SanitizedHTML: html,
		ReadingTime:   minutes,
		Slug:          s.pipeline.Slug(req.Title),
	}
}

func (s *articleService) slugTaken(ctx context.Context, slug string, exclude uuid.UUID) (bool, error) {
	taken, _, err := withRetry(ctx, s.retry, "check slug", func() (bool, error) {
		return s.repo.SlugExists(ctx, slug, exclude)
	})
	if err != nil {
		logger.WithCtx(ctx).Error("Slug check failed (repo)", zap.String("slug", slug), zap.Error(err))
		return false, err
	}
	return taken, nil
}

func strPtr(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
