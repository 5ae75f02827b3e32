package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"inkpost/internal/models"
)

type ArticleRepo interface {
	Create(ctx context.Context, a *models.Article) (*models.Article, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Article, error)
	GetBySlug(ctx context.Context, slug string) (*models.Article, error)
	List(ctx context.Context, f models.ArticleFilter) ([]*models.Article, error)
	Update(ctx context.Context, a *models.Article) (*models.Article, error)
	SetPublished(ctx context.Context, id uuid.UUID, published bool) (*models.Article, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// SlugExists reports whether an article other than excludeID owns slug.
	SlugExists(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error)
}

type articleRepo struct{ db *pgxpool.Pool }

func NewArticleRepo(db *pgxpool.Pool) ArticleRepo { return &articleRepo{db: db} }

const articleColumns = `id, title, description, markdown, sanitized_html, slug, author, tags,
	category, featured_image, reading_time, published, created_at, updated_at`

func (r *articleRepo) Create(ctx context.Context, a *models.Article) (*models.Article, error) {
	q := `
		INSERT INTO articles (` + articleColumns + `)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
		RETURNING ` + articleColumns

	rows, err := r.db.Query(ctx, q,
		a.ID,
		a.Title,
		a.Description,
		a.Markdown,
		a.SanitizedHTML,
		a.Slug,
		a.Author,
		nonNilTags(a.Tags),
		a.Category,
		a.FeaturedImage,
		a.ReadingTime,
		a.Published,
		a.CreatedAt,
		a.UpdatedAt,
	)
	if err != nil {
		return nil, translate("create article", err, a.Slug)
	}
	out, err := collectOne(rows)
	if err != nil {
		return nil, translate("create article", err, a.Slug)
	}
	return out, nil
}

func (r *articleRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Article, error) {
	rows, err := r.db.Query(ctx, `SELECT `+articleColumns+` FROM articles WHERE id=$1`, id)
	if err != nil {
		return nil, translate("get article", err, "")
	}
	out, err := collectOne(rows)
	if err != nil {
		return nil, translate("get article", err, "")
	}
	return out, nil
}

func (r *articleRepo) GetBySlug(ctx context.Context, slug string) (*models.Article, error) {
	rows, err := r.db.Query(ctx, `SELECT `+articleColumns+` FROM articles WHERE slug=$1`, slug)
	if err != nil {
		return nil, translate("get article by slug", err, "")
	}
	out, err := collectOne(rows)
	if err != nil {
		return nil, translate("get article by slug", err, "")
	}
	return out, nil
}

func (r *articleRepo) List(ctx context.Context, f models.ArticleFilter) ([]*models.Article, error) {
	sql, args := buildListQuery(f)

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, translate("list articles", err, "")
	}
	list, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[models.Article])
	if err != nil {
		return nil, translate("list articles", err, "")
	}
	return list, nil
}

func buildListQuery(f models.ArticleFilter) (string, []any) {
	where := []string{}
	args := []any{}
	i := 1

	if f.Published != nil {
		where = append(where, fmt.Sprintf("published = $%d", i))
		args = append(args, *f.Published)
		i++
	}
	if tag := strings.TrimSpace(f.Tag); tag != "" {
		where = append(where, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM unnest(tags) AS t(val) WHERE lower(t.val) = lower($%d))", i))
		args = append(args, tag)
		i++
	}
	if cat := strings.TrimSpace(f.Category); cat != "" {
		where = append(where, fmt.Sprintf("lower(category) = lower($%d)", i))
		args = append(args, cat)
		i++
	}

	sql := `SELECT ` + articleColumns + ` FROM articles`
	if len(where) > 0 {
		sql += " WHERE " + strings.Join(where, " AND ")
	}
	sql += " ORDER BY created_at DESC, id DESC"
	if f.Limit > 0 {
		sql += fmt.Sprintf(" LIMIT $%d", i)
		args = append(args, f.Limit)
		i++
	}
	if f.Offset > 0 {
		sql += fmt.Sprintf(" OFFSET $%d", i)
		args = append(args, f.Offset)
	}
	return sql, args
}

// Update writes every column of a in one statement. created_at is never
// touched after insert.
func (r *articleRepo) Update(ctx context.Context, a *models.Article) (*models.Article, error) {
	q := `
		UPDATE articles
		SET title=$2,
		    description=$3,
		    markdown=$4,
		    sanitized_html=$5,
		    slug=$6,
		    author=$7,
		    tags=$8,
		    category=$9,
		    featured_image=$10,
		    reading_time=$11,
		    published=$12,
		    updated_at=$13
		WHERE id=$1
		RETURNING ` + articleColumns

	updatedAt := a.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now().UTC()
	}

	rows, err := r.db.Query(ctx, q,
		a.ID, a.Title, a.Description, a.Markdown, a.SanitizedHTML, a.Slug, a.Author,
		nonNilTags(a.Tags), a.Category, a.FeaturedImage, a.ReadingTime, a.Published, updatedAt,
	)
	if err != nil {
		return nil, translate("update article", err, a.Slug)
	}
	out, err := collectOne(rows)
	if err != nil {
		return nil, translate("update article", err, a.Slug)
	}
	return out, nil
}

func (r *articleRepo) SetPublished(ctx context.Context, id uuid.UUID, published bool) (*models.Article, error) {
	q := `
		UPDATE articles
		SET published = $2,
		    updated_at = NOW()
		WHERE id = $1
		RETURNING ` + articleColumns

	rows, err := r.db.Query(ctx, q, id, published)
	if err != nil {
		return nil, translate("set published", err, "")
	}
	out, err := collectOne(rows)
	if err != nil {
		return nil, translate("set published", err, "")
	}
	return out, nil
}

func (r *articleRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM articles WHERE id=$1", id)
	if err != nil {
		return translate("delete article", err, "")
	}
	if tag.RowsAffected() == 0 {
		return translate("delete article", pgx.ErrNoRows, "")
	}
	return nil
}

func (r *articleRepo) SlugExists(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error) {
	const q = `SELECT EXISTS(SELECT 1 FROM articles WHERE slug = $1 AND id <> $2)`
	var ok bool
	if err := r.db.QueryRow(ctx, q, slug, excludeID).Scan(&ok); err != nil {
		return false, translate("check slug", err, slug)
	}
	return ok, nil
}

func collectOne(rows pgx.Rows) (*models.Article, error) {
	a, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[models.Article])
	if err != nil {
		if errors.Is(err, pgx.ErrTooManyRows) {
			return nil, fmt.Errorf("expected one article: %w", err)
		}
		return nil, err
	}
	return a, nil
}

func nonNilTags(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}
