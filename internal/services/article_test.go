package services

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkpost/internal/apperr"
	"inkpost/internal/models"
)

// mockArticleRepo is an in-memory store with a unique slug constraint.
type mockArticleRepo struct {
	mu       sync.Mutex
	articles map[uuid.UUID]*models.Article

	// failures makes the next N calls fail as unavailable.
	failures int
	// lostCommit commits the next Create or Delete but reports the
	// connection as lost.
	lostCommit bool
	// blindSlugCheck makes SlugExists always answer false, as a concurrent
	// writer would observe before either commit.
	blindSlugCheck bool

	calls       map[string]int
	lastUpdated *models.Article
}

func newMockArticleRepo() *mockArticleRepo {
	return &mockArticleRepo{
		articles: make(map[uuid.UUID]*models.Article),
		calls:    make(map[string]int),
	}
}

func (m *mockArticleRepo) enter(op string) error {
	m.calls[op]++
	if m.failures > 0 {
		m.failures--
		return apperr.Unavailable(op, errors.New("connection refused"))
	}
	return nil
}

func (m *mockArticleRepo) slugOwner(slug string) *models.Article {
	for _, a := range m.articles {
		if a.Slug == slug {
			return a
		}
	}
	return nil
}

func clone(a *models.Article) *models.Article {
	c := *a
	c.Tags = append([]string{}, a.Tags...)
	return &c
}

func (m *mockArticleRepo) Create(_ context.Context, a *models.Article) (*models.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("create"); err != nil {
		return nil, err
	}
	if m.slugOwner(a.Slug) != nil {
		return nil, apperr.NewDuplicateSlug(a.Slug, nil)
	}
	m.articles[a.ID] = clone(a)
	if m.lostCommit {
		m.lostCommit = false
		return nil, apperr.Unavailable("create", errors.New("connection reset by peer"))
	}
	return clone(a), nil
}

func (m *mockArticleRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("get"); err != nil {
		return nil, err
	}
	a, ok := m.articles[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return clone(a), nil
}

func (m *mockArticleRepo) GetBySlug(_ context.Context, slug string) (*models.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("get_by_slug"); err != nil {
		return nil, err
	}
	a := m.slugOwner(slug)
	if a == nil {
		return nil, apperr.ErrNotFound
	}
	return clone(a), nil
}

func (m *mockArticleRepo) List(_ context.Context, f models.ArticleFilter) ([]*models.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("list"); err != nil {
		return nil, err
	}
	var out []*models.Article
	for _, a := range m.articles {
		if f.Published != nil && a.Published != *f.Published {
			continue
		}
		out = append(out, clone(a))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *mockArticleRepo) Update(_ context.Context, a *models.Article) (*models.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("update"); err != nil {
		return nil, err
	}
	current, ok := m.articles[a.ID]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	if owner := m.slugOwner(a.Slug); owner != nil && owner.ID != a.ID {
		return nil, apperr.NewDuplicateSlug(a.Slug, nil)
	}
	next := clone(a)
	next.CreatedAt = current.CreatedAt
	m.articles[a.ID] = next
	m.lastUpdated = clone(next)
	return clone(next), nil
}

func (m *mockArticleRepo) SetPublished(_ context.Context, id uuid.UUID, published bool) (*models.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("set_published"); err != nil {
		return nil, err
	}
	a, ok := m.articles[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	a.Published = published
	return clone(a), nil
}

func (m *mockArticleRepo) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("delete"); err != nil {
		return err
	}
	if _, ok := m.articles[id]; !ok {
		return apperr.ErrNotFound
	}
	delete(m.articles, id)
	if m.lostCommit {
		m.lostCommit = false
		return apperr.Unavailable("delete", errors.New("connection reset by peer"))
	}
	return nil
}

func (m *mockArticleRepo) SlugExists(_ context.Context, slug string, excludeID uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("slug_exists"); err != nil {
		return false, err
	}
	if m.blindSlugCheck {
		return false, nil
	}
	owner := m.slugOwner(slug)
	return owner != nil && owner.ID != excludeID, nil
}

var fastRetry = RetryPolicy{MaxRetries: 3, InitialInterval: time.Millisecond, MaxInterval: 2 * time.Millisecond}

func newTestArticleService(repo *mockArticleRepo) *articleService {
	svc := NewArticleService(repo, fastRetry).(*articleService)
	clock := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}
	return svc
}

func strp(s string) *string { return &s }

func TestCreate_HelloWorld(t *testing.T) {
	repo := newMockArticleRepo()
	svc := newTestArticleService(repo)

	a, err := svc.Create(context.Background(), models.CreateArticleRequest{
		Title:    "Hello, World!",
		Markdown: "# Hi\n\nThis is *great*.",
	})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, a.ID)
	assert.Equal(t, "hello-world", a.Slug)
	assert.Contains(t, a.SanitizedHTML, "<h1")
	assert.Contains(t, a.SanitizedHTML, "<em>great</em>")
	assert.Equal(t, 1, a.ReadingTime)
	assert.Equal(t, models.DefaultAuthor, a.Author)
	assert.True(t, a.Published)
	assert.False(t, a.CreatedAt.IsZero())
	assert.Equal(t, a.CreatedAt, a.UpdatedAt)
	assert.Equal(t, []string{}, a.Tags)
	assert.Nil(t, a.Description)
}

func TestCreate_NormalizesInput(t *testing.T) {
	svc := newTestArticleService(newMockArticleRepo())
	draft := false

	a, err := svc.Create(context.Background(), models.CreateArticleRequest{
		Title:         "  Tagged  ",
		Description:   "  short  ",
		Markdown:      "body",
		Author:        "  Owl ",
		Tags:          models.TagList{" Go ", "go", "", "Postgres"},
		Category:      "   ",
		FeaturedImage: " https://example.com/cover.png ",
		Published:     &draft,
	})
	require.NoError(t, err)

	assert.Equal(t, "Tagged", a.Title)
	assert.Equal(t, "short", *a.Description)
	assert.Equal(t, "Owl", a.Author)
	assert.Equal(t, []string{"Go", "Postgres"}, a.Tags)
	assert.Nil(t, a.Category)
	assert.Equal(t, "https://example.com/cover.png", *a.FeaturedImage)
	assert.False(t, a.Published)
}

func TestCreate_Validation(t *testing.T) {
	repo := newMockArticleRepo()
	svc := newTestArticleService(repo)

	_, err := svc.Create(context.Background(), models.CreateArticleRequest{
		Title:         "   ",
		Markdown:      " \n\t ",
		FeaturedImage: "ftp://example.com/x.png",
	})
	var ve *apperr.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "title")
	assert.Contains(t, ve.Fields, "markdown")
	assert.Contains(t, ve.Fields, "featuredImage")
	assert.Zero(t, repo.calls["create"], "invalid input must not reach the store")

	_, err = svc.Create(context.Background(), models.CreateArticleRequest{
		Title:    strings.Repeat("a", maxTitleRunes+1),
		Markdown: "body",
	})
	assert.True(t, apperr.IsValidation(err))
}

func TestCreate_StripsScripts(t *testing.T) {
	svc := newTestArticleService(newMockArticleRepo())

	a, err := svc.Create(context.Background(), models.CreateArticleRequest{
		Title:    "XSS",
		Markdown: "<script>alert(1)</script>\n\n[x](javascript:alert(1)) <img src=x onerror=alert(1)>",
	})
	require.NoError(t, err)

	html := strings.ToLower(a.SanitizedHTML)
	assert.NotContains(t, html, "<script")
	assert.NotContains(t, html, "javascript:")
	assert.NotContains(t, html, "onerror")
}

func TestCreate_DuplicateSlug(t *testing.T) {
	repo := newMockArticleRepo()
	svc := newTestArticleService(repo)
	ctx := context.Background()

	_, err := svc.Create(ctx, models.CreateArticleRequest{Title: "Hello, World!", Markdown: "one"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, models.CreateArticleRequest{Title: "Hello World", Markdown: "two"})
	var dup *apperr.DuplicateSlugError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "hello-world", dup.Slug)
	assert.Len(t, repo.articles, 1)
}

func TestCreate_DuplicateSlugCaughtByStore(t *testing.T) {
	repo := newMockArticleRepo()
	svc := newTestArticleService(repo)
	ctx := context.Background()

	_, err := svc.Create(ctx, models.CreateArticleRequest{Title: "Race", Markdown: "one"})
	require.NoError(t, err)

	repo.blindSlugCheck = true
	_, err = svc.Create(ctx, models.CreateArticleRequest{Title: "race", Markdown: "two"})
	assert.True(t, apperr.IsDuplicateSlug(err))
	assert.Len(t, repo.articles, 1)
}

func TestCreate_RetriesWhenStoreUnavailable(t *testing.T) {
	repo := newMockArticleRepo()
	svc := newTestArticleService(repo)

	repo.failures = 2
	a, err := svc.Create(context.Background(), models.CreateArticleRequest{Title: "Retry", Markdown: "body"})
	require.NoError(t, err)
	assert.Equal(t, "retry", a.Slug)
	// both failures were spent on the slug check
	assert.Equal(t, 3, repo.calls["slug_exists"])
	assert.Equal(t, 1, repo.calls["create"])
}

func TestCreate_GivesUpWhenStoreStaysDown(t *testing.T) {
	repo := newMockArticleRepo()
	svc := newTestArticleService(repo)

	repo.failures = 100
	_, err := svc.Create(context.Background(), models.CreateArticleRequest{Title: "Down", Markdown: "body"})
	assert.ErrorIs(t, err, apperr.ErrStoreUnavailable)
	assert.Equal(t, fastRetry.MaxRetries+1, repo.calls["slug_exists"])
	assert.Zero(t, repo.calls["create"])
}

func TestCreate_CommitSurvivesLostConnection(t *testing.T) {
	repo := newMockArticleRepo()
	svc := newTestArticleService(repo)

	repo.lostCommit = true
	a, err := svc.Create(context.Background(), models.CreateArticleRequest{Title: "Once", Markdown: "body"})
	require.NoError(t, err)
	assert.Equal(t, "once", a.Slug)
	assert.Equal(t, 2, repo.calls["create"])
	assert.Len(t, repo.articles, 1)
}

func TestCreate_NoRetryPolicy(t *testing.T) {
	repo := newMockArticleRepo()
	svc := NewArticleService(repo, NoRetry())

	repo.failures = 1
	_, err := svc.Create(context.Background(), models.CreateArticleRequest{Title: "Once", Markdown: "body"})
	assert.ErrorIs(t, err, apperr.ErrStoreUnavailable)
	assert.Equal(t, 1, repo.calls["slug_exists"])
}

func TestUpdate_TitleChangesSlug(t *testing.T) {
	repo := newMockArticleRepo()
	svc := newTestArticleService(repo)
	ctx := context.Background()

	a, err := svc.Create(ctx, models.CreateArticleRequest{Title: "Old Title", Markdown: "body"})
	require.NoError(t, err)

	out, err := svc.Update(ctx, a.ID, models.UpdateArticleRequest{Title: strp("New Title")})
	require.NoError(t, err)
	assert.Equal(t, "new-title", out.Slug)
	assert.Equal(t, a.SanitizedHTML, out.SanitizedHTML)
	assert.Equal(t, a.CreatedAt, out.CreatedAt)
	assert.True(t, out.UpdatedAt.After(a.UpdatedAt))
}

func TestUpdate_DescriptionKeepsDerivedFields(t *testing.T) {
	repo := newMockArticleRepo()
	svc := newTestArticleService(repo)
	ctx := context.Background()

	a, err := svc.Create(ctx, models.CreateArticleRequest{Title: "Stable", Markdown: "**bold** text"})
	require.NoError(t, err)

	out, err := svc.Update(ctx, a.ID, models.UpdateArticleRequest{Description: strp("now with a description")})
	require.NoError(t, err)
	assert.Equal(t, a.Slug, out.Slug)
	assert.Equal(t, a.SanitizedHTML, out.SanitizedHTML)
	assert.Equal(t, a.ReadingTime, out.ReadingTime)
	assert.Equal(t, "now with a description", *out.Description)

	cleared, err := svc.Update(ctx, a.ID, models.UpdateArticleRequest{Description: strp("  ")})
	require.NoError(t, err)
	assert.Nil(t, cleared.Description)
}

func TestUpdate_MarkdownRecomputesContent(t *testing.T) {
	repo := newMockArticleRepo()
	svc := newTestArticleService(repo)
	ctx := context.Background()

	a, err := svc.Create(ctx, models.CreateArticleRequest{Title: "Long read", Markdown: "short"})
	require.NoError(t, err)
	require.Equal(t, 1, a.ReadingTime)

	long := strings.TrimSpace(strings.Repeat("word ", 401))
	out, err := svc.Update(ctx, a.ID, models.UpdateArticleRequest{Markdown: &long})
	require.NoError(t, err)
	assert.Equal(t, 3, out.ReadingTime)
	assert.Contains(t, out.SanitizedHTML, "word word")
	assert.Equal(t, "long-read", out.Slug)
}

func TestUpdate_SameSlugIsNotAConflict(t *testing.T) {
	repo := newMockArticleRepo()
	svc := newTestArticleService(repo)
	ctx := context.Background()

	a, err := svc.Create(ctx, models.CreateArticleRequest{Title: "Hello, World!", Markdown: "body"})
	require.NoError(t, err)

	out, err := svc.Update(ctx, a.ID, models.UpdateArticleRequest{Title: strp("Hello World")})
	require.NoError(t, err)
	assert.Equal(t, "Hello World", out.Title)
	assert.Equal(t, "hello-world", out.Slug)
}

func TestUpdate_SlugConflict(t *testing.T) {
	repo := newMockArticleRepo()
	svc := newTestArticleService(repo)
	ctx := context.Background()

	_, err := svc.Create(ctx, models.CreateArticleRequest{Title: "Taken", Markdown: "body"})
	require.NoError(t, err)
	b, err := svc.Create(ctx, models.CreateArticleRequest{Title: "Other", Markdown: "body"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, b.ID, models.UpdateArticleRequest{Title: strp("taken")})
	assert.True(t, apperr.IsDuplicateSlug(err))

	stored, err := svc.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "other", stored.Slug, "rejected update must not change the record")
}

func TestUpdate_NotFoundAndInvalid(t *testing.T) {
	repo := newMockArticleRepo()
	svc := newTestArticleService(repo)
	ctx := context.Background()

	_, err := svc.Update(ctx, uuid.New(), models.UpdateArticleRequest{Title: strp("x")})
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	a, err := svc.Create(ctx, models.CreateArticleRequest{Title: "Valid", Markdown: "body"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, a.ID, models.UpdateArticleRequest{Markdown: strp("   ")})
	assert.True(t, apperr.IsValidation(err))
	assert.Nil(t, repo.lastUpdated)
}

func TestUpdate_EmptyPatch(t *testing.T) {
	repo := newMockArticleRepo()
	svc := newTestArticleService(repo)
	ctx := context.Background()

	a, err := svc.Create(ctx, models.CreateArticleRequest{Title: "Same", Markdown: "body"})
	require.NoError(t, err)

	out, err := svc.Update(ctx, a.ID, models.UpdateArticleRequest{})
	require.NoError(t, err)
	assert.Equal(t, a.UpdatedAt, out.UpdatedAt)
	assert.Zero(t, repo.calls["update"])
}

func TestList(t *testing.T) {
	repo := newMockArticleRepo()
	svc := newTestArticleService(repo)
	ctx := context.Background()

	empty, err := svc.List(ctx, models.ArticleFilter{})
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	draft := false
	for _, title := range []string{"First", "Second", "Third"} {
		req := models.CreateArticleRequest{Title: title, Markdown: "body"}
		if title == "Second" {
			req.Published = &draft
		}
		_, err := svc.Create(ctx, req)
		require.NoError(t, err)
	}

	published := true
	list, err := svc.List(ctx, models.ArticleFilter{Published: &published})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "third", list[0].Slug)
	assert.Equal(t, "first", list[1].Slug)

	_, err = svc.List(ctx, models.ArticleFilter{Limit: -1})
	assert.True(t, apperr.IsValidation(err))
}

func TestDelete(t *testing.T) {
	repo := newMockArticleRepo()
	svc := newTestArticleService(repo)
	ctx := context.Background()

	a, err := svc.Create(ctx, models.CreateArticleRequest{Title: "Gone", Markdown: "body"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, a.ID))
	assert.ErrorIs(t, svc.Delete(ctx, a.ID), apperr.ErrNotFound)

	// the slug is free again
	_, err = svc.Create(ctx, models.CreateArticleRequest{Title: "Gone", Markdown: "again"})
	assert.NoError(t, err)
}

func TestDelete_CommitSurvivesLostConnection(t *testing.T) {
	repo := newMockArticleRepo()
	svc := newTestArticleService(repo)
	ctx := context.Background()

	a, err := svc.Create(ctx, models.CreateArticleRequest{Title: "Gone", Markdown: "body"})
	require.NoError(t, err)

	repo.lostCommit = true
	require.NoError(t, svc.Delete(ctx, a.ID))
	assert.Equal(t, 2, repo.calls["delete"])
	assert.Empty(t, repo.articles)
}

func TestDelete_MissingWithoutRetryIsNotFound(t *testing.T) {
	repo := newMockArticleRepo()
	svc := newTestArticleService(repo)

	assert.ErrorIs(t, svc.Delete(context.Background(), uuid.New()), apperr.ErrNotFound)
	assert.Equal(t, 1, repo.calls["delete"])
}

func TestCreate_TransliteratedTitlesDoNotCollide(t *testing.T) {
	repo := newMockArticleRepo()
	svc := newTestArticleService(repo)
	ctx := context.Background()

	first, err := svc.Create(ctx, models.CreateArticleRequest{Title: "ﬁnance", Markdown: "body"})
	require.NoError(t, err)
	assert.Equal(t, "finance", first.Slug)

	second, err := svc.Create(ctx, models.CreateArticleRequest{Title: "Nance", Markdown: "body"})
	require.NoError(t, err)
	assert.Equal(t, "nance", second.Slug)

	ru, err := svc.Create(ctx, models.CreateArticleRequest{Title: "Привет мир", Markdown: "body"})
	require.NoError(t, err)
	assert.Equal(t, "privet-mir", ru.Slug)
}

func TestGetPublished(t *testing.T) {
	repo := newMockArticleRepo()
	svc := newTestArticleService(repo)
	ctx := context.Background()

	draft := false
	a, err := svc.Create(ctx, models.CreateArticleRequest{Title: "Hidden", Markdown: "body", Published: &draft})
	require.NoError(t, err)

	_, err = svc.GetPublished(ctx, "hidden")
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = svc.SetPublished(ctx, a.ID, true)
	require.NoError(t, err)

	got, err := svc.GetPublished(ctx, "hidden")
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)

	_, err = svc.GetPublished(ctx, "Not A Slug")
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = svc.SetPublished(ctx, uuid.New(), true)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestPreview(t *testing.T) {
	svc := newTestArticleService(newMockArticleRepo())

	out := svc.Preview(models.PreviewRequest{Title: "Draft Post", Markdown: "Hello *there*<script>x</script>"})
	assert.Equal(t, "draft-post", out.Slug)
	assert.Equal(t, 1, out.ReadingTime)
	assert.Contains(t, out.SanitizedHTML, "<em>there</em>")
	assert.NotContains(t, out.SanitizedHTML, "<script")
}
