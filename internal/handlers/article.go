package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"inkpost/internal/apperr"
	"inkpost/internal/logger"
	"inkpost/internal/models"
	"inkpost/internal/services"
	"inkpost/internal/utils/helpers"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type ArticleHandler struct {
	svc services.ArticleService
}

func NewArticleHandler(svc services.ArticleService) *ArticleHandler {
	return &ArticleHandler{svc: svc}
}

// ListPublished
// @Summary      Published articles
// @Description  Newest first. Optional filters by tag and category.
// @Tags         articles
// @Produce      json
// @Param        tag       query  string  false  "Tag (case-insensitive)"
// @Param        category  query  string  false  "Category (case-insensitive)"
// @Param        limit     query  int     false  "Page size (default 20, max 100)"
// @Param        offset    query  int     false  "Offset"
// @Success      200  {array}   models.Article
// @Failure      400  {object}  helpers.Response
// @Router       /api/articles [get]
func (h *ArticleHandler) ListPublished(w http.ResponseWriter, r *http.Request) {
	f, err := parseFilter(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	published := true
	f.Published = &published

	list, err := h.svc.List(r.Context(), f)
	if err != nil {
		writeError(w, r, err)
		return
	}
	helpers.JSON(w, http.StatusOK, list)
}

// GetBySlug
// @Summary      Published article by slug
// @Tags         articles
// @Produce      json
// @Param        slug  path  string  true  "Slug"
// @Success      200  {object}  models.Article
// @Failure      404  {object}  helpers.Response
// @Router       /api/articles/{slug} [get]
func (h *ArticleHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	a, err := h.svc.GetPublished(r.Context(), mux.Vars(r)["slug"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	helpers.JSON(w, http.StatusOK, a)
}

// List
// @Summary      All articles (operator)
// @Description  Drafts included unless published is set.
// @Tags         admin-articles
// @Produce      json
// @Param        published  query  bool    false  "Filter by publication status"
// @Param        tag        query  string  false  "Tag"
// @Param        category   query  string  false  "Category"
// @Param        limit      query  int     false  "Page size (default 20, max 100)"
// @Param        offset     query  int     false  "Offset"
// @Success      200  {array}   models.Article
// @Failure      400  {object}  helpers.Response
// @Failure      401  {object}  helpers.Response
// @Security     ApiKeyAuth
// @Router       /api/admin/articles [get]
func (h *ArticleHandler) List(w http.ResponseWriter, r *http.Request) {
	f, err := parseFilter(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if v := r.URL.Query().Get("published"); v != "" {
		published, err := strconv.ParseBool(v)
		if err != nil {
			writeError(w, r, apperr.NewValidation("published", "must be true or false"))
			return
		}
		f.Published = &published
	}

	list, err := h.svc.List(r.Context(), f)
	if err != nil {
		writeError(w, r, err)
		return
	}
	helpers.JSON(w, http.StatusOK, list)
}

// Create
// @Summary      Create an article
// @Description  Derives slug, sanitized HTML and reading time from title and markdown.
// @Tags         admin-articles
// @Accept       json
// @Produce      json
// @Param        body  body      models.CreateArticleRequest  true  "Article"
// @Success      201   {object}  models.Article
// @Failure      400   {object}  helpers.Response
// @Failure      409   {object}  helpers.Response  "Slug already used"
// @Failure      503   {object}  helpers.Response
// @Security     ApiKeyAuth
// @Router       /api/admin/articles [post]
func (h *ArticleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateArticleRequest
	if err := decodeJSON(w, r, &req); err != nil {
		logger.WithCtx(r.Context()).Warn("Failed to decode article JSON", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, "invalid json")
		return
	}

	a, err := h.svc.Create(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Location", "/api/articles/"+a.Slug)
	helpers.JSON(w, http.StatusCreated, a)
}

// Preview
// @Summary      Preview rendering
// @Description  Returns sanitized HTML, reading time and slug without saving anything.
// @Tags         admin-articles
// @Accept       json
// @Produce      json
// @Param        body  body      models.PreviewRequest  true  "Draft"
// @Success      200   {object}  models.PreviewResponse
// @Failure      400   {object}  helpers.Response
// @Security     ApiKeyAuth
// @Router       /api/admin/articles/preview [post]
func (h *ArticleHandler) Preview(w http.ResponseWriter, r *http.Request) {
	var req models.PreviewRequest
	if err := decodeJSON(w, r, &req); err != nil {
		logger.WithCtx(r.Context()).Warn("Failed to decode preview JSON", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, "invalid json")
		return
	}
	helpers.JSON(w, http.StatusOK, h.svc.Preview(req))
}

// Get
// @Summary      Article by id (operator)
// @Tags         admin-articles
// @Produce      json
// @Param        id   path      string  true  "Article id"
// @Success      200  {object}  models.Article
// @Failure      404  {object}  helpers.Response
// @Security     ApiKeyAuth
// @Router       /api/admin/articles/{id} [get]
func (h *ArticleHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := articleID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	a, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	helpers.JSON(w, http.StatusOK, a)
}

// Update
// @Summary      Update an article
// @Description  Partial update. Changing the title regenerates the slug, changing markdown re-renders content.
// @Tags         admin-articles
// @Accept       json
// @Produce      json
// @Param        id    path      string                       true  "Article id"
// @Param        body  body      models.UpdateArticleRequest  true  "Changed fields"
// @Success      200   {object}  models.Article
// @Failure      400   {object}  helpers.Response
// @Failure      404   {object}  helpers.Response
// @Failure      409   {object}  helpers.Response
// @Security     ApiKeyAuth
// @Router       /api/admin/articles/{id} [patch]
func (h *ArticleHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := articleID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req models.UpdateArticleRequest
	if err := decodeJSON(w, r, &req); err != nil {
		logger.WithCtx(r.Context()).Warn("Failed to decode article patch JSON", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, "invalid json")
		return
	}

	a, err := h.svc.Update(r.Context(), id, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	helpers.JSON(w, http.StatusOK, a)
}

// SetPublished
// @Summary      Publish or unpublish
// @Tags         admin-articles
// @Accept       json
// @Produce      json
// @Param        id    path      string                  true  "Article id"
// @Param        body  body      models.PublishRequest   true  "Status"
// @Success      200   {object}  models.Article
// @Failure      404   {object}  helpers.Response
// @Security     ApiKeyAuth
// @Router       /api/admin/articles/{id}/publish [patch]
func (h *ArticleHandler) SetPublished(w http.ResponseWriter, r *http.Request) {
	id, err := articleID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req models.PublishRequest
	if err := decodeJSON(w, r, &req); err != nil {
		helpers.Error(w, http.StatusBadRequest, "invalid json")
		return
	}

	a, err := h.svc.SetPublished(r.Context(), id, req.Published)
	if err != nil {
		writeError(w, r, err)
		return
	}
	helpers.JSON(w, http.StatusOK, a)
}

// Delete
// @Summary      Delete an article
// @Tags         admin-articles
// @Param        id   path  string  true  "Article id"
// @Success      204
// @Failure      404  {object}  helpers.Response
// @Security     ApiKeyAuth
// @Router       /api/admin/articles/{id} [delete]
func (h *ArticleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := articleID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- helpers ---

func articleID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		return uuid.Nil, apperr.NewValidation("id", "must be a UUID")
	}
	return id, nil
}

func parseFilter(r *http.Request) (models.ArticleFilter, error) {
	q := r.URL.Query()
	f := models.ArticleFilter{
		Tag:      strings.TrimSpace(q.Get("tag")),
		Category: strings.TrimSpace(q.Get("category")),
		Limit:    defaultPageSize,
	}

	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return f, apperr.NewValidation("limit", "must be a positive integer")
		}
		f.Limit = min(n, maxPageSize)
	}
	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return f, apperr.NewValidation("offset", "must be a non-negative integer")
		}
		f.Offset = n
	}
	return f, nil
}
