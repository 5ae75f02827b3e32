package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"inkpost/internal/handlers"
	"inkpost/internal/middleware"
	"inkpost/internal/utils"
)

type Handlers struct {
	Auth    *handlers.AuthHandler
	Article *handlers.ArticleHandler
	Contact *handlers.ContactHandler
	Logs    *handlers.AdminLogsHandler
}

func InitRoutes(router *mux.Router, h Handlers, jwtSecret string) {
	router.Use(middleware.RequestID, middleware.Logging, middleware.Recoverer)

	api := router.PathPrefix("/api").Subrouter()

	// --- Public ---
	api.HandleFunc("/login", h.Auth.Login).Methods(http.MethodPost)
	api.HandleFunc("/contact", h.Contact.Submit).Methods(http.MethodPost)
	api.HandleFunc("/articles", h.Article.ListPublished).Methods(http.MethodGet)
	api.HandleFunc("/articles/{slug}", h.Article.GetBySlug).Methods(http.MethodGet)

	// --- Operator ---
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.JWTAuth(jwtSecret), middleware.OnlyRole(utils.RoleAdmin))

	admin.HandleFunc("/articles", h.Article.List).Methods(http.MethodGet)
	admin.HandleFunc("/articles", h.Article.Create).Methods(http.MethodPost)
	admin.HandleFunc("/articles/preview", h.Article.Preview).Methods(http.MethodPost)
	admin.HandleFunc("/articles/{id}", h.Article.Get).Methods(http.MethodGet)
	admin.HandleFunc("/articles/{id}", h.Article.Update).Methods(http.MethodPatch)
	admin.HandleFunc("/articles/{id}", h.Article.Delete).Methods(http.MethodDelete)
	admin.HandleFunc("/articles/{id}/publish", h.Article.SetPublished).Methods(http.MethodPatch)

	admin.HandleFunc("/logs", h.Logs.GetLogs).Methods(http.MethodGet)
	admin.HandleFunc("/logs/stats", h.Logs.Stats).Methods(http.MethodGet)
}
