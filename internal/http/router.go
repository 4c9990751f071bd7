package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mimiru/mimiru/internal/actions"
	"github.com/mimiru/mimiru/internal/auth"
	"github.com/mimiru/mimiru/internal/database"
	"github.com/mimiru/mimiru/internal/pagecache"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router. This replaces a long parameter list
// in NewRouter for better maintainability.
type RouterConfig struct {
	// Action layer
	Titles   *actions.Titles
	Chapters *actions.Chapters
	Genres   *actions.Genres
	Users    *actions.Users

	// Core dependencies
	Database *database.Database

	// Authentication
	AuthProvider   *auth.Provider
	SessionManager *auth.SessionManager
	CSRFSecret     []byte
	SecureCookies  bool

	// Pre-rendered page cache; nil disables cache serving
	PageCache *pagecache.Cache

	// Application info
	Version string
}

// cachedJSON serves a pre-rendered payload for path when the cache
// holds a fresh copy, falling through to the live handler otherwise.
// The cache only holds the bare listing, so any request carrying query
// parameters goes straight to the live handler.
func cachedJSON(cache *pagecache.Cache, path string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cache == nil || c.Request.URL.RawQuery != "" {
			return
		}
		if payload, ok := cache.Get(path); ok {
			c.Data(http.StatusOK, "application/json; charset=utf-8", payload)
			c.Abort()
		}
	}
}

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// CSRF must run before session so that session context is preserved
	if len(cfg.CSRFSecret) > 0 {
		router.Use(auth.CSRFMiddleware(cfg.CSRFSecret, cfg.SecureCookies))
	}
	if cfg.SessionManager != nil {
		router.Use(cfg.SessionManager.SessionLoadSave())
	}

	healthController := NewHealthController(cfg.Database, cfg.Version)
	router.GET("/health", healthController.Status)

	if cfg.AuthProvider != nil && cfg.SessionManager != nil {
		authController := auth.NewController(cfg.AuthProvider, cfg.SessionManager)
		authController.RegisterRoutes(router)
	}

	titlesController := NewTitlesController(cfg.Titles)
	chaptersController := NewChaptersController(cfg.Chapters)
	genresController := NewGenresController(cfg.Genres)
	usersController := NewUsersController(cfg.Users)

	api := router.Group("/api")

	// Read endpoints are public; list endpoints with pre-rendered
	// payloads consult the cache first.
	api.GET("/titles", cachedJSON(cfg.PageCache, "/titles"), titlesController.ListTitles)
	api.GET("/titles/with-genres", titlesController.ListTitlesWithGenres)
	api.GET("/titles/search", titlesController.SearchTitles)
	api.GET("/titles/:id", titlesController.GetTitle)

	api.GET("/chapters", chaptersController.ListChapters)
	api.GET("/chapters/latest", cachedJSON(cfg.PageCache, "/latest"), chaptersController.ListLatestChapters)
	api.GET("/chapters/next", chaptersController.GetNextChapter)
	api.GET("/chapters/previous", chaptersController.GetPreviousChapter)
	api.GET("/chapters/:id", chaptersController.GetChapter)

	api.GET("/genres", cachedJSON(cfg.PageCache, "/genres"), genresController.ListGenres)
	api.GET("/genres/search", genresController.SearchGenres)
	api.GET("/genres/:id", genresController.GetGenre)

	api.GET("/users", usersController.ListUsers)
	api.GET("/users/search", usersController.SearchUsers)
	api.GET("/users/by-username/:username", usersController.GetUserByUsername)
	api.GET("/users/:id", usersController.GetUser)

	// Mutations require a signed-in account.
	mutations := api.Group("")
	if cfg.SessionManager != nil {
		mutations.Use(auth.RequireSession(cfg.SessionManager))
	}

	mutations.POST("/titles", titlesController.CreateTitle)
	mutations.PUT("/titles/:id", titlesController.UpdateTitle)
	mutations.DELETE("/titles/:id", titlesController.DeleteTitle)

	mutations.POST("/chapters", chaptersController.CreateChapter)
	mutations.PUT("/chapters/:id", chaptersController.UpdateChapter)
	mutations.DELETE("/chapters/:id", chaptersController.DeleteChapter)

	mutations.POST("/genres", genresController.CreateGenre)
	mutations.PUT("/genres/:id", genresController.UpdateGenre)
	mutations.DELETE("/genres/:id", genresController.DeleteGenre)

	mutations.POST("/users/profile", usersController.CreateProfile)
	mutations.PUT("/users/:id", usersController.UpdateProfile)
	mutations.PUT("/users/:id/role", usersController.UpdateRole)
	mutations.POST("/users/:id/deactivate", usersController.DeactivateUser)

	return router
}
