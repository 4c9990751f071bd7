package entrypoint

import (
	"context"
	"crypto/rand"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mimiru/mimiru/internal/actions"
	"github.com/mimiru/mimiru/internal/audit"
	"github.com/mimiru/mimiru/internal/auth"
	"github.com/mimiru/mimiru/internal/config"
	"github.com/mimiru/mimiru/internal/database"
	auditrepo "github.com/mimiru/mimiru/internal/database/audit"
	"github.com/mimiru/mimiru/internal/database/chapters"
	"github.com/mimiru/mimiru/internal/database/genres"
	"github.com/mimiru/mimiru/internal/database/titles"
	"github.com/mimiru/mimiru/internal/database/users"
	http_controllers "github.com/mimiru/mimiru/internal/http"
	"github.com/mimiru/mimiru/internal/pagecache"
	"github.com/mimiru/mimiru/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting Mimiru v%s", version)

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	auditService := audit.NewService(auditrepo.NewRepository(db.DB))

	// Page cache keeps pre-rendered list payloads; the action layer
	// drops entries through the Revalidator on every mutation.
	var pageCache *pagecache.Cache
	var revalidator actions.Revalidator
	if cfg.Cache.Enabled {
		pageCache = pagecache.New(cfg.Cache.TTL)
		revalidator = pageCache
		if err := pageCache.StartSweeper(cfg.Cache.SweepSchedule); err != nil {
			log.Printf("WARNING: failed to start cache sweeper: %v", err)
		}
	} else {
		revalidator = actions.NopRevalidator{}
	}

	titleActions := actions.NewTitles(titles.NewRepository(db.DB), revalidator, auditService)
	chapterActions := actions.NewChapters(chapters.NewRepository(db.DB), revalidator, auditService)
	genreActions := actions.NewGenres(genres.NewRepository(db.DB), revalidator, auditService)
	userActions := actions.NewUsers(users.NewRepository(db.DB), revalidator, auditService)

	// Task queue re-renders revalidated pages in the background.
	var taskClient *tasks.Client
	var taskCtxCancel context.CancelFunc
	if cfg.Tasks.Enabled && pageCache != nil {
		taskCfg := tasks.Config{
			Workers:         cfg.Tasks.Workers,
			ReleaseAfter:    cfg.Tasks.ReleaseAfter,
			CleanupInterval: cfg.Tasks.CleanupInterval,
		}

		taskClient, err = tasks.NewClient(cfg.Database.Path, taskCfg)
		if err != nil {
			log.Fatalf("Failed to initialize task queue: %v", err)
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.Printf("Error closing task client: %v", err)
			}
		}()

		renderer := http_controllers.NewPageRenderer(titleActions, chapterActions, genreActions)
		taskClient.Register(tasks.NewRefreshPageQueue(renderer, pageCache))
		pageCache.SetRefresher(tasks.NewRefresher(taskClient, renderer.CanRender))

		var taskCtx context.Context
		taskCtx, taskCtxCancel = context.WithCancel(context.Background())
		go taskClient.Start(taskCtx)
	}

	// Authentication is always on; mutating endpoints require a session.
	authProvider := auth.NewProvider(db.DB, cfg.Auth)

	sqlDB, err := db.DB.DB()
	if err != nil {
		log.Fatalf("Failed to get SQL DB for sessions: %v", err)
	}

	sessionManager, err := auth.NewSessionManager(sqlDB, cfg.Auth)
	if err != nil {
		log.Fatalf("Failed to initialize session manager: %v", err)
	}

	csrfSecret, generated, err := resolveCSRFSecret(cfg.Auth)
	if err != nil {
		log.Fatalf("Failed to generate CSRF secret: %v", err)
	}
	if generated {
		log.Printf("Generated CSRF secret (set AUTH_CSRF_SECRET or AUTH_SESSION_SECRET to persist across restarts)")
	}

	routerCfg := http_controllers.RouterConfig{
		Titles:         titleActions,
		Chapters:       chapterActions,
		Genres:         genreActions,
		Users:          userActions,
		Database:       db,
		AuthProvider:   authProvider,
		SessionManager: sessionManager,
		CSRFSecret:     csrfSecret,
		SecureCookies:  cfg.Auth.SecureCookies,
		PageCache:      pageCache,
		Version:        version,
	}

	router := http_controllers.NewRouter(routerCfg)

	onShutdown := func(ctx context.Context) {
		if taskClient != nil && taskCtxCancel != nil {
			taskClient.Stop(ctx)
			taskCtxCancel()
		}
		if pageCache != nil {
			pageCache.StopSweeper()
		}
	}

	Serve(router, cfg, onShutdown)
}

// resolveCSRFSecret picks the CSRF signing key. An explicit
// AUTH_CSRF_SECRET wins, otherwise the session secret doubles as the
// CSRF key. With neither set a random key is generated and CSRF tokens
// stop surviving restarts, which the caller should log.
func resolveCSRFSecret(auth config.Auth) (secret []byte, generated bool, err error) {
	if auth.CSRFSecret != "" {
		return []byte(auth.CSRFSecret), false, nil
	}
	if auth.SessionSecret != "" {
		return []byte(auth.SessionSecret), false, nil
	}
	secret = make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		return nil, false, err
	}
	return secret, true, nil
}
