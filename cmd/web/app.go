package main

import (
	"context"
	"errors"
	"fmt"
	"horoscopus-web/internal/autocomplete"
	"horoscopus-web/internal/birthdata"
	"horoscopus-web/internal/config"
	"horoscopus-web/internal/httpkit"
	"horoscopus-web/internal/location"
	"horoscopus-web/internal/onboarding"
	"horoscopus-web/internal/pages"
	"horoscopus-web/internal/providers/horoscopus"
	"horoscopus-web/internal/store"
	"horoscopus-web/web"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"golang.org/x/time/rate"
)

const (
	serviceName     = "horoscopus-web"
	shutdownTimeout = 10 * time.Second
)

// App encapsulates application dependencies
type App struct {
	router       *gin.Engine
	logger       *slog.Logger
	cfg          *config.Config
	autocomplete *autocomplete.Client
	schema       *birthdata.Schema
	sessions     *onboarding.SessionStore
	onboarding   *onboarding.Page
	auth         store.AuthStore
	limiter      *httpkit.IPRateLimiter
	closers      []func() error
}

// Dependencies are the collaborators NewApp builds from configuration.
// Tests pass their own.
type Dependencies struct {
	Searcher  location.Searcher
	Cache     autocomplete.Cache
	Submitter onboarding.Submitter
	Auth      store.AuthStore
}

// NewApp creates a new application with dependencies built from cfg
func NewApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	auth := store.NewMemoryAuthStore()
	api := horoscopus.NewClient(cfg.API.BaseURL, cfg.API.Timeout, auth, logger)

	searcher, err := location.NewLocationService(cfg.Search, api, logger)
	if err != nil {
		return nil, err
	}

	cache, closeCache, err := newCache(ctx, cfg.Cache, logger)
	if err != nil {
		return nil, err
	}

	app, err := NewAppWithDependencies(cfg, logger, Dependencies{
		Searcher:  searcher,
		Cache:     cache,
		Submitter: newSubmitter(cfg.Onboarding, api, logger),
		Auth:      auth,
	})
	if err != nil {
		if closeCache != nil {
			_ = closeCache()
		}
		return nil, err
	}
	if closeCache != nil {
		app.closers = append(app.closers, closeCache)
	}
	return app, nil
}

// NewAppWithDependencies wires the router around the given dependencies
func NewAppWithDependencies(cfg *config.Config, logger *slog.Logger, deps Dependencies) (*App, error) {
	// Set Gin mode from configuration
	gin.SetMode(cfg.Server.GinMode)

	router := gin.New()
	router.Use(
		gin.Recovery(),
		httpkit.RequestID(),
		otelgin.Middleware(serviceName),
		httpkit.RequestLogger(logger),
		httpkit.SecurityHeaders(),
		cors.New(corsConfig(cfg.Server.AllowedOrigins)),
	)

	tmpl, err := web.Templates(template.FuncMap{
		"formatDate": pages.FormatDate,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	router.SetHTMLTemplate(tmpl)

	client := autocomplete.NewClient(deps.Searcher, deps.Cache, autocomplete.Options{
		MinQueryLen:  cfg.Search.MinQueryLen,
		DefaultLimit: cfg.Search.DefaultLimit,
	}, logger)
	schema := birthdata.NewSchema()

	app := &App{
		router:       router,
		logger:       logger,
		cfg:          cfg,
		autocomplete: client,
		schema:       schema,
		sessions: onboarding.NewSessionStore(cfg.Onboarding.SessionTTL, func() *onboarding.Form {
			return onboarding.NewForm(client, schema, logger)
		}, logger),
		onboarding: onboarding.NewPage(deps.Submitter, logger),
		auth:       deps.Auth,
		limiter:    httpkit.NewIPRateLimiter(rate.Limit(cfg.Server.RateLimit), cfg.Server.RateBurst, logger),
	}

	// Register routes
	app.registerRoutes()

	logger.Info("application initialized",
		"search_providers", cfg.Search.Providers,
		"cache_backend", cfg.Cache.Backend,
		"submit_mode", cfg.Onboarding.SubmitMode,
	)
	return app, nil
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully
func (app *App) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           app.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go app.sessions.Run(ctx, 0)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	app.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// Close releases external connections
func (app *App) Close() error {
	var errs []error
	for _, closeFn := range app.closers {
		errs = append(errs, closeFn())
	}
	return errors.Join(errs...)
}

func newCache(ctx context.Context, cfg config.CacheConfig, logger *slog.Logger) (autocomplete.Cache, func() error, error) {
	if cfg.Backend != "redis" {
		return autocomplete.NewMemoryCache(cfg.TTL), nil, nil
	}

	client, err := autocomplete.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return autocomplete.NewRedisCache(client, cfg.TTL, logger), client.Close, nil
}

func newSubmitter(cfg config.OnboardingConfig, api onboarding.ProfileCreator, logger *slog.Logger) onboarding.Submitter {
	if cfg.SubmitMode == "api" {
		return onboarding.NewAPISubmitter(api, logger)
	}
	return onboarding.NewStubSubmitter(cfg.SubmitDelay, logger)
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization", httpkit.HeaderRequestID},
		MaxAge:       12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}
