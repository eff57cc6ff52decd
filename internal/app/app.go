package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"github.com/prperemyshlev/pomodoro-service/internal/cache"
	"github.com/prperemyshlev/pomodoro-service/internal/config"
	"github.com/prperemyshlev/pomodoro-service/internal/handler"
	"github.com/prperemyshlev/pomodoro-service/internal/oauth"
	"github.com/prperemyshlev/pomodoro-service/internal/repository"
	"github.com/prperemyshlev/pomodoro-service/internal/service"
	"github.com/prperemyshlev/pomodoro-service/internal/utils"
	"github.com/prperemyshlev/pomodoro-service/pkg/observability"
)

const (
	shutdownTimeout = 5 * time.Second
	corsMaxAge      = 12 * time.Hour
)

type App struct {
	infra  Infrastructure
	config *config.Config
	router *gin.Engine
	server *http.Server
}

type handlers struct {
	auth     *handler.AuthHandler
	task     *handler.TaskHandler
	category *handler.CategoryHandler
	health   *HealthChecker
}

func NewApp(infra Infrastructure, cfg *config.Config) (*App, error) {
	return newApp(infra, cfg, repository.NewRepositories(infra.Postgres()))
}

func newApp(infra Infrastructure, cfg *config.Config, repos *repository.Repositories) (*App, error) {
	logger := infra.Logger()

	jwtManager, err := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.Algorithm,
		cfg.JWT.AccessTokenExpiry.Duration,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT manager: %w", err)
	}

	cacheMetrics, err := observability.NewCacheMetrics(infra.MeterProvider().Meter(serviceName))
	if err != nil {
		return nil, err
	}

	var googleClient oauth.GoogleClient
	if cfg.Google.Enabled() {
		googleClient = oauth.NewGoogleClient(cfg.Google)
	} else {
		logger.Info("Google sign-in disabled, GOOGLE_CLIENT_ID or GOOGLE_CLIENT_SECRET is empty")
	}

	authService := service.NewAuthService(
		repos.User,
		jwtManager,
		googleClient,
		service.NewOAuthStateStore(infra.Redis(), cfg.Google.StateTTL.Duration),
		cfg.Security.BCryptCost,
		logger,
	)

	taskService := service.NewTaskService(
		repos.Task,
		cache.NewTaskCache(infra.Redis(), cfg.Cache.TaskTTL.Duration),
		cacheMetrics,
		logger,
		service.WithAppendOnCreate(cfg.Cache.AppendOnCreate),
	)

	categoryService := service.NewCategoryService(repos.Category)
	rateLimiter := service.NewRateLimiter(infra.Redis())

	h := handlers{
		auth:     handler.NewAuthHandler(authService),
		task:     handler.NewTaskHandler(taskService),
		category: handler.NewCategoryHandler(categoryService),
		health:   NewHealthChecker(infra),
	}

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(serviceName))
	router.Use(handler.LoggerMiddleware(logger))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     cfg.CORS.AllowedMethods,
		AllowHeaders:     cfg.CORS.AllowedHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           corsMaxAge,
	}))

	setupRoutes(router, cfg, h, authService, rateLimiter, infra.MetricsHandler())

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout.Duration,
		WriteTimeout: cfg.Server.WriteTimeout.Duration,
	}

	return &App{
		infra:  infra,
		config: cfg,
		router: router,
		server: srv,
	}, nil
}

func (a *App) Router() *gin.Engine {
	return a.router
}

func setupRoutes(
	router *gin.Engine,
	cfg *config.Config,
	h handlers,
	authService service.AuthService,
	rateLimiter *service.RateLimiter,
	metricsHandler http.Handler,
) {
	router.GET("/metrics", observability.PrometheusHandler(metricsHandler))
	router.GET("/health", h.health.Handler)

	ping := router.Group("/ping")
	{
		ping.GET("/app", h.health.PingApp)
		ping.GET("/db", h.health.PingDB)
	}

	rateLimit := handler.RateLimitMiddleware(
		rateLimiter,
		cfg.Security.RateLimitRequests,
		cfg.Security.RateLimitWindow.Duration,
		handler.RouteAndIPKey,
	)
	requireAuth := handler.AuthMiddleware(authService)

	api := router.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", rateLimit, h.auth.Register)
			auth.POST("/login", rateLimit, h.auth.Login)
			auth.GET("/google/login", h.auth.GoogleLogin)
			auth.GET("/google/callback", h.auth.GoogleCallback)
			auth.GET("/me", requireAuth, h.auth.GetMe)
		}

		tasks := api.Group("/tasks", requireAuth)
		{
			tasks.GET("", h.task.List)
			tasks.POST("", h.task.Create)
			tasks.GET("/:id", h.task.Get)
			tasks.PATCH("/:id", h.task.Update)
			tasks.DELETE("/:id", h.task.Delete)
		}

		categories := api.Group("/categories", requireAuth)
		{
			categories.GET("", h.category.List)
			categories.POST("", h.category.Create)
		}
	}
}

func (a *App) Run(ctx context.Context) error {
	errChan := make(chan error, 1)

	go func() {
		a.infra.Logger().Info("Application starting",
			zap.String("host", a.config.Server.Host),
			zap.String("port", a.config.Server.Port),
		)

		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.infra.Logger().Error("Server error", zap.Error(err))
			errChan <- err
		}
	}()

	var serverErr error
	select {
	case err := <-errChan:
		a.infra.Logger().Error("Application failed to start", zap.Error(err))
		serverErr = err
	case <-ctx.Done():
		a.infra.Logger().Info("Application stopped by context")
	}

	if err := a.Shutdown(); err != nil {
		a.infra.Logger().Error("Shutdown error", zap.Error(err))
		if serverErr != nil {
			return errors.Join(serverErr, err)
		}
		return err
	}

	return serverErr
}

func (a *App) Shutdown() error {
	a.infra.Logger().Info("Application shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		a.infra.Logger().Error("HTTP server shutdown failed", zap.Error(err))
		return errors.Join(err, a.infra.Shutdown(ctx))
	}

	if err := a.infra.Shutdown(ctx); err != nil {
		a.infra.Logger().Error("Shutdown failed", zap.Error(err))
		return err
	}

	a.infra.Logger().Info("Application exited successfully")
	return nil
}
