package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"github.com/jobtrack/jobtrack-api/internal/config"
	"github.com/jobtrack/jobtrack-api/internal/handler"
	"github.com/jobtrack/jobtrack-api/internal/repository"
	"github.com/jobtrack/jobtrack-api/internal/service"
	"github.com/jobtrack/jobtrack-api/internal/utils"
	"github.com/jobtrack/jobtrack-api/pkg/observability"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	infra    Infrastructure
	config   *config.Config
	router   *gin.Engine
	server   *http.Server
	recorder *service.AuditRecorder
}

func NewApp(infra Infrastructure, cfg *config.Config) *App {
	repos := repository.NewRepositories(infra.Postgres())

	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry.Duration,
		cfg.JWT.RefreshTokenExpiry.Duration,
	)

	blacklist := service.NewRedisTokenBlacklist(infra.Redis())
	rateLimiter := service.NewRateLimiter(infra.Redis())
	healthChecker := NewHealthChecker(infra)
	recorder := service.NewAuditRecorder(repos.Audit, infra.Logger(), cfg.Audit.BufferSize)

	authService := service.NewAuthService(
		repos.User,
		repos.Token,
		jwtManager,
		blacklist,
		cfg.Security.BCryptCost,
	)
	profileService := service.NewProfileService(repos.Profile, repos.User)
	applicationService := service.NewApplicationService(repos.Application)
	adminService := service.NewAdminService(
		repos.User,
		repos.Profile,
		repos.Application,
		repos.Audit,
		recorder,
		cfg.Security.BCryptCost,
	)

	authHandler := handler.NewAuthHandler(
		authService,
		cfg.Cookie,
		cfg.JWT.AccessTokenExpiry.Duration,
		cfg.JWT.RefreshTokenExpiry.Duration,
	)
	profileHandler := handler.NewProfileHandler(profileService)
	applicationHandler := handler.NewApplicationHandler(applicationService)
	adminHandler := handler.NewAdminHandler(adminService)

	router := gin.Default()
	router.Use(otelgin.Middleware("jobtrack-api"))
	router.Use(handler.LoggerMiddleware(infra.Logger()))
	router.Use(handler.CORSMiddleware(cfg.CORS.AllowedOrigins, cfg.CORS.AllowedMethods, cfg.CORS.AllowedHeaders))

	setupRoutes(router, cfg, routeDeps{
		auth:          authHandler,
		profile:       profileHandler,
		application:   applicationHandler,
		admin:         adminHandler,
		authService:   authService,
		rateLimiter:   rateLimiter,
		recorder:      recorder,
		healthChecker: healthChecker,
		metrics:       infra.MetricsHandler(),
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout.Duration,
		WriteTimeout: cfg.Server.WriteTimeout.Duration,
	}

	return &App{
		infra:    infra,
		config:   cfg,
		router:   router,
		server:   srv,
		recorder: recorder,
	}
}

func (a *App) Router() *gin.Engine {
	return a.router
}

type routeDeps struct {
	auth          *handler.AuthHandler
	profile       *handler.ProfileHandler
	application   *handler.ApplicationHandler
	admin         *handler.AdminHandler
	authService   service.AuthService
	rateLimiter   *service.RateLimiter
	recorder      *service.AuditRecorder
	healthChecker *HealthChecker
	metrics       http.Handler
}

func setupRoutes(router *gin.Engine, cfg *config.Config, deps routeDeps) {
	router.GET("/metrics", observability.PrometheusHandler(deps.metrics))
	router.GET("/health", deps.healthChecker.Handler)

	rateLimit := handler.RateLimitMiddleware(
		deps.rateLimiter,
		cfg.Security.RateLimitRequests,
		cfg.Security.RateLimitWindow.Duration,
		handler.IPBasedKey,
	)

	api := router.Group("/api/v1")

	// Refresh sits outside the session boundary: it authenticates by
	// refresh cookie alone and must work with an expired access cookie
	api.POST("/token/refresh", deps.auth.Refresh)

	api.Use(handler.SessionMiddleware(deps.authService))
	api.Use(handler.AuditMiddleware(deps.recorder))

	api.POST("/register", rateLimit, deps.auth.Register)
	api.POST("/login", rateLimit, deps.auth.Login)
	api.POST("/logout", handler.RequireAuth(), deps.auth.Logout)
	api.GET("/me", handler.RequireAuth(), deps.auth.Me)

	profile := api.Group("/profile", handler.RequireAuth())
	{
		profile.GET("", deps.profile.Get)
		profile.POST("", deps.profile.Create)
		profile.PUT("", deps.profile.Update)
		profile.PATCH("", deps.profile.Update)
	}

	applications := api.Group("/applications", handler.RequireAuth())
	{
		applications.GET("", deps.application.List)
		applications.POST("", deps.application.Create)
		applications.GET("/stats", deps.application.Stats)
		applications.GET("/analytics", deps.application.Analytics)
		applications.GET("/:id", deps.application.Get)
		applications.PUT("/:id", deps.application.Update)
		applications.PATCH("/:id", deps.application.Update)
		applications.DELETE("/:id", deps.application.Delete)
	}

	admin := api.Group("/admin", handler.RequireAdmin(), handler.RequireAuth())
	{
		admin.GET("/users", deps.admin.ListUsers)
		admin.POST("/users", deps.admin.CreateUser)
		admin.GET("/users/:id", deps.admin.GetUser)
		admin.PUT("/users/:id", deps.admin.UpdateUser)
		admin.PATCH("/users/:id", deps.admin.UpdateUser)
		admin.DELETE("/users/:id", deps.admin.DeleteUser)
		admin.POST("/users/:id/set_role", deps.admin.SetRole)
		admin.GET("/users/:id/profile", deps.admin.UserProfile)
		admin.GET("/users/:id/applications", deps.admin.UserApplications)
		admin.GET("/applications/:id", deps.admin.Application)
		admin.GET("/audit-logs", deps.admin.AuditLogs)
		admin.GET("/dashboard", deps.admin.Dashboard)
		admin.GET("/monitoring", deps.admin.Monitoring)
	}
}

func (a *App) Run(ctx context.Context) error {
	errChan := make(chan error, 1)

	go func() {
		a.infra.Logger().Info("Application starting",
			zap.String("host", a.config.Server.Host),
			zap.String("port", a.config.Server.Port),
		)

		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
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

	errs := make(chan error, 2)

	go func() {
		errs <- a.server.Shutdown(ctx)
	}()

	go func() {
		errs <- a.infra.Shutdown(ctx)
	}()

	err := errors.Join(<-errs, <-errs)

	// Drain pending audit writes after the server stops taking requests
	a.recorder.Close()

	if err != nil {
		a.infra.Logger().Error("Shutdown failed", zap.Error(err))
		return err
	}

	a.infra.Logger().Info("Application exited successfully")
	return nil
}
