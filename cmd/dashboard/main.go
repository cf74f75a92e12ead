package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"fundboard/internal/config"
	cronrunner "fundboard/internal/cron"
	"fundboard/internal/db"
	"fundboard/internal/handler"
	"fundboard/internal/logger"
	gormrepository "fundboard/internal/repository/gorm"
	"fundboard/internal/roster"
	"fundboard/internal/service"

	_ "fundboard/docs"
)

func main() {
	cfgPath := os.Getenv("FB_CONFIG")
	if cfgPath == "" {
		cfgPath = "config/config.yaml"
	}

	envOnly := false
	if envOnlyRaw := os.Getenv("FB_ENV_ONLY"); envOnlyRaw != "" {
		envOnly = strings.EqualFold(envOnlyRaw, "true") || envOnlyRaw == "1"
	}

	cfg, err := config.Load(cfgPath, envOnly)
	if err != nil {
		panic(err)
	}

	logger, err := logger.New(cfg.Log)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	prov := db.NewProvisioner(cfg.DB)
	store := gormrepository.New(prov, logger, cfg.DB.MT5Name, cfg.DB.AdminName)

	rosterService := &service.RosterService{
		Repo: store,
		Opts: roster.Options{
			HouseAccountEmail: cfg.Roster.HouseAccountEmail,
		},
		SummaryOpts: roster.SummaryOptions{
			ExcludeHouseFromWeightedAvg: cfg.Roster.ExcludeHouseFromWeightedAvg,
		},
		DealsDefaultLimit: cfg.Deals.DefaultLimit,
		DealsMaxLimit:     cfg.Deals.MaxLimit,
	}
	analyticsService := &service.AnalyticsService{Repo: store}

	if strings.EqualFold(cfg.App.Env, "dev") {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(sessions.Sessions("fundboard", cookie.NewStore([]byte(cfg.Auth.SessionSecret))))

	healthHandler := &handler.HealthHandler{Repo: store}
	healthHandler.Register(engine)
	authHandler := &handler.AuthHandler{Auth: cfg.Auth}
	authHandler.Register(engine)

	api := engine.Group("/api", handler.RequireOperator())
	dashboardHandler := &handler.DashboardHandler{Roster: rosterService}
	dashboardHandler.Register(api)
	analyticsHandler := &handler.AnalyticsHandler{Analytics: analyticsService}
	analyticsHandler.Register(api)

	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:    cfg.Server.HTTPAddr,
		Handler: engine,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Startup connectivity check: report, but keep serving. The databases
	// may come up after we do.
	for name, pingErr := range store.TestConnections(ctx) {
		if pingErr != nil {
			logger.Warn("database unreachable at startup",
				zap.String("database", name), zap.Error(pingErr))
			continue
		}
		logger.Info("database reachable", zap.String("database", name))
	}

	if cfg.Cron.Enabled {
		cronRunner := cronrunner.New(logger, ctx)
		_, err = cronRunner.Add(cfg.Cron.HealthProbe, func(ctx context.Context) {
			for name, pingErr := range store.TestConnections(ctx) {
				if pingErr != nil {
					logger.Warn("health probe failed",
						zap.String("database", name), zap.Error(pingErr))
				}
			}
		})
		if err != nil {
			logger.Warn("cron register health probe failed", zap.Error(err))
		}
		cronRunner.Start()
		defer cronRunner.Stop()
	}

	errCh := make(chan error, 1)

	go func() {
		logger.Info("http server starting", zap.String("addr", cfg.Server.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown requested")
	case err := <-errCh:
		logger.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}
