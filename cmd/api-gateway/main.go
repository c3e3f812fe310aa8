package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/apaulliao/classboard-api/api/swagger"
	"github.com/apaulliao/classboard-api/internal/handler"
	"github.com/apaulliao/classboard-api/internal/middleware"
	"github.com/apaulliao/classboard-api/internal/models"
	"github.com/apaulliao/classboard-api/internal/repository"
	"github.com/apaulliao/classboard-api/internal/service"
	"github.com/apaulliao/classboard-api/pkg/cache"
	"github.com/apaulliao/classboard-api/pkg/clock"
	"github.com/apaulliao/classboard-api/pkg/config"
	"github.com/apaulliao/classboard-api/pkg/database"
	"github.com/apaulliao/classboard-api/pkg/logger"
	corsmiddleware "github.com/apaulliao/classboard-api/pkg/middleware/cors"
	reqidmiddleware "github.com/apaulliao/classboard-api/pkg/middleware/requestid"
	"github.com/apaulliao/classboard-api/pkg/ticker"
)

// @title Classboard API
// @version 0.1.0
// @description Classroom display status engine and schedule management
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, snapshot caching disabled", "error", err)
		redisClient = nil
	}

	slotRepo := repository.NewSlotRepository(db)
	operatorRepo := repository.NewOperatorRepository(db)

	metricsSvc := service.NewMetricsService()
	var cacheSvc *service.CacheService
	if redisClient != nil {
		cacheRepo := repository.NewCacheRepository(redisClient, logr)
		cacheSvc = service.NewCacheService(cacheRepo, metricsSvc, cfg.Board.SnapshotCacheTTL, logr, cfg.Board.CacheEnabled)
	}

	cutover, err := models.ParseTimeOfDay(cfg.Board.HalfDayCutover)
	if err != nil {
		logr.Sugar().Warnw("invalid half-day cutover, using 13:20", "value", cfg.Board.HalfDayCutover)
		cutover = models.MustTimeOfDay("13:20")
	}
	resolver := service.NewResolverService(service.ResolverConfig{
		CutoverSlotID:     cfg.Board.CutoverSlotID,
		CutoverFallback:   cutover,
		RecessSlotID:      cfg.Board.RecessSlotID,
		CleaningLabel:     cfg.Board.CleaningLabel,
		DismissalLabel:    cfg.Board.DismissalLabel,
		DismissalDuration: cfg.Board.DismissalDuration,
	}, logr)
	engine := service.NewStatusEngine(service.EngineConfig{
		EcoDelay:      cfg.Board.EcoDelay,
		PreBellWindow: cfg.Board.PreBellWindow,
	})

	overrideSvc := service.NewOverrideService(logr)
	boardClock := clock.NewOffset(nil)
	statusSvc := service.NewStatusService(service.StatusServiceParams{
		Store:     slotRepo,
		Resolver:  resolver,
		Engine:    engine,
		Overrides: overrideSvc,
		Clock:     boardClock,
		Cache:     cacheSvc,
		Metrics:   metricsSvc,
		Logger:    logr,
		Config:    service.StatusServiceConfig{SnapshotCacheTTL: cfg.Board.SnapshotCacheTTL},
	})
	scheduleSvc := service.NewScheduleService(slotRepo, statusSvc, cacheSvc, nil, logr)
	exportSvc := service.NewExportService(statusSvc, nil, nil, logr)
	authSvc := service.NewAuthService(operatorRepo, nil, logr, service.AuthConfig{
		TokenSecret: cfg.JWT.Secret,
		TokenExpiry: cfg.JWT.Expiration,
		Issuer:      cfg.JWT.Issuer,
	})

	statusHandler := handler.NewStatusHandler(statusSvc)
	overrideHandler := handler.NewOverrideHandler(overrideSvc)
	scheduleHandler := handler.NewScheduleHandler(scheduleSvc, exportSvc)
	authHandler := handler.NewAuthHandler(authSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Health)
	r.GET("/metrics", metricsHandler.Prometheus)
	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.POST("/auth/login", authHandler.Login)

	board := api.Group("/board")
	board.GET("/status", statusHandler.Current)
	board.GET("/preview", statusHandler.Preview)
	board.GET("/slots", statusHandler.DaySlots)
	board.GET("/clock-offset", statusHandler.GetClockOffset)

	protected := api.Group("")
	protected.Use(middleware.JWT(authSvc))

	protected.PUT("/board/clock-offset", statusHandler.SetClockOffset)
	protected.POST("/board/refresh", statusHandler.Refresh)

	overrides := protected.Group("/overrides")
	overrides.GET("", overrideHandler.Get)
	overrides.PUT("/eco", overrideHandler.SetManualEco)
	overrides.PUT("/auto-eco", overrideHandler.SetAutoEcoOverride)
	overrides.POST("/special", overrideHandler.SetSpecial)
	overrides.DELETE("/special", overrideHandler.ClearSpecial)

	schedule := protected.Group("/schedule")
	schedule.GET("/slots", scheduleHandler.ListSlots)
	schedule.GET("/day-types", scheduleHandler.DayTypes)
	schedule.GET("/subject-labels", scheduleHandler.SubjectLabels)
	if cfg.Exports.Enabled {
		schedule.GET("/export", scheduleHandler.Export)
	}

	admin := schedule.Group("")
	admin.Use(middleware.RequireRoles(models.RoleAdmin))
	admin.POST("/slots", scheduleHandler.CreateSlot)
	admin.PUT("/slots/:id", scheduleHandler.UpdateSlot)
	admin.DELETE("/slots/:id", scheduleHandler.DeleteSlot)
	admin.PUT("/day-types", scheduleHandler.SetDayType)
	admin.PUT("/subject-labels", scheduleHandler.SetSubjectLabel)

	loop := ticker.New("board-status", func(ctx context.Context) {
		statusSvc.Tick(ctx)
	}, ticker.Config{Interval: cfg.Board.TickInterval, Logger: logr})
	loop.Start(context.Background())
	defer loop.Stop()

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{Addr: addr, Handler: r}

	go func() {
		logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logr.Sugar().Infow("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logr.Sugar().Errorw("graceful shutdown failed", "error", err)
	}
}
