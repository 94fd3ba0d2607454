package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/dpointtt/sun-class-app/api/swagger"
	"github.com/dpointtt/sun-class-app/internal/handler"
	internalmiddleware "github.com/dpointtt/sun-class-app/internal/middleware"
	"github.com/dpointtt/sun-class-app/internal/repository"
	"github.com/dpointtt/sun-class-app/internal/service"
	"github.com/dpointtt/sun-class-app/pkg/apiclient"
	"github.com/dpointtt/sun-class-app/pkg/cache"
	"github.com/dpointtt/sun-class-app/pkg/config"
	"github.com/dpointtt/sun-class-app/pkg/database"
	"github.com/dpointtt/sun-class-app/pkg/logger"
	corsmiddleware "github.com/dpointtt/sun-class-app/pkg/middleware/cors"
	reqidmiddleware "github.com/dpointtt/sun-class-app/pkg/middleware/requestid"
	"github.com/dpointtt/sun-class-app/pkg/session"
)

// @title Sun Class Web
// @version 0.1.0
// @description Browser-facing web tier of the Sun Class classroom. Page loads answer JSON envelopes, form actions answer action results.
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

	metricsSvc := service.NewMetricsService()
	checks := map[string]handler.ReadinessCheck{}

	var redisClient *redis.Client
	if cfg.Revocation.Enabled {
		redisClient, err = cache.NewRedis(context.Background(), cfg.Redis)
		if err != nil {
			logr.Sugar().Fatalw("failed to connect redis", "error", err)
		}
		defer redisClient.Close() //nolint:errcheck
		checks["redis"] = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
	}

	var auditSvc *service.AuditService
	if cfg.Audit.Enabled {
		db := openAuditDatabase(cfg, logr)
		defer db.Close() //nolint:errcheck
		auditSvc = service.NewAuditService(repository.NewAuditRepository(db), logr)
		checks["postgres"] = db.PingContext
	}

	client := apiclient.New(apiclient.Options{
		BaseURL:    cfg.Upstream.BaseURL,
		Timeout:    cfg.Upstream.Timeout,
		CookieName: cfg.Upstream.AuthCookieName,
		Logger:     logr,
		Observer:   metricsSvc,
	})

	classrooms := repository.NewClassroomRepository(client)
	accounts := repository.NewAccountRepository(client)
	assignmentRepo := repository.NewAssignmentRepository(client)
	submissionRepo := repository.NewSubmissionRepository(client)
	revocations := repository.NewRevocationRepository(redisClient, cfg.Session.Secret)

	validate := service.NewValidator()
	sessionSvc := service.NewSessionService(accounts, revocations, validate, metricsSvc, logr)
	identitySvc := service.NewIdentityService(classrooms, logr)
	classSvc := service.NewClassService(classrooms, validate, logr)
	profileSvc := service.NewProfileService(accounts, validate, logr)
	assignmentSvc := service.NewAssignmentService(assignmentRepo, validate, logr)
	submissionSvc := service.NewSubmissionService(submissionRepo, logr)
	gradingSvc := service.NewGradingService(submissionRepo, logr)
	materialSvc := service.NewMaterialService(assignmentRepo, logr)
	exportSvc := service.NewExportService(submissionRepo, logr)

	store := session.New(session.Options{
		Secret:     cfg.Session.Secret,
		CookieName: cfg.Session.CookieName,
		MaxAge:     cfg.Session.MaxAge,
		Secure:     cfg.Session.Secure,
	})
	guard := internalmiddleware.NewSessionGuard(store, sessionSvc, cfg.Session.LoginPath)

	handlers := handler.Handlers{
		Auth:       handler.NewAuthHandler(sessionSvc, store, guard),
		Class:      handler.NewClassHandler(classSvc, guard),
		User:       handler.NewUserHandler(profileSvc, guard),
		Assignment: handler.NewAssignmentHandler(assignmentSvc, submissionSvc, materialSvc, guard),
		Grade:      handler.NewGradeHandler(submissionSvc, gradingSvc, exportSvc, guard),
		File:       handler.NewFileHandler(submissionSvc, materialSvc, guard),
	}
	metricsHandler := handler.NewMetricsHandler(metricsSvc, checks)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	if cfg.Metrics.Enabled {
		r.Use(internalmiddleware.Metrics(metricsSvc))
		r.GET("/metrics", metricsHandler.Prometheus)
	}

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	handler.Register(r, handlers, guard, identitySvc, auditSvc)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting",
		"addr", addr,
		"env", cfg.Env,
		"upstream", cfg.Upstream.BaseURL,
		"revocation", cfg.Revocation.Enabled,
		"audit", cfg.Audit.Enabled,
	)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}

func openAuditDatabase(cfg *config.Config, logr *zap.Logger) *sqlx.DB {
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect database", "error", err)
	}
	start := time.Now()
	if err := database.Migrate(db); err != nil {
		logr.Sugar().Fatalw("failed to apply migrations", "error", err)
	}
	logr.Sugar().Infow("audit schema ready", "duration", time.Since(start))
	return db
}
