package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dpointtt/sun-class-app/internal/stubapi"
	"github.com/dpointtt/sun-class-app/pkg/config"
	"github.com/dpointtt/sun-class-app/pkg/logger"
	reqidmiddleware "github.com/dpointtt/sun-class-app/pkg/middleware/requestid"
	"github.com/dpointtt/sun-class-app/pkg/storage"
)

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
		logr.Sugar().Fatalw("stub api is for local development only", "env", cfg.Env)
	}

	blobs, err := storage.NewLocalStorage(cfg.Stub.StorageDir)
	if err != nil {
		logr.Sugar().Fatalw("failed to prepare storage", "dir", cfg.Stub.StorageDir, "error", err)
	}

	r := stubapi.NewRouter(stubapi.Options{
		JWTSecret:         cfg.Stub.JWTSecret,
		TokenTTL:          cfg.Stub.TokenTTL,
		CookieName:        cfg.Upstream.AuthCookieName,
		AllowCancelGraded: cfg.Stub.AllowCancelGraded,
		Storage:           blobs,
		Logger:            logr,
	}, reqidmiddleware.Middleware(), logger.GinMiddleware(logr))
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	addr := fmt.Sprintf(":%d", cfg.Stub.Port)
	logr.Sugar().Infow("stub api starting", "addr", addr, "allow_cancel_graded", cfg.Stub.AllowCancelGraded)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("stub api failed", "error", err)
	}
}
