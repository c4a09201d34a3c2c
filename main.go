package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"artmarket/config"
	"artmarket/database"
	routes "artmarket/internal/app/http"
	"artmarket/internal/platform/logger"
	"artmarket/internal/platform/tracing"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("❌ Failed to load config:", err)
	}

	logg, err := logger.New(cfg.Environment)
	if err != nil {
		log.Fatal("❌ Failed to init logger:", err)
	}
	defer logg.Sync()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()
	shutdownTracing, err := tracing.Init(ctx, logg, cfg.AppName, cfg.Environment, cfg.Tracing)
	if err != nil {
		logg.Fatal("tracing init failed", "error", err)
	}

	db, err := database.Open(cfg, logg)
	if err != nil {
		logg.Fatal("database init failed", "error", err)
	}

	r := routes.NewEngine(routes.Deps{DB: db, Log: logg, Config: cfg})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logg.Info("server listening", "addr", srv.Addr, "environment", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Fatal("server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logg.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logg.Error("server shutdown failed", "error", err)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		logg.Error("tracing shutdown failed", "error", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
