package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"frontdesk/config"
	"frontdesk/internal/cache"
	"frontdesk/internal/repository"
	"frontdesk/internal/service"
	"frontdesk/internal/transport/rest"
	"frontdesk/pkg/database"
	"frontdesk/pkg/logger"
)

func main() {
	log, err := logger.NewLogger()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatal("failed to load configuration", zap.Error(err))
	}

	db, err := database.NewPostgresDB(cfg.Postgres)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := database.RunMigrations(db, "./migrations", log); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}

	repos := repository.NewRepositories(db)

	dataCache := cache.New(cfg.Engine.StaticCacheTTL, cfg.Engine.AppointmentCacheTTL)

	// The coalesced refresh drops everything cached for the business so the
	// next call rebuilds from fresh configuration.
	coalescer := service.NewCoalescer(cfg.Engine.RefreshDelay, func(businessID string) {
		dataCache.Invalidate(businessID)
		log.Info("business configuration refreshed", zap.String("business_id", businessID))
	}, log)
	defer coalescer.Stop()

	services := service.NewServices(service.Deps{
		Repos:     repos,
		Cache:     dataCache,
		Coalescer: coalescer,
		Logger:    log,
		Config:    cfg,
	})

	handler := rest.NewHandler(services, log, cfg)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	handler.InitRoutes(router)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTP.Port,
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("failed to start server", zap.Error(err))
		}
	}()

	log.Info("server started", zap.String("addr", srv.Addr))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("failed to stop server", zap.Error(err))
	}

	log.Info("server stopped")
}
