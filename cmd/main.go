package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"product-catalog-manager/internal/api"
	"product-catalog-manager/internal/catalog"
	"product-catalog-manager/internal/config"
	"product-catalog-manager/internal/domain"
	"product-catalog-manager/internal/logger"
	"product-catalog-manager/internal/session"
	"product-catalog-manager/internal/store"
	"product-catalog-manager/internal/view"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

const (
	healthServiceName = "catalog"
	requestTimeout    = 60 * time.Second
	shutdownTimeout   = 30 * time.Second
)

func main() {
	// A missing .env is fine: the environment may already be set.
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("FATAL: Error loading configuration: %v", err)
	}

	zl, err := logger.New(cfg.AppEnv, cfg.LogLevel)
	if err != nil {
		log.Fatalf("FATAL: Error building logger: %v", err)
	}
	defer logger.Sync(zl)

	if envErr != nil {
		zl.Info(".env file not found, relying on system environment")
	}
	zl.Info("configuration loaded", zap.String("app_env", cfg.AppEnv), zap.String("log_level", cfg.LogLevel))

	renderer, err := view.NewRenderer()
	if err != nil {
		zl.Fatal("failed to load page templates", zap.Error(err))
	}

	registry := session.NewRegistry(newCatalogFactory(cfg.Catalog, zl), cfg.Session.IdleTimeout, zl)
	httpAPIHandler := api.NewHTTPHandler(registry, renderer, api.Options{
		CookieName:    cfg.Session.CookieName,
		PreviewLength: cfg.Catalog.PreviewLength,
		Logger:        zl,
	})

	// --- Setup & Start HTTP Server ---
	httpRouter := chi.NewRouter()
	api.SetupBaseMiddleware(httpRouter, zl, requestTimeout)
	httpAPIHandler.RegisterRoutes(httpRouter)

	httpServer := &http.Server{
		Addr:         ":" + cfg.HttpServer.Port,
		Handler:      httpRouter,
		ReadTimeout:  cfg.HttpServer.TimeoutRead,
		WriteTimeout: cfg.HttpServer.TimeoutWrite,
		IdleTimeout:  cfg.HttpServer.TimeoutIdle,
	}

	go func() {
		zl.Info("HTTP server listening", zap.String("port", cfg.HttpServer.Port))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("HTTP server ListenAndServe error", zap.Error(err))
		}
		zl.Info("HTTP server has stopped")
	}()

	// --- Setup & Start gRPC Health Server ---
	var grpcServer *grpc.Server
	var healthServer *health.Server
	if cfg.GrpcServer.Enabled {
		grpcServer, healthServer = setupGRPCServer(zl)
		grpcListener, err := net.Listen("tcp", ":"+cfg.GrpcServer.Port)
		if err != nil {
			zl.Fatal("failed to listen for gRPC", zap.String("port", cfg.GrpcServer.Port), zap.Error(err))
		}
		go func() {
			zl.Info("gRPC server listening", zap.String("port", cfg.GrpcServer.Port))
			if err := grpcServer.Serve(grpcListener); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
				zl.Fatal("gRPC server Serve error", zap.Error(err))
			}
			zl.Info("gRPC server has stopped")
		}()
	}

	waitForShutdown(zl, httpServer, grpcServer, healthServer)
	zl.Info("service shutdown sequence finished")
}

// newCatalogFactory builds a fresh controller for every new session.
func newCatalogFactory(cfg config.CatalogConfig, zl *zap.Logger) session.Factory {
	validate := validator.New()
	return func() (*catalog.Controller, error) {
		var seed []domain.Product
		if cfg.SeedEnabled {
			seed = domain.SampleProducts()
		}
		products, err := store.NewMemoryStore(seed)
		if err != nil {
			return nil, fmt.Errorf("seed catalog: %w", err)
		}
		return catalog.NewController(products, catalog.Options{
			Logger:   zl.Named("catalog"),
			Validate: validate,
		}), nil
	}
}

func setupGRPCServer(zl *zap.Logger) (*grpc.Server, *health.Server) {
	s := grpc.NewServer()

	// Register gRPC Health Checking Protocol service.
	healthServer := health.NewServer()
	healthServer.SetServingStatus(healthServiceName, grpc_health_v1.HealthCheckResponse_SERVING)
	grpc_health_v1.RegisterHealthServer(s, healthServer)
	zl.Info("gRPC health check service registered", zap.String("service", healthServiceName))

	// Enable gRPC server reflection (useful for tools like grpcurl).
	reflection.Register(s)

	return s, healthServer
}

func waitForShutdown(zl *zap.Logger, httpServer *http.Server, grpcServer *grpc.Server, healthServer *health.Server) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	receivedSignal := <-sigChan
	zl.Info("received signal, starting graceful shutdown", zap.String("signal", receivedSignal.String()))

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()

	stoppedGrpc := make(chan struct{})
	if grpcServer != nil {
		healthServer.Shutdown()
		go func() {
			grpcServer.GracefulStop()
			close(stoppedGrpc)
		}()
	} else {
		close(stoppedGrpc)
	}

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zl.Warn("HTTP server graceful shutdown failed", zap.Error(err))
	} else {
		zl.Info("HTTP server gracefully shut down")
	}

	select {
	case <-stoppedGrpc:
	case <-shutdownCtx.Done():
		if grpcServer != nil {
			zl.Warn("gRPC server graceful shutdown timed out, forcing stop", zap.Error(shutdownCtx.Err()))
			grpcServer.Stop()
		}
	}
}
