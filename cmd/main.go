// File: category-catalog-service/cmd/main.go
package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"category-catalog-service/internal/api"
	"category-catalog-service/internal/config"
	"category-catalog-service/internal/logger"
	"category-catalog-service/internal/service"
	"category-catalog-service/internal/store"
)

const (
	defaultAppName = "CategoryCatalogService"
)

// productSource bundles what main needs from whichever product source is configured.
type productSource struct {
	source store.ProductSource
	pinger store.Pinger
	close  func() error
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("INFO: No .env file found or failed to load, relying on system environment")
	}

	// --- Configuration Loading ---
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("FATAL: Error loading configuration: %v", err)
	}

	zlog, err := logger.New(cfg.AppEnv, cfg.LogLevel)
	if err != nil {
		log.Fatalf("FATAL: %v", err)
	}
	defer func() { _ = zlog.Sync() }()
	zlog = zlog.With(zap.String("service", defaultAppName))
	zlog.Info("configuration loaded",
		zap.String("app_env", cfg.AppEnv),
		zap.String("log_level", cfg.LogLevel),
		zap.String("product_source", cfg.ProductSource),
	)

	// --- Data Sources ---
	categoryStore := store.NewMemoryStore()
	products, err := openProductSource(cfg, categoryStore, zlog)
	if err != nil {
		zlog.Fatal("failed to open product source", zap.Error(err))
	}

	categoryService := service.NewCategoryService(categoryStore, products.source, zlog.Named("service"))
	pagination := api.PaginationOptions{
		DefaultPerPage: cfg.Pagination.DefaultPerPage,
		MaxPerPage:     cfg.Pagination.MaxPerPage,
	}

	// --- Initialize API Handlers ---
	httpAPIHandler := api.NewHTTPHandler(categoryService, pagination, zlog.Named("http"))
	grpcAPIHandler := api.NewGRPCHandler(categoryService, pagination, zlog.Named("grpc"))

	// --- Setup & Start HTTP Server ---
	httpRouter := chi.NewRouter()
	setupBaseMiddleware(httpRouter, zlog)
	httpRouter.Get(api.HealthPath, api.HealthHandler(defaultAppName, products.pinger, zlog))
	httpAPIHandler.RegisterRoutes(httpRouter)

	httpServer := &http.Server{
		Addr:         ":" + cfg.HttpServer.Port,
		Handler:      httpRouter,
		ReadTimeout:  cfg.HttpServer.TimeoutRead,
		WriteTimeout: cfg.HttpServer.TimeoutWrite,
		IdleTimeout:  cfg.HttpServer.TimeoutIdle,
	}

	go func() {
		zlog.Info("HTTP server listening", zap.String("port", cfg.HttpServer.Port))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("HTTP server ListenAndServe error", zap.Error(err))
		}
		zlog.Info("HTTP server has stopped")
	}()

	// --- Setup & Start gRPC Server ---
	grpcServer := setupGRPCServer(zlog, grpcAPIHandler)
	grpcListener, err := net.Listen("tcp", ":"+cfg.GrpcServer.Port)
	if err != nil {
		zlog.Fatal("failed to listen for gRPC", zap.String("port", cfg.GrpcServer.Port), zap.Error(err))
	}

	go func() {
		zlog.Info("gRPC server listening", zap.String("port", cfg.GrpcServer.Port))
		if err := grpcServer.Serve(grpcListener); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			zlog.Fatal("gRPC server Serve error", zap.Error(err))
		}
		zlog.Info("gRPC server has stopped")
	}()

	// --- Graceful Shutdown ---
	shutdownComplete := make(chan struct{})
	go waitForShutdown(zlog, httpServer, grpcServer, products.close, shutdownComplete)

	<-shutdownComplete
	zlog.Info("service shutdown sequence finished")
}

func openProductSource(cfg *config.Config, mem *store.MemoryStore, zlog *zap.Logger) (*productSource, error) {
	if cfg.ProductSource != config.ProductSourcePostgres {
		zlog.Info("serving built-in products from memory")
		return &productSource{source: mem, close: func() error { return nil }}, nil
	}

	db, err := sql.Open("postgres", cfg.Postgres.DSN())
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	zlog.Info("database connection established", zap.String("host", cfg.Postgres.Host), zap.String("dbname", cfg.Postgres.DBName))

	pg := store.NewPostgresStore(db)
	return &productSource{source: pg, pinger: pg, close: pg.Close}, nil
}

func setupBaseMiddleware(router *chi.Mux, zlog *zap.Logger) {
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(api.AccessLogger(zlog.Named("access")))
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(60 * time.Second))
	zlog.Debug("base HTTP middleware registered")
}

func setupGRPCServer(zlog *zap.Logger, grpcAPIHandler *api.GRPCHandler) *grpc.Server {
	s := grpc.NewServer(grpc.ChainUnaryInterceptor(
		api.UnaryRecoveryInterceptor(zlog),
		api.UnaryLoggingInterceptor(zlog.Named("grpc")),
	))

	api.RegisterCategoryServiceServer(s, grpcAPIHandler)

	healthServer := health.NewServer()
	healthServer.SetServingStatus(api.CategoryServiceName, grpc_health_v1.HealthCheckResponse_SERVING)
	grpc_health_v1.RegisterHealthServer(s, healthServer)

	// Enable gRPC server reflection (useful for tools like grpcurl).
	reflection.Register(s)
	zlog.Debug("gRPC services registered", zap.String("service", api.CategoryServiceName))

	return s
}

func waitForShutdown(
	zlog *zap.Logger,
	httpServer *http.Server,
	grpcServer *grpc.Server,
	closeSource func() error,
	shutdownComplete chan struct{},
) {
	defer close(shutdownComplete)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	receivedSignal := <-sigChan
	zlog.Info("starting graceful shutdown", zap.String("signal", receivedSignal.String()))

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelShutdown()

	stoppedGrpc := make(chan struct{})
	go func() {
		grpcServer.GracefulStop()
		close(stoppedGrpc)
	}()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zlog.Warn("HTTP server graceful shutdown failed", zap.Error(err))
	} else {
		zlog.Info("HTTP server gracefully shut down")
	}

	select {
	case <-stoppedGrpc:
		zlog.Info("gRPC server gracefully shut down")
	case <-shutdownCtx.Done():
		zlog.Warn("gRPC server graceful shutdown timed out, forcing stop", zap.Error(shutdownCtx.Err()))
		grpcServer.Stop()
	}

	if err := closeSource(); err != nil {
		zlog.Warn("error closing product source", zap.Error(err))
	}

	zlog.Info("graceful shutdown sequence completed")
}
