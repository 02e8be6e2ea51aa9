package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	grpchealth "google.golang.org/grpc/health"
	"google.golang.org/grpc/reflection"

	"github.com/dtroode/taskmanager-server/internal/api/grpc/health"
	grpcrouter "github.com/dtroode/taskmanager-server/internal/api/grpc/router"
	grpcserver "github.com/dtroode/taskmanager-server/internal/api/grpc/server"
	httpctx "github.com/dtroode/taskmanager-server/internal/api/http/context"
	"github.com/dtroode/taskmanager-server/internal/api/http/cookie"
	"github.com/dtroode/taskmanager-server/internal/api/http/router"
	httpserver "github.com/dtroode/taskmanager-server/internal/api/http/server"
	"github.com/dtroode/taskmanager-server/internal/config"
	"github.com/dtroode/taskmanager-server/internal/logger"
	"github.com/dtroode/taskmanager-server/internal/metrics"
	"github.com/dtroode/taskmanager-server/internal/model"
	"github.com/dtroode/taskmanager-server/internal/password"
	"github.com/dtroode/taskmanager-server/internal/repository/postgres"
	"github.com/dtroode/taskmanager-server/internal/server"
	"github.com/dtroode/taskmanager-server/internal/service"
	storage "github.com/dtroode/taskmanager-server/internal/storage/minio"
	"github.com/dtroode/taskmanager-server/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	userRepo := postgres.NewUserRepository(db)
	taskRepo := postgres.NewTaskRepository(db)

	// ledger must stay a nil interface when disabled
	var ledger model.RefreshTokenStore
	if cfg.Auth.RefreshLedger {
		ledger = postgres.NewRefreshTokenRepository(db)
	}

	tokenManager := token.NewManager(token.NewJWT(), token.ManagerConfig{
		AccessSecret:  cfg.JWT.AccessSecret,
		RefreshSecret: cfg.JWT.RefreshSecret,
		AccessTTL:     cfg.JWT.AccessTTL,
		RefreshTTL:    cfg.JWT.RefreshTTL,
	})
	tokenService := service.NewTokenService(tokenManager, ledger, logger)
	authService := service.NewAuth(userRepo, password.NewHasher(cfg.Auth.BcryptCost), tokenService, logger)
	taskService := service.NewTask(taskRepo, userRepo, logger)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	collector := metrics.NewCollector(registry)

	var assets model.AssetStore
	if cfg.Storage.Enabled {
		assetStore, err := storage.NewAssetStore(ctx, cfg.Storage)
		if err != nil {
			logger.Fatal("failed to initialize asset storage", "error", err)
		}
		assets = assetStore
	}

	jar := cookie.NewJar(cookie.Config{
		Secure:     cfg.SecureCookies(),
		Domain:     cfg.Cookie.Domain,
		AccessTTL:  cfg.JWT.AccessTTL,
		RefreshTTL: cfg.JWT.RefreshTTL,
	})

	handler := router.New(router.Params{
		AuthService:    authService,
		TaskService:    taskService,
		AssetStore:     assets,
		ContextManager: httpctx.NewManager(),
		Cookies:        jar,
		Metrics:        collector,
		Gatherer:       registry,
		BasePath:       cfg.HTTP.BasePath,
		HSTS:           cfg.HTTP.EnableHTTPS,
	}, logger).Register()

	httpServer := httpserver.NewHTTPServer(handler, fmt.Sprintf(":%s", cfg.HTTP.Port), cfg.HTTP.ReadTimeout, cfg.HTTP.WriteTimeout)

	healthServer := grpchealth.NewServer()
	healthGRPC := registerHealthServer(healthServer, logger, fmt.Sprintf(":%s", cfg.Health.Port))
	watcher := health.NewWatcher(db, healthServer, cfg.Health.CheckInterval, logger)

	var wg sync.WaitGroup
	startServer(&wg, logger, httpServer, server.NewSecurityLayer(cfg.HTTP))
	startServer(&wg, logger, healthGRPC, server.NewPlainListener())

	wg.Add(2)
	go func() {
		defer wg.Done()
		watcher.Run(ctx)
	}()
	go func() {
		defer wg.Done()
		tokenService.RunLedgerJanitor(ctx, cfg.Auth.JanitorPeriod)
	}()

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	for _, s := range []model.Server{httpServer, healthGRPC} {
		if err := s.Stop(shutdownCtx); err != nil {
			logger.Error("error during server shutdown", "error", err, "address", s.Address())
		}
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}

func startServer(wg *sync.WaitGroup, logger *logger.Logger, s model.Server, sl model.SecurityLayer) {
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := s.Start(sl); err != nil {
			logger.Error("failed to start server", "error", err)
		}
	}()
	logger.Info("starting server", "address", s.Address())
}

func registerHealthServer(healthServer *grpchealth.Server, logger *logger.Logger, addr string) *grpcserver.GRPCServer {
	s := grpcrouter.New(healthServer, logger).Register()

	reflection.Register(s)

	return grpcserver.NewGRPCServer(s, addr)
}
