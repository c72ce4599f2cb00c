package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/fuzumoe/linktorch-search/configs"
	_ "github.com/fuzumoe/linktorch-search/docs"
	"github.com/fuzumoe/linktorch-search/internal/crawler"
	"github.com/fuzumoe/linktorch-search/internal/fetcher"
	"github.com/fuzumoe/linktorch-search/internal/handler"
	"github.com/fuzumoe/linktorch-search/internal/logger"
	"github.com/fuzumoe/linktorch-search/internal/repository"
	"github.com/fuzumoe/linktorch-search/internal/server"
	"github.com/fuzumoe/linktorch-search/internal/service"
)

const (
	serviceName     = "linktorch-search"
	shutdownTimeout = 10 * time.Second
)

// hookable functions for dependency injection
var (
	LoadConfig = configs.Load
	NewDB      = repository.NewDB
	MigrateDB  = repository.Migrate
	NewLogger  = logger.New
	Reconcile  = func(s service.SearchService) (int, int, error) { return s.Recover() }
)

// Run loads config, opens DB, runs migrations, then serves the API and the
// search pool until the process is signalled or the server fails.
func Run() error {
	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("config load error: %w", err)
	}

	log, err := NewLogger(cfg.LogLevel, cfg.ServerMode)
	if err != nil {
		return fmt.Errorf("logger init error: %w", err)
	}
	defer func() { _ = log.Sync() }()

	db, err := NewDB(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("db init error: %w", err)
	}

	if err := MigrateDB(db); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	searchRepo := repository.NewSearchRepo(db)
	resultRepo := repository.NewSearchResultRepo(db)
	registry := crawler.NewRegistry()

	pool := crawler.New(crawler.Deps{
		Searches: searchRepo,
		Results:  resultRepo,
		Fetcher: fetcher.New(fetcher.Options{
			UserAgent:     cfg.UserAgent,
			Timeout:       cfg.CrawlTimeout,
			RespectRobots: cfg.RespectRobots,
			HostRate:      cfg.HostRateLimit,
			HostBurst:     cfg.HostRateBurst,
		}),
		Registry: registry,
		Logger:   log.Named("crawler"),
	}, cfg.MaxConcurrentSearches, cfg.SearchQueueSize)

	searchSvc := service.NewSearchService(searchRepo, resultRepo, pool, registry)
	requeued, failed, err := Reconcile(searchSvc)
	if err != nil {
		return fmt.Errorf("recover error: %w", err)
	}
	if requeued+failed > 0 {
		log.Info("recovered unfinished searches", zap.Int("requeued", requeued), zap.Int("failed", failed))
	}

	healthSvc := service.NewHealthService(db, serviceName, registry.Len)
	tokenSvc := service.NewTokenService(cfg.JWTSecret, 0)

	if cfg.ServerMode != "" {
		gin.SetMode(cfg.ServerMode)
	}
	router := gin.New()
	server.RegisterRoutes(router,
		server.Options{Logger: log.Named("http"), Tokens: tokenSvc, CORSOrigins: cfg.CORSOrigins},
		[]server.RouteRegistrar{handler.NewHealthHandler(healthSvc)},
		[]server.RouteRegistrar{handler.NewSearchHandler(searchSvc)},
	)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		pool.Start(gctx)
		return nil
	})
	g.Go(func() error {
		defer cancel()
		log.Info("listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, done := context.WithTimeout(context.Background(), shutdownTimeout)
		defer done()
		return srv.Shutdown(shutdownCtx)
	})

	err = g.Wait()
	log.Info("shut down", zap.Error(err))
	return err
}
