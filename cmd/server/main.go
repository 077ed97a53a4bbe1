package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"golang.org/x/net/netutil"
	"golang.org/x/sync/errgroup"

	"sustaindash/internal/adapters/csvfile"
	httpadapter "sustaindash/internal/adapters/http"
	pg "sustaindash/internal/adapters/postgres"
	"sustaindash/internal/config"
	"sustaindash/internal/logging"
	"sustaindash/internal/ports"
	compsvc "sustaindash/internal/services/companies"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	logger, err := logging.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if err := cfg.ValidateServer(); err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
	logger.Info("server stopped")
}

func run(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	repo, closeRepo, err := openRepository(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeRepo()

	companies := compsvc.New(repo)
	srv := httpadapter.New(companies, logger, cfg.AllowedOrigins)
	r := chi.NewRouter()
	r.Mount("/", srv.Routes())

	ln, err := net.Listen("tcp", cfg.ListenAddr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", cfg.ListenAddr, err)
	}
	if cfg.MaxConns > 0 {
		ln = netutil.LimitListener(ln, cfg.MaxConns)
	}
	httpSrv := &http.Server{Handler: r, ReadHeaderTimeout: 10 * time.Second}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening", zap.String("addr", ln.Addr().String()), zap.Int("max_conns", cfg.MaxConns))
		if err := httpSrv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// openRepository prefers Postgres when DATABASE_URL is set and falls back to
// serving the CSV file from memory.
func openRepository(ctx context.Context, cfg config.Config, logger *zap.Logger) (ports.CompanyRepository, func(), error) {
	if cfg.DatabaseURL == "" {
		repo, err := csvfile.Open(cfg.CSVPath)
		if err != nil {
			return nil, nil, err
		}
		ids, _ := repo.ListEntityIDs(ctx)
		logger.Info("serving companies from csv", zap.String("path", cfg.CSVPath), zap.Int("records", len(ids)))
		return repo, func() {}, nil
	}

	db, err := pg.Connect(ctx, cfg.DatabaseURL, pg.PoolOptions{
		MaxConns:          cfg.DBMaxConns,
		HealthCheckPeriod: 30 * time.Second,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("db connect error: %w", err)
	}
	if err := db.Migrate(ctx); err != nil {
		db.Close()
		return nil, nil, err
	}
	var _ ports.CompanyRepository = db
	var _ ports.CompanyWriter = db

	if cfg.SeedFromCSV {
		src, err := csvfile.Open(cfg.CSVPath)
		if err != nil {
			db.Close()
			return nil, nil, err
		}
		n, err := db.UpsertRecords(ctx, src.Records())
		if err != nil {
			db.Close()
			return nil, nil, err
		}
		logger.Info("seeded companies from csv", zap.String("path", cfg.CSVPath), zap.Int("records", n))
	}
	logger.Info("serving companies from postgres")
	return db, db.Close, nil
}
