package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/rewardledger-backend/internal/clock"
	"github.com/goodnatureofminers/rewardledger-backend/internal/ledger"
	"github.com/goodnatureofminers/rewardledger-backend/internal/metrics"
	"github.com/goodnatureofminers/rewardledger-backend/internal/pow"
	"github.com/goodnatureofminers/rewardledger-backend/internal/repository/clickhouse"
	"github.com/goodnatureofminers/rewardledger-backend/internal/service"
	"github.com/goodnatureofminers/rewardledger-backend/internal/storage"
	_ "github.com/goodnatureofminers/rewardledger-backend/internal/storage/bolt"
	_ "github.com/goodnatureofminers/rewardledger-backend/internal/storage/leveldb"
)

type config struct {
	ClickhouseDSN string `long:"clickhouse-dsn" env:"ARCHIVE_BACKFILL_CLICKHOUSE_DSN" description:"ClickHouse DSN"`
	StorageDriver string `long:"storage-driver" env:"ARCHIVE_BACKFILL_STORAGE_DRIVER" description:"ledger store driver (bolt, leveldb)" default:"bolt"`
	StoragePath   string `long:"storage-path" env:"ARCHIVE_BACKFILL_STORAGE_PATH" description:"ledger store location" default:"data/ledger.db"`
	Hasher        string `long:"hasher" env:"ARCHIVE_BACKFILL_HASHER" description:"proof-of-work digest the ledger was built with" default:"sha256"`
	Workers       int    `long:"workers" env:"ARCHIVE_BACKFILL_WORKERS" description:"parallel archive writers" default:"4"`
	ChunkSize     int    `long:"chunk-size" env:"ARCHIVE_BACKFILL_CHUNK_SIZE" description:"blocks per archive write" default:"500"`
	MetricsAddr   string `long:"metrics-addr" env:"ARCHIVE_BACKFILL_METRICS_ADDR" description:"address for metrics server" default:":2112"`
}

func main() {
	cfg := config{}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	if _, err := flags.ParseArgs(&cfg, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		logger.Fatal("failed to parse flags", zap.Error(err))
	}

	if cfg.ClickhouseDSN == "" {
		logger.Fatal("ClickHouse DSN is required")
	}

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("archive backfill failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	startMetricsServer(ctx, cfg.MetricsAddr, logger)

	hasher, err := pow.HasherByName(cfg.Hasher)
	if err != nil {
		return err
	}

	// the node holds an exclusive lock on bolt and leveldb stores, so it must be stopped first
	store, err := storage.Open(cfg.StorageDriver, cfg.StoragePath)
	if err != nil {
		return fmt.Errorf("open ledger store: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("failed to close ledger store", zap.Error(err))
		}
	}()

	clk := clock.New()
	source := ledger.NewService(store, pow.NewDigester(hasher), metrics.NewLedger(), clk, logger.Named("ledger"))

	repo, err := clickhouse.NewRepository(cfg.ClickhouseDSN, metrics.NewClickhouseRepository())
	if err != nil {
		return fmt.Errorf("init repository: %w", err)
	}
	defer func() {
		if err := repo.Close(); err != nil {
			logger.Error("failed to close repository", zap.Error(err))
		}
	}()

	archiveCfg := service.DefaultArchiveConfig()
	archiveCfg.Workers = cfg.Workers
	archiveCfg.ChunkSize = cfg.ChunkSize
	svc, err := service.NewArchiverService(repo, metrics.NewArchiver("backfill"), clk, archiveCfg, logger.Named("archiver"))
	if err != nil {
		return err
	}

	started := time.Now()
	archived, err := svc.Backfill(ctx, source)
	if err != nil {
		return err
	}
	logger.Info("backfill complete", zap.Int("blocks", archived), zap.Duration("elapsed", time.Since(started)))
	return nil
}

func startMetricsServer(ctx context.Context, addr string, logger *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("starting metrics server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", zap.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shutdown metrics server", zap.Error(err))
		}
	}()
}
