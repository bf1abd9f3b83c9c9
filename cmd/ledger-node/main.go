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

	"github.com/google/uuid"
	grpcMiddleware "github.com/grpc-ecosystem/go-grpc-middleware"
	grpcZap "github.com/grpc-ecosystem/go-grpc-middleware/logging/zap"
	grpcRecovery "github.com/grpc-ecosystem/go-grpc-middleware/recovery"
	grpcCtxTags "github.com/grpc-ecosystem/go-grpc-middleware/tags"
	grpcPrometheus "github.com/grpc-ecosystem/go-grpc-prometheus"
	gwruntime "github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/goodnatureofminers/rewardledger-backend/internal/blocktemplate"
	"github.com/goodnatureofminers/rewardledger-backend/internal/clock"
	"github.com/goodnatureofminers/rewardledger-backend/internal/ledger"
	"github.com/goodnatureofminers/rewardledger-backend/internal/metrics"
	"github.com/goodnatureofminers/rewardledger-backend/internal/miner"
	"github.com/goodnatureofminers/rewardledger-backend/internal/pow"
	"github.com/goodnatureofminers/rewardledger-backend/internal/repository/clickhouse"
	"github.com/goodnatureofminers/rewardledger-backend/internal/service"
	"github.com/goodnatureofminers/rewardledger-backend/internal/storage"
	_ "github.com/goodnatureofminers/rewardledger-backend/internal/storage/bolt"
	_ "github.com/goodnatureofminers/rewardledger-backend/internal/storage/leveldb"
	_ "github.com/goodnatureofminers/rewardledger-backend/internal/storage/memory"
	"github.com/goodnatureofminers/rewardledger-backend/internal/transport"
	"github.com/goodnatureofminers/rewardledger-backend/internal/validator"
)

type config struct {
	Addr     string `long:"addr" env:"LEDGER_NODE_ADDR" description:"grpc addr" default:":8000"`
	RestAddr string `long:"rest-addr" env:"LEDGER_NODE_REST_ADDR" description:"rest addr" default:":8001"`

	StorageDriver string `long:"storage-driver" env:"LEDGER_NODE_STORAGE_DRIVER" description:"ledger store driver (memory, bolt, leveldb)" default:"bolt"`
	StoragePath   string `long:"storage-path" env:"LEDGER_NODE_STORAGE_PATH" description:"ledger store location" default:"data/ledger.db"`
	ClickhouseDSN string `long:"clickhouse-dsn" env:"LEDGER_NODE_CLICKHOUSE_DSN" description:"ClickHouse DSN; archiving is off when empty"`

	Hasher           string        `long:"hasher" env:"LEDGER_NODE_HASHER" description:"proof-of-work digest" default:"sha256"`
	BaseDifficulty   int           `long:"base-difficulty" env:"LEDGER_NODE_BASE_DIFFICULTY" description:"leading zero hex digits required by default" default:"4"`
	RetargetInterval int           `long:"retarget-interval" env:"LEDGER_NODE_RETARGET_INTERVAL" description:"blocks per difficulty window" default:"10"`
	TargetBlockTime  time.Duration `long:"target-block-time" env:"LEDGER_NODE_TARGET_BLOCK_TIME" description:"desired mean time between blocks" default:"10m"`
	MaxNonce         uint64        `long:"max-nonce" env:"LEDGER_NODE_MAX_NONCE" description:"exclusive nonce bound" default:"1000000"`
	FreshnessWindow  time.Duration `long:"freshness-window" env:"LEDGER_NODE_FRESHNESS_WINDOW" description:"maximum block age on submission" default:"1h"`
	MaxFutureSkew    time.Duration `long:"max-future-skew" env:"LEDGER_NODE_MAX_FUTURE_SKEW" description:"how far ahead of the local clock a block may be dated" default:"2m"`

	Mine        bool          `long:"mine" env:"LEDGER_NODE_MINE" description:"run the built-in miner"`
	MinerID     string        `long:"miner-id" env:"LEDGER_NODE_MINER_ID" description:"miner id recorded in mined blocks; random when empty"`
	TemplateTTL time.Duration `long:"template-ttl" env:"LEDGER_NODE_TEMPLATE_TTL" description:"how long one template is mined before rebuilding" default:"5m"`

	ArchiveBatchSize     int           `long:"archive-batch-size" env:"LEDGER_NODE_ARCHIVE_BATCH_SIZE" description:"blocks per archive write" default:"100"`
	ArchiveFlushInterval time.Duration `long:"archive-flush-interval" env:"LEDGER_NODE_ARCHIVE_FLUSH_INTERVAL" description:"maximum delay before queued blocks are archived" default:"5s"`
	ArchiveFlushRate     int           `long:"archive-flush-rate" env:"LEDGER_NODE_ARCHIVE_FLUSH_RATE" description:"archive writes per second, 0 for unlimited" default:"10"`
	ArchiveRepairEvery   time.Duration `long:"archive-repair-interval" env:"LEDGER_NODE_ARCHIVE_REPAIR_INTERVAL" description:"how often lost archive writes are backfilled" default:"1m"`

	LogJSON bool `long:"log-json" env:"LEDGER_NODE_LOG_JSON" description:"production json logging"`
}

func main() {
	cfg := config{}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if _, err := flags.ParseArgs(&cfg, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		panic("failed to parse flags: " + err.Error())
	}

	logger, err := newLogger(cfg.LogJSON)
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()
	grpcZap.ReplaceGrpcLoggerV2(logger)

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("ledger node failed", zap.Error(err))
	}
}

func newLogger(json bool) (*zap.Logger, error) {
	if json {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	clk := clock.New()

	hasher, err := pow.HasherByName(cfg.Hasher)
	if err != nil {
		return err
	}
	digester := pow.NewDigester(hasher)

	store, err := storage.Open(cfg.StorageDriver, cfg.StoragePath)
	if err != nil {
		return fmt.Errorf("open ledger store: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("failed to close ledger store", zap.Error(err))
		}
	}()

	ledgerSvc := ledger.NewService(store, digester, metrics.NewLedger(), clk, logger.Named("ledger"))
	genesis, err := ledgerSvc.EnsureGenesis(ctx)
	if err != nil {
		return fmt.Errorf("ensure genesis: %w", err)
	}
	logger.Info("ledger ready", zap.String("genesis", genesis.Hash), zap.String("driver", cfg.StorageDriver))

	minerID := cfg.MinerID
	if minerID == "" {
		minerID = uuid.NewString()
	}
	builder, err := blocktemplate.NewBuilder(blocktemplate.Config{
		BaseDifficulty:   cfg.BaseDifficulty,
		RetargetInterval: cfg.RetargetInterval,
		TargetBlockTime:  cfg.TargetBlockTime,
		MinerMetadata:    map[string]string{"id": minerID},
	}, clk, logger.Named("blocktemplate"))
	if err != nil {
		return fmt.Errorf("init template builder: %w", err)
	}

	v := validator.New(digester, metrics.NewValidator(), clk, validator.Config{
		MaxNonce:        cfg.MaxNonce,
		FreshnessWindow: cfg.FreshnessWindow,
		MaxFutureSkew:   cfg.MaxFutureSkew,
	}, logger.Named("validator"))

	submitter, err := service.NewSubmissionService(v, builder, ledgerSvc, metrics.NewSubmission(), logger.Named("submission"))
	if err != nil {
		return err
	}

	if cfg.ClickhouseDSN != "" {
		repo, err := clickhouse.NewRepository(cfg.ClickhouseDSN, metrics.NewClickhouseRepository())
		if err != nil {
			return fmt.Errorf("init repository: %w", err)
		}
		defer func() {
			if err := repo.Close(); err != nil {
				logger.Error("failed to close repository", zap.Error(err))
			}
		}()
		archiver, err := newArchiver(repo, cfg, clk, logger)
		if err != nil {
			return err
		}
		archiver.Start(ctx)
		defer archiver.Stop()
		unsubscribe := ledgerSvc.Subscribe(archiver.Listener)
		defer unsubscribe()
		go func() {
			if err := archiver.Repair(ctx, ledgerSvc); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("archive repair stopped", zap.Error(err))
			}
		}()
	}

	var stats transport.MinerStats
	if cfg.Mine {
		engine := miner.NewEngine(digester, metrics.NewMiner(hasher.Name()), clk, miner.DefaultConfig(), logger.Named("miner"))
		stats = engine
		mining, err := service.NewMiningService(ledgerSvc, builder, engine, submitter, clk, service.MiningConfig{
			TemplateTTL: cfg.TemplateTTL,
			MaxNonce:    cfg.MaxNonce,
		}, logger.Named("mining"))
		if err != nil {
			return err
		}
		go func() {
			if err := mining.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("mining stopped", zap.Error(err))
			}
		}()
		logger.Info("mining enabled", zap.String("miner_id", minerID), zap.String("hasher", hasher.Name()))
	}

	if err := startGRPCServer(ctx, cfg.Addr, logger); err != nil {
		return err
	}

	gw := gwruntime.NewServeMux()
	handler := transport.NewLedgerHandler(ledgerSvc, builder, submitter, stats, logger.Named("transport"))
	if err := handler.Register(gw); err != nil {
		return fmt.Errorf("register ledger handler: %w", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/", gw)
	mux.Handle("/metrics", promhttp.Handler())

	s := &http.Server{
		Addr:              cfg.RestAddr,
		Handler:           cors.Default().Handler(mux),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    http.DefaultMaxHeaderBytes,
	}
	go func() {
		<-ctx.Done()
		logger.Info("Shutting down the http server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.Shutdown(shutdownCtx); err != nil {
			logger.Error("Failed to shutdown http server", zap.Error(err))
		}
	}()

	logger.Info("Starting HTTP server", zap.String("addr", cfg.RestAddr))
	if err := s.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listen and serve: %w", err)
	}
	return nil
}

func newArchiver(repo *clickhouse.Repository, cfg config, clk clock.Clock, logger *zap.Logger) (*service.ArchiverService, error) {
	archiveCfg := service.DefaultArchiveConfig()
	archiveCfg.BatchSize = cfg.ArchiveBatchSize
	archiveCfg.FlushInterval = cfg.ArchiveFlushInterval
	archiveCfg.FlushesPerSecond = cfg.ArchiveFlushRate
	archiveCfg.RepairInterval = cfg.ArchiveRepairEvery
	return service.NewArchiverService(repo, metrics.NewArchiver("live"), clk, archiveCfg, logger.Named("archiver"))
}

// startGRPCServer serves the health service behind the standard interceptor chain.
func startGRPCServer(ctx context.Context, addr string, logger *zap.Logger) error {
	chain := []grpc.UnaryServerInterceptor{
		grpcRecovery.UnaryServerInterceptor(),
		grpcCtxTags.UnaryServerInterceptor(),
		grpcPrometheus.UnaryServerInterceptor,
		grpcZap.UnaryServerInterceptor(logger),
	}
	grpcServer := grpc.NewServer(
		grpc.UnaryInterceptor(grpcMiddleware.ChainUnaryServer(chain...)),
	)
	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	grpcPrometheus.EnableHandlingTimeHistogram()
	grpcPrometheus.Register(grpcServer)

	socket, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("net.Listen: %w", err)
	}
	go func() {
		if serveErr := grpcServer.Serve(socket); serveErr != nil {
			logger.Error("GRPC server stopped", zap.Error(serveErr))
		}
	}()
	go func() {
		<-ctx.Done()
		logger.Info("Shutting down gRPC server")
		healthServer.Shutdown()
		grpcServer.GracefulStop()
	}()
	return nil
}
