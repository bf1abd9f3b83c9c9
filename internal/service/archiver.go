package service

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/rewardledger-backend/internal/clock"
	"github.com/goodnatureofminers/rewardledger-backend/internal/model"
	"github.com/goodnatureofminers/rewardledger-backend/pkg/batcher"
	"github.com/goodnatureofminers/rewardledger-backend/pkg/workerpool"
)

// ArchiveConfig sizes archive writes.
type ArchiveConfig struct {
	BatchSize        int
	FlushInterval    time.Duration
	FlushesPerSecond int
	// Workers and ChunkSize only apply to Backfill.
	Workers   int
	ChunkSize int
	// QueueTimeout bounds how long Listener waits for room in the queue.
	QueueTimeout time.Duration
	// RepairInterval is how often Repair re-runs Backfill to fill gaps.
	RepairInterval time.Duration
}

// DefaultArchiveConfig returns the stock archive settings.
func DefaultArchiveConfig() ArchiveConfig {
	return ArchiveConfig{
		BatchSize:        100,
		FlushInterval:    5 * time.Second,
		FlushesPerSecond: 10,
		Workers:          4,
		ChunkSize:        500,
		QueueTimeout:     5 * time.Second,
		RepairInterval:   time.Minute,
	}
}

// ArchiverService copies accepted blocks and their transactions into the
// analytics archive. Live blocks arrive through Listener; Backfill catches
// the archive up with a ledger snapshot and Repair keeps doing so whenever
// a live write was lost.
type ArchiverService struct {
	repo    ArchiveRepository
	metrics ArchiverMetrics
	clk     clock.Clock
	cfg     ArchiveConfig
	logger  *zap.Logger
	batcher *batcher.Batcher[model.Block]

	// needsRepair is set when a live block was dropped or failed to write.
	needsRepair atomic.Bool
}

// NewArchiverService builds an ArchiverService. A nil clock means the wall clock.
func NewArchiverService(
	repo ArchiveRepository,
	metrics ArchiverMetrics,
	clk clock.Clock,
	cfg ArchiveConfig,
	logger *zap.Logger,
) (*ArchiverService, error) {
	if repo == nil {
		return nil, errors.New("archive repository is required")
	}
	if metrics == nil {
		return nil, errors.New("archiver metrics is required")
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if cfg.ChunkSize < 1 {
		cfg.ChunkSize = DefaultArchiveConfig().ChunkSize
	}
	if cfg.QueueTimeout <= 0 {
		cfg.QueueTimeout = DefaultArchiveConfig().QueueTimeout
	}
	if cfg.RepairInterval <= 0 {
		cfg.RepairInterval = DefaultArchiveConfig().RepairInterval
	}
	if clk == nil {
		clk = clock.New()
	}
	s := &ArchiverService{
		repo:    repo,
		metrics: metrics,
		clk:     clk,
		cfg:     cfg,
		logger:  logger,
	}
	s.batcher = batcher.New[model.Block](
		logger.Named("blockBatcher"),
		s.flushLive,
		batcher.Config{
			Size:             cfg.BatchSize,
			Interval:         cfg.FlushInterval,
			FlushesPerSecond: cfg.FlushesPerSecond,
		},
		clk,
	)
	return s, nil
}

// Start begins flushing live blocks.
func (s *ArchiverService) Start(ctx context.Context) {
	s.batcher.Start(ctx)
}

// Stop flushes queued blocks and stops.
func (s *ArchiverService) Stop() {
	s.batcher.Stop()
}

// Listener queues every accepted block for archiving. The caller's
// cancellation does not apply; waiting for queue room is bounded by
// QueueTimeout. A block that cannot be queued is left for Repair.
func (s *ArchiverService) Listener(ctx context.Context, block model.Block) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.QueueTimeout)
	defer cancel()

	if err := s.batcher.Add(ctx, block); err != nil {
		s.needsRepair.Store(true)
		s.logger.Warn("block not queued for archive", zap.Uint64("index", block.Index), zap.Error(err))
	}
}

// Repair runs Backfill against source once at start and then on every
// RepairInterval tick after a live write was lost. It returns when ctx is done.
func (s *ArchiverService) Repair(ctx context.Context, source StateSource) error {
	ticker := s.clk.Ticker(s.cfg.RepairInterval)
	defer ticker.Stop()

	s.needsRepair.Store(true)
	for {
		if s.needsRepair.Swap(false) {
			n, err := s.Backfill(ctx, source)
			switch {
			case err != nil && ctx.Err() != nil:
				return ctx.Err()
			case err != nil:
				s.needsRepair.Store(true)
				s.logger.Warn("archive repair failed", zap.Error(err))
			case n > 0:
				s.logger.Info("archive repaired", zap.Int("blocks", n))
			}
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Backfill archives every block of the ledger snapshot above the highest
// archived index together with any block missing below it.
func (s *ArchiverService) Backfill(ctx context.Context, source StateSource) (int, error) {
	state, err := source.State(ctx)
	if err != nil {
		return 0, err
	}

	maxIndex, exists, err := s.repo.MaxBlockIndex(ctx)
	if err != nil {
		return 0, err
	}

	missing := state.Blocks
	if exists {
		gaps, err := s.repo.MissingBlockIndexes(ctx, maxIndex)
		if err != nil {
			return 0, err
		}
		gapSet := make(map[uint64]struct{}, len(gaps))
		for _, idx := range gaps {
			gapSet[idx] = struct{}{}
		}

		missing = missing[:0:0]
		for _, b := range state.Blocks {
			if _, gap := gapSet[b.Index]; gap || b.Index > maxIndex {
				missing = append(missing, b)
			}
		}
	}
	if len(missing) == 0 {
		s.logger.Info("archive already up to date", zap.Uint64("max_index", maxIndex))
		return 0, nil
	}

	s.logger.Info("backfilling archive",
		zap.Int("blocks", len(missing)),
		zap.Uint64("from_index", missing[0].Index),
		zap.Uint64("to_index", missing[len(missing)-1].Index),
	)

	chunks := workerpool.Chunk(missing, s.cfg.ChunkSize)
	if err := workerpool.Process(ctx, s.cfg.Workers, chunks, s.write); err != nil {
		return 0, fmt.Errorf("backfill archive: %w", err)
	}
	return len(missing), nil
}

// flushLive writes a batch from the live queue. The batcher drops failed
// batches, so a failure schedules a repair.
func (s *ArchiverService) flushLive(ctx context.Context, blocks []model.Block) error {
	err := s.write(ctx, blocks)
	if err != nil {
		s.needsRepair.Store(true)
	}
	return err
}

// write stores transactions before their blocks so that an archived block
// index implies its transactions are archived too.
func (s *ArchiverService) write(ctx context.Context, blocks []model.Block) (err error) {
	started := time.Now()
	defer func() {
		s.metrics.ObserveBatch(err, len(blocks), started)
	}()

	if err = s.repo.InsertTransactions(ctx, model.ConfirmedTransactions(blocks)); err != nil {
		return err
	}
	return s.repo.InsertBlocks(ctx, blocks)
}
