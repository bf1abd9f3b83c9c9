// Package miner runs the cooperative proof-of-work nonce search.
package miner

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/rewardledger-backend/internal/clock"
	"github.com/goodnatureofminers/rewardledger-backend/internal/model"
	"github.com/goodnatureofminers/rewardledger-backend/internal/pow"
)

const (
	DefaultProgressInterval = 1000
	DefaultYieldInterval    = 5000
	DefaultEventBuffer      = 64
)

var (
	// ErrSearchInProgress is returned by Start while another search is mining.
	ErrSearchInProgress = errors.New("mining search already in progress")
	// ErrInvalidDifficulty is reported for candidates with difficulty below one.
	ErrInvalidDifficulty = errors.New("difficulty must be at least 1")
)

// Config tunes event and scheduling cadence.
type Config struct {
	ProgressInterval uint64
	YieldInterval    uint64
	EventBuffer      int
}

// DefaultConfig reports progress every 1000 hashes and yields every 5000.
func DefaultConfig() Config {
	return Config{
		ProgressInterval: DefaultProgressInterval,
		YieldInterval:    DefaultYieldInterval,
		EventBuffer:      DefaultEventBuffer,
	}
}

// Engine searches nonces for one candidate block at a time.
type Engine struct {
	digester Digester
	metrics  Metrics
	clock    clock.Clock
	logger   *zap.Logger
	cfg      Config
	yield    func()

	mu      sync.Mutex
	current *search
}

// NewEngine builds an Engine. Zero config fields take their defaults.
func NewEngine(digester Digester, metrics Metrics, clk clock.Clock, cfg Config, logger *zap.Logger) *Engine {
	if cfg.ProgressInterval == 0 {
		cfg.ProgressInterval = DefaultProgressInterval
	}
	if cfg.YieldInterval == 0 {
		cfg.YieldInterval = DefaultYieldInterval
	}
	// one slot is always kept free for the terminal event
	if cfg.EventBuffer < 2 {
		cfg.EventBuffer = 2
	}
	if clk == nil {
		clk = clock.New()
	}
	return &Engine{
		digester: digester,
		metrics:  metrics,
		clock:    clk,
		logger:   logger,
		cfg:      cfg,
		yield:    runtime.Gosched,
	}
}

// Start begins mining block at difficulty on a dedicated goroutine. Events
// arrive in order on the returned channel, which is closed after exactly one
// terminal event. Progress events are dropped rather than delayed when the
// consumer falls behind.
func (e *Engine) Start(ctx context.Context, block model.Block, difficulty int) (<-chan Event, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.current != nil && !e.current.State().Terminal() {
		return nil, ErrSearchInProgress
	}

	s := &search{
		engine:     e,
		block:      block.Clone(),
		difficulty: difficulty,
		prefix:     pow.TargetPrefix(difficulty),
		events:     make(chan Event, e.cfg.EventBuffer),
		started:    e.clock.Now(),
	}
	s.nonce.Store(block.Nonce)
	s.state.Store(StateMining)
	e.current = s

	e.logger.Info("mining started",
		zap.Uint64("index", block.Index),
		zap.Int("difficulty", difficulty),
		zap.Uint64("start_nonce", block.Nonce),
	)

	go s.run(ctx)
	return s.events, nil
}

// Stop asks the active search to cancel. It returns immediately; the search
// reports its cancellation on its event channel.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.current != nil {
		e.current.stopped.Store(true)
	}
}

// Stats returns a snapshot of the latest search without affecting it.
func (e *Engine) Stats() Stats {
	e.mu.Lock()
	s := e.current
	e.mu.Unlock()

	if s == nil {
		return Stats{State: StateIdle}
	}
	hashes := s.hashes.Load()
	state := s.State()
	return Stats{
		State:          state,
		Mining:         state == StateMining,
		HashesComputed: hashes,
		HashRate:       rate(hashes, s.elapsed()),
		Nonce:          s.nonce.Load(),
	}
}

type search struct {
	engine     *Engine
	block      model.Block
	difficulty int
	prefix     string
	events     chan Event
	started    time.Time

	stopped atomic.Bool
	hashes  atomic.Uint64
	nonce   atomic.Uint64
	state   atomic.Value
	dropped uint64
}

func (s *search) State() State {
	return s.state.Load().(State)
}

func (s *search) elapsed() time.Duration {
	return s.engine.clock.Since(s.started)
}

func (s *search) run(ctx context.Context) {
	defer close(s.events)

	if s.difficulty < 1 {
		s.fail(fmt.Errorf("block %d: %w, got %d", s.block.Index, ErrInvalidDifficulty, s.difficulty))
		return
	}

	digest, err := s.engine.digester.Prepare(s.block)
	if err != nil {
		s.fail(fmt.Errorf("prepare block %d: %w", s.block.Index, err))
		return
	}

	cfg := s.engine.cfg
	nonce := s.block.Nonce
	var sinceYield uint64
	for {
		if s.stopped.Load() {
			s.cancel("mining stopped")
			return
		}

		hash := digest.Digest(nonce)
		hashes := s.hashes.Add(1)
		s.nonce.Store(nonce)

		if strings.HasPrefix(hash, s.prefix) {
			s.found(nonce, hash)
			return
		}
		if hashes%cfg.ProgressInterval == 0 {
			s.progress(nonce, hashes)
		}

		nonce++
		sinceYield++
		if sinceYield == cfg.YieldInterval {
			sinceYield = 0
			if s.stopped.Load() {
				s.cancel("mining stopped")
				return
			}
			if err := ctx.Err(); err != nil {
				s.cancel("mining cancelled: " + err.Error())
				return
			}
			s.engine.yield()
		}
	}
}

func (s *search) progress(nonce, hashes uint64) {
	// the worker is the only sender, so len can only shrink under us
	if len(s.events) >= cap(s.events)-1 {
		s.dropped++
		return
	}
	elapsed := s.elapsed()
	hashRate := rate(hashes, elapsed)
	s.engine.metrics.SetHashRate(hashRate)
	s.events <- Event{
		Kind:           EventProgress,
		State:          StateMining,
		Nonce:          nonce,
		HashesComputed: hashes,
		HashRate:       hashRate,
		Elapsed:        elapsed,
	}
}

func (s *search) found(nonce uint64, hash string) {
	hashes := s.hashes.Load()
	elapsed := s.elapsed()
	hashRate := rate(hashes, elapsed)

	block := s.block.Clone()
	block.Difficulty = s.difficulty
	block.Nonce = nonce
	block.Hash = hash
	block.Report = &model.MiningReport{HashRate: hashRate, HashesComputed: hashes}

	s.finish(Event{
		Kind:           EventSuccess,
		State:          StateFound,
		Nonce:          nonce,
		Hash:           hash,
		HashesComputed: hashes,
		HashRate:       hashRate,
		Elapsed:        elapsed,
		Block:          &block,
	})
}

func (s *search) cancel(text string) {
	hashes := s.hashes.Load()
	elapsed := s.elapsed()
	s.finish(Event{
		Kind:           EventStatus,
		State:          StateCancelled,
		Nonce:          s.nonce.Load(),
		HashesComputed: hashes,
		HashRate:       rate(hashes, elapsed),
		Elapsed:        elapsed,
		Text:           text,
	})
}

func (s *search) fail(err error) {
	s.finish(Event{
		Kind:    EventError,
		State:   StateFailed,
		Nonce:   s.nonce.Load(),
		Elapsed: s.elapsed(),
		Err:     err,
	})
}

func (s *search) finish(ev Event) {
	s.state.Store(ev.State)

	m := s.engine.metrics
	m.ObserveHashes(ev.HashesComputed)
	m.SetHashRate(ev.HashRate)
	m.ObserveSearch(ev.State, ev.Elapsed)

	fields := []zap.Field{
		zap.Uint64("index", s.block.Index),
		zap.String("state", string(ev.State)),
		zap.Uint64("nonce", ev.Nonce),
		zap.Uint64("hashes", ev.HashesComputed),
		zap.Float64("hash_rate", ev.HashRate),
		zap.Duration("elapsed", ev.Elapsed),
		zap.Uint64("dropped_progress", s.dropped),
	}
	switch ev.Kind {
	case EventError:
		s.engine.logger.Warn("mining failed", append(fields, zap.Error(ev.Err))...)
	case EventSuccess:
		s.engine.logger.Info("block mined", append(fields, zap.String("hash", ev.Hash))...)
	default:
		s.engine.logger.Info("mining cancelled", append(fields, zap.String("reason", ev.Text))...)
	}

	s.events <- ev
}

func rate(hashes uint64, elapsed time.Duration) float64 {
	if elapsed <= 0 {
		return 0
	}
	return float64(hashes) / elapsed.Seconds()
}
