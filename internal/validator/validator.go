// Package validator verifies submitted proof-of-work solutions.
package validator

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/rewardledger-backend/internal/clock"
	"github.com/goodnatureofminers/rewardledger-backend/internal/model"
	"github.com/goodnatureofminers/rewardledger-backend/internal/pow"
)

const (
	DefaultMaxNonce        = 1_000_000
	DefaultFreshnessWindow = time.Hour
	DefaultMaxFutureSkew   = 2 * time.Minute
)

// Check names.
const (
	CheckDifficulty = "difficulty"
	CheckHashMatch  = "hash_match"
	CheckNonceRange = "nonce_range"
	CheckFreshness  = "freshness"
)

// Config bounds acceptable submissions.
type Config struct {
	// MaxNonce is the exclusive upper nonce bound. The lower bound 0 is
	// inclusive, so a solution found at nonce 0 is in range.
	MaxNonce        uint64
	FreshnessWindow time.Duration
	// MaxFutureSkew is how far ahead of the local clock a block may be dated.
	MaxFutureSkew time.Duration
}

// DefaultConfig returns the stock bounds.
func DefaultConfig() Config {
	return Config{
		MaxNonce:        DefaultMaxNonce,
		FreshnessWindow: DefaultFreshnessWindow,
		MaxFutureSkew:   DefaultMaxFutureSkew,
	}
}

// Check is the outcome of one validation rule.
type Check struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail,omitempty"`
}

// Result is the outcome of validating a submission.
type Result struct {
	Accepted bool    `json:"accepted"`
	Hash     string  `json:"hash"`
	Checks   []Check `json:"checks"`
	index    uint64
}

// Failed returns the checks that did not pass.
func (r Result) Failed() []Check {
	var failed []Check
	for _, c := range r.Checks {
		if !c.Passed {
			failed = append(failed, c)
		}
	}
	return failed
}

// Err returns nil for an accepted result, otherwise a *ValidationError.
func (r Result) Err() error {
	if r.Accepted {
		return nil
	}
	return &ValidationError{Index: r.index, Failed: r.Failed()}
}

// Validator recomputes and checks claimed solutions. It never touches ledger state.
type Validator struct {
	digester Digester
	metrics  Metrics
	clock    clock.Clock
	cfg      Config
	logger   *zap.Logger
}

// New returns a Validator. Zero config fields take their defaults.
func New(digester Digester, metrics Metrics, clk clock.Clock, cfg Config, logger *zap.Logger) *Validator {
	if cfg.MaxNonce == 0 {
		cfg.MaxNonce = DefaultMaxNonce
	}
	if cfg.FreshnessWindow <= 0 {
		cfg.FreshnessWindow = DefaultFreshnessWindow
	}
	if cfg.MaxFutureSkew <= 0 {
		cfg.MaxFutureSkew = DefaultMaxFutureSkew
	}
	if clk == nil {
		clk = clock.New()
	}
	return &Validator{digester: digester, metrics: metrics, clock: clk, cfg: cfg, logger: logger}
}

// Validate checks that hash is the digest of block with nonce, that it meets
// the block's difficulty, that nonce is in range and that the block is fresh.
// Every check is evaluated so that rejections list all reasons.
func (v *Validator) Validate(block model.Block, nonce uint64, hash string) Result {
	res := Result{index: block.Index}

	recomputed, err := v.digester.Digest(block, nonce)
	switch {
	case err != nil:
		detail := fmt.Sprintf("digest unavailable: %v", err)
		res.Checks = append(res.Checks,
			Check{Name: CheckDifficulty, Detail: detail},
			Check{Name: CheckHashMatch, Detail: detail},
		)
	default:
		res.Hash = recomputed
		res.Checks = append(res.Checks, v.checkDifficulty(recomputed, block.Difficulty), checkHashMatch(recomputed, hash))
	}
	res.Checks = append(res.Checks, v.checkNonce(nonce), v.checkFreshness(block.Timestamp))

	res.Accepted = true
	failedNames := make([]string, 0, len(res.Checks))
	for _, c := range res.Checks {
		if !c.Passed {
			res.Accepted = false
			failedNames = append(failedNames, c.Name)
		}
	}
	v.metrics.Observe(res.Accepted, failedNames)

	if !res.Accepted {
		v.logger.Debug("block rejected",
			zap.Uint64("index", block.Index),
			zap.Uint64("nonce", nonce),
			zap.Strings("failed_checks", failedNames),
		)
	}
	return res
}

func (v *Validator) checkDifficulty(hash string, difficulty int) Check {
	c := Check{Name: CheckDifficulty, Passed: pow.MeetsDifficulty(hash, difficulty)}
	if !c.Passed {
		if difficulty < 1 {
			c.Detail = fmt.Sprintf("difficulty %d is below 1", difficulty)
		} else {
			c.Detail = fmt.Sprintf("hash has %d leading zeros, need %d", pow.LeadingZeros(hash), difficulty)
		}
	}
	return c
}

func checkHashMatch(recomputed, claimed string) Check {
	c := Check{Name: CheckHashMatch, Passed: recomputed == claimed}
	if !c.Passed {
		c.Detail = fmt.Sprintf("claimed %q, computed %q", claimed, recomputed)
	}
	return c
}

func (v *Validator) checkNonce(nonce uint64) Check {
	c := Check{Name: CheckNonceRange, Passed: nonce < v.cfg.MaxNonce}
	if !c.Passed {
		c.Detail = fmt.Sprintf("nonce %d outside [0, %d)", nonce, v.cfg.MaxNonce)
	}
	return c
}

// checkFreshness accepts timestamps in [now-FreshnessWindow, now+MaxFutureSkew].
func (v *Validator) checkFreshness(ts time.Time) Check {
	age := v.clock.Now().Sub(ts)
	c := Check{Name: CheckFreshness}
	switch {
	case age > v.cfg.FreshnessWindow:
		c.Detail = fmt.Sprintf("template is %s old, window is %s", age.Truncate(time.Millisecond), v.cfg.FreshnessWindow)
	case -age > v.cfg.MaxFutureSkew:
		c.Detail = fmt.Sprintf("template is dated %s ahead, allowed skew is %s", (-age).Truncate(time.Millisecond), v.cfg.MaxFutureSkew)
	default:
		c.Passed = true
	}
	return c
}
