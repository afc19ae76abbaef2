package simulation

import (
	"context"
	"errors"
	"math/rand"
	"runtime"
	"sync"
	"time"

	"github.com/cadentwebb/financial-simulator/internal/domain"
	"github.com/cadentwebb/financial-simulator/internal/marketdata"
)

// seedFunc returns a pseudo-random master seed (override for deterministic
// tests).
var seedFunc = func() int64 { return time.Now().UnixNano() }

// SetSeedFunc overrides the master seed source used when Config.Seed is zero.
func SetSeedFunc(f func() int64) { seedFunc = f }

// Config holds the batch-level simulation parameters. It is an explicit
// parameter object: repeated Engine.Run invocations with different configs
// cannot interfere with each other.
type Config struct {
	// Iterations is the number of runs per historical window; the total run
	// count is len(windows) * Iterations.
	Iterations int

	// Seed is the master seed. Run i uses Seed+i, so results are
	// bit-reproducible for any worker count. Zero selects a random seed.
	Seed int64

	// WindowMonths is the simulation horizon; defaults to
	// marketdata.WindowMonths (180).
	WindowMonths int

	// MilestoneMonths are the elapsed-time checkpoints reported on; defaults
	// to 3/5/7/10/15 years.
	MilestoneMonths []int

	// BaselineAnnualRate is the flat savings rate the deterministic baseline
	// compounds at.
	BaselineAnnualRate float64

	// TopBottomK is how many best and worst historical windows to report.
	TopBottomK int

	// Workers caps concurrent runs; defaults to runtime.NumCPU().
	Workers int

	// KeepTraces retains raw per-run balance traces for downstream plotting.
	KeepTraces bool
}

// DefaultMilestoneMonths are the 3/5/7/10/15 year checkpoints.
var DefaultMilestoneMonths = []int{36, 60, 84, 120, 180}

const defaultTopBottomK = 3

func (c Config) withDefaults() Config {
	if c.Seed == 0 {
		c.Seed = seedFunc()
	}
	if c.WindowMonths == 0 {
		c.WindowMonths = marketdata.WindowMonths
	}
	if len(c.MilestoneMonths) == 0 {
		// Default checkpoints, trimmed to the horizon.
		for _, m := range DefaultMilestoneMonths {
			if m <= c.WindowMonths {
				c.MilestoneMonths = append(c.MilestoneMonths, m)
			}
		}
	}
	if c.TopBottomK == 0 {
		c.TopBottomK = defaultTopBottomK
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	return c
}

func (c Config) validate() error {
	if c.Iterations <= 0 {
		return &domain.ConfigurationError{Field: "iterations", Reason: "iterations must be positive"}
	}
	if c.WindowMonths < 0 {
		return &domain.ConfigurationError{Field: "window_months", Reason: "window months cannot be negative"}
	}
	if c.BaselineAnnualRate <= -1 {
		return &domain.ConfigurationError{Field: "baseline_annual_rate", Reason: "baseline rate must be greater than -100%"}
	}
	for _, m := range c.MilestoneMonths {
		if m <= 0 {
			return &domain.ConfigurationError{Field: "milestone_months", Reason: "milestone months must be positive"}
		}
	}
	return nil
}

// Engine runs historical-bootstrap Monte Carlo batches against a shared
// read-only store.
type Engine struct {
	store  *marketdata.Store
	logger Logger
}

// NewEngine creates an engine over the given historical store.
func NewEngine(store *marketdata.Store) *Engine {
	return &Engine{store: store, logger: NopLogger{}}
}

// SetLogger sets the engine logger. A nil logger resets to no-op.
func (e *Engine) SetLogger(l Logger) {
	if l == nil {
		e.logger = NopLogger{}
		return
	}
	e.logger = l
}

// Run executes the full batch for one portfolio: every historical window times
// Config.Iterations independent runs, followed by aggregation against the
// deterministic baseline.
//
// Configuration and history errors abort before any run starts. Per-run
// failures (non-finite paths) are collected and summarized, never retried.
// Cancelling ctx aborts remaining runs; completed runs still aggregate, and
// the result reports requested vs completed counts.
func (e *Engine) Run(ctx context.Context, portfolio *domain.Portfolio, cfg Config) (*domain.PortfolioResult, error) {
	if err := portfolio.Validate(); err != nil {
		return nil, err
	}
	assets := portfolio.Assets()
	for _, id := range assets {
		if _, ok := e.store.Asset(id); !ok {
			return nil, &domain.ConfigurationError{
				Field:  "allocations." + id,
				Reason: "unknown asset class",
			}
		}
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	explicitMilestones := len(cfg.MilestoneMonths) > 0
	cfg = cfg.withDefaults()
	if explicitMilestones {
		for _, m := range cfg.MilestoneMonths {
			if m > cfg.WindowMonths {
				return nil, &domain.ConfigurationError{
					Field:  "milestone_months",
					Reason: "milestone month exceeds the simulation horizon",
				}
			}
		}
	}

	windows, err := e.store.Windows(assets, cfg.WindowMonths)
	if err != nil {
		return nil, err
	}

	totalRuns := len(windows) * cfg.Iterations
	e.logger.Infof("portfolio %s: %d windows x %d iterations = %d runs (seed %d)",
		portfolio.Name, len(windows), cfg.Iterations, totalRuns, cfg.Seed)

	sampler := NewSampler(portfolio.NoiseStdDev)
	runs := make([]*Run, totalRuns)

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, cfg.Workers)

	for i := 0; i < totalRuns; i++ {
		wg.Add(1)
		go func(runIndex int) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			windowIndex := runIndex / cfg.Iterations
			seed := cfg.Seed + int64(runIndex)
			run := &Run{Index: runIndex, WindowIndex: windowIndex, Seed: seed}

			select {
			case <-ctx.Done():
				run.Canceled = true
				runs[runIndex] = run
				return
			default:
			}

			rng := rand.New(rand.NewSource(seed))
			returns := sampler.Sample(&windows[windowIndex], assets, rng)
			path, err := simulatePath(portfolio, assets, returns, cfg.KeepTraces)
			path.Index = runIndex
			path.WindowIndex = windowIndex
			path.Seed = seed
			if err != nil {
				var pathErr *InvalidPathError
				if errors.As(err, &pathErr) {
					pathErr.Run = runIndex
				}
				path.Err = err
				e.logger.Warnf("run %d (window %s): %v", runIndex, windows[windowIndex].Label(), err)
			}
			runs[runIndex] = path
		}(i)
	}
	wg.Wait()

	baseline := RunBaseline(portfolio.InitialLumpSum, portfolio.Schedule, cfg.BaselineAnnualRate, cfg.WindowMonths)

	result := aggregate(portfolio, cfg, windows, runs, baseline, assets)
	e.logger.Infof("portfolio %s: %d/%d runs completed, %d failed, %d canceled",
		portfolio.Name, result.CompletedRuns, result.RequestedRuns, result.FailedRuns, result.CanceledRuns)
	return result, nil
}
