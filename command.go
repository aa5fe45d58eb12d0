// Package emdiff compares two event logs for statistically significant
// behavioral difference.  The stochastic languages of the logs are compared
// with the Earth Mover's Distance over a pairwise trace distance, and a
// resampling test (permutation or bootstrap) turns the observed distance into
// a p-value.
package emdiff

import (
	"os"

	"github.com/emdiff/emdiff/pkg/binning"
	"github.com/emdiff/emdiff/pkg/compare"
	"github.com/emdiff/emdiff/pkg/eventlog"
	"github.com/emdiff/emdiff/pkg/lang"
	"github.com/emdiff/emdiff/pkg/progress"
)

// Command is one configured comparison run.
type Command struct {
	Config *Config
	Logs   [2]string
}

// New prepares a comparison of the two event log files given as positional
// arguments.
func New(args []string, options ...ConfigOption) (*Command, []error) {
	cfg, errs := NewConfig(options...)
	if len(errs) > 0 {
		return nil, errs
	}
	if len(args) != 2 {
		return nil, []error{usageErr("expected two event log files, got %d arguments", len(args))}
	}
	return &Command{Config: cfg, Logs: [2]string{args[0], args[1]}}, nil
}

// Exec loads the two logs, runs the configured hypothesis test and writes the
// report.
func (c *Command) Exec() error {
	log1, err := ReadLogFile(c.Logs[0])
	if err != nil {
		return err
	}
	log2, err := ReadLogFile(c.Logs[1])
	if err != nil {
		return err
	}

	var result *compare.Result
	switch c.Config.Representation {
	case RepresentationTimed:
		// The timed representation needs a start timestamp on every event;
		// derive them from lifecycle information where missing.
		if err := eventlog.EnsureStartTimestamps(log1); err != nil {
			return err
		}
		if err := eventlog.EnsureStartTimestamps(log2); err != nil {
			return err
		}
		strategy, err := c.timedStrategy()
		if err != nil {
			return err
		}
		result, err = runTest[compare.BinnedTrace](c.Config, strategy, log1, log2)
		if err != nil {
			return err
		}
	default:
		result, err = runTest[compare.ActivityTrace](c.Config, compare.NewControlFlow(), log1, log2)
		if err != nil {
			return err
		}
	}

	return writeReport(newReport(c.Config, result), c.Config.Out)
}

func (c *Command) timedStrategy() (*compare.TimedLevenshtein, error) {
	if c.Config.Binner == BinnerPercentile {
		return compare.NewTimedLevenshtein(compare.WithPercentileBinning(c.Config.Percentile))
	}
	return compare.NewTimedLevenshtein(compare.WithKMeansBinning(binning.KMeansConfig{
		K:             c.Config.K,
		MaxIterations: c.Config.KMeansIterations,
		Seed:          c.Config.Seed,
	}))
}

// runTest dispatches to the configured comparator.  It is generic over the
// representation so both comparators are written once.
func runTest[T lang.Variant[T]](cfg *Config, strategy compare.Strategy[T], log1, log2 *eventlog.Log) (*compare.Result, error) {
	opts := []compare.Option{compare.WithEMDIterations(cfg.EMDIterations)}
	if !cfg.Quiet {
		opts = append(opts, compare.WithProgress(progress.NewWriter(os.Stderr)))
	}
	if cfg.Workers > 0 {
		opts = append(opts, compare.WithWorkers(cfg.Workers))
	}

	if cfg.Test == TestBootstrap {
		comparator, err := compare.NewBootstrap[T](strategy, opts...)
		if err != nil {
			return nil, err
		}
		resampleSize := cfg.ResampleSize
		if resampleSize == 0 {
			resampleSize = len(log1.Traces)
		}
		return comparator.Compare(log1, log2, resampleSize, cfg.DistributionSize, cfg.Seed)
	}

	comparator, err := compare.NewPermutation[T](strategy, opts...)
	if err != nil {
		return nil, err
	}
	return comparator.Compare(log1, log2, cfg.DistributionSize, cfg.Seed)
}
