package emdiff

import (
	"fmt"
	"strconv"
)

// Hypothesis test selection.
const (
	TestPermutation = "permutation"
	TestBootstrap   = "bootstrap"
)

// Behavioral representation selection.
const (
	RepresentationControlFlow = "control-flow"
	RepresentationTimed       = "timed"
)

// Service-time binner selection.
const (
	BinnerKMeans     = "kmeans"
	BinnerPercentile = "percentile"
)

// Config holds the fully resolved run configuration assembled from the
// command line and an optional YAML configuration file.
type Config struct {
	Test             string
	Representation   string
	Binner           string
	DistributionSize int
	ResampleSize     int // 0 means the size of the first log
	Seed             *uint64
	Percentile       float64
	K                int
	KMeansIterations int
	EMDIterations    int
	Workers          int // 0 means GOMAXPROCS
	Out              string
	Quiet            bool
}

// ConfigOption mutates the configuration, reporting invalid values.
type ConfigOption func(c *Config) error

// NewConfig builds a configuration from defaults and the given options.  All
// option errors are collected so the user sees every problem at once.
func NewConfig(options ...ConfigOption) (*Config, []error) {
	c := &Config{
		Test:             TestPermutation,
		Representation:   RepresentationControlFlow,
		Binner:           BinnerKMeans,
		DistributionSize: 1000,
		Percentile:       25,
		K:                3,
		KMeansIterations: 100,
		EMDIterations:    10000,
	}

	var errors []error
	for _, option := range options {
		if err := option(c); err != nil {
			errors = append(errors, err)
		}
	}
	if len(errors) > 0 {
		return nil, errors
	}
	return c, nil
}

// Test selects the hypothesis test: "permutation" or "bootstrap".
func Test(name string) ConfigOption {
	return func(c *Config) error {
		switch name {
		case TestPermutation, TestBootstrap:
			c.Test = name
			return nil
		default:
			return fmt.Errorf("unknown test %q, expected %q or %q", name, TestPermutation, TestBootstrap)
		}
	}
}

// Representation selects the behavioral representation: "control-flow" or "timed".
func Representation(name string) ConfigOption {
	return func(c *Config) error {
		switch name {
		case RepresentationControlFlow, RepresentationTimed:
			c.Representation = name
			return nil
		default:
			return fmt.Errorf("unknown representation %q, expected %q or %q",
				name, RepresentationControlFlow, RepresentationTimed)
		}
	}
}

// Binner selects the service-time discretization: "kmeans" or "percentile".
func Binner(name string) ConfigOption {
	return func(c *Config) error {
		switch name {
		case BinnerKMeans, BinnerPercentile:
			c.Binner = name
			return nil
		default:
			return fmt.Errorf("unknown binner %q, expected %q or %q", name, BinnerKMeans, BinnerPercentile)
		}
	}
}

// DistributionSize sets the number of resampling iterations.
func DistributionSize(value string) ConfigOption {
	return func(c *Config) error {
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return fmt.Errorf("distribution-size must be a positive integer, got %q", value)
		}
		c.DistributionSize = n
		return nil
	}
}

// ResampleSize sets the bootstrap sample size.  Zero uses the size of the
// first log.
func ResampleSize(value string) ConfigOption {
	return func(c *Config) error {
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("resample-size must be a non-negative integer, got %q", value)
		}
		c.ResampleSize = n
		return nil
	}
}

// Seed fixes the resampling RNG seed for reproducible results.
func Seed(value string) ConfigOption {
	return func(c *Config) error {
		s, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return fmt.Errorf("seed must be an unsigned integer, got %q", value)
		}
		c.Seed = &s
		return nil
	}
}

// Percentile sets the lower percentile threshold of the percentile binner;
// the upper threshold is its mirror at 100-p.
func Percentile(value string) ConfigOption {
	return func(c *Config) error {
		p, err := strconv.ParseFloat(value, 64)
		if err != nil || p < 0 || p > 100 {
			return fmt.Errorf("percentile must be in [0, 100], got %q", value)
		}
		c.Percentile = p
		return nil
	}
}

// K sets the number of k-means bins.
func K(value string) ConfigOption {
	return func(c *Config) error {
		k, err := strconv.Atoi(value)
		if err != nil || k < 1 {
			return fmt.Errorf("k must be a positive integer, got %q", value)
		}
		c.K = k
		return nil
	}
}

// KMeansIterations bounds Lloyd's iteration of the k-means binner.
func KMeansIterations(value string) ConfigOption {
	return func(c *Config) error {
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return fmt.Errorf("kmeans-max-iter must be a positive integer, got %q", value)
		}
		c.KMeansIterations = n
		return nil
	}
}

// EMDIterations sets the simplex pivot budget for every EMD computation.
func EMDIterations(value string) ConfigOption {
	return func(c *Config) error {
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return fmt.Errorf("emd-iterations must be a positive integer, got %q", value)
		}
		c.EMDIterations = n
		return nil
	}
}

// Workers bounds the distance-matrix worker pool.  Zero uses GOMAXPROCS.
func Workers(value string) ConfigOption {
	return func(c *Config) error {
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("workers must be a non-negative integer, got %q", value)
		}
		c.Workers = n
		return nil
	}
}

// Out sets the result output path.  A ".gz" suffix enables gzip compression;
// an empty path writes to stdout.
func Out(path string) ConfigOption {
	return func(c *Config) error {
		c.Out = path
		return nil
	}
}

// Quiet suppresses progress output.
func Quiet() ConfigOption {
	return func(c *Config) error {
		c.Quiet = true
		return nil
	}
}
