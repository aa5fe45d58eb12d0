package compare

import (
	"fmt"
	"runtime"

	"github.com/emdiff/emdiff/pkg/emd"
	"github.com/emdiff/emdiff/pkg/progress"
)

type options struct {
	progress      progress.Factory
	emdIterations int
	workers       int
}

func defaultOptions() options {
	return options{
		progress:      progress.Discard,
		emdIterations: emd.DefaultIterations,
		workers:       runtime.GOMAXPROCS(0),
	}
}

// Option configures a comparator.
type Option func(*options) error

// WithProgress installs a progress reporter factory.  By default progress is
// discarded.
func WithProgress(f progress.Factory) Option {
	return func(o *options) error {
		if f == nil {
			return fmt.Errorf("compare: progress factory must not be nil")
		}
		o.progress = f
		return nil
	}
}

// WithEMDIterations sets the simplex pivot budget for every EMD computation.
func WithEMDIterations(n int) Option {
	return func(o *options) error {
		if n < 1 {
			return fmt.Errorf("compare: EMD iterations must be >= 1, got %d", n)
		}
		o.emdIterations = n
		return nil
	}
}

// WithWorkers bounds the number of goroutines used for distance-matrix
// construction.  The default is GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *options) error {
		if n < 1 {
			return fmt.Errorf("compare: workers must be >= 1, got %d", n)
		}
		o.workers = n
		return nil
	}
}
