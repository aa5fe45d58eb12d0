package compare

import (
	"fmt"

	"github.com/emdiff/emdiff/pkg/binning"
	"github.com/emdiff/emdiff/pkg/distance"
	"github.com/emdiff/emdiff/pkg/eventlog"
	"github.com/emdiff/emdiff/pkg/lang"
)

// Strategy captures what makes two comparators differ: how a case is mapped
// to a representation, and how dissimilar two representations are.  The
// resampling algorithms are written once against this interface.
type Strategy[T lang.Variant[T]] interface {
	// Cost returns the dissimilarity between two representations.  It must
	// be symmetric and zero for equal representations.
	Cost(a, b T) float64
	// ExtractRepresentations maps every case of both logs to its
	// representation, including any preprocessing such as binning of
	// continuous values.  Binning must be trained on both logs pooled so
	// bin boundaries are shared.
	ExtractRepresentations(log1, log2 *eventlog.Log) ([]T, []T, error)
}

// ProjectOnActivities extracts the activity sequence of every trace.  It
// fails with an AttributeError if any event is missing the activity label.
func ProjectOnActivities(l *eventlog.Log) ([]ActivityTrace, error) {
	out := make([]ActivityTrace, len(l.Traces))
	for i, t := range l.Traces {
		trace := make(ActivityTrace, len(t.Events))
		for j, e := range t.Events {
			activity, err := e.Activity()
			if err != nil {
				return nil, err
			}
			trace[j] = activity
		}
		out[i] = trace
	}
	return out, nil
}

// ServiceTimeEvent is one executed activity with its service time in seconds.
type ServiceTimeEvent struct {
	Activity string
	Seconds  float64
}

// ServiceTimeTraces extracts, for every trace, the sequence of (activity,
// service time) pairs.  It fails with an AttributeError if any event is
// missing the activity label, the start timestamp or the completion
// timestamp.
func ServiceTimeTraces(l *eventlog.Log) ([][]ServiceTimeEvent, error) {
	out := make([][]ServiceTimeEvent, len(l.Traces))
	for i, t := range l.Traces {
		trace := make([]ServiceTimeEvent, len(t.Events))
		for j, e := range t.Events {
			activity, err := e.Activity()
			if err != nil {
				return nil, err
			}
			d, err := e.ServiceTime()
			if err != nil {
				return nil, err
			}
			trace[j] = ServiceTimeEvent{
				Activity: activity,
				Seconds:  float64(d.Milliseconds()) / 1000.0,
			}
		}
		out[i] = trace
	}
	return out, nil
}

// ControlFlow compares pure control flow: representations are activity
// sequences and the cost is the postnormalized Levenshtein distance.
type ControlFlow struct{}

var _ Strategy[ActivityTrace] = ControlFlow{}

// NewControlFlow returns the control-flow comparison strategy.
func NewControlFlow() ControlFlow { return ControlFlow{} }

func (ControlFlow) Cost(a, b ActivityTrace) float64 {
	return distance.Postnormalized(a, b, distance.Unit[string]{})
}

func (ControlFlow) ExtractRepresentations(log1, log2 *eventlog.Log) ([]ActivityTrace, []ActivityTrace, error) {
	b1, err := ProjectOnActivities(log1)
	if err != nil {
		return nil, nil, err
	}
	b2, err := ProjectOnActivities(log2)
	if err != nil {
		return nil, nil, err
	}
	return b1, b2, nil
}

// TimedLevenshtein compares timed behavior: service times are discretized
// into per-activity bins trained on both logs pooled, and the cost is the
// postnormalized weighted Levenshtein distance over (activity, bin) tokens.
type TimedLevenshtein struct {
	train binning.TrainFunc
	costs binnedCosts
}

var _ Strategy[BinnedTrace] = &TimedLevenshtein{}

// TimedOption configures a TimedLevenshtein strategy.
type TimedOption func(*TimedLevenshtein) error

// WithKMeansBinning discretizes service times with a k-means++ binner.
func WithKMeansBinning(cfg binning.KMeansConfig) TimedOption {
	return func(t *TimedLevenshtein) error {
		if cfg.K < 1 {
			return fmt.Errorf("compare: k-means binning needs k >= 1, got %d", cfg.K)
		}
		t.train = binning.KMeansTrainer(cfg)
		t.costs = newBinnedCosts(cfg.K)
		return nil
	}
}

// WithPercentileBinning discretizes service times with the three-bin
// percentile binner at pct and 100-pct.
func WithPercentileBinning(pct float64) TimedOption {
	return func(t *TimedLevenshtein) error {
		if pct < 0 || pct > 100 {
			return fmt.Errorf("compare: percentile %v outside [0, 100]", pct)
		}
		t.train = binning.PercentileTrainer(pct)
		t.costs = newBinnedCosts(3)
		return nil
	}
}

// NewTimedLevenshtein returns the timed-behavior comparison strategy.  The
// default discretization is k-means++ with 3 bins.
func NewTimedLevenshtein(opts ...TimedOption) (*TimedLevenshtein, error) {
	cfg := binning.DefaultKMeansConfig()
	t := &TimedLevenshtein{
		train: binning.KMeansTrainer(cfg),
		costs: newBinnedCosts(cfg.K),
	}
	for _, opt := range opts {
		if err := opt(t); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func (t *TimedLevenshtein) Cost(a, b BinnedTrace) float64 {
	return distance.Postnormalized(a, b, t.costs)
}

func (t *TimedLevenshtein) ExtractRepresentations(log1, log2 *eventlog.Log) ([]BinnedTrace, []BinnedTrace, error) {
	st1, err := ServiceTimeTraces(log1)
	if err != nil {
		return nil, nil, err
	}
	st2, err := ServiceTimeTraces(log2)
	if err != nil {
		return nil, nil, err
	}

	// Train one binner per activity on both logs pooled, so bins mean the
	// same thing on either side of the comparison.
	var pooled []binning.KeyValue
	for _, traces := range [][][]ServiceTimeEvent{st1, st2} {
		for _, trace := range traces {
			for _, e := range trace {
				pooled = append(pooled, binning.KeyValue{Key: e.Activity, Value: e.Seconds})
			}
		}
	}
	mgr, err := binning.NewManager(pooled, t.train)
	if err != nil {
		return nil, nil, err
	}

	return applyBinning(st1, mgr), applyBinning(st2, mgr), nil
}

func applyBinning(traces [][]ServiceTimeEvent, mgr *binning.Manager) []BinnedTrace {
	out := make([]BinnedTrace, len(traces))
	for i, trace := range traces {
		binned := make(BinnedTrace, len(trace))
		for j, e := range trace {
			binned[j] = BinnedEvent{Activity: e.Activity, Bin: mgr.Bin(e.Activity, e.Seconds)}
		}
		out[i] = binned
	}
	return out
}
