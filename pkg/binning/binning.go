// Package binning discretizes continuous attribute values (such as service
// times) into a small number of ordered bins.  Two interchangeable strategies
// are provided: percentile thresholds and k-means++ clustering.  Bin
// boundaries are not comparable across keys, so a Manager trains one binner
// per key (typically per activity) from pooled training data.
package binning

import "fmt"

// Binner assigns a continuous value to one of a fixed number of ordered bins.
// Bin indices correlate with value magnitude: larger values never map to a
// smaller bin than smaller values.
type Binner interface {
	Bin(v float64) int
	NumBins() int
}

// TrainFunc trains a binner on the pooled values of one key.
type TrainFunc func(values []float64) (Binner, error)

// KeyValue is one training observation: a key (e.g. an activity label) and a
// continuous value observed for it.
type KeyValue struct {
	Key   string
	Value float64
}

// Manager owns one trained binner per distinct key.
type Manager struct {
	binners map[string]Binner
}

// NewManager groups the (key, value) pairs by key and trains one binner per
// distinct key using train.  Training data must be pooled across all
// populations that will later be compared, so bin boundaries are shared.
func NewManager(pairs []KeyValue, train TrainFunc) (*Manager, error) {
	grouped := map[string][]float64{}
	for _, kv := range pairs {
		grouped[kv.Key] = append(grouped[kv.Key], kv.Value)
	}

	binners := make(map[string]Binner, len(grouped))
	for key, values := range grouped {
		b, err := train(values)
		if err != nil {
			return nil, fmt.Errorf("binning: training binner for key %q: %w", key, err)
		}
		binners[key] = b
	}
	return &Manager{binners: binners}, nil
}

// Bin assigns the value to a bin using the binner trained for key.
//
// Bin panics if no binner was trained for the key.  This can only happen when
// a caller bins data that was not part of the pooled training population,
// which is a programming error rather than an input error.
func (m *Manager) Bin(key string, v float64) int {
	b, ok := m.binners[key]
	if !ok {
		panic(fmt.Sprintf("binning: no binner trained for key %q", key))
	}
	return b.Bin(v)
}

// Keys returns the number of distinct keys the manager was trained on.
func (m *Manager) Keys() int { return len(m.binners) }
