package emdiff

import (
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/klauspost/pgzip"

	"github.com/emdiff/emdiff/pkg/compare"
)

// Report is the JSON-serializable outcome of one comparison run.
type Report struct {
	Test             string    `json:"test"`
	Representation   string    `json:"representation"`
	DistributionSize int       `json:"distribution_size"`
	Seed             *uint64   `json:"seed,omitempty"`
	ObservedEMD      float64   `json:"observed_emd"`
	PValue           float64   `json:"p_value"`
	ResampledEMDs    []float64 `json:"resampled_emds"`
}

func newReport(cfg *Config, result *compare.Result) *Report {
	return &Report{
		Test:             cfg.Test,
		Representation:   cfg.Representation,
		DistributionSize: cfg.DistributionSize,
		Seed:             cfg.Seed,
		ObservedEMD:      result.ObservedEMD,
		PValue:           result.PValue,
		ResampledEMDs:    result.ResampledEMDs,
	}
}

// writeReport writes the report as JSON to path, or to stdout when path is
// empty.  A ".gz" suffix enables parallel gzip compression.
func writeReport(r *Report, path string) error {
	if path == "" {
		return encodeReport(os.Stdout, r)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if strings.HasSuffix(path, ".gz") {
		gz := pgzip.NewWriter(f)
		if err := encodeReport(gz, r); err != nil {
			gz.Close()
			return err
		}
		if err := gz.Close(); err != nil {
			return err
		}
		return f.Close()
	}

	if err := encodeReport(f, r); err != nil {
		return err
	}
	return f.Close()
}

func encodeReport(w io.Writer, r *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
