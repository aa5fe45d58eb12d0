package compare

// Result is the outcome of one log comparison.
type Result struct {
	// ObservedEMD is the Earth Mover's Distance measured between the two
	// event logs.
	ObservedEMD float64
	// ResampledEMDs is the null distribution of EMDs built by resampling.
	ResampledEMDs []float64
	// PValue is the fraction of resampled EMDs strictly greater than the
	// observed EMD.
	PValue float64
}

func newResult(observed float64, resampled []float64) *Result {
	greater := 0
	for _, e := range resampled {
		if e > observed {
			greater++
		}
	}
	return &Result{
		ObservedEMD:   observed,
		ResampledEMDs: resampled,
		PValue:        float64(greater) / float64(len(resampled)),
	}
}
