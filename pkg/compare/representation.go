package compare

import (
	"cmp"
	"slices"
	"strconv"
	"strings"
)

// ActivityTrace is the control-flow representation of one case: the ordered
// sequence of its activity labels.
type ActivityTrace []string

// Key encodes the trace for hashing.  Activity labels must not contain the
// ASCII unit separator.
func (t ActivityTrace) Key() string { return strings.Join(t, "\x1f") }

// Compare orders traces lexicographically by activity label.
func (t ActivityTrace) Compare(other ActivityTrace) int { return slices.Compare(t, other) }

// BinnedEvent is one executed activity annotated with its discretized
// service-time bin.
type BinnedEvent struct {
	Activity string
	Bin      int
}

// BinnedTrace is the timed-behavior representation of one case: the ordered
// sequence of its activities with binned service times.
type BinnedTrace []BinnedEvent

// Key encodes the trace for hashing.
func (t BinnedTrace) Key() string {
	var sb strings.Builder
	for _, e := range t {
		sb.WriteString(e.Activity)
		sb.WriteByte(0x1f)
		sb.WriteString(strconv.Itoa(e.Bin))
		sb.WriteByte(0x1e)
	}
	return sb.String()
}

// Compare orders traces lexicographically by (activity, bin).
func (t BinnedTrace) Compare(other BinnedTrace) int {
	return slices.CompareFunc(t, other, func(a, b BinnedEvent) int {
		if c := cmp.Compare(a.Activity, b.Activity); c != 0 {
			return c
		}
		return cmp.Compare(a.Bin, b.Bin)
	})
}

// binnedCosts is the edit-cost model for binned tokens: inserting or deleting
// an event gets costlier the higher its bin, and substitution blends a 0/1
// activity-mismatch term with the bin distance scaled to [0, 1].
type binnedCosts struct {
	scale float64 // largest possible bin distance, numBins-1
}

func newBinnedCosts(numBins int) binnedCosts {
	return binnedCosts{scale: float64(numBins - 1)}
}

func (c binnedCosts) Insertion(e BinnedEvent) float64 { return 0.5 * float64(1+e.Bin) }
func (c binnedCosts) Deletion(e BinnedEvent) float64  { return 0.5 * float64(1+e.Bin) }

func (c binnedCosts) Substitution(a, b BinnedEvent) float64 {
	activityCost := 0.0
	if a.Activity != b.Activity {
		activityCost = 1.0
	}
	binDist := float64(a.Bin - b.Bin)
	if binDist < 0 {
		binDist = -binDist
	}
	if c.scale > 0 {
		binDist /= c.scale
	}
	return 0.5 * (activityCost + binDist)
}

func (c binnedCosts) Equal(a, b BinnedEvent) bool { return a == b }

// variantIndex lets positions into a variant population act as variants
// themselves, so resampled draws of matrix rows form stochastic languages
// directly.
type variantIndex int

func (v variantIndex) Key() string                    { return strconv.Itoa(int(v)) }
func (v variantIndex) Compare(other variantIndex) int { return cmp.Compare(v, other) }

func positions(indices []variantIndex) []int {
	out := make([]int, len(indices))
	for i, v := range indices {
		out[i] = int(v)
	}
	return out
}
