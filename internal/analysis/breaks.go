package analysis

import (
	"math"
	"sort"
)

// YearValue is one point of a year-indexed series.
type YearValue struct {
	Year  int     `json:"year"`
	Value float64 `json:"value"`
}

// DetectStructuralBreaks flags years whose value deviates from the
// centered rolling mean by more than threshold rolling standard
// deviations. Years where the centered window is incomplete have
// undefined statistics and are never flagged, so under a window of w
// the first (w-1)/2 and last w/2 points structurally cannot be breaks.
// The standard deviation is the sample (n-1) estimate.
func DetectStructuralBreaks(series []YearValue, window int, threshold float64) []int {
	if window < 2 || len(series) < window {
		return nil
	}

	sorted := make([]YearValue, len(series))
	copy(sorted, series)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Year < sorted[j].Year })

	var breaks []int
	for i := range sorted {
		lo := i - (window-1)/2
		hi := i + window/2 // inclusive
		if lo < 0 || hi >= len(sorted) {
			continue
		}

		mean, std := meanStd(sorted[lo : hi+1])
		if std == 0 {
			continue
		}

		z := (sorted[i].Value - mean) / std
		if math.Abs(z) > threshold {
			breaks = append(breaks, sorted[i].Year)
		}
	}

	return breaks
}

func meanStd(points []YearValue) (mean, std float64) {
	n := float64(len(points))
	for _, p := range points {
		mean += p.Value
	}
	mean /= n

	if len(points) < 2 {
		return mean, 0
	}

	var ss float64
	for _, p := range points {
		d := p.Value - mean
		ss += d * d
	}
	return mean, math.Sqrt(ss / (n - 1))
}
