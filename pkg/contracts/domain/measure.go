package domain

import "math"

// MeasureKind tags why a derived value may be absent. Keeping the causes
// distinct means "undefined growth" and "missing deflator" stay
// distinguishable instead of both collapsing into one NaN.
type MeasureKind int

const (
	// MeasureDefined marks a present, finite value.
	MeasureDefined MeasureKind = iota
	// MeasureUndefined marks a value with no mathematical definition,
	// such as growth with no prior year or a zero denominator.
	MeasureUndefined
	// MeasureMissing marks a value lost to a reference-data gap,
	// such as a year absent from the deflator table.
	MeasureMissing
)

// String returns the string representation of the kind.
func (k MeasureKind) String() string {
	switch k {
	case MeasureDefined:
		return "defined"
	case MeasureUndefined:
		return "undefined"
	case MeasureMissing:
		return "missing"
	default:
		return "unknown"
	}
}

// Measure is a sentinel-tagged optional float64 used for all derived
// metrics. The zero value is a defined 0.
type Measure struct {
	Value float64     `json:"value"`
	Kind  MeasureKind `json:"kind"`
}

// Defined returns a present measure.
func Defined(v float64) Measure {
	return Measure{Value: v, Kind: MeasureDefined}
}

// Undefined returns a measure with no mathematical definition.
func Undefined() Measure {
	return Measure{Kind: MeasureUndefined}
}

// Missing returns a measure lost to a reference-data gap.
func Missing() Measure {
	return Measure{Kind: MeasureMissing}
}

// IsDefined reports whether the measure holds a usable value.
func (m Measure) IsDefined() bool {
	return m.Kind == MeasureDefined
}

// Float64 returns the value, or NaN when the measure is not defined.
// Non-finite propagation keeps downstream sums visibly degraded rather
// than silently omitting a country-year.
func (m Measure) Float64() float64 {
	if m.Kind != MeasureDefined {
		return math.NaN()
	}
	return m.Value
}
