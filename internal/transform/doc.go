// Package transform holds the pure per-record derivation stages of the
// pipeline: inflation adjustment against a year-indexed deflator table,
// market share computation with dynamic partition totals, and
// year-over-year growth. Each function returns a new slice; inputs are
// never mutated. Absent derivations are carried as tagged measures
// (missing vs undefined) instead of raw NaN.
package transform
