// Package analysis implements the concentration and structural-shift
// metrics over reconciled trade datasets.
//
// # Metrics
//
//  1. HHI: Herfindahl-Hirschman Index per (year, trade type) group with
//     the conventional 1,500 / 2,500 concentration thresholds.
//  2. Structural breaks: centered rolling z-score detection over a
//     year-indexed series; edge years with incomplete windows are never
//     flagged.
//  3. Shift analysis: outer-joined before/after comparison between two
//     years with per-endpoint shares, competition ranking, top movers
//     and aggregate totals.
//  4. Emerging partners: lookback screening on window growth and
//     final-year share.
//  5. Trade balance and named-period aggregation.
//
// All functions are pure over their inputs and return new values; the
// package performs no I/O.
package analysis
