// Package pipeline orchestrates the full reconciliation run: monthly
// parsing, annual aggregation, historical merging, name normalization,
// inflation adjustment, derived metrics and snapshot persistence.
//
// A run is a single-threaded batch identified by a uuid; every log line
// of a run carries its id. Stages are pure functions from the sibling
// packages and the processor only sequences them and performs I/O at
// the edges.
package pipeline
