// Package dataset loads trade tables from disk, merges monthly-derived
// aggregates with historical annual data, and persists snapshot files.
//
// # File handling
//
// Input tables are accepted as CSV or as the first sheet of an xlsx
// workbook; both come back as raw string rows so the parsing packages
// own all cell interpretation. Snapshot output is CSV with a fixed
// column order and an atomic temp-file-then-rename write, so a crashed
// run never leaves a half-written snapshot behind.
//
// # Merge policy
//
// When monthly-derived and historical annual data overlap, the
// monthly-derived side wins: the cutoff year is one less than the
// earliest monthly-derived year and historical rows are only kept at or
// below it. Kept historical rows are stamped as complete years.
package dataset
