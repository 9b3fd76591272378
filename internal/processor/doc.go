// Package processor maps a directory tree onto per-file pipelines and runs
// them across a bounded worker pool. Destination directories are created in
// a separate fan-out that completes before any file is written; per-file
// outcomes are aggregated into a summary and a combined error instead of
// aborting the whole operation on the first failure.
package processor
