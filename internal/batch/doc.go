// Package batch renders many documents in one run.
//
// A manifest (YAML) lists credential and label records inline, or names
// readers and shelves to pull from the catalogue. Plan expands it into jobs
// with one output path each; Runner renders them concurrently with a bounded
// worker pool.
//
// Each job succeeds or fails on its own: a failed label never stops the
// rest of the shelf. Two jobs that resolve to the same output path are
// never raced; every job after the first is rejected with ErrDuplicatePath.
package batch
