// Package catalog defines the static, ordered production stage sequence.
//
// The catalog is read-only configuration shared by all orders of a job
// type: each stage carries a strictly increasing order rank, a skippable
// flag, and the attribute names that must be populated before the stage
// can complete. Unknown stage ids are programmer errors surfaced when the
// catalog is built, never at request time.
package catalog
