// Package orders owns the production order model and its persistence.
//
// An Order carries one StageRecord per catalog stage in a JSON-backed
// workflow map, plus the cached derived status and issue flag computed
// by Derive. The Store is the single mutation boundary: every write goes
// through Update, which applies a mutator to a copy of the stored order
// and commits guarded by the caller's expected version, so concurrent
// writers against the same order resolve to exactly one winner and one
// ErrConflict.
//
// The sentinel errors in errors.go (ErrValidation, ErrNotFound,
// ErrInvalidTransition, ErrConflict) classify every failure the core
// reports; callers branch with errors.Is.
package orders
