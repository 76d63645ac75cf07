// Package workflow is the transition engine for production orders.
//
// The Manager is the only writer of stage state: it looks up the stage
// in the catalog, validates the requested status change against the
// per-stage state machine (not_started -> in_progress/skipped,
// in_progress <-> issue, in_progress/issue -> complete), enforces
// sequential gating and required stage fields for completion, and
// recomputes the cached derived status inside the same store mutation.
// Skips require catalog eligibility and are otherwise only produced
// automatically at order creation for stages the order did not request.
package workflow
