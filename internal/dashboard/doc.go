// Package dashboard groups orders into the fixed monitoring buckets
// (waiting, in_production, ready_to_ship, shipped) plus the overlapping
// has_issue tag, and computes bucket counts for the status views.
package dashboard
