// Package search filters order lists by free text, people, business
// attributes, feature flags, and dashboard bucket. Criteria combine as
// a conjunction; the text term searches id, customer name, and product
// summary.
package search
