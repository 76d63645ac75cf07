package search

import (
	"strings"

	"golang.org/x/text/cases"

	"orderflow/internal/catalog"
	"orderflow/internal/dashboard"
	"orderflow/internal/orders"
)

// Criteria is a conjunction of optional filters. Zero values mean "do
// not filter on this attribute"; the boolean flags use pointers so that
// filtering on false is still expressible.
type Criteria struct {
	Text string

	AssignedEmployee string
	SalesOwner       string
	Designer         string
	PaymentStatus    string
	DeliveryChannel  string

	WantsEngravingTag *bool
	WantsRibbon       *bool

	Bucket string
}

// Empty reports whether the criteria match every order.
func (c Criteria) Empty() bool {
	return c.Text == "" &&
		c.AssignedEmployee == "" && c.SalesOwner == "" && c.Designer == "" &&
		c.PaymentStatus == "" && c.DeliveryChannel == "" &&
		c.WantsEngravingTag == nil && c.WantsRibbon == nil &&
		c.Bucket == ""
}

// Apply filters the order list, preserving input order. All populated
// criteria must match (AND); the free-text term matches the order id,
// customer name, or product summary (OR), case-insensitively.
func Apply(cat *catalog.Catalog, list []*orders.Order, criteria Criteria) ([]*orders.Order, error) {
	var bucket dashboard.Bucket
	if criteria.Bucket != "" {
		parsed, ok := dashboard.ParseBucket(criteria.Bucket)
		if !ok {
			return nil, orders.Wrap(orders.ErrValidation, "search", "filter",
				"unknown bucket "+criteria.Bucket, nil)
		}
		bucket = parsed
	}

	term := fold(strings.TrimSpace(criteria.Text))

	out := make([]*orders.Order, 0, len(list))
	for _, order := range list {
		if !matchExact(criteria.AssignedEmployee, order.AssignedEmployee) ||
			!matchExact(criteria.SalesOwner, order.SalesOwner) ||
			!matchExact(criteria.Designer, order.Designer) ||
			!matchExact(criteria.PaymentStatus, order.PaymentStatus) ||
			!matchExact(criteria.DeliveryChannel, order.DeliveryChannel) {
			continue
		}
		if criteria.WantsEngravingTag != nil && order.WantsEngravingTag != *criteria.WantsEngravingTag {
			continue
		}
		if criteria.WantsRibbon != nil && order.WantsRibbon != *criteria.WantsRibbon {
			continue
		}
		if bucket != "" && !dashboard.Matches(cat, order, bucket) {
			continue
		}
		if term != "" && !matchText(term, order) {
			continue
		}
		out = append(out, order)
	}
	return out, nil
}

// matchExact compares a populated filter value case-insensitively.
func matchExact(want, got string) bool {
	if want == "" {
		return true
	}
	return fold(want) == fold(got)
}

// matchText checks the folded term against the searchable order fields.
func matchText(term string, order *orders.Order) bool {
	return strings.Contains(fold(order.ID), term) ||
		strings.Contains(fold(order.CustomerName), term) ||
		strings.Contains(fold(order.ProductSummary), term)
}

// fold lowercases with full Unicode case folding. cases.Caser carries
// state, so a fresh one is taken per call.
func fold(s string) string {
	if s == "" {
		return ""
	}
	return cases.Fold().String(s)
}
