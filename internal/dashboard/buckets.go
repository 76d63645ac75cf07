package dashboard

import (
	"strings"

	"orderflow/internal/catalog"
	"orderflow/internal/orders"
)

// Bucket is a dashboard-facing grouping over derived order status.
type Bucket string

const (
	BucketWaiting      Bucket = "waiting"
	BucketInProduction Bucket = "in_production"
	BucketReadyToShip  Bucket = "ready_to_ship"
	BucketShipped      Bucket = "shipped"
	BucketHasIssue     Bucket = "has_issue"
)

// exclusiveBuckets partition all orders; has_issue overlaps them as a
// post-hoc tag.
var exclusiveBuckets = []Bucket{
	BucketWaiting,
	BucketInProduction,
	BucketReadyToShip,
	BucketShipped,
}

var bucketSet = func() map[Bucket]struct{} {
	set := make(map[Bucket]struct{}, len(exclusiveBuckets)+1)
	for _, b := range exclusiveBuckets {
		set[b] = struct{}{}
	}
	set[BucketHasIssue] = struct{}{}
	return set
}()

// Buckets returns every known bucket name, exclusive buckets first.
func Buckets() []Bucket {
	out := make([]Bucket, len(exclusiveBuckets), len(exclusiveBuckets)+1)
	copy(out, exclusiveBuckets)
	return append(out, BucketHasIssue)
}

// ParseBucket converts a string into a known Bucket.
func ParseBucket(value string) (Bucket, bool) {
	normalized := Bucket(strings.ToLower(strings.TrimSpace(value)))
	if normalized == "" {
		return "", false
	}
	_, ok := bucketSet[normalized]
	return normalized, ok
}

// BucketOf returns the exclusive bucket for one order. The membership
// rule is fixed:
//
//	waiting       first stage is the bottleneck and still not_started
//	ready_to_ship every stage before shipping is satisfied
//	shipped       every stage is satisfied (derived label delivered)
//	in_production everything else
func BucketOf(cat *catalog.Catalog, order *orders.Order) Bucket {
	d := orders.Derive(cat, order.Workflow)
	switch {
	case d.Label == orders.LabelDelivered:
		return BucketShipped
	case d.Stage == cat.Last().ID:
		return BucketReadyToShip
	case d.Stage == cat.First().ID && d.Status == orders.StageNotStarted:
		return BucketWaiting
	default:
		return BucketInProduction
	}
}

// Matches reports whether an order belongs to the named bucket,
// including the overlapping has_issue tag.
func Matches(cat *catalog.Catalog, order *orders.Order, bucket Bucket) bool {
	if bucket == BucketHasIssue {
		return orders.Derive(cat, order.Workflow).HasIssue
	}
	return BucketOf(cat, order) == bucket
}

// CountByBucket computes dashboard counts over the order population.
// The four exclusive buckets are pairwise disjoint and cover every
// order; has_issue counts overlap with them.
func CountByBucket(cat *catalog.Catalog, list []*orders.Order) map[Bucket]int {
	counts := make(map[Bucket]int, len(bucketSet))
	for _, b := range Buckets() {
		counts[b] = 0
	}
	for _, order := range list {
		counts[BucketOf(cat, order)]++
		if orders.Derive(cat, order.Workflow).HasIssue {
			counts[BucketHasIssue]++
		}
	}
	return counts
}
