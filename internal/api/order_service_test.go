package api_test

import (
	"context"
	"errors"
	"testing"

	"orderflow/internal/api"
	"orderflow/internal/catalog"
	"orderflow/internal/orders"
	"orderflow/internal/testsupport"
)

func newService(t *testing.T) *api.OrderService {
	t.Helper()
	return api.NewOrderService(testsupport.NewManager(t))
}

func TestCreateReturnsStagesInCatalogOrder(t *testing.T) {
	svc := newService(t)

	view, err := svc.Create(context.Background(), api.CreateOrderRequest{
		CustomerRef:    "PO-2001",
		ProductSummary: "walnut jewelry box",
		WantsRibbon:    true,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	cat := catalog.Default()
	if len(view.Stages) != cat.Len() {
		t.Fatalf("view has %d stages, want %d", len(view.Stages), cat.Len())
	}
	for i, def := range cat.StagesInOrder() {
		if view.Stages[i].ID != def.ID {
			t.Fatalf("stage %d = %s, want %s", i, view.Stages[i].ID, def.ID)
		}
	}
	if view.DerivedStatus != "waiting:procurement" {
		t.Fatalf("derived = %q", view.DerivedStatus)
	}
	// Engraving was not requested, so labeling is already skipped.
	for _, sv := range view.Stages {
		if sv.ID == catalog.StageLabeling && sv.Status != string(orders.StageSkipped) {
			t.Fatalf("labeling status = %s", sv.Status)
		}
	}
}

func TestTransitionRoundTrip(t *testing.T) {
	svc := newService(t)

	created, err := svc.Create(context.Background(), api.CreateOrderRequest{
		CustomerRef:    "PO-2002",
		ProductSummary: "oak picture frame",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	view, err := svc.Transition(context.Background(), created.ID, api.TransitionOrderRequest{
		Stage:           catalog.StageProcurement,
		Target:          "in_progress",
		Actor:           "lee",
		ExpectedVersion: created.Version,
	})
	if err != nil {
		t.Fatalf("transition: %v", err)
	}
	if view.Version != created.Version+1 {
		t.Fatalf("version = %d, want %d", view.Version, created.Version+1)
	}

	described, err := svc.Describe(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("describe: %v", err)
	}
	if described.Stages[0].Status != string(orders.StageInProgress) {
		t.Fatalf("procurement status = %s", described.Stages[0].Status)
	}
	if described.Stages[0].UpdatedBy != "lee" {
		t.Fatalf("procurement actor = %q", described.Stages[0].UpdatedBy)
	}
}

func TestDescribeUnknownOrder(t *testing.T) {
	svc := newService(t)

	_, err := svc.Describe(context.Background(), "missing")
	if !errors.Is(err, orders.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestQueryFiltersByBucket(t *testing.T) {
	svc := newService(t)

	for i := 0; i < 2; i++ {
		if _, err := svc.Create(context.Background(), api.CreateOrderRequest{
			CustomerRef:    "PO-3000",
			ProductSummary: "serving tray",
		}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	views, err := svc.Query(context.Background(), api.QueryRequest{Bucket: "waiting"})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("waiting bucket has %d orders, want 2", len(views))
	}

	if _, err := svc.Query(context.Background(), api.QueryRequest{Bucket: "nope"}); !errors.Is(err, orders.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDashboardCounts(t *testing.T) {
	svc := newService(t)

	if _, err := svc.Create(context.Background(), api.CreateOrderRequest{
		CustomerRef:    "PO-4000",
		ProductSummary: "serving tray",
	}); err != nil {
		t.Fatalf("create: %v", err)
	}

	resp, err := svc.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if resp.Total != 1 || resp.Counts["waiting"] != 1 {
		t.Fatalf("dashboard = %+v", resp)
	}
}

func TestCatalogView(t *testing.T) {
	svc := newService(t)

	view := svc.Catalog()
	if len(view.Stages) != catalog.Default().Len() {
		t.Fatalf("catalog view has %d stages", len(view.Stages))
	}
	last := view.Stages[len(view.Stages)-1]
	if last.ID != catalog.StageShipping || len(last.RequiredFields) != 2 {
		t.Fatalf("shipping view = %+v", last)
	}
}
