package orders_test

import (
	"testing"

	"orderflow/internal/orders"
)

func TestParseStageStatus(t *testing.T) {
	if status, ok := orders.ParseStageStatus(" In_Progress "); !ok || status != orders.StageInProgress {
		t.Fatalf("normalized parse failed: %v %v", status, ok)
	}
	if _, ok := orders.ParseStageStatus("done"); ok {
		t.Fatal("unknown status should not parse")
	}
	if _, ok := orders.ParseStageStatus(""); ok {
		t.Fatal("empty status should not parse")
	}
}

func TestStatusPredicates(t *testing.T) {
	for _, status := range []orders.StageStatus{orders.StageComplete, orders.StageSkipped} {
		if !status.Satisfied() || !status.Terminal() {
			t.Fatalf("%s should be satisfied and terminal", status)
		}
	}
	for _, status := range []orders.StageStatus{orders.StageNotStarted, orders.StageInProgress, orders.StageIssue} {
		if status.Satisfied() || status.Terminal() {
			t.Fatalf("%s should be neither satisfied nor terminal", status)
		}
	}
}

func TestOrderStageDefaultsToNotStarted(t *testing.T) {
	o := &orders.Order{Workflow: map[string]orders.StageRecord{}}
	if rec := o.Stage("qc"); rec.Status != orders.StageNotStarted {
		t.Fatalf("missing stage should default to not_started, got %s", rec.Status)
	}
}

func TestCloneIsDeep(t *testing.T) {
	original := &orders.Order{
		ID: "ord-1",
		Workflow: map[string]orders.StageRecord{
			"packing": {
				Status: orders.StageInProgress,
				Fields: map[string]string{"box_count": "2"},
			},
		},
	}

	cp := original.Clone()
	rec := cp.Workflow["packing"]
	rec.Status = orders.StageComplete
	rec.Fields["box_count"] = "9"
	cp.Workflow["packing"] = rec

	if original.Workflow["packing"].Status != orders.StageInProgress {
		t.Fatal("clone mutation leaked into original status")
	}
	if original.Workflow["packing"].Fields["box_count"] != "2" {
		t.Fatal("clone mutation leaked into original fields")
	}
}
