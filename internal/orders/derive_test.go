package orders_test

import (
	"testing"

	"orderflow/internal/catalog"
	"orderflow/internal/orders"
)

func workflowWith(cat *catalog.Catalog, statuses map[string]orders.StageStatus) map[string]orders.StageRecord {
	wf := make(map[string]orders.StageRecord, cat.Len())
	for _, stage := range cat.StagesInOrder() {
		status, ok := statuses[stage.ID]
		if !ok {
			status = orders.StageNotStarted
		}
		wf[stage.ID] = orders.StageRecord{Status: status}
	}
	return wf
}

func TestDeriveWaitingOnFirstUnsatisfiedStage(t *testing.T) {
	cat := catalog.Default()
	wf := workflowWith(cat, map[string]orders.StageStatus{
		catalog.StageProcurement: orders.StageComplete,
		catalog.StageAssembly:    orders.StageComplete,
		catalog.StageRibbon:      orders.StageSkipped,
	})

	d := orders.Derive(cat, wf)
	if d.Label != "waiting:labeling" {
		t.Fatalf("label = %q, want waiting:labeling", d.Label)
	}
	if d.Stage != catalog.StageLabeling || d.Status != orders.StageNotStarted {
		t.Fatalf("bottleneck = %s/%s", d.Stage, d.Status)
	}
	if d.HasIssue {
		t.Fatal("no issue expected")
	}
}

func TestDeriveBlockedOnIssueAtBottleneck(t *testing.T) {
	cat := catalog.Default()
	wf := workflowWith(cat, map[string]orders.StageStatus{
		catalog.StageProcurement: orders.StageComplete,
		catalog.StageAssembly:    orders.StageComplete,
		catalog.StageRibbon:      orders.StageSkipped,
		catalog.StageLabeling:    orders.StageSkipped,
		catalog.StageQC:          orders.StageIssue,
	})

	d := orders.Derive(cat, wf)
	if d.Label != "blocked:qc" {
		t.Fatalf("label = %q, want blocked:qc", d.Label)
	}
	if !d.HasIssue {
		t.Fatal("issue flag should be set")
	}
}

func TestDeriveDeliveredWhenAllSatisfied(t *testing.T) {
	cat := catalog.Default()
	statuses := make(map[string]orders.StageStatus)
	for _, stage := range cat.StagesInOrder() {
		statuses[stage.ID] = orders.StageComplete
	}
	statuses[catalog.StageRibbon] = orders.StageSkipped

	d := orders.Derive(cat, workflowWith(cat, statuses))
	if d.Label != orders.LabelDelivered {
		t.Fatalf("label = %q, want %q", d.Label, orders.LabelDelivered)
	}
	if d.Stage != "" {
		t.Fatalf("delivered order has no bottleneck, got %q", d.Stage)
	}
}

func TestDeriveTreatsMissingRecordsAsNotStarted(t *testing.T) {
	cat := catalog.Default()

	d := orders.Derive(cat, map[string]orders.StageRecord{})
	if d.Label != "waiting:procurement" {
		t.Fatalf("label = %q, want waiting:procurement", d.Label)
	}
}

func TestApplyDerivedCachesLabelAndIssueFlag(t *testing.T) {
	cat := catalog.Default()
	o := &orders.Order{
		Workflow: workflowWith(cat, map[string]orders.StageStatus{
			catalog.StageProcurement: orders.StageIssue,
		}),
	}

	o.ApplyDerived(cat)
	if o.DerivedStatus != "blocked:procurement" || !o.HasIssue {
		t.Fatalf("cached derived = %q issue=%v", o.DerivedStatus, o.HasIssue)
	}
}

func TestLabelStage(t *testing.T) {
	if got := orders.LabelStage("waiting:qc"); got != "qc" {
		t.Fatalf("LabelStage(waiting:qc) = %q", got)
	}
	if got := orders.LabelStage("blocked:packing"); got != "packing" {
		t.Fatalf("LabelStage(blocked:packing) = %q", got)
	}
	if got := orders.LabelStage(orders.LabelDelivered); got != "" {
		t.Fatalf("LabelStage(delivered) = %q, want empty", got)
	}
}
