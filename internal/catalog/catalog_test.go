package catalog_test

import (
	"testing"

	"orderflow/internal/catalog"
)

func TestDefaultCatalogOrdering(t *testing.T) {
	cat := catalog.Default()
	stages := cat.StagesInOrder()
	if len(stages) != 8 {
		t.Fatalf("expected 8 stages, got %d", len(stages))
	}
	last := 0
	for _, stage := range stages {
		if stage.Order <= last {
			t.Fatalf("stage %s order %d not strictly increasing", stage.ID, stage.Order)
		}
		last = stage.Order
	}
	if cat.First().ID != catalog.StageProcurement {
		t.Fatalf("expected first stage procurement, got %s", cat.First().ID)
	}
	if cat.Last().ID != catalog.StageShipping {
		t.Fatalf("expected last stage shipping, got %s", cat.Last().ID)
	}
}

func TestSkippableStages(t *testing.T) {
	cat := catalog.Default()
	if !cat.IsSkippable(catalog.StageRibbon) {
		t.Fatal("ribbon should be skippable")
	}
	if !cat.IsSkippable(catalog.StageLabeling) {
		t.Fatal("labeling should be skippable")
	}
	if cat.IsSkippable(catalog.StageQC) {
		t.Fatal("qc should not be skippable")
	}
	if cat.IsSkippable("no_such_stage") {
		t.Fatal("unknown stage should not be skippable")
	}
}

func TestRequiredFields(t *testing.T) {
	cat := catalog.Default()
	packing := cat.RequiredFields(catalog.StagePacking)
	if len(packing) != 1 || packing[0] != catalog.FieldBoxCount {
		t.Fatalf("unexpected packing required fields: %v", packing)
	}
	shipping := cat.RequiredFields(catalog.StageShipping)
	if len(shipping) != 2 {
		t.Fatalf("unexpected shipping required fields: %v", shipping)
	}
	if fields := cat.RequiredFields(catalog.StageAssembly); fields != nil {
		t.Fatalf("assembly should have no required fields, got %v", fields)
	}
}

func TestBefore(t *testing.T) {
	cat := catalog.Default()
	before := cat.Before(catalog.StageQC)
	if len(before) != 4 {
		t.Fatalf("expected 4 stages before qc, got %d", len(before))
	}
	if before[len(before)-1].ID != catalog.StageLabeling {
		t.Fatalf("unexpected stage immediately before qc: %s", before[len(before)-1].ID)
	}
	if cat.Before(catalog.StageProcurement) != nil {
		t.Fatal("expected no stages before the first stage")
	}
}

func TestNewRejectsBadCatalogs(t *testing.T) {
	if _, err := catalog.New(nil); err == nil {
		t.Fatal("expected error for empty catalog")
	}
	if _, err := catalog.New([]catalog.StageDefinition{
		{ID: "a", Order: 1},
		{ID: "a", Order: 2},
	}); err == nil {
		t.Fatal("expected error for duplicate stage id")
	}
	if _, err := catalog.New([]catalog.StageDefinition{
		{ID: "a", Order: 2},
		{ID: "b", Order: 2},
	}); err == nil {
		t.Fatal("expected error for non-increasing order")
	}
}
