package catalog

import (
	"fmt"
)

// Stage identifiers for the default production sequence.
const (
	StageProcurement  = "procurement"
	StageAssembly     = "assembly"
	StageRibbon       = "ribbon"
	StageLabeling     = "labeling"
	StageQC           = "qc"
	StagePacking      = "packing"
	StageDeliverySlip = "delivery_slip"
	StageShipping     = "shipping"
)

// Stage-specific attribute names validated before a stage completes.
const (
	FieldBoxCount       = "box_count"
	FieldCarrierName    = "carrier_name"
	FieldTrackingNumber = "tracking_number"
)

// StageDefinition describes one step in the fixed production sequence.
type StageDefinition struct {
	ID             string
	Order          int
	Skippable      bool
	RequiredFields []string
}

// Catalog is the read-only, ordered set of stage definitions shared by
// every order of a job type.
type Catalog struct {
	stages []StageDefinition
	byID   map[string]StageDefinition
}

// New validates the stage list and builds a catalog. Errors here are
// configuration errors and should abort startup, not be reported per
// request.
func New(stages []StageDefinition) (*Catalog, error) {
	if len(stages) == 0 {
		return nil, fmt.Errorf("catalog: no stages defined")
	}
	byID := make(map[string]StageDefinition, len(stages))
	lastOrder := 0
	for i, stage := range stages {
		if stage.ID == "" {
			return nil, fmt.Errorf("catalog: stage %d has empty id", i)
		}
		if _, exists := byID[stage.ID]; exists {
			return nil, fmt.Errorf("catalog: duplicate stage id %q", stage.ID)
		}
		if i > 0 && stage.Order <= lastOrder {
			return nil, fmt.Errorf("catalog: stage %q order %d is not strictly increasing", stage.ID, stage.Order)
		}
		lastOrder = stage.Order
		byID[stage.ID] = stage
	}
	cp := make([]StageDefinition, len(stages))
	copy(cp, stages)
	return &Catalog{stages: cp, byID: byID}, nil
}

// Default returns the production stage catalog. The ribbon and labeling
// stages are skippable because an order may not request them.
func Default() *Catalog {
	cat, err := New([]StageDefinition{
		{ID: StageProcurement, Order: 1},
		{ID: StageAssembly, Order: 2},
		{ID: StageRibbon, Order: 3, Skippable: true},
		{ID: StageLabeling, Order: 4, Skippable: true},
		{ID: StageQC, Order: 5},
		{ID: StagePacking, Order: 6, RequiredFields: []string{FieldBoxCount}},
		{ID: StageDeliverySlip, Order: 7},
		{ID: StageShipping, Order: 8, RequiredFields: []string{FieldCarrierName, FieldTrackingNumber}},
	})
	if err != nil {
		panic(err)
	}
	return cat
}

// StagesInOrder returns the stage definitions in ascending order rank.
func (c *Catalog) StagesInOrder() []StageDefinition {
	cp := make([]StageDefinition, len(c.stages))
	copy(cp, c.stages)
	return cp
}

// Lookup returns the definition for a stage id.
func (c *Catalog) Lookup(stageID string) (StageDefinition, bool) {
	def, ok := c.byID[stageID]
	return def, ok
}

// IsSkippable reports whether a stage may be bypassed.
func (c *Catalog) IsSkippable(stageID string) bool {
	def, ok := c.byID[stageID]
	return ok && def.Skippable
}

// RequiredFields returns the attribute names that must be present before
// the stage completes.
func (c *Catalog) RequiredFields(stageID string) []string {
	def, ok := c.byID[stageID]
	if !ok || len(def.RequiredFields) == 0 {
		return nil
	}
	cp := make([]string, len(def.RequiredFields))
	copy(cp, def.RequiredFields)
	return cp
}

// First returns the lowest-ranked stage.
func (c *Catalog) First() StageDefinition {
	return c.stages[0]
}

// Last returns the highest-ranked stage.
func (c *Catalog) Last() StageDefinition {
	return c.stages[len(c.stages)-1]
}

// Before returns the definitions of every stage ranked below stageID.
func (c *Catalog) Before(stageID string) []StageDefinition {
	var out []StageDefinition
	for _, stage := range c.stages {
		if stage.ID == stageID {
			return out
		}
		out = append(out, stage)
	}
	return nil
}

// Len returns the number of stages in the catalog.
func (c *Catalog) Len() int {
	return len(c.stages)
}
