package orders

import (
	"strings"

	"orderflow/internal/catalog"
)

// LabelDelivered is the terminal derived status once every stage is
// complete or skipped.
const LabelDelivered = "delivered"

const (
	waitingPrefix = "waiting:"
	blockedPrefix = "blocked:"
)

// Derived is the externally visible status computed from stage states.
// Stage identifies the bottleneck: the first catalog stage that is
// neither complete nor skipped. It is empty once the order is delivered.
type Derived struct {
	Label    string
	Stage    string
	Status   StageStatus
	HasIssue bool
}

// Derive scans stages in catalog order and maps the workflow to a single
// human-facing label plus the issue flag. It is pure and deterministic;
// cached copies on the order must always be recomputed through it.
func Derive(cat *catalog.Catalog, workflow map[string]StageRecord) Derived {
	d := Derived{Label: LabelDelivered}
	for _, stage := range cat.StagesInOrder() {
		rec, ok := workflow[stage.ID]
		if !ok {
			rec = StageRecord{Status: StageNotStarted}
		}
		if rec.Status == StageIssue {
			d.HasIssue = true
		}
		if d.Stage == "" && !rec.Status.Satisfied() {
			d.Stage = stage.ID
			d.Status = rec.Status
			if rec.Status == StageIssue {
				d.Label = BlockedLabel(stage.ID)
			} else {
				d.Label = WaitingLabel(stage.ID)
			}
		}
	}
	return d
}

// ApplyDerived recomputes and caches the derived status on the order.
// Callers must invoke it inside the same mutation that changed Workflow.
func (o *Order) ApplyDerived(cat *catalog.Catalog) Derived {
	d := Derive(cat, o.Workflow)
	o.DerivedStatus = d.Label
	o.HasIssue = d.HasIssue
	return d
}

// WaitingLabel formats the label for an order waiting on a stage.
func WaitingLabel(stageID string) string {
	return waitingPrefix + stageID
}

// BlockedLabel formats the issue-qualified label for a stage with a
// reported problem.
func BlockedLabel(stageID string) string {
	return blockedPrefix + stageID
}

// LabelStage extracts the stage id from a derived label, or "" for the
// terminal delivered label.
func LabelStage(label string) string {
	switch {
	case strings.HasPrefix(label, waitingPrefix):
		return strings.TrimPrefix(label, waitingPrefix)
	case strings.HasPrefix(label, blockedPrefix):
		return strings.TrimPrefix(label, blockedPrefix)
	default:
		return ""
	}
}
