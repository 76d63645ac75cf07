package orders

import (
	"strings"
	"time"
)

// StageStatus represents the lifecycle of a single production stage.
type StageStatus string

const (
	StageNotStarted StageStatus = "not_started"
	StageInProgress StageStatus = "in_progress"
	StageComplete   StageStatus = "complete"
	StageIssue      StageStatus = "issue"
	StageSkipped    StageStatus = "skipped"
)

// SystemActor is the reserved actor recorded on automated transitions,
// such as stages skipped at order creation.
const SystemActor = "system"

var allStageStatuses = []StageStatus{
	StageNotStarted,
	StageInProgress,
	StageComplete,
	StageIssue,
	StageSkipped,
}

var stageStatusSet = func() map[StageStatus]struct{} {
	set := make(map[StageStatus]struct{}, len(allStageStatuses))
	for _, status := range allStageStatuses {
		set[status] = struct{}{}
	}
	return set
}()

// AllStageStatuses returns the known stage statuses.
func AllStageStatuses() []StageStatus {
	cp := make([]StageStatus, len(allStageStatuses))
	copy(cp, allStageStatuses)
	return cp
}

// ParseStageStatus converts a string into a known StageStatus.
func ParseStageStatus(value string) (StageStatus, bool) {
	normalized := StageStatus(strings.ToLower(strings.TrimSpace(value)))
	if normalized == "" {
		return "", false
	}
	_, ok := stageStatusSet[normalized]
	return normalized, ok
}

// Satisfied reports whether the status counts as done for downstream
// stage gating.
func (s StageStatus) Satisfied() bool {
	return s == StageComplete || s == StageSkipped
}

// Terminal reports whether the status admits no further transitions.
func (s StageStatus) Terminal() bool {
	return s == StageComplete || s == StageSkipped
}

// StageRecord captures the state of one stage on one order.
type StageRecord struct {
	Status    StageStatus       `json:"status"`
	Remark    string            `json:"remark,omitempty"`
	UpdatedAt time.Time         `json:"updated_at,omitzero"`
	UpdatedBy string            `json:"updated_by,omitempty"`
	Fields    map[string]string `json:"fields,omitempty"`
}

// CloneFields returns a copy of the stage's attribute bag.
func (r StageRecord) CloneFields() map[string]string {
	if len(r.Fields) == 0 {
		return nil
	}
	cp := make(map[string]string, len(r.Fields))
	for k, v := range r.Fields {
		cp[k] = v
	}
	return cp
}

// Order is a production order persisted in SQLite.
type Order struct {
	ID                string
	CreatedAt         time.Time
	UpdatedAt         time.Time
	CustomerRef       string
	CustomerName      string
	ProductSummary    string
	Quantity          int
	PaymentStatus     string
	DeliveryChannel   string
	AssignedEmployee  string
	SalesOwner        string
	Designer          string
	WantsEngravingTag bool
	WantsRibbon       bool
	Workflow          map[string]StageRecord
	DerivedStatus     string
	HasIssue          bool
	Version           int64
}

// Stage returns the record for a stage id, defaulting to not_started
// when no record exists yet.
func (o *Order) Stage(stageID string) StageRecord {
	if rec, ok := o.Workflow[stageID]; ok {
		return rec
	}
	return StageRecord{Status: StageNotStarted}
}

// Clone returns a deep copy so mutators and readers never share stage
// records or attribute bags.
func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	cp := *o
	if o.Workflow != nil {
		cp.Workflow = make(map[string]StageRecord, len(o.Workflow))
		for id, rec := range o.Workflow {
			rec.Fields = rec.CloneFields()
			cp.Workflow[id] = rec
		}
	}
	return &cp
}
