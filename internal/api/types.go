package api

// dateTimeFormat is used for RFC3339 timestamps in API payloads.
const dateTimeFormat = "2006-01-02T15:04:05.000Z07:00"

// StageView describes one workflow stage in a transport-friendly format,
// merging the catalog definition with the order's current record.
type StageView struct {
	ID             string            `json:"id"`
	Rank           int               `json:"rank"`
	Status         string            `json:"status"`
	Remark         string            `json:"remark,omitempty"`
	UpdatedAt      string            `json:"updatedAt,omitempty"`
	UpdatedBy      string            `json:"updatedBy,omitempty"`
	Fields         map[string]string `json:"fields,omitempty"`
	Skippable      bool              `json:"skippable,omitempty"`
	RequiredFields []string          `json:"requiredFields,omitempty"`
}

// OrderView describes a production order with its stages in catalog order.
type OrderView struct {
	ID                string      `json:"id"`
	CreatedAt         string      `json:"createdAt,omitempty"`
	UpdatedAt         string      `json:"updatedAt,omitempty"`
	CustomerRef       string      `json:"customerRef"`
	CustomerName      string      `json:"customerName,omitempty"`
	ProductSummary    string      `json:"productSummary"`
	Quantity          int         `json:"quantity"`
	PaymentStatus     string      `json:"paymentStatus,omitempty"`
	DeliveryChannel   string      `json:"deliveryChannel,omitempty"`
	AssignedEmployee  string      `json:"assignedEmployee,omitempty"`
	SalesOwner        string      `json:"salesOwner,omitempty"`
	Designer          string      `json:"designer,omitempty"`
	WantsEngravingTag bool        `json:"wantsEngravingTag"`
	WantsRibbon       bool        `json:"wantsRibbon"`
	DerivedStatus     string      `json:"derivedStatus"`
	HasIssue          bool        `json:"hasIssue"`
	Version           int64       `json:"version"`
	Stages            []StageView `json:"stages"`
}

// CreateOrderRequest is the POST /api/orders payload.
type CreateOrderRequest struct {
	CustomerRef       string `json:"customerRef"`
	CustomerName      string `json:"customerName"`
	ProductSummary    string `json:"productSummary"`
	Quantity          int    `json:"quantity"`
	PaymentStatus     string `json:"paymentStatus"`
	DeliveryChannel   string `json:"deliveryChannel"`
	AssignedEmployee  string `json:"assignedEmployee"`
	SalesOwner        string `json:"salesOwner"`
	Designer          string `json:"designer"`
	WantsEngravingTag bool   `json:"wantsEngravingTag"`
	WantsRibbon       bool   `json:"wantsRibbon"`
	PreSuppliedStages int    `json:"preSuppliedStages"`
}

// TransitionOrderRequest is the POST /api/orders/{id}/transition payload.
type TransitionOrderRequest struct {
	Stage           string            `json:"stage"`
	Target          string            `json:"target"`
	Actor           string            `json:"actor"`
	Remark          string            `json:"remark"`
	Fields          map[string]string `json:"fields"`
	ExpectedVersion int64             `json:"expectedVersion"`
}

// QueryRequest mirrors the filter criteria accepted by order queries.
type QueryRequest struct {
	Text             string `json:"text"`
	AssignedEmployee string `json:"assignedEmployee"`
	SalesOwner       string `json:"salesOwner"`
	Designer         string `json:"designer"`
	PaymentStatus    string `json:"paymentStatus"`
	DeliveryChannel  string `json:"deliveryChannel"`
	WantsEngraving   *bool  `json:"wantsEngravingTag"`
	WantsRibbon      *bool  `json:"wantsRibbon"`
	Bucket           string `json:"bucket"`
}

// DashboardResponse carries bucket counts for the monitoring view.
type DashboardResponse struct {
	Counts map[string]int `json:"counts"`
	Total  int            `json:"total"`
}

// OrderListResponse wraps a collection of orders for API responses.
type OrderListResponse struct {
	Orders []OrderView `json:"orders"`
}

// OrderResponse wraps a single order.
type OrderResponse struct {
	Order OrderView `json:"order"`
}

// StageCatalogView describes the fixed production sequence.
type StageCatalogView struct {
	Stages []StageView `json:"stages"`
}

// ServiceStatus aggregates server runtime information for API consumers.
type ServiceStatus struct {
	Running        bool           `json:"running"`
	PID            int            `json:"pid"`
	OrderDBPath    string         `json:"orderDbPath"`
	LockFilePath   string         `json:"lockFilePath,omitempty"`
	OrderCount     int            `json:"orderCount"`
	DatabaseHealth bool           `json:"databaseHealthy"`
	Buckets        map[string]int `json:"buckets"`
}
