package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"orderflow/internal/catalog"
	"orderflow/internal/logging"
	"orderflow/internal/orders"
)

// Manager validates and applies stage transitions against the catalog.
// Every order mutation flows through it so the invariants in the orders
// package hold after each commit.
type Manager struct {
	store   *orders.Store
	catalog *catalog.Catalog
	logger  *slog.Logger

	defaultActor   string
	preSuppliedCap int
}

// Option customizes manager construction.
type Option func(*Manager)

// WithDefaultActor sets the actor recorded when a request omits one.
func WithDefaultActor(actor string) Option {
	return func(m *Manager) {
		if actor = strings.TrimSpace(actor); actor != "" {
			m.defaultActor = actor
		}
	}
}

// WithPreSuppliedCap limits how many leading stages may be created
// pre-complete. Zero means the full catalog length is allowed.
func WithPreSuppliedCap(n int) Option {
	return func(m *Manager) {
		if n > 0 {
			m.preSuppliedCap = n
		}
	}
}

// NewManager constructs a Manager around the store and catalog.
func NewManager(store *orders.Store, cat *catalog.Catalog, logger *slog.Logger, opts ...Option) *Manager {
	m := &Manager{
		store:        store,
		catalog:      cat,
		logger:       logging.NewComponentLogger(logger, "workflow"),
		defaultActor: "unattributed",
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Catalog returns the stage catalog the manager validates against.
func (m *Manager) Catalog() *catalog.Catalog {
	return m.catalog
}

// GetOrder fetches one order by identifier.
func (m *Manager) GetOrder(ctx context.Context, id string) (*orders.Order, error) {
	return m.store.GetByID(ctx, id)
}

// ListOrders returns every order ordered by creation time.
func (m *Manager) ListOrders(ctx context.Context) ([]*orders.Order, error) {
	return m.store.List(ctx)
}

// CreateRequest carries the business fields collaborators supply when
// registering a new production order.
type CreateRequest struct {
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

	// PreSuppliedStages marks the first N stages complete at creation,
	// for jobs whose materials arrive pre-supplied from an external
	// factory. Recorded with the reserved system actor.
	PreSuppliedStages int
}

// CreateOrder initializes every catalog stage to not_started, skips the
// stages the order's feature flags disable, applies pre-supplied stages,
// derives the cached status, and persists the order.
func (m *Manager) CreateOrder(ctx context.Context, req CreateRequest) (*orders.Order, error) {
	limit := m.catalog.Len()
	if m.preSuppliedCap > 0 && m.preSuppliedCap < limit {
		limit = m.preSuppliedCap
	}
	if req.PreSuppliedStages < 0 || req.PreSuppliedStages > limit {
		return nil, orders.Wrap(orders.ErrValidation, "workflow", "create",
			fmt.Sprintf("pre_supplied_stages must be between 0 and %d", limit), nil)
	}

	order := &orders.Order{
		CustomerRef:       strings.TrimSpace(req.CustomerRef),
		CustomerName:      strings.TrimSpace(req.CustomerName),
		ProductSummary:    strings.TrimSpace(req.ProductSummary),
		Quantity:          req.Quantity,
		PaymentStatus:     strings.TrimSpace(req.PaymentStatus),
		DeliveryChannel:   strings.TrimSpace(req.DeliveryChannel),
		AssignedEmployee:  strings.TrimSpace(req.AssignedEmployee),
		SalesOwner:        strings.TrimSpace(req.SalesOwner),
		Designer:          strings.TrimSpace(req.Designer),
		WantsEngravingTag: req.WantsEngravingTag,
		WantsRibbon:       req.WantsRibbon,
		Workflow:          make(map[string]orders.StageRecord, m.catalog.Len()),
	}

	now := time.Now().UTC()
	for i, stage := range m.catalog.StagesInOrder() {
		rec := orders.StageRecord{Status: orders.StageNotStarted}
		switch {
		case stage.Skippable && !m.stageRequested(stage.ID, req):
			rec = orders.StageRecord{
				Status:    orders.StageSkipped,
				Remark:    "not requested for this order",
				UpdatedAt: now,
				UpdatedBy: orders.SystemActor,
			}
		case i < req.PreSuppliedStages:
			rec = orders.StageRecord{
				Status:    orders.StageComplete,
				Remark:    "pre-supplied by external factory",
				UpdatedAt: now,
				UpdatedBy: orders.SystemActor,
			}
		}
		order.Workflow[stage.ID] = rec
	}

	order.ApplyDerived(m.catalog)

	created, err := m.store.Create(ctx, order)
	if err != nil {
		return nil, err
	}

	m.logger.Info("order created",
		logging.String(logging.FieldOrderID, created.ID),
		logging.String("derived_status", created.DerivedStatus),
		logging.Int("pre_supplied_stages", req.PreSuppliedStages))
	return created, nil
}

// stageRequested maps the skippable catalog stages to the order feature
// flags that enable them.
func (m *Manager) stageRequested(stageID string, req CreateRequest) bool {
	switch stageID {
	case catalog.StageRibbon:
		return req.WantsRibbon
	case catalog.StageLabeling:
		return req.WantsEngravingTag
	default:
		return true
	}
}

// TransitionRequest describes one stage-status change on one order.
type TransitionRequest struct {
	OrderID         string
	StageID         string
	Target          orders.StageStatus
	Actor           string
	Remark          string
	Fields          map[string]string
	ExpectedVersion int64
}

// TransitionStage validates the requested transition against the catalog
// and the per-stage state machine, applies it, recomputes the derived
// status, and commits through the store. A failure leaves the order
// entirely unchanged.
func (m *Manager) TransitionStage(ctx context.Context, req TransitionRequest) (*orders.Order, error) {
	stageDef, ok := m.catalog.Lookup(req.StageID)
	if !ok {
		return nil, orders.Wrap(orders.ErrNotFound, "workflow", "transition",
			fmt.Sprintf("unknown stage %q", req.StageID), nil)
	}
	if _, known := orders.ParseStageStatus(string(req.Target)); !known {
		return nil, orders.Wrap(orders.ErrValidation, "workflow", "transition",
			fmt.Sprintf("unknown status %q", req.Target), nil)
	}

	actor := strings.TrimSpace(req.Actor)
	if actor == "" {
		actor = m.defaultActor
	}

	updated, err := m.store.Update(ctx, req.OrderID, req.ExpectedVersion, func(o *orders.Order) error {
		rec := o.Stage(stageDef.ID)

		if err := m.checkTransition(stageDef, rec, req.Target); err != nil {
			return err
		}

		merged := mergeFields(rec.Fields, req.Fields)
		if req.Target == orders.StageComplete {
			if err := m.checkCompletion(o, stageDef, merged); err != nil {
				return err
			}
		}

		rec.Status = req.Target
		rec.Remark = strings.TrimSpace(req.Remark)
		rec.UpdatedAt = time.Now().UTC()
		rec.UpdatedBy = actor
		rec.Fields = merged
		o.Workflow[stageDef.ID] = rec

		o.ApplyDerived(m.catalog)
		return nil
	})
	if err != nil {
		return nil, err
	}

	m.logger.Info("stage transitioned",
		logging.String(logging.FieldOrderID, updated.ID),
		logging.String(logging.FieldStage, stageDef.ID),
		logging.String("status", string(req.Target)),
		logging.String(logging.FieldActor, actor),
		logging.String("derived_status", updated.DerivedStatus))
	return updated, nil
}

// legalTransitions encodes the per-stage state machine. skipped is
// handled separately because it also requires catalog eligibility.
var legalTransitions = map[orders.StageStatus][]orders.StageStatus{
	orders.StageNotStarted: {orders.StageInProgress, orders.StageSkipped},
	orders.StageInProgress: {orders.StageComplete, orders.StageIssue},
	orders.StageIssue:      {orders.StageInProgress, orders.StageComplete},
}

func (m *Manager) checkTransition(stageDef catalog.StageDefinition, rec orders.StageRecord, target orders.StageStatus) error {
	if rec.Status.Terminal() {
		return orders.Wrap(orders.ErrInvalidTransition, "workflow", "transition",
			fmt.Sprintf("stage %s is %s and cannot change without an administrative correction", stageDef.ID, rec.Status), nil)
	}

	allowed := false
	for _, next := range legalTransitions[rec.Status] {
		if next == target {
			allowed = true
			break
		}
	}
	if !allowed {
		return orders.Wrap(orders.ErrInvalidTransition, "workflow", "transition",
			fmt.Sprintf("stage %s cannot move from %s to %s", stageDef.ID, rec.Status, target), nil)
	}

	if target == orders.StageSkipped && !stageDef.Skippable {
		return orders.Wrap(orders.ErrInvalidTransition, "workflow", "transition",
			fmt.Sprintf("stage %s is not skippable", stageDef.ID), nil)
	}
	return nil
}

func (m *Manager) checkCompletion(o *orders.Order, stageDef catalog.StageDefinition, fields map[string]string) error {
	for _, name := range stageDef.RequiredFields {
		if strings.TrimSpace(fields[name]) == "" {
			return orders.Wrap(orders.ErrValidation, "workflow", "transition",
				fmt.Sprintf("stage %s requires field %s before completion", stageDef.ID, name), nil)
		}
	}
	for _, earlier := range m.catalog.Before(stageDef.ID) {
		if !o.Stage(earlier.ID).Status.Satisfied() {
			return orders.Wrap(orders.ErrInvalidTransition, "workflow", "transition",
				fmt.Sprintf("stage %s cannot complete while %s is %s", stageDef.ID, earlier.ID, o.Stage(earlier.ID).Status), nil)
		}
	}
	return nil
}

func mergeFields(existing, incoming map[string]string) map[string]string {
	if len(existing) == 0 && len(incoming) == 0 {
		return nil
	}
	merged := make(map[string]string, len(existing)+len(incoming))
	for k, v := range existing {
		merged[k] = v
	}
	for k, v := range incoming {
		merged[k] = strings.TrimSpace(v)
	}
	return merged
}
