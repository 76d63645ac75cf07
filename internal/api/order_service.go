package api

import (
	"context"

	"orderflow/internal/dashboard"
	"orderflow/internal/orders"
	"orderflow/internal/search"
	"orderflow/internal/workflow"
)

// OrderService exposes order operations returning API DTOs. It is the
// single seam between transports (HTTP handlers, CLI commands) and the
// workflow engine.
type OrderService struct {
	manager *workflow.Manager
}

// NewOrderService constructs an OrderService around the manager.
func NewOrderService(manager *workflow.Manager) *OrderService {
	if manager == nil {
		return nil
	}
	return &OrderService{manager: manager}
}

// Create registers a new order and returns its initial view.
func (s *OrderService) Create(ctx context.Context, req CreateOrderRequest) (OrderView, error) {
	order, err := s.manager.CreateOrder(ctx, workflow.CreateRequest{
		CustomerRef:       req.CustomerRef,
		CustomerName:      req.CustomerName,
		ProductSummary:    req.ProductSummary,
		Quantity:          req.Quantity,
		PaymentStatus:     req.PaymentStatus,
		DeliveryChannel:   req.DeliveryChannel,
		AssignedEmployee:  req.AssignedEmployee,
		SalesOwner:        req.SalesOwner,
		Designer:          req.Designer,
		WantsEngravingTag: req.WantsEngravingTag,
		WantsRibbon:       req.WantsRibbon,
		PreSuppliedStages: req.PreSuppliedStages,
	})
	if err != nil {
		return OrderView{}, err
	}
	return FromOrder(s.manager.Catalog(), order), nil
}

// Describe fetches a single order.
func (s *OrderService) Describe(ctx context.Context, id string) (OrderView, error) {
	order, err := s.manager.GetOrder(ctx, id)
	if err != nil {
		return OrderView{}, err
	}
	return FromOrder(s.manager.Catalog(), order), nil
}

// Transition applies a stage-status change to an order.
func (s *OrderService) Transition(ctx context.Context, id string, req TransitionOrderRequest) (OrderView, error) {
	order, err := s.manager.TransitionStage(ctx, workflow.TransitionRequest{
		OrderID:         id,
		StageID:         req.Stage,
		Target:          orders.StageStatus(req.Target),
		Actor:           req.Actor,
		Remark:          req.Remark,
		Fields:          req.Fields,
		ExpectedVersion: req.ExpectedVersion,
	})
	if err != nil {
		return OrderView{}, err
	}
	return FromOrder(s.manager.Catalog(), order), nil
}

// Query lists orders matching the filter criteria.
func (s *OrderService) Query(ctx context.Context, req QueryRequest) ([]OrderView, error) {
	list, err := s.manager.ListOrders(ctx)
	if err != nil {
		return nil, err
	}
	matched, err := search.Apply(s.manager.Catalog(), list, search.Criteria{
		Text:              req.Text,
		AssignedEmployee:  req.AssignedEmployee,
		SalesOwner:        req.SalesOwner,
		Designer:          req.Designer,
		PaymentStatus:     req.PaymentStatus,
		DeliveryChannel:   req.DeliveryChannel,
		WantsEngravingTag: req.WantsEngraving,
		WantsRibbon:       req.WantsRibbon,
		Bucket:            req.Bucket,
	})
	if err != nil {
		return nil, err
	}
	return FromOrders(s.manager.Catalog(), matched), nil
}

// Dashboard computes bucket counts over the full order population.
func (s *OrderService) Dashboard(ctx context.Context) (DashboardResponse, error) {
	list, err := s.manager.ListOrders(ctx)
	if err != nil {
		return DashboardResponse{}, err
	}
	counts := dashboard.CountByBucket(s.manager.Catalog(), list)
	out := make(map[string]int, len(counts))
	for bucket, n := range counts {
		out[string(bucket)] = n
	}
	return DashboardResponse{Counts: out, Total: len(list)}, nil
}

// Catalog returns the stage sequence clients validate input against.
func (s *OrderService) Catalog() StageCatalogView {
	return CatalogView(s.manager.Catalog())
}
