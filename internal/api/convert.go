package api

import (
	"orderflow/internal/catalog"
	"orderflow/internal/orders"
)

// FromOrder converts a stored order into its API view. Stages are
// emitted in catalog order so clients never need the catalog to render
// the sequence.
func FromOrder(cat *catalog.Catalog, order *orders.Order) OrderView {
	if order == nil {
		return OrderView{}
	}

	view := OrderView{
		ID:                order.ID,
		CustomerRef:       order.CustomerRef,
		CustomerName:      order.CustomerName,
		ProductSummary:    order.ProductSummary,
		Quantity:          order.Quantity,
		PaymentStatus:     order.PaymentStatus,
		DeliveryChannel:   order.DeliveryChannel,
		AssignedEmployee:  order.AssignedEmployee,
		SalesOwner:        order.SalesOwner,
		Designer:          order.Designer,
		WantsEngravingTag: order.WantsEngravingTag,
		WantsRibbon:       order.WantsRibbon,
		DerivedStatus:     order.DerivedStatus,
		HasIssue:          order.HasIssue,
		Version:           order.Version,
	}
	if !order.CreatedAt.IsZero() {
		view.CreatedAt = order.CreatedAt.Format(dateTimeFormat)
	}
	if !order.UpdatedAt.IsZero() {
		view.UpdatedAt = order.UpdatedAt.Format(dateTimeFormat)
	}

	view.Stages = make([]StageView, 0, cat.Len())
	for _, def := range cat.StagesInOrder() {
		rec := order.Stage(def.ID)
		sv := StageView{
			ID:             def.ID,
			Rank:           def.Order,
			Status:         string(rec.Status),
			Remark:         rec.Remark,
			UpdatedBy:      rec.UpdatedBy,
			Fields:         rec.CloneFields(),
			Skippable:      def.Skippable,
			RequiredFields: def.RequiredFields,
		}
		if !rec.UpdatedAt.IsZero() {
			sv.UpdatedAt = rec.UpdatedAt.Format(dateTimeFormat)
		}
		view.Stages = append(view.Stages, sv)
	}
	return view
}

// FromOrders converts a slice of stored orders.
func FromOrders(cat *catalog.Catalog, list []*orders.Order) []OrderView {
	if len(list) == 0 {
		return nil
	}
	out := make([]OrderView, 0, len(list))
	for _, order := range list {
		out = append(out, FromOrder(cat, order))
	}
	return out
}

// CatalogView renders the stage definitions without order state.
func CatalogView(cat *catalog.Catalog) StageCatalogView {
	view := StageCatalogView{Stages: make([]StageView, 0, cat.Len())}
	for _, def := range cat.StagesInOrder() {
		view.Stages = append(view.Stages, StageView{
			ID:             def.ID,
			Rank:           def.Order,
			Skippable:      def.Skippable,
			RequiredFields: def.RequiredFields,
		})
	}
	return view
}
