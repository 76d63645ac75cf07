package orders

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const orderColumns = "id, created_at, updated_at, customer_ref, customer_name, product_summary, quantity, payment_status, delivery_channel, assigned_employee, sales_owner, designer, wants_engraving_tag, wants_ribbon, workflow_json, derived_status, has_issue, version"

// Create persists a new order. The caller supplies the fully initialized
// workflow map and cached derived status; the store assigns the id,
// timestamps, and the initial version.
func (s *Store) Create(ctx context.Context, order *Order) (*Order, error) {
	if order == nil {
		return nil, Wrap(ErrValidation, "store", "create", "order is nil", nil)
	}
	if strings.TrimSpace(order.CustomerRef) == "" {
		return nil, Wrap(ErrValidation, "store", "create", "customer_ref is required", nil)
	}
	if strings.TrimSpace(order.ProductSummary) == "" {
		return nil, Wrap(ErrValidation, "store", "create", "product_summary is required", nil)
	}
	if len(order.Workflow) == 0 {
		return nil, Wrap(ErrValidation, "store", "create", "workflow is not initialized", nil)
	}

	record := order.Clone()
	if strings.TrimSpace(record.ID) == "" {
		record.ID = uuid.NewString()
	}
	if record.Quantity <= 0 {
		record.Quantity = 1
	}
	now := time.Now().UTC()
	record.CreatedAt = now
	record.UpdatedAt = now
	record.Version = 1

	workflowJSON, err := json.Marshal(record.Workflow)
	if err != nil {
		return nil, fmt.Errorf("marshal workflow: %w", err)
	}

	_, err = s.execWithRetry(
		ctx,
		`INSERT INTO orders (`+orderColumns+`)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID,
		now.Format(time.RFC3339Nano),
		now.Format(time.RFC3339Nano),
		record.CustomerRef,
		nullableString(record.CustomerName),
		record.ProductSummary,
		record.Quantity,
		nullableString(record.PaymentStatus),
		nullableString(record.DeliveryChannel),
		nullableString(record.AssignedEmployee),
		nullableString(record.SalesOwner),
		nullableString(record.Designer),
		boolToInt(record.WantsEngravingTag),
		boolToInt(record.WantsRibbon),
		string(workflowJSON),
		record.DerivedStatus,
		boolToInt(record.HasIssue),
		record.Version,
	)
	if err != nil {
		return nil, fmt.Errorf("insert order: %w", err)
	}

	return s.GetByID(ctx, record.ID)
}

// GetByID fetches an order by identifier.
func (s *Store) GetByID(ctx context.Context, id string) (*Order, error) {
	row := s.db.QueryRowContext(ensureContext(ctx), `SELECT `+orderColumns+` FROM orders WHERE id = ?`, id)
	order, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, Wrap(ErrNotFound, "store", "get", fmt.Sprintf("order %s", id), nil)
	}
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	return order, nil
}

// Update applies mutate to a copy of the stored order and commits the
// result, incrementing the version. The write is guarded by the caller's
// expectedVersion so concurrent writers lose with ErrConflict instead of
// silently overwriting each other.
func (s *Store) Update(ctx context.Context, id string, expectedVersion int64, mutate func(*Order) error) (*Order, error) {
	ctx = ensureContext(ctx)

	current, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.Version != expectedVersion {
		return nil, Wrap(ErrConflict, "store", "update",
			fmt.Sprintf("order %s is at version %d, caller expected %d", id, current.Version, expectedVersion), nil)
	}

	next := current.Clone()
	if err := mutate(next); err != nil {
		return nil, err
	}

	// Identity and bookkeeping fields are owned by the store.
	next.ID = current.ID
	next.CreatedAt = current.CreatedAt
	next.UpdatedAt = time.Now().UTC()
	next.Version = expectedVersion + 1

	workflowJSON, err := json.Marshal(next.Workflow)
	if err != nil {
		return nil, fmt.Errorf("marshal workflow: %w", err)
	}

	res, err := s.execWithRetry(
		ctx,
		`UPDATE orders
         SET updated_at = ?, customer_ref = ?, customer_name = ?, product_summary = ?,
             quantity = ?, payment_status = ?, delivery_channel = ?, assigned_employee = ?,
             sales_owner = ?, designer = ?, wants_engraving_tag = ?, wants_ribbon = ?,
             workflow_json = ?, derived_status = ?, has_issue = ?, version = ?
         WHERE id = ? AND version = ?`,
		next.UpdatedAt.Format(time.RFC3339Nano),
		next.CustomerRef,
		nullableString(next.CustomerName),
		next.ProductSummary,
		next.Quantity,
		nullableString(next.PaymentStatus),
		nullableString(next.DeliveryChannel),
		nullableString(next.AssignedEmployee),
		nullableString(next.SalesOwner),
		nullableString(next.Designer),
		boolToInt(next.WantsEngravingTag),
		boolToInt(next.WantsRibbon),
		string(workflowJSON),
		next.DerivedStatus,
		boolToInt(next.HasIssue),
		next.Version,
		id,
		expectedVersion,
	)
	if err != nil {
		return nil, fmt.Errorf("update order: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		// A concurrent writer committed between our read and write.
		return nil, Wrap(ErrConflict, "store", "update",
			fmt.Sprintf("order %s was modified concurrently", id), nil)
	}

	return next, nil
}

// List returns every order ordered by creation time.
func (s *Store) List(ctx context.Context) ([]*Order, error) {
	rows, err := s.db.QueryContext(ensureContext(ctx), `SELECT `+orderColumns+` FROM orders ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var out []*Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, order)
	}
	return out, rows.Err()
}

// Remove deletes an order by identifier.
func (s *Store) Remove(ctx context.Context, id string) (bool, error) {
	res, err := s.execWithRetry(ensureContext(ctx), `DELETE FROM orders WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete order: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}

func scanOrder(scanner interface{ Scan(dest ...any) error }) (*Order, error) {
	var (
		id              string
		createdRaw      string
		updatedRaw      string
		customerRef     string
		customerName    sql.NullString
		productSummary  string
		quantity        int
		paymentStatus   sql.NullString
		deliveryChannel sql.NullString
		assignedEmp     sql.NullString
		salesOwner      sql.NullString
		designer        sql.NullString
		wantsEngraving  sql.NullInt64
		wantsRibbon     sql.NullInt64
		workflowJSON    string
		derivedStatus   string
		hasIssue        sql.NullInt64
		version         int64
	)

	if err := scanner.Scan(
		&id,
		&createdRaw,
		&updatedRaw,
		&customerRef,
		&customerName,
		&productSummary,
		&quantity,
		&paymentStatus,
		&deliveryChannel,
		&assignedEmp,
		&salesOwner,
		&designer,
		&wantsEngraving,
		&wantsRibbon,
		&workflowJSON,
		&derivedStatus,
		&hasIssue,
		&version,
	); err != nil {
		return nil, err
	}

	order := &Order{
		ID:               id,
		CustomerRef:      customerRef,
		CustomerName:     customerName.String,
		ProductSummary:   productSummary,
		Quantity:         quantity,
		PaymentStatus:    paymentStatus.String,
		DeliveryChannel:  deliveryChannel.String,
		AssignedEmployee: assignedEmp.String,
		SalesOwner:       salesOwner.String,
		Designer:         designer.String,
		DerivedStatus:    derivedStatus,
		Version:          version,
	}
	if wantsEngraving.Valid {
		order.WantsEngravingTag = wantsEngraving.Int64 != 0
	}
	if wantsRibbon.Valid {
		order.WantsRibbon = wantsRibbon.Int64 != 0
	}
	if hasIssue.Valid {
		order.HasIssue = hasIssue.Int64 != 0
	}

	if err := json.Unmarshal([]byte(workflowJSON), &order.Workflow); err != nil {
		return nil, fmt.Errorf("unmarshal workflow for order %s: %w", id, err)
	}

	if created, err := parseTimeString(createdRaw); err == nil {
		order.CreatedAt = created
	}
	if updated, err := parseTimeString(updatedRaw); err == nil {
		order.UpdatedAt = updated
	}
	return order, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", value)
}
