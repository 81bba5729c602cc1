package order

import (
	"context"
	"database/sql"
	"time"

	"shrimati-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	Insert(ctx context.Context, o *Order) (*Order, error)
	GetByID(ctx context.Context, id uint) (*Order, error)
	GetForUser(ctx context.Context, id, userID uint) (*Order, error)
	ListByUser(ctx context.Context, userID uint) ([]*Order, error)
	ListAll(ctx context.Context, status *Status) ([]*Order, error)
	UpdateStatus(ctx context.Context, o *Order) error
	UpdateTracking(ctx context.Context, id uint, courier string, expected *time.Time) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const orderColumns = `
	o.id,
	o.user_id,
	o.product_id,
	o.quantity,
	o.total_price,
	o.address,
	o.phone,
	o.payment_method,
	o.payment_status,
	o.status,
	o.order_date,
	o.courier_name,
	o.expected_delivery,
	o.pending_at,
	o.processing_at,
	o.dispatched_at,
	o.shipped_at,
	o.delivered_at,
	o.cancelled_at,
	p.name,
	p.image
`

func scanOrder(row interface{ Scan(...any) error }) (*Order, error) {
	var o Order
	err := row.Scan(
		&o.ID,
		&o.UserID,
		&o.ProductID,
		&o.Quantity,
		&o.TotalPrice,
		&o.Address,
		&o.Phone,
		&o.PaymentMethod,
		&o.PaymentStatus,
		&o.Status,
		&o.OrderDate,
		&o.CourierName,
		&o.ExpectedDelivery,
		&o.PendingAt,
		&o.ProcessingAt,
		&o.DispatchedAt,
		&o.ShippedAt,
		&o.DeliveredAt,
		&o.CancelledAt,
		&o.ProductName,
		&o.ProductImage,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *repository) Insert(ctx context.Context, o *Order) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Insert"),
		zap.Uint("user_id", o.UserID),
		zap.Uint("product_id", o.ProductID),
	)

	query := `
	INSERT INTO orders (
		user_id,
		product_id,
		quantity,
		total_price,
		address,
		phone,
		payment_method,
		payment_status,
		status,
		order_date,
		pending_at
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	RETURNING id
	`

	err := r.db.QueryRowContext(
		ctx,
		query,
		o.UserID,
		o.ProductID,
		o.Quantity,
		o.TotalPrice,
		o.Address,
		o.Phone,
		o.PaymentMethod,
		o.PaymentStatus,
		o.Status,
		o.OrderDate,
		o.PendingAt,
	).Scan(&o.ID)
	if err != nil {
		log.Error("failed to insert order", zap.Error(err))
		return nil, err
	}

	log.Info("order created", zap.Uint("order_id", o.ID))
	return o, nil
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Order, error) {
	query := `
	SELECT ` + orderColumns + `
	FROM orders o
	JOIN products p ON o.product_id = p.id
	WHERE o.id = $1
	`

	o, err := scanOrder(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (r *repository) GetForUser(ctx context.Context, id, userID uint) (*Order, error) {
	query := `
	SELECT ` + orderColumns + `
	FROM orders o
	JOIN products p ON o.product_id = p.id
	WHERE o.id = $1 AND o.user_id = $2
	`

	o, err := scanOrder(r.db.QueryRowContext(ctx, query, id, userID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (r *repository) ListByUser(ctx context.Context, userID uint) ([]*Order, error) {
	query := `
	SELECT ` + orderColumns + `
	FROM orders o
	JOIN products p ON o.product_id = p.id
	WHERE o.user_id = $1
	ORDER BY o.order_date DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectOrders(rows)
}

func (r *repository) ListAll(ctx context.Context, status *Status) ([]*Order, error) {
	query := `
	SELECT ` + orderColumns + `
	FROM orders o
	JOIN products p ON o.product_id = p.id
	`
	args := []any{}

	if status != nil {
		query += ` WHERE o.status = $1`
		args = append(args, *status)
	}
	query += ` ORDER BY o.order_date DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectOrders(rows)
}

// UpdateStatus persists the status and the full timeline. Timeline
// stamping happens in Order.ApplyStatus before this is called.
func (r *repository) UpdateStatus(ctx context.Context, o *Order) error {
	query := `
	UPDATE orders
	SET status = $1,
	    processing_at = $2,
	    dispatched_at = $3,
	    shipped_at = $4,
	    delivered_at = $5,
	    cancelled_at = $6
	WHERE id = $7
	`

	res, err := r.db.ExecContext(
		ctx,
		query,
		o.Status,
		o.ProcessingAt,
		o.DispatchedAt,
		o.ShippedAt,
		o.DeliveredAt,
		o.CancelledAt,
		o.ID,
	)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (r *repository) UpdateTracking(ctx context.Context, id uint, courier string, expected *time.Time) error {
	query := `
	UPDATE orders
	SET courier_name = $1,
	    expected_delivery = $2
	WHERE id = $3
	`

	res, err := r.db.ExecContext(ctx, query, courier, expected, id)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func collectOrders(rows *sql.Rows) ([]*Order, error) {
	result := make([]*Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	return result, rows.Err()
}
