package admin

import (
	"context"
	"time"

	"shrimati-be/internal/events"
	"shrimati-be/internal/logger"
	"shrimati-be/internal/order"

	"go.uber.org/zap"
)

// Service is the back-office surface over orders: listing with an
// optional status filter, moving orders through the lifecycle and
// attaching courier details.
type Service interface {
	ListOrders(ctx context.Context, statusFilter string) ([]*order.Order, error)
	MarkStatus(ctx context.Context, orderID uint, status string) (*order.Order, error)
	SetTracking(ctx context.Context, orderID uint, courier string, expected *time.Time) (*order.Order, error)
}

type service struct {
	orders    order.Service
	publisher events.Publisher
}

func NewService(orders order.Service, publisher events.Publisher) Service {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &service{orders: orders, publisher: publisher}
}

// ListOrders returns all orders, optionally narrowed to one status.
// An empty filter means everything.
func (s *service) ListOrders(ctx context.Context, statusFilter string) ([]*order.Order, error) {
	if statusFilter == "" {
		return s.orders.ListAll(ctx, nil)
	}

	status, ok := order.ParseStatus(statusFilter)
	if !ok {
		return nil, order.ErrInvalidStatus
	}
	return s.orders.ListAll(ctx, &status)
}

// MarkStatus transitions an order and emits a status-changed event.
func (s *service) MarkStatus(ctx context.Context, orderID uint, status string) (*order.Order, error) {
	o, err := s.orders.TransitionTo(ctx, orderID, status)
	if err != nil {
		return nil, err
	}

	if err := s.publisher.Publish(ctx, events.OrderStatusChanged, o); err != nil {
		logger.FromCtx(ctx).Warn("failed to publish status change",
			zap.Uint("order_id", orderID),
			zap.Error(err),
		)
	}

	return o, nil
}

// SetTracking attaches courier name and expected delivery date.
func (s *service) SetTracking(ctx context.Context, orderID uint, courier string, expected *time.Time) (*order.Order, error) {
	return s.orders.SetTracking(ctx, orderID, courier, expected)
}
