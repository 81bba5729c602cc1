package order

import (
	"context"
	"time"

	"shrimati-be/internal/logger"
	"shrimati-be/internal/metrics"

	"go.uber.org/zap"
)

// TrackingSnapshot is the public polling projection.
type TrackingSnapshot struct {
	Status        Status        `json:"status"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	TimelineHTML  string        `json:"timeline_html"`
}

// Service defines order creation, queries and lifecycle transitions.
type Service interface {
	Create(ctx context.Context, params CreateParams) (*Order, error)
	ListForUser(ctx context.Context, userID uint) ([]*Order, error)
	TrackOne(ctx context.Context, userID, orderID uint) (*Order, error)
	TrackPublic(ctx context.Context, orderID uint) (*TrackingSnapshot, error)
	ListAll(ctx context.Context, status *Status) ([]*Order, error)
	TransitionTo(ctx context.Context, orderID uint, status string) (*Order, error)
	SetTracking(ctx context.Context, orderID uint, courier string, expected *time.Time) (*Order, error)
}

type service struct {
	repo Repository
	reg  *metrics.Registry
	now  func() time.Time
}

func NewService(repo Repository, reg *metrics.Registry) Service {
	if reg == nil {
		reg = metrics.Default
	}
	return &service{repo: repo, reg: reg, now: time.Now}
}

// Create persists one order built from a cart line.
func (s *service) Create(ctx context.Context, params CreateParams) (*Order, error) {
	o := NewFromCartLine(params, s.now())

	created, err := s.repo.Insert(ctx, o)
	if err != nil {
		return nil, err
	}

	s.reg.OrdersCreated.Inc()
	return created, nil
}

// ListForUser returns the user's orders, newest first.
func (s *service) ListForUser(ctx context.Context, userID uint) ([]*Order, error) {
	return s.repo.ListByUser(ctx, userID)
}

// TrackOne is the ownership-checked single fetch. An order belonging
// to another user is indistinguishable from a missing one.
func (s *service) TrackOne(ctx context.Context, userID, orderID uint) (*Order, error) {
	o, err := s.repo.GetForUser(ctx, orderID, userID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, ErrOrderNotFound
	}
	return o, nil
}

// TrackPublic returns the polling projection for any caller who knows
// the order id. There is deliberately no ownership check here; the
// endpoint is a capability-token-free public read.
func (s *service) TrackPublic(ctx context.Context, orderID uint) (*TrackingSnapshot, error) {
	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, ErrOrderNotFound
	}

	html, err := RenderTimeline(o)
	if err != nil {
		return nil, err
	}

	return &TrackingSnapshot{
		Status:        o.Status,
		PaymentStatus: o.PaymentStatus,
		TimelineHTML:  html,
	}, nil
}

func (s *service) ListAll(ctx context.Context, status *Status) ([]*Order, error) {
	return s.repo.ListAll(ctx, status)
}

// TransitionTo validates the status string, applies it and persists
// the timeline. Apart from enum validation there is no source/target
// guard; the back-office may move an order to any status.
func (s *service) TransitionTo(ctx context.Context, orderID uint, status string) (*Order, error) {
	newStatus, ok := ParseStatus(status)
	if !ok {
		return nil, ErrInvalidStatus
	}

	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, ErrOrderNotFound
	}

	o.ApplyStatus(newStatus, s.now())

	if err := s.repo.UpdateStatus(ctx, o); err != nil {
		return nil, err
	}

	s.reg.StatusChanges.Inc()

	logger.FromCtx(ctx).Info("order status changed",
		zap.Uint("order_id", o.ID),
		zap.String("status", string(newStatus)),
	)

	return o, nil
}

func (s *service) SetTracking(ctx context.Context, orderID uint, courier string, expected *time.Time) (*Order, error) {
	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, ErrOrderNotFound
	}

	if err := s.repo.UpdateTracking(ctx, orderID, courier, expected); err != nil {
		return nil, err
	}

	o.CourierName = &courier
	o.ExpectedDelivery = expected
	return o, nil
}
