package admin

import (
	"context"
	"testing"
	"time"

	"shrimati-be/internal/events"
	"shrimati-be/internal/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) Create(ctx context.Context, params order.CreateParams) (*order.Order, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderService) ListForUser(ctx context.Context, userID uint) ([]*order.Order, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderService) TrackOne(ctx context.Context, userID, orderID uint) (*order.Order, error) {
	args := m.Called(ctx, userID, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderService) TrackPublic(ctx context.Context, orderID uint) (*order.TrackingSnapshot, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.TrackingSnapshot), args.Error(1)
}

func (m *MockOrderService) ListAll(ctx context.Context, status *order.Status) ([]*order.Order, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderService) TransitionTo(ctx context.Context, orderID uint, status string) (*order.Order, error) {
	args := m.Called(ctx, orderID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderService) SetTracking(ctx context.Context, orderID uint, courier string, expected *time.Time) (*order.Order, error) {
	args := m.Called(ctx, orderID, courier, expected)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, event string, data interface{}) error {
	args := m.Called(ctx, event, data)
	return args.Error(0)
}

func (m *MockPublisher) Close() {}

func TestListOrders(t *testing.T) {
	t.Run("NoFilter", func(t *testing.T) {
		orders := new(MockOrderService)
		svc := NewService(orders, nil)

		orders.On("ListAll", mock.Anything, (*order.Status)(nil)).
			Return([]*order.Order{{ID: 1}, {ID: 2}}, nil)

		got, err := svc.ListOrders(context.Background(), "")
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("WithFilter", func(t *testing.T) {
		orders := new(MockOrderService)
		svc := NewService(orders, nil)

		shipped := order.StatusShipped
		orders.On("ListAll", mock.Anything, &shipped).
			Return([]*order.Order{{ID: 3, Status: order.StatusShipped}}, nil)

		got, err := svc.ListOrders(context.Background(), "Shipped")
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})

	t.Run("BadFilter", func(t *testing.T) {
		orders := new(MockOrderService)
		svc := NewService(orders, nil)

		_, err := svc.ListOrders(context.Background(), "Teleported")
		assert.ErrorIs(t, err, order.ErrInvalidStatus)
	})
}

func TestMarkStatus(t *testing.T) {
	t.Run("PublishesStatusChange", func(t *testing.T) {
		orders := new(MockOrderService)
		publisher := new(MockPublisher)
		svc := NewService(orders, publisher)

		updated := &order.Order{ID: 10, Status: order.StatusShipped}
		orders.On("TransitionTo", mock.Anything, uint(10), "Shipped").Return(updated, nil)
		publisher.On("Publish", mock.Anything, events.OrderStatusChanged, updated).Return(nil)

		o, err := svc.MarkStatus(context.Background(), 10, "Shipped")
		require.NoError(t, err)
		assert.Equal(t, order.StatusShipped, o.Status)
		publisher.AssertExpectations(t)
	})

	t.Run("TransitionErrorSkipsPublish", func(t *testing.T) {
		orders := new(MockOrderService)
		publisher := new(MockPublisher)
		svc := NewService(orders, publisher)

		orders.On("TransitionTo", mock.Anything, uint(99), "Shipped").
			Return(nil, order.ErrOrderNotFound)

		_, err := svc.MarkStatus(context.Background(), 99, "Shipped")
		assert.ErrorIs(t, err, order.ErrOrderNotFound)
		publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestSetTracking(t *testing.T) {
	orders := new(MockOrderService)
	svc := NewService(orders, nil)

	eta := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	updated := &order.Order{ID: 10, CourierName: strPtr("BlueDart"), ExpectedDelivery: &eta}
	orders.On("SetTracking", mock.Anything, uint(10), "BlueDart", &eta).Return(updated, nil)

	o, err := svc.SetTracking(context.Background(), 10, "BlueDart", &eta)
	require.NoError(t, err)
	assert.Equal(t, "BlueDart", *o.CourierName)
}

func strPtr(s string) *string { return &s }
