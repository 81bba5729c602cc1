package cart

import (
	"context"
	"errors"
	"testing"

	"shrimati-be/internal/metrics"
	"shrimati-be/internal/product"
	"shrimati-be/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockProductRepository is a mock for the product repository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) GetProductByID(ctx context.Context, id uint) (*product.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockProductRepository) ListProducts(ctx context.Context) ([]*product.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*product.Product), args.Error(1)
}

func (m *MockProductRepository) Search(ctx context.Context, opts product.SearchOptions) ([]*product.Product, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*product.Product), args.Error(1)
}

func (m *MockProductRepository) GetProductColors(ctx context.Context, productID uint) ([]*product.Color, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*product.Color), args.Error(1)
}

const sid = "test-session"

func newTestService(productRepo product.Repository) (Service, *session.MemoryStore) {
	store := session.NewMemoryStore()
	return NewService(store, productRepo, &metrics.Registry{}), store
}

func TestService_AddToCart(t *testing.T) {
	saree := &product.Product{ID: 5, Name: "Silk Saree", Price: 100.00}

	t.Run("FirstAddCreatesLine", func(t *testing.T) {
		repo := new(MockProductRepository)
		svc, _ := newTestService(repo)

		repo.On("GetProductByID", mock.Anything, uint(5)).Return(saree, nil)

		res, err := svc.AddToCart(context.Background(), sid, 5, nil)
		require.NoError(t, err)
		assert.Equal(t, 1, res.Qty)
		assert.Equal(t, 1, res.CartCount)
	})

	t.Run("SecondAddAggregates", func(t *testing.T) {
		repo := new(MockProductRepository)
		svc, _ := newTestService(repo)

		repo.On("GetProductByID", mock.Anything, uint(5)).Return(saree, nil)

		_, err := svc.AddToCart(context.Background(), sid, 5, nil)
		require.NoError(t, err)
		res, err := svc.AddToCart(context.Background(), sid, 5, nil)
		require.NoError(t, err)

		assert.Equal(t, 2, res.Qty)
		assert.Equal(t, 2, res.CartCount)

		state, err := svc.State(context.Background(), sid)
		require.NoError(t, err)
		assert.Len(t, state, 1)
	})

	t.Run("ColorVariantIsSeparateLine", func(t *testing.T) {
		repo := new(MockProductRepository)
		svc, _ := newTestService(repo)

		repo.On("GetProductByID", mock.Anything, uint(5)).Return(saree, nil)

		color := uint(3)
		_, err := svc.AddToCart(context.Background(), sid, 5, nil)
		require.NoError(t, err)
		res, err := svc.AddToCart(context.Background(), sid, 5, &color)
		require.NoError(t, err)

		assert.Equal(t, 1, res.Qty)
		assert.Equal(t, 2, res.CartCount)
	})

	t.Run("UnknownProduct", func(t *testing.T) {
		repo := new(MockProductRepository)
		svc, _ := newTestService(repo)

		repo.On("GetProductByID", mock.Anything, uint(99)).Return(nil, nil)

		_, err := svc.AddToCart(context.Background(), sid, 99, nil)
		assert.ErrorIs(t, err, ErrProductNotFound)
	})

	t.Run("RepoError", func(t *testing.T) {
		repo := new(MockProductRepository)
		svc, _ := newTestService(repo)

		repo.On("GetProductByID", mock.Anything, uint(5)).
			Return(nil, errors.New("db error"))

		_, err := svc.AddToCart(context.Background(), sid, 5, nil)
		assert.Error(t, err)
	})
}

func TestService_DecrementItem(t *testing.T) {
	saree := &product.Product{ID: 5, Name: "Silk Saree", Price: 100.00}

	repo := new(MockProductRepository)
	svc, _ := newTestService(repo)
	repo.On("GetProductByID", mock.Anything, uint(5)).Return(saree, nil)

	ctx := context.Background()
	_, err := svc.AddToCart(ctx, sid, 5, nil)
	require.NoError(t, err)
	_, err = svc.AddToCart(ctx, sid, 5, nil)
	require.NoError(t, err)

	res, err := svc.DecrementItem(ctx, sid, "5")
	require.NoError(t, err)
	assert.Equal(t, 1, res.Qty)
	assert.Equal(t, 1, res.CartCount)

	res, err = svc.DecrementItem(ctx, sid, "5")
	require.NoError(t, err)
	assert.Equal(t, 0, res.Qty)
	assert.Equal(t, 0, res.CartCount)

	// decrementing an absent key is a no-op
	res, err = svc.DecrementItem(ctx, sid, "5")
	require.NoError(t, err)
	assert.Equal(t, 0, res.Qty)
	assert.Equal(t, 0, res.CartCount)
}

func TestService_RemoveItem(t *testing.T) {
	saree := &product.Product{ID: 5, Name: "Silk Saree", Price: 100.00}

	repo := new(MockProductRepository)
	svc, _ := newTestService(repo)
	repo.On("GetProductByID", mock.Anything, uint(5)).Return(saree, nil)

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, err := svc.AddToCart(ctx, sid, 5, nil)
		require.NoError(t, err)
	}

	res, err := svc.RemoveItem(ctx, sid, "5")
	require.NoError(t, err)
	assert.Equal(t, 0, res.Qty)
	assert.Equal(t, 0, res.CartCount)

	// absent key: still no error
	_, err = svc.RemoveItem(ctx, sid, "5")
	assert.NoError(t, err)
}

func TestService_ClearCartAndCount(t *testing.T) {
	saree := &product.Product{ID: 5, Name: "Silk Saree", Price: 100.00}
	kurta := &product.Product{ID: 7, Name: "Cotton Kurta", Price: 49.50}

	repo := new(MockProductRepository)
	svc, _ := newTestService(repo)
	repo.On("GetProductByID", mock.Anything, uint(5)).Return(saree, nil)
	repo.On("GetProductByID", mock.Anything, uint(7)).Return(kurta, nil)

	ctx := context.Background()
	_, err := svc.AddToCart(ctx, sid, 5, nil)
	require.NoError(t, err)
	_, err = svc.AddToCart(ctx, sid, 7, nil)
	require.NoError(t, err)

	count, err := svc.Count(ctx, sid)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	require.NoError(t, svc.ClearCart(ctx, sid))

	count, err = svc.Count(ctx, sid)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestService_GetCart(t *testing.T) {
	saree := &product.Product{ID: 5, Name: "Silk Saree", Price: 120.00, Image: "products/saree.jpg"}

	repo := new(MockProductRepository)
	svc, _ := newTestService(repo)
	repo.On("GetProductByID", mock.Anything, uint(5)).Return(saree, nil)

	ctx := context.Background()
	_, err := svc.AddToCart(ctx, sid, 5, nil)
	require.NoError(t, err)
	_, err = svc.AddToCart(ctx, sid, 5, nil)
	require.NoError(t, err)

	view, err := svc.GetCart(ctx, sid)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)

	item := view.Items[0]
	// view uses the live catalog price, not the add-time snapshot
	assert.Equal(t, 120.00, item.Price)
	assert.Equal(t, 2, item.Quantity)
	assert.Equal(t, 240.00, item.Subtotal)
	assert.Equal(t, 240.00, view.TotalPrice)
	assert.Equal(t, 2, view.CartCount)
}

func TestService_GetCart_SkipsDeletedProducts(t *testing.T) {
	saree := &product.Product{ID: 5, Name: "Silk Saree", Price: 100.00}

	repo := new(MockProductRepository)
	svc, _ := newTestService(repo)

	repo.On("GetProductByID", mock.Anything, uint(5)).Return(saree, nil).Twice()

	ctx := context.Background()
	_, err := svc.AddToCart(ctx, sid, 5, nil)
	require.NoError(t, err)
	_, err = svc.AddToCart(ctx, sid, 5, nil)
	require.NoError(t, err)

	// product removed from the catalog afterwards
	repo.On("GetProductByID", mock.Anything, uint(5)).Return(nil, nil)

	view, err := svc.GetCart(ctx, sid)
	require.NoError(t, err)
	assert.Empty(t, view.Items)
	assert.Equal(t, 0.0, view.TotalPrice)
	// badge counter still reflects the stored state
	assert.Equal(t, 2, view.CartCount)
}
