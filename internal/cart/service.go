package cart

import (
	"context"

	"shrimati-be/internal/logger"
	"shrimati-be/internal/metrics"
	"shrimati-be/internal/product"
	"shrimati-be/internal/session"

	"go.uber.org/zap"
)

// MutationResult is the cart mutation payload: the touched line's new
// quantity plus the badge counter.
type MutationResult struct {
	Qty       int `json:"qty"`
	CartCount int `json:"cart_count"`
}

type ViewItem struct {
	ProductID uint    `json:"id"`
	Key       string  `json:"key"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Subtotal  float64 `json:"subtotal"`
	Image     string  `json:"image"`
	ColorID   *uint   `json:"color,omitempty"`
}

type View struct {
	Items      []*ViewItem `json:"items"`
	TotalPrice float64     `json:"total_price"`
	CartCount  int         `json:"cart_count"`
}

// Service defines the business logic for the session cart.
type Service interface {
	AddToCart(ctx context.Context, sessionID string, productID uint, colorID *uint) (*MutationResult, error)
	DecrementItem(ctx context.Context, sessionID, key string) (*MutationResult, error)
	RemoveItem(ctx context.Context, sessionID, key string) (*MutationResult, error)
	ClearCart(ctx context.Context, sessionID string) error
	Count(ctx context.Context, sessionID string) (int, error)
	GetCart(ctx context.Context, sessionID string) (*View, error)

	// State exposes the raw cart mapping; checkout reads it.
	State(ctx context.Context, sessionID string) (CartState, error)
}

type service struct {
	store       session.Store
	productRepo product.Repository
	reg         *metrics.Registry
}

func NewService(store session.Store, productRepo product.Repository, reg *metrics.Registry) Service {
	if reg == nil {
		reg = metrics.Default
	}
	return &service{store: store, productRepo: productRepo, reg: reg}
}

func (s *service) State(ctx context.Context, sessionID string) (CartState, error) {
	state := CartState{}
	if _, err := s.store.Get(ctx, sessionID, SessionKey, &state); err != nil {
		return nil, err
	}
	return state, nil
}

func (s *service) save(ctx context.Context, sessionID string, state CartState) error {
	return s.store.Set(ctx, sessionID, SessionKey, state)
}

// AddToCart adds one unit of a product (optionally a color variant) to
// the session cart.
func (s *service) AddToCart(ctx context.Context, sessionID string, productID uint, colorID *uint) (*MutationResult, error) {
	p, err := s.productRepo.GetProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProductNotFound
	}

	state, err := s.State(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	line := state.Add(p, colorID)

	if err := s.save(ctx, sessionID, state); err != nil {
		return nil, err
	}

	s.reg.CartAdds.Inc()

	logger.FromCtx(ctx).Debug("added to cart",
		zap.String("key", line.Key),
		zap.Int("qty", line.Quantity),
	)

	return &MutationResult{
		Qty:       line.Quantity,
		CartCount: state.TotalItemCount(),
	}, nil
}

// DecrementItem lowers a line's quantity, removing it at zero.
// Missing keys are a no-op, not an error.
func (s *service) DecrementItem(ctx context.Context, sessionID, key string) (*MutationResult, error) {
	state, err := s.State(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	qty := state.Decrement(key)

	if err := s.save(ctx, sessionID, state); err != nil {
		return nil, err
	}

	s.reg.CartMutations.Inc()

	return &MutationResult{
		Qty:       qty,
		CartCount: state.TotalItemCount(),
	}, nil
}

// RemoveItem deletes a line regardless of quantity.
func (s *service) RemoveItem(ctx context.Context, sessionID, key string) (*MutationResult, error) {
	state, err := s.State(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	state.Remove(key)

	if err := s.save(ctx, sessionID, state); err != nil {
		return nil, err
	}

	s.reg.CartMutations.Inc()

	return &MutationResult{
		Qty:       0,
		CartCount: state.TotalItemCount(),
	}, nil
}

func (s *service) ClearCart(ctx context.Context, sessionID string) error {
	return s.save(ctx, sessionID, CartState{})
}

func (s *service) Count(ctx context.Context, sessionID string) (int, error) {
	state, err := s.State(ctx, sessionID)
	if err != nil {
		return 0, err
	}
	return state.TotalItemCount(), nil
}

// GetCart resolves live product data for every line. Lines whose
// product disappeared from the catalog are skipped in the view (they
// still fail checkout confirmation).
func (s *service) GetCart(ctx context.Context, sessionID string) (*View, error) {
	state, err := s.State(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	view := &View{
		Items:     make([]*ViewItem, 0, len(state)),
		CartCount: state.TotalItemCount(),
	}

	for _, line := range state {
		p, err := s.productRepo.GetProductByID(ctx, line.ProductID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			logger.FromCtx(ctx).Warn("cart line references missing product",
				zap.String("key", line.Key),
				zap.Uint("product_id", line.ProductID),
			)
			continue
		}

		subtotal := p.Price * float64(line.Quantity)
		view.Items = append(view.Items, &ViewItem{
			ProductID: p.ID,
			Key:       line.Key,
			Name:      p.Name,
			Price:     p.Price,
			Quantity:  line.Quantity,
			Subtotal:  subtotal,
			Image:     p.Image,
			ColorID:   line.ColorID,
		})
		view.TotalPrice += subtotal
	}

	return view, nil
}
