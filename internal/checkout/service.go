package checkout

import (
	"context"
	"fmt"
	"sort"

	"shrimati-be/internal/cart"
	"shrimati-be/internal/events"
	"shrimati-be/internal/logger"
	"shrimati-be/internal/metrics"
	"shrimati-be/internal/order"
	"shrimati-be/internal/product"
	"shrimati-be/internal/session"

	"go.uber.org/zap"
)

// Session staging keys accumulated across the checkout steps.
const (
	keyFullName    = "full_name"
	keyPhone       = "phone"
	keyAddressLine = "address_line"
	keyCity        = "city"
	keyState       = "state"
	keyPincode     = "pincode"
	keyPayment     = "payment_method"
)

// stagingKeys is everything cleared after a confirmed checkout,
// including the cart itself.
var stagingKeys = []string{
	cart.SessionKey,
	keyFullName, keyPhone, keyAddressLine, keyCity, keyState, keyPincode,
	keyPayment,
}

type AddressInput struct {
	FullName    string `json:"full_name"`
	Phone       string `json:"phone"`
	AddressLine string `json:"address_line"`
	City        string `json:"city"`
	State       string `json:"state"`
	Pincode     string `json:"pincode"`
}

type ConfirmResult struct {
	Orders        []*order.Order      `json:"orders"`
	FullName      string              `json:"full_name"`
	Address       string              `json:"address"`
	Phone         string              `json:"phone"`
	PaymentMethod order.PaymentMethod `json:"payment_method"`
}

// Service is the staged checkout pipeline: address, payment,
// confirmation. Each stage requires a non-empty cart; payment and
// confirmation additionally require the address to be staged.
type Service interface {
	Summary(ctx context.Context, sessionID string) (*cart.View, error)
	SubmitAddress(ctx context.Context, sessionID string, input AddressInput) error
	SubmitPayment(ctx context.Context, sessionID, method string) error
	Confirm(ctx context.Context, sessionID string, userID uint) (*ConfirmResult, error)
}

type service struct {
	cartSvc     cart.Service
	orderSvc    order.Service
	productRepo product.Repository
	store       session.Store
	publisher   events.Publisher
	reg         *metrics.Registry
}

func NewService(
	cartSvc cart.Service,
	orderSvc order.Service,
	productRepo product.Repository,
	store session.Store,
	publisher events.Publisher,
	reg *metrics.Registry,
) Service {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	if reg == nil {
		reg = metrics.Default
	}
	return &service{
		cartSvc:     cartSvc,
		orderSvc:    orderSvc,
		productRepo: productRepo,
		store:       store,
		publisher:   publisher,
		reg:         reg,
	}
}

func (s *service) requireCart(ctx context.Context, sessionID string) (cart.CartState, error) {
	state, err := s.cartSvc.State(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(state) == 0 {
		return nil, ErrCartEmpty
	}
	return state, nil
}

// Summary returns the cart with live prices for the checkout page.
func (s *service) Summary(ctx context.Context, sessionID string) (*cart.View, error) {
	if _, err := s.requireCart(ctx, sessionID); err != nil {
		return nil, err
	}
	return s.cartSvc.GetCart(ctx, sessionID)
}

// SubmitAddress stages the shipping fields in the session. Nothing is
// written to the orders table yet.
func (s *service) SubmitAddress(ctx context.Context, sessionID string, input AddressInput) error {
	if _, err := s.requireCart(ctx, sessionID); err != nil {
		return err
	}

	if input.FullName == "" || input.Phone == "" || input.AddressLine == "" ||
		input.City == "" || input.State == "" || input.Pincode == "" {
		return ErrIncompleteAddress
	}

	fields := map[string]string{
		keyFullName:    input.FullName,
		keyPhone:       input.Phone,
		keyAddressLine: input.AddressLine,
		keyCity:        input.City,
		keyState:       input.State,
		keyPincode:     input.Pincode,
	}
	for k, v := range fields {
		if err := s.store.Set(ctx, sessionID, k, v); err != nil {
			return err
		}
	}
	return nil
}

// SubmitPayment stages the chosen payment method.
func (s *service) SubmitPayment(ctx context.Context, sessionID, method string) error {
	if _, err := s.requireCart(ctx, sessionID); err != nil {
		return err
	}

	if staged, err := s.addressStaged(ctx, sessionID); err != nil {
		return err
	} else if !staged {
		return ErrAddressNotStaged
	}

	if _, ok := order.ParsePaymentMethod(method); !ok {
		return ErrInvalidPaymentMethod
	}

	return s.store.Set(ctx, sessionID, keyPayment, method)
}

func (s *service) addressStaged(ctx context.Context, sessionID string) (bool, error) {
	var name string
	found, err := s.store.Get(ctx, sessionID, keyFullName, &name)
	if err != nil {
		return false, err
	}
	return found && name != "", nil
}

func (s *service) getString(ctx context.Context, sessionID, key string) (string, error) {
	var v string
	if _, err := s.store.Get(ctx, sessionID, key, &v); err != nil {
		return "", err
	}
	return v, nil
}

// Confirm converts every cart line into a persisted order, then clears
// the cart and all staging keys in one session write so a reload
// cannot duplicate the order.
//
// Order creation is per-line best effort: a line whose product has
// disappeared aborts the loop and leaves the orders created for
// earlier lines in place, with the session untouched. There is no
// cross-line transaction.
func (s *service) Confirm(ctx context.Context, sessionID string, userID uint) (*ConfirmResult, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("method", "Confirm"),
		zap.Uint("user_id", userID),
	)

	state, err := s.requireCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if staged, err := s.addressStaged(ctx, sessionID); err != nil {
		return nil, err
	} else if !staged {
		return nil, ErrAddressNotStaged
	}

	fullName, err := s.getString(ctx, sessionID, keyFullName)
	if err != nil {
		return nil, err
	}
	phone, err := s.getString(ctx, sessionID, keyPhone)
	if err != nil {
		return nil, err
	}
	addressLine, err := s.getString(ctx, sessionID, keyAddressLine)
	if err != nil {
		return nil, err
	}
	city, err := s.getString(ctx, sessionID, keyCity)
	if err != nil {
		return nil, err
	}
	stateName, err := s.getString(ctx, sessionID, keyState)
	if err != nil {
		return nil, err
	}
	pincode, err := s.getString(ctx, sessionID, keyPincode)
	if err != nil {
		return nil, err
	}

	methodStr, err := s.getString(ctx, sessionID, keyPayment)
	if err != nil {
		return nil, err
	}
	method, ok := order.ParsePaymentMethod(methodStr)
	if !ok {
		method = order.MethodCOD
	}

	address := fmt.Sprintf("%s, %s, %s - %s", addressLine, city, stateName, pincode)

	// deterministic line order
	keys := make([]string, 0, len(state))
	for k := range state {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	created := make([]*order.Order, 0, len(state))
	for _, key := range keys {
		line := state[key]

		p, err := s.productRepo.GetProductByID(ctx, line.ProductID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			log.Warn("product vanished mid-checkout",
				zap.String("key", key),
				zap.Uint("product_id", line.ProductID),
				zap.Int("orders_already_created", len(created)),
			)
			return nil, ErrProductNotFound
		}

		o, err := s.orderSvc.Create(ctx, order.CreateParams{
			UserID:   userID,
			Product:  p,
			Quantity: line.Quantity,
			Address:  address,
			Phone:    phone,
			Method:   method,
		})
		if err != nil {
			return nil, err
		}
		created = append(created, o)

		if err := s.publisher.Publish(ctx, events.OrderCreated, o); err != nil {
			log.Warn("failed to publish order.created", zap.Error(err))
		}
	}

	if err := s.store.Clear(ctx, sessionID, stagingKeys...); err != nil {
		return nil, err
	}

	s.reg.CheckoutConfirms.Inc()

	log.Info("checkout confirmed",
		zap.Int("orders", len(created)),
		zap.String("payment_method", string(method)),
	)

	return &ConfirmResult{
		Orders:        created,
		FullName:      fullName,
		Address:       address,
		Phone:         phone,
		PaymentMethod: method,
	}, nil
}
