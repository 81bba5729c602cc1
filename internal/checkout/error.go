package checkout

import "errors"

var (
	ErrCartEmpty            = errors.New("cart is empty")
	ErrIncompleteAddress    = errors.New("incomplete shipping address")
	ErrAddressNotStaged     = errors.New("shipping address not submitted")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrProductNotFound      = errors.New("product not found")
)
