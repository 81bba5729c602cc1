package order

import "errors"

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrInvalidStatus = errors.New("invalid order status")
	ErrUnauthorized  = errors.New("unauthorized")
)
