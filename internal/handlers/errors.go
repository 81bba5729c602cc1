package handlers

import (
	"errors"
	"net/http"

	"shrimati-be/internal/cart"
	"shrimati-be/internal/checkout"
	"shrimati-be/internal/contact"
	"shrimati-be/internal/logger"
	"shrimati-be/internal/order"
	"shrimati-be/internal/product"
	"shrimati-be/internal/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// writeError maps domain sentinels to HTTP status codes. Unknown
// errors become opaque 500s.
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	msg := err.Error()

	switch {
	case errors.Is(err, checkout.ErrCartEmpty),
		errors.Is(err, checkout.ErrIncompleteAddress),
		errors.Is(err, checkout.ErrAddressNotStaged),
		errors.Is(err, checkout.ErrInvalidPaymentMethod),
		errors.Is(err, order.ErrInvalidStatus),
		errors.Is(err, contact.ErrIncompleteMessage),
		errors.Is(err, user.ErrEmailExists),
		errors.Is(err, user.ErrInvalidToken):
		status = http.StatusBadRequest

	case errors.Is(err, user.ErrInvalidCredentials),
		errors.Is(err, user.ErrInactiveAccount):
		status = http.StatusUnauthorized

	case errors.Is(err, order.ErrUnauthorized):
		status = http.StatusForbidden

	case errors.Is(err, product.ErrProductNotFound),
		errors.Is(err, cart.ErrProductNotFound),
		errors.Is(err, checkout.ErrProductNotFound),
		errors.Is(err, order.ErrOrderNotFound),
		errors.Is(err, user.ErrUserNotFound):
		status = http.StatusNotFound
	}

	if status == http.StatusInternalServerError {
		logger.FromCtx(c.Request.Context()).Error("request failed",
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		msg = "internal server error"
	}

	c.JSON(status, gin.H{"error": msg})
}
