package handlers

import (
	"net/http"

	"shrimati-be/internal/checkout"
	"shrimati-be/internal/middleware"
	"shrimati-be/internal/session"

	"github.com/gin-gonic/gin"
)

type CheckoutHandler struct {
	svc checkout.Service
}

func NewCheckoutHandler(svc checkout.Service) *CheckoutHandler {
	return &CheckoutHandler{svc: svc}
}

// Summary returns the cart review shown before the address stage.
func (h *CheckoutHandler) Summary(c *gin.Context) {
	view, err := h.svc.Summary(c.Request.Context(), session.FromContext(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *CheckoutHandler) SubmitAddress(c *gin.Context) {
	var input checkout.AddressInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.svc.SubmitAddress(c.Request.Context(), session.FromContext(c), input); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "address saved"})
}

type paymentRequest struct {
	Method string `json:"method"`
}

func (h *CheckoutHandler) SubmitPayment(c *gin.Context) {
	var req paymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.svc.SubmitPayment(c.Request.Context(), session.FromContext(c), req.Method); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "payment method saved"})
}

// Confirm turns the staged checkout into orders, one per cart line.
func (h *CheckoutHandler) Confirm(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	res, err := h.svc.Confirm(c.Request.Context(), session.FromContext(c), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}
