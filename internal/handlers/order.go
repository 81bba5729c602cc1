package handlers

import (
	"net/http"

	"shrimati-be/internal/middleware"
	"shrimati-be/internal/order"
	"shrimati-be/internal/utils"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	svc order.Service
}

func NewOrderHandler(svc order.Service) *OrderHandler {
	return &OrderHandler{svc: svc}
}

// List returns the authenticated user's orders, newest first.
func (h *OrderHandler) List(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	orders, err := h.svc.ListForUser(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// Track returns the full order for its owner.
func (h *OrderHandler) Track(c *gin.Context) {
	orderID, err := utils.ToUint(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}

	userID, _ := middleware.UserID(c)
	o, err := h.svc.TrackOne(c.Request.Context(), userID, orderID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

// TrackAPI is the public polling endpoint behind the tracking page.
// Anyone who knows the order id can read the status snapshot.
func (h *OrderHandler) TrackAPI(c *gin.Context) {
	orderID, err := utils.ToUint(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}

	snap, err := h.svc.TrackPublic(c.Request.Context(), orderID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}
