package handlers

import (
	"net/http"
	"time"

	"shrimati-be/internal/admin"
	"shrimati-be/internal/utils"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	svc admin.Service
}

func NewAdminHandler(svc admin.Service) *AdminHandler {
	return &AdminHandler{svc: svc}
}

// ListOrders returns every order, optionally filtered with ?status=.
func (h *AdminHandler) ListOrders(c *gin.Context) {
	orders, err := h.svc.ListOrders(c.Request.Context(), c.Query("status"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *AdminHandler) MarkStatus(c *gin.Context) {
	orderID, err := utils.ToUint(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}

	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status is required"})
		return
	}

	o, err := h.svc.MarkStatus(c.Request.Context(), orderID, req.Status)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

type trackingRequest struct {
	CourierName      string `json:"courier_name" binding:"required"`
	ExpectedDelivery string `json:"expected_delivery"` // YYYY-MM-DD
}

func (h *AdminHandler) SetTracking(c *gin.Context) {
	orderID, err := utils.ToUint(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}

	var req trackingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "courier_name is required"})
		return
	}

	var expected *time.Time
	if req.ExpectedDelivery != "" {
		t, err := time.Parse("2006-01-02", req.ExpectedDelivery)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "expected_delivery must be YYYY-MM-DD"})
			return
		}
		expected = &t
	}

	o, err := h.svc.SetTracking(c.Request.Context(), orderID, req.CourierName, expected)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}
