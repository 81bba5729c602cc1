package handlers

import (
	"net/http"

	"shrimati-be/internal/cart"
	"shrimati-be/internal/session"
	"shrimati-be/internal/utils"

	"github.com/gin-gonic/gin"
)

type CartHandler struct {
	svc cart.Service
}

func NewCartHandler(svc cart.Service) *CartHandler {
	return &CartHandler{svc: svc}
}

// Add puts one unit of a product in the session cart. An optional
// ?color=<id> query selects a variant, which gets its own cart line.
func (h *CartHandler) Add(c *gin.Context) {
	productID, err := utils.ToUint(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	var colorID *uint
	if raw := c.Query("color"); raw != "" {
		id, err := utils.ToUint(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid color id"})
			return
		}
		colorID = &id
	}

	res, err := h.svc.AddToCart(c.Request.Context(), session.FromContext(c), productID, colorID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Decrement lowers a line's quantity by one, dropping the line when it
// reaches zero. The :key path segment is the cart line key, which for
// color variants looks like "5-3".
func (h *CartHandler) Decrement(c *gin.Context) {
	res, err := h.svc.DecrementItem(c.Request.Context(), session.FromContext(c), c.Param("key"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Remove deletes a whole line regardless of quantity.
func (h *CartHandler) Remove(c *gin.Context) {
	res, err := h.svc.RemoveItem(c.Request.Context(), session.FromContext(c), c.Param("key"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *CartHandler) Clear(c *gin.Context) {
	if err := h.svc.ClearCart(c.Request.Context(), session.FromContext(c)); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cart_count": 0})
}

func (h *CartHandler) Get(c *gin.Context) {
	view, err := h.svc.GetCart(c.Request.Context(), session.FromContext(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// Count serves the header badge.
func (h *CartHandler) Count(c *gin.Context) {
	count, err := h.svc.Count(c.Request.Context(), session.FromContext(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cart_count": count})
}
