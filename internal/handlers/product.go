package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"shrimati-be/internal/product"
	"shrimati-be/internal/utils"

	"github.com/gin-gonic/gin"
)

type ProductHandler struct {
	svc product.Service
}

func NewProductHandler(svc product.Service) *ProductHandler {
	return &ProductHandler{svc: svc}
}

func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.svc.ListProducts(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

// Get returns one product together with its color variants.
func (h *ProductHandler) Get(c *gin.Context) {
	id, err := utils.ToUint(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	p, err := h.svc.GetProduct(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	colors, err := h.svc.GetProductColors(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"product": p, "colors": colors})
}

// Search filters the catalog by query, categories, brands and price
// range, with paging and sorting.
func (h *ProductHandler) Search(c *gin.Context) {
	opts := product.SearchOptions{
		Query: c.Query("q"),
		Sort:  c.Query("sort"),
	}

	for _, raw := range strings.Split(c.Query("categories"), ",") {
		if raw == "" {
			continue
		}
		id, err := utils.ToUint(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category id"})
			return
		}
		opts.CategoryIDs = append(opts.CategoryIDs, id)
	}

	for _, brand := range strings.Split(c.Query("brands"), ",") {
		if brand != "" {
			opts.Brands = append(opts.Brands, brand)
		}
	}

	if raw := c.Query("min_price"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid min_price"})
			return
		}
		opts.MinPrice = &v
	}
	if raw := c.Query("max_price"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid max_price"})
			return
		}
		opts.MaxPrice = &v
	}

	if raw := c.Query("limit"); raw != "" {
		if v, err := strconv.ParseUint(raw, 10, 16); err == nil {
			opts.Limit = uint16(v)
		}
	}
	if raw := c.Query("page"); raw != "" {
		if v, err := strconv.ParseUint(raw, 10, 16); err == nil {
			opts.Page = uint16(v)
		}
	}

	products, err := h.svc.Search(c.Request.Context(), opts)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}
