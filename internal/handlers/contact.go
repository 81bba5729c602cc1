package handlers

import (
	"net/http"

	"shrimati-be/internal/contact"

	"github.com/gin-gonic/gin"
)

type ContactHandler struct {
	svc contact.Service
}

func NewContactHandler(svc contact.Service) *ContactHandler {
	return &ContactHandler{svc: svc}
}

func (h *ContactHandler) Submit(c *gin.Context) {
	var m contact.Message
	if err := c.ShouldBindJSON(&m); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	saved, err := h.svc.Submit(c.Request.Context(), &m)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, saved)
}

func (h *ContactHandler) List(c *gin.Context) {
	messages, err := h.svc.ListAll(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages})
}
