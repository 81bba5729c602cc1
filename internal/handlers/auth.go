package handlers

import (
	"net/http"

	"shrimati-be/internal/user"
	"shrimati-be/internal/utils"

	"github.com/gin-gonic/gin"
)

const accessTokenMaxAge = 24 * 3600

type AuthHandler struct {
	svc user.Service
}

func NewAuthHandler(svc user.Service) *AuthHandler {
	return &AuthHandler{svc: svc}
}

type signupRequest struct {
	Name            string `json:"name" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" binding:"required,eqfield=Password"`
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	u, err := h.svc.Signup(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user":    u,
		"message": "check your email to activate the account",
	})
}

// Activate handles the emailed link: /auth/activate/:id/:token.
func (h *AuthHandler) Activate(c *gin.Context) {
	userID, err := utils.ToUint(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid activation link"})
		return
	}

	u, err := h.svc.Activate(c.Request.Context(), userID, c.Param("token"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": u, "message": "account activated"})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}

	token, u, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	c.SetCookie("access_token", token, accessTokenMaxAge, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"token": token, "user": u})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie("access_token", "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

type resetRequest struct {
	Email string `json:"email" binding:"required"`
}

func (h *AuthHandler) RequestPasswordReset(c *gin.Context) {
	var req resetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email is required"})
		return
	}

	if err := h.svc.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "if the account exists, a reset email has been sent"})
}

type resetConfirmRequest struct {
	UserID   uint   `json:"user_id" binding:"required"`
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

func (h *AuthHandler) ConfirmPasswordReset(c *gin.Context) {
	var req resetConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.svc.ResetPassword(c.Request.Context(), req.UserID, req.Token, req.Password); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "password updated"})
}
