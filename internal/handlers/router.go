package handlers

import (
	"shrimati-be/internal/logger"
	"shrimati-be/internal/middleware"
	"shrimati-be/internal/session"

	"github.com/gin-gonic/gin"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth     *AuthHandler
	Product  *ProductHandler
	Cart     *CartHandler
	Checkout *CheckoutHandler
	Order    *OrderHandler
	Admin    *AdminHandler
	Contact  *ContactHandler
}

// RegisterRoutes mounts the whole HTTP surface on the engine.
func RegisterRoutes(r *gin.Engine, h *Handlers) {
	r.Use(
		logger.RequestIDMiddleware(),
		logger.RequestLogger(),
		session.Middleware(),
		middleware.OptionalAuth(),
	)

	auth := r.Group("/auth", middleware.RateLimitStrict())
	{
		auth.POST("/signup", h.Auth.Signup)
		auth.GET("/activate/:id/:token", h.Auth.Activate)
		auth.POST("/login", h.Auth.Login)
		auth.POST("/logout", h.Auth.Logout)
		auth.POST("/password-reset", h.Auth.RequestPasswordReset)
		auth.POST("/password-reset/confirm", h.Auth.ConfirmPasswordReset)
	}

	public := r.Group("/", middleware.RateLimitGeneral())
	{
		public.GET("/products", h.Product.List)
		public.GET("/products/:id", h.Product.Get)
		public.GET("/search", h.Product.Search)
		public.POST("/contact", h.Contact.Submit)

		// tracking poll is readable by anyone who knows the id
		public.GET("/orders/:id/track/api", h.Order.TrackAPI)

		cart := public.Group("/cart")
		{
			cart.GET("", h.Cart.Get)
			cart.GET("/count", h.Cart.Count)
			cart.POST("/add/:id", h.Cart.Add)
			cart.POST("/remove/:key", h.Cart.Decrement)
			cart.POST("/clear-item/:key", h.Cart.Remove)
			cart.POST("/clear", h.Cart.Clear)
		}
	}

	authed := r.Group("/", middleware.RateLimitGeneral(), middleware.RequireAuth())
	{
		authed.GET("/checkout", h.Checkout.Summary)
		authed.POST("/checkout/address", h.Checkout.SubmitAddress)
		authed.POST("/checkout/payment", h.Checkout.SubmitPayment)
		authed.POST("/checkout/confirm", h.Checkout.Confirm)

		authed.GET("/orders", h.Order.List)
		authed.GET("/orders/:id/track", h.Order.Track)
	}

	admin := r.Group("/admin", middleware.RequireAuth(), middleware.RequireAdmin())
	{
		admin.GET("/orders", h.Admin.ListOrders)
		admin.POST("/orders/:id/status", h.Admin.MarkStatus)
		admin.POST("/orders/:id/tracking", h.Admin.SetTracking)
		admin.GET("/contacts", h.Contact.List)
	}
}
