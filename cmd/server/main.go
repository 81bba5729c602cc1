package main

import (
	"time"

	"shrimati-be/internal/admin"
	"shrimati-be/internal/cart"
	"shrimati-be/internal/checkout"
	"shrimati-be/internal/config"
	"shrimati-be/internal/contact"
	"shrimati-be/internal/db"
	"shrimati-be/internal/events"
	"shrimati-be/internal/handlers"
	"shrimati-be/internal/logger"
	"shrimati-be/internal/order"
	"shrimati-be/internal/product"
	"shrimati-be/internal/session"
	"shrimati-be/internal/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const eventsExchange = "shrimati.events"

func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()
	log := logger.L()

	database := db.InitDB(cfg)
	defer database.Close()

	store, err := session.NewRedisStore(cfg.RedisURL, time.Duration(cfg.SessionTTLSeconds)*time.Second)
	if err != nil {
		log.Fatal("failed to connect to redis", zap.Error(err))
	}

	var publisher events.Publisher = events.NopPublisher{}
	if cfg.AMQPURL != "" {
		publisher, err = events.NewPublisher(cfg.AMQPURL, eventsExchange)
		if err != nil {
			log.Fatal("failed to connect to rabbitmq", zap.Error(err))
		}
	} else {
		log.Warn("AMQP_URL not set, events will be dropped")
	}
	defer publisher.Close()

	productRepo := product.NewRepository(database)
	productSvc := product.NewService(productRepo)

	cartSvc := cart.NewService(store, productRepo, nil)

	orderRepo := order.NewRepository(database)
	orderSvc := order.NewService(orderRepo, nil)

	checkoutSvc := checkout.NewService(cartSvc, orderSvc, productRepo, store, publisher, nil)

	tokens := user.NewTokenMaker(cfg.TokenSecret, 24*time.Hour)
	userRepo := user.NewRepository(database)
	userSvc := user.NewService(userRepo, tokens, publisher, cfg.BaseURL)

	adminSvc := admin.NewService(orderSvc, publisher)

	contactRepo := contact.NewRepository(database)
	contactSvc := contact.NewService(contactRepo)

	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	handlers.RegisterRoutes(r, &handlers.Handlers{
		Auth:     handlers.NewAuthHandler(userSvc),
		Product:  handlers.NewProductHandler(productSvc),
		Cart:     handlers.NewCartHandler(cartSvc),
		Checkout: handlers.NewCheckoutHandler(checkoutSvc),
		Order:    handlers.NewOrderHandler(orderSvc),
		Admin:    handlers.NewAdminHandler(adminSvc),
		Contact:  handlers.NewContactHandler(contactSvc),
	})

	log.Info("storefront listening", zap.String("port", cfg.AppPort))
	if err := r.Run(":" + cfg.AppPort); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
