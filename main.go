package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/mimyohi/shop-admin-sub001/internal/config"
	"github.com/mimyohi/shop-admin-sub001/internal/database"
	"github.com/mimyohi/shop-admin-sub001/internal/handlers"
	"github.com/mimyohi/shop-admin-sub001/internal/middleware"
	"github.com/mimyohi/shop-admin-sub001/internal/notify"
	"github.com/mimyohi/shop-admin-sub001/internal/payment"
	"github.com/mimyohi/shop-admin-sub001/internal/service"
	"github.com/mimyohi/shop-admin-sub001/internal/store"
)

func main() {
	config.Load()

	client, err := database.Connect(config.AppEnv.MongoURI)
	if err != nil {
		log.Fatal(err)
	}

	db := client.Database(config.AppEnv.DBName)

	log.Println("MongoDB connected to:", db.Name())

	if err := database.EnsureOrderIndexes(db); err != nil {
		log.Printf("order index warning: %v", err)
	}
	if err := database.EnsureCouponIndexes(db); err != nil {
		log.Printf("coupon index warning: %v", err)
	}
	if err := database.EnsurePointIndexes(db); err != nil {
		log.Printf("point index warning: %v", err)
	}

	orders := store.NewOrders(db)
	coupons := store.NewCoupons(db)
	points := store.NewPoints(db)

	recovery := service.NewRecoveryEngine(orders, coupons, points)
	gateway := payment.NewClient(config.AppEnv.PaymentAPIBase, config.AppEnv.PaymentAPISecret)
	notifier := notify.NewMessageSender(config.AppEnv.NotifyAPIURL, config.AppEnv.NotifyAPIKey, config.AppEnv.NotifySender)

	cancelService := service.NewCancelService(orders, recovery, gateway, notifier)
	salesService := service.NewSalesService(orders)

	r := gin.Default()

	r.GET("/healthz", handlers.Health(db))

	admin := r.Group("/admin/api")
	admin.Use(middleware.AdminAuth(config.AppEnv.JWTSecret))
	{
		admin.GET("/orders", handlers.GetOrders(orders))
		admin.GET("/orders/:orderNumber", handlers.GetOrderByNumber(orders))
		admin.POST("/orders/cancel", handlers.CancelOrder(cancelService))

		admin.GET("/sales", handlers.GetSales(salesService))
	}

	r.Run(":" + config.AppEnv.Port)
}
