package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"mall-pay-api/internal/config"
	"mall-pay-api/internal/dal"
	"mall-pay-api/internal/handler"
	"mall-pay-api/internal/idgen"
	"mall-pay-api/internal/logger"
	"mall-pay-api/internal/middleware"
)

func main() {
	// load config env
	config.Init()

	// init infra
	dal.InitMainDB()
	dal.InitOrderDB()
	dal.InitRedis()
	dal.InitRabbitMQ()

	// idgen
	idgen.Init(1)
	go idgen.CheckSystemClock()

	// logger
	logger.InitLogger()

	// http server
	if config.C.Server.Mode != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.Recover())

	v1 := r.Group("/api/v1")
	{
		oh := handler.NewOrderHandler()
		v1.POST("/orders", middleware.Auth(), oh.Create)
		v1.GET("/orders/:order_no", middleware.Auth(), oh.Get)
		v1.POST("/orders/:order_no/cancel", middleware.Auth(), oh.Cancel)

		ph := handler.NewPaymentHandler()
		v1.POST("/payments/init", middleware.Auth(), ph.Init)
		v1.GET("/payments/:order_no", middleware.Auth(), ph.Get)
		// 服务商回调不走用户鉴权，验签在渠道层完成
		v1.POST("/payments/callback/:provider", ph.Callback)
	}

	addr := ":" + config.C.Server.Port
	log.Printf("listening %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}
