package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/lortega/product-catalog-api/internal/config"
	"github.com/lortega/product-catalog-api/internal/database"
	"github.com/lortega/product-catalog-api/internal/handler"
	"github.com/lortega/product-catalog-api/internal/middleware"
	"github.com/lortega/product-catalog-api/internal/queue"
	"github.com/lortega/product-catalog-api/internal/repository"
	"github.com/lortega/product-catalog-api/internal/router"
	"github.com/lortega/product-catalog-api/internal/service"
	"github.com/lortega/product-catalog-api/internal/utils"
	"github.com/lortega/product-catalog-api/internal/validation"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env vars win
	cfg := config.Load()

	client, db, err := database.Open(cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatalf("mongo: %v", err)
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	users := repository.NewUserRepo(db)
	products := repository.NewProductRepo(db)

	issuer := utils.NewTokenIssuer(cfg.JWTSecret, cfg.JWTTTL)
	auth := service.NewAuthService(users, issuer, cfg.BcryptCost)

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Print("redis unavailable, rate limiting disabled")
	}
	limit := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	brokerURL := queue.BrokerURL()
	audit := queue.NewPublisher(brokerURL)
	go queue.StartAuditConsumer(brokerURL)

	e := echo.New()
	e.HideBanner = true
	e.Validator = validation.New()
	e.Use(echomw.Logger(), echomw.Recover())

	router.Register(e,
		handler.NewAuthHandler(cfg.Env, auth, audit),
		handler.NewUserHandler(cfg.Env, users),
		handler.NewProductHandler(cfg.Env, products, audit),
		auth,
		limit,
	)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
