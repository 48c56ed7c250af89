package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"user-billing/internal/config"
	"user-billing/internal/db"
	"user-billing/internal/events"
	"user-billing/internal/gateway"
	apihttp "user-billing/internal/http"
	"user-billing/internal/repository"
	"user-billing/internal/service"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadBillingConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	var (
		customers repository.CustomerRepository     = repository.NewMemoryCustomerRepository()
		subs      repository.SubscriptionRepository = repository.NewMemorySubscriptionRepository()
	)
	if cfg.DatabaseURL != "" {
		pool, err := db.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Fatal("db connect", zap.Error(err))
		}
		defer pool.Close()
		customers = repository.NewPgCustomerRepository(pool)
		subs = repository.NewPgSubscriptionRepository(pool)
	}

	bus := events.NewBus(logger)
	stripeGw := gateway.NewStripeStub()

	billingSvc := service.NewBillingService(logger, customers, stripeGw, bus)
	subSvc := service.NewSubscriptionService(logger, subs, customers)

	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed", zap.Error(err))
		} else {
			consumerName, _ := os.Hostname()
			if consumerName == "" {
				consumerName = "billing-api"
			}
			consumer := events.NewStreamConsumer(logger, redisClient, cfg.EventsStream, cfg.EventsGroup, consumerName,
				func(ctx context.Context, evt events.UserCreatedEvent) error {
					_, err := billingSvc.HandleUserCreated(ctx, service.UserCreatedInput{
						UserID: evt.UserID,
						Email:  evt.Email,
					})
					return err
				})
			go func() {
				if err := consumer.Run(ctx); err != nil && err != context.Canceled {
					logger.Warn("stream consumer stopped", zap.Error(err))
				}
			}()
		}
		cancel()
	}

	billingHandler := apihttp.NewBillingHandler(logger, billingSvc, subSvc)
	router := apihttp.NewBillingRouter(logger, billingHandler)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting billing service", zap.String("port", cfg.HTTPPort))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}
