package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"user-billing/internal/config"
	"user-billing/internal/db"
	"user-billing/internal/email"
	"user-billing/internal/events"
	apihttp "user-billing/internal/http"
	"user-billing/internal/repository"
	"user-billing/internal/service"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadUserConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	var users repository.UserRepository = repository.NewMemoryUserRepository()
	if cfg.DatabaseURL != "" {
		pool, err := db.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Fatal("db connect", zap.Error(err))
		}
		defer pool.Close()
		users = repository.NewPgUserRepository(pool)
	}

	bus := events.NewBus(logger)

	emailSender := email.NewDisabledSender()
	if cfg.SMTPHost != "" {
		sender, err := email.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom, cfg.SMTPFromName, cfg.SMTPUseTLS)
		if err != nil {
			logger.Warn("smtp sender init failed", zap.Error(err))
		} else {
			emailSender = sender
		}
	}
	bus.Subscribe(events.UserCreated, func(ctx context.Context, payload any) error {
		evt, ok := payload.(events.UserCreatedEvent)
		if !ok {
			return nil
		}
		return emailSender.SendWelcome(ctx, evt.Email, "")
	})

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
			relay := events.NewRelay(redisClient, events.UserEventsStream)
			relay.Attach(bus)
		}
		cancel()
	}

	userSvc := service.NewUserService(logger, users, bus)
	userHandler := apihttp.NewUserHandler(logger, userSvc)
	router := apihttp.NewUserRouter(logger, userHandler)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting user service", zap.String("port", cfg.HTTPPort))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}
