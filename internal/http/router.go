package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewUserRouter configura el router del servicio de usuarios.
func NewUserRouter(logger *zap.Logger, userH *UserHandler) *gin.Engine {
	r := newEngine(logger)

	users := r.Group("/users")
	users.POST("", userH.CreateUser)

	return r
}

// NewBillingRouter configura el router del servicio de facturación.
func NewBillingRouter(logger *zap.Logger, billingH *BillingHandler) *gin.Engine {
	r := newEngine(logger)

	subs := r.Group("/subscriptions")
	subs.GET("/:userId", billingH.GetSubscription)

	webhooks := r.Group("/webhooks")
	webhooks.POST("/stripe", billingH.HandleStripeWebhook)

	evts := r.Group("/events")
	evts.POST("/user-created", billingH.HandleUserCreated)

	return r
}

func newEngine(logger *zap.Logger) *gin.Engine {
	r := gin.New()

	// Middlewares básicos: logging, recovery y JSON content-type.
	r.Use(zapLoggerMiddleware(logger), gin.Recovery(), jsonContentTypeMiddleware())

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not Found"})
	})

	return r
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// jsonContentTypeMiddleware fuerza Content-Type: application/json en responses.
func jsonContentTypeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json")
		c.Next()
	}
}
