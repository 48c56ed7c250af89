package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"user-billing/internal/service"
)

// BillingHandler mantiene dependencias para endpoints de facturación.
type BillingHandler struct {
	logger      *zap.Logger
	billingServ *service.BillingService
	subServ     *service.SubscriptionService
}

func NewBillingHandler(logger *zap.Logger, billingServ *service.BillingService, subServ *service.SubscriptionService) *BillingHandler {
	return &BillingHandler{
		logger:      logger,
		billingServ: billingServ,
		subServ:     subServ,
	}
}

// GetSubscription maneja GET /subscriptions/:userId.
func (h *BillingHandler) GetSubscription(c *gin.Context) {
	userID := c.Param("userId")

	view, err := h.subServ.GetSubscriptionByUserID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrSubscriptionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("get subscription failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not get subscription"})
		return
	}

	c.JSON(http.StatusOK, view)
}

// HandleStripeWebhook maneja POST /webhooks/stripe. El webhook siempre se
// reconoce con 200: el proveedor reintenta ante cualquier otra cosa.
func (h *BillingHandler) HandleStripeWebhook(c *gin.Context) {
	var evt service.WebhookEvent
	if err := c.ShouldBindJSON(&evt); err != nil {
		h.logger.Warn("unreadable webhook body", zap.Error(err))
		c.JSON(http.StatusOK, gin.H{"ok": true})
		return
	}

	if err := h.subServ.HandlePaymentWebhook(c.Request.Context(), evt); err != nil {
		h.logger.Warn("webhook processing failed", zap.Error(err))
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// HandleUserCreated maneja POST /events/user-created, la entrega HTTP del
// evento user.created. Payloads malformados responden ignored, nunca error.
func (h *BillingHandler) HandleUserCreated(c *gin.Context) {
	var req struct {
		UserID      string `json:"userId"`
		Email       string `json:"email"`
		DisplayName string `json:"displayName"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("unreadable user-created payload", zap.Error(err))
		c.JSON(http.StatusOK, gin.H{"status": service.StatusIgnored})
		return
	}

	status, err := h.billingServ.HandleUserCreated(c.Request.Context(), service.UserCreatedInput{
		UserID:      req.UserID,
		Email:       req.Email,
		DisplayName: req.DisplayName,
	})
	if err != nil {
		h.logger.Error("handle user created failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not process event"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": status})
}
