package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"storefront-service/internal/models"
	"storefront-service/internal/service"
	"storefront-service/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler contains HTTP handlers
type Handler struct {
	checkoutService    *service.CheckoutService
	fulfillmentService *service.FulfillmentService
	formService        *service.FormService
}

// NewHandler creates a new HTTP handler
func NewHandler(
	checkoutService *service.CheckoutService,
	fulfillmentService *service.FulfillmentService,
	formService *service.FormService,
) *Handler {
	return &Handler{
		checkoutService:    checkoutService,
		fulfillmentService: fulfillmentService,
		formService:        formService,
	}
}

// SetupRoutes sets up HTTP routes
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(prometheusMiddleware())
	router.Use(gin.Logger())

	router.GET("/health", h.healthCheck)
	router.GET("/ready", h.readinessCheck)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.POST("/create-checkout-session", h.createCheckoutSession)
	router.POST("/webhook", h.handleWebhook)
	router.POST("/submit-form", h.submitForm)
}

// healthCheck handles health check requests
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().Unix(),
	})
}

// readinessCheck handles readiness check requests
func (h *Handler) readinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"time":   time.Now().Unix(),
	})
}

// createCheckoutSession builds line items from the posted cart and returns
// the payment provider's session id
func (h *Handler) createCheckoutSession(c *gin.Context) {
	var items []models.CartItem
	if err := c.ShouldBindJSON(&items); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	sessionID, err := h.checkoutService.CreateCheckoutSession(c.Request.Context(), items)
	if err != nil {
		if errors.Is(err, service.ErrEmptyCheckout) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Cart contains no purchasable items",
			})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{
			"error":   "Failed to create checkout session",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": sessionID})
}

// handleWebhook verifies and processes a payment-provider webhook delivery.
// The body is consumed raw: parsing it first would break signature matching.
func (h *Handler) handleWebhook(c *gin.Context) {
	payload, err := c.GetRawData()
	if err != nil {
		c.String(http.StatusBadRequest, "Webhook Error: %s", err.Error())
		return
	}

	sig := c.GetHeader("Stripe-Signature")
	if err := h.fulfillmentService.HandleWebhook(c.Request.Context(), payload, sig); err != nil {
		c.String(http.StatusBadRequest, "Webhook Error: %s", err.Error())
		return
	}

	c.Status(http.StatusOK)
}

// submitForm stores a contact form submission
func (h *Handler) submitForm(c *gin.Context) {
	var data map[string]interface{}
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false})
		return
	}

	if err := h.formService.Submit(c.Request.Context(), data); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// prometheusMiddleware collects HTTP metrics
func prometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		util.HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Observe(duration)

		util.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Inc()
	}
}
