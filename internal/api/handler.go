package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/iamblessed-asd/order-api/internal/service"
	"github.com/iamblessed-asd/order-api/internal/store"
	"github.com/iamblessed-asd/order-api/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler contains HTTP handlers
type Handler struct {
	orderService *service.OrderService
}

// NewHandler creates a new HTTP handler
func NewHandler(orderService *service.OrderService) *Handler {
	return &Handler{
		orderService: orderService,
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

	router.POST("/add_item_to_order/", h.addItemToOrder)
	router.GET("/order/:order_id", h.getOrder)
	router.GET("/client_order_summary/:client_id", h.clientOrderSummary)
	router.GET("/top5_popular_items/", h.topPopularItems)
	router.GET("/orders_by_date/", h.ordersByDate)
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

// addItemToOrder handles the single write path
func (h *Handler) addItemToOrder(c *gin.Context) {
	var req service.AddItemRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": err.Error(),
		})
		return
	}

	resp, err := h.orderService.AddItemToOrder(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// getOrder handles get order by ID
func (h *Handler) getOrder(c *gin.Context) {
	orderID, ok := pathID(c, "order_id")
	if !ok {
		return
	}

	detail, err := h.orderService.GetOrder(c.Request.Context(), orderID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, detail)
}

// clientOrderSummary handles the per-client spend report
func (h *Handler) clientOrderSummary(c *gin.Context) {
	clientID, ok := pathID(c, "client_id")
	if !ok {
		return
	}

	rows, err := h.orderService.ClientOrderSummary(c.Request.Context(), clientID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, rows)
}

// topPopularItems handles the rolling-window best-sellers report
func (h *Handler) topPopularItems(c *gin.Context) {
	items, err := h.orderService.TopPopularItems(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, items)
}

// ordersByDate handles listing all orders newest first
func (h *Handler) ordersByDate(c *gin.Context) {
	details, err := h.orderService.OrdersByDate(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, details)
}

// pathID parses a numeric path parameter, responding 400 on garbage
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "invalid " + name,
		})
		return 0, false
	}
	return id, true
}

// respondError maps domain error kinds to HTTP statuses. Anything not
// matched is a server error; failures are never downgraded to empty results.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrItemNotFound),
		errors.Is(err, store.ErrOrderNotFound),
		errors.Is(err, store.ErrNoClientOrders),
		errors.Is(err, store.ErrNoOrders):
		c.JSON(http.StatusNotFound, gin.H{
			"error":   notFoundMessage(err),
			"details": err.Error(),
		})
	case errors.Is(err, store.ErrInsufficientStockIncrease):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   store.ErrInsufficientStockIncrease.Error(),
			"details": err.Error(),
		})
	case errors.Is(err, store.ErrInsufficientStock):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   store.ErrInsufficientStock.Error(),
			"details": err.Error(),
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal server error",
			"details": err.Error(),
		})
	}
}

func notFoundMessage(err error) string {
	for _, kind := range []error{
		store.ErrItemNotFound,
		store.ErrOrderNotFound,
		store.ErrNoClientOrders,
		store.ErrNoOrders,
	} {
		if errors.Is(err, kind) {
			return kind.Error()
		}
	}
	return "not found"
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
