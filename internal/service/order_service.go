package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/iamblessed-asd/order-api/config"
	"github.com/iamblessed-asd/order-api/internal/broker"
	"github.com/iamblessed-asd/order-api/internal/models"
	"github.com/iamblessed-asd/order-api/internal/redisclient"
	"github.com/iamblessed-asd/order-api/internal/store"
	"github.com/iamblessed-asd/order-api/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OrderService handles the order mutation and query operations. The cache
// and event publisher are optional; a nil value disables that collaborator.
type OrderService struct {
	store  *store.Store
	cache  *redisclient.Client
	events *broker.EventPublisher
	logger *zap.Logger
	biz    config.BusinessConfig
}

// NewOrderService creates a new order service
func NewOrderService(
	store *store.Store,
	cache *redisclient.Client,
	events *broker.EventPublisher,
	biz config.BusinessConfig,
) *OrderService {
	return &OrderService{
		store:  store,
		cache:  cache,
		events: events,
		logger: util.GetLogger(),
		biz:    biz,
	}
}

// AddItemRequest represents a request to add an item to an order
type AddItemRequest struct {
	OrderID  int64 `json:"order_id" binding:"required"`
	ItemID   int64 `json:"item_id" binding:"required"`
	Quantity int   `json:"quantity" binding:"required,gt=0"`
}

// AddItemResponse echoes a successful addition
type AddItemResponse struct {
	Message  string `json:"message"`
	OrderID  int64  `json:"order_id"`
	ItemID   int64  `json:"item_id"`
	Quantity int    `json:"quantity"`
}

// OrderItemDetail is one line of an order detail
type OrderItemDetail struct {
	ItemID   int64 `json:"item_id"`
	Quantity int   `json:"quantity"`
}

// OrderDetail is the full order view returned by the query endpoints
type OrderDetail struct {
	OrderID    int64             `json:"order_id"`
	ClientID   int64             `json:"client_id"`
	OrderDate  time.Time         `json:"order_date"`
	TotalPrice float64           `json:"total_price"`
	Items      []OrderItemDetail `json:"items"`
}

// AddItemToOrder adds quantity of an item to an order. Stock check, line
// upsert, stock decrement, and total recomputation happen in one database
// transaction; retries are not idempotent and decrement stock again.
func (s *OrderService) AddItemToOrder(ctx context.Context, req *AddItemRequest) (*AddItemResponse, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.AddItemToOrder")
	defer span.End()

	result, err := s.store.AddOrderItem(ctx, req.OrderID, req.ItemID, req.Quantity)
	if err != nil {
		util.AddItemFailuresTotal.WithLabelValues(failureReason(err)).Inc()
		return nil, err
	}

	util.ItemsAddedTotal.Inc()
	s.logger.Info("Item added to order",
		zap.Int64("order_id", req.OrderID),
		zap.Int64("item_id", req.ItemID),
		zap.Int("quantity", req.Quantity),
		zap.Int("remaining_stock", result.RemainingStock),
		zap.Float64("order_total", result.OrderTotal))

	if s.cache != nil {
		if err := s.cache.InvalidatePopularItems(ctx); err != nil {
			s.logger.Warn("Failed to invalidate popular items cache", zap.Error(err))
		}
	}

	if s.events != nil {
		event := &models.ItemAddedEvent{
			BaseEvent: models.BaseEvent{
				EventID:   uuid.New().String(),
				EventType: models.EventTypeItemAdded,
				Timestamp: time.Now(),
			},
			OrderID:        req.OrderID,
			ItemID:         req.ItemID,
			Quantity:       req.Quantity,
			RemainingStock: result.RemainingStock,
			OrderTotal:     result.OrderTotal,
		}
		if err := s.events.PublishItemAdded(ctx, event); err != nil {
			s.logger.Error("Failed to publish ItemAdded event", zap.Error(err))
		}
	}

	return &AddItemResponse{
		Message:  "item added to order",
		OrderID:  req.OrderID,
		ItemID:   req.ItemID,
		Quantity: req.Quantity,
	}, nil
}

// GetOrder retrieves an order with its items. A total still at the default 0
// is recomputed from current items and persisted before returning.
func (s *OrderService) GetOrder(ctx context.Context, orderID int64) (*OrderDetail, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.GetOrder")
	defer span.End()

	order, err := s.store.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	return s.orderDetail(ctx, order)
}

// orderDetail assembles the detail view, recomputing a zero total lazily
func (s *OrderService) orderDetail(ctx context.Context, order *models.Order) (*OrderDetail, error) {
	if order.TotalPrice == 0 {
		total, err := s.store.RecomputeOrderTotal(ctx, order.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to recompute order total: %w", err)
		}
		order.TotalPrice = total
		util.OrderTotalRecomputesTotal.Inc()
	}

	items, err := s.store.GetOrderItemsByOrderID(ctx, order.ID)
	if err != nil {
		return nil, err
	}

	detail := &OrderDetail{
		OrderID:    order.ID,
		ClientID:   order.ClientID,
		OrderDate:  order.OrderDate,
		TotalPrice: order.TotalPrice,
		Items:      make([]OrderItemDetail, 0, len(items)),
	}
	for _, item := range items {
		detail.Items = append(detail.Items, OrderItemDetail{ItemID: item.ItemID, Quantity: item.Quantity})
	}
	return detail, nil
}

// ClientOrderSummary sums spend across all of a client's orders. A client
// with no orders is reported as not found, never as an empty success.
func (s *OrderService) ClientOrderSummary(ctx context.Context, clientID int64) ([]models.ClientOrderSummary, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.ClientOrderSummary")
	defer span.End()

	rows, err := s.store.ClientOrderSummary(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("client %d: %w", clientID, store.ErrNoClientOrders)
	}
	return rows, nil
}

// TopPopularItems reports the best-selling items over the configured rolling
// window. Results are served from the cache when available; cache failures
// fall back to the database.
func (s *OrderService) TopPopularItems(ctx context.Context) ([]models.PopularItem, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.TopPopularItems")
	defer span.End()

	if s.cache != nil {
		items, ok, err := s.cache.GetPopularItems(ctx)
		if err != nil {
			s.logger.Warn("Popular items cache read failed", zap.Error(err))
		} else if ok {
			util.PopularCacheHitsTotal.Inc()
			return items, nil
		} else {
			util.PopularCacheMissesTotal.Inc()
		}
	}

	since := time.Now().UTC().AddDate(0, 0, -s.biz.PopularWindowDays)
	items, err := s.store.TopPopularItems(ctx, since, s.biz.PopularItemsLimit)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.PopularItem{}
	}

	if s.cache != nil {
		ttl := time.Duration(s.biz.PopularCacheTTLSecs) * time.Second
		if err := s.cache.SetPopularItems(ctx, items, ttl); err != nil {
			s.logger.Warn("Popular items cache write failed", zap.Error(err))
		}
	}

	return items, nil
}

// OrdersByDate returns all orders newest first, each with its item list
func (s *OrderService) OrdersByDate(ctx context.Context) ([]*OrderDetail, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.OrdersByDate")
	defer span.End()

	orders, err := s.store.GetOrdersByDateDesc(ctx)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, store.ErrNoOrders
	}

	details := make([]*OrderDetail, 0, len(orders))
	for i := range orders {
		detail, err := s.orderDetail(ctx, &orders[i])
		if err != nil {
			return nil, err
		}
		details = append(details, detail)
	}
	return details, nil
}

// failureReason maps a mutation error to a metric label
func failureReason(err error) string {
	switch {
	case errors.Is(err, store.ErrItemNotFound):
		return "item_not_found"
	case errors.Is(err, store.ErrOrderNotFound):
		return "order_not_found"
	case errors.Is(err, store.ErrInsufficientStockIncrease):
		return "insufficient_stock_increase"
	case errors.Is(err, store.ErrInsufficientStock):
		return "insufficient_stock"
	default:
		return "db_error"
	}
}
