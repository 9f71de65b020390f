package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/iamblessed-asd/order-api/config"
	"github.com/iamblessed-asd/order-api/internal/models"
	"github.com/iamblessed-asd/order-api/internal/service"
	"github.com/iamblessed-asd/order-api/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) (*gin.Engine, *store.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st, err := store.NewStore("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	require.NoError(t, st.InitSchema(context.Background()))

	svc := service.NewOrderService(st, nil, nil, config.BusinessConfig{
		PopularWindowDays:   30,
		PopularItemsLimit:   5,
		PopularCacheTTLSecs: 60,
		LowStockThreshold:   10,
	})

	router := gin.New()
	NewHandler(svc).SetupRoutes(router)
	return router, st
}

type apiFixtures struct {
	client *models.Client
	item   *models.Nomenclature
	order  *models.Order
}

func seedAPI(t *testing.T, st *store.Store) apiFixtures {
	t.Helper()
	ctx := context.Background()

	client := &models.Client{Name: "Test Client", Address: "123 Test Street"}
	require.NoError(t, st.CreateClient(ctx, client))

	category := &models.Category{Name: "Test Category"}
	require.NoError(t, st.CreateCategory(ctx, category))

	item := &models.Nomenclature{Name: "Test Item", Quantity: 100, Price: 10.0, CategoryID: category.ID}
	require.NoError(t, st.CreateNomenclature(ctx, item))

	order := &models.Order{ClientID: client.ID}
	require.NoError(t, st.CreateOrder(ctx, order))

	return apiFixtures{client: client, item: item, order: order}
}

func postJSON(router *gin.Engine, path string, payload interface{}) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", path, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func getPath(router *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", path, nil)
	router.ServeHTTP(w, req)
	return w
}

func TestAddItemToOrderEndpoint(t *testing.T) {
	router, st := newTestRouter(t)
	f := seedAPI(t, st)

	w := postJSON(router, "/add_item_to_order/", map[string]interface{}{
		"order_id": f.order.ID,
		"item_id":  f.item.ID,
		"quantity": 2,
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var resp service.AddItemResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "item added to order", resp.Message)
	assert.Equal(t, f.order.ID, resp.OrderID)
	assert.Equal(t, f.item.ID, resp.ItemID)
	assert.Equal(t, 2, resp.Quantity)
}

func TestAddItemToOrderUnknownItem(t *testing.T) {
	router, st := newTestRouter(t)
	f := seedAPI(t, st)

	w := postJSON(router, "/add_item_to_order/", map[string]interface{}{
		"order_id": f.order.ID,
		"item_id":  9999,
		"quantity": 1,
	})

	assert.Equal(t, http.StatusNotFound, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "item not found", resp["error"])
}

func TestAddItemToOrderInsufficientStock(t *testing.T) {
	router, st := newTestRouter(t)
	f := seedAPI(t, st)

	w := postJSON(router, "/add_item_to_order/", map[string]interface{}{
		"order_id": f.order.ID,
		"item_id":  f.item.ID,
		"quantity": 101,
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "insufficient stock", resp["error"])
}

func TestAddItemToOrderInsufficientStockIncrease(t *testing.T) {
	router, st := newTestRouter(t)
	f := seedAPI(t, st)

	w := postJSON(router, "/add_item_to_order/", map[string]interface{}{
		"order_id": f.order.ID, "item_id": f.item.ID, "quantity": 60,
	})
	require.Equal(t, http.StatusOK, w.Code)

	// Stock is 40: 30 alone fits, the merged line of 90 does not
	w = postJSON(router, "/add_item_to_order/", map[string]interface{}{
		"order_id": f.order.ID, "item_id": f.item.ID, "quantity": 30,
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "insufficient stock to increase quantity", resp["error"])
}

func TestAddItemToOrderInvalidBody(t *testing.T) {
	router, _ := newTestRouter(t)

	w := postJSON(router, "/add_item_to_order/", map[string]interface{}{
		"order_id": 1,
		"item_id":  1,
		"quantity": -2,
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetOrderEndpoint(t *testing.T) {
	router, st := newTestRouter(t)
	f := seedAPI(t, st)

	w := postJSON(router, "/add_item_to_order/", map[string]interface{}{
		"order_id": f.order.ID, "item_id": f.item.ID, "quantity": 2,
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = getPath(router, "/order/1")
	assert.Equal(t, http.StatusOK, w.Code)

	var detail service.OrderDetail
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &detail))
	assert.Equal(t, f.order.ID, detail.OrderID)
	assert.Equal(t, f.client.ID, detail.ClientID)
	assert.Equal(t, 20.0, detail.TotalPrice)
	require.Len(t, detail.Items, 1)
	assert.Equal(t, f.item.ID, detail.Items[0].ItemID)
	assert.Equal(t, 2, detail.Items[0].Quantity)
}

func TestGetOrderNotFoundEndpoint(t *testing.T) {
	router, st := newTestRouter(t)
	seedAPI(t, st)

	w := getPath(router, "/order/9999")
	assert.Equal(t, http.StatusNotFound, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "order not found", resp["error"])
}

func TestClientOrderSummaryEndpoint(t *testing.T) {
	router, st := newTestRouter(t)
	f := seedAPI(t, st)

	w := postJSON(router, "/add_item_to_order/", map[string]interface{}{
		"order_id": f.order.ID, "item_id": f.item.ID, "quantity": 2,
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = getPath(router, "/client_order_summary/1")
	assert.Equal(t, http.StatusOK, w.Code)

	var rows []models.ClientOrderSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "Test Client", rows[0].Name)
	assert.Equal(t, 20.0, rows[0].Total)
}

func TestClientOrderSummaryEmptyIsNotFound(t *testing.T) {
	router, st := newTestRouter(t)
	seedAPI(t, st)

	w := getPath(router, "/client_order_summary/9999")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTopPopularItemsEndpoint(t *testing.T) {
	router, st := newTestRouter(t)
	f := seedAPI(t, st)
	ctx := context.Background()

	recent := &models.Order{ClientID: f.client.ID, OrderDate: time.Now().UTC().AddDate(0, 0, -5)}
	require.NoError(t, st.CreateOrder(ctx, recent))

	w := postJSON(router, "/add_item_to_order/", map[string]interface{}{
		"order_id": recent.ID, "item_id": f.item.ID, "quantity": 3,
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = getPath(router, "/top5_popular_items/")
	assert.Equal(t, http.StatusOK, w.Code)

	var items []models.PopularItem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "Test Item", items[0].NomenclatureName)
	assert.Equal(t, "Test Category", items[0].CategoryName)
	assert.Equal(t, 3, items[0].TotalSold)
}

func TestTopPopularItemsEmptyList(t *testing.T) {
	router, st := newTestRouter(t)
	seedAPI(t, st)

	w := getPath(router, "/top5_popular_items/")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestOrdersByDateEndpoint(t *testing.T) {
	router, st := newTestRouter(t)
	f := seedAPI(t, st)
	ctx := context.Background()

	older := &models.Order{ClientID: f.client.ID, OrderDate: time.Now().UTC().AddDate(0, 0, -2)}
	require.NoError(t, st.CreateOrder(ctx, older))

	w := getPath(router, "/orders_by_date/")
	assert.Equal(t, http.StatusOK, w.Code)

	var details []service.OrderDetail
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &details))
	require.Len(t, details, 2)
	assert.Equal(t, f.order.ID, details[0].OrderID)
	assert.Equal(t, older.ID, details[1].OrderID)
}

func TestOrdersByDateEmptyIsNotFound(t *testing.T) {
	router, _ := newTestRouter(t)

	w := getPath(router, "/orders_by_date/")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
