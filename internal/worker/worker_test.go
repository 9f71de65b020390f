package worker

import (
	"context"
	"testing"

	"github.com/iamblessed-asd/order-api/internal/models"
	"github.com/iamblessed-asd/order-api/internal/util"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleItemAddedLowStock(t *testing.T) {
	w := NewStockAlertWorker(nil, 10)

	before := testutil.ToFloat64(util.StockAlertsTotal)

	err := w.handleItemAdded(context.Background(), &models.ItemAddedEvent{
		OrderID:        1,
		ItemID:         2,
		Quantity:       5,
		RemainingStock: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, before+1, testutil.ToFloat64(util.StockAlertsTotal))
}

func TestHandleItemAddedStockAboveThreshold(t *testing.T) {
	w := NewStockAlertWorker(nil, 10)

	before := testutil.ToFloat64(util.StockAlertsTotal)

	err := w.handleItemAdded(context.Background(), &models.ItemAddedEvent{
		OrderID:        1,
		ItemID:         2,
		Quantity:       1,
		RemainingStock: 50,
	})
	require.NoError(t, err)
	assert.Equal(t, before, testutil.ToFloat64(util.StockAlertsTotal))
}
