package models_test

import (
	"testing"

	"commerce-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProduct(price int64) *models.Product {
	return &models.Product{
		ID:    uuid.New(),
		Name:  "Widget",
		Price: price,
	}
}

func TestNewOrderStartsEmptyAndPending(t *testing.T) {
	order := models.NewOrder(uuid.New())

	assert.Equal(t, models.StatusPending, order.Status)
	assert.Empty(t, order.Items)
	assert.Equal(t, int64(0), order.Total)
	assert.Equal(t, int64(1), order.Version)
}

func TestAddItemUpdatesTotal(t *testing.T) {
	order := models.NewOrder(uuid.New())

	_, err := order.AddItem(testProduct(1000), 2)
	require.NoError(t, err)
	assert.Equal(t, int64(2000), order.Total)

	_, err = order.AddItem(testProduct(500), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2500), order.Total)
	assert.Len(t, order.Items, 2)
}

func TestAddItemSnapshotsUnitPrice(t *testing.T) {
	order := models.NewOrder(uuid.New())
	product := testProduct(1000)

	item, err := order.AddItem(product, 1)
	require.NoError(t, err)

	product.Price = 9999

	assert.Equal(t, int64(1000), item.UnitPrice)
	assert.Equal(t, int64(1000), order.Total)
}

func TestAddItemRejectsZeroQuantity(t *testing.T) {
	order := models.NewOrder(uuid.New())

	_, err := order.AddItem(testProduct(1000), 0)
	assert.ErrorIs(t, err, models.ErrInvalidItem)

	_, err = order.AddItem(testProduct(1000), -3)
	assert.ErrorIs(t, err, models.ErrInvalidItem)
	assert.Empty(t, order.Items)
}

func TestAddItemRejectsNilProduct(t *testing.T) {
	order := models.NewOrder(uuid.New())

	_, err := order.AddItem(nil, 1)
	assert.ErrorIs(t, err, models.ErrProductUnavailable)
}

func TestAddItemRejectedOutsidePending(t *testing.T) {
	order := models.NewOrder(uuid.New())
	_, err := order.AddItem(testProduct(1000), 1)
	require.NoError(t, err)
	require.NoError(t, order.Transition(models.StatusProcessing))

	_, err = order.AddItem(testProduct(500), 1)
	assert.ErrorIs(t, err, models.ErrInvalidTransition)
}

func TestRemoveItemUpdatesTotal(t *testing.T) {
	order := models.NewOrder(uuid.New())
	item, err := order.AddItem(testProduct(1000), 2)
	require.NoError(t, err)
	_, err = order.AddItem(testProduct(500), 1)
	require.NoError(t, err)

	require.NoError(t, order.RemoveItem(item.ID))

	assert.Len(t, order.Items, 1)
	assert.Equal(t, int64(500), order.Total)
}

func TestRemoveItemUnknownID(t *testing.T) {
	order := models.NewOrder(uuid.New())
	_, err := order.AddItem(testProduct(1000), 1)
	require.NoError(t, err)

	err = order.RemoveItem(uuid.New())
	assert.ErrorIs(t, err, models.ErrItemNotFound)
}

func TestRemoveItemRejectedOutsidePending(t *testing.T) {
	order := models.NewOrder(uuid.New())
	item, err := order.AddItem(testProduct(1000), 1)
	require.NoError(t, err)
	require.NoError(t, order.Transition(models.StatusProcessing))

	err = order.RemoveItem(item.ID)
	assert.ErrorIs(t, err, models.ErrInvalidTransition)
}

func TestTransitionTable(t *testing.T) {
	cases := []struct {
		name string
		from models.OrderStatus
		to   models.OrderStatus
		ok   bool
	}{
		{"pending to processing", models.StatusPending, models.StatusProcessing, true},
		{"pending to cancelled", models.StatusPending, models.StatusCancelled, true},
		{"pending to completed", models.StatusPending, models.StatusCompleted, false},
		{"processing to completed", models.StatusProcessing, models.StatusCompleted, true},
		{"processing to cancelled", models.StatusProcessing, models.StatusCancelled, true},
		{"processing to pending", models.StatusProcessing, models.StatusPending, false},
		{"completed to cancelled", models.StatusCompleted, models.StatusCancelled, false},
		{"completed to processing", models.StatusCompleted, models.StatusProcessing, false},
		{"cancelled to pending", models.StatusCancelled, models.StatusPending, false},
		{"cancelled to processing", models.StatusCancelled, models.StatusProcessing, false},
		{"same status", models.StatusPending, models.StatusPending, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			order := models.NewOrder(uuid.New())
			order.Status = tc.from
			_, err := order.AddItem(testProduct(100), 1)
			if tc.from == models.StatusPending {
				require.NoError(t, err)
			}

			err = order.Transition(tc.to)
			if tc.ok {
				assert.NoError(t, err)
				assert.Equal(t, tc.to, order.Status)
			} else {
				assert.ErrorIs(t, err, models.ErrInvalidTransition)
				assert.Equal(t, tc.from, order.Status)
			}
		})
	}
}

func TestEmptyOrderCannotStartProcessing(t *testing.T) {
	order := models.NewOrder(uuid.New())

	err := order.Transition(models.StatusProcessing)
	assert.ErrorIs(t, err, models.ErrInvalidTransition)
	assert.Equal(t, models.StatusPending, order.Status)
}

func TestEmptyOrderCanBeCancelled(t *testing.T) {
	order := models.NewOrder(uuid.New())

	require.NoError(t, order.Transition(models.StatusCancelled))
	assert.True(t, order.IsTerminal())
}

func TestOrderLifecycle(t *testing.T) {
	order := models.NewOrder(uuid.New())

	_, err := order.AddItem(testProduct(1000), 2)
	require.NoError(t, err)
	_, err = order.AddItem(testProduct(500), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2500), order.Total)

	require.NoError(t, order.Transition(models.StatusProcessing))
	require.NoError(t, order.Transition(models.StatusCompleted))
	assert.True(t, order.IsTerminal())

	err = order.Transition(models.StatusCancelled)
	assert.ErrorIs(t, err, models.ErrInvalidTransition)
}

func TestValidStatus(t *testing.T) {
	assert.True(t, models.ValidStatus(models.StatusPending))
	assert.True(t, models.ValidStatus(models.StatusCancelled))
	assert.False(t, models.ValidStatus("shipped"))
	assert.False(t, models.ValidStatus(""))
}
