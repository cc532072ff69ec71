package inventory

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/stocksync/internal/client/storage"
	"github.com/iudanet/stocksync/internal/client/storage/boltdb"
	"github.com/iudanet/stocksync/internal/models"
)

func setupTestService(t *testing.T) (Service, *boltdb.Storage) {
	t.Helper()

	store, err := boltdb.New(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = store.Close()
	})

	return NewService(store, store), store
}

func TestCreateItem(t *testing.T) {
	svc, store := setupTestService(t)
	ctx := context.Background()

	item, err := svc.CreateItem(ctx, CreateItemParams{
		SKU:      "WIDGET-01",
		Name:     "Widget",
		Unit:     "pcs",
		Quantity: 10,
		Price:    14900,
	})
	require.NoError(t, err)

	// Позиция получает tentative ID и помечена pending
	assert.NotEmpty(t, item.TentativeID)
	assert.Empty(t, item.ServerID)
	assert.True(t, item.PendingSync)
	assert.Equal(t, int64(10), item.Quantity)

	// Мутация продублирована операцией в outbox
	pending, err := store.Pending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, models.OpCreate, pending[0].Kind)
	assert.Equal(t, item.TentativeID, pending[0].EntityRef)

	got, err := store.GetItem(ctx, item.TentativeID)
	require.NoError(t, err)
	assert.Equal(t, "WIDGET-01", got.SKU)
}

func TestCreateItem_InvalidSKU(t *testing.T) {
	svc, store := setupTestService(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		params CreateItemParams
	}{
		{
			name:   "bad sku",
			params: CreateItemParams{SKU: "has spaces", Name: "Widget"},
		},
		{
			name:   "empty name",
			params: CreateItemParams{SKU: "WIDGET-01", Name: ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateItem(ctx, tt.params)
			assert.Error(t, err)
		})
	}

	// Отклоненная мутация не оставляет следа в очереди
	count, err := store.PendingCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestUpdateItem(t *testing.T) {
	svc, store := setupTestService(t)
	ctx := context.Background()

	item, err := svc.CreateItem(ctx, CreateItemParams{
		SKU: "WIDGET-01", Name: "Widget", Unit: "pcs", Quantity: 5, Price: 14900,
	})
	require.NoError(t, err)

	newName := "Widget v2"
	newPrice := int64(19900)
	updated, err := svc.UpdateItem(ctx, item.TentativeID, UpdateItemParams{
		Name:  &newName,
		Price: &newPrice,
	})
	require.NoError(t, err)

	assert.Equal(t, "Widget v2", updated.Name)
	assert.Equal(t, int64(19900), updated.Price)
	// Незатронутые поля сохранены
	assert.Equal(t, "pcs", updated.Unit)
	assert.Equal(t, int64(5), updated.Quantity)

	pending, err := store.Pending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, models.OpUpdate, pending[1].Kind)
}

func TestUpdateItem_NotFound(t *testing.T) {
	svc, _ := setupTestService(t)

	name := "Widget"
	_, err := svc.UpdateItem(context.Background(), "missing", UpdateItemParams{Name: &name})
	assert.ErrorIs(t, err, storage.ErrItemNotFound)
}

func TestAdjustQuantity(t *testing.T) {
	svc, store := setupTestService(t)
	ctx := context.Background()

	item, err := svc.CreateItem(ctx, CreateItemParams{
		SKU: "WIDGET-01", Name: "Widget", Quantity: 10,
	})
	require.NoError(t, err)

	adjusted, err := svc.AdjustQuantity(ctx, item.TentativeID, -3, "sold")
	require.NoError(t, err)
	assert.Equal(t, int64(7), adjusted.Quantity)

	// Локальный остаток может уходить в минус: рассудит сервер
	adjusted, err = svc.AdjustQuantity(ctx, item.TentativeID, -9, "damaged")
	require.NoError(t, err)
	assert.Equal(t, int64(-2), adjusted.Quantity)

	// FIFO per entity: операции в порядке вызовов
	pending, err := store.Pending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 3)
	assert.Equal(t, models.OpCreate, pending[0].Kind)
	assert.Equal(t, models.OpAdjustQuantity, pending[1].Kind)
	assert.Equal(t, models.OpAdjustQuantity, pending[2].Kind)
}

func TestAdjustQuantity_ZeroDelta(t *testing.T) {
	svc, _ := setupTestService(t)

	_, err := svc.AdjustQuantity(context.Background(), "any", 0, "noop")
	assert.Error(t, err)
}

func TestDeleteItem(t *testing.T) {
	svc, store := setupTestService(t)
	ctx := context.Background()

	item, err := svc.CreateItem(ctx, CreateItemParams{
		SKU: "WIDGET-01", Name: "Widget", Quantity: 1,
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteItem(ctx, item.TentativeID))

	// Запись остается видимой как pending до подтверждения сервером
	got, err := svc.GetItem(ctx, item.TentativeID)
	require.NoError(t, err)
	assert.True(t, got.PendingSync)

	pending, err := store.Pending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, models.OpDelete, pending[1].Kind)
}

func TestDeleteItem_NotFound(t *testing.T) {
	svc, _ := setupTestService(t)

	err := svc.DeleteItem(context.Background(), "missing")
	assert.ErrorIs(t, err, storage.ErrItemNotFound)
}

func TestListItems(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()

	_, err := svc.CreateItem(ctx, CreateItemParams{SKU: "WIDGET-01", Name: "Widget"})
	require.NoError(t, err)
	_, err = svc.CreateItem(ctx, CreateItemParams{SKU: "GADGET-01", Name: "Gadget"})
	require.NoError(t, err)

	all, err := svc.ListItems(ctx, storage.ListFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	widgets, err := svc.ListItems(ctx, storage.ListFilter{SKU: "WIDGET-01"})
	require.NoError(t, err)
	require.Len(t, widgets, 1)
	assert.Equal(t, "Widget", widgets[0].Name)
}
