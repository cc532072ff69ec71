package sync

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpClient "github.com/iudanet/stocksync/internal/client/api"
	"github.com/iudanet/stocksync/internal/client/storage"
	"github.com/iudanet/stocksync/internal/models"
	"github.com/iudanet/stocksync/pkg/api"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeStore держит состояние in-memory и подкладывает его в StorageMock,
// чтобы каждый тест переопределял только интересующие его методы
type fakeStore struct {
	*StorageMock

	items     map[string]*models.Item
	ops       []*models.Operation
	idmap     map[string]string
	conflicts []*storage.ConflictRecord
	watermark int64
	auth      *storage.DeviceAuth
}

func newFakeStore() *fakeStore {
	f := &fakeStore{
		StorageMock: &StorageMock{},
		items:       make(map[string]*models.Item),
		idmap:       make(map[string]string),
		auth: &storage.DeviceAuth{
			DeviceID:    "dev-1",
			AccessToken: "token-1",
			ExpiresAt:   time.Now().Add(time.Hour).Unix(),
		},
	}

	f.GetDeviceAuthFunc = func(ctx context.Context) (*storage.DeviceAuth, error) {
		if f.auth == nil {
			return nil, storage.ErrAuthNotFound
		}
		return f.auth, nil
	}
	f.PendingFunc = func(ctx context.Context) ([]*models.Operation, error) {
		var pending []*models.Operation
		for _, op := range f.ops {
			if !op.Synced {
				pending = append(pending, op)
			}
		}
		return pending, nil
	}
	f.PendingCountFunc = func(ctx context.Context) (int, error) {
		pending, _ := f.PendingFunc(ctx)
		return len(pending), nil
	}
	f.ResolveRefFunc = func(ctx context.Context, ref string) (string, error) {
		if serverID, ok := f.idmap[ref]; ok {
			return serverID, nil
		}
		return ref, nil
	}
	f.GetItemFunc = func(ctx context.Context, ref string) (*models.Item, error) {
		key := ref
		if serverID, ok := f.idmap[ref]; ok {
			key = serverID
		}
		item, ok := f.items[key]
		if !ok {
			return nil, storage.ErrItemNotFound
		}
		return item.Clone(), nil
	}
	f.UpsertLocalFunc = func(ctx context.Context, item *models.Item) error {
		stored := item.Clone()
		stored.PendingSync = true
		f.items[stored.Key()] = stored
		return nil
	}
	f.ApplyServerStateFunc = func(ctx context.Context, item *models.Item) error {
		stored := item.Clone()
		stored.PendingSync = false
		f.items[stored.ServerID] = stored
		return nil
	}
	f.ReplaceTentativeIDFunc = func(ctx context.Context, tentativeID, serverID string) error {
		if item, ok := f.items[tentativeID]; ok {
			item.ServerID = serverID
			item.TentativeID = ""
			f.items[serverID] = item
			delete(f.items, tentativeID)
		}
		f.idmap[tentativeID] = serverID
		return nil
	}
	f.DeleteItemFunc = func(ctx context.Context, ref string) error {
		key := ref
		if serverID, ok := f.idmap[ref]; ok {
			key = serverID
		}
		if _, ok := f.items[key]; !ok {
			return storage.ErrItemNotFound
		}
		delete(f.items, key)
		return nil
	}
	f.MarkSyncedFunc = func(ctx context.Context, opID string) error {
		for _, op := range f.ops {
			if op.OpID == opID {
				op.Synced = true
				return nil
			}
		}
		return storage.ErrOperationNotFound
	}
	f.IncrementAttemptsFunc = func(ctx context.Context, opID string) error {
		for _, op := range f.ops {
			if op.OpID == opID {
				op.Attempts++
				return nil
			}
		}
		return storage.ErrOperationNotFound
	}
	f.QuarantineFunc = func(ctx context.Context, opID string) error {
		kept := f.ops[:0]
		for _, op := range f.ops {
			if op.OpID != opID {
				kept = append(kept, op)
			}
		}
		f.ops = kept
		return nil
	}
	f.RetireSyncedFunc = func(ctx context.Context) (int, error) {
		removed := 0
		kept := f.ops[:0]
		for _, op := range f.ops {
			if op.Synced {
				removed++
				continue
			}
			kept = append(kept, op)
		}
		f.ops = kept
		return removed, nil
	}
	f.LogConflictFunc = func(ctx context.Context, record *storage.ConflictRecord) error {
		f.conflicts = append(f.conflicts, record)
		return nil
	}
	f.GetLastPullTimestampFunc = func(ctx context.Context) (int64, error) {
		return f.watermark, nil
	}
	f.SaveLastPullTimestampFunc = func(ctx context.Context, timestamp int64) error {
		f.watermark = timestamp
		return nil
	}

	return f
}

func (f *fakeStore) addOp(opID string, kind models.OpKind, ref string, payload interface{}) *models.Operation {
	data, _ := json.Marshal(payload)
	op := &models.Operation{
		OpID:       opID,
		Kind:       kind,
		EntityType: models.EntityTypeItem,
		EntityRef:  ref,
		Payload:    data,
		Seq:        uint64(len(f.ops) + 1),
		ClientTime: time.Now(),
	}
	f.ops = append(f.ops, op)
	return op
}

func serverState(id string, quantity int64) *api.ItemState {
	return &api.ItemState{
		ServerID:  id,
		SKU:       "WIDGET-01",
		Name:      "Widget",
		Unit:      "pcs",
		Quantity:  quantity,
		Price:     14900,
		UpdatedAt: time.Now(),
	}
}

func TestSync_EmptyQueue_NoRequest(t *testing.T) {
	store := newFakeStore()
	mockAPI := &httpClient.ClientAPIMock{}

	svc := NewService(mockAPI, store, ServerWins{}, testLogger())

	result, err := svc.Sync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &Result{}, result)

	// Пустая очередь не стоит сетевого запроса
	assert.Empty(t, mockAPI.PushCalls())
}

func TestSync_SecondTriggerRejected(t *testing.T) {
	store := newFakeStore()
	svc := NewService(&httpClient.ClientAPIMock{}, store, ServerWins{}, testLogger()).(*service)

	svc.syncing.Store(true)

	_, err := svc.Sync(context.Background())
	assert.ErrorIs(t, err, ErrSyncInFlight)

	_, err = svc.Pull(context.Background())
	assert.ErrorIs(t, err, ErrSyncInFlight)
}

func TestSync_AppliedCreate_ReplacesTentativeID(t *testing.T) {
	store := newFakeStore()
	store.items["tent-1"] = &models.Item{
		TentativeID: "tent-1",
		SKU:         "WIDGET-01",
		Quantity:    10,
		PendingSync: true,
	}
	store.addOp("op-1", models.OpCreate, "tent-1", models.CreatePayload{
		SKU: "WIDGET-01", Name: "Widget", Unit: "pcs", Quantity: 10, Price: 14900,
	})

	mockAPI := &httpClient.ClientAPIMock{
		PushFunc: func(ctx context.Context, accessToken string, req api.PushRequest) (*api.PushResponse, error) {
			require.Len(t, req.Operations, 1)
			assert.Equal(t, "token-1", accessToken)
			state := serverState("srv-1", 10)
			state.TentativeID = "tent-1"
			return &api.PushResponse{
				ServerTime: time.Now().UnixMilli(),
				Results: []api.OperationResult{
					{OpID: "op-1", Status: api.StatusApplied, ServerData: state},
				},
			}, nil
		},
	}

	svc := NewService(mockAPI, store, ServerWins{}, testLogger())

	result, err := svc.Sync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Pushed)
	assert.Equal(t, 1, result.Applied)
	assert.Equal(t, 1, result.Retired)

	// Сущность не материализована дважды
	assert.NotContains(t, store.items, "tent-1")
	require.Contains(t, store.items, "srv-1")
	assert.False(t, store.items["srv-1"].PendingSync)

	// Журнал компактирован
	assert.Empty(t, store.ops)
}

func TestSync_Conflict_ServerWins(t *testing.T) {
	store := newFakeStore()
	store.items["srv-1"] = &models.Item{
		ServerID:    "srv-1",
		Quantity:    3,
		PendingSync: true,
	}
	store.addOp("op-1", models.OpAdjustQuantity, "srv-1", models.AdjustPayload{Delta: -5})

	mockAPI := &httpClient.ClientAPIMock{
		PushFunc: func(ctx context.Context, accessToken string, req api.PushRequest) (*api.PushResponse, error) {
			return &api.PushResponse{
				Results: []api.OperationResult{
					{
						OpID:           "op-1",
						Status:         api.StatusConflict,
						ConflictReason: "insufficient stock: have 2, adjustment -5",
						ServerData:     serverState("srv-1", 2),
					},
				},
			}, nil
		},
	}

	svc := NewService(mockAPI, store, ServerWins{}, testLogger())

	result, err := svc.Sync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Conflicts)

	// Серверное состояние установлено, локальное намерение отброшено
	require.Contains(t, store.items, "srv-1")
	assert.Equal(t, int64(2), store.items["srv-1"].Quantity)
	assert.False(t, store.items["srv-1"].PendingSync)

	// Операция снята с очереди и конфликт журналирован
	assert.Empty(t, store.ops)
	require.Len(t, store.conflicts, 1)
	assert.Equal(t, "op-1", store.conflicts[0].OpID)
}

func TestSync_Failed_StaysPending(t *testing.T) {
	store := newFakeStore()
	store.addOp("op-1", models.OpUpdate, "srv-1", models.UpdatePayload{})

	mockAPI := &httpClient.ClientAPIMock{
		PushFunc: func(ctx context.Context, accessToken string, req api.PushRequest) (*api.PushResponse, error) {
			return &api.PushResponse{
				Results: []api.OperationResult{
					{OpID: "op-1", Status: api.StatusFailed, Error: "item not found"},
				},
			}, nil
		},
	}

	svc := NewService(mockAPI, store, ServerWins{}, testLogger())

	result, err := svc.Sync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, 0, result.Quarantined)

	// Операция осталась в очереди со счетчиком попыток
	require.Len(t, store.ops, 1)
	assert.Equal(t, 1, store.ops[0].Attempts)
	assert.False(t, store.ops[0].Synced)
}

func TestSync_Failed_QuarantineAfterMaxAttempts(t *testing.T) {
	store := newFakeStore()
	op := store.addOp("op-1", models.OpUpdate, "srv-1", models.UpdatePayload{})
	op.Attempts = DefaultMaxAttempts - 1

	mockAPI := &httpClient.ClientAPIMock{
		PushFunc: func(ctx context.Context, accessToken string, req api.PushRequest) (*api.PushResponse, error) {
			return &api.PushResponse{
				Results: []api.OperationResult{
					{OpID: "op-1", Status: api.StatusFailed, Error: "item not found"},
				},
			}, nil
		},
	}

	svc := NewService(mockAPI, store, ServerWins{}, testLogger())

	result, err := svc.Sync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Quarantined)
	assert.Equal(t, 0, result.Failed)

	// Poison-операция убрана из очереди
	assert.Empty(t, store.ops)
}

func TestSync_TransportFailure_NothingMarked(t *testing.T) {
	store := newFakeStore()
	store.addOp("op-1", models.OpAdjustQuantity, "srv-1", models.AdjustPayload{Delta: -1})

	mockAPI := &httpClient.ClientAPIMock{
		PushFunc: func(ctx context.Context, accessToken string, req api.PushRequest) (*api.PushResponse, error) {
			return nil, errors.New("connection refused")
		},
	}

	svc := NewService(mockAPI, store, ServerWins{}, testLogger())

	_, err := svc.Sync(context.Background())
	require.Error(t, err)

	// Весь батч остается неподтвержденным, op id стабилен для повтора
	require.Len(t, store.ops, 1)
	assert.False(t, store.ops[0].Synced)
	assert.Equal(t, 0, store.ops[0].Attempts)
	assert.Empty(t, store.MarkSyncedCalls())
}

func TestSync_MissingVerdict_TreatedAsFailed(t *testing.T) {
	store := newFakeStore()
	store.addOp("op-1", models.OpAdjustQuantity, "srv-1", models.AdjustPayload{Delta: -1})

	mockAPI := &httpClient.ClientAPIMock{
		PushFunc: func(ctx context.Context, accessToken string, req api.PushRequest) (*api.PushResponse, error) {
			return &api.PushResponse{Results: nil}, nil
		},
	}

	svc := NewService(mockAPI, store, ServerWins{}, testLogger())

	result, err := svc.Sync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Failed)
	require.Len(t, store.ops, 1)
	assert.False(t, store.ops[0].Synced)
}

func TestSync_AppliedDelete_RemovesLocalRecord(t *testing.T) {
	store := newFakeStore()
	store.items["srv-1"] = &models.Item{ServerID: "srv-1", PendingSync: true}
	store.addOp("op-1", models.OpDelete, "srv-1", nil)

	mockAPI := &httpClient.ClientAPIMock{
		PushFunc: func(ctx context.Context, accessToken string, req api.PushRequest) (*api.PushResponse, error) {
			return &api.PushResponse{
				Results: []api.OperationResult{
					{OpID: "op-1", Status: api.StatusApplied},
				},
			}, nil
		},
	}

	svc := NewService(mockAPI, store, ServerWins{}, testLogger())

	result, err := svc.Sync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Applied)
	assert.NotContains(t, store.items, "srv-1")
}

func TestSync_ReappliesPendingOverServerState(t *testing.T) {
	// Сценарий: op-1 (adjust -3) подтвержден, op-2 (adjust -2) поставлен
	// в очередь, но не попал в раунд. Серверное состояние после op-1 не
	// должно затереть эффект op-2.
	store := newFakeStore()
	store.items["srv-1"] = &models.Item{
		ServerID:    "srv-1",
		SKU:         "WIDGET-01",
		Quantity:    5,
		PendingSync: true,
	}
	store.addOp("op-1", models.OpAdjustQuantity, "srv-1", models.AdjustPayload{Delta: -3})

	mockAPI := &httpClient.ClientAPIMock{
		PushFunc: func(ctx context.Context, accessToken string, req api.PushRequest) (*api.PushResponse, error) {
			// Пока раунд шел, пользователь сделал еще одну мутацию
			store.addOp("op-2", models.OpAdjustQuantity, "srv-1", models.AdjustPayload{Delta: -2})
			return &api.PushResponse{
				Results: []api.OperationResult{
					{OpID: "op-1", Status: api.StatusApplied, ServerData: serverState("srv-1", 7)},
				},
			}, nil
		},
	}

	svc := NewService(mockAPI, store, ServerWins{}, testLogger())

	result, err := svc.Sync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Applied)

	// Серверное состояние (7) плюс повторно примененный op-2 (-2)
	require.Contains(t, store.items, "srv-1")
	assert.Equal(t, int64(5), store.items["srv-1"].Quantity)
	assert.True(t, store.items["srv-1"].PendingSync)

	// op-2 остался в очереди для следующего раунда
	require.Len(t, store.ops, 1)
	assert.Equal(t, "op-2", store.ops[0].OpID)
}

func TestSync_ResolvesTentativeRefsBeforePush(t *testing.T) {
	store := newFakeStore()
	store.idmap["tent-1"] = "srv-1"
	store.addOp("op-2", models.OpAdjustQuantity, "tent-1", models.AdjustPayload{Delta: -1})

	var pushedRef string
	mockAPI := &httpClient.ClientAPIMock{
		PushFunc: func(ctx context.Context, accessToken string, req api.PushRequest) (*api.PushResponse, error) {
			pushedRef = req.Operations[0].EntityRef
			return &api.PushResponse{
				Results: []api.OperationResult{
					{OpID: "op-2", Status: api.StatusApplied, ServerData: serverState("srv-1", 4)},
				},
			}, nil
		},
	}

	svc := NewService(mockAPI, store, ServerWins{}, testLogger())

	_, err := svc.Sync(context.Background())
	require.NoError(t, err)

	// На провод уходит канонический серверный ref
	assert.Equal(t, "srv-1", pushedRef)
}

func TestSync_LargeQueueChunked(t *testing.T) {
	store := newFakeStore()
	for i := 0; i < maxPushBatch+1; i++ {
		store.addOp(fmt.Sprintf("op-%d", i), models.OpAdjustQuantity, "srv-1", models.AdjustPayload{Delta: -1})
	}

	var sizes []int
	mockAPI := &httpClient.ClientAPIMock{
		PushFunc: func(ctx context.Context, accessToken string, req api.PushRequest) (*api.PushResponse, error) {
			sizes = append(sizes, len(req.Operations))
			results := make([]api.OperationResult, 0, len(req.Operations))
			for _, op := range req.Operations {
				results = append(results, api.OperationResult{OpID: op.OpID, Status: api.StatusApplied})
			}
			return &api.PushResponse{Results: results}, nil
		},
	}

	svc := NewService(mockAPI, store, ServerWins{}, testLogger())

	// Очередь длиннее серверного лимита уходит за один раунд по частям
	result, err := svc.Sync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, maxPushBatch+1, result.Pushed)
	assert.Equal(t, maxPushBatch+1, result.Applied)
	assert.Equal(t, []int{maxPushBatch, 1}, sizes)

	// Вся очередь подтверждена и компактирована
	assert.Empty(t, store.ops)
}

func TestSync_ChunkTransportFailure(t *testing.T) {
	store := newFakeStore()
	for i := 0; i < maxPushBatch+1; i++ {
		store.addOp(fmt.Sprintf("op-%d", i), models.OpAdjustQuantity, "srv-1", models.AdjustPayload{Delta: -1})
	}

	calls := 0
	mockAPI := &httpClient.ClientAPIMock{
		PushFunc: func(ctx context.Context, accessToken string, req api.PushRequest) (*api.PushResponse, error) {
			calls++
			if calls > 1 {
				return nil, errors.New("connection reset")
			}
			results := make([]api.OperationResult, 0, len(req.Operations))
			for _, op := range req.Operations {
				results = append(results, api.OperationResult{OpID: op.OpID, Status: api.StatusApplied})
			}
			return &api.PushResponse{Results: results}, nil
		},
	}

	svc := NewService(mockAPI, store, ServerWins{}, testLogger())

	_, err := svc.Sync(context.Background())
	require.Error(t, err)

	// Подтвержденная часть не будет переслана, оборванная осталась
	// в очереди для следующего раунда
	pending, err := store.PendingFunc(context.Background())
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, fmt.Sprintf("op-%d", maxPushBatch), pending[0].OpID)
}

func TestSync_NotRegistered(t *testing.T) {
	store := newFakeStore()
	store.auth = nil
	store.addOp("op-1", models.OpAdjustQuantity, "srv-1", models.AdjustPayload{Delta: -1})

	svc := NewService(&httpClient.ClientAPIMock{}, store, ServerWins{}, testLogger())

	_, err := svc.Sync(context.Background())
	assert.Error(t, err)
}

func TestPull_AppliesChanges(t *testing.T) {
	store := newFakeStore()
	store.watermark = 100

	mockAPI := &httpClient.ClientAPIMock{
		PullFunc: func(ctx context.Context, accessToken string, since int64) (*api.PullResponse, error) {
			assert.Equal(t, int64(100), since)
			return &api.PullResponse{
				ServerTime: 200,
				Changes:    []api.ItemState{*serverState("srv-1", 7)},
				Count:      1,
			}, nil
		},
	}

	svc := NewService(mockAPI, store, ServerWins{}, testLogger())

	result, err := svc.Pull(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Pulled)
	assert.Equal(t, 1, result.Applied)
	assert.Equal(t, 0, result.Skipped)

	require.Contains(t, store.items, "srv-1")
	assert.Equal(t, int64(7), store.items["srv-1"].Quantity)

	// Watermark двигается после применения всего окна
	assert.Equal(t, int64(200), store.watermark)
}

func TestPull_SkipsItemsWithPendingOps(t *testing.T) {
	store := newFakeStore()
	store.items["srv-1"] = &models.Item{
		ServerID:    "srv-1",
		Quantity:    9,
		PendingSync: true,
	}

	mockAPI := &httpClient.ClientAPIMock{
		PullFunc: func(ctx context.Context, accessToken string, since int64) (*api.PullResponse, error) {
			return &api.PullResponse{
				ServerTime: 300,
				Changes:    []api.ItemState{*serverState("srv-1", 7)},
				Count:      1,
			}, nil
		},
	}

	svc := NewService(mockAPI, store, ServerWins{}, testLogger())

	result, err := svc.Pull(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, 0, result.Applied)

	// Локальное pending изменение не затерто: его рассудит push
	assert.Equal(t, int64(9), store.items["srv-1"].Quantity)
	assert.True(t, store.items["srv-1"].PendingSync)
}

func TestPull_DeletedChange(t *testing.T) {
	store := newFakeStore()
	store.items["srv-1"] = &models.Item{ServerID: "srv-1"}

	deleted := *serverState("srv-1", 0)
	deleted.Deleted = true

	mockAPI := &httpClient.ClientAPIMock{
		PullFunc: func(ctx context.Context, accessToken string, since int64) (*api.PullResponse, error) {
			return &api.PullResponse{
				ServerTime: 300,
				Changes:    []api.ItemState{deleted},
				Count:      1,
			}, nil
		},
	}

	svc := NewService(mockAPI, store, ServerWins{}, testLogger())

	result, err := svc.Pull(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Applied)
	assert.NotContains(t, store.items, "srv-1")
}

func TestPendingCount(t *testing.T) {
	store := newFakeStore()
	store.addOp("op-1", models.OpAdjustQuantity, "srv-1", models.AdjustPayload{Delta: -1})
	store.addOp("op-2", models.OpAdjustQuantity, "srv-1", models.AdjustPayload{Delta: -1})

	svc := NewService(&httpClient.ClientAPIMock{}, store, ServerWins{}, testLogger())

	count, err := svc.PendingCount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
