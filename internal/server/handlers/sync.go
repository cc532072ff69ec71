package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/iudanet/stocksync/internal/server/storage"
	"github.com/iudanet/stocksync/pkg/api"
)

// contextKey тип для ключей контекста
type contextKey string

const (
	// DeviceIDKey ключ для хранения device_id в контексте
	DeviceIDKey contextKey = "device_id"
	// DeviceNameKey ключ для хранения device_name в контексте
	DeviceNameKey contextKey = "device_name"
)

// Не даем одному устройству монополизировать обработчик гигантским батчем
const maxPushBatchSize = 500

// GetDeviceID извлекает device_id из контекста запроса
func GetDeviceID(ctx context.Context) (string, bool) {
	deviceID, ok := ctx.Value(DeviceIDKey).(string)
	return deviceID, ok
}

// GetDeviceName извлекает device_name из контекста запроса
func GetDeviceName(ctx context.Context) (string, bool) {
	deviceName, ok := ctx.Value(DeviceNameKey).(string)
	return deviceName, ok
}

// BatchProcessor определяет интерфейс применения батча операций
type BatchProcessor interface {
	ProcessBatch(ctx context.Context, ops []api.PushOperation) ([]api.OperationResult, error)
}

// SyncHandler handles synchronization requests
type SyncHandler struct {
	logger    *slog.Logger
	processor BatchProcessor
	items     storage.ItemStorage
}

// NewSyncHandler creates a new sync handler
func NewSyncHandler(logger *slog.Logger, processor BatchProcessor, items storage.ItemStorage) *SyncHandler {
	return &SyncHandler{
		logger:    logger,
		processor: processor,
		items:     items,
	}
}

// HandlePush обрабатывает POST /api/v1/sync/push
// Применяет батч операций по порядку и возвращает вердикт на каждую
func (h *SyncHandler) HandlePush(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	deviceID, ok := GetDeviceID(ctx)
	if !ok {
		h.logger.Error("Device ID not found in context")
		h.sendError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req api.PushRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Failed to decode push request", "error", err, "device_id", deviceID)
		h.sendError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if len(req.Operations) > maxPushBatchSize {
		h.logger.Warn("Push batch too large",
			"device_id", deviceID, "operations_count", len(req.Operations))
		h.sendError(w, "batch too large", http.StatusRequestEntityTooLarge)
		return
	}

	h.logger.Info("Push request",
		"device_id", deviceID,
		"operations_count", len(req.Operations))

	results, err := h.processor.ProcessBatch(ctx, req.Operations)
	if err != nil {
		h.logger.Error("Failed to process batch", "error", err, "device_id", deviceID)
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	resp := api.PushResponse{
		ServerTime: time.Now().UnixMilli(),
		Results:    results,
	}

	h.sendJSON(w, resp, http.StatusOK)

	h.logger.Info("Push completed",
		"device_id", deviceID,
		"results_count", len(results))
}

// HandlePull обрабатывает GET /api/v1/sync/pull?since=timestamp
// Возвращает все серверные изменения строго после since
func (h *SyncHandler) HandlePull(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	deviceID, ok := GetDeviceID(ctx)
	if !ok {
		h.logger.Error("Device ID not found in context")
		h.sendError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	// Парсим параметр since
	sinceStr := r.URL.Query().Get("since")
	var since int64
	if sinceStr != "" {
		var err error
		since, err = strconv.ParseInt(sinceStr, 10, 64)
		if err != nil {
			h.logger.Warn("Invalid since parameter", "since", sinceStr, "error", err)
			h.sendError(w, "invalid since parameter", http.StatusBadRequest)
			return
		}
	}

	h.logger.Info("Pull request", "device_id", deviceID, "since", since)

	// ServerTime снимаем до выборки: записи, применённые во время
	// обработки запроса, попадут в следующее pull-окно
	serverTime := time.Now().UnixMilli()

	items, err := h.items.ItemsSince(ctx, since)
	if err != nil {
		h.logger.Error("Failed to get items", "error", err, "device_id", deviceID)
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	changes := make([]api.ItemState, 0, len(items))
	for _, item := range items {
		changes = append(changes, api.ItemState{
			ServerID:  item.ID,
			SKU:       item.SKU,
			Name:      item.Name,
			Unit:      item.Unit,
			Quantity:  item.Quantity,
			Price:     item.Price,
			Deleted:   item.Deleted,
			UpdatedAt: item.UpdatedAt,
		})
	}

	resp := api.PullResponse{
		ServerTime: serverTime,
		Changes:    changes,
		Count:      len(changes),
	}

	h.sendJSON(w, resp, http.StatusOK)

	h.logger.Info("Pull completed", "device_id", deviceID, "changes_count", len(changes))
}

// HandleStatus обрабатывает GET /api/v1/sync/status
// Легкая проба доступности и серверных часов
func (h *SyncHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	resp := api.StatusResponse{
		Status:     "ok",
		ServerTime: time.Now().UnixMilli(),
	}

	h.sendJSON(w, resp, http.StatusOK)
}

// sendJSON отправляет JSON ответ
func (h *SyncHandler) sendJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode JSON response", slog.Any("error", err))
	}
}

// sendError отправляет JSON ответ с ошибкой
func (h *SyncHandler) sendError(w http.ResponseWriter, message string, statusCode int) {
	resp := api.ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	}
	h.sendJSON(w, resp, statusCode)
}
