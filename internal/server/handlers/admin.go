package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/iudanet/stocksync/internal/server/storage"
	"github.com/iudanet/stocksync/pkg/api"
)

// Журнал вердиктов по умолчанию храним месяц: дольше, чем любой
// разумный оффлайн-период клиента
const defaultCleanupDays = 30

// AdminHandler обрабатывает административные запросы обслуживания
type AdminHandler struct {
	logger   *slog.Logger
	items    storage.ItemStorage
	verdicts storage.OperationStorage
}

// NewAdminHandler создает новый handler для административных операций
func NewAdminHandler(logger *slog.Logger, items storage.ItemStorage, verdicts storage.OperationStorage) *AdminHandler {
	return &AdminHandler{
		logger:   logger,
		items:    items,
		verdicts: verdicts,
	}
}

// Deduplicate обрабатывает POST /api/v1/admin/deduplicate
// Удаляет избыточные записи с одинаковым SKU, оставляя самую свежую
func (h *AdminHandler) Deduplicate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	removed, err := h.items.DeduplicateSKU(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to deduplicate items", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "deduplication completed", slog.Int64("removed", removed))

	h.sendJSON(w, api.DeduplicateResponse{Removed: removed}, http.StatusOK)
}

// Cleanup обрабатывает POST /api/v1/admin/cleanup
// Удаляет записи журнала вердиктов старше заданного числа дней
func (h *AdminHandler) Cleanup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.CleanupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode cleanup request", slog.Any("error", err))
		h.sendError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	days := req.Days
	if days <= 0 {
		days = defaultCleanupDays
	}

	cutoff := time.Now().AddDate(0, 0, -days)

	removed, err := h.verdicts.PurgeVerdictsBefore(ctx, cutoff)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to purge verdicts", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "cleanup completed",
		slog.Int("days", days),
		slog.Int64("removed", removed))

	h.sendJSON(w, api.CleanupResponse{Removed: removed}, http.StatusOK)
}

// sendJSON отправляет JSON ответ
func (h *AdminHandler) sendJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode JSON response", slog.Any("error", err))
	}
}

// sendError отправляет JSON ответ с ошибкой
func (h *AdminHandler) sendError(w http.ResponseWriter, message string, statusCode int) {
	resp := api.ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	}
	h.sendJSON(w, resp, statusCode)
}
