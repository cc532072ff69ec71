package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/iudanet/stocksync/pkg/api"
)

// DeviceHandler обрабатывает регистрацию устройств
type DeviceHandler struct {
	logger    *slog.Logger
	jwtConfig JWTConfig
}

// NewDeviceHandler создает новый handler для устройств
func NewDeviceHandler(logger *slog.Logger, jwtConfig JWTConfig) *DeviceHandler {
	return &DeviceHandler{
		logger:    logger,
		jwtConfig: jwtConfig,
	}
}

// Register обрабатывает POST /api/v1/devices/register
// Выдает устройству идентификатор и access token для sync endpoints
func (h *DeviceHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.RegisterDeviceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode register request", slog.Any("error", err))
		h.sendError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if req.DeviceName == "" {
		h.sendError(w, "device_name is required", http.StatusBadRequest)
		return
	}

	deviceID := uuid.New().String()

	accessToken, expiresIn, err := GenerateAccessToken(h.jwtConfig, deviceID, req.DeviceName)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to generate access token", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "device registered",
		slog.String("device_id", deviceID),
		slog.String("device_name", req.DeviceName))

	resp := api.RegisterDeviceResponse{
		DeviceID:    deviceID,
		AccessToken: accessToken,
		ExpiresIn:   expiresIn,
	}

	h.sendJSON(w, resp, http.StatusCreated)
}

// sendJSON отправляет JSON ответ
func (h *DeviceHandler) sendJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode JSON response", slog.Any("error", err))
	}
}

// sendError отправляет JSON ответ с ошибкой
func (h *DeviceHandler) sendError(w http.ResponseWriter, message string, statusCode int) {
	resp := api.ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	}
	h.sendJSON(w, resp, statusCode)
}
