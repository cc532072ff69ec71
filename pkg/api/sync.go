package api

import (
	"encoding/json"
	"time"
)

// Статусы обработки операции сервером
const (
	StatusApplied  = "applied"  // операция применена, server_data содержит авторитетное состояние
	StatusConflict = "conflict" // операция отклонена, сервер прислал свое состояние (server-wins)
	StatusFailed   = "failed"   // операция не применена, состояние не изменилось
)

// PushOperation представляет одну операцию в батче push-запроса.
// Payload kind-специфичен: adjust_quantity несет только {delta, reason},
// delete не несет payload вообще.
type PushOperation struct {
	ClientTime time.Time `json:"client_timestamp"`
	OpID       string    `json:"op_id"`
	Type       string    `json:"type"`
	EntityType string    `json:"entity_type"`
	EntityRef  string    `json:"entity_ref"`

	Payload json.RawMessage `json:"payload,omitempty"`
}

// PushRequest представляет батч операций от клиента
type PushRequest struct {
	Operations []PushOperation `json:"operations"`
}

// ItemState авторитетное серверное состояние товарной позиции
type ItemState struct {
	UpdatedAt   time.Time `json:"updated_at"`
	ServerID    string    `json:"server_id"`
	TentativeID string    `json:"tentative_id,omitempty"` // echo клиентского tentative ID для create
	SKU         string    `json:"sku"`
	Name        string    `json:"name"`
	Unit        string    `json:"unit"`
	Quantity    int64     `json:"quantity"`
	Price       int64     `json:"price"`
	Deleted     bool      `json:"deleted,omitempty"`
}

// OperationResult вердикт сервера по одной операции.
// Каждый отправленный op_id получает ровно один вердикт за раунд;
// корреляция всегда по op_id, никогда по позиции в списке.
type OperationResult struct {
	AppliedAt      time.Time  `json:"applied_at,omitempty"`
	ServerData     *ItemState `json:"server_data,omitempty"`
	OpID           string     `json:"op_id"`
	Status         string     `json:"status"`
	Error          string     `json:"error,omitempty"`
	ConflictReason string     `json:"conflict_reason,omitempty"`
}

// PushResponse представляет ответ сервера на push
type PushResponse struct {
	ServerTime int64             `json:"server_time"` // unix-миллисекунды серверных часов
	Results    []OperationResult `json:"results"`
}

// PullResponse представляет ответ сервера на pull.
// Changes содержат все серверные изменения строго после since.
type PullResponse struct {
	ServerTime int64       `json:"server_time"`
	Changes    []ItemState `json:"operations"`
	Count      int         `json:"count"`
}

// StatusResponse ответ liveness/clock пробы
type StatusResponse struct {
	Status     string `json:"status"`
	ServerTime int64  `json:"server_time"`
}

// CleanupRequest запрос административной очистки журнала применённых операций
type CleanupRequest struct {
	Days int `json:"days"`
}

// CleanupResponse результат очистки
type CleanupResponse struct {
	Removed int64 `json:"removed"`
}

// DeduplicateResponse результат серверной дедупликации позиций
type DeduplicateResponse struct {
	Removed int64 `json:"removed"`
}

// ErrorResponse представляет ответ с ошибкой
type ErrorResponse struct {
	Error   string `json:"error"`             // описание ошибки
	Message string `json:"message,omitempty"` // дополнительное сообщение
}
