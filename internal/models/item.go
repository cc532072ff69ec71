package models

import "time"

// Item представляет товарную позицию в локальном хранилище клиента.
// Позиция адресуется либо серверным ID (после первой успешной синхронизации),
// либо tentative ID, сгенерированным клиентом в офлайне. Хотя бы один из них
// всегда установлен; после присвоения серверного ID он становится
// каноническим ключом записи.
type Item struct {
	UpdatedAt   time.Time `json:"updated_at"`   // UpdatedAt время последнего изменения
	ServerID    string    `json:"server_id"`    // ServerID авторитетный идентификатор, выданный сервером
	TentativeID string    `json:"tentative_id"` // TentativeID клиентский placeholder до подтверждения create
	SKU         string    `json:"sku"`          // SKU артикул товара
	Name        string    `json:"name"`         // Name название позиции
	Unit        string    `json:"unit"`         // Unit единица измерения ("pcs", "kg", ...)
	Quantity    int64     `json:"quantity"`     // Quantity текущий остаток
	Price       int64     `json:"price"`        // Price цена в минорных единицах (копейки)
	PendingSync bool      `json:"pending_sync"` // PendingSync есть несинхронизированные локальные изменения
}

// Key returns the canonical local key of the item:
// the server ID when assigned, the tentative ID otherwise.
func (i *Item) Key() string {
	if i.ServerID != "" {
		return i.ServerID
	}
	return i.TentativeID
}

// HasServerID reports whether the item has been acknowledged by the server.
func (i *Item) HasServerID() bool {
	return i.ServerID != ""
}

// Clone создает глубокую копию записи
func (i *Item) Clone() *Item {
	clone := *i
	return &clone
}
