package storage

import "context"

// DeviceAuth хранит учетные данные устройства для доступа к sync API.
// Аутентификация пользователей - внешний для протокола слой; клиенту
// достаточно bearer-токена, выданного при регистрации устройства.
type DeviceAuth struct {
	DeviceID    string `json:"device_id"`
	DeviceName  string `json:"device_name"`
	AccessToken string `json:"access_token"`
	ExpiresAt   int64  `json:"expires_at"` // unix seconds
}

// AuthStorage defines interface for storing device credentials
type AuthStorage interface {
	// SaveDeviceAuth stores device credentials
	SaveDeviceAuth(ctx context.Context, auth *DeviceAuth) error

	// GetDeviceAuth retrieves device credentials
	// Returns ErrAuthNotFound if device is not registered
	GetDeviceAuth(ctx context.Context) (*DeviceAuth, error)

	// DeleteDeviceAuth removes device credentials
	DeleteDeviceAuth(ctx context.Context) error
}
