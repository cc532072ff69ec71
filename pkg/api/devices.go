package api

// RegisterDeviceRequest представляет запрос на регистрацию устройства.
// Аутентификация пользователей лежит вне протокола синхронизации;
// устройству выдается bearer-токен для доступа к sync endpoints.
type RegisterDeviceRequest struct {
	DeviceName string `json:"device_name"` // человекочитаемое имя устройства
}

// RegisterDeviceResponse представляет ответ на успешную регистрацию
type RegisterDeviceResponse struct {
	DeviceID    string `json:"device_id"`    // UUID устройства
	AccessToken string `json:"access_token"` // JWT access token
	ExpiresIn   int64  `json:"expires_in"`   // время жизни токена в секундах
}
