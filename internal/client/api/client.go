package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/iudanet/stocksync/pkg/api"
)

//go:generate moq -out client_mock.go . ClientAPI

// ClientAPI определяет интерфейс взаимодействия с Reconciliation Service
type ClientAPI interface {
	// RegisterDevice регистрирует устройство и получает access token
	RegisterDevice(ctx context.Context, req api.RegisterDeviceRequest) (*api.RegisterDeviceResponse, error)

	// Push отправляет батч операций одним запросом
	Push(ctx context.Context, accessToken string, req api.PushRequest) (*api.PushResponse, error)

	// Pull запрашивает серверные изменения после указанного watermark
	Pull(ctx context.Context, accessToken string, since int64) (*api.PullResponse, error)

	// Status выполняет liveness/clock пробу сервера
	Status(ctx context.Context) (*api.StatusResponse, error)
}

// Client представляет HTTP клиент для взаимодействия с сервером
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient создает новый API клиент.
// Таймаут запроса ограничивает sync-раунд: истекший таймаут эквивалентен
// отсутствию ответа, весь батч остается неподтвержденным.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			// Настройка обработки редиректов
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				// Ограничиваем количество редиректов
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				// Копируем заголовки Authorization при редиректе
				if len(via) > 0 && via[0].Header.Get("Authorization") != "" {
					req.Header.Set("Authorization", via[0].Header.Get("Authorization"))
				}
				return nil
			},
		},
	}
}

// RegisterDevice регистрирует новое устройство
func (c *Client) RegisterDevice(ctx context.Context, req api.RegisterDeviceRequest) (*api.RegisterDeviceResponse, error) {
	var resp api.RegisterDeviceResponse
	err := c.doRequest(ctx, "POST", "/api/v1/devices/register", "", req, &resp)
	if err != nil {
		return nil, fmt.Errorf("register device request failed: %w", err)
	}
	return &resp, nil
}

// Push отправляет батч операций на сервер
func (c *Client) Push(ctx context.Context, accessToken string, req api.PushRequest) (*api.PushResponse, error) {
	var resp api.PushResponse
	err := c.doRequest(ctx, "POST", "/api/v1/sync/push", accessToken, req, &resp)
	if err != nil {
		return nil, fmt.Errorf("push request failed: %w", err)
	}
	return &resp, nil
}

// Pull запрашивает серверные изменения после watermark
func (c *Client) Pull(ctx context.Context, accessToken string, since int64) (*api.PullResponse, error) {
	var resp api.PullResponse
	url := fmt.Sprintf("/api/v1/sync/pull?since=%d", since)
	err := c.doRequest(ctx, "GET", url, accessToken, nil, &resp)
	if err != nil {
		return nil, fmt.Errorf("pull request failed: %w", err)
	}
	return &resp, nil
}

// Status выполняет liveness пробу
func (c *Client) Status(ctx context.Context) (*api.StatusResponse, error) {
	var resp api.StatusResponse
	err := c.doRequest(ctx, "GET", "/api/v1/sync/status", "", nil, &resp)
	if err != nil {
		return nil, fmt.Errorf("status request failed: %w", err)
	}
	return &resp, nil
}

// doRequest выполняет HTTP запрос
func (c *Client) doRequest(ctx context.Context, method, path, accessToken string, body, result interface{}) error {
	url := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	// Читаем тело ответа
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	// Проверяем статус код
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp api.ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil {
			return fmt.Errorf("server error (%d): %s", resp.StatusCode, errResp.Message)
		}
		return fmt.Errorf("request failed with status %d: %s", resp.StatusCode, string(respBody))
	}

	// Декодируем успешный ответ
	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
