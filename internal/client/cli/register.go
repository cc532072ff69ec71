package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	httpClient "github.com/iudanet/stocksync/internal/client/api"
	"github.com/iudanet/stocksync/internal/client/storage"
	"github.com/iudanet/stocksync/pkg/api"
)

// RunRegister регистрирует устройство на сервере и сохраняет токен локально
func RunRegister(ctx context.Context, args []string, apiClient httpClient.ClientAPI, authStorage storage.AuthStorage) error {
	fs := flag.NewFlagSet("register", flag.ContinueOnError)
	deviceName := fs.String("name", "", "Device name")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *deviceName == "" {
		hostname, err := os.Hostname()
		if err != nil {
			return fmt.Errorf("device name is required (--name)")
		}
		*deviceName = hostname
	}

	// Повторная регистрация выдает новый device_id, пересинхронизация
	// не требуется: журнал операций привязан к данным, не к устройству
	if existing, err := authStorage.GetDeviceAuth(ctx); err == nil {
		fmt.Printf("Device already registered as %q (%s)\n", existing.DeviceName, existing.DeviceID)
		if !confirm("Re-register and replace the stored token?") {
			return nil
		}
	}

	resp, err := apiClient.RegisterDevice(ctx, api.RegisterDeviceRequest{DeviceName: *deviceName})
	if err != nil {
		return fmt.Errorf("failed to register device: %w", err)
	}

	auth := &storage.DeviceAuth{
		DeviceID:    resp.DeviceID,
		DeviceName:  *deviceName,
		AccessToken: resp.AccessToken,
		ExpiresAt:   time.Now().Unix() + resp.ExpiresIn,
	}

	if err := authStorage.SaveDeviceAuth(ctx, auth); err != nil {
		return fmt.Errorf("failed to save device credentials: %w", err)
	}

	fmt.Printf("%s Device registered\n", checkmark)
	fmt.Printf("Device ID: %s\n", resp.DeviceID)
	fmt.Printf("Token valid until: %s\n", time.Unix(auth.ExpiresAt, 0).Format(time.RFC3339))

	return nil
}
