package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	httpClient "github.com/iudanet/stocksync/internal/client/api"
	"github.com/iudanet/stocksync/internal/client/storage"
	"github.com/iudanet/stocksync/internal/client/sync"
)

// RunSync обрабатывает команду sync
func RunSync(ctx context.Context, syncService sync.Service) error {
	fmt.Println("Synchronizing with server...")

	result, err := syncService.Sync(ctx)
	if err != nil {
		if errors.Is(err, sync.ErrSyncInFlight) {
			fmt.Println("Sync already in progress, skipping.")
			return nil
		}
		return fmt.Errorf("synchronization failed: %w", err)
	}

	if result.Pushed == 0 {
		fmt.Println("Nothing to push, local state is in sync.")
		return nil
	}

	fmt.Println()
	fmt.Printf("%s Synchronization completed\n", checkmark)
	fmt.Printf("Pushed:      %d operation(s)\n", result.Pushed)
	fmt.Printf("Applied:     %d\n", result.Applied)
	if result.Conflicts > 0 {
		fmt.Printf("Conflicts:   %d (server state accepted, see 'stocksync conflicts')\n", result.Conflicts)
	}
	if result.Failed > 0 {
		fmt.Printf("Failed:      %d (will be retried)\n", result.Failed)
	}
	if result.Quarantined > 0 {
		fmt.Printf("Quarantined: %d (gave up after repeated failures)\n", result.Quarantined)
	}

	return nil
}

// RunPull обрабатывает команду pull
func RunPull(ctx context.Context, syncService sync.Service) error {
	fmt.Println("Pulling changes from server...")

	result, err := syncService.Pull(ctx)
	if err != nil {
		if errors.Is(err, sync.ErrSyncInFlight) {
			fmt.Println("Sync already in progress, skipping.")
			return nil
		}
		return fmt.Errorf("pull failed: %w", err)
	}

	fmt.Printf("%s Pull completed: %d change(s), %d applied, %d skipped (local edits pending)\n",
		checkmark, result.Pulled, result.Applied, result.Skipped)

	return nil
}

// StatusStorage объединяет хранилища, нужные команде status
type StatusStorage interface {
	storage.AuthStorage
	storage.OutboxStorage
	storage.MetadataStorage
}

// RunStatus обрабатывает команду status
func RunStatus(ctx context.Context, apiClient httpClient.ClientAPI, store StatusStorage) error {
	fmt.Println("=== Sync Status ===")
	fmt.Println()

	auth, err := store.GetDeviceAuth(ctx)
	switch {
	case errors.Is(err, storage.ErrAuthNotFound):
		fmt.Println("Device:     not registered (run 'stocksync register')")
	case err != nil:
		return fmt.Errorf("failed to get device credentials: %w", err)
	default:
		fmt.Printf("Device:     %s (%s)\n", auth.DeviceName, auth.DeviceID)
		expires := time.Unix(auth.ExpiresAt, 0)
		if time.Now().After(expires) {
			fmt.Println("Token:      expired, re-register the device")
		} else {
			fmt.Printf("Token:      valid until %s\n", expires.Format(time.RFC3339))
		}
	}

	pending, err := store.PendingCount(ctx)
	if err != nil {
		return fmt.Errorf("failed to count pending operations: %w", err)
	}
	fmt.Printf("Pending:    %d operation(s)\n", pending)

	quarantined, err := store.Quarantined(ctx)
	if err != nil {
		return fmt.Errorf("failed to read quarantine: %w", err)
	}
	if len(quarantined) > 0 {
		fmt.Printf("Quarantine: %d operation(s)\n", len(quarantined))
	}

	watermark, err := store.GetLastPullTimestamp(ctx)
	if err != nil {
		return fmt.Errorf("failed to read pull watermark: %w", err)
	}
	if watermark == 0 {
		fmt.Println("Last pull:  never")
	} else {
		fmt.Printf("Last pull:  %s\n", time.UnixMilli(watermark).Format(time.RFC3339))
	}

	// Проба сервера best-effort: оффлайн не является ошибкой статуса
	if resp, err := apiClient.Status(ctx); err != nil {
		fmt.Println("Server:     unreachable")
	} else {
		fmt.Printf("Server:     %s (server time %s)\n",
			resp.Status, time.UnixMilli(resp.ServerTime).Format(time.RFC3339))
	}

	return nil
}

// RunConflicts обрабатывает команду conflicts
func RunConflicts(ctx context.Context, conflicts storage.ConflictStorage) error {
	records, err := conflicts.Conflicts(ctx, 20)
	if err != nil {
		return fmt.Errorf("failed to read conflict log: %w", err)
	}

	if len(records) == 0 {
		fmt.Println("No conflicts recorded.")
		return nil
	}

	fmt.Printf("Last %d conflict(s), newest first:\n\n", len(records))
	for _, rec := range records {
		fmt.Printf("%s  %s\n", rec.OccurredAt.Format(time.RFC3339), rec.EntityRef)
		fmt.Printf("    op:     %s\n", rec.OpID)
		fmt.Printf("    reason: %s\n", rec.Reason)
		fmt.Println()
	}
	fmt.Println("Conflicts are resolved automatically: the server state wins.")

	return nil
}
