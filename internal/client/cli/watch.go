package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/iudanet/stocksync/internal/client/netmon"
)

// RunWatch обрабатывает команду watch: держит монитор сети запущенным,
// пока процесс не получит SIGINT/SIGTERM. Каждый переход оффлайн-онлайн
// и каждый интервал доступности запускает синхронизацию.
func RunWatch(ctx context.Context, monitor *netmon.Monitor) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Println("Watching connectivity, press Ctrl+C to stop...")

	// Старт watch - это выход на передний план
	monitor.Foreground(ctx)

	if err := monitor.Run(ctx); err != nil && ctx.Err() == nil {
		return fmt.Errorf("network monitor stopped: %w", err)
	}

	fmt.Println("\nStopped.")

	return nil
}
