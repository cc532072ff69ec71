package cli

import (
	"fmt"
	"os"
	"strings"
)

// PrintUsage выводит справку по командам клиента
func PrintUsage() {
	fmt.Println("StockSync Client")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  stocksync [OPTIONS] COMMAND")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --version        Show version information")
	fmt.Println("  --server URL     Server URL (default: http://localhost:8080)")
	fmt.Println("  --db PATH        Path to local database (default: stocksync-client.db)")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  register --name NAME           Register this device on the server")
	fmt.Println("  add --sku SKU --name NAME ...  Add a new inventory item")
	fmt.Println("  update ID [--name] [--unit] [--price]")
	fmt.Println("                                 Update item fields")
	fmt.Println("  adjust ID DELTA [--reason R]   Adjust item quantity by delta")
	fmt.Println("  delete ID                      Delete an item")
	fmt.Println("  get ID                         Show item details")
	fmt.Println("  list [--sku SKU] [--pending]   List items")
	fmt.Println("  sync                           Push pending operations to the server")
	fmt.Println("  pull                           Pull server changes since last sync")
	fmt.Println("  status                         Show sync status")
	fmt.Println("  conflicts                      Show resolved conflict log")
	fmt.Println("  watch                          Monitor connectivity and sync automatically")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  stocksync register --name warehouse-tablet")
	fmt.Println("  stocksync add --sku WIDGET-01 --name 'Widget' --unit pcs --qty 10 --price 14900")
	fmt.Println("  stocksync adjust WIDGET-01 -3 --reason 'sold'")
	fmt.Println("  stocksync --server https://stock.example.com sync")
}

// checkmark для вывода результатов команд
const checkmark = "✓"

// formatPrice форматирует цену в копейках как рубли
func formatPrice(kopecks int64) string {
	sign := ""
	if kopecks < 0 {
		sign = "-"
		kopecks = -kopecks
	}
	return fmt.Sprintf("%s%d.%02d", sign, kopecks/100, kopecks%100)
}

// confirm спрашивает подтверждение y/N у пользователя
func confirm(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	var answer string
	if _, err := fmt.Fscanln(os.Stdin, &answer); err != nil {
		return false
	}
	return strings.EqualFold(answer, "y") || strings.EqualFold(answer, "yes")
}
