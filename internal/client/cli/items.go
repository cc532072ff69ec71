package cli

import (
	"context"
	"flag"
	"fmt"
	"strconv"

	"github.com/iudanet/stocksync/internal/client/inventory"
	"github.com/iudanet/stocksync/internal/client/storage"
	"github.com/iudanet/stocksync/internal/models"
)

// RunAdd обрабатывает команду add
func RunAdd(ctx context.Context, args []string, service inventory.Service) error {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	sku := fs.String("sku", "", "Item SKU")
	name := fs.String("name", "", "Item name")
	unit := fs.String("unit", "pcs", "Unit of measure")
	qty := fs.Int64("qty", 0, "Initial quantity")
	price := fs.Int64("price", 0, "Price in kopecks")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *sku == "" {
		return fmt.Errorf("missing --sku. Usage: stocksync add --sku SKU --name NAME [--unit U] [--qty N] [--price K]")
	}
	if *name == "" {
		return fmt.Errorf("missing --name")
	}

	item, err := service.CreateItem(ctx, inventory.CreateItemParams{
		SKU:      *sku,
		Name:     *name,
		Unit:     *unit,
		Quantity: *qty,
		Price:    *price,
	})
	if err != nil {
		return fmt.Errorf("failed to create item: %w", err)
	}

	fmt.Printf("%s Item created (pending sync)\n", checkmark)
	printItem(item)

	return nil
}

// RunUpdate обрабатывает команду update
func RunUpdate(ctx context.Context, args []string, service inventory.Service) error {
	if len(args) == 0 {
		return fmt.Errorf("missing item id. Usage: stocksync update ID [--name N] [--unit U] [--price K]")
	}
	ref := args[0]

	fs := flag.NewFlagSet("update", flag.ContinueOnError)
	name := fs.String("name", "", "New item name")
	unit := fs.String("unit", "", "New unit of measure")
	price := fs.String("price", "", "New price in kopecks")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}

	var params inventory.UpdateItemParams
	if *name != "" {
		params.Name = name
	}
	if *unit != "" {
		params.Unit = unit
	}
	if *price != "" {
		value, err := strconv.ParseInt(*price, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid price: %w", err)
		}
		params.Price = &value
	}

	if params.Name == nil && params.Unit == nil && params.Price == nil {
		return fmt.Errorf("nothing to update: pass --name, --unit or --price")
	}

	item, err := service.UpdateItem(ctx, ref, params)
	if err != nil {
		return fmt.Errorf("failed to update item: %w", err)
	}

	fmt.Printf("%s Item updated (pending sync)\n", checkmark)
	printItem(item)

	return nil
}

// RunAdjust обрабатывает команду adjust
func RunAdjust(ctx context.Context, args []string, service inventory.Service) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: stocksync adjust ID DELTA [--reason R]")
	}
	ref := args[0]

	delta, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid delta %q: %w", args[1], err)
	}

	fs := flag.NewFlagSet("adjust", flag.ContinueOnError)
	reason := fs.String("reason", "", "Adjustment reason")
	if err := fs.Parse(args[2:]); err != nil {
		return err
	}

	item, err := service.AdjustQuantity(ctx, ref, delta, *reason)
	if err != nil {
		return fmt.Errorf("failed to adjust quantity: %w", err)
	}

	fmt.Printf("%s Quantity adjusted by %+d (pending sync)\n", checkmark, delta)
	printItem(item)

	return nil
}

// RunDelete обрабатывает команду delete
func RunDelete(ctx context.Context, args []string, service inventory.Service) error {
	if len(args) == 0 {
		return fmt.Errorf("missing item id. Usage: stocksync delete ID")
	}
	ref := args[0]

	if err := service.DeleteItem(ctx, ref); err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}

	fmt.Printf("%s Item deleted (pending sync)\n", checkmark)

	return nil
}

// RunGet обрабатывает команду get
func RunGet(ctx context.Context, args []string, service inventory.Service) error {
	if len(args) == 0 {
		return fmt.Errorf("missing item id. Usage: stocksync get ID")
	}

	item, err := service.GetItem(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to get item: %w", err)
	}

	printItem(item)

	return nil
}

// RunList обрабатывает команду list
func RunList(ctx context.Context, args []string, service inventory.Service) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	sku := fs.String("sku", "", "Filter by SKU")
	pending := fs.Bool("pending", false, "Show only items awaiting sync")
	if err := fs.Parse(args); err != nil {
		return err
	}

	items, err := service.ListItems(ctx, storage.ListFilter{
		SKU:         *sku,
		PendingOnly: *pending,
	})
	if err != nil {
		return fmt.Errorf("failed to list items: %w", err)
	}

	if len(items) == 0 {
		fmt.Println("No items found.")
		return nil
	}

	fmt.Printf("Found %d item(s):\n\n", len(items))
	for i, item := range items {
		fmt.Printf("%d. %s [%s]\n", i+1, item.Name, item.SKU)
		fmt.Printf("   ID:       %s\n", item.Key())
		fmt.Printf("   Quantity: %d %s\n", item.Quantity, item.Unit)
		fmt.Printf("   Price:    %s\n", formatPrice(item.Price))
		if item.PendingSync {
			fmt.Println("   Sync:     pending")
		}
		fmt.Println()
	}

	return nil
}

// printItem выводит детали позиции
func printItem(item *models.Item) {
	fmt.Printf("ID:       %s\n", item.Key())
	if !item.HasServerID() {
		fmt.Println("          (tentative, will be replaced after sync)")
	}
	fmt.Printf("SKU:      %s\n", item.SKU)
	fmt.Printf("Name:     %s\n", item.Name)
	fmt.Printf("Quantity: %d %s\n", item.Quantity, item.Unit)
	fmt.Printf("Price:    %s\n", formatPrice(item.Price))
	if item.PendingSync {
		fmt.Println("Sync:     pending")
	}
}
