package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/posterm/internal/models"
)

// ShowSettings refreshes and prints the store settings. A fetch failure is
// logged by the store and the current (possibly default) record is shown.
func (a *App) ShowSettings(ctx context.Context) error {
	if !a.enter("/settings") {
		return nil
	}

	a.settings.Fetch(ctx)

	s := a.settings.Settings()
	fmt.Printf("Store name:    %s\n", s.StoreName)
	fmt.Printf("Address:       %s\n", s.StoreAddress)
	fmt.Printf("Low stock at:  %d\n", s.DefaultLowStockThreshold)
	fmt.Printf("PIC:           %s\n", s.PICName)
	return nil
}

// UpdateSettings prompts for new store settings and saves them. The store
// reports success as a boolean; the cache keeps the previous record on
// failure.
func (a *App) UpdateSettings(ctx context.Context) error {
	if !a.enter("/settings") {
		return nil
	}

	name, err := getSimpleText(a.reader, "Enter store name", os.Stdout)
	if err != nil {
		return err
	}

	address, err := getSimpleText(a.reader, "Enter store address", os.Stdout)
	if err != nil {
		return err
	}

	threshold, err := a.promptInt64("Enter default low stock threshold")
	if err != nil {
		return err
	}

	pic, err := getSimpleText(a.reader, "Enter person in charge", os.Stdout)
	if err != nil {
		return err
	}

	ok := a.settings.Update(ctx, models.Settings{
		StoreName:                name,
		StoreAddress:             address,
		DefaultLowStockThreshold: threshold,
		PICName:                  pic,
	})
	if !ok {
		fmt.Println("Failed to save settings.")
		return nil
	}

	fmt.Println("Settings saved.")
	return nil
}
