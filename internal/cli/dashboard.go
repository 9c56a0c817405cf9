package cli

import (
	"context"
	"fmt"
)

// enter pushes the target through the navigation guard and reports whether
// the user actually landed there. A guarded target without a session resolves
// to the login screen instead.
func (a *App) enter(path string) bool {
	a.router.Push(path)
	if a.router.Current().Path != path {
		fmt.Println("Please log in first.")
		return false
	}
	return true
}

// Goto navigates to a named screen through the guard and reports where the
// user ended up.
func (a *App) Goto(ctx context.Context, name string) error {
	rt, ok := a.router.Lookup(name)
	if !ok {
		fmt.Println("Unknown screen:", name)
		return nil
	}
	a.router.Push(rt.Path)
	cur := a.router.Current()
	fmt.Printf("On %s (%s)\n", cur.Name, cur.Path)
	return nil
}

// Dashboard refreshes and prints the sales summary and the daily revenue
// series. Fetch failures are logged by the store; the previous snapshot is
// shown in that case.
func (a *App) Dashboard(ctx context.Context) error {
	if !a.enter("/") {
		return nil
	}

	a.analytics.FetchSummary(ctx)
	a.analytics.FetchDailySales(ctx)

	sum := a.analytics.Summary()
	fmt.Printf("Revenue:      %.2f\n", sum.TotalRevenue)
	fmt.Printf("Transactions: %d\n", sum.TotalTransactions)
	fmt.Printf("Products:     %d\n", sum.TotalProducts)
	fmt.Printf("Low stock:    %d\n", sum.LowStockCount)

	daily := a.analytics.DailySales()
	if len(daily) > 0 {
		fmt.Println("Daily sales:")
		for _, p := range daily {
			fmt.Printf("  %s  %.2f\n", p.Date, p.Total)
		}
	}
	return nil
}
