package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/dmitrijs2005/posterm/internal/filex"
	"github.com/dmitrijs2005/posterm/internal/report"
)

// nowFn is a test seam for export file naming.
var nowFn = time.Now

// ExportInventory writes the current product list to a PDF report in the
// configured export directory.
func (a *App) ExportInventory(ctx context.Context) error {
	if !a.enter("/inventory") {
		return nil
	}

	a.products.FetchProducts(ctx)

	columns := []string{"Name", "Category", "Price", "Stock", "Low Stock At"}
	products := a.products.Products()
	rows := make([][]string, 0, len(products))
	for _, p := range products {
		rows = append(rows, []string{
			p.Name,
			p.Category,
			strconv.FormatFloat(p.Price, 'f', 2, 64),
			strconv.FormatInt(p.Stock, 10),
			strconv.FormatInt(p.LowStockThreshold, 10),
		})
	}

	return a.export(ctx, "Inventory Report", columns, rows, "inventory")
}

// ExportSales writes the daily revenue series to a PDF report in the
// configured export directory.
func (a *App) ExportSales(ctx context.Context) error {
	if !a.enter("/transactions") {
		return nil
	}

	a.analytics.FetchDailySales(ctx)

	columns := []string{"Date", "Revenue"}
	daily := a.analytics.DailySales()
	rows := make([][]string, 0, len(daily))
	for _, p := range daily {
		rows = append(rows, []string{p.Date, strconv.FormatFloat(p.Total, 'f', 2, 64)})
	}

	return a.export(ctx, "Sales Report", columns, rows, "sales")
}

// export renders the report with the store's letterhead and saves it under
// the export directory. Failures raise a blocking alert so the user cannot
// miss them in the scrollback.
func (a *App) export(ctx context.Context, title string, columns []string, rows [][]string, prefix string) error {
	dir, err := filex.EnsureSubDir(a.config.ExportDir)
	if err != nil {
		return a.alert(err)
	}

	s := a.settings.Settings()
	meta := report.StoreMeta{StoreName: s.StoreName, StoreAddress: s.StoreAddress}
	// report.Export appends the extension itself.
	filename := fmt.Sprintf("%s-%s", prefix, nowFn().Format("20060102-150405"))

	if err := report.Export(dir, filename, title, columns, rows, meta, ""); err != nil {
		a.log.Error(ctx, "report export failed", "title", title, "error", err)
		return a.alert(err)
	}

	fmt.Println("Saved", filepath.Join(dir, filename+report.Extension))
	return nil
}

// alert blocks until the user acknowledges the failure, then returns it.
func (a *App) alert(err error) error {
	_, _ = getSimpleText(a.reader, "Export failed: "+err.Error()+" (press Enter to continue)", os.Stdout)
	return err
}
