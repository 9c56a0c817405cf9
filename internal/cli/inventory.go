package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/posterm/internal/models"
)

// Inventory refreshes and prints the product and category lists.
func (a *App) Inventory(ctx context.Context) error {
	if !a.enter("/inventory") {
		return nil
	}

	a.products.FetchProducts(ctx)
	a.products.FetchCategories(ctx)

	if msg := a.products.Err(); msg != "" {
		fmt.Println(msg)
	}

	for _, p := range a.products.Products() {
		mark := ""
		if p.Stock <= p.LowStockThreshold {
			mark = "  LOW"
		}
		fmt.Printf("%4d  %-30s %-15s %10.2f  x%d%s\n", p.ID, p.Name, p.Category, p.Price, p.Stock, mark)
	}

	cats := a.products.Categories()
	if len(cats) > 0 {
		names := make([]string, 0, len(cats))
		for _, c := range cats {
			names = append(names, c.Name)
		}
		fmt.Println("Categories:", strings.Join(names, ", "))
	}
	return nil
}

// AddProduct prompts for product fields and creates the product on the
// server. The created entity (with its server-assigned ID) is appended to
// the local cache by the store.
func (a *App) AddProduct(ctx context.Context) error {
	p, err := a.promptProduct()
	if err != nil {
		return err
	}

	created, err := a.products.AddProduct(ctx, p)
	if err != nil {
		fmt.Println(a.products.Err())
		return err
	}

	fmt.Printf("Created product %d\n", created.ID)
	return nil
}

// UpdateProduct prompts for a product id and replacement fields and sends
// the update to the server.
func (a *App) UpdateProduct(ctx context.Context) error {
	id, err := a.promptInt64("Enter product id")
	if err != nil {
		return err
	}

	p, err := a.promptProduct()
	if err != nil {
		return err
	}

	if _, err := a.products.UpdateProduct(ctx, id, p); err != nil {
		fmt.Println(a.products.Err())
		return err
	}

	fmt.Println("Updated.")
	return nil
}

// DeleteProduct prompts for a product id and removes it. The store only
// drops the cached entry after the server confirms; a failure is surfaced
// via the store's error message.
func (a *App) DeleteProduct(ctx context.Context) error {
	id, err := a.promptInt64("Enter product id")
	if err != nil {
		return err
	}

	a.products.DeleteProduct(ctx, id)
	if msg := a.products.Err(); msg != "" {
		fmt.Println(msg)
		return nil
	}

	fmt.Println("Deleted.")
	return nil
}

// ImportProducts reads one product per line in the form
// "name;category;price;stock;threshold" and creates them in a single bulk
// request.
func (a *App) ImportProducts(ctx context.Context) error {
	lines, err := GetLines(a.reader, "Enter products as name;category;price;stock;threshold", os.Stdout)
	if err != nil {
		return err
	}
	if len(lines) == 0 {
		return nil
	}

	ps := make([]models.Product, 0, len(lines))
	for _, line := range lines {
		p, err := parseProductLine(line)
		if err != nil {
			fmt.Println(err)
			return err
		}
		ps = append(ps, p)
	}

	created, err := a.products.AddProductsBulk(ctx, ps)
	if err != nil {
		fmt.Println(a.products.Err())
		return err
	}

	fmt.Printf("Imported %d products\n", len(created))
	return nil
}

// AddCategory prompts for a category name and creates it.
func (a *App) AddCategory(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter category name", os.Stdout)
	if err != nil {
		return err
	}

	a.products.AddCategory(ctx, name)
	return nil
}

func (a *App) promptProduct() (models.Product, error) {
	var p models.Product

	name, err := getSimpleText(a.reader, "Enter product name", os.Stdout)
	if err != nil {
		return p, err
	}

	category, err := getSimpleText(a.reader, "Enter category", os.Stdout)
	if err != nil {
		return p, err
	}

	price, err := a.promptFloat("Enter price")
	if err != nil {
		return p, err
	}

	stock, err := a.promptInt64("Enter stock")
	if err != nil {
		return p, err
	}

	threshold, err := a.promptInt64("Enter low stock threshold")
	if err != nil {
		return p, err
	}

	return models.Product{
		Name:              name,
		Category:          category,
		Price:             price,
		Stock:             stock,
		LowStockThreshold: threshold,
	}, nil
}

func (a *App) promptInt64(prompt string) (int64, error) {
	s, err := getSimpleText(a.reader, prompt, os.Stdout)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		fmt.Printf("Not a number: %q\n", s)
		return 0, err
	}
	return n, nil
}

func (a *App) promptFloat(prompt string) (float64, error) {
	s, err := getSimpleText(a.reader, prompt, os.Stdout)
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		fmt.Printf("Not a number: %q\n", s)
		return 0, err
	}
	return f, nil
}

func parseProductLine(line string) (models.Product, error) {
	var p models.Product

	parts := strings.Split(line, ";")
	if len(parts) != 5 {
		return p, fmt.Errorf("expected 5 fields, got %d: %q", len(parts), line)
	}

	price, err := strconv.ParseFloat(strings.TrimSpace(parts[2]), 64)
	if err != nil {
		return p, fmt.Errorf("bad price in %q: %w", line, err)
	}
	stock, err := strconv.ParseInt(strings.TrimSpace(parts[3]), 10, 64)
	if err != nil {
		return p, fmt.Errorf("bad stock in %q: %w", line, err)
	}
	threshold, err := strconv.ParseInt(strings.TrimSpace(parts[4]), 10, 64)
	if err != nil {
		return p, fmt.Errorf("bad threshold in %q: %w", line, err)
	}

	return models.Product{
		Name:              strings.TrimSpace(parts[0]),
		Category:          strings.TrimSpace(parts[1]),
		Price:             price,
		Stock:             stock,
		LowStockThreshold: threshold,
	}, nil
}
