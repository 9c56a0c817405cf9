package api

import (
	"context"

	"github.com/dmitrijs2005/posterm/internal/models"
)

// TokenSource supplies the current bearer token, or "" when no session
// exists. The session store implements it.
type TokenSource interface {
	Token() string
}

// LoginResult is the payload of a successful login call.
type LoginResult struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// Client defines one method per backend operation.
type Client interface {
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	Register(ctx context.Context, username, email, password string) error

	ListProducts(ctx context.Context) ([]models.Product, error)
	CreateProduct(ctx context.Context, p models.Product) (*models.Product, error)
	CreateProductsBulk(ctx context.Context, ps []models.Product) ([]models.Product, error)
	UpdateProduct(ctx context.Context, id int64, p models.Product) (*models.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
	ListCategories(ctx context.Context) ([]models.Category, error)
	CreateCategory(ctx context.Context, name string) (*models.Category, error)

	GetSettings(ctx context.Context) (*models.Settings, error)
	UpdateSettings(ctx context.Context, s models.Settings) (*models.Settings, error)

	GetSummary(ctx context.Context) (*models.Summary, error)
	GetDailySales(ctx context.Context) ([]models.DailySalesPoint, error)
}
