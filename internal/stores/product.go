package stores

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/posterm/internal/api"
	"github.com/dmitrijs2005/posterm/internal/logging"
	"github.com/dmitrijs2005/posterm/internal/models"
)

// ProductStore caches the product catalog and the category list. The product
// slice keeps server response order; id uniqueness is the server's job.
type ProductStore struct {
	mu         sync.Mutex
	products   []models.Product
	categories []models.Category
	loading    bool
	errMsg     string
	fetchGen   uint64

	client api.Client
	log    logging.Logger
}

func NewProductStore(client api.Client, log logging.Logger) *ProductStore {
	return &ProductStore{client: client, log: log.With("store", "product")}
}

// FetchProducts replaces the local collection with the server response.
// Failures are recorded on the store, not returned. Concurrent fetches are
// resolved by generation: only the latest issued request may apply its
// response, so a slow stale reply can never overwrite a newer one.
func (s *ProductStore) FetchProducts(ctx context.Context) {
	s.mu.Lock()
	s.fetchGen++
	gen := s.fetchGen
	s.loading = true
	s.mu.Unlock()

	products, err := s.client.ListProducts(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.fetchGen {
		// a newer fetch has been issued since; discard this response
		s.log.Debug(ctx, "stale product fetch discarded", "generation", gen)
		return
	}
	s.loading = false
	if err != nil {
		s.errMsg = err.Error()
		s.log.Error(ctx, "failed to fetch products", "error", err)
		return
	}
	s.products = products
}

// FetchCategories refreshes the category list. Failures are only logged.
func (s *ProductStore) FetchCategories(ctx context.Context) {
	categories, err := s.client.ListCategories(ctx)
	if err != nil {
		s.log.Error(ctx, "failed to fetch categories", "error", err)
		return
	}

	s.mu.Lock()
	s.categories = categories
	s.mu.Unlock()
}

// AddProduct sends the payload and appends the server-returned entity (which
// carries the authoritative id) to the local collection. The error is both
// recorded and returned.
func (s *ProductStore) AddProduct(ctx context.Context, p models.Product) (*models.Product, error) {
	created, err := s.client.CreateProduct(ctx, p)
	if err != nil {
		s.recordError(ctx, "failed to add product", err)
		return nil, err
	}

	s.mu.Lock()
	s.products = append(s.products, *created)
	s.mu.Unlock()
	return created, nil
}

// AddProductsBulk is AddProduct for a batch: one request, all returned
// entities appended.
func (s *ProductStore) AddProductsBulk(ctx context.Context, ps []models.Product) ([]models.Product, error) {
	created, err := s.client.CreateProductsBulk(ctx, ps)
	if err != nil {
		s.recordError(ctx, "failed to add products in bulk", err)
		return nil, err
	}

	s.mu.Lock()
	s.products = append(s.products, created...)
	s.mu.Unlock()
	return created, nil
}

// UpdateProduct sends the change and replaces the matching local entry. When
// no local entry has the id, the local collection is left untouched even
// though the server was updated.
func (s *ProductStore) UpdateProduct(ctx context.Context, id int64, p models.Product) (*models.Product, error) {
	updated, err := s.client.UpdateProduct(ctx, id, p)
	if err != nil {
		s.recordError(ctx, "failed to update product", err)
		return nil, err
	}

	s.mu.Lock()
	for i := range s.products {
		if s.products[i].ID == id {
			s.products[i] = *updated
			break
		}
	}
	s.mu.Unlock()
	return updated, nil
}

// DeleteProduct removes the local entry only after the server confirms. On
// failure the collection is unchanged and the error is recorded, not
// returned.
func (s *ProductStore) DeleteProduct(ctx context.Context, id int64) {
	if err := s.client.DeleteProduct(ctx, id); err != nil {
		s.recordError(ctx, "failed to delete product", err)
		return
	}

	s.mu.Lock()
	kept := s.products[:0]
	for _, p := range s.products {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	s.products = kept
	s.mu.Unlock()
}

// AddCategory creates a category and appends it locally. Failures are
// recorded, not returned.
func (s *ProductStore) AddCategory(ctx context.Context, name string) {
	created, err := s.client.CreateCategory(ctx, name)
	if err != nil {
		s.recordError(ctx, "failed to add category", err)
		return
	}

	s.mu.Lock()
	s.categories = append(s.categories, *created)
	s.mu.Unlock()
}

func (s *ProductStore) recordError(ctx context.Context, msg string, err error) {
	s.mu.Lock()
	s.errMsg = err.Error()
	s.mu.Unlock()
	s.log.Error(ctx, msg, "error", err)
}

// Products returns a copy of the cached collection.
func (s *ProductStore) Products() []models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Product, len(s.products))
	copy(out, s.products)
	return out
}

// Categories returns a copy of the cached category list.
func (s *ProductStore) Categories() []models.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Category, len(s.categories))
	copy(out, s.categories)
	return out
}

// Loading reports whether a product fetch is in flight.
func (s *ProductStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Err returns the last recorded error message, "" when none.
func (s *ProductStore) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errMsg
}
