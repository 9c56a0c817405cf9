package stores

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/posterm/internal/api"
	"github.com/dmitrijs2005/posterm/internal/logging"
	"github.com/dmitrijs2005/posterm/internal/models"
)

func discardLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// fakeAPI implements api.Client via overridable functions. Calls without an
// override panic, which keeps tests honest about what they exercise.
type fakeAPI struct {
	api.Client

	listProducts  func(ctx context.Context) ([]models.Product, error)
	createProduct func(ctx context.Context, p models.Product) (*models.Product, error)
	createBulk    func(ctx context.Context, ps []models.Product) ([]models.Product, error)
	updateProduct func(ctx context.Context, id int64, p models.Product) (*models.Product, error)
	deleteProduct func(ctx context.Context, id int64) error
	listCats      func(ctx context.Context) ([]models.Category, error)
	createCat     func(ctx context.Context, name string) (*models.Category, error)
}

func (f *fakeAPI) ListProducts(ctx context.Context) ([]models.Product, error) {
	return f.listProducts(ctx)
}

func (f *fakeAPI) CreateProduct(ctx context.Context, p models.Product) (*models.Product, error) {
	return f.createProduct(ctx, p)
}

func (f *fakeAPI) CreateProductsBulk(ctx context.Context, ps []models.Product) ([]models.Product, error) {
	return f.createBulk(ctx, ps)
}

func (f *fakeAPI) UpdateProduct(ctx context.Context, id int64, p models.Product) (*models.Product, error) {
	return f.updateProduct(ctx, id, p)
}

func (f *fakeAPI) DeleteProduct(ctx context.Context, id int64) error {
	return f.deleteProduct(ctx, id)
}

func (f *fakeAPI) ListCategories(ctx context.Context) ([]models.Category, error) {
	return f.listCats(ctx)
}

func (f *fakeAPI) CreateCategory(ctx context.Context, name string) (*models.Category, error) {
	return f.createCat(ctx, name)
}

func seededProducts() []models.Product {
	return []models.Product{
		{ID: 1, Name: "Kopi", Price: 15000, Stock: 20},
		{ID: 2, Name: "Teh", Price: 10000, Stock: 35},
	}
}

func newSeededStore(t *testing.T, f *fakeAPI) *ProductStore {
	t.Helper()
	old := f.listProducts
	f.listProducts = func(ctx context.Context) ([]models.Product, error) {
		return seededProducts(), nil
	}
	s := NewProductStore(f, discardLogger())
	s.FetchProducts(context.Background())
	require.Len(t, s.Products(), 2)
	f.listProducts = old
	return s
}

func TestFetchProducts_ReplacesWholesale(t *testing.T) {
	f := &fakeAPI{}
	s := newSeededStore(t, f)

	f.listProducts = func(ctx context.Context) ([]models.Product, error) {
		return []models.Product{{ID: 9, Name: "Susu"}}, nil
	}
	s.FetchProducts(context.Background())

	got := s.Products()
	require.Len(t, got, 1)
	assert.Equal(t, "Susu", got[0].Name)
	assert.False(t, s.Loading())
}

func TestFetchProducts_LoadingFlagDuringCall(t *testing.T) {
	f := &fakeAPI{}
	entered := make(chan struct{})
	release := make(chan struct{})
	f.listProducts = func(ctx context.Context) ([]models.Product, error) {
		close(entered)
		<-release
		return nil, nil
	}
	s := NewProductStore(f, discardLogger())

	done := make(chan struct{})
	go func() {
		s.FetchProducts(context.Background())
		close(done)
	}()

	<-entered
	assert.True(t, s.Loading())
	close(release)
	<-done
	assert.False(t, s.Loading())
}

func TestFetchProducts_FailureRecordedNotReturned(t *testing.T) {
	f := &fakeAPI{}
	s := newSeededStore(t, f)

	f.listProducts = func(ctx context.Context) ([]models.Product, error) {
		return nil, api.ErrUnavailable
	}
	s.FetchProducts(context.Background())

	assert.Len(t, s.Products(), 2, "failed fetch must not touch the collection")
	assert.NotEmpty(t, s.Err())
	assert.False(t, s.Loading(), "loading must reset on failure too")
}

func TestFetchProducts_StaleResponseDiscarded(t *testing.T) {
	f := &fakeAPI{}
	entered := make(chan struct{})
	release := make(chan struct{})
	first := true
	f.listProducts = func(ctx context.Context) ([]models.Product, error) {
		if first {
			first = false
			close(entered)
			<-release
			return []models.Product{{ID: 1, Name: "old"}}, nil
		}
		return []models.Product{{ID: 2, Name: "new"}}, nil
	}
	s := NewProductStore(f, discardLogger())

	done := make(chan struct{})
	go func() {
		s.FetchProducts(context.Background())
		close(done)
	}()
	<-entered

	// the second fetch completes while the first is still in flight
	s.FetchProducts(context.Background())
	close(release)
	<-done

	got := s.Products()
	require.Len(t, got, 1)
	assert.Equal(t, "new", got[0].Name, "late first response must not overwrite the newer one")
}

func TestAddProduct_AppendsServerEntity(t *testing.T) {
	f := &fakeAPI{}
	s := newSeededStore(t, f)

	f.createProduct = func(ctx context.Context, p models.Product) (*models.Product, error) {
		p.ID = 42 // server-assigned
		return &p, nil
	}

	created, err := s.AddProduct(context.Background(), models.Product{Name: "Roti"})
	require.NoError(t, err)
	assert.Equal(t, int64(42), created.ID)

	got := s.Products()
	require.Len(t, got, 3)
	assert.Equal(t, int64(42), got[2].ID)
}

func TestAddProduct_FailureRecordedAndReturned(t *testing.T) {
	f := &fakeAPI{}
	s := newSeededStore(t, f)

	wantErr := &api.APIError{Status: 422, Message: "name required"}
	f.createProduct = func(ctx context.Context, p models.Product) (*models.Product, error) {
		return nil, wantErr
	}

	_, err := s.AddProduct(context.Background(), models.Product{})
	require.Error(t, err)
	assert.ErrorIs(t, err, wantErr)
	assert.Len(t, s.Products(), 2)
	assert.NotEmpty(t, s.Err())
}

func TestAddProductsBulk_AppendsAll(t *testing.T) {
	f := &fakeAPI{}
	s := newSeededStore(t, f)

	f.createBulk = func(ctx context.Context, ps []models.Product) ([]models.Product, error) {
		out := make([]models.Product, len(ps))
		for i, p := range ps {
			p.ID = int64(100 + i)
			out[i] = p
		}
		return out, nil
	}

	created, err := s.AddProductsBulk(context.Background(), []models.Product{{Name: "A"}, {Name: "B"}})
	require.NoError(t, err)
	assert.Len(t, created, 2)
	assert.Len(t, s.Products(), 4)
}

func TestUpdateProduct_ReplacesMatchingEntry(t *testing.T) {
	f := &fakeAPI{}
	s := newSeededStore(t, f)

	f.updateProduct = func(ctx context.Context, id int64, p models.Product) (*models.Product, error) {
		p.ID = id
		return &p, nil
	}

	_, err := s.UpdateProduct(context.Background(), 2, models.Product{Name: "Teh Manis", Price: 12000})
	require.NoError(t, err)

	got := s.Products()
	require.Len(t, got, 2)
	assert.Equal(t, "Teh Manis", got[1].Name)
	assert.Equal(t, float64(12000), got[1].Price)
}

func TestUpdateProduct_UnknownIDLeavesCollectionUnchanged(t *testing.T) {
	f := &fakeAPI{}
	s := newSeededStore(t, f)

	f.updateProduct = func(ctx context.Context, id int64, p models.Product) (*models.Product, error) {
		p.ID = id
		return &p, nil // server accepts the update
	}

	before := s.Products()
	_, err := s.UpdateProduct(context.Background(), 999, models.Product{Name: "Ghost"})
	require.NoError(t, err)

	assert.Equal(t, before, s.Products())
}

func TestDeleteProduct_RemovesAfterServerConfirms(t *testing.T) {
	f := &fakeAPI{}
	s := newSeededStore(t, f)

	f.deleteProduct = func(ctx context.Context, id int64) error { return nil }
	s.DeleteProduct(context.Background(), 1)

	got := s.Products()
	require.Len(t, got, 1)
	assert.Equal(t, int64(2), got[0].ID)
}

func TestDeleteProduct_FailureLeavesCollectionUnchanged(t *testing.T) {
	f := &fakeAPI{}
	s := newSeededStore(t, f)

	f.deleteProduct = func(ctx context.Context, id int64) error {
		return errors.New("boom")
	}
	s.DeleteProduct(context.Background(), 1)

	assert.Len(t, s.Products(), 2)
	assert.NotEmpty(t, s.Err())
}

func TestCategories_FetchAndAdd(t *testing.T) {
	f := &fakeAPI{}
	f.listCats = func(ctx context.Context) ([]models.Category, error) {
		return []models.Category{{ID: 1, Name: "Minuman"}}, nil
	}
	f.createCat = func(ctx context.Context, name string) (*models.Category, error) {
		return &models.Category{ID: 2, Name: name}, nil
	}
	s := NewProductStore(f, discardLogger())

	s.FetchCategories(context.Background())
	require.Len(t, s.Categories(), 1)

	s.AddCategory(context.Background(), "Makanan")
	got := s.Categories()
	require.Len(t, got, 2)
	assert.Equal(t, "Makanan", got[1].Name)
}

func TestFetchCategories_FailureOnlyLogged(t *testing.T) {
	f := &fakeAPI{}
	f.listCats = func(ctx context.Context) ([]models.Category, error) {
		return nil, api.ErrUnavailable
	}
	s := NewProductStore(f, discardLogger())

	s.FetchCategories(context.Background())
	assert.Empty(t, s.Categories())
	assert.Empty(t, s.Err(), "category fetch failures are not recorded")
}
