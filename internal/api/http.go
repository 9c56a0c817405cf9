package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/posterm/internal/logging"
	"github.com/dmitrijs2005/posterm/internal/models"
)

// Backend paths, relative to the base URL. The trailing slash on collection
// endpoints is exact: the server answers "products" with a redirect to
// "products/" that downgrades POST to GET.
const (
	pathLogin      = "/auth/login"
	pathRegister   = "/auth/register"
	pathProducts   = "/products/"
	pathCategories = "/products/categories"
	pathBulk       = "/products/bulk"
	pathSettings   = "/settings/"
	pathSummary    = "/analytics/summary"
	pathDailySales = "/analytics/daily-sales"
)

// authTransport is the request interceptor: it attaches the bearer token
// (when a session exists) and a request id to every outgoing request.
type authTransport struct {
	tokens TokenSource
	base   http.RoundTripper
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	if tok := t.tokens.Token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	req.Header.Set("X-Request-ID", uuid.NewString())
	return t.base.RoundTrip(req)
}

// HTTPClient is the concrete Client over net/http.
type HTTPClient struct {
	baseURL string
	hc      *http.Client
	log     logging.Logger
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient builds a client for the backend at baseURL (e.g.
// "http://localhost:8080/api", no trailing slash). Redirects are never
// followed so write methods keep their exact path and verb.
func NewHTTPClient(baseURL string, timeout time.Duration, tokens TokenSource, log logging.Logger) *HTTPClient {
	hc := &http.Client{
		Timeout: timeout,
		Transport: &authTransport{
			tokens: tokens,
			base:   http.DefaultTransport,
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	return &HTTPClient{baseURL: baseURL, hc: hc, log: log}
}

// do performs one JSON round trip. in (when non-nil) is marshalled as the
// request body; out (when non-nil) receives the decoded 2xx response body.
func (c *HTTPClient) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		c.log.Warn(ctx, "request failed", "method", method, "path", path, "error", err)
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.responseError(ctx, method, path, resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *HTTPClient) responseError(ctx context.Context, method, path string, resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}

	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Error != "" {
		apiErr.Message = body.Error
	}

	c.log.Warn(ctx, "request rejected",
		"method", method, "path", path, "status", resp.StatusCode, "message", apiErr.Message)
	return apiErr
}

func (c *HTTPClient) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	in := map[string]string{"username": username, "password": password}
	var out LoginResult
	if err := c.do(ctx, http.MethodPost, pathLogin, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Register(ctx context.Context, username, email, password string) error {
	in := map[string]string{"username": username, "email": email, "password": password}
	return c.do(ctx, http.MethodPost, pathRegister, in, nil)
}

func (c *HTTPClient) ListProducts(ctx context.Context) ([]models.Product, error) {
	var out []models.Product
	if err := c.do(ctx, http.MethodGet, pathProducts, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) CreateProduct(ctx context.Context, p models.Product) (*models.Product, error) {
	var out models.Product
	if err := c.do(ctx, http.MethodPost, pathProducts, p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) CreateProductsBulk(ctx context.Context, ps []models.Product) ([]models.Product, error) {
	var out []models.Product
	if err := c.do(ctx, http.MethodPost, pathBulk, ps, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) UpdateProduct(ctx context.Context, id int64, p models.Product) (*models.Product, error) {
	var out models.Product
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/products/%d", id), p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) DeleteProduct(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/products/%d", id), nil, nil)
}

func (c *HTTPClient) ListCategories(ctx context.Context) ([]models.Category, error) {
	var out []models.Category
	if err := c.do(ctx, http.MethodGet, pathCategories, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) CreateCategory(ctx context.Context, name string) (*models.Category, error) {
	in := map[string]string{"name": name}
	var out models.Category
	if err := c.do(ctx, http.MethodPost, pathCategories, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) GetSettings(ctx context.Context) (*models.Settings, error) {
	var out models.Settings
	if err := c.do(ctx, http.MethodGet, pathSettings, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) UpdateSettings(ctx context.Context, s models.Settings) (*models.Settings, error) {
	var out models.Settings
	if err := c.do(ctx, http.MethodPut, pathSettings, s, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) GetSummary(ctx context.Context) (*models.Summary, error) {
	var out models.Summary
	if err := c.do(ctx, http.MethodGet, pathSummary, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) GetDailySales(ctx context.Context) ([]models.DailySalesPoint, error) {
	var out []models.DailySalesPoint
	if err := c.do(ctx, http.MethodGet, pathDailySales, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
