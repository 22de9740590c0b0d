// Package catalog talks to the external, read-only product catalog and
// derives the browse views (categories, filtered pages, similar products,
// top lists) from its listings.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/01moynul/storefront-golang/internal/models"
)

// Client fetches products from a dummyjson-compatible catalog.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient builds a Client for baseURL. A zero timeout means no timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// Product fetches one product. A product the catalog does not know is a
// *models.NotFoundError.
func (c *Client) Product(ctx context.Context, id int64) (models.Product, error) {
	var product models.Product
	err := c.getJSON(ctx, "/products/"+strconv.FormatInt(id, 10), nil, &product)
	if err != nil {
		var status *statusError
		if errors.As(err, &status) && status.code == http.StatusNotFound {
			return models.Product{}, &models.NotFoundError{Resource: "product", ID: id}
		}
		return models.Product{}, err
	}
	return product, nil
}

// Search returns the products matching q.
func (c *Client) Search(ctx context.Context, q string) ([]models.Product, error) {
	var list models.ProductList
	if err := c.getJSON(ctx, "/products/search", url.Values{"q": {q}}, &list); err != nil {
		return nil, err
	}
	return list.Products, nil
}

// List returns up to limit products.
func (c *Client) List(ctx context.Context, limit int) ([]models.Product, error) {
	var list models.ProductList
	if err := c.getJSON(ctx, "/products", url.Values{"limit": {strconv.Itoa(limit)}}, &list); err != nil {
		return nil, err
	}
	return list.Products, nil
}

type statusError struct {
	code int
	url  string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("catalog: GET %s: unexpected status %d", e.url, e.code)
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, dst any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("catalog: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("catalog: GET %s: %w", u, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return &statusError{code: resp.StatusCode, url: u}
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("catalog: decode %s: %w", u, err)
	}
	return nil
}
