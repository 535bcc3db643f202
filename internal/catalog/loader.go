package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/yasheela-alla/cartIt/internal/domain"
)

// HTTPDoer executes HTTP requests. Both httpclient.Client and
// httpclient.CircuitBreakerClient satisfy this.
type HTTPDoer interface {
	Do(ctx context.Context, req *http.Request) (*http.Response, error)
}

// LoadHTTP fetches the product list from a remote catalog service. The
// endpoint is expected to return a JSON array of products.
func LoadHTTP(ctx context.Context, client HTTPDoer, url string) (*Catalog, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create catalog request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("call catalog service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog service returned status %d", resp.StatusCode)
	}

	var products []domain.Product
	if err := json.NewDecoder(resp.Body).Decode(&products); err != nil {
		return nil, fmt.Errorf("decode catalog response: %w", err)
	}

	if len(products) == 0 {
		return nil, fmt.Errorf("catalog service returned no products")
	}

	return New(products), nil
}
