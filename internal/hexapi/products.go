// ABOUTME: Product CRUD calls against the admin catalog routes
// ABOUTME: Paginated listing plus create, update, and delete

package hexapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// productEnvelope wraps a product the way the mutation routes expect it.
type productEnvelope struct {
	Data Product `json:"data"`
}

// ListProducts fetches one page of the catalog. Pages are 1-based.
func (c *Client) ListProducts(ctx context.Context, page int) (ProductPage, error) {
	if page < 1 {
		page = 1
	}

	var res ProductPage
	route := fmt.Sprintf("%s?page=%d", c.productRoute("products"), page)
	if err := c.doJSON(ctx, http.MethodGet, route, nil, &res); err != nil {
		return ProductPage{}, err
	}
	return res, nil
}

// CreateProduct creates a new product. The server assigns the id.
func (c *Client) CreateProduct(ctx context.Context, p Product) error {
	return c.doJSON(ctx, http.MethodPost, c.productRoute("product"), productEnvelope{Data: p}, nil)
}

// UpdateProduct replaces the product with the given id.
func (c *Client) UpdateProduct(ctx context.Context, id string, p Product) error {
	route := c.productRoute("product/" + url.PathEscape(id))
	return c.doJSON(ctx, http.MethodPut, route, productEnvelope{Data: p}, nil)
}

// DeleteProduct removes the product with the given id.
func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	route := c.productRoute("product/" + url.PathEscape(id))
	return c.doJSON(ctx, http.MethodDelete, route, nil, nil)
}
