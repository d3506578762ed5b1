// ABOUTME: Wire types for the product-catalog API
// ABOUTME: Products, pagination, and the array-or-map product page payload

package hexapi

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"
)

// Product mirrors the catalog API product resource. The id is assigned by
// the server on creation and never reused.
type Product struct {
	ID          string   `json:"id,omitempty"`
	Title       string   `json:"title"`
	Category    string   `json:"category"`
	Unit        string   `json:"unit"`
	OriginPrice float64  `json:"origin_price"`
	Price       float64  `json:"price"`
	Description string   `json:"description"`
	Content     string   `json:"content"`
	IsEnabled   int      `json:"is_enabled"`
	Num         float64  `json:"num"`
	ImageURL    string   `json:"imageUrl"`
	ImagesURL   []string `json:"imagesUrl"`
	Rating      int      `json:"rating"`
	ModifiedAt  int64    `json:"_ts"`
}

// Pagination mirrors the pagination descriptor returned alongside product
// pages. It drives page navigation and global row numbering.
type Pagination struct {
	TotalPages  int  `json:"total_pages"`
	CurrentPage int  `json:"current_page"`
	HasPre      bool `json:"has_pre"`
	HasNext     bool `json:"has_next"`
	PerPage     int  `json:"per_page"`
}

// ProductPage is one page of the catalog listing.
type ProductPage struct {
	Products   []Product
	Pagination Pagination
}

// UnmarshalJSON accepts both payload shapes the API is known to return:
// products as an array, or as an id-keyed map. Map-shaped payloads are
// sorted by product id for a deterministic row order.
func (p *ProductPage) UnmarshalJSON(data []byte) error {
	var raw struct {
		Products   json.RawMessage `json:"products"`
		Pagination Pagination      `json:"pagination"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	p.Pagination = raw.Pagination
	p.Products = nil

	if len(raw.Products) == 0 || string(raw.Products) == "null" {
		return nil
	}

	switch raw.Products[0] {
	case '[':
		return json.Unmarshal(raw.Products, &p.Products)
	case '{':
		byID := map[string]Product{}
		if err := json.Unmarshal(raw.Products, &byID); err != nil {
			return err
		}
		ids := make([]string, 0, len(byID))
		for id := range byID {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, id := range ids {
			prod := byID[id]
			if prod.ID == "" {
				prod.ID = id
			}
			p.Products = append(p.Products, prod)
		}
		return nil
	default:
		return fmt.Errorf("unexpected products payload shape")
	}
}

// SignInResult is the successful signin response.
type SignInResult struct {
	Token   string `json:"token"`
	Expired int64  `json:"expired"`
}

// ExpiresAt converts the server-declared expiry (a millisecond timestamp)
// into a time.Time.
func (r SignInResult) ExpiresAt() time.Time {
	return time.UnixMilli(r.Expired)
}
