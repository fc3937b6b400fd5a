package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"golang.org/x/sync/singleflight"

	"github.com/Deneth0077/CSH-MainFront/internal/domain"
)

// ProductClient reads the remote product catalog. The API wraps every
// payload in {"data": ...}; a missing or non-array data field is an empty
// result, never an error.
type ProductClient struct {
	client *Client
	sfg    singleflight.Group // collapses concurrent fetches of the same product
}

func NewProductClient(client *Client) *ProductClient {
	return &ProductClient{client: client}
}

func (p *ProductClient) All(ctx context.Context) ([]domain.Product, error) {
	return p.list(ctx, "")
}

func (p *ProductClient) ByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	return p.list(ctx, "category="+url.QueryEscape(category))
}

func (p *ProductClient) Search(ctx context.Context, query string) ([]domain.Product, error) {
	return p.list(ctx, "search="+url.QueryEscape(query))
}

func (p *ProductClient) Featured(ctx context.Context) ([]domain.Product, error) {
	return p.list(ctx, "featured=true")
}

func (p *ProductClient) ByID(ctx context.Context, id string) (*domain.Product, error) {
	v, err, _ := p.sfg.Do(id, func() (interface{}, error) {
		body, err := p.get(ctx, p.client.BaseURL()+"/products/"+url.PathEscape(id))
		if err != nil {
			return nil, err
		}

		var envelope struct {
			Data json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(body, &envelope); err != nil {
			return nil, fmt.Errorf("decode product response: %w", err)
		}
		if len(envelope.Data) == 0 || string(envelope.Data) == "null" {
			return (*domain.Product)(nil), nil
		}

		var product domain.Product
		if err := json.Unmarshal(envelope.Data, &product); err != nil {
			return (*domain.Product)(nil), nil
		}
		return &product, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.Product), nil
}

func (p *ProductClient) list(ctx context.Context, query string) ([]domain.Product, error) {
	endpoint := p.client.BaseURL() + "/products"
	if query != "" {
		endpoint += "?" + query
	}

	body, err := p.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return []domain.Product{}, nil
	}

	var products []domain.Product
	if err := json.Unmarshal(envelope.Data, &products); err != nil || products == nil {
		return []domain.Product{}, nil
	}
	return products, nil
}

func (p *ProductClient) get(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("product API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("product API returned status %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}
