package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bautizosmaitte/storefront-api/pkg/config"
	pkgerrors "github.com/bautizosmaitte/storefront-api/pkg/errors"
)

const errorBodyReadLimit int64 = 1024

// Client fetches catalog collections from the headless CMS.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the CMS API base URL.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		trimmed := strings.TrimSpace(baseURL)
		if trimmed != "" {
			c.baseURL = strings.TrimRight(trimmed, "/")
		}
	}
}

// NewClient builds a CMS catalog client from configuration.
func NewClient(cfg config.CMSConfig, opts ...Option) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	client := &Client{
		baseURL:    cfg.APIBaseURL(),
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}
	return client
}

// Products fetches the filtered, paginated product listing.
func (c *Client) Products(ctx context.Context, filters Filters) (*ProductList, error) {
	var list ProductList
	if err := c.getJSON(ctx, BuildProductsQuery(filters), &list); err != nil {
		return nil, err
	}
	if list.Data == nil {
		list.Data = []Product{}
	}
	return &list, nil
}

// ProductBySlug fetches a single product, or a typed not-found error.
func (c *Client) ProductBySlug(ctx context.Context, slug string) (*Product, error) {
	trimmed := strings.TrimSpace(slug)
	if trimmed == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product slug is required")
	}

	var list ProductList
	if err := c.getJSON(ctx, BuildProductBySlugQuery(trimmed), &list); err != nil {
		return nil, err
	}
	if len(list.Data) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return &list.Data[0], nil
}

// Categories fetches all categories sorted by name.
func (c *Client) Categories(ctx context.Context) (*CategoryList, error) {
	var list CategoryList
	if err := c.getJSON(ctx, BuildCategoriesQuery(), &list); err != nil {
		return nil, err
	}
	if list.Data == nil {
		list.Data = []Category{}
	}
	return &list, nil
}

// Brands fetches all brands sorted by name.
func (c *Client) Brands(ctx context.Context) (*BrandList, error) {
	var list BrandList
	if err := c.getJSON(ctx, BuildBrandsQuery(), &list); err != nil {
		return nil, err
	}
	if list.Data == nil {
		list.Data = []Brand{}
	}
	return &list, nil
}

func (c *Client) getJSON(ctx context.Context, pathAndQuery string, dest any) error {
	endpoint := c.baseURL + pathAndQuery
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build cms request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeNetworkUnavailable, err, "execute cms request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyReadLimit))
		return pkgerrors.Wrap(
			pkgerrors.CodeDependency,
			fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg))),
			"cms request failed",
		)
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInvalidResponse, err, "decode cms response")
	}
	return nil
}
