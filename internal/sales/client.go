// Package sales records orders in the headless CMS and tracks their
// fulfillment state.
package sales

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bautizosmaitte/storefront-api/pkg/config"
	pkgerrors "github.com/bautizosmaitte/storefront-api/pkg/errors"
	"github.com/bautizosmaitte/storefront-api/pkg/logger"
)

const errorBodyReadLimit int64 = 1024

// Client talks to the CMS's sale endpoints.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logg       *logger.Logger
}

type Option func(*Client)

func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		trimmed := strings.TrimSpace(baseURL)
		if trimmed != "" {
			c.baseURL = strings.TrimRight(trimmed, "/")
		}
	}
}

func NewClient(cfg config.CMSConfig, logg *logger.Logger, opts ...Option) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	client := &Client{
		baseURL:    cfg.APIBaseURL(),
		httpClient: &http.Client{Timeout: timeout},
		logg:       logg,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}
	return client
}

// CreateSale records an order in the CMS and returns the follow-up URL and
// sale id the CMS hands back.
func (c *Client) CreateSale(ctx context.Context, data SaleData) (*CreateSaleResult, error) {
	if len(data.Products) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "sale has no products")
	}
	if data.Type == "" {
		data.Type = "online"
	}

	body, err := json.Marshal(data)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "marshal sale payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/sale", bytes.NewReader(body))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build sale request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeNetworkUnavailable, err, "execute sale request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.cmsError(resp, "create sale")
	}

	var result CreateSaleResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInvalidResponse, err, "decode sale response")
	}
	return &result, nil
}

// SaleByID fetches a sale record with its relations expanded.
func (c *Client) SaleByID(ctx context.Context, saleID int) (*Sale, error) {
	if saleID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "sale id is required")
	}

	endpoint := fmt.Sprintf("%s/sales/%d?populate=*", c.baseURL, saleID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build sale lookup")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeNetworkUnavailable, err, "execute sale lookup")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "sale not found")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, c.cmsError(resp, "fetch sale")
	}

	var envelope struct {
		Data *Sale `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInvalidResponse, err, "decode sale lookup response")
	}
	if envelope.Data == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "sale not found")
	}
	return envelope.Data, nil
}

// UpdateSaleStatus transitions a sale's state. It reports success as a
// boolean: state transitions are fire-and-forget from the storefront's
// point of view, so failures are logged rather than propagated.
func (c *Client) UpdateSaleStatus(ctx context.Context, saleID int, state State) bool {
	if saleID <= 0 || !state.Valid() {
		c.logWarn(ctx, fmt.Sprintf("rejected sale status update: id=%d state=%q", saleID, state))
		return false
	}

	payload := struct {
		Data struct {
			State State `json:"state"`
		} `json:"data"`
	}{}
	payload.Data.State = state

	body, err := json.Marshal(payload)
	if err != nil {
		return false
	}

	endpoint := fmt.Sprintf("%s/sales/%d", c.baseURL, saleID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, endpoint, bytes.NewReader(body))
	if err != nil {
		return false
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logWarn(ctx, "sale status update failed: "+err.Error())
		return false
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, errorBodyReadLimit))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logWarn(ctx, fmt.Sprintf("sale status update returned %d", resp.StatusCode))
		return false
	}
	return true
}

func (c *Client) cmsError(resp *http.Response, action string) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyReadLimit))

	message := ""
	var parsed struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Message != "" {
		message = parsed.Message
	}
	if message == "" {
		message = fmt.Sprintf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, fmt.Errorf("%s", message), action+" failed")
}

func (c *Client) logWarn(ctx context.Context, msg string) {
	if c.logg == nil {
		return
	}
	c.logg.Warn(ctx, msg)
}
