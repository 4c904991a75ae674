package ventipay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bautizosmaitte/storefront-api/pkg/config"
	pkgerrors "github.com/bautizosmaitte/storefront-api/pkg/errors"
)

const (
	defaultBaseURL            = "https://api.ventipay.com/v1"
	defaultCurrency           = "CLP"
	defaultDescription        = "Compra en línea"
	errorBodyReadLimit  int64 = 2048
)

// Client wraps the VentiPay transactions API used for checkout handoff.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	apiSecret  string
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

// WithBaseURL overrides the configured transactions base URL.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		trimmed := strings.TrimSpace(baseURL)
		if trimmed != "" {
			c.baseURL = trimmed
		}
	}
}

// NewClient builds the VentiPay client. Credentials may be absent at boot;
// they are validated on the first transaction attempt so the storefront can
// serve catalog traffic without payment configuration.
func NewClient(cfg config.VentiPayConfig, opts ...Option) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	client := &Client{
		apiKey:     strings.TrimSpace(cfg.APIKey),
		apiSecret:  strings.TrimSpace(cfg.APISecret),
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
	if trimmed := strings.TrimSpace(cfg.BaseURL); trimmed != "" {
		client.baseURL = trimmed
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	return client
}

// TransactionRequest describes the payload sent to the transactions API.
// Amount is in minor currency units.
type TransactionRequest struct {
	Amount        int64  `json:"amount"`
	Currency      string `json:"currency"`
	Description   string `json:"description"`
	CustomerEmail string `json:"customer_email"`
	CallbackURL   string `json:"callback_url"`
	ReturnURL     string `json:"return_url"`
	CancelURL     string `json:"cancel_url"`
}

// Transaction holds the normalized provider response.
type Transaction struct {
	ID         string `json:"transaction_id"`
	PaymentURL string `json:"payment_url"`
	Status     string `json:"status"`
}

// CreateTransaction registers a payment transaction and returns the hosted
// payment URL the buyer must be redirected to.
func (c *Client) CreateTransaction(ctx context.Context, req TransactionRequest) (*Transaction, error) {
	if c == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "ventipay client not configured")
	}
	if c.apiKey == "" || c.apiSecret == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "payment credentials are not configured")
	}
	if req.Amount <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "transaction amount is invalid")
	}
	if req.Currency == "" {
		req.Currency = defaultCurrency
	}
	if req.Description == "" {
		req.Description = defaultDescription
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "marshal transaction request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.buildURL("transactions"), bytes.NewReader(payload))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build transaction request")
	}
	httpReq.SetBasicAuth(c.apiKey, c.apiSecret)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeNetworkUnavailable, err, "execute transaction request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, c.providerError(resp, "create transaction")
	}

	var apiResp struct {
		ID            string `json:"id"`
		TransactionID string `json:"transaction_id"`
		PaymentURL    string `json:"payment_url"`
		PaymentURLAlt string `json:"paymentUrl"`
		Status        string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInvalidResponse, err, "decode transaction response")
	}

	paymentURL := apiResp.PaymentURL
	if paymentURL == "" {
		paymentURL = apiResp.PaymentURLAlt
	}
	if paymentURL == "" {
		return nil, pkgerrors.New(pkgerrors.CodeInvalidResponse, "payment URL missing from provider response")
	}

	id := apiResp.ID
	if id == "" {
		id = apiResp.TransactionID
	}
	status := apiResp.Status
	if status == "" {
		status = "pending"
	}

	return &Transaction{ID: id, PaymentURL: paymentURL, Status: status}, nil
}

// Transaction fetches the current state of a previously created transaction.
func (c *Client) Transaction(ctx context.Context, transactionID string) (*Transaction, error) {
	if c == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "ventipay client not configured")
	}
	if c.apiKey == "" || c.apiSecret == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "payment credentials are not configured")
	}
	trimmed := strings.TrimSpace(transactionID)
	if trimmed == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "transaction id is required")
	}

	endpoint := fmt.Sprintf("%s/transactions/%s", strings.TrimRight(c.baseURL, "/"), url.PathEscape(trimmed))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build transaction lookup")
	}
	httpReq.SetBasicAuth(c.apiKey, c.apiSecret)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeNetworkUnavailable, err, "execute transaction lookup")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, c.providerError(resp, "check transaction")
	}

	var apiResp struct {
		ID         string `json:"id"`
		PaymentURL string `json:"payment_url"`
		Status     string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInvalidResponse, err, "decode transaction lookup response")
	}

	return &Transaction{ID: apiResp.ID, PaymentURL: apiResp.PaymentURL, Status: apiResp.Status}, nil
}

func (c *Client) providerError(resp *http.Response, action string) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyReadLimit))

	message := ""
	var parsed struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil {
		if parsed.Message != "" {
			message = parsed.Message
		} else if parsed.Error != "" {
			message = parsed.Error
		}
	}
	if message == "" {
		message = fmt.Sprintf("status %d: %s", resp.StatusCode, strings.TrimSpace(resp.Status))
	}

	return pkgerrors.Wrap(pkgerrors.CodeDependency, fmt.Errorf("%s", message), action+" failed")
}

func (c *Client) buildURL(path string) string {
	trimmed := strings.TrimRight(c.baseURL, "/")
	path = strings.TrimLeft(path, "/")
	return fmt.Sprintf("%s/%s", trimmed, path)
}
