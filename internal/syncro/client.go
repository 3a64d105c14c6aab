package syncro

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/vk/syncroexport/internal/ctxlog"
)

const (
	contactsPath  = "/contacts"
	customersPath = "/customers"
)

// BaseURL returns the API root for a Syncro account subdomain.
func BaseURL(subdomain string) string {
	return fmt.Sprintf("https://%s.syncromsp.com/api/v1", subdomain)
}

// Client handles communication with the Syncro API.
type Client struct {
	rest    *resty.Client
	baseURL string
	apiKey  string

	httpClient *http.Client
	timeout    time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API root derived from the subdomain.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets a per-request timeout. Zero keeps the HTTP client's own
// setting, which for the default client is no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// NewClient creates a client for the given account subdomain and API key.
func NewClient(subdomain, apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("syncro: api key must not be empty")
	}
	c := &Client{
		httpClient: &http.Client{},
		apiKey:     apiKey,
	}
	if subdomain != "" {
		c.baseURL = BaseURL(subdomain)
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.baseURL == "" {
		return nil, errors.New("syncro: subdomain must not be empty")
	}

	c.rest = resty.NewWithClient(c.httpClient).
		SetHeader("Authorization", c.apiKey).
		SetHeader("Accept", "application/json")
	if c.timeout > 0 {
		c.rest.SetTimeout(c.timeout)
	}
	return c, nil
}

// Contacts returns a pager over every contact visible to the API key. When
// customerID is not empty the listing is scoped to that customer, and any
// contact the server returns for another customer is dropped. A numeric
// customerID is compared by value, so "0042" and " 42" select customer 42.
func (c *Client) Contacts(customerID string) *Pager[Contact] {
	customerID = CanonicalCustomerID(customerID)
	query := url.Values{}
	if customerID != "" {
		query.Set("customer_id", customerID)
	}

	p := newPager(func(ctx context.Context, page int) ([]Contact, pageInfo, error) {
		return fetchPage[Contact](ctx, c, contactsPath, "contacts", query, page)
	})
	if customerID != "" {
		p.keep = func(ctx context.Context, ct Contact) bool {
			if ct.CustomerRef() == customerID {
				return true
			}
			ctxlog.FromContext(ctx).Warn("Dropping contact that belongs to another customer.",
				"contact_id", ct.ID, "contact_customer_id", ct.CustomerRef())
			return false
		}
	}
	return p
}

// CanonicalCustomerID trims id and, when it is a base-10 integer, rewrites
// it without a plus sign or leading zeros. Other values are only trimmed.
func CanonicalCustomerID(id string) string {
	id = strings.TrimSpace(id)
	if n, err := strconv.ParseInt(id, 10, 64); err == nil {
		return strconv.FormatInt(n, 10)
	}
	return id
}

// Customers returns a pager over every customer visible to the API key.
func (c *Client) Customers() *Pager[Customer] {
	return newPager(func(ctx context.Context, page int) ([]Customer, pageInfo, error) {
		return fetchPage[Customer](ctx, c, customersPath, "customers", nil, page)
	})
}

// CreateContact creates a contact and returns it as stored by the API.
func (c *Client) CreateContact(ctx context.Context, nc NewContact) (*Contact, error) {
	if nc.CustomerID == 0 {
		return nil, errors.New("syncro: a new contact needs a customer id")
	}
	payload, err := json.Marshal(nc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode contact: %w", err)
	}

	body, err := c.do(ctx, http.MethodPost, contactsPath, nil, payload)
	if err != nil {
		return nil, err
	}

	// The API has answered both with a bare object and with a "contact"
	// envelope; accept either.
	var wrapped struct {
		Contact *Contact `json:"contact"`
	}
	if err := json.Unmarshal(body, &wrapped); err != nil {
		return nil, malformed("create contact: %v", err)
	}
	if wrapped.Contact != nil {
		return wrapped.Contact, nil
	}
	var created Contact
	if err := json.Unmarshal(body, &created); err != nil {
		return nil, malformed("create contact: %v", err)
	}
	return &created, nil
}

// do executes one request and returns the body of a successful response.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, payload []byte) ([]byte, error) {
	logger := ctxlog.FromContext(ctx)

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req := c.rest.R().SetContext(ctx)
	if payload != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(payload)
	}

	logger.Debug("Sending API request.", "method", method, "url", endpoint)
	resp, err := req.Execute(method, endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request %s %s: %w", method, endpoint, err)
	}
	body := resp.Body()
	logger.Debug("Received API response.", "status", resp.Status(), "bytes", len(body))

	if !resp.IsSuccess() {
		return nil, &APIError{
			Method:     method,
			URL:        endpoint,
			StatusCode: resp.StatusCode(),
			Status:     resp.Status(),
			Body:       string(body),
		}
	}
	return body, nil
}

// fetchPage requests a single page of a listing endpoint and decodes the
// collection stored under key together with the pagination metadata.
func fetchPage[T any](ctx context.Context, c *Client, path, key string, query url.Values, page int) ([]T, pageInfo, error) {
	q := url.Values{}
	for k, v := range query {
		q[k] = v
	}
	q.Set("page", strconv.Itoa(page))

	body, err := c.do(ctx, http.MethodGet, path, q, nil)
	if err != nil {
		return nil, pageInfo{}, fmt.Errorf("failed to fetch %s page %d: %w", key, page, err)
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, pageInfo{}, malformed("%s page %d: %v", key, page, err)
	}

	raw, ok := envelope[key]
	if !ok {
		return nil, pageInfo{}, malformed("%s page %d: missing %q", key, page, key)
	}
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, pageInfo{}, malformed("%s page %d: decode %q: %v", key, page, key, err)
	}

	rawMeta, ok := envelope["meta"]
	if !ok {
		return nil, pageInfo{}, malformed("%s page %d: missing \"meta\"", key, page)
	}
	var m meta
	if err := json.Unmarshal(rawMeta, &m); err != nil {
		return nil, pageInfo{}, malformed("%s page %d: decode \"meta\": %v", key, page, err)
	}
	info, err := m.resolve()
	if err != nil {
		return nil, pageInfo{}, fmt.Errorf("%s page %d: %w", key, page, err)
	}
	if info.Page != page {
		return nil, pageInfo{}, malformed("%s page %d: server reported page %d", key, page, info.Page)
	}

	ctxlog.FromContext(ctx).Info("Fetched page.",
		"resource", key, "page", info.Page, "total_pages", info.TotalPages, "items", len(items))
	return items, info, nil
}
