// Package client consumes the portfolio backend REST API and turns its
// positions into chart data.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/PaesslerAG/jsonpath"
)

// APIError is an error reported by the server.
type APIError struct {
	Status  int    // HTTP status code
	Message string // server message, if any
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server error: %d %s", e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("server error %d: %s", e.Status, e.Message)
}

// Client calls the portfolio backend.
type Client struct {
	base *url.URL
	http *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithCache caches successful GET responses on disk for the day, in dir.
// An empty dir uses the system temporary directory.
func WithCache(dir string) Option {
	return func(c *Client) {
		c.http = wrap(c.http, func(base http.RoundTripper) http.RoundTripper {
			return &diskCache{base: base, dir: dir}
		})
	}
}

// WithLogging logs every request going to the network.
func WithLogging() Option {
	return func(c *Client) {
		c.http = wrap(c.http, func(base http.RoundTripper) http.RoundTripper {
			return &loggingTransport{base: base}
		})
	}
}

// New returns a client for the server at baseURL (e.g. "http://localhost:5000").
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("missing server address")
	}
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid server address %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid server address %q: scheme must be http or https", baseURL)
	}
	c := &Client{base: u, http: new(http.Client)}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Health checks that the server answers.
func (c *Client) Health(ctx context.Context) error {
	var status string
	if err := c.get(ctx, "/api/health", nil, "status", &status); err != nil {
		return err
	}
	if status != "ok" {
		return fmt.Errorf("server health is %q", status)
	}
	return nil
}

// Login checks the credentials and returns the user.
func (c *Client) Login(ctx context.Context, username, password string) (User, error) {
	body := map[string]string{"username": username, "password": password}
	doc, err := c.do(ctx, http.MethodPost, "/api/auth/login", nil, body)
	if err != nil {
		return User{}, err
	}
	var u User
	if err := decode(object(doc), &u); err != nil {
		return User{}, fmt.Errorf("decoding login response: %w", err)
	}
	if u.Username == "" {
		u.Username = username
	}
	return u, nil
}

// Ledgers lists the ledgers owned by username.
func (c *Client) Ledgers(ctx context.Context, username string) ([]Ledger, error) {
	var ledgers []Ledger
	q := url.Values{"username": {username}}
	err := c.get(ctx, "/api/ledgers", q, "ledgers", &ledgers)
	return ledgers, err
}

// Accounts lists the accounts of a ledger.
func (c *Client) Accounts(ctx context.Context, ledgerID int) ([]Account, error) {
	var accounts []Account
	err := c.get(ctx, "/api/accounts", selection(ledgerID, 0), "accounts", &accounts)
	return accounts, err
}

// Positions lists the open positions of a ledger, or of one of its accounts
// if accountID is not 0.
func (c *Client) Positions(ctx context.Context, ledgerID, accountID int) ([]Position, error) {
	var positions []Position
	err := c.get(ctx, "/api/positions", selection(ledgerID, accountID), "positions", &positions)
	return positions, err
}

// Stats returns the portfolio summary of a ledger, or of one of its accounts.
func (c *Client) Stats(ctx context.Context, ledgerID, accountID int) (Stats, error) {
	var stats Stats
	err := c.get(ctx, "/api/portfolio/stats", selection(ledgerID, accountID), "stats", &stats)
	return stats, err
}

// selection returns the query parameters for an optional ledger and account.
func selection(ledgerID, accountID int) url.Values {
	q := url.Values{}
	if ledgerID != 0 {
		q.Set("ledger_id", strconv.Itoa(ledgerID))
	}
	if accountID != 0 {
		q.Set("account_id", strconv.Itoa(accountID))
	}
	return q
}

// get fetches path and decodes the field key of the response into out.
func (c *Client) get(ctx context.Context, path string, q url.Values, key string, out any) error {
	doc, err := c.do(ctx, http.MethodGet, path, q, nil)
	if err != nil {
		return err
	}
	v, ok := field(doc, key)
	if !ok {
		return fmt.Errorf("GET %s: no %q in response", path, key)
	}
	if err := decode(v, out); err != nil {
		return fmt.Errorf("GET %s: decoding %q: %w", path, key, err)
	}
	return nil
}

// do performs a request and returns the generic JSON document of the response.
func (c *Client) do(ctx context.Context, method, path string, q url.Values, body any) (any, error) {
	u := *c.base
	u.Path = c.base.Path + path
	u.RawQuery = q.Encode()

	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		r = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, u.String(), r)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var doc any
	dec := json.NewDecoder(resp.Body)
	dec.UseNumber() // keeps amounts exact until decoded as decimals
	decodeErr := dec.Decode(&doc)

	if msg, ok := field(doc, "error"); ok || resp.StatusCode >= 400 {
		e := &APIError{Status: resp.StatusCode}
		if s, isString := msg.(string); isString {
			e.Message = s
		}
		return nil, e
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("%s %s: invalid JSON response: %w", method, path, decodeErr)
	}
	return doc, nil
}

// field looks up key in a response, first in the "data" envelope used by
// some servers, then at the top level.
func field(doc any, key string) (any, bool) {
	if doc == nil {
		return nil, false
	}
	for _, path := range []string{"$.data." + key, "$." + key} {
		v, err := jsonpath.Get(path, doc)
		if err == nil && v != nil {
			return v, true
		}
	}
	return nil, false
}

// object returns the "data" envelope if any, or the document itself.
func object(doc any) any {
	if v, err := jsonpath.Get("$.data", doc); err == nil {
		if _, ok := v.(map[string]any); ok {
			return v
		}
	}
	return doc
}

// decode converts a generic JSON value into out.
func decode(v any, out any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, out)
}
