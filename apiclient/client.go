// Package apiclient is the typed client of the remote DAAssist REST API.
// Every exported method issues exactly one HTTP request and returns the
// decoded body. Errors are not translated: transport failures come back as
// produced by net/http, non-2xx responses as *APIError.
package apiclient

import (
	"bytes"
	"context"
	"daassist-web/models"
	"daassist-web/utils/logger"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-querystring/query"
)

// TokenStorage is the key-value storage holding the session tokens
type TokenStorage interface {
	GetItem(ctx context.Context, key string) (string, bool, error)
	SetItem(ctx context.Context, key, value string) error
	RemoveItem(ctx context.Context, key string) error
}

// maxResponseSize caps how much of a response body is read
const maxResponseSize = 16 << 20

// Client talks to the DAAssist API on behalf of one browser session
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenStorage
	logger     logger.Logger

	Auth          *AuthAPI
	Clients       *ClientsAPI
	Tickets       *TicketsAPI
	Interventions *InterventionsAPI
	Technicians   *TechniciansAPI
	Lookup        *LookupAPI
	Dashboard     *DashboardAPI
}

// NewHTTPClient builds the transport shared by every session
func NewHTTPClient(cfg *models.Config) *http.Client {
	return &http.Client{Timeout: cfg.APITimeout}
}

// NewClient creates a client that signs requests with the tokens found in storage
func NewClient(baseURL string, httpClient *http.Client, tokens TokenStorage, log logger.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		tokens:     tokens,
		logger:     log,
	}
	c.Auth = &AuthAPI{client: c}
	c.Clients = &ClientsAPI{client: c}
	c.Tickets = &TicketsAPI{client: c}
	c.Interventions = &InterventionsAPI{client: c}
	c.Technicians = &TechniciansAPI{client: c}
	c.Lookup = &LookupAPI{client: c}
	c.Dashboard = &DashboardAPI{client: c}
	return c
}

// do sends a JSON request. params is encoded with go-querystring, body as
// JSON (nil for none); a 2xx response body is decoded into out when out is
// not nil.
func (c *Client) do(ctx context.Context, method, path string, params, body, out interface{}) error {
	endpoint, err := c.url(path, params)
	if err != nil {
		return err
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.send(req, out)
}

// postForm sends an application/x-www-form-urlencoded POST
func (c *Client) postForm(ctx context.Context, path string, form url.Values, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return c.send(req, out)
}

func (c *Client) send(req *http.Request, out interface{}) error {
	if err := c.sign(req); err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := newAPIError(resp.StatusCode, data)
		c.logger.WithFields(logger.Fields{
			"method": req.Method,
			"path":   req.URL.Path,
			"status": resp.StatusCode,
		}).Debugf("API request failed: %s", apiErr.Detail)
		return apiErr
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode %s %s response: %w", req.Method, req.URL.Path, err)
	}
	return nil
}

// sign attaches the bearer token currently held in storage
func (c *Client) sign(req *http.Request) error {
	if c.tokens == nil {
		return nil
	}
	token, ok, err := c.tokens.GetItem(req.Context(), models.AccessTokenKey)
	if err != nil {
		return fmt.Errorf("failed to read access token: %w", err)
	}
	if ok && token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return nil
}

func (c *Client) url(path string, params interface{}) (string, error) {
	endpoint := c.baseURL + path
	if params == nil {
		return endpoint, nil
	}

	values, err := query.Values(params)
	if err != nil {
		return "", fmt.Errorf("failed to encode query: %w", err)
	}
	if encoded := values.Encode(); encoded != "" {
		endpoint += "?" + encoded
	}
	return endpoint, nil
}

func idPath(format string, ids ...int64) string {
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return fmt.Sprintf(format, args...)
}
