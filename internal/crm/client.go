// Package crm wraps the external CRM's Contact and Lead resource API.
// Calls are plain sequential HTTP with no retry; a failed lead call is
// reported independently of the contact call and nothing is rolled back.
package crm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// HTTPDoer is the interface for executing HTTP requests.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client is the CRM resource API client.
type Client struct {
	baseURL    string
	apiKey     string
	apiSecret  string
	httpClient HTTPDoer
}

// NewClient creates a new CRM API client.
func NewClient(config Config, timeout time.Duration) *Client {
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:   config.BaseURL,
		apiKey:    config.APIKey,
		apiSecret: config.APISecret,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// SetHTTPClient sets a custom HTTP client (useful for testing).
func (c *Client) SetHTTPClient(client HTTPDoer) {
	c.httpClient = client
}

// doRequest performs an authenticated request to the CRM API.
func (c *Client) doRequest(ctx context.Context, method, endpoint string, body interface{}) ([]byte, error) {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	reqURL := fmt.Sprintf("%s%s", c.baseURL, endpoint)

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-KEY", c.apiKey)
	req.Header.Set("X-API-SECRET", c.apiSecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("CRM API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	return respBody, nil
}

// FindContactByEmail searches for an existing contact. Returns nil when
// no contact matches.
func (c *Client) FindContactByEmail(ctx context.Context, email string) (*Contact, error) {
	params := url.Values{}
	params.Set("email", email)
	endpoint := "/api/v1/contacts?" + params.Encode()

	respBody, err := c.doRequest(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	var response ContactSearchResponse
	if err := json.Unmarshal(respBody, &response); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if response.Metadata.Error {
		return nil, fmt.Errorf("CRM returned error: %s", response.Metadata.Message)
	}
	if len(response.Payload) == 0 {
		return nil, nil
	}
	return &response.Payload[0], nil
}

// CreateContact creates a new contact record.
func (c *Client) CreateContact(ctx context.Context, contact Contact) (*Contact, error) {
	respBody, err := c.doRequest(ctx, http.MethodPost, "/api/v1/contacts", contact)
	if err != nil {
		return nil, err
	}

	var response ContactCreateResponse
	if err := json.Unmarshal(respBody, &response); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if response.Metadata.Error {
		return nil, fmt.Errorf("CRM returned error: %s", response.Metadata.Message)
	}
	return &response.Payload, nil
}

// EnsureContact finds a contact by email and creates one only when absent.
// This pre-check is the only idempotency guard; there is no upsert API.
func (c *Client) EnsureContact(ctx context.Context, contact Contact) (*Contact, bool, error) {
	existing, err := c.FindContactByEmail(ctx, contact.Email)
	if err != nil {
		return nil, false, fmt.Errorf("contact lookup: %w", err)
	}
	if existing != nil {
		return existing, false, nil
	}
	created, err := c.CreateContact(ctx, contact)
	if err != nil {
		return nil, false, fmt.Errorf("contact create: %w", err)
	}
	return created, true, nil
}

// CreateLead creates a new lead record.
func (c *Client) CreateLead(ctx context.Context, lead Lead) (*Lead, error) {
	respBody, err := c.doRequest(ctx, http.MethodPost, "/api/v1/leads", lead)
	if err != nil {
		return nil, err
	}

	var response LeadCreateResponse
	if err := json.Unmarshal(respBody, &response); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if response.Metadata.Error {
		return nil, fmt.Errorf("CRM returned error: %s", response.Metadata.Message)
	}
	return &response.Payload, nil
}
