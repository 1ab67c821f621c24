// Package provider talks to the cloud provider's account events API.
package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/PratikDhanave/event-feed-service/internal/models"
)

// APIError is a non-2xx response from the provider.
type APIError struct {
	StatusCode int
	Reasons    []string
}

func (e *APIError) Error() string {
	if len(e.Reasons) == 0 {
		return fmt.Sprintf("provider: unexpected status %d", e.StatusCode)
	}
	return fmt.Sprintf("provider: status %d: %s", e.StatusCode, strings.Join(e.Reasons, "; "))
}

// Client is an authenticated provider API client.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewClient returns a Client for baseURL (e.g. https://api.linode.com/v4).
// A nil httpClient gets a client with a 10s timeout.
func NewClient(baseURL, token string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    httpClient,
	}
}

// FetchEvents returns the first page of events matching filter.
func (c *Client) FetchEvents(ctx context.Context, filter models.EventFilter) ([]models.Event, error) {
	header, err := filter.Header()
	if err != nil {
		return nil, fmt.Errorf("encode filter: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodGet, "/account/events")
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Filter", header)

	var page models.EventPage
	if err := c.do(req, &page); err != nil {
		return nil, err
	}
	if page.Data == nil {
		page.Data = []models.Event{}
	}
	return page.Data, nil
}

// MarkSeen acknowledges every event up to and including id.
func (c *Client) MarkSeen(ctx context.Context, id int64) error {
	req, err := c.newRequest(ctx, http.MethodPost, fmt.Sprintf("/account/events/%d/seen", id))
	if err != nil {
		return err
	}
	return c.do(req, nil)
}

func (c *Client) newRequest(ctx context.Context, method, path string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.New().String())
	return req, nil
}

// do sends req and decodes a 2xx body into out when out is non-nil.
func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", req.URL.Path, err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	var body struct {
		Errors []struct {
			Reason string `json:"reason"`
		} `json:"errors"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&body); err == nil {
		for _, e := range body.Errors {
			if e.Reason != "" {
				apiErr.Reasons = append(apiErr.Reasons, e.Reason)
			}
		}
	}
	return apiErr
}
