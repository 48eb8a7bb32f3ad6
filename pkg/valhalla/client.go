package valhalla

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"headway/internal/domain"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// BaseURL is the engine root without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

type Location struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// RouteRequest is the body of a /route call
type RouteRequest struct {
	Locations  []Location `json:"locations"`
	Costing    string     `json:"costing"`
	Alternates int        `json:"alternates"`
	Units      string     `json:"units,omitempty"`
}

type routeResponse struct {
	Trip       *domain.Trip `json:"trip"`
	Alternates []struct {
		Trip *domain.Trip `json:"trip"`
	} `json:"alternates"`
}

// APIError is returned when the routing engine answers with a non-200 status
type APIError struct {
	StatusCode int
	Code       int    `json:"error_code"`
	Message    string `json:"error"`
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("unexpected status code: %d", e.StatusCode)
	}
	return fmt.Sprintf("routing engine error %d (status %d): %s", e.Code, e.StatusCode, e.Message)
}

// Route asks the routing engine for a trip and its alternates. The
// primary trip comes first; missing trips are skipped.
func (c *Client) Route(ctx context.Context, routeReq RouteRequest) ([]domain.Trip, error) {
	if len(routeReq.Locations) < 2 {
		return nil, fmt.Errorf("route request needs at least 2 locations, got %d", len(routeReq.Locations))
	}

	body, err := json.Marshal(routeReq)
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	params := url.Values{}
	params.Set("json", string(body))
	reqURL := fmt.Sprintf("%s/route?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, decodeAPIError(resp)
	}

	var routeResp routeResponse
	if err := json.NewDecoder(resp.Body).Decode(&routeResp); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	trips := make([]domain.Trip, 0, 1+len(routeResp.Alternates))
	if routeResp.Trip != nil {
		trips = append(trips, *routeResp.Trip)
	}
	for _, alt := range routeResp.Alternates {
		if alt.Trip != nil {
			trips = append(trips, *alt.Trip)
		}
	}
	return trips, nil
}

// Status checks that the routing engine is up
func (c *Client) Status(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/status", nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return &APIError{StatusCode: resp.StatusCode}
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{}
	data, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err == nil && len(data) > 0 {
		_ = json.Unmarshal(data, apiErr)
	}
	apiErr.StatusCode = resp.StatusCode
	return apiErr
}
