package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pos-manage/api/internal/kitchen"
)

// apiFetcher loads raw dispatch items from the API server. It implements
// kitchen.Fetcher so the display runs the same Board as the server.
type apiFetcher struct {
	baseURL string
	token   string
	client  *http.Client
}

func newAPIFetcher(baseURL, token string, timeout time.Duration) *apiFetcher {
	return &apiFetcher{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		client:  &http.Client{Timeout: timeout},
	}
}

type itemsResponse struct {
	BusinessDate string         `json:"business_date"`
	Items        []kitchen.Item `json:"items"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type dispatchResponse struct {
	Changed bool `json:"changed"`
}

func (f *apiFetcher) FetchDispatchItems(ctx context.Context, businessDate string) ([]kitchen.Item, error) {
	u := f.baseURL + "/kitchen/items"
	if businessDate != "" {
		u += "?date=" + url.QueryEscape(businessDate)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := f.do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch kitchen items: %w", err)
	}
	defer resp.Body.Close()

	var body itemsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode kitchen items: %w", err)
	}
	if body.Items == nil {
		body.Items = []kitchen.Item{}
	}
	return body.Items, nil
}

// Dispatch marks a line item as sent. Changed is false when another
// terminal dispatched it first.
func (f *apiFetcher) Dispatch(ctx context.Context, lineItemID uuid.UUID) (bool, error) {
	u := f.baseURL + "/kitchen/items/" + lineItemID.String() + "/dispatch"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, nil)
	if err != nil {
		return false, fmt.Errorf("build request: %w", err)
	}

	resp, err := f.do(req)
	if err != nil {
		return false, fmt.Errorf("dispatch %s: %w", lineItemID, err)
	}
	defer resp.Body.Close()

	var body dispatchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return false, fmt.Errorf("decode dispatch response: %w", err)
	}
	return body.Changed, nil
}

// do sends req with auth headers and turns any non-200 status into an
// error carrying the server's message. The caller closes the body.
func (f *apiFetcher) do(req *http.Request) (*http.Response, error) {
	req.Header.Set("Accept", "application/json")
	if f.token != "" {
		req.Header.Set("Authorization", "Bearer "+f.token)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusOK {
		return resp, nil
	}
	defer resp.Body.Close()

	var e errorResponse
	if json.NewDecoder(resp.Body).Decode(&e) == nil && e.Error != "" {
		return nil, fmt.Errorf("%s: %s", resp.Status, e.Error)
	}
	return nil, fmt.Errorf("%s", resp.Status)
}
