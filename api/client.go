package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client is a thin HTTP client for the experiment registry API, used by the
// expctl command line tool.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the server at baseURL
// (e.g. http://127.0.0.1:8080).
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &http.Client{Timeout: 120 * time.Second},
	}
}

// CreateExperiment submits a new experiment and returns its assigned ID.
func (c *Client) CreateExperiment(ctx context.Context, req *CreateExperimentRequest) (string, error) {
	var resp CreateExperimentResponse
	if err := c.do(ctx, http.MethodPost, "/api/experiments", req, &resp); err != nil {
		return "", err
	}
	return resp.ID, nil
}

// ListExperiments fetches all decodable experiments, newest first.
func (c *Client) ListExperiments(ctx context.Context) ([]ExperimentResponse, error) {
	var resp ListExperimentsResponse
	if err := c.do(ctx, http.MethodGet, "/api/experiments", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Experiments, nil
}

// GetExperiment fetches a single experiment by ID.
func (c *Client) GetExperiment(ctx context.Context, id string) (*ExperimentResponse, error) {
	var resp ExperimentResponse
	if err := c.do(ctx, http.MethodGet, "/api/experiments/"+id, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// AnalyzeExperiment marks the experiment as analyzed.
func (c *Client) AnalyzeExperiment(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPost, "/api/experiments/"+id+"/analyze", nil, nil)
}

// ArchiveExperiment marks the experiment as archived.
func (c *Client) ArchiveExperiment(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPost, "/api/experiments/"+id+"/archive", nil, nil)
}

// TxStatus fetches the transaction notifier state.
func (c *Client) TxStatus(ctx context.Context) (*TxStatusResponse, error) {
	var resp TxStatusResponse
	if err := c.do(ctx, http.MethodGet, "/api/tx-status", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// StoreAvailability probes the backing store.
func (c *Client) StoreAvailability(ctx context.Context) (*AvailabilityResponse, error) {
	var resp AvailabilityResponse
	if err := c.do(ctx, http.MethodGet, "/api/store/availability", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) do(ctx context.Context, method, path string, reqBody, respBody any) error {
	var body io.Reader
	if reqBody != nil {
		data, err := json.Marshal(reqBody)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Error != "" {
			return fmt.Errorf("server returned %d: %s", resp.StatusCode, apiErr.Error)
		}
		return fmt.Errorf("server returned %d", resp.StatusCode)
	}

	if respBody != nil {
		if err := json.NewDecoder(resp.Body).Decode(respBody); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}
