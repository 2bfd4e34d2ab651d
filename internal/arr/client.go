package arr

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/arrdeck/arrdeck/pkg/httpclient"
)

// Client provides base functionality shared by the Sonarr and Radarr clients
type Client struct {
	name       string
	baseURL    string
	apiKey     string
	apiVersion string
	http       *httpclient.Client
	logger     *slog.Logger
}

// ClientConfig holds configuration for creating a Client
type ClientConfig struct {
	Name       string
	BaseURL    string
	APIKey     string
	APIVersion string // both Sonarr and Radarr use "v3"
	Timeout    time.Duration
	SkipTLS    bool
	Logger     *slog.Logger
}

// NewClient creates a new API client
func NewClient(cfg ClientConfig) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.APIVersion == "" {
		cfg.APIVersion = "v3"
	}

	httpCfg := httpclient.Config{
		Timeout:         cfg.Timeout,
		MaxIdleConns:    10,
		IdleConnTimeout: 90 * time.Second,
		SkipTLSVerify:   cfg.SkipTLS,
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		name:       cfg.Name,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		apiVersion: cfg.APIVersion,
		http:       httpclient.New(httpCfg),
		logger:     logger.With("service", cfg.Name),
	}
}

// GetSystemStatus retrieves the system status information
func (c *Client) GetSystemStatus(ctx context.Context) (*SystemStatus, error) {
	var status SystemStatus
	if err := c.get(ctx, "system/status", &status); err != nil {
		return nil, fmt.Errorf("get system status: %w", err)
	}

	c.logger.DebugContext(ctx, "retrieved system status",
		"app", status.AppName,
		"version", status.Version,
		"instance", status.InstanceName)

	return &status, nil
}

// GetHealth retrieves the current health check results
func (c *Client) GetHealth(ctx context.Context) ([]HealthCheck, error) {
	var checks []HealthCheck
	if err := c.get(ctx, "health", &checks); err != nil {
		return nil, fmt.Errorf("get health: %w", err)
	}

	return checks, nil
}

// GetDiskSpace retrieves per-mount disk space information
func (c *Client) GetDiskSpace(ctx context.Context) ([]DiskSpace, error) {
	var disks []DiskSpace
	if err := c.get(ctx, "diskspace", &disks); err != nil {
		return nil, fmt.Errorf("get disk space: %w", err)
	}

	return disks, nil
}

// GetQueue retrieves a page of the download queue
func (c *Client) GetQueue(ctx context.Context, opts QueueOptions) (*QueuePage, error) {
	opts = opts.withDefaults()

	params := url.Values{}
	params.Set("page", fmt.Sprintf("%d", opts.Page))
	params.Set("pageSize", fmt.Sprintf("%d", opts.PageSize))

	var page QueuePage
	if err := c.get(ctx, "queue?"+params.Encode(), &page); err != nil {
		return nil, fmt.Errorf("get queue: %w", err)
	}

	c.logger.DebugContext(ctx, "retrieved queue",
		"total_items", page.TotalRecords,
		"page_size", page.PageSize)

	return &page, nil
}

// DeleteQueueItem removes an item from the queue
func (c *Client) DeleteQueueItem(ctx context.Context, id int, opts QueueDeleteOptions) error {
	path := fmt.Sprintf("queue/%d", id)

	params := url.Values{}
	if opts.RemoveFromClient {
		params.Set("removeFromClient", "true")
	}
	if opts.Blocklist {
		params.Set("blocklist", "true")
	}
	if len(params) > 0 {
		path = path + "?" + params.Encode()
	}

	if err := c.delete(ctx, path); err != nil {
		return fmt.Errorf("delete queue item %d: %w", id, err)
	}

	c.logger.DebugContext(ctx, "deleted queue item",
		"id", id,
		"remove_from_client", opts.RemoveFromClient,
		"blocklist", opts.Blocklist)

	return nil
}

// execCommand posts a command body and decodes the queued command echo
func (c *Client) execCommand(ctx context.Context, body any) (*CommandResponse, error) {
	var resp CommandResponse
	if err := c.request(ctx, http.MethodPost, c.apiPath("command"), body, &resp); err != nil {
		return nil, fmt.Errorf("execute command: %w", err)
	}

	c.logger.DebugContext(ctx, "command queued",
		"id", resp.ID,
		"name", resp.Name,
		"status", resp.Status)

	return &resp, nil
}

// apiPath builds an API path under the versioned prefix
func (c *Client) apiPath(path string) string {
	return fmt.Sprintf("/api/%s/%s", c.apiVersion, path)
}

// request executes an API request with authentication and fault classification
func (c *Client) request(ctx context.Context, method, path string, body, result any) error {
	fullURL := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		bodyReader = strings.NewReader(string(jsonData))
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, bodyReader)
	if err != nil {
		return transportFault(err)
	}

	req.Header.Set("X-Api-Key", c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.DebugContext(ctx, "API request",
		"method", method,
		"url", fullURL)

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return transportFault(err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		c.logger.ErrorContext(ctx, "API error response",
			"status", resp.StatusCode,
			"body", string(bodyBytes))
		return statusFault(resp.StatusCode, string(bodyBytes))
	}

	// DELETE responses carry no body worth decoding
	if result == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return decodeFault(err)
	}

	return nil
}

// Close closes the underlying HTTP client connections
func (c *Client) Close() {
	c.http.Close()
}

// get is a convenience method for GET requests under the API prefix
func (c *Client) get(ctx context.Context, path string, result any) error {
	return c.request(ctx, http.MethodGet, c.apiPath(path), nil, result)
}

// post is a convenience method for POST requests under the API prefix
func (c *Client) post(ctx context.Context, path string, body, result any) error {
	return c.request(ctx, http.MethodPost, c.apiPath(path), body, result)
}

// put is a convenience method for PUT requests under the API prefix
func (c *Client) put(ctx context.Context, path string, body, result any) error {
	return c.request(ctx, http.MethodPut, c.apiPath(path), body, result)
}

// delete is a convenience method for DELETE requests under the API prefix
func (c *Client) delete(ctx context.Context, path string) error {
	return c.request(ctx, http.MethodDelete, c.apiPath(path), nil, nil)
}
