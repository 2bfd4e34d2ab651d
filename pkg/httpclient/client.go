package httpclient

import (
	"context"
	"crypto/tls"
	"net/http"
	"time"
)

// Config holds HTTP client configuration
type Config struct {
	Timeout         time.Duration
	MaxIdleConns    int
	IdleConnTimeout time.Duration
	SkipTLSVerify   bool
}

// DefaultConfig returns sensible default configuration
func DefaultConfig() Config {
	return Config{
		Timeout:         30 * time.Second,
		MaxIdleConns:    10,
		IdleConnTimeout: 90 * time.Second,
		SkipTLSVerify:   false,
	}
}

// Client wraps http.Client with convenient methods
type Client struct {
	http    *http.Client
	timeout time.Duration
}

// New creates a new HTTP client with the given configuration
func New(cfg Config) *Client {
	transport := &http.Transport{
		MaxIdleConns:    cfg.MaxIdleConns,
		IdleConnTimeout: cfg.IdleConnTimeout,
		TLSClientConfig: &tls.Config{InsecureSkipVerify: cfg.SkipTLSVerify},
	}

	return &Client{
		http: &http.Client{
			Transport: transport,
			Timeout:   cfg.Timeout,
		},
		timeout: cfg.Timeout,
	}
}

// Do executes HTTP request with context
// Note: http.Client.Timeout handles the overall timeout including body read.
// We don't add context timeout here as it would cancel before body is fully read.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	req = req.WithContext(ctx)
	return c.http.Do(req)
}

// Close closes idle connections
func (c *Client) Close() {
	c.http.CloseIdleConnections()
}
