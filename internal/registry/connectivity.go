package registry

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/arrdeck/arrdeck/pkg/httpclient"
)

// TestResult is the outcome of a single connectivity check.
type TestResult struct {
	OK      bool
	Message string
}

// Tester issues connectivity checks against stored connections.
type Tester struct {
	http *httpclient.Client
}

// NewTester creates a connectivity tester.
func NewTester(timeout time.Duration, skipTLS bool) *Tester {
	cfg := httpclient.DefaultConfig()
	if timeout > 0 {
		cfg.Timeout = timeout
	}
	cfg.SkipTLSVerify = skipTLS

	return &Tester{http: httpclient.New(cfg)}
}

// Test issues one GET against the connection's status endpoint. Any 2xx
// response is a success; everything else, including transport faults,
// is a failure with a descriptive message.
func (t *Tester) Test(ctx context.Context, conn ServerConnection) TestResult {
	statusURL := strings.TrimRight(conn.URL, "/") + conn.Kind.StatusPath()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, statusURL, nil)
	if err != nil {
		return TestResult{Message: fmt.Sprintf("invalid URL: %v", err)}
	}
	req.Header.Set("X-Api-Key", conn.APIKey)

	resp, err := t.http.Do(ctx, req)
	if err != nil {
		return TestResult{Message: fmt.Sprintf("connection failed: %v", err)}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return TestResult{Message: fmt.Sprintf("server responded %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))}
	}

	return TestResult{OK: true, Message: fmt.Sprintf("connected to %s", conn.Name)}
}

// Close releases idle connections held by the tester.
func (t *Tester) Close() {
	t.http.Close()
}
