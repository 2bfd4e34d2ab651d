package registry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTesterSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v3/system/status", r.URL.Path)
		assert.Equal(t, "abc", r.Header.Get("X-Api-Key"))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"appName":"Sonarr"}`))
	}))
	defer server.Close()

	tester := NewTester(5*time.Second, false)
	defer tester.Close()

	result := tester.Test(context.Background(), ServerConnection{
		Name:   "Home Sonarr",
		URL:    server.URL,
		APIKey: "abc",
		Kind:   KindSonarr,
	})

	assert.True(t, result.OK)
	assert.NotEmpty(t, result.Message)
}

func TestTesterTrailingSlash(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v3/system/status", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	tester := NewTester(5*time.Second, false)
	defer tester.Close()

	result := tester.Test(context.Background(), ServerConnection{
		Name:   "Radarr",
		URL:    server.URL + "/",
		APIKey: "k",
		Kind:   KindRadarr,
	})

	assert.True(t, result.OK)
}

func TestTesterNon2xx(t *testing.T) {
	tests := []struct {
		name   string
		status int
	}{
		{"unauthorized", http.StatusUnauthorized},
		{"not found", http.StatusNotFound},
		{"server error", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			tester := NewTester(5*time.Second, false)
			defer tester.Close()

			result := tester.Test(context.Background(), ServerConnection{
				Name:   "bad",
				URL:    server.URL,
				APIKey: "k",
				Kind:   KindSonarr,
			})

			assert.False(t, result.OK)
			assert.NotEmpty(t, result.Message)
		})
	}
}

func TestTesterTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse connections

	tester := NewTester(time.Second, false)
	defer tester.Close()

	result := tester.Test(context.Background(), ServerConnection{
		Name:   "down",
		URL:    server.URL,
		APIKey: "k",
		Kind:   KindSonarr,
	})

	assert.False(t, result.OK)
	assert.NotEmpty(t, result.Message)
}
