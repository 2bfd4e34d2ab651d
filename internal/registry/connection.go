package registry

import (
	"fmt"
	"time"
)

// Kind identifies which of the supported media managers a connection
// targets.
type Kind string

const (
	KindSonarr Kind = "sonarr"
	KindRadarr Kind = "radarr"
)

// Valid reports whether the kind is one of the supported managers.
func (k Kind) Valid() bool {
	return k == KindSonarr || k == KindRadarr
}

// DefaultPort returns the manager's conventional port.
func (k Kind) DefaultPort() int {
	switch k {
	case KindSonarr:
		return 8989
	case KindRadarr:
		return 7878
	default:
		return 0
	}
}

// StatusPath returns the path of the manager's status endpoint.
func (k Kind) StatusPath() string {
	return "/api/v3/system/status"
}

// ServerConnection is a user-entered record for one manager instance.
type ServerConnection struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	URL       string    `json:"url"`
	APIKey    string    `json:"apiKey"`
	Kind      Kind      `json:"kind"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
}

// Validate checks the fields a connection needs before it can be stored.
func (c ServerConnection) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("name must not be empty")
	}
	if c.URL == "" {
		return fmt.Errorf("url must not be empty")
	}
	if c.APIKey == "" {
		return fmt.Errorf("api_key must not be empty")
	}
	if !c.Kind.Valid() {
		return fmt.Errorf("kind must be one of: %s, %s", KindSonarr, KindRadarr)
	}
	return nil
}
