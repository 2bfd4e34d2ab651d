package config

import (
	"fmt"
	"strings"
	"time"
)

// Validate checks the configuration for errors and inconsistencies
func (c *Config) Validate() error {
	if err := c.validateGeneral(); err != nil {
		return fmt.Errorf("general config: %w", err)
	}

	if err := c.validateStorage(); err != nil {
		return fmt.Errorf("storage config: %w", err)
	}

	return nil
}

func (c *Config) validateGeneral() error {
	validLogLevels := []string{"debug", "info", "warn", "error"}
	if !isValidChoice(strings.ToLower(c.General.LogLevel), validLogLevels) {
		return fmt.Errorf("log_level must be one of: %s", strings.Join(validLogLevels, ", "))
	}

	validLogFormats := []string{"json", "text"}
	if !isValidChoice(strings.ToLower(c.General.LogFormat), validLogFormats) {
		return fmt.Errorf("log_format must be one of: %s", strings.Join(validLogFormats, ", "))
	}

	if c.General.RequestTimeout < 1*time.Second {
		return fmt.Errorf("request_timeout must be at least 1 second")
	}
	if c.General.RequestTimeout > 5*time.Minute {
		return fmt.Errorf("request_timeout must not exceed 5 minutes")
	}

	return nil
}

func (c *Config) validateStorage() error {
	if c.Storage.DataDir == "" {
		return fmt.Errorf("data_dir must not be empty")
	}
	if c.Storage.ServersFile == "" {
		return fmt.Errorf("servers_file must not be empty")
	}

	return nil
}

func isValidChoice(value string, valid []string) bool {
	for _, v := range valid {
		if value == v {
			return true
		}
	}
	return false
}
