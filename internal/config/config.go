package config

import "time"

// Config represents the complete application configuration
type Config struct {
	General GeneralConfig `mapstructure:"general"`
	Storage StorageConfig `mapstructure:"storage"`
}

// GeneralConfig contains global application settings
type GeneralConfig struct {
	LogLevel        string        `mapstructure:"log_level"`
	LogFormat       string        `mapstructure:"log_format"`
	SSLVerification bool          `mapstructure:"ssl_verification"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout"`
}

// StorageConfig locates the local preference store
type StorageConfig struct {
	DataDir     string `mapstructure:"data_dir"`
	ServersFile string `mapstructure:"servers_file"`
}
