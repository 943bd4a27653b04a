// Package config provides configuration loading and validation.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Networks  NetworksConfig  `mapstructure:"networks"`
	Windows   WindowsConfig   `mapstructure:"windows"`
	Pricing   PricingConfig   `mapstructure:"pricing"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// AppConfig holds general application settings.
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
	LogLevel    string `mapstructure:"log_level"`
	DataDir     string `mapstructure:"data_dir"` // persisted caches live here
}

// NetworkConfig describes one network's GraphQL endpoint pair.
type NetworkConfig struct {
	ID          string `mapstructure:"id"`
	DisplayName string `mapstructure:"display_name"`
	ArchiveURL  string `mapstructure:"archive_url"`
	DaemonURL   string `mapstructure:"daemon_url"`
	Testnet     bool   `mapstructure:"testnet"`
}

// NetworksConfig holds the static network table and the startup default.
type NetworksConfig struct {
	Default  string          `mapstructure:"default"`
	Profiles []NetworkConfig `mapstructure:"profiles"`

	// ArchiveOverride replaces every profile's archive endpoint when set,
	// e.g. to point at a self-hosted archive node.
	ArchiveOverride string `mapstructure:"archive_override"`
}

// WindowsConfig bounds every block-window scan. These directly bound upstream
// cost and accuracy, so they are configuration rather than call-site constants.
type WindowsConfig struct {
	HistoryBlocks      int `mapstructure:"history_blocks"`       // account activity scan
	SearchBlocks       int `mapstructure:"search_blocks"`        // tx hash archive fallback
	AnalyticsMaxBlocks int `mapstructure:"analytics_max_blocks"` // hard cap per analyze call
	DiscoveryBlocks    int `mapstructure:"discovery_blocks"`     // zkapp discovery scan
	TopZkApps          int `mapstructure:"top_zkapps"`           // discovery result truncation
}

// PricingConfig holds price oracle and cache settings.
type PricingConfig struct {
	OracleURL      string        `mapstructure:"oracle_url"`
	CoinID         string        `mapstructure:"coin_id"`
	CurrentTTL     time.Duration `mapstructure:"current_ttl"`
	HistoricalCap  int           `mapstructure:"historical_cap"`
	RequestsPerMin int           `mapstructure:"requests_per_min"`
}

// TelemetryConfig holds observability configuration.
type TelemetryConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	ServiceName    string `mapstructure:"service_name"`
	OTLPEndpoint   string `mapstructure:"otlp_endpoint"`
	PrometheusPort int    `mapstructure:"prometheus_port"`
	HealthPort     int    `mapstructure:"health_port"`
}

// Load loads configuration from file and environment variables.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables
	v.SetEnvPrefix("MINAVIEW")
	v.AutomaticEnv()

	bindEnvVars(v)
	setDefaults(v)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found is OK, use env vars
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func bindEnvVars(v *viper.Viper) {
	// App
	v.BindEnv("app.name", "MINAVIEW_APP_NAME", "SERVICE_NAME")
	v.BindEnv("app.environment", "MINAVIEW_ENVIRONMENT", "ENVIRONMENT")
	v.BindEnv("app.log_level", "MINAVIEW_LOG_LEVEL", "LOG_LEVEL")
	v.BindEnv("app.data_dir", "MINAVIEW_DATA_DIR")

	// Networks
	v.BindEnv("networks.default", "MINAVIEW_NETWORK")
	v.BindEnv("networks.archive_override", "MINAVIEW_ARCHIVE_OVERRIDE")

	// Pricing
	v.BindEnv("pricing.oracle_url", "MINAVIEW_ORACLE_URL")
	v.BindEnv("pricing.coin_id", "MINAVIEW_COIN_ID")

	// Telemetry
	v.BindEnv("telemetry.enabled", "MINAVIEW_OTEL_ENABLED", "OTEL_ENABLED")
	v.BindEnv("telemetry.service_name", "MINAVIEW_OTEL_SERVICE_NAME", "OTEL_SERVICE_NAME")
	v.BindEnv("telemetry.otlp_endpoint", "MINAVIEW_OTEL_ENDPOINT", "OTEL_EXPORTER_OTLP_ENDPOINT")
}

func setDefaults(v *viper.Viper) {
	// App defaults
	v.SetDefault("app.name", "minaview")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")
	v.SetDefault("app.data_dir", ".minaview")

	// Network defaults
	v.SetDefault("networks.default", "mainnet")
	v.SetDefault("networks.profiles", []map[string]any{
		{
			"id":           "mainnet",
			"display_name": "Mainnet",
			"archive_url":  "https://api.minascan.io/archive/mainnet/v1/graphql",
			"daemon_url":   "https://api.minascan.io/node/mainnet/v1/graphql",
			"testnet":      false,
		},
		{
			"id":           "devnet",
			"display_name": "Devnet",
			"archive_url":  "https://api.minascan.io/archive/devnet/v1/graphql",
			"daemon_url":   "https://api.minascan.io/node/devnet/v1/graphql",
			"testnet":      true,
		},
		{
			"id":           "testnet",
			"display_name": "Berkeley Testnet",
			"archive_url":  "https://berkeley.graphql.minaexplorer.com",
			"daemon_url":   "https://proxy.berkeley.minaexplorer.com/graphql",
			"testnet":      true,
		},
	})

	// Window defaults
	v.SetDefault("windows.history_blocks", 500)
	v.SetDefault("windows.search_blocks", 1000)
	v.SetDefault("windows.analytics_max_blocks", 2000)
	v.SetDefault("windows.discovery_blocks", 500)
	v.SetDefault("windows.top_zkapps", 50)

	// Pricing defaults
	v.SetDefault("pricing.oracle_url", "https://api.coingecko.com/api/v3")
	v.SetDefault("pricing.coin_id", "mina-protocol")
	v.SetDefault("pricing.current_ttl", "5m")
	v.SetDefault("pricing.historical_cap", 100)
	v.SetDefault("pricing.requests_per_min", 30)

	// Telemetry defaults
	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.service_name", "minaview")
	v.SetDefault("telemetry.prometheus_port", 9090)
	v.SetDefault("telemetry.health_port", 8081)
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if len(c.Networks.Profiles) == 0 {
		return fmt.Errorf("networks.profiles cannot be empty")
	}
	seen := make(map[string]bool, len(c.Networks.Profiles))
	for _, p := range c.Networks.Profiles {
		if p.ID == "" {
			return fmt.Errorf("network profile with empty id")
		}
		if seen[p.ID] {
			return fmt.Errorf("duplicate network profile: %s", p.ID)
		}
		seen[p.ID] = true
		if p.ArchiveURL == "" || p.DaemonURL == "" {
			return fmt.Errorf("network %s: archive_url and daemon_url are required", p.ID)
		}
	}
	if !seen[c.Networks.Default] {
		return fmt.Errorf("networks.default %q is not in the profile table", c.Networks.Default)
	}
	if c.Windows.SearchBlocks <= 0 || c.Windows.HistoryBlocks <= 0 ||
		c.Windows.AnalyticsMaxBlocks <= 0 || c.Windows.DiscoveryBlocks <= 0 {
		return fmt.Errorf("window sizes must be positive")
	}
	if c.Pricing.CoinID == "" {
		return fmt.Errorf("pricing.coin_id is required")
	}
	return nil
}
