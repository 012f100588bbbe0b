// Package config loads application configuration from file and environment
// and initializes the global logger.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server" mapstructure:"server"`
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
	Mapbox     MapboxConfig     `yaml:"mapbox" mapstructure:"mapbox"`
	Google     GoogleConfig     `yaml:"google" mapstructure:"google"`
	Foursquare FoursquareConfig `yaml:"foursquare" mapstructure:"foursquare"`
	Catalog    CatalogConfig    `yaml:"catalog" mapstructure:"catalog"`
	Rent       RentConfig       `yaml:"rent" mapstructure:"rent"`
	Suggest    SuggestConfig    `yaml:"suggest" mapstructure:"suggest"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// MapboxConfig holds Mapbox geocoding credentials. An empty token switches the
// geocode and autocomplete providers to the Nominatim fallback.
type MapboxConfig struct {
	Token string `yaml:"token" mapstructure:"token"`
}

// GoogleConfig holds Google Maps credentials. An empty key switches travel
// times to the haversine heuristic.
type GoogleConfig struct {
	MapsAPIKey string `yaml:"maps_api_key" mapstructure:"maps_api_key"`
}

// FoursquareConfig holds Foursquare Places credentials. An empty key switches
// lifestyle counts to a deterministic mock.
type FoursquareConfig struct {
	APIKey string `yaml:"api_key" mapstructure:"api_key"`
}

// CatalogConfig configures the candidate area catalog. An empty path uses the
// compiled-in catalog.
type CatalogConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// RentConfig configures the rent dataset.
type RentConfig struct {
	CSVPath string `yaml:"csv_path" mapstructure:"csv_path"`
}

// SuggestConfig configures the suggestion pipeline.
type SuggestConfig struct {
	TopN                int `yaml:"top_n" mapstructure:"top_n"`
	MaxConcurrentAreas  int `yaml:"max_concurrent_areas" mapstructure:"max_concurrent_areas"`
	ProviderTimeoutSecs int `yaml:"provider_timeout_secs" mapstructure:"provider_timeout_secs"`
	ResponseCacheTTLHrs int `yaml:"response_cache_ttl_hours" mapstructure:"response_cache_ttl_hours"`
	DistanceCacheTTLHrs int `yaml:"distance_cache_ttl_hours" mapstructure:"distance_cache_ttl_hours"`
	ProviderCacheTTLHrs int `yaml:"provider_cache_ttl_hours" mapstructure:"provider_cache_ttl_hours"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("NESTHUNT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("rent.csv_path", "data/vic_rent.csv")
	v.SetDefault("suggest.top_n", 5)
	v.SetDefault("suggest.max_concurrent_areas", 16)
	v.SetDefault("suggest.provider_timeout_secs", 10)
	v.SetDefault("suggest.response_cache_ttl_hours", 6)
	v.SetDefault("suggest.distance_cache_ttl_hours", 6)
	v.SetDefault("suggest.provider_cache_ttl_hours", 24)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
