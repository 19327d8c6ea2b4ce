package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	API     APIConfig     `mapstructure:"api"`
	View    ViewConfig    `mapstructure:"view"`
	Export  ExportConfig  `mapstructure:"export"`
	Log     LogConfig     `mapstructure:"log"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type APIConfig struct {
	BaseURL string `mapstructure:"base_url"`
	// Timeout of zero means no client-side timeout.
	Timeout        time.Duration `mapstructure:"timeout"`
	AddSettleDelay time.Duration `mapstructure:"add_settle_delay"`
}

type ViewConfig struct {
	LocalImagePrefix   string `mapstructure:"local_image_prefix"`
	ImageProxyPath     string `mapstructure:"image_proxy_path"`
	Placeholder        string `mapstructure:"placeholder"`
	SubItemPlaceholder string `mapstructure:"sub_item_placeholder"`
}

type ExportConfig struct {
	Dir    string `mapstructure:"dir"`
	Prefix string `mapstructure:"prefix"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 60*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("api.base_url", "http://localhost:5000")
	v.SetDefault("api.timeout", time.Duration(0))
	v.SetDefault("api.add_settle_delay", 500*time.Millisecond)

	v.SetDefault("view.local_image_prefix", "/static/images/products/")
	v.SetDefault("view.image_proxy_path", "/api/image-proxy")
	v.SetDefault("view.placeholder", "https://via.placeholder.com/80")
	v.SetDefault("view.sub_item_placeholder", "https://via.placeholder.com/120")

	v.SetDefault("export.dir", ".")
	v.SetDefault("export.prefix", "aliexpress_orders")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")
}

// LoadConfig loads configuration from parceltrack.yaml, .env and environment
// variables. An explicit path must exist; the searched locations are optional.
func LoadConfig(path string) (*Config, error) {
	// A missing .env is normal outside development.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("parceltrack")
		v.SetConfigType("yaml")
		v.AddConfigPath("./")
		v.AddConfigPath("./deploy/")
		v.AddConfigPath("$HOME/.parceltrack/")
		v.AddConfigPath("/etc/parceltrack/")
	}

	// Enable environment variable override with PARCELTRACK_ prefix
	v.SetEnvPrefix("PARCELTRACK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.API.BaseURL) == "" {
		return errors.New("api.base_url must not be empty")
	}
	if c.API.Timeout < 0 {
		return fmt.Errorf("api.timeout must not be negative: %s", c.API.Timeout)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("unsupported log format: %s", c.Log.Format)
	}
	return nil
}
