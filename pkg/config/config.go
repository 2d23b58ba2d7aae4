package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Address         string        `yaml:"address"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`

	Auth struct {
		// TokenSecret verifies the HMAC signature of client ID tokens.
		TokenSecret string `yaml:"token_secret"`
		// SessionTTL bounds the server-side session lifetime.
		SessionTTL time.Duration `yaml:"session_ttl"`
		// TokenCookieTTL is the max-age of the id_token refresh cookie.
		TokenCookieTTL time.Duration `yaml:"token_cookie_ttl"`
		SecureCookies  bool          `yaml:"secure_cookies"`
	} `yaml:"auth"`

	Redis struct {
		Enabled  bool   `yaml:"enabled"`
		Address  string `yaml:"address"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		PoolSize int    `yaml:"pool_size"`
	} `yaml:"redis"`

	Assets struct {
		Enabled   bool          `yaml:"enabled"`
		UploadURL string        `yaml:"upload_url"`
		APIKey    string        `yaml:"api_key"`
		Timeout   time.Duration `yaml:"timeout"`
	} `yaml:"assets"`

	Monitoring struct {
		PrometheusEnabled bool `yaml:"prometheus_enabled"`
	} `yaml:"monitoring"`

	Tracing struct {
		Enabled     bool    `yaml:"enabled"`
		JaegerURL   string  `yaml:"jaeger_url"`
		Environment string  `yaml:"environment"`
		SampleRate  float64 `yaml:"sample_rate"`
	} `yaml:"tracing"`

	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"logging"`

	RateLimiting struct {
		Enabled           bool    `yaml:"enabled"`
		RequestsPerSecond float64 `yaml:"requests_per_second"`
		Burst             int     `yaml:"burst"`
		MaxConcurrent     int     `yaml:"max_concurrent"`
	} `yaml:"rate_limiting"`
}

// Validate checks that configuration values are within acceptable ranges.
func (c *Config) Validate() error {
	if c.Server.Address == "" {
		return fmt.Errorf("server.address must not be empty")
	}
	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("server.read_timeout must be > 0")
	}
	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server.write_timeout must be > 0")
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("server.shutdown_timeout must be > 0")
	}

	if c.Auth.TokenSecret == "" {
		return fmt.Errorf("auth.token_secret must not be empty")
	}
	if c.Auth.SessionTTL <= 0 {
		return fmt.Errorf("auth.session_ttl must be > 0")
	}
	if c.Auth.TokenCookieTTL <= 0 {
		return fmt.Errorf("auth.token_cookie_ttl must be > 0")
	}

	if c.Redis.Enabled {
		if c.Redis.Address == "" {
			return fmt.Errorf("redis.address must not be empty when redis.enabled=true")
		}
		if c.Redis.PoolSize <= 0 {
			return fmt.Errorf("redis.pool_size must be > 0 when redis.enabled=true")
		}
	}

	if c.Assets.Enabled {
		if c.Assets.UploadURL == "" {
			return fmt.Errorf("assets.upload_url must not be empty when assets.enabled=true")
		}
		if c.Assets.Timeout <= 0 {
			return fmt.Errorf("assets.timeout must be > 0 when assets.enabled=true")
		}
	}

	if c.Tracing.Enabled {
		if c.Tracing.JaegerURL == "" {
			return fmt.Errorf("tracing.jaeger_url must not be empty when tracing.enabled=true")
		}
		if c.Tracing.SampleRate < 0 || c.Tracing.SampleRate > 1 {
			return fmt.Errorf("tracing.sample_rate must be in [0, 1]")
		}
	}

	if c.Logging.Level == "" {
		return fmt.Errorf("logging.level must not be empty")
	}

	if c.RateLimiting.Enabled {
		if c.RateLimiting.RequestsPerSecond <= 0 {
			return fmt.Errorf("rate_limiting.requests_per_second must be > 0 when rate limiting is enabled")
		}
		if c.RateLimiting.Burst <= 0 {
			return fmt.Errorf("rate_limiting.burst must be > 0 when rate limiting is enabled")
		}
		if c.RateLimiting.MaxConcurrent < 0 {
			return fmt.Errorf("rate_limiting.max_concurrent must be >= 0 when rate limiting is enabled")
		}
	}

	return nil
}

// Load reads configuration from YAML file, applies defaults and env overrides.
func Load(configPath string) (*Config, error) {
	// If file does not exist, fall back to defaults
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg := DefaultConfig()
		cfg.applyEnvOverrides()
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config yaml: %w", err)
	}

	cfg.applyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// DefaultConfig returns configuration with sane defaults.
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Server.Address = ":8080"
	cfg.Server.ReadTimeout = 30 * time.Second
	cfg.Server.WriteTimeout = 30 * time.Second
	cfg.Server.ShutdownTimeout = 30 * time.Second

	cfg.Auth.TokenSecret = "change-me-in-production"
	cfg.Auth.SessionTTL = 24 * time.Hour
	cfg.Auth.TokenCookieTTL = time.Hour
	cfg.Auth.SecureCookies = true

	cfg.Redis.Enabled = false
	cfg.Redis.Address = "localhost:6379"
	cfg.Redis.DB = 0
	cfg.Redis.PoolSize = 10

	cfg.Assets.Enabled = false
	cfg.Assets.UploadURL = "http://localhost:9000/upload"
	cfg.Assets.Timeout = 10 * time.Second

	cfg.Monitoring.PrometheusEnabled = true

	cfg.Tracing.Enabled = false
	cfg.Tracing.JaegerURL = "http://localhost:14268/api/traces"
	cfg.Tracing.Environment = "development"
	cfg.Tracing.SampleRate = 1.0

	cfg.Logging.Level = "info"
	cfg.Logging.Format = "json"

	cfg.RateLimiting.Enabled = false
	cfg.RateLimiting.RequestsPerSecond = 50
	cfg.RateLimiting.Burst = 100
	cfg.RateLimiting.MaxConcurrent = 0

	return cfg
}

func (c *Config) applyEnvOverrides() {
	if addr := os.Getenv("STOCKROOM_SERVER_ADDRESS"); addr != "" {
		c.Server.Address = addr
	}
	if level := os.Getenv("STOCKROOM_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
	if secret := os.Getenv("STOCKROOM_TOKEN_SECRET"); secret != "" {
		c.Auth.TokenSecret = secret
	}
	if addr := os.Getenv("STOCKROOM_REDIS_ADDRESS"); addr != "" {
		c.Redis.Address = addr
		c.Redis.Enabled = true
	}
	if key := os.Getenv("STOCKROOM_ASSETS_API_KEY"); key != "" {
		c.Assets.APIKey = key
	}
}
