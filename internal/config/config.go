package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultProviderURL  = "https://api.linode.com/v4"
	DefaultPollInterval = 16 * time.Second
	DefaultListenAddr   = ":8080"
	EnvProduction       = "production"
	EnvDevelopment      = "development"
)

// Config contains runtime configuration required by the service.
type Config struct {
	ProviderURL   string            `yaml:"provider_url" validate:"required,url"`
	ProviderToken string            `yaml:"provider_token" validate:"required"`
	PollInterval  time.Duration     `yaml:"poll_interval" validate:"gte=1s"`
	DBURL         string            `yaml:"db_url"`
	APIKeys       map[string]string `yaml:"-"` // apiKey -> username
	ListenAddr    string            `yaml:"listen_addr" validate:"required"`
	Env           string            `yaml:"env" validate:"oneof=production development"`
}

// Production reports whether the service runs in production mode.
func (c Config) Production() bool {
	return c.Env == EnvProduction
}

// Load reads configuration in increasing order of precedence: defaults,
// the YAML file named by CONFIG_FILE, then the environment (a .env file in
// the working directory is loaded into the environment first).
//
// API_KEYS format: "user1:key1,user2:key2"
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Config{
		ProviderURL:  DefaultProviderURL,
		PollInterval: DefaultPollInterval,
		ListenAddr:   DefaultListenAddr,
		Env:          EnvDevelopment,
	}

	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	setString := func(key string, dst *string) {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			*dst = v
		}
	}
	setString("PROVIDER_URL", &cfg.ProviderURL)
	setString("PROVIDER_TOKEN", &cfg.ProviderToken)
	setString("DB_URL", &cfg.DBURL)
	setString("LISTEN_ADDR", &cfg.ListenAddr)
	setString("APP_ENV", &cfg.Env)

	if v := strings.TrimSpace(os.Getenv("POLL_INTERVAL")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("POLL_INTERVAL: %w", err)
		}
		cfg.PollInterval = d
	}

	keys, err := parseAPIKeys(os.Getenv("API_KEYS"))
	if err != nil {
		return err
	}
	cfg.APIKeys = keys
	return nil
}

func parseAPIKeys(raw string) (map[string]string, error) {
	apiKeys := map[string]string{}

	raw = strings.TrimSpace(raw)
	if raw != "" {
		pairs := strings.Split(raw, ",")
		for _, p := range pairs {
			p = strings.TrimSpace(p)
			if p == "" {
				continue
			}
			parts := strings.SplitN(p, ":", 2)
			if len(parts) != 2 {
				return nil, errors.New(`API_KEYS must be "user:key,user:key"`)
			}
			user := strings.TrimSpace(parts[0])
			key := strings.TrimSpace(parts[1])
			if user == "" || key == "" {
				return nil, errors.New(`API_KEYS must be "user:key,user:key"`)
			}
			apiKeys[key] = user
		}
	}

	// Local dev fallback so the service runs out-of-the-box.
	if len(apiKeys) == 0 {
		apiKeys["console-key-123"] = "console"
	}
	return apiKeys, nil
}
