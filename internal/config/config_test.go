package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"CONFIG_FILE", "PROVIDER_URL", "PROVIDER_TOKEN", "POLL_INTERVAL", "DB_URL", "LISTEN_ADDR", "APP_ENV", "API_KEYS"} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("PROVIDER_TOKEN", "tok")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	want := Config{
		ProviderURL:   DefaultProviderURL,
		ProviderToken: "tok",
		PollInterval:  DefaultPollInterval,
		APIKeys:       map[string]string{"console-key-123": "console"},
		ListenAddr:    DefaultListenAddr,
		Env:           EnvDevelopment,
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
	if cfg.Production() {
		t.Error("expected development mode")
	}
}

func TestLoadRequiresToken(t *testing.T) {
	clearEnv(t)
	if _, err := Load(); err == nil {
		t.Fatal("expected error without PROVIDER_TOKEN")
	}
}

func TestLoadFileThenEnv(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "eventfeed.yaml")
	data := []byte("provider_url: https://example.test/v4\nprovider_token: from-file\npoll_interval: 30s\nenv: production\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("PROVIDER_TOKEN", "from-env")
	t.Setenv("API_KEYS", "alice:k1, bob:k2")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ProviderURL != "https://example.test/v4" {
		t.Errorf("unexpected provider url %q", cfg.ProviderURL)
	}
	if cfg.ProviderToken != "from-env" {
		t.Errorf("env should win over file, got %q", cfg.ProviderToken)
	}
	if cfg.PollInterval != 30*time.Second {
		t.Errorf("unexpected poll interval %s", cfg.PollInterval)
	}
	if !cfg.Production() {
		t.Error("expected production mode")
	}
	if diff := cmp.Diff(map[string]string{"k1": "alice", "k2": "bob"}, cfg.APIKeys); diff != "" {
		t.Errorf("api keys mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := map[string][2]string{
		"bad interval":  {"POLL_INTERVAL", "soon"},
		"tiny interval": {"POLL_INTERVAL", "10ms"},
		"bad env":       {"APP_ENV", "staging"},
		"bad url":       {"PROVIDER_URL", "not a url"},
		"bad keys":      {"API_KEYS", "alice"},
	}
	for name, kv := range tests {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("PROVIDER_TOKEN", "tok")
			t.Setenv(kv[0], kv[1])
			if _, err := Load(); err == nil {
				t.Errorf("expected error for %s=%q", kv[0], kv[1])
			}
		})
	}
}
