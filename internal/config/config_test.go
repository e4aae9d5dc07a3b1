package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("Server.Port = %q, want 8080", cfg.Server.Port)
	}
	if cfg.Luma.BaseURL != "https://public-api.lu.ma/public/v1" {
		t.Errorf("Luma.BaseURL = %q", cfg.Luma.BaseURL)
	}
	if cfg.Texel.MaxRetries != 3 {
		t.Errorf("Texel.MaxRetries = %d, want 3", cfg.Texel.MaxRetries)
	}
	if got := cfg.GetPublicURL(); got != "http://localhost:8080" {
		t.Errorf("GetPublicURL() = %q", got)
	}
}

func TestLoadConfigFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yamlBody := []byte(`
server:
  port: "9000"
  public_url: "https://media.example.com/"
luma:
  api_key: "from-file"
texel:
  max_retries: 5
`)
	if err := os.WriteFile(path, yamlBody, 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("LUMA_API_KEY", "from-env")
	t.Setenv("SERVER_CORS_ORIGINS", "https://a.app, https://b.app")
	t.Setenv("METRICS_ENABLED", "false")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Server.Port != "9000" {
		t.Errorf("Server.Port = %q, want 9000", cfg.Server.Port)
	}
	if cfg.Luma.APIKey != "from-env" {
		t.Errorf("Luma.APIKey = %q, env should win over file", cfg.Luma.APIKey)
	}
	if cfg.Texel.MaxRetries != 5 {
		t.Errorf("Texel.MaxRetries = %d, want 5", cfg.Texel.MaxRetries)
	}
	if want := []string{"https://a.app", "https://b.app"}; !reflect.DeepEqual(cfg.Server.CORSOrigins, want) {
		t.Errorf("Server.CORSOrigins = %v, want %v", cfg.Server.CORSOrigins, want)
	}
	if cfg.Metrics.Enabled {
		t.Error("Metrics.Enabled should be false")
	}
	if got := cfg.GetPublicURL(); got != "https://media.example.com" {
		t.Errorf("GetPublicURL() = %q", got)
	}
}

func TestLoadConfigValidation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"auth without secret", map[string]string{"AUTH_ENABLED": "true"}},
		{"bad luma timeout", map[string]string{"LUMA_TIMEOUT": "soon"}},
		{"zero retries", map[string]string{"TEXEL_MAX_RETRIES": "0"}},
		{"bad int", map[string]string{"DB_MAX_OPEN_CONNS": "many"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := LoadConfig(filepath.Join(t.TempDir(), "none.yaml")); err == nil {
				t.Fatal("LoadConfig() expected an error")
			}
		})
	}
}
