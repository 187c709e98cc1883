package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.GenAI.Model != "gemini-1.5-flash" {
		t.Errorf("GenAI.Model = %q", cfg.GenAI.Model)
	}
	if cfg.Storage.Type != "memory" {
		t.Errorf("Storage.Type = %q, want memory", cfg.Storage.Type)
	}
}

func TestLoad_FileAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  port: 9090
genai:
  api_key: file-key
  model: gemini-1.5-pro
storage:
  type: sqlite
  sqlite:
    path: /tmp/assist.db
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("ENABHA_GENAI__API_KEY", "env-key")

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.GenAI.APIKey != "env-key" {
		t.Errorf("GenAI.APIKey = %q, want env override", cfg.GenAI.APIKey)
	}
	if cfg.GenAI.Model != "gemini-1.5-pro" {
		t.Errorf("GenAI.Model = %q", cfg.GenAI.Model)
	}
	if cfg.Storage.Type != "sqlite" || cfg.Storage.SQLite.Path != "/tmp/assist.db" {
		t.Errorf("Storage = %+v", cfg.Storage)
	}
}

func TestLoad_EnvVarSubstitution(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("genai:\n  api_key: ${ASSIST_TEST_KEY}\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("ASSIST_TEST_KEY", "substituted")

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if cfg.GenAI.APIKey != "substituted" {
		t.Errorf("GenAI.APIKey = %q, want substituted", cfg.GenAI.APIKey)
	}
}
