// Package config loads the optional ledgerchat.yaml settings file.
package config

import (
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v2"
)

// Supported model providers.
const (
	ProviderGemini = "gemini"
	ProviderClaude = "claude"
)

// Supported store backends.
const (
	BackendXLSX   = "xlsx"
	BackendSQLite = "sqlite"
)

// DefaultPath is looked up relative to the working directory, matching
// where the ledger file lives.
const DefaultPath = "ledgerchat.yaml"

// Config holds everything the commands need to wire up a session.
type Config struct {
	// Provider selects the AI backend: "gemini" (default) or "claude".
	Provider string `yaml:"provider"`
	// Model overrides the provider's default model name.
	Model string `yaml:"model"`
	// AnthropicAPIKey overrides the ANTHROPIC_API_KEY environment
	// variable. The Gemini client reads its key from the environment
	// on its own.
	AnthropicAPIKey string `yaml:"anthropic_api_key"`

	// LedgerPath is the transaction table location.
	LedgerPath string `yaml:"ledger_path"`
	// StoreBackend selects how the ledger is persisted: "xlsx"
	// (default) or "sqlite".
	StoreBackend string `yaml:"store_backend"`
	// HistoryPath is the chat history database location.
	HistoryPath string `yaml:"history_path"`
}

// Default returns the zero-config setup: Gemini, an xlsx ledger next to
// the binary, and a local history database.
func Default() Config {
	return Config{
		Provider:     ProviderGemini,
		LedgerPath:   "transactions.xlsx",
		StoreBackend: BackendXLSX,
		HistoryPath:  "chat_history.db",
	}
}

// Load reads the YAML config at path. A missing file is not an error and
// yields Default(); blank fields fall back to their defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}

	if cfg.Provider == "" {
		cfg.Provider = ProviderGemini
	}
	if cfg.LedgerPath == "" {
		cfg.LedgerPath = "transactions.xlsx"
	}
	if cfg.StoreBackend == "" {
		cfg.StoreBackend = BackendXLSX
	}
	if cfg.HistoryPath == "" {
		cfg.HistoryPath = "chat_history.db"
	}

	switch cfg.Provider {
	case ProviderGemini, ProviderClaude:
	default:
		return cfg, fmt.Errorf("config: unknown provider %q", cfg.Provider)
	}
	switch cfg.StoreBackend {
	case BackendXLSX, BackendSQLite:
	default:
		return cfg, fmt.Errorf("config: unknown store backend %q", cfg.StoreBackend)
	}

	return cfg, nil
}

// ResolveAnthropicKey returns the configured key, falling back to the
// ANTHROPIC_API_KEY environment variable.
func (c Config) ResolveAnthropicKey() string {
	if c.AnthropicAPIKey != "" {
		return c.AnthropicAPIKey
	}
	return os.Getenv("ANTHROPIC_API_KEY")
}
