package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/rustyeddy/tradedesk/ledger"
	"github.com/rustyeddy/tradedesk/pkg/logger"
	"github.com/rustyeddy/tradedesk/wallet"
)

// Config represents the complete session configuration.
type Config struct {
	Session SessionConfig `json:"session" yaml:"session"`
	Wallet  WalletConfig  `json:"wallet" yaml:"wallet"`
	Engine  EngineConfig  `json:"engine" yaml:"engine"`
	Journal JournalConfig `json:"journal" yaml:"journal"`
	Log     logger.Config `json:"log" yaml:"log"`
}

// SessionConfig lists the selections offered to the operator and bounds
// the recent-trade view. The company and strategy lists seed the UI; the
// engine may still report labels outside them.
type SessionConfig struct {
	Companies   []string `json:"companies" yaml:"companies"`
	Strategies  []string `json:"strategies" yaml:"strategies"`
	HistorySize int      `json:"history_size" yaml:"history_size"`
}

// WalletConfig is the injected currency table: every supported currency
// with its initial balance and fixed rate relative to the base currency.
type WalletConfig struct {
	Base       string                   `json:"base" yaml:"base"`
	Currencies map[string]wallet.Option `json:"currencies" yaml:"currencies"`
}

// EngineConfig locates the strategy engine and, optionally, enables the
// reconnect supervisor. Delays are duration strings ("5s", "1m").
type EngineConfig struct {
	Address        string `json:"address" yaml:"address"`
	Reconnect      bool   `json:"reconnect" yaml:"reconnect"`
	ReconnectDelay string `json:"reconnect_delay,omitempty" yaml:"reconnect_delay,omitempty"`
	MaxDelay       string `json:"max_delay,omitempty" yaml:"max_delay,omitempty"`
}

// ParseReconnectDelay returns the initial redial delay.
func (e EngineConfig) ParseReconnectDelay() (time.Duration, error) {
	if e.ReconnectDelay == "" {
		return 2 * time.Second, nil
	}
	return time.ParseDuration(e.ReconnectDelay)
}

// ParseMaxDelay returns the redial backoff ceiling.
func (e EngineConfig) ParseMaxDelay() (time.Duration, error) {
	if e.MaxDelay == "" {
		return time.Minute, nil
	}
	return time.ParseDuration(e.MaxDelay)
}

// JournalConfig selects the queryable journal backend. The plain-text
// trade log is always written; Type adds "csv", "sqlite", or "none".
type JournalConfig struct {
	Type       string `json:"type" yaml:"type"`
	TradesLog  string `json:"trades_log" yaml:"trades_log"`
	TradesFile string `json:"trades_file,omitempty" yaml:"trades_file,omitempty"`
	DBPath     string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// LoadFromFile loads configuration from a file (JSON or YAML; YAML is
// tried first).
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}

	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension).
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Session.HistorySize <= 0 {
		return fmt.Errorf("session.history_size must be positive")
	}
	if c.Wallet.Base == "" {
		return fmt.Errorf("wallet.base is required")
	}
	base, ok := c.Wallet.Currencies[c.Wallet.Base]
	if !ok {
		return fmt.Errorf("wallet.base %q missing from wallet.currencies", c.Wallet.Base)
	}
	if base.Rate != 1.0 {
		return fmt.Errorf("wallet.base %q must have rate 1.0", c.Wallet.Base)
	}
	for code, opt := range c.Wallet.Currencies {
		if opt.Rate <= 0 {
			return fmt.Errorf("wallet.currencies.%s: rate must be positive", code)
		}
	}
	if c.Engine.Address == "" {
		return fmt.Errorf("engine.address is required")
	}
	if _, err := c.Engine.ParseReconnectDelay(); err != nil {
		return fmt.Errorf("engine.reconnect_delay: %w", err)
	}
	if _, err := c.Engine.ParseMaxDelay(); err != nil {
		return fmt.Errorf("engine.max_delay: %w", err)
	}
	switch c.Journal.Type {
	case "none":
	case "csv":
		if c.Journal.TradesFile == "" {
			return fmt.Errorf("journal.trades_file required for CSV type")
		}
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal.db_path required for SQLite type")
		}
	default:
		return fmt.Errorf("journal.type must be 'none', 'csv' or 'sqlite'")
	}
	if c.Journal.TradesLog == "" {
		return fmt.Errorf("journal.trades_log is required")
	}
	return nil
}

// Default returns a configuration with sensible defaults: the stock
// selection lists, the USD/EUR/BTC currency table, and the engine on its
// conventional local port.
func Default() *Config {
	return &Config{
		Session: SessionConfig{
			Companies:   []string{"AAPL", "MSFT", "TSLA"},
			Strategies:  []string{"EMA", "Moving Average"},
			HistorySize: ledger.DefaultCapacity,
		},
		Wallet: WalletConfig{
			Base: "USD",
			Currencies: map[string]wallet.Option{
				"USD": {Balance: 10000.15, Rate: 1.0},
				"EUR": {Balance: 8000.00, Rate: 1.1},
				"BTC": {Balance: 0.5, Rate: 45000.0},
			},
		},
		Engine: EngineConfig{
			Address:        "localhost:12346",
			Reconnect:      false,
			ReconnectDelay: "2s",
			MaxDelay:       "1m",
		},
		Journal: JournalConfig{
			Type:      "sqlite",
			TradesLog: "./trades.log",
			DBPath:    "./trades.db",
		},
		Log: logger.Config{
			Level: "info",
		},
	}
}
