// Package config loads the trading floor configuration from YAML or
// JSON files and from the environment.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the complete trading floor configuration
type Config struct {
	Floor   FloorConfig   `json:"floor" yaml:"floor"`
	Account AccountConfig `json:"account" yaml:"account"`
	Market  MarketConfig  `json:"market" yaml:"market"`
	Store   StoreConfig   `json:"store" yaml:"store"`
	Notify  NotifyConfig  `json:"notify" yaml:"notify"`
}

// FloorConfig contains scheduler and agent parameters
type FloorConfig struct {
	IntervalMinutes int           `json:"interval_minutes" yaml:"interval_minutes"`
	RunWhenClosed   bool          `json:"run_when_closed" yaml:"run_when_closed"`
	TurnBudget      int           `json:"turn_budget" yaml:"turn_budget"`
	Agents          []AgentConfig `json:"agents" yaml:"agents"`
}

// AgentConfig names one agent and its starting strategy
type AgentConfig struct {
	Name     string `json:"name" yaml:"name"`
	Strategy string `json:"strategy" yaml:"strategy"`
}

// AccountConfig contains ledger initialization parameters
type AccountConfig struct {
	InitialBalance float64 `json:"initial_balance" yaml:"initial_balance"`
	Spread         float64 `json:"spread" yaml:"spread"`
}

// MarketConfig contains price service parameters
type MarketConfig struct {
	Tier     string   `json:"tier" yaml:"tier"`
	Universe []string `json:"universe" yaml:"universe"`
	Probe    string   `json:"probe" yaml:"probe"`
	Offline  bool     `json:"offline" yaml:"offline"`
}

// StoreConfig contains persistence parameters
type StoreConfig struct {
	Path string `json:"path" yaml:"path"`
}

// NotifyConfig contains push notification parameters
type NotifyConfig struct {
	WebhookURL string `json:"webhook_url,omitempty" yaml:"webhook_url,omitempty"`
}

// LoadFromFile loads configuration from a file (YAML or JSON)
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	// Try YAML first, fall back to JSON
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

// FromEnv overlays environment variables onto the configuration. A
// .env file in the working directory is loaded first if present.
func (c *Config) FromEnv() error {
	_ = godotenv.Load()

	if v := os.Getenv("RUN_EVERY_N_MINUTES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("RUN_EVERY_N_MINUTES: %w", err)
		}
		c.Floor.IntervalMinutes = n
	}
	if v := os.Getenv("RUN_EVEN_WHEN_MARKET_IS_CLOSED"); v != "" {
		c.Floor.RunWhenClosed = strings.EqualFold(v, "true")
	}
	if v := os.Getenv("AUTOTRADER_DB"); v != "" {
		c.Store.Path = v
	}
	if v := os.Getenv("PUSH_WEBHOOK_URL"); v != "" {
		c.Notify.WebhookURL = v
	}
	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Floor.IntervalMinutes <= 0 {
		return fmt.Errorf("floor.interval_minutes must be positive")
	}
	if c.Floor.TurnBudget <= 0 {
		return fmt.Errorf("floor.turn_budget must be positive")
	}
	if len(c.Floor.Agents) == 0 {
		return fmt.Errorf("floor.agents must name at least one agent")
	}
	seen := make(map[string]bool, len(c.Floor.Agents))
	for _, a := range c.Floor.Agents {
		name := strings.ToLower(a.Name)
		if name == "" {
			return fmt.Errorf("floor.agents entries need a name")
		}
		if seen[name] {
			return fmt.Errorf("duplicate agent name: %s", name)
		}
		seen[name] = true
	}
	if c.Account.InitialBalance <= 0 {
		return fmt.Errorf("account.initial_balance must be positive")
	}
	if c.Account.Spread < 0 || c.Account.Spread >= 1 {
		return fmt.Errorf("account.spread must be in [0, 1)")
	}
	if c.Market.Tier != "eod" && c.Market.Tier != "minute" {
		return fmt.Errorf("market.tier must be 'eod' or 'minute'")
	}
	if len(c.Market.Universe) == 0 && !c.Market.Offline {
		return fmt.Errorf("market.universe is required unless offline")
	}
	if c.Store.Path == "" {
		return fmt.Errorf("store.path is required")
	}
	return nil
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Floor: FloorConfig{
			IntervalMinutes: 30,
			TurnBudget:      30,
			Agents: []AgentConfig{
				{Name: "Warren", Strategy: "Patient value investing in durable businesses bought below intrinsic worth."},
				{Name: "George", Strategy: "Aggressive macro bets around dislocations and reflexive market moves."},
				{Name: "Ray", Strategy: "Systematic diversification across uncorrelated risk premia."},
				{Name: "Cathie", Strategy: "Concentrated positions in disruptive innovation and exponential growth."},
			},
		},
		Account: AccountConfig{
			InitialBalance: 10000,
			Spread:         0.002,
		},
		Market: MarketConfig{
			Tier:     "eod",
			Universe: []string{"AAPL", "MSFT", "GOOGL", "AMZN", "NVDA", "TSLA"},
			Probe:    "SPY",
		},
		Store: StoreConfig{
			Path: "./autotrader.db",
		},
	}
}
