package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/autotrader/config"
	"github.com/rustyeddy/autotrader/market"
	"github.com/rustyeddy/autotrader/store"
)

var rootCmd = &cobra.Command{
	Use:   "floor",
	Short: "A simulated trading floor of autonomous equity agents",
	Long: `Floor runs a team of simulated trading agents, each with its own
account, strategy, and alternating trading posture.

It provides tools for:
  - Running the scheduling loop that drives all agents
  - Inspecting an agent's account, holdings, and P&L
  - Tailing the event log of any agent
  - Resetting an agent back to its starting balance`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

var cfgPath string

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "f", "", "path to config file (YAML or JSON)")
}

func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if cfgPath != "" {
		var err error
		cfg, err = config.LoadFromFile(cfgPath)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
	}
	if err := cfg.FromEnv(); err != nil {
		return nil, fmt.Errorf("apply environment: %w", err)
	}
	return cfg, nil
}

func openStore(cfg *config.Config) (*store.SQLite, error) {
	st, err := store.NewSQLite(cfg.Store.Path)
	if err != nil {
		return nil, fmt.Errorf("open store %s: %w", cfg.Store.Path, err)
	}
	return st, nil
}

func newMarket(cfg *config.Config, st market.SnapshotStore) *market.Service {
	var src market.Source
	if !cfg.Market.Offline {
		src = market.NewYahooSource(cfg.Market.Universe, cfg.Market.Probe)
	}
	return market.NewService(src, market.Options{
		Tier:  market.Tier(cfg.Market.Tier),
		Store: st,
	})
}
