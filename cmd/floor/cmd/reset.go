package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/autotrader/account"
)

var resetCmd = &cobra.Command{
	Use:   "reset <name>",
	Short: "Reset an agent's account to its starting balance",
	Long: `Wipe an agent's holdings, transactions, and value history and restore
the starting cash balance. The strategy can be replaced at the same
time with --strategy.

Example:
  floor reset warren --strategy "buy quality, hold forever"`,
	Args: cobra.ExactArgs(1),
	RunE: runReset,
}

var resetStrategy string

func init() {
	rootCmd.AddCommand(resetCmd)

	resetCmd.Flags().StringVar(&resetStrategy, "strategy", "", "strategy text for the fresh account")
}

func runReset(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	ledger, err := account.Open(args[0], st, nil, nil, account.Options{
		InitialBalance: cfg.Account.InitialBalance,
		Spread:         cfg.Account.Spread,
	})
	if err != nil {
		return fmt.Errorf("open account %s: %w", args[0], err)
	}

	strategy := resetStrategy
	if strategy == "" {
		strategy = ledger.Snapshot().Strategy
	}
	if err := ledger.Reset(strategy); err != nil {
		return fmt.Errorf("reset %s: %w", args[0], err)
	}

	fmt.Printf("Account %s reset to $%.2f\n", ledger.Name(), cfg.Account.InitialBalance)
	return nil
}
