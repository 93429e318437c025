package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/autotrader/account"
)

var accountCmd = &cobra.Command{
	Use:   "account <name>",
	Short: "Print an agent's account report",
	Long: `Print the full account report for one agent as JSON: balance,
holdings, transaction history, portfolio value, and profit/loss.

Example:
  floor account warren`,
	Args: cobra.ExactArgs(1),
	RunE: runAccount,
}

func init() {
	rootCmd.AddCommand(accountCmd)
}

func runAccount(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	prices := newMarket(cfg, st)
	ledger, err := account.Open(args[0], st, prices, nil, account.Options{
		InitialBalance: cfg.Account.InitialBalance,
		Spread:         cfg.Account.Spread,
	})
	if err != nil {
		return fmt.Errorf("open account %s: %w", args[0], err)
	}

	rep, err := ledger.Report(cmd.Context())
	if err != nil {
		return fmt.Errorf("report %s: %w", args[0], err)
	}

	out, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
