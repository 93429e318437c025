package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var logsCmd = &cobra.Command{
	Use:   "logs <name>",
	Short: "Show recent events for one agent",
	Long: `Print the most recent logged events for one agent, oldest first.

Example:
  floor logs warren --tail 50`,
	Args: cobra.ExactArgs(1),
	RunE: runLogs,
}

var logsTail int

func init() {
	rootCmd.AddCommand(logsCmd)

	logsCmd.Flags().IntVar(&logsTail, "tail", 20, "number of entries to show")
}

func runLogs(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	entries, err := st.ReadLog(args[0], logsTail)
	if err != nil {
		return fmt.Errorf("read log %s: %w", args[0], err)
	}

	for _, e := range entries {
		fmt.Printf("%s  [%s]  %s\n", e.Time.Format("2006-01-02 15:04:05"), e.Category, e.Message)
	}
	return nil
}
