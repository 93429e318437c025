package cmd

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/autotrader/account"
	"github.com/rustyeddy/autotrader/config"
	"github.com/rustyeddy/autotrader/floor"
	"github.com/rustyeddy/autotrader/notify"
	"github.com/rustyeddy/autotrader/trace"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the trading floor scheduling loop",
	Long: `Run the trading floor: every interval, check whether the market is
open and fan out a concurrent run cycle for each configured agent.

The loop runs until interrupted.

Example:
  floor run -f examples/configs/floor.yaml`,
	RunE: runRun,
}

var runOnce bool

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolVar(&runOnce, "once", false, "run a single cycle and exit")
}

func runRun(cmd *cobra.Command, args []string) error {
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
	events := trace.NewRecorder(st)

	var notifier notify.Notifier = notify.Nop{}
	if cfg.Notify.WebhookURL != "" {
		notifier = notify.NewWebhook(cfg.Notify.WebhookURL)
	}

	agents, err := buildAgents(cfg, st, prices, events, notifier)
	if err != nil {
		return err
	}

	sched := floor.NewScheduler(agents, prices, events, floor.SchedulerOptions{
		Interval: time.Duration(cfg.Floor.IntervalMinutes) * time.Minute,
		Force:    cfg.Floor.RunWhenClosed,
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Trading floor up: %d agents, every %d minutes\n",
		len(agents), cfg.Floor.IntervalMinutes)

	if runOnce {
		sched.Tick(ctx)
		return nil
	}
	if err := sched.Run(ctx); !errors.Is(err, context.Canceled) {
		return err
	}
	fmt.Println("Trading floor stopped")
	return nil
}

func buildAgents(cfg *config.Config, st account.Store, prices account.Pricer, events *trace.Recorder, notifier notify.Notifier) ([]*floor.Agent, error) {
	agents := make([]*floor.Agent, 0, len(cfg.Floor.Agents))
	for _, ac := range cfg.Floor.Agents {
		ledger, err := account.Open(ac.Name, st, prices, events, account.Options{
			InitialBalance: cfg.Account.InitialBalance,
			Spread:         cfg.Account.Spread,
		})
		if err != nil {
			return nil, fmt.Errorf("open account %s: %w", ac.Name, err)
		}
		// The configured strategy seeds new accounts; a strategy the
		// agent already changed is left alone.
		if ledger.Snapshot().Strategy == "" && ac.Strategy != "" {
			if err := ledger.ChangeStrategy(ac.Strategy); err != nil {
				return nil, fmt.Errorf("seed strategy %s: %w", ac.Name, err)
			}
		}
		agents = append(agents, floor.NewAgent(ac.Name, ledger, prices, floor.HoldDecider{}, events, notifier, floor.AgentOptions{
			Budget: cfg.Floor.TurnBudget,
		}))
	}
	return agents, nil
}
