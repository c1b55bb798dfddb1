package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rnwolfe/siptrackr/internal/config"
	"github.com/rnwolfe/siptrackr/internal/remind"
	"github.com/rnwolfe/siptrackr/internal/sip"
	"github.com/rnwolfe/siptrackr/internal/ui"
	"github.com/spf13/cobra"
)

var remindOnce bool

var remindCmd = &cobra.Command{
	Use:   "remind",
	Short: "Run the daily reminder daemon",
	Long: `Checks on the remind.schedule cron spec whether today's first sip is
logged, and sends a nudge if not. At most one reminder is sent per day.

Reminders go to Telegram when telegram.token and telegram.chat_id are set
(or SIPTRACKR_TELEGRAM_TOKEN / SIPTRACKR_TELEGRAM_CHAT_ID), otherwise to
stdout. With remind.metrics_addr set, Prometheus metrics are served at
/metrics on that address.`,
	Example: `  siptrackr remind
  siptrackr remind --once`,
	Args: cobra.NoArgs,
	RunE: runRemind,
}

func init() {
	rootCmd.AddCommand(remindCmd)
	remindCmd.Flags().BoolVar(&remindOnce, "once", false, "Run a single check and exit")
}

func runRemind(_ *cobra.Command, _ []string) error {
	fileCfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg := fileCfg.WithEnv()

	notifier, err := newNotifier(cfg)
	if err != nil {
		return err
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	checker := &remind.Checker{
		Sips:     sip.NewStore(db.Conn()),
		State:    db,
		Notifier: notifier,
		Now:      nowFunc,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if remindOnce {
		res, err := checker.Check(ctx)
		if err != nil {
			return err
		}
		if !res.Sent {
			ui.Inf("No reminder sent: " + res.Reason)
		}
		return nil
	}

	if cfg.Remind.MetricsAddr != "" {
		checker.Metrics = remind.NewMetrics()
		go func() {
			if err := checker.Metrics.Serve(ctx, cfg.Remind.MetricsAddr, logger); err != nil {
				logger.Error("metrics server stopped", slog.Any("error", err))
			}
		}()
	}

	sched, err := remind.NewScheduler(cfg.Remind.Schedule, checker, logger)
	if err != nil {
		return err
	}
	logger.Info("reminder daemon started",
		slog.String("schedule", cfg.Remind.Schedule),
		slog.Bool("telegram", cfg.Telegram.Enabled()))
	sched.Run(ctx)
	logger.Info("reminder daemon stopped")
	return nil
}

func newNotifier(cfg *config.Config) (remind.Notifier, error) {
	if !cfg.Telegram.Enabled() {
		return remind.WriterNotifier{W: os.Stdout}, nil
	}
	n, err := remind.NewTelegramNotifier(cfg.Telegram.Token, cfg.Telegram.ChatID)
	if err != nil {
		return nil, fmt.Errorf("connecting to telegram: %w", err)
	}
	return n, nil
}
