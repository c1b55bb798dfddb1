package cmd

import (
	"errors"
	"fmt"

	"github.com/rnwolfe/siptrackr/internal/config"
	"github.com/rnwolfe/siptrackr/internal/journal"
	"github.com/rnwolfe/siptrackr/internal/sip"
	"github.com/rnwolfe/siptrackr/internal/store"
	"github.com/rnwolfe/siptrackr/internal/tui"
	"github.com/rnwolfe/siptrackr/internal/ui"
	"github.com/spf13/cobra"
)

var dashCmd = &cobra.Command{
	Use:   "dash",
	Short: "Open the interactive dashboard",
	Long: `Opens the full-screen dashboard showing today's sip, the streak, the
last week, today's journal entry and the daily quote.

Keyboard shortcuts:
  s          Log today's first sip
  j          Write a journal entry
  r          Refresh
  q / Ctrl+C Quit`,
	Args: cobra.NoArgs,
	RunE: runDash,
}

func init() {
	rootCmd.AddCommand(dashCmd)
}

// runDash runs the dashboard loop, relaunching after each prompt the
// dashboard hands back.
func runDash(_ *cobra.Command, _ []string) error {
	if !tui.IsTTY() {
		return runDashboard(nil, nil)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	for {
		action, err := tui.RunDash(db.Conn(), nowFunc)
		if err != nil {
			return err
		}
		switch action {
		case tui.DashActionSip:
			if err := sipFromDash(db, cfg); err != nil {
				ui.Warn(err.Error())
			}
		case tui.DashActionJournal:
			if err := journalFromDash(db); err != nil {
				ui.Warn(err.Error())
			}
		default:
			return nil
		}
	}
}

func sipFromDash(db *store.DB, cfg *config.Config) error {
	intention, err := promptLine(stdinReader(), "Intention for today's first sip: ")
	if err != nil || intention == "" {
		return err
	}
	typ, err := sip.ParseType(cfg.Sip.DefaultType)
	if err != nil {
		typ = sip.Coffee
	}
	e, err := sip.NewStore(db.Conn()).Add(intention, typ, nowFunc())
	if err != nil {
		if errors.Is(err, sip.ErrAlreadySipped) {
			return errors.New("today's first sip is already logged")
		}
		return err
	}
	ui.Ok(fmt.Sprintf("%s %s logged", e.Type.Icon(), e.Intention))
	return nil
}

func journalFromDash(db *store.DB) error {
	reader := stdinReader()
	content, err := promptLine(reader, "Journal (one line): ")
	if err != nil || content == "" {
		return err
	}
	e, err := journal.NewStore(db.Conn()).Create("", content, nowFunc())
	if err != nil {
		return err
	}
	ui.Ok("Saved " + e.ShortID())
	return nil
}
