package cmd

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/rnwolfe/siptrackr/internal/config"
	"github.com/rnwolfe/siptrackr/internal/journal"
	"github.com/rnwolfe/siptrackr/internal/quotes"
	"github.com/rnwolfe/siptrackr/internal/sip"
	"github.com/rnwolfe/siptrackr/internal/store"
	"github.com/rnwolfe/siptrackr/internal/tips"
	"github.com/rnwolfe/siptrackr/internal/ui"
	"github.com/spf13/cobra"
)

// nowFunc is the clock every command reads. Tests replace it.
var nowFunc = time.Now

var rootCmd = &cobra.Command{
	Use:   "siptrackr",
	Short: "A mindful first sip, every day",
	Long: `siptrackr logs the first sip of your day with a one-word intention
and keeps a short journal next to your streak.`,
	RunE: runDashboard,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		ui.Err(err.Error())
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(sipCmd)
	rootCmd.AddCommand(journalCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
}

// openDB opens the default database, wrapping the error for display.
func openDB() (*store.DB, error) {
	db, err := store.Open()
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}
	return db, nil
}

// runDashboard prints the at-a-glance summary for a bare `siptrackr`.
func runDashboard(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	now := nowFunc()
	sips := sip.NewStore(db.Conn())
	today, err := sips.Today(now)
	if err != nil {
		return fmt.Errorf("loading today's sip: %w", err)
	}
	st, err := sips.Stats(now)
	if err != nil {
		return fmt.Errorf("computing streak: %w", err)
	}
	// A journal read failure is not fatal here.
	entry, err := journal.NewStore(db.Conn()).Today(now)
	if err != nil {
		log.Printf("warning: loading journal: %v", err)
	}

	fmt.Println(ui.Greet(cfg.User.Name, now.Hour()))
	fmt.Println()

	if today != nil {
		ui.Kv(today.Type.Icon()+" Today", ui.Accent.Render(today.Intention)+ui.Muted.Render(" at "+today.Timestamp.Format("15:04")))
	} else {
		ui.Kv(ui.IconCup+" Today", ui.Muted.Render("no first sip yet"))
	}
	ui.Kv(ui.IconFire+" Streak", fmt.Sprintf("%s current · %s longest", ui.Plural(st.Current, "day"), ui.Plural(st.Longest, "day")))
	if entry != nil {
		ui.Kv(ui.IconJournal+" Journal", entry.Heading())
	} else {
		ui.Kv(ui.IconJournal+" Journal", ui.Muted.Render("nothing yet today"))
	}
	ui.Kv("  📅 Date", now.Format("Monday, January 2"))

	fmt.Println()
	fmt.Println(ui.Muted.Render("  " + ui.IconQuote + " " + quotes.Daily(now).String()))

	switch {
	case today == nil:
		ui.Tip(fmt.Sprintf("`siptrackr sip <intention> --type %s` to start the day.", cfg.Sip.DefaultType))
	case entry == nil:
		ui.Tip("`siptrackr journal add \"...\"` to write a few lines.")
	default:
		ui.Tip(tips.Daily(now))
	}
	fmt.Println()
	return nil
}
