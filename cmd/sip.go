package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rnwolfe/siptrackr/internal/config"
	"github.com/rnwolfe/siptrackr/internal/sip"
	"github.com/rnwolfe/siptrackr/internal/streak"
	"github.com/rnwolfe/siptrackr/internal/ui"
	"github.com/spf13/cobra"
)

var (
	sipType      string
	sipDate      dateValue
	sipListLimit int
)

var sipCmd = &cobra.Command{
	Use:   "sip [intention]",
	Short: "Log today's first sip with an intention",
	Long: `Log the first sip of the day with a one-word intention (or a short
phrase of up to 20 characters). One first sip per day.

With no intention, shows today's sip.`,
	Example: `  siptrackr sip calm
  siptrackr sip "slow down" --type tea
  siptrackr sip grateful --date yesterday`,
	RunE: runSip,
}

var sipTodayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show today's first sip",
	Args:  cobra.NoArgs,
	RunE:  runSipToday,
}

var sipStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show streak statistics",
	Args:  cobra.NoArgs,
	RunE:  runSipStats,
}

var sipListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List recent sips, newest first",
	Args:    cobra.NoArgs,
	RunE:    runSipList,
}

var sipRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a sip",
	Args:  cobra.ExactArgs(1),
	RunE:  runSipRm,
}

func init() {
	sipCmd.AddCommand(sipTodayCmd, sipStatsCmd, sipListCmd, sipRmCmd)

	sipCmd.Flags().StringVarP(&sipType, "type", "t", "", "Drink: coffee, tea, water, other (default from sip.default_type)")
	sipCmd.Flags().Var(&sipDate, "date", "Day to log (YYYY-MM-DD, yesterday, -N)")
	sipListCmd.Flags().IntVarP(&sipListLimit, "limit", "n", 14, "Number of sips to show (0 for all)")
}

func runSip(_ *cobra.Command, args []string) error {
	if len(args) == 0 {
		return runSipToday(nil, nil)
	}

	typ := sipType
	if typ == "" {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		typ = cfg.Sip.DefaultType
	}
	t, err := sip.ParseType(typ)
	if err != nil {
		return err
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	now := nowFunc()
	s := sip.NewStore(db.Conn())
	e, err := s.Add(strings.Join(args, " "), t, sipDate.At(now))
	if errors.Is(err, sip.ErrAlreadySipped) {
		if existing, _ := s.Today(sipDate.At(now)); existing != nil {
			return fmt.Errorf("%w (%s %q); one first sip per day", err, existing.Type.Icon(), existing.Intention)
		}
		return err
	}
	if err != nil {
		return err
	}

	ui.Ok(fmt.Sprintf("%s %s logged for %s", e.Type.Icon(), ui.Accent.Render(e.Intention), e.Date))

	st, err := s.Stats(now)
	if err != nil {
		return fmt.Errorf("computing streak: %w", err)
	}
	if st.Current > 1 {
		ui.Inf(fmt.Sprintf("%s %s streak", ui.IconFire, ui.Plural(st.Current, "day")))
	}
	if st.Current > 0 && st.Current == st.Longest && st.Current > 1 {
		ui.Inf(ui.IconStar + " that's your longest yet")
	}
	return nil
}

func runSipToday(_ *cobra.Command, _ []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	e, err := sip.NewStore(db.Conn()).Today(nowFunc())
	if err != nil {
		return err
	}
	if e == nil {
		fmt.Println(ui.Muted.Render("  No first sip yet today."))
		ui.Tip("`siptrackr sip <intention>` to log one.")
		return nil
	}
	fmt.Printf("  %s %s  %s\n", e.Type.Icon(), ui.Accent.Render(e.Intention),
		ui.Muted.Render(fmt.Sprintf("%s at %s", e.Type, e.Timestamp.Format("15:04"))))
	return nil
}

func runSipStats(_ *cobra.Command, _ []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	now := nowFunc()
	st, err := sip.NewStore(db.Conn()).Stats(now)
	if err != nil {
		return err
	}

	ui.Header(ui.IconFire + " Streak")
	ui.Kv("Current", ui.Plural(st.Current, "day"))
	ui.Kv("Longest", ui.Plural(st.Longest, "day"))
	ui.Kv("Total", fmt.Sprintf("%d", st.Total))
	last := "never"
	if st.LastDate != "" {
		last = st.LastDate
		if day, err := streak.ParseDay(st.LastDate); err == nil {
			if ago := streak.DaysBetween(day, now); ago > 0 {
				last += ui.Muted.Render(fmt.Sprintf(" (%s ago)", ui.Plural(ago, "day")))
			}
		}
	}
	ui.Kv("Last sip", last)
	if st.Skipped > 0 {
		ui.Warn(fmt.Sprintf("%d record(s) with unreadable dates were ignored", st.Skipped))
	}
	fmt.Println()
	return nil
}

func runSipList(_ *cobra.Command, _ []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	entries, err := sip.NewStore(db.Conn()).Recent(sipListLimit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println(ui.Muted.Render("  No sips yet."))
		return nil
	}

	fmt.Println()
	for _, e := range entries {
		fmt.Printf("  %s  %s %-20s %s\n",
			ui.Muted.Render(e.Date),
			e.Type.Icon(),
			e.Intention,
			ui.Muted.Render(shortSipID(e.ID)))
	}
	fmt.Println()
	return nil
}

func runSipRm(_ *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	s := sip.NewStore(db.Conn())
	id, err := resolveSipID(s, args[0])
	if err != nil {
		return err
	}
	if err := s.Delete(id); err != nil {
		return err
	}
	ui.Ok("Deleted " + shortSipID(id))
	return nil
}

// shortSipID drops the "sip-" prefix and keeps eight characters.
func shortSipID(id string) string {
	id = strings.TrimPrefix(id, "sip-")
	if len(id) > 8 {
		id = id[:8]
	}
	return id
}

// resolveSipID expands a short ID as printed by `sip list`.
func resolveSipID(s *sip.Store, arg string) (string, error) {
	arg = strings.TrimPrefix(strings.TrimSpace(arg), "sip-")
	if arg == "" {
		return "", fmt.Errorf("%w: empty id", sip.ErrNotFound)
	}
	all, err := s.All()
	if err != nil {
		return "", err
	}
	var match string
	for _, e := range all {
		if strings.HasPrefix(strings.TrimPrefix(e.ID, "sip-"), arg) {
			if match != "" {
				return "", fmt.Errorf("id %q matches more than one sip", arg)
			}
			match = e.ID
		}
	}
	if match == "" {
		return "", fmt.Errorf("%w: %s", sip.ErrNotFound, arg)
	}
	return match, nil
}
