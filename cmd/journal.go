package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rnwolfe/siptrackr/internal/config"
	"github.com/rnwolfe/siptrackr/internal/journal"
	"github.com/rnwolfe/siptrackr/internal/streak"
	"github.com/rnwolfe/siptrackr/internal/tui"
	"github.com/rnwolfe/siptrackr/internal/ui"
	"github.com/spf13/cobra"
)

var (
	journalTitle   string
	journalContent string
	journalRaw     bool
	journalYes     bool
)

var journalCmd = &cobra.Command{
	Use:     "journal",
	Aliases: []string{"j"},
	Short:   "Write and read journal entries",
	Long:    `List journal entries, newest first. Use the subcommands to add, edit or read them.`,
	Args:    cobra.NoArgs,
	RunE:    runJournalList,
}

var journalAddCmd = &cobra.Command{
	Use:   "add <content>",
	Short: "Write a new entry",
	Example: `  siptrackr journal add "Woke before the alarm. Tea on the step."
  siptrackr journal add --title "Rain" "Sat by the window for a while."`,
	Args: cobra.MinimumNArgs(1),
	RunE: runJournalAdd,
}

var journalEditCmd = &cobra.Command{
	Use:   "edit [id]",
	Short: "Change an entry's title or content",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runJournalEdit,
}

var journalRmCmd = &cobra.Command{
	Use:   "rm [id]",
	Short: "Delete an entry",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runJournalRm,
}

var journalShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show an entry in full",
	Long:  `Show an entry in full. Content is rendered as markdown on a terminal unless --raw is set.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runJournalShow,
}

var journalTodayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show today's entry",
	Args:  cobra.NoArgs,
	RunE:  runJournalToday,
}

func init() {
	journalCmd.AddCommand(journalAddCmd, journalEditCmd, journalRmCmd, journalShowCmd, journalTodayCmd)

	journalAddCmd.Flags().StringVar(&journalTitle, "title", "", "Optional title")
	journalEditCmd.Flags().StringVar(&journalTitle, "title", "", "New title")
	journalEditCmd.Flags().StringVar(&journalContent, "content", "", "New content")
	journalRmCmd.Flags().BoolVarP(&journalYes, "yes", "y", false, "Skip the confirmation prompt")
	journalShowCmd.Flags().BoolVar(&journalRaw, "raw", false, "Print content without markdown rendering")
	journalTodayCmd.Flags().BoolVar(&journalRaw, "raw", false, "Print content without markdown rendering")
}

func runJournalList(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	entries, err := journal.NewStore(db.Conn()).List()
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println(ui.Muted.Render("  No journal entries yet."))
		ui.Tip("`siptrackr journal add \"...\"` to write your first.")
		return nil
	}

	today := streak.DayOf(nowFunc())
	for _, e := range entries {
		fmt.Println()
		date := e.CreatedAt.Format("Monday, January 2, 2006")
		if streak.DayOf(e.CreatedAt) == today {
			date += " " + ui.Tag.Render("Today")
		}
		fmt.Printf("  %s  %s\n", ui.Title.Render(e.Heading()), ui.Muted.Render(e.ShortID()))
		fmt.Printf("  %s\n", ui.Muted.Render(date))
		preview := strings.Join(strings.Fields(e.Content), " ")
		fmt.Printf("  %s\n", journal.Truncate(preview, cfg.Journal.PreviewLength))
	}
	fmt.Println()
	return nil
}

func runJournalAdd(_ *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	e, err := journal.NewStore(db.Conn()).Create(journalTitle, strings.Join(args, " "), nowFunc())
	if err != nil {
		return err
	}
	ui.Ok(fmt.Sprintf("%s Saved %s %s", ui.IconJournal, ui.Accent.Render(e.Heading()), ui.Muted.Render(e.ShortID())))
	return nil
}

func runJournalEdit(_ *cobra.Command, args []string) error {
	if journalTitle == "" && journalContent == "" {
		return fmt.Errorf("nothing to change: pass --title and/or --content")
	}
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	js := journal.NewStore(db.Conn())
	id, err := pickJournalID(js, args, "Edit which entry?")
	if err != nil || id == "" {
		return err
	}

	var title, content *string
	if journalTitle != "" {
		title = &journalTitle
	}
	if journalContent != "" {
		content = &journalContent
	}
	e, err := js.Update(id, title, content, nowFunc())
	if err != nil {
		return err
	}
	ui.Ok("Updated " + ui.Accent.Render(e.Heading()))
	return nil
}

func runJournalRm(_ *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	js := journal.NewStore(db.Conn())
	id, err := pickJournalID(js, args, "Delete which entry?")
	if err != nil || id == "" {
		return err
	}
	e, err := js.Get(id)
	if err != nil {
		return err
	}
	if !journalYes && tui.IsTTY() {
		if !confirm(stdinReader(), fmt.Sprintf("Delete %q?", e.Heading())) {
			fmt.Println(ui.Muted.Render("  Kept."))
			return nil
		}
	}
	if err := js.Delete(e.ID); err != nil {
		return err
	}
	ui.Ok("Deleted " + e.Heading())
	return nil
}

func runJournalShow(_ *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	js := journal.NewStore(db.Conn())
	id, err := pickJournalID(js, args, "Show which entry?")
	if err != nil || id == "" {
		return err
	}
	e, err := js.Get(id)
	if err != nil {
		return err
	}
	return printJournalEntry(e, journalRaw || !cfg.Journal.MarkdownEnabled())
}

func runJournalToday(_ *cobra.Command, _ []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	e, err := journal.NewStore(db.Conn()).Today(nowFunc())
	if err != nil {
		return err
	}
	if e == nil {
		fmt.Println(ui.Muted.Render("  Nothing written today."))
		ui.Tip("`siptrackr journal add \"...\"` to start.")
		return nil
	}
	return printJournalEntry(e, journalRaw)
}

func printJournalEntry(e *journal.Entry, raw bool) error {
	ui.Header(e.Heading())
	meta := e.CreatedAt.Format("Monday, January 2, 2006 15:04")
	if e.UpdatedAt.After(e.CreatedAt) {
		meta += " · edited " + e.UpdatedAt.Format("Jan 2 15:04")
	}
	fmt.Println(ui.Muted.Render(meta + " · " + e.ShortID()))
	fmt.Println()
	return ui.NewMarkdownPrinter(os.Stdout, raw).Print(e.Content)
}

// journalItem adapts an entry for the fuzzy picker.
type journalItem struct{ e journal.Entry }

func (i journalItem) FilterValue() string { return i.e.Title + " " + i.e.Content }
func (i journalItem) Title() string       { return i.e.Heading() }
func (i journalItem) Description() string {
	return i.e.CreatedAt.Format("Jan 2") + "  " + journal.Truncate(strings.Join(strings.Fields(i.e.Content), " "), 40)
}

// pickJournalID returns args[0], or lets the user choose an entry on a
// terminal. An empty ID with a nil error means the picker was canceled.
func pickJournalID(js *journal.Store, args []string, title string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	if !tui.IsTTY() {
		return "", errors.New("an entry id is required (see `siptrackr journal`)")
	}
	entries, err := js.List()
	if err != nil {
		return "", err
	}
	if len(entries) == 0 {
		return "", journal.ErrNotFound
	}
	items := make([]tui.Item, len(entries))
	for i, e := range entries {
		items[i] = journalItem{e}
	}
	chosen, err := tui.Pick(items, tui.WithTitle(title))
	if err != nil || chosen == nil {
		return "", err
	}
	return chosen.(journalItem).e.ID, nil
}
