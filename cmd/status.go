package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/rnwolfe/siptrackr/internal/journal"
	"github.com/rnwolfe/siptrackr/internal/sip"
	"github.com/rnwolfe/siptrackr/internal/store"
	"github.com/rnwolfe/siptrackr/internal/version"
	"github.com/spf13/cobra"
)

var statusJSON bool
var statusPrompt bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show today's status (for prompt integration)",
	Long:  `Output today's sip and streak status as JSON or a compact prompt segment.`,
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "Output as JSON")
	statusCmd.Flags().BoolVar(&statusPrompt, "prompt", false, "Output compact prompt segment")
}

// StatusData holds the status snapshot.
type StatusData struct {
	SippedToday   bool   `json:"sipped_today"`
	Intention     string `json:"intention,omitempty"`
	CurrentStreak int    `json:"current_streak"`
	LongestStreak int    `json:"longest_streak"`
	TotalSips     int    `json:"total_sips"`
	JournalToday  bool   `json:"journal_today"`
	Version       string `json:"version"`
}

func runStatus(_ *cobra.Command, _ []string) error {
	data := gatherStatus(nowFunc())

	if statusPrompt {
		fmt.Print(formatPromptSegment(data))
		return nil
	}

	if statusJSON {
		enc := json.NewEncoder(os.Stdout)
		return enc.Encode(data)
	}

	if data.SippedToday {
		fmt.Printf("Today: %s\n", data.Intention)
	} else {
		fmt.Println("Today: no first sip yet")
	}
	fmt.Printf("Streak: %d current, %d longest\n", data.CurrentStreak, data.LongestStreak)
	return nil
}

// gatherStatus never fails; a missing or unreadable store yields zeros.
func gatherStatus(now time.Time) StatusData {
	data := StatusData{
		Version: version.Short(),
	}

	db, err := store.Open()
	if err != nil {
		return data
	}
	defer db.Close()

	sips := sip.NewStore(db.Conn())
	if e, err := sips.Today(now); err == nil && e != nil {
		data.SippedToday = true
		data.Intention = e.Intention
	}
	if st, err := sips.Stats(now); err == nil {
		data.CurrentStreak = st.Current
		data.LongestStreak = st.Longest
		data.TotalSips = st.Total
	}
	if e, err := journal.NewStore(db.Conn()).Today(now); err == nil && e != nil {
		data.JournalToday = true
	}
	return data
}

// formatPromptSegment renders e.g. "[☕5]" once today is logged and "[!]"
// while the streak is waiting on today's sip.
func formatPromptSegment(data StatusData) string {
	switch {
	case data.SippedToday:
		return fmt.Sprintf("[☕%d]", data.CurrentStreak)
	case data.TotalSips > 0:
		return "[!]"
	}
	return ""
}
