package export

import (
	"io"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/rnwolfe/siptrackr/internal/journal"
	"github.com/rnwolfe/siptrackr/internal/sip"
	"github.com/rnwolfe/siptrackr/internal/streak"
)

const productID = "-//siptrackr//first sip//EN"

// SipSummary is the calendar title used for a sip.
func SipSummary(e sip.Entry) string {
	return e.Type.Icon() + " first sip: " + e.Intention
}

// JournalSummary is the calendar title used for a journal entry.
func JournalSummary(e journal.Entry) string {
	return "📓 " + e.Heading()
}

// writeICS emits one all-day event per sip and one timed event per
// journal entry.
func writeICS(w io.Writer, snap *Snapshot) error {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)

	for _, s := range snap.Sips {
		day, err := streak.ParseDay(s.Date)
		if err != nil {
			continue
		}
		ev := cal.AddEvent(s.ID + "@siptrackr")
		ev.SetDtStampTime(snap.ExportedAt)
		ev.SetCreatedTime(s.Timestamp)
		ev.SetAllDayStartAt(day)
		ev.SetAllDayEndAt(day.AddDate(0, 0, 1))
		ev.SetSummary(SipSummary(s))
		ev.SetDescription(string(s.Type) + " at " + s.Timestamp.Format("15:04"))
	}

	for _, j := range snap.Journal {
		ev := cal.AddEvent(j.ID + "@siptrackr")
		ev.SetDtStampTime(snap.ExportedAt)
		ev.SetCreatedTime(j.CreatedAt)
		ev.SetModifiedAt(j.UpdatedAt)
		ev.SetStartAt(j.CreatedAt)
		ev.SetEndAt(j.CreatedAt.Add(15 * time.Minute))
		ev.SetSummary(JournalSummary(j))
		ev.SetDescription(j.Content)
	}

	_, err := io.WriteString(w, cal.Serialize())
	return err
}
