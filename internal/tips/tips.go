// Package tips provides short usage hints shown under the siptrackr dashboard.
package tips

import "time"

var all = []string{
	"`siptrackr sip calm` to log today's first sip with a one-word intention.",
	"`siptrackr sip focus --type tea` when the first sip isn't coffee.",
	"`siptrackr sip stats` to see your current and longest streak.",
	"`siptrackr sip list --limit 7` to look back over the last week.",
	"`siptrackr sip grateful --date 2024-03-01` to backfill a day you forgot.",
	"`siptrackr journal add \"...\"` to write down what's on your mind.",
	"`siptrackr journal today` to revisit what you wrote this morning.",
	"`siptrackr journal show <id>` renders an entry as markdown.",
	"`siptrackr dash` for a live dashboard of your rituals.",
	"`siptrackr quote --all` to browse every quote.",
	"`siptrackr export --format ics` to see your sips on a calendar.",
	"`siptrackr export --encrypt` to back up your journal with a passphrase.",
	"`siptrackr import entries.json` to bring over history from the web app.",
	"`siptrackr remind` sends a nudge when you haven't sipped yet.",
	"`siptrackr config set sip.default_type tea` if tea is your usual.",
}

// All returns all tips in the pool.
func All() []string {
	return all
}

// Daily returns a deterministic tip for the given day.
func Daily(t time.Time) string {
	return all[t.YearDay()%len(all)]
}
