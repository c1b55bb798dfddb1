// Package export serializes sips and journal entries to files and reads
// them back for import.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rnwolfe/siptrackr/internal/journal"
	"github.com/rnwolfe/siptrackr/internal/sip"
	"github.com/rnwolfe/siptrackr/internal/streak"
	"gopkg.in/yaml.v3"
)

// Format is an output encoding.
type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
	ICS  Format = "ics"
)

// Formats lists every supported format.
var Formats = []Format{JSON, YAML, ICS}

// ParseFormat normalizes s. "yml" and "ical" are accepted as aliases.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	case "ics", "ical":
		return ICS, nil
	}
	return "", fmt.Errorf("unknown export format %q (use json, yaml or ics)", s)
}

// Ext returns the file extension for f, without the dot.
func (f Format) Ext() string {
	return string(f)
}

// Summary is the streak summary embedded in a snapshot.
type Summary struct {
	Total    int    `json:"total" yaml:"total"`
	Current  int    `json:"current" yaml:"current"`
	Longest  int    `json:"longest" yaml:"longest"`
	LastDate string `json:"last_date,omitempty" yaml:"last_date,omitempty"`
}

// Snapshot is everything siptrackr knows, at a point in time.
type Snapshot struct {
	ExportedAt time.Time       `json:"exported_at" yaml:"exported_at"`
	Stats      Summary         `json:"stats" yaml:"stats"`
	Sips       []sip.Entry     `json:"sips" yaml:"sips"`
	Journal    []journal.Entry `json:"journal" yaml:"journal"`
}

// NewSnapshot assembles a snapshot and computes its streak summary.
func NewSnapshot(sips []sip.Entry, entries []journal.Entry, now time.Time) *Snapshot {
	st := streak.ComputeStats(sip.Dates(sips), now)
	if sips == nil {
		sips = []sip.Entry{}
	}
	if entries == nil {
		entries = []journal.Entry{}
	}
	return &Snapshot{
		ExportedAt: now,
		Stats: Summary{
			Total:    st.Total,
			Current:  st.Current,
			Longest:  st.Longest,
			LastDate: st.LastDate,
		},
		Sips:    sips,
		Journal: entries,
	}
}

// Write encodes snap to w in the given format.
func Write(w io.Writer, f Format, snap *Snapshot) error {
	switch f {
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(snap); err != nil {
			return err
		}
		return enc.Close()
	case ICS:
		return writeICS(w, snap)
	}
	return fmt.Errorf("unknown export format %q", f)
}
