package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rnwolfe/siptrackr/internal/journal"
	"github.com/rnwolfe/siptrackr/internal/sip"
)

// WebStorageKey is the localStorage key the browser app keeps sips under.
const WebStorageKey = "siptrackr-entries"

// Bundle is what an import file yielded.
type Bundle struct {
	Sips    []sip.Entry
	Journal []journal.Entry
}

// webSip is a sip as the browser app stores it. Fields stay strings so a
// bad date or timestamp on one record does not fail the whole file.
type webSip struct {
	ID        string `json:"id"`
	Date      string `json:"date"`
	Timestamp string `json:"timestamp"`
	Intention string `json:"intention"`
	Type      string `json:"type"`
}

// Read decodes an import file. It accepts:
//   - a bare JSON array of sips, as the browser app stores them
//   - a localStorage dump object holding that array (or its JSON string)
//     under "siptrackr-entries"
//   - a JSON snapshot written by Write
func Read(r io.Reader) (*Bundle, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading import: %w", err)
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return &Bundle{}, nil
	}

	switch raw[0] {
	case '[':
		sips, err := decodeWebSips(raw)
		if err != nil {
			return nil, err
		}
		return &Bundle{Sips: sips}, nil
	case '{':
		return decodeObject(raw)
	}
	return nil, fmt.Errorf("import must be a JSON array or object")
}

// ReadSips is Read without the journal.
func ReadSips(r io.Reader) ([]sip.Entry, error) {
	b, err := Read(r)
	if err != nil {
		return nil, err
	}
	return b.Sips, nil
}

func decodeObject(raw []byte) (*Bundle, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, fmt.Errorf("parsing import: %w", err)
	}

	if v, ok := obj[WebStorageKey]; ok {
		// localStorage values are strings holding JSON.
		var inner string
		if json.Unmarshal(v, &inner) == nil {
			v = json.RawMessage(inner)
		}
		sips, err := decodeWebSips(v)
		if err != nil {
			return nil, err
		}
		return &Bundle{Sips: sips}, nil
	}

	b := &Bundle{}
	if v, ok := obj["sips"]; ok {
		sips, err := decodeWebSips(v)
		if err != nil {
			return nil, err
		}
		b.Sips = sips
	}
	if v, ok := obj["journal"]; ok {
		if err := json.Unmarshal(v, &b.Journal); err != nil {
			return nil, fmt.Errorf("parsing journal: %w", err)
		}
	}
	if b.Sips == nil && b.Journal == nil {
		return nil, fmt.Errorf("import object has neither %q nor \"sips\"", WebStorageKey)
	}
	return b, nil
}

func decodeWebSips(raw []byte) ([]sip.Entry, error) {
	var in []webSip
	if err := json.Unmarshal(raw, &in); err != nil {
		return nil, fmt.Errorf("parsing sips: %w", err)
	}
	out := make([]sip.Entry, 0, len(in))
	for _, w := range in {
		e := sip.Entry{
			ID:        strings.TrimSpace(w.ID),
			Date:      strings.TrimSpace(w.Date),
			Intention: w.Intention,
			Type:      sip.Type(w.Type),
		}
		if ts, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(w.Timestamp)); err == nil {
			e.Timestamp = ts
		}
		out = append(out, e)
	}
	return out, nil
}
