package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/rnwolfe/siptrackr/internal/export"
	"github.com/rnwolfe/siptrackr/internal/journal"
	"github.com/rnwolfe/siptrackr/internal/sip"
	"github.com/rnwolfe/siptrackr/internal/ui"
	"github.com/spf13/cobra"
)

var (
	exportFormat  string
	exportOutput  string
	exportEncrypt bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export sips and journal entries",
	Long: `Export every sip and journal entry as JSON, YAML or iCalendar.

Writes to stdout unless --output is given. --encrypt wraps the export in an
age passphrase envelope (ASCII armored); the passphrase is read from
SIPTRACKR_PASSPHRASE or prompted for.`,
	Example: `  siptrackr export > backup.json
  siptrackr export --format ics -o sips.ics
  siptrackr export --encrypt -o backup.json.age`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "Output format: json, yaml, ics")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Write to this file instead of stdout")
	exportCmd.Flags().BoolVar(&exportEncrypt, "encrypt", false, "Encrypt the export with a passphrase")
}

func runExport(_ *cobra.Command, _ []string) error {
	format, err := export.ParseFormat(exportFormat)
	if err != nil {
		return err
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	sips, err := sip.NewStore(db.Conn()).All()
	if err != nil {
		return fmt.Errorf("loading sips: %w", err)
	}
	entries, err := journal.NewStore(db.Conn()).List()
	if err != nil {
		return fmt.Errorf("loading journal: %w", err)
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, format, export.NewSnapshot(sips, entries, nowFunc())); err != nil {
		return err
	}
	data := buf.Bytes()

	if exportEncrypt {
		pass, err := readPassphrase(true)
		if err != nil {
			return err
		}
		if data, err = export.Encrypt(data, pass); err != nil {
			return err
		}
	}

	if exportOutput == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := export.WriteFile(exportOutput, data, 0o600); err != nil {
		return err
	}
	ui.Ok(fmt.Sprintf("Exported %s and %d journal entries to %s",
		ui.Plural(len(sips), "sip"), len(entries), exportOutput))
	return nil
}
