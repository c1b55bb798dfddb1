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

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import sips from the web app or a siptrackr export",
	Long: `Import sips (and journal entries, for siptrackr exports) from a JSON file.

Accepted inputs:
  - the web app's "siptrackr-entries" array
  - a localStorage dump holding that key
  - a JSON file written by ` + "`siptrackr export`" + `, encrypted or not

Records already present (same ID) are skipped, as are records with
unreadable dates.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(_ *cobra.Command, args []string) error {
	raw, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}
	if export.IsEncrypted(raw) {
		pass, err := readPassphrase(false)
		if err != nil {
			return err
		}
		if raw, err = export.Decrypt(raw, pass); err != nil {
			return err
		}
	}

	bundle, err := export.Read(bytes.NewReader(raw))
	if err != nil {
		return err
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	res, err := sip.NewStore(db.Conn()).Import(bundle.Sips)
	if err != nil {
		return fmt.Errorf("importing sips: %w", err)
	}
	jImported, jDup, jInvalid, err := journal.NewStore(db.Conn()).Import(bundle.Journal)
	if err != nil {
		return fmt.Errorf("importing journal: %w", err)
	}

	ui.Ok(fmt.Sprintf("Imported %s", ui.Plural(res.Imported, "sip")))
	if res.Duplicate > 0 || res.Invalid > 0 {
		ui.Inf(fmt.Sprintf("Skipped %d already present, %d unreadable", res.Duplicate, res.Invalid))
	}
	if len(bundle.Journal) > 0 {
		ui.Ok(fmt.Sprintf("Imported %d journal entries", jImported))
		if jDup > 0 || jInvalid > 0 {
			ui.Inf(fmt.Sprintf("Skipped %d already present, %d unreadable", jDup, jInvalid))
		}
	}
	return nil
}
