package cmd

import (
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/rnwolfe/siptrackr/internal/ui"
	"golang.org/x/term"
)

// passphraseEnv lets scripts supply the export passphrase.
const passphraseEnv = "SIPTRACKR_PASSPHRASE"

// readPassphrase returns the passphrase from the environment or prompts
// for it on the terminal. confirm asks twice.
func readPassphrase(confirm bool) (string, error) {
	if p := os.Getenv(passphraseEnv); p != "" {
		return p, nil
	}

	if !term.IsTerminal(int(syscall.Stdin)) {
		return "", fmt.Errorf("passphrase required: set %s or run interactively", passphraseEnv)
	}

	first, err := promptSecret("  Passphrase: ")
	if err != nil {
		return "", err
	}
	if first == "" {
		return "", fmt.Errorf("passphrase can't be empty")
	}
	if confirm {
		second, err := promptSecret("  Confirm passphrase: ")
		if err != nil {
			return "", err
		}
		if first != second {
			return "", fmt.Errorf("passphrases do not match")
		}
	}
	return first, nil
}

func promptSecret(label string) (string, error) {
	fmt.Fprint(os.Stderr, ui.Muted.Render(label))
	b, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading passphrase: %w", err)
	}
	return strings.TrimSpace(string(b)), nil
}
