package cmd

import (
	"strings"
	"testing"
)

func TestRunDashboard_Fresh(t *testing.T) {
	sipTestEnv(t)

	out := captureStdout(t, func() {
		if err := runDashboard(nil, nil); err != nil {
			t.Errorf("runDashboard: %v", err)
		}
	})
	for _, want := range []string{"Good morning", "no first sip yet", "0 days current", "Tuesday, March 10", "--type coffee"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in dashboard: %q", want, out)
		}
	}
}

func TestRunDashboard_AfterSip(t *testing.T) {
	sipTestEnv(t)
	if err := runConfigSet(nil, []string{"user.name", "Sam"}); err != nil {
		t.Fatal(err)
	}

	out := captureStdout(t, func() {
		if err := runSip(nil, []string{"kind"}); err != nil {
			t.Fatalf("runSip: %v", err)
		}
		if err := runDashboard(nil, nil); err != nil {
			t.Errorf("runDashboard: %v", err)
		}
	})
	for _, want := range []string{"Good morning, Sam.", "kind", "at 08:30", "1 day current", "journal add"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in dashboard: %q", want, out)
		}
	}
}

func TestSubcommandsRegistered(t *testing.T) {
	want := []string{"sip", "journal", "dash", "export", "import", "remind", "quote", "status", "config", "version"}
	have := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		have[c.Name()] = true
	}
	for _, name := range want {
		if !have[name] {
			t.Errorf("missing subcommand %q", name)
		}
	}
}
