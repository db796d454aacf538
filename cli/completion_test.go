package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/alecthomas/kingpin"
	"github.com/google/go-cmp/cmp"
)

func TestCompletionShells(t *testing.T) {
	if diff := cmp.Diff([]string{"bash", "fish", "zsh"}, completionShells()); diff != "" {
		t.Fatalf("Unexpected shells (-want +got):\n%s", diff)
	}
}

func TestCompletionCommand(t *testing.T) {
	var testCases = []struct {
		Shell    string
		Contains string
	}{
		{"bash", "complete -F _otp_vault_bash_autocomplete"},
		{"/usr/bin/zsh", "#compdef otp-vault"},
		{"/usr/local/bin/fish", "complete -c otp-vault"},
	}

	for _, tc := range testCases {
		var buf bytes.Buffer
		if err := CompletionCommand(CompletionCommandInput{Shell: tc.Shell}, &buf); err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(buf.String(), tc.Contains) {
			t.Fatalf("Script for %s doesn't contain %q:\n%s", tc.Shell, tc.Contains, buf.String())
		}
	}
}

func TestCompletionCommandUnknownShell(t *testing.T) {
	err := CompletionCommand(CompletionCommandInput{Shell: "/bin/tcsh"}, &bytes.Buffer{})
	if err == nil || err.Error() != "unknown shell: /bin/tcsh" {
		t.Fatalf("Unexpected error %v", err)
	}
}

func TestConfigureCompletionCommandReadsShellFromEnv(t *testing.T) {
	t.Setenv("SHELL", "/bin/bash")

	var buf bytes.Buffer
	completionScriptPrinter = &buf

	app := kingpin.New("otp-vault", "")
	ConfigureCompletionCommand(app)
	if _, err := app.Parse([]string{"completion"}); err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(buf.String(), "--completion-bash") {
		t.Fatalf("Unexpected script %q", buf.String())
	}
}
