package cli

import (
	"embed"
	"fmt"
	"io"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/alecthomas/kingpin"
)

//go:embed completion-scripts/otp-vault.*
var completionScripts embed.FS

var completionScriptPrinter io.Writer = os.Stdout

type CompletionCommandInput struct {
	Shell string
}

func ConfigureCompletionCommand(app *kingpin.Application) {
	input := CompletionCommandInput{}
	shells := completionShells()

	cmd := app.Command("completion", "Output shell completion script. To be used with `eval \"$(otp-vault completion SHELL)\"`.")

	cmd.Arg("shell", fmt.Sprintf("Shell to get completion script for %v, defaults to $SHELL", shells)).
		Required().
		Envar("SHELL").
		HintOptions(shells...).
		StringVar(&input.Shell)

	cmd.Action(func(c *kingpin.ParseContext) error {
		return CompletionCommand(input, completionScriptPrinter)
	})
}

func CompletionCommand(input CompletionCommandInput, w io.Writer) error {
	// $SHELL is usually a full path
	script, err := completionScripts.ReadFile("completion-scripts/otp-vault." + path.Base(input.Shell))
	if err != nil {
		return fmt.Errorf("unknown shell: %s", input.Shell)
	}
	if _, err = w.Write(script); err != nil {
		return fmt.Errorf("failed to print completion script: %w", err)
	}
	return nil
}

// completionShells lists the shells there is an embedded script for.
func completionShells() []string {
	entries, _ := completionScripts.ReadDir("completion-scripts")
	shells := []string{}
	for _, e := range entries {
		shells = append(shells, strings.TrimPrefix(path.Ext(e.Name()), "."))
	}
	sort.Strings(shells)
	return shells
}
