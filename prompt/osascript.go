package prompt

import (
	"fmt"
	"strings"

	exec "golang.org/x/sys/execabs"
)

func OSAScriptPrompt(message string) (string, error) {
	cmd := exec.Command("osascript", "-e", fmt.Sprintf(`
		display dialog %q default answer "" with hidden answer buttons {"OK", "Cancel"} default button 1
        text returned of the result
        return result`,
		message))

	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("osascript: %w", err)
	}

	return strings.TrimSpace(string(out)), nil
}

func init() {
	if _, err := exec.LookPath("osascript"); err == nil {
		Methods["osascript"] = OSAScriptPrompt
	}
}
