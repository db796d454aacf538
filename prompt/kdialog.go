package prompt

import (
	"fmt"
	"strings"

	exec "golang.org/x/sys/execabs"
)

func KDialogPrompt(message string) (string, error) {
	cmd := exec.Command("kdialog", "--password", message, "--title", "otp-vault")

	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("kdialog: %w", err)
	}

	return strings.TrimSpace(string(out)), nil
}

func init() {
	if _, err := exec.LookPath("kdialog"); err == nil {
		Methods["kdialog"] = KDialogPrompt
	}
}
