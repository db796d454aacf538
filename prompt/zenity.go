package prompt

import (
	"fmt"
	"strings"

	exec "golang.org/x/sys/execabs"
)

func ZenityPrompt(message string) (string, error) {
	cmd := exec.Command("zenity", "--entry", "--hide-text", "--title=otp-vault", fmt.Sprintf(`--text=%s`, message))

	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("zenity: %w", err)
	}

	return strings.TrimSpace(string(out)), nil
}

func init() {
	if _, err := exec.LookPath("zenity"); err == nil {
		Methods["zenity"] = ZenityPrompt
	}
}
