package prompt

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

func TerminalPrompt(message string) (string, error) {
	fmt.Fprint(os.Stderr, message)

	reader := bufio.NewReader(os.Stdin)
	text, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(text), nil
}

// TerminalSecretPrompt reads a line without echoing it. When stdin isn't a
// terminal the line is read as is, so secrets can be piped in.
func TerminalSecretPrompt(message string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return TerminalPrompt(message)
	}

	fmt.Fprint(os.Stderr, message)

	text, err := term.ReadPassword(fd)
	if err != nil {
		return "", err
	}

	fmt.Fprintln(os.Stderr)

	return strings.TrimSpace(string(text)), nil
}

func init() {
	Methods["terminal"] = TerminalSecretPrompt
}
