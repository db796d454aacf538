package cli

import (
	"sync"
	"sync/atomic"

	"github.com/99designs/keyring"
)

// passphraseCache asks for the file backend passphrase at most once per
// process and hands the same answer to every later unlock.
type passphraseCache struct {
	Prompt keyring.PromptFunc

	mu        sync.Mutex
	value     string
	cached    bool
	prompting atomic.Bool
}

func (c *passphraseCache) Get(message string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cached {
		return c.value, nil
	}

	c.prompting.Store(true)
	defer c.prompting.Store(false)

	value, err := c.Prompt(message)
	if err != nil {
		return "", err
	}
	c.value, c.cached = value, true
	return value, nil
}

// Prompting reports whether the user is being asked for the passphrase
// right now.
func (c *passphraseCache) Prompting() bool {
	return c.prompting.Load()
}
