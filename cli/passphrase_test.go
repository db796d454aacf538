package cli

import (
	"errors"
	"testing"
)

func TestPassphraseCachePromptsOnce(t *testing.T) {
	var calls int
	var cache *passphraseCache
	cache = &passphraseCache{
		Prompt: func(message string) (string, error) {
			calls++
			if !cache.Prompting() {
				t.Errorf("Expected Prompting to be true while asking")
			}
			return "hunter2", nil
		},
	}

	for i := 0; i < 3; i++ {
		p, err := cache.Get("Enter passphrase")
		if err != nil {
			t.Fatal(err)
		}
		if p != "hunter2" {
			t.Fatalf("Unexpected passphrase %q", p)
		}
	}

	if calls != 1 {
		t.Fatalf("Expected a single prompt, got %d", calls)
	}
	if cache.Prompting() {
		t.Fatalf("Expected Prompting to be false after asking")
	}
}

func TestPassphraseCacheDoesNotKeepFailures(t *testing.T) {
	errAborted := errors.New("aborted")
	answers := []error{errAborted, nil}

	cache := &passphraseCache{
		Prompt: func(string) (string, error) {
			err := answers[0]
			answers = answers[1:]
			return "hunter2", err
		},
	}

	if _, err := cache.Get("Enter passphrase"); !errors.Is(err, errAborted) {
		t.Fatalf("Expected errAborted, got %v", err)
	}
	if p, err := cache.Get("Enter passphrase"); err != nil || p != "hunter2" {
		t.Fatalf("Expected a second prompt to succeed, got %q, %v", p, err)
	}
}

func TestKeyringPromptsForFilePassphraseBeforeOpening(t *testing.T) {
	_, otpVault := newTestApp(nil)
	otpVault.keyringImpl = nil
	otpVault.KeyringBackend = "file"
	otpVault.KeyringConfig.FileDir = t.TempDir()

	var asked []string
	otpVault.passphrase.Prompt = func(message string) (string, error) {
		asked = append(asked, message)
		return "hunter2", nil
	}

	if _, err := otpVault.SecretStore(); err != nil {
		t.Fatal(err)
	}
	if len(asked) != 1 {
		t.Fatalf("Expected one prompt when opening, got %v", asked)
	}

	store, err := otpVault.SecretStore()
	if err != nil {
		t.Fatal(err)
	}
	if _, err = store.List(); err != nil {
		t.Fatal(err)
	}
	if len(asked) != 1 {
		t.Fatalf("Expected the cached passphrase to be reused, got %v", asked)
	}
}
